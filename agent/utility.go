package agent

import (
	"math"

	"snake-agents/game"
)

// Pesi fissi dei quattro criteri di utilità.
const (
	foodWeight       = 100.0
	safetyWeight     = 50.0
	spaceWeight      = 30.0
	efficiencyWeight = 20.0
)

// Utility sceglie l'azione che massimizza una combinazione pesata di
// attrazione verso la mela, sicurezza, spazio di manovra e direttezza.
// Un'azione che collide subito vale meno infinito e non viene mai
// scelta; a parità di punteggio vince la prima azione incontrata.
type Utility struct{}

func NewUtility() *Utility {
	return &Utility{}
}

func (a *Utility) Decide(g *game.Game) (game.Direction, error) {
	best := game.Direction(-1)
	bestUtility := math.Inf(-1)

	for _, d := range candidateActions(g) {
		utility := actionUtility(g, d)
		if utility > bestUtility {
			bestUtility = utility
			best = d
		}
	}

	if best < 0 || math.IsInf(bestUtility, -1) {
		return g.CurrentDirection(), ErrNoSafeAction
	}
	return best, nil
}

func actionUtility(g *game.Game, d game.Direction) float64 {
	next := g.PotentialHead(d)
	if g.WouldCollide(next) {
		return math.Inf(-1)
	}

	total := foodUtility(g, next) * foodWeight
	total += g.SafetyScore(next) / 4.0 * safetyWeight
	total += float64(g.OpenNeighbors(next)) / 4.0 * spaceWeight
	total += efficiencyUtility(g, d) * efficiencyWeight
	return total
}

// foodUtility premia le mosse che riducono la distanza euclidea dalla
// mela: +1 se diminuisce, 0 se invariata, -0.5 se aumenta.
func foodUtility(g *game.Game, next game.Point) float64 {
	current := g.EuclideanDistance(g.Head(), g.Apple())
	after := g.EuclideanDistance(next, g.Apple())

	switch {
	case after < current:
		return 1.0
	case after == current:
		return 0.0
	default:
		return -0.5
	}
}

// efficiencyUtility vale 1 quando l'azione coincide con la direzione
// ottimale orizzontale o verticale verso la mela.
func efficiencyUtility(g *game.Game, d game.Direction) float64 {
	head := g.Head()
	apple := g.Apple()

	if apple.X > head.X && d == game.Right {
		return 1.0
	}
	if apple.X < head.X && d == game.Left {
		return 1.0
	}
	if apple.Y > head.Y && d == game.Down {
		return 1.0
	}
	if apple.Y < head.Y && d == game.Up {
		return 1.0
	}
	return 0.0
}
