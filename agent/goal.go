package agent

import (
	"snake-agents/game"
	"snake-agents/planner"
)

// Obiettivi espliciti dell'agente goal-based, in ordine di priorità.
const (
	goalReachApple     = "reach_apple"
	goalMaximizeScore  = "maximize_score"
	goalMaintainSafety = "maintain_safety"
)

// Goal pianifica sequenze di azioni con la ricerca su griglia: prima un
// percorso A* verso la mela, verificato con il post-check di sicurezza,
// poi una mossa esplorativa che massimizza le opzioni future, poi BFS
// come ripiego, infine la mossa di emergenza.
type Goal struct{}

func NewGoal() *Goal {
	return &Goal{}
}

func (a *Goal) Decide(g *game.Game) (game.Direction, error) {
	head := g.Head()
	apple := g.Apple()
	goals := activeGoals(g)

	if goals[goalReachApple] {
		if path, ok := planner.AStar(g, head, apple); ok && len(path) > 1 {
			if planner.Safe(g, path) {
				return game.DirectionBetween(head, path[1]), nil
			}
		}
	}

	if goals[goalMaintainSafety] {
		if dir, ok := safeExplorationMove(g); ok {
			return dir, nil
		}
	}

	if goals[goalMaximizeScore] {
		if path, ok := planner.BFS(g, head, apple); ok && len(path) > 1 {
			return game.DirectionBetween(head, path[1]), nil
		}
	}

	return EmergencyMove(g)
}

// activeGoals determina gli obiettivi attivi in base allo stato: la
// caccia alla mela si attiva solo quando lo spazio libero è abbondante
// rispetto alla lunghezza del serpente.
func activeGoals(g *game.Game) map[string]bool {
	goals := map[string]bool{
		goalMaintainSafety: true,
	}

	available := g.Cells() - g.BodyLength()
	if available > g.BodyLength()*2 {
		goals[goalReachApple] = true
		goals[goalMaximizeScore] = true
	}

	return goals
}

// safeExplorationMove cerca la mossa che massimizza la flessibilità
// futura guardando tre passi avanti.
func safeExplorationMove(g *game.Game) (game.Direction, bool) {
	best := game.Direction(-1)
	bestScore := -1.0

	for _, d := range candidateActions(g) {
		next := g.PotentialHead(d)
		if g.WouldCollide(next) {
			continue
		}

		score := futureOptions(g, next, 3)
		if score > bestScore {
			bestScore = score
			best = d
		}
	}

	if best < 0 {
		return 0, false
	}
	return best, true
}

// futureOptions valuta ricorsivamente quante opzioni di movimento
// restano da una posizione. Le opzioni future pesano la metà di quelle
// immediate.
func futureOptions(g *game.Game, p game.Point, depth int) float64 {
	if depth <= 0 {
		return 0
	}

	options := 0.0
	futureTotal := 0.0

	for _, d := range game.CandidateOrder {
		delta := d.Delta()
		next := game.Point{X: p.X + delta.X, Y: p.Y + delta.Y}
		if g.WouldCollide(next) {
			continue
		}
		options++
		futureTotal += futureOptions(g, next, depth-1)
	}

	return options + futureTotal*0.5
}
