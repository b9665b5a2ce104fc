package agent

import (
	"math"

	"snake-agents/game"
)

// Capacità delle finestre e dei filtri di memoria del modello del mondo.
const (
	appleHistoryCap  = 10
	moveHistoryCap   = 20
	nearMissLifetime = 50 // in step: il corpo cresce e i vecchi pericoli scadono
)

// Movement è una coppia (posizione della testa, direzione) registrata
// nella storia dei movimenti.
type Movement struct {
	Pos game.Point
	Dir game.Direction
}

// NearMiss registra una posizione osservata come collisione imminente e
// lo step in cui è stata vista.
type NearMiss struct {
	Pos  game.Point
	Step int
}

// WorldModel è la memoria persistente dell'agente model-based. Viene
// creato una volta per partita dell'agente, aggiornato a ogni tick e
// passato esplicitamente al motore decisionale: nessuno stato globale.
type WorldModel struct {
	AppleHistory []game.Point
	MoveHistory  []Movement
	Dangers      map[game.Point]struct{}
	SafeMoves    map[game.Point]game.Direction
	NearMisses   []NearMiss
	StepCount    int

	lastPos    game.Point
	lastAction game.Direction
	hasLast    bool
}

func NewWorldModel() *WorldModel {
	return &WorldModel{
		Dangers:   make(map[game.Point]struct{}),
		SafeMoves: make(map[game.Point]game.Direction),
	}
}

// Observe aggiorna il modello con lo stato corrente. Va chiamato a ogni
// tick prima della decisione.
func (m *WorldModel) Observe(g *game.Game) {
	m.StepCount++

	m.AppleHistory = append(m.AppleHistory, g.Apple())
	if len(m.AppleHistory) > appleHistoryCap {
		m.AppleHistory = m.AppleHistory[1:]
	}

	m.MoveHistory = append(m.MoveHistory, Movement{Pos: g.Head(), Dir: g.CurrentDirection()})
	if len(m.MoveHistory) > moveHistoryCap {
		m.MoveHistory = m.MoveHistory[1:]
	}

	// Ogni direzione che collide al prossimo passo diventa una zona di
	// pericolo conosciuta e un near miss datato.
	for _, d := range game.CandidateOrder {
		next := g.PotentialHead(d)
		if g.WouldCollide(next) {
			m.Dangers[next] = struct{}{}
			m.NearMisses = append(m.NearMisses, NearMiss{Pos: next, Step: m.StepCount})
		}
	}

	// La mossa del tick precedente non ha ucciso il serpente: la
	// posizione da cui è partita la ricorda come sicura. L'ultimo
	// successo sovrascrive i precedenti.
	if m.hasLast {
		m.SafeMoves[m.lastPos] = m.lastAction
	}

	kept := m.NearMisses[:0]
	for _, miss := range m.NearMisses {
		if m.StepCount-miss.Step < nearMissLifetime {
			kept = append(kept, miss)
		}
	}
	m.NearMisses = kept
}

// remember registra la coppia (posizione, azione) appena decisa per la
// verifica di sopravvivenza al tick successivo.
func (m *WorldModel) remember(pos game.Point, action game.Direction) {
	m.lastPos = pos
	m.lastAction = action
	m.hasLast = true
}

// Model è il motore decisionale model-based: aggiorna il WorldModel a
// ogni tick e valuta le azioni candidate contro la memoria accumulata.
type Model struct {
	World *WorldModel
}

func NewModel() *Model {
	return &Model{World: NewWorldModel()}
}

func (a *Model) Decide(g *game.Game) (game.Direction, error) {
	a.World.Observe(g)

	best := game.Direction(-1)
	bestScore := math.Inf(-1)

	for _, d := range candidateActions(g) {
		score, legal := a.scoreAction(g, d)
		if !legal {
			continue
		}
		if score > bestScore {
			bestScore = score
			best = d
		}
	}

	if best < 0 {
		return g.CurrentDirection(), ErrNoSafeAction
	}

	a.World.remember(g.Head(), best)
	return best, nil
}

// scoreAction valuta un'azione con il modello interno. Il secondo
// valore è false quando l'azione porta a collisione immediata.
func (a *Model) scoreAction(g *game.Game, d game.Direction) (float64, bool) {
	next := g.PotentialHead(d)
	if g.WouldCollide(next) {
		return 0, false
	}

	score := 0.0

	if _, dangerous := a.World.Dangers[next]; dangerous {
		score -= 100
	}

	if safe, ok := a.World.SafeMoves[g.Head()]; ok && safe == d {
		score += 50
	}

	if g.EuclideanDistance(next, g.Apple()) < g.EuclideanDistance(g.Head(), g.Apple()) {
		score += 100
	}

	score += a.futureSafety(g, next) * 20
	return score, true
}

// futureSafety conta i vicini della posizione candidata che non
// collidono e non sono zone di pericolo conosciute.
func (a *Model) futureSafety(g *game.Game, p game.Point) float64 {
	safety := 0.0
	for _, d := range game.CandidateOrder {
		delta := d.Delta()
		next := game.Point{X: p.X + delta.X, Y: p.Y + delta.Y}
		if _, dangerous := a.World.Dangers[next]; dangerous {
			continue
		}
		if !g.WouldCollide(next) {
			safety++
		}
	}
	return safety
}
