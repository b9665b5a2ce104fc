package agent

import "snake-agents/game"

// Reflex è l'agente più semplice: insegue la mela asse per asse,
// scartando solo le mosse che collidono subito. Nessuna pianificazione,
// nessuna memoria.
type Reflex struct{}

func NewReflex() *Reflex {
	return &Reflex{}
}

func (r *Reflex) Decide(g *game.Game) (game.Direction, error) {
	head := g.Head()
	apple := g.Apple()

	if apple.X < head.X && !g.WouldCollide(g.PotentialHead(game.Left)) {
		return game.Left, nil
	}
	if apple.X > head.X && !g.WouldCollide(g.PotentialHead(game.Right)) {
		return game.Right, nil
	}
	if apple.Y > head.Y && !g.WouldCollide(g.PotentialHead(game.Down)) {
		return game.Down, nil
	}
	if apple.Y < head.Y && !g.WouldCollide(g.PotentialHead(game.Up)) {
		return game.Up, nil
	}

	// Nessuna mossa utile: mantiene la direzione corrente.
	return g.CurrentDirection(), nil
}
