// Package agent contiene i motori decisionali del serpente: riflesso
// semplice, pianificazione con obiettivi, utilità multi-criterio e
// modello del mondo. Ogni motore implementa la stessa interfaccia e
// viene scelto da configurazione.
package agent

import (
	"errors"

	"snake-agents/game"
)

// Engine è un motore decisionale: una volta per tick legge lo stato
// della partita e restituisce la direzione da applicare.
type Engine interface {
	Decide(g *game.Game) (game.Direction, error)
}

// ErrNoSafeAction indica che ogni azione candidata porta a collisione
// immediata. È un ramo normale: il chiamante passa alla politica di
// emergenza.
var ErrNoSafeAction = errors.New("agent: no safe action available")

// ErrNoPath indica che né A* né BFS hanno trovato un percorso verso la
// mela. Anche questo è un ramo normale, non un guasto.
var ErrNoPath = errors.New("agent: no path to apple")

// candidateActions restituisce le direzioni valutabili nell'ordine
// canonico, esclusa l'inversione di marcia.
func candidateActions(g *game.Game) []game.Direction {
	reverse := g.CurrentDirection().Opposite()
	out := make([]game.Direction, 0, 3)
	for _, d := range game.CandidateOrder {
		if d == reverse {
			continue
		}
		out = append(out, d)
	}
	return out
}

// EmergencyMove è l'ultima risorsa quando ogni strategia fallisce:
// prova le direzioni in ordine fisso, esclusa l'inversione, e prende la
// prima che non collide. Se non ne esiste nessuna la collisione è
// inevitabile.
func EmergencyMove(g *game.Game) (game.Direction, error) {
	for _, d := range candidateActions(g) {
		if !g.WouldCollide(g.PotentialHead(d)) {
			return d, nil
		}
	}
	return g.CurrentDirection(), ErrNoSafeAction
}
