// Package qlearning implementa l'agente tabellare: discretizzazione
// dello stato, politica epsilon-greedy, aggiornamento temporal-difference
// e persistenza della tabella Q con le statistiche di training.
package qlearning

import (
	"math"

	"snake-agents/game"
)

// Direzione della mela rispetto alla marcia corrente: offset orario
// nel ciclo up -> right -> down -> left.
const (
	AppleAhead  = 0
	AppleRight  = 1
	AppleBehind = 2
	AppleLeft   = 3
)

// State è la rappresentazione discreta dello stato di gioco usata come
// chiave della tabella Q: tre flag di pericolo a un passo, la direzione
// della mela nel sistema di riferimento del serpente e la distanza a
// bucket. Nessuna coordinata assoluta, così la politica generalizza su
// tutta la griglia.
type State struct {
	DangerStraight bool `json:"danger_straight"`
	DangerRight    bool `json:"danger_right"`
	DangerLeft     bool `json:"danger_left"`
	AppleDir       int  `json:"apple_dir"`
	DistBucket     int  `json:"dist_bucket"`
}

// Action è un'azione relativa alla direzione di marcia corrente.
type Action int

const (
	Straight Action = iota
	TurnRight
	TurnLeft
)

// NumActions è la dimensione dello spazio delle azioni relative.
const NumActions = 3

// AbsoluteDirection converte un'azione relativa in una direzione
// assoluta seguendo il ciclo up -> right -> down -> left.
func AbsoluteDirection(heading game.Direction, a Action) game.Direction {
	switch a {
	case TurnRight:
		return heading.TurnRight()
	case TurnLeft:
		return heading.TurnLeft()
	default:
		return heading
	}
}

// EncodeState discretizza lo stato corrente della partita. Training e
// inferenza DEVONO passare da questa stessa funzione: qualunque
// divergenza romperebbe in silenzio il trasferimento della politica.
func EncodeState(g *game.Game) State {
	heading := g.CurrentDirection()

	return State{
		DangerStraight: g.WouldCollide(g.PotentialHead(heading)),
		DangerRight:    g.WouldCollide(g.PotentialHead(heading.TurnRight())),
		DangerLeft:     g.WouldCollide(g.PotentialHead(heading.TurnLeft())),
		AppleDir:       appleDirection(g.Head(), g.Apple(), heading),
		DistBucket:     distanceBucket(g.Head(), g.Apple()),
	}
}

// appleDirection calcola la direzione della mela relativa alla marcia:
// prima l'asse dominante dell'offset in celle, poi la rotazione nel
// sistema di riferimento del serpente.
func appleDirection(head, apple game.Point, heading game.Direction) int {
	dx := apple.X/game.Size - head.X/game.Size
	dy := apple.Y/game.Size - head.Y/game.Size

	var absolute game.Direction
	if abs(dx) > abs(dy) {
		if dx > 0 {
			absolute = game.Right
		} else {
			absolute = game.Left
		}
	} else {
		if dy > 0 {
			absolute = game.Down
		} else {
			absolute = game.Up
		}
	}

	return (int(absolute) - int(heading) + 4) % 4
}

// distanceBucket discretizza la distanza euclidea in celle in quattro
// fasce: 0..3.
func distanceBucket(head, apple game.Point) int {
	dx := float64(head.X/game.Size - apple.X/game.Size)
	dy := float64(head.Y/game.Size - apple.Y/game.Size)
	dist := math.Sqrt(dx*dx + dy*dy)

	bucket := int(dist / 5)
	if bucket > 3 {
		bucket = 3
	}
	return bucket
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
