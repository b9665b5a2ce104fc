package game

// Size è la dimensione in pixel di una cella della griglia. Tutte le
// posizioni (testa, corpo, mela) sono allineate a multipli di Size.
const Size = 40

// Point rappresenta una posizione sulla griglia in coordinate pixel.
type Point struct {
	X, Y int
}

// Direction rappresenta una direzione cardinale. L'ordine dei valori
// segue il ciclo orario up -> right -> down -> left usato per le
// rotazioni relative.
type Direction int

const (
	Up Direction = iota
	Right
	Down
	Left
)

// CandidateOrder è l'ordine canonico con cui gli agenti valutano le
// direzioni candidate: a parità di punteggio vince la prima incontrata.
var CandidateOrder = [4]Direction{Left, Right, Up, Down}

// Delta converte una Direction in un vettore di spostamento di una cella.
func (d Direction) Delta() Point {
	switch d {
	case Up:
		return Point{X: 0, Y: -Size}
	case Right:
		return Point{X: Size, Y: 0}
	case Down:
		return Point{X: 0, Y: Size}
	case Left:
		return Point{X: -Size, Y: 0}
	default:
		return Point{}
	}
}

// Opposite restituisce la direzione opposta: il serpente non può mai
// invertire la marcia in un singolo tick.
func (d Direction) Opposite() Direction {
	switch d {
	case Up:
		return Down
	case Down:
		return Up
	case Left:
		return Right
	default:
		return Left
	}
}

// TurnLeft restituisce la direzione risultante da una rotazione a
// sinistra rispetto alla direzione corrente.
func (d Direction) TurnLeft() Direction {
	return Direction((int(d) + 3) % 4)
}

// TurnRight restituisce la direzione risultante da una rotazione a
// destra rispetto alla direzione corrente.
func (d Direction) TurnRight() Direction {
	return Direction((int(d) + 1) % 4)
}

func (d Direction) String() string {
	switch d {
	case Up:
		return "up"
	case Right:
		return "right"
	case Down:
		return "down"
	case Left:
		return "left"
	default:
		return "unknown"
	}
}

// DirectionBetween determina la direzione che porta da from a to,
// assumendo che i due punti siano adiacenti sulla griglia.
func DirectionBetween(from, to Point) Direction {
	switch {
	case to.X > from.X:
		return Right
	case to.X < from.X:
		return Left
	case to.Y > from.Y:
		return Down
	case to.Y < from.Y:
		return Up
	default:
		return Right
	}
}
