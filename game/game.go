package game

import (
	"math"

	"golang.org/x/exp/rand"
)

// Dimensioni di default della griglia in pixel (25x20 celle).
const (
	DefaultWidth  = 1000
	DefaultHeight = 800
)

// CollisionType represents the type of collision
type CollisionType int

const (
	NoCollision CollisionType = iota
	WallCollision
	SelfCollision
)

func (c CollisionType) String() string {
	switch c {
	case WallCollision:
		return "wall collision"
	case SelfCollision:
		return "self collision"
	default:
		return "none"
	}
}

// Status indica se la partita continua oppure è terminata.
type Status int

const (
	Continuing Status = iota
	Ended
)

// StepResult è l'esito esplicito di un singolo tick di simulazione:
// niente eccezioni, il chiamante decide come reagire a una fine partita.
type StepResult struct {
	Status Status
	Cause  CollisionType
}

// appleCycle è la sequenza fissa di posizioni della mela. La sequenza
// deterministica rende riproducibili i confronti tra agenti e gli
// episodi di training.
var appleCycle = []Point{
	{320, 560}, {160, 40}, {680, 440}, {280, 280}, {400, 240},
	{240, 560}, {960, 80}, {80, 200}, {40, 240}, {760, 80},
	{720, 80}, {880, 520}, {400, 720}, {680, 360}, {480, 680},
	{480, 760}, {520, 680}, {160, 320}, {760, 80}, {480, 360},
	{720, 720}, {360, 120}, {960, 280}, {160, 280}, {80, 320},
	{400, 680}, {760, 320}, {680, 40}, {760, 520}, {800, 600},
}

// Game è la simulazione del mondo a griglia: serpente, mela, collisioni.
// Espone le interrogazioni pure usate dagli agenti e l'unica chiamata
// mutante che accettano da fuori, ApplyDirection.
type Game struct {
	width     int
	height    int
	body      []Point // testa in posizione 0
	direction Direction
	apple     Point
	appleIdx  int
	steps     int

	randomApples bool
	rng          *rand.Rand
}

// NewGame crea una nuova partita con il serpente nella posizione
// iniziale e la mela al primo punto della sequenza.
func NewGame(width, height int) *Game {
	g := &Game{
		width:  width,
		height: height,
	}
	g.Reset()
	return g
}

// NewGameFromState costruisce una partita da uno snapshot esplicito:
// corpo (testa per prima), direzione e mela. Utile per riprodurre
// scenari specifici.
func NewGameFromState(width, height int, body []Point, dir Direction, apple Point) *Game {
	g := &Game{
		width:     width,
		height:    height,
		body:      append([]Point(nil), body...),
		direction: dir,
		apple:     apple,
	}
	return g
}

// RandomizeApples sostituisce la sequenza deterministica della mela con
// posizioni casuali su celle libere. Usato solo in partita libera.
func (g *Game) RandomizeApples(seed uint64) {
	g.randomApples = true
	g.rng = rand.New(rand.NewSource(seed))
}

// Reset riporta la partita allo stato iniziale mantenendo la modalità
// di piazzamento della mela.
func (g *Game) Reset() {
	g.body = []Point{{X: Size, Y: Size}}
	g.direction = Down
	g.apple = Point{X: 3 * Size, Y: 3 * Size}
	g.appleIdx = 0
	g.steps = 0
}

// Head restituisce la posizione corrente della testa.
func (g *Game) Head() Point {
	return g.body[0]
}

// Apple restituisce la posizione corrente della mela.
func (g *Game) Apple() Point {
	return g.apple
}

// CurrentDirection restituisce la direzione di marcia corrente.
func (g *Game) CurrentDirection() Direction {
	return g.direction
}

// BodyLength restituisce il numero di segmenti del serpente.
func (g *Game) BodyLength() int {
	return len(g.body)
}

// Body restituisce una copia dei segmenti del serpente, testa per prima.
func (g *Game) Body() []Point {
	out := make([]Point, len(g.body))
	copy(out, g.body)
	return out
}

// Score è il punteggio corrente: segmenti mangiati.
func (g *Game) Score() int {
	return len(g.body) - 1
}

// Steps restituisce il numero di tick eseguiti dall'ultimo reset.
func (g *Game) Steps() int {
	return g.steps
}

// Width restituisce la larghezza della griglia in pixel.
func (g *Game) Width() int {
	return g.width
}

// Height restituisce l'altezza della griglia in pixel.
func (g *Game) Height() int {
	return g.height
}

// Cells restituisce il numero totale di celle della griglia.
func (g *Game) Cells() int {
	return (g.width / Size) * (g.height / Size)
}

// PotentialHead calcola la posizione che la testa occuperebbe muovendosi
// nella direzione indicata. Funzione pura, non modifica nulla.
func (g *Game) PotentialHead(d Direction) Point {
	head := g.Head()
	delta := d.Delta()
	return Point{X: head.X + delta.X, Y: head.Y + delta.Y}
}

// WouldCollide riporta true se la posizione è fuori griglia oppure
// sovrapposta a un segmento del corpo. La coda è esclusa perché libererà
// la cella al prossimo movimento.
func (g *Game) WouldCollide(p Point) bool {
	if p.X < 0 || p.X >= g.width || p.Y < 0 || p.Y >= g.height {
		return true
	}
	for i := 1; i < len(g.body)-1; i++ {
		if g.body[i] == p {
			return true
		}
	}
	return false
}

// ApplyDirection imposta la direzione di marcia. Un'inversione a 180
// gradi viene ignorata silenziosamente.
func (g *Game) ApplyDirection(d Direction) {
	if d == g.direction.Opposite() {
		return
	}
	g.direction = d
}

// EuclideanDistance calcola la distanza euclidea tra due punti.
func (g *Game) EuclideanDistance(a, b Point) float64 {
	dx := float64(b.X - a.X)
	dy := float64(b.Y - a.Y)
	return math.Sqrt(dx*dx + dy*dy)
}

// OpenNeighbors conta le celle adiacenti a p raggiungibili senza
// collisione.
func (g *Game) OpenNeighbors(p Point) int {
	open := 0
	for _, d := range CandidateOrder {
		delta := d.Delta()
		next := Point{X: p.X + delta.X, Y: p.Y + delta.Y}
		if !g.WouldCollide(next) {
			open++
		}
	}
	return open
}

// SafetyScore valuta quanto è sicura una posizione: un punto per ogni
// cella adiacente libera, più mezzo punto se quella cella è anche dal
// lato della mela.
func (g *Game) SafetyScore(p Point) float64 {
	score := 0.0
	for _, d := range CandidateOrder {
		delta := d.Delta()
		next := Point{X: p.X + delta.X, Y: p.Y + delta.Y}
		if g.WouldCollide(next) {
			continue
		}
		score++
		if (delta.X > 0 && g.apple.X > p.X) ||
			(delta.X < 0 && g.apple.X < p.X) ||
			(delta.Y > 0 && g.apple.Y > p.Y) ||
			(delta.Y < 0 && g.apple.Y < p.Y) {
			score += 0.5
		}
	}
	return score
}

// Step esegue un tick di simulazione: muove il serpente di una cella,
// gestisce la mela e controlla le collisioni. L'esito è un valore
// esplicito, mai un panic.
func (g *Game) Step() StepResult {
	g.steps++

	newHead := g.PotentialHead(g.direction)
	g.body = append([]Point{newHead}, g.body...)

	if newHead == g.apple {
		g.advanceApple()
	} else {
		g.body = g.body[:len(g.body)-1]
	}

	if newHead.X < 0 || newHead.X >= g.width || newHead.Y < 0 || newHead.Y >= g.height {
		return StepResult{Status: Ended, Cause: WallCollision}
	}

	// I primi tre segmenti dietro la testa non possono essere raggiunti
	// con mosse legali, il controllo parte dal quarto.
	for i := 3; i < len(g.body); i++ {
		if g.body[i] == newHead {
			return StepResult{Status: Ended, Cause: SelfCollision}
		}
	}

	return StepResult{Status: Continuing}
}

func (g *Game) advanceApple() {
	if g.randomApples {
		g.apple = g.randomFreeCell()
		return
	}
	g.apple = appleCycle[g.appleIdx]
	g.appleIdx = (g.appleIdx + 1) % len(appleCycle)
}

func (g *Game) randomFreeCell() Point {
	for {
		p := Point{
			X: g.rng.Intn(g.width/Size) * Size,
			Y: g.rng.Intn(g.height/Size) * Size,
		}
		occupied := false
		for _, part := range g.body {
			if p == part {
				occupied = true
				break
			}
		}
		if !occupied {
			return p
		}
	}
}
