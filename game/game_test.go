package game

import (
	"math"
	"testing"
)

func TestNewGameInitialState(t *testing.T) {
	g := NewGame(DefaultWidth, DefaultHeight)

	if got := g.Head(); got != (Point{Size, Size}) {
		t.Errorf("initial head = %v, want %v", got, Point{Size, Size})
	}
	if got := g.CurrentDirection(); got != Down {
		t.Errorf("initial direction = %v, want Down", got)
	}
	if got := g.Apple(); got != (Point{3 * Size, 3 * Size}) {
		t.Errorf("initial apple = %v, want %v", got, Point{3 * Size, 3 * Size})
	}
	if got := g.Score(); got != 0 {
		t.Errorf("initial score = %d, want 0", got)
	}
}

func TestApplyDirectionIgnoresReversal(t *testing.T) {
	g := NewGame(DefaultWidth, DefaultHeight)

	g.ApplyDirection(Up) // opposite of initial Down
	if got := g.CurrentDirection(); got != Down {
		t.Errorf("direction after reversal = %v, want Down", got)
	}

	g.ApplyDirection(Right)
	if got := g.CurrentDirection(); got != Right {
		t.Errorf("direction after turn = %v, want Right", got)
	}
}

func TestPotentialHead(t *testing.T) {
	g := NewGame(DefaultWidth, DefaultHeight)
	head := g.Head()

	cases := []struct {
		dir  Direction
		want Point
	}{
		{Up, Point{head.X, head.Y - Size}},
		{Down, Point{head.X, head.Y + Size}},
		{Left, Point{head.X - Size, head.Y}},
		{Right, Point{head.X + Size, head.Y}},
	}
	for _, c := range cases {
		if got := g.PotentialHead(c.dir); got != c.want {
			t.Errorf("PotentialHead(%v) = %v, want %v", c.dir, got, c.want)
		}
	}
}

func TestWouldCollideBounds(t *testing.T) {
	g := NewGame(DefaultWidth, DefaultHeight)

	outside := []Point{
		{-Size, 0},
		{0, -Size},
		{DefaultWidth, 0},
		{0, DefaultHeight},
	}
	for _, p := range outside {
		if !g.WouldCollide(p) {
			t.Errorf("WouldCollide(%v) = false, want true", p)
		}
	}
	if g.WouldCollide(Point{0, 0}) {
		t.Error("WouldCollide(origin) = true, want false")
	}
}

func TestWouldCollideExcludesTail(t *testing.T) {
	g := NewGame(DefaultWidth, DefaultHeight)
	g.body = []Point{
		{Size, Size},
		{Size, 2 * Size},
		{2 * Size, 2 * Size},
		{2 * Size, Size},
	}

	// Middle segments collide, the tail does not because it moves away
	// on the same tick. The head cell itself is not checked either.
	if !g.WouldCollide(Point{Size, 2 * Size}) {
		t.Error("body segment should collide")
	}
	if g.WouldCollide(Point{2 * Size, Size}) {
		t.Error("tail should not collide")
	}
}

func TestStepEatsAppleAndGrows(t *testing.T) {
	g := NewGame(DefaultWidth, DefaultHeight)

	// Walk from (40,40) to the apple at (120,120): down twice, then
	// right twice.
	moves := []Direction{Down, Down, Right, Right}
	for _, d := range moves {
		g.ApplyDirection(d)
		if res := g.Step(); res.Status != Continuing {
			t.Fatalf("unexpected end of game on move %v: %v", d, res.Cause)
		}
	}

	if got := g.Score(); got != 1 {
		t.Errorf("score after eating = %d, want 1", got)
	}
	if got := g.BodyLength(); got != 2 {
		t.Errorf("body length after eating = %d, want 2", got)
	}
	if got := g.Apple(); got != appleCycle[0] {
		t.Errorf("next apple = %v, want %v", got, appleCycle[0])
	}
}

func TestAppleCycleIsDeterministic(t *testing.T) {
	a := NewGame(DefaultWidth, DefaultHeight)
	b := NewGame(DefaultWidth, DefaultHeight)

	for i := 0; i < 5; i++ {
		a.advanceApple()
		b.advanceApple()
		if a.Apple() != b.Apple() {
			t.Fatalf("apple %d diverged: %v vs %v", i, a.Apple(), b.Apple())
		}
		if a.Apple() != appleCycle[i] {
			t.Errorf("apple %d = %v, want %v", i, a.Apple(), appleCycle[i])
		}
	}
}

func TestStepWallCollision(t *testing.T) {
	g := NewGame(DefaultWidth, DefaultHeight)
	g.ApplyDirection(Left)

	res := g.Step()
	if res.Status != Ended {
		t.Fatal("expected game to end on wall hit")
	}
	if res.Cause != WallCollision {
		t.Errorf("cause = %v, want WallCollision", res.Cause)
	}
}

func TestStepSelfCollision(t *testing.T) {
	g := NewGame(DefaultWidth, DefaultHeight)
	// The head curls back onto a segment that is not the tail, so the
	// cell is still occupied after the tail moves.
	g.body = []Point{
		{5 * Size, 5 * Size},
		{6 * Size, 5 * Size},
		{6 * Size, 6 * Size},
		{5 * Size, 6 * Size},
		{4 * Size, 6 * Size},
		{4 * Size, 5 * Size},
		{3 * Size, 5 * Size},
	}
	g.direction = Left

	res := g.Step()
	if res.Status != Ended || res.Cause != SelfCollision {
		t.Errorf("got %+v, want self collision end", res)
	}
}

func TestEuclideanDistance(t *testing.T) {
	g := NewGame(DefaultWidth, DefaultHeight)

	got := g.EuclideanDistance(Point{0, 0}, Point{3 * Size, 4 * Size})
	want := float64(5 * Size)
	if math.Abs(got-want) > 1e-9 {
		t.Errorf("distance = %v, want %v", got, want)
	}
}

func TestOpenNeighborsInCorner(t *testing.T) {
	g := NewGame(DefaultWidth, DefaultHeight)

	if got := g.OpenNeighbors(Point{0, 0}); got != 2 {
		t.Errorf("corner open neighbors = %d, want 2", got)
	}
	if got := g.OpenNeighbors(Point{5 * Size, 5 * Size}); got != 4 {
		t.Errorf("open field neighbors = %d, want 4", got)
	}
}

func TestRandomizeApplesAvoidsBody(t *testing.T) {
	g := NewGame(DefaultWidth, DefaultHeight)
	g.RandomizeApples(1)

	for i := 0; i < 50; i++ {
		p := g.randomFreeCell()
		for _, part := range g.body {
			if p == part {
				t.Fatalf("random apple %v landed on the snake", p)
			}
		}
		if p.X%Size != 0 || p.Y%Size != 0 {
			t.Fatalf("random apple %v not grid aligned", p)
		}
	}
}

func TestDirectionTurns(t *testing.T) {
	if Up.TurnRight() != Right || Right.TurnRight() != Down ||
		Down.TurnRight() != Left || Left.TurnRight() != Up {
		t.Error("TurnRight does not cycle up-right-down-left")
	}
	if Up.TurnLeft() != Left || Left.TurnLeft() != Down ||
		Down.TurnLeft() != Right || Right.TurnLeft() != Up {
		t.Error("TurnLeft does not cycle up-left-down-right")
	}
	if Up.Opposite() != Down || Left.Opposite() != Right {
		t.Error("Opposite is wrong")
	}
}

func TestDirectionBetween(t *testing.T) {
	cases := []struct {
		from, to Point
		want     Direction
	}{
		{Point{0, 0}, Point{Size, 0}, Right},
		{Point{Size, 0}, Point{0, 0}, Left},
		{Point{0, Size}, Point{0, 0}, Up},
		{Point{0, 0}, Point{0, Size}, Down},
	}
	for _, c := range cases {
		if got := DirectionBetween(c.from, c.to); got != c.want {
			t.Errorf("DirectionBetween(%v, %v) = %v, want %v", c.from, c.to, got, c.want)
		}
	}
}
