// Package planner implements grid path search for the snake agents:
// A* with a Manhattan heuristic, a BFS fallback, and a post-check that
// rejects paths stranding the snake at the goal.
package planner

import (
	"container/heap"

	"snake-agents/game"
)

// Collider exposes the single grid query the planner needs. The game
// satisfies it; tests use hand-built fakes.
type Collider interface {
	WouldCollide(p game.Point) bool
}

// Path is an ordered sequence of grid positions from start to goal,
// each step one cell apart. The first element is the start position.
type Path []game.Point

// astarNode is a node in the A* open set.
type astarNode struct {
	pos game.Point
	f   int // f = g + h (priority)
	seq int // insertion order, breaks f ties first-in-first-out
}

// nodeHeap implements heap.Interface for the A* open set.
type nodeHeap []astarNode

func (h nodeHeap) Len() int { return len(h) }
func (h nodeHeap) Less(i, j int) bool {
	if h[i].f != h[j].f {
		return h[i].f < h[j].f
	}
	return h[i].seq < h[j].seq
}
func (h nodeHeap) Swap(i, j int) { h[i], h[j] = h[j], h[i] }

func (h *nodeHeap) Push(x any) {
	*h = append(*h, x.(astarNode))
}

func (h *nodeHeap) Pop() any {
	old := *h
	n := len(old)
	node := old[n-1]
	*h = old[:n-1]
	return node
}

// manhattan computes the Manhattan distance between two grid points.
// Admissible and consistent for 4-directional unit-cost movement.
func manhattan(a, b game.Point) int {
	return abs(a.X-b.X) + abs(a.Y-b.Y)
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

// neighbors returns the non-colliding 4-connected cells around p, in
// the canonical candidate order.
func neighbors(c Collider, p game.Point) []game.Point {
	out := make([]game.Point, 0, 4)
	for _, d := range game.CandidateOrder {
		delta := d.Delta()
		next := game.Point{X: p.X + delta.X, Y: p.Y + delta.Y}
		if !c.WouldCollide(next) {
			out = append(out, next)
		}
	}
	return out
}

// AStar finds a shortest path from start to goal over the grid graph
// induced by the collider. Returns (nil, false) when no path exists.
func AStar(c Collider, start, goal game.Point) (Path, bool) {
	openHeap := &nodeHeap{}
	cameFrom := make(map[game.Point]game.Point)
	gScore := map[game.Point]int{start: 0}
	closed := make(map[game.Point]struct{})

	seq := 0
	heap.Push(openHeap, astarNode{pos: start, f: manhattan(start, goal), seq: seq})

	for openHeap.Len() > 0 {
		current := heap.Pop(openHeap).(astarNode)

		if _, done := closed[current.pos]; done {
			continue
		}
		closed[current.pos] = struct{}{}

		if current.pos == goal {
			return reconstruct(cameFrom, start, goal), true
		}

		for _, next := range neighbors(c, current.pos) {
			if _, done := closed[next]; done {
				continue
			}

			tentativeG := gScore[current.pos] + game.Size

			existing, seen := gScore[next]
			if seen && tentativeG >= existing {
				continue
			}

			cameFrom[next] = current.pos
			gScore[next] = tentativeG
			seq++
			heap.Push(openHeap, astarNode{
				pos: next,
				f:   tentativeG + manhattan(next, goal),
				seq: seq,
			})
		}
	}

	return nil, false
}

// BFS finds a shortest-hop path from start to goal with a plain FIFO
// frontier. Each frontier entry carries its partial path, acceptable at
// this grid's search depth. Returns (nil, false) when no path exists.
func BFS(c Collider, start, goal game.Point) (Path, bool) {
	type entry struct {
		pos  game.Point
		path Path
	}

	queue := []entry{{pos: start, path: Path{start}}}
	visited := map[game.Point]struct{}{start: {}}

	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]

		if current.pos == goal {
			return current.path, true
		}

		for _, next := range neighbors(c, current.pos) {
			if _, seen := visited[next]; seen {
				continue
			}
			visited[next] = struct{}{}

			path := make(Path, len(current.path), len(current.path)+1)
			copy(path, current.path)
			path = append(path, next)
			queue = append(queue, entry{pos: next, path: path})
		}
	}

	return nil, false
}

// Safe reports whether following the path leaves at least one escape:
// the final position must keep an open neighbor, otherwise the shortest
// path is a trap and the caller should fall through to another strategy.
func Safe(c Collider, p Path) bool {
	if len(p) < 2 {
		return false
	}

	final := p[len(p)-1]
	for _, d := range game.CandidateOrder {
		delta := d.Delta()
		escape := game.Point{X: final.X + delta.X, Y: final.Y + delta.Y}
		if !c.WouldCollide(escape) {
			return true
		}
	}
	return false
}

// reconstruct follows predecessor links from goal back to start, then
// reverses the result.
func reconstruct(cameFrom map[game.Point]game.Point, start, goal game.Point) Path {
	var reversed Path
	current := goal
	for current != start {
		reversed = append(reversed, current)
		prev, ok := cameFrom[current]
		if !ok {
			break
		}
		current = prev
	}
	reversed = append(reversed, start)

	path := make(Path, len(reversed))
	for i := range reversed {
		path[i] = reversed[len(reversed)-1-i]
	}
	return path
}
