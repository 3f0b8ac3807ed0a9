package nav

import (
	"container/heap"
	"time"

	"github.com/EaterOA/AICombat/internal/bot"
	"github.com/EaterOA/AICombat/internal/geom"
)

// spacing is the nominal distance between neighbouring waypoints.
const spacing = 10

// waypoint is a search node. Nodes live only for one FindPath call.
type waypoint struct {
	pos   geom.Pos
	h     time.Duration // heuristic cost to destination
	g     time.Duration // accumulated cost from start
	prev  *waypoint
	dir   geom.Direction // heading used to arrive here
	index int            // heap index
}

func (w *waypoint) priority() time.Duration { return w.g + w.h }

type openList []*waypoint

func (ol openList) Len() int { return len(ol) }

func (ol openList) Less(i, j int) bool {
	a, b := ol[i], ol[j]
	if a.priority() != b.priority() {
		return a.priority() < b.priority()
	}
	if a.h != b.h {
		return a.h < b.h
	}
	if a.pos.X != b.pos.X {
		return a.pos.X < b.pos.X
	}
	return a.pos.Y < b.pos.Y
}

func (ol openList) Swap(i, j int) {
	ol[i], ol[j] = ol[j], ol[i]
	ol[i].index = i
	ol[j].index = j
}

func (ol *openList) Push(x any) {
	n := x.(*waypoint)
	n.index = len(*ol)
	*ol = append(*ol, n)
}

func (ol *openList) Pop() any {
	old := *ol
	n := old[len(old)-1]
	old[len(old)-1] = nil
	*ol = old[:len(old)-1]
	return n
}

// FindPath returns the cheapest waypoint path from start to dest for a bot
// facing heading, or nil if dest cannot be reached.
//
// Waypoints sit every 10 pixels from start, plus extra waypoints on the
// destination's row and column so that dest itself is on the lattice. Each
// step costs its walking time plus the time needed to turn into it.
func FindPath(r Reachability, start, dest geom.Pos, heading geom.Direction, c bot.Costs) []geom.Pos {
	lat := lattice{
		dest:  dest,
		diffX: mod(dest.X-start.X, spacing),
		diffY: mod(dest.Y-start.Y, spacing),
	}
	bounds := r.Bounds()

	first := &waypoint{pos: start, h: heuristic(start, dest, c), dir: heading}
	ol := &openList{first}
	heap.Init(ol)

	seen := map[geom.Pos]*waypoint{start: first}
	found := false
	for ol.Len() > 0 {
		wp := heap.Pop(ol).(*waypoint)
		if wp.pos == dest {
			found = true
			break
		}

		for _, d := range geom.Directions {
			ox, oy := lat.offset(wp.pos, d)
			next := geom.Pos{X: wp.pos.X + ox, Y: wp.pos.Y + oy}
			if !bounds.Contains(next.X, next.Y) || !r.Reachable(next.X, next.Y) {
				continue
			}
			if _, ok := seen[next]; ok {
				continue
			}

			g := wp.g + time.Duration(abs(ox)+abs(oy))*c.Walk + turnCost(wp.dir, d, c)
			n := &waypoint{pos: next, h: heuristic(next, dest, c), g: g, prev: wp, dir: d}
			seen[next] = n
			heap.Push(ol, n)
		}
	}
	if !found {
		return nil
	}

	var path []geom.Pos
	for n := seen[dest]; n != nil; n = n.prev {
		path = append(path, n.pos)
	}
	for i, j := 0, len(path)-1; i < j; i, j = i+1, j-1 {
		path[i], path[j] = path[j], path[i]
	}
	return path
}

// heuristic is the walking time along a turn-free Manhattan route, which
// never overestimates the true cost.
func heuristic(p, dest geom.Pos, c bot.Costs) time.Duration {
	return time.Duration(geom.Manhattan(p, dest)) * c.Walk
}

// turnCost is the time to turn from the arrival heading into d.
func turnCost(from, to geom.Direction, c bot.Costs) time.Duration {
	switch from.Steps(to) {
	case 1, 3:
		return c.Turn
	case 2:
		return 2 * c.Turn
	}
	return 0
}

// lattice computes waypoint offsets that keep the destination's row and
// column reachable despite the 10-pixel spacing.
type lattice struct {
	dest         geom.Pos
	diffX, diffY int
}

func (l lattice) offset(cur geom.Pos, d geom.Direction) (int, int) {
	switch d {
	case geom.Right:
		return forward(cur.X, l.dest.X, l.diffX), 0
	case geom.Down:
		return 0, forward(cur.Y, l.dest.Y, l.diffY)
	case geom.Left:
		return backward(cur.X, l.dest.X, l.diffX), 0
	case geom.Up:
		return 0, backward(cur.Y, l.dest.Y, l.diffY)
	}
	return 0, 0
}

// forward is the step toward larger coordinates along one axis.
func forward(cur, dest, diff int) int {
	switch {
	case cur == dest:
		return spacing - diff
	case between(dest, cur, spacing):
		return diff
	}
	return spacing
}

// backward mirrors forward toward smaller coordinates. Stepping off the
// destination line with diff == 0 takes a full step, since the destination
// already sits on the start lattice.
func backward(cur, dest, diff int) int {
	switch {
	case cur == dest && diff == 0:
		return -spacing
	case cur == dest:
		return -diff
	case between(dest, cur, -spacing):
		return diff - spacing
	}
	return -spacing
}

// between reports whether v lies strictly between base and base+off.
func between(v, base, off int) bool {
	return (v < base && v > base+off) || (v > base && v < base+off)
}

func mod(a, m int) int {
	return ((a % m) + m) % m
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
