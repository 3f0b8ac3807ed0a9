// Package nav plans bot movement: which pixels a bot may stand on, turn-aware
// waypoint search between two pixels, and compilation of a waypoint path into
// primitive actions.
package nav

import (
	"github.com/EaterOA/AICombat/internal/geom"
)

// denseLimit is the largest arena, in pixels, that gets a dense grid. Bigger
// arenas fall back to the wall index.
const denseLimit = 2048 * 2048

// Reachability answers whether a bot of a fixed size may stand with its
// top-left corner on a given pixel.
type Reachability interface {
	Reachable(x, y int) bool
	Bounds() geom.Rect
}

// NewReachability builds a Grid for ordinary arenas and an Index for very
// large ones.
func NewReachability(bounds geom.Rect, walls []geom.Rect, size geom.Size) Reachability {
	if bounds.W*bounds.H <= denseLimit {
		return NewGrid(bounds, walls, size)
	}
	return NewIndex(bounds, walls, size)
}

// Grid is a per-pixel reachability field where true = blocked.
type Grid struct {
	bounds  geom.Rect
	blocked []bool
}

// NewGrid marks every pixel on which a bot of the given size would overlap a
// wall or stick out past the right or bottom arena edge.
func NewGrid(bounds geom.Rect, walls []geom.Rect, size geom.Size) *Grid {
	g := &Grid{
		bounds:  bounds,
		blocked: make([]bool, bounds.W*bounds.H),
	}

	for _, w := range walls {
		g.block(inflate(w, size))
	}

	// Footprint must stay inside the arena.
	g.block(geom.Rect{
		X: bounds.Right() - size.W + 1, Y: bounds.Top(),
		W: size.W, H: bounds.H,
	})
	g.block(geom.Rect{
		X: bounds.Left(), Y: bounds.Bottom() - size.H + 1,
		W: bounds.W, H: size.H,
	})
	return g
}

// block marks the part of r that lies inside the grid.
func (g *Grid) block(r geom.Rect) {
	x0 := max(g.bounds.Left(), r.Left())
	x1 := min(g.bounds.Right(), r.Right())
	y0 := max(g.bounds.Top(), r.Top())
	y1 := min(g.bounds.Bottom(), r.Bottom())
	for y := y0; y < y1; y++ {
		row := (y - g.bounds.Y) * g.bounds.W
		for x := x0; x < x1; x++ {
			g.blocked[row+x-g.bounds.X] = true
		}
	}
}

// Reachable reports whether (x,y) is inside the arena and clear of walls.
func (g *Grid) Reachable(x, y int) bool {
	if !g.bounds.Contains(x, y) {
		return false
	}
	return !g.blocked[(y-g.bounds.Y)*g.bounds.W+x-g.bounds.X]
}

func (g *Grid) Bounds() geom.Rect {
	return g.bounds
}

// inflate grows w up and to the left by the bot size: a bot anchored anywhere
// inside the result touches or overlaps w.
func inflate(w geom.Rect, size geom.Size) geom.Rect {
	return geom.Rect{
		X: w.X - size.W,
		Y: w.Y - size.H,
		W: w.W + size.W,
		H: w.H + size.H,
	}
}
