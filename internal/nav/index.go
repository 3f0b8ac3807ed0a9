package nav

import (
	"github.com/dhconnelly/rtreego"

	"github.com/EaterOA/AICombat/internal/geom"
)

// Index answers reachability queries from an R-tree of inflated walls
// instead of a dense pixel field.
type Index struct {
	bounds geom.Rect
	size   geom.Size
	tree   *rtreego.Rtree
}

// blocker is an inflated wall stored in the tree.
type blocker struct {
	area geom.Rect
	bb   *rtreego.Rect
}

func (b *blocker) Bounds() *rtreego.Rect {
	return b.bb
}

// NewIndex builds the tree. Degenerate walls are skipped.
func NewIndex(bounds geom.Rect, walls []geom.Rect, size geom.Size) *Index {
	spatials := make([]rtreego.Spatial, 0, len(walls))
	for _, w := range walls {
		area := inflate(w, size)
		bb, err := rtreego.NewRect(
			rtreego.Point{float64(area.X), float64(area.Y)},
			[]float64{float64(area.W), float64(area.H)},
		)
		if err != nil {
			continue
		}
		spatials = append(spatials, &blocker{area: area, bb: bb})
	}
	return &Index{
		bounds: bounds,
		size:   size,
		tree:   rtreego.NewTree(2, 25, 50, spatials...),
	}
}

// Reachable reports whether (x,y) is inside the arena, keeps the bot
// footprint inside it, and is clear of every inflated wall.
func (ix *Index) Reachable(x, y int) bool {
	if !ix.bounds.Contains(x, y) {
		return false
	}
	if x > ix.bounds.Right()-ix.size.W || y > ix.bounds.Bottom()-ix.size.H {
		return false
	}

	bb, err := rtreego.NewRect(rtreego.Point{float64(x) + 0.25, float64(y) + 0.25}, []float64{0.5, 0.5})
	if err != nil {
		return false
	}
	for _, s := range ix.tree.SearchIntersect(bb) {
		if s.(*blocker).area.Contains(x, y) {
			return false
		}
	}
	return true
}

func (ix *Index) Bounds() geom.Rect {
	return ix.bounds
}
