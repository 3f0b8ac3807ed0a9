package geom

import "math"

// Inf is returned by PredictCollision when nothing lies along the path.
var Inf = math.Inf(1)

// CircleRectOverlap reports approximately whether the circle at c with the
// given radius touches r.
//
// The test runs in three stages: the circle's bounding square must meet r,
// the centres must be within the circumscribed radius of r plus radius, and
// a centre distance inside the inscribed radius plus radius is a hit. Cases
// that survive all three are reported as colliding; resolving them exactly
// would need a corner test that the callers do not need.
func CircleRectOverlap(r Rect, c Point, radius float64) bool {
	left, right := float64(r.Left()), float64(r.Right())
	top, bottom := float64(r.Top()), float64(r.Bottom())
	if !(left < c.X+radius && right > c.X-radius &&
		top < c.Y+radius && bottom > c.Y-radius) {
		return false
	}

	dist := Distance(Center(r), c)
	if dist > radius+MaxRadius(r) {
		return false
	}

	if dist < radius+MinRadius(r) {
		return true
	}

	return true
}

// sweep describes one of the four single-axis travel directions: which edge
// of the body leads, which edge of an obstacle it would hit, and which pair
// of edges bounds the perpendicular axis.
type sweep struct {
	seekMax  bool // moving toward smaller coordinates
	front    func(Rect) int
	back     func(Rect) int
	perpLow  func(Rect) int
	perpHigh func(Rect) int
}

var (
	sweepLeft  = sweep{true, Rect.Left, Rect.Right, Rect.Top, Rect.Bottom}
	sweepRight = sweep{false, Rect.Right, Rect.Left, Rect.Top, Rect.Bottom}
	sweepUp    = sweep{true, Rect.Top, Rect.Bottom, Rect.Left, Rect.Right}
	sweepDown  = sweep{false, Rect.Bottom, Rect.Top, Rect.Left, Rect.Right}
)

// PredictCollision returns how far body can travel along a single axis before
// it touches any of obstacles. Exactly one of vx, vy is expected to be
// non-zero; only its sign matters. The result is 0 if body already overlaps
// an obstacle or does not move, and Inf if nothing blocks the way.
func PredictCollision(body Rect, obstacles []Rect, vx, vy float64) float64 {
	if body.OverlapsAny(obstacles) {
		return 0
	}

	var s sweep
	switch {
	case vx < 0:
		s = sweepLeft
	case vx > 0:
		s = sweepRight
	case vy < 0:
		s = sweepUp
	case vy > 0:
		s = sweepDown
	default:
		return 0
	}

	front := s.front(body)
	found := false
	limit := 0
	for _, o := range obstacles {
		if !spans(s.perpLow(body), s.perpHigh(body), s.perpLow(o), s.perpHigh(o)) {
			continue
		}
		edge := s.back(o)
		if s.seekMax {
			if front >= edge && (!found || edge > limit) {
				limit, found = edge, true
			}
		} else {
			if front <= edge && (!found || edge < limit) {
				limit, found = edge, true
			}
		}
	}

	if !found {
		return Inf
	}
	if s.seekMax {
		return float64(front - limit)
	}
	return float64(limit - front)
}

// spans reports whether [bLow,bHigh) and [oLow,oHigh) overlap on the
// perpendicular axis.
func spans(bLow, bHigh, oLow, oHigh int) bool {
	return (bLow >= oLow && bLow < oHigh) ||
		(bHigh > oLow && bHigh <= oHigh) ||
		(bLow < oLow && bHigh > oLow)
}
