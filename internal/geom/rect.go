package geom

import "math"

// Rect is an axis-aligned rectangle on the pixel lattice. X/Y is the
// top-left corner; y grows downward.
type Rect struct {
	X int
	Y int
	W int
	H int
}

// Pos is a pixel coordinate.
type Pos struct {
	X, Y int
}

// Point is a real-valued coordinate.
type Point struct {
	X, Y float64
}

// Size is a width/height pair.
type Size struct {
	W, H int
}

func (r Rect) Left() int   { return r.X }
func (r Rect) Right() int  { return r.X + r.W }
func (r Rect) Top() int    { return r.Y }
func (r Rect) Bottom() int { return r.Y + r.H }

// Pos returns the top-left corner.
func (r Rect) Pos() Pos { return Pos{X: r.X, Y: r.Y} }

// Size returns the rectangle dimensions.
func (r Rect) Size() Size { return Size{W: r.W, H: r.H} }

// Overlaps reports whether r and o share a region of positive area.
// Rectangles that only touch along an edge do not overlap.
func (r Rect) Overlaps(o Rect) bool {
	return r.X < o.X+o.W && r.X+r.W > o.X &&
		r.Y < o.Y+o.H && r.Y+r.H > o.Y
}

// OverlapsAny reports whether r overlaps at least one of obstacles.
func (r Rect) OverlapsAny(obstacles []Rect) bool {
	for _, o := range obstacles {
		if r.Overlaps(o) {
			return true
		}
	}
	return false
}

// Contains reports whether the pixel (x,y) lies inside r.
func (r Rect) Contains(x, y int) bool {
	return x >= r.X && x < r.X+r.W && y >= r.Y && y < r.Y+r.H
}

// Translate returns r moved by (dx,dy).
func (r Rect) Translate(dx, dy int) Rect {
	r.X += dx
	r.Y += dy
	return r
}

// MoveTo returns r with its top-left corner at (x,y).
func (r Rect) MoveTo(x, y int) Rect {
	r.X = x
	r.Y = y
	return r
}

// ScaleAround returns a w×h rectangle sharing r's centre (integer pixels,
// rounded toward the top-left).
func (r Rect) ScaleAround(w, h int) Rect {
	return Rect{
		X: r.X + r.W/2 - w/2,
		Y: r.Y + r.H/2 - h/2,
		W: w,
		H: h,
	}
}

// Center returns the centre point of r.
func Center(r Rect) Point {
	return Point{
		X: float64(r.X) + float64(r.W)/2,
		Y: float64(r.Y) + float64(r.H)/2,
	}
}

// Distance returns the Euclidean distance between two points.
func Distance(a, b Point) float64 {
	return math.Hypot(a.X-b.X, a.Y-b.Y)
}

// Manhattan returns |dx|+|dy| between two pixel coordinates.
func Manhattan(a, b Pos) int {
	return abs(a.X-b.X) + abs(a.Y-b.Y)
}

// MaxRadius is the radius of the smallest circle enclosing r.
func MaxRadius(r Rect) float64 {
	return math.Hypot(float64(r.W), float64(r.H)) / 2
}

// MinRadius is the radius of the largest circle inscribed in r.
func MinRadius(r Rect) float64 {
	return math.Min(float64(r.W)/2, float64(r.H)/2)
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
