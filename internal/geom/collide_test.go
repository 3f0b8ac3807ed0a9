package geom

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"pgregory.net/rapid"
)

func TestPredictCollision_GapToWall(t *testing.T) {
	body := Rect{X: 0, Y: 0, W: 10, H: 10}
	walls := []Rect{{X: 20, Y: 0, W: 10, H: 10}}
	if got := PredictCollision(body, walls, 1, 0); got != 10 {
		t.Fatalf("expected 10, got %v", got)
	}
}

func TestPredictCollision_AllDirections(t *testing.T) {
	body := Rect{X: 50, Y: 50, W: 10, H: 10}
	walls := []Rect{
		{X: 80, Y: 40, W: 5, H: 40}, // right, gap 20
		{X: 10, Y: 55, W: 5, H: 5},  // left, gap 35
		{X: 40, Y: 0, W: 40, H: 20}, // above, gap 30
		{X: 55, Y: 90, W: 2, H: 2},  // below, gap 30
	}
	tests := []struct {
		name   string
		vx, vy float64
		want   float64
	}{
		{"right", 1, 0, 20},
		{"left", -4, 0, 35},
		{"up", 0, -1, 30},
		{"down", 0, 3, 30},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, PredictCollision(body, walls, tc.vx, tc.vy))
		})
	}
}

func TestPredictCollision_NearestWallWins(t *testing.T) {
	body := Rect{X: 0, Y: 0, W: 10, H: 10}
	walls := []Rect{
		{X: 100, Y: 0, W: 10, H: 10},
		{X: 40, Y: 5, W: 10, H: 10},
		{X: 70, Y: 0, W: 10, H: 10},
	}
	assert.Equal(t, 30.0, PredictCollision(body, walls, 1, 0))
}

func TestPredictCollision_AlreadyOverlapping(t *testing.T) {
	body := Rect{X: 0, Y: 0, W: 10, H: 10}
	walls := []Rect{{X: 5, Y: 5, W: 10, H: 10}, {X: 100, Y: 0, W: 1, H: 10}}
	if got := PredictCollision(body, walls, 1, 0); got != 0 {
		t.Fatalf("overlapping body should not move, got %v", got)
	}
}

func TestPredictCollision_NoVelocity(t *testing.T) {
	body := Rect{X: 0, Y: 0, W: 10, H: 10}
	walls := []Rect{{X: 20, Y: 0, W: 10, H: 10}}
	if got := PredictCollision(body, walls, 0, 0); got != 0 {
		t.Fatalf("zero velocity should yield 0, got %v", got)
	}
}

func TestPredictCollision_NothingInTheWay(t *testing.T) {
	body := Rect{X: 0, Y: 0, W: 10, H: 10}
	walls := []Rect{
		{X: 20, Y: 10, W: 10, H: 10}, // touches the body's bottom edge line only
		{X: -30, Y: 0, W: 10, H: 10}, // behind
	}
	if got := PredictCollision(body, walls, 1, 0); !math.IsInf(got, 1) {
		t.Fatalf("expected +Inf, got %v", got)
	}
}

func TestPredictCollision_TouchingWallAhead(t *testing.T) {
	body := Rect{X: 0, Y: 0, W: 10, H: 10}
	walls := []Rect{{X: 10, Y: 0, W: 10, H: 10}}
	if got := PredictCollision(body, walls, 1, 0); got != 0 {
		t.Fatalf("flush wall should block immediately, got %v", got)
	}
}

func TestCircleRectOverlap_Stages(t *testing.T) {
	r := Rect{X: 0, Y: 0, W: 20, H: 20}

	assert.False(t, CircleRectOverlap(r, Point{X: 100, Y: 100}, 10), "bounding square misses")
	assert.True(t, CircleRectOverlap(r, Point{X: 10, Y: 10}, 1), "centre inside")
	assert.True(t, CircleRectOverlap(r, Point{X: 35, Y: 10}, 16), "edge contact")
	// Square meets the corner region but the centres are beyond the
	// circumscribed radius.
	assert.False(t, CircleRectOverlap(r, Point{X: 27, Y: 27}, 8))
	// Unresolved corner case defaults to colliding.
	assert.True(t, CircleRectOverlap(r, Point{X: 26, Y: 26}, 9))
}

func TestCenterAndRadii(t *testing.T) {
	r := Rect{X: 10, Y: 20, W: 6, H: 8}
	assert.Equal(t, Point{X: 13, Y: 24}, Center(r))
	assert.Equal(t, 5.0, MaxRadius(r))
	assert.Equal(t, 3.0, MinRadius(r))
	assert.Equal(t, 5.0, Distance(Point{}, Point{X: 3, Y: 4}))
}

func rectGen(name string) *rapid.Generator[Rect] {
	return rapid.Custom(func(t *rapid.T) Rect {
		return Rect{
			X: rapid.IntRange(-200, 200).Draw(t, name+".x"),
			Y: rapid.IntRange(-200, 200).Draw(t, name+".y"),
			W: rapid.IntRange(1, 60).Draw(t, name+".w"),
			H: rapid.IntRange(1, 60).Draw(t, name+".h"),
		}
	})
}

func TestPredictCollision_Properties(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		body := rectGen("body").Draw(t, "body")
		walls := rapid.SliceOfN(rectGen("wall"), 0, 6).Draw(t, "walls")
		dir := Directions[rapid.IntRange(0, 3).Draw(t, "dir")]
		ddx, ddy := dir.Delta()

		got := PredictCollision(body, walls, float64(ddx), float64(ddy))
		if body.OverlapsAny(walls) {
			if got != 0 {
				t.Fatalf("overlapping body returned %v", got)
			}
			return
		}
		if got < 0 {
			t.Fatalf("negative distance %v", got)
		}
		if math.IsInf(got, 1) {
			// Sliding any distance must stay clear.
			moved := body.Translate(ddx*500, ddy*500)
			for _, w := range walls {
				swept := union(body, moved)
				if swept.Overlaps(w) {
					t.Fatalf("reported clear path but %v blocks sweep %v", w, swept)
				}
			}
			return
		}
		n := int(got)
		// Travelling exactly n keeps the body clear; one more pixel hits.
		at := body.Translate(ddx*n, ddy*n)
		if at.OverlapsAny(walls) {
			t.Fatalf("body overlaps after travelling the predicted %d", n)
		}
		if !body.Translate(ddx*(n+1), ddy*(n+1)).OverlapsAny(walls) {
			t.Fatalf("one pixel beyond the predicted %d should collide", n)
		}
	})
}

func TestCircleRectOverlap_Properties(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		r := rectGen("rect").Draw(t, "rect")
		c := Point{
			X: float64(rapid.IntRange(-300, 300).Draw(t, "cx")),
			Y: float64(rapid.IntRange(-300, 300).Draw(t, "cy")),
		}
		radius := float64(rapid.IntRange(1, 120).Draw(t, "radius"))

		// A circle that encloses the inscribed circle always reports overlap.
		if Distance(Center(r), c)+MinRadius(r) <= radius && !CircleRectOverlap(r, c, radius) {
			t.Fatalf("enclosing circle missed %v", r)
		}
		// A circle whose bounding square misses never reports overlap.
		sq := Rect{X: int(c.X - radius), Y: int(c.Y - radius), W: int(2 * radius), H: int(2 * radius)}
		if !sq.Overlaps(r) && CircleRectOverlap(r, c, radius) {
			t.Fatalf("disjoint bounding square reported overlap with %v", r)
		}
	})
}

func union(a, b Rect) Rect {
	x0, y0 := min(a.Left(), b.Left()), min(a.Top(), b.Top())
	x1, y1 := max(a.Right(), b.Right()), max(a.Bottom(), b.Bottom())
	return Rect{X: x0, Y: y0, W: x1 - x0, H: y1 - y0}
}
