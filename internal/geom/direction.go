package geom

// Direction is one of the four cardinal headings. The order is
// counter-clockwise on screen, so +1 is a left turn and -1 a right turn.
type Direction int

const (
	Right Direction = iota
	Up
	Left
	Down
)

// Directions lists all headings in cyclic order.
var Directions = [4]Direction{Right, Up, Left, Down}

var (
	dx = [4]int{1, 0, -1, 0}
	dy = [4]int{0, -1, 0, 1}
)

// Valid reports whether d is one of the four headings.
func (d Direction) Valid() bool {
	return d >= Right && d <= Down
}

// Delta returns the unit step for d.
func (d Direction) Delta() (int, int) {
	i := d.norm()
	return dx[i], dy[i]
}

// Steps returns how many left (counter-clockwise) quarter turns take d to
// to, in 0..3.
func (d Direction) Steps(to Direction) int {
	return int((to - d + 4) % 4)
}

// Rotate returns the heading after one quarter turn.
func (d Direction) Rotate(t Turn) Direction {
	switch t {
	case TurnLeft:
		return (d + 1).norm()
	case TurnRight:
		return (d + 3).norm()
	}
	return d
}

// Degrees is the counter-clockwise screen angle of d (Right = 0).
func (d Direction) Degrees() float64 {
	return float64(d.norm()) * 90
}

func (d Direction) norm() Direction {
	return ((d % 4) + 4) % 4
}

func (d Direction) String() string {
	switch d {
	case Right:
		return "right"
	case Up:
		return "up"
	case Left:
		return "left"
	case Down:
		return "down"
	default:
		return "unknown"
	}
}

// DirectionBetween returns the heading that leads from a to b along a single
// axis. ok is false when the points coincide or differ on both axes.
func DirectionBetween(a, b Pos) (Direction, bool) {
	ddx := b.X - a.X
	ddy := b.Y - a.Y
	switch {
	case ddy == 0 && ddx > 0:
		return Right, true
	case ddy == 0 && ddx < 0:
		return Left, true
	case ddx == 0 && ddy > 0:
		return Down, true
	case ddx == 0 && ddy < 0:
		return Up, true
	}
	return Right, false
}

// Turn is a quarter rotation requested by a decision source.
type Turn int

const (
	TurnNone Turn = iota
	TurnLeft
	TurnRight
)

func (t Turn) String() string {
	switch t {
	case TurnLeft:
		return "left"
	case TurnRight:
		return "right"
	default:
		return "none"
	}
}
