package bot

import (
	"time"

	"github.com/EaterOA/AICombat/internal/geom"
)

// Costs are the simulated durations of the timed primitives.
type Costs struct {
	Walk  time.Duration // per pixel
	Turn  time.Duration // per quarter turn
	Shoot time.Duration // recoil
}

// DefaultCosts are the classic AICombat durations.
func DefaultCosts() Costs {
	return Costs{
		Walk:  5 * time.Millisecond,
		Turn:  100 * time.Millisecond,
		Shoot: 100 * time.Millisecond,
	}
}

// Layout describes the static arena a decision source is placed in.
type Layout struct {
	Bounds     geom.Rect
	Walls      []geom.Rect
	BotSize    geom.Size
	BulletSize geom.Size
	Costs      Costs
}

// InBounds reports whether p lies inside the arena.
func (l Layout) InBounds(p geom.Pos) bool {
	return l.Bounds.Contains(p.X, p.Y)
}
