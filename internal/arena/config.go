// Package arena runs battles: bot bodies executing timed actions, bullets in
// flight, and the world that steps them one tick at a time.
package arena

import (
	"time"

	"github.com/EaterOA/AICombat/internal/bot"
	"github.com/EaterOA/AICombat/internal/geom"
)

// Config holds the physical constants of a battle.
type Config struct {
	Width, Height int

	BotSize    geom.Size
	BulletSize geom.Size
	Costs      bot.Costs

	BotHP   int
	BotAmmo int

	BulletSpeed  float64 // pixels per second
	BulletDamage int

	SightRadius float64

	// Tick is the step used by harnesses and frontends. World.Update accepts
	// any elapsed time.
	Tick time.Duration
}

// DefaultConfig is the classic 400×400 battle.
func DefaultConfig() Config {
	return Config{
		Width:        400,
		Height:       400,
		BotSize:      geom.Size{W: 20, H: 20},
		BulletSize:   geom.Size{W: 5, H: 5},
		Costs:        bot.DefaultCosts(),
		BotHP:        100,
		BotAmmo:      10,
		BulletSpeed:  200,
		BulletDamage: 15,
		SightRadius:  100,
		Tick:         20 * time.Millisecond,
	}
}

// Bounds is the arena rectangle anchored at the origin.
func (c Config) Bounds() geom.Rect {
	return geom.Rect{W: c.Width, H: c.Height}
}

// boundaryWalls are one-pixel walls hugging the outside of the arena.
func boundaryWalls(w, h int) []geom.Rect {
	return []geom.Rect{
		{X: -1, Y: -1, W: w + 1, H: 1},
		{X: -1, Y: 0, W: 1, H: h + 1},
		{X: 0, Y: h, W: w + 1, H: 1},
		{X: w, Y: -1, W: 1, H: h + 1},
	}
}
