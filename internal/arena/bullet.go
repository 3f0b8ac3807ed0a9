package arena

import (
	"math"
	"time"

	"github.com/EaterOA/AICombat/internal/bot"
	"github.com/EaterOA/AICombat/internal/geom"
)

// Bullet flies straight along its heading until it hits a bot other than its
// owner or has covered the distance to the nearest wall.
type Bullet struct {
	owner   bot.ID
	body    geom.Rect
	heading geom.Direction
	speed   float64 // pixels per second
	damage  int

	travel int // pixels left before the wall
	carry  float64
	spent  bool
}

// newBullet centres a bullet on the shooter, facing the shooter's heading.
func newBullet(w *World, from *Bot) *Bullet {
	size := w.cfg.BulletSize
	body := from.body.ScaleAround(size.W, size.H)
	dx, dy := from.heading.Delta()
	gap := geom.PredictCollision(body, w.blockers, float64(dx), float64(dy))
	travel := math.MaxInt
	if !math.IsInf(gap, 1) {
		travel = int(gap)
	}
	return &Bullet{
		owner:   from.id,
		body:    body,
		heading: from.heading,
		speed:   w.cfg.BulletSpeed,
		damage:  w.cfg.BulletDamage,
		travel:  travel,
	}
}

func (b *Bullet) Owner() bot.ID { return b.owner }
func (b *Bullet) Body() geom.Rect { return b.body }
func (b *Bullet) Heading() geom.Direction { return b.heading }

// Dead reports whether the bullet has hit something or run out of travel.
func (b *Bullet) Dead() bool { return b.spent }

func (b *Bullet) Update(w *World, elapsed time.Duration) {
	if b.spent {
		return
	}
	dist := b.carry + b.speed*elapsed.Seconds()
	// Absorb float noise so 200px/s over 20ms is exactly 4px.
	step := int(dist + 1e-9)
	b.carry = max(0, dist-float64(step))
	step = min(step, b.travel)

	dx, dy := b.heading.Delta()
	b.body = b.body.Translate(step*dx, step*dy)
	b.travel -= step

	for _, target := range w.bots {
		if target.id == b.owner || target.Dead() || !b.body.Overlaps(target.body) {
			continue
		}
		target.Hit(b.damage)
		b.spent = true
		w.log.Add(w.tick, target.label, CatCombat, "hit", w.labelOf(b.owner), float64(target.hp))
		return
	}
	if b.travel == 0 {
		b.spent = true
	}
}
