package mind

import (
	"math"
	"math/rand"

	"github.com/EaterOA/AICombat/internal/bot"
	"github.com/EaterOA/AICombat/internal/geom"
)

// maxWanderTries bounds how many random points are tried per call when
// looking for somewhere to wander to.
const maxWanderTries = 32

// Pursuer wanders until it sees another bot, then chases and shoots it until
// the target dies or drops out of sight.
type Pursuer struct {
	*Navigator
	rng *rand.Rand

	target    bot.ID
	hasTarget bool

	// Both counters tick down once per query; they act when <= 0.
	shootCounter  int
	searchCounter int
}

func NewPursuer(l bot.Layout, rng *rand.Rand) *Pursuer {
	p := &Pursuer{Navigator: NewNavigator(l), rng: rng}
	p.Delegate = p.delegate
	return p
}

// Target returns the ID being chased, if any.
func (p *Pursuer) Target() (bot.ID, bool) {
	return p.target, p.hasTarget
}

func (p *Pursuer) delegate(st bot.Status) bot.Action {
	p.shootCounter--
	p.searchCounter--

	if len(st.Visible) == 0 {
		p.wander()
		return bot.ContinueAction()
	}

	t, ok := bot.Info{}, false
	if p.hasTarget {
		t, ok = st.Find(p.target)
	}
	if !ok {
		t = p.switchTarget(st.Visible)
	}

	if p.shootCounter <= 0 && st.Ammo > 0 && p.canHit(st.Info, t.Body) {
		p.shootCounter = 5 + p.rng.Intn(11)
		// The shot interrupts whatever path was in flight.
		p.searchCounter = 0
		return bot.ShootAction()
	}

	if p.searchCounter <= 0 {
		p.searchCounter = 3 + p.rng.Intn(5)
		_ = p.SetDestination(t.Pos())
	}
	return bot.ContinueAction()
}

// switchTarget picks a new target at random and resets both cooldowns.
func (p *Pursuer) switchTarget(visible []bot.Info) bot.Info {
	p.shootCounter = 0
	p.searchCounter = 0
	t := visible[p.rng.Intn(len(visible))]
	p.target = t.ID
	p.hasTarget = true
	return t
}

func (p *Pursuer) wander() {
	b := p.layout.Bounds
	for i := 0; i < maxWanderTries; i++ {
		if _, ok := p.Destination(); ok {
			return
		}
		dest := geom.Pos{X: b.X + p.rng.Intn(b.W), Y: b.Y + p.rng.Intn(b.H)}
		_ = p.SetDestination(dest)
	}
}

// canHit reports whether a bullet fired now would reach body before any wall.
func (p *Pursuer) canHit(self bot.Info, body geom.Rect) bool {
	bullet := self.Body.ScaleAround(p.layout.BulletSize.W, p.layout.BulletSize.H)
	dx, dy := self.Heading.Delta()
	vx, vy := float64(dx), float64(dy)

	toBody := geom.PredictCollision(bullet, []geom.Rect{body}, vx, vy)
	if math.IsInf(toBody, 1) {
		return false
	}
	toWall := geom.PredictCollision(bullet, p.layout.Walls, vx, vy)
	return toWall >= toBody
}
