package arena

import (
	"fmt"
	"math"
	"time"

	"github.com/EaterOA/AICombat/internal/bot"
	"github.com/EaterOA/AICombat/internal/geom"
	"github.com/EaterOA/AICombat/internal/mind"
)

// state is the action a body is carrying out. Exactly one is active.
type state interface {
	tag() bot.State
}

type idle struct{}

type turning struct {
	target   geom.Direction
	cooldown time.Duration
}

type walking struct {
	remaining int // requested pixels still to cover
	limit     int // pixels until the nearest wall
	carry     time.Duration
}

type recoiling struct {
	cooldown time.Duration
}

func (idle) tag() bot.State { return bot.Idle }
func (turning) tag() bot.State { return bot.Turning }
func (walking) tag() bot.State { return bot.Walking }
func (recoiling) tag() bot.State { return bot.Recoiling }

// Bot is the physical body of a combatant. Its mind is asked for a new action
// only when the body is idle.
type Bot struct {
	id      bot.ID
	label   string
	body    geom.Rect
	heading geom.Direction
	hp      int
	ammo    int

	src   mind.Source
	state state

	// time accumulated since the mind was last asked
	elapsed time.Duration
}

func (b *Bot) ID() bot.ID { return b.id }
func (b *Bot) Label() string { return b.label }
func (b *Bot) Body() geom.Rect { return b.body }
func (b *Bot) Heading() geom.Direction { return b.heading }
func (b *Bot) HP() int { return b.hp }
func (b *Bot) Ammo() int { return b.ammo }
func (b *Bot) State() bot.State { return b.state.tag() }
func (b *Bot) Source() mind.Source { return b.src }

// Dead reports whether the bot has run out of hit points.
func (b *Bot) Dead() bool { return b.hp <= 0 }

// Hit applies damage.
func (b *Bot) Hit(dmg int) { b.hp -= dmg }

// Info is the public view of the bot that other minds may see.
func (b *Bot) Info() bot.Info {
	return bot.Info{
		ID:      b.id,
		State:   b.state.tag(),
		Body:    b.body,
		Heading: b.heading,
		HP:      b.hp,
		Ammo:    b.ammo,
	}
}

// Angle is the heading in degrees for drawing, counter-clockwise from
// facing right. Mid-turn it is interpolated along the shorter rotation.
func (b *Bot) Angle(c bot.Costs) float64 {
	t, ok := b.state.(turning)
	if !ok || c.Turn <= 0 {
		return b.heading.Degrees()
	}
	progress := 1 - float64(t.cooldown)/float64(c.Turn)
	delta := float64(t.target-b.heading) * 90
	if math.Abs(delta) == 270 {
		delta = -delta / 3
	}
	return b.heading.Degrees() + delta*progress
}

// Update advances the current action by elapsed and, once the body is idle,
// asks the mind what to do next.
func (b *Bot) Update(w *World, elapsed time.Duration) {
	b.elapsed += elapsed
	if !b.advance(w, elapsed) {
		return
	}

	st := bot.Status{
		Info:    b.Info(),
		Elapsed: b.elapsed,
		Visible: w.Visible(b),
	}
	b.elapsed = 0
	b.accept(w, b.src.Decide(st))
}

// advance progresses the current action and reports whether the body is idle
// afterwards.
func (b *Bot) advance(w *World, elapsed time.Duration) bool {
	c := w.cfg.Costs
	switch s := b.state.(type) {
	case turning:
		s.cooldown = max(0, s.cooldown-elapsed)
		if s.cooldown > 0 {
			b.state = s
			return false
		}
		b.heading = s.target
		b.setIdle(w, "turned")
		return true

	case recoiling:
		s.cooldown = max(0, s.cooldown-elapsed)
		if s.cooldown > 0 {
			b.state = s
			return false
		}
		b.setIdle(w, "recoiled")
		return true

	case walking:
		budget := s.remaining
		if c.Walk > 0 {
			s.carry += elapsed
			budget = int(s.carry / c.Walk)
			s.carry -= time.Duration(budget) * c.Walk
		}
		amt := min(budget, s.remaining, s.limit)
		dx, dy := b.heading.Delta()
		b.body = b.body.Translate(amt*dx, amt*dy)
		s.remaining -= amt
		s.limit -= amt
		w.log.AddVerbose(w.tick, b.label, CatNav, "step", fmt.Sprintf("(%d,%d)", b.body.X, b.body.Y), float64(amt))
		if s.remaining == 0 || s.limit == 0 {
			b.setIdle(w, "walked")
			return true
		}
		b.state = s
		return false
	}
	return true
}

func (b *Bot) setIdle(w *World, why string) {
	b.state = idle{}
	w.log.AddVerbose(w.tick, b.label, CatState, "idle", why, 0)
}

// accept starts the chosen action. Malformed actions become Wait.
func (b *Bot) accept(w *World, a bot.Action) {
	a = a.Normalize()
	c := w.cfg.Costs

	switch a.Kind {
	case bot.Continue:
		return

	case bot.Wait:
		b.state = idle{}

	case bot.Walk:
		dx, dy := b.heading.Delta()
		gap := geom.PredictCollision(b.body, w.blockers, float64(dx), float64(dy))
		limit := math.MaxInt
		if !math.IsInf(gap, 1) {
			limit = int(gap)
		}
		if limit == 0 {
			b.state = idle{}
			w.log.Add(w.tick, b.label, CatAction, "walk_blocked", b.heading.String(), float64(a.Distance))
			return
		}
		b.state = walking{remaining: a.Distance, limit: limit}
		w.log.Add(w.tick, b.label, CatAction, "walk", fmt.Sprintf("%d %s", a.Distance, b.heading), float64(a.Distance))

	case bot.Turn:
		target := b.heading.Rotate(a.Side)
		w.log.Add(w.tick, b.label, CatAction, "turn", fmt.Sprintf("%s -> %s", b.heading, target), 0)
		if c.Turn <= 0 {
			b.heading = target
			b.state = idle{}
			return
		}
		b.state = turning{target: target, cooldown: c.Turn}

	case bot.Shoot:
		if b.ammo <= 0 {
			b.state = idle{}
			w.log.Add(w.tick, b.label, CatAction, "dry_fire", "", 0)
			return
		}
		b.ammo--
		w.Spawn(newBullet(w, b))
		b.state = recoiling{cooldown: c.Shoot}
		w.log.Add(w.tick, b.label, CatAction, "shoot", b.heading.String(), float64(b.ammo))
	}
}
