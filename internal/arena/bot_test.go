package arena

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	"github.com/EaterOA/AICombat/internal/bot"
	"github.com/EaterOA/AICombat/internal/geom"
	"github.com/EaterOA/AICombat/internal/mind"
)

// once issues a single action and then nothing.
func once(a bot.Action) mind.Source {
	done := false
	return mind.Func(func(bot.Status) bot.Action {
		if done {
			return bot.ContinueAction()
		}
		done = true
		return a
	})
}

// recorder keeps every status it was shown.
type recorder struct {
	seen []bot.Status
	next []bot.Action
}

func (r *recorder) Decide(st bot.Status) bot.Action {
	r.seen = append(r.seen, st)
	if len(r.next) == 0 {
		return bot.ContinueAction()
	}
	a := r.next[0]
	r.next = r.next[1:]
	return a
}

func TestBot_WalkStopsAtCollisionLimit(t *testing.T) {
	w := NewWorld(DefaultConfig(), []geom.Rect{{X: 25, Y: 0, W: 10, H: 20}})
	b := w.AddBot(0, 0, geom.Right, once(bot.WalkAction(15)))

	w.Update(20 * time.Millisecond)
	if b.State() != bot.Walking {
		t.Fatalf("expected walking after accepting, got %s", b.State())
	}
	w.Update(20 * time.Millisecond)
	if b.Body().X != 4 {
		t.Fatalf("expected 4px after one walking tick, got %d", b.Body().X)
	}
	w.Update(20 * time.Millisecond)
	if b.Body().X != 5 {
		t.Fatalf("expected to halt at x=5, got %d", b.Body().X)
	}
	if b.State() != bot.Idle {
		t.Fatalf("expected idle at the wall, got %s", b.State())
	}

	w.Update(20 * time.Millisecond)
	assert.Equal(t, 5, b.Body().X, "no further movement")
}

func TestBot_WalkLimitInOneLongTick(t *testing.T) {
	w := NewWorld(DefaultConfig(), []geom.Rect{{X: 25, Y: 0, W: 10, H: 20}})
	b := w.AddBot(0, 0, geom.Right, once(bot.WalkAction(15)))

	w.Update(20 * time.Millisecond)
	w.Update(time.Second)
	assert.Equal(t, 5, b.Body().X)
	assert.Equal(t, bot.Idle, b.State())
}

func TestBot_WalkCoversRequestedDistance(t *testing.T) {
	w := NewWorld(DefaultConfig(), nil)
	b := w.AddBot(100, 100, geom.Down, once(bot.WalkAction(10)))

	w.Update(20 * time.Millisecond)
	for i := 0; i < 3; i++ {
		w.Update(20 * time.Millisecond)
	}
	assert.Equal(t, geom.Pos{X: 100, Y: 110}, b.Body().Pos())
	assert.Equal(t, bot.Idle, b.State())
}

func TestBot_WalkCarriesPartialPixels(t *testing.T) {
	w := NewWorld(DefaultConfig(), nil)
	b := w.AddBot(100, 100, geom.Left, once(bot.WalkAction(10)))

	w.Update(time.Millisecond)
	// 5ms per pixel: three 3ms ticks are worth one pixel plus change.
	for i := 0; i < 3; i++ {
		w.Update(3 * time.Millisecond)
	}
	assert.Equal(t, 99, b.Body().X)
	w.Update(time.Millisecond)
	assert.Equal(t, 98, b.Body().X)
}

func TestBot_WalkIntoBoundaryIsRefused(t *testing.T) {
	w := NewWorld(DefaultConfig(), nil)
	b := w.AddBot(380, 0, geom.Right, once(bot.WalkAction(10)))

	w.Update(20 * time.Millisecond)
	assert.Equal(t, bot.Idle, b.State())
	assert.True(t, w.SimLog().HasEntry(CatAction, "walk_blocked", ""))

	w.Update(20 * time.Millisecond)
	assert.Equal(t, 380, b.Body().X)
}

func TestBot_TurnSnapsToTarget(t *testing.T) {
	w := NewWorld(DefaultConfig(), nil)
	b := w.AddBot(50, 50, geom.Right, once(bot.LeftAction()))
	costs := w.Config().Costs

	w.Update(20 * time.Millisecond)
	for i := 0; i < 4; i++ {
		w.Update(20 * time.Millisecond)
	}
	if b.State() != bot.Turning {
		t.Fatalf("expected to still be turning, got %s", b.State())
	}
	assert.InDelta(t, 72, b.Angle(costs), 1e-9)

	w.Update(20 * time.Millisecond)
	if b.Heading() != geom.Up || b.State() != bot.Idle {
		t.Fatalf("expected idle facing up, got %s facing %s", b.State(), b.Heading())
	}
	assert.Equal(t, 90.0, b.Angle(costs))
}

func TestBot_TurnTakesShorterWay(t *testing.T) {
	w := NewWorld(DefaultConfig(), nil)
	b := w.AddBot(50, 50, geom.Right, once(bot.RightAction()))
	costs := w.Config().Costs

	w.Update(20 * time.Millisecond)
	w.Update(50 * time.Millisecond)
	assert.InDelta(t, -45, b.Angle(costs), 1e-9)

	w.Update(50 * time.Millisecond)
	assert.Equal(t, geom.Down, b.Heading())
}

func TestBot_TurnCompletesForAnyTickSizes(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		w := NewWorld(DefaultConfig(), nil)
		side := rapid.SampledFrom([]bot.Action{bot.LeftAction(), bot.RightAction()}).Draw(t, "side")
		start := geom.Directions[rapid.IntRange(0, 3).Draw(t, "start")]
		b := w.AddBot(50, 50, start, once(side))
		want := start.Rotate(side.Side)

		w.Update(time.Millisecond)
		var total time.Duration
		for total < w.Config().Costs.Turn {
			d := time.Duration(rapid.IntRange(1, 60).Draw(t, "ms")) * time.Millisecond
			if b.State() != bot.Turning {
				t.Fatalf("turn ended early after %s", total)
			}
			w.Update(d)
			total += d
		}
		if b.Heading() != want || b.State() != bot.Idle {
			t.Fatalf("after %s: %s facing %s, want idle facing %s", total, b.State(), b.Heading(), want)
		}
		if b.Angle(w.Config().Costs) != want.Degrees() {
			t.Fatalf("angle %v not snapped to %v", b.Angle(w.Config().Costs), want.Degrees())
		}
	})
}

func TestBot_ShootSpawnsCenteredBulletAndRecoils(t *testing.T) {
	w := NewWorld(DefaultConfig(), nil)
	b := w.AddBot(0, 0, geom.Right, once(bot.ShootAction()))

	w.Update(20 * time.Millisecond)
	require.Len(t, w.Bullets(), 1)
	bl := w.Bullets()[0]
	assert.Equal(t, geom.Rect{X: 12, Y: 8, W: 5, H: 5}, bl.Body(), "spawned at (8,8), moved 4px this tick")
	assert.Equal(t, b.ID(), bl.Owner())
	assert.Equal(t, 9, b.Ammo())
	assert.Equal(t, bot.Recoiling, b.State())

	for i := 0; i < 5; i++ {
		w.Update(20 * time.Millisecond)
	}
	assert.Equal(t, bot.Idle, b.State())
}

func TestBot_EmptyMagazineWaits(t *testing.T) {
	cfg := DefaultConfig()
	cfg.BotAmmo = 0
	w := NewWorld(cfg, nil)
	b := w.AddBot(0, 0, geom.Right, once(bot.ShootAction()))

	w.Update(20 * time.Millisecond)
	assert.Empty(t, w.Bullets())
	assert.Equal(t, bot.Idle, b.State())
	assert.True(t, w.SimLog().HasEntry(CatAction, "dry_fire", ""))
}

func TestBot_MalformedActionIsIgnored(t *testing.T) {
	w := NewWorld(DefaultConfig(), nil)
	b := w.AddBot(10, 10, geom.Right, once(bot.Action{Kind: bot.Walk, Distance: -4}))

	w.Update(20 * time.Millisecond)
	w.Update(20 * time.Millisecond)
	assert.Equal(t, geom.Pos{X: 10, Y: 10}, b.Body().Pos())
	assert.Equal(t, bot.Idle, b.State())
}

func TestBot_MindOnlyAskedWhenIdle(t *testing.T) {
	w := NewWorld(DefaultConfig(), nil)
	r := &recorder{next: []bot.Action{bot.WalkAction(8)}}
	w.AddBot(100, 100, geom.Right, r)

	for i := 0; i < 3; i++ {
		w.Update(20 * time.Millisecond)
	}
	// accept, walk 4, walk 4 then idle and asked again
	require.Len(t, r.seen, 2)
	for _, st := range r.seen {
		assert.Equal(t, bot.Idle, st.State)
	}
	assert.Equal(t, 40*time.Millisecond, r.seen[1].Elapsed)
	assert.Equal(t, geom.Pos{X: 108, Y: 100}, r.seen[1].Pos())
}
