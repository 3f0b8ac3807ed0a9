package arena

import (
	"bytes"
	"log/slog"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/EaterOA/AICombat/internal/bot"
	"github.com/EaterOA/AICombat/internal/geom"
)

func TestWorld_BulletHitsTarget(t *testing.T) {
	w := NewWorld(DefaultConfig(), nil)
	shooter := w.AddBot(0, 0, geom.Right, once(bot.ShootAction()))
	target := w.AddBot(100, 0, geom.Left, nil)

	// The bullet starts at x=8 and covers 4px per tick, reaching x=96 on tick 22.
	for i := 0; i < 21; i++ {
		w.Update(20 * time.Millisecond)
	}
	require.Equal(t, 100, target.HP())
	require.Len(t, w.Bullets(), 1)

	w.Update(20 * time.Millisecond)
	assert.Equal(t, 85, target.HP())
	assert.Empty(t, w.Bullets())
	assert.Equal(t, 9, shooter.Ammo())

	hit, ok := w.SimLog().LastOf(CatCombat, "hit")
	require.True(t, ok)
	assert.Equal(t, "B2", hit.Bot)
	assert.Equal(t, "B1", hit.Value)
	assert.Equal(t, 22, hit.Tick)
}

func TestWorld_BulletStopsAtWall(t *testing.T) {
	w := NewWorld(DefaultConfig(), []geom.Rect{{X: 50, Y: 0, W: 10, H: 40}})
	w.AddBot(0, 0, geom.Right, once(bot.ShootAction()))
	target := w.AddBot(100, 0, geom.Left, nil)

	for i := 0; i < 40; i++ {
		w.Update(20 * time.Millisecond)
	}
	assert.Empty(t, w.Bullets())
	assert.Equal(t, 100, target.HP())
	assert.False(t, w.SimLog().HasEntry(CatCombat, "hit", ""))
}

func TestWorld_DeadBotsArePruned(t *testing.T) {
	cfg := DefaultConfig()
	cfg.BotHP = 15
	w := NewWorld(cfg, nil)
	shooter := w.AddBot(0, 0, geom.Right, once(bot.ShootAction()))
	target := w.AddBot(100, 0, geom.Left, nil)

	for i := 0; i < 22; i++ {
		w.Update(20 * time.Millisecond)
	}
	assert.True(t, target.Dead())
	assert.Len(t, w.Bots(), 1)
	assert.Equal(t, 1, w.Alive())
	_, found := w.Bot(target.ID())
	assert.False(t, found)
	assert.True(t, w.SimLog().HasEntry(CatCombat, "death", ""))

	winner, ok := w.Winner()
	require.True(t, ok)
	assert.Same(t, shooter, winner)
}

func TestWorld_NoWinnerWhileContested(t *testing.T) {
	w := NewWorld(DefaultConfig(), nil)
	w.AddBot(0, 0, geom.Right, nil)
	w.AddBot(100, 100, geom.Right, nil)

	_, ok := w.Winner()
	assert.False(t, ok)
	assert.Equal(t, 2, w.Alive())
}

func TestWorld_VisibleWithinSight(t *testing.T) {
	w := NewWorld(DefaultConfig(), nil)
	eye := w.AddBot(0, 0, geom.Right, nil)
	near := w.AddBot(100, 0, geom.Right, nil)
	w.AddBot(150, 0, geom.Right, nil)

	seen := w.Visible(eye)
	require.Len(t, seen, 1)
	assert.Equal(t, near.ID(), seen[0].ID)
	assert.Equal(t, geom.Pos{X: 100, Y: 0}, seen[0].Pos())
}

func TestWorld_StatusCarriesVisibleBots(t *testing.T) {
	w := NewWorld(DefaultConfig(), nil)
	r := &recorder{}
	w.AddBot(0, 0, geom.Right, r)
	other := w.AddBot(40, 40, geom.Up, nil)

	w.Update(20 * time.Millisecond)
	require.Len(t, r.seen, 1)
	info, ok := r.seen[0].Find(other.ID())
	require.True(t, ok)
	assert.Equal(t, geom.Up, info.Heading)
}

func TestWorld_IdsAreSequential(t *testing.T) {
	w := NewWorld(DefaultConfig(), nil)
	a := w.AddBot(0, 0, geom.Right, nil)
	b := w.AddBot(50, 0, geom.Right, nil)
	assert.Equal(t, bot.ID(1), a.ID())
	assert.Equal(t, bot.ID(2), b.ID())
	assert.Equal(t, "B2", b.Label())
}

func TestWorld_ClockAndLogger(t *testing.T) {
	var buf bytes.Buffer
	id := uuid.MustParse("00000000-0000-0000-0000-00000000c0de")
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))

	cfg := DefaultConfig()
	cfg.BotHP = 15
	w := NewWorld(cfg, nil, WithLogger(logger), WithBattleID(id))
	w.AddBot(0, 0, geom.Right, once(bot.ShootAction()))
	w.AddBot(100, 0, geom.Left, nil)
	for i := 0; i < 30; i++ {
		w.Update(20 * time.Millisecond)
	}

	assert.Equal(t, 30, w.Tick())
	assert.Equal(t, 600*time.Millisecond, w.Elapsed())
	assert.Equal(t, id, w.ID())
	assert.Contains(t, buf.String(), "battle="+id.String())
	assert.Contains(t, buf.String(), "bot destroyed")
}

func TestWorld_LayoutMatchesConfig(t *testing.T) {
	walls := []geom.Rect{{X: 10, Y: 10, W: 5, H: 5}}
	w := NewWorld(DefaultConfig(), walls)
	l := w.Layout()
	assert.Equal(t, geom.Rect{W: 400, H: 400}, l.Bounds)
	assert.Equal(t, walls, l.Walls)
	assert.Equal(t, geom.Size{W: 20, H: 20}, l.BotSize)
	assert.Equal(t, bot.DefaultCosts(), l.Costs)
}
