package arena

import (
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/EaterOA/AICombat/internal/bot"
	"github.com/EaterOA/AICombat/internal/geom"
	"github.com/EaterOA/AICombat/internal/mind"
)

// World owns every bot, wall and bullet of one battle.
type World struct {
	cfg   Config
	id    uuid.UUID
	walls []geom.Rect

	// walls plus the arena boundary
	blockers []geom.Rect

	bots    []*Bot
	bullets []*Bullet
	labels  map[bot.ID]string

	nextID  bot.ID
	tick    int
	elapsed time.Duration

	log    *SimLog
	logger *slog.Logger
}

// WorldOption configures a World at construction.
type WorldOption func(*World)

// WithLogger sends diagnostics to l. The default discards them.
func WithLogger(l *slog.Logger) WorldOption {
	return func(w *World) { w.logger = l }
}

// WithSimLog records battle events into sl.
func WithSimLog(sl *SimLog) WorldOption {
	return func(w *World) { w.log = sl }
}

// WithBattleID overrides the random battle id.
func WithBattleID(id uuid.UUID) WorldOption {
	return func(w *World) { w.id = id }
}

func NewWorld(cfg Config, walls []geom.Rect, opts ...WorldOption) *World {
	w := &World{
		cfg:    cfg,
		id:     uuid.New(),
		walls:  append([]geom.Rect(nil), walls...),
		labels: map[bot.ID]string{},
		log:    NewSimLog(false),
	}
	w.blockers = append(append([]geom.Rect(nil), walls...), boundaryWalls(cfg.Width, cfg.Height)...)
	for _, o := range opts {
		o(w)
	}
	if w.logger == nil {
		w.logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	w.logger = w.logger.With("battle", w.id.String())
	w.logger.Debug("world created", "width", cfg.Width, "height", cfg.Height, "walls", len(walls))
	return w
}

func (w *World) ID() uuid.UUID { return w.id }
func (w *World) Config() Config { return w.cfg }
func (w *World) Walls() []geom.Rect { return w.walls }
func (w *World) Bots() []*Bot { return w.bots }
func (w *World) Bullets() []*Bullet { return w.bullets }
func (w *World) Tick() int { return w.tick }
func (w *World) SimLog() *SimLog { return w.log }
func (w *World) Logger() *slog.Logger { return w.logger }

// Elapsed is the total simulated time.
func (w *World) Elapsed() time.Duration { return w.elapsed }

// Layout is the static description handed to minds.
func (w *World) Layout() bot.Layout {
	return bot.Layout{
		Bounds:     w.cfg.Bounds(),
		Walls:      w.walls,
		BotSize:    w.cfg.BotSize,
		BulletSize: w.cfg.BulletSize,
		Costs:      w.cfg.Costs,
	}
}

// AddBot places a new idle bot with its top-left corner at (x,y).
func (w *World) AddBot(x, y int, heading geom.Direction, src mind.Source) *Bot {
	w.nextID++
	b := &Bot{
		id:      w.nextID,
		label:   fmt.Sprintf("B%d", w.nextID),
		body:    geom.Rect{X: x, Y: y, W: w.cfg.BotSize.W, H: w.cfg.BotSize.H},
		heading: heading,
		hp:      w.cfg.BotHP,
		ammo:    w.cfg.BotAmmo,
		src:     src,
		state:   idle{},
	}
	if src == nil {
		b.src = mind.Passive
	}
	w.bots = append(w.bots, b)
	w.labels[b.id] = b.label
	w.log.Add(w.tick, b.label, CatSpawn, "bot", fmt.Sprintf("(%d,%d) facing %s", x, y, heading), 0)
	w.logger.Debug("bot added", "bot", b.label, "x", x, "y", y)
	return b
}

// Spawn adds a bullet. Bullets spawned during a tick move in that same tick.
func (w *World) Spawn(b *Bullet) {
	w.bullets = append(w.bullets, b)
}

// Bot finds a live bot by id.
func (w *World) Bot(id bot.ID) (*Bot, bool) {
	for _, b := range w.bots {
		if b.id == id {
			return b, true
		}
	}
	return nil, false
}

// Alive is the number of bots still standing.
func (w *World) Alive() int {
	n := 0
	for _, b := range w.bots {
		if !b.Dead() {
			n++
		}
	}
	return n
}

// Winner returns the last bot standing, if exactly one is left.
func (w *World) Winner() (*Bot, bool) {
	if len(w.bots) != 1 {
		return nil, false
	}
	return w.bots[0], true
}

// Visible lists the other live bots inside b's sight circle.
func (w *World) Visible(b *Bot) []bot.Info {
	eye := geom.Center(b.body)
	var out []bot.Info
	for _, o := range w.bots {
		if o == b || o.Dead() {
			continue
		}
		if geom.CircleRectOverlap(o.body, eye, w.cfg.SightRadius) {
			out = append(out, o.Info())
		}
	}
	return out
}

// Update advances the battle: bots first, then bullets, each in insertion
// order. Dead entities are removed only after the whole pass.
func (w *World) Update(elapsed time.Duration) {
	w.tick++
	w.elapsed += elapsed

	for _, b := range w.bots {
		b.Update(w, elapsed)
	}
	for i := 0; i < len(w.bullets); i++ {
		w.bullets[i].Update(w, elapsed)
	}

	w.prune()
}

func (w *World) prune() {
	bots := w.bots[:0]
	for _, b := range w.bots {
		if b.Dead() {
			w.log.Add(w.tick, b.label, CatCombat, "death", fmt.Sprintf("hp=%d", b.hp), float64(b.hp))
			w.logger.Info("bot destroyed", "bot", b.label, "tick", w.tick)
			continue
		}
		bots = append(bots, b)
	}
	clear(w.bots[len(bots):])
	w.bots = bots

	bullets := w.bullets[:0]
	for _, b := range w.bullets {
		if !b.Dead() {
			bullets = append(bullets, b)
		}
	}
	clear(w.bullets[len(bullets):])
	w.bullets = bullets
}

func (w *World) labelOf(id bot.ID) string {
	if l, ok := w.labels[id]; ok {
		return l
	}
	return "--"
}
