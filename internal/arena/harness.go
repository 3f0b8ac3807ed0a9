package arena

import (
	"fmt"
	"log/slog"
	"math/rand"
	"time"

	"github.com/google/uuid"

	"github.com/EaterOA/AICombat/internal/bot"
	"github.com/EaterOA/AICombat/internal/geom"
	"github.com/EaterOA/AICombat/internal/mind"
)

// SourceFactory builds a mind once the arena layout is known.
type SourceFactory func(l bot.Layout, rng *rand.Rand) mind.Source

// Sim is a headless battle with deterministic seeding and structured
// logging. It is what tests and the headless report drive; the window
// frontend steps a World directly.
type Sim struct {
	Config Config
	World  *World
	SimLog *SimLog

	walls  []geom.Rect
	roster []entrant
	rng    *rand.Rand
	logger *slog.Logger
	id     uuid.UUID
}

type entrant struct {
	x, y    int
	heading geom.Direction
	build   SourceFactory
}

// simOptionKind controls the pass in which an option is applied.
type simOptionKind int

const (
	simOptInfra simOptionKind = iota // arena, walls, seed, verbose: applied first
	simOptBot                        // roster: applied once the world exists
)

// SimOption is a builder function applied to a Sim during construction.
type SimOption struct {
	kind simOptionKind
	fn   func(*Sim)
}

// WithConfig replaces the whole physical configuration.
func WithConfig(cfg Config) SimOption {
	return SimOption{simOptInfra, func(s *Sim) {
		s.Config = cfg
	}}
}

// WithArenaSize sets the arena dimensions.
func WithArenaSize(w, h int) SimOption {
	return SimOption{simOptInfra, func(s *Sim) {
		s.Config.Width = w
		s.Config.Height = h
	}}
}

// WithWall adds an obstacle.
func WithWall(x, y, w, h int) SimOption {
	return SimOption{simOptInfra, func(s *Sim) {
		s.walls = append(s.walls, geom.Rect{X: x, Y: y, W: w, H: h})
	}}
}

// WithSeed sets the RNG seed for deterministic runs.
func WithSeed(seed int64) SimOption {
	return SimOption{simOptInfra, func(s *Sim) {
		s.rng = rand.New(rand.NewSource(seed)) // #nosec G404 -- simulation, not crypto
	}}
}

// WithTick sets the step used by RunTicks.
func WithTick(d time.Duration) SimOption {
	return SimOption{simOptInfra, func(s *Sim) {
		s.Config.Tick = d
	}}
}

// WithVerbose enables per-tick movement logging.
func WithVerbose(v bool) SimOption {
	return SimOption{simOptInfra, func(s *Sim) {
		s.SimLog = NewSimLog(v)
	}}
}

// WithSimLogger sends world diagnostics to l.
func WithSimLogger(l *slog.Logger) SimOption {
	return SimOption{simOptInfra, func(s *Sim) {
		s.logger = l
	}}
}

// WithSimID fixes the battle id.
func WithSimID(id uuid.UUID) SimOption {
	return SimOption{simOptInfra, func(s *Sim) {
		s.id = id
	}}
}

// WithSource adds a bot whose mind is built by factory. A nil factory
// gives a bot that never acts.
func WithSource(x, y int, heading geom.Direction, factory SourceFactory) SimOption {
	return SimOption{simOptBot, func(s *Sim) {
		s.roster = append(s.roster, entrant{x: x, y: y, heading: heading, build: factory})
	}}
}

// WithRandomBot adds a bot that does random things.
func WithRandomBot(x, y int, heading geom.Direction) SimOption {
	return WithSource(x, y, heading, func(_ bot.Layout, rng *rand.Rand) mind.Source {
		return mind.NewRandom(rng)
	})
}

// WithPursuer adds a bot that hunts the others.
func WithPursuer(x, y int, heading geom.Direction) SimOption {
	return WithSource(x, y, heading, func(l bot.Layout, rng *rand.Rand) mind.Source {
		return mind.NewPursuer(l, rng)
	})
}

// WithNavigator adds a bot patrolling checkpoints.
func WithNavigator(x, y int, heading geom.Direction, checkpoints ...geom.Pos) SimOption {
	return WithSource(x, y, heading, func(l bot.Layout, _ *rand.Rand) mind.Source {
		return mind.NewPatrol(l, checkpoints)
	})
}

// WithPlayer adds a bot steered by in, walking step pixels per key press.
func WithPlayer(x, y int, heading geom.Direction, in mind.Input, step int) SimOption {
	return WithSource(x, y, heading, func(bot.Layout, *rand.Rand) mind.Source {
		return mind.NewPlayerSource(in, step)
	})
}

// NewSim constructs a Sim from the given options in two ordered passes:
//  1. Infrastructure (arena, walls, seed, verbose)
//  2. Bots, in the order given
func NewSim(opts ...SimOption) *Sim {
	s := &Sim{
		Config: DefaultConfig(),
		SimLog: NewSimLog(false),
		rng:    rand.New(rand.NewSource(1)), // #nosec G404 -- simulation default
		id:     uuid.Nil,
	}
	for _, o := range opts {
		if o.kind == simOptInfra {
			o.fn(s)
		}
	}
	for _, o := range opts {
		if o.kind == simOptBot {
			o.fn(s)
		}
	}

	wopts := []WorldOption{WithSimLog(s.SimLog)}
	if s.logger != nil {
		wopts = append(wopts, WithLogger(s.logger))
	}
	if s.id != uuid.Nil {
		wopts = append(wopts, WithBattleID(s.id))
	}
	s.World = NewWorld(s.Config, s.walls, wopts...)

	l := s.World.Layout()
	for _, e := range s.roster {
		var src mind.Source
		if e.build != nil {
			src = e.build(l, s.rng)
		}
		s.World.AddBot(e.x, e.y, e.heading, src)
	}
	return s
}

// RunTicks advances the battle n ticks of Config.Tick each.
func (s *Sim) RunTicks(n int) {
	for i := 0; i < n; i++ {
		s.World.Update(s.Config.Tick)
	}
}

// RunUntil advances up to maxTicks, stopping early once predicate holds.
// Returns the tick at which the predicate was satisfied, or -1.
func (s *Sim) RunUntil(predicate func(*Sim) bool, maxTicks int) int {
	for i := 0; i < maxTicks; i++ {
		s.World.Update(s.Config.Tick)
		if predicate(s) {
			return s.World.Tick()
		}
	}
	return -1
}

// Over reports whether at most one bot is left.
func (s *Sim) Over() bool {
	return len(s.World.Bots()) <= 1
}

// Snapshot is a compact view of one bot for assertions and reports.
type Snapshot struct {
	Label   string
	State   bot.State
	Body    geom.Rect
	Heading geom.Direction
	HP      int
	Ammo    int
}

func (sn Snapshot) String() string {
	return fmt.Sprintf("%s %s (%d,%d) %s hp=%d ammo=%d",
		sn.Label, sn.State, sn.Body.X, sn.Body.Y, sn.Heading, sn.HP, sn.Ammo)
}

// Snapshot captures every live bot.
func (s *Sim) Snapshot() []Snapshot {
	out := make([]Snapshot, 0, len(s.World.Bots()))
	for _, b := range s.World.Bots() {
		out = append(out, Snapshot{
			Label:   b.label,
			State:   b.State(),
			Body:    b.body,
			Heading: b.heading,
			HP:      b.hp,
			Ammo:    b.ammo,
		})
	}
	return out
}

// Summary is the SimLog summary at the current tick.
func (s *Sim) Summary() string {
	return s.SimLog.Summary(s.World.Tick(), s.World.Bots())
}
