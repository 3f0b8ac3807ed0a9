package arena

import (
	"os"
	"strings"
	"time"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"github.com/EaterOA/AICombat/internal/geom"
	"github.com/EaterOA/AICombat/internal/mind"
)

// Bot kinds understood in scenario files.
const (
	KindRandom  = "random"
	KindPursuer = "pursuer"
	KindPatrol  = "patrol"
	KindPlayer  = "player"
	KindPassive = "passive"
)

// Scenario is an arena layout plus roster, as stored in YAML.
//
//	name: classic
//	arena: {width: 400, height: 400}
//	tick: 20ms
//	walls:
//	  - {x: 100, y: 100, w: 100, h: 10}
//	bots:
//	  - {kind: pursuer, x: 300, y: 300, heading: left}
type Scenario struct {
	Name  string          `yaml:"name"`
	Arena ScenarioArena   `yaml:"arena"`
	Tick  string          `yaml:"tick,omitempty"`
	Walls []ScenarioRect  `yaml:"walls"`
	Bots  []ScenarioEntry `yaml:"bots"`
}

type ScenarioArena struct {
	Width  int `yaml:"width"`
	Height int `yaml:"height"`
}

type ScenarioRect struct {
	X int `yaml:"x"`
	Y int `yaml:"y"`
	W int `yaml:"w"`
	H int `yaml:"h"`
}

type ScenarioEntry struct {
	Kind        string   `yaml:"kind"`
	X           int      `yaml:"x"`
	Y           int      `yaml:"y"`
	Heading     string   `yaml:"heading,omitempty"`
	Checkpoints [][2]int `yaml:"checkpoints,omitempty"`
	Step        int      `yaml:"step,omitempty"`
}

// LoadScenario reads and validates a scenario file.
func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "could not read scenario (%s)", path)
	}
	sc, err := ParseScenario(data)
	if err != nil {
		return nil, errors.Wrapf(err, "invalid scenario (%s)", path)
	}
	return sc, nil
}

// ParseScenario decodes YAML and validates it.
func ParseScenario(data []byte) (*Scenario, error) {
	var sc Scenario
	if err := yaml.Unmarshal(data, &sc); err != nil {
		return nil, errors.Wrap(err, "could not decode yaml")
	}
	if err := sc.Validate(); err != nil {
		return nil, err
	}
	return &sc, nil
}

// Marshal encodes the scenario as YAML.
func (sc *Scenario) Marshal() ([]byte, error) {
	out, err := yaml.Marshal(sc)
	return out, errors.Wrap(err, "could not encode scenario")
}

// Validate checks sizes, tick and roster.
func (sc *Scenario) Validate() error {
	if sc.Arena.Width <= 0 || sc.Arena.Height <= 0 {
		return errors.Errorf("arena size %dx%d must be positive", sc.Arena.Width, sc.Arena.Height)
	}
	if sc.Tick != "" {
		d, err := time.ParseDuration(sc.Tick)
		if err != nil {
			return errors.Wrapf(err, "bad tick %q", sc.Tick)
		}
		if d <= 0 {
			return errors.Errorf("tick %s must be positive", d)
		}
	}
	for i, w := range sc.Walls {
		if w.W <= 0 || w.H <= 0 {
			return errors.Errorf("wall %d has empty size %dx%d", i, w.W, w.H)
		}
	}
	bounds := geom.Rect{W: sc.Arena.Width, H: sc.Arena.Height}
	for i, e := range sc.Bots {
		switch e.Kind {
		case KindRandom, KindPursuer, KindPatrol, KindPlayer, KindPassive:
		default:
			return errors.Errorf("bot %d: unknown kind %q", i, e.Kind)
		}
		if _, err := parseHeading(e.Heading); err != nil {
			return errors.Wrapf(err, "bot %d", i)
		}
		if !bounds.Contains(e.X, e.Y) {
			return errors.Errorf("bot %d: (%d,%d) is outside the arena", i, e.X, e.Y)
		}
	}
	return nil
}

// Options turns the scenario into Sim options. Player bots read from in,
// which may be nil only if the roster has none.
func (sc *Scenario) Options(in mind.Input) ([]SimOption, error) {
	if err := sc.Validate(); err != nil {
		return nil, err
	}
	opts := []SimOption{WithArenaSize(sc.Arena.Width, sc.Arena.Height)}
	if sc.Tick != "" {
		d, _ := time.ParseDuration(sc.Tick)
		opts = append(opts, WithTick(d))
	}
	for _, w := range sc.Walls {
		opts = append(opts, WithWall(w.X, w.Y, w.W, w.H))
	}

	for i, e := range sc.Bots {
		heading, _ := parseHeading(e.Heading)
		switch e.Kind {
		case KindRandom:
			opts = append(opts, WithRandomBot(e.X, e.Y, heading))
		case KindPursuer:
			opts = append(opts, WithPursuer(e.X, e.Y, heading))
		case KindPatrol:
			cps := make([]geom.Pos, len(e.Checkpoints))
			for j, c := range e.Checkpoints {
				cps[j] = geom.Pos{X: c[0], Y: c[1]}
			}
			opts = append(opts, WithNavigator(e.X, e.Y, heading, cps...))
		case KindPlayer:
			if in == nil {
				return nil, errors.Errorf("bot %d: player needs an input device", i)
			}
			opts = append(opts, WithPlayer(e.X, e.Y, heading, in, e.Step))
		case KindPassive:
			opts = append(opts, WithSource(e.X, e.Y, heading, nil))
		}
	}
	return opts, nil
}

// HasPlayer reports whether any bot is steered by a person.
func (sc *Scenario) HasPlayer() bool {
	for _, e := range sc.Bots {
		if e.Kind == KindPlayer {
			return true
		}
	}
	return false
}

func parseHeading(s string) (geom.Direction, error) {
	switch strings.ToLower(s) {
	case "", "right":
		return geom.Right, nil
	case "up":
		return geom.Up, nil
	case "left":
		return geom.Left, nil
	case "down":
		return geom.Down, nil
	}
	return geom.Right, errors.Errorf("unknown heading %q", s)
}

// ClassicScenario is the stock 400×400 arena with two random bots, a
// patrolling navigator and a pursuer.
func ClassicScenario() *Scenario {
	return &Scenario{
		Name:  "classic",
		Arena: ScenarioArena{Width: 400, Height: 400},
		Tick:  "20ms",
		Walls: []ScenarioRect{
			{X: 100, Y: 100, W: 100, H: 10},
			{X: 100, Y: 200, W: 52, H: 148},
			{X: 0, Y: 30, W: 100, H: 10},
			{X: 40, Y: 100, W: 12, H: 96},
			{X: 60, Y: 150, W: 6, H: 86},
			{X: 200, Y: 0, W: 20, H: 96},
		},
		Bots: []ScenarioEntry{
			{Kind: KindRandom, X: 10, Y: 100},
			{Kind: KindRandom, X: 200, Y: 100},
			{Kind: KindPatrol, X: 250, Y: 100, Checkpoints: [][2]int{
				{250, 100}, {0, 0}, {360, 0}, {11, 136}, {211, 321},
			}},
			{Kind: KindPursuer, X: 300, Y: 300, Heading: "left"},
		},
	}
}
