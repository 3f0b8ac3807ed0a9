// Package game is the windowed frontend: it steps an arena World at a fixed
// tick and draws it with ebiten.
package game

import (
	"fmt"
	"image/color"
	"log/slog"
	"math"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/pkg/errors"
	"golang.org/x/image/colornames"

	"github.com/EaterOA/AICombat/internal/arena"
	"github.com/EaterOA/AICombat/internal/geom"
)

// borderWidth is the pixel gap between the window edge and the arena.
const borderWidth = 16

var speeds = []float64{0, 0.5, 1, 2, 4}

// botColors is indexed by bot id.
var botColors = []color.RGBA{
	colornames.Royalblue,
	colornames.Crimson,
	colornames.Gold,
	colornames.Mediumseagreen,
	colornames.Darkorange,
	colornames.Orchid,
}

type Game struct {
	scenario *arena.Scenario
	seed     int64
	logger   *slog.Logger

	sim   *arena.Sim
	input *Keyboard
	keys  *edges

	width  int
	height int
	offX   int
	offY   int

	events *EventLog
	// SimLog entries already copied into events
	seen int

	showHUD  bool
	selected string

	// Simulation speed control.
	simSpeed float64
	pending  time.Duration
}

// New builds a game for sc. Player bots in sc read the keyboard.
func New(sc *arena.Scenario, seed int64, logger *slog.Logger) (*Game, error) {
	if logger == nil {
		logger = slog.Default()
	}
	g := &Game{
		scenario: sc,
		seed:     seed,
		logger:   logger,
		input:    NewKeyboard(),
		keys:     newEdges(ebiten.IsKeyPressed),
		events:   NewEventLog(),
		showHUD:  true,
		simSpeed: 1,
	}
	if err := g.reset(); err != nil {
		return nil, err
	}
	return g, nil
}

// reset starts the scenario over.
func (g *Game) reset() error {
	opts, err := g.scenario.Options(g.input)
	if err != nil {
		return errors.Wrap(err, "could not build battle")
	}
	opts = append(opts, arena.WithSeed(g.seed), arena.WithSimLogger(g.logger))
	g.sim = arena.NewSim(opts...)
	g.events.Reset()
	g.seen = 0
	g.pending = 0
	g.selected = ""

	cfg := g.sim.Config
	g.offX, g.offY = borderWidth, borderWidth
	g.width = borderWidth + cfg.Width + borderWidth + logPanelWidth
	g.height = max(borderWidth+cfg.Height+borderWidth, 240)
	g.logger.Info("battle started", "scenario", g.scenario.Name, "seed", g.seed, "battle", g.sim.World.ID())
	return nil
}

// Sim exposes the running battle.
func (g *Game) Sim() *arena.Sim { return g.sim }

// WindowSize is the logical screen size.
func (g *Game) WindowSize() (int, int) { return g.width, g.height }

func (g *Game) Update() error {
	if err := g.handleInput(); err != nil {
		return err
	}
	g.advance(time.Second / time.Duration(ebiten.TPS()))
	return nil
}

// advance runs as many fixed ticks as frame time allows at the current speed.
func (g *Game) advance(frame time.Duration) {
	if g.simSpeed <= 0 || g.sim.Over() {
		return
	}
	tick := g.sim.Config.Tick
	g.pending += time.Duration(float64(frame) * g.simSpeed)
	for g.pending >= tick {
		g.pending -= tick
		g.sim.World.Update(tick)
		if g.sim.Over() {
			g.announce()
			break
		}
	}
	g.collect()
}

func (g *Game) announce() {
	if w, ok := g.sim.World.Winner(); ok {
		g.logger.Info("battle won", "bot", w.Label(), "tick", g.sim.World.Tick())
		return
	}
	g.logger.Info("battle drawn", "tick", g.sim.World.Tick())
}

// collect copies new SimLog entries into the on-screen log.
func (g *Game) collect() {
	entries := g.sim.SimLog.Entries()
	for _, e := range entries[g.seen:] {
		if e.Category == arena.CatNav || e.Category == arena.CatState {
			continue
		}
		g.events.Add(e)
	}
	g.seen = len(entries)
}

// handleInput processes frontend keys (edge-triggered). Player keys are read
// by the player's mind.
func (g *Game) handleInput() error {
	defer g.keys.next()

	if g.keys.hit(ebiten.KeyH) {
		g.showHUD = !g.showHUD
	}
	if g.keys.hit(ebiten.KeyP) {
		if g.simSpeed > 0 {
			g.simSpeed = 0
		} else {
			g.simSpeed = 1
		}
	}
	if g.keys.hit(ebiten.KeyComma) {
		g.simSpeed = slower(g.simSpeed)
	}
	if g.keys.hit(ebiten.KeyPeriod) {
		g.simSpeed = faster(g.simSpeed)
	}
	if g.keys.hit(ebiten.KeyR) {
		if err := g.reset(); err != nil {
			return err
		}
	}
	if g.keys.hit(ebiten.KeyC) {
		g.copyReport()
	}

	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		mx, my := ebiten.CursorPosition()
		g.selected = g.botAt(mx, my)
	}
	return nil
}

func slower(s float64) float64 {
	for i, v := range speeds {
		if v >= s && i > 0 {
			return speeds[i-1]
		}
	}
	return s
}

func faster(s float64) float64 {
	for _, v := range speeds {
		if v > s {
			return v
		}
	}
	return s
}

// botAt returns the label of the bot under screen point (x,y), or "".
func (g *Game) botAt(x, y int) string {
	wx, wy := x-g.offX, y-g.offY
	for _, b := range g.sim.World.Bots() {
		if b.Body().Contains(wx, wy) {
			return b.Label()
		}
	}
	return ""
}

func (g *Game) Draw(screen *ebiten.Image) {
	screen.Fill(color.RGBA{R: 12, G: 14, B: 16, A: 255})

	cfg := g.sim.Config
	ox, oy := float32(g.offX), float32(g.offY)
	vector.FillRect(screen, ox, oy, float32(cfg.Width), float32(cfg.Height), color.RGBA{R: 28, G: 34, B: 30, A: 255}, false)
	drawGridOffset(screen, g.offX, g.offY, cfg.Width, cfg.Height, 50, color.RGBA{R: 40, G: 48, B: 42, A: 255})
	vector.StrokeRect(screen, ox-1, oy-1, float32(cfg.Width)+2, float32(cfg.Height)+2, 2.0, color.RGBA{R: 70, G: 90, B: 80, A: 255}, false)

	for _, w := range g.sim.World.Walls() {
		vector.FillRect(screen, ox+float32(w.X), oy+float32(w.Y), float32(w.W), float32(w.H), colornames.Slategray, false)
	}
	for _, b := range g.sim.World.Bullets() {
		r := b.Body()
		vector.FillRect(screen, ox+float32(r.X), oy+float32(r.Y), float32(r.W), float32(r.H), colornames.Orange, false)
	}
	for _, b := range g.sim.World.Bots() {
		g.drawBot(screen, b)
	}

	g.events.Draw(screen, g.offX+cfg.Width+g.offX, g.height)
	if g.showHUD {
		g.drawHUD(screen)
	}
}

func (g *Game) drawBot(screen *ebiten.Image, b *arena.Bot) {
	cfg := g.sim.Config
	r := b.Body()
	x, y := float32(g.offX+r.X), float32(g.offY+r.Y)
	col := botColors[int(b.ID()-1)%len(botColors)]
	vector.FillRect(screen, x, y, float32(r.W), float32(r.H), col, false)
	if b.Label() == g.selected {
		vector.StrokeRect(screen, x-2, y-2, float32(r.W)+4, float32(r.H)+4, 1.0, colornames.White, false)
	}

	// Barrel along the interpolated heading; screen y grows downwards.
	c := geom.Center(r)
	cx, cy := float32(g.offX)+float32(c.X), float32(g.offY)+float32(c.Y)
	a := b.Angle(cfg.Costs) * math.Pi / 180
	reach := float32(geom.MaxRadius(r))
	vector.StrokeLine(screen, cx, cy, cx+reach*float32(math.Cos(a)), cy-reach*float32(math.Sin(a)), 3.0, colornames.Black, false)

	// HP bar above the body.
	frac := float32(max(b.HP(), 0)) / float32(max(cfg.BotHP, 1))
	vector.FillRect(screen, x, y-5, float32(r.W), 3, color.RGBA{R: 60, G: 20, B: 20, A: 255}, false)
	vector.FillRect(screen, x, y-5, float32(r.W)*frac, 3, colornames.Limegreen, false)
	ebitenutil.DebugPrintAt(screen, b.Label(), int(x), int(y)+r.H)
}

func (g *Game) drawHUD(screen *ebiten.Image) {
	speed := fmt.Sprintf("%gx", g.simSpeed)
	if g.simSpeed == 0 {
		speed = "PAUSED"
	}
	w := g.sim.World
	lines := []string{
		fmt.Sprintf("T=%d  %s  alive=%d", w.Tick(), speed, w.Alive()),
		"P=pause  ,/. speed  R=restart  H=hud  C=copy",
	}
	if g.scenario.HasPlayer() {
		lines = append(lines, "arrows/WASD=move  space=fire")
	}
	if g.sim.Over() {
		if winner, ok := w.Winner(); ok {
			lines = append(lines, fmt.Sprintf("%s wins", winner.Label()))
		} else {
			lines = append(lines, "draw")
		}
	}
	for _, b := range w.Bots() {
		if b.Label() == g.selected {
			lines = append(lines, fmt.Sprintf("%s %s hp=%d ammo=%d", b.Label(), b.State(), b.HP(), b.Ammo()))
		}
	}

	const lineH = 14
	for i, line := range lines {
		ebitenutil.DebugPrintAt(screen, line, g.offX+4, g.offY+4+i*lineH)
	}
}

func drawGridOffset(screen *ebiten.Image, offX, offY, w, h, spacing int, c color.Color) {
	ox, oy := float32(offX), float32(offY)
	for x := spacing; x < w; x += spacing {
		vector.StrokeLine(screen, ox+float32(x), oy, ox+float32(x), oy+float32(h), 1.0, c, false)
	}
	for y := spacing; y < h; y += spacing {
		vector.StrokeLine(screen, ox, oy+float32(y), ox+float32(w), oy+float32(y), 1.0, c, false)
	}
}

func (g *Game) Layout(_, _ int) (int, int) {
	return g.width, g.height
}
