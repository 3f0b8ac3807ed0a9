package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"
	"runtime"
	"sort"
	"strings"

	"github.com/atotto/clipboard"
	"github.com/pkg/errors"
	"github.com/ttacon/chalk"
	"golang.org/x/sync/errgroup"

	"github.com/EaterOA/AICombat/internal/arena"
)

type runStats struct {
	runIndex int
	seed     int64
	ticks    int

	winner   string
	endTick  int
	alive    []string
	spawned  []string
	snapshot []arena.Snapshot

	firstShotTick  int
	firstHitTick   int
	firstDeathTick int

	shots       int
	hits        int
	deaths      int
	dryFires    int
	walkBlocked int
	turns       int
	walks       int
}

type options struct {
	runs     int
	ticks    int
	seedBase int64
	seedStep int64
	scenario string
	parallel int
	copy     bool
	color    bool
}

func main() {
	var o options
	flag.IntVar(&o.runs, "runs", 5, "number of headless battles")
	flag.IntVar(&o.ticks, "ticks", 3000, "maximum ticks per battle")
	flag.Int64Var(&o.seedBase, "seed-base", 42, "base RNG seed for run 1")
	flag.Int64Var(&o.seedStep, "seed-step", 1, "seed increment between runs")
	flag.StringVar(&o.scenario, "scenario", "classic", "scenario YAML file, or \"classic\"")
	flag.IntVar(&o.parallel, "parallel", runtime.NumCPU(), "battles run at once")
	flag.BoolVar(&o.copy, "copy", false, "also copy the plain report to the clipboard")
	flag.BoolVar(&o.color, "color", true, "colour the terminal report")
	flag.Parse()

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn}))
	if err := run(o, logger); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func run(o options, logger *slog.Logger) error {
	if o.runs <= 0 {
		return errors.New("-runs must be > 0")
	}
	if o.ticks <= 0 {
		return errors.New("-ticks must be > 0")
	}
	sc, err := loadScenario(o.scenario)
	if err != nil {
		return err
	}
	if sc.HasPlayer() {
		return errors.Errorf("scenario %q has a player bot and cannot run headless", sc.Name)
	}

	all, err := runAll(sc, o, logger)
	if err != nil {
		return err
	}

	fmt.Print(renderReport(sc, o, all, o.color))
	if o.copy {
		if err := clipboard.WriteAll(renderReport(sc, o, all, false)); err != nil {
			return errors.Wrap(err, "could not copy report")
		}
		fmt.Println("(report copied to clipboard)")
	}
	return nil
}

func loadScenario(name string) (*arena.Scenario, error) {
	if name == "" || name == "classic" {
		return arena.ClassicScenario(), nil
	}
	return arena.LoadScenario(name)
}

// runAll plays every seed, o.parallel at a time. Results keep run order.
func runAll(sc *arena.Scenario, o options, logger *slog.Logger) ([]runStats, error) {
	all := make([]runStats, o.runs)
	var eg errgroup.Group
	eg.SetLimit(max(o.parallel, 1))
	for i := 0; i < o.runs; i++ {
		seed := o.seedBase + int64(i)*o.seedStep
		eg.Go(func() error {
			rs, err := runBattle(sc, i+1, seed, o.ticks, logger)
			if err != nil {
				return errors.Wrapf(err, "run %d", i+1)
			}
			all[i] = rs
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, err
	}
	return all, nil
}

func runBattle(sc *arena.Scenario, runIndex int, seed int64, ticks int, logger *slog.Logger) (runStats, error) {
	opts, err := sc.Options(nil)
	if err != nil {
		return runStats{}, err
	}
	sim := arena.NewSim(append(opts, arena.WithSeed(seed), arena.WithSimLogger(logger))...)
	end := sim.RunUntil((*arena.Sim).Over, ticks)
	if end < 0 {
		end = sim.World.Tick()
	}
	return collectStats(sim, runIndex, seed, ticks, end), nil
}

func collectStats(sim *arena.Sim, runIndex int, seed int64, ticks, end int) runStats {
	log := sim.SimLog
	entries := log.Entries()
	rs := runStats{
		runIndex:       runIndex,
		seed:           seed,
		ticks:          ticks,
		endTick:        end,
		snapshot:       sim.Snapshot(),
		firstShotTick:  firstTick(entries, arena.CatAction, "shoot", ""),
		firstHitTick:   firstTick(entries, arena.CatCombat, "hit", ""),
		firstDeathTick: firstTick(entries, arena.CatCombat, "death", ""),
		shots:          log.CountCategory(arena.CatAction, "shoot"),
		hits:           log.CountCategory(arena.CatCombat, "hit"),
		deaths:         log.CountCategory(arena.CatCombat, "death"),
		dryFires:       log.CountCategory(arena.CatAction, "dry_fire"),
		walkBlocked:    log.CountCategory(arena.CatAction, "walk_blocked"),
		turns:          log.CountCategory(arena.CatAction, "turn"),
		walks:          log.CountCategory(arena.CatAction, "walk"),
	}
	for _, e := range log.Filter(arena.CatSpawn, "bot") {
		rs.spawned = append(rs.spawned, e.Bot)
	}
	for _, b := range sim.World.Bots() {
		rs.alive = append(rs.alive, b.Label())
	}
	if w, ok := sim.World.Winner(); ok {
		rs.winner = w.Label()
	}
	return rs
}

func firstTick(entries []arena.SimLogEntry, category, key, contains string) int {
	for _, e := range entries {
		if e.Category != category || e.Key != key {
			continue
		}
		if contains == "" || strings.Contains(e.Value, contains) {
			return e.Tick
		}
	}
	return -1
}

// detectStalemate reports whether a battle ran out of time without anyone
// getting the upper hand.
func detectStalemate(rs runStats) (bool, string) {
	if rs.winner != "" {
		return false, "decisive"
	}
	if len(rs.alive) == 0 {
		return false, "mutual_destruction"
	}
	if rs.hits == 0 {
		return true, "no_hits"
	}
	if rs.deaths == 0 {
		return true, "no_kills"
	}
	return false, "attrition"
}

type painter func(chalk.Color, string) string

func newPainter(color bool) painter {
	if !color {
		return func(_ chalk.Color, s string) string { return s }
	}
	return func(c chalk.Color, s string) string { return c.Color(s) }
}

func renderReport(sc *arena.Scenario, o options, all []runStats, color bool) string {
	paint := newPainter(color)
	var b strings.Builder
	fmt.Fprintf(&b, "=== Headless Battle Report ===\n")
	fmt.Fprintf(&b, "scenario=%s runs=%d ticks=%d seed_base=%d seed_step=%d\n\n",
		sc.Name, o.runs, o.ticks, o.seedBase, o.seedStep)
	for _, rs := range all {
		writeRun(&b, rs, paint)
	}
	writeAggregate(&b, all, paint)
	return b.String()
}

func writeRun(b *strings.Builder, rs runStats, paint painter) {
	fmt.Fprintf(b, "--- Run %d (seed=%d) ---\n", rs.runIndex, rs.seed)
	stale, reason := detectStalemate(rs)
	switch {
	case rs.winner != "":
		fmt.Fprintf(b, "outcome: %s at T=%d\n", paint(chalk.Green, rs.winner+" wins"), rs.endTick)
	case stale:
		fmt.Fprintf(b, "outcome: %s (%s) after %d ticks\n", paint(chalk.Yellow, "stalemate"), reason, rs.endTick)
	default:
		fmt.Fprintf(b, "outcome: %s (%s) at T=%d\n", paint(chalk.Red, "no winner"), reason, rs.endTick)
	}
	fmt.Fprintf(b, "phase_markers: first_shot=%d first_hit=%d first_death=%d\n",
		rs.firstShotTick, rs.firstHitTick, rs.firstDeathTick)
	fmt.Fprintf(b, "event_totals: walk=%d turn=%d shoot=%d hit=%d death=%d dry_fire=%d walk_blocked=%d\n",
		rs.walks, rs.turns, rs.shots, rs.hits, rs.deaths, rs.dryFires, rs.walkBlocked)
	fmt.Fprintf(b, "accuracy=%s\n", percent(rs.hits, rs.shots))
	for _, sn := range rs.snapshot {
		fmt.Fprintf(b, "  %s\n", sn)
	}
	b.WriteString("\n")
}

func writeAggregate(b *strings.Builder, all []runStats, paint painter) {
	wins := map[string]int{}
	survived := map[string]int{}
	labels := map[string]struct{}{}
	var shots, hits, deaths, decided, stalemates int
	var hitTicks, deathTicks, endTicks []int

	for _, rs := range all {
		shots += rs.shots
		hits += rs.hits
		deaths += rs.deaths
		if rs.winner != "" {
			wins[rs.winner]++
			decided++
		}
		if stale, _ := detectStalemate(rs); stale {
			stalemates++
		}
		for _, l := range rs.spawned {
			labels[l] = struct{}{}
		}
		for _, l := range rs.alive {
			survived[l]++
		}
		if rs.firstHitTick >= 0 {
			hitTicks = append(hitTicks, rs.firstHitTick)
		}
		if rs.firstDeathTick >= 0 {
			deathTicks = append(deathTicks, rs.firstDeathTick)
		}
		endTicks = append(endTicks, rs.endTick)
	}

	fmt.Fprintln(b, paint(chalk.Blue, "=== Aggregate ==="))
	fmt.Fprintf(b, "runs=%d decided=%d stalemates=%d\n", len(all), decided, stalemates)
	fmt.Fprintf(b, "avg_per_run: shoot=%.1f hit=%.1f death=%.1f accuracy=%s\n",
		avg(shots, len(all)), avg(hits, len(all)), avg(deaths, len(all)), percent(hits, shots))
	fmt.Fprintf(b, "phase_marker_avg_ticks: first_hit=%s first_death=%s end=%s\n",
		avgTickString(hitTicks), avgTickString(deathTicks), avgTickString(endTicks))

	fmt.Fprintln(b, "\n--- Per bot ---")
	rows := make([]string, 0, len(labels))
	for l := range labels {
		rows = append(rows, l)
	}
	sort.Strings(rows)
	for _, l := range rows {
		fmt.Fprintf(b, "  %-4s wins=%d survival=%s\n", l, wins[l], percent(survived[l], len(all)))
	}
	fmt.Fprintf(b, "winners: %s\n", joinCounts(wins))
}

func avg(sum int, n int) float64 {
	if n <= 0 {
		return 0
	}
	return float64(sum) / float64(n)
}

func percent(part, whole int) string {
	if whole <= 0 {
		return "n/a"
	}
	return fmt.Sprintf("%.0f%%", float64(part)/float64(whole)*100)
}

func avgTickString(vals []int) string {
	if len(vals) == 0 {
		return "n/a"
	}
	sum := 0
	for _, v := range vals {
		sum += v
	}
	return fmt.Sprintf("%.1f", float64(sum)/float64(len(vals)))
}

func joinCounts(counts map[string]int) string {
	if len(counts) == 0 {
		return "none"
	}
	labels := make([]string, 0, len(counts))
	for k := range counts {
		labels = append(labels, k)
	}
	sort.Strings(labels)
	parts := make([]string, len(labels))
	for i, l := range labels {
		parts[i] = fmt.Sprintf("%s(%d)", l, counts[l])
	}
	return strings.Join(parts, ",")
}
