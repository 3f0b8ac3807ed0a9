package game

import (
	"fmt"
	"strings"

	"github.com/atotto/clipboard"

	"github.com/EaterOA/AICombat/internal/arena"
)

// debugReport describes the last lastTicks of the battle, narrowed to the
// selected bot when there is one.
func (g *Game) debugReport(lastTicks int) string {
	if lastTicks <= 0 {
		lastTicks = 120
	}
	w := g.sim.World
	toTick := w.Tick()
	fromTick := max(toTick-lastTicks+1, 0)

	var b strings.Builder
	fmt.Fprintf(&b, "--- AICombat debug report ---\n")
	fmt.Fprintf(&b, "scenario=%s seed=%d battle=%s tick_range=[%d..%d]\n",
		g.scenario.Name, g.seed, w.ID(), fromTick, toTick)

	entries := g.sim.SimLog.FilterTickRange(fromTick, toTick)
	if g.selected != "" {
		fmt.Fprintf(&b, "selected=%s\n", g.selected)
		var kept []arena.SimLogEntry
		for _, e := range entries {
			if e.Bot == g.selected {
				kept = append(kept, e)
			}
		}
		entries = kept
	}
	b.WriteString("\n")
	b.WriteString(g.sim.Summary())
	b.WriteString("\n")
	if len(entries) == 0 {
		b.WriteString("(no events in range)\n")
		return b.String()
	}
	for _, e := range entries {
		b.WriteString(e.String())
		b.WriteByte('\n')
	}
	return b.String()
}

// copyReport puts the debug report on the system clipboard.
func (g *Game) copyReport() {
	report := g.debugReport(0)
	if err := clipboard.WriteAll(report); err != nil {
		g.logger.Warn("could not copy report", "err", err)
		return
	}
	g.events.Add(arena.SimLogEntry{Tick: g.sim.World.Tick(), Bot: "--", Category: "ui", Key: "copied", Value: fmt.Sprintf("%d bytes", len(report))})
}
