package game

import (
	"fmt"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/colornames"

	"github.com/EaterOA/AICombat/internal/arena"
)

const (
	logPanelWidth = 300
	logMaxEntries = 60
	logLineHeight = 14
)

// EventLog is a ring buffer of battle events rendered beside the arena.
type EventLog struct {
	entries []arena.SimLogEntry
	head    int
	count   int
}

func NewEventLog() *EventLog {
	return &EventLog{
		entries: make([]arena.SimLogEntry, logMaxEntries),
	}
}

func (el *EventLog) Add(e arena.SimLogEntry) {
	el.entries[el.head] = e
	el.head = (el.head + 1) % logMaxEntries
	if el.count < logMaxEntries {
		el.count++
	}
}

// Recent returns entries oldest first.
func (el *EventLog) Recent() []arena.SimLogEntry {
	result := make([]arena.SimLogEntry, el.count)
	for i := 0; i < el.count; i++ {
		idx := (el.head - el.count + i + logMaxEntries) % logMaxEntries
		result[i] = el.entries[idx]
	}
	return result
}

// Reset empties the log.
func (el *EventLog) Reset() {
	el.head = 0
	el.count = 0
}

func categoryColor(cat string) color.RGBA {
	switch cat {
	case arena.CatCombat:
		return colornames.Crimson
	case arena.CatAction:
		return colornames.Goldenrod
	case arena.CatSpawn:
		return colornames.Mediumseagreen
	default:
		return colornames.Slategray
	}
}

// Draw renders the panel with its left edge at panelX.
func (el *EventLog) Draw(screen *ebiten.Image, panelX int, panelH int) {
	vector.FillRect(screen, float32(panelX), 0, float32(logPanelWidth), float32(panelH), color.RGBA{R: 10, G: 12, B: 14, A: 248}, false)
	vector.StrokeLine(screen, float32(panelX), 0, float32(panelX), float32(panelH), 1.0, color.RGBA{R: 50, G: 60, B: 70, A: 255}, false)

	vector.FillRect(screen, float32(panelX), 0, float32(logPanelWidth), 16, color.RGBA{R: 20, G: 26, B: 32, A: 255}, false)
	ebitenutil.DebugPrintAt(screen, "BATTLE LOG", panelX+8, 0)
	vector.StrokeLine(screen, float32(panelX), 16, float32(panelX+logPanelWidth), 16, 1.0, color.RGBA{R: 50, G: 70, B: 80, A: 200}, false)

	entries := el.Recent()
	maxVisible := (panelH - 24) / logLineHeight
	if len(entries) > maxVisible {
		entries = entries[len(entries)-maxVisible:]
	}

	y := 20
	for i, e := range entries {
		// newest three get a highlight row
		if i >= len(entries)-3 {
			vector.FillRect(screen, float32(panelX+2), float32(y), float32(logPanelWidth-4), float32(logLineHeight), color.RGBA{R: 30, G: 36, B: 44, A: 160}, false)
		}
		vector.FillRect(screen, float32(panelX+5), float32(y+4), 3, 6, categoryColor(e.Category), false)
		line := fmt.Sprintf("%4d [%s] %s %s", e.Tick, e.Bot, e.Key, e.Value)
		ebitenutil.DebugPrintAt(screen, line, panelX+12, y-2)
		y += logLineHeight
	}
}
