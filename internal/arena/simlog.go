package arena

import (
	"fmt"
	"strings"
)

// Log categories.
const (
	CatSpawn  = "spawn"
	CatAction = "action"
	CatCombat = "combat"
	CatState  = "state"
	CatNav    = "nav"
)

// SimLogEntry is one recorded battle event.
type SimLogEntry struct {
	Tick     int
	Bot      string  // label e.g. "B3", or "--" for world events
	Category string  // spawn, action, combat, state, nav
	Key      string  // event name within the category
	Value    string  // human-readable detail
	NumVal   float64 // optional numeric value for threshold checks
}

// String formats the entry as a fixed-width log line.
//
//	[T=042] B2   combat    hit              B1 hp=85
func (e SimLogEntry) String() string {
	return fmt.Sprintf("[T=%03d] %-4s %-9s %-16s %s",
		e.Tick, e.Bot, e.Category, e.Key, e.Value)
}

// SimLog collects structured events during a battle. It is unbounded and
// meant for tests and reports, not for long interactive sessions.
type SimLog struct {
	entries []SimLogEntry
	verbose bool
}

// NewSimLog creates a SimLog. If verbose is true, per-tick movement entries
// are recorded as well.
func NewSimLog(verbose bool) *SimLog {
	return &SimLog{verbose: verbose}
}

func (sl *SimLog) Add(tick int, label, category, key, value string, numVal float64) {
	if sl == nil {
		return
	}
	sl.entries = append(sl.entries, SimLogEntry{
		Tick:     tick,
		Bot:      label,
		Category: category,
		Key:      key,
		Value:    value,
		NumVal:   numVal,
	})
}

// AddVerbose records an entry only when verbose mode is on.
func (sl *SimLog) AddVerbose(tick int, label, category, key, value string, numVal float64) {
	if sl == nil || !sl.verbose {
		return
	}
	sl.Add(tick, label, category, key, value, numVal)
}

func (sl *SimLog) Verbose() bool { return sl != nil && sl.verbose }

func (sl *SimLog) Entries() []SimLogEntry {
	return sl.entries
}

// Filter returns entries matching the given category and/or key.
// Pass empty string to match any value for that field.
func (sl *SimLog) Filter(category, key string) []SimLogEntry {
	var out []SimLogEntry
	for _, e := range sl.entries {
		if category != "" && e.Category != category {
			continue
		}
		if key != "" && e.Key != key {
			continue
		}
		out = append(out, e)
	}
	return out
}

// FilterBot returns entries for one bot label.
func (sl *SimLog) FilterBot(label string) []SimLogEntry {
	var out []SimLogEntry
	for _, e := range sl.entries {
		if e.Bot == label {
			out = append(out, e)
		}
	}
	return out
}

// FilterTickRange returns entries within [fromTick, toTick] inclusive.
func (sl *SimLog) FilterTickRange(fromTick, toTick int) []SimLogEntry {
	var out []SimLogEntry
	for _, e := range sl.entries {
		if e.Tick >= fromTick && e.Tick <= toTick {
			out = append(out, e)
		}
	}
	return out
}

func (sl *SimLog) CountCategory(category, key string) int {
	return len(sl.Filter(category, key))
}

// LastOf returns the most recent entry matching category+key.
func (sl *SimLog) LastOf(category, key string) (SimLogEntry, bool) {
	entries := sl.Filter(category, key)
	if len(entries) == 0 {
		return SimLogEntry{}, false
	}
	return entries[len(entries)-1], true
}

// HasEntry returns true if at least one entry matches category, key, and value substring.
func (sl *SimLog) HasEntry(category, key, valueSubstr string) bool {
	for _, e := range sl.entries {
		if category != "" && e.Category != category {
			continue
		}
		if key != "" && e.Key != key {
			continue
		}
		if valueSubstr != "" && !strings.Contains(e.Value, valueSubstr) {
			continue
		}
		return true
	}
	return false
}

// Format returns the full log as a single string for t.Log output.
func (sl *SimLog) Format() string {
	return formatEntries(sl.entries)
}

func (sl *SimLog) FormatRange(fromTick, toTick int) string {
	return formatEntries(sl.FilterTickRange(fromTick, toTick))
}

func formatEntries(entries []SimLogEntry) string {
	var sb strings.Builder
	for _, e := range entries {
		sb.WriteString(e.String())
		sb.WriteByte('\n')
	}
	return sb.String()
}

// Summary returns a short human-readable account of the battle so far.
func (sl *SimLog) Summary(tick int, bots []*Bot) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "--- Summary at T=%03d ---\n", tick)

	fmt.Fprintf(&sb, "Shots: %d  Hits: %d  Deaths: %d\n",
		sl.CountCategory(CatAction, "shoot"),
		sl.CountCategory(CatCombat, "hit"),
		sl.CountCategory(CatCombat, "death"))

	if len(bots) == 0 {
		sb.WriteString("Alive: none\n")
		return sb.String()
	}
	for _, b := range bots {
		fmt.Fprintf(&sb, "%-4s %-9s hp=%-3d ammo=%-2d at (%d,%d) facing %s\n",
			b.Label(), b.State(), b.HP(), b.Ammo(), b.body.X, b.body.Y, b.heading)
	}
	return sb.String()
}
