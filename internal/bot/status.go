package bot

import (
	"time"

	"github.com/EaterOA/AICombat/internal/geom"
)

// ID identifies a bot for the lifetime of a battle.
type ID uint64

// State tags what a bot body is currently executing.
type State int

const (
	Idle State = iota
	Turning
	Walking
	Recoiling
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Turning:
		return "turning"
	case Walking:
		return "walking"
	case Recoiling:
		return "recoiling"
	default:
		return "unknown"
	}
}

// Info is the public face of a bot, as seen by other bots.
type Info struct {
	ID      ID
	State   State
	Body    geom.Rect
	Heading geom.Direction
	HP      int
	Ammo    int
}

// Pos returns the top-left corner of the bot body.
func (i Info) Pos() geom.Pos {
	return i.Body.Pos()
}

// Status is the snapshot handed to a decision source each time its body is
// ready for a new action. It is built fresh per query.
type Status struct {
	Info

	// Elapsed is the simulated time since the previous query.
	Elapsed time.Duration
	// Visible lists the other bots within sight range.
	Visible []Info
}

// Find returns the visible bot with the given id.
func (s Status) Find(id ID) (Info, bool) {
	for _, v := range s.Visible {
		if v.ID == id {
			return v, true
		}
	}
	return Info{}, false
}
