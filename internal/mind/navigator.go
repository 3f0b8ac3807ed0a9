package mind

import (
	"errors"

	"github.com/EaterOA/AICombat/internal/bot"
	"github.com/EaterOA/AICombat/internal/geom"
	"github.com/EaterOA/AICombat/internal/nav"
)

var (
	ErrOutOfBounds = errors.New("mind: destination outside the arena")
	ErrUnreachable = errors.New("mind: destination cannot be stood on")
	ErrNoPath      = errors.New("mind: no path to destination")
)

// Navigator walks its bot to a destination along a planned path.
//
// Each call first offers the Delegate a chance to act; if it declines, the
// next pending command is released once the body is idle.
type Navigator struct {
	layout bot.Layout
	reach  nav.Reachability

	dest    geom.Pos
	hasDest bool
	pending []bot.Action

	// last observed body
	at      geom.Pos
	heading geom.Direction

	// Delegate, when set, is consulted before the path queue. A non-Continue
	// result is returned as is.
	Delegate func(st bot.Status) bot.Action
}

// NewNavigator precomputes which pixels a bot of the layout's size may occupy.
func NewNavigator(l bot.Layout) *Navigator {
	return &Navigator{
		layout: l,
		reach:  nav.NewReachability(l.Bounds, l.Walls, l.BotSize),
	}
}

func (n *Navigator) Decide(st bot.Status) bot.Action {
	n.observe(st)

	if n.Delegate != nil {
		if a := n.Delegate(st); a.Kind != bot.Continue {
			return a
		}
	}
	if ready(st) && len(n.pending) > 0 {
		a := n.pending[0]
		n.pending = n.pending[1:]
		if len(n.pending) == 0 {
			n.hasDest = false
		}
		return a
	}
	return bot.ContinueAction()
}

// Observe records the body's position and heading, which SetDestination
// plans from. Decide calls it on every query.
func (n *Navigator) Observe(st bot.Status) {
	n.observe(st)
}

func (n *Navigator) observe(st bot.Status) {
	n.at = st.Pos()
	n.heading = st.Heading
}

// SetDestination plans a path from the last observed position to p and
// replaces the pending commands with it. Being at or already headed to p is
// a no-op. On error nothing changes.
func (n *Navigator) SetDestination(p geom.Pos) error {
	if !n.layout.InBounds(p) {
		return ErrOutOfBounds
	}
	if (n.hasDest && p == n.dest) || p == n.at {
		return nil
	}
	if !n.reach.Reachable(p.X, p.Y) {
		return ErrUnreachable
	}

	path := nav.FindPath(n.reach, n.at, p, n.heading, n.layout.Costs)
	if path == nil {
		return ErrNoPath
	}
	n.pending = nav.Compile(path, n.heading)
	n.dest = p
	n.hasDest = true
	return nil
}

// Destination returns the current target, if any.
func (n *Navigator) Destination() (geom.Pos, bool) {
	return n.dest, n.hasDest
}

// Pending returns a copy of the commands still to be issued.
func (n *Navigator) Pending() []bot.Action {
	out := make([]bot.Action, len(n.pending))
	copy(out, n.pending)
	return out
}

// ClearPath forgets the destination and every pending command.
func (n *Navigator) ClearPath() {
	n.pending = nil
	n.hasDest = false
}

func (n *Navigator) Layout() bot.Layout { return n.layout }

func (n *Navigator) Reachability() nav.Reachability { return n.reach }

// NewPatrol returns a Navigator that visits checkpoints in order, looping
// back to the first. Unusable checkpoints are skipped.
func NewPatrol(l bot.Layout, checkpoints []geom.Pos) *Navigator {
	n := NewNavigator(l)
	next := 0
	n.Delegate = func(bot.Status) bot.Action {
		if n.hasDest || len(n.pending) > 0 || len(checkpoints) == 0 {
			return bot.ContinueAction()
		}
		for range checkpoints {
			cp := checkpoints[next]
			next = (next + 1) % len(checkpoints)
			if cp == n.at {
				continue
			}
			if err := n.SetDestination(cp); err == nil {
				break
			}
		}
		return bot.ContinueAction()
	}
	return n
}
