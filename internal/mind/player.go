package mind

import (
	"github.com/EaterOA/AICombat/internal/bot"
	"github.com/EaterOA/AICombat/internal/geom"
)

//go:generate go tool mockgen -destination=./mocks/input_mock.go -package=mocks . Input

// Key is one of the controls a player can hold.
type Key int

const (
	KeyRight Key = iota
	KeyUp
	KeyLeft
	KeyDown
	KeyFire
)

// arrows is indexed by geom.Direction.
var arrows = [4]Key{KeyRight, KeyUp, KeyLeft, KeyDown}

// Input reports which controls are currently held.
type Input interface {
	Pressed(k Key) bool
}

// Player turns held keys into queued actions. It is meant to run inside a
// Queued source in Normal mode; see NewPlayerSource.
type Player struct {
	in   Input
	step int

	// fire must be released before it shoots again
	locked bool
}

// NewPlayer walks step pixels per arrow press.
func NewPlayer(in Input, step int) *Player {
	if step <= 0 {
		step = 1
	}
	return &Player{in: in, step: step}
}

// NewPlayerSource wraps a Player in a queue.
func NewPlayerSource(in Input, step int) *Queued {
	return NewQueued(NewPlayer(in, step), Normal)
}

func (p *Player) Plan(st bot.Status, q *Queue) bot.Action {
	if p.in.Pressed(KeyFire) {
		if !p.locked {
			p.locked = true
			q.Shoot()
			return bot.ContinueAction()
		}
	} else {
		p.locked = false
	}

	for i, k := range arrows {
		if !p.in.Pressed(k) {
			continue
		}
		switch st.Heading.Steps(geom.Direction(i)) {
		case 1:
			q.Left()
		case 2:
			q.Reverse()
		case 3:
			q.Right()
		}
		q.Walk(p.step)
		return bot.ContinueAction()
	}

	q.Wait()
	return bot.ContinueAction()
}
