// Package bot holds the vocabulary shared by bot bodies and the decision
// sources that drive them: the primitive actions, the public status
// snapshot, and the arena layout handed to a mind at construction.
package bot

import (
	"fmt"

	"github.com/EaterOA/AICombat/internal/geom"
)

// Kind tags an Action.
type Kind int

const (
	Continue Kind = iota // keep doing whatever the body is doing
	Wait                 // stop and stand still
	Walk
	Turn
	Shoot
)

func (k Kind) String() string {
	switch k {
	case Continue:
		return "continue"
	case Wait:
		return "wait"
	case Walk:
		return "walk"
	case Turn:
		return "turn"
	case Shoot:
		return "shoot"
	default:
		return "unknown"
	}
}

// Action is a primitive request from a decision source. Distance is only
// meaningful for Walk, Side only for Turn. The zero Action is Continue.
type Action struct {
	Kind     Kind
	Distance int
	Side     geom.Turn
}

func WaitAction() Action { return Action{Kind: Wait} }
func ContinueAction() Action { return Action{Kind: Continue} }
func WalkAction(distance int) Action { return Action{Kind: Walk, Distance: distance} }
func TurnAction(side geom.Turn) Action { return Action{Kind: Turn, Side: side} }
func ShootAction() Action { return Action{Kind: Shoot} }
func LeftAction() Action { return TurnAction(geom.TurnLeft) }
func RightAction() Action { return TurnAction(geom.TurnRight) }

// Normalize returns a, or Wait if a carries a missing or invalid payload.
func (a Action) Normalize() Action {
	switch a.Kind {
	case Continue, Wait, Shoot:
		return Action{Kind: a.Kind}
	case Walk:
		if a.Distance > 0 {
			return Action{Kind: Walk, Distance: a.Distance}
		}
	case Turn:
		if a.Side == geom.TurnLeft || a.Side == geom.TurnRight {
			return Action{Kind: Turn, Side: a.Side}
		}
	}
	return WaitAction()
}

func (a Action) String() string {
	switch a.Kind {
	case Walk:
		return fmt.Sprintf("walk %d", a.Distance)
	case Turn:
		return fmt.Sprintf("turn %s", a.Side)
	default:
		return a.Kind.String()
	}
}
