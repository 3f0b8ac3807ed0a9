// Package mind holds the decision sources that drive bots: what a bot does
// next is chosen here from a status snapshot, and carried out by the arena.
package mind

import (
	"github.com/EaterOA/AICombat/internal/bot"
)

// Source picks the next primitive action for a bot. Returning the zero Action
// (Continue) means "nothing new".
type Source interface {
	Decide(st bot.Status) bot.Action
}

// Func adapts a plain function to Source.
type Func func(st bot.Status) bot.Action

func (f Func) Decide(st bot.Status) bot.Action { return f(st) }

// Passive never does anything.
var Passive Source = Func(func(bot.Status) bot.Action { return bot.ContinueAction() })

// ready reports whether the body has finished its last action.
func ready(st bot.Status) bool {
	return st.State == bot.Idle
}
