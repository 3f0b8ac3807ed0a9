package mind

import (
	"math/rand"

	"github.com/EaterOA/AICombat/internal/bot"
)

// Random does random things: 30% nothing, 50% a short walk, 15% a right
// turn, 5% a shot. It keeps no state besides its RNG.
type Random struct {
	rng *rand.Rand
}

func NewRandom(rng *rand.Rand) *Random {
	return &Random{rng: rng}
}

func (r *Random) Decide(bot.Status) bot.Action {
	roll := r.rng.Intn(100)
	switch {
	case roll < 30:
		return bot.ContinueAction()
	case roll < 80:
		return bot.WalkAction(1 + r.rng.Intn(10))
	case roll < 95:
		return bot.RightAction()
	default:
		return bot.ShootAction()
	}
}
