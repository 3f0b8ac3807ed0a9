package nav

import (
	"fmt"

	"github.com/EaterOA/AICombat/internal/bot"
	"github.com/EaterOA/AICombat/internal/geom"
)

// Compile turns a waypoint path into the actions that walk it, starting from
// heading. Consecutive segments in the same direction merge into one walk.
// The result is consumed front first.
//
// Compile panics if two consecutive waypoints are not axis aligned.
func Compile(path []geom.Pos, heading geom.Direction) []bot.Action {
	var out []bot.Action
	cur := heading
	for i := 1; i < len(path); i++ {
		from, to := path[i-1], path[i]
		dir, ok := geom.DirectionBetween(from, to)
		if !ok {
			panic(fmt.Sprintf("nav: path segment %v -> %v is not axis aligned", from, to))
		}

		steps := cur.Steps(dir)
		switch steps {
		case 1:
			out = append(out, bot.LeftAction())
		case 2:
			out = append(out, bot.RightAction(), bot.RightAction())
		case 3:
			out = append(out, bot.RightAction())
		}
		cur = dir

		dist := geom.Manhattan(from, to)
		if steps == 0 && len(out) > 0 && out[len(out)-1].Kind == bot.Walk {
			out[len(out)-1].Distance += dist
			continue
		}
		out = append(out, bot.WalkAction(dist))
	}
	return out
}
