package mind

import (
	"github.com/EaterOA/AICombat/internal/bot"
)

// Mode is the drain discipline of a Queued source.
type Mode int

const (
	// Normal drains the queue before asking the planner for more.
	Normal Mode = iota
	// Preemptive asks the planner on every call and only falls back to the
	// queue when it declines to act.
	Preemptive
)

func (m Mode) String() string {
	if m == Preemptive {
		return "preemptive"
	}
	return "normal"
}

// Queue is a FIFO of pending actions handed to a Planner.
type Queue struct {
	actions []bot.Action
	cleared bool
}

func (q *Queue) Left() { q.push(bot.LeftAction()) }
func (q *Queue) Right() { q.push(bot.RightAction()) }
func (q *Queue) Walk(d int) { q.push(bot.WalkAction(d)) }
func (q *Queue) Shoot() { q.push(bot.ShootAction()) }
func (q *Queue) Wait() { q.push(bot.WaitAction()) }
func (q *Queue) Continue() { q.push(bot.ContinueAction()) }
func (q *Queue) All(a ...bot.Action) { q.actions = append(q.actions, a...) }

// Reverse queues a half turn.
func (q *Queue) Reverse() {
	q.Left()
	q.Left()
}

// Clear drops every pending action. In preemptive mode the body is then
// told to stop once nothing else is queued.
func (q *Queue) Clear() {
	q.actions = nil
	q.cleared = true
}

func (q *Queue) Empty() bool { return len(q.actions) == 0 }
func (q *Queue) Len() int { return len(q.actions) }

func (q *Queue) push(a bot.Action) {
	q.actions = append(q.actions, a)
}

func (q *Queue) pop() bot.Action {
	a := q.actions[0]
	q.actions[0] = bot.Action{}
	q.actions = q.actions[1:]
	return a
}

// Planner is decision logic that may return an explicit action or push a
// sequence onto the queue. An explicit action wins over anything queued.
type Planner interface {
	Plan(st bot.Status, q *Queue) bot.Action
}

// PlannerFunc adapts a function to Planner.
type PlannerFunc func(st bot.Status, q *Queue) bot.Action

func (f PlannerFunc) Plan(st bot.Status, q *Queue) bot.Action { return f(st, q) }

// Queued wraps a Planner into a Source.
type Queued struct {
	planner Planner
	mode    Mode
	queue   Queue
}

// NewQueued fixes the drain mode for the lifetime of the source.
func NewQueued(p Planner, mode Mode) *Queued {
	return &Queued{planner: p, mode: mode}
}

func (q *Queued) Mode() Mode { return q.mode }

// Queue exposes the pending actions.
func (q *Queued) Queue() *Queue { return &q.queue }

func (q *Queued) Decide(st bot.Status) bot.Action {
	if q.mode == Preemptive {
		return q.preemptive(st)
	}
	return q.normal(st)
}

func (q *Queued) normal(st bot.Status) bot.Action {
	if !ready(st) {
		return bot.ContinueAction()
	}
	if !q.queue.Empty() {
		return q.queue.pop()
	}
	if a := q.planner.Plan(st, &q.queue); a.Kind != bot.Continue {
		return a
	}
	if !q.queue.Empty() {
		return q.queue.pop()
	}
	return bot.ContinueAction()
}

func (q *Queued) preemptive(st bot.Status) bot.Action {
	q.queue.cleared = false
	if a := q.planner.Plan(st, &q.queue); a.Kind != bot.Continue {
		return a
	}
	if !ready(st) && !q.queue.cleared {
		return bot.ContinueAction()
	}
	if !q.queue.Empty() {
		return q.queue.pop()
	}
	if q.queue.cleared {
		return bot.WaitAction()
	}
	return bot.ContinueAction()
}
