package schedule

import (
	"errors"

	"github.com/ChicagoDave/tubenet/pkg/cost"
)

// Queue is a FIFO of deferred actions in which each action appears at most
// once.
type Queue struct {
	items   []Action
	members map[Action]bool
}

// NewQueue returns an empty queue.
func NewQueue() *Queue {
	return &Queue{members: make(map[Action]bool)}
}

// Enqueue appends a at the back unless it is already queued. It reports
// whether a was added.
func (q *Queue) Enqueue(a Action) bool {
	if q.members[a] {
		return false
	}
	q.members[a] = true
	q.items = append(q.items, a)
	return true
}

// EnqueueFront puts a back at the head, for an action that just failed on
// funds and must keep its turn.
func (q *Queue) EnqueueFront(a Action) bool {
	if q.members[a] {
		return false
	}
	q.members[a] = true
	q.items = append([]Action{a}, q.items...)
	return true
}

// Dequeue pops the head. ok is false when the queue is empty.
func (q *Queue) Dequeue() (a Action, ok bool) {
	if len(q.items) == 0 {
		return Action{}, false
	}
	a = q.items[0]
	q.items = q.items[1:]
	delete(q.members, a)
	return a, true
}

// Contains reports whether a is queued.
func (q *Queue) Contains(a Action) bool { return q.members[a] }

// Len returns the number of queued actions.
func (q *Queue) Len() int { return len(q.items) }

// Items returns the queued actions in order.
func (q *Queue) Items() []Action {
	out := make([]Action, len(q.items))
	copy(out, q.items)
	return out
}

// Executor runs actions against the world. Attempt must not change any
// state; it returns what the action would cost or why it cannot run.
// Commit applies an action whose attempt succeeded.
type Executor interface {
	Attempt(a Action) (price int, err error)
	Commit(a Action, price int) error
}

// Discard records an action dropped during a drain.
type Discard struct {
	Action Action
	Err    error
}

// DrainResult summarises one drain.
type DrainResult struct {
	Committed []Action
	Discarded []Discard
	Stalled   bool // an action is still waiting for funds
}

// Drain runs queued actions in order. An action short of funds goes back to
// the front and stops the drain. Any other failure drops the action.
func (q *Queue) Drain(exec Executor) DrainResult {
	var res DrainResult
	for {
		a, ok := q.Dequeue()
		if !ok {
			return res
		}
		price, err := exec.Attempt(a)
		if err == nil {
			err = exec.Commit(a, price)
		}
		switch {
		case errors.Is(err, cost.ErrInsufficientFunds):
			q.EnqueueFront(a)
			res.Stalled = true
			return res
		case err != nil:
			res.Discarded = append(res.Discarded, Discard{Action: a, Err: err})
		default:
			res.Committed = append(res.Committed, a)
		}
	}
}
