package component

import (
	"github.com/jakecoffman/cp"
	"github.com/milk9111/brawler/action"
	"gopkg.in/eapache/queue.v1"
)

// InputQueue buffers gestures for a fighter until the action system drains
// them. Pending holds action.Input values.
type InputQueue struct {
	Pending *queue.Queue
}

// NewInputQueue returns an empty queue.
func NewInputQueue() *InputQueue {
	return &InputQueue{Pending: queue.New()}
}

// Push appends a gesture.
func (q *InputQueue) Push(in action.Input) {
	if q.Pending == nil {
		q.Pending = queue.New()
	}
	q.Pending.Add(in)
}

// Pop removes the oldest gesture.
func (q *InputQueue) Pop() (action.Input, bool) {
	if q.Pending == nil || q.Pending.Length() == 0 {
		return action.Input{}, false
	}
	in, _ := q.Pending.Remove().(action.Input)
	return in, true
}

func (q *InputQueue) Len() int {
	if q.Pending == nil {
		return 0
	}
	return q.Pending.Length()
}

var InputQueueComponent = NewComponent[InputQueue]()

// Pointer tracks a mouse press until it is released.
type Pointer struct {
	Pressed    bool
	Start      cp.Vector
	StartFrame int
}

var PointerComponent = NewComponent[Pointer]()
