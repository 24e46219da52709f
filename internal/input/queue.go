package input

// Queue is an unbounded FIFO of events. It is owned by the main loop and is
// not safe for concurrent use.
type Queue struct {
	events []Event
}

// NewQueue returns an empty queue.
func NewQueue() *Queue {
	return &Queue{}
}

// Post appends e.
func (q *Queue) Post(e Event) {
	q.events = append(q.events, e)
}

// Len returns the number of pending events.
func (q *Queue) Len() int {
	return len(q.events)
}

// Drain returns all pending events in posting order and empties the queue.
// Returns nil when nothing is pending.
func (q *Queue) Drain() []Event {
	if len(q.events) == 0 {
		return nil
	}
	out := q.events
	q.events = nil
	return out
}
