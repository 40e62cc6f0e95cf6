package obj

// CollisionKind names a collision rule, e.g. "ship_asteroid".
type CollisionKind string

// CollisionEvent reports that A and B collided this tick. Index is the
// position of B within its owning collection, or -1.
type CollisionEvent struct {
	Kind  CollisionKind
	A     *Sprite
	B     *Sprite
	Index int
}

// EventQueue is a simple FIFO of collision events, drained by the host to
// trigger sounds and scoring.
type EventQueue struct {
	items []CollisionEvent
}

// Push adds an event.
func (q *EventQueue) Push(evt CollisionEvent) {
	if q == nil {
		return
	}
	q.items = append(q.items, evt)
}

// Len returns the number of queued events.
func (q *EventQueue) Len() int {
	if q == nil {
		return 0
	}
	return len(q.items)
}

// Drain returns all events and clears the queue.
func (q *EventQueue) Drain() []CollisionEvent {
	if q == nil || len(q.items) == 0 {
		return nil
	}
	out := q.items
	q.items = nil
	return out
}
