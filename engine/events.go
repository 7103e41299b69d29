/*
events.go - Explicit change signaling between writes and readers

PURPOSE:
  Write operations (overtime approved, rating closed, leave approved) need to
  tell interested readers to refresh. This dispatcher replaces ad-hoc global
  refresh hooks with an explicit subscription: subscribers register a
  callback, writers publish a typed event.

DELIVERY:
  Synchronous and in-order per publisher. Subscribers must not block; slow
  work belongs in the subscriber's own goroutine.
*/
package engine

import "sync"

type EventType string

const (
	EventOvertimeLogged   EventType = "overtime_logged"
	EventOvertimeApproved EventType = "overtime_approved"
	EventOvertimeRejected EventType = "overtime_rejected"
	EventLeaveApproved    EventType = "leave_approved"
	EventRatingClosed     EventType = "rating_closed"
)

// Event describes one change to engine-relevant data.
type Event struct {
	Type       EventType
	EmployeeID string
	Month      MonthKey
	Ref        string // record ID the event is about, when applicable
}

// Dispatcher fans events out to registered subscribers.
type Dispatcher struct {
	mu   sync.RWMutex
	subs []func(Event)
}

func NewDispatcher() *Dispatcher {
	return &Dispatcher{}
}

// Subscribe registers a callback for all events.
func (d *Dispatcher) Subscribe(fn func(Event)) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.subs = append(d.subs, fn)
}

// Publish delivers the event to every subscriber, synchronously.
func (d *Dispatcher) Publish(ev Event) {
	d.mu.RLock()
	subs := make([]func(Event), len(d.subs))
	copy(subs, d.subs)
	d.mu.RUnlock()

	for _, fn := range subs {
		fn(ev)
	}
}
