package domain

import (
	"time"

	"github.com/google/uuid"
)

// Occurrence is a single emission from an event source. A non-empty
// Target names the path of the state to reconfigure into; an empty
// Target marks an internal transition (action only, no state change).
type Occurrence struct {
	ID     string
	Target string
	At     time.Time
}

// NewOccurrence creates a targeted occurrence. Pass an empty target for
// an internal transition, or use NewInternalOccurrence.
func NewOccurrence(target string) Occurrence {
	return Occurrence{
		ID:     uuid.NewString(),
		Target: target,
		At:     time.Now(),
	}
}

// NewInternalOccurrence creates a payload-less occurrence.
func NewInternalOccurrence() Occurrence {
	return NewOccurrence("")
}

// Internal reports whether the occurrence carries no target.
func (o Occurrence) Internal() bool { return o.Target == "" }

// Handler consumes occurrences delivered by an event source. The error
// return carries dispatch failures (e.g. an unresolvable target path)
// back to the emitter synchronously.
type Handler func(Occurrence) error

// EventSource produces a sequence of occurrences. Subscribe registers a
// cancellable listener; delivery is expected on a single logical thread
// of control (see package rxfsm docs).
type EventSource interface {
	Subscribe(Handler) Subscription
}

// Subscription is a handle to an active listener registration.
// Unsubscribe cancels it synchronously: once it returns, the handler is
// never invoked again from the same goroutine.
type Subscription interface {
	Unsubscribe()
}
