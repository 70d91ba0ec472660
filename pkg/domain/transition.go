package domain

// Transition belongs to exactly one state and reacts to occurrences of a
// named event. The event identifier is what override deduplication keys
// on: while a state is active, its transition for event E silences any
// ancestor's transition for the same E.
type Transition struct {
	event  string
	source EventSource
	action func(Occurrence)
}

// TransitionOption configures a Transition at construction time.
type TransitionOption func(*Transition)

// WithAction attaches an action executed on every occurrence of the
// transition's event, for both targeted and internal occurrences. The
// action runs before any reconfiguration.
func WithAction(fn func(Occurrence)) TransitionOption {
	return func(t *Transition) {
		t.action = fn
	}
}

// NewTransition declares a transition for the given event identifier,
// fed by source.
func NewTransition(event string, source EventSource, opts ...TransitionOption) *Transition {
	t := &Transition{event: event, source: source}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// Event returns the event identifier used for override deduplication.
func (t *Transition) Event() string { return t.event }

// Source returns the event source the engine subscribes to while the
// owning state is active.
func (t *Transition) Source() EventSource { return t.source }

// Act runs the transition's action, if any.
func (t *Transition) Act(occ Occurrence) {
	if t.action != nil {
		t.action(occ)
	}
}
