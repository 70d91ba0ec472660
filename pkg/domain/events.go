package domain

import "time"

// StateEvent describes a single entry into or exit from a state.
type StateEvent struct {
	Path      string    `json:"path"`
	Name      string    `json:"name"`
	Timestamp time.Time `json:"timestamp"`
}

// TransitionEvent describes a processed occurrence: either a
// reconfiguration (From != To possible, Internal false) or an internal
// transition (Internal true, From == To).
type TransitionEvent struct {
	Event     string    `json:"event"`
	From      string    `json:"from"`
	To        string    `json:"to"`
	Internal  bool      `json:"internal"`
	Timestamp time.Time `json:"timestamp"`
}

// LifecycleHooks defines callbacks for engine observability. Hooks are
// invoked synchronously on the dispatching goroutine and must not drive
// control flow; nil callbacks are skipped.
type LifecycleHooks struct {
	OnStateEnter func(*StateEvent)
	OnStateExit  func(*StateEvent)
	OnTransition func(*TransitionEvent)
}

// MergeHooks combines several hook sets into one that invokes them in
// order. Useful for attaching logging and metrics at the same time.
func MergeHooks(hooks ...LifecycleHooks) LifecycleHooks {
	return LifecycleHooks{
		OnStateEnter: func(e *StateEvent) {
			for _, h := range hooks {
				if h.OnStateEnter != nil {
					h.OnStateEnter(e)
				}
			}
		},
		OnStateExit: func(e *StateEvent) {
			for _, h := range hooks {
				if h.OnStateExit != nil {
					h.OnStateExit(e)
				}
			}
		},
		OnTransition: func(e *TransitionEvent) {
			for _, h := range hooks {
				if h.OnTransition != nil {
					h.OnTransition(e)
				}
			}
		},
	}
}
