package domain

import "errors"

// Configuration errors. All are detected eagerly when the machine is
// activated, except ErrUnknownTargetPath which is detected per occurrence
// at dispatch time. Malformed configuration cannot self-correct, so none
// of these are retryable.
var (
	// ErrTopStatesRequired is returned when activating without top states.
	ErrTopStatesRequired = errors.New("top states must be provided")

	// ErrTopStatesAlreadySet is returned when the builder receives top
	// states more than once.
	ErrTopStatesAlreadySet = errors.New("top states can only be declared once")

	// ErrInitialStateUnresolved is returned when the configured initial
	// path does not name a state in the forest.
	ErrInitialStateUnresolved = errors.New("initial state path does not resolve")

	// ErrInvalidStateName is returned for an empty name or a name
	// containing the path separator.
	ErrInvalidStateName = errors.New("invalid state name")

	// ErrDuplicatePath is returned when two distinct states produce the
	// same path (sibling name collision).
	ErrDuplicatePath = errors.New("duplicate state path")

	// ErrStateReused is returned when the same state is reachable from
	// more than one parent, which breaks the forest invariant.
	ErrStateReused = errors.New("state attached to multiple parents")

	// ErrInitialSubStateNotChild is returned when a state's default
	// sub-state is not one of its sub-states.
	ErrInitialSubStateNotChild = errors.New("initial sub-state is not a sub-state")

	// ErrInitialSubStateCycle is returned when following default
	// sub-states from some state never reaches a state without one.
	ErrInitialSubStateCycle = errors.New("initial sub-state chain does not terminate")

	// ErrUnknownTargetPath is returned when an occurrence names a target
	// path absent from the forest.
	ErrUnknownTargetPath = errors.New("unknown target state path")

	// ErrAlreadyActive is returned on re-activation of an active machine.
	ErrAlreadyActive = errors.New("machine is already active")
)
