package domain

// State is a node in the state tree. A state may own an ordered list of
// sub-states and declare an optional default sub-state, entered whenever
// the state itself is the target of a transition or the configured
// initial state.
//
// Identity is pointer identity: the engine uses *State as a map key, so
// two structurally identical states are still distinct states.
type State struct {
	name            string
	parent          *State
	subStates       []*State
	initialSubState *State
	transitions     []*Transition
	onEnter         func()
	onExit          func()
}

// StateOption configures a State at construction time.
type StateOption func(*State)

// WithSubStates attaches child states in order and sets their parent
// back-reference. Sibling names must be unique; the collision is caught
// at activation time when paths are indexed.
func WithSubStates(children ...*State) StateOption {
	return func(s *State) {
		for _, child := range children {
			child.parent = s
			s.subStates = append(s.subStates, child)
		}
	}
}

// WithInitialSubState marks the default sub-state. It must be one of the
// state's sub-states; activation fails otherwise.
func WithInitialSubState(child *State) StateOption {
	return func(s *State) {
		s.initialSubState = child
	}
}

// WithTransitions declares the state's outgoing transitions in order.
func WithTransitions(transitions ...*Transition) StateOption {
	return func(s *State) {
		s.transitions = append(s.transitions, transitions...)
	}
}

// OnEnter registers the entry hook, invoked with no arguments every time
// the state is entered. Side effects only; panics are not recovered by
// the engine.
func OnEnter(fn func()) StateOption {
	return func(s *State) {
		s.onEnter = fn
	}
}

// OnExit registers the exit hook, the counterpart of OnEnter.
func OnExit(fn func()) StateOption {
	return func(s *State) {
		s.onExit = fn
	}
}

// NewState creates a state with the given name. The name must be
// non-empty and must not contain the path separator; both are validated
// at activation time.
func NewState(name string, opts ...StateOption) *State {
	s := &State{name: name}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Name returns the state's name, unique among its siblings.
func (s *State) Name() string { return s.name }

// Parent returns the owning state, or nil for a top state.
func (s *State) Parent() *State { return s.parent }

// SubStates returns the ordered child states.
func (s *State) SubStates() []*State {
	out := make([]*State, len(s.subStates))
	copy(out, s.subStates)
	return out
}

// InitialSubState returns the default sub-state, or nil.
func (s *State) InitialSubState() *State { return s.initialSubState }

// Transitions returns the state's declared transitions in order.
func (s *State) Transitions() []*Transition {
	out := make([]*Transition, len(s.transitions))
	copy(out, s.transitions)
	return out
}

// Enter runs the entry hook, if any.
func (s *State) Enter() {
	if s.onEnter != nil {
		s.onEnter()
	}
}

// Exit runs the exit hook, if any.
func (s *State) Exit() {
	if s.onExit != nil {
		s.onExit()
	}
}
