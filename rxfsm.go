package rxfsm

import (
	"log/slog"
	"sort"

	"github.com/colintheshots/RxFsm/internal/runtime"
	"github.com/colintheshots/RxFsm/pkg/domain"
)

// Fsm is the high-level entry point for the library. It is assembled
// with the fluent Create / WithTopStates / WithInitialState chain and
// becomes live on Activate.
//
// An Fsm is not safe for concurrent use; see the package documentation
// for the serialization contract.
type Fsm struct {
	topStates    []*domain.State
	topStatesSet bool
	initialPath  string

	logger *slog.Logger
	hooks  domain.LifecycleHooks

	buildErr error
	ctrl     *runtime.Controller
}

// Option defines a functional option for configuring the Fsm.
type Option func(*Fsm)

// WithLogger sets a custom structured logger for the engine. Without it
// the engine logs nowhere.
func WithLogger(logger *slog.Logger) Option {
	return func(f *Fsm) {
		f.logger = logger
	}
}

// WithHooks registers lifecycle observability hooks, invoked on state
// entries, exits and processed transitions.
func WithHooks(hooks domain.LifecycleHooks) Option {
	return func(f *Fsm) {
		f.hooks = hooks
	}
}

// Create returns an empty machine builder.
func Create(opts ...Option) *Fsm {
	f := &Fsm{}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// WithTopStates fixes the state forest. Top states can only be declared
// once; a repeated call is reported by Activate.
func (f *Fsm) WithTopStates(states ...*domain.State) *Fsm {
	if f.topStatesSet {
		f.recordErr(domain.ErrTopStatesAlreadySet)
		return f
	}
	f.topStates = states
	f.topStatesSet = true
	return f
}

// WithInitialState fixes the path of the state entered on activation.
func (f *Fsm) WithInitialState(path string) *Fsm {
	f.initialPath = path
	return f
}

// Activate validates the configuration, enters the initial configuration
// and subscribes its transition set. It must be called exactly once; any
// configuration error (missing top states, unresolved initial path,
// duplicate paths, non-terminating default sub-state chains) is returned
// here.
func (f *Fsm) Activate() error {
	if f.ctrl != nil {
		return domain.ErrAlreadyActive
	}
	if f.buildErr != nil {
		return f.buildErr
	}

	ctrl := runtime.NewController(f.topStates, f.initialPath,
		runtime.WithLogger(f.logger),
		runtime.WithHooks(f.hooks),
	)
	if err := ctrl.Activate(); err != nil {
		return err
	}
	f.ctrl = ctrl
	return nil
}

// Deactivate cancels every live event subscription, leaving the machine
// in its current configuration but inert. It is idempotent and safe to
// call on a never-activated machine.
func (f *Fsm) Deactivate() {
	if f.ctrl != nil {
		f.ctrl.Deactivate()
	}
}

// Active reports whether the machine has been activated.
func (f *Fsm) Active() bool {
	return f.ctrl != nil && f.ctrl.Active()
}

// CurrentState returns the active leaf state, or nil before activation.
func (f *Fsm) CurrentState() *domain.State {
	if f.ctrl == nil {
		return nil
	}
	return f.ctrl.Current()
}

// CurrentPath returns the canonical path of the active leaf, or "".
func (f *Fsm) CurrentPath() string {
	if f.ctrl == nil {
		return ""
	}
	return f.ctrl.CurrentPath()
}

// StatePaths returns the sorted paths of every state in the forest.
// Empty before activation.
func (f *Fsm) StatePaths() []string {
	if f.ctrl == nil {
		return nil
	}
	paths := f.ctrl.StatePaths()
	sort.Strings(paths)
	return paths
}

// SubscriptionCount reports the number of live event subscriptions.
func (f *Fsm) SubscriptionCount() int {
	if f.ctrl == nil {
		return 0
	}
	return f.ctrl.SubscriptionCount()
}

func (f *Fsm) recordErr(err error) {
	if f.buildErr == nil {
		f.buildErr = err
	}
}
