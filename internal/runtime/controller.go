package runtime

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/colintheshots/RxFsm/internal/logging"
	"github.com/colintheshots/RxFsm/pkg/domain"
)

// Controller owns the mutable runtime of a machine: the currently active
// leaf state and the set of live event subscriptions. It processes one
// occurrence at a time to completion; subscriptions are torn down before
// any exit hook runs, so an in-progress reconfiguration can never be
// interrupted by another one.
//
// A Controller is not safe for concurrent use. Occurrences produced on
// other goroutines must be serialized onto one logical thread of control
// before they reach the subscribed streams.
type Controller struct {
	topStates   []*domain.State
	initialPath string

	logger *slog.Logger
	hooks  domain.LifecycleHooks

	idx     *indexes
	current *domain.State
	subs    []domain.Subscription

	active      bool
	dispatching bool
	pending     []pendingOccurrence
}

type pendingOccurrence struct {
	transition *domain.Transition
	occ        domain.Occurrence
}

// Option configures a Controller.
type Option func(*Controller)

// WithLogger sets a structured logger for engine events.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Controller) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// WithHooks registers lifecycle observability hooks.
func WithHooks(hooks domain.LifecycleHooks) Option {
	return func(c *Controller) {
		c.hooks = hooks
	}
}

// NewController creates an inactive controller for the given forest and
// initial state path. Validation happens in Activate.
func NewController(topStates []*domain.State, initialPath string, opts ...Option) *Controller {
	c := &Controller{
		topStates:   topStates,
		initialPath: initialPath,
		logger:      logging.NewNop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Activate builds the lookup indexes, validates the configuration
// eagerly, enters every state from the configured initial state down its
// default sub-state chain and activates the reached leaf's transitions.
// Activation happens exactly once; a second call is rejected.
func (c *Controller) Activate() error {
	if c.active {
		return domain.ErrAlreadyActive
	}
	if len(c.topStates) == 0 {
		return domain.ErrTopStatesRequired
	}

	idx, err := buildIndexes(c.topStates)
	if err != nil {
		return err
	}
	if err := validateDefaults(idx); err != nil {
		return err
	}

	initial, ok := idx.byPath[c.initialPath]
	if !ok {
		return fmt.Errorf("%w: %q", domain.ErrInitialStateUnresolved, c.initialPath)
	}

	c.idx = idx
	c.active = true
	c.enter(initial)
	c.logger.Debug("machine activated", "initial", c.initialPath, "leaf", c.idx.paths[c.current])
	return nil
}

// Active reports whether Activate has completed successfully.
func (c *Controller) Active() bool { return c.active }

// Current returns the active leaf state, or nil before activation.
func (c *Controller) Current() *domain.State { return c.current }

// CurrentPath returns the path of the active leaf, or "" before
// activation.
func (c *Controller) CurrentPath() string {
	if c.current == nil {
		return ""
	}
	return c.idx.paths[c.current]
}

// StatePaths returns every path in the forest. Only valid after
// activation.
func (c *Controller) StatePaths() []string {
	if c.idx == nil {
		return nil
	}
	paths := make([]string, 0, len(c.idx.byPath))
	for path := range c.idx.byPath {
		paths = append(paths, path)
	}
	return paths
}

// SubscriptionCount reports the number of live event subscriptions.
func (c *Controller) SubscriptionCount() int { return len(c.subs) }

// Deactivate cancels every live subscription, leaving the configuration
// entered but inert. It is idempotent.
func (c *Controller) Deactivate() {
	c.deactivateTransitions()
}

// handle is the single entry point for occurrences delivered by
// subscribed sources. An occurrence arriving while a dispatch is already
// in progress (an action emitting into a still-subscribed stream) is
// deferred to a FIFO queue and processed after the in-flight
// reconfiguration completes.
func (c *Controller) handle(t *domain.Transition, occ domain.Occurrence) error {
	c.pending = append(c.pending, pendingOccurrence{transition: t, occ: occ})
	if c.dispatching {
		return nil
	}
	c.dispatching = true
	defer func() { c.dispatching = false }()

	var firstErr error
	for len(c.pending) > 0 {
		next := c.pending[0]
		c.pending = c.pending[1:]
		if err := c.process(next.transition, next.occ); err != nil {
			c.logger.Error("occurrence dispatch failed",
				"event", next.transition.Event(),
				"target", next.occ.Target,
				"err", err)
			if firstErr == nil {
				firstErr = err
			}
		}
	}
	return firstErr
}

// process runs the transition's action and, for targeted occurrences,
// the full reconfiguration. Internal occurrences change nothing.
func (c *Controller) process(t *domain.Transition, occ domain.Occurrence) error {
	t.Act(occ)
	if occ.Internal() {
		here := c.idx.paths[c.current]
		c.logger.Debug("internal transition", "event", t.Event(), "state", here)
		c.emitTransition(t.Event(), here, here, true)
		return nil
	}
	return c.switchState(t.Event(), occ.Target)
}

// switchState reconfigures into the state named by path. Subscriptions
// are cancelled before any exit hook runs, so a transition cannot fire
// again on a state mid-exit.
func (c *Controller) switchState(event, path string) error {
	nominal, ok := c.idx.byPath[path]
	if !ok {
		return fmt.Errorf("%w: %q", domain.ErrUnknownTargetPath, path)
	}
	target, err := descendDefaults(nominal)
	if err != nil {
		return err
	}

	from := c.idx.paths[c.current]
	statesToExit, statesToEnter := transitionPath(c.idx.ancestors[c.current], c.idx.ancestors[target])

	c.deactivateTransitions()

	c.exitState(c.current)
	for _, s := range statesToExit {
		c.exitState(s)
	}
	for _, s := range statesToEnter {
		c.enterState(s)
	}
	c.enter(target)

	to := c.idx.paths[c.current]
	c.logger.Debug("switched state", "event", event, "from", from, "to", to)
	c.emitTransition(event, from, to, false)
	return nil
}

// enter runs entry hooks from s down its default sub-state chain, makes
// the reached leaf current and activates its transition set.
func (c *Controller) enter(s *domain.State) {
	cur := s
	for {
		c.enterState(cur)
		next := cur.InitialSubState()
		if next == nil {
			break
		}
		cur = next
	}
	c.current = cur
	c.activateTransitions()
}

// activateTransitions gathers the transitions of the current leaf and
// its ancestors, leaf first then nearest to farthest ancestor,
// deduplicates them by event identifier (the first, leaf-closest
// transition wins) and subscribes each retained transition's source.
func (c *Controller) activateTransitions() {
	chain := c.idx.ancestors[c.current]
	states := make([]*domain.State, 0, len(chain)+1)
	states = append(states, c.current)
	for i := len(chain) - 1; i >= 0; i-- {
		states = append(states, chain[i])
	}

	seen := make(map[string]bool)
	for _, s := range states {
		for _, t := range s.Transitions() {
			if seen[t.Event()] {
				continue
			}
			seen[t.Event()] = true

			transition := t
			sub := t.Source().Subscribe(func(occ domain.Occurrence) error {
				return c.handle(transition, occ)
			})
			c.subs = append(c.subs, sub)
		}
	}
}

func (c *Controller) deactivateTransitions() {
	for _, sub := range c.subs {
		sub.Unsubscribe()
	}
	c.subs = nil
}

func (c *Controller) enterState(s *domain.State) {
	s.Enter()
	if c.hooks.OnStateEnter != nil {
		c.hooks.OnStateEnter(&domain.StateEvent{
			Path:      c.idx.paths[s],
			Name:      s.Name(),
			Timestamp: time.Now(),
		})
	}
}

func (c *Controller) exitState(s *domain.State) {
	s.Exit()
	if c.hooks.OnStateExit != nil {
		c.hooks.OnStateExit(&domain.StateEvent{
			Path:      c.idx.paths[s],
			Name:      s.Name(),
			Timestamp: time.Now(),
		})
	}
}

func (c *Controller) emitTransition(event, from, to string, internal bool) {
	if c.hooks.OnTransition == nil {
		return
	}
	c.hooks.OnTransition(&domain.TransitionEvent{
		Event:     event,
		From:      from,
		To:        to,
		Internal:  internal,
		Timestamp: time.Now(),
	})
}
