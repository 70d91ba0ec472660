/*
Package rxfsm is a hierarchical (nested-state) finite-state-machine engine
driven by event subscriptions.

A machine is a forest of states. Composite states declare an optional
default sub-state, so exactly one active configuration exists at any
instant: a leaf state plus its implicit ancestor chain. External event
occurrences either name a target state path, triggering a minimal
exit/enter reconfiguration through the lowest common ancestor, or carry
no payload, triggering only the transition's action (an internal
transition).

# Concept

States are addressed by canonical paths ("/parent/child"). While a leaf
is active, the engine subscribes to the event sources of the leaf's and
all its ancestors' transitions, deduplicated by event identifier with the
leaf-closest transition winning. That implements the classic hook
override: a descendant's handler for event E silences an ancestor's
handler for the same E for as long as the descendant is active.

On every reconfiguration all subscriptions are cancelled before the first
exit hook runs, so a transition can never fire again on a state mid-exit.

# Usage

	idle := domain.NewState("idle",
		domain.WithTransitions(domain.NewTransition("start", startEvents)))
	running := domain.NewState("running",
		domain.WithTransitions(domain.NewTransition("stop", stopEvents)))
	machine := domain.NewState("machine",
		domain.WithSubStates(idle, running),
		domain.WithInitialSubState(idle))

	fsm := rxfsm.Create().
		WithTopStates(machine).
		WithInitialState("/machine")
	if err := fsm.Activate(); err != nil {
		log.Fatal(err)
	}

	startEvents.Send("/machine/running")

# Concurrency

The engine is single-threaded and cooperative: one occurrence is
processed to completion before the next is observed. Event sources may
originate anywhere, but occurrences must be serialized onto one logical
thread of control before reaching subscribed streams; the HTTP and Redis
adapters under pkg/adapters show how hosts do that.
*/
package rxfsm
