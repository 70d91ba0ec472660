package rxfsm_test

import (
	"fmt"

	rxfsm "github.com/colintheshots/RxFsm"
	"github.com/colintheshots/RxFsm/pkg/domain"
	"github.com/colintheshots/RxFsm/pkg/event"
)

// Example builds a small media-player machine and drives it with event
// occurrences.
func Example() {
	play := event.New("play")
	pause := event.New("pause")

	stopped := domain.NewState("stopped",
		domain.OnEnter(func() { fmt.Println("stopped") }),
		domain.WithTransitions(domain.NewTransition("play", play)))
	paused := domain.NewState("paused",
		domain.OnEnter(func() { fmt.Println("paused") }),
		domain.WithTransitions(domain.NewTransition("play", play)))
	playing := domain.NewState("playing",
		domain.OnEnter(func() { fmt.Println("playing") }),
		domain.WithTransitions(domain.NewTransition("pause", pause)))
	player := domain.NewState("player",
		domain.WithSubStates(stopped, playing, paused),
		domain.WithInitialSubState(stopped))

	fsm := rxfsm.Create().
		WithTopStates(player).
		WithInitialState("/player")
	if err := fsm.Activate(); err != nil {
		fmt.Println("activate:", err)
		return
	}

	play.Send("/player/playing")
	pause.Send("/player/paused")
	play.Send("/player/playing")

	fmt.Println("active:", fsm.CurrentPath())
	// Output:
	// stopped
	// playing
	// paused
	// playing
	// active: /player/playing
}
