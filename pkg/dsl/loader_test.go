package dsl_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	rxfsm "github.com/colintheshots/RxFsm"
	"github.com/colintheshots/RxFsm/pkg/domain"
	"github.com/colintheshots/RxFsm/pkg/dsl"
	"github.com/colintheshots/RxFsm/pkg/registry"
)

const playerYAML = `
initial: /player
states:
  - name: player
    initial: stopped
    states:
      - name: stopped
        transitions:
          - event: play
      - name: playing
        transitions:
          - event: pause
          - event: tick
      - name: paused
        transitions:
          - event: play
`

func TestParse(t *testing.T) {
	def, err := dsl.Parse([]byte(playerYAML))
	require.NoError(t, err)

	assert.Equal(t, "/player", def.Initial)
	require.Len(t, def.States, 1)

	player := def.States[0]
	assert.Equal(t, "player", player.Name)
	assert.Equal(t, "stopped", player.Initial)
	require.Len(t, player.States, 3)
	assert.Equal(t, "playing", player.States[1].Name)
	require.Len(t, player.States[1].Transitions, 2)
	assert.Equal(t, "pause", player.States[1].Transitions[0].Event)
}

func TestParse_RejectsUnknownKeys(t *testing.T) {
	_, err := dsl.Parse([]byte("initial: /a\nstates:\n  - name: a\n    history: deep\n"))
	assert.Error(t, err)
}

func TestParse_InvalidYAML(t *testing.T) {
	_, err := dsl.Parse([]byte(":\n  - ["))
	assert.ErrorContains(t, err, "invalid definition YAML")
}

func TestBuild_CompilesWorkingMachine(t *testing.T) {
	def, err := dsl.Parse([]byte(playerYAML))
	require.NoError(t, err)

	streams := registry.New()
	tops, initial, err := dsl.Build(def, streams)
	require.NoError(t, err)
	require.Equal(t, "/player", initial)

	fsm := rxfsm.Create().WithTopStates(tops...).WithInitialState(initial)
	require.NoError(t, fsm.Activate())
	assert.Equal(t, "/player/stopped", fsm.CurrentPath())

	play, ok := streams.Lookup("play")
	require.True(t, ok)
	require.NoError(t, play.Send("/player/playing"))
	assert.Equal(t, "/player/playing", fsm.CurrentPath())

	assert.Equal(t, []string{"pause", "play", "tick"}, streams.Names())
}

func TestBuild_Validation(t *testing.T) {
	streams := registry.New()

	t.Run("missing initial path", func(t *testing.T) {
		_, _, err := dsl.Build(dsl.Definition{States: []dsl.StateDef{{Name: "a"}}}, streams)
		assert.ErrorIs(t, err, domain.ErrInitialStateUnresolved)
	})

	t.Run("missing states", func(t *testing.T) {
		_, _, err := dsl.Build(dsl.Definition{Initial: "/a"}, streams)
		assert.ErrorIs(t, err, domain.ErrTopStatesRequired)
	})

	t.Run("initial sub-state not declared", func(t *testing.T) {
		def := dsl.Definition{Initial: "/a", States: []dsl.StateDef{{
			Name:    "a",
			Initial: "ghost",
			States:  []dsl.StateDef{{Name: "real"}},
		}}}
		_, _, err := dsl.Build(def, streams)
		assert.ErrorIs(t, err, domain.ErrInitialSubStateNotChild)
	})

	t.Run("initial sub-state on a leaf", func(t *testing.T) {
		def := dsl.Definition{Initial: "/a", States: []dsl.StateDef{{
			Name:    "a",
			Initial: "ghost",
		}}}
		_, _, err := dsl.Build(def, streams)
		assert.ErrorIs(t, err, domain.ErrInitialSubStateNotChild)
	})

	t.Run("transition without event", func(t *testing.T) {
		def := dsl.Definition{Initial: "/a", States: []dsl.StateDef{{
			Name:        "a",
			Transitions: []dsl.TransitionDef{{}},
		}}}
		_, _, err := dsl.Build(def, streams)
		assert.ErrorContains(t, err, "transition without event")
	})
}
