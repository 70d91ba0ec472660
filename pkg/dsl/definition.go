package dsl

// Definition is the root of a machine definition file. It uses
// mapstructure tags so the same structs decode from YAML, JSON or any
// other source that produces a generic map.
type Definition struct {
	// Initial is the path of the state entered on activation.
	Initial string `mapstructure:"initial"`

	// States is the forest of top states.
	States []StateDef `mapstructure:"states"`
}

// StateDef describes one state and its subtree.
type StateDef struct {
	Name string `mapstructure:"name"`

	// Initial names the default sub-state (by name, not path).
	Initial string `mapstructure:"initial"`

	States      []StateDef      `mapstructure:"states"`
	Transitions []TransitionDef `mapstructure:"transitions"`
}

// TransitionDef declares a transition by event name. The target of each
// occurrence is supplied at runtime by whoever feeds the event stream.
type TransitionDef struct {
	Event string `mapstructure:"event"`
}
