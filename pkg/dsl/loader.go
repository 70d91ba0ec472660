package dsl

import (
	"fmt"
	"os"

	"github.com/mitchellh/mapstructure"
	"gopkg.in/yaml.v3"

	"github.com/colintheshots/RxFsm/pkg/domain"
	"github.com/colintheshots/RxFsm/pkg/registry"
)

// Load reads and parses a YAML machine definition file.
func Load(path string) (Definition, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return Definition{}, fmt.Errorf("failed to read definition: %w", err)
	}
	return Parse(raw)
}

// Parse decodes a YAML machine definition. The document is unmarshalled
// into a generic map first and then decoded strictly, so unknown keys
// are reported instead of silently dropped.
func Parse(raw []byte) (Definition, error) {
	var doc map[string]any
	if err := yaml.Unmarshal(raw, &doc); err != nil {
		return Definition{}, fmt.Errorf("invalid definition YAML: %w", err)
	}

	var def Definition
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:      &def,
		ErrorUnused: true,
	})
	if err != nil {
		return Definition{}, err
	}
	if err := dec.Decode(doc); err != nil {
		return Definition{}, fmt.Errorf("invalid definition: %w", err)
	}
	return def, nil
}

// Build compiles a definition into a state forest, resolving every
// transition's event source through the registry (streams are created on
// first use). It returns the top states and the initial path to feed
// into the machine builder.
func Build(def Definition, streams *registry.Registry) ([]*domain.State, string, error) {
	if def.Initial == "" {
		return nil, "", fmt.Errorf("definition: %w", domain.ErrInitialStateUnresolved)
	}
	if len(def.States) == 0 {
		return nil, "", fmt.Errorf("definition: %w", domain.ErrTopStatesRequired)
	}

	tops := make([]*domain.State, 0, len(def.States))
	for _, sd := range def.States {
		state, err := buildState(sd, streams)
		if err != nil {
			return nil, "", err
		}
		tops = append(tops, state)
	}
	return tops, def.Initial, nil
}

func buildState(sd StateDef, streams *registry.Registry) (*domain.State, error) {
	if sd.Name == "" {
		return nil, fmt.Errorf("definition: %w", domain.ErrInvalidStateName)
	}

	var opts []domain.StateOption

	if len(sd.States) > 0 {
		children := make([]*domain.State, 0, len(sd.States))
		var initial *domain.State
		for _, child := range sd.States {
			built, err := buildState(child, streams)
			if err != nil {
				return nil, err
			}
			children = append(children, built)
			if child.Name == sd.Initial {
				initial = built
			}
		}
		opts = append(opts, domain.WithSubStates(children...))
		if sd.Initial != "" {
			if initial == nil {
				return nil, fmt.Errorf("state %q: initial sub-state %q: %w",
					sd.Name, sd.Initial, domain.ErrInitialSubStateNotChild)
			}
			opts = append(opts, domain.WithInitialSubState(initial))
		}
	} else if sd.Initial != "" {
		return nil, fmt.Errorf("state %q: initial sub-state %q: %w",
			sd.Name, sd.Initial, domain.ErrInitialSubStateNotChild)
	}

	if len(sd.Transitions) > 0 {
		transitions := make([]*domain.Transition, 0, len(sd.Transitions))
		for _, td := range sd.Transitions {
			if td.Event == "" {
				return nil, fmt.Errorf("state %q: transition without event", sd.Name)
			}
			transitions = append(transitions, domain.NewTransition(td.Event, streams.GetOrCreate(td.Event)))
		}
		opts = append(opts, domain.WithTransitions(transitions...))
	}

	return domain.NewState(sd.Name, opts...), nil
}
