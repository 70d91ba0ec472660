package runtime

import (
	"fmt"
	"strings"

	"github.com/colintheshots/RxFsm/pkg/domain"
)

// indexes holds the lookup structures derived from the state forest at
// activation time: path->state, state->path and state->ancestor-chain
// (root-most ancestor first, excluding the state itself). They are built
// once and treated as immutable for the controller's lifetime.
type indexes struct {
	byPath    map[string]*domain.State
	paths     map[*domain.State]string
	ancestors map[*domain.State][]*domain.State
}

// buildIndexes walks every top state in pre-order, accumulating the
// growing path prefix and ancestor list as it descends.
func buildIndexes(topStates []*domain.State) (*indexes, error) {
	idx := &indexes{
		byPath:    make(map[string]*domain.State),
		paths:     make(map[*domain.State]string),
		ancestors: make(map[*domain.State][]*domain.State),
	}
	for _, top := range topStates {
		if err := idx.index(top, "", nil); err != nil {
			return nil, err
		}
	}
	return idx, nil
}

func (idx *indexes) index(s *domain.State, parentPath string, ancestors []*domain.State) error {
	name := s.Name()
	if name == "" || strings.Contains(name, domain.PathSeparator) {
		return fmt.Errorf("%w: %q", domain.ErrInvalidStateName, name)
	}

	path := parentPath + domain.PathSeparator + name
	if _, exists := idx.byPath[path]; exists {
		return fmt.Errorf("%w: %s", domain.ErrDuplicatePath, path)
	}
	if prev, exists := idx.paths[s]; exists {
		return fmt.Errorf("%w: %q already indexed as %s", domain.ErrStateReused, name, prev)
	}

	chain := make([]*domain.State, len(ancestors))
	copy(chain, ancestors)

	idx.byPath[path] = s
	idx.paths[s] = path
	idx.ancestors[s] = chain

	subAncestors := append(chain, s)
	for _, sub := range s.SubStates() {
		if err := idx.index(sub, path, subAncestors); err != nil {
			return err
		}
	}
	return nil
}

// validateDefaults checks, for every indexed state, that the declared
// default sub-state is one of its sub-states and that repeatedly
// following default sub-states terminates.
func validateDefaults(idx *indexes) error {
	for s, path := range idx.paths {
		init := s.InitialSubState()
		if init == nil {
			continue
		}
		if !isSubState(s, init) {
			return fmt.Errorf("%w: %s", domain.ErrInitialSubStateNotChild, path)
		}
		if _, err := descendDefaults(s); err != nil {
			return err
		}
	}
	return nil
}

// descendDefaults follows default sub-state links from s until a state
// without one is reached. A repeated state means the chain cannot
// terminate.
func descendDefaults(s *domain.State) (*domain.State, error) {
	seen := make(map[*domain.State]bool)
	cur := s
	for cur.InitialSubState() != nil {
		if seen[cur] {
			return nil, fmt.Errorf("%w: at %q", domain.ErrInitialSubStateCycle, cur.Name())
		}
		seen[cur] = true
		cur = cur.InitialSubState()
	}
	return cur, nil
}

func isSubState(parent, candidate *domain.State) bool {
	for _, sub := range parent.SubStates() {
		if sub == candidate {
			return true
		}
	}
	return false
}
