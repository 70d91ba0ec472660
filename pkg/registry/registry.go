package registry

import (
	"fmt"
	"sort"
	"sync"

	"github.com/colintheshots/RxFsm/pkg/domain"
	"github.com/colintheshots/RxFsm/pkg/event"
)

// Registry manages named event streams. It is the wiring point between
// machine definitions (which reference events by name) and producers
// (CLI input, HTTP, Redis) that feed occurrences into them.
type Registry struct {
	mu      sync.RWMutex
	streams map[string]*event.Stream
}

// New creates an empty registry.
func New() *Registry {
	return &Registry{
		streams: make(map[string]*event.Stream),
	}
}

// GetOrCreate returns the stream for the event name, creating it on
// first use.
func (r *Registry) GetOrCreate(name string) *event.Stream {
	r.mu.Lock()
	defer r.mu.Unlock()
	if s, ok := r.streams[name]; ok {
		return s
	}
	s := event.New(name)
	r.streams[name] = s
	return s
}

// Lookup returns the stream for the event name, or false if none was
// registered.
func (r *Registry) Lookup(name string) (*event.Stream, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	s, ok := r.streams[name]
	return s, ok
}

// Emit delivers an occurrence into the named stream. Returns an error if
// the event is unknown, or the first handler error.
func (r *Registry) Emit(name string, occ domain.Occurrence) error {
	s, ok := r.Lookup(name)
	if !ok {
		return fmt.Errorf("event not registered: %s", name)
	}
	return s.Emit(occ)
}

// Names returns the registered event names, sorted.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.streams))
	for name := range r.streams {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
