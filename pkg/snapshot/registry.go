package snapshot

import (
	"errors"
	"fmt"
	"sort"
	"sync"
)

// ErrUnknownPrototype is returned by Create for an unregistered name
var ErrUnknownPrototype = errors.New("unknown prototype")

// Registry holds named prototype snapshots and hands out clones of them
type Registry struct {
	mu         sync.RWMutex
	prototypes map[string]*Snapshot
}

// NewRegistry creates an empty registry
func NewRegistry() *Registry {
	return &Registry{
		prototypes: make(map[string]*Snapshot),
	}
}

// Register stores a prototype under a name, replacing any previous one.
// The registry keeps its own clone so later changes to the argument do
// not leak into created snapshots.
func (r *Registry) Register(name string, snap *Snapshot) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.prototypes[name] = snap.Clone()
}

// Create returns a clone of the named prototype
func (r *Registry) Create(name string) (*Snapshot, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	proto, ok := r.prototypes[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownPrototype, name)
	}
	return proto.Clone(), nil
}

// Names lists the registered prototypes in sorted order
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.prototypes))
	for name := range r.prototypes {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
