package handle

import (
	"errors"
	"io"
	"sync"
)

// Group owns a stack of handles and closes them in reverse acquisition
// order. Closing the group is idempotent.
type Group struct {
	mu      sync.Mutex
	handles []*Managed
	closed  bool
}

// NewGroup creates an empty group
func NewGroup() *Group {
	return &Group{}
}

// Manage wraps a resource and puts the handle under group ownership
func (g *Group) Manage(name string, resource io.Closer) (*Managed, error) {
	handle, err := Manage(name, resource)
	if err != nil {
		return nil, err
	}

	g.mu.Lock()
	defer g.mu.Unlock()
	if g.closed {
		handle.Close()
		return nil, ErrAlreadyClosed
	}
	g.handles = append(g.handles, handle)
	return handle, nil
}

// Len returns the number of handles the group owns
func (g *Group) Len() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return len(g.handles)
}

// Close closes every handle, newest first, and joins their errors.
// Handles already closed individually are skipped.
func (g *Group) Close() error {
	g.mu.Lock()
	if g.closed {
		g.mu.Unlock()
		return nil
	}
	g.closed = true
	handles := g.handles
	g.handles = nil
	g.mu.Unlock()

	var errs []error
	for i := len(handles) - 1; i >= 0; i-- {
		if err := handles[i].Close(); err != nil && !errors.Is(err, ErrAlreadyClosed) {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
