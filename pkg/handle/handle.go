package handle

import (
	"errors"
	"io"
	"sync"
)

var (
	// ErrAlreadyClosed is returned when a handle is closed twice
	ErrAlreadyClosed = errors.New("handle already closed")

	// ErrNilResource is returned by Manage when given nothing to own
	ErrNilResource = errors.New("resource must not be nil")
)

// Managed owns one resource and releases it exactly once
type Managed struct {
	name     string
	resource io.Closer

	mu     sync.Mutex
	closed bool
}

// Manage wraps a resource in a handle. The handle owns the resource from
// here on; nothing else should close it.
func Manage(name string, resource io.Closer) (*Managed, error) {
	if resource == nil {
		return nil, ErrNilResource
	}
	return &Managed{
		name:     name,
		resource: resource,
	}, nil
}

// Name returns the handle's name
func (m *Managed) Name() string {
	return m.name
}

// Close releases the resource. The first call returns the resource's own
// close error, if any; every later call returns ErrAlreadyClosed.
func (m *Managed) Close() error {
	m.mu.Lock()
	if m.closed {
		m.mu.Unlock()
		return ErrAlreadyClosed
	}
	m.closed = true
	resource := m.resource
	m.resource = nil
	m.mu.Unlock()

	return resource.Close()
}

// Closed reports whether the handle has already been closed
func (m *Managed) Closed() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.closed
}
