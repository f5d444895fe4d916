package pool

import "sync"

// Lease is the handle through which a borrowed resource is held and
// returned. A lease is returned to its pool exactly once; calling Release
// from a defer is safe no matter how the borrowing scope ends. Leases
// must not be copied.
type Lease[T any] struct {
	mu       sync.Mutex
	pool     *Pool[T]
	resource T
	released bool
}

// Resource returns the borrowed resource. After the lease has been
// released it returns the zero value; the lease owns nothing anymore.
func (l *Lease[T]) Resource() T {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.resource
}

// Release returns the resource to the pool. The first call returns nil;
// every later call returns ErrDoubleRelease and leaves the pool untouched.
func (l *Lease[T]) Release() error {
	l.mu.Lock()
	if l.released {
		l.mu.Unlock()
		return ErrDoubleRelease
	}
	l.released = true
	resource := l.resource
	var zero T
	l.resource = zero
	l.mu.Unlock()

	l.pool.put(resource)
	return nil
}

// Released reports whether the lease has already been released
func (l *Lease[T]) Released() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.released
}
