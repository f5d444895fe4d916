package pool

import (
	"context"
	"sync"
)

// Stats is a snapshot of pool activity
type Stats struct {
	Idle      int    // resources available for borrowing
	Leased    int    // resources currently on loan
	Waiting   int    // borrowers blocked in AcquireContext
	Acquires  uint64 // successful borrows
	Releases  uint64 // successful returns
	Exhausted uint64 // fail-fast borrows that found the pool empty
}

// Pool holds idle resources of type T and lends them out through leases.
// All methods are safe for concurrent use. The zero value is not usable;
// construct with New or NewWithCleanup.
type Pool[T any] struct {
	mu      sync.Mutex
	idle    []T      // free resources, most recently added last
	waiters []chan T // blocked borrowers in arrival order
	cleanup func(T)
	closed  bool

	leased    int
	acquires  uint64
	releases  uint64
	exhausted uint64
}

// New creates an empty pool
func New[T any]() *Pool[T] {
	return &Pool[T]{}
}

// NewWithCleanup creates an empty pool that passes discarded resources to
// fn. Resources are discarded when the pool closes and when a lease is
// released after the pool has closed.
func NewWithCleanup[T any](fn func(T)) *Pool[T] {
	return &Pool[T]{cleanup: fn}
}

// Add transfers ownership of a resource into the pool. If a borrower is
// blocked in AcquireContext the resource is handed to it directly,
// otherwise it joins the idle stack. Adding to a closed pool discards the
// resource and returns ErrPoolClosed.
func (p *Pool[T]) Add(resource T) error {
	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		p.discard(resource)
		return ErrPoolClosed
	}
	if !p.handoff(resource) {
		p.idle = append(p.idle, resource)
	}
	p.mu.Unlock()
	return nil
}

// Acquire borrows a resource without blocking. It returns ErrPoolExhausted
// when no idle resource is available and ErrPoolClosed after Close. Which
// idle resource is returned is unspecified.
func (p *Pool[T]) Acquire() (*Lease[T], error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.closed {
		return nil, ErrPoolClosed
	}
	if len(p.idle) == 0 {
		p.exhausted++
		return nil, ErrPoolExhausted
	}

	resource := p.popIdle()
	p.leased++
	p.acquires++
	return &Lease[T]{pool: p, resource: resource}, nil
}

// AcquireContext borrows a resource, blocking until one is released or
// added, the context is cancelled, or the pool closes. Blocked borrowers
// are served in arrival order.
func (p *Pool[T]) AcquireContext(ctx context.Context) (*Lease[T], error) {
	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		return nil, ErrPoolClosed
	}
	if len(p.idle) > 0 {
		resource := p.popIdle()
		p.leased++
		p.acquires++
		p.mu.Unlock()
		return &Lease[T]{pool: p, resource: resource}, nil
	}

	w := make(chan T, 1)
	p.waiters = append(p.waiters, w)
	p.mu.Unlock()

	select {
	case resource, ok := <-w:
		if !ok {
			return nil, ErrPoolClosed
		}
		return &Lease[T]{pool: p, resource: resource}, nil
	case <-ctx.Done():
		// A handoff may have won the race with the cancellation. If it
		// did, the delivered resource goes back to the pool.
		if resource, ok := p.cancelWait(w); ok {
			p.requeue(resource)
		}
		return nil, ctx.Err()
	}
}

// Empty reports whether no idle resource is available
func (p *Pool[T]) Empty() bool {
	return p.Size() == 0
}

// Size returns the number of idle resources
func (p *Pool[T]) Size() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.idle)
}

// Leased returns the number of resources currently on loan
func (p *Pool[T]) Leased() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.leased
}

// Stats returns a snapshot of pool activity
func (p *Pool[T]) Stats() Stats {
	p.mu.Lock()
	defer p.mu.Unlock()
	return Stats{
		Idle:      len(p.idle),
		Leased:    p.leased,
		Waiting:   len(p.waiters),
		Acquires:  p.acquires,
		Releases:  p.releases,
		Exhausted: p.exhausted,
	}
}

// Close marks the pool closed, fails blocked borrowers with ErrPoolClosed
// and discards all idle resources. Outstanding leases stay valid; their
// resources are discarded instead of re-pooled when released. Closing an
// already closed pool is a no-op.
func (p *Pool[T]) Close() error {
	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		return nil
	}
	p.closed = true
	idle := p.idle
	waiters := p.waiters
	p.idle = nil
	p.waiters = nil
	p.mu.Unlock()

	for _, w := range waiters {
		close(w)
	}
	for _, resource := range idle {
		p.discard(resource)
	}
	return nil
}

// put returns a leased resource to the pool. Called by Lease.Release
// exactly once per lease.
func (p *Pool[T]) put(resource T) {
	p.mu.Lock()
	p.leased--
	p.releases++
	if p.closed {
		p.mu.Unlock()
		p.discard(resource)
		return
	}
	if !p.handoff(resource) {
		p.idle = append(p.idle, resource)
	}
	p.mu.Unlock()
}

// handoff gives a resource to the oldest blocked borrower. The waiter
// channel is buffered, so the send cannot block. Caller must hold p.mu.
func (p *Pool[T]) handoff(resource T) bool {
	if len(p.waiters) == 0 {
		return false
	}
	w := p.waiters[0]
	p.waiters[0] = nil
	p.waiters = p.waiters[1:]
	w <- resource
	p.leased++
	p.acquires++
	return true
}

// popIdle removes and returns the most recently added idle resource.
// Caller must hold p.mu and ensure the stack is non-empty.
func (p *Pool[T]) popIdle() T {
	n := len(p.idle) - 1
	resource := p.idle[n]
	var zero T
	p.idle[n] = zero
	p.idle = p.idle[:n]
	return resource
}

// cancelWait withdraws a waiter channel. When the waiter was already
// served it returns the delivered resource so the caller can requeue it.
func (p *Pool[T]) cancelWait(w chan T) (T, bool) {
	p.mu.Lock()
	for i, q := range p.waiters {
		if q == w {
			p.waiters = append(p.waiters[:i], p.waiters[i+1:]...)
			p.mu.Unlock()
			var zero T
			return zero, false
		}
	}
	p.mu.Unlock()

	// Not queued anymore: either a handoff filled the buffer or Close
	// closed the channel.
	select {
	case resource, ok := <-w:
		if ok {
			return resource, true
		}
	default:
	}
	var zero T
	return zero, false
}

// requeue takes back a resource that was handed to a borrower that gave
// up, undoing the borrow accounting.
func (p *Pool[T]) requeue(resource T) {
	p.mu.Lock()
	p.leased--
	p.acquires--
	if p.closed {
		p.mu.Unlock()
		p.discard(resource)
		return
	}
	if !p.handoff(resource) {
		p.idle = append(p.idle, resource)
	}
	p.mu.Unlock()
}

// discard hands a resource that will not return to the pool to the
// cleanup func, if one was configured. Must be called without holding
// p.mu.
func (p *Pool[T]) discard(resource T) {
	if p.cleanup != nil {
		p.cleanup(resource)
	}
}
