package routine

import (
	"context"

	"golang.org/x/sync/semaphore"
)

// Limiter bounds how many callers hold a slot at once
type Limiter struct {
	sem  *semaphore.Weighted
	size int64
}

// NewLimiter creates a limiter with the given slot count; counts below
// one fall back to a single slot
func NewLimiter(size int64) *Limiter {
	if size < 1 {
		size = 1
	}
	return &Limiter{
		sem:  semaphore.NewWeighted(size),
		size: size,
	}
}

// Acquire takes a slot, blocking until one frees or the context ends
func (l *Limiter) Acquire(ctx context.Context) error {
	return l.sem.Acquire(ctx, 1)
}

// TryAcquire takes a slot without blocking
func (l *Limiter) TryAcquire() bool {
	return l.sem.TryAcquire(1)
}

// Release frees a slot taken by Acquire or TryAcquire
func (l *Limiter) Release() {
	l.sem.Release(1)
}

// Size returns the total slot count
func (l *Limiter) Size() int64 {
	return l.size
}
