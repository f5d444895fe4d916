package pool

import "errors"

var (
	// ErrPoolExhausted is returned by Acquire when no idle resource is available
	ErrPoolExhausted = errors.New("pool is exhausted")

	// ErrPoolClosed is returned when borrowing from or adding to a closed pool
	ErrPoolClosed = errors.New("pool is closed")

	// ErrDoubleRelease is returned when a lease is released more than once
	ErrDoubleRelease = errors.New("lease already released")
)
