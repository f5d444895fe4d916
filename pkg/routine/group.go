package routine

import (
	"fmt"

	"golang.org/x/sync/errgroup"
)

// Group fans tasks out to goroutines and joins them all in Wait,
// reporting the first error. A panicking task becomes an error instead
// of crashing the process.
type Group struct {
	eg errgroup.Group
}

// NewGroup creates an empty group
func NewGroup() *Group {
	return &Group{}
}

// SetLimit caps the number of concurrently running tasks. It must be
// called before any task is started.
func (g *Group) SetLimit(n int) {
	g.eg.SetLimit(n)
}

// Go runs fn on a new goroutine
func (g *Group) Go(fn func() error) error {
	if fn == nil {
		return ErrNilTask
	}

	g.eg.Go(func() (err error) {
		defer func() {
			if r := recover(); r != nil {
				err = fmt.Errorf("task panicked: %v", r)
			}
		}()
		return fn()
	})
	return nil
}

// Wait blocks until every started task has finished and returns the
// first error among them
func (g *Group) Wait() error {
	return g.eg.Wait()
}
