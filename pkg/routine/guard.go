package routine

import "errors"

var (
	// ErrNilTask is returned when starting a routine without a function
	ErrNilTask = errors.New("task must not be nil")

	// ErrNilRunner is returned by NewWorker without a runner
	ErrNilRunner = errors.New("runner must not be nil")
)

// Guard owns one goroutine and guarantees it can be joined. The guard is
// obtained only from Go, so a Guard in hand always refers to a started
// goroutine.
type Guard struct {
	done chan struct{}
}

// Go starts fn on a new goroutine and returns its guard
func Go(fn func()) (*Guard, error) {
	if fn == nil {
		return nil, ErrNilTask
	}

	g := &Guard{done: make(chan struct{})}
	go func() {
		defer close(g.done)
		fn()
	}()
	return g, nil
}

// Wait blocks until the goroutine has finished. It is safe to call any
// number of times, from any goroutine.
func (g *Guard) Wait() {
	<-g.done
}

// Done returns a channel closed when the goroutine finishes, for use in
// selects
func (g *Guard) Done() <-chan struct{} {
	return g.done
}
