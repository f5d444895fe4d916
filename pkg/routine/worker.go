package routine

import "sync"

// Runner is the work a Worker executes
type Runner interface {
	Run()
}

// RunnerFunc adapts a plain function to Runner
type RunnerFunc func()

func (f RunnerFunc) Run() { f() }

// Worker executes its runner on a dedicated goroutine. Start is a no-op
// while a run is unjoined; Join waits for the run and makes the worker
// startable again.
type Worker struct {
	runner Runner

	mu      sync.Mutex
	running bool
	done    chan struct{}
}

// NewWorker creates a worker around a runner
func NewWorker(runner Runner) (*Worker, error) {
	if runner == nil {
		return nil, ErrNilRunner
	}
	return &Worker{runner: runner}, nil
}

// Start launches the runner unless a run is already in flight
func (w *Worker) Start() {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.running {
		return
	}
	w.running = true
	w.done = make(chan struct{})

	done := w.done
	go func() {
		defer close(done)
		w.runner.Run()
	}()
}

// Join waits for the current run, if any, and resets the worker
func (w *Worker) Join() {
	w.mu.Lock()
	done := w.done
	w.mu.Unlock()

	if done == nil {
		return
	}
	<-done

	w.mu.Lock()
	if w.done == done {
		w.running = false
		w.done = nil
	}
	w.mu.Unlock()
}

// Running reports whether the worker has an unjoined run
func (w *Worker) Running() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.running
}
