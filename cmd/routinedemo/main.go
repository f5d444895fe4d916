package main

import (
	"context"
	"flag"
	"os"
	"sync/atomic"
	"time"

	"gopatterns/pkg/logger"
	"gopatterns/pkg/routine"
)

func main() {
	logLevel := flag.String("log-level", "info", "Log level: debug, info, warn, error")
	logFormat := flag.String("log-format", "text", "Log format: text or json")
	flag.Parse()

	log := logger.New(logger.LogLevel(*logLevel), *logFormat)

	// Guard: a goroutine that cannot be forgotten
	g, err := routine.Go(func() {
		time.Sleep(20 * time.Millisecond)
	})
	if err != nil {
		log.Error("failed to start guarded goroutine", "error", err)
		os.Exit(1)
	}
	g.Wait()
	log.Info("guarded goroutine joined")

	// Worker: the same runner started and joined more than once
	var runs atomic.Int64
	w, err := routine.NewWorker(routine.RunnerFunc(func() {
		runs.Add(1)
		time.Sleep(10 * time.Millisecond)
	}))
	if err != nil {
		log.Error("failed to create worker", "error", err)
		os.Exit(1)
	}
	w.Start()
	log.Info("worker started", "running", w.Running())
	w.Start() // ignored while the first run is in flight
	w.Join()
	w.Start()
	w.Join()
	log.Info("worker joined", "runs", runs.Load())

	// Group with a concurrency cap
	var inFlight atomic.Int64
	grp := routine.NewGroup()
	grp.SetLimit(2)
	for i := 1; i <= 6; i++ {
		task := i
		err := grp.Go(func() error {
			n := inFlight.Add(1)
			log.Info("task running", "task", task, "in_flight", n)
			time.Sleep(15 * time.Millisecond)
			inFlight.Add(-1)
			return nil
		})
		if err != nil {
			log.Error("failed to start task", "error", err)
			os.Exit(1)
		}
	}
	if err := grp.Wait(); err != nil {
		log.Error("group failed", "error", err)
		os.Exit(1)
	}
	log.Info("limited group done", "tasks", 6, "limit", 2)

	// A panicking task comes back as an error instead of killing the demo
	crash := routine.NewGroup()
	if err := crash.Go(func() error {
		panic("worker tripped")
	}); err != nil {
		log.Error("failed to start task", "error", err)
		os.Exit(1)
	}
	if err := crash.Wait(); err != nil {
		log.Warn("panic captured", "error", err)
	}

	// Limiter: slots for concurrent work
	lim := routine.NewLimiter(2)
	ctx := context.Background()
	if err := lim.Acquire(ctx); err != nil {
		log.Error("failed to acquire slot", "error", err)
		os.Exit(1)
	}
	if err := lim.Acquire(ctx); err != nil {
		log.Error("failed to acquire slot", "error", err)
		os.Exit(1)
	}
	log.Info("limiter saturated", "size", lim.Size(), "try_acquire", lim.TryAcquire())
	lim.Release()
	log.Info("slot released", "try_acquire", lim.TryAcquire())
}
