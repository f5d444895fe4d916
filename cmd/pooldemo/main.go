package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"sync/atomic"
	"time"

	"gopatterns/pkg/config"
	"gopatterns/pkg/logger"
	"gopatterns/pkg/pool"
	"gopatterns/pkg/routine"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// conn is a stand-in for an expensive resource such as a database
// connection. The pool never builds these itself; main seeds them.
type conn struct {
	id int
}

func main() {
	configPath := flag.String("config", "", "Config file path (optional)")
	flag.Parse()

	cfg, err := config.LoadConfig(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	log := logger.New(logger.LogLevel(cfg.Logging.Level), cfg.Logging.Format)
	log.Info("pool demo starting", "config", cfg.String())

	p := pool.New[*conn]()
	for i := 1; i <= cfg.Pool.Size; i++ {
		if err := p.Add(&conn{id: i}); err != nil {
			log.Error("failed to seed pool", "error", err)
			os.Exit(1)
		}
	}
	log.Info("pool seeded", "size", p.Size())

	borrowAllOnce(log, p, cfg.Pool.Size)
	borrowConcurrently(log, p, cfg)

	stats := p.Stats()
	if p.Size() != cfg.Pool.Size || p.Leased() != 0 {
		log.Error("resource count drifted", "idle", p.Size(), "leased", p.Leased())
		os.Exit(1)
	}

	printer := message.NewPrinter(language.English)
	printer.Printf("completed %d borrows and %d returns across %d workers\n",
		stats.Acquires, stats.Releases, cfg.Demo.Workers)
	printer.Printf("pool intact: %d resources idle, %d exhaustion hits\n",
		p.Size(), stats.Exhausted)
}

// borrowAllOnce walks the single-threaded lease lifecycle: drain the
// pool, show the exhaustion error, return everything.
func borrowAllOnce(log *logger.Logger, p *pool.Pool[*conn], size int) {
	leases := make([]*pool.Lease[*conn], 0, size)
	for !p.Empty() {
		lease, err := p.Acquire()
		if err != nil {
			log.Error("acquire failed", "error", err)
			os.Exit(1)
		}
		log.Info("borrowed", "conn", lease.Resource().id, "idle", p.Size())
		leases = append(leases, lease)
	}

	if _, err := p.Acquire(); errors.Is(err, pool.ErrPoolExhausted) {
		log.Info("pool drained as expected", "error", err)
	}

	for _, lease := range leases {
		if err := lease.Release(); err != nil {
			log.Error("release failed", "error", err)
			os.Exit(1)
		}
	}
	log.Info("all connections returned", "idle", p.Size())
}

// borrowConcurrently hammers the pool from several workers, each
// waiting its turn when every connection is out.
func borrowConcurrently(log *logger.Logger, p *pool.Pool[*conn], cfg *config.Config) {
	timeout := time.Duration(cfg.Pool.AcquireTimeout) * time.Second
	var borrows atomic.Int64

	g := routine.NewGroup()
	for w := 0; w < cfg.Demo.Workers; w++ {
		worker := w
		err := g.Go(func() error {
			for i := 0; i < cfg.Demo.Iterations; i++ {
				ctx, cancel := context.WithTimeout(context.Background(), timeout)
				lease, err := p.AcquireContext(ctx)
				cancel()
				if err != nil {
					return fmt.Errorf("worker %d: %w", worker, err)
				}

				time.Sleep(time.Millisecond)
				borrows.Add(1)

				if err := lease.Release(); err != nil {
					return fmt.Errorf("worker %d: %w", worker, err)
				}
			}
			return nil
		})
		if err != nil {
			log.Error("failed to start worker", "error", err)
			os.Exit(1)
		}
	}

	if err := g.Wait(); err != nil {
		log.Error("concurrent borrowing failed", "error", err)
		os.Exit(1)
	}
	log.Info("concurrent phase done", "borrows", borrows.Load(), "workers", cfg.Demo.Workers)
}
