package main

import (
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"gopatterns/pkg/config"
	"gopatterns/pkg/logger"
	"gopatterns/pkg/pubsub"
	"gopatterns/pkg/routine"

	"github.com/cdfmlr/ellipsis"
)

// event is the message fanned out to subscribers
type event struct {
	Seq     int    `json:"seq"`
	Payload string `json:"payload"`
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

	backend := pubsub.Backend(cfg.PubSub.Backend)
	ps, err := pubsub.New[event](pubsub.Config{
		Backend:    backend,
		Channel:    "gopatterns.events",
		RedisAddr:  cfg.PubSub.RedisAddr,
		BufferSize: cfg.PubSub.BufferSize,
	})
	if err != nil {
		log.Error("failed to create pubsub", "error", err)
		os.Exit(1)
	}
	log.Info("pubsub ready", "backend", backend)

	guards := make([]*routine.Guard, 0, 2)
	for i := 0; i < 2; i++ {
		name := fmt.Sprintf("sub-%d", i+1)
		sub := ps.Subscribe()
		slog := log.With("subscriber", name)

		g, err := routine.Go(func() {
			received := 0
			for res := range sub {
				if res.Err != nil {
					slog.Warn("bad message", "error", res.Err)
					continue
				}
				received++
				slog.Info("received",
					"seq", res.Ok.Seq,
					"payload", ellipsis.Centering(res.Ok.Payload, 24))
			}
			slog.Info("subscription drained", "received", received)
		})
		if err != nil {
			log.Error("failed to start subscriber", "error", err)
			os.Exit(1)
		}
		guards = append(guards, g)
	}

	// Redis delivers through the server, so give the subscriptions a
	// moment to register before publishing.
	if backend == pubsub.BackendRedis {
		time.Sleep(200 * time.Millisecond)
	}

	payload := strings.Repeat("sensor reading 42.7 ", 8)
	for seq := 1; seq <= cfg.Demo.Iterations; seq++ {
		if err := ps.Publish(event{Seq: seq, Payload: payload}); err != nil {
			log.Error("publish failed", "seq", seq, "error", err)
			os.Exit(1)
		}
	}
	log.Info("published", "events", cfg.Demo.Iterations)

	if backend == pubsub.BackendRedis {
		time.Sleep(200 * time.Millisecond)
	}

	if err := ps.Close(); err != nil {
		log.Error("failed to close pubsub", "error", err)
		os.Exit(1)
	}
	for _, g := range guards {
		g.Wait()
	}
}
