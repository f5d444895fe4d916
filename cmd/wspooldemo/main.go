package main

import (
	"context"
	"flag"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"time"

	"gopatterns/pkg/config"
	"gopatterns/pkg/logger"
	"gopatterns/pkg/pool"
	"gopatterns/pkg/routine"

	"github.com/gorilla/websocket"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
}

// echo upgrades the request and writes every message back unchanged
func echo(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		return
	}
	defer conn.Close()

	for {
		msgType, msg, err := conn.ReadMessage()
		if err != nil {
			return
		}
		if err := conn.WriteMessage(msgType, msg); err != nil {
			return
		}
	}
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

	srv := httptest.NewServer(http.HandlerFunc(echo))
	defer srv.Close()

	wsURL := "ws" + strings.TrimPrefix(srv.URL, "http")
	log.Info("echo endpoint up", "url", wsURL)

	// Websocket connections allow one reader and one writer at a time,
	// so each one is handed out through an exclusive lease.
	p := pool.NewWithCleanup(func(c *websocket.Conn) {
		c.Close()
	})
	defer p.Close()

	dialer := websocket.Dialer{HandshakeTimeout: 5 * time.Second}
	for i := 0; i < cfg.Pool.Size; i++ {
		conn, _, err := dialer.Dial(wsURL, nil)
		if err != nil {
			log.Error("failed to dial echo endpoint", "error", err)
			os.Exit(1)
		}
		if err := p.Add(conn); err != nil {
			log.Error("failed to seed pool", "error", err)
			os.Exit(1)
		}
	}
	log.Info("connection pool seeded", "size", p.Size())

	timeout := time.Duration(cfg.Pool.AcquireTimeout) * time.Second
	g := routine.NewGroup()
	for w := 0; w < cfg.Demo.Workers; w++ {
		worker := w
		err := g.Go(func() error {
			for i := 0; i < cfg.Demo.Iterations; i++ {
				if err := echoOnce(p, timeout, worker, i); err != nil {
					return err
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
		log.Error("echo round-trips failed", "error", err)
		os.Exit(1)
	}

	stats := p.Stats()
	log.Info("echo round-trips done",
		"messages", cfg.Demo.Workers*cfg.Demo.Iterations,
		"acquires", stats.Acquires,
		"idle", p.Size())
}

// echoOnce leases a connection for one message round trip and hands it
// back to the pool.
func echoOnce(p *pool.Pool[*websocket.Conn], timeout time.Duration, worker, i int) error {
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	lease, err := p.AcquireContext(ctx)
	if err != nil {
		return fmt.Errorf("worker %d: %w", worker, err)
	}
	defer lease.Release()

	conn := lease.Resource()
	sent := fmt.Sprintf("worker %d message %d", worker, i)
	if err := conn.WriteMessage(websocket.TextMessage, []byte(sent)); err != nil {
		return fmt.Errorf("worker %d write: %w", worker, err)
	}

	_, got, err := conn.ReadMessage()
	if err != nil {
		return fmt.Errorf("worker %d read: %w", worker, err)
	}
	if string(got) != sent {
		return fmt.Errorf("worker %d: echo mismatch: sent %q, got %q", worker, sent, got)
	}
	return nil
}
