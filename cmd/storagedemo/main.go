package main

import (
	"errors"
	"flag"
	"fmt"
	"os"

	"gopatterns/pkg/config"
	"gopatterns/pkg/logger"
	"gopatterns/pkg/storage"
)

func main() {
	configPath := flag.String("config", "", "Config file path (optional)")
	flag.Parse()

	cfg, err := config.LoadConfig(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	log := logger.New(logger.LogLevel(cfg.Logging.Level), cfg.Logging.Format)

	variants := []storage.Config{
		{Kind: storage.Kind(cfg.Storage.Kind), DSN: cfg.Storage.DSN},
		{Kind: storage.KindSQLite, DSN: ":memory:"},
	}

	for _, sc := range variants {
		store, err := storage.NewStore(sc)
		if err != nil {
			log.Error("failed to create store", "kind", sc.Kind, "error", err)
			os.Exit(1)
		}

		if err := exercise(log.With("kind", string(sc.Kind)), store); err != nil {
			log.Error("store walk failed", "kind", sc.Kind, "error", err)
			os.Exit(1)
		}

		if err := store.Close(); err != nil {
			log.Error("failed to close store", "kind", sc.Kind, "error", err)
			os.Exit(1)
		}
	}

	if _, err := storage.NewStore(storage.Config{Kind: "tape"}); errors.Is(err, storage.ErrUnknownKind) {
		log.Warn("unknown kind rejected", "error", err)
	}
}

// exercise walks a store through the full key lifecycle
func exercise(log *logger.Logger, store storage.Store) error {
	entries := map[string]string{
		"host":   "build-03",
		"region": "eu-west-1",
		"owner":  "platform",
	}
	for k, v := range entries {
		if err := store.Put(k, v); err != nil {
			return fmt.Errorf("put %s: %w", k, err)
		}
	}

	region, err := store.Get("region")
	if err != nil {
		return fmt.Errorf("get region: %w", err)
	}

	keys, err := store.Keys()
	if err != nil {
		return fmt.Errorf("list keys: %w", err)
	}

	n, err := store.Len()
	if err != nil {
		return fmt.Errorf("count keys: %w", err)
	}
	log.Info("store populated", "region", region, "keys", keys, "count", n)

	if err := store.Delete("owner"); err != nil {
		return fmt.Errorf("delete owner: %w", err)
	}

	if _, err := store.Get("owner"); !errors.Is(err, storage.ErrNotFound) {
		return fmt.Errorf("expected missing key error, got %v", err)
	}
	log.Info("deleted key is gone", "key", "owner")

	return nil
}
