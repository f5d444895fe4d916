package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"gopatterns/pkg/logger"
	"gopatterns/pkg/snapshot"
)

func main() {
	logLevel := flag.String("log-level", "info", "Log level: debug, info, warn, error")
	logFormat := flag.String("log-format", "text", "Log format: text or json")
	flag.Parse()

	log := logger.New(logger.LogLevel(*logLevel), *logFormat)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	start := time.Now()
	base, err := snapshot.Capture(ctx, "baseline")
	if err != nil {
		log.Error("failed to capture snapshot", "error", err)
		os.Exit(1)
	}
	captureTook := time.Since(start)

	start = time.Now()
	canary := base.Clone().WithLabel("role", "canary").WithLabel("zone", "b")
	canary.Name = "canary"
	cloneTook := time.Since(start)

	log.Info("snapshot timings", "capture", captureTook, "clone", cloneTook)
	fmt.Println("base:  ", base)
	fmt.Println("canary:", canary)

	if len(base.Labels) != 0 {
		log.Error("clone leaked labels into the original", "labels", base.Labels)
		os.Exit(1)
	}
	log.Info("clone is independent", "base_labels", len(base.Labels), "canary_labels", len(canary.Labels))

	reg := snapshot.NewRegistry()
	reg.Register("baseline", base)
	reg.Register("canary", canary)
	log.Info("registry loaded", "names", reg.Names())

	fresh, err := reg.Create("canary")
	if err != nil {
		log.Error("failed to create from registry", "error", err)
		os.Exit(1)
	}
	fresh.WithLabel("attempt", "2")
	fmt.Println("fresh: ", fresh)

	again, err := reg.Create("canary")
	if err != nil {
		log.Error("failed to create from registry", "error", err)
		os.Exit(1)
	}
	log.Info("registry hands out copies", "fresh_labels", len(fresh.Labels), "again_labels", len(again.Labels))

	if _, err := reg.Create("missing"); err != nil {
		log.Warn("unknown prototype rejected", "error", err)
	}
}
