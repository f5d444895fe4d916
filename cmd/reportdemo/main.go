package main

import (
	"flag"
	"fmt"
	"os"

	"gopatterns/pkg/logger"
	"gopatterns/pkg/report"
)

func main() {
	logLevel := flag.String("log-level", "info", "Log level: debug, info, warn, error")
	logFormat := flag.String("log-format", "text", "Log format: text or json")
	flag.Parse()

	log := logger.New(logger.LogLevel(*logLevel), *logFormat)

	for _, layout := range []report.Layout{report.LayoutMinimal, report.LayoutBrief, report.LayoutFull} {
		r, err := report.Compose(layout, "build 1742")
		if err != nil {
			log.Error("failed to compose report", "layout", layout, "error", err)
			os.Exit(1)
		}
		log.Info("composed report", "layout", layout, "sections", len(r.Sections))
		fmt.Println(r.Render())
	}

	// The same builder assembles a one-off report; Build hands the
	// report over and leaves the builder empty for the next one.
	b := report.NewBuilder()
	custom := b.
		Title("Deployment notes").
		Section("Rollout", "canary at 5%, no regressions").
		Line("dashboard links updated").
		Footer("generated by reportdemo").
		Build()

	log.Info("composed report", "layout", "custom", "sections", len(custom.Sections))
	fmt.Println(custom.Render())

	next := b.Title("Follow-up").Build()
	log.Info("builder reused", "title", next.Title, "sections", len(next.Sections))
	fmt.Println(next.Render())

	if _, err := report.Compose(report.Layout("weekly"), "build 1742"); err != nil {
		log.Warn("unknown layout rejected", "error", err)
	}
}
