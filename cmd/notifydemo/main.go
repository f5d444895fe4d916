package main

import (
	"flag"
	"fmt"
	"net/http/httptest"
	"os"
	"strings"

	"gopatterns/pkg/logger"
	"gopatterns/pkg/notify"
)

func main() {
	logLevel := flag.String("log-level", "info", "Log level: debug, info, warn, error")
	logFormat := flag.String("log-format", "text", "Log format: text or json")
	flag.Parse()

	log := logger.New(logger.LogLevel(*logLevel), *logFormat)

	// Console delivery: text formatter into stdout
	console, err := notify.NewService(notify.TextFormatter{}, notify.NewWriterSink(os.Stdout))
	if err != nil {
		log.Error("failed to wire console service", "error", err)
		os.Exit(1)
	}
	if err := console.Notify(notify.Notice{Subject: "deploy", Body: "build 1742 rolled out"}); err != nil {
		log.Error("failed to deliver notice", "error", err)
		os.Exit(1)
	}

	// Buffered delivery: json formatter into memory
	memory := notify.NewMemorySink()
	buffered, err := notify.NewService(notify.JSONFormatter{}, memory)
	if err != nil {
		log.Error("failed to wire buffered service", "error", err)
		os.Exit(1)
	}
	for _, body := range []string{"cpu above 90%", "disk filling up"} {
		if err := buffered.Notify(notify.Notice{Subject: "alert", Body: body}); err != nil {
			log.Error("failed to deliver notice", "error", err)
			os.Exit(1)
		}
	}
	for _, entry := range memory.Entries() {
		fmt.Println(entry)
	}

	// Missing dependencies surface at wiring time, not at delivery time
	if _, err := notify.NewService(nil, memory); err != nil {
		log.Warn("service rejected", "error", err)
	}
	if _, err := notify.NewService(notify.TextFormatter{}, nil); err != nil {
		log.Warn("service rejected", "error", err)
	}

	serveInProcess(log, console)
}

// serveInProcess drives the HTTP handler without binding a port
func serveInProcess(log *logger.Logger, svc *notify.Service) {
	router := notify.SetupRouter(svc, log)

	body := `{"subject": "http", "body": "delivered through gin"}`
	req := httptest.NewRequest("POST", "/notify", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	log.Info("handler response", "status", rec.Code, "body", rec.Body.String())

	req = httptest.NewRequest("POST", "/notify", strings.NewReader("{not json"))
	req.Header.Set("Content-Type", "application/json")
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	log.Warn("malformed notice rejected", "status", rec.Code, "body", rec.Body.String())
}
