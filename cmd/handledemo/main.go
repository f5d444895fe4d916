package main

import (
	"errors"
	"flag"
	"fmt"
	"os"

	"gopatterns/pkg/handle"
	"gopatterns/pkg/logger"

	"github.com/go-git/go-billy/v5"
	"github.com/go-git/go-billy/v5/memfs"
)

// loggedFile reports when it is closed, making the close order visible
type loggedFile struct {
	billy.File
	name string
	log  *logger.Logger
}

func (f *loggedFile) Close() error {
	f.log.Info("closing file", "name", f.name)
	return f.File.Close()
}

func main() {
	logLevel := flag.String("log-level", "info", "Log level: debug, info, warn, error")
	logFormat := flag.String("log-format", "text", "Log format: text or json")
	flag.Parse()

	log := logger.New(logger.LogLevel(*logLevel), *logFormat)
	fs := memfs.New()

	// A single managed handle closes its file exactly once
	today, err := createFile(fs, log, "/notes/today.txt", "pool drained twice, no leaks")
	if err != nil {
		log.Error("failed to create file", "error", err)
		os.Exit(1)
	}
	m, err := handle.Manage("today.txt", today)
	if err != nil {
		log.Error("failed to manage file", "error", err)
		os.Exit(1)
	}
	if err := m.Close(); err != nil {
		log.Error("failed to close handle", "error", err)
		os.Exit(1)
	}
	if err := m.Close(); errors.Is(err, handle.ErrAlreadyClosed) {
		log.Warn("second close rejected", "name", m.Name(), "error", err)
	}

	// A group closes its handles newest-first and skips any closed early
	g := handle.NewGroup()
	var mb *handle.Managed
	for _, name := range []string{"a.log", "b.log", "c.log"} {
		f, err := createFile(fs, log, "/logs/"+name, "line one")
		if err != nil {
			log.Error("failed to create file", "error", err)
			os.Exit(1)
		}
		managed, err := g.Manage(name, f)
		if err != nil {
			log.Error("failed to manage file", "error", err)
			os.Exit(1)
		}
		if name == "b.log" {
			mb = managed
		}
	}
	log.Info("group holding files", "count", g.Len())

	if err := mb.Close(); err != nil {
		log.Error("failed to close handle", "error", err)
		os.Exit(1)
	}

	if err := g.Close(); err != nil {
		log.Error("group close reported errors", "error", err)
		os.Exit(1)
	}
	log.Info("group closed", "order", "c.log then a.log, b.log already gone")

	late, err := createFile(fs, log, "/logs/late.log", "missed the group")
	if err != nil {
		log.Error("failed to create file", "error", err)
		os.Exit(1)
	}
	if _, err := g.Manage("late.log", late); err != nil {
		log.Warn("closed group rejects new handles", "error", err)
	}

	// The files outlive their handles inside the in-memory filesystem
	info, err := fs.Stat("/notes/today.txt")
	if err != nil {
		log.Error("failed to stat file", "error", err)
		os.Exit(1)
	}
	fmt.Printf("%s holds %d bytes after its handle closed\n", info.Name(), info.Size())
}

// createFile writes content to a fresh file and hands back the open file
// wrapped so its close is logged
func createFile(fs billy.Filesystem, log *logger.Logger, path, content string) (billy.File, error) {
	f, err := fs.Create(path)
	if err != nil {
		return nil, err
	}
	if _, err := f.Write([]byte(content)); err != nil {
		f.Close()
		return nil, err
	}
	return &loggedFile{File: f, name: path, log: log}, nil
}
