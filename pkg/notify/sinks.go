package notify

import (
	"fmt"
	"io"
	"sync"
)

// WriterSink writes each notice as one line to an io.Writer
type WriterSink struct {
	mu sync.Mutex
	w  io.Writer
}

// NewWriterSink creates a sink over any writer
func NewWriterSink(w io.Writer) *WriterSink {
	return &WriterSink{w: w}
}

func (s *WriterSink) Write(formatted string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, err := fmt.Fprintln(s.w, formatted)
	return err
}

// MemorySink retains delivered notices for inspection
type MemorySink struct {
	mu      sync.Mutex
	entries []string
}

// NewMemorySink creates an empty in-memory sink
func NewMemorySink() *MemorySink {
	return &MemorySink{}
}

func (s *MemorySink) Write(formatted string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries = append(s.entries, formatted)
	return nil
}

// Entries returns a copy of everything delivered so far
func (s *MemorySink) Entries() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]string, len(s.entries))
	copy(out, s.entries)
	return out
}
