package notify

import (
	"errors"
	"fmt"
	"time"
)

// Notice is one message to deliver
type Notice struct {
	Subject string    `json:"subject"`
	Body    string    `json:"body"`
	SentAt  time.Time `json:"sent_at"`
}

// Formatter renders a notice for delivery
type Formatter interface {
	Format(n Notice) (string, error)
}

// Sink receives formatted notices
type Sink interface {
	Write(formatted string) error
}

var (
	// ErrNilFormatter is returned by NewService when no formatter is injected
	ErrNilFormatter = errors.New("formatter must not be nil")

	// ErrNilSink is returned by NewService when no sink is injected
	ErrNilSink = errors.New("sink must not be nil")
)

// Service delivers notices through its injected collaborators
type Service struct {
	formatter Formatter
	sink      Sink
}

// NewService wires a delivery service from its two dependencies
func NewService(formatter Formatter, sink Sink) (*Service, error) {
	if formatter == nil {
		return nil, ErrNilFormatter
	}
	if sink == nil {
		return nil, ErrNilSink
	}
	return &Service{
		formatter: formatter,
		sink:      sink,
	}, nil
}

// Notify formats and delivers one notice. A zero SentAt is stamped with
// the current time.
func (s *Service) Notify(n Notice) error {
	if n.SentAt.IsZero() {
		n.SentAt = time.Now()
	}

	formatted, err := s.formatter.Format(n)
	if err != nil {
		return fmt.Errorf("format notice: %w", err)
	}
	if err := s.sink.Write(formatted); err != nil {
		return fmt.Errorf("write notice: %w", err)
	}
	return nil
}
