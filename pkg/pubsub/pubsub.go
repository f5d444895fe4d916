package pubsub

import (
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"
)

// PubSub is the typed pub/sub interface
type PubSub[T any] interface {
	Publish(payload T) error
	Subscribe() <-chan Result[T]
	Close() error
}

// Result carries one delivery to a subscriber
type Result[T any] struct {
	Ok  T
	Err error
}

var (
	// ErrPubSubClosed is returned when publishing on a closed PubSub
	ErrPubSubClosed = errors.New("pubsub is closed")

	// ErrUnknownBackend is returned by New for an unrecognized backend
	ErrUnknownBackend = errors.New("unknown pubsub backend")
)

// Backend names a pub/sub implementation
type Backend string

const (
	BackendChan  Backend = "chan"
	BackendRedis Backend = "redis"
)

// Config selects and parameterizes a pub/sub backend
type Config struct {
	Backend    Backend
	Channel    string // redis channel name
	RedisAddr  string
	BufferSize int // per-subscriber buffer
}

// New returns a PubSub for the configured backend. An empty backend
// falls back to the in-process channel implementation.
func New[T any](cfg Config) (PubSub[T], error) {
	switch cfg.Backend {
	case BackendChan, "":
		return NewChanPubSub[T](cfg.BufferSize), nil
	case BackendRedis:
		rdb := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
		return newRedisPubSub[T](cfg.Channel, rdb, true, cfg.BufferSize), nil
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnknownBackend, cfg.Backend)
	}
}
