package pubsub

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/redis/go-redis/v9"
)

// redisPubSub is a PubSub[T] implementation bridging a redis channel
// with json encoded payloads. A subscriber whose buffer is full misses
// messages instead of blocking the forwarder.
type redisPubSub[T any] struct {
	channel string
	rdb     *redis.Client
	owned   bool // whether Close also closes the client
	buf     int

	mu     sync.Mutex
	subs   []*redis.PubSub
	closed bool
}

// NewRedisPubSub creates a PubSub over an existing redis client. The
// caller keeps ownership of the client.
func NewRedisPubSub[T any](channel string, rdb *redis.Client) PubSub[T] {
	return newRedisPubSub[T](channel, rdb, false, 0)
}

func newRedisPubSub[T any](channel string, rdb *redis.Client, owned bool, buf int) PubSub[T] {
	if buf < 1 {
		buf = defaultBufSize
	}
	return &redisPubSub[T]{
		channel: channel,
		rdb:     rdb,
		owned:   owned,
		buf:     buf,
	}
}

func (ps *redisPubSub[T]) Publish(payload T) error {
	ps.mu.Lock()
	if ps.closed {
		ps.mu.Unlock()
		return ErrPubSubClosed
	}
	ps.mu.Unlock()

	encoded, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("json.Marshal: %w", err)
	}

	return ps.rdb.Publish(context.Background(), ps.channel, string(encoded)).Err()
}

func (ps *redisPubSub[T]) Subscribe() <-chan Result[T] {
	out := make(chan Result[T], ps.buf)

	ps.mu.Lock()
	if ps.closed {
		ps.mu.Unlock()
		close(out)
		return out
	}
	sub := ps.rdb.Subscribe(context.Background(), ps.channel)
	ps.subs = append(ps.subs, sub)
	ps.mu.Unlock()

	go func() {
		defer close(out)
		for msg := range sub.Channel() {
			payload := new(T)
			err := json.Unmarshal([]byte(msg.Payload), payload)
			select {
			case out <- Result[T]{Ok: *payload, Err: err}:
			default:
				// subscriber is not keeping up, drop
			}
		}
	}()

	return out
}

// Close tears down all redis subscriptions and, when the client was
// created by New, the client as well.
func (ps *redisPubSub[T]) Close() error {
	ps.mu.Lock()
	if ps.closed {
		ps.mu.Unlock()
		return nil
	}
	ps.closed = true
	subs := ps.subs
	ps.subs = nil
	ps.mu.Unlock()

	var firstErr error
	for _, sub := range subs {
		if err := sub.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	if ps.owned {
		if err := ps.rdb.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}
