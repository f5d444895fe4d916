package pubsub

import "sync"

const defaultBufSize = 16

// chanPubSub is a PubSub[T] implementation based on go chans. Fan-out is
// synchronous; a subscriber whose buffer is full misses the message
// instead of blocking the publisher.
type chanPubSub[T any] struct {
	mu     sync.Mutex
	subs   []chan Result[T]
	buf    int
	closed bool
}

// NewChanPubSub creates an in-process PubSub with the given
// per-subscriber buffer size; sizes below one fall back to the default.
func NewChanPubSub[T any](buf int) PubSub[T] {
	if buf < 1 {
		buf = defaultBufSize
	}
	return &chanPubSub[T]{buf: buf}
}

func (ps *chanPubSub[T]) Publish(payload T) error {
	ps.mu.Lock()
	defer ps.mu.Unlock()

	if ps.closed {
		return ErrPubSubClosed
	}
	for _, sub := range ps.subs {
		select {
		case sub <- Result[T]{Ok: payload}:
		default:
			// subscriber is not keeping up, drop
		}
	}
	return nil
}

func (ps *chanPubSub[T]) Subscribe() <-chan Result[T] {
	ps.mu.Lock()
	defer ps.mu.Unlock()

	ch := make(chan Result[T], ps.buf)
	if ps.closed {
		close(ch)
		return ch
	}
	ps.subs = append(ps.subs, ch)
	return ch
}

// Close closes all subscriber channels. Publishing afterwards returns
// ErrPubSubClosed; subscribing afterwards yields an already closed channel.
func (ps *chanPubSub[T]) Close() error {
	ps.mu.Lock()
	defer ps.mu.Unlock()

	if ps.closed {
		return nil
	}
	ps.closed = true
	for _, sub := range ps.subs {
		close(sub)
	}
	ps.subs = nil
	return nil
}
