package broadcast

import (
	"context"
	"sync"
)

// Message wraps data of type T for type-safe broadcasting. Topic scopes the
// message; subscribers created with WithTopic only see matching messages.
type Message[T any] struct {
	Topic string
	Data  T
}

// Subscriber receives messages from a Broadcaster.
// Implementations must be safe for concurrent use.
type Subscriber[T any] interface {
	// Receive returns the channel messages arrive on. The channel is closed
	// when the subscriber is closed or dropped.
	Receive(ctx context.Context) <-chan Message[T]

	// Close releases the subscriber. Idempotent.
	Close() error
}

// Broadcaster sends messages to multiple subscribers.
// Implementations drop messages for slow consumers rather than block.
type Broadcaster[T any] interface {
	// Subscribe creates a subscriber whose lifetime is bound to ctx.
	Subscribe(ctx context.Context, opts ...SubscribeOption) Subscriber[T]

	// Broadcast sends msg to every matching subscriber.
	Broadcast(ctx context.Context, msg Message[T]) error

	// Close shuts down the broadcaster and closes all subscribers.
	Close() error
}

// SubscribeOption configures a subscription.
type SubscribeOption func(*subscribeConfig)

type subscribeConfig struct {
	topic      string
	bufferSize int
}

// WithTopic limits the subscription to messages with the given topic.
// An empty topic receives everything.
func WithTopic(topic string) SubscribeOption {
	return func(c *subscribeConfig) { c.topic = topic }
}

// WithBufferSize overrides the broadcaster's per-subscriber buffer.
func WithBufferSize(size int) SubscribeOption {
	return func(c *subscribeConfig) {
		if size > 0 {
			c.bufferSize = size
		}
	}
}

type subscriber[T any] struct {
	ch     chan Message[T]
	topic  string
	closed bool
	mu     sync.RWMutex
}

func newSubscriber[T any](cfg subscribeConfig) *subscriber[T] {
	return &subscriber[T]{
		ch:    make(chan Message[T], cfg.bufferSize),
		topic: cfg.topic,
	}
}

func (s *subscriber[T]) Receive(ctx context.Context) <-chan Message[T] {
	return s.ch
}

func (s *subscriber[T]) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.closed {
		close(s.ch)
		s.closed = true
	}
	return nil
}

func (s *subscriber[T]) wants(msg Message[T]) bool {
	return s.topic == "" || s.topic == msg.Topic
}

// send reports false only when the subscriber is closed or its buffer is full.
func (s *subscriber[T]) send(msg Message[T]) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.closed {
		return false
	}
	if !s.wants(msg) {
		return true
	}

	select {
	case s.ch <- msg:
		return true
	default:
		return false
	}
}
