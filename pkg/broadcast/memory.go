package broadcast

import (
	"context"
	"sync"
)

// MemoryBroadcaster drops slow consumers rather than blocking the broadcast.
// All methods are safe for concurrent use.
type MemoryBroadcaster[T any] struct {
	subscribers map[*subscriber[T]]struct{}
	bufferSize  int
	closed      bool
	done        chan struct{}
	mu          sync.RWMutex
	cleanupWg   sync.WaitGroup
}

// NewMemoryBroadcaster creates an in-memory broadcaster. bufferSize is the
// default per-subscriber channel buffer; a minimum of 1 is enforced.
func NewMemoryBroadcaster[T any](bufferSize int) *MemoryBroadcaster[T] {
	return &MemoryBroadcaster[T]{
		subscribers: make(map[*subscriber[T]]struct{}),
		// a zero buffer would make every send fail the non-blocking select
		bufferSize: max(bufferSize, 1),
		done:       make(chan struct{}),
	}
}

// Subscribe creates a subscriber that is removed when ctx is cancelled.
// If the broadcaster is already closed, returns a closed subscriber.
func (b *MemoryBroadcaster[T]) Subscribe(ctx context.Context, opts ...SubscribeOption) Subscriber[T] {
	cfg := subscribeConfig{bufferSize: b.bufferSize}
	for _, opt := range opts {
		opt(&cfg)
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	sub := newSubscriber[T](cfg)
	if b.closed {
		_ = sub.Close()
		return sub
	}
	b.subscribers[sub] = struct{}{}

	if ctx.Done() != nil {
		b.cleanupWg.Add(1)
		go func() {
			defer b.cleanupWg.Done()
			select {
			case <-ctx.Done():
				b.unsubscribe(sub)
			case <-b.done:
			}
		}()
	}

	return sub
}

// Broadcast sends msg to every matching subscriber without blocking.
// Subscribers whose buffer is full are closed and removed. Always returns nil.
func (b *MemoryBroadcaster[T]) Broadcast(ctx context.Context, msg Message[T]) error {
	b.mu.RLock()
	defer b.mu.RUnlock()

	if b.closed {
		return nil
	}

	for sub := range b.subscribers {
		if !sub.send(msg) {
			// unsubscribe takes the write lock
			go b.unsubscribe(sub)
		}
	}

	return nil
}

// Subscribers returns the number of active subscribers.
func (b *MemoryBroadcaster[T]) Subscribers() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.subscribers)
}

// Close shuts down the broadcaster and closes all subscribers.
// Safe to call multiple times.
func (b *MemoryBroadcaster[T]) Close() error {
	b.mu.Lock()

	if b.closed {
		b.mu.Unlock()
		return nil
	}

	b.closed = true
	close(b.done)

	for sub := range b.subscribers {
		_ = sub.Close()
	}

	clear(b.subscribers)
	b.mu.Unlock()

	b.cleanupWg.Wait()

	return nil
}

func (b *MemoryBroadcaster[T]) unsubscribe(sub *subscriber[T]) {
	b.mu.Lock()
	defer b.mu.Unlock()

	delete(b.subscribers, sub)
	_ = sub.Close()
}
