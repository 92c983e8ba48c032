package cache

import (
	"container/list"
	"sync"
)

type lruEntry[K comparable, V any] struct {
	key   K
	value V
}

// Option configures an LRU.
type Option[K comparable, V any] func(*LRU[K, V])

// WithEvictCallback registers fn to run for every entry dropped because the
// cache is full or cleared. Explicit Remove calls do not trigger it.
// The callback runs after the internal lock is released, so it may call back
// into the cache.
func WithEvictCallback[K comparable, V any](fn func(key K, value V)) Option[K, V] {
	return func(c *LRU[K, V]) { c.onEvict = fn }
}

// LRU is a fixed-capacity, least-recently-used cache. Safe for concurrent use.
type LRU[K comparable, V any] struct {
	capacity int
	items    map[K]*list.Element
	order    *list.List
	mu       sync.Mutex
	onEvict  func(key K, value V)
}

// New creates an LRU holding at most capacity entries.
// It panics if capacity is not positive.
func New[K comparable, V any](capacity int, opts ...Option[K, V]) *LRU[K, V] {
	if capacity <= 0 {
		panic("cache: LRU capacity must be positive")
	}
	c := &LRU[K, V]{
		capacity: capacity,
		items:    make(map[K]*list.Element, capacity),
		order:    list.New(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Get returns the value for key and marks it as recently used.
func (c *LRU[K, V]) Get(key K) (V, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if elem, ok := c.items[key]; ok {
		c.order.MoveToFront(elem)
		return elem.Value.(*lruEntry[K, V]).value, true
	}
	var zero V
	return zero, false
}

// Peek returns the value for key without touching its recency.
func (c *LRU[K, V]) Peek(key K) (V, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if elem, ok := c.items[key]; ok {
		return elem.Value.(*lruEntry[K, V]).value, true
	}
	var zero V
	return zero, false
}

// Put inserts or replaces the value for key. It reports the previous value
// when one existed.
func (c *LRU[K, V]) Put(key K, value V) (V, bool) {
	c.mu.Lock()
	prev, existed, evicted := c.put(key, value)
	c.mu.Unlock()

	c.notify(evicted)
	return prev, existed
}

// GetOrLoad returns the cached value for key, or stores and returns the
// result of load. load runs under the cache lock and must not use the cache.
func (c *LRU[K, V]) GetOrLoad(key K, load func() V) V {
	c.mu.Lock()
	if elem, ok := c.items[key]; ok {
		c.order.MoveToFront(elem)
		v := elem.Value.(*lruEntry[K, V]).value
		c.mu.Unlock()
		return v
	}

	v := load()
	_, _, evicted := c.put(key, v)
	c.mu.Unlock()

	c.notify(evicted)
	return v
}

// Remove deletes key and returns its value.
func (c *LRU[K, V]) Remove(key K) (V, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if elem, ok := c.items[key]; ok {
		entry := c.unlink(elem)
		return entry.value, true
	}
	var zero V
	return zero, false
}

// Len returns the number of cached entries.
func (c *LRU[K, V]) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.order.Len()
}

// Keys returns the keys from most to least recently used.
func (c *LRU[K, V]) Keys() []K {
	c.mu.Lock()
	defer c.mu.Unlock()

	keys := make([]K, 0, c.order.Len())
	for elem := c.order.Front(); elem != nil; elem = elem.Next() {
		keys = append(keys, elem.Value.(*lruEntry[K, V]).key)
	}
	return keys
}

// Clear drops every entry, running the evict callback for each.
func (c *LRU[K, V]) Clear() {
	c.mu.Lock()
	dropped := make([]*lruEntry[K, V], 0, c.order.Len())
	for elem := c.order.Front(); elem != nil; elem = elem.Next() {
		dropped = append(dropped, elem.Value.(*lruEntry[K, V]))
	}
	c.items = make(map[K]*list.Element, c.capacity)
	c.order.Init()
	c.mu.Unlock()

	c.notify(dropped)
}

// Must be called with lock held.
func (c *LRU[K, V]) put(key K, value V) (prev V, existed bool, evicted []*lruEntry[K, V]) {
	if elem, ok := c.items[key]; ok {
		c.order.MoveToFront(elem)
		entry := elem.Value.(*lruEntry[K, V])
		prev, entry.value = entry.value, value
		return prev, true, nil
	}

	c.items[key] = c.order.PushFront(&lruEntry[K, V]{key: key, value: value})
	for c.order.Len() > c.capacity {
		evicted = append(evicted, c.unlink(c.order.Back()))
	}
	return prev, false, evicted
}

// Must be called with lock held.
func (c *LRU[K, V]) unlink(elem *list.Element) *lruEntry[K, V] {
	c.order.Remove(elem)
	entry := elem.Value.(*lruEntry[K, V])
	delete(c.items, entry.key)
	return entry
}

func (c *LRU[K, V]) notify(entries []*lruEntry[K, V]) {
	if c.onEvict == nil {
		return
	}
	for _, e := range entries {
		c.onEvict(e.key, e.value)
	}
}
