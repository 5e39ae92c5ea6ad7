// Package cache provides the bounded LRU+TTL cache that backs every
// process-scoped cache in this module (URI resolution, metadata, image
// bytes, image transforms), plus an optional Redis-backed shared tier for
// horizontally-scaled deployments.
package cache

import (
	"container/list"
	"sync"
	"time"
)

type entry[K comparable, V any] struct {
	key       K
	value     V
	expiresAt time.Time
}

// TTLCache is a bounded mapping from K to V with per-entry expiry and
// recency reordering on access. Capacity is fixed at construction; once the
// number of live entries exceeds it, the oldest entries (by insertion
// order, strict tie-break) are evicted first. Internal mutation is
// serialized with a mutex — callers get no concurrent-reader guarantees
// beyond that.
type TTLCache[K comparable, V any] struct {
	mu       sync.Mutex
	capacity int
	order    *list.List // front = oldest, back = most recently touched
	index    map[K]*list.Element
}

// NewTTLCache constructs a cache bounded to capacity entries. A capacity of
// 0 or less is treated as 1 to keep the eviction loop well-defined.
func NewTTLCache[K comparable, V any](capacity int) *TTLCache[K, V] {
	if capacity <= 0 {
		capacity = 1
	}
	return &TTLCache[K, V]{
		capacity: capacity,
		order:    list.New(),
		index:    make(map[K]*list.Element, capacity),
	}
}

// Get returns the value for k if present and not expired as of now. An
// expired entry is evicted on the read. A hit refreshes the entry's
// recency, moving it to the back of the eviction order.
func (c *TTLCache[K, V]) Get(k K, now time.Time) (V, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	el, ok := c.index[k]
	if !ok {
		var zero V
		return zero, false
	}
	e := el.Value.(*entry[K, V])
	if now.After(e.expiresAt) {
		c.removeElement(el)
		var zero V
		return zero, false
	}
	c.order.MoveToBack(el)
	return e.value, true
}

// Set inserts or overwrites the value for k with the given ttl, then evicts
// the oldest entries (strict insertion order) until the cache is at or
// under capacity.
func (c *TTLCache[K, V]) Set(k K, v V, ttl time.Duration, now time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if el, ok := c.index[k]; ok {
		e := el.Value.(*entry[K, V])
		e.value = v
		e.expiresAt = now.Add(ttl)
		c.order.MoveToBack(el)
		return
	}

	el := c.order.PushBack(&entry[K, V]{key: k, value: v, expiresAt: now.Add(ttl)})
	c.index[k] = el

	for c.order.Len() > c.capacity {
		c.removeElement(c.order.Front())
	}
}

// Delete removes k unconditionally.
func (c *TTLCache[K, V]) Delete(k K) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if el, ok := c.index[k]; ok {
		c.removeElement(el)
	}
}

// Len returns the current number of live (not necessarily unexpired)
// entries. Useful for tests asserting eviction behavior.
func (c *TTLCache[K, V]) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.order.Len()
}

func (c *TTLCache[K, V]) removeElement(el *list.Element) {
	e := el.Value.(*entry[K, V])
	delete(c.index, e.key)
	c.order.Remove(el)
}
