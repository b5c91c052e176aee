// Package cache provides an in-memory TTL cache and the webhook replay
// guard built on it.
package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"sync"
	"time"
)

type entry[T any] struct {
	value     T
	expiresAt time.Time
}

// InMemory is a thread-safe in-memory cache with TTL.
type InMemory[T any] struct {
	mu    sync.RWMutex
	items map[string]entry[T]
	ttl   time.Duration
	stop  chan struct{}
	once  sync.Once
}

// New creates a new in-memory cache with the given TTL.
// Close stops its cleanup goroutine.
func New[T any](ttl time.Duration) *InMemory[T] {
	c := &InMemory[T]{
		items: make(map[string]entry[T]),
		ttl:   ttl,
		stop:  make(chan struct{}),
	}
	go c.cleanup()
	return c
}

// Get retrieves a value from the cache. Returns false if not found or expired.
func (c *InMemory[T]) Get(key string) (T, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	e, ok := c.items[key]
	if !ok || time.Now().After(e.expiresAt) {
		var zero T
		return zero, false
	}
	return e.value, true
}

// Set stores a value in the cache with the configured TTL.
func (c *InMemory[T]) Set(key string, value T) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.items[key] = entry[T]{
		value:     value,
		expiresAt: time.Now().Add(c.ttl),
	}
}

// SetIfAbsent stores value unless a live entry exists. It reports whether
// the value was stored.
func (c *InMemory[T]) SetIfAbsent(key string, value T) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := time.Now()
	if e, ok := c.items[key]; ok && !now.After(e.expiresAt) {
		return false
	}
	c.items[key] = entry[T]{value: value, expiresAt: now.Add(c.ttl)}
	return true
}

// Delete removes a value from the cache.
func (c *InMemory[T]) Delete(key string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	delete(c.items, key)
}

// Len returns the number of stored entries, expired ones included until
// the next cleanup.
func (c *InMemory[T]) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.items)
}

// Close stops the cleanup goroutine. The cache stays usable.
func (c *InMemory[T]) Close() {
	c.once.Do(func() { close(c.stop) })
}

// cleanup periodically removes expired entries.
func (c *InMemory[T]) cleanup() {
	ticker := time.NewTicker(c.ttl)
	defer ticker.Stop()

	for {
		select {
		case <-c.stop:
			return
		case <-ticker.C:
		}

		c.mu.Lock()
		now := time.Now()
		for k, v := range c.items {
			if now.After(v.expiresAt) {
				delete(c.items, k)
			}
		}
		c.mu.Unlock()
	}
}

// ReplayGuard remembers webhook tokens already delivered to the sink.
// Tokens are keyed by digest so the cache never holds them verbatim.
type ReplayGuard struct {
	seen *InMemory[time.Time]
}

// NewReplayGuard remembers each token for ttl.
func NewReplayGuard(ttl time.Duration) *ReplayGuard {
	return &ReplayGuard{seen: New[time.Time](ttl)}
}

// First reports whether token is seen for the first time and records it.
func (g *ReplayGuard) First(token string) bool {
	return g.seen.SetIfAbsent(digest(token), time.Now())
}

// Forget drops token so a redelivery is processed again, e.g. after the
// sink failed.
func (g *ReplayGuard) Forget(token string) {
	g.seen.Delete(digest(token))
}

// Close releases the guard's background goroutine.
func (g *ReplayGuard) Close() {
	g.seen.Close()
}

func digest(token string) string {
	sum := sha256.Sum256([]byte(token))
	return hex.EncodeToString(sum[:])
}
