// internal/common/cache/cache.go
package cache

import (
	"context"
	"sync"
	"time"
)

// Cache is a TTL-bounded key/value store shared by the suggestion components.
type Cache[T any] interface {
	Get(ctx context.Context, key string) (T, bool)
	Set(ctx context.Context, key string, value T)
	Delete(ctx context.Context, key string)
	Clear(ctx context.Context)
}

// Clock returns the current time. Tests substitute a fixed or stepping clock.
type Clock func() time.Time

type entry[T any] struct {
	value    T
	storedAt time.Time
}

// Memory is an in-process Cache. Entries expire lazily on read.
type Memory[T any] struct {
	mu      sync.RWMutex
	entries map[string]entry[T]
	ttl     time.Duration
	now     Clock
}

func NewMemory[T any](ttl time.Duration, clock Clock) *Memory[T] {
	if clock == nil {
		clock = time.Now
	}
	return &Memory[T]{
		entries: make(map[string]entry[T]),
		ttl:     ttl,
		now:     clock,
	}
}

func (m *Memory[T]) Get(_ context.Context, key string) (T, bool) {
	var zero T

	m.mu.RLock()
	e, ok := m.entries[key]
	m.mu.RUnlock()
	if !ok {
		return zero, false
	}

	if !m.now().Before(e.storedAt.Add(m.ttl)) {
		m.mu.Lock()
		if cur, still := m.entries[key]; still && cur.storedAt.Equal(e.storedAt) {
			delete(m.entries, key)
		}
		m.mu.Unlock()
		return zero, false
	}
	return e.value, true
}

func (m *Memory[T]) Set(_ context.Context, key string, value T) {
	m.mu.Lock()
	m.entries[key] = entry[T]{value: value, storedAt: m.now()}
	m.mu.Unlock()
}

func (m *Memory[T]) Delete(_ context.Context, key string) {
	m.mu.Lock()
	delete(m.entries, key)
	m.mu.Unlock()
}

func (m *Memory[T]) Clear(_ context.Context) {
	m.mu.Lock()
	m.entries = make(map[string]entry[T])
	m.mu.Unlock()
}

// Len counts stored entries, including ones that expired but were not yet read.
func (m *Memory[T]) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.entries)
}
