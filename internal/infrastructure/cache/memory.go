package cache

import (
	"context"
	"sync"
	"time"
)

// MemoryLock is an in-process run lock with expiration, used when the
// service runs without Redis (local development, tests). Same Acquire
// and Release contract as RedisLock, but scoped to one process.
type MemoryLock struct {
	mu    sync.Mutex
	items map[string]*lockEntry
}

type lockEntry struct {
	token      string
	expireTime time.Time
}

// NewMemoryLock creates a new in-memory run lock
func NewMemoryLock() *MemoryLock {
	lock := &MemoryLock{
		items: make(map[string]*lockEntry),
	}

	go lock.cleanupExpired()

	return lock
}

// Acquire takes the lock if free or expired; returns false when held
func (m *MemoryLock) Acquire(_ context.Context, key, token string, ttl time.Duration) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if entry, ok := m.items[key]; ok && time.Now().Before(entry.expireTime) {
		return false, nil
	}

	m.items[key] = &lockEntry{
		token:      token,
		expireTime: time.Now().Add(ttl),
	}
	return true, nil
}

// Release clears the lock when token still owns it
func (m *MemoryLock) Release(_ context.Context, key, token string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if entry, ok := m.items[key]; ok && entry.token == token {
		delete(m.items, key)
	}
	return nil
}

// cleanupExpired periodically removes expired entries
func (m *MemoryLock) cleanupExpired() {
	ticker := time.NewTicker(5 * time.Minute)
	defer ticker.Stop()

	for range ticker.C {
		m.mu.Lock()
		now := time.Now()
		for key, entry := range m.items {
			if now.After(entry.expireTime) {
				delete(m.items, key)
			}
		}
		m.mu.Unlock()
	}
}
