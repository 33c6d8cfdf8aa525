package secrets

import (
	"sync"
	"time"

	"github.com/kevin07696/securepay-periodic/internal/adapters/ports"
)

// secretCache is a TTL cache shared by the remote secret backends
type secretCache struct {
	mu      sync.RWMutex
	entries map[string]*cacheEntry
	enabled bool
	ttl     time.Duration
	now     func() time.Time
}

type cacheEntry struct {
	secret    *ports.Secret
	expiresAt time.Time
}

func newSecretCache(enabled bool, ttl time.Duration) *secretCache {
	return &secretCache{
		entries: make(map[string]*cacheEntry),
		enabled: enabled && ttl > 0,
		ttl:     ttl,
		now:     time.Now,
	}
}

func (c *secretCache) get(key string) *ports.Secret {
	if !c.enabled {
		return nil
	}

	c.mu.RLock()
	entry, ok := c.entries[key]
	c.mu.RUnlock()
	if !ok {
		return nil
	}

	if c.now().After(entry.expiresAt) {
		c.invalidate(key)
		return nil
	}

	return entry.secret
}

func (c *secretCache) set(key string, secret *ports.Secret) {
	if !c.enabled {
		return
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[key] = &cacheEntry{
		secret:    secret,
		expiresAt: c.now().Add(c.ttl),
	}
}

func (c *secretCache) invalidate(key string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.entries, key)
}
