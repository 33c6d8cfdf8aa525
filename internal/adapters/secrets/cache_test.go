package secrets

import (
	"testing"
	"time"

	"github.com/kevin07696/securepay-periodic/internal/adapters/ports"
	"github.com/stretchr/testify/assert"
)

func TestSecretCache(t *testing.T) {
	now := time.Date(2025, 3, 7, 12, 0, 0, 0, time.UTC)
	cache := newSecretCache(true, time.Minute)
	cache.now = func() time.Time { return now }

	secret := &ports.Secret{Value: "v"}
	cache.set("a", secret)

	assert.Same(t, secret, cache.get("a"))
	assert.Nil(t, cache.get("b"))

	now = now.Add(61 * time.Second)
	assert.Nil(t, cache.get("a"), "expired entry")
	assert.Empty(t, cache.entries)
}

func TestSecretCache_Disabled(t *testing.T) {
	for _, cache := range []*secretCache{newSecretCache(false, time.Minute), newSecretCache(true, 0)} {
		cache.set("a", &ports.Secret{Value: "v"})
		assert.Nil(t, cache.get("a"))
	}
}

func TestSecretCache_Invalidate(t *testing.T) {
	cache := newSecretCache(true, time.Minute)
	cache.set("a", &ports.Secret{Value: "v"})
	cache.invalidate("a")
	assert.Nil(t, cache.get("a"))
}
