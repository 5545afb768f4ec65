package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestTTLCacheSetGet(t *testing.T) {
	cache := NewTTLCache(time.Minute)

	_, ok := cache.Get("missing")
	assert.False(t, ok)

	cache.Set("company-1", "Smith Heating & Air")
	value, ok := cache.Get("company-1")
	assert.True(t, ok)
	assert.Equal(t, "Smith Heating & Air", value)
}

func TestTTLCacheExpiry(t *testing.T) {
	cache := NewTTLCache(10 * time.Millisecond)

	cache.Set("company-1", "stale soon")
	_, ok := cache.Get("company-1")
	assert.True(t, ok)

	time.Sleep(20 * time.Millisecond)

	_, ok = cache.Get("company-1")
	assert.False(t, ok)
	// Expired entry was removed on access
	assert.Equal(t, 0, cache.Len())
}

func TestTTLCacheInvalidate(t *testing.T) {
	cache := NewTTLCache(time.Minute)

	cache.Set("company-1", "v1")
	cache.Invalidate("company-1")

	_, ok := cache.Get("company-1")
	assert.False(t, ok)

	// Invalidating an absent key is a no-op
	cache.Invalidate("never-set")
	assert.Equal(t, 0, cache.Len())
}

func TestTTLCacheOverwriteRefreshesEntry(t *testing.T) {
	cache := NewTTLCache(time.Minute)

	cache.Set("company-1", "v1")
	cache.Set("company-1", "v2")

	value, ok := cache.Get("company-1")
	assert.True(t, ok)
	assert.Equal(t, "v2", value)
	assert.Equal(t, 1, cache.Len())
}
