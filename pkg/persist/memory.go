package persist

import (
	"time"

	gocache "github.com/patrickmn/go-cache"
)

// Memory is a go-cache backed KV store. Entries never expire by default so an
// abandoned session survives as long as the process does; pass a TTL to bound
// that.
type Memory struct {
	cache *gocache.Cache
}

// NewMemory builds an in-memory store. A ttl of 0 keeps entries forever.
func NewMemory(ttl time.Duration) *Memory {
	if ttl <= 0 {
		return &Memory{cache: gocache.New(gocache.NoExpiration, 0)}
	}
	return &Memory{cache: gocache.New(ttl, 10*time.Minute)}
}

// Get implements KV.
func (m *Memory) Get(key string) (string, bool) {
	if raw, found := m.cache.Get(key); found {
		if value, ok := raw.(string); ok {
			return value, true
		}
	}
	return "", false
}

// Set implements KV.
func (m *Memory) Set(key, value string) error {
	m.cache.Set(key, value, gocache.DefaultExpiration)
	return nil
}

// Remove implements KV.
func (m *Memory) Remove(key string) {
	m.cache.Delete(key)
}
