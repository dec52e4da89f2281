package cache

import (
	"context"
	"encoding/json"
	"strings"
	"sync"
	"time"

	portsrepo "github.com/smartduka/smartduka_backend/internal/core/ports/repositories"
)

type entry struct {
	payload   []byte
	expiresAt time.Time
}

// InMemoryStatsCache is a single-instance StatsCache. Values are stored as JSON so
// callers see the same decoding behaviour as with Redis. Expired entries are
// dropped lazily on read.
type InMemoryStatsCache struct {
	mu      sync.RWMutex
	entries map[string]entry
	gens    map[string]int64
	now     func() time.Time
}

var _ portsrepo.StatsCache = (*InMemoryStatsCache)(nil)

func NewInMemoryStatsCache() *InMemoryStatsCache {
	return &InMemoryStatsCache{entries: make(map[string]entry), gens: make(map[string]int64), now: time.Now}
}

func (c *InMemoryStatsCache) Get(_ context.Context, key string, dest any) (bool, error) {
	c.mu.RLock()
	e, ok := c.entries[key]
	c.mu.RUnlock()
	if !ok {
		return false, nil
	}
	if !c.now().Before(e.expiresAt) {
		c.mu.Lock()
		if cur, still := c.entries[key]; still && cur.expiresAt.Equal(e.expiresAt) {
			delete(c.entries, key)
		}
		c.mu.Unlock()
		return false, nil
	}
	if err := json.Unmarshal(e.payload, dest); err != nil {
		return false, err
	}
	return true, nil
}

func (c *InMemoryStatsCache) Set(_ context.Context, key string, value any, ttl time.Duration) error {
	payload, err := json.Marshal(value)
	if err != nil {
		return err
	}
	c.mu.Lock()
	c.entries[key] = entry{payload: payload, expiresAt: c.now().Add(ttl)}
	c.mu.Unlock()
	return nil
}

func (c *InMemoryStatsCache) Generation(_ context.Context, scope string) (int64, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.gens[scope], nil
}

// Bump also drops the scope's entries, since no reader will ask for them again.
func (c *InMemoryStatsCache) Bump(_ context.Context, scope string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.gens[scope]++
	prefix := scope + ":"
	for k := range c.entries {
		if strings.HasPrefix(k, prefix) {
			delete(c.entries, k)
		}
	}
	return nil
}
