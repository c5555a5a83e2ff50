package matches

import (
	"sync"

	"matchscope/internal/riot"
)

// DefaultCacheSize bounds the number of match records kept in memory
const DefaultCacheSize = 500

// Cache is a thread-safe in-memory store of finished matches. Match records
// never change once a game ends, so entries do not expire.
type Cache struct {
	mu      sync.RWMutex
	data    map[string]*riot.Match
	order   []string // insertion order, oldest first
	maxSize int
}

// NewCache creates a cache holding at most maxSize matches
func NewCache(maxSize int) *Cache {
	if maxSize <= 0 {
		maxSize = DefaultCacheSize
	}
	return &Cache{
		data:    make(map[string]*riot.Match),
		order:   make([]string, 0, maxSize),
		maxSize: maxSize,
	}
}

func cacheKey(region, matchID string) string {
	return region + "/" + matchID
}

// Get retrieves a match from the cache
func (c *Cache) Get(region, matchID string) (*riot.Match, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	m, ok := c.data[cacheKey(region, matchID)]
	return m, ok
}

// Set stores a match, evicting the oldest entry when full
func (c *Cache) Set(region string, m *riot.Match) {
	key := cacheKey(region, m.Metadata.MatchID)

	c.mu.Lock()
	defer c.mu.Unlock()

	if _, exists := c.data[key]; exists {
		c.data[key] = m
		return
	}
	for len(c.order) >= c.maxSize {
		delete(c.data, c.order[0])
		c.order = c.order[1:]
	}
	c.data[key] = m
	c.order = append(c.order, key)
}

// Len returns the number of cached matches
func (c *Cache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.data)
}

// Clear removes all cached matches
func (c *Cache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.data = make(map[string]*riot.Match)
	c.order = make([]string, 0, c.maxSize)
}
