package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"
	"github.com/use-agent/tokensaver/cleaner"
)

// entry holds a cached result with its creation timestamp.
type entry struct {
	result    cleaner.Result
	createdAt time.Time
}

// Cache is an in-memory LRU of cleaning results with a hard TTL.
// It is safe for concurrent use.
type Cache struct {
	lru *expirable.LRU[string, entry]
}

// New creates a Cache holding at most maxEntries results, each evicted
// after ttl regardless of use.
func New(maxEntries int, ttl time.Duration) *Cache {
	return &Cache{
		lru: expirable.NewLRU[string, entry](maxEntries, nil, ttl),
	}
}

// Key generates a cache key from the text, intensity and content type.
func Key(text, intensity, contentType string) string {
	h := sha256.New()
	h.Write([]byte(intensity))
	h.Write([]byte("|"))
	h.Write([]byte(contentType))
	h.Write([]byte("|"))
	h.Write([]byte(text))
	return hex.EncodeToString(h.Sum(nil))
}

// Get retrieves a cached result if it exists and is younger than maxAge.
// maxAge is in milliseconds. If maxAge <= 0, no cache lookup is performed.
// Returns the result and whether it was a cache hit.
func (c *Cache) Get(key string, maxAgeMs int) (cleaner.Result, bool) {
	if maxAgeMs <= 0 {
		return cleaner.Result{}, false
	}

	e, ok := c.lru.Get(key)
	if !ok {
		return cleaner.Result{}, false
	}

	maxAge := time.Duration(maxAgeMs) * time.Millisecond
	if time.Since(e.createdAt) > maxAge {
		return cleaner.Result{}, false
	}

	return e.result, true
}

// Set stores a result, evicting the least recently used entry when full.
func (c *Cache) Set(key string, res cleaner.Result) {
	c.lru.Add(key, entry{result: res, createdAt: time.Now()})
}

// Len returns the number of cached results.
func (c *Cache) Len() int {
	return c.lru.Len()
}
