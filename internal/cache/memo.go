// Package cache provides the bounded in-memory memoization used by the
// classifiers. Entries expire on a TTL, which keeps the cache bounded for
// long-running batch invocations; there is no cross-run persistence.
package cache

import (
	"strings"
	"time"

	gocache "github.com/patrickmn/go-cache"
)

// Memo is a TTL-bounded memoization cache. The underlying store is safe for
// concurrent use, so one Memo may back classifiers shared across pipelines.
type Memo struct {
	cache *gocache.Cache
}

// NewMemo creates a memo cache with the given TTL and cleanup interval.
func NewMemo(ttl, cleanupInterval time.Duration) *Memo {
	if ttl <= 0 {
		ttl = 15 * time.Minute
	}
	if cleanupInterval <= 0 {
		cleanupInterval = 2 * ttl
	}
	return &Memo{cache: gocache.New(ttl, cleanupInterval)}
}

// Get retrieves a memoized value.
func (m *Memo) Get(key string) (interface{}, bool) {
	return m.cache.Get(key)
}

// Set stores a value under the default TTL.
func (m *Memo) Set(key string, value interface{}) {
	m.cache.SetDefault(key, value)
}

// Flush drops every entry.
func (m *Memo) Flush() {
	m.cache.Flush()
}

// Key joins the identifying parts of a memo entry with a separator that
// cannot occur in digest text.
func Key(parts ...string) string {
	return strings.Join(parts, "\x00")
}
