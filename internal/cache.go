package internal

import (
	"crypto/md5"
	"fmt"
	"sync"
	"time"
)

type cacheEntry struct {
	Hash      string
	Report    *Report
	CreatedAt time.Time
}

// Cache remembers the last report produced for each file together with a
// hash of the content it was produced from.
type Cache struct {
	entries map[string]cacheEntry
	mutex   sync.RWMutex
	maxAge  time.Duration
}

// NewCache creates a cache whose entries expire after maxAge. A zero maxAge
// never expires entries.
func NewCache(maxAge time.Duration) *Cache {
	return &Cache{
		entries: make(map[string]cacheEntry),
		maxAge:  maxAge,
	}
}

func (c *Cache) Set(filename string, source []byte, report *Report) {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	c.entries[filename] = cacheEntry{
		Hash:      contentHash(source),
		Report:    report,
		CreatedAt: time.Now(),
	}
}

// Get returns the cached report for filename if it was produced from
// exactly source and has not expired.
func (c *Cache) Get(filename string, source []byte) (*Report, bool) {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	entry, exists := c.entries[filename]
	if !exists {
		return nil, false
	}

	if c.isEntryInvalid(entry, source) {
		delete(c.entries, filename)
		return nil, false
	}

	return entry.Report, true
}

func (c *Cache) isEntryInvalid(entry cacheEntry, source []byte) bool {
	// too old
	if c.maxAge > 0 && time.Since(entry.CreatedAt) > c.maxAge {
		return true
	}
	return entry.Hash != contentHash(source)
}

func (c *Cache) Invalidate(filename string) {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	delete(c.entries, filename)
}

func (c *Cache) InvalidateAll() {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	c.entries = make(map[string]cacheEntry)
}

func (c *Cache) Len() int {
	c.mutex.RLock()
	defer c.mutex.RUnlock()

	return len(c.entries)
}

func contentHash(source []byte) string {
	return fmt.Sprintf("%x", md5.Sum(source))
}
