package rules

import (
	"os"
	"sync"
	"time"

	"tabular/internal/core"
)

// Cache holds one parsed Set per rule file path, invalidated by the file's
// modification time so a command run doesn't re-parse an unchanged rule
// file on every row.
type Cache struct {
	mu      sync.Mutex
	entries map[string]cacheEntry
}

type cacheEntry struct {
	modTime time.Time
	set     *Set
}

// NewCache returns an empty rule cache.
func NewCache() *Cache {
	return &Cache{entries: make(map[string]cacheEntry)}
}

// Load returns the parsed Set for path, reusing the cached copy if path's
// mtime hasn't changed since it was last parsed. It returns (nil, nil) if
// path is empty or no longer exists.
func (c *Cache) Load(path string) (*Set, error) {
	if path == "" {
		return nil, nil
	}

	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			c.mu.Lock()
			delete(c.entries, path)
			c.mu.Unlock()
			return nil, nil
		}
		return nil, core.Wrap(core.IoError, err)
	}

	c.mu.Lock()
	entry, ok := c.entries[path]
	c.mu.Unlock()
	if ok && entry.modTime.Equal(info.ModTime()) {
		return entry.set, nil
	}

	set, err := LoadFile(path)
	if err != nil {
		return nil, err
	}

	c.mu.Lock()
	c.entries[path] = cacheEntry{modTime: info.ModTime(), set: set}
	c.mu.Unlock()
	return set, nil
}

// ForTable resolves and loads the rule file for tableBaseName under
// dataDir, via PathFor.
func (c *Cache) ForTable(dataDir, tableBaseName string) (*Set, error) {
	return c.Load(PathFor(dataDir, tableBaseName))
}
