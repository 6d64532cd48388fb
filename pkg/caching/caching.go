// Package caching keeps fetched source pages on disk so re-exporting the
// same article does not hit the network again.
package caching

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/dtnitsch/worksheet-kit/pkg/artifact_manager"
	"github.com/dtnitsch/worksheet-kit/pkg/storage"
)

// DefaultTTL is how long a cached page stays fresh.
const DefaultTTL = 24 * time.Hour

// Cache is a file-per-key store with a freshness window.
type Cache struct {
	dir   string
	ttl   time.Duration
	store *storage.Storage
	now   func() time.Time
}

// NewCache creates the cache directory if needed. A ttl <= 0 disables reads,
// so every Get misses while Set still refreshes the entry.
func NewCache(dir string, ttl time.Duration) (*Cache, error) {
	if err := os.MkdirAll(dir, 0750); err != nil {
		return nil, fmt.Errorf("failed to create cache directory: %w", err)
	}
	return &Cache{dir: dir, ttl: ttl, store: &storage.Storage{}, now: time.Now}, nil
}

func (c *Cache) path(key string) string {
	return filepath.Join(c.dir, artifact_manager.ShortHash([]byte(key))+".html")
}

// Get returns the entry for key when it exists and is younger than the TTL.
func (c *Cache) Get(key string) ([]byte, bool) {
	p := c.path(key)
	info, err := c.store.GetFileStats(p)
	if err != nil {
		return nil, false
	}
	if c.ttl <= 0 || c.now().Sub(info.ModTime) > c.ttl {
		return nil, false
	}
	data, err := c.store.ReadFile(p)
	if err != nil {
		return nil, false
	}
	return data, true
}

// Set stores data under key.
func (c *Cache) Set(key string, data []byte) error {
	if err := c.store.SaveFile(c.path(key), data); err != nil {
		return fmt.Errorf("failed to write to cache: %w", err)
	}
	return nil
}
