// Package cache stores encoded decode results in a Pebble database, keyed
// by the content of the decoded stream and the settings used to decode it.
package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"

	"github.com/cockroachdb/pebble"
)

// ErrMiss reports a key with no cached value.
var ErrMiss = errors.New("cache: miss")

// Cache is a persistent byte cache.
type Cache struct {
	db *pebble.DB
}

// Open opens or creates a cache rooted at dir.
func Open(dir string) (*Cache, error) {
	db, err := pebble.Open(dir, &pebble.Options{})
	if err != nil {
		return nil, fmt.Errorf("open cache %s: %w", dir, err)
	}
	return &Cache{db: db}, nil
}

// Key derives the cache key of a stream decoded with the given settings.
func Key(data []byte, settings ...string) string {
	h := sha256.New()
	for _, s := range settings {
		h.Write([]byte(s))
		h.Write([]byte{0})
	}
	h.Write(data)
	return hex.EncodeToString(h.Sum(nil))
}

// Get returns a copy of the value stored under key, or ErrMiss.
func (c *Cache) Get(key string) ([]byte, error) {
	val, closer, err := c.db.Get([]byte(key))
	if errors.Is(err, pebble.ErrNotFound) {
		return nil, ErrMiss
	}
	if err != nil {
		return nil, err
	}
	defer func() { _ = closer.Close() }()
	out := make([]byte, len(val))
	copy(out, val)
	return out, nil
}

// Put stores val under key. Writes are not synced; a lost entry is only a
// future miss.
func (c *Cache) Put(key string, val []byte) error {
	return c.db.Set([]byte(key), val, pebble.NoSync)
}

// Delete removes key.
func (c *Cache) Delete(key string) error {
	return c.db.Delete([]byte(key), pebble.NoSync)
}

// Close flushes and closes the database.
func (c *Cache) Close() error {
	if c == nil || c.db == nil {
		return nil
	}
	err := c.db.Close()
	c.db = nil
	return err
}
