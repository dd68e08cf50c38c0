// Package cache provides byte-value caching behind a small interface,
// with in-memory, on-disk, and layered implementations. The analyzer
// uses it to memoize model-backed sentiment scores across runs; the
// query server uses the memory layer for rendered API responses.
package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"strings"
	"time"
)

// Cache is the common interface over the cache layers.
type Cache interface {
	Get(key string) ([]byte, bool)
	Set(key string, value []byte, ttl time.Duration) error
	Delete(key string) error
	Clear() error
}

// Key derives a stable, filesystem-safe cache key from its parts.
func Key(parts ...string) string {
	hash := sha256.Sum256([]byte(strings.Join(parts, "\x00")))
	return "comfortscan:v1:" + hex.EncodeToString(hash[:])
}
