package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"time"
)

// Cache defines the interface for caching
type Cache interface {
	Get(key string) ([]byte, bool)
	Set(key string, value []byte, ttl time.Duration) error
	Delete(key string) error
	Clear() error
}

// SearchKey generates a cache key for a web-search query.
// Depth is part of the key: basic and advanced results differ.
func SearchKey(query, depth string) string {
	hash := sha256.Sum256([]byte(depth + "\x00" + query))
	return "claimlens:v1:search:" + hex.EncodeToString(hash[:])
}

// ProbeKey generates a cache key for a source-probe result
func ProbeKey(url string) string {
	hash := sha256.Sum256([]byte(url))
	return "claimlens:v1:probe:" + hex.EncodeToString(hash[:])
}
