package cache

import (
	"github.com/pkg/errors"
	"github.com/redis/go-redis/v9"
)

// ErrNotFound is returned by Get when the key does not exist in the cache.
var ErrNotFound = errors.New("cache: not found")

var client *redis.Client

// Initialize wires the package-level redis client used by all Set caches.
// It must be called before any Set is used.
func Initialize(c *redis.Client) {
	client = c
}

// Ready reports whether the redis-backed caches are usable.
// In-process Singular caches are always usable.
func Ready() bool {
	return client != nil
}
