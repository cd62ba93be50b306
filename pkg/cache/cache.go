// Package cache stores computed fingerprints so unchanged files are not
// re-hashed, and derives the keys build systems use to address them.
//
// Four backends implement [Cache]:
//   - [NullCache]: stores nothing, for --no-cache runs and tests
//   - [FileCache]: JSON entries sharded under a local directory
//   - [RedisCache]: a shared Redis instance, for CI fleets
//   - [MongoCache]: a MongoDB collection with a TTL index
//
// Keys come from a [Keyer]. [DefaultKeyer] derives a file key from the path,
// size, content digest and hash mode, so any byte change misses the cache
// even when the modification time is restored. [ScopedKeyer] prefixes every
// key for multi-tenant isolation.
package cache

import (
	"context"
	"time"
)

// Cache is a byte-oriented key/value store with optional expiry.
//
// Get reports a miss with (nil, false, nil); an error means the backend
// itself failed. A ttl of 0 stores the entry without expiry.
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	Close() error
}

// NullCache never stores anything; every Get is a miss.
type NullCache struct{}

// NewNullCache returns a cache that disables caching.
func NewNullCache() Cache {
	return NullCache{}
}

func (NullCache) Get(context.Context, string) ([]byte, bool, error)        { return nil, false, nil }
func (NullCache) Set(context.Context, string, []byte, time.Duration) error { return nil }
func (NullCache) Delete(context.Context, string) error                     { return nil }
func (NullCache) Close() error                                             { return nil }

var _ Cache = NullCache{}
