// Package observability provides hooks for metrics and tracing.
//
// Consumers register hooks at startup to receive events about fingerprinting,
// soul registration and cache traffic without this module depending on any
// particular metrics backend.
//
// # Usage
//
// Register hooks at application startup:
//
//	func main() {
//	    observability.SetHashHooks(&myHashHooks{})
//	    observability.SetCacheHooks(&myCacheHooks{})
//	    // ... run application
//	}
//
// Libraries call hooks to emit events:
//
//	observability.Hash().OnHash(ctx, "dual", len(content), time.Since(start))
package observability

import (
	"context"
	"sync"
	"time"
)

// =============================================================================
// Hash Hooks
// =============================================================================

// HashHooks receives events from fingerprinting.
type HashHooks interface {
	// OnHash records one computed fingerprint of size bytes.
	OnHash(ctx context.Context, mode string, size int, duration time.Duration)

	// OnUnreadable records a file that could not be read.
	OnUnreadable(ctx context.Context, path string)

	// OnRegister records a path registered under a soul.
	OnRegister(ctx context.Context, soul, path string)
}

// =============================================================================
// Cache Hooks
// =============================================================================

// CacheHooks receives events from cache operations.
type CacheHooks interface {
	// OnCacheHit records a cache hit.
	OnCacheHit(ctx context.Context, keyType string)

	// OnCacheMiss records a cache miss.
	OnCacheMiss(ctx context.Context, keyType string)

	// OnCacheSet records a cache write.
	OnCacheSet(ctx context.Context, keyType string, size int)
}

// =============================================================================
// No-op Implementations
// =============================================================================

// NoopHashHooks is a no-op implementation of HashHooks.
type NoopHashHooks struct{}

func (NoopHashHooks) OnHash(context.Context, string, int, time.Duration) {}
func (NoopHashHooks) OnUnreadable(context.Context, string)               {}
func (NoopHashHooks) OnRegister(context.Context, string, string)         {}

// NoopCacheHooks is a no-op implementation of CacheHooks.
type NoopCacheHooks struct{}

func (NoopCacheHooks) OnCacheHit(context.Context, string)      {}
func (NoopCacheHooks) OnCacheMiss(context.Context, string)     {}
func (NoopCacheHooks) OnCacheSet(context.Context, string, int) {}

// =============================================================================
// Global Hook Registry
// =============================================================================

var (
	hashHooks  HashHooks  = NoopHashHooks{}
	cacheHooks CacheHooks = NoopCacheHooks{}
	hooksMu    sync.RWMutex
)

// SetHashHooks registers custom hash hooks. Nil is ignored.
func SetHashHooks(h HashHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		hashHooks = h
	}
}

// SetCacheHooks registers custom cache hooks. Nil is ignored.
func SetCacheHooks(h CacheHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		cacheHooks = h
	}
}

// Hash returns the registered hash hooks.
func Hash() HashHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return hashHooks
}

// Cache returns the registered cache hooks.
func Cache() CacheHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return cacheHooks
}

// Reset restores all hooks to their no-op defaults.
// This is primarily useful for testing.
func Reset() {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	hashHooks = NoopHashHooks{}
	cacheHooks = NoopCacheHooks{}
}
