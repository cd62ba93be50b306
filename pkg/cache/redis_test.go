package cache

import (
	"context"
	"os"
	"testing"
	"time"

	errs "github.com/matzehuels/soulhash/pkg/errors"
)

// redisAddr returns the address of a test Redis server, skipping the test
// when none is configured.
func redisAddr(t *testing.T) string {
	t.Helper()
	addr := os.Getenv("SOULHASH_TEST_REDIS_ADDR")
	if addr == "" {
		t.Skip("SOULHASH_TEST_REDIS_ADDR not set")
	}
	return addr
}

func TestNewRedisCacheInvalidAddr(t *testing.T) {
	_, err := NewRedisCache(context.Background(), RedisConfig{Addr: "no-port"})
	if !errs.Is(err, errs.ErrCodeInvalidConfig) {
		t.Errorf("NewRedisCache(no-port) error = %v, want %s", err, errs.ErrCodeInvalidConfig)
	}
}

func TestNewRedisCacheUnreachable(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 500*time.Millisecond)
	defer cancel()

	// Port 1 on loopback is never a Redis server.
	_, err := NewRedisCache(ctx, RedisConfig{Addr: "127.0.0.1:1"})
	if !errs.Is(err, errs.ErrCodeCache) {
		t.Errorf("NewRedisCache(unreachable) error = %v, want %s", err, errs.ErrCodeCache)
	}
}

func TestRedisCacheRoundTrip(t *testing.T) {
	ctx := context.Background()
	c, err := NewRedisCache(ctx, RedisConfig{Addr: redisAddr(t)})
	if err != nil {
		t.Fatalf("NewRedisCache: %v", err)
	}
	defer c.Close()

	key := "soulhash:test:" + t.Name()
	defer c.Delete(ctx, key)

	if _, hit, err := c.Get(ctx, key); hit || err != nil {
		t.Fatalf("Get before Set = hit %v, err %v", hit, err)
	}
	if err := c.Set(ctx, key, []byte("v"), time.Minute); err != nil {
		t.Fatalf("Set: %v", err)
	}
	data, hit, err := c.Get(ctx, key)
	if err != nil || !hit || string(data) != "v" {
		t.Errorf("Get = %q, %v, %v", data, hit, err)
	}
	if err := c.Delete(ctx, key); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, hit, _ := c.Get(ctx, key); hit {
		t.Error("key should be gone after Delete")
	}
}
