package observability

import (
	"context"
	"sync"
	"testing"
	"time"
)

func TestNoopHooksDoNotPanic(t *testing.T) {
	ctx := context.Background()

	h := NoopHashHooks{}
	h.OnHash(ctx, "dual", 128, time.Millisecond)
	h.OnUnreadable(ctx, "/missing")
	h.OnRegister(ctx, "p0123456789abcdef", "a.ts")

	c := NoopCacheHooks{}
	c.OnCacheHit(ctx, "file")
	c.OnCacheMiss(ctx, "file")
	c.OnCacheSet(ctx, "file", 1024)
}

func TestGlobalHooksRegistry(t *testing.T) {
	Reset()
	defer Reset()

	if _, ok := Hash().(NoopHashHooks); !ok {
		t.Error("Hash() should return NoopHashHooks by default")
	}
	if _, ok := Cache().(NoopCacheHooks); !ok {
		t.Error("Cache() should return NoopCacheHooks by default")
	}

	customHash := &recordingHashHooks{}
	SetHashHooks(customHash)
	if Hash() != customHash {
		t.Error("SetHashHooks should set custom hooks")
	}

	customCache := &recordingCacheHooks{}
	SetCacheHooks(customCache)
	if Cache() != customCache {
		t.Error("SetCacheHooks should set custom hooks")
	}

	// Nil should be ignored
	SetHashHooks(nil)
	if Hash() != customHash {
		t.Error("SetHashHooks(nil) should keep existing hooks")
	}
	SetCacheHooks(nil)
	if Cache() != customCache {
		t.Error("SetCacheHooks(nil) should keep existing hooks")
	}

	Reset()
	if _, ok := Hash().(NoopHashHooks); !ok {
		t.Error("Reset should restore NoopHashHooks")
	}
}

func TestHooksReceiveEvents(t *testing.T) {
	Reset()
	defer Reset()

	rec := &recordingHashHooks{}
	SetHashHooks(rec)

	ctx := context.Background()
	Hash().OnHash(ctx, "text", 3, time.Microsecond)
	Hash().OnRegister(ctx, "pabc", "x.ts")
	Hash().OnUnreadable(ctx, "gone.ts")

	if rec.hashes != 1 || rec.registers != 1 || rec.unreadable != 1 {
		t.Errorf("recorded %+v", rec)
	}
}

type recordingHashHooks struct {
	mu                            sync.Mutex
	hashes, registers, unreadable int
}

func (r *recordingHashHooks) OnHash(context.Context, string, int, time.Duration) {
	r.mu.Lock()
	r.hashes++
	r.mu.Unlock()
}

func (r *recordingHashHooks) OnUnreadable(context.Context, string) {
	r.mu.Lock()
	r.unreadable++
	r.mu.Unlock()
}

func (r *recordingHashHooks) OnRegister(context.Context, string, string) {
	r.mu.Lock()
	r.registers++
	r.mu.Unlock()
}

type recordingCacheHooks struct{}

func (*recordingCacheHooks) OnCacheHit(context.Context, string)      {}
func (*recordingCacheHooks) OnCacheMiss(context.Context, string)     {}
func (*recordingCacheHooks) OnCacheSet(context.Context, string, int) {}
