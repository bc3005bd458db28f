package cache

import (
	"bytes"
	"context"
	"testing"
	"time"

	"go.uber.org/zap"
)

func newTestMemory(t *testing.T) *Memory {
	t.Helper()
	m := NewMemory(time.Hour) // sweep far away, tests drive expiry directly
	t.Cleanup(m.Close)
	return m
}

func TestMemory_SetGet(t *testing.T) {
	m := newTestMemory(t)
	ctx := context.Background()

	m.Set(ctx, "k", []byte("v"), time.Minute)

	got, ok := m.Get(ctx, "k")
	if !ok {
		t.Fatal("expected hit")
	}
	if !bytes.Equal(got, []byte("v")) {
		t.Errorf("got %q, want %q", got, "v")
	}
}

func TestMemory_MissOnUnknownKey(t *testing.T) {
	m := newTestMemory(t)

	if _, ok := m.Get(context.Background(), "nope"); ok {
		t.Error("expected miss")
	}
}

func TestMemory_ExpiryDeletesOnRead(t *testing.T) {
	m := newTestMemory(t)
	ctx := context.Background()

	now := time.Now()
	m.now = func() time.Time { return now }
	m.Set(ctx, "k", []byte("v"), time.Second)

	// Jump past the expiry instant.
	m.now = func() time.Time { return now.Add(2 * time.Second) }

	if _, ok := m.Get(ctx, "k"); ok {
		t.Fatal("expected expired entry to miss")
	}

	m.mu.RLock()
	_, still := m.entries["k"]
	m.mu.RUnlock()
	if still {
		t.Error("expected expired entry to be deleted on read")
	}
}

func TestMemory_SweepRemovesExpired(t *testing.T) {
	m := newTestMemory(t)
	ctx := context.Background()

	now := time.Now()
	m.now = func() time.Time { return now }
	m.Set(ctx, "old", []byte("v"), time.Second)
	m.Set(ctx, "fresh", []byte("v"), time.Hour)

	m.now = func() time.Time { return now.Add(time.Minute) }
	m.sweep()

	m.mu.RLock()
	_, hasOld := m.entries["old"]
	_, hasFresh := m.entries["fresh"]
	m.mu.RUnlock()

	if hasOld {
		t.Error("expected sweep to remove expired entry")
	}
	if !hasFresh {
		t.Error("expected sweep to keep live entry")
	}
}

func TestMemory_DeleteAndClear(t *testing.T) {
	m := newTestMemory(t)
	ctx := context.Background()

	m.Set(ctx, "a", []byte("1"), time.Minute)
	m.Set(ctx, "b", []byte("2"), time.Minute)

	m.Delete(ctx, "a")
	if _, ok := m.Get(ctx, "a"); ok {
		t.Error("expected delete to remove key")
	}

	m.Clear(ctx)
	if _, ok := m.Get(ctx, "b"); ok {
		t.Error("expected clear to remove all keys")
	}
}

func TestMemory_CloseIsIdempotent(t *testing.T) {
	m := NewMemory(time.Hour)
	m.Close()
	m.Close() // must not panic
}

func TestNew_FallsBackWithoutAddrs(t *testing.T) {
	c := New(Config{SweepInterval: time.Hour}, zap.NewNop())
	defer c.Close()

	if _, ok := c.(*Memory); !ok {
		t.Fatalf("expected in-process backend, got %T", c)
	}
}

func TestNew_FallsBackOnUnreachableRedis(t *testing.T) {
	c := New(Config{
		Addrs:          []string{"127.0.0.1:1"}, // nothing listens here
		SweepInterval:  time.Hour,
		ConnectTimeout: 100 * time.Millisecond,
	}, zap.NewNop())
	defer c.Close()

	if _, ok := c.(*Memory); !ok {
		t.Fatalf("expected fallback to in-process backend, got %T", c)
	}
}
