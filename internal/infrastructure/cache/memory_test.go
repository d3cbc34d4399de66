package cache

import (
	"context"
	"testing"
	"time"
)

func TestMemoryStoreSetGetDelete(t *testing.T) {
	ms := NewMemoryStore(time.Hour)
	defer ms.Close()
	ctx := context.Background()

	if err := ms.Set(ctx, "k", "v", time.Minute); err != nil {
		t.Fatalf("set: %v", err)
	}
	v, ok, err := ms.Get(ctx, "k")
	if err != nil || !ok || v != "v" {
		t.Fatalf("get = %q %v %v", v, ok, err)
	}
	if err := ms.Delete(ctx, "k"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, ok, _ := ms.Get(ctx, "k"); ok {
		t.Fatalf("expected key to be deleted")
	}
}

func TestMemoryStoreExpiration(t *testing.T) {
	ms := NewMemoryStore(time.Hour)
	defer ms.Close()
	ctx := context.Background()

	_ = ms.Set(ctx, "short", "v", time.Millisecond)
	_ = ms.Set(ctx, "forever", "v", 0)
	time.Sleep(5 * time.Millisecond)

	if _, ok, _ := ms.Get(ctx, "short"); ok {
		t.Fatalf("expired key still readable")
	}
	if _, ok, _ := ms.Get(ctx, "forever"); !ok {
		t.Fatalf("non-expiring key missing")
	}

	ms.sweep(time.Now())
	if ms.Len() != 1 {
		t.Fatalf("sweep left %d items, want 1", ms.Len())
	}
}

func TestMemoryStoreCloseIsIdempotent(t *testing.T) {
	ms := NewMemoryStore(time.Millisecond)
	if err := ms.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}
	if err := ms.Close(); err != nil {
		t.Fatalf("second close: %v", err)
	}
}
