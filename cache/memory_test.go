package cache

import (
	"bytes"
	"context"
	"fmt"
	"sync"
	"testing"
	"time"
)

func TestMemoryStore_GetSetDelete(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	// Get on empty store
	e, ok := store.Get(ctx, "nonexistent")
	if ok {
		t.Error("Get on empty store should return ok=false")
	}
	if e.Payload != nil {
		t.Error("Get on empty store should return zero entry")
	}

	// Set
	key := "transactions"
	entry := Entry{Kind: KindTransactionList, Payload: []byte(`[]`)}
	if err := store.Set(ctx, key, entry, 0); err != nil {
		t.Fatalf("Set failed: %v", err)
	}

	// Get after Set
	got, ok := store.Get(ctx, key)
	if !ok {
		t.Error("Get after Set should return ok=true")
	}
	if got.Kind != KindTransactionList {
		t.Errorf("Get returned kind %v, want %v", got.Kind, KindTransactionList)
	}
	if !bytes.Equal(got.Payload, entry.Payload) {
		t.Errorf("Get returned %q, want %q", got.Payload, entry.Payload)
	}

	// Delete
	if err := store.Delete(ctx, key); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	if _, ok := store.Get(ctx, key); ok {
		t.Error("Get after Delete should return ok=false")
	}

	// Delete is idempotent
	if err := store.Delete(ctx, "nonexistent"); err != nil {
		t.Errorf("Delete on non-existent key should not error, got: %v", err)
	}
}

func TestMemoryStore_ZeroTTLNeverExpires(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	if err := store.Set(ctx, "k", Entry{Payload: []byte(`1`)}, 0); err != nil {
		t.Fatalf("Set failed: %v", err)
	}

	if _, ok := store.Get(ctx, "k"); !ok {
		t.Error("entry with zero TTL should live until cleared")
	}
}

func TestMemoryStore_TTLExpiry(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	if err := store.Set(ctx, "k", Entry{Payload: []byte(`1`)}, time.Nanosecond); err != nil {
		t.Fatalf("Set failed: %v", err)
	}
	time.Sleep(5 * time.Millisecond)

	if _, ok := store.Get(ctx, "k"); ok {
		t.Error("expired entry should miss")
	}
}

func TestMemoryStore_Overwrite(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	_ = store.Set(ctx, "k", Entry{Payload: []byte(`"old"`)}, 0)
	_ = store.Set(ctx, "k", Entry{Payload: []byte(`"new"`)}, 0)

	got, ok := store.Get(ctx, "k")
	if !ok {
		t.Fatal("expected hit after overwrite")
	}
	if string(got.Payload) != `"new"` {
		t.Errorf("overwrite should replace wholesale, got %q", got.Payload)
	}
	if store.Len() != 1 {
		t.Errorf("a key maps to at most one entry, Len = %d", store.Len())
	}
}

func TestMemoryStore_Clear(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		_ = store.Set(ctx, fmt.Sprintf("key-%d", i), Entry{Payload: []byte(`1`)}, 0)
	}
	if store.Len() != 5 {
		t.Fatalf("Len = %d, want 5", store.Len())
	}

	if err := store.Clear(ctx); err != nil {
		t.Fatalf("Clear failed: %v", err)
	}
	if store.Len() != 0 {
		t.Errorf("Len after Clear = %d, want 0", store.Len())
	}
	for i := 0; i < 5; i++ {
		if _, ok := store.Get(ctx, fmt.Sprintf("key-%d", i)); ok {
			t.Errorf("key-%d should miss after Clear", i)
		}
	}
}

func TestMemoryStore_DeletePrefix(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	_ = store.Set(ctx, "transactions", Entry{Payload: []byte(`[]`)}, 0)
	_ = store.Set(ctx, `transactions@{"page":1}`, Entry{Payload: []byte(`[]`)}, 0)
	_ = store.Set(ctx, `employees@{"page":1}`, Entry{Payload: []byte(`[]`)}, 0)

	removed, err := store.DeletePrefix(ctx, "transactions")
	if err != nil {
		t.Fatalf("DeletePrefix failed: %v", err)
	}
	if removed != 2 {
		t.Errorf("removed = %d, want 2", removed)
	}

	if _, ok := store.Get(ctx, `employees@{"page":1}`); !ok {
		t.Error("unrelated key should survive DeletePrefix")
	}
	if _, ok := store.Get(ctx, "transactions"); ok {
		t.Error("prefixed key should be removed")
	}
}

// TestMemoryStore_RangeAllowsMutation verifies Range iterates a snapshot so
// the callback can write back without deadlocking.
func TestMemoryStore_RangeAllowsMutation(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	_ = store.Set(ctx, "a", Entry{Payload: []byte(`1`)}, 0)
	_ = store.Set(ctx, "b", Entry{Payload: []byte(`2`)}, 0)

	seen := 0
	store.Range(ctx, func(key string, e Entry) bool {
		seen++
		_ = store.Set(ctx, key, Entry{Payload: []byte(`0`)}, 0)
		return true
	})

	if seen != 2 {
		t.Errorf("Range visited %d entries, want 2", seen)
	}
	got, _ := store.Get(ctx, "a")
	if string(got.Payload) != `0` {
		t.Errorf("write during Range should stick, got %q", got.Payload)
	}
}

func TestMemoryStore_RangeEarlyStop(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	_ = store.Set(ctx, "a", Entry{Payload: []byte(`1`)}, 0)
	_ = store.Set(ctx, "b", Entry{Payload: []byte(`2`)}, 0)

	seen := 0
	store.Range(ctx, func(key string, e Entry) bool {
		seen++
		return false
	})
	if seen != 1 {
		t.Errorf("Range should stop after fn returns false, visited %d", seen)
	}
}

func TestMemoryStore_ConcurrentAccess(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	const goroutines = 50
	var wg sync.WaitGroup
	wg.Add(goroutines)

	for i := 0; i < goroutines; i++ {
		go func(i int) {
			defer wg.Done()
			key := fmt.Sprintf("key-%d", i%10)
			_ = store.Set(ctx, key, Entry{Payload: []byte(`1`)}, 0)
			_, _ = store.Get(ctx, key)
			store.Range(ctx, func(string, Entry) bool { return true })
		}(i)
	}

	wg.Wait()
	if store.Len() != 10 {
		t.Errorf("Len = %d, want 10", store.Len())
	}
}
