package session

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestAddTurnBoundsHistory(t *testing.T) {
	s := NewSession()
	for i := 0; i < 10; i++ {
		s.AddTurn("user", "hello")
		s.AddTurn("assistant", "hi")
	}

	if len(s.History) != HistoryLimit {
		t.Fatalf("history length = %d, want %d", len(s.History), HistoryLimit)
	}
	// The newest turn is always kept.
	if last := s.History[len(s.History)-1]; last.Role != "assistant" {
		t.Fatalf("last turn = %+v", last)
	}
}

func TestNewSessionHasUniqueID(t *testing.T) {
	a, b := NewSession(), NewSession()
	if a.ID == "" || a.ID == b.ID {
		t.Fatalf("ids %q and %q", a.ID, b.ID)
	}
}

func TestMemoryStoreRoundTrip(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	s := NewSession()
	s.AddTurn("user", "start booking")
	if err := store.Put(ctx, s); err != nil {
		t.Fatalf("Put: %v", err)
	}

	got, err := store.Get(ctx, s.ID)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got.ID != s.ID || len(got.History) != 1 {
		t.Fatalf("got %+v", got)
	}

	// The stored session is isolated from later caller mutations.
	got.AddTurn("user", "mutation")
	again, err := store.Get(ctx, s.ID)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if len(again.History) != 1 {
		t.Fatalf("store shared state with caller: %+v", again.History)
	}
}

func TestMemoryStoreExpiry(t *testing.T) {
	now := time.Now()
	clock := func() time.Time { return now }
	store := NewMemoryStore(WithTTL(time.Minute), WithNow(clock))
	ctx := context.Background()

	s := NewSession()
	s.UpdatedAt = now
	if err := store.Put(ctx, s); err != nil {
		t.Fatalf("Put: %v", err)
	}

	now = now.Add(2 * time.Minute)
	if _, err := store.Get(ctx, s.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}
}

func TestMemoryStoreSweep(t *testing.T) {
	now := time.Now()
	clock := func() time.Time { return now }
	store := NewMemoryStore(WithTTL(time.Minute), WithNow(clock))
	ctx := context.Background()

	stale := NewSession()
	stale.UpdatedAt = now.Add(-2 * time.Minute)
	fresh := NewSession()
	fresh.UpdatedAt = now

	store.Put(ctx, stale)
	store.Put(ctx, fresh)

	if removed := store.Sweep(); removed != 1 {
		t.Fatalf("Sweep removed %d, want 1", removed)
	}
	if _, err := store.Get(ctx, fresh.ID); err != nil {
		t.Fatalf("fresh session evicted: %v", err)
	}
}

func TestMemoryStoreGetUnknown(t *testing.T) {
	store := NewMemoryStore()
	if _, err := store.Get(context.Background(), "nope"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}

	if err := store.Delete(context.Background(), "nope"); err != nil {
		t.Fatalf("Delete unknown: %v", err)
	}
}
