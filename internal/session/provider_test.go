package session

import (
	"context"
	"testing"
	"time"

	"github.com/devaistudio/portfolio/internal/wizard"
)

func TestNewStoreDefaultsToMemory(t *testing.T) {
	t.Parallel()

	store, err := NewStore(context.Background(), Config{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, ok := store.(*MemoryStore); !ok {
		t.Fatalf("expected memory store, got %T", store)
	}
}

func TestNewStoreRejectsUnknownProvider(t *testing.T) {
	t.Parallel()

	if _, err := NewStore(context.Background(), Config{Provider: "memcached"}); err == nil {
		t.Fatal("expected error for unknown provider")
	}
}

func TestMemoryStoreRoundTrip(t *testing.T) {
	t.Parallel()

	store := NewMemoryStore()
	ctx := context.Background()

	state := wizard.New()
	state.SelectProjectType("vitrine")
	data := &Data{
		Wizard:         state,
		IdempotencyKey: "key-1",
		CreatedAt:      time.Now().Unix(),
	}

	store.Set(ctx, "session-1", data, time.Minute)

	got, ok := store.Get(ctx, "session-1")
	if !ok {
		t.Fatal("session not found")
	}
	if got.Wizard.Selection.ProjectTypeID != "vitrine" {
		t.Errorf("wizard state lost: %+v", got.Wizard.Selection)
	}
	if got.IdempotencyKey != "key-1" {
		t.Errorf("idempotency key = %q, want key-1", got.IdempotencyKey)
	}

	// Mutating the returned copy must not affect the stored state.
	got.Wizard.SelectProjectType("ecommerce")
	stored, _ := store.Get(ctx, "session-1")
	if stored.Wizard.Selection.ProjectTypeID != "vitrine" {
		t.Error("stored session mutated through returned copy")
	}
}

func TestMemoryStoreExpiry(t *testing.T) {
	t.Parallel()

	store := NewMemoryStore()
	ctx := context.Background()

	store.Set(ctx, "session-1", &Data{Wizard: wizard.New()}, -time.Second)

	if _, ok := store.Get(ctx, "session-1"); ok {
		t.Fatal("expired session should not be returned")
	}
}

func TestMemoryStoreDelete(t *testing.T) {
	t.Parallel()

	store := NewMemoryStore()
	ctx := context.Background()

	store.Set(ctx, "session-1", &Data{Wizard: wizard.New()}, time.Minute)
	store.Delete(ctx, "session-1")

	if _, ok := store.Get(ctx, "session-1"); ok {
		t.Fatal("deleted session should not be returned")
	}
}
