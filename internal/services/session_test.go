package services

import (
	"context"
	"testing"
	"time"
)

func TestMemorySessionStore_CreateAndGet(t *testing.T) {
	store := NewMemorySessionStore()
	ctx := context.Background()

	token, err := store.Create(ctx, &Session{
		UserID:    1,
		Username:  "admin",
		Role:      "admin",
		ExpiresAt: time.Now().Add(time.Hour),
	})
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	if token == "" {
		t.Fatal("Create() returned empty token")
	}

	s, err := store.Get(ctx, token)
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if s.UserID != 1 || s.Username != "admin" || s.Role != "admin" {
		t.Errorf("Get() = %+v, session fields do not match", s)
	}
}

func TestMemorySessionStore_UnknownToken(t *testing.T) {
	store := NewMemorySessionStore()

	_, err := store.Get(context.Background(), "nonexistent-token")
	if err != ErrSessionNotFound {
		t.Errorf("Get() error = %v, expected ErrSessionNotFound", err)
	}
}

func TestMemorySessionStore_ExpiredTokenEvicted(t *testing.T) {
	store := NewMemorySessionStore()
	ctx := context.Background()

	token, _ := store.Create(ctx, &Session{
		UserID:    1,
		Username:  "admin",
		Role:      "admin",
		ExpiresAt: time.Now().Add(-time.Minute),
	})

	_, err := store.Get(ctx, token)
	if err != ErrSessionExpired {
		t.Fatalf("Get() error = %v, expected ErrSessionExpired", err)
	}

	// A second lookup no longer finds the evicted entry
	_, err = store.Get(ctx, token)
	if err != ErrSessionNotFound {
		t.Errorf("Get() after eviction error = %v, expected ErrSessionNotFound", err)
	}
}

func TestMemorySessionStore_Delete(t *testing.T) {
	store := NewMemorySessionStore()
	ctx := context.Background()

	token, _ := store.Create(ctx, &Session{
		UserID:    1,
		ExpiresAt: time.Now().Add(time.Hour),
	})

	if err := store.Delete(ctx, token); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}
	if _, err := store.Get(ctx, token); err != ErrSessionNotFound {
		t.Errorf("Get() after delete error = %v, expected ErrSessionNotFound", err)
	}

	// Deleting an absent token is not an error
	if err := store.Delete(ctx, "already-gone"); err != nil {
		t.Errorf("Delete() of absent token error = %v", err)
	}
}

func TestMemorySessionStore_Prune(t *testing.T) {
	store := NewMemorySessionStore()
	ctx := context.Background()

	store.Create(ctx, &Session{UserID: 1, ExpiresAt: time.Now().Add(-time.Hour)})
	store.Create(ctx, &Session{UserID: 2, ExpiresAt: time.Now().Add(-time.Minute)})
	live, _ := store.Create(ctx, &Session{UserID: 3, ExpiresAt: time.Now().Add(time.Hour)})

	if pruned := store.Prune(); pruned != 2 {
		t.Errorf("Prune() = %d, expected 2", pruned)
	}

	if _, err := store.Get(ctx, live); err != nil {
		t.Errorf("live session should survive pruning, got error %v", err)
	}
}

func TestMemorySessionStore_GetReturnsCopy(t *testing.T) {
	store := NewMemorySessionStore()
	ctx := context.Background()

	token, _ := store.Create(ctx, &Session{
		UserID:    1,
		Role:      "admin",
		ExpiresAt: time.Now().Add(time.Hour),
	})

	first, _ := store.Get(ctx, token)
	first.Role = "super_admin"

	second, _ := store.Get(ctx, token)
	if second.Role != "admin" {
		t.Errorf("mutating a returned session leaked into the store: role = %q", second.Role)
	}
}
