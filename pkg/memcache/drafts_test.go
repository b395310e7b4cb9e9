package mem

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestMemoryDraftsTakeIsSingleUse(t *testing.T) {
	ctx := context.Background()
	c := NewMemoryDrafts()
	if err := c.Put(ctx, "hotel:sara@example.com", []byte(`{"tripId":"1"}`), time.Minute); err != nil {
		t.Fatalf("Put: %v", err)
	}
	got, err := c.Get(ctx, "hotel:sara@example.com")
	if err != nil || string(got) != `{"tripId":"1"}` {
		t.Fatalf("Get = %q, %v", got, err)
	}
	if _, err := c.Take(ctx, "hotel:sara@example.com"); err != nil {
		t.Fatalf("Take: %v", err)
	}
	if _, err := c.Take(ctx, "hotel:sara@example.com"); !errors.Is(err, ErrMiss) {
		t.Fatalf("second Take err = %v, want ErrMiss", err)
	}
}

func TestMemoryDraftsExpiry(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2026, 10, 14, 12, 0, 0, 0, time.UTC)
	c := NewMemoryDrafts()
	c.now = func() time.Time { return now }

	_ = c.Put(ctx, "rides:abc", []byte("x"), 30*time.Minute)
	now = now.Add(31 * time.Minute)
	if _, err := c.Get(ctx, "rides:abc"); !errors.Is(err, ErrMiss) {
		t.Fatalf("expired Get err = %v", err)
	}
	_ = c.Put(ctx, "rides:def", []byte("y"), time.Minute)
	now = now.Add(2 * time.Minute)
	if _, err := c.Take(ctx, "rides:def"); !errors.Is(err, ErrMiss) {
		t.Fatalf("expired Take err = %v", err)
	}
	if len(c.data) != 0 {
		t.Fatalf("expired entries left behind: %d", len(c.data))
	}
}

func TestMemoryDraftsDelete(t *testing.T) {
	ctx := context.Background()
	c := NewMemoryDrafts()
	_ = c.Put(ctx, "k", []byte("v"), time.Minute)
	_ = c.Delete(ctx, "k")
	if _, err := c.Get(ctx, "k"); !errors.Is(err, ErrMiss) {
		t.Fatalf("Get after Delete err = %v", err)
	}
}
