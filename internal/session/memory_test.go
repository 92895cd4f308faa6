package session

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestMemoryStore_CreateGetDelete(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore(time.Hour)

	sess, err := s.Create(ctx, 42)
	if err != nil {
		t.Fatal(err)
	}
	if sess.ID == "" || sess.UserID != 42 {
		t.Fatalf("session = %+v", sess)
	}
	got, err := s.Get(ctx, sess.ID)
	if err != nil || got.UserID != 42 {
		t.Fatalf("Get = %+v, %v", got, err)
	}
	if err := s.Delete(ctx, sess.ID); err != nil {
		t.Fatal(err)
	}
	if _, err := s.Get(ctx, sess.ID); !errors.Is(err, ErrNoSession) {
		t.Errorf("after delete err = %v", err)
	}
}

func TestMemoryStore_Expiry(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore(time.Minute)
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	s.now = func() time.Time { return now }

	a, _ := s.Create(ctx, 1)
	now = now.Add(30 * time.Second)
	b, _ := s.Create(ctx, 2)

	now = now.Add(31 * time.Second)
	if _, err := s.Get(ctx, a.ID); !errors.Is(err, ErrNoSession) {
		t.Errorf("expired session returned err = %v", err)
	}
	if _, err := s.Get(ctx, b.ID); err != nil {
		t.Errorf("live session: %v", err)
	}

	now = now.Add(time.Minute)
	if n := s.Sweep(); n != 1 {
		t.Errorf("Sweep removed %d, want 1", n)
	}
	if len(s.sessions) != 0 {
		t.Errorf("%d sessions left", len(s.sessions))
	}
}

func TestMemoryStore_UniqueIDs(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore(time.Hour)
	seen := map[string]bool{}
	for i := 0; i < 100; i++ {
		sess, _ := s.Create(ctx, 1)
		if seen[sess.ID] {
			t.Fatalf("duplicate id %s", sess.ID)
		}
		seen[sess.ID] = true
	}
}

func TestMemoryStore_StartStop(t *testing.T) {
	s := NewMemoryStore(time.Hour)
	if err := s.Start(); err != nil {
		t.Fatal(err)
	}
	s.Stop()
}
