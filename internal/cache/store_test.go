package cache

import (
	"errors"
	"path/filepath"
	"testing"
	"time"
)

func newTestStore(t *testing.T, opts Options) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "cache.db"), opts)
	if err != nil {
		t.Fatalf("Open returned error: %v", err)
	}
	t.Cleanup(func() {
		_ = s.Close()
	})
	return s
}

func TestStorePutGetRoundTrip(t *testing.T) {
	t.Parallel()

	s := newTestStore(t, Options{DefaultTTL: time.Minute})
	if err := s.Put("k", []byte("v"), 0); err != nil {
		t.Fatalf("Put returned error: %v", err)
	}
	got, err := s.Get("k")
	if err != nil {
		t.Fatalf("Get returned error: %v", err)
	}
	if string(got) != "v" {
		t.Fatalf("Get returned %q, want %q", got, "v")
	}
}

func TestStoreGetAbsentKey(t *testing.T) {
	t.Parallel()

	s := newTestStore(t, Options{})
	if _, err := s.Get("missing"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("Get returned %v, want ErrNotFound", err)
	}
}

func TestStoreExpiry(t *testing.T) {
	t.Parallel()

	s := newTestStore(t, Options{})
	if err := s.Put("k", []byte("v"), time.Second); err != nil {
		t.Fatalf("Put returned error: %v", err)
	}
	// Expiry granularity is one second.
	time.Sleep(2100 * time.Millisecond)
	if _, err := s.Get("k"); !errors.Is(err, ErrExpired) {
		t.Fatalf("Get returned %v, want ErrExpired", err)
	}
}

func TestStoreNoTTLNeverExpires(t *testing.T) {
	t.Parallel()

	s := newTestStore(t, Options{})
	if err := s.Put("k", []byte("v"), 0); err != nil {
		t.Fatalf("Put returned error: %v", err)
	}
	if _, err := s.Get("k"); err != nil {
		t.Fatalf("Get returned error: %v", err)
	}
}

func TestStoreDelete(t *testing.T) {
	t.Parallel()

	s := newTestStore(t, Options{DefaultTTL: time.Minute})
	if err := s.Put("k", []byte("v"), 0); err != nil {
		t.Fatalf("Put returned error: %v", err)
	}
	if err := s.Delete("k"); err != nil {
		t.Fatalf("Delete returned error: %v", err)
	}
	if _, err := s.Get("k"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("Get returned %v, want ErrNotFound", err)
	}
}
