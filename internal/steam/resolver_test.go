package steam

import (
	"context"
	"errors"
	"net/http"
	"sync"
	"testing"
)

// fakeFinder scripts the two remote lookups and counts invocations.
type fakeFinder struct {
	mu           sync.Mutex
	vanityCalls  int
	summaryCalls int

	vanityID   string // "" means the vanity lookup reports not found
	vanityErr  error
	player     *Player // nil means no profile matches the raw id
	summaryErr error
}

func (f *fakeFinder) ResolveVanityURL(_ context.Context, _ string) (string, bool, error) {
	f.mu.Lock()
	f.vanityCalls++
	f.mu.Unlock()
	if f.vanityErr != nil {
		return "", false, f.vanityErr
	}
	if f.vanityID == "" {
		return "", false, nil
	}
	return f.vanityID, true, nil
}

func (f *fakeFinder) PlayerSummary(_ context.Context, _ string) (*Player, error) {
	f.mu.Lock()
	f.summaryCalls++
	f.mu.Unlock()
	if f.summaryErr != nil {
		return nil, f.summaryErr
	}
	return f.player, nil
}

func (f *fakeFinder) calls() (int, int) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.vanityCalls, f.summaryCalls
}

func TestResolverVanityName(t *testing.T) {
	t.Parallel()

	api := &fakeFinder{vanityID: "123"}
	r := NewResolver(api)

	id, err := r.Resolve(context.Background(), "vanityname")
	if err != nil {
		t.Fatalf("Resolve returned error: %v", err)
	}
	if id != "123" {
		t.Fatalf("Resolve returned %q, want %q", id, "123")
	}
}

func TestResolverPositiveCaching(t *testing.T) {
	t.Parallel()

	api := &fakeFinder{vanityID: "123"}
	r := NewResolver(api)

	for i := 0; i < 3; i++ {
		id, err := r.Resolve(context.Background(), "vanityname")
		if err != nil {
			t.Fatalf("Resolve call %d returned error: %v", i+1, err)
		}
		if id != "123" {
			t.Fatalf("Resolve call %d returned %q, want %q", i+1, id, "123")
		}
	}

	vanity, summary := api.calls()
	if vanity != 1 || summary != 0 {
		t.Fatalf("remote calls = (%d vanity, %d summary), want (1, 0)", vanity, summary)
	}
}

func TestResolverFallsBackToDirectLookup(t *testing.T) {
	t.Parallel()

	api := &fakeFinder{player: &Player{SteamID: "76561198000000000"}}
	r := NewResolver(api)

	id, err := r.Resolve(context.Background(), "76561198000000000")
	if err != nil {
		t.Fatalf("Resolve returned error: %v", err)
	}
	if id != "76561198000000000" {
		t.Fatalf("Resolve returned %q, want the direct-lookup steamid", id)
	}

	vanity, summary := api.calls()
	if vanity != 1 || summary != 1 {
		t.Fatalf("remote calls = (%d vanity, %d summary), want (1, 1)", vanity, summary)
	}
}

func TestResolverNegativeCaching(t *testing.T) {
	t.Parallel()

	api := &fakeFinder{} // both strategies report not found
	r := NewResolver(api)

	if _, err := r.Resolve(context.Background(), "ghost"); !errors.Is(err, ErrPlayerNotFound) {
		t.Fatalf("first Resolve returned %v, want ErrPlayerNotFound", err)
	}
	if _, err := r.Resolve(context.Background(), "ghost"); !errors.Is(err, ErrPlayerNotFound) {
		t.Fatalf("second Resolve returned %v, want ErrPlayerNotFound", err)
	}

	// The confirmed miss must be served from cache.
	vanity, summary := api.calls()
	if vanity != 1 || summary != 1 {
		t.Fatalf("remote calls = (%d vanity, %d summary), want (1, 1)", vanity, summary)
	}
}

func TestResolverTransportFailureNotCached(t *testing.T) {
	t.Parallel()

	api := &fakeFinder{vanityErr: errors.New("connection refused")}
	r := NewResolver(api)

	if _, err := r.Resolve(context.Background(), "vanityname"); err == nil {
		t.Fatal("expected error from failing transport")
	} else if errors.Is(err, ErrPlayerNotFound) {
		t.Fatal("transport failure must not surface as not-found")
	}

	// The service recovers; the earlier failure must not have been cached.
	api.vanityErr = nil
	api.vanityID = "123"
	id, err := r.Resolve(context.Background(), "vanityname")
	if err != nil {
		t.Fatalf("Resolve after recovery returned error: %v", err)
	}
	if id != "123" {
		t.Fatalf("Resolve after recovery returned %q, want %q", id, "123")
	}

	vanity, _ := api.calls()
	if vanity != 2 {
		t.Fatalf("vanity calls = %d, want 2 (failure must be retried)", vanity)
	}
}

func TestResolverUpstreamFailureNotCached(t *testing.T) {
	t.Parallel()

	api := &fakeFinder{summaryErr: &StatusError{Endpoint: "GetPlayerSummaries", Status: http.StatusTooManyRequests}}
	r := NewResolver(api)

	_, err := r.Resolve(context.Background(), "76561")
	var se *StatusError
	if !errors.As(err, &se) {
		t.Fatalf("Resolve returned %v, want *StatusError", err)
	}

	api.summaryErr = nil
	api.player = &Player{SteamID: "76561"}
	if _, err := r.Resolve(context.Background(), "76561"); err != nil {
		t.Fatalf("Resolve after recovery returned error: %v", err)
	}

	_, summary := api.calls()
	if summary != 2 {
		t.Fatalf("summary calls = %d, want 2 (failure must be retried)", summary)
	}
}

func TestResolverConcurrentSameIdentifier(t *testing.T) {
	t.Parallel()

	api := &fakeFinder{vanityID: "123"}
	r := NewResolver(api)

	var wg sync.WaitGroup
	results := make([]string, 8)
	errs := make([]error, 8)
	for i := range results {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i], errs[i] = r.Resolve(context.Background(), "vanityname")
		}(i)
	}
	wg.Wait()

	for i := range results {
		if errs[i] != nil {
			t.Fatalf("goroutine %d: Resolve returned error: %v", i, errs[i])
		}
		if results[i] != "123" {
			t.Fatalf("goroutine %d: Resolve returned %q, want %q", i, results[i], "123")
		}
	}

	// Duplicate in-flight fetches for one key are allowed, but once the
	// outcome is cached no further remote calls may happen.
	before, _ := api.calls()
	if _, err := r.Resolve(context.Background(), "vanityname"); err != nil {
		t.Fatalf("Resolve returned error: %v", err)
	}
	after, _ := api.calls()
	if after != before {
		t.Fatalf("vanity calls grew from %d to %d on a cached identifier", before, after)
	}
}
