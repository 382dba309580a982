package storefront

import (
	"context"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/avaler/steam-mcp/internal/cache"
)

const searchFixture = `<!DOCTYPE html>
<html><body>
<div id="search_resultsRows">
<a href="https://store.example/app/70/Half_Life/" class="search_result_row" data-ds-appid="70">
	<span class="title">Half-Life</span>
	<div class="search_released">Nov 8, 1998</div>
	<div class="search_price">$9.99</div>
</a>
<a href="https://store.example/app/220/Half_Life_2/" class="search_result_row" data-ds-appid="220">
	<span class="title">Half-Life 2</span>
	<div class="search_released">Nov 16, 2004</div>
	<div class="discount_final_price">$4.99</div>
</a>
</div>
</body></html>`

func newTestSearcher(t *testing.T, handler http.Handler) (*Searcher, *atomic.Int64) {
	t.Helper()
	var hits atomic.Int64
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		handler.ServeHTTP(w, r)
	}))
	t.Cleanup(srv.Close)

	store, err := cache.Open(filepath.Join(t.TempDir(), "cache.db"), cache.Options{})
	if err != nil {
		t.Fatalf("cache.Open returned error: %v", err)
	}
	t.Cleanup(func() {
		_ = store.Close()
	})

	s := NewSearcher(store, time.Minute)
	s.client = srv.Client()
	s.base = srv.URL
	return s, &hits
}

func TestSearchParsesRows(t *testing.T) {
	t.Parallel()

	s, _ := newTestSearcher(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.URL.Query().Get("term"); got != "half-life" {
			t.Errorf("term = %q, want %q", got, "half-life")
		}
		w.Write([]byte(searchFixture))
	}))

	results, err := s.Search(context.Background(), "half-life", 10)
	if err != nil {
		t.Fatalf("Search returned error: %v", err)
	}
	if len(results) != 2 {
		t.Fatalf("got %d results, want 2", len(results))
	}
	if results[0].Title != "Half-Life" || results[0].AppID != "70" || results[0].Price != "$9.99" {
		t.Fatalf("unexpected first result: %+v", results[0])
	}
	if results[1].Price != "$4.99" {
		t.Fatalf("discounted price not picked up: %+v", results[1])
	}
}

func TestSearchServesRepeatsFromCache(t *testing.T) {
	t.Parallel()

	s, hits := newTestSearcher(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(searchFixture))
	}))

	for i := 0; i < 3; i++ {
		if _, err := s.Search(context.Background(), "half-life", 10); err != nil {
			t.Fatalf("Search call %d returned error: %v", i+1, err)
		}
	}
	if got := hits.Load(); got != 1 {
		t.Fatalf("store endpoint hit %d times, want 1", got)
	}
}

func TestSearchLimit(t *testing.T) {
	t.Parallel()

	s, _ := newTestSearcher(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(searchFixture))
	}))

	results, err := s.Search(context.Background(), "half-life", 1)
	if err != nil {
		t.Fatalf("Search returned error: %v", err)
	}
	if len(results) != 1 {
		t.Fatalf("got %d results, want 1", len(results))
	}
}

func TestSearchRejectsEmptyQuery(t *testing.T) {
	t.Parallel()

	s, _ := newTestSearcher(t, http.NotFoundHandler())
	if _, err := s.Search(context.Background(), "  ", 10); err == nil {
		t.Fatal("expected error for empty query")
	}
}
