package storefront

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"

	"github.com/avaler/steam-mcp/internal/cache"
)

// SearchResult is one row of the store search listing.
type SearchResult struct {
	Title    string `json:"title"`
	AppID    string `json:"appid"`
	Released string `json:"released,omitempty"`
	Price    string `json:"price,omitempty"`
	Link     string `json:"link"`
}

// Searcher queries the store search listing, which is HTML only.
type Searcher struct {
	client *http.Client
	cache  cache.KV
	ttl    time.Duration
	base   string
}

// NewSearcher returns a Searcher that remembers results in store for ttl.
func NewSearcher(store cache.KV, ttl time.Duration) *Searcher {
	return &Searcher{
		client: &http.Client{Timeout: 15 * time.Second},
		cache:  store,
		ttl:    ttl,
		base:   "https://store.steampowered.com",
	}
}

func (s *Searcher) cacheKey(q string) string { return "store_search|" + q }

// Search returns up to limit store entries matching the query.
func (s *Searcher) Search(ctx context.Context, query string, limit int) ([]SearchResult, error) {
	q := strings.TrimSpace(query)
	if q == "" {
		return nil, fmt.Errorf("storefront: empty query")
	}
	if limit <= 0 || limit > 25 {
		limit = 10
	}
	if v, err := s.cache.Get(s.cacheKey(q)); err == nil {
		var cached []SearchResult
		if json.Unmarshal(v, &cached) == nil {
			if len(cached) > limit {
				return cached[:limit], nil
			}
			return cached, nil
		}
	}

	values := url.Values{"term": {q}, "l": {"english"}}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.base+"/search/?"+values.Encode(), nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", NextUserAgent())
	req.Header.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8")
	req.Header.Set("Accept-Language", "en-US,en;q=0.9")

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("storefront: search status %d", resp.StatusCode)
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return nil, err
	}

	results := make([]SearchResult, 0, limit)
	doc.Find("a.search_result_row").EachWithBreak(func(_ int, row *goquery.Selection) bool {
		title := singleLine(row.Find("span.title").First().Text())
		appID := strings.TrimSpace(row.AttrOr("data-ds-appid", ""))
		link := strings.TrimSpace(row.AttrOr("href", ""))
		if title == "" || appID == "" {
			return true
		}
		price := singleLine(row.Find("div.discount_final_price").First().Text())
		if price == "" {
			price = singleLine(row.Find("div.search_price").First().Text())
		}
		results = append(results, SearchResult{
			Title:    title,
			AppID:    appID,
			Released: singleLine(row.Find("div.search_released").First().Text()),
			Price:    price,
			Link:     link,
		})
		return len(results) < limit
	})

	if b, err := json.Marshal(results); err == nil {
		_ = s.cache.Put(s.cacheKey(q), b, s.ttl)
	}
	return results, nil
}

// singleLine trims and collapses internal whitespace/newlines to single spaces.
func singleLine(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return s
	}
	return strings.Join(strings.Fields(s), " ")
}
