package steam

import (
	"context"
	"sync"

	"github.com/avaler/steam-mcp/internal/cache"
)

// finder is the slice of the API the resolver needs for its two lookup
// strategies. *Client implements it.
type finder interface {
	ResolveVanityURL(ctx context.Context, vanity string) (string, bool, error)
	PlayerSummary(ctx context.Context, steamID string) (*Player, error)
}

// resolution is one cached outcome: resolved to a canonical id, or confirmed
// absent. Distinct from a cache miss, which means the identifier was never
// looked up.
type resolution struct {
	id    string
	found bool
}

// Resolver maps a caller-supplied identifier, vanity name or raw SteamID64,
// to the canonical SteamID64. Outcomes are cached for the TTL of the
// underlying cache, confirmed misses included, so an unknown identifier is
// not re-queried on every call.
//
// Resolver is safe for concurrent use. The lock guards only the cache map;
// it is never held across network calls, so lookups for different
// identifiers do not serialize on each other's I/O. Two concurrent
// first-time lookups for the same identifier may both reach the API; they
// compute the same outcome, and that race is deliberately left alone.
type Resolver struct {
	mu    sync.RWMutex
	cache *cache.Memory[string, resolution]
	api   finder
}

// NewResolver returns a Resolver that answers misses via api and remembers
// outcomes for cache.DefaultTTL.
func NewResolver(api finder) *Resolver {
	return &Resolver{
		cache: cache.NewMemory[string, resolution](0),
		api:   api,
	}
}

// Resolve returns the canonical SteamID64 for id. A confirmed unknown
// identifier fails with ErrPlayerNotFound, served from cache on repeat calls.
// Transport, upstream, and decode failures propagate unchanged and are never
// cached.
func (r *Resolver) Resolve(ctx context.Context, id string) (string, error) {
	r.mu.RLock()
	res, ok := r.cache.Get(id)
	r.mu.RUnlock()
	if ok {
		if !res.found {
			return "", ErrPlayerNotFound
		}
		return res.id, nil
	}

	res, err := r.find(ctx, id)
	if err != nil {
		return "", err
	}

	r.mu.Lock()
	r.cache.Set(id, res)
	r.mu.Unlock()

	if !res.found {
		return "", ErrPlayerNotFound
	}
	return res.id, nil
}

// find tries the vanity lookup first, then falls back to treating id as an
// already-canonical SteamID64.
func (r *Resolver) find(ctx context.Context, id string) (resolution, error) {
	steamID, ok, err := r.api.ResolveVanityURL(ctx, id)
	if err != nil {
		return resolution{}, err
	}
	if ok {
		return resolution{id: steamID, found: true}, nil
	}

	p, err := r.api.PlayerSummary(ctx, id)
	if err != nil {
		return resolution{}, err
	}
	if p == nil {
		return resolution{}, nil
	}
	return resolution{id: p.SteamID, found: true}, nil
}
