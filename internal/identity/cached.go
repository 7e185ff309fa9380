package identity

import (
	"context"

	"hearth/internal/cache"
)

// CachedResolver fronts another resolver with the Redis cache. Hits are served
// from cache, misses are fetched in one upstream batch and written back.
type CachedResolver struct {
	upstream Resolver
}

// NewCachedResolver wraps upstream with cache-aside reads.
func NewCachedResolver(upstream Resolver) *CachedResolver {
	return &CachedResolver{upstream: upstream}
}

// Resolve serves what it can from cache and batches the rest upstream.
func (r *CachedResolver) Resolve(ctx context.Context, ids []string) (map[string]Identity, error) {
	ids = Dedupe(ids)
	out := make(map[string]Identity, len(ids))
	missing := make([]string, 0, len(ids))

	for _, id := range ids {
		var ident Identity
		found, err := cache.GetJSON(ctx, cache.IdentityKey(id), &ident)
		if err != nil || !found {
			missing = append(missing, id)
			continue
		}
		out[id] = ident
	}

	if len(missing) == 0 {
		return out, nil
	}

	fetched, err := r.upstream.Resolve(ctx, missing)
	if err != nil {
		return nil, err
	}

	for id, ident := range fetched {
		out[id] = ident
		// Best-effort write-back.
		_ = cache.SetJSON(ctx, cache.IdentityKey(id), ident, cache.IdentityTTL)
	}
	return out, nil
}
