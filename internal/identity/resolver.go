// Package identity resolves opaque author IDs to display identities via the
// external identity provider. The engine never stores accounts; every author
// field is an opaque ID minted elsewhere.
package identity

import (
	"context"
)

// Identity is the displayable projection of an external account.
type Identity struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	ImageURL string `json:"image_url"`
}

// Resolver looks up identities in bulk. The returned map contains an entry for
// every id the provider knows; callers decide how to treat missing ids.
type Resolver interface {
	Resolve(ctx context.Context, ids []string) (map[string]Identity, error)
}

// Dedupe returns ids with duplicates and empty strings removed, preserving
// first-seen order.
func Dedupe(ids []string) []string {
	seen := make(map[string]struct{}, len(ids))
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		if id == "" {
			continue
		}
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}

// StaticResolver serves identities from a fixed map. Used by tests and the
// seed tool.
type StaticResolver struct {
	Identities map[string]Identity
}

// NewStaticResolver returns a resolver over the given identities.
func NewStaticResolver(identities map[string]Identity) *StaticResolver {
	return &StaticResolver{Identities: identities}
}

// Resolve returns the known subset of ids.
func (r *StaticResolver) Resolve(_ context.Context, ids []string) (map[string]Identity, error) {
	out := make(map[string]Identity, len(ids))
	for _, id := range Dedupe(ids) {
		if ident, ok := r.Identities[id]; ok {
			out[id] = ident
		}
	}
	return out, nil
}
