package identity

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"hearth/internal/observability"
)

// MaxBatch is the identity provider's bulk lookup ceiling. Larger requests
// are split into sequential batches.
const MaxBatch = 100

// HTTPResolver resolves identities against the provider's bulk lookup
// endpoint, POST {base}/identities.
type HTTPResolver struct {
	baseURL string
	client  *http.Client
}

// NewHTTPResolver returns a resolver for the provider at baseURL.
func NewHTTPResolver(baseURL string) *HTTPResolver {
	return &HTTPResolver{
		baseURL: baseURL,
		client:  &http.Client{Timeout: 5 * time.Second},
	}
}

type lookupRequest struct {
	IDs []string `json:"ids"`
}

// Resolve looks up ids in batches of MaxBatch. IDs the provider does not know
// are absent from the result, not an error.
func (r *HTTPResolver) Resolve(ctx context.Context, ids []string) (map[string]Identity, error) {
	ids = Dedupe(ids)
	out := make(map[string]Identity, len(ids))

	for start := 0; start < len(ids); start += MaxBatch {
		end := start + MaxBatch
		if end > len(ids) {
			end = len(ids)
		}
		if err := r.resolveBatch(ctx, ids[start:end], out); err != nil {
			return nil, err
		}
	}
	return out, nil
}

func (r *HTTPResolver) resolveBatch(ctx context.Context, ids []string, out map[string]Identity) error {
	layer := observability.GetTraceLayer()
	ctx, span := layer.TraceIdentityLookup(ctx, len(ids))
	defer span.End()

	start := time.Now()
	defer func() {
		observability.IdentityLookupLatency.Observe(time.Since(start).Seconds())
	}()

	body, err := json.Marshal(lookupRequest{IDs: ids})
	if err != nil {
		return fmt.Errorf("failed to encode identity lookup: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, r.baseURL+"/identities", bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to build identity lookup request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := r.client.Do(req)
	if err != nil {
		observability.IdentityLookupFailures.Inc()
		span.RecordError(err)
		return fmt.Errorf("identity lookup failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		observability.IdentityLookupFailures.Inc()
		err := fmt.Errorf("identity provider returned status %d", resp.StatusCode)
		span.RecordError(err)
		return err
	}

	var identities []Identity
	if err := json.NewDecoder(resp.Body).Decode(&identities); err != nil {
		observability.IdentityLookupFailures.Inc()
		return fmt.Errorf("failed to decode identity lookup response: %w", err)
	}

	for _, ident := range identities {
		out[ident.ID] = ident
	}
	return nil
}
