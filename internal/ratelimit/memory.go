package ratelimit

import (
	"context"
	"sync"
	"time"
)

// MemoryGovernor is an in-process sliding-window governor. It serves
// single-instance deployments and tests; multi-instance deployments should use
// RedisGovernor so all replicas share one window per user.
type MemoryGovernor struct {
	mu      sync.Mutex
	cfg     Config
	now     func() time.Time
	windows map[string][]time.Time
}

// NewMemoryGovernor returns a governor enforcing cfg with the real clock.
func NewMemoryGovernor(cfg Config) *MemoryGovernor {
	return NewMemoryGovernorWithClock(cfg, time.Now)
}

// NewMemoryGovernorWithClock returns a governor with an injectable clock.
func NewMemoryGovernorWithClock(cfg Config, now func() time.Time) *MemoryGovernor {
	return &MemoryGovernor{
		cfg:     cfg,
		now:     now,
		windows: make(map[string][]time.Time),
	}
}

// Admit records the attempt if the user has budget left in the window.
func (g *MemoryGovernor) Admit(_ context.Context, userID string) (bool, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	now := g.now()
	cutoff := now.Add(-g.cfg.Window)

	kept := g.windows[userID][:0]
	for _, t := range g.windows[userID] {
		if t.After(cutoff) {
			kept = append(kept, t)
		}
	}

	if len(kept) >= g.cfg.Limit {
		g.windows[userID] = kept
		return false, nil
	}

	g.windows[userID] = append(kept, now)
	return true, nil
}

// Evict drops users whose entire window has expired. Callers run it
// periodically to keep the map from growing with one-time writers.
func (g *MemoryGovernor) Evict() {
	g.mu.Lock()
	defer g.mu.Unlock()

	cutoff := g.now().Add(-g.cfg.Window)
	for user, times := range g.windows {
		live := false
		for _, t := range times {
			if t.After(cutoff) {
				live = true
				break
			}
		}
		if !live {
			delete(g.windows, user)
		}
	}
}
