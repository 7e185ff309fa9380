// Package ratelimit implements the per-user sliding-window write governor.
package ratelimit

import (
	"context"
	"time"
)

// Governor decides whether a user's write may proceed. Admit records the
// attempt and returns false when the user has exhausted the window; a denied
// attempt does not consume budget.
type Governor interface {
	Admit(ctx context.Context, userID string) (bool, error)
}

// FailPolicy defines the behavior when the governor's store (Redis) is unavailable.
type FailPolicy int

const (
	// FailOpen admits the write if the store is unavailable.
	FailOpen FailPolicy = iota
	// FailClosed denies the write if the store is unavailable.
	FailClosed
)

// Config holds the window parameters shared by governor implementations.
type Config struct {
	Limit  int
	Window time.Duration
}
