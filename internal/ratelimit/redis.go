package ratelimit

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"time"

	"hearth/internal/middleware"

	"github.com/redis/go-redis/v9"
)

// RedisGovernor is a sliding-window governor backed by a Redis sorted set per
// user. Timestamps are stored as nanosecond scores so the window boundary is
// exact rather than bucketed.
type RedisGovernor struct {
	rdb    *redis.Client
	cfg    Config
	policy FailPolicy
}

// NewRedisGovernor returns a governor enforcing cfg over the given client.
func NewRedisGovernor(rdb *redis.Client, cfg Config, policy FailPolicy) *RedisGovernor {
	return &RedisGovernor{rdb: rdb, cfg: cfg, policy: policy}
}

func writeKey(userID string) string {
	return fmt.Sprintf("rl:write:%s", userID)
}

// Admit trims expired entries, counts the remainder, and records the attempt
// only when it is admitted. A denied attempt leaves the window untouched so a
// throttled user recovers as soon as the oldest admitted write ages out.
func (g *RedisGovernor) Admit(ctx context.Context, userID string) (bool, error) {
	if g.rdb == nil {
		return g.failResult(fmt.Errorf("redis client is nil"))
	}

	key := writeKey(userID)
	now := time.Now()
	cutoff := now.Add(-g.cfg.Window)

	pipe := g.rdb.TxPipeline()
	pipe.ZRemRangeByScore(ctx, key, "0", strconv.FormatInt(cutoff.UnixNano(), 10))
	countCmd := pipe.ZCard(ctx, key)
	if _, err := pipe.Exec(ctx); err != nil {
		return g.failResult(err)
	}

	if countCmd.Val() >= int64(g.cfg.Limit) {
		return false, nil
	}

	pipe = g.rdb.TxPipeline()
	pipe.ZAdd(ctx, key, redis.Z{
		Score:  float64(now.UnixNano()),
		Member: strconv.FormatInt(now.UnixNano(), 10),
	})
	pipe.Expire(ctx, key, g.cfg.Window)
	if _, err := pipe.Exec(ctx); err != nil {
		return g.failResult(err)
	}
	return true, nil
}

func (g *RedisGovernor) failResult(err error) (bool, error) {
	if g.policy == FailClosed {
		middleware.Logger.Warn("write governor unavailable, failing closed", slog.String("error", err.Error()))
		return false, err
	}
	middleware.Logger.Warn("write governor unavailable, failing open", slog.String("error", err.Error()))
	return true, nil
}
