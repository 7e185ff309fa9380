package repository

import (
	"context"

	"hearth/internal/observability"
)

// instrument opens a repository span and times the query. Callers defer the
// returned stop function around the database work.
func instrument(ctx context.Context, operation, table string) (context.Context, func()) {
	ctx, span := observability.GetTraceLayer().TraceRepositoryMethod(ctx, operation, table)
	stop := observability.TrackQuery(operation, table)
	return ctx, func() {
		span.End()
		stop()
	}
}
