// Package perf provides bounded concurrent fan-out helpers
package perf

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"
)

// Map applies fn to every item with at most concurrency calls in flight.
// Results keep the order of items. The first error cancels the context seen
// by the remaining calls, calls not yet started are skipped, and Map returns
// that error with no results.
func Map[T, R any](ctx context.Context, items []T, fn func(context.Context, T) (R, error), concurrency int) ([]R, error) {
	if len(items) == 0 {
		return nil, nil
	}

	if concurrency <= 0 {
		concurrency = 1
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(concurrency)

	results := make([]R, len(items))
	for i, item := range items {
		idx, it := i, item
		g.Go(func() error {
			// Skip work queued behind a failure
			if err := gctx.Err(); err != nil {
				return err
			}
			r, err := fn(gctx, it)
			if err != nil {
				return err
			}
			results[idx] = r
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	// errgroup only reports task errors; a parent cancelled mid-flight must not
	// look like a complete batch
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("fan-out cancelled: %w", err)
	}
	return results, nil
}

// Each is Map without results.
func Each[T any](ctx context.Context, items []T, fn func(context.Context, T) error, concurrency int) error {
	_, err := Map(ctx, items, func(ctx context.Context, it T) (struct{}, error) {
		return struct{}{}, fn(ctx, it)
	}, concurrency)
	return err
}
