// Package parallel runs independent tasks on a bounded number of goroutines.
//
// Graphs are single-threaded, so tasks must not share arenas. Each task
// builds and releases its own.
package parallel

import (
	"context"
	"runtime"

	"golang.org/x/sync/errgroup"
)

// Config controls parallel execution.
type Config struct {
	Workers int // Maximum concurrent tasks; values below 2 run sequentially.
}

// DefaultConfig uses one worker per CPU.
func DefaultConfig() Config {
	return Config{Workers: runtime.NumCPU()}
}

// For calls f(ctx, i) for every i in [0, n).
//
// The first error cancels the context passed to running tasks and prevents
// new ones from starting; For returns that error once all running tasks
// have returned. Tasks not started because ctx was cancelled report
// ctx.Err().
func For(ctx context.Context, n int, cfg Config, f func(ctx context.Context, i int) error) error {
	if cfg.Workers <= 1 || n <= 1 {
		for i := range n {
			if err := ctx.Err(); err != nil {
				return err
			}
			if err := f(ctx, i); err != nil {
				return err
			}
		}
		return nil
	}

	g, gCtx := errgroup.WithContext(ctx)
	g.SetLimit(min(cfg.Workers, n))

	for i := range n {
		if gCtx.Err() != nil {
			break
		}
		g.Go(func() error {
			if err := gCtx.Err(); err != nil {
				return err
			}
			return f(gCtx, i)
		})
	}

	if err := g.Wait(); err != nil {
		return err
	}
	// A parent cancelled before any task ran leaves nothing in the group.
	return ctx.Err()
}
