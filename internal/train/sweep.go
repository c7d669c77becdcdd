package train

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/born-ml/micrograd/internal/config"
	"github.com/born-ml/micrograd/internal/parallel"
)

// Sweep trains one model per configuration on up to workers goroutines.
// Every run owns its arenas, so runs never share graph state. Results are
// returned in the order of cfgs; the first failure aborts the sweep.
func Sweep(ctx context.Context, cfgs []config.Train, workers int, logger *slog.Logger) ([]*Result, error) {
	trainers := make([]*Trainer, len(cfgs))
	for i, cfg := range cfgs {
		t, err := New(cfg, logger)
		if err != nil {
			return nil, fmt.Errorf("train: sweep run %d: %w", i, err)
		}
		trainers[i] = t
	}

	results := make([]*Result, len(cfgs))
	err := parallel.For(ctx, len(trainers), parallel.Config{Workers: workers}, func(ctx context.Context, i int) error {
		res, err := trainers[i].Run(ctx)
		if err != nil {
			return err
		}
		results[i] = res
		return nil
	})
	if err != nil {
		return nil, err
	}
	return results, nil
}

// Seeds returns a copy of base for every seed.
func Seeds(base config.Train, seeds ...int64) []config.Train {
	cfgs := make([]config.Train, len(seeds))
	for i, s := range seeds {
		cfgs[i] = base
		cfgs[i].Seed = s
		cfgs[i].Layers = append([]int(nil), base.Layers...)
	}
	return cfgs
}
