package train_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"testing"

	"github.com/born-ml/micrograd/internal/config"
	"github.com/born-ml/micrograd/internal/train"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func quiet() *slog.Logger {
	return slog.New(slog.NewTextHandler(&bytes.Buffer{}, nil))
}

func moons(epochs int) config.Train {
	cfg := config.Default()
	cfg.Samples = 40
	cfg.Epochs = epochs
	return cfg
}

func TestRun_MoonsLossDecreases(t *testing.T) {
	tr, err := train.New(moons(30), quiet())
	require.NoError(t, err)

	res, err := tr.Run(context.Background())
	require.NoError(t, err)
	require.Len(t, res.Epochs, 30)

	first, last := res.Epochs[0], res.Epochs[len(res.Epochs)-1]
	assert.Less(t, last.Loss, first.Loss)
	assert.InDelta(t, 1.0, first.LR, 1e-12)
	assert.Less(t, last.LR, first.LR)
	assert.GreaterOrEqual(t, res.FinalAccuracy, 0.7)
	assert.Len(t, res.Parameters, 337)
	assert.Equal(t, tr.RunID(), res.RunID)
}

func TestRun_XORAdamMSE(t *testing.T) {
	cfg := config.Default()
	cfg.Dataset = "xor"
	cfg.Layers = []int{8, 1}
	cfg.Activation = "tanh"
	cfg.Optimizer = "adam"
	cfg.Loss = "mse"
	cfg.LR = 0.05
	cfg.LREnd = 0
	cfg.Alpha = 0
	cfg.Epochs = 200

	tr, err := train.New(cfg, quiet())
	require.NoError(t, err)

	res, err := tr.Run(context.Background())
	require.NoError(t, err)
	assert.Less(t, res.FinalLoss, res.Epochs[0].Loss)
	assert.Equal(t, 0.05, res.Epochs[len(res.Epochs)-1].LR, "constant schedule")
}

func TestRun_Deterministic(t *testing.T) {
	run := func() *train.Result {
		tr, err := train.New(moons(5), quiet())
		require.NoError(t, err)
		res, err := tr.Run(context.Background())
		require.NoError(t, err)
		return res
	}

	a, b := run(), run()
	assert.Equal(t, a.Epochs, b.Epochs)
	assert.Equal(t, a.Parameters, b.Parameters)
	assert.NotEqual(t, a.RunID, b.RunID)
}

func TestRun_MiniBatch(t *testing.T) {
	cfg := moons(3)
	cfg.BatchSize = 8
	cfg.Momentum = 0.9

	tr, err := train.New(cfg, quiet())
	require.NoError(t, err)
	res, err := tr.Run(context.Background())
	require.NoError(t, err)
	assert.Len(t, res.Epochs, 3)
}

func TestRun_Cancelled(t *testing.T) {
	tr, err := train.New(moons(10), quiet())
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	res, err := tr.Run(ctx)
	assert.Nil(t, res)
	assert.True(t, errors.Is(err, context.Canceled))
}

func TestNew_InvalidConfig(t *testing.T) {
	cfg := config.Default()
	cfg.Epochs = 0

	_, err := train.New(cfg, nil)
	require.ErrorIs(t, err, config.ErrInvalid)
}

func TestRun_Logs(t *testing.T) {
	var buf bytes.Buffer
	cfg := moons(4)
	cfg.LogEvery = 2

	tr, err := train.New(cfg, slog.New(slog.NewJSONHandler(&buf, nil)))
	require.NoError(t, err)
	_, err = tr.Run(context.Background())
	require.NoError(t, err)

	var epochs []float64
	dec := json.NewDecoder(&buf)
	for dec.More() {
		var rec map[string]any
		require.NoError(t, dec.Decode(&rec))
		assert.Equal(t, tr.RunID().String(), rec["run_id"])
		if rec["msg"] == "epoch" {
			epochs = append(epochs, rec["epoch"].(float64))
		}
	}
	assert.Equal(t, []float64{0, 2}, epochs)
}
