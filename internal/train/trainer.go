// Package train runs the classic scalar training loop: forward, loss,
// zero-grad, backward, step.
//
// Arenas never free individual nodes, so every epoch builds its graph in a
// fresh arena. The model is cloned into the new arena and the previous one
// is released, keeping memory bounded by a single epoch's graph.
package train

import (
	"context"
	"fmt"
	"log/slog"
	"math/rand"

	"github.com/born-ml/micrograd/internal/config"
	"github.com/born-ml/micrograd/internal/data"
	"github.com/born-ml/micrograd/internal/engine"
	"github.com/born-ml/micrograd/internal/nn"
	"github.com/born-ml/micrograd/internal/optim"
	"github.com/google/uuid"
)

// EpochStats summarizes one optimization step.
type EpochStats struct {
	Epoch    int
	Loss     float64 // total loss before the step, including regularization
	Accuracy float64 // batch accuracy before the step
	LR       float64
}

// Result is the outcome of a training run.
type Result struct {
	RunID  uuid.UUID
	Epochs []EpochStats

	// FinalLoss and FinalAccuracy are measured on the full dataset after the
	// last step.
	FinalLoss     float64
	FinalAccuracy float64

	// Parameters maps parameter names to trained values.
	Parameters map[string]float64
}

// Trainer owns one configured run.
type Trainer struct {
	cfg    config.Train
	act    nn.Activation
	initFn nn.Initializer
	runID  uuid.UUID
	logger *slog.Logger
}

// New validates cfg and prepares a run. A nil logger uses slog.Default().
func New(cfg config.Train, logger *slog.Logger) (*Trainer, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	act, err := nn.ParseActivation(cfg.Activation)
	if err != nil {
		return nil, fmt.Errorf("train: %w", err)
	}
	initializer, err := nn.ParseInitializer(cfg.Init)
	if err != nil {
		return nil, fmt.Errorf("train: %w", err)
	}

	if logger == nil {
		logger = slog.Default()
	}
	runID := uuid.New()

	return &Trainer{
		cfg:    cfg,
		act:    act,
		initFn: initializer,
		runID:  runID,
		logger: logger.With("run_id", runID.String()),
	}, nil
}

// RunID identifies this run in logs and results.
func (t *Trainer) RunID() uuid.UUID {
	return t.runID
}

// Run trains until the configured number of epochs or until ctx is done.
func (t *Trainer) Run(ctx context.Context) (*Result, error) {
	cfg := t.cfg
	//nolint:gosec // deterministic sampling, not security-critical
	rng := rand.New(rand.NewSource(cfg.Seed))
	samples := t.dataset(rng)

	life, vf := engine.Build()
	defer func() { life.Release() }()

	model := nn.NewMLP(vf, nn.MLPConfig{
		In:           len(samples[0].X),
		Outs:         cfg.Layers,
		Activation:   t.act,
		LinearOutput: true,
		Init:         t.initFn,
		Seed:         cfg.Seed,
	})
	opt := t.optimizer(model.Parameters())

	t.logger.Info("training started",
		"dataset", cfg.Dataset,
		"samples", len(samples),
		"model", model.String(),
		"parameters", nn.NumParameters(model),
		"optimizer", cfg.Optimizer,
		"loss", cfg.Loss,
		"epochs", cfg.Epochs)

	res := &Result{RunID: t.runID, Epochs: make([]EpochStats, 0, cfg.Epochs)}
	for epoch := range cfg.Epochs {
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("train: epoch %d: %w", epoch, err)
		}

		if epoch > 0 {
			nextLife, nextVF := engine.Build()
			model = model.CloneInto(nextVF)
			life.Release()
			life, vf = nextLife, nextVF
			opt.SetParameters(model.Parameters())
		}
		if cfg.LREnd > 0 {
			opt.SetLR(optim.LinearDecay(cfg.LR, cfg.LREnd, epoch, cfg.Epochs))
		}

		batch := data.Batch(samples, cfg.BatchSize, rng)
		loss, acc := t.evaluate(vf, model, batch)

		opt.ZeroGrad()
		loss.Backward()
		opt.Step()

		stats := EpochStats{Epoch: epoch, Loss: loss.Data(), Accuracy: acc, LR: opt.LR()}
		res.Epochs = append(res.Epochs, stats)
		if cfg.LogEvery > 0 && epoch%cfg.LogEvery == 0 {
			t.logger.Info("epoch",
				"epoch", epoch,
				"loss", stats.Loss,
				"accuracy", stats.Accuracy,
				"lr", stats.LR)
		}
	}

	loss, acc := t.evaluate(vf, model, samples)
	res.FinalLoss = loss.Data()
	res.FinalAccuracy = acc
	res.Parameters = make(map[string]float64, nn.NumParameters(model))
	for _, p := range model.Parameters() {
		res.Parameters[p.Name()] = p.Data()
	}

	t.logger.Info("training finished",
		"loss", res.FinalLoss,
		"accuracy", res.FinalAccuracy)
	return res, nil
}

func (t *Trainer) dataset(rng *rand.Rand) []data.Sample {
	if t.cfg.Dataset == "xor" {
		return data.XOR()
	}
	return data.Moons(t.cfg.Samples, t.cfg.Noise, rng)
}

func (t *Trainer) optimizer(params []*nn.Parameter) optim.Optimizer {
	if t.cfg.Optimizer == "adam" {
		return optim.NewAdam(params, optim.AdamConfig{LR: t.cfg.LR})
	}
	return optim.NewSGD(params, optim.SGDConfig{LR: t.cfg.LR, Momentum: t.cfg.Momentum})
}

// evaluate builds the loss graph for batch and returns it with the batch
// accuracy.
func (t *Trainer) evaluate(vf engine.Factory, model *nn.MLP, batch []data.Sample) (engine.Value, float64) {
	scores := make([]engine.Value, len(batch))
	for i, s := range batch {
		scores[i] = model.Forward(vf.Values(s.X...))[0]
	}
	labels := data.Labels(batch)

	var loss engine.Value
	if t.cfg.Loss == "mse" {
		loss = nn.MSE(scores, vf.Values(labels...))
	} else {
		loss = nn.Hinge(scores, labels)
	}
	if t.cfg.Alpha > 0 {
		loss = loss.Add(nn.L2(model.Parameters(), t.cfg.Alpha))
	}

	return loss, nn.Accuracy(scores, labels)
}
