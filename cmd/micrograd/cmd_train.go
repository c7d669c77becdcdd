package main

import (
	"fmt"
	"runtime"

	"github.com/born-ml/micrograd/internal/config"
	"github.com/born-ml/micrograd/internal/train"
	"github.com/spf13/cobra"
)

var (
	trainConfig string
	trainEpochs int
	trainSeed   int64
	trainSave   string
	trainSeeds  []int64
	trainJobs   int
)

func newTrainCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "train",
		Short: "Train an MLP on a toy dataset",
		Long: `Trains a multi-layer perceptron with the configuration in --config.
Without --config the built-in two-moons setup is used.

Examples:
  micrograd train
  micrograd train --config xor.yaml --epochs 500
  micrograd train --save-config train.yaml
  micrograd train --seeds 1,2,3,4 --workers 4`,
		Args: cobra.NoArgs,
		RunE: runTrain,
	}

	cmd.Flags().StringVar(&trainConfig, "config", "", "YAML configuration file")
	cmd.Flags().IntVar(&trainEpochs, "epochs", 0, "override the number of epochs")
	cmd.Flags().Int64Var(&trainSeed, "seed", 0, "override the random seed")
	cmd.Flags().StringVar(&trainSave, "save-config", "", "write the effective configuration to this file")
	cmd.Flags().Int64SliceVar(&trainSeeds, "seeds", nil, "train one model per seed")
	cmd.Flags().IntVar(&trainJobs, "workers", runtime.NumCPU(), "concurrent runs for --seeds")
	return cmd
}

func runTrain(cmd *cobra.Command, _ []string) error {
	logger, err := newLogger(cmd)
	if err != nil {
		return err
	}

	cfg := config.Default()
	if trainConfig != "" {
		if cfg, err = config.Load(trainConfig); err != nil {
			return err
		}
	}
	if cmd.Flags().Changed("epochs") {
		cfg.Epochs = trainEpochs
	}
	if cmd.Flags().Changed("seed") {
		cfg.Seed = trainSeed
	}
	if err := cfg.Validate(); err != nil {
		return err
	}
	if trainSave != "" {
		if err := config.Write(trainSave, cfg); err != nil {
			return err
		}
	}

	if len(trainSeeds) > 0 {
		results, err := train.Sweep(cmd.Context(), train.Seeds(cfg, trainSeeds...), trainJobs, logger)
		if err != nil {
			return err
		}
		for i, res := range results {
			printResult(cmd, trainSeeds[i], res)
		}
		return nil
	}

	trainer, err := train.New(cfg, logger)
	if err != nil {
		return err
	}
	res, err := trainer.Run(cmd.Context())
	if err != nil {
		return err
	}

	printResult(cmd, cfg.Seed, res)
	return nil
}

func printResult(cmd *cobra.Command, seed int64, res *train.Result) {
	fmt.Fprintf(cmd.OutOrStdout(), "run %s (seed %d): loss %.6f, accuracy %.2f%% after %d epochs\n",
		res.RunID, seed, res.FinalLoss, res.FinalAccuracy*100, len(res.Epochs))
}
