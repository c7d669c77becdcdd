package main

import (
	"fmt"
	"os"
	"os/exec"

	"github.com/born-ml/micrograd/engine"
	"github.com/born-ml/micrograd/viz"
	"github.com/spf13/cobra"
)

var (
	graphOut     string
	graphPNG     string
	graphRankDir string
)

func newGraphCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "graph",
		Short: "Draw the graph of a single tanh neuron",
		Long: `Builds o = tanh(x1*w1 + x2*w2 + b), backpropagates from o and writes
the graph in Graphviz DOT format.

Use --out - to print the DOT source. --png renders it with the dot binary,
which must be on PATH.`,
		Args: cobra.NoArgs,
		RunE: runGraph,
	}

	cmd.Flags().StringVar(&graphOut, "out", "graph.dot", "DOT output file, or - for stdout")
	cmd.Flags().StringVar(&graphPNG, "png", "", "also render a PNG to this file")
	cmd.Flags().StringVar(&graphRankDir, "rankdir", string(viz.LeftToRight), "layout direction: LR or TB")
	return cmd
}

func runGraph(cmd *cobra.Command, _ []string) error {
	logger, err := newLogger(cmd)
	if err != nil {
		return err
	}

	var dir viz.RankDir
	switch graphRankDir {
	case string(viz.LeftToRight), string(viz.TopToBottom):
		dir = viz.RankDir(graphRankDir)
	default:
		return fmt.Errorf("invalid --rankdir %q", graphRankDir)
	}
	if graphPNG != "" && graphOut == "-" {
		return fmt.Errorf("--png needs --out to name a file")
	}

	life, vf := engine.Build()
	defer life.Release()

	o, labels := neuron(vf)
	o.Backward()
	logger.Debug("backward done", "o", o.String())

	opts := []viz.Option{viz.WithRankDir(dir), viz.WithLabels(labels)}
	if graphOut == "-" {
		return viz.WriteDot(cmd.OutOrStdout(), o, opts...)
	}
	if err := writeDotFile(graphOut, o, opts); err != nil {
		return err
	}
	logger.Info("wrote graph", "path", graphOut)

	if graphPNG == "" {
		return nil
	}
	//nolint:gosec // dot is invoked with paths chosen by the user
	render := exec.CommandContext(cmd.Context(), "dot", "-Tpng", "-o", graphPNG, graphOut)
	render.Stderr = cmd.ErrOrStderr()
	if err := render.Run(); err != nil {
		return fmt.Errorf("render %s: %w", graphPNG, err)
	}
	logger.Info("rendered graph", "path", graphPNG)
	return nil
}

// neuron builds the two-input tanh neuron whose bias puts the output at
// tanh(0.8814) = 0.7071.
func neuron(vf engine.Factory) (engine.Value, map[engine.Value]string) {
	x1 := vf.Value(2.0)
	x2 := vf.Value(0.0)
	w1 := vf.Value(-3.0)
	w2 := vf.Value(1.0)
	b := vf.Value(6.8813735870195432)

	x1w1 := x1.Mul(w1)
	x2w2 := x2.Mul(w2)
	sum := x1w1.Add(x2w2)
	n := sum.Add(b)
	o := n.Tanh()

	return o, map[engine.Value]string{
		x1: "x1", x2: "x2", w1: "w1", w2: "w2", b: "b",
		x1w1: "x1*w1", x2w2: "x2*w2", sum: "x1*w1 + x2*w2", n: "n", o: "o",
	}
}

func writeDotFile(path string, root engine.Value, opts []viz.Option) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("close %s: %w", path, cerr)
		}
	}()

	return viz.WriteDot(f, root, opts...)
}
