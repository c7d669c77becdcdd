// Package viz renders a computation graph in the Graphviz DOT language.
//
// Every value becomes a record node showing its data and gradient. Every
// derived value also gets an operation node, so an expression c = a * b is
// drawn as:
//
//	a ──┐
//	    ├──> [*] ──> c
//	b ──┘
//
// Rendering the DOT text to an image is left to the caller (for example the
// `dot` binary from Graphviz).
package viz

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/born-ml/micrograd/internal/engine"
)

// RankDir is the Graphviz layout direction.
type RankDir string

// Layout directions supported by Graphviz.
const (
	LeftToRight RankDir = "LR"
	TopToBottom RankDir = "TB"
)

type options struct {
	rankDir RankDir
	labels  map[engine.Value]string
}

// Option configures DrawDot and WriteDot.
type Option func(*options)

// WithRankDir sets the layout direction (default LeftToRight).
func WithRankDir(dir RankDir) Option {
	return func(o *options) {
		o.rankDir = dir
	}
}

// WithLabels attaches a name to selected values (e.g. "x1", "w1").
// The name is shown as the first field of the record.
func WithLabels(labels map[engine.Value]string) Option {
	return func(o *options) {
		o.labels = labels
	}
}

// DrawDot returns the DOT description of the graph reachable from root.
func DrawDot(root engine.Value, opts ...Option) string {
	var sb strings.Builder
	// strings.Builder never fails.
	_ = WriteDot(&sb, root, opts...)
	return sb.String()
}

// WriteDot writes the DOT description of the graph reachable from root to w.
func WriteDot(w io.Writer, root engine.Value, opts ...Option) error {
	o := options{rankDir: LeftToRight}
	for _, opt := range opts {
		opt(&o)
	}

	nodes, edges := engine.Trace(root)

	bw := bufio.NewWriter(w)
	fmt.Fprintln(bw, "digraph {")
	fmt.Fprintf(bw, "    rankdir=%s;\n", o.rankDir)

	for _, n := range nodes {
		id := nodeID(n)
		fmt.Fprintf(bw, "    %s [ shape=record, label = \"%s\" ]\n", id, recordLabel(n, o.labels[n]))

		if op := n.Op(); op != "" {
			opID := opNodeID(n)
			fmt.Fprintf(bw, "    %s [ label = \"%s\" ]\n", opID, escape(op))
			fmt.Fprintf(bw, "    %s -> %s\n", opID, id)
		}
	}

	for _, e := range edges {
		fmt.Fprintf(bw, "    %s -> %s\n", nodeID(e.From), opNodeID(e.To))
	}

	fmt.Fprintln(bw, "}")

	if err := bw.Flush(); err != nil {
		return fmt.Errorf("viz: write dot: %w", err)
	}
	return nil
}

func nodeID(v engine.Value) string {
	return fmt.Sprintf("n%d", v.ID())
}

func opNodeID(v engine.Value) string {
	return fmt.Sprintf("\"n%d%s\"", v.ID(), escape(v.Op()))
}

func recordLabel(v engine.Value, name string) string {
	fields := fmt.Sprintf("data %.4f | grad %.4f", v.Data(), v.Grad())
	if name != "" {
		fields = escapeRecord(name) + " | " + fields
	}
	return "{" + fields + "}"
}

// escape quotes characters that are special inside a DOT string.
func escape(s string) string {
	return strings.NewReplacer(`\`, `\\`, `"`, `\"`).Replace(s)
}

// escapeRecord additionally quotes the record-label field separators.
func escapeRecord(s string) string {
	return strings.NewReplacer(
		`\`, `\\`, `"`, `\"`,
		`{`, `\{`, `}`, `\}`, `|`, `\|`, `<`, `\<`, `>`, `\>`,
	).Replace(s)
}
