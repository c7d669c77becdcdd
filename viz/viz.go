// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package viz renders computation graphs in Graphviz DOT format.
//
// Example:
//
//	dot := viz.DrawDot(loss, viz.WithRankDir(viz.TopToBottom))
//	os.WriteFile("graph.dot", []byte(dot), 0o644)
package viz

import (
	"io"

	"github.com/born-ml/micrograd/engine"
	"github.com/born-ml/micrograd/internal/viz"
)

// Option configures DOT output.
type Option = viz.Option

// RankDir is the Graphviz layout direction.
type RankDir = viz.RankDir

// Layout directions.
const (
	LeftToRight = viz.LeftToRight
	TopToBottom = viz.TopToBottom
)

// WithRankDir sets the layout direction.
func WithRankDir(d RankDir) Option {
	return viz.WithRankDir(d)
}

// WithLabels names values in the rendered records.
func WithLabels(labels map[engine.Value]string) Option {
	return viz.WithLabels(labels)
}

// DrawDot returns the DOT source for the graph rooted at root.
func DrawDot(root engine.Value, opts ...Option) string {
	return viz.DrawDot(root, opts...)
}

// WriteDot writes the DOT source for the graph rooted at root to w.
func WriteDot(w io.Writer, root engine.Value, opts ...Option) error {
	return viz.WriteDot(w, root, opts...)
}
