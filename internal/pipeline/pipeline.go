// Package pipeline wires the four analysis stages together: discovery,
// chunk building, bounded-parallel chunk execution, and synthesis.
// Data flows strictly forward; no stage reaches back into an earlier
// one.
package pipeline

import (
	"context"
	"fmt"

	"github.com/brigadehq/brigade/internal/chunker"
	"github.com/brigadehq/brigade/internal/discovery"
	"github.com/brigadehq/brigade/internal/executor"
	"github.com/brigadehq/brigade/internal/synthesis"
	"github.com/brigadehq/brigade/internal/types"
)

// Config holds the pipeline's tunables. These are the only knobs; no
// other environment-derived behavior belongs here.
type Config struct {
	// ChunkSizeBudget is the byte-size budget per chunk.
	ChunkSizeBudget int64

	// ChunkFileBudget is the file-count budget per chunk.
	ChunkFileBudget int

	// Workers is the chunk worker pool size.
	Workers int
}

// DefaultConfig returns the default tunables.
func DefaultConfig() *Config {
	return &Config{
		ChunkSizeBudget: chunker.DefaultSizeBudget,
		ChunkFileBudget: chunker.DefaultFileBudget,
		Workers:         executor.DefaultWorkers,
	}
}

// Pipeline analyzes a whole repository under a bounded work budget and
// produces a FinalAnalysis.
type Pipeline struct {
	analyzer executor.FileAnalyzer
	config   *Config
}

// New creates a pipeline. The file analyzer is required; a nil config
// uses defaults.
func New(analyzer executor.FileAnalyzer, config *Config) (*Pipeline, error) {
	if analyzer == nil {
		return nil, fmt.Errorf("file analyzer is required")
	}
	if config == nil {
		config = DefaultConfig()
	}
	return &Pipeline{analyzer: analyzer, config: config}, nil
}

// Run analyzes the repository rooted at root. Per-file and per-chunk
// failures degrade the result instead of failing it; the only hard
// failure is an unreadable root.
func (p *Pipeline) Run(ctx context.Context, root string) (*types.FinalAnalysis, error) {
	inventory, err := discovery.NewWalker(root).Discover(ctx)
	if err != nil {
		return nil, fmt.Errorf("discovering files: %w", err)
	}
	summary := discovery.Summarize(inventory)

	chunks := chunker.NewBuilder(p.config.ChunkSizeBudget, p.config.ChunkFileBudget).Build(inventory)

	pool, err := executor.NewPool(p.analyzer, p.config.Workers, root)
	if err != nil {
		return nil, fmt.Errorf("creating worker pool: %w", err)
	}
	results := pool.Run(ctx, chunks)

	return synthesis.Synthesize(summary, results), nil
}
