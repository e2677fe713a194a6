package pipeline

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/dagstats/pkg/dag"
	pkgio "github.com/matzehuels/dagstats/pkg/io"
	"github.com/matzehuels/dagstats/pkg/observability"
	"github.com/matzehuels/dagstats/pkg/stats"
)

// Runner executes the pipeline and reports progress to its logger and the
// registered observability hooks.
//
// The Runner is stateless except for the logger - it doesn't store pipeline
// results. Multiple goroutines can safely use the same Runner.
type Runner struct {
	Logger *log.Logger
}

// NewRunner creates a runner. If logger is nil, log.Default() is used.
func NewRunner(logger *log.Logger) *Runner {
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{Logger: logger}
}

// Run runs the pipeline on the database file at path.
// A missing or unreadable file is returned as an IO_ERROR.
func (r *Runner) Run(ctx context.Context, path string, opts Options) (*Result, error) {
	return r.run(ctx, path, opts, func() ([]dag.Record, error) {
		return pkgio.ImportDatabase(path)
	})
}

// RunReader runs the pipeline on database text read from src. source
// labels the input in logs and hooks.
func (r *Runner) RunReader(ctx context.Context, src io.Reader, source string, opts Options) (*Result, error) {
	return r.run(ctx, source, opts, func() ([]dag.Record, error) {
		return pkgio.ReadDatabase(src)
	})
}

// run executes the stages, with load supplying the records for stage 1.
func (r *Runner) run(ctx context.Context, source string, opts Options, load func() ([]dag.Record, error)) (*Result, error) {
	if err := opts.Validate(); err != nil {
		return nil, fmt.Errorf("invalid options: %w", err)
	}
	hooks := observability.Pipeline()
	result := &Result{Source: source}

	// Stage 1: Load
	start := time.Now()
	records, err := load()
	result.Timings.Load = time.Since(start)
	hooks.OnLoadComplete(ctx, source, len(records), result.Timings.Load, err)
	if err != nil {
		return nil, err
	}
	r.Logger.Debug("loaded database", "source", source, "records", len(records), "duration", result.Timings.Load)
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	// Stage 2: Build
	start = time.Now()
	g, err := dag.Build(records)
	result.Timings.Build = time.Since(start)
	if err != nil {
		hooks.OnBuildComplete(ctx, 0, 0, result.Timings.Build, err)
		return nil, err
	}
	hooks.OnBuildComplete(ctx, g.NodeCount(), g.EdgeCount(), result.Timings.Build, nil)
	result.Graph = g
	r.Logger.Debug("built graph", "nodes", g.NodeCount(), "edges", g.EdgeCount(), "duration", result.Timings.Build)
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	// Stage 3: Depth
	start = time.Now()
	result.Depths = dag.ComputeDepths(g)
	result.Timings.Depth = time.Since(start)
	hooks.OnDepthComplete(ctx, result.Depths.Max(), result.Timings.Depth)
	r.Logger.Debug("computed depths", "max_depth", result.Depths.Max(), "reachable", result.Depths.Reachable(), "duration", result.Timings.Depth)
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	// Stage 4: Aggregate
	start = time.Now()
	result.Stats = stats.Compute(g, result.Depths, stats.Options{BucketWidth: opts.BucketWidth})
	result.Timings.Aggregate = time.Since(start)
	hooks.OnAggregateComplete(ctx, result.Timings.Aggregate)

	r.Logger.Info("computed statistics",
		"source", source,
		"nodes", result.Stats.Nodes,
		"max_depth", result.Stats.MaxDepth,
		"duration", result.Timings.Total())

	return result, nil
}
