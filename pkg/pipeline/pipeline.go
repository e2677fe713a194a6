// Package pipeline provides the statistics pipeline for dagstats.
//
// This package implements the complete load → build → depth → aggregate
// pipeline used by both the CLI and the HTTP server. By centralizing this
// logic, both entry points report identical numbers for identical input.
//
// # Architecture
//
// The pipeline consists of four stages, each consuming only the previous
// stage's output:
//
//  1. Load: Parse the database text into records ([io.ReadDatabase])
//  2. Build: Validate references and build the graph ([dag.Build])
//  3. Depth: Breadth-first depth from the root ([dag.ComputeDepths])
//  4. Aggregate: Derive the summary statistics ([stats.Compute])
//
// A failing stage aborts the run; no partial [Result] is ever returned.
//
// # Usage
//
//	runner := pipeline.NewRunner(logger)
//	result, err := runner.Run(ctx, "db.txt", pipeline.DefaultOptions())
//	if err != nil {
//	    return err
//	}
//	return pipeline.WriteReport(os.Stdout, result, opts)
//
// [io.ReadDatabase]: github.com/matzehuels/dagstats/pkg/io.ReadDatabase
package pipeline

import (
	"time"

	"github.com/matzehuels/dagstats/pkg/dag"
	"github.com/matzehuels/dagstats/pkg/errors"
	"github.com/matzehuels/dagstats/pkg/stats"
)

// =============================================================================
// Formats
// =============================================================================

// Format constants for report encodings.
const (
	FormatText = "text"
	FormatJSON = "json"
	FormatYAML = "yaml"
)

// ValidFormats is the set of supported report encodings.
var ValidFormats = map[string]bool{
	FormatText: true,
	FormatJSON: true,
	FormatYAML: true,
}

// ValidateFormat checks that a format is valid.
func ValidateFormat(format string) error {
	if !ValidFormats[format] {
		return errors.New(errors.ErrCodeInvalidInput, "invalid format: %q (must be one of: text, json, yaml)", format)
	}
	return nil
}

// =============================================================================
// Options - Pipeline Configuration
// =============================================================================

// Options configures a pipeline run and its report.
type Options struct {
	Format      string `json:"format,omitempty"`
	Precision   int    `json:"precision"`
	BucketWidth int64  `json:"bucket_width,omitempty"`
}

// DefaultOptions returns the options used when nothing is configured.
func DefaultOptions() Options {
	return Options{
		Format:      FormatText,
		Precision:   stats.DefaultPrecision,
		BucketWidth: stats.DefaultBucketWidth,
	}
}

// Validate checks all option values.
func (o Options) Validate() error {
	if err := ValidateFormat(o.Format); err != nil {
		return err
	}
	if err := errors.ValidatePrecision(o.Precision); err != nil {
		return err
	}
	if o.BucketWidth <= 0 {
		return errors.New(errors.ErrCodeInvalidInput, "bucket width must be positive, got %d", o.BucketWidth)
	}
	return nil
}

// =============================================================================
// Result
// =============================================================================

// Result contains the outputs of a pipeline run. All fields are read-only.
type Result struct {
	// Source names the input (file path or request label).
	Source string

	// Graph is the validated transaction graph.
	Graph *dag.Graph

	// Depths holds the BFS depth of every node.
	Depths dag.Depths

	// Stats contains the aggregated statistics.
	Stats stats.Stats

	// Timings contains per-stage durations.
	Timings Timings
}

// Timings contains pipeline stage durations.
type Timings struct {
	Load      time.Duration
	Build     time.Duration
	Depth     time.Duration
	Aggregate time.Duration
}

// Total returns the sum of all stage durations.
func (t Timings) Total() time.Duration {
	return t.Load + t.Build + t.Depth + t.Aggregate
}
