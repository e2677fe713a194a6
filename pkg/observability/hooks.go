// Package observability provides hooks for metrics, tracing, and logging.
//
// This package enables optional instrumentation without adding hard dependencies
// on specific observability backends. Consumers can register hooks at startup
// to receive events about each stage of a statistics run.
//
// # Architecture
//
// The package uses a simple hooks pattern:
//   - Define a hook interface for pipeline stage events
//   - Provide a no-op default implementation
//   - Allow registration of a custom implementation at startup
//
// This approach:
//   - Avoids import cycles (hooks are registered by main, not by libraries)
//   - Keeps the core library dependency-free from observability frameworks
//   - Allows different backends (Prometheus, OpenTelemetry, logs)
//
// # Usage
//
// Register hooks at application startup:
//
//	func main() {
//	    observability.SetPipelineHooks(metrics.NewPipelineHooks())
//	    // ... run application
//	}
//
// Libraries call hooks to emit events:
//
//	start := time.Now()
//	records, err := io.ReadDatabase(r)
//	observability.Pipeline().OnLoadComplete(ctx, source, len(records), time.Since(start), err)
package observability

import (
	"context"
	"sync"
	"time"
)

// =============================================================================
// Pipeline Hooks
// =============================================================================

// PipelineHooks receives events from the statistics pipeline. Each method is
// called once per stage with the stage duration and its error, if any. Stages
// after a failed one are not reported.
type PipelineHooks interface {
	// OnLoadComplete fires after the database text was parsed into records.
	OnLoadComplete(ctx context.Context, source string, records int, duration time.Duration, err error)

	// OnBuildComplete fires after the graph was built and validated.
	OnBuildComplete(ctx context.Context, nodes, edges int, duration time.Duration, err error)

	// OnDepthComplete fires after the breadth-first depth pass.
	OnDepthComplete(ctx context.Context, maxDepth int, duration time.Duration)

	// OnAggregateComplete fires after the statistics were aggregated.
	OnAggregateComplete(ctx context.Context, duration time.Duration)
}

// =============================================================================
// No-op Implementations
// =============================================================================

// NoopPipelineHooks is a no-op implementation of PipelineHooks.
type NoopPipelineHooks struct{}

func (NoopPipelineHooks) OnLoadComplete(context.Context, string, int, time.Duration, error) {}
func (NoopPipelineHooks) OnBuildComplete(context.Context, int, int, time.Duration, error)   {}
func (NoopPipelineHooks) OnDepthComplete(context.Context, int, time.Duration)               {}
func (NoopPipelineHooks) OnAggregateComplete(context.Context, time.Duration)                {}

// =============================================================================
// Global Hook Registry
// =============================================================================

var (
	pipelineHooks PipelineHooks = NoopPipelineHooks{}
	hooksMu       sync.RWMutex
)

// SetPipelineHooks registers custom pipeline hooks.
// This should be called once at application startup before any pipeline operations.
func SetPipelineHooks(h PipelineHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		pipelineHooks = h
	}
}

// Pipeline returns the registered pipeline hooks.
func Pipeline() PipelineHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return pipelineHooks
}

// Reset restores all hooks to their no-op defaults.
// This is primarily useful for testing.
func Reset() {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	pipelineHooks = NoopPipelineHooks{}
}
