// Package metrics exports dagstats pipeline and HTTP metrics to Prometheus.
package metrics

import (
	"context"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/matzehuels/dagstats/pkg/errors"
	"github.com/matzehuels/dagstats/pkg/observability"
)

// Stage label values.
const (
	StageLoad      = "load"
	StageBuild     = "build"
	StageDepth     = "depth"
	StageAggregate = "aggregate"
)

var stageBuckets = []float64{0.1, 0.5, 1, 5, 10, 25, 50, 100, 250, 1000}

// PipelineHooks implements [observability.PipelineHooks] with Prometheus
// collectors.
type PipelineHooks struct {
	StageDuration *prometheus.HistogramVec
	StageErrors   *prometheus.CounterVec
	RecordsLoaded prometheus.Counter
	GraphNodes    prometheus.Histogram
	MaxDepth      prometheus.Histogram
	RunsCompleted prometheus.Counter
}

var _ observability.PipelineHooks = (*PipelineHooks)(nil)

// NewPipelineHooks creates the pipeline collectors and registers them with reg.
func NewPipelineHooks(reg prometheus.Registerer) *PipelineHooks {
	f := promauto.With(reg)
	return &PipelineHooks{
		StageDuration: f.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "dagstats_stage_duration_ms",
			Help:    "Pipeline stage latency in milliseconds, labelled by stage.",
			Buckets: stageBuckets,
		}, []string{"stage"}),
		StageErrors: f.NewCounterVec(prometheus.CounterOpts{
			Name: "dagstats_stage_errors_total",
			Help: "Total number of failed pipeline stages, labelled by stage and error code.",
		}, []string{"stage", "code"}),
		RecordsLoaded: f.NewCounter(prometheus.CounterOpts{
			Name: "dagstats_records_loaded_total",
			Help: "Total number of transaction records parsed.",
		}),
		GraphNodes: f.NewHistogram(prometheus.HistogramOpts{
			Name:    "dagstats_graph_nodes",
			Help:    "Node count of built graphs, root included.",
			Buckets: prometheus.ExponentialBuckets(1, 4, 8),
		}),
		MaxDepth: f.NewHistogram(prometheus.HistogramOpts{
			Name:    "dagstats_graph_max_depth",
			Help:    "Greatest BFS depth of analyzed graphs.",
			Buckets: prometheus.ExponentialBuckets(1, 2, 14),
		}),
		RunsCompleted: f.NewCounter(prometheus.CounterOpts{
			Name: "dagstats_runs_completed_total",
			Help: "Total number of pipeline runs that produced statistics.",
		}),
	}
}

func (h *PipelineHooks) observe(stage string, d time.Duration) {
	h.StageDuration.WithLabelValues(stage).Observe(float64(d) / float64(time.Millisecond))
}

func (h *PipelineHooks) fail(stage string, err error) {
	code := string(errors.GetCode(err))
	if code == "" {
		code = "UNKNOWN"
	}
	h.StageErrors.WithLabelValues(stage, code).Inc()
}

func (h *PipelineHooks) OnLoadComplete(_ context.Context, _ string, records int, d time.Duration, err error) {
	h.observe(StageLoad, d)
	if err != nil {
		h.fail(StageLoad, err)
		return
	}
	h.RecordsLoaded.Add(float64(records))
}

func (h *PipelineHooks) OnBuildComplete(_ context.Context, nodes, _ int, d time.Duration, err error) {
	h.observe(StageBuild, d)
	if err != nil {
		h.fail(StageBuild, err)
		return
	}
	h.GraphNodes.Observe(float64(nodes))
}

func (h *PipelineHooks) OnDepthComplete(_ context.Context, maxDepth int, d time.Duration) {
	h.observe(StageDepth, d)
	h.MaxDepth.Observe(float64(maxDepth))
}

func (h *PipelineHooks) OnAggregateComplete(_ context.Context, d time.Duration) {
	h.observe(StageAggregate, d)
	h.RunsCompleted.Inc()
}

// HTTP holds the request collectors used by the stats server.
type HTTP struct {
	Requests *prometheus.CounterVec
	Duration *prometheus.HistogramVec
}

// NewHTTP creates the HTTP collectors and registers them with reg.
func NewHTTP(reg prometheus.Registerer) *HTTP {
	f := promauto.With(reg)
	return &HTTP{
		Requests: f.NewCounterVec(prometheus.CounterOpts{
			Name: "dagstats_http_requests_total",
			Help: "Total number of HTTP requests, labelled by route and status.",
		}, []string{"route", "status"}),
		Duration: f.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "dagstats_http_request_duration_ms",
			Help:    "HTTP request latency in milliseconds, labelled by route.",
			Buckets: []float64{1, 5, 10, 25, 50, 100, 250, 500, 1000, 2500},
		}, []string{"route"}),
	}
}
