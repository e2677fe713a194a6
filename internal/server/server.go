// Package server exposes the statistics pipeline over HTTP.
//
// Routes:
//
//	POST /v1/stats   body = database text, optional ?precision= and ?bucket_width=
//	GET  /healthz    liveness probe
//	GET  /metrics    Prometheus exposition
package server

import (
	stderrors "errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/matzehuels/dagstats/internal/config"
	"github.com/matzehuels/dagstats/internal/metrics"
	"github.com/matzehuels/dagstats/pkg/errors"
	"github.com/matzehuels/dagstats/pkg/pipeline"
	"github.com/matzehuels/dagstats/pkg/stats"
)

// Options configures the handler returned by [New].
type Options struct {
	// Runner executes the pipeline. Required.
	Runner *pipeline.Runner

	// Logger receives one line per request. Defaults to log.Default().
	Logger *log.Logger

	// Defaults supplies precision and bucket width when the request omits them.
	Defaults pipeline.Options

	// MaxBodyBytes bounds the request body. Defaults to config.DefaultMaxBodyBytes.
	MaxBodyBytes int64

	// Registry receives the HTTP collectors and backs GET /metrics.
	// Defaults to a fresh registry.
	Registry *prometheus.Registry
}

type handler struct {
	runner   *pipeline.Runner
	defaults pipeline.Options
	maxBody  int64
}

// New creates the HTTP handler and registers all routes.
func New(opts Options) http.Handler {
	if opts.Logger == nil {
		opts.Logger = log.Default()
	}
	if opts.MaxBodyBytes <= 0 {
		opts.MaxBodyBytes = config.DefaultMaxBodyBytes
	}
	if opts.Registry == nil {
		opts.Registry = prometheus.NewRegistry()
	}
	h := &handler{runner: opts.Runner, defaults: opts.Defaults, maxBody: opts.MaxBodyBytes}

	r := chi.NewRouter()
	r.Use(requestID)
	r.Use(middleware.Recoverer)
	r.Use(instrument(opts.Logger, metrics.NewHTTP(opts.Registry)))

	r.Post("/v1/stats", h.computeStats)
	r.Get("/healthz", h.healthz)
	r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(opts.Registry, promhttp.HandlerOpts{}))

	return r
}

// POST /v1/stats: runs the pipeline on the request body.
func (h *handler) computeStats(w http.ResponseWriter, r *http.Request) {
	opts := h.defaults
	opts.Format = pipeline.FormatJSON
	if v := r.URL.Query().Get("precision"); v != "" {
		p, err := strconv.Atoi(v)
		if err != nil {
			writeError(w, errors.New(errors.ErrCodeInvalidInput, "precision %q is not an integer", v))
			return
		}
		opts.Precision = p
	}
	if v := r.URL.Query().Get("bucket_width"); v != "" {
		bw, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			writeError(w, errors.New(errors.ErrCodeInvalidInput, "bucket_width %q is not an integer", v))
			return
		}
		opts.BucketWidth = bw
	}
	if err := opts.Validate(); err != nil {
		writeError(w, err)
		return
	}

	body := http.MaxBytesReader(w, r.Body, h.maxBody)
	source := fmt.Sprintf("request %s", RequestIDFromContext(r.Context()))
	res, err := h.runner.RunReader(r.Context(), body, source, opts)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, stats.NewReport(res.Stats, opts.Precision))
}

// GET /healthz: always 200.
func (h *handler) healthz(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// statusFor maps an error to its HTTP status.
func statusFor(err error) int {
	var tooLarge *http.MaxBytesError
	if stderrors.As(err, &tooLarge) {
		return http.StatusRequestEntityTooLarge
	}
	switch errors.GetCode(err) {
	case errors.ErrCodeInvalidInput, errors.ErrCodeIO:
		return http.StatusBadRequest
	case errors.ErrCodeParse, errors.ErrCodeValidation:
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}
