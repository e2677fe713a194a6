package cli

import (
	"context"
	stderrors "errors"
	"net"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/spf13/cobra"

	"github.com/matzehuels/dagstats/internal/metrics"
	"github.com/matzehuels/dagstats/internal/server"
	"github.com/matzehuels/dagstats/pkg/observability"
)

const shutdownTimeout = 10 * time.Second

type serveFlags struct {
	addr string
}

func (c *CLI) serveCommand() *cobra.Command {
	var flags serveFlags

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve statistics over HTTP",
		Long: `Serve starts an HTTP server that computes statistics for databases posted to
POST /v1/stats. GET /healthz is a liveness probe and GET /metrics exposes
Prometheus metrics for requests and pipeline stages.`,
		Example: `  dagstats serve --addr :9000
  curl --data-binary @db.txt localhost:9000/v1/stats?precision=2`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			addr := c.Config.Server.Addr
			if cmd.Flags().Changed("addr") {
				addr = flags.addr
			}
			ln, err := net.Listen("tcp", addr)
			if err != nil {
				return err
			}
			return c.serve(cmd.Context(), ln)
		},
	}

	cmd.Flags().StringVar(&flags.addr, "addr", "", "listen address (default from config, :8080)")
	return cmd
}

// serve handles requests on ln until ctx is canceled, then drains in-flight
// requests.
func (c *CLI) serve(ctx context.Context, ln net.Listener) error {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	observability.SetPipelineHooks(metrics.NewPipelineHooks(reg))
	defer observability.Reset()

	srv := &http.Server{
		Handler: server.New(server.Options{
			Runner:       c.newRunner(),
			Logger:       c.Logger,
			Defaults:     c.Config.PipelineOptions(),
			MaxBodyBytes: c.Config.Server.MaxBodyBytes,
			Registry:     reg,
		}),
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() { errCh <- srv.Serve(ln) }()
	c.Logger.Info("listening", "addr", ln.Addr().String())

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	c.Logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errCh; !stderrors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
