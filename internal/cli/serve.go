package cli

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"

	"github.com/matzehuels/freehand/pkg/observability"
	"github.com/matzehuels/freehand/pkg/server"
)

type serveFlags struct {
	addr    string
	metrics bool
	timeout time.Duration
}

// serveCommand creates the serve command exposing the pipeline over HTTP.
func (c *CLI) serveCommand() *cobra.Command {
	flags := serveFlags{metrics: true, timeout: server.DefaultRequestTimeout}

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the render API over HTTP",
		Long: `Serve the render API over HTTP.

Routes:
  GET  /healthz
  POST /v1/render?format=svg|png|json   scene body as JSON, TOML or YAML
  GET  /v1/line?from=x,y&to=x,y
  GET  /v1/rect?rect=x,y,w,h
  GET  /metrics                         Prometheus metrics

The server stops gracefully on SIGINT or SIGTERM.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runServe(cmd.Context(), flags)
		},
	}

	cmd.Flags().StringVar(&flags.addr, "addr", "", "listen address (default from config, :8080)")
	cmd.Flags().BoolVar(&flags.metrics, "metrics", flags.metrics, "expose Prometheus metrics at /metrics")
	cmd.Flags().DurationVar(&flags.timeout, "timeout", flags.timeout, "per-request render timeout")

	return cmd
}

func (c *CLI) runServe(ctx context.Context, flags serveFlags) error {
	runner, err := c.newRunner(ctx)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	opts := []server.Option{
		server.WithStyle(c.baseStyle()),
		server.WithRequestTimeout(flags.timeout),
	}
	if flags.metrics {
		h, err := metricsHandler()
		if err != nil {
			return err
		}
		defer observability.Reset()
		opts = append(opts, server.WithMetrics(h))
	}

	addr := flags.addr
	if addr == "" {
		addr = c.cfg.Server.Addr
	}
	printKeyValue("Listening", addr)
	printKeyValue("Cache", c.cacheLocation())
	printKeyValue("Metrics", fmt.Sprint(flags.metrics))

	return server.New(runner, c.Logger, opts...).ListenAndServe(ctx, addr)
}

// metricsHandler registers the Prometheus hooks globally and returns the
// scrape handler for their registry.
func metricsHandler() (http.Handler, error) {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	prom, err := observability.NewPrometheus(reg)
	if err != nil {
		return nil, fmt.Errorf("register metrics: %w", err)
	}
	observability.SetAll(prom)
	return promhttp.HandlerFor(reg, promhttp.HandlerOpts{}), nil
}
