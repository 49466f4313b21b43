package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/spf13/cobra"

	"github.com/aretw0/hollow/internal/cli"
	api "github.com/aretw0/hollow/pkg/adapters/http"
)

const shutdownTimeout = 5 * time.Second

func newServeCmd(o *options) *cobra.Command {
	var addr string
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the game over HTTP",
		Long: `Starts a JSON API over one playthrough: GET /view and /state, POST /actions, and
server-sent state diffs on /events. Metrics are served on /metrics, or on their own
address when HOLLOW_METRICS_ADDR is set.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if cmd.Flags().Changed("addr") {
				o.cfg.HTTPAddr = addr
			}
			return serve(cmd.Context(), o)
		},
	}
	cmd.Flags().StringVarP(&addr, "addr", "a", "", "Listen address (default from HOLLOW_HTTP_ADDR)")
	return cmd
}

func serve(parent context.Context, o *options) error {
	sigCtx := cli.NewSignalContext(parent)
	defer sigCtx.Cancel()
	logger := o.logger(nil)

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	app, err := cli.Build(sigCtx, o.cfg, cli.BuildOptions{Logger: logger, Debug: o.debug, Registry: reg})
	if err != nil {
		return err
	}
	defer app.Close()

	apiOpts := []api.Option{api.WithLogger(logger)}
	var servers []*http.Server
	if o.cfg.MetricsAddr != "" {
		servers = append(servers, &http.Server{Addr: o.cfg.MetricsAddr, Handler: app.Metrics.Handler(), ReadHeaderTimeout: 5 * time.Second})
	} else {
		apiOpts = append(apiOpts, api.WithMetrics(app.Metrics.Handler()))
	}
	srv := api.NewServer(app.Engine, apiOpts...)
	defer srv.Close()
	servers = append([]*http.Server{{Addr: o.cfg.HTTPAddr, Handler: srv.Handler(), ReadHeaderTimeout: 5 * time.Second}}, servers...)

	errs := make(chan error, len(servers)+1)
	for _, s := range servers {
		go func() {
			logger.Info("listening", "addr", s.Addr)
			if err := s.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				errs <- fmt.Errorf("server %s: %w", s.Addr, err)
			}
		}()
	}
	if o.cfg.TickInterval > 0 {
		go func() {
			if err := app.Engine.RunClock(sigCtx, o.cfg.TickInterval); err != nil && !errors.Is(err, context.Canceled) {
				errs <- fmt.Errorf("clock: %w", err)
			}
		}()
	}

	var runErr error
	select {
	case runErr = <-errs:
	case <-sigCtx.Done():
		logger.Info("shutting down", "signal", sigCtx.Signal())
	}

	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	for _, s := range servers {
		if err := s.Shutdown(ctx); err != nil {
			logger.Warn("graceful shutdown did not complete", "addr", s.Addr, "error", err)
			_ = s.Close()
		}
	}
	if err := app.Engine.Save(ctx); err != nil {
		logger.Warn("final save failed", "error", err)
	}
	return runErr
}
