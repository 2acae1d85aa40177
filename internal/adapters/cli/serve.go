package cli

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/andrescamacho/homestead-go/internal/adapters/api"
	"github.com/andrescamacho/homestead-go/internal/adapters/metrics"
	"github.com/andrescamacho/homestead-go/internal/adapters/observer"
	"github.com/andrescamacho/homestead-go/internal/application/mediator"
	"github.com/andrescamacho/homestead-go/internal/domain/event"
	"github.com/andrescamacho/homestead-go/internal/infrastructure/config"
	"github.com/andrescamacho/homestead-go/internal/infrastructure/pidfile"
)

// NewServeCommand creates the serve command
func NewServeCommand() *cobra.Command {
	var address string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API server",
		Long: `Run the HTTP API server.

The server owns the database: only one may run per PID file. Operations are
posted to /v1/ops/{name} with the acting address in the X-Actor header,
committed events stream over a websocket at /v1/events/stream, and Prometheus
metrics are served when metrics.enabled is set.

Stop with Ctrl+C or SIGTERM; in-flight requests finish first.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.LoadConfig(configPath)
			if err != nil {
				return fmt.Errorf("failed to load config: %w", err)
			}
			if address != "" {
				cfg.Server.Address = address
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return runServer(ctx, cfg, cmd)
		},
	}

	cmd.Flags().StringVar(&address, "address", "", "Listen address (default: server.address)")
	return cmd
}

func runServer(ctx context.Context, cfg *config.Config, cmd *cobra.Command) error {
	p := newPrinter(cmd.OutOrStdout())

	pf := pidfile.New(cfg.Server.PIDFile)
	if err := pf.Acquire(); err != nil {
		return err
	}
	defer func() {
		if err := pf.Release(); err != nil {
			p.line("%s %v", styleWarn.Sprint("warning:"), err)
		}
	}()

	var (
		middlewares  []mediator.Middleware
		apiCollector *metrics.APIMetricsCollector
		opts         = api.Options{
			RequestsPerSecond: cfg.Server.RateLimit.Requests,
			Burst:             cfg.Server.RateLimit.Burst,
			MetricsPath:       cfg.Metrics.Path,
		}
	)
	if cfg.Metrics.Enabled {
		metrics.InitRegistry()

		gameCollector := metrics.NewGameMetricsCollector()
		if err := gameCollector.Register(); err != nil {
			return fmt.Errorf("failed to register game metrics: %w", err)
		}
		metrics.SetGlobalGameCollector(gameCollector)
		defer metrics.SetGlobalGameCollector(nil)

		commandCollector := metrics.NewCommandMetricsCollector()
		if err := commandCollector.Register(); err != nil {
			return fmt.Errorf("failed to register command metrics: %w", err)
		}
		middlewares = append(middlewares, metrics.PrometheusMiddleware(commandCollector))

		apiCollector = metrics.NewAPIMetricsCollector()
		if err := apiCollector.Register(); err != nil {
			return fmt.Errorf("failed to register api metrics: %w", err)
		}
		opts.Recorder = apiCollector
		opts.Metrics = metrics.GetRegistry()
	}

	hub := observer.NewHub(func(n int) {
		if apiCollector != nil {
			apiCollector.SetObservers(n)
		}
	})
	opts.Events = hub.Handler()

	stack, err := buildStack(cfg, []event.Publisher{hub}, middlewares...)
	if err != nil {
		return err
	}
	defer stack.Close()
	opts.Logger = stack.logger

	srv := &http.Server{
		Addr:         cfg.Server.Address,
		Handler:      api.NewServer(stack.mediator, opts).Handler(),
		ReadTimeout:  cfg.Server.Timeouts.Read,
		WriteTimeout: cfg.Server.Timeouts.Write,
	}

	serveErr := make(chan error, 1)
	go func() {
		serveErr <- srv.ListenAndServe()
	}()

	stack.logger.Log("INFO", "homestead server listening", map[string]interface{}{
		"address":  cfg.Server.Address,
		"database": cfg.Database.Type,
		"metrics":  cfg.Metrics.Enabled,
		"pid_file": pf.Path(),
	})
	p.ok("Listening on %s", cfg.Server.Address)

	select {
	case err := <-serveErr:
		if !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server failed: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	p.line("\nShutdown signal received, stopping server...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.Timeouts.Shutdown)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("graceful shutdown failed: %w", err)
	}
	stack.logger.Log("INFO", "homestead server stopped", nil)
	return nil
}
