package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/aretw0/hxnotify"
	"github.com/aretw0/hxnotify/internal/config"
	"github.com/aretw0/hxnotify/internal/logging"
	"github.com/aretw0/hxnotify/internal/presentation/tui"
	httpAdapter "github.com/aretw0/hxnotify/pkg/adapters/http"
	redisAdapter "github.com/aretw0/hxnotify/pkg/adapters/redis"
	"github.com/aretw0/hxnotify/pkg/adapters/template"
	"github.com/aretw0/hxnotify/pkg/observability"
	"github.com/aretw0/hxnotify/pkg/ports"
	"github.com/aretw0/hxnotify/pkg/theme"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/spf13/cobra"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the htmx notification server",
	Long: `Starts the dispatcher behind an HTTP server. GET /status/{code} answers htmx
requests with any status so the feedback rules can be exercised from a page; /decide,
/events, /metrics and /healthz are exposed alongside.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		path, _ := cmd.Flags().GetString("config")
		cfg, err := config.Load(path)
		if err != nil {
			return err
		}
		if cmd.Flags().Changed("port") {
			cfg.Port, _ = cmd.Flags().GetString("port")
		}

		level, _ := logging.ParseLevel(cfg.LogLevel)
		logger := logging.New(level)

		if tui.IsTerminal(os.Stderr) {
			tui.PrintBanner(os.Stderr, hxnotify.Version)
		}

		handler, cleanup, err := buildServer(cmd.Context(), cfg, logger)
		if err != nil {
			return err
		}
		defer cleanup()

		return listen(cfg.Port, handler, logger)
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().StringP("port", "p", "8080", "Port to listen on")
}

// buildServer wires the notifier, its sinks and the HTTP surface from cfg.
// The returned cleanup releases the Redis connection, if any.
func buildServer(ctx context.Context, cfg config.Config, logger *slog.Logger) (http.Handler, func(), error) {
	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	metrics, err := observability.NewMetrics(registry)
	if err != nil {
		return nil, nil, fmt.Errorf("register metrics: %w", err)
	}

	palette := theme.Default()
	if cfg.ThemeFile != "" {
		if palette, err = theme.Load(cfg.ThemeFile); err != nil {
			return nil, nil, err
		}
	}

	effects := httpAdapter.ContextEffects{}
	streams := httpAdapter.NewStreamManager(logger)
	sinks := []ports.EventSink{effects, streams}
	cleanup := func() {}

	if cfg.Redis.Addr != "" {
		pub := redisAdapter.New(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB,
			redisAdapter.WithChannel(cfg.Redis.Channel),
			redisAdapter.WithLogger(logger),
		)
		if err := pub.Ping(ctx); err != nil {
			pub.Close()
			return nil, nil, fmt.Errorf("connect redis %s: %w", cfg.Redis.Addr, err)
		}
		sinks = append(sinks, pub)
		cleanup = func() {
			if err := pub.Close(); err != nil {
				logger.Warn("redis close failed", "error", err)
			}
		}
		logger.Info("publishing events to redis", "addr", cfg.Redis.Addr, "channel", pub.Channel())
	}

	opts := []hxnotify.Option{
		hxnotify.WithLogger(logger),
		hxnotify.WithSink(sinks...),
		hxnotify.WithAlerter(effects),
		hxnotify.WithModalOptions(cfg.ModalOptions()),
		hxnotify.WithFallbackMessage(cfg.Messages.Fallback),
		hxnotify.WithAnimationDuration(cfg.Animation.Duration()),
		hxnotify.WithLifecycleHooks(metrics.Hooks()),
		hxnotify.WithLifecycleHooks(observability.LogHooks(logger)),
	}
	if cfg.ErrorModal() {
		builder, err := template.NewModalBuilder(template.WithTheme(palette))
		if err != nil {
			cleanup()
			return nil, nil, err
		}
		opts = append(opts, hxnotify.WithErrorModal(builder, effects))
	}

	notifier, err := hxnotify.New(opts...)
	if err != nil {
		cleanup()
		return nil, nil, fmt.Errorf("error initializing hxnotify: %w", err)
	}

	handler := httpAdapter.NewHandler(notifier,
		httpAdapter.WithLogger(logger),
		httpAdapter.WithMetrics(registry),
		httpAdapter.WithStreams(streams),
		httpAdapter.WithMiddlewareOptions(httpAdapter.WithStatusRewrite(cfg.RewriteStatus())),
	)
	return handler, cleanup, nil
}

func listen(port string, handler http.Handler, logger *slog.Logger) error {
	srv := &http.Server{
		Addr:              ":" + port,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	// Channel to listen for errors coming from the listener.
	serverErrors := make(chan error, 1)

	go func() {
		logger.Info("starting hxnotify server", "addr", srv.Addr)
		serverErrors <- srv.ListenAndServe()
	}()

	// Channel to listen for interrupt or terminate signals.
	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(shutdown)

	select {
	case err := <-serverErrors:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("server error: %w", err)

	case sig := <-shutdown:
		logger.Info("start shutdown", "signal", sig.String())

		// Give outstanding requests a deadline for completion.
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		if err := srv.Shutdown(ctx); err != nil {
			logger.Error("graceful shutdown did not complete", "timeout", 5*time.Second, "error", err)
			if err := srv.Close(); err != nil {
				return fmt.Errorf("error killing server: %w", err)
			}
		}
		logger.Info("hxnotify server stopped gracefully")
		return nil
	}
}
