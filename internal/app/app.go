package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"strconv"

	"golang.org/x/sync/errgroup"

	"github.com/freeup86/trainingpulse-sub004/internal/adapter/postgres"
	"github.com/freeup86/trainingpulse-sub004/internal/adapter/postgres/audit"
	"github.com/freeup86/trainingpulse-sub004/internal/adapter/postgres/notification"
	"github.com/freeup86/trainingpulse-sub004/internal/auth"
	"github.com/freeup86/trainingpulse-sub004/internal/config"
	"github.com/freeup86/trainingpulse-sub004/internal/metrics"
	"github.com/freeup86/trainingpulse-sub004/internal/notify"
	"github.com/freeup86/trainingpulse-sub004/internal/service/bulk"
	"github.com/freeup86/trainingpulse-sub004/internal/service/feed"
	"github.com/freeup86/trainingpulse-sub004/internal/transport/middleware"
	"github.com/freeup86/trainingpulse-sub004/internal/transport/rest"
)

// Run is the application entry point. It serves the HTTP API and runs the
// notification dispatcher and the preview sweeper until ctx is cancelled,
// then shuts everything down in order: HTTP first, so in-flight executions
// can still enqueue notifications, then the dispatcher drains its queue.
func Run(ctx context.Context, cfg *config.Config) error {
	logger := NewLogger(cfg.Log)

	logger.Info("starting application",
		slog.String("version", BuildVersion()),
		slog.String("log_level", cfg.Log.Level),
		slog.String("preview_backend", cfg.Bulk.PreviewBackend),
	)

	pool, err := postgres.NewPool(ctx, cfg.Database)
	if err != nil {
		return err
	}
	defer pool.Close()

	previews, err := OpenPreviewStore(ctx, cfg, pool)
	if err != nil {
		return err
	}
	defer func() {
		if err := previews.Close(); err != nil {
			logger.Error("close preview store", slog.String("error", err.Error()))
		}
	}()

	m := metrics.New()

	notifications := notification.New(pool)
	dispatcher := notify.NewDispatcher(logger, notifications, notify.Config{
		Workers:   cfg.Notify.Workers,
		QueueSize: cfg.Notify.QueueSize,
	}, notify.WithDropRecorder(m))

	svc := NewBulkService(logger, cfg, pool, previews.Store,
		bulk.WithNotifier(dispatcher),
		bulk.WithMetrics(m),
	)

	jwtMgr := auth.NewJWTManager(cfg.Auth.JWTSecret, cfg.Auth.JWTIssuer, cfg.Auth.AccessTokenTTL)

	limiter := middleware.NewRateLimiter(cfg.RateLimit.CleanupInterval)
	defer limiter.Stop()

	healthOpts := []rest.HealthOption{}
	if previews.Ping != nil {
		healthOpts = append(healthOpts, rest.WithComponent("preview_store", rest.PingFunc(previews.Ping)))
	}

	deps := rest.RouterDeps{
		Log:       logger,
		Health:    rest.NewHealthHandler(pool, BuildVersion(), healthOpts...),
		Bulk:      rest.NewBulkHandler(svc, logger),
		Courses:   rest.NewCourseHandler(svc, logger),
		Feed:      rest.NewFeedHandler(feed.NewService(logger, notifications, audit.New(pool)), logger),
		Auth:      middleware.Auth(jwtMgr),
		BulkRoles: cfg.Auth.AllowedBulkRoles(),
		CORS:      cfg.CORS,
	}
	if cfg.RateLimit.ExecutePerMinute > 0 {
		deps.ExecuteLimit = limiter.Limit(cfg.RateLimit.ExecutePerMinute)
	}
	if cfg.Metrics.Enabled {
		deps.Metrics = m
		deps.MetricsPath = cfg.Metrics.Path
	}

	srv := &http.Server{
		Addr:         net.JoinHostPort(cfg.Server.Host, strconv.Itoa(cfg.Server.Port)),
		Handler:      rest.NewRouter(deps),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
		ErrorLog:     slog.NewLogLogger(logger.Handler(), slog.LevelWarn),
	}

	// The dispatcher outlives the HTTP server; it is stopped explicitly
	// once the server has shut down.
	dispatchCtx, stopDispatch := context.WithCancel(context.WithoutCancel(ctx))
	defer stopDispatch()

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		return dispatcher.Run(dispatchCtx)
	})

	g.Go(func() error {
		return svc.RunSweeper(gctx, cfg.Bulk.SweepInterval)
	})

	g.Go(func() error {
		logger.Info("http server listening", slog.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		defer stopDispatch()

		logger.Info("shutting down", slog.Duration("timeout", cfg.Server.ShutdownTimeout))
		shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), cfg.Server.ShutdownTimeout)
		defer cancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("http shutdown: %w", err)
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		return err
	}

	stats := dispatcher.Stats()
	logger.Info("stopped",
		slog.Int64("notifications_sent", stats.Sent),
		slog.Int64("notifications_failed", stats.Failed),
		slog.Int64("notifications_dropped", stats.Dropped),
	)
	return nil
}
