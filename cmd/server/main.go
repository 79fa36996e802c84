package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"shotboard/internal/dashboard"
	"shotboard/internal/middleware"
	"shotboard/internal/reference"
	"shotboard/internal/render"
	"shotboard/internal/server"
	"shotboard/internal/shared/cache"
	"shotboard/internal/shared/config"
	"shotboard/internal/shared/database"
	"shotboard/internal/shared/logger"
	"shotboard/internal/shared/metrics"
	"shotboard/internal/shared/redis"
	"shotboard/internal/shots"
	"shotboard/internal/views"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

func main() {
	if err := config.Init(); err != nil {
		slog.Error("Failed to load configuration", "error", err)
		os.Exit(1)
	}
	cfg := config.GlobalConfig

	logger.Init()

	appLogger := slog.With("component", "main")
	appLogger.Info("Starting shotboard",
		"environment", cfg.Server.Environment,
		"port", cfg.Server.Port,
		"db_driver", cfg.Database.Driver,
	)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var (
		reg      *prometheus.Registry
		appStats *metrics.Metrics
	)
	if cfg.Metrics.Enabled {
		reg = prometheus.NewRegistry()
		reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
		appStats = metrics.New(reg)
	}

	db, err := database.Connect(ctx, cfg)
	if err != nil {
		appLogger.Error("Failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	store := database.NewStore(db, db.Dialect, appStats, slog.With("component", "store"))
	if err := store.VerifySchema(ctx); err != nil {
		appLogger.Error("Shot warehouse schema check failed", "error", err)
		os.Exit(1)
	}

	var loader reference.Loader = reference.NewRepository(store, slog.With("component", "reference_repository"))
	if cfg.Cache.Enabled {
		refCache, closeCache := buildCache(ctx, cfg, appLogger)
		defer closeCache()
		loader = reference.NewCachedLoader(loader, refCache, cfg.Cache.TTL, cfg.Cache.Prefix, slog.With("component", "reference_cache"))
	}

	refService := reference.NewService(loader, cfg.Dashboard.FallbackColor, slog.With("component", "reference"))
	catalog := shots.NewCatalog(store, slog.With("component", "catalog"))
	mapper := views.NewMapper(cfg.Dashboard.FallbackColor, cfg.Dashboard.CourtImageURL)
	dates := shots.DateRange{From: cfg.Dashboard.DateFrom, To: cfg.Dashboard.DateTo}

	dashService := dashboard.NewService(refService, catalog, mapper, dates, appStats, slog.With("component", "dashboard"))
	sessions := dashboard.NewStore(dashService, cfg.Session.IdleTimeout, cfg.Session.MaxSessions, appStats, slog.Default())
	go sessions.Run(ctx, time.Minute)

	var gatherer prometheus.Gatherer
	if reg != nil {
		gatherer = reg
	}
	routes := server.NewRoutes(db, sessions, dashService, gatherer, cfg.Metrics.Path, render.CourtFor(cfg.Dashboard.CourtUnits))
	mux := routes.Setup()

	rateLimiter := middleware.NewRateLimiter(cfg.RateLimit)
	go rateLimiter.Run(ctx, time.Minute)
	corsMiddleware := middleware.NewCORS(cfg.Frontend)

	handler := appStats.Middleware(rateLimiter.Middleware(corsMiddleware.Middleware(mux)))

	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      handler,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	go func() {
		appLogger.Info("Server listening", "addr", srv.Addr, "url", cfg.Server.URL)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			appLogger.Error("Server failed", "error", err)
			stop()
		}
	}()

	<-ctx.Done()
	appLogger.Info("Shutting down server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		appLogger.Error("Graceful shutdown failed", "error", err)
	}
	appLogger.Info("Server stopped")
}

// buildCache prefers Redis and falls back to the in-process map when Redis
// is disabled or unreachable.
func buildCache(ctx context.Context, cfg *config.Config, appLogger *slog.Logger) (cache.Cache, func()) {
	client, err := redis.Connect(ctx, cfg.Redis)
	if err != nil {
		appLogger.Warn("Redis unavailable, using in-memory reference cache", "error", err)
	}
	if client == nil {
		return cache.NewMemory(), func() {}
	}
	return cache.NewRedis(client), func() { _ = client.Close() }
}
