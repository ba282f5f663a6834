package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"trippilot/skyview/internal/api"
	"trippilot/skyview/internal/common"
	"trippilot/skyview/internal/config"
	"trippilot/skyview/internal/db"
	"trippilot/skyview/internal/db/repositories"
	"trippilot/skyview/internal/jobs"
	"trippilot/skyview/internal/logging"
	"trippilot/skyview/internal/metrics"
	"trippilot/skyview/internal/providers"
	"trippilot/skyview/internal/routes"
	"trippilot/skyview/internal/workers"
)

func main() {
	log.SetOutput(os.Stdout)
	log.SetFlags(log.LstdFlags | log.Lshortfile)

	cfg := config.Load()

	// Initialize structured logging
	if err := logging.Init(cfg.AppEnv); err != nil {
		log.Fatalf("❌ Failed to initialize logger: %v", err)
	}
	defer logging.Close()

	logging.Info("Skyview starting up",
		"environment", cfg.AppEnv,
		"backend", cfg.BackendURL,
		"timestamp", time.Now().Format(time.RFC3339),
	)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	metricsReg := metrics.NewMetricsRegistry(prometheus.DefaultRegisterer)
	probes := map[string]api.Pinger{}

	// Shared cache: Redis when configured, otherwise in-process
	var cache common.CacheInterface
	if cfg.RedisHost != "" {
		client, err := common.NewRedisClient(cfg.RedisHost, cfg.RedisPort, cfg.RedisPassword)
		if err != nil {
			logging.Warn("Redis not reachable at startup, continuing", "error", err.Error())
		}
		redisCache := common.NewRedisCacheService(client, cfg.WeatherTTL)
		probes["redis"] = redisCache
		cache = redisCache
	} else {
		logging.Info("REDIS_HOST not set, using in-memory cache")
		cache = common.NewCacheService(cfg.WeatherTTL, 10*time.Minute)
	}
	defer cache.Close()

	// Optional history store
	var (
		historyRepo   *repositories.HistoryRepo
		historyWorker *workers.HistoryWorker
	)
	if cfg.HistoryEnabled() {
		dsn := cfg.PostgresDSN()
		sqlDB, err := db.InitPostgres(dsn)
		if err != nil {
			logging.Fatal("Failed to connect to Postgres (sqlx)", "error", err.Error())
		}
		defer sqlDB.Close()

		orm, err := db.InitPostgresORM(dsn)
		if err != nil {
			logging.Fatal("Failed to connect to Postgres (GORM)", "error", err.Error())
		}

		historyRepo = repositories.NewHistoryRepo(orm, sqlDB)
		historyWorker = workers.NewHistoryWorker(historyRepo, 256, metricsReg)
		historyWorker.Start(2)
		probes["postgres"] = historyRepo
	} else {
		logging.Info("PG_HOST/PG_DB not set, search and chat history disabled")
	}

	deps := api.InitDependencies(api.Infra{
		Config:        cfg,
		Cache:         cache,
		Backend:       providers.NewBackendProvider(cfg.BackendURL, cfg.RequestTimeout),
		Metrics:       metricsReg,
		History:       historyRepo,
		HistoryWorker: historyWorker,
		Probes:        probes,
	})

	jobs.InitializeJobs(ctx, deps.Services.Views, deps.Services.Weather, jobs.Intervals{
		ViewReap:    cfg.ViewReapInterval,
		WeatherSync: cfg.WeatherSyncInterval,
	})

	upSince := time.Now()
	router := routes.RegisterRoutes(deps, routes.RouterConfig{
		AllowedOrigins:     cfg.AllowedOrigins,
		RateLimitPerSecond: cfg.RateLimitPerSecond,
		RateLimitBurst:     cfg.RateLimitBurst,
	}, upSince)

	server := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logging.Info("Server starting", "addr", cfg.HTTPAddr, "environment", cfg.AppEnv)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logging.Fatal("Server failed", "error", err.Error())
		}
	}()

	<-ctx.Done()
	logging.Info("Shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logging.Error("HTTP shutdown failed", "error", err.Error())
	}

	deps.Services.Views.Shutdown()
	if historyWorker != nil {
		historyWorker.Stop()
	}
}
