package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os/signal"
	"syscall"

	"github.com/redis/go-redis/v9"

	"github.com/mkadlec/product-audit-api/internal/config"
	"github.com/mkadlec/product-audit-api/internal/db"
	api "github.com/mkadlec/product-audit-api/internal/http"
	rl "github.com/mkadlec/product-audit-api/internal/http/rate_limiter"
	"github.com/mkadlec/product-audit-api/internal/logger"
	"github.com/mkadlec/product-audit-api/internal/repo"
)

// @title Product Audit API
// @version 1.0
// @description REST API for products with an append-only audit trail of every mutation.
// @host localhost:8080
// @BasePath /
func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("could not load config: %v", err)
	}

	zlog, err := logger.New(cfg.LogLevel)
	if err != nil {
		log.Fatalf("could not build logger: %v", err)
	}
	defer zlog.Sync()

	database, err := db.Connect(cfg.Database.URL)
	if err != nil {
		zlog.Fatalw("could not connect to database", "error", err)
	}
	defer database.Close()

	var products repo.ProductRepository = repo.NewPostgresProductRepository(database)
	history := repo.NewPostgresHistoryRepository(database)

	if cfg.Redis.Addr != "" {
		rdb := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err := rdb.Ping(context.Background()).Err(); err != nil {
			zlog.Fatalw("could not connect to redis", "error", err)
		}
		defer rdb.Close()
		products = repo.NewCachedProductRepository(products, rdb, cfg.Redis.CacheTTL)
	}

	rl.SetLimits(cfg.RateLimit.PerSecond, cfg.RateLimit.Burst)
	go rl.StartVisitorCleanupLoop()

	router := api.NewRouter(products, history)
	handler := api.RequestID(api.RequestLogger(zlog)(api.RateLimit(router)))

	srv := &http.Server{
		Addr:         cfg.Addr(),
		Handler:      handler,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go func() {
		zlog.Infow("server running", "addr", cfg.Addr())
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			zlog.Fatalw("server failed", "error", err)
		}
	}()

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		zlog.Errorw("shutdown failed", "error", err)
	}
}
