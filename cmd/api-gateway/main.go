package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jmoiron/sqlx"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	_ "github.com/noah-isme/school-erp-api/api/swagger"
	"github.com/noah-isme/school-erp-api/internal/handler"
	"github.com/noah-isme/school-erp-api/internal/repository"
	"github.com/noah-isme/school-erp-api/internal/server"
	"github.com/noah-isme/school-erp-api/internal/service"
	"github.com/noah-isme/school-erp-api/pkg/ai"
	"github.com/noah-isme/school-erp-api/pkg/cache"
	"github.com/noah-isme/school-erp-api/pkg/config"
	"github.com/noah-isme/school-erp-api/pkg/database"
	"github.com/noah-isme/school-erp-api/pkg/logger"
)

// @title School ERP API
// @version 1.0.0
// @description Admin, teacher and student portals of the school ERP.
// @BasePath /
// @schemes http

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logr, err := logger.New(cfg)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logr.Sync() //nolint:errcheck

	if cfg.Env == config.EnvProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	readiness := map[string]handler.ReadinessCheck{}

	store, db, err := openStore(ctx, cfg, logr)
	if err != nil {
		logr.Fatal("failed to open record store", zap.Error(err))
	}
	if db != nil {
		defer db.Close() //nolint:errcheck
		readiness["database"] = func(ctx context.Context) error { return db.PingContext(ctx) }
	}

	var cacheRepo service.CacheRepository
	if cfg.Redis.Enabled {
		client, err := cache.NewRedis(ctx, cfg.Redis)
		if err != nil {
			logr.Warn("redis unavailable, running without cache", zap.Error(err))
		} else {
			defer client.Close() //nolint:errcheck
			cacheRepo = repository.NewCacheRepository(client, "school-erp", logr.Named("redis"))
			readiness["redis"] = redisCheck(client)
		}
	}

	var generator ai.Generator = ai.Disabled{}
	if cfg.AI.APIKey != "" {
		client, err := ai.NewGeminiClient(ctx, cfg.AI.APIKey, cfg.AI.Model)
		if err != nil {
			logr.Warn("generative model unavailable, advisory flows disabled", zap.Error(err))
		} else {
			generator = client
			logr.Info("generative model configured", zap.String("model", client.Model()))
		}
	}

	app, err := server.NewApp(server.Deps{
		Config:    cfg,
		Store:     store,
		Cache:     cacheRepo,
		Generator: generator,
		Logger:    logr,
		Readiness: readiness,
	})
	if err != nil {
		logr.Fatal("failed to assemble app", zap.Error(err))
	}
	app.Start(ctx)

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Port),
		Handler:           app.Router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	serverErr := make(chan error, 1)
	go func() {
		logr.Sugar().Infow("server starting", "addr", srv.Addr, "env", cfg.Env, "store", cfg.Store.Driver)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	select {
	case <-ctx.Done():
		logr.Info("shutting down server")
	case err := <-serverErr:
		logr.Error("server failed", zap.Error(err))
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logr.Error("graceful shutdown failed", zap.Error(err))
	}
	app.Stop()
}

func openStore(ctx context.Context, cfg *config.Config, logr *zap.Logger) (server.Store, *sqlx.DB, error) {
	if cfg.Store.Driver != config.StorePostgres {
		logr.Info("using in-memory record store")
		return repository.NewMemoryStore(), nil, nil
	}

	db, err := database.NewPostgres(ctx, cfg.Database)
	if err != nil {
		return nil, nil, err
	}
	if cfg.Store.RunMigrations {
		if err := database.Migrate(db, logr.Named("migrate")); err != nil {
			_ = db.Close()
			return nil, nil, err
		}
	}
	return repository.NewPostgresStore(db, logr.Named("postgres")), db, nil
}

func redisCheck(client *redis.Client) handler.ReadinessCheck {
	return func(ctx context.Context) error {
		return client.Ping(ctx).Err()
	}
}
