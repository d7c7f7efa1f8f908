package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/freightline/quoting-system/internal/api"
	"github.com/freightline/quoting-system/internal/infrastructure/config"
	mongodb "github.com/freightline/quoting-system/internal/infrastructure/db/mongo"
	redisdb "github.com/freightline/quoting-system/internal/infrastructure/db/redis"
	"github.com/freightline/quoting-system/internal/infrastructure/queue"
	"github.com/freightline/quoting-system/pkg/logger"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load(ctx)
	if err != nil {
		os.Stderr.WriteString(err.Error() + "\n")
		os.Exit(1)
	}

	log := logger.Init(logger.Options{
		Level:  cfg.LogLevel,
		Pretty: cfg.Env == "development",
	})

	if cfg.JWTSecret == "" {
		log.Fatal().Msg("JWT_SECRET is required")
	}

	// --- MongoDB ---
	client, db, err := mongodb.Connect(ctx, mongodb.Config{
		URI:      cfg.Mongo.URI,
		Database: cfg.Mongo.Database,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("mongodb connection failed")
	}
	defer func() {
		disconnectCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = client.Disconnect(disconnectCtx)
	}()

	rateRepo := mongodb.NewRateRepository(db)
	quoteRepo := mongodb.NewQuoteRepository(db)
	if err := rateRepo.EnsureIndexes(ctx); err != nil {
		log.Fatal().Err(err).Msg("rate index creation failed")
	}
	if err := quoteRepo.EnsureIndexes(ctx); err != nil {
		log.Fatal().Err(err).Msg("quote index creation failed")
	}

	// --- Redis ---
	rdb, err := redisdb.Connect(ctx, redisdb.Config{
		Addr: cfg.Redis.Addr,
		DB:   cfg.Redis.DB,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("redis connection failed")
	}
	defer rdb.Close()

	// --- Asynchronous persistence ---
	dispatcher := queue.NewDispatcher(cfg.PersistWorkers, quoteRepo, log)
	dispatcher.Start(ctx)

	// --- HTTP ---
	e := api.NewRouter(db, rdb, dispatcher, api.RouterConfig{
		JWTSecret:    cfg.JWTSecret,
		RateCacheTTL: time.Duration(cfg.Redis.RateCacheTTLSeconds) * time.Second,
	}, log)

	go func() {
		log.Info().Str("port", cfg.Port).Str("env", cfg.Env).Msg("api listening")
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server error")
		}
	}()

	<-ctx.Done()
	log.Info().Msg("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("shutdown failed")
	}
}
