package main

import (
	"context"
	"crypto/tls"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"

	"github.com/feedbacklens/feedback-backend/config"
	"github.com/feedbacklens/feedback-backend/handlers"
	"github.com/feedbacklens/feedback-backend/internal/store/postgres"
	"github.com/feedbacklens/feedback-backend/logger"
	"github.com/feedbacklens/feedback-backend/middleware"
	"github.com/feedbacklens/feedback-backend/router"
	"github.com/feedbacklens/feedback-backend/services"
)

func main() {
	// Initialize logger
	logger.InitLogger()
	log := logger.GetLogger()
	defer func() { _ = logger.Close() }()

	// Load configuration; missing database target fails startup here
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	// Database pool
	poolConfig, err := pgxpool.ParseConfig(cfg.Database.ConnString())
	if err != nil {
		log.Fatalf("Failed to parse database config: %v", err)
	}
	poolConfig.MaxConns = int32(cfg.Database.MaxConnections)
	if cfg.IsProduction() {
		poolConfig.ConnConfig.TLSConfig = &tls.Config{
			ServerName: cfg.Database.Host,
			MinVersion: tls.VersionTLS12,
		}
	}

	pool, err := pgxpool.NewWithConfig(context.Background(), poolConfig)
	if err != nil {
		log.Fatalf("Failed to create database pool: %v", err)
	}
	defer pool.Close()

	pingCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := pool.Ping(pingCtx); err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	if err := postgres.RunMigrations(cfg.Database.URL()); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	// Redis is optional; without it the rate limiter counts in-process.
	var redisClient *redis.Client
	var counters middleware.CounterStore
	if cfg.Redis.Address != "" {
		redisOptions := &redis.Options{
			Addr:     cfg.Redis.Address,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		}
		if cfg.Redis.UseTLS {
			redisOptions.TLSConfig = &tls.Config{
				ServerName: cfg.Redis.Address,
				MinVersion: tls.VersionTLS12,
			}
		}
		redisClient = redis.NewClient(redisOptions)
		defer func() { _ = redisClient.Close() }()
		counters = middleware.NewRedisCounterStore(redisClient)
	} else {
		memCounters := middleware.NewMemoryCounterStore()
		defer memCounters.Stop()
		counters = memCounters
		log.Info("No Redis configured, using in-memory rate limit counters")
	}

	// Stores and services
	queryTimeout := time.Duration(cfg.Database.QueryTimeoutSeconds) * time.Second
	feedbackStore := postgres.NewFeedbackStore(pool, queryTimeout)
	feedbackService := services.NewFeedbackService(feedbackStore)
	healthService := services.NewHealthService(pool, redisClient, cfg.Server.Version)

	rateLimiter := middleware.SubmissionRateLimiter(
		counters,
		cfg.RateLimit.SubmissionsPerWindow,
		time.Duration(cfg.RateLimit.WindowSeconds)*time.Second,
	)

	r := router.SetupRouter(router.Dependencies{
		Config:          cfg,
		FeedbackHandler: handlers.NewFeedbackHandler(feedbackService),
		HealthHandler:   handlers.NewHealthHandler(healthService),
		RateLimiter:     rateLimiter,
		Logger:          log,
	})

	srv := &http.Server{
		Addr:              ":" + cfg.Server.Port,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go func() {
		log.Infow("Server starting", "port", cfg.Server.Port, "environment", cfg.Server.Environment)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("Server error: %v", err)
		}
	}()

	<-ctx.Done()
	log.Info("Shutdown signal received, draining connections")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Errorw("Graceful shutdown failed", "error", err)
	}
	log.Info("Server stopped")
}
