// Package main provides the API server entry point for the stockfolio backend.
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

	"github.com/stockfolio/stockfolio/internal/api"
	"github.com/stockfolio/stockfolio/internal/config"
	"github.com/stockfolio/stockfolio/internal/logging"
	"github.com/stockfolio/stockfolio/internal/marketdata"
	"github.com/stockfolio/stockfolio/internal/retry"
	"github.com/stockfolio/stockfolio/internal/service"
	"github.com/stockfolio/stockfolio/internal/session"
	"github.com/stockfolio/stockfolio/internal/storage"
)

func main() {
	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Initialize structured logging
	logLevel := logging.ParseLogLevel(cfg.Logging.Level)
	logFormat := logging.ParseLogFormat(cfg.Logging.Format)
	logging.InitGlobalLogger(logLevel, logFormat)

	logger := logging.GetGlobalLogger()
	logger.WithFields(map[string]interface{}{
		"level":  cfg.Logging.Level,
		"format": cfg.Logging.Format,
	}).Info("Structured logging initialized")

	// Initialize database connections, waiting for them to come up.
	logger.Info("Connecting to databases...")

	var postgres *storage.PostgresDB
	if err := retry.Do(context.Background(), retry.DefaultConfig(), "postgres", func(ctx context.Context) error {
		var connErr error
		postgres, connErr = storage.NewPostgresDB(&cfg.Database.Postgres)
		return connErr
	}); err != nil {
		logger.WithError(err).Fatal("Failed to connect to Postgres")
	}
	defer postgres.Close()

	var redis *storage.RedisStore
	if err := retry.Do(context.Background(), retry.DefaultConfig(), "redis", func(ctx context.Context) error {
		var connErr error
		redis, connErr = storage.NewRedisStore(&cfg.Database.Redis)
		return connErr
	}); err != nil {
		logger.WithError(err).Fatal("Failed to connect to Redis")
	}
	defer redis.Close()

	logger.Info("Database connections established")

	// Initialize the market data provider
	provider := marketdata.NewYahooClient(&cfg.MarketData)

	// Initialize repositories
	userRepo := storage.NewUserRepository(postgres)
	portfolioRepo := storage.NewPortfolioRepository(postgres)
	watchlistRepo := storage.NewWatchlistRepository(postgres)

	// Initialize session store
	sessions := session.NewRedisStore(redis, cfg.Session.TTL)

	// Initialize services
	accountService := service.NewAccountService(userRepo)
	portfolioService := service.NewPortfolioService(portfolioRepo, provider)
	watchlistService := service.NewWatchlistService(watchlistRepo, provider)
	marketService := service.NewMarketService(provider)

	logger.Info("Services initialized")

	// Create server configuration
	serverConfig := &api.ServerConfig{
		Host:              cfg.Server.Host,
		Port:              cfg.Server.Port,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
		ShutdownTimeout:   10 * time.Second,
		SessionCookieName: cfg.Session.CookieName,
		SessionTTL:        cfg.Session.TTL,
		AllowedOrigin:     cfg.Server.AllowedOrigin,
		RateLimitRPS:      cfg.RateLimit.RequestsPerSecond,
		RateLimitBurst:    cfg.RateLimit.Burst,
	}

	server := api.NewServer(serverConfig, accountService, portfolioService, watchlistService, marketService, sessions)

	// Start server in a goroutine
	go func() {
		if err := server.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.WithError(err).Fatal("Server failed to start")
		}
	}()

	logger.WithFields(map[string]interface{}{
		"host": cfg.Server.Host,
		"port": cfg.Server.Port,
	}).Info("Server started successfully")

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), serverConfig.ShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		logger.WithError(err).Fatal("Server forced to shutdown")
	}

	logger.Info("Server exited")
}
