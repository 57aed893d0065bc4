package command

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

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"

	"mrp/database"
	"mrp/internal/cache"
	"mrp/internal/config"
	"mrp/internal/logging"
	"mrp/internal/metrics"
	"mrp/internal/microservices/http-api/handler"
	"mrp/internal/microservices/http-api/service"
	"mrp/internal/middleware/auth"
)

const shutdownTimeout = 10 * time.Second

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP API server",
	Args:  cobra.NoArgs,
	RunE:  runServe,
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := config.LoadConfig()
	if err != nil {
		return fmt.Errorf("could not load config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	// Setup structured logging
	logger := logging.New(cfg.LogLevel, cfg.LogFormat)
	slog.SetDefault(logger)
	if !cfg.IsDevelopment() {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	secret := []byte(cfg.TokenSecret)
	if len(secret) == 0 {
		logger.Warn("TOKEN_SECRET not set, using a random key; tokens will not survive a restart")
		if secret, err = auth.RandomSecret(); err != nil {
			return err
		}
	}

	db, err := database.Open(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer database.Close(db)

	sqlDB, err := db.DB()
	if err != nil {
		return fmt.Errorf("failed to get sql.DB: %w", err)
	}

	var scores service.ScoreCache
	if cfg.RedisURL != "" {
		client, err := cache.Connect(ctx, cfg.RedisURL)
		if err != nil {
			logger.Warn("redis unavailable, score cache disabled", "error", err)
		} else {
			scoreCache := cache.New(client, cfg.ScoreCacheTTL, logger)
			defer scoreCache.Close()
			scores = scoreCache
			logger.Info("score cache enabled", "ttl", cfg.ScoreCacheTTL)
		}
	}

	var m *metrics.Metrics
	if cfg.PrometheusEnabled {
		m = metrics.NewMetrics()
		m.WatchDB(sqlDB)
	}

	services := handler.NewServices(db, auth.NewTokenService(secret), cfg.ModerationMode, scores)
	router := handler.NewRouter(services, handler.RouterOptions{
		Logger:      logger,
		CORSOrigins: cfg.CORSOrigins,
		Metrics:     m,
		DB:          sqlDB,
	})

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.HTTPPort),
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	// Start server in goroutine
	errChan := make(chan error, 1)
	go func() {
		logger.Info("starting http server", "addr", srv.Addr, "moderation", cfg.ModerationMode)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errChan <- err
		}
	}()

	// Wait for shutdown signal or error
	select {
	case <-ctx.Done():
		logger.Info("received shutdown signal")
	case err := <-errChan:
		return fmt.Errorf("http server failed: %w", err)
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("graceful shutdown failed: %w", err)
	}
	logger.Info("server stopped gracefully")
	return nil
}
