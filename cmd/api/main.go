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

	goredis "github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/kmod24/moodboard/internal/adapters/quota"
	"github.com/kmod24/moodboard/internal/adapters/rest"
	"github.com/kmod24/moodboard/internal/adapters/sqlite"
	"github.com/kmod24/moodboard/internal/adapters/token"
	"github.com/kmod24/moodboard/internal/app"
	"github.com/kmod24/moodboard/internal/config"
	"github.com/kmod24/moodboard/internal/core/ports"
	"github.com/kmod24/moodboard/internal/core/services"
	"github.com/kmod24/moodboard/internal/logging"
)

func main() {
	// 1. Configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("FATAL: %v", err)
	}

	logger := logging.Must(cfg.LogLevel, cfg.LogFormat)
	defer logger.Sync()

	if cfg.JWTSecret == config.Default().JWTSecret {
		logger.Warn("JWT_SECRET is the development default")
	}

	// 2. Driven adapters
	store, err := sqlite.NewAdapter(cfg.DatabasePath)
	if err != nil {
		logger.Fatal("failed to initialize database", zap.String("path", cfg.DatabasePath), zap.Error(err))
	}
	defer store.Close()

	var generationQuota ports.GenerationQuota = services.NoQuota{}
	if cfg.RedisAddr != "" {
		rdb := goredis.NewClient(&goredis.Options{Addr: cfg.RedisAddr})
		defer rdb.Close()
		generationQuota = quota.NewDailyQuota(rdb, cfg.DailyGenerationLimit)
		logger.Info("generation quota enabled",
			zap.String("redis", cfg.RedisAddr),
			zap.Int("daily_limit", cfg.DailyGenerationLimit))
	}

	// 3. Core services
	dayboard := app.NewOrchestrator(cfg, false, logger)
	auth := services.NewAuth(store, token.NewIssuer(cfg.JWTSecret, cfg.TokenTTL), logger)
	journal := services.NewJournal(dayboard, store, generationQuota, logger)

	// 4. Driving adapter
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var limiter *rest.RateLimiter
	if cfg.RateLimitRPS > 0 {
		limiter = rest.NewRateLimiter(cfg.RateLimitRPS, cfg.RateLimitBurst)
		go limiter.Run(ctx, time.Minute)
	}
	handler := rest.NewHandler(auth, journal, limiter, logger)

	// 5. Start the server
	srv := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           handler,
		ReadHeaderTimeout: 15 * time.Second,
	}

	serverErr := make(chan error, 1)
	go func() {
		logger.Info("moodboard API listening", zap.String("addr", srv.Addr))
		err := srv.ListenAndServe()
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
			return
		}
		serverErr <- nil
	}()

	select {
	case err := <-serverErr:
		if err != nil {
			logger.Fatal("server failed", zap.Error(err))
		}
	case <-ctx.Done():
		logger.Info("shutting down server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Error("shutdown error", zap.Error(err))
		}
	}
}
