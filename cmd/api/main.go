package main

import (
	"errors"
	"io/fs"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/sefazor/stoicaf-backend/internal/config"
	"github.com/sefazor/stoicaf-backend/pkg/logger"
	"go.uber.org/zap"
)

func main() {
	// .env is optional, the platform sets real env vars in production
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		log.Fatal("Error loading .env file: ", err)
	}

	cfg := config.LoadConfig()

	zapLogger, err := logger.New(cfg.Env, cfg.LogLevel)
	if err != nil {
		log.Fatal("Failed to initialize logger: ", err)
	}
	defer zapLogger.Sync()

	if cfg.Stripe.SecretKey == "" {
		zapLogger.Warn("STRIPE_SECRET_KEY is not set, checkout requests will fail")
	}
	if cfg.Stripe.DefaultPriceID == "" {
		zapLogger.Warn("STRIPE_PRICE_PAPERBACK is not set, requests must name a price")
	}

	app := InitializeAPI(cfg, zapLogger)

	go func() {
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
		<-quit
		zapLogger.Info("shutting down")
		if err := app.ShutdownWithTimeout(10 * time.Second); err != nil {
			zapLogger.Error("shutdown failed", zap.Error(err))
		}
	}()

	zapLogger.Info("server starting", zap.String("port", cfg.Port), zap.String("env", cfg.Env))
	if err := app.Listen(":" + cfg.Port); err != nil {
		zapLogger.Fatal("server stopped", zap.Error(err))
	}
}
