package main

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"lab-portal/internal/app"
	"lab-portal/internal/client"
	"lab-portal/internal/config"
	"lab-portal/internal/logging"
	"lab-portal/internal/server"
)

func main() {
	// load .env into os.Environ
	if err := godotenv.Load(); err != nil {
		fmt.Println("No .env file found (ok in prod)")
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}

	logger := logging.New(os.Stdout, cfg.Log.Level, cfg.Log.Format)
	ctx := context.Background()

	if cfg.Auth.SessionSecret == "" {
		secret := make([]byte, 32)
		if _, err := rand.Read(secret); err != nil {
			logger.Error(ctx, "generate session secret", "error", err)
			os.Exit(1)
		}
		cfg.Auth.SessionSecret = hex.EncodeToString(secret)
		logger.Warn(ctx, "AUTH_SESSION_SECRET not set, sessions will not survive a restart")
	}

	db, err := client.InitDBClient(cfg.Database)
	if err != nil {
		logger.Error(ctx, "connect database", "error", err)
		os.Exit(1)
	}

	services := app.NewServices(cfg, db, app.Clients{
		Razorpay: client.NewRazorpayClient(&cfg.Razorpay),
		Mail:     client.NewMailClient(&cfg.Mail, logger),
	}, logger)

	srv := server.NewServer(cfg, logger, services)

	serverAddr := cfg.HTTP.Address()
	logger.Info(ctx, "starting HTTP server", "address", serverAddr, "environment", cfg.Environment.Name)
	go func() {
		if err := srv.Start(serverAddr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error(ctx, "HTTP server error", "error", err)
			os.Exit(1)
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGTERM, syscall.SIGINT)

	<-sigChan
	logger.Info(ctx, "signal received, starting graceful shutdown")

	shutdownCtx, shutdownCancel := context.WithTimeout(ctx, 30*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error(ctx, "HTTP server shutdown error", "error", err)
		os.Exit(1)
	}

	if sqlDB, err := db.DB(); err == nil {
		_ = sqlDB.Close()
	}
}
