package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"

	"fintrack/internal/config"
	apphttp "fintrack/internal/http"
	"fintrack/internal/log"
	"fintrack/internal/storage"
)

func main() {
	// Load configuration (.env handled inside Load)
	cfg := config.Load()

	// Setup structured logging
	logger := log.New(log.Config{
		Level:     log.ParseLevel(cfg.LogLevel),
		Component: log.ComponentApp,
	})
	log.SetDefault(logger)

	if err := cfg.Validate(); err != nil {
		logger.Error("Configuration validation failed", log.FieldError, err)
		os.Exit(1)
	}

	// Choose data backend
	var store storage.Store
	switch cfg.DataBackend {
	case "memory":
		store = storage.NewMemoryStore(cfg.DefaultUsername)
		logger.Info("Initialized memory backend", log.FieldBackend, cfg.DataBackend)
	default:
		sqliteStore, err := storage.NewSQLiteStore(cfg.SQLiteDBPath, cfg.DefaultUsername)
		if err != nil {
			logger.Error("Failed to initialize SQLite store",
				log.FieldError, err, "path", cfg.SQLiteDBPath)
			os.Exit(1)
		}
		store = sqliteStore
		logger.Info("Initialized SQLite backend",
			log.FieldBackend, cfg.DataBackend, "path", cfg.SQLiteDBPath)
	}
	defer func() {
		if err := store.Close(); err != nil {
			logger.Error("Store close error", log.FieldError, err)
		}
	}()

	srv := apphttp.NewServer(":"+cfg.Port, store, logger, apphttp.Options{
		RateLimitRPS:   cfg.RateLimitRPS,
		RateLimitBurst: cfg.RateLimitBurst,
	})

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		logger.Info("Starting fintrack server",
			"port", cfg.Port, log.FieldBackend, cfg.DataBackend)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		logger.Info("Shutdown signal received")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		return srv.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		logger.Error("Server error", log.FieldError, err)
		os.Exit(1)
	}
	logger.Info("Server stopped gracefully")
}
