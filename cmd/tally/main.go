package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"tally/internal/config"
	"tally/internal/editor"
	"tally/internal/events"
	apphttp "tally/internal/http"
	"tally/internal/lists"
	"tally/internal/log"
	"tally/internal/store"
	"tally/internal/store/memory"
	"tally/internal/store/sqlite"
)

func main() {
	// Load .env for local development; absent file is fine.
	_ = godotenv.Load()

	logger := log.New(log.DefaultConfig())
	log.SetDefault(logger)

	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		logger.Error("configuration validation failed", log.FieldError, err)
		os.Exit(1)
	}

	var backend store.Store
	switch cfg.DataBackend {
	case "sqlite":
		repo, err := sqlite.New(cfg.SQLiteDBPath)
		if err != nil {
			logger.Error("failed to open sqlite store",
				log.FieldError, err, "path", cfg.SQLiteDBPath)
			os.Exit(1)
		}
		defer repo.Close()
		backend = repo
		logger.Info("initialized sqlite backend", log.FieldBackend, cfg.DataBackend)
	default:
		backend = memory.NewSeeded()
		logger.Info("initialized memory backend", log.FieldBackend, cfg.DataBackend)
	}

	recent := lists.NewRecent(backend, cfg.Owner, cfg.RecentLimit)
	monthly := lists.NewMonthly(backend, cfg.Owner, cfg.MonthCacheTTL)
	if err := recent.Refresh(context.Background()); err != nil {
		logger.Warn("initial recent list load failed", log.FieldError, err)
	}

	// Commit events are optional; without a broker the editor simply
	// skips notification.
	var notifier editor.Notifier
	if cfg.AMQPURL != "" {
		client, err := events.NewClient(cfg.AMQPURL, cfg.AMQPExchange, cfg.AMQPQueue, cfg.Owner, logger)
		if err != nil {
			logger.Error("failed to initialize AMQP client", log.FieldError, err)
			os.Exit(1)
		}
		defer client.Close()
		notifier = client
		logger.Info("commit events enabled", "exchange", cfg.AMQPExchange)
	}

	srv := apphttp.NewServer(":"+cfg.Port, backend, recent, monthly, notifier, cfg.Owner, logger)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go func() {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
		sig := <-sigChan
		logger.Info("shutdown signal received", "signal", sig.String())

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer shutdownCancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Error("server shutdown error", log.FieldError, err)
		}
		cancel()
	}()

	logger.Info("starting tally server",
		"port", cfg.Port, log.FieldBackend, cfg.DataBackend, log.FieldOwner, cfg.Owner)
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logger.Error("server error", log.FieldError, err, "port", cfg.Port)
		os.Exit(1)
	}

	<-ctx.Done()
	logger.Info("server stopped gracefully")
}
