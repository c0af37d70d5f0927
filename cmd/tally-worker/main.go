package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"tally/internal/config"
	"tally/internal/events"
	"tally/internal/log"
	"tally/internal/store/sheets"
	"tally/internal/store/sqlite"
	"tally/internal/worker"
)

func main() {
	_ = godotenv.Load()

	logger := log.New(log.Config{Component: log.ComponentWorker})
	log.SetDefault(logger)

	logger.Info("starting tally-worker")

	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		logger.Error("configuration validation failed", log.FieldError, err)
		os.Exit(1)
	}
	if cfg.AMQPURL == "" {
		logger.Error("AMQP_URL is required for the sync worker")
		os.Exit(1)
	}

	// The worker mirrors committed records from the local sqlite store
	// to the spreadsheet, so both sides are mandatory here.
	repo, err := sqlite.New(cfg.SQLiteDBPath)
	if err != nil {
		logger.Error("failed to open sqlite store",
			log.FieldError, err, "path", cfg.SQLiteDBPath)
		os.Exit(1)
	}
	defer repo.Close()

	remote, err := sheets.NewFromEnv(context.Background())
	if err != nil {
		logger.Error("failed to initialize spreadsheet client", log.FieldError, err)
		os.Exit(1)
	}

	client, err := events.NewClient(cfg.AMQPURL, cfg.AMQPExchange, cfg.AMQPQueue, cfg.Owner, logger)
	if err != nil {
		logger.Error("failed to initialize AMQP client", log.FieldError, err)
		os.Exit(1)
	}
	defer client.Close()

	syncWorker := worker.NewSyncWorker(repo, remote, logger)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go func() {
		err := client.ConsumeCommits(ctx, func(msg *events.CommitMessage) error {
			return syncWorker.HandleCommit(ctx, msg)
		})
		if err != nil && !errors.Is(err, context.Canceled) {
			logger.Error("commit consumption failed", log.FieldError, err)
		}
		cancel()
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-sigChan:
		logger.Info("shutdown signal received", "signal", sig.String())
	case <-ctx.Done():
		logger.Info("context cancelled")
	}

	cancel()
	time.Sleep(time.Second)
	logger.Info("worker shutdown complete")
}
