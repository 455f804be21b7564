package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"golang.org/x/sync/errgroup"

	"expenseflow/internal/amqp"
	"expenseflow/internal/backend"
	"expenseflow/internal/config"
	apphttp "expenseflow/internal/http"
	"expenseflow/internal/ledger"
	applog "expenseflow/internal/log"
	"expenseflow/internal/services"
)

func main() {
	// Load .env file for local development (ignore errors in production/docker)
	_ = godotenv.Load()

	logger := applog.New(applog.DefaultConfig())
	applog.SetDefault(logger)

	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		logger.Error("Configuration validation failed", "error", err)
		os.Exit(1)
	}

	store, err := backend.Open(backend.Config{
		Type:         backend.Type(cfg.DataBackend),
		JSONFilePath: cfg.JSONFilePath,
		SQLiteDBPath: cfg.SQLiteDBPath,
	}, logger.Logger)
	if err != nil {
		logger.Error("Failed to initialize persistence backend", "error", err, "backend", cfg.DataBackend)
		os.Exit(1)
	}
	defer store.Close()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	transactions, err := store.Load(ctx)
	if err != nil {
		logger.Error("Failed to load transactions", "error", err, "backend", cfg.DataBackend)
		os.Exit(1)
	}
	ldg := ledger.New(transactions)
	logger.Info("Ledger loaded", applog.FieldCount, ldg.Len(), "backend", cfg.DataBackend)

	// Mutation events are optional; without AMQP the tracker runs local-only.
	var publisher services.Publisher
	if cfg.AMQPURL != "" {
		amqpClient, err := amqp.NewClient(cfg.AMQPURL, cfg.AMQPExchange, cfg.AMQPQueue)
		if err != nil {
			logger.Warn("Failed to initialize AMQP client, continuing without sync events", "error", err)
		} else {
			defer amqpClient.Close()
			publisher = amqpClient
			logger.Info("Initialized AMQP client",
				"exchange", cfg.AMQPExchange,
				"queue", cfg.AMQPQueue)
		}
	}

	tracker := services.NewTracker(ldg, store, publisher)

	srv := apphttp.NewServer(":"+cfg.Port, tracker)
	srv.ReadTimeout = 10 * time.Second
	srv.WriteTimeout = 10 * time.Second
	srv.IdleTimeout = 60 * time.Second
	srv.MaxHeaderBytes = 1 << 16 // 64KB

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		logger.Info("Starting expenseflow server", "port", cfg.Port, "backend", cfg.DataBackend)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Error("Server shutdown error", "error", err)
		}

		// Final snapshot write before teardown
		saveCtx, cancelSave := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancelSave()
		if err := tracker.SaveNow(saveCtx); err != nil {
			logger.Error("Final save failed", "error", err)
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		logger.Error("Server error", "error", err, "port", cfg.Port)
		os.Exit(1)
	}
	logger.Info("Server stopped gracefully")
}
