package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"

	"ohda/internal/config"
	apphttp "ohda/internal/http"
	"ohda/internal/insight"
	"ohda/internal/ledger"
)

func main() {
	// Setup structured logging
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	cfg, err := config.Load()
	if err != nil {
		logger.Error("Configuration validation failed", "error", err)
		os.Exit(1)
	}

	store := ledger.New()
	if cfg.SeedDemo {
		store.Seed(ledger.DemoTransactions())
		logger.Info("Seeded demo transactions", "count", store.Len())
	}

	// The insight generator is optional. Without an API key the dashboard
	// still works and the analysis panel shows the fallback text.
	var gen insight.TextGenerator
	if cfg.InsightAPIKey != "" {
		gen = insight.NewClient(cfg.InsightAPIKey, cfg.InsightBaseURL, cfg.InsightModel)
		logger.Info("Insight generator initialized", "model", cfg.InsightModel)
	} else {
		logger.Warn("INSIGHT_API_KEY not set, AI analysis disabled")
	}
	auditor := insight.NewRequester(gen, cfg.InsightTimeout)

	srv := apphttp.NewServer(fmt.Sprintf(":%d", cfg.Port), store, store, auditor, cfg.MaxReceiptBytes)

	// Configure server timeouts and limits
	srv.ReadTimeout = 10 * time.Second
	srv.WriteTimeout = 30 * time.Second
	srv.IdleTimeout = 60 * time.Second
	srv.MaxHeaderBytes = 1 << 16 // 64KB

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		logger.Info("Starting ohda server", "port", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-ctx.Done()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		logger.Error("Server error", "error", err)
		os.Exit(1)
	}
	logger.Info("Server stopped gracefully")
}
