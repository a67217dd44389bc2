package main

import (
	"context"
	"errors"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/chris/btc-wallet-ledger/pkg/api"
	"github.com/chris/btc-wallet-ledger/pkg/bootstrap"
	"github.com/chris/btc-wallet-ledger/pkg/config"
	"github.com/chris/btc-wallet-ledger/pkg/handlers"
	ledgermw "github.com/chris/btc-wallet-ledger/pkg/middleware"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

const shutdownTimeout = 10 * time.Second

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("invalid configuration: %v", err)
	}
	logger := bootstrap.NewLogger(cfg)
	slog.SetDefault(logger)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	app, err := bootstrap.New(ctx, cfg, logger)
	if err != nil {
		logger.Error("failed to initialise application", "error", err)
		os.Exit(1)
	}
	defer func() {
		if err := app.Close(); err != nil {
			logger.Error("failed to release resources", "error", err)
		}
	}()

	// Asynchronous deployments re-drive stale transactions from the reconciliation lambda.
	if cfg.StatsMode == config.StatsModeSync {
		go runReconciler(ctx, app)
	}

	server := &http.Server{
		Addr:              ":" + cfg.HTTPPort,
		Handler:           newRouter(app),
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		logger.Info("starting server", "port", cfg.HTTPPort, "storage", cfg.StorageDriver, "stats_mode", cfg.StatsMode)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("failed to start server", "error", err)
			stop()
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("graceful shutdown failed", "error", err)
	}
}

func newRouter(app *bootstrap.App) http.Handler {
	router := chi.NewRouter()
	router.Use(middleware.RequestID)
	router.Use(ledgermw.NewStructuredLogger(app.Logger))
	router.Use(middleware.Recoverer)

	handler := handlers.NewApiHandler(app.Users, app.Wallets, app.Transactions)
	api.HandlerFromMux(handler, router)
	return router
}

// runReconciler periodically re-notifies transactions whose statistics are still pending.
func runReconciler(ctx context.Context, app *bootstrap.App) {
	if app.Config.StaleTransactionAge <= 0 {
		return
	}
	ticker := time.NewTicker(app.Config.StaleTransactionAge)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			n, err := app.Transactions.Reconcile(ctx, app.Config.StaleTransactionAge)
			if err != nil {
				app.Logger.Error("reconciliation finished with errors", "renotified", n, "error", err)
				continue
			}
			if n > 0 {
				app.Logger.Info("reconciled stale transactions", "renotified", n)
			}
		}
	}
}
