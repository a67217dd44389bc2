package main

import (
	"context"
	"log"
	"log/slog"
	"time"

	"github.com/aws/aws-lambda-go/lambda"
	"github.com/chris/btc-wallet-ledger/pkg/bootstrap"
	"github.com/chris/btc-wallet-ledger/pkg/config"
)

// Reconciler re-notifies transactions whose statistics are still pending.
type Reconciler interface {
	Reconcile(ctx context.Context, olderThan time.Duration) (int, error)
}

// Handler is triggered by an EventBridge Schedule.
type Handler struct {
	Reconciler Reconciler
	OlderThan  time.Duration
	Logger     *slog.Logger
}

// HandleRequest re-drives stale transactions. A partial failure is returned so
// the invocation shows up as failed; the next run retries what is left.
func (h *Handler) HandleRequest(ctx context.Context) error {
	h.Logger.Info("starting reconciliation of stale transactions", "older_than", h.OlderThan.String())

	n, err := h.Reconciler.Reconcile(ctx, h.OlderThan)
	if err != nil {
		h.Logger.Error("reconciliation finished with errors", "renotified", n, "error", err)
		return err
	}

	if n == 0 {
		h.Logger.Info("no stale transactions found")
		return nil
	}
	h.Logger.Info("reconciliation finished", "renotified", n)
	return nil
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("invalid configuration: %v", err)
	}
	logger := bootstrap.NewLogger(cfg)

	app, err := bootstrap.New(context.Background(), cfg, logger)
	if err != nil {
		log.Fatalf("failed to initialise application: %v", err)
	}
	defer app.Close()

	h := &Handler{Reconciler: app.Transactions, OlderThan: cfg.StaleTransactionAge, Logger: logger}
	lambda.Start(h.HandleRequest)
}
