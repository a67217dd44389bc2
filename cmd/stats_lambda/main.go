package main

import (
	"context"
	"log"
	"log/slog"

	"github.com/aws/aws-lambda-go/events"
	"github.com/aws/aws-lambda-go/lambda"
	"github.com/chris/btc-wallet-ledger/pkg/bootstrap"
	"github.com/chris/btc-wallet-ledger/pkg/config"
	ledgerevents "github.com/chris/btc-wallet-ledger/pkg/events"
)

// StatisticsApplier folds a committed transaction into the platform statistics.
type StatisticsApplier interface {
	ApplyStatistics(ctx context.Context, evt ledgerevents.TransactionCommitted) error
}

// Handler consumes TransactionCommitted messages from SQS.
type Handler struct {
	Applier StatisticsApplier
	Logger  *slog.Logger
}

// HandleRequest applies every record of the batch and reports the failed ones
// so SQS only redelivers those.
func (h *Handler) HandleRequest(ctx context.Context, sqsEvent events.SQSEvent) (events.SQSEventResponse, error) {
	var resp events.SQSEventResponse
	for _, message := range sqsEvent.Records {
		evt, err := ledgerevents.DecodeTransactionCommitted(message.Body)
		if err != nil {
			// Malformed bodies end up in the dead-letter queue after maxReceiveCount.
			h.Logger.Error("failed to decode message", "message_id", message.MessageId, "error", err)
			resp.BatchItemFailures = append(resp.BatchItemFailures, events.SQSBatchItemFailure{ItemIdentifier: message.MessageId})
			continue
		}

		if err := h.Applier.ApplyStatistics(ctx, evt); err != nil {
			h.Logger.Error("failed to apply statistics", "message_id", message.MessageId, "transaction_id", evt.TransactionID, "error", err)
			resp.BatchItemFailures = append(resp.BatchItemFailures, events.SQSBatchItemFailure{ItemIdentifier: message.MessageId})
			continue
		}

		h.Logger.Info("applied statistics", "transaction_id", evt.TransactionID)
	}
	return resp, nil
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

	h := &Handler{Applier: app.Transactions, Logger: logger}
	lambda.Start(h.HandleRequest)
}
