// Package events fans a committed transaction out to the observers that
// complete it, such as the commission statistics.
package events

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/chris/btc-wallet-ledger/pkg/models"
	"github.com/chris/btc-wallet-ledger/pkg/storage"
)

// TransactionCommitted is emitted once a transfer's row and balances are committed.
type TransactionCommitted struct {
	TransactionID string    `json:"transaction_id"`
	SrcAPIKey     string    `json:"src_api_key"`
	SrcWallet     string    `json:"src_wallet"`
	DstWallet     string    `json:"dst_wallet"`
	BTCAmount     float64   `json:"btc_amount"`
	Commission    float64   `json:"commission"`
	CreatedAt     time.Time `json:"created_at"`
}

// FromTransaction builds the event for a stored transaction.
func FromTransaction(tx models.Transaction) TransactionCommitted {
	return TransactionCommitted{
		TransactionID: tx.ID,
		SrcAPIKey:     tx.SrcAPIKey,
		SrcWallet:     tx.SrcWallet,
		DstWallet:     tx.DstWallet,
		BTCAmount:     tx.BTCAmount,
		Commission:    tx.Commission,
		CreatedAt:     tx.CreatedAt,
	}
}

// Observer reacts to committed transactions.
type Observer interface {
	OnTransactionCommitted(ctx context.Context, evt TransactionCommitted) error
}

// ObserverFunc adapts a function to Observer.
type ObserverFunc func(ctx context.Context, evt TransactionCommitted) error

func (f ObserverFunc) OnTransactionCommitted(ctx context.Context, evt TransactionCommitted) error {
	return f(ctx, evt)
}

// Dispatcher notifies its observers synchronously, in the order they were attached.
type Dispatcher struct {
	mu        sync.RWMutex
	observers []Observer
}

// NewDispatcher creates a Dispatcher with the given observers attached.
func NewDispatcher(observers ...Observer) *Dispatcher {
	return &Dispatcher{observers: observers}
}

// Attach adds an observer.
func (d *Dispatcher) Attach(o Observer) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.observers = append(d.observers, o)
}

// Notify calls every observer, even after one fails, and joins their errors.
func (d *Dispatcher) Notify(ctx context.Context, evt TransactionCommitted) error {
	d.mu.RLock()
	observers := make([]Observer, len(d.observers))
	copy(observers, d.observers)
	d.mu.RUnlock()

	var errs []error
	for _, o := range observers {
		if err := o.OnTransactionCommitted(ctx, evt); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// StatisticsObserver folds each transaction into the commission statistics.
type StatisticsObserver struct {
	Store  storage.StatisticsStore
	Logger *slog.Logger
}

// NewStatisticsObserver creates a new StatisticsObserver.
func NewStatisticsObserver(store storage.StatisticsStore, logger *slog.Logger) *StatisticsObserver {
	if logger == nil {
		logger = slog.Default()
	}
	return &StatisticsObserver{Store: store, Logger: logger}
}

var _ Observer = (*StatisticsObserver)(nil)

// OnTransactionCommitted records the commission. A redelivered event is a no-op.
func (o *StatisticsObserver) OnTransactionCommitted(ctx context.Context, evt TransactionCommitted) error {
	err := o.Store.UpdateCommissionStats(ctx, evt.TransactionID, evt.Commission, evt.CreatedAt)
	if errors.Is(err, storage.ErrStatsAlreadyApplied) {
		o.Logger.Info("statistics already applied", "transaction_id", evt.TransactionID)
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to update statistics for transaction %s: %w", evt.TransactionID, err)
	}
	return nil
}
