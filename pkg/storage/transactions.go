package storage

import (
	"context"
	"time"

	"github.com/chris/btc-wallet-ledger/pkg/models"
)

// TransactionReader defines the interface for reading the transaction log.
// Every list is returned in insertion order.
type TransactionReader interface {
	// GetTransaction retrieves one transaction by id. It returns
	// ErrTransactionNotFound if no such transaction exists.
	GetTransaction(ctx context.Context, id string) (*models.Transaction, error)

	// FetchUserTransactions retrieves all transactions sent by the user.
	FetchUserTransactions(ctx context.Context, apiKey string) ([]models.Transaction, error)

	// FetchWalletTransactions retrieves transactions sent from publicKey by apiKey.
	FetchWalletTransactions(ctx context.Context, publicKey, apiKey string) ([]models.Transaction, error)

	// ListStaleTransactions retrieves transactions that have been APPLIED for
	// longer than olderThan without their statistics being recorded.
	ListStaleTransactions(ctx context.Context, olderThan time.Duration) ([]models.Transaction, error)
}

// TransactionWriter appends to the transaction log.
type TransactionWriter interface {
	AddTransaction(ctx context.Context, tx models.Transaction) (*models.Transaction, error)
}

// TransactionStore combines the reader and writer interfaces.
type TransactionStore interface {
	TransactionReader
	TransactionWriter
}
