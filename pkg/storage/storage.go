package storage

import "context"

// Repository defines the root interface for the entire data layer.
// It composes all available storage operations. Components should depend on the
// most granular interface that covers what they touch.
type Repository interface {
	UserStore
	WalletStore
	TransactionStore
	StatisticsStore
	UnitOfWork
}

// UnitOfWork groups several writes so that they commit together or not at all.
type UnitOfWork interface {
	// WithinTransaction runs fn against a Repository bound to a single storage
	// transaction. If fn returns an error every write made through that
	// Repository is discarded and the error is returned unchanged. Calling
	// WithinTransaction on a bound Repository joins the enclosing transaction.
	WithinTransaction(ctx context.Context, fn func(ctx context.Context, repo Repository) error) error
}
