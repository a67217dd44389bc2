package dynamodb

import (
	"context"

	"github.com/chris/btc-wallet-ledger/pkg/storage"
)

// unitOfWork collects the writes of one WithinTransaction call. Reads go
// straight to the table; every write is committed by a single
// TransactWriteItems call when fn returns.
type unitOfWork struct {
	writes []write
	// walletCounts remembers the wallet_count read for each owner so the
	// insert can be conditioned on it.
	walletCounts map[string]int
}

// WithinTransaction binds a copy of the store to a new unit of work.
func (s *Store) WithinTransaction(ctx context.Context, fn func(ctx context.Context, repo storage.Repository) error) error {
	if s.tx != nil {
		return fn(ctx, s)
	}

	bound := *s
	bound.tx = &unitOfWork{walletCounts: make(map[string]int)}

	if err := fn(ctx, &bound); err != nil {
		return err
	}
	return s.transact(ctx, bound.tx.writes)
}
