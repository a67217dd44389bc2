// Package memory provides a process-lifetime Repository used by tests and
// single-instance deployments.
package memory

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/chris/btc-wallet-ledger/pkg/models"
	"github.com/chris/btc-wallet-ledger/pkg/result"
	"github.com/chris/btc-wallet-ledger/pkg/storage"
	"github.com/shopspring/decimal"
)

// Store keeps every record in maps guarded by a single lock. A unit of work
// holds the write lock for its whole duration, which serializes wallet limit
// checks and balance updates.
type Store struct {
	mu    sync.RWMutex
	state *state
	now   func() time.Time
}

type state struct {
	users        map[string]models.User
	wallets      map[string]models.Wallet
	transactions []models.Transaction
	txIndex      map[string]int
	stats        map[string]models.CommissionStats
}

// New creates an empty Store.
func New() *Store {
	return &Store{
		state: &state{
			users:   make(map[string]models.User),
			wallets: make(map[string]models.Wallet),
			txIndex: make(map[string]int),
			stats:   make(map[string]models.CommissionStats),
		},
		now: time.Now,
	}
}

// Make sure we conform to the interface
var _ storage.Repository = (*Store)(nil)

// direct returns a view without an undo journal. Callers hold s.mu.
func (s *Store) direct() *view { return &view{st: s.state, now: s.now} }

func (s *Store) AddUser(ctx context.Context, user models.User) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.direct().AddUser(ctx, user)
}

func (s *Store) GetWallet(ctx context.Context, publicKey string) (*models.Wallet, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.direct().GetWallet(ctx, publicKey)
}

func (s *Store) CountWalletsOfUser(ctx context.Context, ownerAPIKey string) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.direct().CountWalletsOfUser(ctx, ownerAPIKey)
}

func (s *Store) AddWallet(ctx context.Context, wallet models.Wallet) (*models.Wallet, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.direct().AddWallet(ctx, wallet)
}

func (s *Store) UpdateWalletBalance(ctx context.Context, publicKey string, delta float64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.direct().UpdateWalletBalance(ctx, publicKey, delta)
}

func (s *Store) AddTransaction(ctx context.Context, tx models.Transaction) (*models.Transaction, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.direct().AddTransaction(ctx, tx)
}

func (s *Store) GetTransaction(ctx context.Context, id string) (*models.Transaction, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.direct().GetTransaction(ctx, id)
}

func (s *Store) FetchUserTransactions(ctx context.Context, apiKey string) ([]models.Transaction, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.direct().FetchUserTransactions(ctx, apiKey)
}

func (s *Store) FetchWalletTransactions(ctx context.Context, publicKey, apiKey string) ([]models.Transaction, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.direct().FetchWalletTransactions(ctx, publicKey, apiKey)
}

func (s *Store) ListStaleTransactions(ctx context.Context, olderThan time.Duration) ([]models.Transaction, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.direct().ListStaleTransactions(ctx, olderThan)
}

func (s *Store) UpdateCommissionStats(ctx context.Context, txID string, commission float64, createdAt time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.direct().UpdateCommissionStats(ctx, txID, commission, createdAt)
}

func (s *Store) FetchStatistics(ctx context.Context) (*models.CommissionStats, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.direct().FetchStatistics(ctx)
}

// WithinTransaction holds the write lock while fn runs and replays the undo
// journal if fn fails.
func (s *Store) WithinTransaction(ctx context.Context, fn func(ctx context.Context, repo storage.Repository) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	v := &view{st: s.state, now: s.now, journal: &[]func(){}}
	if err := fn(ctx, v); err != nil {
		v.rollback()
		return err
	}
	return nil
}

// view runs the operations without locking. The caller owns the lock.
type view struct {
	st      *state
	now     func() time.Time
	journal *[]func()
}

var _ storage.Repository = (*view)(nil)

func (v *view) record(undo func()) {
	if v.journal != nil {
		*v.journal = append(*v.journal, undo)
	}
}

func (v *view) rollback() {
	j := *v.journal
	for i := len(j) - 1; i >= 0; i-- {
		j[i]()
	}
	*v.journal = nil
}

func (v *view) WithinTransaction(ctx context.Context, fn func(ctx context.Context, repo storage.Repository) error) error {
	return fn(ctx, v)
}

func (v *view) AddUser(_ context.Context, user models.User) (*models.User, error) {
	if _, exists := v.st.users[user.APIKey]; exists {
		return nil, fmt.Errorf("user with api key %s already exists", user.APIKey)
	}
	v.st.users[user.APIKey] = user
	v.record(func() { delete(v.st.users, user.APIKey) })
	return &user, nil
}

func (v *view) GetWallet(_ context.Context, publicKey string) (*models.Wallet, error) {
	w, ok := v.st.wallets[publicKey]
	if !ok {
		return nil, result.WalletNotFound
	}
	return &w, nil
}

func (v *view) CountWalletsOfUser(_ context.Context, ownerAPIKey string) (int, error) {
	u, ok := v.st.users[ownerAPIKey]
	if !ok {
		return 0, nil
	}
	return u.WalletCount, nil
}

func (v *view) AddWallet(_ context.Context, wallet models.Wallet) (*models.Wallet, error) {
	owner, ok := v.st.users[wallet.OwnerAPIKey]
	if !ok {
		return nil, result.UserNotFound
	}
	if _, exists := v.st.wallets[wallet.PublicKey]; exists {
		return nil, fmt.Errorf("wallet %s already exists", wallet.PublicKey)
	}

	previous := owner
	owner.WalletCount++
	v.st.users[owner.APIKey] = owner
	v.st.wallets[wallet.PublicKey] = wallet
	v.record(func() {
		delete(v.st.wallets, wallet.PublicKey)
		v.st.users[previous.APIKey] = previous
	})
	return &wallet, nil
}

func (v *view) UpdateWalletBalance(_ context.Context, publicKey string, delta float64) error {
	w, ok := v.st.wallets[publicKey]
	if !ok {
		return result.WalletNotAccessible
	}
	next := decimal.NewFromFloat(w.BTCBalance).Add(decimal.NewFromFloat(delta))
	if next.IsNegative() {
		return result.NotEnoughBalance
	}

	previous := w.BTCBalance
	w.BTCBalance = next.InexactFloat64()
	v.st.wallets[publicKey] = w
	v.record(func() {
		w.BTCBalance = previous
		v.st.wallets[publicKey] = w
	})
	return nil
}

func (v *view) AddTransaction(_ context.Context, tx models.Transaction) (*models.Transaction, error) {
	if _, exists := v.st.txIndex[tx.ID]; exists {
		return nil, fmt.Errorf("transaction %s already exists", tx.ID)
	}
	v.st.transactions = append(v.st.transactions, tx)
	v.st.txIndex[tx.ID] = len(v.st.transactions) - 1
	v.record(func() {
		v.st.transactions = v.st.transactions[:len(v.st.transactions)-1]
		delete(v.st.txIndex, tx.ID)
	})
	return &tx, nil
}

func (v *view) GetTransaction(_ context.Context, id string) (*models.Transaction, error) {
	i, ok := v.st.txIndex[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", storage.ErrTransactionNotFound, id)
	}
	tx := v.st.transactions[i]
	return &tx, nil
}

func (v *view) FetchUserTransactions(_ context.Context, apiKey string) ([]models.Transaction, error) {
	return v.filter(func(tx models.Transaction) bool {
		return tx.SrcAPIKey == apiKey
	}), nil
}

func (v *view) FetchWalletTransactions(_ context.Context, publicKey, apiKey string) ([]models.Transaction, error) {
	return v.filter(func(tx models.Transaction) bool {
		return tx.SrcWallet == publicKey && tx.SrcAPIKey == apiKey
	}), nil
}

func (v *view) ListStaleTransactions(_ context.Context, olderThan time.Duration) ([]models.Transaction, error) {
	cutoff := v.now().Add(-olderThan)
	return v.filter(func(tx models.Transaction) bool {
		return tx.Status == models.StatusApplied && tx.CreatedAt.Before(cutoff)
	}), nil
}

func (v *view) filter(keep func(models.Transaction) bool) []models.Transaction {
	out := make([]models.Transaction, 0)
	for _, tx := range v.st.transactions {
		if keep(tx) {
			out = append(out, tx)
		}
	}
	return out
}

func (v *view) UpdateCommissionStats(_ context.Context, txID string, commission float64, createdAt time.Time) error {
	i, ok := v.st.txIndex[txID]
	if !ok {
		return fmt.Errorf("%w: %s", storage.ErrTransactionNotFound, txID)
	}
	if v.st.transactions[i].Status != models.StatusApplied {
		return storage.ErrStatsAlreadyApplied
	}

	period := models.StatPeriodOf(createdAt)
	previous, existed := v.st.stats[period]
	bucket := previous
	bucket.StatPeriod = period
	bucket.CommissionSumBTC = decimal.NewFromFloat(bucket.CommissionSumBTC).Add(decimal.NewFromFloat(commission)).InexactFloat64()
	bucket.TotalTransactions++
	v.st.stats[period] = bucket
	v.st.transactions[i].Status = models.StatusCompleted

	v.record(func() {
		v.st.transactions[i].Status = models.StatusApplied
		if existed {
			v.st.stats[period] = previous
		} else {
			delete(v.st.stats, period)
		}
	})
	return nil
}

func (v *view) FetchStatistics(_ context.Context) (*models.CommissionStats, error) {
	sum := decimal.Zero
	var total int64
	for _, bucket := range v.st.stats {
		sum = sum.Add(decimal.NewFromFloat(bucket.CommissionSumBTC))
		total += bucket.TotalTransactions
	}
	return &models.CommissionStats{
		CommissionSumBTC:  sum.InexactFloat64(),
		TotalTransactions: total,
	}, nil
}
