package memory

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/chris/btc-wallet-ledger/pkg/models"
	"github.com/chris/btc-wallet-ledger/pkg/result"
	"github.com/chris/btc-wallet-ledger/pkg/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seed(t *testing.T, s *Store) (models.User, models.Wallet, models.Wallet) {
	t.Helper()
	ctx := context.Background()

	user := models.User{APIKey: "key-1", Name: "dato", CreatedAt: time.Now()}
	_, err := s.AddUser(ctx, user)
	require.NoError(t, err)

	w1 := models.Wallet{PublicKey: "w1", OwnerAPIKey: user.APIKey, BTCBalance: 1}
	w2 := models.Wallet{PublicKey: "w2", OwnerAPIKey: user.APIKey, BTCBalance: 1}
	_, err = s.AddWallet(ctx, w1)
	require.NoError(t, err)
	_, err = s.AddWallet(ctx, w2)
	require.NoError(t, err)
	return user, w1, w2
}

func TestStore_Wallets(t *testing.T) {
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		s := New()
		user, w1, _ := seed(t, s)

		got, err := s.GetWallet(ctx, w1.PublicKey)
		require.NoError(t, err)
		assert.Equal(t, w1, *got)

		count, err := s.CountWalletsOfUser(ctx, user.APIKey)
		require.NoError(t, err)
		assert.Equal(t, 2, count)
	})

	t.Run("Unknown Wallet", func(t *testing.T) {
		s := New()
		_, err := s.GetWallet(ctx, "missing")
		assert.ErrorIs(t, err, result.WalletNotFound)
	})

	t.Run("Unknown Owner", func(t *testing.T) {
		s := New()
		_, err := s.AddWallet(ctx, models.Wallet{PublicKey: "w", OwnerAPIKey: "nobody"})
		assert.ErrorIs(t, err, result.UserNotFound)

		count, err := s.CountWalletsOfUser(ctx, "nobody")
		require.NoError(t, err)
		assert.Zero(t, count)
	})
}

func TestStore_UpdateWalletBalance(t *testing.T) {
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		s := New()
		_, w1, _ := seed(t, s)

		require.NoError(t, s.UpdateWalletBalance(ctx, w1.PublicKey, 0.985))
		got, _ := s.GetWallet(ctx, w1.PublicKey)
		assert.InDelta(t, 1.985, got.BTCBalance, 1e-12)
	})

	t.Run("Unknown Wallet", func(t *testing.T) {
		s := New()
		err := s.UpdateWalletBalance(ctx, "missing", 1)
		assert.ErrorIs(t, err, result.WalletNotAccessible)
	})

	t.Run("Not Enough Balance", func(t *testing.T) {
		s := New()
		_, w1, _ := seed(t, s)

		err := s.UpdateWalletBalance(ctx, w1.PublicKey, -1.5)
		assert.ErrorIs(t, err, result.NotEnoughBalance)

		got, _ := s.GetWallet(ctx, w1.PublicKey)
		assert.Equal(t, 1.0, got.BTCBalance)
	})

	t.Run("Concurrent Debits", func(t *testing.T) {
		s := New()
		_, w1, _ := seed(t, s)

		var wg sync.WaitGroup
		for i := 0; i < 100; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				_ = s.UpdateWalletBalance(ctx, w1.PublicKey, -0.01)
			}()
		}
		wg.Wait()

		got, _ := s.GetWallet(ctx, w1.PublicKey)
		assert.InDelta(t, 0.0, got.BTCBalance, 1e-9)
	})
}

func TestStore_WithinTransaction(t *testing.T) {
	ctx := context.Background()

	t.Run("Commit", func(t *testing.T) {
		s := New()
		user, w1, w2 := seed(t, s)

		err := s.WithinTransaction(ctx, func(ctx context.Context, repo storage.Repository) error {
			if _, err := repo.AddTransaction(ctx, models.Transaction{ID: "tx1", SrcAPIKey: user.APIKey, SrcWallet: w1.PublicKey, DstWallet: w2.PublicKey, BTCAmount: 0.5}); err != nil {
				return err
			}
			if err := repo.UpdateWalletBalance(ctx, w1.PublicKey, -0.5); err != nil {
				return err
			}
			return repo.UpdateWalletBalance(ctx, w2.PublicKey, 0.5)
		})
		require.NoError(t, err)

		txs, _ := s.FetchUserTransactions(ctx, user.APIKey)
		assert.Len(t, txs, 1)
		got, _ := s.GetWallet(ctx, w2.PublicKey)
		assert.Equal(t, 1.5, got.BTCBalance)
	})

	t.Run("Rollback", func(t *testing.T) {
		s := New()
		user, w1, w2 := seed(t, s)

		err := s.WithinTransaction(ctx, func(ctx context.Context, repo storage.Repository) error {
			if _, err := repo.AddTransaction(ctx, models.Transaction{ID: "tx1", SrcAPIKey: user.APIKey, SrcWallet: w1.PublicKey, DstWallet: w2.PublicKey}); err != nil {
				return err
			}
			if _, err := repo.AddWallet(ctx, models.Wallet{PublicKey: "w3", OwnerAPIKey: user.APIKey}); err != nil {
				return err
			}
			if err := repo.UpdateWalletBalance(ctx, w2.PublicKey, 0.5); err != nil {
				return err
			}
			return repo.UpdateWalletBalance(ctx, w1.PublicKey, -5)
		})
		assert.ErrorIs(t, err, result.NotEnoughBalance)

		txs, _ := s.FetchUserTransactions(ctx, user.APIKey)
		assert.Empty(t, txs)
		got, _ := s.GetWallet(ctx, w2.PublicKey)
		assert.Equal(t, 1.0, got.BTCBalance)
		_, err = s.GetWallet(ctx, "w3")
		assert.ErrorIs(t, err, result.WalletNotFound)
		count, _ := s.CountWalletsOfUser(ctx, user.APIKey)
		assert.Equal(t, 2, count)
	})

	t.Run("Serializes Limit Checks", func(t *testing.T) {
		s := New()
		user, _, _ := seed(t, s)
		const limit = 3

		var wg sync.WaitGroup
		var mu sync.Mutex
		created := 0
		for i := 0; i < 20; i++ {
			wg.Add(1)
			go func(i int) {
				defer wg.Done()
				err := s.WithinTransaction(ctx, func(ctx context.Context, repo storage.Repository) error {
					n, err := repo.CountWalletsOfUser(ctx, user.APIKey)
					if err != nil {
						return err
					}
					if n >= limit {
						return result.WalletLimitPerUserReached
					}
					_, err = repo.AddWallet(ctx, models.Wallet{PublicKey: string(rune('a' + i)), OwnerAPIKey: user.APIKey})
					return err
				})
				if err == nil {
					mu.Lock()
					created++
					mu.Unlock()
				}
			}(i)
		}
		wg.Wait()

		assert.Equal(t, 1, created)
		count, _ := s.CountWalletsOfUser(ctx, user.APIKey)
		assert.Equal(t, limit, count)
	})
}

func TestStore_Transactions(t *testing.T) {
	ctx := context.Background()
	s := New()
	user, w1, w2 := seed(t, s)

	for _, tx := range []models.Transaction{
		{ID: "a", SrcAPIKey: user.APIKey, SrcWallet: w1.PublicKey, DstWallet: w2.PublicKey, BTCAmount: 0.1},
		{ID: "b", SrcAPIKey: user.APIKey, SrcWallet: w2.PublicKey, DstWallet: w1.PublicKey, BTCAmount: 0.2},
		{ID: "c", SrcAPIKey: "other", SrcWallet: w1.PublicKey, DstWallet: w2.PublicKey, BTCAmount: 0.3},
		{ID: "d", SrcAPIKey: user.APIKey, SrcWallet: w1.PublicKey, DstWallet: w2.PublicKey, BTCAmount: 0.4},
	} {
		_, err := s.AddTransaction(ctx, tx)
		require.NoError(t, err)
	}

	t.Run("By User", func(t *testing.T) {
		txs, err := s.FetchUserTransactions(ctx, user.APIKey)
		require.NoError(t, err)
		require.Len(t, txs, 3)
		assert.Equal(t, []string{"a", "b", "d"}, []string{txs[0].ID, txs[1].ID, txs[2].ID})
	})

	t.Run("By Wallet", func(t *testing.T) {
		txs, err := s.FetchWalletTransactions(ctx, w1.PublicKey, user.APIKey)
		require.NoError(t, err)
		require.Len(t, txs, 2)
		assert.Equal(t, "a", txs[0].ID)
		assert.Equal(t, "d", txs[1].ID)
	})

	t.Run("Idempotent Reads", func(t *testing.T) {
		first, _ := s.FetchUserTransactions(ctx, user.APIKey)
		second, _ := s.FetchUserTransactions(ctx, user.APIKey)
		assert.Equal(t, first, second)
	})

	t.Run("Duplicate Id", func(t *testing.T) {
		_, err := s.AddTransaction(ctx, models.Transaction{ID: "a"})
		assert.Error(t, err)
	})

	t.Run("By Id", func(t *testing.T) {
		tx, err := s.GetTransaction(ctx, "b")
		require.NoError(t, err)
		assert.Equal(t, 0.2, tx.BTCAmount)

		_, err = s.GetTransaction(ctx, "zzz")
		assert.ErrorIs(t, err, storage.ErrTransactionNotFound)
	})
}

func TestStore_Statistics(t *testing.T) {
	ctx := context.Background()
	day1 := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	day2 := day1.Add(24 * time.Hour)

	s := New()
	for _, tx := range []models.Transaction{
		{ID: "a", Status: models.StatusApplied, CreatedAt: day1},
		{ID: "b", Status: models.StatusApplied, CreatedAt: day2},
	} {
		_, err := s.AddTransaction(ctx, tx)
		require.NoError(t, err)
	}

	require.NoError(t, s.UpdateCommissionStats(ctx, "a", 0.015, day1))
	require.NoError(t, s.UpdateCommissionStats(ctx, "b", 0.03, day2))

	t.Run("Sums Buckets", func(t *testing.T) {
		stats, err := s.FetchStatistics(ctx)
		require.NoError(t, err)
		assert.InDelta(t, 0.045, stats.CommissionSumBTC, 1e-12)
		assert.Equal(t, int64(2), stats.TotalTransactions)
	})

	t.Run("Applied Once", func(t *testing.T) {
		err := s.UpdateCommissionStats(ctx, "a", 0.015, day1)
		assert.ErrorIs(t, err, storage.ErrStatsAlreadyApplied)

		stats, _ := s.FetchStatistics(ctx)
		assert.Equal(t, int64(2), stats.TotalTransactions)
	})

	t.Run("Unknown Transaction", func(t *testing.T) {
		err := s.UpdateCommissionStats(ctx, "zzz", 1, day1)
		assert.True(t, errors.Is(err, storage.ErrTransactionNotFound))
	})

	t.Run("Empty", func(t *testing.T) {
		stats, err := New().FetchStatistics(ctx)
		require.NoError(t, err)
		assert.Zero(t, stats.CommissionSumBTC)
		assert.Zero(t, stats.TotalTransactions)
	})
}

func TestStore_ListStaleTransactions(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)

	s := New()
	s.now = func() time.Time { return now }
	for _, tx := range []models.Transaction{
		{ID: "old", Status: models.StatusApplied, CreatedAt: now.Add(-time.Hour)},
		{ID: "fresh", Status: models.StatusApplied, CreatedAt: now.Add(-time.Minute)},
		{ID: "done", Status: models.StatusCompleted, CreatedAt: now.Add(-time.Hour)},
	} {
		_, err := s.AddTransaction(ctx, tx)
		require.NoError(t, err)
	}

	txs, err := s.ListStaleTransactions(ctx, 20*time.Minute)
	require.NoError(t, err)
	require.Len(t, txs, 1)
	assert.Equal(t, "old", txs[0].ID)
}
