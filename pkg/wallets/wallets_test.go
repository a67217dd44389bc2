package wallets

import (
	"context"
	"errors"
	"math"
	"sync"
	"testing"
	"time"

	"github.com/chris/btc-wallet-ledger/pkg/models"
	pricingmocks "github.com/chris/btc-wallet-ledger/pkg/pricing/mocks"
	"github.com/chris/btc-wallet-ledger/pkg/result"
	"github.com/chris/btc-wallet-ledger/pkg/storage"
	"github.com/chris/btc-wallet-ledger/pkg/storage/memory"
	"github.com/chris/btc-wallet-ledger/pkg/storage/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

var testConfig = Config{MaxWalletsPerUser: 3, NewWalletDepositBTC: 1}

func newMemoryService(t *testing.T, prices *pricingmocks.Source) (*Service, *memory.Store) {
	t.Helper()
	store := memory.New()
	_, err := store.AddUser(context.Background(), models.User{APIKey: "alice", Name: "alice"})
	require.NoError(t, err)
	_, err = store.AddUser(context.Background(), models.User{APIKey: "bob", Name: "bob"})
	require.NoError(t, err)
	return NewService(store, prices, testConfig, nil), store
}

func TestAddWallet(t *testing.T) {
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		service, store := newMemoryService(t, nil)
		fixed := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
		service.now = func() time.Time { return fixed }

		out := service.AddWallet(ctx, "alice")

		require.Equal(t, result.Success, out.ResultCode)
		assert.Len(t, out.PublicKey, 32)
		assert.Equal(t, "alice", out.OwnerAPIKey)
		assert.Equal(t, 1.0, out.BTCBalance)
		assert.Equal(t, fixed, out.CreatedAt)

		stored, err := store.GetWallet(ctx, out.PublicKey)
		require.NoError(t, err)
		assert.Equal(t, 1.0, stored.BTCBalance)
	})

	t.Run("Limit Reached", func(t *testing.T) {
		service, store := newMemoryService(t, nil)

		for i := 0; i < testConfig.MaxWalletsPerUser; i++ {
			require.Equal(t, result.Success, service.AddWallet(ctx, "alice").ResultCode)
		}
		out := service.AddWallet(ctx, "alice")

		assert.Equal(t, result.WalletLimitPerUserReached, out.ResultCode)
		assert.Empty(t, out.PublicKey)
		count, err := store.CountWalletsOfUser(ctx, "alice")
		require.NoError(t, err)
		assert.Equal(t, testConfig.MaxWalletsPerUser, count)
	})

	t.Run("Concurrent Requests Respect Limit", func(t *testing.T) {
		service, store := newMemoryService(t, nil)

		var wg sync.WaitGroup
		codes := make([]result.Code, 10)
		for i := range codes {
			wg.Add(1)
			go func(i int) {
				defer wg.Done()
				codes[i] = service.AddWallet(ctx, "bob").ResultCode
			}(i)
		}
		wg.Wait()

		succeeded := 0
		for _, code := range codes {
			if code == result.Success {
				succeeded++
			} else {
				assert.Equal(t, result.WalletLimitPerUserReached, code)
			}
		}
		assert.Equal(t, testConfig.MaxWalletsPerUser, succeeded)
		count, err := store.CountWalletsOfUser(ctx, "bob")
		require.NoError(t, err)
		assert.Equal(t, testConfig.MaxWalletsPerUser, count)
	})

	t.Run("Unknown Owner", func(t *testing.T) {
		service, _ := newMemoryService(t, nil)

		out := service.AddWallet(ctx, "nobody")

		assert.Equal(t, result.UserNotFound, out.ResultCode)
	})

	t.Run("Retries Conflict", func(t *testing.T) {
		mockRepo := new(mocks.Repository)
		service := NewService(mockRepo, nil, testConfig, nil)

		mockRepo.On("WithinTransaction", mock.Anything, mock.Anything).Return(storage.ErrConflict).Once()
		mockRepo.On("WithinTransaction", mock.Anything, mock.Anything).Return(runUnit(mockRepo)).Once()
		mockRepo.On("CountWalletsOfUser", mock.Anything, "alice").Return(1, nil).Once()
		mockRepo.On("AddWallet", mock.Anything, mock.AnythingOfType("models.Wallet")).
			Return(func(_ context.Context, w models.Wallet) *models.Wallet { return &w }, nil).Once()

		out := service.AddWallet(ctx, "alice")

		assert.Equal(t, result.Success, out.ResultCode)
		mockRepo.AssertExpectations(t)
	})

	t.Run("Gives Up After Repeated Conflicts", func(t *testing.T) {
		mockRepo := new(mocks.Repository)
		service := NewService(mockRepo, nil, testConfig, nil)

		mockRepo.On("WithinTransaction", mock.Anything, mock.Anything).Return(storage.ErrConflict)

		out := service.AddWallet(ctx, "alice")

		assert.Equal(t, result.GeneralError, out.ResultCode)
		mockRepo.AssertNumberOfCalls(t, "WithinTransaction", maxConflictRetries+1)
	})

	t.Run("Storage Failure", func(t *testing.T) {
		mockRepo := new(mocks.Repository)
		service := NewService(mockRepo, nil, testConfig, nil)

		mockRepo.On("WithinTransaction", mock.Anything, mock.Anything).Return(runUnit(mockRepo))
		mockRepo.On("CountWalletsOfUser", mock.Anything, "alice").Return(0, errors.New("db down"))

		out := service.AddWallet(ctx, "alice")

		assert.Equal(t, result.GeneralError, out.ResultCode)
	})
}

// runUnit makes a mocked WithinTransaction invoke its callback against repo.
func runUnit(repo storage.Repository) func(context.Context, func(context.Context, storage.Repository) error) error {
	return func(ctx context.Context, fn func(context.Context, storage.Repository) error) error {
		return fn(ctx, repo)
	}
}

func TestUpdateBalance(t *testing.T) {
	ctx := context.Background()
	service, store := newMemoryService(t, nil)
	wallet := service.AddWallet(ctx, "alice")
	require.Equal(t, result.Success, wallet.ResultCode)

	t.Run("Success", func(t *testing.T) {
		assert.Equal(t, result.Success, service.UpdateBalance(ctx, wallet.PublicKey, 0.5))
		assert.Equal(t, result.Success, service.UpdateBalance(ctx, wallet.PublicKey, -1.25))

		stored, err := store.GetWallet(ctx, wallet.PublicKey)
		require.NoError(t, err)
		assert.InDelta(t, 0.25, stored.BTCBalance, 1e-12)
	})

	t.Run("Unknown Wallet", func(t *testing.T) {
		assert.Equal(t, result.WalletNotAccessible, service.UpdateBalance(ctx, "missing", 1))
	})

	t.Run("Not Enough Balance", func(t *testing.T) {
		assert.Equal(t, result.NotEnoughBalance, service.UpdateBalance(ctx, wallet.PublicKey, -10))
	})

	t.Run("Invalid Delta", func(t *testing.T) {
		assert.Equal(t, result.GeneralError, service.UpdateBalance(ctx, wallet.PublicKey, math.NaN()))
		assert.Equal(t, result.GeneralError, service.UpdateBalance(ctx, wallet.PublicKey, math.Inf(-1)))

		stored, err := store.GetWallet(ctx, wallet.PublicKey)
		require.NoError(t, err)
		assert.InDelta(t, 0.25, stored.BTCBalance, 1e-12)
	})
}

func TestFetchWallet(t *testing.T) {
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		prices := pricingmocks.NewSource(t)
		prices.On("BTCUSDPrice", mock.Anything).Return(64000.0, nil)
		service, _ := newMemoryService(t, prices)
		wallet := service.AddWallet(ctx, "alice")

		out := service.FetchWallet(ctx, "alice", wallet.PublicKey)

		require.Equal(t, result.Success, out.ResultCode)
		assert.Equal(t, wallet.PublicKey, out.PublicKey)
		assert.Equal(t, 1.0, out.BTCBalance)
		assert.Equal(t, 64000.0, out.USDBalance)
	})

	t.Run("Unknown Wallet", func(t *testing.T) {
		service, _ := newMemoryService(t, pricingmocks.NewSource(t))

		out := service.FetchWallet(ctx, "alice", "missing")

		assert.Equal(t, result.WalletNotFound, out.ResultCode)
	})

	t.Run("Foreign Wallet Hides Balance", func(t *testing.T) {
		service, _ := newMemoryService(t, pricingmocks.NewSource(t))
		wallet := service.AddWallet(ctx, "alice")

		out := service.FetchWallet(ctx, "bob", wallet.PublicKey)

		assert.Equal(t, result.WalletNotAccessible, out.ResultCode)
		assert.Zero(t, out.BTCBalance)
		assert.Zero(t, out.USDBalance)
	})

	t.Run("Price Unavailable", func(t *testing.T) {
		prices := pricingmocks.NewSource(t)
		prices.On("BTCUSDPrice", mock.Anything).Return(0.0, errors.New("upstream down"))
		service, _ := newMemoryService(t, prices)
		wallet := service.AddWallet(ctx, "alice")

		out := service.FetchWallet(ctx, "alice", wallet.PublicKey)

		assert.Equal(t, result.GeneralError, out.ResultCode)
		assert.Zero(t, out.BTCBalance)
	})
}

func TestFetchWalletTransactions(t *testing.T) {
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		mockRepo := new(mocks.Repository)
		service := NewService(mockRepo, nil, testConfig, nil)
		txs := []models.Transaction{{ID: "tx1", SrcAPIKey: "alice", SrcWallet: "w1"}}
		mockRepo.On("FetchWalletTransactions", mock.Anything, "w1", "alice").Return(txs, nil)

		out := service.FetchWalletTransactions(ctx, "w1", "alice")

		assert.Equal(t, result.Success, out.ResultCode)
		assert.Equal(t, txs, out.Transactions)
	})

	t.Run("Forwards Repository Code", func(t *testing.T) {
		mockRepo := new(mocks.Repository)
		service := NewService(mockRepo, nil, testConfig, nil)
		mockRepo.On("FetchWalletTransactions", mock.Anything, "w1", "alice").Return(nil, errors.New("db down"))

		out := service.FetchWalletTransactions(ctx, "w1", "alice")

		assert.Equal(t, result.GeneralError, out.ResultCode)
		assert.Empty(t, out.Transactions)
	})
}

func TestWithRepository(t *testing.T) {
	service := NewService(memory.New(), nil, testConfig, nil)
	other := memory.New()

	bound := service.WithRepository(other)

	assert.Same(t, other, bound.Repo)
	assert.NotSame(t, service, bound)
	assert.Equal(t, service.Config, bound.Config)
}
