package wallets

import (
	"context"
	"errors"
	"log/slog"
	"math"
	"time"

	"github.com/chris/btc-wallet-ledger/pkg/keys"
	"github.com/chris/btc-wallet-ledger/pkg/models"
	"github.com/chris/btc-wallet-ledger/pkg/pricing"
	"github.com/chris/btc-wallet-ledger/pkg/result"
	"github.com/chris/btc-wallet-ledger/pkg/storage"
	"github.com/shopspring/decimal"
)

// maxConflictRetries bounds how often AddWallet replays a unit of work that
// lost a race on the owner's wallet count.
const maxConflictRetries = 3

// Config holds the wallet policy knobs.
type Config struct {
	MaxWalletsPerUser   int
	NewWalletDepositBTC float64
}

// AddOutput is returned by AddWallet.
type AddOutput struct {
	PublicKey   string
	OwnerAPIKey string
	BTCBalance  float64
	CreatedAt   time.Time
	ResultCode  result.Code
}

// FetchOutput is returned by FetchWallet. Balances are zero unless ResultCode is Success.
type FetchOutput struct {
	PublicKey  string
	BTCBalance float64
	USDBalance float64
	ResultCode result.Code
}

// TransactionsOutput is a list of transactions with its outcome.
type TransactionsOutput struct {
	Transactions []models.Transaction
	ResultCode   result.Code
}

// Service owns wallet creation, lookup and balance mutation.
type Service struct {
	Repo   storage.Repository
	Prices pricing.Source
	Config Config
	Logger *slog.Logger

	now    func() time.Time
	newKey func() string
}

// NewService creates a new wallet Service.
func NewService(repo storage.Repository, prices pricing.Source, cfg Config, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{
		Repo:   repo,
		Prices: prices,
		Config: cfg,
		Logger: logger,
		now:    time.Now,
		newKey: keys.New,
	}
}

// WithRepository returns a copy of the service bound to repo, typically the
// repository of an open unit of work.
func (s *Service) WithRepository(repo storage.Repository) *Service {
	bound := *s
	bound.Repo = repo
	return &bound
}

// AddWallet creates a wallet for ownerAPIKey seeded with the configured
// deposit, unless the owner already holds the maximum number of wallets.
func (s *Service) AddWallet(ctx context.Context, ownerAPIKey string) AddOutput {
	var err error
	for attempt := 0; attempt <= maxConflictRetries; attempt++ {
		var out AddOutput
		out, err = s.addWallet(ctx, ownerAPIKey)
		if !errors.Is(err, storage.ErrConflict) {
			return out
		}
		s.Logger.Warn("wallet creation raced, retrying", "attempt", attempt+1, "error", err)
	}

	s.Logger.Error("failed to add wallet", "error", err)
	return AddOutput{OwnerAPIKey: ownerAPIKey, ResultCode: result.GeneralError}
}

func (s *Service) addWallet(ctx context.Context, ownerAPIKey string) (AddOutput, error) {
	var created *models.Wallet
	err := s.Repo.WithinTransaction(ctx, func(ctx context.Context, repo storage.Repository) error {
		count, err := repo.CountWalletsOfUser(ctx, ownerAPIKey)
		if err != nil {
			return err
		}
		if count >= s.Config.MaxWalletsPerUser {
			return result.WalletLimitPerUserReached
		}

		created, err = repo.AddWallet(ctx, models.Wallet{
			PublicKey:   s.newKey(),
			OwnerAPIKey: ownerAPIKey,
			BTCBalance:  s.Config.NewWalletDepositBTC,
			CreatedAt:   s.now().UTC(),
		})
		return err
	})
	if errors.Is(err, storage.ErrConflict) {
		return AddOutput{}, err
	}

	code := result.Of(err)
	if code == result.GeneralError {
		s.Logger.Error("failed to add wallet", "error", err)
	}
	if !code.OK() {
		return AddOutput{OwnerAPIKey: ownerAPIKey, ResultCode: code}, nil
	}

	return AddOutput{
		PublicKey:   created.PublicKey,
		OwnerAPIKey: created.OwnerAPIKey,
		BTCBalance:  created.BTCBalance,
		CreatedAt:   created.CreatedAt,
		ResultCode:  result.Success,
	}, nil
}

// UpdateBalance atomically adds delta, which may be negative, to the balance of publicKey.
func (s *Service) UpdateBalance(ctx context.Context, publicKey string, delta float64) result.Code {
	if math.IsNaN(delta) || math.IsInf(delta, 0) {
		s.Logger.Error("refusing non-finite balance delta", "public_key", publicKey, "delta", delta)
		return result.GeneralError
	}
	err := s.Repo.UpdateWalletBalance(ctx, publicKey, delta)
	code := result.Of(err)
	if code == result.GeneralError {
		s.Logger.Error("failed to update wallet balance", "public_key", publicKey, "error", err)
	}
	return code
}

// FetchWallet returns the balance of a wallet owned by requestingAPIKey, in
// BTC and in USD at the current price.
func (s *Service) FetchWallet(ctx context.Context, requestingAPIKey, publicKey string) FetchOutput {
	wallet, err := s.Repo.GetWallet(ctx, publicKey)
	if err != nil {
		code := result.Of(err)
		if code == result.GeneralError {
			s.Logger.Error("failed to fetch wallet", "public_key", publicKey, "error", err)
		}
		return FetchOutput{PublicKey: publicKey, ResultCode: code}
	}
	if wallet.OwnerAPIKey != requestingAPIKey {
		return FetchOutput{PublicKey: publicKey, ResultCode: result.WalletNotAccessible}
	}

	price, err := s.Prices.BTCUSDPrice(ctx)
	if err != nil {
		s.Logger.Error("failed to fetch BTC price", "error", err)
		return FetchOutput{PublicKey: publicKey, ResultCode: result.GeneralError}
	}

	usd := decimal.NewFromFloat(wallet.BTCBalance).Mul(decimal.NewFromFloat(price))
	return FetchOutput{
		PublicKey:  wallet.PublicKey,
		BTCBalance: wallet.BTCBalance,
		USDBalance: usd.InexactFloat64(),
		ResultCode: result.Success,
	}
}

// FetchWalletTransactions lists the transactions sent from publicKey by requestingAPIKey.
func (s *Service) FetchWalletTransactions(ctx context.Context, publicKey, requestingAPIKey string) TransactionsOutput {
	txs, err := s.Repo.FetchWalletTransactions(ctx, publicKey, requestingAPIKey)
	if err != nil {
		code := result.Of(err)
		if code == result.GeneralError {
			s.Logger.Error("failed to fetch wallet transactions", "public_key", publicKey, "error", err)
		}
		return TransactionsOutput{Transactions: []models.Transaction{}, ResultCode: code}
	}
	return TransactionsOutput{Transactions: txs, ResultCode: result.Success}
}
