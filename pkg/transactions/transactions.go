// Package transactions moves BTC between wallets and reports platform statistics.
//
// A transfer goes through REQUESTED, RECORDED, BALANCES_APPLIED, STATS_UPDATED
// and COMPLETE. Recording the row and applying both balance legs form one unit
// of work, so no partially applied transfer is ever visible. The statistics
// step runs after commit through the notifier; a transfer whose statistics
// are still pending stays APPLIED until Reconcile picks it up.
package transactions

import (
	"context"
	"crypto/subtle"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"strings"
	"time"

	"github.com/chris/btc-wallet-ledger/pkg/commission"
	"github.com/chris/btc-wallet-ledger/pkg/events"
	"github.com/chris/btc-wallet-ledger/pkg/models"
	"github.com/chris/btc-wallet-ledger/pkg/result"
	"github.com/chris/btc-wallet-ledger/pkg/storage"
	"github.com/chris/btc-wallet-ledger/pkg/wallets"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var errInvalidCommission = errors.New("commission policy returned an invalid commission")

// Notifier receives committed transactions.
type Notifier interface {
	Notify(ctx context.Context, evt events.TransactionCommitted) error
}

// Input is a transfer request.
type Input struct {
	SrcAPIKey string
	SrcWallet string
	DstWallet string
	BTCAmount float64
}

// Output is returned by AddTransaction.
type Output struct {
	ID            string
	SrcAPIKey     string
	SrcWallet     string
	DstWallet     string
	BTCAmount     float64
	DestBTCAmount float64
	Commission    float64
	Status        models.TransactionStatus
	CreatedAt     time.Time
	ResultCode    result.Code
}

// TransactionsOutput is a list of transactions with its outcome.
type TransactionsOutput struct {
	Transactions []models.Transaction
	ResultCode   result.Code
}

// StatisticsOutput is returned by FetchStatistics.
type StatisticsOutput struct {
	CommissionsSumBTC       float64
	TransactionsTotalAmount int64
	ResultCode              result.Code
}

// Service orchestrates transfers.
type Service struct {
	Repo        storage.Repository
	Wallets     *wallets.Service
	Policy      commission.Policy
	Notifier    Notifier
	AdminAPIKey string
	Logger      *slog.Logger

	now   func() time.Time
	newID func() string
}

// NewService creates a new transaction Service.
func NewService(repo storage.Repository, walletService *wallets.Service, policy commission.Policy, notifier Notifier, adminAPIKey string, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	if notifier == nil {
		notifier = events.NewDispatcher()
	}
	return &Service{
		Repo:        repo,
		Wallets:     walletService,
		Policy:      policy,
		Notifier:    notifier,
		AdminAPIKey: adminAPIKey,
		Logger:      logger,
		now:         time.Now,
		newID:       uuid.NewString,
	}
}

// AddTransaction moves in.BTCAmount out of the source wallet and credits the
// destination with the amount minus the commission.
func (s *Service) AddTransaction(ctx context.Context, in Input) Output {
	out := Output{
		SrcAPIKey: in.SrcAPIKey,
		SrcWallet: in.SrcWallet,
		DstWallet: in.DstWallet,
		BTCAmount: in.BTCAmount,
	}
	if !validInput(in) {
		out.ResultCode = result.InvalidTransaction
		return out
	}

	var stored *models.Transaction
	err := s.Repo.WithinTransaction(ctx, func(ctx context.Context, repo storage.Repository) error {
		src, err := repo.GetWallet(ctx, in.SrcWallet)
		if err != nil {
			return err
		}
		if src.OwnerAPIKey != in.SrcAPIKey {
			return result.WalletNotAccessible
		}
		if _, err := repo.GetWallet(ctx, in.DstWallet); err != nil {
			return err
		}

		fee, err := s.Policy.Calculate(ctx, repo, commission.Input{
			SrcAPIKey: in.SrcAPIKey,
			SrcWallet: in.SrcWallet,
			DstWallet: in.DstWallet,
			BTCAmount: in.BTCAmount,
		})
		if err != nil {
			return err
		}
		if fee < 0 || fee > in.BTCAmount {
			return fmt.Errorf("%w: %v", errInvalidCommission, fee)
		}

		stored, err = repo.AddTransaction(ctx, models.Transaction{
			ID:         s.newID(),
			SrcAPIKey:  in.SrcAPIKey,
			SrcWallet:  in.SrcWallet,
			DstWallet:  in.DstWallet,
			BTCAmount:  in.BTCAmount,
			Commission: fee,
			Status:     models.StatusApplied,
			CreatedAt:  s.now().UTC(),
		})
		if err != nil {
			return err
		}

		walletService := s.Wallets.WithRepository(repo)
		if code := walletService.UpdateBalance(ctx, in.SrcWallet, -in.BTCAmount); !code.OK() {
			return code
		}
		if code := walletService.UpdateBalance(ctx, in.DstWallet, stored.DestBTCAmount()); !code.OK() {
			return code
		}
		return nil
	})
	if err != nil {
		out.ResultCode = result.Of(err)
		if out.ResultCode == result.GeneralError {
			s.Logger.Error("failed to add transaction", "src_wallet", in.SrcWallet, "dst_wallet", in.DstWallet, "error", err)
		}
		return out
	}

	out.Status = stored.Status
	if err := s.Notifier.Notify(ctx, events.FromTransaction(*stored)); err != nil {
		s.Logger.Error("post-commit notification failed, statistics left for reconciliation",
			"transaction_id", stored.ID, "error", err)
	} else if current, err := s.Repo.GetTransaction(ctx, stored.ID); err != nil {
		s.Logger.Warn("failed to reload transaction status", "transaction_id", stored.ID, "error", err)
	} else {
		out.Status = current.Status
	}

	out.ID = stored.ID
	out.Commission = stored.Commission
	out.DestBTCAmount = stored.DestBTCAmount()
	out.CreatedAt = stored.CreatedAt
	out.ResultCode = result.Success
	return out
}

func validInput(in Input) bool {
	if math.IsNaN(in.BTCAmount) || math.IsInf(in.BTCAmount, 0) || in.BTCAmount <= 0 {
		return false
	}
	if strings.TrimSpace(in.SrcAPIKey) == "" || in.SrcWallet == "" || in.DstWallet == "" {
		return false
	}
	return in.SrcWallet != in.DstWallet
}

// FetchUserTransactions lists every transaction sent by apiKey, oldest first.
func (s *Service) FetchUserTransactions(ctx context.Context, apiKey string) TransactionsOutput {
	txs, err := s.Repo.FetchUserTransactions(ctx, apiKey)
	if err != nil {
		code := result.Of(err)
		if code == result.GeneralError {
			s.Logger.Error("failed to fetch user transactions", "error", err)
		}
		return TransactionsOutput{Transactions: []models.Transaction{}, ResultCode: code}
	}
	return TransactionsOutput{Transactions: txs, ResultCode: result.Success}
}

// FetchStatistics returns the platform totals to the holder of the admin key.
func (s *Service) FetchStatistics(ctx context.Context, adminAPIKey string) StatisticsOutput {
	if !s.isAdmin(adminAPIKey) {
		return StatisticsOutput{ResultCode: result.RequiresAdminPrivileges}
	}

	stats, err := s.Repo.FetchStatistics(ctx)
	if err != nil {
		s.Logger.Error("failed to fetch statistics", "error", err)
		return StatisticsOutput{ResultCode: result.GeneralError}
	}

	return StatisticsOutput{
		CommissionsSumBTC:       decimal.NewFromFloat(stats.CommissionSumBTC).Round(12).InexactFloat64(),
		TransactionsTotalAmount: stats.TotalTransactions,
		ResultCode:              result.Success,
	}
}

func (s *Service) isAdmin(key string) bool {
	if s.AdminAPIKey == "" || key == "" {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(key), []byte(s.AdminAPIKey)) == 1
}

// ApplyStatistics records the statistics of one committed transaction.
// Applying the same event twice counts it once.
func (s *Service) ApplyStatistics(ctx context.Context, evt events.TransactionCommitted) error {
	return events.NewStatisticsObserver(s.Repo, s.Logger).OnTransactionCommitted(ctx, evt)
}

// Reconcile re-notifies every transaction that has stayed APPLIED for longer
// than olderThan and reports how many were re-driven successfully.
func (s *Service) Reconcile(ctx context.Context, olderThan time.Duration) (int, error) {
	stale, err := s.Repo.ListStaleTransactions(ctx, olderThan)
	if err != nil {
		return 0, fmt.Errorf("failed to list stale transactions: %w", err)
	}

	var errs []error
	redriven := 0
	for _, tx := range stale {
		if err := s.Notifier.Notify(ctx, events.FromTransaction(tx)); err != nil {
			s.Logger.Error("failed to re-drive transaction", "transaction_id", tx.ID, "error", err)
			errs = append(errs, err)
			continue
		}
		redriven++
	}
	return redriven, errors.Join(errs...)
}
