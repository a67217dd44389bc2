package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/chris/btc-wallet-ledger/pkg/models"
	"github.com/chris/btc-wallet-ledger/pkg/storage"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const insertionOrder = "created_at ASC, id ASC"

func (s *Store) AddTransaction(ctx context.Context, tx models.Transaction) (*models.Transaction, error) {
	if err := s.db.WithContext(ctx).Create(&tx).Error; err != nil {
		return nil, fmt.Errorf("failed to create transaction: %w", err)
	}
	return &tx, nil
}

func (s *Store) GetTransaction(ctx context.Context, id string) (*models.Transaction, error) {
	var tx models.Transaction
	if err := s.db.WithContext(ctx).Where("id = ?", id).First(&tx).Error; err != nil {
		if isNotFound(err) {
			return nil, fmt.Errorf("%w: %s", storage.ErrTransactionNotFound, id)
		}
		return nil, fmt.Errorf("failed to get transaction: %w", err)
	}
	return &tx, nil
}

func (s *Store) FetchUserTransactions(ctx context.Context, apiKey string) ([]models.Transaction, error) {
	var txs []models.Transaction
	err := s.db.WithContext(ctx).
		Where("src_api_key = ?", apiKey).
		Order(insertionOrder).
		Find(&txs).Error
	if err != nil {
		return nil, fmt.Errorf("failed to fetch user transactions: %w", err)
	}
	return txs, nil
}

func (s *Store) FetchWalletTransactions(ctx context.Context, publicKey, apiKey string) ([]models.Transaction, error) {
	var txs []models.Transaction
	err := s.db.WithContext(ctx).
		Where("src_wallet = ? AND src_api_key = ?", publicKey, apiKey).
		Order(insertionOrder).
		Find(&txs).Error
	if err != nil {
		return nil, fmt.Errorf("failed to fetch wallet transactions: %w", err)
	}
	return txs, nil
}

func (s *Store) ListStaleTransactions(ctx context.Context, olderThan time.Duration) ([]models.Transaction, error) {
	cutoff := s.now().Add(-olderThan)

	var txs []models.Transaction
	err := s.db.WithContext(ctx).
		Where("status = ? AND created_at < ?", models.StatusApplied, cutoff).
		Order(insertionOrder).
		Find(&txs).Error
	if err != nil {
		return nil, fmt.Errorf("failed to query for stale transactions: %w", err)
	}
	return txs, nil
}

// UpdateCommissionStats flips the transaction from APPLIED to COMPLETED and
// upserts the day bucket in one database transaction.
func (s *Store) UpdateCommissionStats(ctx context.Context, txID string, commission float64, createdAt time.Time) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&models.Transaction{}).
			Where("id = ? AND status = ?", txID, models.StatusApplied).
			Update("status", models.StatusCompleted)
		if res.Error != nil {
			return fmt.Errorf("failed to mark transaction completed: %w", res.Error)
		}
		if res.RowsAffected == 0 {
			var count int64
			if err := tx.Model(&models.Transaction{}).Where("id = ?", txID).Count(&count).Error; err != nil {
				return fmt.Errorf("failed to check transaction: %w", err)
			}
			if count == 0 {
				return fmt.Errorf("%w: %s", storage.ErrTransactionNotFound, txID)
			}
			return storage.ErrStatsAlreadyApplied
		}

		bucket := models.CommissionStats{
			StatPeriod:        models.StatPeriodOf(createdAt),
			CommissionSumBTC:  commission,
			TotalTransactions: 1,
		}
		err := tx.Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "stat_period"}},
			DoUpdates: clause.Assignments(map[string]interface{}{
				"commission_sum_btc": gorm.Expr("transaction_stats.commission_sum_btc + ?", commission),
				"total_transactions": gorm.Expr("transaction_stats.total_transactions + 1"),
			}),
		}).Create(&bucket).Error
		if err != nil {
			return fmt.Errorf("failed to update commission stats: %w", err)
		}
		return nil
	})
}

// FetchStatistics sums every day bucket.
func (s *Store) FetchStatistics(ctx context.Context) (*models.CommissionStats, error) {
	var totals models.CommissionStats
	err := s.db.WithContext(ctx).
		Model(&models.CommissionStats{}).
		Select("COALESCE(SUM(commission_sum_btc), 0) AS commission_sum_btc, COALESCE(SUM(total_transactions), 0) AS total_transactions").
		Scan(&totals).Error
	if err != nil {
		return nil, fmt.Errorf("failed to fetch statistics: %w", err)
	}
	return &totals, nil
}
