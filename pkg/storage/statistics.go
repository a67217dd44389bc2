package storage

import (
	"context"
	"time"

	"github.com/chris/btc-wallet-ledger/pkg/models"
)

// StatisticsStore defines the interface for the admin commission statistics.
type StatisticsStore interface {
	// UpdateCommissionStats adds one transaction and its commission to the
	// bucket of createdAt and marks the transaction COMPLETED, atomically.
	// It returns ErrStatsAlreadyApplied if the transaction is not APPLIED, so a
	// redelivered notification is counted once.
	UpdateCommissionStats(ctx context.Context, txID string, commission float64, createdAt time.Time) error

	// FetchStatistics returns the totals over every bucket.
	FetchStatistics(ctx context.Context) (*models.CommissionStats, error)
}
