package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// TransactionStatus tracks how far a committed transfer has progressed.
type TransactionStatus string

const (
	// StatusApplied means the row and both balance legs are committed and the
	// commission statistics are still pending.
	StatusApplied TransactionStatus = "APPLIED"
	// StatusCompleted means the statistics have been folded in.
	StatusCompleted TransactionStatus = "COMPLETED"
)

// statPeriodLayout buckets commission statistics by UTC day.
const statPeriodLayout = "2006-01-02"

// User is a registered caller. The api key is its identity for every other operation.
type User struct {
	APIKey      string    `json:"api_key" dynamodbav:"api_key" gorm:"primaryKey;size:64"`
	Name        string    `json:"name" dynamodbav:"name" gorm:"not null"`
	WalletCount int       `json:"-" dynamodbav:"wallet_count" gorm:"-"`
	CreatedAt   time.Time `json:"created_at" dynamodbav:"created_at"`
}

// Wallet is a custodial BTC balance owned by exactly one user.
type Wallet struct {
	PublicKey   string    `json:"public_key" dynamodbav:"public_key" gorm:"primaryKey;size:64"`
	OwnerAPIKey string    `json:"owner_api_key" dynamodbav:"owner_api_key" gorm:"index;not null;size:64"`
	BTCBalance  float64   `json:"btc_balance" dynamodbav:"btc_balance" gorm:"not null"`
	CreatedAt   time.Time `json:"created_at" dynamodbav:"created_at"`
}

// Transaction is an append-only record of a transfer. BTCAmount is the gross
// debit of the source wallet; the destination receives BTCAmount - Commission.
type Transaction struct {
	ID         string            `json:"id" dynamodbav:"id" gorm:"primaryKey;size:36"`
	SrcAPIKey  string            `json:"src_api_key" dynamodbav:"src_api_key" gorm:"index;not null;size:64"`
	SrcWallet  string            `json:"src_wallet" dynamodbav:"src_wallet" gorm:"index;not null;size:64"`
	DstWallet  string            `json:"dst_wallet" dynamodbav:"dst_wallet" gorm:"not null;size:64"`
	BTCAmount  float64           `json:"btc_amount" dynamodbav:"btc_amount" gorm:"not null"`
	Commission float64           `json:"commission" dynamodbav:"commission" gorm:"not null"`
	Status     TransactionStatus `json:"status" dynamodbav:"status" gorm:"index;size:16"`
	CreatedAt  time.Time         `json:"created_at" dynamodbav:"created_at" gorm:"index"`
}

// DestBTCAmount is the amount credited to the destination wallet.
func (t Transaction) DestBTCAmount() float64 {
	return decimal.NewFromFloat(t.BTCAmount).Sub(decimal.NewFromFloat(t.Commission)).InexactFloat64()
}

// CommissionStats is one day bucket of platform statistics. FetchStatistics
// returns the sum of all buckets with an empty StatPeriod.
type CommissionStats struct {
	StatPeriod        string  `json:"stat_period" dynamodbav:"stat_period" gorm:"primaryKey;size:10"`
	CommissionSumBTC  float64 `json:"commission_sum_btc" dynamodbav:"commission_sum_btc" gorm:"not null"`
	TotalTransactions int64   `json:"total_transactions" dynamodbav:"total_transactions" gorm:"not null"`
}

// TableName keeps the relational name used by earlier deployments.
func (CommissionStats) TableName() string { return "transaction_stats" }

// StatPeriodOf returns the statistics bucket a transaction created at t belongs to.
func StatPeriodOf(t time.Time) string {
	return t.UTC().Format(statPeriodLayout)
}
