// Package postgres implements the Repository on a relational database through gorm.
package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/chris/btc-wallet-ledger/pkg/models"
	"github.com/chris/btc-wallet-ledger/pkg/storage"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// PoolConfig holds database connection pool configuration
type PoolConfig struct {
	MaxIdleConns    int
	MaxOpenConns    int
	ConnMaxLifetime time.Duration
	ConnMaxIdleTime time.Duration
}

// DefaultPoolConfig is used when Open receives a zero PoolConfig.
var DefaultPoolConfig = PoolConfig{
	MaxIdleConns:    10,
	MaxOpenConns:    100,
	ConnMaxLifetime: time.Hour,
	ConnMaxIdleTime: 30 * time.Minute,
}

// Store implements the Repository interface using gorm.
type Store struct {
	db *gorm.DB
	// inTx is set on the Store handed to a unit of work.
	inTx bool
	now  func() time.Time
}

// New creates a new Store on an open connection.
func New(db *gorm.DB) *Store {
	return &Store{db: db, now: time.Now}
}

// Make sure we conform to the interface
var _ storage.Repository = (*Store)(nil)

// Open connects to dsn and applies the pool settings.
func Open(dsn string, pool PoolConfig) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if pool == (PoolConfig{}) {
		pool = DefaultPoolConfig
	}
	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database handle: %w", err)
	}
	sqlDB.SetMaxIdleConns(pool.MaxIdleConns)
	sqlDB.SetMaxOpenConns(pool.MaxOpenConns)
	sqlDB.SetConnMaxLifetime(pool.ConnMaxLifetime)
	sqlDB.SetConnMaxIdleTime(pool.ConnMaxIdleTime)

	return db, nil
}

// Migrate creates or updates the users, wallets, transactions and transaction_stats tables.
func (s *Store) Migrate(ctx context.Context) error {
	if err := s.db.WithContext(ctx).AutoMigrate(
		&models.User{},
		&models.Wallet{},
		&models.Transaction{},
		&models.CommissionStats{},
	); err != nil {
		return fmt.Errorf("failed to migrate schema: %w", err)
	}
	return nil
}

// WithinTransaction runs fn inside db.Transaction. A nested call joins the
// outer transaction through a savepoint.
func (s *Store) WithinTransaction(ctx context.Context, fn func(ctx context.Context, repo storage.Repository) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(ctx, &Store{db: tx, inTx: true, now: s.now})
	})
}

func (s *Store) AddUser(ctx context.Context, user models.User) (*models.User, error) {
	if err := s.db.WithContext(ctx).Create(&user).Error; err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}
	return &user, nil
}

func isNotFound(err error) bool {
	return errors.Is(err, gorm.ErrRecordNotFound)
}
