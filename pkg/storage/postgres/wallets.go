package postgres

import (
	"context"
	"fmt"

	"github.com/chris/btc-wallet-ledger/pkg/models"
	"github.com/chris/btc-wallet-ledger/pkg/result"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GetWallet retrieves a wallet by its public key.
func (s *Store) GetWallet(ctx context.Context, publicKey string) (*models.Wallet, error) {
	var wallet models.Wallet
	if err := s.db.WithContext(ctx).Where("public_key = ?", publicKey).First(&wallet).Error; err != nil {
		if isNotFound(err) {
			return nil, result.WalletNotFound
		}
		return nil, fmt.Errorf("failed to get wallet: %w", err)
	}
	return &wallet, nil
}

// CountWalletsOfUser counts the owner's wallets. Inside a unit of work the
// owner row is locked first so concurrent limit checks for the same owner
// queue behind each other until commit.
func (s *Store) CountWalletsOfUser(ctx context.Context, ownerAPIKey string) (int, error) {
	db := s.db.WithContext(ctx)

	if s.inTx {
		var owner models.User
		err := db.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("api_key = ?", ownerAPIKey).
			First(&owner).Error
		if err != nil && !isNotFound(err) {
			return 0, fmt.Errorf("failed to lock wallet owner: %w", err)
		}
	}

	var count int64
	if err := db.Model(&models.Wallet{}).Where("owner_api_key = ?", ownerAPIKey).Count(&count).Error; err != nil {
		return 0, fmt.Errorf("failed to count wallets: %w", err)
	}
	return int(count), nil
}

// AddWallet inserts a wallet for a registered owner.
func (s *Store) AddWallet(ctx context.Context, wallet models.Wallet) (*models.Wallet, error) {
	db := s.db.WithContext(ctx)

	var owners int64
	if err := db.Model(&models.User{}).Where("api_key = ?", wallet.OwnerAPIKey).Count(&owners).Error; err != nil {
		return nil, fmt.Errorf("failed to look up wallet owner: %w", err)
	}
	if owners == 0 {
		return nil, result.UserNotFound
	}

	if err := db.Create(&wallet).Error; err != nil {
		return nil, fmt.Errorf("failed to create wallet: %w", err)
	}
	return &wallet, nil
}

// UpdateWalletBalance applies delta in a single guarded UPDATE. When no row
// matches, a follow-up count tells a missing wallet from an overdraft.
func (s *Store) UpdateWalletBalance(ctx context.Context, publicKey string, delta float64) error {
	db := s.db.WithContext(ctx)

	res := db.Model(&models.Wallet{}).
		Where("public_key = ? AND btc_balance + ? >= 0", publicKey, delta).
		UpdateColumn("btc_balance", gorm.Expr("btc_balance + ?", delta))
	if res.Error != nil {
		return fmt.Errorf("failed to update wallet balance: %w", res.Error)
	}
	if res.RowsAffected > 0 {
		return nil
	}

	var count int64
	if err := db.Model(&models.Wallet{}).Where("public_key = ?", publicKey).Count(&count).Error; err != nil {
		return fmt.Errorf("failed to check wallet: %w", err)
	}
	if count == 0 {
		return result.WalletNotAccessible
	}
	return result.NotEnoughBalance
}
