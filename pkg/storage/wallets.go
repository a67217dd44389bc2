package storage

import (
	"context"

	"github.com/chris/btc-wallet-ledger/pkg/models"
)

// WalletReader defines read access to wallets.
type WalletReader interface {
	// GetWallet retrieves a wallet by its public key.
	// It returns result.WalletNotFound if no such wallet exists.
	GetWallet(ctx context.Context, publicKey string) (*models.Wallet, error)

	// CountWalletsOfUser returns how many wallets the owner holds. Inside a
	// unit of work the count stays valid until the unit commits.
	CountWalletsOfUser(ctx context.Context, ownerAPIKey string) (int, error)
}

// WalletWriter defines the mutations allowed on wallets.
type WalletWriter interface {
	// AddWallet persists a new wallet. It returns result.UserNotFound if the
	// owner is not registered.
	AddWallet(ctx context.Context, wallet models.Wallet) (*models.Wallet, error)

	// UpdateWalletBalance atomically adds delta to the wallet balance.
	// It returns result.WalletNotAccessible for an unknown wallet and
	// result.NotEnoughBalance, leaving the balance untouched, if the new
	// balance would be negative.
	UpdateWalletBalance(ctx context.Context, publicKey string, delta float64) error
}

// WalletStore combines the reader and writer interfaces.
type WalletStore interface {
	WalletReader
	WalletWriter
}
