package storage

import (
	"context"

	"github.com/chris/btc-wallet-ledger/pkg/models"
)

// UserStore defines the interface for registering users.
type UserStore interface {
	// AddUser persists a new user and returns the stored record.
	AddUser(ctx context.Context, user models.User) (*models.User, error)
}
