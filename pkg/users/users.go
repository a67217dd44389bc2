package users

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/chris/btc-wallet-ledger/pkg/keys"
	"github.com/chris/btc-wallet-ledger/pkg/models"
	"github.com/chris/btc-wallet-ledger/pkg/result"
	"github.com/chris/btc-wallet-ledger/pkg/storage"
)

// Output is returned by AddUser.
type Output struct {
	Name       string
	APIKey     string
	CreatedAt  time.Time
	ResultCode result.Code
}

// Service registers users.
type Service struct {
	Store  storage.UserStore
	Logger *slog.Logger

	now    func() time.Time
	newKey func() string
}

// NewService creates a new user Service.
func NewService(store storage.UserStore, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{
		Store:  store,
		Logger: logger,
		now:    time.Now,
		newKey: keys.New,
	}
}

// AddUser registers a user under a freshly generated api key.
func (s *Service) AddUser(ctx context.Context, name string) Output {
	if strings.TrimSpace(name) == "" {
		return Output{ResultCode: result.GeneralError}
	}

	user, err := s.Store.AddUser(ctx, models.User{
		APIKey:    s.newKey(),
		Name:      name,
		CreatedAt: s.now().UTC(),
	})
	if err != nil {
		s.Logger.Error("failed to add user", "name", name, "error", err)
		return Output{Name: name, ResultCode: result.GeneralError}
	}

	return Output{
		Name:       user.Name,
		APIKey:     user.APIKey,
		CreatedAt:  user.CreatedAt,
		ResultCode: result.Success,
	}
}
