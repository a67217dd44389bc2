package handlers

import (
	"github.com/chris/btc-wallet-ledger/pkg/api"
	"github.com/chris/btc-wallet-ledger/pkg/handlers/transactions"
	"github.com/chris/btc-wallet-ledger/pkg/handlers/users"
	"github.com/chris/btc-wallet-ledger/pkg/handlers/wallets"
)

// ApiHandler implements the server interface by delegating to the
// per-resource handlers.
type ApiHandler struct {
	*users.UsersHandler
	*wallets.WalletsHandler
	*transactions.TransactionsHandler
}

// NewApiHandler creates a new ApiHandler.
func NewApiHandler(userSvc users.UserService, walletSvc wallets.WalletService, txSvc transactions.TransactionService) *ApiHandler {
	return &ApiHandler{
		UsersHandler:        users.NewUsersHandler(userSvc),
		WalletsHandler:      wallets.NewWalletsHandler(walletSvc),
		TransactionsHandler: transactions.NewTransactionsHandler(txSvc),
	}
}

// Make sure we conform to the interface
var _ api.ServerInterface = (*ApiHandler)(nil)
