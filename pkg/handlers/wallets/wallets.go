package wallets

import (
	"context"
	"net/http"

	"github.com/chris/btc-wallet-ledger/pkg/api"
	"github.com/chris/btc-wallet-ledger/pkg/handlers/respond"
	"github.com/chris/btc-wallet-ledger/pkg/mapping"
	walletsvc "github.com/chris/btc-wallet-ledger/pkg/wallets"
)

// WalletService creates and reads wallets.
type WalletService interface {
	AddWallet(ctx context.Context, ownerAPIKey string) walletsvc.AddOutput
	FetchWallet(ctx context.Context, requestingAPIKey, publicKey string) walletsvc.FetchOutput
	FetchWalletTransactions(ctx context.Context, publicKey, requestingAPIKey string) walletsvc.TransactionsOutput
}

// WalletsHandler holds the dependencies for wallet-related handlers.
type WalletsHandler struct {
	Service WalletService
}

// NewWalletsHandler creates a new WalletsHandler.
func NewWalletsHandler(svc WalletService) *WalletsHandler {
	return &WalletsHandler{Service: svc}
}

// CreateWallet handles the logic for creating a new wallet.
func (h *WalletsHandler) CreateWallet(w http.ResponseWriter, r *http.Request) {
	var newWallet api.NewWallet
	if !respond.Decode(w, r, &newWallet) {
		return
	}
	if newWallet.ApiKey == "" {
		http.Error(w, "api_key is required", http.StatusBadRequest)
		return
	}

	out := h.Service.AddWallet(r.Context(), newWallet.ApiKey)
	respond.Outcome(w, out.ResultCode, true, mapping.ToApiCreatedWallet(out))
}

// FetchWallet returns the wallet's BTC and USD balance to its owner.
func (h *WalletsHandler) FetchWallet(w http.ResponseWriter, r *http.Request, address string, params api.FetchWalletParams) {
	out := h.Service.FetchWallet(r.Context(), params.ApiKey, address)
	respond.Outcome(w, out.ResultCode, false, mapping.ToApiWallet(out))
}

// FetchWalletTransactions lists the caller's transactions touching the wallet.
func (h *WalletsHandler) FetchWalletTransactions(w http.ResponseWriter, r *http.Request, address string, params api.FetchWalletTransactionsParams) {
	out := h.Service.FetchWalletTransactions(r.Context(), address, params.ApiKey)
	respond.Outcome(w, out.ResultCode, false, mapping.ToApiTransactionList(out.Transactions, out.ResultCode))
}
