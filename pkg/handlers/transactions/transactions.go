package transactions

import (
	"context"
	"net/http"

	"github.com/chris/btc-wallet-ledger/pkg/api"
	"github.com/chris/btc-wallet-ledger/pkg/handlers/respond"
	"github.com/chris/btc-wallet-ledger/pkg/mapping"
	txsvc "github.com/chris/btc-wallet-ledger/pkg/transactions"
)

// TransactionService transfers BTC and reports on transfers.
type TransactionService interface {
	AddTransaction(ctx context.Context, in txsvc.Input) txsvc.Output
	FetchUserTransactions(ctx context.Context, apiKey string) txsvc.TransactionsOutput
	FetchStatistics(ctx context.Context, adminAPIKey string) txsvc.StatisticsOutput
}

// TransactionsHandler holds the dependencies for transaction-related handlers.
type TransactionsHandler struct {
	Service TransactionService
}

// NewTransactionsHandler creates a new TransactionsHandler.
func NewTransactionsHandler(svc TransactionService) *TransactionsHandler {
	return &TransactionsHandler{Service: svc}
}

// CreateTransaction handles POST /transactions.
func (h *TransactionsHandler) CreateTransaction(w http.ResponseWriter, r *http.Request) {
	var newTx api.NewTransaction
	if !respond.Decode(w, r, &newTx) {
		return
	}
	if newTx.ApiKey == "" {
		http.Error(w, "api_key is required", http.StatusBadRequest)
		return
	}
	if newTx.AmountBtc <= 0 {
		http.Error(w, "amount_btc must be greater than zero", http.StatusBadRequest)
		return
	}

	out := h.Service.AddTransaction(r.Context(), mapping.ToDomainTransactionInput(&newTx))
	respond.Outcome(w, out.ResultCode, true, mapping.ToApiTransactionResult(out))
}

// FetchUserTransactions lists the transactions the caller initiated.
func (h *TransactionsHandler) FetchUserTransactions(w http.ResponseWriter, r *http.Request, params api.FetchUserTransactionsParams) {
	out := h.Service.FetchUserTransactions(r.Context(), params.ApiKey)
	respond.Outcome(w, out.ResultCode, false, mapping.ToApiTransactionList(out.Transactions, out.ResultCode))
}

// FetchStatistics returns platform totals to the admin.
func (h *TransactionsHandler) FetchStatistics(w http.ResponseWriter, r *http.Request, params api.FetchStatisticsParams) {
	out := h.Service.FetchStatistics(r.Context(), params.AdminApiKey)
	respond.Outcome(w, out.ResultCode, false, mapping.ToApiStatistics(out))
}
