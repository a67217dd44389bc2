package mapping

import (
	"net/http"

	"github.com/chris/btc-wallet-ledger/pkg/api"
	"github.com/chris/btc-wallet-ledger/pkg/models"
	"github.com/chris/btc-wallet-ledger/pkg/result"
	"github.com/chris/btc-wallet-ledger/pkg/transactions"
	"github.com/chris/btc-wallet-ledger/pkg/users"
	"github.com/chris/btc-wallet-ledger/pkg/wallets"
	"github.com/google/uuid"
)

// HTTPStatus maps an outcome to the status code written with it. created
// selects 201 over 200 for successful create operations.
func HTTPStatus(code result.Code, created bool) int {
	switch code {
	case result.Success:
		if created {
			return http.StatusCreated
		}
		return http.StatusOK
	case result.WalletNotFound, result.UserNotFound:
		return http.StatusNotFound
	case result.WalletNotAccessible, result.RequiresAdminPrivileges:
		return http.StatusForbidden
	case result.WalletLimitPerUserReached:
		return http.StatusConflict
	case result.NotEnoughBalance, result.InvalidTransaction:
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}

// ToApiUser converts the outcome of AddUser to an API User.
func ToApiUser(out users.Output) *api.User {
	u := &api.User{
		ResultCode: out.ResultCode.Int(),
		Message:    out.ResultCode.Message(),
	}
	if out.ResultCode.OK() {
		u.ApiKey = out.APIKey
		u.Name = out.Name
		u.CreatedAt = &out.CreatedAt
	}
	return u
}

// ToApiCreatedWallet converts the outcome of AddWallet to an API Wallet.
func ToApiCreatedWallet(out wallets.AddOutput) *api.Wallet {
	w := &api.Wallet{
		ResultCode: out.ResultCode.Int(),
		Message:    out.ResultCode.Message(),
	}
	if out.ResultCode.OK() {
		w.Address = out.PublicKey
		w.BtcBalance = out.BTCBalance
		w.CreatedAt = &out.CreatedAt
	}
	return w
}

// ToApiWallet converts the outcome of FetchWallet to an API Wallet.
func ToApiWallet(out wallets.FetchOutput) *api.Wallet {
	w := &api.Wallet{
		ResultCode: out.ResultCode.Int(),
		Message:    out.ResultCode.Message(),
	}
	if out.ResultCode.OK() {
		usd := out.USDBalance
		w.Address = out.PublicKey
		w.BtcBalance = out.BTCBalance
		w.UsdBalance = &usd
	}
	return w
}

// ToApiTransaction converts a domain Transaction model to an API Transaction model.
func ToApiTransaction(tx models.Transaction) api.Transaction {
	return api.Transaction{
		Id:            parseID(tx.ID),
		SourceAddress: tx.SrcWallet,
		DestAddress:   tx.DstWallet,
		AmountBtc:     tx.BTCAmount,
		DestAmountBtc: tx.DestBTCAmount(),
		CommissionBtc: tx.Commission,
		Status:        api.TransactionStatus(tx.Status),
		CreatedAt:     tx.CreatedAt,
	}
}

// ToApiTransactionList converts a list outcome. The list is never null in JSON.
func ToApiTransactionList(txs []models.Transaction, code result.Code) *api.TransactionList {
	list := &api.TransactionList{
		Transactions: make([]api.Transaction, 0, len(txs)),
		ResultCode:   code.Int(),
		Message:      code.Message(),
	}
	for _, tx := range txs {
		list.Transactions = append(list.Transactions, ToApiTransaction(tx))
	}
	return list
}

// ToApiTransactionResult converts the outcome of AddTransaction.
func ToApiTransactionResult(out transactions.Output) *api.TransactionResult {
	res := &api.TransactionResult{
		ResultCode: out.ResultCode.Int(),
		Message:    out.ResultCode.Message(),
	}
	if out.ResultCode.OK() {
		res.Transaction = &api.Transaction{
			Id:            parseID(out.ID),
			SourceAddress: out.SrcWallet,
			DestAddress:   out.DstWallet,
			AmountBtc:     out.BTCAmount,
			DestAmountBtc: out.DestBTCAmount,
			CommissionBtc: out.Commission,
			Status:        api.TransactionStatus(out.Status),
			CreatedAt:     out.CreatedAt,
		}
	}
	return res
}

// ToApiStatistics converts the outcome of FetchStatistics.
func ToApiStatistics(out transactions.StatisticsOutput) *api.Statistics {
	return &api.Statistics{
		NumTransactions: out.TransactionsTotalAmount,
		PlatformProfit:  out.CommissionsSumBTC,
		ResultCode:      out.ResultCode.Int(),
		Message:         out.ResultCode.Message(),
	}
}

// ToDomainTransactionInput converts an API NewTransaction to a transfer request.
func ToDomainTransactionInput(newTx *api.NewTransaction) transactions.Input {
	return transactions.Input{
		SrcAPIKey: newTx.ApiKey,
		SrcWallet: newTx.SourceAddress,
		DstWallet: newTx.DestAddress,
		BTCAmount: newTx.AmountBtc,
	}
}

// parseID returns uuid.Nil for ids that are not UUIDs.
func parseID(id string) uuid.UUID {
	parsed, err := uuid.Parse(id)
	if err != nil {
		return uuid.Nil
	}
	return parsed
}
