package wallets_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/chris/btc-wallet-ledger/pkg/api"
	"github.com/chris/btc-wallet-ledger/pkg/handlers/mocks"
	"github.com/chris/btc-wallet-ledger/pkg/handlers/wallets"
	"github.com/chris/btc-wallet-ledger/pkg/models"
	"github.com/chris/btc-wallet-ledger/pkg/result"
	walletsvc "github.com/chris/btc-wallet-ledger/pkg/wallets"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestCreateWallet(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		svc := mocks.NewWalletService(t)
		svc.On("AddWallet", mock.Anything, "key-1").Return(walletsvc.AddOutput{
			PublicKey: "pk-1", OwnerAPIKey: "key-1", BTCBalance: 1, CreatedAt: time.Now(), ResultCode: result.Success,
		})
		h := wallets.NewWalletsHandler(svc)

		body, _ := json.Marshal(api.NewWallet{ApiKey: "key-1"})
		req := httptest.NewRequest(http.MethodPost, "/wallets", bytes.NewReader(body))
		rr := httptest.NewRecorder()

		h.CreateWallet(rr, req)

		assert.Equal(t, http.StatusCreated, rr.Code)
		var got api.Wallet
		require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &got))
		assert.Equal(t, "pk-1", got.Address)
		assert.Equal(t, 1.0, got.BtcBalance)
	})

	t.Run("Limit Reached", func(t *testing.T) {
		svc := mocks.NewWalletService(t)
		svc.On("AddWallet", mock.Anything, "key-1").Return(walletsvc.AddOutput{ResultCode: result.WalletLimitPerUserReached})
		h := wallets.NewWalletsHandler(svc)

		req := httptest.NewRequest(http.MethodPost, "/wallets", bytes.NewReader([]byte(`{"api_key":"key-1"}`)))
		rr := httptest.NewRecorder()

		h.CreateWallet(rr, req)

		assert.Equal(t, http.StatusConflict, rr.Code)
		assert.Contains(t, rr.Body.String(), "Wallet limit per user reached")
	})

	t.Run("Missing Api Key", func(t *testing.T) {
		svc := mocks.NewWalletService(t)
		h := wallets.NewWalletsHandler(svc)

		req := httptest.NewRequest(http.MethodPost, "/wallets", bytes.NewReader([]byte(`{}`)))
		rr := httptest.NewRecorder()

		h.CreateWallet(rr, req)

		assert.Equal(t, http.StatusBadRequest, rr.Code)
		svc.AssertNotCalled(t, "AddWallet", mock.Anything, mock.Anything)
	})
}

func TestFetchWallet(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		svc := mocks.NewWalletService(t)
		svc.On("FetchWallet", mock.Anything, "key-1", "pk-1").Return(walletsvc.FetchOutput{
			PublicKey: "pk-1", BTCBalance: 0.5, USDBalance: 32000, ResultCode: result.Success,
		})
		h := wallets.NewWalletsHandler(svc)

		req := httptest.NewRequest(http.MethodGet, "/wallets/pk-1?api_key=key-1", nil)
		rr := httptest.NewRecorder()

		h.FetchWallet(rr, req, "pk-1", api.FetchWalletParams{ApiKey: "key-1"})

		assert.Equal(t, http.StatusOK, rr.Code)
		var got api.Wallet
		require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &got))
		require.NotNil(t, got.UsdBalance)
		assert.Equal(t, 32000.0, *got.UsdBalance)
	})

	t.Run("Not Accessible", func(t *testing.T) {
		svc := mocks.NewWalletService(t)
		svc.On("FetchWallet", mock.Anything, "key-2", "pk-1").Return(walletsvc.FetchOutput{ResultCode: result.WalletNotAccessible})
		h := wallets.NewWalletsHandler(svc)

		req := httptest.NewRequest(http.MethodGet, "/wallets/pk-1?api_key=key-2", nil)
		rr := httptest.NewRecorder()

		h.FetchWallet(rr, req, "pk-1", api.FetchWalletParams{ApiKey: "key-2"})

		assert.Equal(t, http.StatusForbidden, rr.Code)
		assert.NotContains(t, rr.Body.String(), "usd_balance")
	})

	t.Run("Not Found", func(t *testing.T) {
		svc := mocks.NewWalletService(t)
		svc.On("FetchWallet", mock.Anything, "key-1", "missing").Return(walletsvc.FetchOutput{ResultCode: result.WalletNotFound})
		h := wallets.NewWalletsHandler(svc)

		req := httptest.NewRequest(http.MethodGet, "/wallets/missing?api_key=key-1", nil)
		rr := httptest.NewRecorder()

		h.FetchWallet(rr, req, "missing", api.FetchWalletParams{ApiKey: "key-1"})

		assert.Equal(t, http.StatusNotFound, rr.Code)
	})
}

func TestFetchWalletTransactions(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		svc := mocks.NewWalletService(t)
		svc.On("FetchWalletTransactions", mock.Anything, "pk-1", "key-1").Return(walletsvc.TransactionsOutput{
			Transactions: []models.Transaction{{ID: "t1", SrcWallet: "pk-1", DstWallet: "pk-2", BTCAmount: 1, Commission: 0.015}},
			ResultCode:   result.Success,
		})
		h := wallets.NewWalletsHandler(svc)

		req := httptest.NewRequest(http.MethodGet, "/wallets/pk-1/transactions?api_key=key-1", nil)
		rr := httptest.NewRecorder()

		h.FetchWalletTransactions(rr, req, "pk-1", api.FetchWalletTransactionsParams{ApiKey: "key-1"})

		assert.Equal(t, http.StatusOK, rr.Code)
		var got api.TransactionList
		require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &got))
		require.Len(t, got.Transactions, 1)
		assert.Equal(t, "pk-2", got.Transactions[0].DestAddress)
	})
}
