package users_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/chris/btc-wallet-ledger/pkg/api"
	"github.com/chris/btc-wallet-ledger/pkg/handlers/mocks"
	"github.com/chris/btc-wallet-ledger/pkg/handlers/users"
	"github.com/chris/btc-wallet-ledger/pkg/result"
	usersvc "github.com/chris/btc-wallet-ledger/pkg/users"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestRegisterUser(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		svc := mocks.NewUserService(t)
		svc.On("AddUser", mock.Anything, "dato").Return(usersvc.Output{
			Name: "dato", APIKey: "key-1", CreatedAt: time.Now(), ResultCode: result.Success,
		})
		h := users.NewUsersHandler(svc)

		body, _ := json.Marshal(api.NewUser{Name: "dato"})
		req := httptest.NewRequest(http.MethodPost, "/users", bytes.NewReader(body))
		rr := httptest.NewRecorder()

		h.RegisterUser(rr, req)

		assert.Equal(t, http.StatusCreated, rr.Code)
		var got api.User
		require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &got))
		assert.Equal(t, "key-1", got.ApiKey)
		assert.Equal(t, 0, got.ResultCode)
		assert.Equal(t, "Success", got.Message)
	})

	t.Run("Blank Name", func(t *testing.T) {
		svc := mocks.NewUserService(t)
		h := users.NewUsersHandler(svc)

		req := httptest.NewRequest(http.MethodPost, "/users", bytes.NewReader([]byte(`{"name":"  "}`)))
		rr := httptest.NewRecorder()

		h.RegisterUser(rr, req)

		assert.Equal(t, http.StatusBadRequest, rr.Code)
		svc.AssertNotCalled(t, "AddUser", mock.Anything, mock.Anything)
	})

	t.Run("Invalid Body", func(t *testing.T) {
		h := users.NewUsersHandler(mocks.NewUserService(t))

		req := httptest.NewRequest(http.MethodPost, "/users", bytes.NewReader([]byte(`{`)))
		rr := httptest.NewRecorder()

		h.RegisterUser(rr, req)

		assert.Equal(t, http.StatusBadRequest, rr.Code)
		assert.Contains(t, rr.Body.String(), "Invalid request body")
	})

	t.Run("Store Failure", func(t *testing.T) {
		svc := mocks.NewUserService(t)
		svc.On("AddUser", mock.Anything, "dato").Return(usersvc.Output{ResultCode: result.GeneralError})
		h := users.NewUsersHandler(svc)

		req := httptest.NewRequest(http.MethodPost, "/users", bytes.NewReader([]byte(`{"name":"dato"}`)))
		rr := httptest.NewRecorder()

		h.RegisterUser(rr, req)

		assert.Equal(t, http.StatusInternalServerError, rr.Code)
		assert.Contains(t, rr.Body.String(), `"result_code":-999`)
		assert.NotContains(t, rr.Body.String(), "api_key")
	})
}
