package main

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/chris/btc-wallet-ledger/pkg/bootstrap"
	"github.com/chris/btc-wallet-ledger/pkg/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRouter(t *testing.T) {
	cfg := &config.Config{
		CommissionFraction: 0.015,
		CommissionPolicy:   "flat",
		MaxWalletsPerUser:  3,
		AdminAPIKey:        "admin",
		StorageDriver:      config.DriverMemory,
		StatsMode:          config.StatsModeSync,
	}
	app, err := bootstrap.New(context.Background(), cfg, slog.New(slog.NewTextHandler(io.Discard, nil)))
	require.NoError(t, err)
	t.Cleanup(func() { _ = app.Close() })

	router := newRouter(app)

	t.Run("Register User", func(t *testing.T) {
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, httptest.NewRequest(http.MethodPost, "/users", bytes.NewReader([]byte(`{"name":"dato"}`))))

		assert.Equal(t, http.StatusCreated, rr.Code)
		assert.Contains(t, rr.Body.String(), `"api_key"`)
	})

	t.Run("Statistics Require Admin", func(t *testing.T) {
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/statistics?admin_api_key=nope", nil))

		assert.Equal(t, http.StatusForbidden, rr.Code)
	})

	t.Run("Unknown Route", func(t *testing.T) {
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/ledger", nil))

		assert.Equal(t, http.StatusNotFound, rr.Code)
	})
}
