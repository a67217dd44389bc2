package users

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/chris/btc-wallet-ledger/pkg/models"
	"github.com/chris/btc-wallet-ledger/pkg/result"
	"github.com/chris/btc-wallet-ledger/pkg/storage/memory"
	"github.com/chris/btc-wallet-ledger/pkg/storage/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func TestAddUser(t *testing.T) {
	fixed := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)

	t.Run("Success", func(t *testing.T) {
		mockRepo := new(mocks.Repository)
		service := NewService(mockRepo, nil)
		service.now = func() time.Time { return fixed }
		service.newKey = func() string { return "0123456789abcdef0123456789abcdef" }

		expected := models.User{APIKey: "0123456789abcdef0123456789abcdef", Name: "dato", CreatedAt: fixed}
		mockRepo.On("AddUser", mock.Anything, expected).Return(&expected, nil)

		out := service.AddUser(context.Background(), "dato")

		assert.Equal(t, result.Success, out.ResultCode)
		assert.Equal(t, "dato", out.Name)
		assert.Equal(t, expected.APIKey, out.APIKey)
		assert.Equal(t, fixed, out.CreatedAt)
		mockRepo.AssertExpectations(t)
	})

	t.Run("Empty Name", func(t *testing.T) {
		mockRepo := new(mocks.Repository)
		service := NewService(mockRepo, nil)

		out := service.AddUser(context.Background(), "  ")

		assert.Equal(t, result.GeneralError, out.ResultCode)
		assert.Empty(t, out.APIKey)
		mockRepo.AssertNotCalled(t, "AddUser", mock.Anything, mock.Anything)
	})

	t.Run("Store Fails", func(t *testing.T) {
		mockRepo := new(mocks.Repository)
		service := NewService(mockRepo, nil)

		mockRepo.On("AddUser", mock.Anything, mock.Anything).Return(nil, errors.New("db down"))

		out := service.AddUser(context.Background(), "dato")

		assert.Equal(t, result.GeneralError, out.ResultCode)
		assert.Empty(t, out.APIKey)
	})

	t.Run("Distinct Keys", func(t *testing.T) {
		service := NewService(memory.New(), nil)

		first := service.AddUser(context.Background(), "dato")
		second := service.AddUser(context.Background(), "dato")

		assert.Equal(t, result.Success, first.ResultCode)
		assert.Equal(t, result.Success, second.ResultCode)
		assert.Len(t, first.APIKey, 32)
		assert.NotEqual(t, first.APIKey, second.APIKey)
	})
}
