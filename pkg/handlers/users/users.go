package users

import (
	"context"
	"net/http"
	"strings"

	"github.com/chris/btc-wallet-ledger/pkg/api"
	"github.com/chris/btc-wallet-ledger/pkg/handlers/respond"
	"github.com/chris/btc-wallet-ledger/pkg/mapping"
	usersvc "github.com/chris/btc-wallet-ledger/pkg/users"
)

// UserService registers users.
type UserService interface {
	AddUser(ctx context.Context, name string) usersvc.Output
}

// UsersHandler holds the dependencies for user-related handlers.
type UsersHandler struct {
	Service UserService
}

// NewUsersHandler creates a new UsersHandler.
func NewUsersHandler(svc UserService) *UsersHandler {
	return &UsersHandler{Service: svc}
}

// RegisterUser handles POST /users.
func (h *UsersHandler) RegisterUser(w http.ResponseWriter, r *http.Request) {
	var newUser api.NewUser
	if !respond.Decode(w, r, &newUser) {
		return
	}
	if strings.TrimSpace(newUser.Name) == "" {
		http.Error(w, "name is required", http.StatusBadRequest)
		return
	}

	out := h.Service.AddUser(r.Context(), newUser.Name)
	respond.Outcome(w, out.ResultCode, true, mapping.ToApiUser(out))
}
