// Package respond writes JSON bodies for the HTTP handlers.
package respond

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/chris/btc-wallet-ledger/pkg/mapping"
	"github.com/chris/btc-wallet-ledger/pkg/result"
)

// JSON writes body with the given status.
func JSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		http.Error(w, fmt.Sprintf("Failed to write response: %v", err), http.StatusInternalServerError)
	}
}

// Outcome writes body with the status mapped from code.
func Outcome(w http.ResponseWriter, code result.Code, created bool, body any) {
	JSON(w, mapping.HTTPStatus(code, created), body)
}

// Decode reads a JSON request body into dst, answering 400 on failure.
func Decode(w http.ResponseWriter, r *http.Request, dst any) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		http.Error(w, fmt.Sprintf("Invalid request body: %v", err), http.StatusBadRequest)
		return false
	}
	return true
}
