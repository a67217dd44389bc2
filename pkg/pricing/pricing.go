// Package pricing supplies the BTC/USD exchange rate used to value wallets.
package pricing

import (
	"context"
	"errors"
)

// ErrInvalidPrice is returned when the upstream ticker does not carry a usable price.
var ErrInvalidPrice = errors.New("invalid BTC price")

// Source defines the interface for a BTC/USD price provider.
type Source interface {
	// BTCUSDPrice returns the current price of one BTC in USD.
	BTCUSDPrice(ctx context.Context) (float64, error)
}
