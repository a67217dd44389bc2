// Package commission computes the platform fee charged on a transfer.
package commission

import (
	"context"
	"fmt"

	"github.com/chris/btc-wallet-ledger/pkg/storage"
	"github.com/shopspring/decimal"
)

const (
	PolicyFlat       = "flat"
	PolicyOwnerAware = "owner_aware"

	DefaultFraction = 0.015
)

// Input describes the transfer a commission is computed for.
type Input struct {
	SrcAPIKey string
	SrcWallet string
	DstWallet string
	BTCAmount float64
}

// Policy defines the interface for commission rules. repo is the repository of
// the enclosing unit of work, so lookups see the same snapshot as the transfer.
type Policy interface {
	Calculate(ctx context.Context, repo storage.WalletReader, in Input) (float64, error)
}

// Flat charges a fixed fraction of every transfer.
type Flat struct {
	Fraction float64
}

// Make sure we conform to the interface
var _ Policy = Flat{}

func (p Flat) Calculate(_ context.Context, _ storage.WalletReader, in Input) (float64, error) {
	return fraction(in.BTCAmount, p.Fraction), nil
}

// OwnerAware charges DomesticFraction when both wallets belong to the same
// owner and Fraction otherwise.
type OwnerAware struct {
	Fraction         float64
	DomesticFraction float64
}

var _ Policy = OwnerAware{}

func (p OwnerAware) Calculate(ctx context.Context, repo storage.WalletReader, in Input) (float64, error) {
	src, err := repo.GetWallet(ctx, in.SrcWallet)
	if err != nil {
		return 0, err
	}
	dst, err := repo.GetWallet(ctx, in.DstWallet)
	if err != nil {
		return 0, err
	}

	if src.OwnerAPIKey == dst.OwnerAPIKey {
		return fraction(in.BTCAmount, p.DomesticFraction), nil
	}
	return fraction(in.BTCAmount, p.Fraction), nil
}

// New builds the policy registered under name.
func New(name string, fraction, domesticFraction float64) (Policy, error) {
	switch name {
	case "", PolicyFlat:
		return Flat{Fraction: fraction}, nil
	case PolicyOwnerAware:
		return OwnerAware{Fraction: fraction, DomesticFraction: domesticFraction}, nil
	default:
		return nil, fmt.Errorf("unknown commission policy %q", name)
	}
}

func fraction(amount, f float64) float64 {
	return decimal.NewFromFloat(amount).Mul(decimal.NewFromFloat(f)).InexactFloat64()
}
