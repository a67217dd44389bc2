package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestTransaction_DestBTCAmount(t *testing.T) {
	tx := Transaction{BTCAmount: 1.0, Commission: 0.015}
	assert.Equal(t, 0.985, tx.DestBTCAmount())

	tx = Transaction{BTCAmount: 0.3, Commission: 0}
	assert.Equal(t, 0.3, tx.DestBTCAmount())
}

func TestStatPeriodOf(t *testing.T) {
	loc := time.FixedZone("UTC+5", 5*60*60)
	ts := time.Date(2024, 3, 2, 1, 30, 0, 0, loc)

	assert.Equal(t, "2024-03-01", StatPeriodOf(ts))
}
