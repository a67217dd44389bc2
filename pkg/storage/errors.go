package storage

import "errors"

// ErrStatsAlreadyApplied is returned when a transaction's statistics have already been recorded.
var ErrStatsAlreadyApplied = errors.New("transaction statistics already applied")

// ErrTransactionNotFound is returned when a transaction id is unknown.
var ErrTransactionNotFound = errors.New("transaction not found")

// ErrConflict is returned when a unit of work lost an optimistic check against
// a concurrent writer. The whole unit may be retried.
var ErrConflict = errors.New("concurrent modification detected")
