// Package keys issues the opaque identifiers used for api keys and wallet addresses.
package keys

import (
	"encoding/hex"

	"github.com/google/uuid"
)

// New returns a random UUIDv4, 122 random bits, as 32 hex characters with no dashes.
func New() string {
	id := uuid.New()
	return hex.EncodeToString(id[:])
}
