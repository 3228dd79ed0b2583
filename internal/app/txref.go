package app

import (
	"encoding/hex"
	"strings"

	"github.com/google/uuid"
)

const txRefPrefix = "TXN-"

// NewTransactionRef returns TXN- followed by 12 upper-case hex characters
// taken from a random UUID. References are not checked for collisions here.
func NewTransactionRef() string {
	id := uuid.New()
	return txRefPrefix + strings.ToUpper(hex.EncodeToString(id[:6]))
}
