package order

import (
	"encoding/hex"
	"strings"

	"github.com/google/uuid"
)

// NewOrderNumber returns a human-readable order number in the form "ORD-"
// followed by 8 uppercase hex characters. Uniqueness is enforced by the
// storage constraint, not here; a 32-bit collision is rare enough that the
// workflow handles it with a single retry.
func NewOrderNumber() string {
	u := uuid.New()
	return "ORD-" + strings.ToUpper(hex.EncodeToString(u[:4]))
}
