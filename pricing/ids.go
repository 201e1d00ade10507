package pricing

import (
	"crypto/rand"
	"encoding/hex"
	"strings"

	"github.com/yashkaddu/paygate/types"
)

// newOrderID mints an id of the form RR-XXXXXXXX: four bytes from a
// cryptographic source, hex-encoded and uppercased.
func newOrderID() (string, error) {
	var b [4]byte
	if _, err := rand.Read(b[:]); err != nil {
		return "", err
	}
	return types.OrderIDPrefix + strings.ToUpper(hex.EncodeToString(b[:])), nil
}
