// Package utils provides format-level checks for addresses and
// transaction ids. These are sanity checks on shape, not on-chain
// validity.
package utils

import (
	"fmt"
	"strings"

	"github.com/yashkaddu/paygate/types"
)

// ValidateAddress checks that an address is plausible for the coin.
func ValidateAddress(address string, coin types.Coin) error {
	if address == "" {
		return fmt.Errorf("address cannot be empty")
	}

	switch coin {
	case types.CoinBTC:
		// Legacy (1/3) base58 or bech32 (bc1) formats.
		if !strings.HasPrefix(address, "1") && !strings.HasPrefix(address, "3") && !strings.HasPrefix(address, "bc1") {
			return fmt.Errorf("BTC address has invalid prefix")
		}
		if len(address) < 26 || len(address) > 62 {
			return fmt.Errorf("BTC address has invalid length")
		}

	case types.CoinLTC:
		if !strings.HasPrefix(address, "L") && !strings.HasPrefix(address, "M") && !strings.HasPrefix(address, "ltc1") {
			return fmt.Errorf("LTC address has invalid prefix")
		}
		if len(address) < 26 || len(address) > 62 {
			return fmt.Errorf("LTC address has invalid length")
		}

	case types.CoinDOGE:
		if !strings.HasPrefix(address, "D") {
			return fmt.Errorf("DOGE address must start with D")
		}
		if len(address) != 34 || !isBase58String(address) {
			return fmt.Errorf("DOGE address has invalid format")
		}

	case types.CoinTRX:
		if !strings.HasPrefix(address, "T") {
			return fmt.Errorf("TRX address must start with T")
		}
		if len(address) != 34 || !isBase58String(address) {
			return fmt.Errorf("TRX address has invalid format")
		}

	default:
		return fmt.Errorf("unsupported coin for address validation")
	}

	return nil
}

// ValidateTxID checks that a transaction id is plausible for the coin.
// All supported chains use a 64-character hex hash.
func ValidateTxID(txid string, coin types.Coin) error {
	if txid == "" {
		return fmt.Errorf("transaction id cannot be empty")
	}
	if !coin.Supported() {
		return fmt.Errorf("unsupported coin for txid validation")
	}
	if len(txid) != 64 || !isHexString(txid) {
		return fmt.Errorf("%s transaction id must be 64 hex characters", coin)
	}
	return nil
}

func isHexString(s string) bool {
	for _, c := range s {
		if (c < '0' || c > '9') && (c < 'a' || c > 'f') && (c < 'A' || c > 'F') {
			return false
		}
	}
	return true
}

func isBase58String(s string) bool {
	const base58Chars = "123456789ABCDEFGHJKLMNPQRSTUVWXYZabcdefghijkmnopqrstuvwxyz"
	for _, c := range s {
		if !strings.ContainsRune(base58Chars, c) {
			return false
		}
	}
	return true
}
