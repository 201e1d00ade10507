// Package oracle provides live USD exchange rates for supported coins.
package oracle

import (
	"context"

	"github.com/shopspring/decimal"
	"github.com/yashkaddu/paygate/types"
)

// RateOracle reports the current USD rate of one unit of the coin.
type RateOracle interface {
	USDRate(ctx context.Context, coin types.Coin) (decimal.Decimal, error)
}
