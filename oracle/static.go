package oracle

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/yashkaddu/paygate/types"
)

// Static serves fixed rates from memory. For examples and tests.
type Static struct {
	Rates map[types.Coin]decimal.Decimal
}

var _ RateOracle = (*Static)(nil)

func (s *Static) USDRate(_ context.Context, coin types.Coin) (decimal.Decimal, error) {
	rate, ok := s.Rates[coin]
	if !ok {
		return decimal.Zero, &types.Error{
			Code:    types.ErrUpstreamUnavailable,
			Message: fmt.Sprintf("no static rate for %s", coin),
		}
	}
	return rate, nil
}
