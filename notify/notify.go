// Package notify delivers order-acceptance notifications. Delivery is
// best-effort: the verifier logs failures and still reports acceptance.
package notify

import (
	"context"

	"github.com/shopspring/decimal"
	"github.com/yashkaddu/paygate/types"
)

// Notifier receives a summary of a verified, accepted payment.
type Notifier interface {
	OrderPaid(ctx context.Context, order *types.Order, txid string, received decimal.Decimal) error
}

type Noop struct{}

func (Noop) OrderPaid(context.Context, *types.Order, string, decimal.Decimal) error {
	return nil
}
