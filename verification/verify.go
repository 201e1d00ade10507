// Package verification confirms that a claimed transaction actually paid
// a previously issued order: it fetches the transaction from the coin's
// explorer, sums the outputs addressed to the order's wallet, and applies
// the per-coin confirmation threshold and the amount tolerance.
//
// The verifier trusts the descriptor the caller resubmits, including its
// crypto amount and wallet address; there is no server-side order store
// to cross-check against. Deployments that cannot trust their callers
// must persist orders at creation and load the trusted copy here.
package verification

import (
	"context"
	"fmt"
	"time"

	"github.com/yashkaddu/paygate/explorers"
	"github.com/yashkaddu/paygate/logger"
	"github.com/yashkaddu/paygate/metrics"
	"github.com/yashkaddu/paygate/notify"
	"github.com/yashkaddu/paygate/types"
)

const defaultTimeout = 15 * time.Second

// ServiceConfig wires the verifier's collaborators. Explorers is
// required; Notifier defaults to a no-op sink.
type ServiceConfig struct {
	Explorers map[types.Coin]explorers.Explorer
	Notifier  notify.Notifier
	Timeout   time.Duration
	Logger    logger.Logger
	Metrics   metrics.Recorder
}

// Service is the payment verifier. Stateless and idempotent per call:
// the decision path has no side effects, only the notification emission
// does, and it never influences the result.
type Service struct {
	explorers map[types.Coin]explorers.Explorer
	notifier  notify.Notifier
	timeout   time.Duration
	log       logger.Logger
	metrics   metrics.Recorder
}

func NewService(cfg ServiceConfig) *Service {
	s := &Service{
		explorers: cfg.Explorers,
		notifier:  cfg.Notifier,
		timeout:   cfg.Timeout,
		log:       cfg.Logger,
		metrics:   cfg.Metrics,
	}
	if s.notifier == nil {
		s.notifier = notify.Noop{}
	}
	if s.timeout <= 0 {
		s.timeout = defaultTimeout
	}
	if s.log == nil {
		s.log = logger.NoopLogger{}
	}
	if s.metrics == nil {
		s.metrics = metrics.NoopRecorder{}
	}
	return s
}

// Verify checks whether txid paid the order. Rejections the caller can
// retry (confirmations still accruing, amount short of tolerance) are
// returned as a non-accepted result; explorer faults are errors.
func (s *Service) Verify(ctx context.Context, order *types.Order, txid string) (*types.VerificationResult, error) {
	if order == nil || txid == "" {
		return nil, &types.Error{Code: types.ErrInvalidInput, Message: "missing order or txid"}
	}
	if order.WalletAddress == "" || !order.CryptoAmount.IsPositive() {
		return nil, &types.Error{Code: types.ErrInvalidInput, Message: "order descriptor is incomplete"}
	}
	if !order.Coin.Supported() {
		return nil, &types.Error{
			Code:    types.ErrUnsupportedCoin,
			Message: fmt.Sprintf("unsupported coin %q", order.Coin),
		}
	}

	explorer, ok := s.explorers[order.Coin]
	if !ok {
		return nil, &types.Error{
			Code:    types.ErrUpstreamUnavailable,
			Message: fmt.Sprintf("no explorer configured for %s", order.Coin),
		}
	}

	start := time.Now()
	fetchCtx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	tx, err := explorer.FetchTransaction(fetchCtx, txid)
	if err != nil {
		s.metrics.IncCounter("verify_fetch_failed", map[string]string{"coin": order.Coin.String()})
		return nil, err
	}
	s.metrics.ObserveLatency("fetch_transaction", time.Since(start), map[string]string{"coin": order.Coin.String()})

	received := tx.AmountTo(order.WalletAddress)

	result := &types.VerificationResult{
		ReceivedAmount: received,
		Confirmations:  tx.Confirmations,
	}

	if tx.Confirmations < order.Coin.MinConfirmations() {
		result.Reason = types.ErrInsufficientConfirmations
		s.metrics.IncCounter("verify_rejected", map[string]string{"coin": order.Coin.String()})
		return result, nil
	}

	required := order.CryptoAmount.Mul(types.AmountTolerance)
	if received.LessThan(required) {
		result.Reason = types.ErrInsufficientAmount
		s.metrics.IncCounter("verify_rejected", map[string]string{"coin": order.Coin.String()})
		return result, nil
	}

	result.Accepted = true

	// Best effort: a failed notification never turns a valid payment
	// into a rejection.
	if err := s.notifier.OrderPaid(ctx, order, txid, received); err != nil {
		s.log.Warn("notification delivery failed", map[string]any{
			"order_id": order.OrderID,
			"txid":     txid,
			"error":    err.Error(),
		})
		s.metrics.IncCounter("notify_failed", map[string]string{"coin": order.Coin.String()})
	}

	s.log.Info("payment accepted", map[string]any{
		"order_id":      order.OrderID,
		"coin":          order.Coin.String(),
		"received":      received.String(),
		"confirmations": tx.Confirmations,
	})
	s.metrics.IncCounter("verify_accepted", map[string]string{"coin": order.Coin.String()})

	return result, nil
}
