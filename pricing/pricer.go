// Package pricing issues price-locked order descriptors: it converts a
// requested USD value into an exact crypto amount at the live rate and
// binds it to the receiving wallet for the coin.
package pricing

import (
	"context"
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/yashkaddu/paygate/logger"
	"github.com/yashkaddu/paygate/metrics"
	"github.com/yashkaddu/paygate/oracle"
	"github.com/yashkaddu/paygate/types"
)

const defaultTimeout = 15 * time.Second

// ServiceConfig wires the pricer's collaborators. Oracle and Wallets are
// required; everything else has a default.
type ServiceConfig struct {
	Oracle     oracle.RateOracle
	Wallets    map[types.Coin]string
	LockWindow time.Duration
	Timeout    time.Duration
	Logger     logger.Logger
	Metrics    metrics.Recorder
}

// Service is the order pricer. Stateless per call; safe for concurrent
// use.
type Service struct {
	oracle     oracle.RateOracle
	wallets    map[types.Coin]string
	lockWindow time.Duration
	timeout    time.Duration
	log        logger.Logger
	metrics    metrics.Recorder
	validate   *validator.Validate
	now        func() time.Time
}

func NewService(cfg ServiceConfig) *Service {
	s := &Service{
		oracle:     cfg.Oracle,
		wallets:    cfg.Wallets,
		lockWindow: cfg.LockWindow,
		timeout:    cfg.Timeout,
		log:        cfg.Logger,
		metrics:    cfg.Metrics,
		validate:   validator.New(),
		now:        time.Now,
	}
	if s.lockWindow <= 0 {
		s.lockWindow = types.PriceLockWindow
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

// CreateOrder validates the request, fetches the live USD rate for the
// coin, and returns a descriptor whose crypto amount is locked for the
// configured window. The order has no server-side life: the caller holds
// the descriptor and resubmits it at verification time.
func (s *Service) CreateOrder(ctx context.Context, req *types.OrderRequest) (*types.Order, error) {
	start := s.now()

	if req == nil {
		return nil, &types.Error{Code: types.ErrInvalidInput, Message: "missing order data"}
	}
	if err := s.validate.Struct(req); err != nil {
		return nil, &types.Error{
			Code:    types.ErrInvalidInput,
			Message: fmt.Sprintf("missing order data: %v", err),
		}
	}
	if !req.UsdPrice.IsPositive() {
		return nil, &types.Error{Code: types.ErrInvalidInput, Message: "usdPrice must be positive"}
	}

	// Reject unknown coins before spending an oracle call.
	if !req.Coin.Supported() {
		return nil, &types.Error{
			Code:    types.ErrUnsupportedCoin,
			Message: fmt.Sprintf("unsupported coin %q", req.Coin),
		}
	}

	wallet := s.wallets[req.Coin]
	if wallet == "" {
		// Server-side misconfiguration, not a client fault: an order
		// without a destination address cannot exist.
		return nil, &types.Error{
			Code:    types.ErrUpstreamUnavailable,
			Message: fmt.Sprintf("no wallet address configured for %s", req.Coin),
		}
	}

	rateCtx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	rate, err := s.oracle.USDRate(rateCtx, req.Coin)
	if err != nil {
		s.metrics.IncCounter("order_price_fetch_failed", map[string]string{"coin": req.Coin.String()})
		return nil, err
	}
	if !rate.IsPositive() {
		return nil, &types.Error{
			Code:    types.ErrUpstreamUnavailable,
			Message: fmt.Sprintf("oracle returned non-positive rate for %s", req.Coin),
		}
	}

	amount := req.UsdPrice.Div(rate).Round(types.AmountPrecision)

	id, err := newOrderID()
	if err != nil {
		return nil, &types.Error{Code: types.ErrInternalFault, Message: "order id generation failed"}
	}

	order := &types.Order{
		OrderID:       id,
		Platform:      req.Platform,
		Service:       req.Service,
		Quantity:      req.Quantity,
		Coin:          req.Coin,
		UsdPrice:      req.UsdPrice,
		CryptoAmount:  amount,
		WalletAddress: wallet,
		ExpiresAt:     s.now().Add(s.lockWindow),
		ContentLink:   req.ContentLink,
		ProfileLink:   req.ProfileLink,
	}

	s.log.Info("order priced", map[string]any{
		"order_id": order.OrderID,
		"coin":     order.Coin.String(),
		"usd":      order.UsdPrice.String(),
		"amount":   order.CryptoAmount.String(),
	})
	s.metrics.IncCounter("order_created", map[string]string{"coin": req.Coin.String()})
	s.metrics.ObserveLatency("create_order", s.now().Sub(start), map[string]string{"coin": req.Coin.String()})

	return order, nil
}
