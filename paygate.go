// Package paygate issues cryptocurrency-denominated orders and verifies
// their on-chain payment. It prices a USD order into a locked crypto
// amount at the live exchange rate, and later confirms that a claimed
// transaction paid that amount to the expected address, with coin-
// specific confirmation and tolerance rules.
package paygate

import (
	"context"
	"net/http"

	"github.com/yashkaddu/paygate/config"
	"github.com/yashkaddu/paygate/explorers"
	"github.com/yashkaddu/paygate/logger"
	"github.com/yashkaddu/paygate/metrics"
	"github.com/yashkaddu/paygate/notify"
	"github.com/yashkaddu/paygate/oracle"
	"github.com/yashkaddu/paygate/pricing"
	"github.com/yashkaddu/paygate/types"
	"github.com/yashkaddu/paygate/verification"
)

// PayGate wires the order pricer and the payment verifier over a shared
// coin configuration. Both operations are stateless request handlers;
// a PayGate is safe for unlimited concurrent use.
type PayGate struct {
	cfg config.Config

	log      logger.Logger
	metrics  metrics.Recorder
	oracle   oracle.RateOracle
	notifier notify.Notifier
	client   *http.Client

	pricer   *pricing.Service
	verifier *verification.Service
}

// New builds a PayGate from validated configuration. Options override
// the default oracle, notifier, logger, metrics and HTTP client.
func New(cfg config.Config, opts ...Option) (*PayGate, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	p := &PayGate{
		cfg:     cfg,
		log:     logger.NoopLogger{},
		metrics: metrics.NoopRecorder{},
	}
	for _, opt := range opts {
		opt(p)
	}

	if p.client == nil {
		p.client = &http.Client{Timeout: cfg.RequestTimeout}
	}
	if p.oracle == nil {
		p.oracle = oracle.NewCoinGecko(cfg.CoinGeckoURL, p.client)
	}
	if p.notifier == nil {
		if cfg.DiscordWebhookURL != "" {
			p.notifier = notify.NewDiscordWebhook(cfg.DiscordWebhookURL, p.client)
		} else {
			p.notifier = notify.Noop{}
		}
	}

	registry := explorers.NewRegistry(explorers.Endpoints{
		Blockstream: cfg.BlockstreamURL,
		SoChain:     cfg.SoChainURL,
		Tronscan:    cfg.TronscanURL,
	}, p.client)

	p.pricer = pricing.NewService(pricing.ServiceConfig{
		Oracle:     p.oracle,
		Wallets:    cfg.Wallets,
		LockWindow: cfg.PriceLockWindow,
		Timeout:    cfg.RequestTimeout,
		Logger:     p.log,
		Metrics:    p.metrics,
	})
	p.verifier = verification.NewService(verification.ServiceConfig{
		Explorers: registry,
		Notifier:  p.notifier,
		Timeout:   cfg.RequestTimeout,
		Logger:    p.log,
		Metrics:   p.metrics,
	})

	return p, nil
}

// CreateOrder prices a new order at the live exchange rate.
func (p *PayGate) CreateOrder(ctx context.Context, req *types.OrderRequest) (*types.Order, error) {
	return p.pricer.CreateOrder(ctx, req)
}

// VerifyPayment checks whether txid paid the order and, on acceptance,
// emits a best-effort notification.
func (p *PayGate) VerifyPayment(ctx context.Context, order *types.Order, txid string) (*types.VerificationResult, error) {
	return p.verifier.Verify(ctx, order, txid)
}

// SupportedCoins lists the coins orders can be priced in.
func (p *PayGate) SupportedCoins() []types.Coin {
	return types.Coins()
}

// Config returns the configuration the gateway was built with.
func (p *PayGate) Config() config.Config {
	return p.cfg
}
