package paygate

import (
	"net/http"

	"github.com/yashkaddu/paygate/logger"
	"github.com/yashkaddu/paygate/metrics"
	"github.com/yashkaddu/paygate/notify"
	"github.com/yashkaddu/paygate/oracle"
)

type Option func(*PayGate)

func WithLogger(l logger.Logger) Option {
	return func(p *PayGate) {
		p.log = l
	}
}

func WithMetrics(r metrics.Recorder) Option {
	return func(p *PayGate) {
		p.metrics = r
	}
}

func WithOracle(o oracle.RateOracle) Option {
	return func(p *PayGate) {
		p.oracle = o
	}
}

func WithNotifier(n notify.Notifier) Option {
	return func(p *PayGate) {
		p.notifier = n
	}
}

func WithHTTPClient(c *http.Client) Option {
	return func(p *PayGate) {
		p.client = c
	}
}
