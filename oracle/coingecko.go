package oracle

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/shopspring/decimal"
	"github.com/yashkaddu/paygate/types"
)

// CoinGecko fetches spot prices from the CoinGecko simple-price API. One
// request per call, no caching: orders are infrequent and the price must
// be current.
type CoinGecko struct {
	baseURL string
	client  *http.Client
}

var _ RateOracle = (*CoinGecko)(nil)

func NewCoinGecko(baseURL string, client *http.Client) *CoinGecko {
	return &CoinGecko{baseURL: baseURL, client: client}
}

func (c *CoinGecko) USDRate(ctx context.Context, coin types.Coin) (decimal.Decimal, error) {
	id := coin.CoingeckoID()
	if id == "" {
		return decimal.Zero, &types.Error{
			Code:    types.ErrUnsupportedCoin,
			Message: fmt.Sprintf("no price feed for coin %q", coin),
		}
	}

	url := fmt.Sprintf("%s/api/v3/simple/price?ids=%s&vs_currencies=usd", c.baseURL, id)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return decimal.Zero, upstreamError(coin, err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return decimal.Zero, upstreamError(coin, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return decimal.Zero, upstreamError(coin, fmt.Errorf("unexpected status %d", resp.StatusCode))
	}

	// {"bitcoin": {"usd": 50000}}
	var prices map[string]map[string]decimal.Decimal
	if err := json.NewDecoder(resp.Body).Decode(&prices); err != nil {
		return decimal.Zero, upstreamError(coin, err)
	}

	rate, ok := prices[id]["usd"]
	if !ok || !rate.IsPositive() {
		return decimal.Zero, upstreamError(coin, fmt.Errorf("response omits usd rate for %s", id))
	}
	return rate, nil
}

func upstreamError(coin types.Coin, err error) error {
	return &types.Error{
		Code:    types.ErrUpstreamUnavailable,
		Message: fmt.Sprintf("price fetch for %s failed: %v", coin, err),
	}
}
