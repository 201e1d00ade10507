// Package explorers fetches transactions from public block explorers and
// normalizes their schemas into a single shape the verifier consumes.
// One adapter per coin family; adding a coin means adding an adapter and
// a registry entry, nothing else changes.
package explorers

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/shopspring/decimal"
	"github.com/yashkaddu/paygate/types"
)

// TxOutput is one output of a normalized transaction. Amount is in whole
// coins, already divided by the chain's base unit.
type TxOutput struct {
	Address string
	Amount  decimal.Decimal
}

// Tx is the normalized transaction shape shared by all adapters.
type Tx struct {
	TxID          string
	Confirmations int
	Outputs       []TxOutput
}

// AmountTo sums every output paying the given address. The comparison is
// case-sensitive: addresses on all supported chains are case-significant.
func (t *Tx) AmountTo(address string) decimal.Decimal {
	total := decimal.Zero
	for _, out := range t.Outputs {
		if out.Address == address {
			total = total.Add(out.Amount)
		}
	}
	return total
}

// Explorer is the per-coin transaction lookup capability.
type Explorer interface {
	// FetchTransaction looks up a transaction by id. Any fetch or parse
	// failure is reported as a single UPSTREAM_UNAVAILABLE error; no
	// partial result is returned.
	FetchTransaction(ctx context.Context, txid string) (*Tx, error)
	Coin() types.Coin
}

// upstreamError collapses network, HTTP and parse failures into the one
// error kind the caller can act on (retry later).
func upstreamError(coin types.Coin, op string, err error) error {
	return &types.Error{
		Code:    types.ErrUpstreamUnavailable,
		Message: fmt.Sprintf("%s explorer %s failed: %v", coin, op, err),
	}
}

func getJSON(ctx context.Context, client *http.Client, url string, v interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")

	resp, err := client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("unexpected status %d", resp.StatusCode)
	}

	return json.NewDecoder(resp.Body).Decode(v)
}
