package explorers

import (
	"context"
	"net/http"
	"net/url"

	"github.com/shopspring/decimal"
	"github.com/yashkaddu/paygate/types"
)

// sunExponent scales Tronscan amounts (sun) to whole coins:
// 1 TRX = 1e6 sun.
const sunExponent = 6

// TronscanExplorer looks up TRX transactions on tronscan.org. Tron has
// no multi-output model: a transfer carries one destination address and
// one amount.
type TronscanExplorer struct {
	baseURL string
	client  *http.Client
}

var _ Explorer = (*TronscanExplorer)(nil)

func NewTronscanExplorer(baseURL string, client *http.Client) *TronscanExplorer {
	return &TronscanExplorer{baseURL: baseURL, client: client}
}

type tronscanTx struct {
	// Absent on transactions not yet in a block; the zero value is the
	// correct default.
	Confirmations int    `json:"confirmations"`
	ToAddress     string `json:"toAddress"`
	ContractData  struct {
		Amount int64 `json:"amount"` // sun
	} `json:"contractData"`
}

func (e *TronscanExplorer) FetchTransaction(ctx context.Context, txid string) (*Tx, error) {
	lookup := e.baseURL + "/api/transaction-info?hash=" + url.QueryEscape(txid)

	var raw tronscanTx
	if err := getJSON(ctx, e.client, lookup, &raw); err != nil {
		return nil, upstreamError(types.CoinTRX, "lookup", err)
	}

	tx := &Tx{TxID: txid, Confirmations: raw.Confirmations}
	if raw.ToAddress != "" {
		tx.Outputs = []TxOutput{{
			Address: raw.ToAddress,
			Amount:  decimal.New(raw.ContractData.Amount, -sunExponent),
		}}
	}
	return tx, nil
}

func (e *TronscanExplorer) Coin() types.Coin {
	return types.CoinTRX
}
