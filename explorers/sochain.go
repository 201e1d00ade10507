package explorers

import (
	"context"
	"fmt"
	"net/http"

	"github.com/shopspring/decimal"
	"github.com/yashkaddu/paygate/types"
)

// SoChainExplorer looks up LTC and DOGE transactions on sochain.com. The
// two coins share one endpoint shape; only the coin symbol in the path
// differs.
type SoChainExplorer struct {
	coin    types.Coin
	baseURL string
	client  *http.Client
}

var _ Explorer = (*SoChainExplorer)(nil)

func NewSoChainExplorer(coin types.Coin, baseURL string, client *http.Client) *SoChainExplorer {
	return &SoChainExplorer{coin: coin, baseURL: baseURL, client: client}
}

type sochainTx struct {
	Data struct {
		Confirmations int `json:"confirmations"`
		Outputs       []struct {
			Address string `json:"address"`
			Value   string `json:"value"` // whole coins
		} `json:"outputs"`
	} `json:"data"`
}

func (e *SoChainExplorer) FetchTransaction(ctx context.Context, txid string) (*Tx, error) {
	url := fmt.Sprintf("%s/api/v2/get_tx/%s/%s", e.baseURL, e.coin, txid)

	var raw sochainTx
	if err := getJSON(ctx, e.client, url, &raw); err != nil {
		return nil, upstreamError(e.coin, "lookup", err)
	}

	tx := &Tx{TxID: txid, Confirmations: raw.Data.Confirmations}
	for _, out := range raw.Data.Outputs {
		amount, err := decimal.NewFromString(out.Value)
		if err != nil {
			return nil, upstreamError(e.coin, "output parse", err)
		}
		tx.Outputs = append(tx.Outputs, TxOutput{Address: out.Address, Amount: amount})
	}
	return tx, nil
}

func (e *SoChainExplorer) Coin() types.Coin {
	return e.coin
}
