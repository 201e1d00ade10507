package explorers

import (
	"context"
	"net/http"

	"github.com/shopspring/decimal"
	"github.com/yashkaddu/paygate/types"
)

// btcConfirmedCount is the confirmation count assigned to a confirmed
// BTC transaction. Blockstream's tx endpoint exposes only a confirmed
// flag, not an exact count; the flag is binarized so that a confirmed
// transaction always meets the BTC threshold and an unconfirmed one
// never does.
const btcConfirmedCount = 2

// satoshiExponent scales Blockstream output values (satoshis) to whole
// coins: 1 BTC = 1e8 satoshis.
const satoshiExponent = 8

// BlockstreamExplorer looks up BTC transactions on blockstream.info.
type BlockstreamExplorer struct {
	baseURL string
	client  *http.Client
}

var _ Explorer = (*BlockstreamExplorer)(nil)

func NewBlockstreamExplorer(baseURL string, client *http.Client) *BlockstreamExplorer {
	return &BlockstreamExplorer{baseURL: baseURL, client: client}
}

type blockstreamTx struct {
	Status struct {
		Confirmed bool `json:"confirmed"`
	} `json:"status"`
	Vout []struct {
		ScriptpubkeyAddress string `json:"scriptpubkey_address"`
		Value               int64  `json:"value"` // satoshis
	} `json:"vout"`
}

func (e *BlockstreamExplorer) FetchTransaction(ctx context.Context, txid string) (*Tx, error) {
	var raw blockstreamTx
	if err := getJSON(ctx, e.client, e.baseURL+"/api/tx/"+txid, &raw); err != nil {
		return nil, upstreamError(types.CoinBTC, "lookup", err)
	}

	tx := &Tx{TxID: txid}
	if raw.Status.Confirmed {
		tx.Confirmations = btcConfirmedCount
	}

	for _, v := range raw.Vout {
		tx.Outputs = append(tx.Outputs, TxOutput{
			Address: v.ScriptpubkeyAddress,
			Amount:  decimal.New(v.Value, -satoshiExponent),
		})
	}
	return tx, nil
}

func (e *BlockstreamExplorer) Coin() types.Coin {
	return types.CoinBTC
}
