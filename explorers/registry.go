package explorers

import (
	"net/http"

	"github.com/yashkaddu/paygate/types"
)

// Endpoints carries the base URLs of the public explorers. Overridable
// so tests can point adapters at local fixtures.
type Endpoints struct {
	Blockstream string
	SoChain     string
	Tronscan    string
}

// NewRegistry builds the coin→explorer dispatch table. The verifier
// selects adapters from this table instead of branching per coin.
func NewRegistry(endpoints Endpoints, client *http.Client) map[types.Coin]Explorer {
	return map[types.Coin]Explorer{
		types.CoinBTC:  NewBlockstreamExplorer(endpoints.Blockstream, client),
		types.CoinLTC:  NewSoChainExplorer(types.CoinLTC, endpoints.SoChain, client),
		types.CoinDOGE: NewSoChainExplorer(types.CoinDOGE, endpoints.SoChain, client),
		types.CoinTRX:  NewTronscanExplorer(endpoints.Tronscan, client),
	}
}
