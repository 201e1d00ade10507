package explorers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yashkaddu/paygate/types"
)

func TestSoChainFetch(t *testing.T) {
	for _, coin := range []types.Coin{types.CoinLTC, types.CoinDOGE} {
		t.Run(coin.String(), func(t *testing.T) {
			ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				assert.Equal(t, "/api/v2/get_tx/"+coin.String()+"/sometx", r.URL.Path)
				w.Write([]byte(`{
					"status": "success",
					"data": {
						"confirmations": 7,
						"outputs": [
							{"address": "Lwallet", "value": "0.50000000"},
							{"address": "Lchange", "value": "12.1"},
							{"address": "Lwallet", "value": "0.30000000"}
						]
					}
				}`))
			}))
			defer ts.Close()

			e := NewSoChainExplorer(coin, ts.URL, ts.Client())
			tx, err := e.FetchTransaction(context.Background(), "sometx")
			require.NoError(t, err)

			assert.Equal(t, 7, tx.Confirmations)
			assert.Equal(t, "0.8", tx.AmountTo("Lwallet").String())
			assert.Equal(t, coin, e.Coin())
		})
	}
}

func TestSoChainBadValue(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte(`{"data": {"confirmations": 3, "outputs": [{"address": "a", "value": "abc"}]}}`))
	}))
	defer ts.Close()

	e := NewSoChainExplorer(types.CoinLTC, ts.URL, ts.Client())
	_, err := e.FetchTransaction(context.Background(), "sometx")
	assert.True(t, types.IsCode(err, types.ErrUpstreamUnavailable))
}
