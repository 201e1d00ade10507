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

const btcTxID = "4a5e1e4baab89f3a32518a88c31bc87f618f76673e2cc77ab2127b7afdeda33b"

func TestBlockstreamConfirmed(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/tx/"+btcTxID, r.URL.Path)
		w.Write([]byte(`{
			"status": {"confirmed": true},
			"vout": [
				{"scriptpubkey_address": "bc1qwallet", "value": 50000000},
				{"scriptpubkey_address": "bc1qchange", "value": 12345},
				{"scriptpubkey_address": "bc1qwallet", "value": 30000000}
			]
		}`))
	}))
	defer ts.Close()

	e := NewBlockstreamExplorer(ts.URL, ts.Client())
	tx, err := e.FetchTransaction(context.Background(), btcTxID)
	require.NoError(t, err)

	assert.Equal(t, 2, tx.Confirmations, "confirmed flag binarizes to the BTC minimum")
	assert.Equal(t, "0.8", tx.AmountTo("bc1qwallet").String())
	assert.Equal(t, "0.00012345", tx.AmountTo("bc1qchange").String())
	assert.True(t, tx.AmountTo("bc1qnothing").IsZero())
}

func TestBlockstreamUnconfirmed(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte(`{"status": {"confirmed": false}, "vout": []}`))
	}))
	defer ts.Close()

	e := NewBlockstreamExplorer(ts.URL, ts.Client())
	tx, err := e.FetchTransaction(context.Background(), btcTxID)
	require.NoError(t, err)
	assert.Zero(t, tx.Confirmations)
}

func TestBlockstreamUpstreamFailures(t *testing.T) {
	t.Run("not found", func(t *testing.T) {
		ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusNotFound)
		}))
		defer ts.Close()

		e := NewBlockstreamExplorer(ts.URL, ts.Client())
		_, err := e.FetchTransaction(context.Background(), btcTxID)
		assert.True(t, types.IsCode(err, types.ErrUpstreamUnavailable))
	})

	t.Run("malformed body", func(t *testing.T) {
		ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.Write([]byte(`not json`))
		}))
		defer ts.Close()

		e := NewBlockstreamExplorer(ts.URL, ts.Client())
		_, err := e.FetchTransaction(context.Background(), btcTxID)
		assert.True(t, types.IsCode(err, types.ErrUpstreamUnavailable))
	})

	t.Run("unreachable", func(t *testing.T) {
		e := NewBlockstreamExplorer("http://127.0.0.1:1", &http.Client{})
		_, err := e.FetchTransaction(context.Background(), btcTxID)
		assert.True(t, types.IsCode(err, types.ErrUpstreamUnavailable))
	})
}
