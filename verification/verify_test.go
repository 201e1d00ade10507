package verification

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yashkaddu/paygate/explorers"
	"github.com/yashkaddu/paygate/types"
)

const wallet = "wallet-under-test"

type stubExplorer struct {
	coin  types.Coin
	tx    *explorers.Tx
	err   error
	calls int
}

func (s *stubExplorer) FetchTransaction(_ context.Context, _ string) (*explorers.Tx, error) {
	s.calls++
	if s.err != nil {
		return nil, s.err
	}
	return s.tx, nil
}

func (s *stubExplorer) Coin() types.Coin { return s.coin }

type recordingNotifier struct {
	calls int
	txid  string
	err   error
}

func (n *recordingNotifier) OrderPaid(_ context.Context, _ *types.Order, txid string, _ decimal.Decimal) error {
	n.calls++
	n.txid = txid
	return n.err
}

func testOrder(coin types.Coin) *types.Order {
	return &types.Order{
		OrderID:       "RR-DEADBEEF",
		Platform:      "instagram",
		Service:       "followers",
		Quantity:      "1000",
		Coin:          coin,
		UsdPrice:      decimal.NewFromInt(100),
		CryptoAmount:  decimal.NewFromInt(1),
		WalletAddress: wallet,
	}
}

func serviceWith(exp *stubExplorer, n *recordingNotifier) *Service {
	cfg := ServiceConfig{
		Explorers: map[types.Coin]explorers.Explorer{exp.coin: exp},
	}
	if n != nil {
		cfg.Notifier = n
	}
	return NewService(cfg)
}

func paidTx(confirmations int, amount string) *explorers.Tx {
	return &explorers.Tx{
		Confirmations: confirmations,
		Outputs: []explorers.TxOutput{
			{Address: wallet, Amount: decimal.RequireFromString(amount)},
		},
	}
}

func TestVerifyConfirmationThresholds(t *testing.T) {
	for _, coin := range types.Coins() {
		min := coin.MinConfirmations()

		t.Run(coin.String(), func(t *testing.T) {
			exp := &stubExplorer{coin: coin, tx: paidTx(min-1, "1")}
			s := serviceWith(exp, nil)

			result, err := s.Verify(context.Background(), testOrder(coin), "tx1")
			require.NoError(t, err)
			assert.False(t, result.Accepted)
			assert.Equal(t, types.ErrInsufficientConfirmations, result.Reason)
			assert.Equal(t, min-1, result.Confirmations)

			exp.tx = paidTx(min, "1")
			result, err = s.Verify(context.Background(), testOrder(coin), "tx1")
			require.NoError(t, err)
			assert.True(t, result.Accepted)
			assert.Empty(t, result.Reason)
		})
	}
}

func TestVerifyAmountToleranceBoundary(t *testing.T) {
	exp := &stubExplorer{coin: types.CoinTRX, tx: paidTx(1, "0.95")}
	s := serviceWith(exp, nil)

	// Exactly cryptoAmount * 0.95 is sufficient.
	result, err := s.Verify(context.Background(), testOrder(types.CoinTRX), "tx1")
	require.NoError(t, err)
	assert.True(t, result.Accepted)

	// One satoshi-equivalent below the tolerance is not.
	exp.tx = paidTx(1, "0.94999999")
	result, err = s.Verify(context.Background(), testOrder(types.CoinTRX), "tx1")
	require.NoError(t, err)
	assert.False(t, result.Accepted)
	assert.Equal(t, types.ErrInsufficientAmount, result.Reason)
	assert.Equal(t, "0.94999999", result.ReceivedAmount.String())
}

func TestVerifyMultiOutputFiltering(t *testing.T) {
	exp := &stubExplorer{coin: types.CoinBTC, tx: &explorers.Tx{
		Confirmations: 2,
		Outputs: []explorers.TxOutput{
			{Address: wallet, Amount: decimal.RequireFromString("0.5")},
			{Address: "someone-else", Amount: decimal.RequireFromString("10")},
			{Address: wallet, Amount: decimal.RequireFromString("0.3")},
		},
	}}
	s := serviceWith(exp, nil)

	order := testOrder(types.CoinBTC)
	order.CryptoAmount = decimal.RequireFromString("0.8")

	result, err := s.Verify(context.Background(), order, "tx1")
	require.NoError(t, err)
	assert.True(t, result.Accepted)
	assert.Equal(t, "0.8", result.ReceivedAmount.String())
}

func TestVerifyAddressMatchIsCaseSensitive(t *testing.T) {
	exp := &stubExplorer{coin: types.CoinTRX, tx: &explorers.Tx{
		Confirmations: 1,
		Outputs: []explorers.TxOutput{
			{Address: "WALLET-UNDER-TEST", Amount: decimal.NewFromInt(5)},
		},
	}}
	s := serviceWith(exp, nil)

	result, err := s.Verify(context.Background(), testOrder(types.CoinTRX), "tx1")
	require.NoError(t, err)
	assert.False(t, result.Accepted)
	assert.Equal(t, types.ErrInsufficientAmount, result.Reason)
	assert.True(t, result.ReceivedAmount.IsZero())
}

func TestVerifyZeroConfirmationsAlwaysRejected(t *testing.T) {
	// An unconfirmed BTC transaction is binarized to 0 confirmations by
	// the explorer; overpayment does not rescue it.
	exp := &stubExplorer{coin: types.CoinBTC, tx: paidTx(0, "100")}
	s := serviceWith(exp, nil)

	result, err := s.Verify(context.Background(), testOrder(types.CoinBTC), "tx1")
	require.NoError(t, err)
	assert.False(t, result.Accepted)
	assert.Equal(t, types.ErrInsufficientConfirmations, result.Reason)
}

func TestVerifyInputErrors(t *testing.T) {
	exp := &stubExplorer{coin: types.CoinBTC, tx: paidTx(2, "1")}
	s := serviceWith(exp, nil)

	_, err := s.Verify(context.Background(), nil, "tx1")
	assert.True(t, types.IsCode(err, types.ErrInvalidInput))

	_, err = s.Verify(context.Background(), testOrder(types.CoinBTC), "")
	assert.True(t, types.IsCode(err, types.ErrInvalidInput))

	incomplete := testOrder(types.CoinBTC)
	incomplete.WalletAddress = ""
	_, err = s.Verify(context.Background(), incomplete, "tx1")
	assert.True(t, types.IsCode(err, types.ErrInvalidInput))

	_, err = s.Verify(context.Background(), testOrder("ETH"), "tx1")
	assert.True(t, types.IsCode(err, types.ErrUnsupportedCoin))
	assert.Zero(t, exp.calls, "no explorer call for rejected inputs")
}

func TestVerifyExplorerFailure(t *testing.T) {
	exp := &stubExplorer{coin: types.CoinDOGE, err: &types.Error{
		Code:    types.ErrUpstreamUnavailable,
		Message: "explorer down",
	}}
	s := serviceWith(exp, nil)

	_, err := s.Verify(context.Background(), testOrder(types.CoinDOGE), "tx1")
	require.Error(t, err)
	assert.True(t, types.IsCode(err, types.ErrUpstreamUnavailable))
}

func TestVerifyNotification(t *testing.T) {
	n := &recordingNotifier{}
	exp := &stubExplorer{coin: types.CoinLTC, tx: paidTx(2, "1")}
	s := serviceWith(exp, n)

	result, err := s.Verify(context.Background(), testOrder(types.CoinLTC), "tx-abc")
	require.NoError(t, err)
	assert.True(t, result.Accepted)
	assert.Equal(t, 1, n.calls)
	assert.Equal(t, "tx-abc", n.txid)
}

func TestVerifyNotificationFailureIsNonFatal(t *testing.T) {
	n := &recordingNotifier{err: errors.New("webhook unreachable")}
	exp := &stubExplorer{coin: types.CoinLTC, tx: paidTx(2, "1")}
	s := serviceWith(exp, n)

	result, err := s.Verify(context.Background(), testOrder(types.CoinLTC), "tx1")
	require.NoError(t, err)
	assert.True(t, result.Accepted, "a failed notification never rejects a valid payment")
}

func TestVerifyIdempotent(t *testing.T) {
	n := &recordingNotifier{}
	exp := &stubExplorer{coin: types.CoinTRX, tx: paidTx(3, "2.5")}
	s := serviceWith(exp, n)

	order := testOrder(types.CoinTRX)
	first, err := s.Verify(context.Background(), order, "tx1")
	require.NoError(t, err)
	second, err := s.Verify(context.Background(), order, "tx1")
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Equal(t, 2, n.calls, "notification fires per accepted call; dedup is the sink's concern")
}

func TestVerifyNoExplorerConfigured(t *testing.T) {
	s := NewService(ServiceConfig{Explorers: map[types.Coin]explorers.Explorer{}})

	_, err := s.Verify(context.Background(), testOrder(types.CoinBTC), "tx1")
	require.Error(t, err)
	assert.True(t, types.IsCode(err, types.ErrUpstreamUnavailable))
}
