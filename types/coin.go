package types

// Coin represents supported cryptocurrencies
type Coin string

const (
	CoinBTC  Coin = "BTC"
	CoinLTC  Coin = "LTC"
	CoinDOGE Coin = "DOGE"
	CoinTRX  Coin = "TRX"
)

// Coins returns every supported coin in a stable order.
func Coins() []Coin {
	return []Coin{CoinBTC, CoinLTC, CoinDOGE, CoinTRX}
}

// Supported reports whether the coin is part of the closed enumeration.
func (c Coin) Supported() bool {
	switch c {
	case CoinBTC, CoinLTC, CoinDOGE, CoinTRX:
		return true
	default:
		return false
	}
}

// CoingeckoID maps a coin symbol to its CoinGecko asset id.
func (c Coin) CoingeckoID() string {
	switch c {
	case CoinBTC:
		return "bitcoin"
	case CoinLTC:
		return "litecoin"
	case CoinDOGE:
		return "dogecoin"
	case CoinTRX:
		return "tron"
	default:
		return ""
	}
}

// MinConfirmations returns the confirmation threshold a payment in this
// coin must reach before it is accepted. Thresholds differ per coin
// because block time and reorg risk differ per chain.
func (c Coin) MinConfirmations() int {
	return MinConfirmations[c]
}

func (c Coin) String() string {
	return string(c)
}
