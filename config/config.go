// Package config loads the process-wide, read-only configuration:
// receiving wallet addresses, upstream endpoints, timeouts. Loaded once
// at startup and injected; nothing reads the environment per call.
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"github.com/yashkaddu/paygate/types"
	"github.com/yashkaddu/paygate/utils"
)

type Config struct {
	// Wallets maps each supported coin to its receiving address. Every
	// coin must have one; an order cannot exist without a destination.
	Wallets map[types.Coin]string

	// Upstream endpoints. Defaults point at the public services;
	// overridable for tests.
	BlockstreamURL string
	SoChainURL     string
	TronscanURL    string
	CoinGeckoURL   string

	// DiscordWebhookURL is the notification sink. Optional: empty
	// disables notifications.
	DiscordWebhookURL string

	// RedirectURL is echoed to clients after a successful verification.
	RedirectURL string

	ListenAddr      string
	RequestTimeout  time.Duration
	PriceLockWindow time.Duration
	LogLevel        string
}

func Default() Config {
	return Config{
		Wallets:         map[types.Coin]string{},
		BlockstreamURL:  "https://blockstream.info",
		SoChainURL:      "https://sochain.com",
		TronscanURL:     "https://apilist.tronscan.org",
		CoinGeckoURL:    "https://api.coingecko.com",
		RedirectURL:     "https://yashkaddu.com",
		ListenAddr:      ":8080",
		RequestTimeout:  15 * time.Second,
		PriceLockWindow: types.PriceLockWindow,
		LogLevel:        "info",
	}
}

// Load reads configuration from a .env file (optional) and the
// environment. Priority: ENV > .env > defaults.
func Load(envPath string) (Config, error) {
	cfg := Default()

	if envPath != "" {
		_ = godotenv.Load(envPath)
	} else {
		_ = godotenv.Load()
	}

	for coin, envVar := range walletEnvVars {
		if addr := os.Getenv(envVar); addr != "" {
			cfg.Wallets[coin] = addr
		}
	}

	setString := func(dst *string, key string) {
		if v := os.Getenv(key); v != "" {
			*dst = v
		}
	}
	setString(&cfg.BlockstreamURL, "BLOCKSTREAM_URL")
	setString(&cfg.SoChainURL, "SOCHAIN_URL")
	setString(&cfg.TronscanURL, "TRONSCAN_URL")
	setString(&cfg.CoinGeckoURL, "COINGECKO_URL")
	setString(&cfg.DiscordWebhookURL, "DISCORD_WEBHOOK_URL")
	setString(&cfg.RedirectURL, "REDIRECT_URL")
	setString(&cfg.ListenAddr, "LISTEN_ADDR")
	setString(&cfg.LogLevel, "LOG_LEVEL")

	if v := os.Getenv("REQUEST_TIMEOUT_MS"); v != "" {
		if ms, err := strconv.Atoi(v); err == nil {
			cfg.RequestTimeout = time.Duration(ms) * time.Millisecond
		}
	}
	if v := os.Getenv("PRICE_LOCK_MINUTES"); v != "" {
		if m, err := strconv.Atoi(v); err == nil {
			cfg.PriceLockWindow = time.Duration(m) * time.Minute
		}
	}

	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

var walletEnvVars = map[types.Coin]string{
	types.CoinBTC:  "BTC_ADDRESS",
	types.CoinLTC:  "LTC_ADDRESS",
	types.CoinDOGE: "DOGE_ADDRESS",
	types.CoinTRX:  "TRX_ADDRESS",
}

// Validate checks that every supported coin has a plausible receiving
// address. Called at startup so a misconfigured deployment fails before
// it can issue unpayable orders.
func (c Config) Validate() error {
	for _, coin := range types.Coins() {
		addr := c.Wallets[coin]
		if addr == "" {
			return fmt.Errorf("missing wallet address for %s (set %s)", coin, walletEnvVars[coin])
		}
		if err := utils.ValidateAddress(addr, coin); err != nil {
			return fmt.Errorf("invalid %s wallet address: %w", coin, err)
		}
	}
	if c.RequestTimeout <= 0 {
		return fmt.Errorf("request timeout must be positive")
	}
	return nil
}
