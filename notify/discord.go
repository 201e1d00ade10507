package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/shopspring/decimal"
	"github.com/yashkaddu/paygate/types"
)

// DiscordWebhook posts the acceptance summary as a single text payload
// to a Discord webhook URL.
type DiscordWebhook struct {
	url    string
	client *http.Client
}

var _ Notifier = (*DiscordWebhook)(nil)

func NewDiscordWebhook(url string, client *http.Client) *DiscordWebhook {
	return &DiscordWebhook{url: url, client: client}
}

type discordMessage struct {
	Content string `json:"content"`
}

func (d *DiscordWebhook) OrderPaid(ctx context.Context, order *types.Order, txid string, received decimal.Decimal) error {
	body, err := json.Marshal(discordMessage{Content: paidOrderMessage(order, txid, received)})
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, d.url, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := d.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		return fmt.Errorf("discord webhook returned status %d", resp.StatusCode)
	}
	return nil
}

func paidOrderMessage(order *types.Order, txid string, received decimal.Decimal) string {
	return fmt.Sprintf(`🟢 **NEW PAID ORDER (CRYPTO)**

🆔 Order ID: %s
📱 Platform: %s
⚙️ Service: %s
🔢 Quantity: %s

💰 Payment:
• Coin: %s
• Amount: %s
• USD Value: $%s

🔗 Content Link:
%s

👤 Profile Link:
%s

🧾 TXID:
%s`,
		order.OrderID,
		order.Platform,
		order.Service,
		order.Quantity,
		order.Coin,
		received.StringFixed(types.AmountPrecision),
		order.UsdPrice.String(),
		orDefault(order.ContentLink),
		orDefault(order.ProfileLink),
		txid,
	)
}

func orDefault(s string) string {
	if s == "" {
		return "N/A"
	}
	return s
}
