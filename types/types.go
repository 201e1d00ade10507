// Package types holds the shared data model of the paygate pipeline:
// the coin enumeration, order and verification shapes, the error
// taxonomy, and the tuning constants applied during verification.
package types

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"
)

// Tuning constants for pricing and verification. Referenced by name
// everywhere so tests can assert against the same values the pipeline
// applies.
const (
	// AmountPrecision is the number of fractional digits a crypto amount
	// is rounded to at order creation (round half away from zero).
	AmountPrecision = 8

	// PriceLockWindow is how long the USD→crypto conversion fixed at
	// order creation remains valid. Advisory: the verifier does not
	// enforce it.
	PriceLockWindow = 30 * time.Minute

	// OrderIDPrefix prefixes every generated order id.
	OrderIDPrefix = "RR-"
)

// AmountTolerance is the fraction of the expected crypto amount accepted
// as sufficient payment. The 5% slack absorbs rate drift and network
// fees deducted on the payer's side.
var AmountTolerance = decimal.RequireFromString("0.95")

// MinConfirmations holds the per-coin confirmation thresholds.
var MinConfirmations = map[Coin]int{
	CoinBTC:  2,
	CoinLTC:  2,
	CoinDOGE: 5,
	CoinTRX:  1,
}

// OrderRequest is the caller-supplied input to order creation. Platform,
// service and quantity are opaque metadata passed through unchanged.
type OrderRequest struct {
	Platform    string          `json:"platform" validate:"required"`
	Service     string          `json:"service" validate:"required"`
	Quantity    string          `json:"quantity" validate:"required"`
	UsdPrice    decimal.Decimal `json:"usdPrice"`
	Coin        Coin            `json:"coin" validate:"required"`
	ContentLink string          `json:"contentLink,omitempty"`
	ProfileLink string          `json:"profileLink,omitempty"`
}

// Order is the price-locked descriptor issued by the pricer and later
// resubmitted to the verifier.
//
// The crypto amount is computed exactly once, at creation time. The
// verifier never re-prices; underpayment is tolerated only through
// AmountTolerance.
type Order struct {
	OrderID       string          `json:"orderId"`
	Platform      string          `json:"platform"`
	Service       string          `json:"service"`
	Quantity      string          `json:"quantity"`
	Coin          Coin            `json:"coin"`
	UsdPrice      decimal.Decimal `json:"usdPrice"`
	CryptoAmount  decimal.Decimal `json:"cryptoAmount"`
	WalletAddress string          `json:"walletAddress"`
	ExpiresAt     time.Time       `json:"expiresAt"`
	ContentLink   string          `json:"contentLink,omitempty"`
	ProfileLink   string          `json:"profileLink,omitempty"`
}

// VerificationResult is the outcome of one verification call. Rejections
// the caller can retry later (confirmations still accruing, amount
// short) are reported here with a Reason code rather than as errors.
type VerificationResult struct {
	Accepted       bool            `json:"accepted"`
	Reason         string          `json:"reason,omitempty"`
	ReceivedAmount decimal.Decimal `json:"receivedAmount"`
	Confirmations  int             `json:"confirmations"`
}

// Error is the discriminated error carried across component boundaries.
type Error struct {
	Code    string      `json:"code"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

func (e *Error) Error() string {
	return e.Message
}

// Error codes. Stable and independent of coin configuration so
// integrators can branch on cause.
const (
	ErrInvalidInput              = "INVALID_INPUT"
	ErrUnsupportedCoin           = "UNSUPPORTED_COIN"
	ErrUpstreamUnavailable       = "UPSTREAM_UNAVAILABLE"
	ErrInsufficientConfirmations = "INSUFFICIENT_CONFIRMATIONS"
	ErrInsufficientAmount        = "INSUFFICIENT_AMOUNT"
	ErrInternalFault             = "INTERNAL_FAULT"
)

// ErrorCode extracts the code from an error produced by this module, or
// ErrInternalFault for anything else.
func ErrorCode(err error) string {
	var pe *Error
	if errors.As(err, &pe) {
		return pe.Code
	}
	return ErrInternalFault
}

// IsCode reports whether err carries the given error code.
func IsCode(err error, code string) bool {
	return err != nil && ErrorCode(err) == code
}
