package api

import "github.com/yashkaddu/paygate/types"

type createOrderResponse struct {
	Success bool         `json:"success"`
	Order   *types.Order `json:"order"`
}

type verifyPaymentRequest struct {
	Order *types.Order `json:"order"`
	TxID  string       `json:"txid"`
}

type verifyPaymentResponse struct {
	Success  bool                      `json:"success"`
	Redirect string                    `json:"redirect,omitempty"`
	Result   *types.VerificationResult `json:"result"`
}

type errorResponse struct {
	Error  string `json:"error"`
	Reason string `json:"reason,omitempty"`
}
