package api

import (
	"encoding/json"
	"net/http"

	"github.com/yashkaddu/paygate/types"
	"github.com/yashkaddu/paygate/utils"
)

func (s *Server) handleCreateOrder(w http.ResponseWriter, r *http.Request) {
	var req types.OrderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "Missing order data", Reason: types.ErrInvalidInput})
		return
	}

	order, err := s.gate.CreateOrder(r.Context(), &req)
	if err != nil {
		s.writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, createOrderResponse{Success: true, Order: order})
}

func (s *Server) handleVerifyPayment(w http.ResponseWriter, r *http.Request) {
	var req verifyPaymentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Order == nil || req.TxID == "" {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "Missing order or txid", Reason: types.ErrInvalidInput})
		return
	}

	if req.Order.Coin.Supported() {
		if err := utils.ValidateTxID(req.TxID, req.Order.Coin); err != nil {
			writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error(), Reason: types.ErrInvalidInput})
			return
		}
	}

	result, err := s.gate.VerifyPayment(r.Context(), req.Order, req.TxID)
	if err != nil {
		s.writeError(w, err)
		return
	}

	if !result.Accepted {
		writeJSON(w, http.StatusBadRequest, errorResponse{
			Error:  rejectionMessage(result.Reason),
			Reason: result.Reason,
		})
		return
	}

	writeJSON(w, http.StatusOK, verifyPaymentResponse{
		Success:  true,
		Redirect: s.cfg.RedirectURL,
		Result:   result,
	})
}

func rejectionMessage(reason string) string {
	switch reason {
	case types.ErrInsufficientConfirmations:
		return "Not enough confirmations"
	case types.ErrInsufficientAmount:
		return "Insufficient payment amount"
	default:
		return "Payment rejected"
	}
}

// writeError maps the error taxonomy onto HTTP status codes: client
// faults are 400, everything upstream or internal is 500 with a generic
// message so upstream detail never leaks.
func (s *Server) writeError(w http.ResponseWriter, err error) {
	code := types.ErrorCode(err)
	switch code {
	case types.ErrInvalidInput, types.ErrUnsupportedCoin:
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error(), Reason: code})
	case types.ErrUpstreamUnavailable:
		s.log.Error("upstream failure", map[string]any{"error": err.Error()})
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "Upstream service unavailable", Reason: code})
	default:
		s.log.Error("internal failure", map[string]any{"error": err.Error()})
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "Internal server error", Reason: types.ErrInternalFault})
	}
}
