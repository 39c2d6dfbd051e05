package payment

import (
	"encoding/json"
	"errors"
	"net/http"

	"roastery-be/internal/httpx"
	"roastery-be/internal/logger"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type Handler struct {
	Svc Service
}

func NewHandler(svc Service) *Handler {
	return &Handler{Svc: svc}
}

func (h *Handler) Register(r chi.Router) {
	r.Post("/create-order", h.createOrder)
	r.Post("/verify-payment", h.verifyPayment)
}

func (h *Handler) createOrder(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Amount float64 `json:"amount"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.WriteError(w, http.StatusBadRequest, "invalid JSON payload")
		return
	}
	if req.Amount <= 0 {
		httpx.WriteError(w, http.StatusBadRequest, "amount must be positive")
		return
	}

	order, err := h.Svc.CreateIntent(r.Context(), req.Amount)
	if err != nil {
		logger.FromCtx(r.Context()).Error("Error creating order", zap.Error(err))
		httpx.WriteError(w, http.StatusInternalServerError, "Error creating order")
		return
	}

	httpx.WriteJSON(w, http.StatusOK, order)
}

func (h *Handler) verifyPayment(w http.ResponseWriter, r *http.Request) {
	var req struct {
		OrderID   string `json:"razorpay_order_id"`
		PaymentID string `json:"razorpay_payment_id"`
		Signature string `json:"razorpay_signature"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.WriteError(w, http.StatusBadRequest, "invalid JSON payload")
		return
	}
	if req.OrderID == "" || req.PaymentID == "" || req.Signature == "" {
		httpx.WriteError(w, http.StatusBadRequest, "razorpay_order_id, razorpay_payment_id and razorpay_signature are required")
		return
	}

	err := h.Svc.Verify(r.Context(), req.OrderID, req.PaymentID, req.Signature)
	if err != nil {
		switch {
		case errors.Is(err, ErrSignatureMismatch):
			httpx.WriteError(w, http.StatusBadRequest, "Invalid signature")
		case errors.Is(err, ErrPaymentNotFound):
			httpx.WriteError(w, http.StatusNotFound, "Payment not found")
		default:
			logger.FromCtx(r.Context()).Error("Error verifying payment", zap.Error(err))
			httpx.WriteError(w, http.StatusInternalServerError, "Error verifying payment")
		}
		return
	}

	httpx.WriteJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"message": "Payment verified successfully",
	})
}
