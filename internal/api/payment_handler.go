package api

import (
	"net/http"

	"freshcart-be/internal/checkout"
	"freshcart-be/internal/httpx"
	"freshcart-be/internal/middleware"
	"freshcart-be/internal/order"
	"freshcart-be/internal/payment"
)

type PaymentHandler struct {
	gateway  payment.Gateway
	checkout checkout.Service
}

func NewPaymentHandler(gateway payment.Gateway, checkoutSvc checkout.Service) *PaymentHandler {
	return &PaymentHandler{gateway: gateway, checkout: checkoutSvc}
}

type createIntentRequest struct {
	Items       []payment.IntentItem `json:"items"`
	TotalAmount float64              `json:"totalAmount"`
}

type captureRequest struct {
	OrderID string `json:"orderID"`
}

type completeCheckoutRequest struct {
	OrderID         string                `json:"orderID"`
	Items           []order.ItemInput     `json:"items"`
	ShippingAddress order.ShippingAddress `json:"shippingAddress"`
	TotalAmount     float64               `json:"totalAmount"`
}

// CreateIntent asks the processor to authorize the cart total.
func (h *PaymentHandler) CreateIntent(w http.ResponseWriter, r *http.Request) {
	var req createIntentRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.Fail(w, http.StatusBadRequest, err.Error())
		return
	}

	intent, err := h.gateway.CreateIntent(r.Context(), req.Items, req.TotalAmount)
	if err != nil {
		respondError(w, r, err)
		return
	}

	httpx.Success(w, http.StatusCreated, intent)
}

// Capture finalizes a previously approved payment intent without
// touching orders. Kept for clients that record the order themselves.
func (h *PaymentHandler) Capture(w http.ResponseWriter, r *http.Request) {
	var req captureRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.Fail(w, http.StatusBadRequest, err.Error())
		return
	}

	result, err := h.gateway.CapturePayment(r.Context(), req.OrderID)
	if err != nil {
		respondError(w, r, err)
		return
	}

	httpx.Success(w, http.StatusOK, result)
}

// CompleteCheckout captures the approved payment and records the order
// in one request.
func (h *PaymentHandler) CompleteCheckout(w http.ResponseWriter, r *http.Request) {
	var req completeCheckoutRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.Fail(w, http.StatusBadRequest, err.Error())
		return
	}

	userID, _ := middleware.UserIDFromContext(r.Context())
	o, err := h.checkout.Complete(r.Context(), req.OrderID, order.CreateParams{
		UserID:          userID,
		Items:           req.Items,
		ShippingAddress: req.ShippingAddress,
		TotalAmount:     req.TotalAmount,
	})
	if err != nil {
		respondError(w, r, err)
		return
	}

	httpx.Success(w, http.StatusCreated, o)
}
