package api

import (
	"net/http"
	"strconv"

	"freshcart-be/internal/httpx"
	"freshcart-be/internal/middleware"
	"freshcart-be/internal/order"
	"freshcart-be/internal/payment"

	"github.com/go-chi/chi/v5"
)

type OrderHandler struct {
	orders order.Service
}

func NewOrderHandler(orders order.Service) *OrderHandler {
	return &OrderHandler{orders: orders}
}

type createOrderRequest struct {
	Items           []order.ItemInput     `json:"items"`
	ShippingAddress order.ShippingAddress `json:"shippingAddress"`
	TotalAmount     float64               `json:"totalAmount"`
	PaymentMethod   payment.Method        `json:"paymentMethod"`
	PaymentID       string                `json:"paymentId"`
}

type updateStatusRequest struct {
	Status order.Status `json:"status"`
}

// Create records a cash-on-delivery order for the authenticated user.
func (h *OrderHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req createOrderRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.Fail(w, http.StatusBadRequest, err.Error())
		return
	}

	userID, _ := middleware.UserIDFromContext(r.Context())
	o, err := h.orders.CreateOrder(r.Context(), order.CreateParams{
		UserID:          userID,
		Items:           req.Items,
		ShippingAddress: req.ShippingAddress,
		TotalAmount:     req.TotalAmount,
		PaymentMethod:   req.PaymentMethod,
		PaymentID:       req.PaymentID,
	})
	if err != nil {
		respondError(w, r, err)
		return
	}

	httpx.Success(w, http.StatusCreated, o)
}

// ListMine serves the authenticated user's order history.
func (h *OrderHandler) ListMine(w http.ResponseWriter, r *http.Request) {
	userID, _ := middleware.UserIDFromContext(r.Context())

	orders, err := h.orders.GetUserOrders(r.Context(), userID)
	if err != nil {
		respondError(w, r, err)
		return
	}

	httpx.Success(w, http.StatusOK, orders)
}

// ListAll serves every order with customer details for the back
// office.
func (h *OrderHandler) ListAll(w http.ResponseWriter, r *http.Request) {
	orders, err := h.orders.GetAllOrders(r.Context())
	if err != nil {
		respondError(w, r, err)
		return
	}

	httpx.Success(w, http.StatusOK, orders)
}

// UpdateStatus moves an order along its fulfillment lifecycle.
func (h *OrderHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		httpx.Fail(w, http.StatusBadRequest, "invalid order id")
		return
	}

	var req updateStatusRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.Fail(w, http.StatusBadRequest, err.Error())
		return
	}

	o, err := h.orders.UpdateOrderStatus(r.Context(), id, req.Status)
	if err != nil {
		respondError(w, r, err)
		return
	}

	httpx.Success(w, http.StatusOK, o)
}
