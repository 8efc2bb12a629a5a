package order

import (
	"context"
	"math"
	"regexp"
	"strings"

	"freshcart-be/internal/logger"
	"freshcart-be/internal/payment"

	"go.uber.org/zap"
)

var (
	pincodeRe = regexp.MustCompile(`^[0-9]{6}$`)
	phoneRe   = regexp.MustCompile(`^[0-9]{10}$`)
)

type Service interface {
	CreateOrder(ctx context.Context, params CreateParams) (*Order, error)
	GetUserOrders(ctx context.Context, userID int64) ([]*Order, error)
	GetAllOrders(ctx context.Context) ([]*Order, error)
	UpdateOrderStatus(ctx context.Context, orderID int64, status Status) (*Order, error)
}

type service struct {
	repo Repository
}

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

// CreateOrder validates the cart payload and persists the order with
// its stock decrements atomically. Guest orders are rejected: every
// order belongs to an authenticated user.
func (s *service) CreateOrder(ctx context.Context, params CreateParams) (*Order, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "CreateOrder"),
		zap.Int64("user_id", params.UserID),
		zap.Int("item_count", len(params.Items)),
	)
	log.Info("create order started")

	if params.UserID == 0 {
		return nil, ErrUnauthorized
	}

	if err := validateCreateParams(params); err != nil {
		log.Warn("create order validation failed", zap.Error(err))
		return nil, err
	}

	o, err := s.repo.CreateOrder(ctx, params)
	if err != nil {
		log.Error("failed to create order", zap.Error(err))
		return nil, err
	}

	log.Info("order created",
		zap.Int64("order_id", o.ID),
		zap.Float64("total_amount", o.TotalAmount),
		zap.String("payment_method", string(o.PaymentMethod)),
	)
	return o, nil
}

func (s *service) GetUserOrders(ctx context.Context, userID int64) ([]*Order, error) {
	if userID == 0 {
		return nil, ErrUnauthorized
	}

	orders, err := s.repo.GetOrdersByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	if orders == nil {
		orders = []*Order{}
	}
	return orders, nil
}

func (s *service) GetAllOrders(ctx context.Context) ([]*Order, error) {
	orders, err := s.repo.GetAllOrders(ctx)
	if err != nil {
		return nil, err
	}
	if orders == nil {
		orders = []*Order{}
	}
	return orders, nil
}

// UpdateOrderStatus moves an order along
// pending → processing → shipped → delivered, with cancelled reachable
// from any non-terminal state. Terminal orders never move again.
func (s *service) UpdateOrderStatus(ctx context.Context, orderID int64, status Status) (*Order, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "UpdateOrderStatus"),
		zap.Int64("order_id", orderID),
		zap.String("status", string(status)),
	)

	if !ValidStatus(status) {
		return nil, ErrInvalidStatus
	}

	o, err := s.repo.GetOrderByID(ctx, orderID)
	if err != nil {
		return nil, err
	}

	if o.Status.Terminal() {
		log.Warn("status change refused for terminal order", zap.String("current", string(o.Status)))
		return nil, ErrOrderFinal
	}

	if err := s.repo.UpdateOrderStatus(ctx, orderID, status); err != nil {
		log.Error("failed to update order status", zap.Error(err))
		return nil, err
	}

	o.Status = status
	log.Info("order status updated")
	return o, nil
}

func validateCreateParams(params CreateParams) error {
	if len(params.Items) == 0 {
		return ErrEmptyOrder
	}

	for _, item := range params.Items {
		if item.Quantity < 1 {
			return &ValidationError{Field: "items", Message: "quantity must be at least 1"}
		}
		if item.Price < 0 || math.IsNaN(item.Price) || math.IsInf(item.Price, 0) {
			return &ValidationError{Field: "items", Message: "price must be a positive number"}
		}
		if strings.TrimSpace(item.Name) == "" {
			return &ValidationError{Field: "items", Message: "each item must have a name"}
		}
	}

	addr := params.ShippingAddress
	switch {
	case strings.TrimSpace(addr.FullName) == "":
		return &ValidationError{Field: "shippingAddress.fullName", Message: "full name is required"}
	case strings.TrimSpace(addr.AddressLine1) == "":
		return &ValidationError{Field: "shippingAddress.addressLine1", Message: "address line 1 is required"}
	case strings.TrimSpace(addr.City) == "":
		return &ValidationError{Field: "shippingAddress.city", Message: "city is required"}
	case strings.TrimSpace(addr.State) == "":
		return &ValidationError{Field: "shippingAddress.state", Message: "state is required"}
	case !pincodeRe.MatchString(addr.Pincode):
		return &ValidationError{Field: "shippingAddress.pincode", Message: "invalid pincode"}
	case !phoneRe.MatchString(addr.Phone):
		return &ValidationError{Field: "shippingAddress.phone", Message: "invalid phone number"}
	}

	if params.TotalAmount < 0 || math.IsNaN(params.TotalAmount) || math.IsInf(params.TotalAmount, 0) {
		return &ValidationError{Field: "totalAmount", Message: "total amount must be a positive number"}
	}

	if !payment.ValidMethod(params.PaymentMethod) {
		return &ValidationError{Field: "paymentMethod", Message: "invalid payment method"}
	}

	return nil
}
