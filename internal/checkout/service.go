package checkout

import (
	"context"

	"freshcart-be/internal/logger"
	"freshcart-be/internal/order"
	"freshcart-be/internal/payment"

	"go.uber.org/zap"
)

// Service finalizes a prepaid checkout: capture the approved payment
// first, then record the order with its stock decrements.
type Service interface {
	Complete(ctx context.Context, intentID string, params order.CreateParams) (*order.Order, error)
}

type service struct {
	gateway payment.Gateway
	orders  order.Service
}

func NewService(gateway payment.Gateway, orders order.Service) Service {
	return &service{gateway: gateway, orders: orders}
}

// Complete captures the payment intent and then creates the order. The
// capture is the point of no return: if order creation fails after it,
// Complete returns a CaptureUnrecordedError carrying the capture id so
// the payment can be reconciled by hand.
func (s *service) Complete(ctx context.Context, intentID string, params order.CreateParams) (*order.Order, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "Complete"),
		zap.Int64("user_id", params.UserID),
		zap.String("intent_id", intentID),
	)
	log.Info("checkout completion started")

	if intentID == "" {
		return nil, payment.ErrEmptyIntentID
	}

	capture, err := s.gateway.CapturePayment(ctx, intentID)
	if err != nil {
		log.Warn("payment capture failed", zap.Error(err))
		return nil, err
	}

	params.PaymentMethod = payment.MethodPayPal
	params.PaymentID = capture.ID

	o, err := s.orders.CreateOrder(ctx, params)
	if err != nil {
		log.Error("order creation failed after capture",
			zap.String("capture_id", capture.ID),
			zap.Error(err),
		)
		return nil, &CaptureUnrecordedError{CaptureID: capture.ID, Err: err}
	}

	log.Info("checkout completed",
		zap.Int64("order_id", o.ID),
		zap.String("capture_id", capture.ID),
	)
	return o, nil
}
