package api

import (
	"errors"
	"net/http"

	"freshcart-be/internal/category"
	"freshcart-be/internal/checkout"
	"freshcart-be/internal/httpx"
	"freshcart-be/internal/logger"
	"freshcart-be/internal/order"
	"freshcart-be/internal/payment"
	"freshcart-be/internal/product"
	"freshcart-be/internal/user"

	"go.uber.org/zap"
)

// respondError maps domain errors onto HTTP statuses. Anything
// unrecognized is a 500 with a generic message.
func respondError(w http.ResponseWriter, r *http.Request, err error) {
	var (
		validationErr *order.ValidationError
		stockErr      *order.InsufficientStockError
		missingErr    *order.ProductNotFoundError
		gatewayErr    *payment.GatewayError
		unrecordedErr *checkout.CaptureUnrecordedError
	)

	switch {
	case errors.As(err, &validationErr):
		httpx.FailFields(w, "validation failed", httpx.FieldError{
			Field:   validationErr.Field,
			Message: validationErr.Message,
		})
	case errors.As(err, &stockErr):
		httpx.Fail(w, http.StatusConflict, stockErr.Error())
	case errors.As(err, &missingErr):
		httpx.Fail(w, http.StatusBadRequest, missingErr.Error())
	case errors.As(err, &unrecordedErr):
		// Money moved but no order exists. Surface the capture id so
		// support can reconcile the payment.
		logger.FromCtx(r.Context()).Error("captured payment has no order",
			zap.String("capture_id", unrecordedErr.CaptureID),
			zap.Error(err),
		)
		httpx.Error(w, http.StatusBadGateway,
			"payment was captured but the order could not be recorded; contact support with capture id "+unrecordedErr.CaptureID)
	case errors.As(err, &gatewayErr):
		httpx.Error(w, http.StatusBadGateway, gatewayErr.Message)

	case errors.Is(err, order.ErrEmptyOrder),
		errors.Is(err, order.ErrInvalidStatus),
		errors.Is(err, payment.ErrEmptyItems),
		errors.Is(err, payment.ErrInvalidAmount),
		errors.Is(err, payment.ErrEmptyIntentID),
		errors.Is(err, product.ErrInvalidCategory),
		errors.Is(err, product.ErrInvalidUnit),
		errors.Is(err, product.ErrInvalidPrice),
		errors.Is(err, product.ErrInvalidStock),
		errors.Is(err, product.ErrInvalidDiscount):
		httpx.Fail(w, http.StatusBadRequest, err.Error())

	case errors.Is(err, order.ErrUnauthorized),
		errors.Is(err, user.ErrInvalidCredentials):
		httpx.Fail(w, http.StatusUnauthorized, err.Error())

	case errors.Is(err, user.ErrAdminUndeletable):
		httpx.Fail(w, http.StatusForbidden, err.Error())

	case errors.Is(err, order.ErrOrderNotFound),
		errors.Is(err, product.ErrProductNotFound),
		errors.Is(err, category.ErrCategoryNotFound),
		errors.Is(err, user.ErrUserNotFound):
		httpx.Fail(w, http.StatusNotFound, err.Error())

	case errors.Is(err, order.ErrOrderFinal),
		errors.Is(err, category.ErrCategoryExists),
		errors.Is(err, category.ErrCategoryInUse),
		errors.Is(err, user.ErrEmailExists):
		httpx.Fail(w, http.StatusConflict, err.Error())

	case errors.Is(err, payment.ErrNoAccessToken):
		httpx.Error(w, http.StatusBadGateway, err.Error())

	default:
		logger.FromCtx(r.Context()).Error("unhandled error", zap.Error(err))
		httpx.Error(w, http.StatusInternalServerError, "internal server error")
	}
}
