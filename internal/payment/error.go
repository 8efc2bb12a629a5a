package payment

import (
	"errors"
	"fmt"
)

var (
	// ErrNoAccessToken means the processor's token endpoint answered
	// without a usable bearer token.
	ErrNoAccessToken = errors.New("failed to get access token from payment processor")

	ErrEmptyItems    = errors.New("items array is required and must not be empty")
	ErrInvalidAmount = errors.New("total amount must be a positive number")
	ErrEmptyIntentID = errors.New("payment intent id is required")
)

// GatewayError wraps a non-success processor response, keeping enough
// of the payload for the caller to tell a retryable failure from a
// hard one.
type GatewayError struct {
	StatusCode int
	Message    string
	Body       []byte
}

func (e *GatewayError) Error() string {
	return fmt.Sprintf("payment gateway error (status %d): %s", e.StatusCode, e.Message)
}
