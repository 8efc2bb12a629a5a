package payment

import "context"

// Gateway bridges the order flow to the external payment processor.
// Implementations are stateless per call and re-authenticate on every
// operation.
type Gateway interface {
	CreateIntent(ctx context.Context, items []IntentItem, totalAmount float64) (*Intent, error)
	CapturePayment(ctx context.Context, intentID string) (*CaptureResult, error)
}
