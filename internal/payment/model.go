package payment

import "encoding/json"

type Method string

const (
	MethodCOD    Method = "cod"
	MethodPayPal Method = "paypal"
)

// ValidMethod reports whether m is a supported payment method.
func ValidMethod(m Method) bool {
	return m == MethodCOD || m == MethodPayPal
}

// IntentItem is the cart line submitted with an intent request.
type IntentItem struct {
	Name     string  `json:"name"`
	Quantity int     `json:"quantity"`
	Price    float64 `json:"price"`
}

// Intent is the processor-side authorized-but-not-captured payment.
type Intent struct {
	ID          string          `json:"id"`
	Status      string          `json:"status"`
	RawResponse json.RawMessage `json:"-"`
}

// CaptureResult is the processor's answer to finalizing an intent.
type CaptureResult struct {
	ID          string          `json:"id"`
	Status      string          `json:"status"`
	RawResponse json.RawMessage `json:"-"`
}
