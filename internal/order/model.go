package order

import (
	"time"

	"freshcart-be/internal/payment"
)

type Status string

const (
	StatusPending    Status = "pending"
	StatusProcessing Status = "processing"
	StatusShipped    Status = "shipped"
	StatusDelivered  Status = "delivered"
	StatusCancelled  Status = "cancelled"
)

// ValidStatus reports whether s is one of the five recognized values.
func ValidStatus(s Status) bool {
	switch s {
	case StatusPending, StatusProcessing, StatusShipped, StatusDelivered, StatusCancelled:
		return true
	}
	return false
}

// Terminal reports whether an order in this status can still move.
func (s Status) Terminal() bool {
	return s == StatusDelivered || s == StatusCancelled
}

type ShippingAddress struct {
	FullName     string `json:"fullName"`
	AddressLine1 string `json:"addressLine1"`
	AddressLine2 string `json:"addressLine2,omitempty"`
	City         string `json:"city"`
	State        string `json:"state"`
	Pincode      string `json:"pincode"`
	Phone        string `json:"phone"`
}

// Item is a line item snapshot: name, price and image are copied at
// order time so later product edits never alter historical orders.
type Item struct {
	ID        int64   `json:"id"`
	OrderID   int64   `json:"-"`
	ProductID *int64  `json:"product,omitempty"`
	Name      string  `json:"name"`
	Quantity  int     `json:"quantity"`
	Price     float64 `json:"price"`
	Image     string  `json:"image,omitempty"`
}

type Order struct {
	ID              int64           `json:"id"`
	UserID          int64           `json:"user"`
	UserName        string          `json:"userName,omitempty"`
	UserEmail       string          `json:"userEmail,omitempty"`
	Items           []Item          `json:"items"`
	ShippingAddress ShippingAddress `json:"shippingAddress"`
	TotalAmount     float64         `json:"totalAmount"`
	PaymentMethod   payment.Method  `json:"paymentMethod"`
	PaymentID       string          `json:"paymentId,omitempty"`
	Status          Status          `json:"status"`
	CreatedAt       time.Time       `json:"createdAt"`
	UpdatedAt       time.Time       `json:"updatedAt"`
}

// ItemInput is a cart line submitted at checkout.
type ItemInput struct {
	ProductID *int64  `json:"product,omitempty"`
	Name      string  `json:"name"`
	Quantity  int     `json:"quantity"`
	Price     float64 `json:"price"`
	Image     string  `json:"image,omitempty"`
}

type CreateParams struct {
	UserID          int64
	Items           []ItemInput
	ShippingAddress ShippingAddress
	TotalAmount     float64
	PaymentMethod   payment.Method
	PaymentID       string
}
