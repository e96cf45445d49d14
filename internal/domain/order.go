package domain

import "time"

const (
	OrderStatusPending    = "pending"
	OrderStatusProcessing = "processing"
	OrderStatusShipped    = "shipped"
	OrderStatusDelivered  = "delivered"
)

// CustomerInfo is the contact block collected on the first checkout step.
type CustomerInfo struct {
	FirstName string `json:"firstName" validate:"required"`
	LastName  string `json:"lastName" validate:"required"`
	Email     string `json:"email" validate:"required,email"`
	Phone     string `json:"phone" validate:"required"`
}

// ShippingAddress stores the delivery address collected on the shipping step.
type ShippingAddress struct {
	FirstName    string `json:"firstName"`
	LastName     string `json:"lastName"`
	AddressLine1 string `json:"addressLine1" validate:"required"`
	AddressLine2 string `json:"addressLine2,omitempty"`
	City         string `json:"city" validate:"required"`
	State        string `json:"state" validate:"required"`
	PostalCode   string `json:"postalCode" validate:"required"`
	Country      string `json:"country" validate:"required"`
	Phone        string `json:"phone,omitempty"`
}

type PaymentMethod struct {
	Type      string `json:"type" validate:"required,oneof=card paypal"`
	CardLast4 string `json:"cardLast4,omitempty" validate:"omitempty,len=4,numeric"`
}

// Order is the result of a successful checkout. It is handed back to the
// caller and announced on the message bus; it is not stored.
type Order struct {
	ID              string          `json:"id"`
	Number          string          `json:"number"`
	Items           []CartItem      `json:"items"`
	Customer        CustomerInfo    `json:"customer"`
	ShippingAddress ShippingAddress `json:"shipping"`
	Payment         PaymentMethod   `json:"payment"`
	Coupon          *string         `json:"coupon,omitempty"`
	Totals          Totals          `json:"totals"`
	Currency        string          `json:"currency"`
	Status          string          `json:"status"`
	CreatedAt       time.Time       `json:"createdAt"`
}
