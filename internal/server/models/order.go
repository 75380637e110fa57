package models

import "time"

// OrderItem is a single product line inside an order.
type OrderItem struct {
	ProductID string `json:"product"`
	Quantity  int    `json:"quantity"`
}

// Order is a placed customer order. Items and ShippingAddress are stored as
// documents inside the order record; the user is referenced by ID.
type Order struct {
	ID              string
	UserID          string
	Items           []OrderItem
	ShippingAddress Address
	TotalPrice      float64
	ExVAT           float64
	VAT             float64
	IsPaid          bool
	PaidDate        *time.Time
	IsDelivered     bool
	DeliveredDate   *time.Time
	CreatedAt       time.Time
}
