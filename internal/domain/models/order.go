package models

import "time"

// Order represents a placed order. TokenNumber is the per-user display
// number shown at the pickup counter: sequential, 1-based, unique
// within the owning user's order history.
type Order struct {
	ID          int64       `json:"-"`
	UserID      int64       `json:"-"`
	TokenNumber int         `json:"tokenNumber"`
	Items       []OrderItem `json:"items"`
	TotalAmount float64     `json:"totalAmount"`
	CreatedAt   time.Time   `json:"date"`
}

// OrderItem is a single line of an order.
type OrderItem struct {
	Name      string  `json:"name"`
	UnitPrice float64 `json:"price"`
	Quantity  int     `json:"quantity"`
}
