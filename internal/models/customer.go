package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Customer is an account orders can be placed for. Orders reference the
// customer by name, so Name is what ties the two together.
type Customer struct {
	ID        int       `json:"id"`
	Name      string    `json:"name" validate:"required,min=2,max=150"`
	Email     string    `json:"email" validate:"required,email"`
	Phone     string    `json:"phone" validate:"max=32"`
	Type      OrderType `json:"type"`
	CreatedAt time.Time `json:"created_at"`
}

// CustomerSummary is a customer with figures derived from the order history.
type CustomerSummary struct {
	Customer
	Orders     int             `json:"orders"`
	TotalSpent decimal.Decimal `json:"total_spent"`
	LastOrder  string          `json:"last_order,omitempty"`
}
