package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type Product struct {
	ID           int             `json:"id"`
	Name         string          `json:"name" validate:"required"`
	Category     string          `json:"category" validate:"required"`
	Brand        string          `json:"brand" validate:"required"`
	Stock        int             `json:"stock" validate:"gte=0"`
	Price        decimal.Decimal `json:"price"`
	ReorderLevel int             `json:"reorder_level" validate:"gte=0"`
	Image        string          `json:"image"`
	CreatedAt    time.Time       `json:"created_at"`
	UpdatedAt    time.Time       `json:"updated_at"`
}

// LowStock reports whether the product is at or below its reorder level.
func (p Product) LowStock() bool {
	return p.Stock <= p.ReorderLevel
}

// Value is stock multiplied by unit price.
func (p Product) Value() decimal.Decimal {
	return p.Price.Mul(decimal.NewFromInt(int64(p.Stock)))
}

const (
	MovementIncoming   = "incoming"
	MovementOutgoing   = "outgoing"
	MovementAdjustment = "adjustment"
)

// StockMovement records one change to a product's stock. Change is the
// requested signed delta, Applied is what actually happened after clamping.
type StockMovement struct {
	ID        int       `json:"id"`
	ProductID int       `json:"product_id"`
	OrderID   string    `json:"order_id,omitempty"`
	Type      string    `json:"type"`
	Change    int       `json:"change"`
	Applied   int       `json:"applied"`
	CreatedAt time.Time `json:"created_at"`
}
