package models

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

type OrderType string

const (
	OrderTypeRetail    OrderType = "Retail"
	OrderTypeWholesale OrderType = "Wholesale"
)

func (t OrderType) Valid() bool {
	return t == OrderTypeRetail || t == OrderTypeWholesale
}

type PaymentStatus string

const (
	PaymentPaid          PaymentStatus = "Paid"
	PaymentUnpaid        PaymentStatus = "Unpaid"
	PaymentPartiallyPaid PaymentStatus = "Partially Paid"
)

func (s PaymentStatus) Valid() bool {
	switch s {
	case PaymentPaid, PaymentUnpaid, PaymentPartiallyPaid:
		return true
	}
	return false
}

type OrderStatus string

const (
	OrderPending   OrderStatus = "Pending"
	OrderShipped   OrderStatus = "Shipped"
	OrderDelivered OrderStatus = "Delivered"
	OrderCanceled  OrderStatus = "Canceled"
)

// DateLayout is the calendar date format orders are stamped with.
const DateLayout = "2006-01-02"

const orderIDPrefix = "ORD-"

// OrderID formats an order sequence number as ORD-<n>.
func OrderID(n int) string {
	return orderIDPrefix + strconv.Itoa(n)
}

// ParseOrderNumber extracts n from ORD-<n>.
func ParseOrderNumber(id string) (int, error) {
	if !strings.HasPrefix(id, orderIDPrefix) {
		return 0, fmt.Errorf("order id %q: missing %s prefix", id, orderIDPrefix)
	}
	n, err := strconv.Atoi(strings.TrimPrefix(id, orderIDPrefix))
	if err != nil || n <= 0 {
		return 0, fmt.Errorf("order id %q: invalid sequence number", id)
	}
	return n, nil
}

// OrderLineItem is one product line. TotalPrice is derived from Quantity and
// UnitPrice; use NewLineItem or WithQuantity rather than setting it directly.
type OrderLineItem struct {
	ProductID   int             `json:"product_id"`
	ProductName string          `json:"product_name"`
	Quantity    int             `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	TotalPrice  decimal.Decimal `json:"total_price"`
}

func NewLineItem(p Product, quantity int) OrderLineItem {
	return OrderLineItem{
		ProductID:   p.ID,
		ProductName: p.Name,
		Quantity:    quantity,
		UnitPrice:   p.Price,
		TotalPrice:  p.Price.Mul(decimal.NewFromInt(int64(quantity))),
	}
}

// WithQuantity returns a copy of the line with a new quantity and a
// recomputed total. The unit price snapshot is kept.
func (li OrderLineItem) WithQuantity(quantity int) OrderLineItem {
	li.Quantity = quantity
	li.TotalPrice = li.UnitPrice.Mul(decimal.NewFromInt(int64(quantity)))
	return li
}

type Order struct {
	ID            string          `json:"id"`
	Customer      string          `json:"customer"`
	Date          string          `json:"date"`
	Type          OrderType       `json:"type"`
	TotalAmount   decimal.Decimal `json:"total_amount"`
	PaymentStatus PaymentStatus   `json:"payment_status"`
	OrderStatus   OrderStatus     `json:"order_status"`
	Items         []OrderLineItem `json:"items"`
	CreatedAt     time.Time       `json:"created_at"`
}

// SumLines adds up the line totals at full precision.
func SumLines(items []OrderLineItem) decimal.Decimal {
	total := decimal.Zero
	for _, item := range items {
		total = total.Add(item.TotalPrice)
	}
	return total
}
