package order

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"sync"

	"github.com/Sujal-Rajbhandari/inventory-system/internal/models"
	"github.com/Sujal-Rajbhandari/inventory-system/internal/repository"
	"github.com/shopspring/decimal"
)

type State string

const (
	StateEmpty     State = "empty"
	StateBuilding  State = "building"
	StateCommitted State = "committed"
	StateAbandoned State = "abandoned"
)

// ProductLookup is the read side of the inventory store a draft needs.
type ProductLookup interface {
	Get(ctx context.Context, id int) (*models.Product, error)
}

// Draft accumulates line items for one order. Every method validates before
// touching state, so a rejected call leaves the draft exactly as it was.
type Draft struct {
	ID string

	mu            sync.Mutex
	customer      string
	orderType     models.OrderType
	paymentStatus models.PaymentStatus
	items         []models.OrderLineItem
	closed        State
}

func NewDraft(id string) *Draft {
	return &Draft{
		ID:            id,
		orderType:     models.OrderTypeRetail,
		paymentStatus: models.PaymentUnpaid,
	}
}

// DraftView is a point-in-time copy of a draft.
type DraftView struct {
	ID            string                 `json:"id"`
	State         State                  `json:"state"`
	Customer      string                 `json:"customer"`
	Type          models.OrderType       `json:"type"`
	PaymentStatus models.PaymentStatus   `json:"payment_status"`
	Items         []models.OrderLineItem `json:"items"`
	Total         decimal.Decimal        `json:"total"`
}

func (d *Draft) View() DraftView {
	d.mu.Lock()
	defer d.mu.Unlock()

	return DraftView{
		ID:            d.ID,
		State:         d.state(),
		Customer:      d.customer,
		Type:          d.orderType,
		PaymentStatus: d.paymentStatus,
		Items:         d.itemsCopy(),
		Total:         models.SumLines(d.items),
	}
}

func (d *Draft) State() State {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.state()
}

func (d *Draft) Items() []models.OrderLineItem {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.itemsCopy()
}

func (d *Draft) Total() decimal.Decimal {
	d.mu.Lock()
	defer d.mu.Unlock()
	return models.SumLines(d.items)
}

// SetHeader sets the customer and order classification. Empty type or
// payment status keep the current value.
func (d *Draft) SetHeader(customer string, orderType models.OrderType, payment models.PaymentStatus) error {
	if orderType != "" && !orderType.Valid() {
		return ErrInvalidOrderType
	}
	if payment != "" && !payment.Valid() {
		return ErrInvalidPaymentStatus
	}

	d.mu.Lock()
	defer d.mu.Unlock()

	if d.closed != "" {
		return ErrDraftClosed
	}
	d.customer = customer
	if orderType != "" {
		d.orderType = orderType
	}
	if payment != "" {
		d.paymentStatus = payment
	}
	return nil
}

// AddItem adds quantity units of a product, merging into an existing line for
// the same product. Stock is read from products at call time and the unit
// price is snapshotted only when the line is first created.
func (d *Draft) AddItem(ctx context.Context, products ProductLookup, productID, quantity int) error {
	if productID == 0 {
		return ErrNoProductSelected
	}

	product, err := products.Get(ctx, productID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) || errors.Is(err, repository.ErrInvalidInput) {
			return ErrProductNotFound
		}
		return fmt.Errorf("look up product %d: %w", productID, err)
	}

	if quantity <= 0 {
		return ErrInvalidQuantity
	}
	if product.Stock < quantity {
		return ErrInsufficientStock
	}

	d.mu.Lock()
	defer d.mu.Unlock()

	if d.closed != "" {
		return ErrDraftClosed
	}

	i := d.indexOf(productID)
	if i < 0 {
		d.items = append(d.items, models.NewLineItem(*product, quantity))
		return nil
	}

	total := d.items[i].Quantity + quantity
	if product.Stock < total {
		return ErrInsufficientStockTotal
	}
	d.items[i] = d.items[i].WithQuantity(total)
	return nil
}

// RemoveItem drops the line for productID. A missing line is a no-op.
func (d *Draft) RemoveItem(productID int) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.closed != "" {
		return ErrDraftClosed
	}
	if i := d.indexOf(productID); i >= 0 {
		d.items = slices.Delete(d.items, i, i+1)
	}
	return nil
}

func (d *Draft) state() State {
	switch {
	case d.closed != "":
		return d.closed
	case len(d.items) == 0:
		return StateEmpty
	default:
		return StateBuilding
	}
}

func (d *Draft) itemsCopy() []models.OrderLineItem {
	items := slices.Clone(d.items)
	if items == nil {
		items = []models.OrderLineItem{}
	}
	return items
}

func (d *Draft) indexOf(productID int) int {
	return slices.IndexFunc(d.items, func(li models.OrderLineItem) bool { return li.ProductID == productID })
}

// abandon closes an open draft without committing it. Closed drafts keep
// their terminal state.
func (d *Draft) abandon() {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.closed == "" {
		d.close(StateAbandoned)
	}
}

// close discards the lines and moves the draft to a terminal state. Caller
// holds d.mu.
func (d *Draft) close(s State) {
	d.items = nil
	d.closed = s
}
