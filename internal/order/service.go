package order

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/Sujal-Rajbhandari/inventory-system/internal/metrics"
	"github.com/Sujal-Rajbhandari/inventory-system/internal/models"
	"github.com/Sujal-Rajbhandari/inventory-system/internal/repository"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Service commits drafts against the inventory store and the orders
// collection. Commits are serialized so each one appears atomic to readers.
type Service struct {
	products  repository.ProductRepository
	orders    repository.OrderRepository
	movements repository.MovementRepository

	onCreated func(models.Order)
	printer   func(models.Order)
	now       func() time.Time
	metrics   *metrics.Collector
	log       zerolog.Logger

	mu sync.Mutex
}

type Option func(*Service)

// WithOrderCreated registers the callback invoked once per successful commit.
func WithOrderCreated(fn func(models.Order)) Option {
	return func(s *Service) { s.onCreated = fn }
}

// WithPrinter sets the receipt sink handed every committed order.
func WithPrinter(fn func(models.Order)) Option {
	return func(s *Service) { s.printer = fn }
}

func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

func WithMetrics(c *metrics.Collector) Option {
	return func(s *Service) { s.metrics = c }
}

func WithLogger(l zerolog.Logger) Option {
	return func(s *Service) { s.log = l }
}

func NewService(products repository.ProductRepository, orders repository.OrderRepository, movements repository.MovementRepository, opts ...Option) *Service {
	s := &Service{
		products:  products,
		orders:    orders,
		movements: movements,
		onCreated: func(models.Order) {},
		printer:   func(models.Order) {},
		now:       time.Now,
		log:       log.Logger,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// AddItem adds to d, counting validation rejections.
func (s *Service) AddItem(ctx context.Context, d *Draft, productID, quantity int) error {
	err := d.AddItem(ctx, s.products, productID, quantity)
	s.observe(err)
	return err
}

// SetHeader updates the draft header, counting validation rejections.
func (s *Service) SetHeader(d *Draft, customer string, orderType models.OrderType, payment models.PaymentStatus) error {
	err := d.SetHeader(customer, orderType, payment)
	s.observe(err)
	return err
}

// RemoveItem drops a line from d, counting validation rejections.
func (s *Service) RemoveItem(d *Draft, productID int) error {
	err := d.RemoveItem(productID)
	s.observe(err)
	return err
}

// Confirm turns the draft into a finalized order: stock is decremented for
// every line, the order is stored, the created callback fires and the order
// is handed to the printer. On a validation error nothing changes; if a store
// call fails midway the stock already taken is given back and the draft stays
// open, so a retry starts from the same inventory.
func (s *Service) Confirm(ctx context.Context, d *Draft) (*models.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	d.mu.Lock()
	defer d.mu.Unlock()

	if err := s.checkConfirm(d); err != nil {
		s.observe(err)
		return nil, err
	}

	number, err := s.orders.NextNumber(ctx)
	if err != nil {
		return nil, fmt.Errorf("reserve order number: %w", err)
	}

	now := s.now()
	items := d.itemsCopy()
	order := models.Order{
		ID:            models.OrderID(number),
		Customer:      strings.TrimSpace(d.customer),
		Date:          now.Format(models.DateLayout),
		Type:          d.orderType,
		TotalAmount:   models.SumLines(items),
		PaymentStatus: d.paymentStatus,
		OrderStatus:   models.OrderPending,
		Items:         items,
		CreatedAt:     now,
	}

	applied := make([]int, len(items))
	for i, item := range items {
		applied[i], err = s.products.AdjustStock(ctx, item.ProductID, item.Quantity)
		if err != nil {
			s.restoreStock(ctx, order.ID, items[:i], applied[:i])
			return nil, fmt.Errorf("adjust stock for product %d: %w", item.ProductID, err)
		}
		s.log.Debug().
			Str("order_id", order.ID).
			Int("product_id", item.ProductID).
			Int("requested", item.Quantity).
			Int("applied", applied[i]).
			Msg("stock adjusted")
	}

	if err := s.orders.Create(ctx, &order); err != nil {
		s.restoreStock(ctx, order.ID, items, applied)
		return nil, fmt.Errorf("store order %s: %w", order.ID, err)
	}

	for i, item := range items {
		m := models.StockMovement{
			ProductID: item.ProductID,
			OrderID:   order.ID,
			Type:      models.MovementOutgoing,
			Change:    -item.Quantity,
			Applied:   applied[i],
			CreatedAt: now,
		}
		if err := s.movements.Create(ctx, &m); err != nil {
			s.log.Error().Err(err).Str("order_id", order.ID).Int("product_id", item.ProductID).Msg("failed to record stock movement")
		}
		if s.metrics != nil {
			s.metrics.UnitsDecremented.Add(float64(-applied[i]))
		}
	}

	d.close(StateCommitted)

	if s.metrics != nil {
		s.metrics.OrdersCommitted.Inc()
	}
	s.log.Info().
		Str("order_id", order.ID).
		Str("customer", order.Customer).
		Str("total", order.TotalAmount.StringFixed(2)).
		Int("lines", len(items)).
		Msg("order committed")

	s.onCreated(order)
	s.printer(order)

	return &order, nil
}

// Abandon discards the draft without touching stock or orders.
func (s *Service) Abandon(d *Draft) {
	d.abandon()
}

func (s *Service) Order(ctx context.Context, id string) (*models.Order, error) {
	return s.orders.GetByID(ctx, id)
}

func (s *Service) Orders(ctx context.Context, search string) ([]models.Order, error) {
	return s.orders.List(ctx, search)
}

// restoreStock gives back the units a failed commit already took. Only the
// applied amount is returned, so clamped lines restore what was really there.
func (s *Service) restoreStock(ctx context.Context, orderID string, items []models.OrderLineItem, applied []int) {
	for i, item := range items {
		if applied[i] >= 0 {
			continue
		}
		if err := s.products.Restock(ctx, item.ProductID, -applied[i]); err != nil {
			s.log.Error().Err(err).
				Str("order_id", orderID).
				Int("product_id", item.ProductID).
				Int("units", -applied[i]).
				Msg("failed to restore stock after aborted commit")
		}
	}
}

func (s *Service) checkConfirm(d *Draft) error {
	if d.closed != "" {
		return ErrDraftClosed
	}
	if len(d.items) == 0 {
		return ErrEmptyOrder
	}
	if strings.TrimSpace(d.customer) == "" {
		return ErrCustomerRequired
	}
	return nil
}

func (s *Service) observe(err error) {
	if err == nil || s.metrics == nil {
		return
	}
	if v, ok := AsValidation(err); ok {
		s.metrics.DraftRejections.WithLabelValues(v.Code).Inc()
	}
}
