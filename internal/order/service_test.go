package order

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/Sujal-Rajbhandari/inventory-system/internal/metrics"
	"github.com/Sujal-Rajbhandari/inventory-system/internal/models"
	"github.com/Sujal-Rajbhandari/inventory-system/internal/repository"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/suite"
)

type ServiceSuite struct {
	suite.Suite

	products  *repository.MemoryProductRepository
	orders    *repository.MemoryOrderRepository
	movements *repository.MemoryMovementRepository
	metrics   *metrics.Collector
	service   *Service

	created []models.Order
	printed []models.Order
}

func TestServiceSuite(t *testing.T) {
	suite.Run(t, new(ServiceSuite))
}

func (s *ServiceSuite) SetupTest() {
	s.products = repository.NewMemoryProductRepository()
	s.products.Load([]models.Product{
		product(1, 10, "10.00"),
		product(2, 3, "5.00"),
	})
	s.orders = repository.NewMemoryOrderRepository()
	s.Require().NoError(s.orders.Load(repository.SeedOrders()))
	s.movements = repository.NewMemoryMovementRepository()
	s.metrics = metrics.New(prometheus.NewRegistry())

	s.created = nil
	s.printed = nil

	clock := func() time.Time { return time.Date(2026, 10, 15, 14, 30, 0, 0, time.UTC) }
	s.service = NewService(s.products, s.orders, s.movements,
		WithOrderCreated(func(o models.Order) { s.created = append(s.created, o) }),
		WithPrinter(func(o models.Order) { s.printed = append(s.printed, o) }),
		WithClock(clock),
		WithMetrics(s.metrics),
	)
}

func (s *ServiceSuite) stock(id int) int {
	p, err := s.products.Get(context.Background(), id)
	s.Require().NoError(err)
	return p.Stock
}

func (s *ServiceSuite) draft(customer string, lines ...[2]int) *Draft {
	d := NewDraft("test")
	s.Require().NoError(d.SetHeader(customer, "", ""))
	for _, l := range lines {
		s.Require().NoError(s.service.AddItem(context.Background(), d, l[0], l[1]))
	}
	return d
}

func (s *ServiceSuite) TestConfirmCommitsOrder() {
	ctx := context.Background()
	d := s.draft("Jane Cooper", [2]int{1, 2}, [2]int{2, 1})

	o, err := s.service.Confirm(ctx, d)
	s.Require().NoError(err)

	s.Equal("ORD-10043", o.ID)
	s.Equal("Jane Cooper", o.Customer)
	s.Equal("2026-10-15", o.Date)
	s.Equal(models.OrderTypeRetail, o.Type)
	s.Equal(models.PaymentUnpaid, o.PaymentStatus)
	s.Equal(models.OrderPending, o.OrderStatus)
	s.Equal("25", o.TotalAmount.String())
	s.Len(o.Items, 2)

	s.Equal(8, s.stock(1))
	s.Equal(2, s.stock(2))

	stored, err := s.orders.GetByID(ctx, "ORD-10043")
	s.Require().NoError(err)
	s.Equal(o.Customer, stored.Customer)

	s.Len(s.created, 1)
	s.Len(s.printed, 1)
	s.Equal(o.ID, s.created[0].ID)

	s.Equal(StateCommitted, d.State())
	s.Empty(d.Items())

	moves, err := s.movements.GetByOrderID(ctx, o.ID)
	s.Require().NoError(err)
	s.Len(moves, 2)
	s.Equal(-2, moves[0].Change)
	s.Equal(-2, moves[0].Applied)

	s.Equal(1.0, testutil.ToFloat64(s.metrics.OrdersCommitted))
	s.Equal(3.0, testutil.ToFloat64(s.metrics.UnitsDecremented))
}

func (s *ServiceSuite) TestOrderNumbersIncrement() {
	ctx := context.Background()

	first, err := s.service.Confirm(ctx, s.draft("A", [2]int{1, 1}))
	s.Require().NoError(err)
	second, err := s.service.Confirm(ctx, s.draft("B", [2]int{1, 1}))
	s.Require().NoError(err)

	s.Equal("ORD-10043", first.ID)
	s.Equal("ORD-10044", second.ID)
}

func (s *ServiceSuite) TestConfirmRejectsEmptyDraft() {
	d := s.draft("Jane Cooper")

	_, err := s.service.Confirm(context.Background(), d)
	s.ErrorIs(err, ErrEmptyOrder)
	s.assertNothingCommitted()
	s.Equal(StateEmpty, d.State())
	s.Equal(1.0, testutil.ToFloat64(s.metrics.DraftRejections.WithLabelValues("empty_order")))
}

func (s *ServiceSuite) TestConfirmRejectsBlankCustomer() {
	d := s.draft("   ", [2]int{1, 2})

	_, err := s.service.Confirm(context.Background(), d)
	s.ErrorIs(err, ErrCustomerRequired)
	s.assertNothingCommitted()
	s.Equal(StateBuilding, d.State())
	s.Len(d.Items(), 1)
}

func (s *ServiceSuite) TestConfirmTwiceIsRejected() {
	ctx := context.Background()
	d := s.draft("Jane Cooper", [2]int{1, 2})

	_, err := s.service.Confirm(ctx, d)
	s.Require().NoError(err)

	_, err = s.service.Confirm(ctx, d)
	s.ErrorIs(err, ErrDraftClosed)
	s.Equal(8, s.stock(1))
	s.Len(s.created, 1)
}

func (s *ServiceSuite) TestConfirmClampsStockAtZero() {
	ctx := context.Background()

	// two drafts built against the same 3 units of product 2
	first := s.draft("A", [2]int{2, 3})
	second := s.draft("B", [2]int{2, 2})

	_, err := s.service.Confirm(ctx, first)
	s.Require().NoError(err)
	_, err = s.service.Confirm(ctx, second)
	s.Require().NoError(err)

	s.Equal(0, s.stock(2))

	moves, err := s.movements.GetByProductID(ctx, 2)
	s.Require().NoError(err)
	s.Require().Len(moves, 2)
	s.Equal(-2, moves[1].Change)
	s.Equal(0, moves[1].Applied)
}

func (s *ServiceSuite) TestAbandonDiscardsDraft() {
	d := s.draft("Jane Cooper", [2]int{1, 2})

	s.service.Abandon(d)
	s.Equal(StateAbandoned, d.State())
	s.Empty(d.Items())
	s.assertNothingCommitted()

	s.ErrorIs(d.AddItem(context.Background(), s.products, 1, 1), ErrDraftClosed)
	s.ErrorIs(d.RemoveItem(1), ErrDraftClosed)
	_, err := s.service.Confirm(context.Background(), d)
	s.ErrorIs(err, ErrDraftClosed)
}

func (s *ServiceSuite) TestAddItemCountsRejections() {
	d := NewDraft("d")
	s.ErrorIs(s.service.AddItem(context.Background(), d, 2, 4), ErrInsufficientStock)
	s.Equal(1.0, testutil.ToFloat64(s.metrics.DraftRejections.WithLabelValues("insufficient_stock")))
}

func (s *ServiceSuite) assertNothingCommitted() {
	s.Equal(10, s.stock(1))
	s.Equal(3, s.stock(2))
	s.Empty(s.created)
	s.Empty(s.printed)

	orders, err := s.orders.List(context.Background(), "")
	s.Require().NoError(err)
	s.Len(orders, 6)
}

type failingOrders struct {
	*repository.MemoryOrderRepository
}

func (failingOrders) Create(context.Context, *models.Order) error {
	return errors.New("disk full")
}

type failingStock struct {
	*repository.MemoryProductRepository
	failOn int
}

func (f failingStock) AdjustStock(ctx context.Context, id, delta int) (int, error) {
	if id == f.failOn {
		return 0, errors.New("connection reset")
	}
	return f.MemoryProductRepository.AdjustStock(ctx, id, delta)
}

func (s *ServiceSuite) serviceWith(products repository.ProductRepository, orders repository.OrderRepository) *Service {
	return NewService(products, orders, s.movements,
		WithOrderCreated(func(o models.Order) { s.created = append(s.created, o) }),
		WithPrinter(func(o models.Order) { s.printed = append(s.printed, o) }),
		WithMetrics(s.metrics),
	)
}

func (s *ServiceSuite) TestConfirmRestoresStockWhenOrderStoreFails() {
	ctx := context.Background()
	service := s.serviceWith(s.products, failingOrders{s.orders})

	d := NewDraft("d")
	s.Require().NoError(d.SetHeader("Jane Cooper", "", ""))
	s.Require().NoError(service.AddItem(ctx, d, 1, 4))
	s.Require().NoError(service.AddItem(ctx, d, 2, 3))

	for range 2 {
		_, err := service.Confirm(ctx, d)
		s.Require().Error(err)
		_, isValidation := AsValidation(err)
		s.False(isValidation)

		s.Equal(StateBuilding, d.State())
		s.assertNothingCommitted()
	}

	moves, err := s.movements.GetByProductID(ctx, 1)
	s.Require().NoError(err)
	s.Empty(moves)
	s.Zero(testutil.ToFloat64(s.metrics.OrdersCommitted))
}

func (s *ServiceSuite) TestConfirmRestoresOnlyAppliedUnits() {
	ctx := context.Background()
	service := s.serviceWith(s.products, failingOrders{s.orders})

	d := NewDraft("d")
	s.Require().NoError(d.SetHeader("Jane Cooper", "", ""))
	s.Require().NoError(service.AddItem(ctx, d, 2, 3))

	// another sale takes two of the three units before this draft commits
	_, err := s.products.AdjustStock(ctx, 2, 2)
	s.Require().NoError(err)

	_, err = service.Confirm(ctx, d)
	s.Require().Error(err)
	s.Equal(1, s.stock(2))
}

func (s *ServiceSuite) TestConfirmRestoresEarlierLinesWhenAdjustFails() {
	ctx := context.Background()
	service := s.serviceWith(failingStock{MemoryProductRepository: s.products, failOn: 2}, s.orders)

	d := NewDraft("d")
	s.Require().NoError(d.SetHeader("Jane Cooper", "", ""))
	s.Require().NoError(service.AddItem(ctx, d, 1, 4))
	s.Require().NoError(service.AddItem(ctx, d, 2, 1))

	_, err := service.Confirm(ctx, d)
	s.Require().Error(err)
	s.Equal(StateBuilding, d.State())
	s.assertNothingCommitted()
}

func (s *ServiceSuite) TestHeaderAndRemoveRejectionsAreCounted() {
	d := s.draft("Jane Cooper", [2]int{1, 1})

	s.ErrorIs(s.service.SetHeader(d, "Jane Cooper", "Bulk", ""), ErrInvalidOrderType)
	s.ErrorIs(s.service.SetHeader(d, "Jane Cooper", "", "Refunded"), ErrInvalidPaymentStatus)
	s.Require().NoError(s.service.SetHeader(d, "Robert Fox", models.OrderTypeWholesale, models.PaymentPaid))
	s.Equal("Robert Fox", d.View().Customer)

	s.service.Abandon(d)
	s.ErrorIs(s.service.RemoveItem(d, 1), ErrDraftClosed)

	s.Equal(1.0, testutil.ToFloat64(s.metrics.DraftRejections.WithLabelValues("invalid_order_type")))
	s.Equal(1.0, testutil.ToFloat64(s.metrics.DraftRejections.WithLabelValues("invalid_payment_status")))
	s.Equal(1.0, testutil.ToFloat64(s.metrics.DraftRejections.WithLabelValues("draft_closed")))
}
