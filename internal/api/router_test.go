package api

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/Sujal-Rajbhandari/inventory-system/internal/api/handlers"
	"github.com/Sujal-Rajbhandari/inventory-system/internal/metrics"
	"github.com/Sujal-Rajbhandari/inventory-system/internal/models"
	"github.com/Sujal-Rajbhandari/inventory-system/internal/order"
	"github.com/Sujal-Rajbhandari/inventory-system/internal/repository"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

type RouterSuite struct {
	suite.Suite
	router   http.Handler
	products *repository.MemoryProductRepository
	drafts   *order.Registry
	created  []models.Order
}

func TestRouterSuite(t *testing.T) {
	suite.Run(t, new(RouterSuite))
}

func (s *RouterSuite) SetupTest() {
	s.products = repository.NewMemoryProductRepository()
	s.products.Load(repository.SeedProducts())
	orders := repository.NewMemoryOrderRepository()
	s.Require().NoError(orders.Load(repository.SeedOrders()))
	movements := repository.NewMemoryMovementRepository()
	customers := repository.NewMemoryCustomerRepository()
	customers.Load(repository.SeedCustomers())

	s.created = nil
	reg := prometheus.NewRegistry()
	collector := metrics.New(reg)
	service := order.NewService(s.products, orders, movements,
		order.WithOrderCreated(func(o models.Order) { s.created = append(s.created, o) }),
		order.WithMetrics(collector),
		order.WithLogger(zerolog.Nop()),
	)
	s.drafts = order.NewRegistry()

	s.router = NewRouter(Deps{
		Products:  s.products,
		Movements: movements,
		Customers: customers,
		Orders:    service,
		Drafts:    s.drafts,
		Metrics:   collector,
		Gatherer:  reg,
		Logger:    zerolog.Nop(),
	})
}

func (s *RouterSuite) do(method, path string, body any) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		s.Require().NoError(json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	return w
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &v), w.Body.String())
	return v
}

type errorBody struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

func (s *RouterSuite) TestProductCRUD() {
	w := s.do(http.MethodPost, "/products", map[string]any{
		"name":          "Spirit Level",
		"category":      "Measuring",
		"brand":         "Stabila",
		"stock":         4,
		"price":         "19.90",
		"reorder_level": 2,
		"image":         "placeholder.svg",
	})
	s.Require().Equal(http.StatusCreated, w.Code, w.Body.String())
	s.Equal("/products/9", w.Header().Get("Location"))

	created := decode[models.Product](s.T(), w)
	s.Equal(9, created.ID)
	s.True(created.Price.Equal(decimal.RequireFromString("19.9")))

	w = s.do(http.MethodGet, "/products/9", nil)
	s.Equal(http.StatusOK, w.Code)

	w = s.do(http.MethodPut, "/products/9", map[string]any{
		"name": "Spirit Level 1m", "category": "Measuring", "brand": "Stabila", "stock": 6, "price": 21,
	})
	s.Require().Equal(http.StatusOK, w.Code, w.Body.String())
	s.Equal("Spirit Level 1m", decode[models.Product](s.T(), w).Name)

	w = s.do(http.MethodPut, "/products/404", map[string]any{
		"name": "Ghost", "category": "X", "brand": "Y",
	})
	s.Equal(http.StatusNoContent, w.Code)

	w = s.do(http.MethodDelete, "/products/9", nil)
	s.Equal(http.StatusNoContent, w.Code)
	w = s.do(http.MethodDelete, "/products/9", nil)
	s.Equal(http.StatusNoContent, w.Code)

	w = s.do(http.MethodGet, "/products/9", nil)
	s.Equal(http.StatusNotFound, w.Code)
}

func (s *RouterSuite) TestCreateProductValidation() {
	w := s.do(http.MethodPost, "/products", map[string]any{"category": "Measuring", "brand": "Stabila"})
	s.Equal(http.StatusBadRequest, w.Code)
	s.Equal("invalid_input", decode[errorBody](s.T(), w).Error)

	w = s.do(http.MethodPost, "/products", map[string]any{"name": "x", "colour": "red"})
	s.Equal(http.StatusBadRequest, w.Code)
	s.Equal("bad_request", decode[errorBody](s.T(), w).Error)

	w = s.do(http.MethodGet, "/products/abc", nil)
	s.Equal(http.StatusBadRequest, w.Code)
}

func (s *RouterSuite) TestListFiltersAndLowStock() {
	w := s.do(http.MethodGet, "/products?category=Power+Tools", nil)
	s.Require().Equal(http.StatusOK, w.Code)
	s.Len(decode[[]models.Product](s.T(), w), 2)

	w = s.do(http.MethodGet, "/products/low-stock", nil)
	s.Require().Equal(http.StatusOK, w.Code)
	s.Len(decode[[]models.Product](s.T(), w), 2)
}

func (s *RouterSuite) TestRestockRecordsMovement() {
	w := s.do(http.MethodPost, "/products/5/restock", map[string]any{"quantity": 10})
	s.Require().Equal(http.StatusOK, w.Code, w.Body.String())
	s.Equal(17, decode[models.Product](s.T(), w).Stock)

	w = s.do(http.MethodGet, "/products/5/movements", nil)
	s.Require().Equal(http.StatusOK, w.Code)
	moves := decode[[]models.StockMovement](s.T(), w)
	s.Require().Len(moves, 1)
	s.Equal(models.MovementIncoming, moves[0].Type)

	w = s.do(http.MethodPost, "/products/5/restock", map[string]any{"quantity": 0})
	s.Equal(http.StatusBadRequest, w.Code)
}

func (s *RouterSuite) TestDraftFlow() {
	w := s.do(http.MethodPost, "/drafts", nil)
	s.Require().Equal(http.StatusCreated, w.Code)
	draft := decode[order.DraftView](s.T(), w)
	s.Equal(order.StateEmpty, draft.State)
	base := "/drafts/" + draft.ID

	w = s.do(http.MethodPost, base+"/items", map[string]any{"product_id": 5, "quantity": 3})
	s.Require().Equal(http.StatusOK, w.Code, w.Body.String())

	w = s.do(http.MethodPost, base+"/items", map[string]any{"product_id": 5, "quantity": 5})
	s.Equal(http.StatusBadRequest, w.Code)
	s.Equal("insufficient_stock_total", decode[errorBody](s.T(), w).Error)

	w = s.do(http.MethodPost, base+"/items", map[string]any{"product_id": 1, "quantity": 2})
	s.Require().Equal(http.StatusOK, w.Code)
	w = s.do(http.MethodDelete, base+"/items/1", nil)
	s.Require().Equal(http.StatusOK, w.Code)
	draft = decode[order.DraftView](s.T(), w)
	s.Require().Len(draft.Items, 1)
	s.Equal(3, draft.Items[0].Quantity)

	w = s.do(http.MethodPost, base+"/confirm", nil)
	s.Equal(http.StatusBadRequest, w.Code)
	s.Equal("customer_required", decode[errorBody](s.T(), w).Error)

	w = s.do(http.MethodPut, base, map[string]any{"customer": "Wade Warren", "type": "Wholesale", "payment_status": "Partially Paid"})
	s.Require().Equal(http.StatusOK, w.Code, w.Body.String())

	w = s.do(http.MethodPost, base+"/confirm", nil)
	s.Require().Equal(http.StatusCreated, w.Code, w.Body.String())
	o := decode[models.Order](s.T(), w)
	s.Equal("ORD-10043", o.ID)
	s.Equal(models.OrderTypeWholesale, o.Type)
	s.Equal(models.PaymentPartiallyPaid, o.PaymentStatus)
	s.Equal(models.OrderPending, o.OrderStatus)
	s.Equal("38.97", o.TotalAmount.StringFixed(2))
	s.Equal("/orders/ORD-10043", w.Header().Get("Location"))
	s.Len(s.created, 1)

	p, err := s.products.Get(s.T().Context(), 5)
	s.Require().NoError(err)
	s.Equal(4, p.Stock)

	w = s.do(http.MethodGet, base, nil)
	s.Equal(http.StatusNotFound, w.Code)
	s.Zero(s.drafts.Len())

	w = s.do(http.MethodGet, "/orders/ORD-10043", nil)
	s.Equal(http.StatusOK, w.Code)

	w = s.do(http.MethodGet, "/orders/ORD-10043/receipt", nil)
	s.Require().Equal(http.StatusOK, w.Code)
	s.True(strings.HasPrefix(w.Header().Get("Content-Type"), "text/plain"))
	s.Contains(w.Body.String(), "Customer: Wade Warren")
}

func (s *RouterSuite) TestAbandonDraft() {
	w := s.do(http.MethodPost, "/drafts", nil)
	draft := decode[order.DraftView](s.T(), w)

	w = s.do(http.MethodPost, "/drafts/"+draft.ID+"/items", map[string]any{"product_id": 1, "quantity": 1})
	s.Require().Equal(http.StatusOK, w.Code)

	w = s.do(http.MethodDelete, "/drafts/"+draft.ID, nil)
	s.Equal(http.StatusNoContent, w.Code)
	s.Empty(s.created)

	p, err := s.products.Get(s.T().Context(), 1)
	s.Require().NoError(err)
	s.Equal(35, p.Stock)

	w = s.do(http.MethodDelete, "/drafts/"+draft.ID, nil)
	s.Equal(http.StatusNotFound, w.Code)
}

func (s *RouterSuite) TestOrdersListAndSearch() {
	w := s.do(http.MethodGet, "/orders", nil)
	s.Require().Equal(http.StatusOK, w.Code)
	s.Len(decode[[]models.Order](s.T(), w), 6)

	w = s.do(http.MethodGet, "/orders?search=cooper", nil)
	s.Require().Equal(http.StatusOK, w.Code)
	s.Len(decode[[]models.Order](s.T(), w), 1)

	w = s.do(http.MethodGet, "/orders/ORD-1", nil)
	s.Equal(http.StatusNotFound, w.Code)
}

func (s *RouterSuite) TestStatsAndOps() {
	w := s.do(http.MethodGet, "/stats", nil)
	s.Require().Equal(http.StatusOK, w.Code)

	var stats struct {
		Products      int    `json:"products"`
		TotalUnits    int    `json:"total_units"`
		LowStock      int    `json:"low_stock"`
		Orders        int    `json:"orders"`
		PendingOrders int    `json:"pending_orders"`
		Revenue       string `json:"revenue"`
	}
	s.Require().NoError(json.Unmarshal(w.Body.Bytes(), &stats))
	s.Equal(8, stats.Products)
	s.Equal(204, stats.TotalUnits)
	s.Equal(2, stats.LowStock)
	s.Equal(6, stats.Orders)
	s.Equal(1, stats.PendingOrders)
	s.Equal("5977.25", stats.Revenue)

	w = s.do(http.MethodGet, "/healthz", nil)
	s.Equal(http.StatusOK, w.Code)

	w = s.do(http.MethodGet, "/metrics", nil)
	s.Require().Equal(http.StatusOK, w.Code)
	s.Contains(w.Body.String(), "inventory_http_requests_total")
}

func (s *RouterSuite) TestCustomersDeriveFromOrders() {
	w := s.do(http.MethodGet, "/customers", nil)
	s.Require().Equal(http.StatusOK, w.Code)
	all := decode[[]models.CustomerSummary](s.T(), w)
	s.Require().Len(all, 6)

	jane := all[0]
	s.Equal("Jane Cooper", jane.Name)
	s.Equal(1, jane.Orders)
	s.Equal("264.00", jane.TotalSpent.StringFixed(2))
	s.Equal("2025-05-19", jane.LastOrder)

	leslie := all[5]
	s.Equal("Leslie Alexander", leslie.Name)
	s.Equal(1, leslie.Orders)
	s.True(leslie.TotalSpent.IsZero())

	w = s.do(http.MethodGet, "/customers?search=example.com", nil)
	s.Require().Equal(http.StatusOK, w.Code)
	s.Len(decode[[]models.CustomerSummary](s.T(), w), 4)

	w = s.do(http.MethodGet, "/customers?search=PROS", nil)
	s.Require().Equal(http.StatusOK, w.Code)
	pros := decode[[]models.CustomerSummary](s.T(), w)
	s.Require().Len(pros, 1)
	s.Equal("4326.75", pros[0].TotalSpent.StringFixed(2))

	w = s.do(http.MethodGet, "/customers/2", nil)
	s.Require().Equal(http.StatusOK, w.Code)
	cody := decode[models.CustomerSummary](s.T(), w)
	s.Zero(cody.Orders)
	s.Empty(cody.LastOrder)

	w = s.do(http.MethodPost, "/drafts", nil)
	base := "/drafts/" + decode[order.DraftView](s.T(), w).ID
	w = s.do(http.MethodPost, base+"/items", map[string]any{"product_id": 4, "quantity": 2})
	s.Require().Equal(http.StatusOK, w.Code, w.Body.String())
	w = s.do(http.MethodPut, base, map[string]any{"customer": "cody fisher", "type": "Retail", "payment_status": "Paid"})
	s.Require().Equal(http.StatusOK, w.Code, w.Body.String())
	w = s.do(http.MethodPost, base+"/confirm", nil)
	s.Require().Equal(http.StatusCreated, w.Code, w.Body.String())
	placed := decode[models.Order](s.T(), w)

	w = s.do(http.MethodGet, "/customers/2", nil)
	s.Require().Equal(http.StatusOK, w.Code)
	cody = decode[models.CustomerSummary](s.T(), w)
	s.Equal(1, cody.Orders)
	s.Equal("49.90", cody.TotalSpent.StringFixed(2))
	s.Equal(placed.Date, cody.LastOrder)

	w = s.do(http.MethodGet, "/customers/99", nil)
	s.Equal(http.StatusNotFound, w.Code)
}

func (s *RouterSuite) TestCreateCustomer() {
	w := s.do(http.MethodPost, "/customers", map[string]any{
		"name": "Wade Warren", "email": "wade.warren@example.com", "phone": "(123) 111-2222",
	})
	s.Require().Equal(http.StatusCreated, w.Code, w.Body.String())
	s.Equal("/customers/7", w.Header().Get("Location"))
	created := decode[models.CustomerSummary](s.T(), w)
	s.Equal(models.OrderTypeRetail, created.Type)

	w = s.do(http.MethodGet, "/customers/7", nil)
	s.Require().Equal(http.StatusOK, w.Code)
	wade := decode[models.CustomerSummary](s.T(), w)
	s.Equal(1, wade.Orders)
	s.Equal("42.25", wade.TotalSpent.StringFixed(2))
	s.Equal("2025-05-17", wade.LastOrder)

	w = s.do(http.MethodPost, "/customers", map[string]any{"name": "Jane Again", "email": "JANE.COOPER@example.com"})
	s.Equal(http.StatusConflict, w.Code)
	s.Equal("duplicate", decode[errorBody](s.T(), w).Error)

	w = s.do(http.MethodPost, "/customers", map[string]any{"name": "Nobody", "email": "not-an-email"})
	s.Equal(http.StatusBadRequest, w.Code)
	s.Equal("invalid_input", decode[errorBody](s.T(), w).Error)

	w = s.do(http.MethodPost, "/customers", map[string]any{"name": "Trade Co", "email": "trade@example.com", "type": "VIP"})
	s.Equal(http.StatusBadRequest, w.Code)
	s.Equal("invalid_input", decode[errorBody](s.T(), w).Error)
}

func TestSummarizeCustomersMatchesNamesLoosely(t *testing.T) {
	customers := []models.Customer{{ID: 1, Name: "Robert Fox"}, {ID: 2, Name: "Cody Fisher"}}
	orders := []models.Order{
		{Customer: " robert fox ", Date: "2025-05-18", TotalAmount: decimal.RequireFromString("10.50"), OrderStatus: models.OrderPending},
		{Customer: "Robert Fox", Date: "2025-05-20", TotalAmount: decimal.RequireFromString("5"), OrderStatus: models.OrderCanceled},
		{Customer: "Somebody Else", Date: "2025-06-01", TotalAmount: decimal.RequireFromString("99"), OrderStatus: models.OrderDelivered},
	}

	got := handlers.SummarizeCustomers(customers, orders)
	require.Len(t, got, 2)
	assert.Equal(t, 2, got[0].Orders)
	assert.Equal(t, "10.50", got[0].TotalSpent.StringFixed(2))
	assert.Equal(t, "2025-05-20", got[0].LastOrder)
	assert.Zero(t, got[1].Orders)
	assert.True(t, got[1].TotalSpent.IsZero())

	assert.Empty(t, handlers.SummarizeCustomers(nil, orders))
}

func TestComputeStatsEmpty(t *testing.T) {
	stats := handlers.ComputeStats(nil, nil)
	assert.Zero(t, stats.Products)
	assert.True(t, stats.Revenue.IsZero())
}
