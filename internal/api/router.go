package api

import (
	"net/http"
	"strconv"
	"time"

	"github.com/Sujal-Rajbhandari/inventory-system/internal/api/handlers"
	"github.com/Sujal-Rajbhandari/inventory-system/internal/metrics"
	"github.com/Sujal-Rajbhandari/inventory-system/internal/order"
	"github.com/Sujal-Rajbhandari/inventory-system/internal/repository"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
)

type Deps struct {
	Products  repository.ProductRepository
	Movements repository.MovementRepository
	Customers repository.CustomerRepository
	Orders    *order.Service
	Drafts    *order.Registry
	Metrics   *metrics.Collector
	Gatherer  prometheus.Gatherer
	Logger    zerolog.Logger
}

func NewRouter(d Deps) http.Handler {
	products := handlers.NewProductHandler(d.Products, d.Movements)
	orders := handlers.NewOrderHandler(d.Orders)
	drafts := handlers.NewDraftHandler(d.Orders, d.Drafts)
	customers := handlers.NewCustomerHandler(d.Customers, d.Orders)
	stats := handlers.NewStatsHandler(d.Products, d.Orders)

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(requestLogger(d.Logger, d.Metrics))
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(30 * time.Second))

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	if d.Gatherer != nil {
		r.Handle("/metrics", promhttp.HandlerFor(d.Gatherer, promhttp.HandlerOpts{}))
	}

	r.Route("/products", func(r chi.Router) {
		r.Get("/", products.List)
		r.Post("/", products.Create)
		r.Get("/low-stock", products.LowStock)
		r.Get("/{id}", products.Get)
		r.Put("/{id}", products.Update)
		r.Delete("/{id}", products.Delete)
		r.Post("/{id}/restock", products.Restock)
		r.Get("/{id}/movements", products.Movements)
	})

	r.Route("/orders", func(r chi.Router) {
		r.Get("/", orders.List)
		r.Get("/{id}", orders.Get)
		r.Get("/{id}/receipt", orders.Receipt)
	})

	r.Route("/customers", func(r chi.Router) {
		r.Get("/", customers.List)
		r.Post("/", customers.Create)
		r.Get("/{id}", customers.Get)
	})

	r.Route("/drafts", func(r chi.Router) {
		r.Post("/", drafts.Open)
		r.Get("/{id}", drafts.Get)
		r.Put("/{id}", drafts.SetHeader)
		r.Delete("/{id}", drafts.Abandon)
		r.Post("/{id}/items", drafts.AddItem)
		r.Delete("/{id}/items/{productID}", drafts.RemoveItem)
		r.Post("/{id}/confirm", drafts.Confirm)
	})

	r.Get("/stats", stats.Get)

	return r
}

// requestLogger attaches l to the request context and logs one line per
// request. When c is non-nil it also counts requests by route.
func requestLogger(l zerolog.Logger, c *metrics.Collector) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

			reqLog := l.With().Str("request_id", middleware.GetReqID(r.Context())).Logger()
			r = r.WithContext(reqLog.WithContext(r.Context()))

			next.ServeHTTP(ww, r)

			status := ww.Status()
			if status == 0 {
				status = http.StatusOK
			}

			route := r.URL.Path
			if rctx := chi.RouteContext(r.Context()); rctx != nil && rctx.RoutePattern() != "" {
				route = rctx.RoutePattern()
			}

			if c != nil {
				c.HTTPRequests.WithLabelValues(r.Method, route, strconv.Itoa(status)).Inc()
			}

			reqLog.Info().
				Str("method", r.Method).
				Str("route", route).
				Int("status", status).
				Dur("duration", time.Since(start)).
				Msg("request")
		})
	}
}
