package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

type Collector struct {
	OrdersCommitted  prometheus.Counter
	DraftRejections  *prometheus.CounterVec
	UnitsDecremented prometheus.Counter
	HTTPRequests     *prometheus.CounterVec
}

// New registers the collectors on reg. Pass prometheus.NewRegistry() in tests
// to avoid clashing with the default registry.
func New(reg prometheus.Registerer) *Collector {
	c := &Collector{
		OrdersCommitted: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "inventory_orders_committed_total",
			Help: "Orders committed from drafts.",
		}),
		DraftRejections: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "inventory_draft_rejections_total",
			Help: "Draft actions rejected by validation, by reason.",
		}, []string{"reason"}),
		UnitsDecremented: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "inventory_stock_units_decremented_total",
			Help: "Stock units removed by committed orders after clamping.",
		}),
		HTTPRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "inventory_http_requests_total",
			Help: "HTTP requests by method, route and status.",
		}, []string{"method", "route", "status"}),
	}

	reg.MustRegister(c.OrdersCommitted, c.DraftRejections, c.UnitsDecremented, c.HTTPRequests)
	return c
}
