package handlers

import (
	"net/http"

	"github.com/Sujal-Rajbhandari/inventory-system/internal/models"
	"github.com/Sujal-Rajbhandari/inventory-system/internal/order"
	"github.com/Sujal-Rajbhandari/inventory-system/internal/repository"
	"github.com/shopspring/decimal"
)

type StatsHandler struct {
	products repository.ProductRepository
	service  *order.Service
}

func NewStatsHandler(products repository.ProductRepository, service *order.Service) *StatsHandler {
	return &StatsHandler{products: products, service: service}
}

type Stats struct {
	Products       int             `json:"products"`
	TotalUnits     int             `json:"total_units"`
	InventoryValue decimal.Decimal `json:"inventory_value"`
	LowStock       int             `json:"low_stock"`
	Orders         int             `json:"orders"`
	PendingOrders  int             `json:"pending_orders"`
	Revenue        decimal.Decimal `json:"revenue"`
}

// Get summarizes the catalogue and order history for the dashboard. Canceled
// orders do not count toward revenue.
func (h *StatsHandler) Get(w http.ResponseWriter, r *http.Request) {
	products, err := h.products.List(r.Context(), repository.ProductFilter{})
	if err != nil {
		writeFailure(w, r, err, "failed to get products")
		return
	}

	orders, err := h.service.Orders(r.Context(), "")
	if err != nil {
		writeFailure(w, r, err, "failed to get orders")
		return
	}

	writeJSON(w, http.StatusOK, ComputeStats(products, orders))
}

func ComputeStats(products []models.Product, orders []models.Order) Stats {
	s := Stats{
		Products:       len(products),
		InventoryValue: decimal.Zero,
		Orders:         len(orders),
		Revenue:        decimal.Zero,
	}

	for _, p := range products {
		s.TotalUnits += p.Stock
		s.InventoryValue = s.InventoryValue.Add(p.Value())
		if p.LowStock() {
			s.LowStock++
		}
	}

	for _, o := range orders {
		switch o.OrderStatus {
		case models.OrderCanceled:
			continue
		case models.OrderPending:
			s.PendingOrders++
		}
		s.Revenue = s.Revenue.Add(o.TotalAmount)
	}

	return s
}
