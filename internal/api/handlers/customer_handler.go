package handlers

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/Sujal-Rajbhandari/inventory-system/internal/models"
	"github.com/Sujal-Rajbhandari/inventory-system/internal/order"
	"github.com/Sujal-Rajbhandari/inventory-system/internal/repository"
	"github.com/shopspring/decimal"
)

type CustomerHandler struct {
	repo    repository.CustomerRepository
	service *order.Service
}

func NewCustomerHandler(repo repository.CustomerRepository, service *order.Service) *CustomerHandler {
	return &CustomerHandler{repo: repo, service: service}
}

type CustomerRequest struct {
	Name  string           `json:"name"`
	Email string           `json:"email"`
	Phone string           `json:"phone"`
	Type  models.OrderType `json:"type"`
}

func (h *CustomerHandler) List(w http.ResponseWriter, r *http.Request) {
	customers, err := h.repo.List(r.Context(), r.URL.Query().Get("search"))
	if err != nil {
		writeFailure(w, r, err, "failed to get customers")
		return
	}

	orders, err := h.service.Orders(r.Context(), "")
	if err != nil {
		writeFailure(w, r, err, "failed to get orders")
		return
	}

	writeJSON(w, http.StatusOK, SummarizeCustomers(customers, orders))
}

func (h *CustomerHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := intParam(w, r, "id")
	if !ok {
		return
	}

	customer, err := h.repo.GetByID(r.Context(), id)
	if err != nil {
		writeFailure(w, r, err, "failed to get customer")
		return
	}

	orders, err := h.service.Orders(r.Context(), "")
	if err != nil {
		writeFailure(w, r, err, "failed to get orders")
		return
	}

	writeJSON(w, http.StatusOK, SummarizeCustomers([]models.Customer{*customer}, orders)[0])
}

func (h *CustomerHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req CustomerRequest
	if ok := decodeJSON(w, r, &req); !ok {
		return
	}

	c := models.Customer{Name: req.Name, Email: req.Email, Phone: req.Phone, Type: req.Type}
	if err := h.repo.Create(r.Context(), &c); err != nil {
		writeFailure(w, r, err, "failed to create customer")
		return
	}

	w.Header().Set("Location", "/customers/"+strconv.Itoa(c.ID))
	writeJSON(w, http.StatusCreated, models.CustomerSummary{Customer: c, TotalSpent: decimal.Zero})
}

// SummarizeCustomers attaches order figures to each customer. Orders match
// on the trimmed name, ignoring case. Every order counts toward Orders;
// canceled ones are left out of TotalSpent.
func SummarizeCustomers(customers []models.Customer, orders []models.Order) []models.CustomerSummary {
	byName := make(map[string]*models.CustomerSummary, len(customers))
	out := make([]models.CustomerSummary, len(customers))
	for i, c := range customers {
		out[i] = models.CustomerSummary{Customer: c, TotalSpent: decimal.Zero}
		byName[customerKey(c.Name)] = &out[i]
	}

	for _, o := range orders {
		s, ok := byName[customerKey(o.Customer)]
		if !ok {
			continue
		}
		s.Orders++
		if o.OrderStatus != models.OrderCanceled {
			s.TotalSpent = s.TotalSpent.Add(o.TotalAmount)
		}
		// Dates are YYYY-MM-DD, so string order is date order.
		if o.Date > s.LastOrder {
			s.LastOrder = o.Date
		}
	}

	return out
}

func customerKey(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}
