package handlers

import (
	"bytes"
	"net/http"

	"github.com/Sujal-Rajbhandari/inventory-system/internal/order"
	"github.com/Sujal-Rajbhandari/inventory-system/internal/receipt"
	"github.com/go-chi/chi/v5"
)

type OrderHandler struct {
	service *order.Service
}

func NewOrderHandler(service *order.Service) *OrderHandler {
	return &OrderHandler{service: service}
}

func (h *OrderHandler) List(w http.ResponseWriter, r *http.Request) {
	orders, err := h.service.Orders(r.Context(), r.URL.Query().Get("search"))
	if err != nil {
		writeFailure(w, r, err, "failed to get orders")
		return
	}

	writeJSON(w, http.StatusOK, orders)
}

func (h *OrderHandler) Get(w http.ResponseWriter, r *http.Request) {
	o, err := h.service.Order(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeFailure(w, r, err, "failed to get order")
		return
	}

	writeJSON(w, http.StatusOK, o)
}

func (h *OrderHandler) Receipt(w http.ResponseWriter, r *http.Request) {
	o, err := h.service.Order(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeFailure(w, r, err, "failed to get order")
		return
	}

	var buf bytes.Buffer
	if err := receipt.Render(&buf, *o); err != nil {
		writeFailure(w, r, err, "failed to render receipt")
		return
	}

	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(buf.Bytes())
}
