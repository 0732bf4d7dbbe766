package handlers

import (
	"net/http"

	"github.com/Sujal-Rajbhandari/inventory-system/internal/models"
	"github.com/Sujal-Rajbhandari/inventory-system/internal/order"
	"github.com/go-chi/chi/v5"
)

// DraftHandler drives the order composition flow over HTTP. Each draft lives
// in the registry until it is confirmed or abandoned.
type DraftHandler struct {
	service  *order.Service
	registry *order.Registry
}

func NewDraftHandler(service *order.Service, registry *order.Registry) *DraftHandler {
	return &DraftHandler{service: service, registry: registry}
}

type DraftHeaderRequest struct {
	Customer      string               `json:"customer"`
	Type          models.OrderType     `json:"type"`
	PaymentStatus models.PaymentStatus `json:"payment_status"`
}

type AddItemRequest struct {
	ProductID int `json:"product_id"`
	Quantity  int `json:"quantity"`
}

func (h *DraftHandler) Open(w http.ResponseWriter, r *http.Request) {
	d := h.registry.Open()
	w.Header().Set("Location", "/drafts/"+d.ID)
	writeJSON(w, http.StatusCreated, d.View())
}

func (h *DraftHandler) Get(w http.ResponseWriter, r *http.Request) {
	d, ok := h.draft(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, d.View())
}

func (h *DraftHandler) SetHeader(w http.ResponseWriter, r *http.Request) {
	d, ok := h.draft(w, r)
	if !ok {
		return
	}

	var req DraftHeaderRequest
	if ok := decodeJSON(w, r, &req); !ok {
		return
	}

	if err := h.service.SetHeader(d, req.Customer, req.Type, req.PaymentStatus); err != nil {
		writeFailure(w, r, err, "failed to update draft")
		return
	}

	writeJSON(w, http.StatusOK, d.View())
}

func (h *DraftHandler) AddItem(w http.ResponseWriter, r *http.Request) {
	d, ok := h.draft(w, r)
	if !ok {
		return
	}

	var req AddItemRequest
	if ok := decodeJSON(w, r, &req); !ok {
		return
	}

	if err := h.service.AddItem(r.Context(), d, req.ProductID, req.Quantity); err != nil {
		writeFailure(w, r, err, "failed to add item")
		return
	}

	writeJSON(w, http.StatusOK, d.View())
}

func (h *DraftHandler) RemoveItem(w http.ResponseWriter, r *http.Request) {
	d, ok := h.draft(w, r)
	if !ok {
		return
	}

	productID, ok := intParam(w, r, "productID")
	if !ok {
		return
	}

	if err := h.service.RemoveItem(d, productID); err != nil {
		writeFailure(w, r, err, "failed to remove item")
		return
	}

	writeJSON(w, http.StatusOK, d.View())
}

func (h *DraftHandler) Confirm(w http.ResponseWriter, r *http.Request) {
	d, ok := h.draft(w, r)
	if !ok {
		return
	}

	o, err := h.service.Confirm(r.Context(), d)
	if err != nil {
		writeFailure(w, r, err, "failed to create order")
		return
	}
	h.registry.Remove(d.ID)

	w.Header().Set("Location", "/orders/"+o.ID)
	writeJSON(w, http.StatusCreated, o)
}

func (h *DraftHandler) Abandon(w http.ResponseWriter, r *http.Request) {
	d, ok := h.draft(w, r)
	if !ok {
		return
	}

	h.service.Abandon(d)
	h.registry.Remove(d.ID)

	writeJSON(w, http.StatusNoContent, nil)
}

func (h *DraftHandler) draft(w http.ResponseWriter, r *http.Request) (*order.Draft, bool) {
	d, ok := h.registry.Get(chi.URLParam(r, "id"))
	if !ok {
		writeError(w, http.StatusNotFound, "not_found", "draft not found", nil)
		return nil, false
	}
	return d, true
}
