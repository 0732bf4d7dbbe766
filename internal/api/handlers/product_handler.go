package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/Sujal-Rajbhandari/inventory-system/internal/models"
	"github.com/Sujal-Rajbhandari/inventory-system/internal/repository"
	"github.com/shopspring/decimal"
)

type ProductHandler struct {
	repo      repository.ProductRepository
	movements repository.MovementRepository
}

func NewProductHandler(repo repository.ProductRepository, movements repository.MovementRepository) *ProductHandler {
	return &ProductHandler{repo: repo, movements: movements}
}

type ProductRequest struct {
	Name         string          `json:"name"`
	Category     string          `json:"category"`
	Brand        string          `json:"brand"`
	Stock        int             `json:"stock"`
	Price        decimal.Decimal `json:"price"`
	ReorderLevel int             `json:"reorder_level"`
	Image        string          `json:"image"`
}

func (req ProductRequest) product(id int) models.Product {
	return models.Product{
		ID:           id,
		Name:         req.Name,
		Category:     req.Category,
		Brand:        req.Brand,
		Stock:        req.Stock,
		Price:        req.Price,
		ReorderLevel: req.ReorderLevel,
		Image:        req.Image,
	}
}

type RestockRequest struct {
	Quantity int `json:"quantity"`
}

func (h *ProductHandler) List(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	products, err := h.repo.List(r.Context(), repository.ProductFilter{
		Search:   q.Get("search"),
		Category: q.Get("category"),
	})
	if err != nil {
		writeFailure(w, r, err, "failed to get products")
		return
	}

	writeJSON(w, http.StatusOK, products)
}

func (h *ProductHandler) LowStock(w http.ResponseWriter, r *http.Request) {
	products, err := h.repo.LowStock(r.Context())
	if err != nil {
		writeFailure(w, r, err, "failed to get low stock products")
		return
	}

	writeJSON(w, http.StatusOK, products)
}

func (h *ProductHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := intParam(w, r, "id")
	if !ok {
		return
	}

	product, err := h.repo.Get(r.Context(), id)
	if err != nil {
		writeFailure(w, r, err, "failed to get product")
		return
	}

	writeJSON(w, http.StatusOK, product)
}

func (h *ProductHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req ProductRequest
	if ok := decodeJSON(w, r, &req); !ok {
		return
	}

	p := req.product(0)
	if err := h.repo.Add(r.Context(), &p); err != nil {
		writeFailure(w, r, err, "failed to create product")
		return
	}

	w.Header().Set("Location", "/products/"+strconv.Itoa(p.ID))
	writeJSON(w, http.StatusCreated, p)
}

// Update replaces the product wholesale. An unknown id is not an error: the
// store ignores it and the response is 204.
func (h *ProductHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := intParam(w, r, "id")
	if !ok {
		return
	}

	var req ProductRequest
	if ok := decodeJSON(w, r, &req); !ok {
		return
	}

	p := req.product(id)
	if err := h.repo.Edit(r.Context(), &p); err != nil {
		writeFailure(w, r, err, "failed to update product")
		return
	}

	h.writeCurrent(w, r, id)
}

func (h *ProductHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := intParam(w, r, "id")
	if !ok {
		return
	}

	if err := h.repo.Delete(r.Context(), id); err != nil {
		writeFailure(w, r, err, "failed to delete product")
		return
	}

	writeJSON(w, http.StatusNoContent, nil)
}

func (h *ProductHandler) Restock(w http.ResponseWriter, r *http.Request) {
	id, ok := intParam(w, r, "id")
	if !ok {
		return
	}

	var req RestockRequest
	if ok := decodeJSON(w, r, &req); !ok {
		return
	}

	if err := h.repo.Restock(r.Context(), id, req.Quantity); err != nil {
		writeFailure(w, r, err, "failed to restock product")
		return
	}

	product, err := h.repo.Get(r.Context(), id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			writeJSON(w, http.StatusNoContent, nil)
			return
		}
		writeFailure(w, r, err, "failed to get product")
		return
	}

	m := models.StockMovement{
		ProductID: id,
		Type:      models.MovementIncoming,
		Change:    req.Quantity,
		Applied:   req.Quantity,
	}
	if err := h.movements.Create(r.Context(), &m); err != nil {
		writeFailure(w, r, err, "failed to record stock movement")
		return
	}

	writeJSON(w, http.StatusOK, product)
}

func (h *ProductHandler) Movements(w http.ResponseWriter, r *http.Request) {
	id, ok := intParam(w, r, "id")
	if !ok {
		return
	}

	movements, err := h.movements.GetByProductID(r.Context(), id)
	if err != nil {
		writeFailure(w, r, err, "failed to get stock movements")
		return
	}

	writeJSON(w, http.StatusOK, movements)
}

func (h *ProductHandler) writeCurrent(w http.ResponseWriter, r *http.Request, id int) {
	product, err := h.repo.Get(r.Context(), id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			writeJSON(w, http.StatusNoContent, nil)
			return
		}
		writeFailure(w, r, err, "failed to get product")
		return
	}

	writeJSON(w, http.StatusOK, product)
}
