package repository

import (
	"context"
	"fmt"
	"slices"
	"strings"
	"sync"

	"github.com/Sujal-Rajbhandari/inventory-system/internal/models"
)

type MemoryOrderRepository struct {
	mu         sync.RWMutex
	orders     []models.Order
	lastNumber int
}

func NewMemoryOrderRepository() *MemoryOrderRepository {
	return &MemoryOrderRepository{}
}

// Load replaces the stored orders and moves the sequence past the highest
// ORD-<n> among them.
func (r *MemoryOrderRepository) Load(orders []models.Order) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	last := r.lastNumber
	for _, o := range orders {
		n, err := models.ParseOrderNumber(o.ID)
		if err != nil {
			return fmt.Errorf("%w: %v", ErrInvalidInput, err)
		}
		last = max(last, n)
	}

	r.orders = slices.Clone(orders)
	r.lastNumber = last
	return nil
}

func (r *MemoryOrderRepository) NextNumber(ctx context.Context) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.lastNumber++
	return r.lastNumber, nil
}

func (r *MemoryOrderRepository) Create(ctx context.Context, order *models.Order) error {
	if order == nil {
		return fmt.Errorf("%w: order cannot be nil", ErrInvalidInput)
	}
	if order.ID == "" {
		return fmt.Errorf("%w: order ID cannot be empty", ErrInvalidInput)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if slices.ContainsFunc(r.orders, func(o models.Order) bool { return o.ID == order.ID }) {
		return fmt.Errorf("%w: order %s already exists", ErrDuplicate, order.ID)
	}

	stored := *order
	stored.Items = slices.Clone(order.Items)
	r.orders = append(r.orders, stored)
	return nil
}

func (r *MemoryOrderRepository) GetByID(ctx context.Context, id string) (*models.Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, o := range r.orders {
		if o.ID == id {
			o.Items = slices.Clone(o.Items)
			return &o, nil
		}
	}
	return nil, ErrNotFound
}

// List returns orders newest first, optionally filtered by a case-insensitive
// match on customer or order id.
func (r *MemoryOrderRepository) List(ctx context.Context, search string) ([]models.Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	term := strings.ToLower(search)
	orders := make([]models.Order, 0, len(r.orders))
	for i := len(r.orders) - 1; i >= 0; i-- {
		o := r.orders[i]
		if term != "" &&
			!strings.Contains(strings.ToLower(o.Customer), term) &&
			!strings.Contains(strings.ToLower(o.ID), term) {
			continue
		}
		o.Items = slices.Clone(o.Items)
		orders = append(orders, o)
	}
	return orders, nil
}
