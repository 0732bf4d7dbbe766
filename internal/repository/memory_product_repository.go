package repository

import (
	"context"
	"fmt"
	"slices"
	"sync"
	"time"

	"github.com/Sujal-Rajbhandari/inventory-system/internal/models"
)

// MemoryProductRepository keeps products in insertion order. Ids come from a
// counter owned by the store so a deleted id is never handed out again.
type MemoryProductRepository struct {
	mu       sync.RWMutex
	products []models.Product
	lastID   int
	now      func() time.Time
}

func NewMemoryProductRepository() *MemoryProductRepository {
	return &MemoryProductRepository{now: time.Now}
}

// Load replaces the store contents with products that already carry ids,
// advancing the counter past the highest one.
func (r *MemoryProductRepository) Load(products []models.Product) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.products = slices.Clone(products)
	for _, p := range products {
		if p.ID > r.lastID {
			r.lastID = p.ID
		}
	}
}

func (r *MemoryProductRepository) Add(ctx context.Context, p *models.Product) error {
	if err := validateProduct(p); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	r.lastID++
	now := r.now()
	p.ID = r.lastID
	p.CreatedAt = now
	p.UpdatedAt = now

	r.products = append(r.products, *p)
	return nil
}

func (r *MemoryProductRepository) Get(ctx context.Context, id int) (*models.Product, error) {
	if id <= 0 {
		return nil, fmt.Errorf("%w: ID must be positive", ErrInvalidInput)
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	i := r.indexOf(id)
	if i < 0 {
		return nil, ErrNotFound
	}
	p := r.products[i]
	return &p, nil
}

func (r *MemoryProductRepository) List(ctx context.Context, filter ProductFilter) ([]models.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	products := make([]models.Product, 0, len(r.products))
	for _, p := range r.products {
		if matchesFilter(p, filter) {
			products = append(products, p)
		}
	}
	return products, nil
}

func (r *MemoryProductRepository) Edit(ctx context.Context, p *models.Product) error {
	if err := validateProduct(p); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	i := r.indexOf(p.ID)
	if i < 0 {
		return nil
	}
	p.CreatedAt = r.products[i].CreatedAt
	p.UpdatedAt = r.now()
	r.products[i] = *p
	return nil
}

func (r *MemoryProductRepository) Delete(ctx context.Context, id int) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if i := r.indexOf(id); i >= 0 {
		r.products = slices.Delete(r.products, i, i+1)
	}
	return nil
}

func (r *MemoryProductRepository) AdjustStock(ctx context.Context, id int, delta int) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	i := r.indexOf(id)
	if i < 0 {
		return 0, nil
	}
	newStock, applied := clampedDecrement(r.products[i].Stock, delta)
	r.products[i].Stock = newStock
	r.products[i].UpdatedAt = r.now()
	return applied, nil
}

func (r *MemoryProductRepository) Restock(ctx context.Context, id int, quantity int) error {
	if quantity <= 0 {
		return fmt.Errorf("%w: restock quantity must be positive", ErrInvalidInput)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if i := r.indexOf(id); i >= 0 {
		r.products[i].Stock += quantity
		r.products[i].UpdatedAt = r.now()
	}
	return nil
}

func (r *MemoryProductRepository) LowStock(ctx context.Context) ([]models.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	products := []models.Product{}
	for _, p := range r.products {
		if p.LowStock() {
			products = append(products, p)
		}
	}
	return products, nil
}

// indexOf must be called with r.mu held.
func (r *MemoryProductRepository) indexOf(id int) int {
	return slices.IndexFunc(r.products, func(p models.Product) bool { return p.ID == id })
}
