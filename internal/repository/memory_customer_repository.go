package repository

import (
	"context"
	"fmt"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/Sujal-Rajbhandari/inventory-system/internal/models"
)

type MemoryCustomerRepository struct {
	mu        sync.RWMutex
	customers []models.Customer
	lastID    int
	now       func() time.Time
}

func NewMemoryCustomerRepository() *MemoryCustomerRepository {
	return &MemoryCustomerRepository{now: time.Now}
}

// Load replaces the stored customers and advances the id counter past the
// highest id among them.
func (r *MemoryCustomerRepository) Load(customers []models.Customer) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.customers = slices.Clone(customers)
	for _, c := range customers {
		r.lastID = max(r.lastID, c.ID)
	}
}

func (r *MemoryCustomerRepository) Create(ctx context.Context, c *models.Customer) error {
	if err := validateCustomer(c); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if slices.ContainsFunc(r.customers, func(existing models.Customer) bool {
		return strings.EqualFold(existing.Email, c.Email)
	}) {
		return fmt.Errorf("%w: email already exists", ErrDuplicate)
	}

	r.lastID++
	c.ID = r.lastID
	c.CreatedAt = r.now()
	r.customers = append(r.customers, *c)
	return nil
}

func (r *MemoryCustomerRepository) GetByID(ctx context.Context, id int) (*models.Customer, error) {
	if id <= 0 {
		return nil, fmt.Errorf("%w: ID must be positive", ErrInvalidInput)
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, c := range r.customers {
		if c.ID == id {
			return &c, nil
		}
	}
	return nil, ErrNotFound
}

func (r *MemoryCustomerRepository) List(ctx context.Context, search string) ([]models.Customer, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	customers := []models.Customer{}
	for _, c := range r.customers {
		if matchesCustomer(c, search) {
			customers = append(customers, c)
		}
	}
	return customers, nil
}
