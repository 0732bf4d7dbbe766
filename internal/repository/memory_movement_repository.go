package repository

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/Sujal-Rajbhandari/inventory-system/internal/models"
)

type MemoryMovementRepository struct {
	mu        sync.RWMutex
	movements []models.StockMovement
	lastID    int
}

func NewMemoryMovementRepository() *MemoryMovementRepository {
	return &MemoryMovementRepository{}
}

func (r *MemoryMovementRepository) Create(ctx context.Context, m *models.StockMovement) error {
	if err := validateMovement(m); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	r.lastID++
	m.ID = r.lastID
	if m.CreatedAt.IsZero() {
		m.CreatedAt = time.Now()
	}
	r.movements = append(r.movements, *m)
	return nil
}

func (r *MemoryMovementRepository) GetByProductID(ctx context.Context, productID int) ([]models.StockMovement, error) {
	if productID <= 0 {
		return nil, fmt.Errorf("%w: ID must be positive", ErrInvalidInput)
	}
	return r.filter(func(m models.StockMovement) bool { return m.ProductID == productID }), nil
}

func (r *MemoryMovementRepository) GetByOrderID(ctx context.Context, orderID string) ([]models.StockMovement, error) {
	if orderID == "" {
		return nil, fmt.Errorf("%w: order ID cannot be empty", ErrInvalidInput)
	}
	return r.filter(func(m models.StockMovement) bool { return m.OrderID == orderID }), nil
}

func (r *MemoryMovementRepository) filter(keep func(models.StockMovement) bool) []models.StockMovement {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := []models.StockMovement{}
	for _, m := range r.movements {
		if keep(m) {
			out = append(out, m)
		}
	}
	return out
}

func validateMovement(m *models.StockMovement) error {
	if m == nil {
		return fmt.Errorf("%w: movement cannot be nil", ErrInvalidInput)
	}
	if m.ProductID <= 0 {
		return fmt.Errorf("%w: product ID must be positive", ErrInvalidInput)
	}
	if m.Change == 0 {
		return fmt.Errorf("%w: the change quantity cannot be 0", ErrInvalidInput)
	}
	validTypes := map[string]bool{
		models.MovementIncoming:   true,
		models.MovementOutgoing:   true,
		models.MovementAdjustment: true,
	}
	if !validTypes[m.Type] {
		return fmt.Errorf("%w: invalid movement type '%s'", ErrInvalidInput, m.Type)
	}
	return nil
}
