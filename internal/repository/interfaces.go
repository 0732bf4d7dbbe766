package repository

import (
	"context"

	"github.com/Sujal-Rajbhandari/inventory-system/internal/models"
)

// ProductFilter narrows List results. Empty fields match everything and the
// category "All" is treated as empty.
type ProductFilter struct {
	Search   string
	Category string
}

// ProductRepository is the inventory store. Mutators on an unknown id are
// silent no-ops; only Get reports ErrNotFound.
type ProductRepository interface {
	Add(ctx context.Context, product *models.Product) error
	Get(ctx context.Context, id int) (*models.Product, error)
	List(ctx context.Context, filter ProductFilter) ([]models.Product, error)
	Edit(ctx context.Context, product *models.Product) error
	Delete(ctx context.Context, id int) error

	// AdjustStock sets stock to max(0, stock-delta) and returns the change
	// actually applied (zero or negative for a decrement).
	AdjustStock(ctx context.Context, id int, delta int) (int, error)
	Restock(ctx context.Context, id int, quantity int) error
	LowStock(ctx context.Context) ([]models.Product, error)
}

type OrderRepository interface {
	// NextNumber reserves the next order sequence number. Numbers are never
	// handed out twice.
	NextNumber(ctx context.Context) (int, error)
	Create(ctx context.Context, order *models.Order) error
	GetByID(ctx context.Context, id string) (*models.Order, error)
	List(ctx context.Context, search string) ([]models.Order, error)
}

type MovementRepository interface {
	Create(ctx context.Context, movement *models.StockMovement) error
	GetByProductID(ctx context.Context, productID int) ([]models.StockMovement, error)
	GetByOrderID(ctx context.Context, orderID string) ([]models.StockMovement, error)
}

// CustomerRepository stores customer accounts. Emails are unique,
// case-insensitively.
type CustomerRepository interface {
	Create(ctx context.Context, customer *models.Customer) error
	GetByID(ctx context.Context, id int) (*models.Customer, error)
	// List matches search case-insensitively against name and email.
	List(ctx context.Context, search string) ([]models.Customer, error)
}
