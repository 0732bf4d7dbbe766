package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/Sujal-Rajbhandari/inventory-system/internal/models"
)

type movementRepo struct {
	db DB
}

func NewMovementRepository(db DB) MovementRepository {
	return &movementRepo{db: db}
}

func (r *movementRepo) Create(ctx context.Context, m *models.StockMovement) error {
	if err := validateMovement(m); err != nil {
		return err
	}

	var orderID any
	if m.OrderID != "" {
		orderID = m.OrderID
	}

	sql := ` INSERT INTO stock_movements (
		product_id,
		order_id,
		movement_type,
		change_quant,
		applied_quant,
		created_at
		) VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id
	`

	if m.CreatedAt.IsZero() {
		m.CreatedAt = time.Now()
	}

	err := r.db.QueryRow(ctx, sql,
		m.ProductID,
		orderID,
		m.Type,
		m.Change,
		m.Applied,
		m.CreatedAt,
	).Scan(&m.ID)
	if err != nil {
		return fmt.Errorf("failed to create stock movement: %w", err)
	}
	return nil
}

func (r *movementRepo) GetByProductID(ctx context.Context, productID int) ([]models.StockMovement, error) {
	if productID <= 0 {
		return nil, fmt.Errorf("%w: ID must be positive", ErrInvalidInput)
	}

	sql := `SELECT
		id,
		product_id,
		COALESCE(order_id, ''),
		movement_type,
		change_quant,
		applied_quant,
		created_at
		FROM stock_movements
		WHERE product_id = $1
		ORDER BY id
		`
	return r.query(ctx, sql, productID)
}

func (r *movementRepo) GetByOrderID(ctx context.Context, orderID string) ([]models.StockMovement, error) {
	if orderID == "" {
		return nil, fmt.Errorf("%w: order ID cannot be empty", ErrInvalidInput)
	}

	sql := ` SELECT
		id,
		product_id,
		COALESCE(order_id, ''),
		movement_type,
		change_quant,
		applied_quant,
		created_at
		FROM stock_movements
		WHERE order_id = $1
		ORDER BY id
		`
	return r.query(ctx, sql, orderID)
}

func (r *movementRepo) query(ctx context.Context, sql string, args ...any) ([]models.StockMovement, error) {
	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to get stock movements: %w", err)
	}
	defer rows.Close()

	movements := []models.StockMovement{}
	for rows.Next() {
		var m models.StockMovement
		err := rows.Scan(&m.ID,
			&m.ProductID,
			&m.OrderID,
			&m.Type,
			&m.Change,
			&m.Applied,
			&m.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan stock movements: %w", err)
		}
		movements = append(movements, m)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to complete rows iteration: %w", err)
	}

	return movements, nil
}
