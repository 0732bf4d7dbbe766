package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Sujal-Rajbhandari/inventory-system/internal/models"
	"github.com/jackc/pgx/v5/pgconn"
)

type orderRepo struct {
	db DB
}

func NewOrderRepository(db DB) OrderRepository {
	return &orderRepo{db: db}
}

func (r *orderRepo) NextNumber(ctx context.Context) (int, error) {
	var n int
	if err := r.db.QueryRow(ctx, `SELECT nextval('order_number_seq')`).Scan(&n); err != nil {
		return 0, fmt.Errorf("failed to reserve order number: %w", err)
	}
	return n, nil
}

func (r *orderRepo) Create(ctx context.Context, order *models.Order) error {
	if order == nil {
		return fmt.Errorf("%w: order cannot be nil", ErrInvalidInput)
	}
	if order.ID == "" {
		return fmt.Errorf("%w: order ID cannot be empty", ErrInvalidInput)
	}
	if len(order.Items) == 0 {
		return fmt.Errorf("%w: order items cannot be empty", ErrInvalidInput)
	}

	date, err := time.Parse(models.DateLayout, order.Date)
	if err != nil {
		return fmt.Errorf("%w: invalid order date %q", ErrInvalidInput, order.Date)
	}

	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to create transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	insert := `INSERT INTO orders (
	id,
	customer,
	order_date,
	order_type,
	total_amount,
	payment_status,
	order_status,
	created_at
	) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`

	_, err = tx.Exec(ctx, insert,
		order.ID,
		order.Customer,
		date,
		order.Type,
		order.TotalAmount,
		order.PaymentStatus,
		order.OrderStatus,
		order.CreatedAt,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return fmt.Errorf("%w: order %s already exists", ErrDuplicate, order.ID)
		}
		return fmt.Errorf("failed to create order: %w", err)
	}

	insertItemSQL := `INSERT INTO order_items (
		order_id,
		position,
		product_id,
		product_name,
		quantity,
		unit_price,
		total_price
	) VALUES ($1, $2, $3, $4, $5, $6, $7)
	`
	for i, item := range order.Items {
		_, err = tx.Exec(ctx, insertItemSQL,
			order.ID,
			i,
			item.ProductID,
			item.ProductName,
			item.Quantity,
			item.UnitPrice,
			item.TotalPrice,
		)
		if err != nil {
			return fmt.Errorf("failed to create order item: %w", err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}

func (r *orderRepo) GetByID(ctx context.Context, id string) (*models.Order, error) {
	if id == "" {
		return nil, fmt.Errorf("%w: order ID cannot be empty", ErrInvalidInput)
	}

	sql := `SELECT
	o.id,
	o.customer,
	o.order_date,
	o.order_type,
	o.total_amount,
	o.payment_status,
	o.order_status,
	o.created_at,
	oi.product_id,
	oi.product_name,
	oi.quantity,
	oi.unit_price,
	oi.total_price
	FROM orders o
	JOIN order_items oi ON o.id = oi.order_id
	WHERE o.id = $1
	ORDER BY oi.position
	`

	orders, err := r.collect(ctx, sql, id)
	if err != nil {
		return nil, err
	}
	if len(orders) == 0 {
		return nil, ErrNotFound
	}
	return &orders[0], nil
}

func (r *orderRepo) List(ctx context.Context, search string) ([]models.Order, error) {
	sql := `SELECT
	o.id,
	o.customer,
	o.order_date,
	o.order_type,
	o.total_amount,
	o.payment_status,
	o.order_status,
	o.created_at,
	oi.product_id,
	oi.product_name,
	oi.quantity,
	oi.unit_price,
	oi.total_price
	FROM orders o
	JOIN order_items oi ON o.id = oi.order_id
	WHERE $1 = '' OR o.customer ILIKE '%' || $1 || '%' OR o.id ILIKE '%' || $1 || '%'
	ORDER BY o.created_at DESC, o.id DESC, oi.position
	`

	return r.collect(ctx, sql, search)
}

// collect folds order/item join rows into orders, keeping row order.
func (r *orderRepo) collect(ctx context.Context, sql string, args ...any) ([]models.Order, error) {
	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to get orders with items: %w", err)
	}
	defer rows.Close()

	orders := []models.Order{}
	index := make(map[string]int)

	for rows.Next() {
		var (
			o    models.Order
			date time.Time
			item models.OrderLineItem
		)
		err := rows.Scan(
			&o.ID,
			&o.Customer,
			&date,
			&o.Type,
			&o.TotalAmount,
			&o.PaymentStatus,
			&o.OrderStatus,
			&o.CreatedAt,
			&item.ProductID,
			&item.ProductName,
			&item.Quantity,
			&item.UnitPrice,
			&item.TotalPrice,
		)
		if err != nil {
			return nil, fmt.Errorf("scan order/item: %w", err)
		}

		i, seen := index[o.ID]
		if !seen {
			o.Date = date.Format(models.DateLayout)
			orders = append(orders, o)
			i = len(orders) - 1
			index[o.ID] = i
		}
		orders[i].Items = append(orders[i].Items, item)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration: %w", err)
	}

	return orders, nil
}
