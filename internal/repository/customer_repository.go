package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/Sujal-Rajbhandari/inventory-system/internal/models"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

type customerRepo struct {
	db DB
}

func NewCustomerRepository(db DB) CustomerRepository {
	return &customerRepo{db: db}
}

const customerColumns = `
	id,
	name,
	email,
	phone,
	customer_type,
	created_at`

func scanCustomer(row pgx.Row, c *models.Customer) error {
	return row.Scan(
		&c.ID,
		&c.Name,
		&c.Email,
		&c.Phone,
		&c.Type,
		&c.CreatedAt,
	)
}

func (r *customerRepo) Create(ctx context.Context, c *models.Customer) error {
	if err := validateCustomer(c); err != nil {
		return err
	}

	sql := `
		INSERT INTO customers (
			name,
			email,
			phone,
			customer_type,
			created_at
	) VALUES ($1, $2, $3, $4, $5)
	RETURNING id
	`

	c.CreatedAt = time.Now()

	err := r.db.QueryRow(ctx, sql,
		c.Name,
		c.Email,
		c.Phone,
		c.Type,
		c.CreatedAt,
	).Scan(&c.ID)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" && strings.Contains(pgErr.ConstraintName, "email") {
			return fmt.Errorf("%w: email already exists", ErrDuplicate)
		}
		return fmt.Errorf("create customer: %w", err)
	}

	return nil
}

func (r *customerRepo) GetByID(ctx context.Context, id int) (*models.Customer, error) {
	if id <= 0 {
		return nil, fmt.Errorf("%w: ID must be positive", ErrInvalidInput)
	}

	sql := `SELECT` + customerColumns + ` FROM customers WHERE id = $1`

	var customer models.Customer
	if err := scanCustomer(r.db.QueryRow(ctx, sql, id), &customer); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get customer with id %d: %w", id, err)
	}

	return &customer, nil
}

func (r *customerRepo) List(ctx context.Context, search string) ([]models.Customer, error) {
	sql := `SELECT` + customerColumns + ` FROM customers
	WHERE $1 = '' OR name ILIKE '%' || $1 || '%' OR email ILIKE '%' || $1 || '%'
	ORDER BY id`

	rows, err := r.db.Query(ctx, sql, search)
	if err != nil {
		return nil, fmt.Errorf("failed to get customers: %w", err)
	}
	defer rows.Close()

	customers := []models.Customer{}
	for rows.Next() {
		var c models.Customer
		if err := scanCustomer(rows, &c); err != nil {
			return nil, fmt.Errorf("failed to scan customers: %w", err)
		}
		customers = append(customers, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to complete row iteration: %w", err)
	}

	return customers, nil
}
