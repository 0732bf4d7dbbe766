package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/Sujal-Rajbhandari/inventory-system/internal/models"
	"github.com/jackc/pgx/v5"
)

type productRepo struct {
	db DB
}

func NewProductRepository(db DB) ProductRepository {
	return &productRepo{db: db}
}

const productColumns = `
	id,
	name,
	category,
	brand,
	stock,
	price,
	reorder_level,
	image,
	created_at,
	updated_at`

func scanProduct(row pgx.Row, p *models.Product) error {
	return row.Scan(
		&p.ID,
		&p.Name,
		&p.Category,
		&p.Brand,
		&p.Stock,
		&p.Price,
		&p.ReorderLevel,
		&p.Image,
		&p.CreatedAt,
		&p.UpdatedAt,
	)
}

func (r *productRepo) Add(ctx context.Context, p *models.Product) error {
	if err := validateProduct(p); err != nil {
		return err
	}

	sql := `
		INSERT INTO products (
			name,
			category,
			brand,
			stock,
			price,
			reorder_level,
			image,
			created_at,
			updated_at
	) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	RETURNING id
	`

	now := time.Now()
	p.CreatedAt = now
	p.UpdatedAt = now

	err := r.db.QueryRow(ctx, sql,
		p.Name,
		p.Category,
		p.Brand,
		p.Stock,
		p.Price,
		p.ReorderLevel,
		p.Image,
		p.CreatedAt,
		p.UpdatedAt,
	).Scan(&p.ID)
	if err != nil {
		return fmt.Errorf("failed to add product: %w", err)
	}

	return nil
}

func (r *productRepo) Get(ctx context.Context, id int) (*models.Product, error) {
	if id <= 0 {
		return nil, fmt.Errorf("%w: ID must be positive", ErrInvalidInput)
	}

	sql := `SELECT` + productColumns + ` FROM products WHERE id = $1`

	var product models.Product
	if err := scanProduct(r.db.QueryRow(ctx, sql, id), &product); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get product by id %d: %w", id, err)
	}

	return &product, nil
}

func (r *productRepo) List(ctx context.Context, filter ProductFilter) ([]models.Product, error) {
	var (
		where []string
		args  []any
	)
	if filter.Category != "" && filter.Category != "All" {
		args = append(args, filter.Category)
		where = append(where, fmt.Sprintf("category = $%d", len(args)))
	}
	if filter.Search != "" {
		args = append(args, "%"+filter.Search+"%")
		where = append(where, fmt.Sprintf("(name ILIKE $%d OR brand ILIKE $%d)", len(args), len(args)))
	}

	sql := `SELECT` + productColumns + ` FROM products`
	if len(where) > 0 {
		sql += " WHERE " + strings.Join(where, " AND ")
	}
	sql += " ORDER BY id"

	return r.query(ctx, sql, args...)
}

func (r *productRepo) Edit(ctx context.Context, p *models.Product) error {
	if err := validateProduct(p); err != nil {
		return err
	}

	sql := `
	UPDATE products
	SET
		name = $1,
		category = $2,
		brand = $3,
		stock = $4,
		price = $5,
		reorder_level = $6,
		image = $7,
		updated_at = $8
	WHERE id = $9
	RETURNING created_at, updated_at
	`

	err := r.db.QueryRow(ctx, sql,
		p.Name,
		p.Category,
		p.Brand,
		p.Stock,
		p.Price,
		p.ReorderLevel,
		p.Image,
		time.Now(),
		p.ID,
	).Scan(&p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil
		}
		return fmt.Errorf("failed to edit product %d: %w", p.ID, err)
	}

	return nil
}

func (r *productRepo) Delete(ctx context.Context, id int) error {
	if _, err := r.db.Exec(ctx, `DELETE FROM products WHERE id = $1`, id); err != nil {
		return fmt.Errorf("failed to delete product %d: %w", id, err)
	}
	return nil
}

func (r *productRepo) AdjustStock(ctx context.Context, id int, delta int) (int, error) {
	sql := `
	WITH old AS (
		SELECT stock FROM products WHERE id = $3 FOR UPDATE
	)
	UPDATE products p SET
		stock = GREATEST(p.stock - $1, 0),
		updated_at = $2
	FROM old
	WHERE p.id = $3
	RETURNING p.stock - old.stock
	`

	var applied int
	err := r.db.QueryRow(ctx, sql, delta, time.Now(), id).Scan(&applied)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, nil
		}
		return 0, fmt.Errorf("failed to adjust stock of product %d: %w", id, err)
	}

	return applied, nil
}

func (r *productRepo) Restock(ctx context.Context, id int, quantity int) error {
	if quantity <= 0 {
		return fmt.Errorf("%w: restock quantity must be positive", ErrInvalidInput)
	}

	sql := `UPDATE products SET
		stock = stock + $1,
		updated_at = $2
	WHERE id = $3
	`

	if _, err := r.db.Exec(ctx, sql, quantity, time.Now(), id); err != nil {
		return fmt.Errorf("failed to restock product %d: %w", id, err)
	}
	return nil
}

func (r *productRepo) LowStock(ctx context.Context) ([]models.Product, error) {
	sql := `SELECT` + productColumns + ` FROM products WHERE stock <= reorder_level ORDER BY id`
	return r.query(ctx, sql)
}

func (r *productRepo) query(ctx context.Context, sql string, args ...any) ([]models.Product, error) {
	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query products: %w", err)
	}
	defer rows.Close()

	products := []models.Product{}
	for rows.Next() {
		var p models.Product
		if err := scanProduct(rows, &p); err != nil {
			return nil, fmt.Errorf("failed to scan products: %w", err)
		}
		products = append(products, p)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to complete row iteration: %w", err)
	}

	return products, nil
}
