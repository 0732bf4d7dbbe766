package repository

import (
	"context"
	"testing"

	"github.com/Sujal-Rajbhandari/inventory-system/internal/models"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newProduct(name string, stock int, price string) *models.Product {
	return &models.Product{
		Name:         name,
		Category:     "Hand Tools",
		Brand:        "Stanley",
		Stock:        stock,
		Price:        decimal.RequireFromString(price),
		ReorderLevel: 2,
		Image:        "placeholder.svg",
	}
}

func TestMemoryProductRepository_AddAssignsSequentialIDs(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryProductRepository()

	x := newProduct("X", 1, "1.00")
	require.NoError(t, repo.Add(ctx, x))
	assert.Equal(t, 1, x.ID)

	y := newProduct("Y", 1, "1.00")
	require.NoError(t, repo.Add(ctx, y))
	assert.Equal(t, 2, y.ID)

	products, err := repo.List(ctx, ProductFilter{})
	require.NoError(t, err)
	require.Len(t, products, 2)
	assert.Equal(t, "X", products[0].Name)
	assert.Equal(t, "Y", products[1].Name)
}

func TestMemoryProductRepository_IDsAreNotReusedAfterDelete(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryProductRepository()

	a := newProduct("A", 1, "1.00")
	b := newProduct("B", 1, "1.00")
	require.NoError(t, repo.Add(ctx, a))
	require.NoError(t, repo.Add(ctx, b))
	require.NoError(t, repo.Delete(ctx, b.ID))

	c := newProduct("C", 1, "1.00")
	require.NoError(t, repo.Add(ctx, c))
	assert.Equal(t, 3, c.ID)
}

func TestMemoryProductRepository_LoadAdvancesCounter(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryProductRepository()
	repo.Load(SeedProducts())

	p := newProduct("New", 1, "1.00")
	require.NoError(t, repo.Add(ctx, p))
	assert.Equal(t, 9, p.ID)
}

func TestMemoryProductRepository_AddRejectsInvalid(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name   string
		mutate func(p *models.Product)
	}{
		{"empty name", func(p *models.Product) { p.Name = "" }},
		{"blank category", func(p *models.Product) { p.Category = "   " }},
		{"empty brand", func(p *models.Product) { p.Brand = "" }},
		{"negative stock", func(p *models.Product) { p.Stock = -1 }},
		{"negative price", func(p *models.Product) { p.Price = decimal.NewFromInt(-1) }},
		{"negative reorder level", func(p *models.Product) { p.ReorderLevel = -3 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := NewMemoryProductRepository()
			p := newProduct("Hammer", 1, "1.00")
			tt.mutate(p)

			err := repo.Add(ctx, p)
			assert.ErrorIs(t, err, ErrInvalidInput)

			products, _ := repo.List(ctx, ProductFilter{})
			assert.Empty(t, products)
		})
	}
}

func TestMemoryProductRepository_EditReplacesWholesale(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryProductRepository()

	p := newProduct("Hammer", 10, "24.95")
	require.NoError(t, repo.Add(ctx, p))

	edited := &models.Product{
		ID:           p.ID,
		Name:         "Claw Hammer",
		Category:     "Hand Tools",
		Brand:        "Estwing",
		Stock:        4,
		Price:        decimal.RequireFromString("29.50"),
		ReorderLevel: 1,
	}
	require.NoError(t, repo.Edit(ctx, edited))

	got, err := repo.Get(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, "Claw Hammer", got.Name)
	assert.Equal(t, "Estwing", got.Brand)
	assert.Equal(t, 4, got.Stock)
	assert.Equal(t, "", got.Image)
	assert.True(t, got.Price.Equal(decimal.RequireFromString("29.5")))
}

func TestMemoryProductRepository_UnknownIDsAreNoOps(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryProductRepository()
	repo.Load(SeedProducts())
	before, _ := repo.List(ctx, ProductFilter{})

	ghost := newProduct("Ghost", 1, "1.00")
	ghost.ID = 404
	assert.NoError(t, repo.Edit(ctx, ghost))
	assert.NoError(t, repo.Delete(ctx, 404))
	applied, err := repo.AdjustStock(ctx, 404, 3)
	assert.NoError(t, err)
	assert.Zero(t, applied)
	assert.NoError(t, repo.Restock(ctx, 404, 3))

	after, _ := repo.List(ctx, ProductFilter{})
	assert.Equal(t, before, after)

	_, err = repo.Get(ctx, 404)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestMemoryProductRepository_AdjustStockClampsAtZero(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryProductRepository()

	p := newProduct("Tape", 5, "12.99")
	require.NoError(t, repo.Add(ctx, p))

	applied, err := repo.AdjustStock(ctx, p.ID, 3)
	require.NoError(t, err)
	assert.Equal(t, -3, applied)

	applied, err = repo.AdjustStock(ctx, p.ID, 3)
	require.NoError(t, err)
	assert.Equal(t, -2, applied)

	applied, err = repo.AdjustStock(ctx, p.ID, 3)
	require.NoError(t, err)
	assert.Zero(t, applied)

	got, err := repo.Get(ctx, p.ID)
	require.NoError(t, err)
	assert.Zero(t, got.Stock)
}

func TestMemoryProductRepository_Restock(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryProductRepository()

	p := newProduct("Tape", 5, "12.99")
	require.NoError(t, repo.Add(ctx, p))

	require.NoError(t, repo.Restock(ctx, p.ID, 7))
	got, _ := repo.Get(ctx, p.ID)
	assert.Equal(t, 12, got.Stock)

	assert.ErrorIs(t, repo.Restock(ctx, p.ID, 0), ErrInvalidInput)
}

func TestMemoryProductRepository_ListFilter(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryProductRepository()
	repo.Load(SeedProducts())

	tests := []struct {
		name   string
		filter ProductFilter
		want   []int
	}{
		{"all", ProductFilter{}, []int{1, 2, 3, 4, 5, 6, 7, 8}},
		{"category all", ProductFilter{Category: "All"}, []int{1, 2, 3, 4, 5, 6, 7, 8}},
		{"category", ProductFilter{Category: "Power Tools"}, []int{1, 3}},
		{"search name", ProductFilter{Search: "pipe"}, []int{2, 6}},
		{"search brand", ProductFilter{Search: "STANLEY"}, []int{2, 4}},
		{"search and category", ProductFilter{Search: "pipe", Category: "Plumbing"}, []int{6}},
		{"no match", ProductFilter{Search: "chainsaw"}, []int{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			products, err := repo.List(ctx, tt.filter)
			require.NoError(t, err)

			ids := []int{}
			for _, p := range products {
				ids = append(ids, p.ID)
			}
			assert.Equal(t, tt.want, ids)
		})
	}
}

func TestMemoryProductRepository_LowStock(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryProductRepository()
	repo.Load(SeedProducts())

	products, err := repo.LowStock(ctx)
	require.NoError(t, err)

	var names []string
	for _, p := range products {
		names = append(names, p.Name)
	}
	assert.Equal(t, []string{"Measuring Tape 5m", "Drywall Sheet 4x8"}, names)
}
