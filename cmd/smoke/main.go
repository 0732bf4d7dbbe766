// Command smoke exercises the inventory store and the order flow against the
// configured backend and prints what happened.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/Sujal-Rajbhandari/inventory-system/internal/app"
	"github.com/Sujal-Rajbhandari/inventory-system/internal/config"
	"github.com/Sujal-Rajbhandari/inventory-system/internal/logger"
	"github.com/Sujal-Rajbhandari/inventory-system/internal/models"
	"github.com/Sujal-Rajbhandari/inventory-system/internal/order"
	"github.com/Sujal-Rajbhandari/inventory-system/internal/receipt"
	"github.com/Sujal-Rajbhandari/inventory-system/internal/repository"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load config")
	}
	logger.Init("inventory-smoke", true, cfg.LogLevel)

	ctx := context.Background()

	stores, err := app.OpenStores(ctx, cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to open stores")
	}
	defer stores.Close()

	product := testInventory(ctx, stores.Products)
	testOrderFlow(ctx, stores, product)
}

func testInventory(ctx context.Context, products repository.ProductRepository) *models.Product {
	fmt.Println("\n=== Testing inventory store ===")

	p := &models.Product{
		Name:         "Smoke Test Level 600mm",
		Category:     "Measuring",
		Brand:        "Stabila",
		Stock:        5,
		Price:        decimal.RequireFromString("10.00"),
		ReorderLevel: 2,
		Image:        "placeholder.svg",
	}
	if err := products.Add(ctx, p); err != nil {
		log.Fatal().Err(err).Msg("❌ Add failed")
	}
	fmt.Printf("✅ Add assigned id %d\n", p.ID)

	err := products.Add(ctx, &models.Product{Category: "Measuring", Brand: "Stabila"})
	if !errors.Is(err, repository.ErrInvalidInput) {
		log.Fatal().Err(err).Msg("❌ Add should reject a product without a name")
	}
	fmt.Println("✅ Add rejects missing name")

	if err := products.Delete(ctx, 999999); err != nil {
		log.Fatal().Err(err).Msg("❌ Delete of unknown id should be a no-op")
	}
	fmt.Println("✅ Delete of unknown id is a no-op")

	return p
}

func testOrderFlow(ctx context.Context, stores *app.Stores, p *models.Product) {
	fmt.Println("\n=== Testing order composition ===")

	var created []models.Order
	service := order.NewService(stores.Products, stores.Orders, stores.Movements,
		order.WithOrderCreated(func(o models.Order) { created = append(created, o) }),
		order.WithPrinter(func(o models.Order) {
			if err := receipt.Render(os.Stdout, o); err != nil {
				log.Error().Err(err).Msg("render failed")
			}
		}),
	)

	d := order.NewDraft("smoke")

	if err := service.AddItem(ctx, d, p.ID, 3); err != nil {
		log.Fatal().Err(err).Msg("❌ AddItem failed")
	}
	fmt.Println("✅ Added 3 units")

	if err := service.AddItem(ctx, d, p.ID, 3); !errors.Is(err, order.ErrInsufficientStockTotal) {
		log.Fatal().Err(err).Msg("❌ second add should exceed stock")
	}
	fmt.Printf("✅ Second add rejected, draft still holds %d units\n", d.Items()[0].Quantity)

	if _, err := service.Confirm(ctx, d); !errors.Is(err, order.ErrCustomerRequired) {
		log.Fatal().Err(err).Msg("❌ Confirm should require a customer")
	}
	fmt.Println("✅ Confirm requires a customer")

	if err := d.SetHeader("Smoke Test Customer", models.OrderTypeRetail, models.PaymentPaid); err != nil {
		log.Fatal().Err(err).Msg("❌ SetHeader failed")
	}

	o, err := service.Confirm(ctx, d)
	if err != nil {
		log.Fatal().Err(err).Msg("❌ Confirm failed")
	}
	fmt.Printf("✅ Committed %s total %s\n", o.ID, o.TotalAmount.StringFixed(2))

	after, err := stores.Products.Get(ctx, p.ID)
	if err != nil {
		log.Fatal().Err(err).Msg("❌ Get after commit failed")
	}
	if after.Stock != 2 {
		log.Fatal().Int("stock", after.Stock).Msg("❌ stock should be 2 after committing 3 of 5")
	}
	fmt.Println("✅ Stock decremented to 2")

	if len(created) != 1 {
		log.Fatal().Int("calls", len(created)).Msg("❌ created callback should fire once")
	}
	fmt.Println("✅ Created callback fired once")

	if err := stores.Products.Delete(ctx, p.ID); err != nil {
		log.Fatal().Err(err).Msg("❌ cleanup failed")
	}
}
