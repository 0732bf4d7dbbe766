package app

import (
	"context"
	"fmt"

	"github.com/Sujal-Rajbhandari/inventory-system/internal/cache"
	"github.com/Sujal-Rajbhandari/inventory-system/internal/config"
	"github.com/Sujal-Rajbhandari/inventory-system/internal/database"
	"github.com/Sujal-Rajbhandari/inventory-system/internal/models"
	"github.com/Sujal-Rajbhandari/inventory-system/internal/repository"
	"github.com/rs/zerolog/log"
)

// Stores is the set of repositories the service runs on, plus whatever
// connections they hold.
type Stores struct {
	Products  repository.ProductRepository
	Orders    repository.OrderRepository
	Movements repository.MovementRepository
	Customers repository.CustomerRepository

	closers []func()
}

func (s *Stores) Close() {
	for i := len(s.closers) - 1; i >= 0; i-- {
		s.closers[i]()
	}
}

// OpenStores builds the configured backend, optionally fronted by Redis.
func OpenStores(ctx context.Context, cfg *config.Config) (*Stores, error) {
	s := &Stores{}

	switch cfg.Storage {
	case config.StoragePostgres:
		pool, err := database.Connect(ctx, cfg.Database)
		if err != nil {
			return nil, err
		}
		s.closers = append(s.closers, pool.Close)

		if err := database.Migrate(ctx, pool); err != nil {
			s.Close()
			return nil, fmt.Errorf("migrations failed: %w", err)
		}

		s.Products = repository.NewProductRepository(pool)
		s.Orders = repository.NewOrderRepository(pool)
		s.Movements = repository.NewMovementRepository(pool)
		s.Customers = repository.NewCustomerRepository(pool)
		log.Info().Str("host", cfg.Database.Host).Str("db", cfg.Database.DBName).Msg("using postgres storage")

	default:
		mem, err := memoryStores(cfg.SeedData)
		if err != nil {
			return nil, err
		}
		s.Products = mem.Products
		s.Orders = mem.Orders
		s.Movements = mem.Movements
		s.Customers = mem.Customers
		log.Info().Bool("seeded", cfg.SeedData).Msg("using in-memory storage")
	}

	if cfg.Redis.Enabled {
		rdb, err := cache.ConnectRedis(ctx, cfg.Redis)
		if err != nil {
			s.Close()
			return nil, err
		}
		s.closers = append(s.closers, func() { _ = rdb.Close() })
		s.Products = cache.NewCachedProductRepository(s.Products, rdb, cfg.Redis.TTL)
		log.Info().Str("addr", cfg.Redis.Addr).Msg("product cache enabled")
	}

	return s, nil
}

func memoryStores(seed bool) (*Stores, error) {
	products := repository.NewMemoryProductRepository()
	orders := repository.NewMemoryOrderRepository()
	customers := repository.NewMemoryCustomerRepository()
	s := &Stores{
		Products:  products,
		Orders:    orders,
		Movements: repository.NewMemoryMovementRepository(),
		Customers: customers,
	}
	if !seed {
		return s, nil
	}

	products.Load(repository.SeedProducts())
	customers.Load(repository.SeedCustomers())
	if err := orders.Load(repository.SeedOrders()); err != nil {
		return nil, fmt.Errorf("seed orders: %w", err)
	}
	return s, nil
}

// LogOrderCreated is the default created-order callback.
func LogOrderCreated(o models.Order) {
	log.Info().Str("order_id", o.ID).Str("customer", o.Customer).Msg("order created successfully")
}
