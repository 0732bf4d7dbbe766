package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/Sujal-Rajbhandari/inventory-system/internal/models"
	"github.com/Sujal-Rajbhandari/inventory-system/internal/repository"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

const (
	allProductsKey = "products:all"
	lowStockKey    = "products:low-stock"
	notFoundMarker = "notfound"
)

// CachedProductRepository is a read-through Redis cache in front of another
// ProductRepository. Redis failures are logged and the call falls through to
// the real repository.
type CachedProductRepository struct {
	realRepo repository.ProductRepository
	redis    *redis.Client
	ttl      time.Duration
}

var _ repository.ProductRepository = (*CachedProductRepository)(nil)

func NewCachedProductRepository(realRepo repository.ProductRepository, redis *redis.Client, ttl time.Duration) *CachedProductRepository {
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}
	return &CachedProductRepository{
		realRepo: realRepo,
		redis:    redis,
		ttl:      ttl,
	}
}

func productKey(id int) string {
	return fmt.Sprintf("product:%d", id)
}

func categoryKey(category string) string {
	return fmt.Sprintf("products:category:%s", category)
}

func (c *CachedProductRepository) Get(ctx context.Context, id int) (*models.Product, error) {
	key := productKey(id)

	data, err := c.redis.Get(ctx, key).Bytes()

	switch {
	case err == nil:
		if string(data) == notFoundMarker {
			return nil, repository.ErrNotFound
		}

		var product models.Product
		if err := json.Unmarshal(data, &product); err != nil {
			log.Warn().Err(err).Str("key", key).Msg("failed to unmarshal cached product, continuing with store")
			break
		}
		return &product, nil

	case errors.Is(err, redis.Nil):

	default:
		log.Warn().Err(err).Msg("redis error, continuing with store")
	}

	product, err := c.realRepo.Get(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			if setErr := c.redis.Set(ctx, key, notFoundMarker, time.Minute).Err(); setErr != nil {
				log.Warn().Err(setErr).Msg("failed to cache notfound")
			}
		}
		return nil, err
	}

	c.store(ctx, key, product)
	return product, nil
}

func (c *CachedProductRepository) List(ctx context.Context, filter repository.ProductFilter) ([]models.Product, error) {
	// only the unfiltered and per-category listings are cached; searches
	// go straight to the store
	if filter.Search != "" {
		return c.realRepo.List(ctx, filter)
	}

	key := allProductsKey
	if filter.Category != "" && filter.Category != "All" {
		key = categoryKey(filter.Category)
	}

	return c.cachedList(ctx, key, func() ([]models.Product, error) {
		return c.realRepo.List(ctx, filter)
	})
}

func (c *CachedProductRepository) LowStock(ctx context.Context) ([]models.Product, error) {
	return c.cachedList(ctx, lowStockKey, func() ([]models.Product, error) {
		return c.realRepo.LowStock(ctx)
	})
}

func (c *CachedProductRepository) Add(ctx context.Context, product *models.Product) error {
	if err := c.realRepo.Add(ctx, product); err != nil {
		return err
	}
	c.invalidate(ctx, product.ID, product.Category)
	return nil
}

func (c *CachedProductRepository) Edit(ctx context.Context, product *models.Product) error {
	oldCategory := ""
	if old, err := c.realRepo.Get(ctx, product.ID); err == nil {
		oldCategory = old.Category
	}

	if err := c.realRepo.Edit(ctx, product); err != nil {
		return err
	}

	c.invalidate(ctx, product.ID, oldCategory, product.Category)
	return nil
}

func (c *CachedProductRepository) Delete(ctx context.Context, id int) error {
	category := ""
	if old, err := c.realRepo.Get(ctx, id); err == nil {
		category = old.Category
	}

	if err := c.realRepo.Delete(ctx, id); err != nil {
		return err
	}

	c.invalidate(ctx, id, category)
	return nil
}

func (c *CachedProductRepository) AdjustStock(ctx context.Context, id int, delta int) (int, error) {
	applied, err := c.realRepo.AdjustStock(ctx, id, delta)
	if err != nil {
		return 0, err
	}
	c.invalidateStock(ctx, id)
	return applied, nil
}

func (c *CachedProductRepository) Restock(ctx context.Context, id int, quantity int) error {
	if err := c.realRepo.Restock(ctx, id, quantity); err != nil {
		return err
	}
	c.invalidateStock(ctx, id)
	return nil
}

func (c *CachedProductRepository) cachedList(ctx context.Context, key string, load func() ([]models.Product, error)) ([]models.Product, error) {
	data, err := c.redis.Get(ctx, key).Bytes()
	if err == nil {
		var products []models.Product
		if err := json.Unmarshal(data, &products); err == nil {
			return products, nil
		}
		log.Warn().Str("key", key).Msg("failed to unmarshal cached products, continuing with store")
	} else if !errors.Is(err, redis.Nil) {
		log.Warn().Err(err).Msg("redis error, continuing with store")
	}

	products, err := load()
	if err != nil {
		return nil, err
	}

	c.store(ctx, key, products)
	return products, nil
}

func (c *CachedProductRepository) store(ctx context.Context, key string, v any) {
	jsonData, err := json.Marshal(v)
	if err != nil {
		log.Warn().Err(err).Str("key", key).Msg("failed to marshal for cache")
		return
	}
	if err := c.redis.Set(ctx, key, jsonData, c.ttl).Err(); err != nil {
		log.Warn().Err(err).Str("key", key).Msg("failed to cache")
	}
}

// invalidateStock drops every key a stock change can affect. The category of
// the product is unknown here, so all category listings go.
func (c *CachedProductRepository) invalidateStock(ctx context.Context, id int) {
	c.del(ctx, productKey(id), allProductsKey, lowStockKey)

	iter := c.redis.Scan(ctx, 0, categoryKey("*"), 100).Iterator()
	var keys []string
	for iter.Next(ctx) {
		keys = append(keys, iter.Val())
	}
	if err := iter.Err(); err != nil {
		log.Warn().Err(err).Msg("failed to scan category cache keys")
	}
	c.del(ctx, keys...)
}

func (c *CachedProductRepository) invalidate(ctx context.Context, id int, categories ...string) {
	keys := []string{productKey(id), allProductsKey, lowStockKey}
	for _, category := range categories {
		if category != "" {
			keys = append(keys, categoryKey(category))
		}
	}
	c.del(ctx, keys...)
}

func (c *CachedProductRepository) del(ctx context.Context, keys ...string) {
	if len(keys) == 0 {
		return
	}
	if err := c.redis.Del(ctx, keys...).Err(); err != nil {
		log.Warn().Err(err).Strs("keys", keys).Msg("failed to delete product cache")
	}
}
