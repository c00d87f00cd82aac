package cache

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/Changes18/poepoe/logger"
	"github.com/Changes18/poepoe/models"
)

const (
	productCacheKey     = "product:detail:"
	productListCacheKey = "products:all"

	defaultTTL = 5 * time.Minute
)

// ProductCache is a cache-aside layer over the product catalog. A nil
// *ProductCache is valid and disables caching, so callers never have to
// branch on configuration.
type ProductCache struct {
	redis *redis.Client
	ttl   time.Duration
}

// NewProductCache creates a cache from a Redis URL, or nil when the URL is empty
func NewProductCache(redisURL string) (*ProductCache, error) {
	if redisURL == "" {
		return nil, nil
	}
	opt, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, err
	}
	return &ProductCache{
		redis: redis.NewClient(opt),
		ttl:   defaultTTL,
	}, nil
}

// GetList retrieves the cached product list
func (c *ProductCache) GetList(ctx context.Context) ([]models.Product, bool) {
	if c == nil {
		return nil, false
	}
	data, err := c.redis.Get(ctx, productListCacheKey).Result()
	if err != nil {
		return nil, false
	}
	var products []models.Product
	if err := json.Unmarshal([]byte(data), &products); err != nil {
		logger.Log.Warn("Failed to unmarshal cached product list", zap.Error(err))
		return nil, false
	}
	return products, true
}

// SetListAsync caches the product list without blocking the request
func (c *ProductCache) SetListAsync(products []models.Product) {
	if c == nil {
		return
	}
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		data, err := json.Marshal(products)
		if err != nil {
			logger.Log.Warn("Failed to marshal product list for cache", zap.Error(err))
			return
		}
		if err := c.redis.Set(ctx, productListCacheKey, data, c.ttl).Err(); err != nil {
			logger.Log.Warn("Failed to cache product list", zap.Error(err))
		}
	}()
}

// Get retrieves a cached product by id
func (c *ProductCache) Get(ctx context.Context, productID string) (*models.Product, bool) {
	if c == nil {
		return nil, false
	}
	data, err := c.redis.Get(ctx, productCacheKey+productID).Result()
	if err != nil {
		return nil, false
	}
	var product models.Product
	if err := json.Unmarshal([]byte(data), &product); err != nil {
		logger.Log.Warn("Failed to unmarshal cached product", zap.Error(err))
		return nil, false
	}
	return &product, true
}

// SetAsync caches a single product without blocking the request
func (c *ProductCache) SetAsync(product *models.Product) {
	if c == nil {
		return
	}
	id := product.ID.Hex()
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		data, err := json.Marshal(product)
		if err != nil {
			logger.Log.Warn("Failed to marshal product for cache", zap.Error(err), zap.String("product_id", id))
			return
		}
		if err := c.redis.Set(ctx, productCacheKey+id, data, c.ttl).Err(); err != nil {
			logger.Log.Warn("Failed to cache product", zap.Error(err), zap.String("product_id", id))
		}
	}()
}

// Invalidate drops the cached list and, when productID is not empty, the
// cached detail entry. Called on every catalog write.
func (c *ProductCache) Invalidate(ctx context.Context, productID string) {
	if c == nil {
		return
	}
	keys := []string{productListCacheKey}
	if productID != "" {
		keys = append(keys, productCacheKey+productID)
	}
	if err := c.redis.Del(ctx, keys...).Err(); err != nil {
		logger.Log.Warn("Failed to invalidate product cache", zap.Error(err))
	}
}
