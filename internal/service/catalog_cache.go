package service

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"pharmacy-backend/internal/domain/entity"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
)

const (
	catalogCacheKey = "catalog:drugs"
	catalogCacheTTL = 10 * time.Minute
)

// ErrCacheMiss is returned when the catalog is not in Redis.
var ErrCacheMiss = errors.New("catalog not cached")

// CatalogCache is a read-through Redis cache for the drug catalog. The
// catalog is read-mostly, so the full listing is cached as one JSON blob and
// invalidated whenever a drug is added. Cache failures are never fatal;
// callers fall back to the database.
type CatalogCache struct {
	log         *logrus.Logger
	redisClient *redis.Client
}

func NewCatalogCache(log *logrus.Logger, redisClient *redis.Client) *CatalogCache {
	return &CatalogCache{
		log:         log,
		redisClient: redisClient,
	}
}

func (c *CatalogCache) GetDrugs(ctx context.Context) ([]entity.Drug, error) {
	if c.redisClient == nil {
		return nil, ErrCacheMiss
	}

	data, err := c.redisClient.Get(ctx, catalogCacheKey).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrCacheMiss
		}
		return nil, err
	}

	var drugs []entity.Drug
	if err := json.Unmarshal(data, &drugs); err != nil {
		c.log.Warnf("Failed to decode cached catalog, dropping key: %+v", err)
		c.redisClient.Del(ctx, catalogCacheKey)
		return nil, ErrCacheMiss
	}
	return drugs, nil
}

func (c *CatalogCache) SetDrugs(ctx context.Context, drugs []entity.Drug) {
	if c.redisClient == nil {
		return
	}

	data, err := json.Marshal(drugs)
	if err != nil {
		c.log.Warnf("Failed to encode catalog for cache: %+v", err)
		return
	}

	if err := c.redisClient.Set(ctx, catalogCacheKey, data, catalogCacheTTL).Err(); err != nil {
		c.log.Warnf("Failed to store catalog in Redis (non-fatal): %+v", err)
	}
}

func (c *CatalogCache) Invalidate(ctx context.Context) {
	if c.redisClient == nil {
		return
	}

	if err := c.redisClient.Del(ctx, catalogCacheKey).Err(); err != nil {
		c.log.Warnf("Failed to invalidate catalog cache (non-fatal): %+v", err)
	}
}
