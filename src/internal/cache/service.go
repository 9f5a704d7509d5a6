package cache

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"hotspot-portal-svc/src/internal/config"
	"hotspot-portal-svc/src/internal/models"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
)

// Service caches the computed /stats payload for a short TTL so repeated
// polling does not hammer the filesystem and the hotspot script. A nil
// redis client disables caching entirely; every operation becomes a no-op.
type Service interface {
	GetStats(ctx context.Context) (*models.Stats, error)
	SaveStats(ctx context.Context, stats *models.Stats) error
}

type cacheService struct {
	client *redis.Client
	cfg    *config.CacheConfig
}

func NewCacheService(client *redis.Client, cfg *config.Configuration) Service {
	return &cacheService{
		client: client,
		cfg:    &cfg.Cache,
	}
}

func (c *cacheService) GetStats(ctx context.Context) (*models.Stats, error) {
	if c.client == nil {
		return nil, nil
	}

	data, err := c.client.Get(ctx, c.cfg.StatsKey).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			logrus.Debug("Stats not found in cache")
			return nil, nil // Not an error, just not found
		}
		logrus.WithError(err).Error("Failed to get stats from cache")
		return nil, models.ErrRedisGet
	}

	var stats models.Stats
	if err := json.Unmarshal([]byte(data), &stats); err != nil {
		logrus.WithError(err).Error("Failed to unmarshal stats from cache")
		return nil, models.ErrRedisGet
	}

	logrus.Debug("Stats retrieved from cache")
	return &stats, nil
}

func (c *cacheService) SaveStats(ctx context.Context, stats *models.Stats) error {
	if c.client == nil {
		return nil
	}

	data, err := json.Marshal(stats)
	if err != nil {
		logrus.WithError(err).Error("Failed to marshal stats for cache")
		return models.ErrRedisSet
	}

	expiration := time.Duration(c.cfg.StatsExpirationSeconds) * time.Second
	if err := c.client.Set(ctx, c.cfg.StatsKey, data, expiration).Err(); err != nil {
		logrus.WithError(err).Error("Failed to cache stats")
		return models.ErrRedisSet
	}
	return nil
}
