package clients

import (
	"context"
	"time"

	"hotspot-portal-svc/src/internal/config"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
)

type RedisClient struct {
	Client *redis.Client
}

// NewRedisClient connects to redis and verifies the connection with a
// ping. The portal treats redis as optional; callers degrade to uncached
// operation when this fails.
func NewRedisClient(cfg *config.Redis) (*RedisClient, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Url,
		Password: cfg.Password,
		DB:       cfg.Db,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		logrus.WithError(err).WithField("url", cfg.Url).Error("Failed to connect to redis")
		client.Close()
		return nil, err
	}

	logrus.Infof("Connected to redis at %s", cfg.Url)
	return &RedisClient{Client: client}, nil
}

func (r *RedisClient) Close() error {
	if r.Client == nil {
		return nil
	}
	return r.Client.Close()
}
