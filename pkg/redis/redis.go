package redis

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
)

var ErrCacheMiss = errors.New("cache miss")

type IRedis interface {
	Set(ctx context.Context, key string, value string, expiration time.Duration) error
	Get(ctx context.Context, key string) (string, error)
	Del(ctx context.Context, key string) error
}

type Config struct {
	Address  string
	Password string
	DB       int
}

type redisClient struct {
	client *redis.Client
	log    *logrus.Logger
}

// New connects lazily; a failed ping is logged and the client is still
// returned so callers degrade to their database path.
func New(cfg Config, log *logrus.Logger) IRedis {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Address,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		log.WithFields(logrus.Fields{
			"address": cfg.Address,
			"error":   err.Error(),
		}).Error("Failed to connect to Redis")
	} else {
		log.WithField("address", cfg.Address).Info("Connected to Redis")
	}

	return &redisClient{client: client, log: log}
}

func (r *redisClient) Set(ctx context.Context, key string, value string, expiration time.Duration) error {
	if err := r.client.Set(ctx, key, value, expiration).Err(); err != nil {
		r.log.WithFields(logrus.Fields{
			"key":   key,
			"error": err.Error(),
		}).Error("Redis SET failed")
		return err
	}
	return nil
}

func (r *redisClient) Get(ctx context.Context, key string) (string, error) {
	val, err := r.client.Get(ctx, key).Result()
	if errors.Is(err, redis.Nil) {
		return "", ErrCacheMiss
	}
	if err != nil {
		r.log.WithFields(logrus.Fields{
			"key":   key,
			"error": err.Error(),
		}).Error("Redis GET failed")
		return "", err
	}
	return val, nil
}

func (r *redisClient) Del(ctx context.Context, key string) error {
	if err := r.client.Del(ctx, key).Err(); err != nil {
		r.log.WithFields(logrus.Fields{
			"key":   key,
			"error": err.Error(),
		}).Error("Redis DEL failed")
		return err
	}
	return nil
}
