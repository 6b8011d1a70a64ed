package redisutils

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/fastprodman/billionspend/internal/config"
)

// OpenClient builds a client for cfg and verifies it with a ping.
func OpenClient(ctx context.Context, cfg config.RedisConfig) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	err := client.Ping(ctx).Err()
	if err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("ping redis: %w", err)
	}

	return client, nil
}
