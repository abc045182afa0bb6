package redis

import (
	"context"
	"fmt"
	"time"

	"troffee-auction-engine/internal/config"

	"github.com/redis/go-redis/v9"
)

// dialTimeoutFactor lets a fresh connection take longer than a single command
const dialTimeoutFactor = 2

// NewClient builds the client shared by the expiry index and the broadcaster
func NewClient(cfg *config.Config) *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr:         cfg.Redis.Addr,
		Password:     cfg.Redis.Password,
		DB:           cfg.Redis.DB,
		DialTimeout:  dialTimeoutFactor * cfg.Redis.Timeout,
		ReadTimeout:  cfg.Redis.Timeout,
		WriteTimeout: cfg.Redis.Timeout,
		PoolSize:     cfg.Redis.PoolSize,
		MaxRetries:   cfg.Redis.MaxRetries,
	})
}

// PingRedis checks the server is reachable within the configured timeout
func PingRedis(ctx context.Context, client *redis.Client) error {
	timeout := client.Options().DialTimeout
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("failed to ping redis at %s: %w", client.Options().Addr, err)
	}
	return nil
}
