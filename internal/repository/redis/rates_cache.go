package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/Motasaith/Abdul-Shop-sub001/domain"

	"github.com/redis/go-redis/v9"
)

// RatesCache stores exchange-rate snapshots keyed by base currency. TTL is
// supplied by the caller from configuration; the cache holds no policy of
// its own.
type RatesCache struct {
	client *redis.Client
}

func NewRatesCache(client *redis.Client) *RatesCache {
	return &RatesCache{
		client: client,
	}
}

func (c *RatesCache) Get(ctx context.Context, base string) (domain.ExchangeRates, error) {
	key := fmt.Sprintf("rates:%s", base)

	val, err := c.client.Get(ctx, key).Result()
	if err != nil {
		if err == redis.Nil {
			return domain.ExchangeRates{}, errors.New("rates not cached")
		}
		return domain.ExchangeRates{}, fmt.Errorf("failed to get rates from Redis: %w", err)
	}

	var rates domain.ExchangeRates
	if err := json.Unmarshal([]byte(val), &rates); err != nil {
		return domain.ExchangeRates{}, fmt.Errorf("failed to unmarshal cached rates: %w", err)
	}

	return rates, nil
}

func (c *RatesCache) Set(ctx context.Context, base string, rates domain.ExchangeRates, ttl time.Duration) error {
	key := fmt.Sprintf("rates:%s", base)

	jsonData, err := json.Marshal(rates)
	if err != nil {
		return fmt.Errorf("failed to marshal rates: %w", err)
	}

	if err := c.client.Set(ctx, key, jsonData, ttl).Err(); err != nil {
		return fmt.Errorf("failed to cache rates in Redis: %w", err)
	}

	return nil
}
