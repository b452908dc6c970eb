package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"food_delivery/internal/models"

	"github.com/go-redis/redis/v8"
)

type Client struct {
	rdb *redis.Client
}

func Initialize(redisURL string) (*Client, error) {
	opt, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse Redis URL: %w", err)
	}

	rdb := redis.NewClient(opt)

	// Test connection
	ctx := context.Background()
	if err := rdb.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	return &Client{rdb: rdb}, nil
}

const settingsKey = "delivery:settings"

// CacheSettings stores the current delivery settings snapshot.
func (c *Client) CacheSettings(settings *models.DeliverySettings, ttl time.Duration) error {
	ctx := context.Background()
	jsonData, err := json.Marshal(settings)
	if err != nil {
		return fmt.Errorf("failed to marshal settings: %w", err)
	}

	return c.rdb.Set(ctx, settingsKey, jsonData, ttl).Err()
}

// GetCachedSettings returns the cached settings snapshot, or (nil, nil)
// on a cache miss.
func (c *Client) GetCachedSettings() (*models.DeliverySettings, error) {
	ctx := context.Background()
	val, err := c.rdb.Get(ctx, settingsKey).Result()
	if err != nil {
		if err == redis.Nil {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get cached settings: %w", err)
	}

	var settings models.DeliverySettings
	if err := json.Unmarshal([]byte(val), &settings); err != nil {
		return nil, fmt.Errorf("failed to unmarshal cached settings: %w", err)
	}

	return &settings, nil
}

// InvalidateSettings drops the cached snapshot after an admin write.
func (c *Client) InvalidateSettings() error {
	ctx := context.Background()
	return c.rdb.Del(ctx, settingsKey).Err()
}

// Refresh token storage

func (c *Client) SetRefreshToken(token string, userID uint, ttl time.Duration) error {
	ctx := context.Background()
	return c.rdb.Set(ctx, "refresh:"+token, userID, ttl).Err()
}

func (c *Client) GetRefreshToken(token string) (uint, error) {
	ctx := context.Background()
	val, err := c.rdb.Get(ctx, "refresh:"+token).Uint64()
	if err != nil {
		if err == redis.Nil {
			return 0, fmt.Errorf("refresh token not found")
		}
		return 0, fmt.Errorf("failed to get refresh token: %w", err)
	}
	return uint(val), nil
}

func (c *Client) DeleteRefreshToken(token string) error {
	ctx := context.Background()
	return c.rdb.Del(ctx, "refresh:"+token).Err()
}

// Close Redis connection
func (c *Client) Close() error {
	return c.rdb.Close()
}
