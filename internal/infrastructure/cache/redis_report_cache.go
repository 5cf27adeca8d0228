package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/rentora/backend/internal/domain/revenue"
)

const defaultReportKeyPrefix = "revenue:report:"

// RedisReportCache implements revenue.ReportCache using Redis.
// Suitable for distributed deployments where multiple instances serve
// the same tenants.
type RedisReportCache struct {
	client    *redis.Client
	keyPrefix string
}

// RedisConfig holds Redis connection configuration
type RedisConfig struct {
	Host     string
	Port     int
	Password string
	DB       int
}

// NewRedisReportCache creates a new Redis-backed report cache
func NewRedisReportCache(cfg RedisConfig) (*RedisReportCache, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     fmt.Sprintf("%s:%d", cfg.Host, cfg.Port),
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	return &RedisReportCache{
		client:    client,
		keyPrefix: defaultReportKeyPrefix,
	}, nil
}

// NewRedisReportCacheWithClient creates a cache with an existing Redis client.
// Useful for testing or when sharing a client across components.
func NewRedisReportCacheWithClient(client *redis.Client, keyPrefix string) *RedisReportCache {
	if keyPrefix == "" {
		keyPrefix = defaultReportKeyPrefix
	}
	return &RedisReportCache{
		client:    client,
		keyPrefix: keyPrefix,
	}
}

// reportKey builds the cache key from the tenant and the exact window
// bounds, so windows widened under any day timezone never collide
func (c *RedisReportCache) reportKey(tenantID uuid.UUID, rng revenue.DateRange) string {
	return c.keyPrefix + tenantID.String() + ":" + rng.Start.UTC().Format(time.RFC3339) + ":" + rng.End.UTC().Format(time.RFC3339)
}

// tenantPattern matches every report key of a tenant
func (c *RedisReportCache) tenantPattern(tenantID uuid.UUID) string {
	return c.keyPrefix + tenantID.String() + ":*"
}

// Get retrieves a cached report; a miss returns (nil, nil)
func (c *RedisReportCache) Get(ctx context.Context, tenantID uuid.UUID, rng revenue.DateRange) (*revenue.DailyReport, error) {
	data, err := c.client.Get(ctx, c.reportKey(tenantID, rng)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get cached report: %w", err)
	}

	var report revenue.DailyReport
	if err := json.Unmarshal(data, &report); err != nil {
		return nil, fmt.Errorf("failed to decode cached report: %w", err)
	}
	return &report, nil
}

// Set stores a report with the given TTL
func (c *RedisReportCache) Set(ctx context.Context, tenantID uuid.UUID, rng revenue.DateRange, report *revenue.DailyReport, ttl time.Duration) error {
	if report == nil {
		return nil
	}

	data, err := json.Marshal(report)
	if err != nil {
		return fmt.Errorf("failed to encode report: %w", err)
	}

	if err := c.client.Set(ctx, c.reportKey(tenantID, rng), data, ttl).Err(); err != nil {
		return fmt.Errorf("failed to cache report: %w", err)
	}
	return nil
}

// InvalidateTenant drops every cached report for the tenant
func (c *RedisReportCache) InvalidateTenant(ctx context.Context, tenantID uuid.UUID) error {
	iter := c.client.Scan(ctx, 0, c.tenantPattern(tenantID), 0).Iterator()
	for iter.Next(ctx) {
		if err := c.client.Del(ctx, iter.Val()).Err(); err != nil {
			return fmt.Errorf("failed to delete cached report: %w", err)
		}
	}
	if err := iter.Err(); err != nil {
		return fmt.Errorf("failed to scan report keys: %w", err)
	}
	return nil
}

// Close closes the Redis client
func (c *RedisReportCache) Close() error {
	return c.client.Close()
}

// GetClient returns the underlying Redis client (for testing/monitoring)
func (c *RedisReportCache) GetClient() *redis.Client {
	return c.client
}

// Ensure RedisReportCache implements ReportCache
var _ revenue.ReportCache = (*RedisReportCache)(nil)
