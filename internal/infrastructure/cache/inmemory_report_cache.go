package cache

import (
	"context"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"

	"github.com/rentora/backend/internal/domain/revenue"
)

const cleanupInterval = 30 * time.Second

// InMemoryReportCache implements revenue.ReportCache using in-memory
// storage. Suitable for single-instance deployments and tests.
type InMemoryReportCache struct {
	entries sync.Map // map[string]*reportEntry
	stopCh  chan struct{}
	stopped int32
}

// reportEntry wraps a cached report with its expiration time
type reportEntry struct {
	report    *revenue.DailyReport
	expiresAt time.Time
}

func (e *reportEntry) isExpired() bool {
	return time.Now().After(e.expiresAt)
}

// NewInMemoryReportCache creates a new in-memory report cache
func NewInMemoryReportCache() *InMemoryReportCache {
	c := &InMemoryReportCache{
		stopCh: make(chan struct{}),
	}
	go c.cleanupExpired()
	return c
}

// reportKey builds the cache key from the tenant and the exact window
// bounds, so windows widened under any day timezone never collide
func (c *InMemoryReportCache) reportKey(tenantID uuid.UUID, rng revenue.DateRange) string {
	return tenantID.String() + ":" + rng.Start.UTC().Format(time.RFC3339) + ":" + rng.End.UTC().Format(time.RFC3339)
}

// Get retrieves a cached report; a miss returns (nil, nil)
func (c *InMemoryReportCache) Get(ctx context.Context, tenantID uuid.UUID, rng revenue.DateRange) (*revenue.DailyReport, error) {
	key := c.reportKey(tenantID, rng)
	if value, ok := c.entries.Load(key); ok {
		entry := value.(*reportEntry)
		if !entry.isExpired() {
			return entry.report, nil
		}
		c.entries.Delete(key)
	}
	return nil, nil
}

// Set stores a report with the given TTL
func (c *InMemoryReportCache) Set(ctx context.Context, tenantID uuid.UUID, rng revenue.DateRange, report *revenue.DailyReport, ttl time.Duration) error {
	if report == nil || ttl <= 0 {
		return nil
	}
	c.entries.Store(c.reportKey(tenantID, rng), &reportEntry{
		report:    report,
		expiresAt: time.Now().Add(ttl),
	})
	return nil
}

// InvalidateTenant drops every cached report for the tenant
func (c *InMemoryReportCache) InvalidateTenant(ctx context.Context, tenantID uuid.UUID) error {
	prefix := tenantID.String() + ":"
	c.entries.Range(func(key, _ any) bool {
		if strings.HasPrefix(key.(string), prefix) {
			c.entries.Delete(key)
		}
		return true
	})
	return nil
}

// Close stops the cleanup goroutine
func (c *InMemoryReportCache) Close() error {
	if atomic.CompareAndSwapInt32(&c.stopped, 0, 1) {
		close(c.stopCh)
	}
	return nil
}

// Count returns the number of live entries
func (c *InMemoryReportCache) Count() int {
	count := 0
	c.entries.Range(func(_, _ any) bool {
		count++
		return true
	})
	return count
}

// cleanupExpired periodically removes expired entries
func (c *InMemoryReportCache) cleanupExpired() {
	ticker := time.NewTicker(cleanupInterval)
	defer ticker.Stop()

	for {
		select {
		case <-c.stopCh:
			return
		case <-ticker.C:
			c.entries.Range(func(key, value any) bool {
				if value.(*reportEntry).isExpired() {
					c.entries.Delete(key)
				}
				return true
			})
		}
	}
}

// Ensure InMemoryReportCache implements ReportCache
var _ revenue.ReportCache = (*InMemoryReportCache)(nil)
