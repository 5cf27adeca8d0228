package revenue

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// ReportCache caches assembled daily reports per tenant and window.
// A miss is (nil, nil); cache failures must never fail the read path.
type ReportCache interface {
	// Get retrieves a cached report for the tenant and window
	Get(ctx context.Context, tenantID uuid.UUID, rng DateRange) (*DailyReport, error)

	// Set stores a report with the given TTL
	Set(ctx context.Context, tenantID uuid.UUID, rng DateRange, report *DailyReport, ttl time.Duration) error

	// InvalidateTenant drops every cached report for the tenant. Called on
	// any order mutation since a single write can shift several buckets.
	InvalidateTenant(ctx context.Context, tenantID uuid.UUID) error

	// Close releases any resources held by the cache
	Close() error
}
