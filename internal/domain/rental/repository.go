package rental

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/rentora/backend/internal/domain/shared"
)

// OrderRepository defines the persistence contract for rental/sale orders
type OrderRepository interface {
	// FindByID finds an order by its ID
	FindByID(ctx context.Context, id uuid.UUID) (*Order, error)

	// FindByIDForTenant finds an order by ID within a tenant
	FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*Order, error)

	// FindByOrderNumber finds an order by order number within a tenant
	FindByOrderNumber(ctx context.Context, tenantID uuid.UUID, orderNumber string) (*Order, error)

	// FindAllForTenant finds all orders for a tenant with filtering
	FindAllForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]Order, error)

	// FindTouchingWindow finds all orders for a tenant whose lifecycle or
	// planned timestamps intersect [start, end]. Reporting loads its input
	// set through this query.
	FindTouchingWindow(ctx context.Context, tenantID uuid.UUID, start, end time.Time) ([]Order, error)

	// Save persists a new order
	Save(ctx context.Context, order *Order) error

	// Update persists changes to an existing order
	Update(ctx context.Context, order *Order) error

	// CountForTenant counts orders for a tenant matching the filter
	CountForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) (int64, error)
}
