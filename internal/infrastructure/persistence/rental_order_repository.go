package persistence

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/rentora/backend/internal/domain/rental"
	"github.com/rentora/backend/internal/domain/shared"
)

// GormOrderRepository implements rental.OrderRepository using GORM
type GormOrderRepository struct {
	db *gorm.DB
}

// NewGormOrderRepository creates a new GormOrderRepository
func NewGormOrderRepository(db *gorm.DB) *GormOrderRepository {
	return &GormOrderRepository{db: db}
}

// FindByID finds an order by its ID
func (r *GormOrderRepository) FindByID(ctx context.Context, id uuid.UUID) (*rental.Order, error) {
	var order rental.Order
	if err := r.db.WithContext(ctx).First(&order, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &order, nil
}

// FindByIDForTenant finds an order by ID within a tenant
func (r *GormOrderRepository) FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*rental.Order, error) {
	var order rental.Order
	if err := r.db.WithContext(ctx).
		Where("tenant_id = ? AND id = ?", tenantID, id).
		First(&order).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &order, nil
}

// FindByOrderNumber finds an order by order number within a tenant
func (r *GormOrderRepository) FindByOrderNumber(ctx context.Context, tenantID uuid.UUID, orderNumber string) (*rental.Order, error) {
	var order rental.Order
	if err := r.db.WithContext(ctx).
		Where("tenant_id = ? AND order_number = ?", tenantID, orderNumber).
		First(&order).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &order, nil
}

// FindAllForTenant finds all orders for a tenant matching the filter
func (r *GormOrderRepository) FindAllForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]rental.Order, error) {
	var orders []rental.Order
	query := r.applyFilter(
		r.db.WithContext(ctx).Model(&rental.Order{}).Where("tenant_id = ?", tenantID),
		filter,
	)

	if err := query.Find(&orders).Error; err != nil {
		return nil, err
	}
	return orders, nil
}

// FindTouchingWindow finds all orders whose lifecycle or planned timestamps
// intersect [start, end]. Any of these columns can place a revenue event or
// projection inside the window, so all of them widen the match.
func (r *GormOrderRepository) FindTouchingWindow(ctx context.Context, tenantID uuid.UUID, start, end time.Time) ([]rental.Order, error) {
	var orders []rental.Order
	err := r.db.WithContext(ctx).
		Where("tenant_id = ?", tenantID).
		Where(
			r.db.Where("created_at BETWEEN ? AND ?", start, end).
				Or("updated_at BETWEEN ? AND ?", start, end).
				Or("picked_up_at BETWEEN ? AND ?", start, end).
				Or("returned_at BETWEEN ? AND ?", start, end).
				Or("pickup_plan_at BETWEEN ? AND ?", start, end).
				Or("return_plan_at BETWEEN ? AND ?", start, end),
		).
		Order("created_at ASC").
		Find(&orders).Error
	if err != nil {
		return nil, err
	}
	return orders, nil
}

// Save persists a new order
func (r *GormOrderRepository) Save(ctx context.Context, order *rental.Order) error {
	return r.db.WithContext(ctx).Create(order).Error
}

// Update persists changes to an existing order with optimistic locking.
// Returns a conflict error if the version changed underneath us.
func (r *GormOrderRepository) Update(ctx context.Context, order *rental.Order) error {
	previousVersion := order.Version
	order.IncrementVersion()

	result := r.db.WithContext(ctx).
		Model(order).
		Where("id = ? AND version = ?", order.ID, previousVersion).
		Select("*").
		Omit("id", "tenant_id", "created_at").
		Updates(order)

	if result.Error != nil {
		order.Version = previousVersion
		return result.Error
	}
	if result.RowsAffected == 0 {
		order.Version = previousVersion
		return shared.ErrConcurrencyConflict
	}
	return nil
}

// CountForTenant counts orders for a tenant matching the filter
func (r *GormOrderRepository) CountForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) (int64, error) {
	var count int64
	query := r.applyFilterWithoutPagination(
		r.db.WithContext(ctx).Model(&rental.Order{}).Where("tenant_id = ?", tenantID),
		filter,
	)

	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// applyFilter applies filter options to the query
func (r *GormOrderRepository) applyFilter(query *gorm.DB, filter shared.Filter) *gorm.DB {
	query = r.applyFilterWithoutPagination(query, filter)

	if filter.Page > 0 && filter.PageSize > 0 {
		offset := (filter.Page - 1) * filter.PageSize
		query = query.Offset(offset).Limit(filter.PageSize)
	}

	if filter.OrderBy != "" {
		orderDir := "ASC"
		if strings.ToLower(filter.OrderDir) == "desc" {
			orderDir = "DESC"
		}
		query = query.Order(filter.OrderBy + " " + orderDir)
	} else {
		query = query.Order("created_at DESC")
	}

	return query
}

// applyFilterWithoutPagination applies filter options without pagination
func (r *GormOrderRepository) applyFilterWithoutPagination(query *gorm.DB, filter shared.Filter) *gorm.DB {
	if filter.Search != "" {
		searchPattern := "%" + filter.Search + "%"
		query = query.Where("order_number ILIKE ? OR customer_name ILIKE ?", searchPattern, searchPattern)
	}

	for key, value := range filter.Filters {
		switch key {
		case "status":
			query = query.Where("status = ?", value)
		case "order_type":
			query = query.Where("order_type = ?", value)
		case "customer_id":
			query = query.Where("customer_id = ?", value)
		case "outlet_id":
			query = query.Where("outlet_id = ?", value)
		}
	}

	return query
}

// Ensure GormOrderRepository implements OrderRepository
var _ rental.OrderRepository = (*GormOrderRepository)(nil)
