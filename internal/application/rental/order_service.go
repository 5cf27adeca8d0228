package rental

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/rentora/backend/internal/domain/rental"
	"github.com/rentora/backend/internal/domain/revenue"
	"github.com/rentora/backend/internal/domain/shared"
	"github.com/rentora/backend/internal/domain/shared/valueobject"
)

// OrderService handles order lifecycle operations
type OrderService struct {
	orderRepo   rental.OrderRepository
	reportCache revenue.ReportCache
	logger      *zap.Logger
	now         func() time.Time
}

// OrderServiceOption configures an OrderService
type OrderServiceOption func(*OrderService)

// WithReportCache wires the report cache invalidated on every order mutation
func WithReportCache(cache revenue.ReportCache) OrderServiceOption {
	return func(s *OrderService) {
		s.reportCache = cache
	}
}

// WithLogger sets the service logger
func WithLogger(logger *zap.Logger) OrderServiceOption {
	return func(s *OrderService) {
		s.logger = logger
	}
}

// WithClock sets the time source used for transition defaults
func WithClock(now func() time.Time) OrderServiceOption {
	return func(s *OrderService) {
		s.now = now
	}
}

// NewOrderService creates a new OrderService
func NewOrderService(orderRepo rental.OrderRepository, opts ...OrderServiceOption) *OrderService {
	s := &OrderService{
		orderRepo: orderRepo,
		logger:    zap.NewNop(),
		now:       time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Create creates a new order
func (s *OrderService) Create(ctx context.Context, tenantID uuid.UUID, req CreateOrderRequest) (*OrderResponse, error) {
	existing, err := s.orderRepo.FindByOrderNumber(ctx, tenantID, req.OrderNumber)
	if err != nil && !errors.Is(err, shared.ErrNotFound) {
		return nil, err
	}
	if existing != nil {
		return nil, shared.NewDomainError("ALREADY_EXISTS", "Order with this number already exists")
	}

	deposit := decimal.Zero
	if req.DepositAmount != nil {
		deposit = *req.DepositAmount
	}

	order, err := rental.NewOrder(
		tenantID,
		req.OrderNumber,
		req.CustomerID,
		req.CustomerName,
		rental.OrderType(req.OrderType),
		valueobject.NewMoneyUSD(req.TotalAmount),
		valueobject.NewMoneyUSD(deposit),
	)
	if err != nil {
		return nil, err
	}

	if req.PickupPlanAt != nil {
		if err := order.SchedulePickup(*req.PickupPlanAt); err != nil {
			return nil, err
		}
	}
	if req.ReturnPlanAt != nil {
		if err := order.ScheduleReturn(*req.ReturnPlanAt); err != nil {
			return nil, err
		}
	}
	if req.OutletID != nil {
		order.AssignOutlet(*req.OutletID)
	}
	if req.Remark != "" {
		order.SetRemark(req.Remark)
	}

	if err := s.orderRepo.Save(ctx, order); err != nil {
		return nil, err
	}
	s.invalidateReports(ctx, tenantID)

	s.logger.Info("Order created",
		zap.String("order_id", order.ID.String()),
		zap.String("order_number", order.OrderNumber),
		zap.String("order_type", order.OrderType.String()),
	)

	response := ToOrderResponse(order)
	return &response, nil
}

// Pickup marks a rental order as picked up
func (s *OrderService) Pickup(ctx context.Context, tenantID, orderID uuid.UUID, req PickupOrderRequest) (*OrderResponse, error) {
	order, err := s.orderRepo.FindByIDForTenant(ctx, tenantID, orderID)
	if err != nil {
		return nil, err
	}

	at := s.now()
	if req.PickedUpAt != nil {
		at = *req.PickedUpAt
	}
	securityDeposit := valueobject.ZeroUSD()
	if req.SecurityDeposit != nil {
		securityDeposit = valueobject.NewMoneyUSD(*req.SecurityDeposit)
	}

	if err := order.MarkPickedUp(at, securityDeposit); err != nil {
		return nil, err
	}
	if err := s.orderRepo.Update(ctx, order); err != nil {
		return nil, err
	}
	s.invalidateReports(ctx, tenantID)

	response := ToOrderResponse(order)
	return &response, nil
}

// Return marks a rental order as returned
func (s *OrderService) Return(ctx context.Context, tenantID, orderID uuid.UUID, req ReturnOrderRequest) (*OrderResponse, error) {
	order, err := s.orderRepo.FindByIDForTenant(ctx, tenantID, orderID)
	if err != nil {
		return nil, err
	}

	at := s.now()
	if req.ReturnedAt != nil {
		at = *req.ReturnedAt
	}
	damageFee := valueobject.ZeroUSD()
	if req.DamageFee != nil {
		damageFee = valueobject.NewMoneyUSD(*req.DamageFee)
	}

	if err := order.MarkReturned(at, damageFee); err != nil {
		return nil, err
	}
	if err := s.orderRepo.Update(ctx, order); err != nil {
		return nil, err
	}
	s.invalidateReports(ctx, tenantID)

	response := ToOrderResponse(order)
	return &response, nil
}

// Complete closes a returned rental order
func (s *OrderService) Complete(ctx context.Context, tenantID, orderID uuid.UUID) (*OrderResponse, error) {
	order, err := s.orderRepo.FindByIDForTenant(ctx, tenantID, orderID)
	if err != nil {
		return nil, err
	}

	if err := order.Complete(); err != nil {
		return nil, err
	}
	if err := s.orderRepo.Update(ctx, order); err != nil {
		return nil, err
	}
	s.invalidateReports(ctx, tenantID)

	response := ToOrderResponse(order)
	return &response, nil
}

// Cancel cancels an order
func (s *OrderService) Cancel(ctx context.Context, tenantID, orderID uuid.UUID, req CancelOrderRequest) (*OrderResponse, error) {
	order, err := s.orderRepo.FindByIDForTenant(ctx, tenantID, orderID)
	if err != nil {
		return nil, err
	}

	if err := order.Cancel(req.Reason); err != nil {
		return nil, err
	}
	if err := s.orderRepo.Update(ctx, order); err != nil {
		return nil, err
	}
	s.invalidateReports(ctx, tenantID)

	s.logger.Info("Order cancelled",
		zap.String("order_id", order.ID.String()),
		zap.String("reason", req.Reason),
	)

	response := ToOrderResponse(order)
	return &response, nil
}

// Schedule sets planned pickup and return times
func (s *OrderService) Schedule(ctx context.Context, tenantID, orderID uuid.UUID, req ScheduleOrderRequest) (*OrderResponse, error) {
	order, err := s.orderRepo.FindByIDForTenant(ctx, tenantID, orderID)
	if err != nil {
		return nil, err
	}

	if req.PickupPlanAt != nil {
		if err := order.SchedulePickup(*req.PickupPlanAt); err != nil {
			return nil, err
		}
	}
	if req.ReturnPlanAt != nil {
		if err := order.ScheduleReturn(*req.ReturnPlanAt); err != nil {
			return nil, err
		}
	}

	if err := s.orderRepo.Update(ctx, order); err != nil {
		return nil, err
	}
	s.invalidateReports(ctx, tenantID)

	response := ToOrderResponse(order)
	return &response, nil
}

// GetByID retrieves an order by ID
func (s *OrderService) GetByID(ctx context.Context, tenantID, orderID uuid.UUID) (*OrderResponse, error) {
	order, err := s.orderRepo.FindByIDForTenant(ctx, tenantID, orderID)
	if err != nil {
		return nil, err
	}
	response := ToOrderResponse(order)
	return &response, nil
}

// GetByOrderNumber retrieves an order by its order number
func (s *OrderService) GetByOrderNumber(ctx context.Context, tenantID uuid.UUID, orderNumber string) (*OrderResponse, error) {
	order, err := s.orderRepo.FindByOrderNumber(ctx, tenantID, orderNumber)
	if err != nil {
		return nil, err
	}
	response := ToOrderResponse(order)
	return &response, nil
}

// List retrieves orders with filtering and pagination
func (s *OrderService) List(ctx context.Context, tenantID uuid.UUID, filter OrderListFilter) ([]OrderResponse, int64, error) {
	if filter.Page <= 0 {
		filter.Page = 1
	}
	if filter.PageSize <= 0 {
		filter.PageSize = 20
	}
	if filter.OrderBy == "" {
		filter.OrderBy = "created_at"
	}
	if filter.OrderDir == "" {
		filter.OrderDir = "desc"
	}

	domainFilter := shared.Filter{
		Page:     filter.Page,
		PageSize: filter.PageSize,
		OrderBy:  filter.OrderBy,
		OrderDir: filter.OrderDir,
		Search:   filter.Search,
		Filters:  make(map[string]any),
	}
	if filter.Status != "" {
		domainFilter.Filters["status"] = filter.Status
	}
	if filter.OrderType != "" {
		domainFilter.Filters["order_type"] = filter.OrderType
	}
	if filter.CustomerID != "" {
		domainFilter.Filters["customer_id"] = filter.CustomerID
	}
	if filter.OutletID != "" {
		domainFilter.Filters["outlet_id"] = filter.OutletID
	}

	orders, err := s.orderRepo.FindAllForTenant(ctx, tenantID, domainFilter)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.orderRepo.CountForTenant(ctx, tenantID, domainFilter)
	if err != nil {
		return nil, 0, err
	}

	return ToOrderResponses(orders), total, nil
}

// invalidateReports drops cached reports for the tenant. Cache failures are
// logged, not returned; the write already succeeded.
func (s *OrderService) invalidateReports(ctx context.Context, tenantID uuid.UUID) {
	if s.reportCache == nil {
		return
	}
	if err := s.reportCache.InvalidateTenant(ctx, tenantID); err != nil {
		s.logger.Warn("Failed to invalidate report cache",
			zap.String("tenant_id", tenantID.String()),
			zap.Error(err),
		)
	}
}
