package report

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/rentora/backend/internal/domain/rental"
	"github.com/rentora/backend/internal/domain/revenue"
)

// ReportService assembles revenue reports from order snapshots. All
// revenue arithmetic lives in the engine; the service loads the input
// set, widens windows to whole calendar days and manages the cache.
type ReportService struct {
	orderRepo rental.OrderRepository
	engine    *revenue.Engine
	cache     revenue.ReportCache
	cacheTTL  time.Duration
	logger    *zap.Logger
}

// ReportServiceOption configures a ReportService
type ReportServiceOption func(*ReportService)

// WithReportCache enables daily report caching with the given TTL
func WithReportCache(cache revenue.ReportCache, ttl time.Duration) ReportServiceOption {
	return func(s *ReportService) {
		s.cache = cache
		s.cacheTTL = ttl
	}
}

// WithLogger sets the service logger
func WithLogger(logger *zap.Logger) ReportServiceOption {
	return func(s *ReportService) {
		s.logger = logger
	}
}

// NewReportService creates a new ReportService
func NewReportService(orderRepo rental.OrderRepository, engine *revenue.Engine, opts ...ReportServiceOption) *ReportService {
	s := &ReportService{
		orderRepo: orderRepo,
		engine:    engine,
		logger:    zap.NewNop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// GetDailyReport builds the day-bucketed revenue report for [from, to].
// The window is widened to whole calendar days before anything else, so
// callers can pass any timestamps within the boundary days.
func (s *ReportService) GetDailyReport(ctx context.Context, tenantID uuid.UUID, from, to time.Time) (*revenue.DailyReport, error) {
	rng, err := s.dayRange(from, to)
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		cached, err := s.cache.Get(ctx, tenantID, rng)
		if err != nil {
			s.logger.Warn("Report cache read failed", zap.Error(err))
		} else if cached != nil {
			return cached, nil
		}
	}

	orders, err := s.orderRepo.FindTouchingWindow(ctx, tenantID, rng.Start, rng.End)
	if err != nil {
		return nil, err
	}

	dailyReport := s.engine.BuildDailyReport(orders, rng)

	if s.cache != nil {
		if err := s.cache.Set(ctx, tenantID, rng, dailyReport, s.cacheTTL); err != nil {
			s.logger.Warn("Report cache write failed", zap.Error(err))
		}
	}
	return dailyReport, nil
}

// GetPeriodIncome splits the window's income into realized and projected
func (s *ReportService) GetPeriodIncome(ctx context.Context, tenantID uuid.UUID, from, to time.Time) (*PeriodIncomeResponse, error) {
	rng, err := s.dayRange(from, to)
	if err != nil {
		return nil, err
	}

	orders, err := s.orderRepo.FindTouchingWindow(ctx, tenantID, rng.Start, rng.End)
	if err != nil {
		return nil, err
	}

	income := s.engine.PeriodIncome(orders, rng)
	return toPeriodIncomeResponse(rng, s.engine.Days(), income), nil
}

// GetOrderRevenue returns one order's current revenue number together
// with every event it has produced so far
func (s *ReportService) GetOrderRevenue(ctx context.Context, tenantID, orderID uuid.UUID) (*OrderRevenueResponse, error) {
	order, err := s.orderRepo.FindByIDForTenant(ctx, tenantID, orderID)
	if err != nil {
		return nil, err
	}

	current := s.engine.CurrentStatusRevenue(order)
	events := s.engine.DeriveEvents(order, nil)
	return toOrderRevenueResponse(order, current, events), nil
}

// GetOrderRevenueForDate answers what the order contributes on exactly
// the target calendar day
func (s *ReportService) GetOrderRevenueForDate(ctx context.Context, tenantID, orderID uuid.UUID, date time.Time) (*OrderDateRevenueResponse, error) {
	order, err := s.orderRepo.FindByIDForTenant(ctx, tenantID, orderID)
	if err != nil {
		return nil, err
	}

	return &OrderDateRevenueResponse{
		OrderID: order.ID,
		Date:    s.engine.Days().Key(date).String(),
		Revenue: s.engine.RevenueForDate(order, date),
	}, nil
}

// dayRange validates the window and widens it to whole calendar days
func (s *ReportService) dayRange(from, to time.Time) (revenue.DateRange, error) {
	days := s.engine.Days()
	return revenue.NewDateRange(days.StartOfDay(from), days.EndOfDay(to))
}
