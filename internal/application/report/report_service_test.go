package report

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/rentora/backend/internal/domain/rental"
	"github.com/rentora/backend/internal/domain/revenue"
	"github.com/rentora/backend/internal/domain/shared"
)

// =============================================================================
// Mocks
// =============================================================================

// MockOrderRepository is a mock implementation of OrderRepository
type MockOrderRepository struct {
	mock.Mock
}

func (m *MockOrderRepository) FindByID(ctx context.Context, id uuid.UUID) (*rental.Order, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*rental.Order), args.Error(1)
}

func (m *MockOrderRepository) FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*rental.Order, error) {
	args := m.Called(ctx, tenantID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*rental.Order), args.Error(1)
}

func (m *MockOrderRepository) FindByOrderNumber(ctx context.Context, tenantID uuid.UUID, orderNumber string) (*rental.Order, error) {
	args := m.Called(ctx, tenantID, orderNumber)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*rental.Order), args.Error(1)
}

func (m *MockOrderRepository) FindAllForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]rental.Order, error) {
	args := m.Called(ctx, tenantID, filter)
	return args.Get(0).([]rental.Order), args.Error(1)
}

func (m *MockOrderRepository) FindTouchingWindow(ctx context.Context, tenantID uuid.UUID, start, end time.Time) ([]rental.Order, error) {
	args := m.Called(ctx, tenantID, start, end)
	return args.Get(0).([]rental.Order), args.Error(1)
}

func (m *MockOrderRepository) Save(ctx context.Context, order *rental.Order) error {
	args := m.Called(ctx, order)
	return args.Error(0)
}

func (m *MockOrderRepository) Update(ctx context.Context, order *rental.Order) error {
	args := m.Called(ctx, order)
	return args.Error(0)
}

func (m *MockOrderRepository) CountForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, tenantID, filter)
	return args.Get(0).(int64), args.Error(1)
}

// fakeCache is a single-slot ReportCache tracking hits and writes
type fakeCache struct {
	stored *revenue.DailyReport
	gets   int
	sets   int
}

func (c *fakeCache) Get(ctx context.Context, tenantID uuid.UUID, rng revenue.DateRange) (*revenue.DailyReport, error) {
	c.gets++
	return c.stored, nil
}

func (c *fakeCache) Set(ctx context.Context, tenantID uuid.UUID, rng revenue.DateRange, report *revenue.DailyReport, ttl time.Duration) error {
	c.sets++
	c.stored = report
	return nil
}

func (c *fakeCache) InvalidateTenant(ctx context.Context, tenantID uuid.UUID) error {
	c.stored = nil
	return nil
}

func (c *fakeCache) Close() error { return nil }

// =============================================================================
// Tests
// =============================================================================

var reportNow = time.Date(2026, 8, 15, 12, 0, 0, 0, time.UTC)

func reportEngine() *revenue.Engine {
	return revenue.NewEngine(revenue.WithClock(func() time.Time { return reportNow }))
}

func completedRentOrder(tenantID uuid.UUID) rental.Order {
	created := time.Date(2026, 8, 1, 10, 0, 0, 0, time.UTC)
	pickedUp := time.Date(2026, 8, 2, 10, 0, 0, 0, time.UTC)
	returned := time.Date(2026, 8, 3, 10, 0, 0, 0, time.UTC)

	order := rental.Order{
		TenantAggregateRoot: shared.NewTenantAggregateRoot(tenantID),
		OrderNumber:         "RO-2026-001",
		CustomerID:          uuid.New(),
		CustomerName:        "Alice",
		OrderType:           rental.OrderTypeRent,
		Status:              rental.OrderStatusReturned,
		TotalAmount:         decimal.NewFromInt(500),
		DepositAmount:       decimal.NewFromInt(100),
		SecurityDeposit:     decimal.NewFromInt(50),
		DamageFee:           decimal.NewFromInt(20),
		PickedUpAt:          &pickedUp,
		ReturnedAt:          &returned,
	}
	order.CreatedAt = created
	order.UpdatedAt = created
	return order
}

func TestReportService_GetDailyReport(t *testing.T) {
	ctx := context.Background()
	tenantID := uuid.New()
	from := time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2026, 8, 31, 0, 0, 0, 0, time.UTC)

	t.Run("builds report from window orders", func(t *testing.T) {
		repo := new(MockOrderRepository)
		repo.On("FindTouchingWindow", ctx, tenantID, mock.Anything, mock.Anything).
			Return([]rental.Order{completedRentOrder(tenantID)}, nil)

		service := NewReportService(repo, reportEngine())
		dailyReport, err := service.GetDailyReport(ctx, tenantID, from, to)

		require.NoError(t, err)
		assert.Equal(t, 3, dailyReport.Summary.TotalDays)
		assert.True(t, dailyReport.Summary.TotalRevenue.Equal(decimal.NewFromInt(520)))
		repo.AssertExpectations(t)
	})

	t.Run("widens the window to whole days", func(t *testing.T) {
		repo := new(MockOrderRepository)
		repo.On("FindTouchingWindow", ctx, tenantID,
			time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC),
			time.Date(2026, 8, 31, 23, 59, 59, int(time.Second-time.Nanosecond), time.UTC),
		).Return([]rental.Order{}, nil)

		service := NewReportService(repo, reportEngine())
		_, err := service.GetDailyReport(ctx, tenantID,
			from.Add(13*time.Hour), to.Add(6*time.Hour))

		require.NoError(t, err)
		repo.AssertExpectations(t)
	})

	t.Run("rejects inverted windows", func(t *testing.T) {
		repo := new(MockOrderRepository)

		service := NewReportService(repo, reportEngine())
		_, err := service.GetDailyReport(ctx, tenantID, to, from)

		assert.ErrorIs(t, err, shared.ErrInvalidDateRange)
		repo.AssertNotCalled(t, "FindTouchingWindow")
	})

	t.Run("serves from cache when warm", func(t *testing.T) {
		repo := new(MockOrderRepository)
		repo.On("FindTouchingWindow", ctx, tenantID, mock.Anything, mock.Anything).
			Return([]rental.Order{completedRentOrder(tenantID)}, nil).Once()

		cache := &fakeCache{}
		service := NewReportService(repo, reportEngine(), WithReportCache(cache, time.Minute))

		first, err := service.GetDailyReport(ctx, tenantID, from, to)
		require.NoError(t, err)

		second, err := service.GetDailyReport(ctx, tenantID, from, to)
		require.NoError(t, err)

		assert.Equal(t, first, second)
		assert.Equal(t, 1, cache.sets)
		repo.AssertExpectations(t)
	})
}

func TestReportService_GetPeriodIncome(t *testing.T) {
	ctx := context.Background()
	tenantID := uuid.New()
	from := time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2026, 8, 31, 0, 0, 0, 0, time.UTC)

	t.Run("realized plus projected", func(t *testing.T) {
		reserved := rental.Order{
			TenantAggregateRoot: shared.NewTenantAggregateRoot(tenantID),
			OrderNumber:         "RO-2026-002",
			CustomerID:          uuid.New(),
			OrderType:           rental.OrderTypeRent,
			Status:              rental.OrderStatusReserved,
			TotalAmount:         decimal.NewFromInt(300),
			DepositAmount:       decimal.NewFromInt(60),
		}
		created := time.Date(2026, 8, 10, 9, 0, 0, 0, time.UTC)
		plan := time.Date(2026, 8, 20, 9, 0, 0, 0, time.UTC)
		reserved.CreatedAt = created
		reserved.UpdatedAt = created
		reserved.PickupPlanAt = &plan

		repo := new(MockOrderRepository)
		repo.On("FindTouchingWindow", ctx, tenantID, mock.Anything, mock.Anything).
			Return([]rental.Order{reserved}, nil)

		service := NewReportService(repo, reportEngine())
		income, err := service.GetPeriodIncome(ctx, tenantID, from, to)

		require.NoError(t, err)
		assert.True(t, income.Realized.Equal(decimal.NewFromInt(60)), "realized %s", income.Realized)
		assert.True(t, income.Projected.Equal(decimal.NewFromInt(240)), "projected %s", income.Projected)
		assert.True(t, income.Total.Equal(decimal.NewFromInt(300)))
		assert.Equal(t, "2026-08-01", income.From)
		assert.Equal(t, "2026-08-31", income.To)
	})
}

func TestReportService_GetOrderRevenue(t *testing.T) {
	ctx := context.Background()
	tenantID := uuid.New()

	t.Run("current revenue with event trail", func(t *testing.T) {
		order := completedRentOrder(tenantID)

		repo := new(MockOrderRepository)
		repo.On("FindByIDForTenant", ctx, tenantID, order.ID).Return(&order, nil)

		service := NewReportService(repo, reportEngine())
		resp, err := service.GetOrderRevenue(ctx, tenantID, order.ID)

		require.NoError(t, err)
		assert.True(t, resp.CurrentRevenue.Equal(decimal.NewFromInt(520)))
		assert.Len(t, resp.Events, 3)
	})

	t.Run("not found passes through", func(t *testing.T) {
		repo := new(MockOrderRepository)
		orderID := uuid.New()
		repo.On("FindByIDForTenant", ctx, tenantID, orderID).Return(nil, shared.ErrNotFound)

		service := NewReportService(repo, reportEngine())
		_, err := service.GetOrderRevenue(ctx, tenantID, orderID)

		assert.ErrorIs(t, err, shared.ErrNotFound)
	})
}

func TestReportService_GetOrderRevenueForDate(t *testing.T) {
	ctx := context.Background()
	tenantID := uuid.New()
	order := completedRentOrder(tenantID)

	repo := new(MockOrderRepository)
	repo.On("FindByIDForTenant", ctx, tenantID, order.ID).Return(&order, nil)

	service := NewReportService(repo, reportEngine())
	resp, err := service.GetOrderRevenueForDate(ctx, tenantID, order.ID,
		time.Date(2026, 8, 2, 15, 0, 0, 0, time.UTC))

	require.NoError(t, err)
	assert.Equal(t, "2026-08-02", resp.Date)
	// cross-day pickup: total - deposit + security deposit
	assert.True(t, resp.Revenue.Equal(decimal.NewFromInt(450)))
}
