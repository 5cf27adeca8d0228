package revenue

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rentora/backend/internal/domain/rental"
)

func monthWindow() DateRange {
	return DateRange{
		Start: time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC),
		End:   time.Date(2026, 8, 31, 23, 59, 59, 0, time.UTC),
	}
}

func TestBuildDailyReport(t *testing.T) {
	e := testEngine()

	t.Run("buckets events by calendar day in ascending order", func(t *testing.T) {
		o := newRentOrder(rental.OrderStatusReturned, day(5))
		pickedUp, returned := day(2+5), day(3+5)
		o.PickedUpAt = &pickedUp
		o.ReturnedAt = &returned

		report := e.BuildDailyReport([]rental.Order{*o}, monthWindow())
		require.Len(t, report.Days, 3)

		assert.Equal(t, "2026-08-05", report.Days[0].DateISO)
		assert.Equal(t, "2026-08-07", report.Days[1].DateISO)
		assert.Equal(t, "2026-08-08", report.Days[2].DateISO)

		assertAmount(t, 100, report.Days[0].TotalRevenue)
		assertAmount(t, 450, report.Days[1].TotalRevenue)
		assertAmount(t, -30, report.Days[2].TotalRevenue)

		assertAmount(t, 520, report.Summary.TotalRevenue)
		assert.Equal(t, 3, report.Summary.TotalDays)
		assert.Equal(t, 1, report.Summary.TotalOrders)
		assert.Equal(t, 1, report.Summary.TotalNewOrders)
	})

	t.Run("merges same-order events within a day into one row", func(t *testing.T) {
		// creation-day cancellation puts the deposit and its refund on the
		// same calendar day
		o := newRentOrder(rental.OrderStatusCancelled, day(2))
		o.UpdatedAt = day(2).Add(4 * time.Hour)

		report := e.BuildDailyReport([]rental.Order{*o}, monthWindow())
		require.Len(t, report.Days, 1)
		bucket := report.Days[0]
		require.Len(t, bucket.Orders, 1)

		row := bucket.Orders[0]
		assert.Equal(t, RevenueTypeMultiple, row.RevenueType)
		assert.True(t, row.Revenue.IsZero())
		assert.Len(t, row.Events, 2)
		assert.Equal(t, descDeposit+" + "+descRentCancelled, row.Description)
		// first event's timestamp sticks
		assert.Equal(t, day(2), row.RevenueDate)
	})

	t.Run("distinct orders on one day get separate rows", func(t *testing.T) {
		a := newRentOrder(rental.OrderStatusReserved, day(4))
		b := newTestOrder(rental.OrderTypeSale, rental.OrderStatusCompleted, day(4).Add(time.Hour))
		b.TotalAmount = decimal.NewFromInt(80)

		report := e.BuildDailyReport([]rental.Order{*a, *b}, monthWindow())
		require.Len(t, report.Days, 1)
		bucket := report.Days[0]
		require.Len(t, bucket.Orders, 2)

		// first-touch insertion order
		assert.Equal(t, a.ID, bucket.Orders[0].OrderID)
		assert.Equal(t, b.ID, bucket.Orders[1].OrderID)
		assertAmount(t, 180, bucket.TotalRevenue)
		assert.Equal(t, 2, bucket.NewOrderCount)
		assert.Equal(t, 2, report.Summary.TotalOrders)
	})

	t.Run("new-order counting needs no revenue event", func(t *testing.T) {
		// created inside the window, picked up and returned outside it
		o := newRentOrder(rental.OrderStatusReturned, day(30))
		pickedUp := time.Date(2026, 9, 2, 10, 0, 0, 0, time.UTC)
		returned := time.Date(2026, 9, 3, 10, 0, 0, 0, time.UTC)
		o.PickedUpAt = &pickedUp
		o.ReturnedAt = &returned
		o.DepositAmount = decimal.Zero // and no deposit either

		report := e.BuildDailyReport([]rental.Order{*o}, monthWindow())
		require.Len(t, report.Days, 1)
		assert.Equal(t, 1, report.Days[0].NewOrderCount)
		assert.Empty(t, report.Days[0].Orders)
		assert.Equal(t, 1, report.Summary.TotalNewOrders)
		assert.Equal(t, 0, report.Summary.TotalOrders)
	})

	t.Run("creation-instant cancellations are not new orders", func(t *testing.T) {
		o := newRentOrder(rental.OrderStatusCancelled, day(4))

		report := e.BuildDailyReport([]rental.Order{*o}, monthWindow())
		assert.Empty(t, report.Days)
		assert.Equal(t, 0, report.Summary.TotalNewOrders)
	})

	t.Run("rebuilding from the same input is deterministic", func(t *testing.T) {
		a := newRentOrder(rental.OrderStatusReturned, day(1))
		pickedUp, returned := day(2), day(3)
		a.PickedUpAt = &pickedUp
		a.ReturnedAt = &returned
		b := newRentOrder(rental.OrderStatusCancelled, day(2))
		b.UpdatedAt = day(6)
		orders := []rental.Order{*a, *b}

		first := e.BuildDailyReport(orders, monthWindow())
		second := e.BuildDailyReport(orders, monthWindow())
		assert.Equal(t, first, second)
	})

	t.Run("empty input yields an empty report", func(t *testing.T) {
		report := e.BuildDailyReport(nil, monthWindow())
		assert.Empty(t, report.Days)
		assert.Equal(t, 0, report.Summary.TotalDays)
		assert.True(t, report.Summary.TotalRevenue.IsZero())
	})
}

func TestPeriodIncome(t *testing.T) {
	e := testEngine()

	t.Run("splits realized and projected", func(t *testing.T) {
		// fully realized order: deposit + pickup before now
		realized := newRentOrder(rental.OrderStatusPickuped, day(1))
		pickedUp := day(2)
		realized.PickedUpAt = &pickedUp

		// reserved order with a planned pickup after now
		planned := newTestOrder(rental.OrderTypeRent, rental.OrderStatusReserved, day(10))
		planned.TotalAmount = decimal.NewFromInt(300)
		planned.DepositAmount = decimal.NewFromInt(60)
		plan := day(20)
		planned.PickupPlanAt = &plan

		income := e.PeriodIncome([]rental.Order{*realized, *planned}, monthWindow())
		assertAmount(t, 610, income.Realized) // 100 + 450 + the planned order's 60 deposit
		assertAmount(t, 240, income.Projected)
	})

	t.Run("events dated after now do not count as realized", func(t *testing.T) {
		o := newRentOrder(rental.OrderStatusPickuped, day(1))
		pickedUp := day(25) // after testNow
		o.PickedUpAt = &pickedUp

		income := e.PeriodIncome([]rental.Order{*o}, monthWindow())
		assertAmount(t, 100, income.Realized) // deposit only
		assert.True(t, income.Projected.IsZero())
	})

	t.Run("empty input is all zero", func(t *testing.T) {
		income := e.PeriodIncome(nil, monthWindow())
		assert.True(t, income.Realized.IsZero())
		assert.True(t, income.Projected.IsZero())
	})
}
