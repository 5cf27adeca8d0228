package revenue

import (
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/rentora/backend/internal/domain/rental"
)

// PeriodIncome splits a window's revenue into what already happened and
// what the planned pickups/returns are expected to bring in
type PeriodIncome struct {
	Realized  decimal.Decimal `json:"realized"`
	Projected decimal.Decimal `json:"projected"`
}

// OrderRow is one order's merged revenue line within a day bucket. When a
// day holds more than one event for the order, Revenue accumulates, the
// type collapses to MULTIPLE and Description joins the distinct event
// descriptions; RevenueDate stays the first event's timestamp and the
// full event list is preserved.
type OrderRow struct {
	OrderID      uuid.UUID          `json:"id"`
	OrderNumber  string             `json:"order_number"`
	OrderType    rental.OrderType   `json:"order_type"`
	Status       rental.OrderStatus `json:"status"`
	CustomerName string             `json:"customer_name"`
	Revenue      decimal.Decimal    `json:"revenue"`
	RevenueType  RevenueType        `json:"revenue_type"`
	Description  string             `json:"description"`
	RevenueDate  time.Time          `json:"revenue_date"`
	Events       []Event            `json:"events"`
}

// DayBucket aggregates one calendar day of the report
type DayBucket struct {
	Date          time.Time       `json:"date"`
	DateISO       string          `json:"date_iso"`
	TotalRevenue  decimal.Decimal `json:"total_revenue"`
	NewOrderCount int             `json:"new_order_count"`
	Orders        []OrderRow      `json:"orders"`

	// rowIndex maps an order to its stable handle in Orders
	rowIndex map[uuid.UUID]int
}

// ReportSummary carries the report-level totals
type ReportSummary struct {
	TotalDays      int             `json:"total_days"`
	TotalRevenue   decimal.Decimal `json:"total_revenue"`
	TotalNewOrders int             `json:"total_new_orders"`
	TotalOrders    int             `json:"total_orders"`
}

// DailyReport is the day-bucketed revenue report serialized by the API
type DailyReport struct {
	Days    []DayBucket   `json:"days"`
	Summary ReportSummary `json:"summary"`
}

// PeriodIncome derives realized income from the events that already
// happened inside [rng] and projected income from planned dates. Realized
// events dated after "now" are guarded out rather than counted.
func (e *Engine) PeriodIncome(orders []rental.Order, rng DateRange) PeriodIncome {
	now := e.now()
	income := PeriodIncome{Realized: decimal.Zero, Projected: decimal.Zero}

	for i := range orders {
		order := &orders[i]
		for _, ev := range e.DeriveEvents(order, &rng) {
			if ev.Date.After(now) {
				continue
			}
			income.Realized = income.Realized.Add(ev.Revenue)
		}
		for _, ev := range e.ProjectFutureEvents(order, rng) {
			income.Projected = income.Projected.Add(ev.Revenue)
		}
	}
	return income
}

// BuildDailyReport buckets every realized event inside [rng] by calendar
// day and merges same-order events within a day into single rows. The
// result depends only on the input order list's own order: rows keep
// first-touch insertion order and days are sorted chronologically.
func (e *Engine) BuildDailyReport(orders []rental.Order, rng DateRange) *DailyReport {
	buckets := make(map[DayKey]*DayBucket)
	distinctOrders := make(map[uuid.UUID]struct{})
	totalRevenue := decimal.Zero
	totalNewOrders := 0

	getBucket := func(key DayKey, date time.Time) *DayBucket {
		if b, ok := buckets[key]; ok {
			return b
		}
		b := &DayBucket{
			Date:         e.days.StartOfDay(date),
			DateISO:      key.String(),
			TotalRevenue: decimal.Zero,
			Orders:       make([]OrderRow, 0, 4),
			rowIndex:     make(map[uuid.UUID]int),
		}
		buckets[key] = b
		return b
	}

	for i := range orders {
		order := &orders[i]

		for _, ev := range e.DeriveEvents(order, &rng) {
			key := e.days.Key(ev.Date)
			bucket := getBucket(key, ev.Date)
			bucket.TotalRevenue = bucket.TotalRevenue.Add(ev.Revenue)
			totalRevenue = totalRevenue.Add(ev.Revenue)
			distinctOrders[order.ID] = struct{}{}

			idx, seen := bucket.rowIndex[order.ID]
			if !seen {
				bucket.rowIndex[order.ID] = len(bucket.Orders)
				bucket.Orders = append(bucket.Orders, OrderRow{
					OrderID:      order.ID,
					OrderNumber:  order.OrderNumber,
					OrderType:    order.OrderType,
					Status:       order.Status,
					CustomerName: order.CustomerName,
					Revenue:      ev.Revenue,
					RevenueType:  ev.Type,
					Description:  ev.Description,
					RevenueDate:  ev.Date,
					Events:       []Event{ev},
				})
				continue
			}

			row := &bucket.Orders[idx]
			row.Revenue = row.Revenue.Add(ev.Revenue)
			row.Events = append(row.Events, ev)
			row.RevenueType = RevenueTypeMultiple
			row.Description = joinDescriptions(row.Events)
		}

		// new-order counting is independent of whether any revenue event
		// landed in the window that day
		if rng.Contains(order.CreatedAt) && !e.cancelledAtCreation(order) {
			key := e.days.Key(order.CreatedAt)
			bucket := getBucket(key, order.CreatedAt)
			bucket.NewOrderCount++
			totalNewOrders++
		}
	}

	keys := make([]DayKey, 0, len(buckets))
	for key := range buckets {
		keys = append(keys, key)
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i] < keys[j] })

	days := make([]DayBucket, 0, len(keys))
	for _, key := range keys {
		days = append(days, *buckets[key])
	}

	return &DailyReport{
		Days: days,
		Summary: ReportSummary{
			TotalDays:      len(days),
			TotalRevenue:   totalRevenue,
			TotalNewOrders: totalNewOrders,
			TotalOrders:    len(distinctOrders),
		},
	}
}

// joinDescriptions builds the merged row description: the distinct event
// descriptions in insertion order, joined with " + "
func joinDescriptions(events []Event) string {
	seen := make(map[string]struct{}, len(events))
	parts := make([]string, 0, len(events))
	for _, ev := range events {
		if _, ok := seen[ev.Description]; ok {
			continue
		}
		seen[ev.Description] = struct{}{}
		parts = append(parts, ev.Description)
	}
	return strings.Join(parts, " + ")
}
