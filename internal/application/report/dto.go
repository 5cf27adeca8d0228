package report

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/rentora/backend/internal/domain/rental"
	"github.com/rentora/backend/internal/domain/revenue"
)

// =============================================================================
// Revenue report DTOs
// =============================================================================

// OrderRevenueResponse carries one order's full revenue picture
type OrderRevenueResponse struct {
	OrderID        uuid.UUID       `json:"order_id"`
	OrderNumber    string          `json:"order_number"`
	OrderType      string          `json:"order_type"`
	Status         string          `json:"status"`
	CurrentRevenue decimal.Decimal `json:"current_revenue"`
	Events         []revenue.Event `json:"events"`
}

// OrderDateRevenueResponse answers what one order contributes on one day
type OrderDateRevenueResponse struct {
	OrderID uuid.UUID       `json:"order_id"`
	Date    string          `json:"date"`
	Revenue decimal.Decimal `json:"revenue"`
}

// PeriodIncomeResponse splits a window's income into realized and projected
type PeriodIncomeResponse struct {
	From      string          `json:"from"`
	To        string          `json:"to"`
	Realized  decimal.Decimal `json:"realized"`
	Projected decimal.Decimal `json:"projected"`
	Total     decimal.Decimal `json:"total"`
}

func toOrderRevenueResponse(order *rental.Order, current decimal.Decimal, events []revenue.Event) *OrderRevenueResponse {
	if events == nil {
		events = []revenue.Event{}
	}
	return &OrderRevenueResponse{
		OrderID:        order.ID,
		OrderNumber:    order.OrderNumber,
		OrderType:      order.OrderType.String(),
		Status:         order.Status.String(),
		CurrentRevenue: current,
		Events:         events,
	}
}

func toPeriodIncomeResponse(rng revenue.DateRange, days revenue.DayPolicy, income revenue.PeriodIncome) *PeriodIncomeResponse {
	return &PeriodIncomeResponse{
		From:      days.Key(rng.Start).String(),
		To:        days.Key(rng.End).String(),
		Realized:  income.Realized,
		Projected: income.Projected,
		Total:     income.Realized.Add(income.Projected),
	}
}
