package rental

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/rentora/backend/internal/domain/rental"
)

// =============================================================================
// Order DTOs
// =============================================================================

// CreateOrderRequest represents a request to create a new order
type CreateOrderRequest struct {
	OrderNumber   string           `json:"order_number" binding:"required,min=1,max=50"`
	CustomerID    uuid.UUID        `json:"customer_id" binding:"required"`
	CustomerName  string           `json:"customer_name" binding:"max=200"`
	OrderType     string           `json:"order_type" binding:"required,oneof=RENT SALE"`
	TotalAmount   decimal.Decimal  `json:"total_amount" binding:"required"`
	DepositAmount *decimal.Decimal `json:"deposit_amount"`
	OutletID      *uuid.UUID       `json:"outlet_id"`
	PickupPlanAt  *time.Time       `json:"pickup_plan_at"`
	ReturnPlanAt  *time.Time       `json:"return_plan_at"`
	Remark        string           `json:"remark" binding:"max=500"`
}

// PickupOrderRequest represents a request to mark an order picked up
type PickupOrderRequest struct {
	PickedUpAt      *time.Time       `json:"picked_up_at"`
	SecurityDeposit *decimal.Decimal `json:"security_deposit"`
}

// ReturnOrderRequest represents a request to mark an order returned
type ReturnOrderRequest struct {
	ReturnedAt *time.Time       `json:"returned_at"`
	DamageFee  *decimal.Decimal `json:"damage_fee"`
}

// CancelOrderRequest represents a request to cancel an order
type CancelOrderRequest struct {
	Reason string `json:"reason" binding:"max=500"`
}

// ScheduleOrderRequest represents a request to set planned pickup/return times
type ScheduleOrderRequest struct {
	PickupPlanAt *time.Time `json:"pickup_plan_at"`
	ReturnPlanAt *time.Time `json:"return_plan_at"`
}

// OrderResponse represents an order in API responses
type OrderResponse struct {
	ID              uuid.UUID       `json:"id"`
	TenantID        uuid.UUID       `json:"tenant_id"`
	OrderNumber     string          `json:"order_number"`
	CustomerID      uuid.UUID       `json:"customer_id"`
	CustomerName    string          `json:"customer_name"`
	OutletID        *uuid.UUID      `json:"outlet_id,omitempty"`
	OrderType       string          `json:"order_type"`
	Status          string          `json:"status"`
	TotalAmount     decimal.Decimal `json:"total_amount"`
	DepositAmount   decimal.Decimal `json:"deposit_amount"`
	SecurityDeposit decimal.Decimal `json:"security_deposit"`
	DamageFee       decimal.Decimal `json:"damage_fee"`
	PickedUpAt      *time.Time      `json:"picked_up_at,omitempty"`
	ReturnedAt      *time.Time      `json:"returned_at,omitempty"`
	PickupPlanAt    *time.Time      `json:"pickup_plan_at,omitempty"`
	ReturnPlanAt    *time.Time      `json:"return_plan_at,omitempty"`
	CancelReason    string          `json:"cancel_reason,omitempty"`
	Remark          string          `json:"remark,omitempty"`
	CreatedAt       time.Time       `json:"created_at"`
	UpdatedAt       time.Time       `json:"updated_at"`
	Version         int             `json:"version"`
}

// OrderListFilter represents filter options for the order list
type OrderListFilter struct {
	Search     string `form:"search"`
	Status     string `form:"status" binding:"omitempty,oneof=RESERVED PICKUPED RETURNED COMPLETED CANCELLED"`
	OrderType  string `form:"order_type" binding:"omitempty,oneof=RENT SALE"`
	CustomerID string `form:"customer_id" binding:"omitempty,uuid"`
	OutletID   string `form:"outlet_id" binding:"omitempty,uuid"`
	Page       int    `form:"page" binding:"omitempty,min=1"`
	PageSize   int    `form:"page_size" binding:"omitempty,min=1,max=100"`
	OrderBy    string `form:"order_by"`
	OrderDir   string `form:"order_dir" binding:"omitempty,oneof=asc desc"`
}

// ToOrderResponse converts a domain order to its API representation
func ToOrderResponse(order *rental.Order) OrderResponse {
	return OrderResponse{
		ID:              order.ID,
		TenantID:        order.TenantID,
		OrderNumber:     order.OrderNumber,
		CustomerID:      order.CustomerID,
		CustomerName:    order.CustomerName,
		OutletID:        order.OutletID,
		OrderType:       order.OrderType.String(),
		Status:          order.Status.String(),
		TotalAmount:     order.TotalAmount,
		DepositAmount:   order.DepositAmount,
		SecurityDeposit: order.SecurityDeposit,
		DamageFee:       order.DamageFee,
		PickedUpAt:      order.PickedUpAt,
		ReturnedAt:      order.ReturnedAt,
		PickupPlanAt:    order.PickupPlanAt,
		ReturnPlanAt:    order.ReturnPlanAt,
		CancelReason:    order.CancelReason,
		Remark:          order.Remark,
		CreatedAt:       order.CreatedAt,
		UpdatedAt:       order.UpdatedAt,
		Version:         order.Version,
	}
}

// ToOrderResponses converts a slice of domain orders
func ToOrderResponses(orders []rental.Order) []OrderResponse {
	responses := make([]OrderResponse, len(orders))
	for i := range orders {
		responses[i] = ToOrderResponse(&orders[i])
	}
	return responses
}
