package rental

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/rentora/backend/internal/domain/shared"
)

// Aggregate type constant
const AggregateTypeOrder = "RentalOrder"

// Event type constants
const (
	EventTypeOrderCreated   = "RentalOrderCreated"
	EventTypeOrderPickedUp  = "RentalOrderPickedUp"
	EventTypeOrderReturned  = "RentalOrderReturned"
	EventTypeOrderCompleted = "RentalOrderCompleted"
	EventTypeOrderCancelled = "RentalOrderCancelled"
)

// OrderCreatedEvent is raised when a new order is created
type OrderCreatedEvent struct {
	shared.BaseDomainEvent
	OrderID       uuid.UUID       `json:"order_id"`
	OrderNumber   string          `json:"order_number"`
	OrderType     OrderType       `json:"order_type"`
	CustomerID    uuid.UUID       `json:"customer_id"`
	TotalAmount   decimal.Decimal `json:"total_amount"`
	DepositAmount decimal.Decimal `json:"deposit_amount"`
}

// NewOrderCreatedEvent creates a new OrderCreatedEvent
func NewOrderCreatedEvent(order *Order) *OrderCreatedEvent {
	return &OrderCreatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeOrderCreated, AggregateTypeOrder, order.ID, order.TenantID),
		OrderID:         order.ID,
		OrderNumber:     order.OrderNumber,
		OrderType:       order.OrderType,
		CustomerID:      order.CustomerID,
		TotalAmount:     order.TotalAmount,
		DepositAmount:   order.DepositAmount,
	}
}

// EventType returns the event type name
func (e *OrderCreatedEvent) EventType() string {
	return EventTypeOrderCreated
}

// OrderPickedUpEvent is raised when the customer takes the rented items
type OrderPickedUpEvent struct {
	shared.BaseDomainEvent
	OrderID         uuid.UUID       `json:"order_id"`
	OrderNumber     string          `json:"order_number"`
	PickedUpAt      time.Time       `json:"picked_up_at"`
	SecurityDeposit decimal.Decimal `json:"security_deposit"`
}

// NewOrderPickedUpEvent creates a new OrderPickedUpEvent
func NewOrderPickedUpEvent(order *Order) *OrderPickedUpEvent {
	e := &OrderPickedUpEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeOrderPickedUp, AggregateTypeOrder, order.ID, order.TenantID),
		OrderID:         order.ID,
		OrderNumber:     order.OrderNumber,
		SecurityDeposit: order.SecurityDeposit,
	}
	if order.PickedUpAt != nil {
		e.PickedUpAt = *order.PickedUpAt
	}
	return e
}

// EventType returns the event type name
func (e *OrderPickedUpEvent) EventType() string {
	return EventTypeOrderPickedUp
}

// OrderReturnedEvent is raised when the customer returns the rented items
type OrderReturnedEvent struct {
	shared.BaseDomainEvent
	OrderID     uuid.UUID       `json:"order_id"`
	OrderNumber string          `json:"order_number"`
	ReturnedAt  time.Time       `json:"returned_at"`
	DamageFee   decimal.Decimal `json:"damage_fee"`
}

// NewOrderReturnedEvent creates a new OrderReturnedEvent
func NewOrderReturnedEvent(order *Order) *OrderReturnedEvent {
	e := &OrderReturnedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeOrderReturned, AggregateTypeOrder, order.ID, order.TenantID),
		OrderID:         order.ID,
		OrderNumber:     order.OrderNumber,
		DamageFee:       order.DamageFee,
	}
	if order.ReturnedAt != nil {
		e.ReturnedAt = *order.ReturnedAt
	}
	return e
}

// EventType returns the event type name
func (e *OrderReturnedEvent) EventType() string {
	return EventTypeOrderReturned
}

// OrderCompletedEvent is raised when a returned order is settled and closed
type OrderCompletedEvent struct {
	shared.BaseDomainEvent
	OrderID     uuid.UUID `json:"order_id"`
	OrderNumber string    `json:"order_number"`
}

// NewOrderCompletedEvent creates a new OrderCompletedEvent
func NewOrderCompletedEvent(order *Order) *OrderCompletedEvent {
	return &OrderCompletedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeOrderCompleted, AggregateTypeOrder, order.ID, order.TenantID),
		OrderID:         order.ID,
		OrderNumber:     order.OrderNumber,
	}
}

// EventType returns the event type name
func (e *OrderCompletedEvent) EventType() string {
	return EventTypeOrderCompleted
}

// OrderCancelledEvent is raised when an order is terminated early
type OrderCancelledEvent struct {
	shared.BaseDomainEvent
	OrderID     uuid.UUID `json:"order_id"`
	OrderNumber string    `json:"order_number"`
	Reason      string    `json:"reason"`
}

// NewOrderCancelledEvent creates a new OrderCancelledEvent
func NewOrderCancelledEvent(order *Order, reason string) *OrderCancelledEvent {
	return &OrderCancelledEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeOrderCancelled, AggregateTypeOrder, order.ID, order.TenantID),
		OrderID:         order.ID,
		OrderNumber:     order.OrderNumber,
		Reason:          reason,
	}
}

// EventType returns the event type name
func (e *OrderCancelledEvent) EventType() string {
	return EventTypeOrderCancelled
}
