package rental

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/rentora/backend/internal/domain/shared"
	"github.com/rentora/backend/internal/domain/shared/valueobject"
)

// OrderType distinguishes rental orders from outright sales
type OrderType string

const (
	OrderTypeRent OrderType = "RENT"
	OrderTypeSale OrderType = "SALE"
)

// IsValid checks if the type is a valid OrderType
func (t OrderType) IsValid() bool {
	return t == OrderTypeRent || t == OrderTypeSale
}

// String returns the string representation of OrderType
func (t OrderType) String() string {
	return string(t)
}

// OrderStatus represents the lifecycle status of an order
type OrderStatus string

const (
	OrderStatusReserved  OrderStatus = "RESERVED"
	OrderStatusPickuped  OrderStatus = "PICKUPED"
	OrderStatusReturned  OrderStatus = "RETURNED"
	OrderStatusCompleted OrderStatus = "COMPLETED"
	OrderStatusCancelled OrderStatus = "CANCELLED"
)

// IsValid checks if the status is a valid OrderStatus
func (s OrderStatus) IsValid() bool {
	switch s {
	case OrderStatusReserved, OrderStatusPickuped, OrderStatusReturned, OrderStatusCompleted, OrderStatusCancelled:
		return true
	}
	return false
}

// String returns the string representation of OrderStatus
func (s OrderStatus) String() string {
	return string(s)
}

// IsTerminal reports whether the status ends the order lifecycle
func (s OrderStatus) IsTerminal() bool {
	return s == OrderStatusCompleted || s == OrderStatusCancelled
}

// CanTransitionTo checks if the status can transition to the target status.
// Cancellation is a terminal overlay allowed from any non-terminal state.
func (s OrderStatus) CanTransitionTo(target OrderStatus) bool {
	switch s {
	case OrderStatusReserved:
		return target == OrderStatusPickuped || target == OrderStatusCancelled
	case OrderStatusPickuped:
		return target == OrderStatusReturned || target == OrderStatusCancelled
	case OrderStatusReturned:
		return target == OrderStatusCompleted || target == OrderStatusCancelled
	case OrderStatusCompleted, OrderStatusCancelled:
		return false
	}
	return false
}

// Order is the rental/sale order aggregate root.
// Lifecycle timestamps stay nil until the corresponding transition occurs;
// planned timestamps are independent of whether the actual event happened.
type Order struct {
	shared.TenantAggregateRoot
	OrderNumber     string
	CustomerID      uuid.UUID
	CustomerName    string
	OutletID        *uuid.UUID
	OrderType       OrderType       `gorm:"column:order_type"`
	Status          OrderStatus     `gorm:"index"`
	TotalAmount     decimal.Decimal `gorm:"type:decimal(20,2)"`
	DepositAmount   decimal.Decimal `gorm:"type:decimal(20,2)"`
	SecurityDeposit decimal.Decimal `gorm:"type:decimal(20,2)"`
	DamageFee       decimal.Decimal `gorm:"type:decimal(20,2)"`
	PickedUpAt      *time.Time
	ReturnedAt      *time.Time
	PickupPlanAt    *time.Time
	ReturnPlanAt    *time.Time
	CancelReason    string
	Remark          string
}

// TableName returns the database table name
func (Order) TableName() string {
	return "rental_orders"
}

// NewOrder creates a new order. RENT orders start RESERVED with the deposit
// collected; SALE orders are settled in full at creation and start COMPLETED.
func NewOrder(tenantID uuid.UUID, orderNumber string, customerID uuid.UUID, customerName string, orderType OrderType, totalAmount, depositAmount valueobject.Money) (*Order, error) {
	if orderNumber == "" {
		return nil, shared.NewDomainError("INVALID_ORDER_NUMBER", "Order number cannot be empty")
	}
	if len(orderNumber) > 50 {
		return nil, shared.NewDomainError("INVALID_ORDER_NUMBER", "Order number cannot exceed 50 characters")
	}
	if customerID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_CUSTOMER", "Customer ID cannot be empty")
	}
	if !orderType.IsValid() {
		return nil, shared.NewDomainError("INVALID_ORDER_TYPE", "Order type must be RENT or SALE")
	}
	if totalAmount.IsNegative() {
		return nil, shared.NewDomainError("INVALID_AMOUNT", "Total amount cannot be negative")
	}
	if depositAmount.IsNegative() {
		return nil, shared.NewDomainError("INVALID_AMOUNT", "Deposit amount cannot be negative")
	}
	if orderType == OrderTypeSale && !depositAmount.IsZero() {
		return nil, shared.NewDomainError("INVALID_AMOUNT", "Sale orders do not carry a deposit")
	}

	status := OrderStatusReserved
	if orderType == OrderTypeSale {
		status = OrderStatusCompleted
	}

	order := &Order{
		TenantAggregateRoot: shared.NewTenantAggregateRoot(tenantID),
		OrderNumber:         orderNumber,
		CustomerID:          customerID,
		CustomerName:        customerName,
		OrderType:           orderType,
		Status:              status,
		TotalAmount:         totalAmount.Amount(),
		DepositAmount:       depositAmount.Amount(),
		SecurityDeposit:     decimal.Zero,
		DamageFee:           decimal.Zero,
	}
	order.AddDomainEvent(NewOrderCreatedEvent(order))
	return order, nil
}

// SchedulePickup records the planned pickup time for a RENT order
func (o *Order) SchedulePickup(planAt time.Time) error {
	if o.OrderType != OrderTypeRent {
		return shared.NewDomainError("INVALID_ORDER_TYPE", "Only rental orders have a pickup schedule")
	}
	if o.Status != OrderStatusReserved {
		return shared.ErrInvalidState
	}
	o.PickupPlanAt = &planAt
	o.UpdatedAt = time.Now()
	return nil
}

// ScheduleReturn records the planned return time for a RENT order
func (o *Order) ScheduleReturn(planAt time.Time) error {
	if o.OrderType != OrderTypeRent {
		return shared.NewDomainError("INVALID_ORDER_TYPE", "Only rental orders have a return schedule")
	}
	if o.Status != OrderStatusReserved && o.Status != OrderStatusPickuped {
		return shared.ErrInvalidState
	}
	if o.PickupPlanAt != nil && planAt.Before(*o.PickupPlanAt) {
		return shared.NewDomainError("INVALID_SCHEDULE", "Planned return cannot precede planned pickup")
	}
	o.ReturnPlanAt = &planAt
	o.UpdatedAt = time.Now()
	return nil
}

// MarkPickedUp transitions a RENT order to PICKUPED. The security deposit is
// the refundable hold collected at pickup time.
func (o *Order) MarkPickedUp(at time.Time, securityDeposit valueobject.Money) error {
	if o.OrderType != OrderTypeRent {
		return shared.NewDomainError("INVALID_ORDER_TYPE", "Only rental orders can be picked up")
	}
	if !o.Status.CanTransitionTo(OrderStatusPickuped) {
		return shared.NewDomainError("INVALID_STATE", "Order cannot be picked up in status "+o.Status.String())
	}
	if at.Before(o.CreatedAt) {
		return shared.NewDomainError("INVALID_TIMESTAMP", "Pickup time cannot precede order creation")
	}
	if securityDeposit.IsNegative() {
		return shared.NewDomainError("INVALID_AMOUNT", "Security deposit cannot be negative")
	}

	o.Status = OrderStatusPickuped
	o.PickedUpAt = &at
	o.SecurityDeposit = securityDeposit.Amount()
	o.UpdatedAt = time.Now()
	o.AddDomainEvent(NewOrderPickedUpEvent(o))
	return nil
}

// MarkReturned transitions a PICKUPED order to RETURNED, assessing the
// damage fee offset against the security deposit.
func (o *Order) MarkReturned(at time.Time, damageFee valueobject.Money) error {
	if o.OrderType != OrderTypeRent {
		return shared.NewDomainError("INVALID_ORDER_TYPE", "Only rental orders can be returned")
	}
	if !o.Status.CanTransitionTo(OrderStatusReturned) {
		return shared.NewDomainError("INVALID_STATE", "Order cannot be returned in status "+o.Status.String())
	}
	if o.PickedUpAt == nil || at.Before(*o.PickedUpAt) {
		return shared.NewDomainError("INVALID_TIMESTAMP", "Return time cannot precede pickup")
	}
	if damageFee.IsNegative() {
		return shared.NewDomainError("INVALID_AMOUNT", "Damage fee cannot be negative")
	}

	o.Status = OrderStatusReturned
	o.ReturnedAt = &at
	o.DamageFee = damageFee.Amount()
	o.UpdatedAt = time.Now()
	o.AddDomainEvent(NewOrderReturnedEvent(o))
	return nil
}

// Complete closes a RETURNED rental order once settlement is done
func (o *Order) Complete() error {
	if !o.Status.CanTransitionTo(OrderStatusCompleted) {
		return shared.NewDomainError("INVALID_STATE", "Order cannot be completed in status "+o.Status.String())
	}
	o.Status = OrderStatusCompleted
	o.UpdatedAt = time.Now()
	o.AddDomainEvent(NewOrderCompletedEvent(o))
	return nil
}

// Cancel terminates the order. UpdatedAt marks exactly when the
// cancellation happened; revenue recognition reads it as the refund instant.
func (o *Order) Cancel(reason string) error {
	if o.Status == OrderStatusCancelled {
		return shared.NewDomainError("INVALID_STATE", "Order is already cancelled")
	}
	if o.Status == OrderStatusCompleted && o.OrderType == OrderTypeRent {
		return shared.NewDomainError("INVALID_STATE", "Completed rental orders cannot be cancelled")
	}
	o.Status = OrderStatusCancelled
	o.CancelReason = reason
	o.UpdatedAt = time.Now()
	o.AddDomainEvent(NewOrderCancelledEvent(o, reason))
	return nil
}

// SetRemark sets a free-form remark on the order
func (o *Order) SetRemark(remark string) {
	o.Remark = remark
	o.UpdatedAt = time.Now()
}

// AssignOutlet scopes the order to an outlet
func (o *Order) AssignOutlet(outletID uuid.UUID) {
	o.OutletID = &outletID
	o.UpdatedAt = time.Now()
}

// GetTotalAmountMoney returns the total amount as a Money value object
func (o *Order) GetTotalAmountMoney() valueobject.Money {
	return valueobject.NewMoneyUSD(o.TotalAmount)
}

// GetDepositAmountMoney returns the deposit as a Money value object
func (o *Order) GetDepositAmountMoney() valueobject.Money {
	return valueobject.NewMoneyUSD(o.DepositAmount)
}
