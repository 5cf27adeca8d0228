package revenue

import (
	"time"

	"github.com/shopspring/decimal"
)

// RevenueType classifies which lifecycle transition produced an event
type RevenueType string

const (
	RevenueTypeSale          RevenueType = "SALE"
	RevenueTypeRentDeposit   RevenueType = "RENT_DEPOSIT"
	RevenueTypeRentPickup    RevenueType = "RENT_PICKUP"
	RevenueTypeRentReturn    RevenueType = "RENT_RETURN"
	RevenueTypeRentCancelled RevenueType = "RENT_CANCELLED"
	RevenueTypeSaleCancelled RevenueType = "SALE_CANCELLED"
	RevenueTypeFuturePickup  RevenueType = "RENT_FUTURE_PICKUP"
	RevenueTypeFutureReturn  RevenueType = "RENT_FUTURE_RETURN"

	// RevenueTypeMultiple marks a merged report row holding more than one
	// underlying event; it never appears on a raw event.
	RevenueTypeMultiple RevenueType = "MULTIPLE"
)

// IsValid checks if the type is a valid RevenueType
func (t RevenueType) IsValid() bool {
	switch t {
	case RevenueTypeSale, RevenueTypeRentDeposit, RevenueTypeRentPickup,
		RevenueTypeRentReturn, RevenueTypeRentCancelled, RevenueTypeSaleCancelled,
		RevenueTypeFuturePickup, RevenueTypeFutureReturn, RevenueTypeMultiple:
		return true
	}
	return false
}

// String returns the string representation of RevenueType
func (t RevenueType) String() string {
	return string(t)
}

// Event is one dated, signed monetary entry attributable to a specific
// lifecycle transition. Events are derived on demand and never persisted.
type Event struct {
	Revenue     decimal.Decimal `json:"revenue"`
	Date        time.Time       `json:"date"`
	Description string          `json:"description"`
	Type        RevenueType     `json:"revenue_type"`
}

// Event descriptions, stable so report rows can de-duplicate them
const (
	descSale            = "Sale payment"
	descDeposit         = "Reservation deposit"
	descPickup          = "Pickup payment"
	descReturnSettled   = "Rental settled on return"
	descReturnBalance   = "Return settlement"
	descRentCancelled   = "Cancellation refund"
	descSaleCancelled   = "Sale cancellation refund"
	descFuturePickup    = "Scheduled pickup balance"
	descFutureDamage    = "Estimated damage charge"
	descFutureRefund    = "Estimated deposit refund"
	descFutureNoBalance = "No settlement adjustment expected"
)
