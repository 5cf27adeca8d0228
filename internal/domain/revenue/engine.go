package revenue

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/rentora/backend/internal/domain/rental"
)

// Engine derives revenue events from order snapshots. It is stateless and
// pure: every method is a total function of its inputs plus the injected
// day policy and clock, so all methods are safe for concurrent use.
//
// Malformed input never fails a derivation. Missing or invalid timestamps
// suppress the events that depend on them, and zero-value monetary fields
// contribute zero.
type Engine struct {
	days DayPolicy
	now  func() time.Time
}

// Option configures an Engine
type Option func(*Engine)

// WithDayPolicy sets the calendar-day policy used for all same-day logic
func WithDayPolicy(p DayPolicy) Option {
	return func(e *Engine) {
		e.days = p
	}
}

// WithClock sets the time source used for realized/projected branching
func WithClock(now func() time.Time) Option {
	return func(e *Engine) {
		e.now = now
	}
}

// NewEngine creates an engine with UTC calendar days and the wall clock
func NewEngine(opts ...Option) *Engine {
	e := &Engine{
		days: UTCDays(),
		now:  time.Now,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Days returns the engine's calendar-day policy
func (e *Engine) Days() DayPolicy {
	return e.days
}

// DeriveEvents lists every already-occurred revenue event for an order.
// A non-nil rng drops events dated outside the window; the events still
// conceptually happened, they are just not returned.
func (e *Engine) DeriveEvents(order *rental.Order, rng *DateRange) []Event {
	if order == nil {
		return nil
	}

	var events []Event
	switch order.OrderType {
	case rental.OrderTypeSale:
		events = e.deriveSaleEvents(order)
	case rental.OrderTypeRent:
		events = e.deriveRentEvents(order)
	default:
		return nil
	}

	if rng == nil {
		return events
	}
	filtered := events[:0]
	for _, ev := range events {
		if rng.Contains(ev.Date) {
			filtered = append(filtered, ev)
		}
	}
	return filtered
}

// deriveSaleEvents handles SALE orders: full amount at creation, negated
// on cancellation. A sale cancelled at the instant of creation never
// really happened and yields nothing.
func (e *Engine) deriveSaleEvents(order *rental.Order) []Event {
	if e.cancelledAtCreation(order) {
		return nil
	}

	events := []Event{{
		Revenue:     order.TotalAmount,
		Date:        order.CreatedAt,
		Description: descSale,
		Type:        RevenueTypeSale,
	}}

	if order.Status == rental.OrderStatusCancelled && order.CreatedAt.Before(order.UpdatedAt) {
		events = append(events, Event{
			Revenue:     order.TotalAmount.Neg(),
			Date:        order.UpdatedAt,
			Description: descSaleCancelled,
			Type:        RevenueTypeSaleCancelled,
		})
	}
	return events
}

// deriveRentEvents handles the RENT lifecycle. The same-day flags decide
// which sub-amounts get their own event: the deposit is only counted
// separately when pickup and return each land on later days, and a return
// on the pickup day absorbs the whole order into one event.
func (e *Engine) deriveRentEvents(order *rental.Order) []Event {
	if e.cancelledAtCreation(order) {
		return nil
	}

	pickedUpAt := validTime(order.PickedUpAt)
	returnedAt := validTime(order.ReturnedAt)
	cancelled := order.Status == rental.OrderStatusCancelled

	sameDayPickup := pickedUpAt != nil && e.days.SameDay(order.CreatedAt, *pickedUpAt)
	pickupBase := order.CreatedAt
	if pickedUpAt != nil {
		pickupBase = *pickedUpAt
	}
	sameDayReturn := returnedAt != nil && e.days.SameDay(pickupBase, *returnedAt)

	var events []Event

	if !sameDayReturn && !sameDayPickup {
		events = append(events, Event{
			Revenue:     order.DepositAmount,
			Date:        order.CreatedAt,
			Description: descDeposit,
			Type:        RevenueTypeRentDeposit,
		})
	}

	if pickedUpAt != nil && !sameDayReturn {
		cancelledOnPickupDay := cancelled && e.days.SameDay(*pickedUpAt, order.UpdatedAt)
		if !cancelledOnPickupDay {
			amount := order.TotalAmount.Add(order.SecurityDeposit)
			if !sameDayPickup {
				// deposit was already collected separately at creation
				amount = amount.Sub(order.DepositAmount)
			}
			events = append(events, Event{
				Revenue:     amount,
				Date:        *pickedUpAt,
				Description: descPickup,
				Type:        RevenueTypeRentPickup,
			})
		}
	}

	if returnedAt != nil {
		ev := Event{
			Date: *returnedAt,
			Type: RevenueTypeRentReturn,
		}
		if sameDayReturn {
			// the only event for the whole completed lifecycle
			ev.Revenue = order.TotalAmount.Add(order.DamageFee)
			ev.Description = descReturnSettled
		} else {
			ev.Revenue = order.DamageFee.Sub(order.SecurityDeposit)
			ev.Description = descReturnBalance
		}
		events = append(events, ev)
	}

	if cancelled && order.UpdatedAt.After(order.CreatedAt) {
		collected := e.collectedAtCancellation(order, pickedUpAt, sameDayPickup)
		if !collected.IsZero() {
			events = append(events, Event{
				Revenue:     collected.Neg(),
				Date:        order.UpdatedAt,
				Description: descRentCancelled,
				Type:        RevenueTypeRentCancelled,
			})
		}
	}

	return events
}

// collectedAtCancellation reconstructs what the deposit and pickup
// arithmetic had collected by the cancellation instant, mirroring the
// same-day branching of the deposit/pickup events. The refund negates
// this amount exactly.
func (e *Engine) collectedAtCancellation(order *rental.Order, pickedUpAt *time.Time, sameDayPickup bool) decimal.Decimal {
	if pickedUpAt == nil {
		return order.DepositAmount
	}
	if sameDayPickup {
		// deposit was folded into the pickup amount
		return order.TotalAmount.Add(order.SecurityDeposit)
	}
	pickup := order.TotalAmount.Sub(order.DepositAmount).Add(order.SecurityDeposit)
	return order.DepositAmount.Add(pickup)
}

// ProjectFutureEvents lists the revenue expected from planned pickup and
// return dates within [rng], for RENT orders still short of completion.
// Only plans strictly after "now" project.
func (e *Engine) ProjectFutureEvents(order *rental.Order, rng DateRange) []Event {
	if order == nil || order.OrderType != rental.OrderTypeRent {
		return nil
	}
	now := e.now()

	switch order.Status {
	case rental.OrderStatusReserved:
		plan := validTime(order.PickupPlanAt)
		if plan == nil || !rng.Contains(*plan) || !plan.After(now) {
			return nil
		}
		balance := order.TotalAmount.Sub(order.DepositAmount)
		if !balance.IsPositive() {
			return nil
		}
		return []Event{{
			Revenue:     balance,
			Date:        *plan,
			Description: descFuturePickup,
			Type:        RevenueTypeFuturePickup,
		}}

	case rental.OrderStatusPickuped:
		plan := validTime(order.ReturnPlanAt)
		if plan == nil || !rng.Contains(*plan) || !plan.After(now) {
			return nil
		}
		settlement := order.DamageFee.Sub(order.SecurityDeposit)
		desc := descFutureNoBalance
		switch {
		case settlement.IsPositive():
			desc = descFutureDamage
		case settlement.IsNegative():
			desc = descFutureRefund
		}
		// a zero settlement still projects, for descriptive completeness
		return []Event{{
			Revenue:     settlement,
			Date:        *plan,
			Description: desc,
			Type:        RevenueTypeFutureReturn,
		}}
	}
	return nil
}

// CurrentStatusRevenue returns the single revenue number the order
// represents right now, independent of any date window. Used for totals
// and dashboards.
func (e *Engine) CurrentStatusRevenue(order *rental.Order) decimal.Decimal {
	if order == nil {
		return decimal.Zero
	}

	if order.OrderType == rental.OrderTypeSale {
		if order.Status == rental.OrderStatusCancelled {
			return decimal.Zero
		}
		return order.TotalAmount
	}

	pickedUpAt := validTime(order.PickedUpAt)
	returnedAt := validTime(order.ReturnedAt)
	sameDayPickup := pickedUpAt != nil && e.days.SameDay(order.CreatedAt, *pickedUpAt)
	pickupBase := order.CreatedAt
	if pickedUpAt != nil {
		pickupBase = *pickedUpAt
	}
	sameDayReturn := returnedAt != nil && e.days.SameDay(pickupBase, *returnedAt)

	switch order.Status {
	case rental.OrderStatusReserved:
		// once same-day timestamps exist the richer number belongs to the
		// next status; report nothing yet
		if sameDayPickup || sameDayReturn {
			return decimal.Zero
		}
		return order.DepositAmount

	case rental.OrderStatusPickuped:
		amount := order.TotalAmount.Add(order.SecurityDeposit)
		if !sameDayPickup {
			amount = amount.Sub(order.DepositAmount)
		}
		return amount

	case rental.OrderStatusReturned, rental.OrderStatusCompleted:
		// terminal, canonical total regardless of same-day timing
		return order.TotalAmount.Add(order.DamageFee)
	}
	return decimal.Zero
}

// RevenueForDate answers what the order contributes on exactly the target
// calendar day. Closed orders keep reporting their final total for any day
// after closing; future days draw on projections; everything else sums the
// realized events of that one day.
func (e *Engine) RevenueForDate(order *rental.Order, target time.Time) decimal.Decimal {
	if order == nil {
		return decimal.Zero
	}
	targetKey := e.days.Key(target)

	if returnedAt := validTime(order.ReturnedAt); returnedAt != nil {
		returnedKey := e.days.Key(*returnedAt)
		terminal := order.Status == rental.OrderStatusReturned || order.Status == rental.OrderStatusCompleted

		if terminal && returnedKey.Before(targetKey) {
			return order.TotalAmount.Add(order.DamageFee)
		}
		if returnedKey == targetKey {
			pickupBase := order.CreatedAt
			if pickedUpAt := validTime(order.PickedUpAt); pickedUpAt != nil {
				pickupBase = *pickedUpAt
			}
			if e.days.SameDay(pickupBase, *returnedAt) {
				return order.TotalAmount.Add(order.DamageFee)
			}
			return order.DamageFee.Sub(order.SecurityDeposit)
		}
	}

	if targetKey.After(e.days.Key(e.now())) {
		window := DateRange{Start: e.days.StartOfDay(target), End: e.days.EndOfDay(target)}
		return sumEventsOnDay(e.ProjectFutureEvents(order, window), e.days, targetKey)
	}

	return sumEventsOnDay(e.DeriveEvents(order, nil), e.days, targetKey)
}

// cancelledAtCreation reports whether the order was cancelled at the exact
// instant it was created, which suppresses every event
func (e *Engine) cancelledAtCreation(order *rental.Order) bool {
	return order.Status == rental.OrderStatusCancelled && !order.UpdatedAt.After(order.CreatedAt)
}

// sumEventsOnDay totals the events falling on a single calendar day
func sumEventsOnDay(events []Event, days DayPolicy, key DayKey) decimal.Decimal {
	sum := decimal.Zero
	for _, ev := range events {
		if days.Key(ev.Date) == key {
			sum = sum.Add(ev.Revenue)
		}
	}
	return sum
}

// validTime treats nil and zero-value timestamps as absent
func validTime(t *time.Time) *time.Time {
	if t == nil || t.IsZero() {
		return nil
	}
	return t
}
