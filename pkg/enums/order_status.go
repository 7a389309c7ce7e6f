package enums

import "fmt"

// OrderStatus tracks fulfillment progress of an invoice, independent of payment.
type OrderStatus string

const (
	OrderStatusReceived   OrderStatus = "received"
	OrderStatusProcessing OrderStatus = "processing"
	OrderStatusDispatched OrderStatus = "dispatched"
	OrderStatusDelivered  OrderStatus = "delivered"
)

var orderStatusRank = map[OrderStatus]int{
	OrderStatusReceived:   0,
	OrderStatusProcessing: 1,
	OrderStatusDispatched: 2,
	OrderStatusDelivered:  3,
}

// String implements fmt.Stringer.
func (s OrderStatus) String() string {
	return string(s)
}

// IsValid reports whether the status is recognized.
func (s OrderStatus) IsValid() bool {
	_, ok := orderStatusRank[s]
	return ok
}

// CanAdvanceTo reports whether the transition is forward-only.
func (s OrderStatus) CanAdvanceTo(next OrderStatus) bool {
	from, ok := orderStatusRank[s]
	if !ok {
		return false
	}
	to, ok := orderStatusRank[next]
	if !ok {
		return false
	}
	return to > from
}

// ParseOrderStatus converts a raw string into an OrderStatus.
func ParseOrderStatus(value string) (OrderStatus, error) {
	candidate := OrderStatus(value)
	if candidate.IsValid() {
		return candidate, nil
	}
	return "", fmt.Errorf("invalid order status %q", value)
}
