package domain

import (
	"encoding/json"
	"fmt"
	"slices"
)

// Role enumerates the positions a restaurant employee can hold.
type Role string

// Canonical employee roles.
const (
	RoleWaiter  Role = "waiter"
	RoleCook    Role = "cook"
	RoleManager Role = "manager"
	RoleDriver  Role = "driver"
	RoleOwner   Role = "owner"
)

// Position enumerates the positions an employment contract can be written for.
type Position string

// Canonical contract positions.
const (
	PositionWaiter  Position = "waiter"
	PositionCook    Position = "cook"
	PositionManager Position = "manager"
	PositionDriver  Position = "driver"
)

// DeliveryStatus tracks a supplier delivery through receipt.
type DeliveryStatus string

// Canonical delivery statuses.
const (
	DeliveryPending    DeliveryStatus = "pending"
	DeliveryInProgress DeliveryStatus = "in_progress"
	DeliveryCompleted  DeliveryStatus = "completed"
)

// Metric is the measurement unit of an ingredient amount.
type Metric string

// Supported ingredient units.
const (
	MetricGrams       Metric = "grams"
	MetricMilliliters Metric = "milliliters"
)

// OrderStatus enumerates order workflow states.
type OrderStatus string

// Canonical order statuses.
const (
	OrderPlaced         OrderStatus = "placed"
	OrderNew            OrderStatus = "new"
	OrderReady          OrderStatus = "ready"
	OrderPaid           OrderStatus = "paid"
	OrderToBePaid       OrderStatus = "to_be_paid"
	OrderDuringDelivery OrderStatus = "during_delivery"
	OrderCompleted      OrderStatus = "completed"
)

// PaymentType enumerates accepted payment methods.
type PaymentType string

// Accepted payment methods.
const (
	PaymentCash   PaymentType = "cash"
	PaymentCard   PaymentType = "card"
	PaymentOnline PaymentType = "online"
)

// OrderType distinguishes takeaway from on-site orders.
type OrderType string

// Order fulfilment types.
const (
	OrderTakeaway OrderType = "takeaway"
	OrderOnsite   OrderType = "onsite"
)

// ReservationStatus enumerates reservation states.
type ReservationStatus string

// Canonical reservation statuses.
const (
	ReservationPlaced   ReservationStatus = "placed"
	ReservationCanceled ReservationStatus = "canceled"
)

var (
	roles               = []Role{RoleWaiter, RoleCook, RoleManager, RoleDriver, RoleOwner}
	positions           = []Position{PositionWaiter, PositionCook, PositionManager, PositionDriver}
	deliveryStatuses    = []DeliveryStatus{DeliveryPending, DeliveryInProgress, DeliveryCompleted}
	metrics             = []Metric{MetricGrams, MetricMilliliters}
	orderStatuses       = []OrderStatus{OrderPlaced, OrderNew, OrderReady, OrderPaid, OrderToBePaid, OrderDuringDelivery, OrderCompleted}
	paymentTypes        = []PaymentType{PaymentCash, PaymentCard, PaymentOnline}
	orderTypes          = []OrderType{OrderTakeaway, OrderOnsite}
	reservationStatuses = []ReservationStatus{ReservationPlaced, ReservationCanceled}
)

// InvalidEnumError reports a value outside an enumeration's closed set.
type InvalidEnumError struct {
	Enum  string
	Value string
}

func (e InvalidEnumError) Error() string {
	return fmt.Sprintf("invalid %s %q", e.Enum, e.Value)
}

func parseEnum[T ~string](name, raw string, allowed []T) (T, error) {
	v := T(raw)
	if !slices.Contains(allowed, v) {
		var zero T
		return zero, InvalidEnumError{Enum: name, Value: raw}
	}
	return v, nil
}

func unmarshalEnum[T ~string](data []byte, name string, allowed []T, dst *T) error {
	var raw string
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("decode %s: %w", name, err)
	}
	v, err := parseEnum(name, raw, allowed)
	if err != nil {
		return err
	}
	*dst = v
	return nil
}

// ParseRole validates raw against the employee role set.
func ParseRole(raw string) (Role, error) { return parseEnum("role", raw, roles) }

// Valid reports whether r is a known role.
func (r Role) Valid() bool { return slices.Contains(roles, r) }

// UnmarshalJSON rejects roles outside the closed set.
func (r *Role) UnmarshalJSON(data []byte) error { return unmarshalEnum(data, "role", roles, r) }

// ParsePosition validates raw against the contract position set.
func ParsePosition(raw string) (Position, error) { return parseEnum("position", raw, positions) }

// Valid reports whether p is a known position.
func (p Position) Valid() bool { return slices.Contains(positions, p) }

// UnmarshalJSON rejects positions outside the closed set.
func (p *Position) UnmarshalJSON(data []byte) error {
	return unmarshalEnum(data, "position", positions, p)
}

// ParseDeliveryStatus validates raw against the delivery status set.
func ParseDeliveryStatus(raw string) (DeliveryStatus, error) {
	return parseEnum("delivery status", raw, deliveryStatuses)
}

// Valid reports whether s is a known delivery status.
func (s DeliveryStatus) Valid() bool { return slices.Contains(deliveryStatuses, s) }

// UnmarshalJSON rejects delivery statuses outside the closed set.
func (s *DeliveryStatus) UnmarshalJSON(data []byte) error {
	return unmarshalEnum(data, "delivery status", deliveryStatuses, s)
}

// ParseMetric validates raw against the ingredient unit set.
func ParseMetric(raw string) (Metric, error) { return parseEnum("metric", raw, metrics) }

// Valid reports whether m is a known unit.
func (m Metric) Valid() bool { return slices.Contains(metrics, m) }

// UnmarshalJSON rejects units outside the closed set.
func (m *Metric) UnmarshalJSON(data []byte) error { return unmarshalEnum(data, "metric", metrics, m) }

// ParseOrderStatus validates raw against the order status set.
func ParseOrderStatus(raw string) (OrderStatus, error) {
	return parseEnum("order status", raw, orderStatuses)
}

// Valid reports whether s is a known order status.
func (s OrderStatus) Valid() bool { return slices.Contains(orderStatuses, s) }

// UnmarshalJSON rejects order statuses outside the closed set.
func (s *OrderStatus) UnmarshalJSON(data []byte) error {
	return unmarshalEnum(data, "order status", orderStatuses, s)
}

// ParsePaymentType validates raw against the payment method set.
func ParsePaymentType(raw string) (PaymentType, error) {
	return parseEnum("payment type", raw, paymentTypes)
}

// Valid reports whether p is a known payment method.
func (p PaymentType) Valid() bool { return slices.Contains(paymentTypes, p) }

// UnmarshalJSON rejects payment methods outside the closed set.
func (p *PaymentType) UnmarshalJSON(data []byte) error {
	return unmarshalEnum(data, "payment type", paymentTypes, p)
}

// ParseOrderType validates raw against the order type set.
func ParseOrderType(raw string) (OrderType, error) { return parseEnum("order type", raw, orderTypes) }

// Valid reports whether t is a known order type.
func (t OrderType) Valid() bool { return slices.Contains(orderTypes, t) }

// UnmarshalJSON rejects order types outside the closed set.
func (t *OrderType) UnmarshalJSON(data []byte) error {
	return unmarshalEnum(data, "order type", orderTypes, t)
}

// ParseReservationStatus validates raw against the reservation status set.
func ParseReservationStatus(raw string) (ReservationStatus, error) {
	return parseEnum("reservation status", raw, reservationStatuses)
}

// Valid reports whether s is a known reservation status.
func (s ReservationStatus) Valid() bool { return slices.Contains(reservationStatuses, s) }

// UnmarshalJSON rejects reservation statuses outside the closed set.
func (s *ReservationStatus) UnmarshalJSON(data []byte) error {
	return unmarshalEnum(data, "reservation status", reservationStatuses, s)
}
