// Package domain defines the restaurant's persistent entities, closed enumerations,
// relation schema, and the rule evaluation primitives used by restaurantcore.
package domain

import (
	"encoding/json"
	"fmt"
	"time"
)

// EntityType identifies the type of record stored in the core domain.
type EntityType string

// Supported entity type identifiers used in Change records and persistence buckets.
const (
	EntityPerson             EntityType = "person"
	EntityClient             EntityType = "client"
	EntityRestaurantEmployee EntityType = "restaurant_employee"
	EntityDeliver            EntityType = "deliver"
	EntityDelivery           EntityType = "delivery"
	EntityDish               EntityType = "dish"
	EntityIngredient         EntityType = "ingredient"
	EntityOrder              EntityType = "order"
	EntityReservation        EntityType = "reservation"
	EntityTable              EntityType = "table"
	EntityAddressHistory     EntityType = "address_history"
	EntityEmploymentContract EntityType = "employment_contract"
)

// EntityTypes lists every entity type in dependency order (parents first).
func EntityTypes() []EntityType {
	return []EntityType{
		EntityPerson,
		EntityClient,
		EntityRestaurantEmployee,
		EntityDeliver,
		EntityIngredient,
		EntityDish,
		EntityDelivery,
		EntityAddressHistory,
		EntityOrder,
		EntityReservation,
		EntityTable,
		EntityEmploymentContract,
	}
}

// Severity captures rule outcomes.
type Severity string

// Rule evaluation severities determine commit behavior.
const (
	// SeverityBlock blocks transaction commit.
	SeverityBlock Severity = "block"
	// SeverityWarn is reported but allows commit.
	SeverityWarn Severity = "warn"
)

// dateLayout is the wire layout for calendar dates.
const dateLayout = time.DateOnly

// Date is a calendar day without a time-of-day component.
type Date struct {
	time.Time
}

// NewDate truncates t to its UTC calendar day.
func NewDate(t time.Time) Date {
	y, m, d := t.UTC().Date()
	return Date{Time: time.Date(y, m, d, 0, 0, 0, 0, time.UTC)}
}

// ParseDate parses a YYYY-MM-DD string.
func ParseDate(raw string) (Date, error) {
	t, err := time.Parse(dateLayout, raw)
	if err != nil {
		return Date{}, fmt.Errorf("parse date %q: %w", raw, err)
	}
	return Date{Time: t}, nil
}

// String formats the date as YYYY-MM-DD.
func (d Date) String() string { return d.Format(dateLayout) }

// MarshalJSON encodes the date as a YYYY-MM-DD string.
func (d Date) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.String())
}

// UnmarshalJSON accepts YYYY-MM-DD or RFC 3339 timestamps.
func (d *Date) UnmarshalJSON(data []byte) error {
	var raw string
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	if parsed, err := ParseDate(raw); err == nil {
		*d = parsed
		return nil
	}
	t, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		return fmt.Errorf("parse date %q: expected YYYY-MM-DD", raw)
	}
	*d = NewDate(t)
	return nil
}

// Base contains common fields for all domain records.
type Base struct {
	ID        int64     `json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Person is an individual that can hold exactly one restaurant role.
type Person struct {
	Base
	Name        string `json:"name"`
	Surname     string `json:"surname"`
	Email       string `json:"email"`
	PhoneNumber string `json:"phone_number"`
}

// Client is the customer role of a person.
type Client struct {
	Base
	RegistrationDate time.Time `json:"registration_date"`
	PersonID         int64     `json:"person_id"`
}

// RestaurantEmployee is the staff role of a person.
type RestaurantEmployee struct {
	Base
	EmployeeIdentificator string `json:"employee_identificator"`
	Role                  Role   `json:"role"`
	PersonID              int64  `json:"person_id"`
}

// Deliver is a courier company represented by a person.
type Deliver struct {
	Base
	CompanyName string `json:"company_name"`
	PersonID    int64  `json:"person_id"`
}

// Delivery is a supplier drop of ingredients made by a courier.
type Delivery struct {
	Base
	Status        DeliveryStatus `json:"delivery_status"`
	Date          Date           `json:"delivery_date"`
	DeliverID     int64          `json:"deliver_id"`
	IngredientIDs []int64        `json:"ingredient_ids"`
}

// Dish is a menu item composed of ingredients.
type Dish struct {
	Base
	Name          string   `json:"name"`
	Description   *string  `json:"description,omitempty"`
	Price         float64  `json:"price"`
	Discount      *float64 `json:"discount,omitempty"`
	IngredientIDs []int64  `json:"ingredient_ids"`
}

// Ingredient is a stock item used by dishes and received in deliveries.
type Ingredient struct {
	Base
	Name   string `json:"name"`
	Amount int    `json:"amount"`
	Metric Metric `json:"metric"`
}

// Order is a client order handled by restaurant staff.
type Order struct {
	Base
	Status           OrderStatus `json:"status"`
	Number           string      `json:"number"`
	Hour             *string     `json:"hour,omitempty"`
	Payment          PaymentType `json:"payment"`
	TakeawayOrOnsite OrderType   `json:"takeaway_or_onsite"`
	Note             *string     `json:"note,omitempty"`
	Delay            bool        `json:"delay"`
	ClientID         int64       `json:"client_id"`
	AddressHistoryID int64       `json:"address_history_id"`
	DishIDs          []int64     `json:"dish_ids"`
	EmployeeIDs      []int64     `json:"restaurant_employee_ids"`
}

// Reservation books one or more tables for a client.
type Reservation struct {
	Base
	Date           Date              `json:"reservation_date"`
	Hour           string            `json:"reservation_hour"`
	NumberOfPeople int               `json:"number_of_people"`
	Status         ReservationStatus `json:"status"`
	ClientID       int64             `json:"client_id"`
	TableIDs       []int64           `json:"table_ids"`
}

// Table is a physical dining table.
type Table struct {
	Base
	Number        string `json:"number"`
	NumberOfSeats int    `json:"number_of_seats"`
	ReservationID *int64 `json:"reservation_id"`
}

// AddressHistory is an address a client has used, optionally tied to an order.
type AddressHistory struct {
	Base
	Street         string  `json:"street"`
	City           string  `json:"city"`
	PostCode       string  `json:"post_code"`
	BuildingNumber string  `json:"building_number"`
	Floor          *int    `json:"floor"`
	Staircase      *string `json:"staircase"`
	ClientID       int64   `json:"client_id"`
	OrderID        *int64  `json:"order_id"`
}

// EmploymentContract records the terms an employee works under.
type EmploymentContract struct {
	Base
	StartDate  Date     `json:"start_date"`
	EndDate    *Date    `json:"end_date"`
	Salary     float64  `json:"salary"`
	Position   Position `json:"position"`
	EmployeeID int64    `json:"employee_id"`
}

// Link is a join record pairing two entity ids in a many-to-many relation.
// LeftID belongs to the relation's parent entity, RightID to its child.
type Link struct {
	LeftID  int64 `json:"left_id"`
	RightID int64 `json:"right_id"`
}

// Change describes a mutation applied to an entity during a transaction.
type Change struct {
	Entity EntityType
	Action Action
	ID     int64
	Before any
	After  any
}

// Action indicates the type of modification performed.
type Action string

// Change actions enumerate supported CRUD operations.
const (
	ActionCreate Action = "create"
	ActionUpdate Action = "update"
	ActionDelete Action = "delete"
)

// Violation reports a failed rule evaluation.
type Violation struct {
	Rule     string     `json:"rule"`
	Severity Severity   `json:"severity"`
	Message  string     `json:"message"`
	Entity   EntityType `json:"entity"`
	EntityID int64      `json:"entity_id"`
}

// Result aggregates violations from the rules engine.
type Result struct {
	Violations []Violation `json:"violations"`
}

// Merge appends violations from another result.
func (r *Result) Merge(other Result) {
	if len(other.Violations) == 0 {
		return
	}
	r.Violations = append(r.Violations, other.Violations...)
}

// HasBlocking returns true if the result contains blocking violations.
func (r Result) HasBlocking() bool {
	for _, v := range r.Violations {
		if v.Severity == SeverityBlock {
			return true
		}
	}
	return false
}
