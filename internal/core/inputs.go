package core

import (
	"fmt"
	"time"

	"restaurantcore/pkg/domain"
)

// PersonInput carries the fields of a new person.
type PersonInput struct {
	Name        string `json:"name"`
	Surname     string `json:"surname"`
	Email       string `json:"email"`
	PhoneNumber string `json:"phone_number"`
}

// PersonPatch updates the non-nil fields of a person.
type PersonPatch struct {
	Name        *string `json:"name,omitempty"`
	Surname     *string `json:"surname,omitempty"`
	Email       *string `json:"email,omitempty"`
	PhoneNumber *string `json:"phone_number,omitempty"`
}

// ClientInput carries the fields of a new client. RegistrationDate defaults to now.
type ClientInput struct {
	RegistrationDate *time.Time `json:"registration_date,omitempty"`
	PersonID         int64      `json:"person_id"`
}

// ClientPatch updates the non-nil fields of a client.
type ClientPatch struct {
	RegistrationDate *time.Time `json:"registration_date,omitempty"`
	PersonID         *int64     `json:"person_id,omitempty"`
}

// RestaurantEmployeeInput carries the fields of a new employee.
type RestaurantEmployeeInput struct {
	EmployeeIdentificator string      `json:"employee_identificator"`
	Role                  domain.Role `json:"role"`
	PersonID              int64       `json:"person_id"`
}

// RestaurantEmployeePatch updates the non-nil fields of an employee.
type RestaurantEmployeePatch struct {
	EmployeeIdentificator *string      `json:"employee_identificator,omitempty"`
	Role                  *domain.Role `json:"role,omitempty"`
	PersonID              *int64       `json:"person_id,omitempty"`
}

// DeliverInput carries the fields of a new courier company.
type DeliverInput struct {
	CompanyName string `json:"company_name"`
	PersonID    int64  `json:"person_id"`
}

// DeliverPatch updates the non-nil fields of a courier company.
type DeliverPatch struct {
	CompanyName *string `json:"company_name,omitempty"`
	PersonID    *int64  `json:"person_id,omitempty"`
}

// DeliveryInput carries the fields and ingredient ids of a new delivery.
type DeliveryInput struct {
	Status        domain.DeliveryStatus `json:"delivery_status"`
	Date          domain.Date           `json:"delivery_date"`
	DeliverID     int64                 `json:"deliver_id"`
	IngredientIDs []int64               `json:"ingredient_ids"`
}

// DeliveryPatch updates the non-nil fields of a delivery. A non-nil
// IngredientIDs replaces the ingredient set.
type DeliveryPatch struct {
	Status        *domain.DeliveryStatus `json:"delivery_status,omitempty"`
	Date          *domain.Date           `json:"delivery_date,omitempty"`
	DeliverID     *int64                 `json:"deliver_id,omitempty"`
	IngredientIDs []int64                `json:"ingredient_ids,omitempty"`
}

// DishInput carries the fields and ingredient ids of a new dish.
type DishInput struct {
	Name          string   `json:"name"`
	Description   *string  `json:"description,omitempty"`
	Price         float64  `json:"price"`
	Discount      *float64 `json:"discount,omitempty"`
	IngredientIDs []int64  `json:"ingredient_ids"`
}

// DishPatch updates the non-nil fields of a dish. A non-nil IngredientIDs
// replaces the ingredient set.
type DishPatch struct {
	Name          *string  `json:"name,omitempty"`
	Description   *string  `json:"description,omitempty"`
	Price         *float64 `json:"price,omitempty"`
	Discount      *float64 `json:"discount,omitempty"`
	IngredientIDs []int64  `json:"ingredient_ids,omitempty"`
}

// IngredientInput carries the fields of a new ingredient.
type IngredientInput struct {
	Name   string        `json:"name"`
	Amount int           `json:"amount"`
	Metric domain.Metric `json:"metric"`
}

// IngredientPatch updates the non-nil fields of an ingredient.
type IngredientPatch struct {
	Name   *string        `json:"name,omitempty"`
	Amount *int           `json:"amount,omitempty"`
	Metric *domain.Metric `json:"metric,omitempty"`
}

// OrderInput carries the fields, dish ids and employee ids of a new order.
type OrderInput struct {
	Status           domain.OrderStatus `json:"status"`
	Number           string             `json:"number"`
	Hour             *string            `json:"hour,omitempty"`
	Payment          domain.PaymentType `json:"payment"`
	TakeawayOrOnsite domain.OrderType   `json:"takeaway_or_onsite"`
	Note             *string            `json:"note,omitempty"`
	Delay            bool               `json:"delay"`
	ClientID         int64              `json:"client_id"`
	AddressHistoryID int64              `json:"address_history_id"`
	DishIDs          []int64            `json:"dish_ids"`
	EmployeeIDs      []int64            `json:"restaurant_employee_ids"`
}

// OrderPatch updates the non-nil fields of an order. Non-nil DishIDs and
// EmployeeIDs replace the corresponding sets.
type OrderPatch struct {
	Status           *domain.OrderStatus `json:"status,omitempty"`
	Number           *string             `json:"number,omitempty"`
	Hour             *string             `json:"hour,omitempty"`
	Payment          *domain.PaymentType `json:"payment,omitempty"`
	TakeawayOrOnsite *domain.OrderType   `json:"takeaway_or_onsite,omitempty"`
	Note             *string             `json:"note,omitempty"`
	Delay            *bool               `json:"delay,omitempty"`
	ClientID         *int64              `json:"client_id,omitempty"`
	AddressHistoryID *int64              `json:"address_history_id,omitempty"`
	DishIDs          []int64             `json:"dish_ids,omitempty"`
	EmployeeIDs      []int64             `json:"restaurant_employee_ids,omitempty"`
}

// ReservationInput carries the fields and table ids of a new reservation.
type ReservationInput struct {
	Date           domain.Date              `json:"reservation_date"`
	Hour           string                   `json:"reservation_hour"`
	NumberOfPeople int                      `json:"number_of_people"`
	Status         domain.ReservationStatus `json:"status"`
	ClientID       int64                    `json:"client_id"`
	TableIDs       []int64                  `json:"table_ids"`
}

// ReservationPatch updates the non-nil fields of a reservation. A non-nil
// TableIDs replaces the set of tables pointing at the reservation.
type ReservationPatch struct {
	Date           *domain.Date              `json:"reservation_date,omitempty"`
	Hour           *string                   `json:"reservation_hour,omitempty"`
	NumberOfPeople *int                      `json:"number_of_people,omitempty"`
	Status         *domain.ReservationStatus `json:"status,omitempty"`
	ClientID       *int64                    `json:"client_id,omitempty"`
	TableIDs       []int64                   `json:"table_ids,omitempty"`
}

// TableInput carries the fields of a new table.
type TableInput struct {
	Number        string `json:"number"`
	NumberOfSeats int    `json:"number_of_seats"`
	ReservationID *int64 `json:"reservation_id,omitempty"`
}

// TablePatch updates the non-nil fields of a table.
type TablePatch struct {
	Number        *string `json:"number,omitempty"`
	NumberOfSeats *int    `json:"number_of_seats,omitempty"`
	ReservationID *int64  `json:"reservation_id,omitempty"`
}

// AddressHistoryInput carries the fields of a new address record.
type AddressHistoryInput struct {
	Street         string  `json:"street"`
	City           string  `json:"city"`
	PostCode       string  `json:"post_code"`
	BuildingNumber string  `json:"building_number"`
	Floor          *int    `json:"floor,omitempty"`
	Staircase      *string `json:"staircase,omitempty"`
	ClientID       int64   `json:"client_id"`
	OrderID        *int64  `json:"order_id,omitempty"`
}

// AddressHistoryPatch updates the non-nil fields of an address record.
type AddressHistoryPatch struct {
	Street         *string `json:"street,omitempty"`
	City           *string `json:"city,omitempty"`
	PostCode       *string `json:"post_code,omitempty"`
	BuildingNumber *string `json:"building_number,omitempty"`
	Floor          *int    `json:"floor,omitempty"`
	Staircase      *string `json:"staircase,omitempty"`
	ClientID       *int64  `json:"client_id,omitempty"`
	OrderID        *int64  `json:"order_id,omitempty"`
}

// EmploymentContractInput carries the fields of a new contract. StartDate
// defaults to today.
type EmploymentContractInput struct {
	StartDate  *domain.Date    `json:"start_date,omitempty"`
	EndDate    *domain.Date    `json:"end_date,omitempty"`
	Salary     float64         `json:"salary"`
	Position   domain.Position `json:"position"`
	EmployeeID int64           `json:"employee_id"`
}

// EmploymentContractPatch updates the non-nil fields of a contract.
type EmploymentContractPatch struct {
	StartDate  *domain.Date     `json:"start_date,omitempty"`
	EndDate    *domain.Date     `json:"end_date,omitempty"`
	Salary     *float64         `json:"salary,omitempty"`
	Position   *domain.Position `json:"position,omitempty"`
	EmployeeID *int64           `json:"employee_id,omitempty"`
}

type enum interface {
	~string
	Valid() bool
}

func checkEnum[T enum](entity domain.EntityType, field string, v T) error {
	if v.Valid() {
		return nil
	}
	return domain.ValidationError{Entity: entity, Field: field, Reason: fmt.Sprintf("invalid value %q", string(v))}
}

func checkOptionalEnum[T enum](entity domain.EntityType, field string, v *T) error {
	if v == nil {
		return nil
	}
	return checkEnum(entity, field, *v)
}

func checkDate(entity domain.EntityType, field string, d domain.Date) error {
	if d.IsZero() {
		return domain.ValidationError{Entity: entity, Field: field, Reason: "is required"}
	}
	return nil
}

func checkNonNegative(entity domain.EntityType, field string, n float64) error {
	if n < 0 {
		return domain.ValidationError{Entity: entity, Field: field, Reason: "must not be negative"}
	}
	return nil
}

func firstError(errs ...error) error {
	for _, err := range errs {
		if err != nil {
			return err
		}
	}
	return nil
}

func set[T any](dst *T, v *T) {
	if v != nil {
		*dst = *v
	}
}

func setOptional[T any](dst **T, v *T) {
	if v != nil {
		copied := *v
		*dst = &copied
	}
}

func setIDs(dst *[]int64, ids []int64) {
	if ids != nil {
		*dst = append([]int64{}, ids...)
	}
}

func (in PersonInput) record() domain.Person {
	return domain.Person{Name: in.Name, Surname: in.Surname, Email: in.Email, PhoneNumber: in.PhoneNumber}
}

func (p PersonPatch) apply(v *domain.Person) {
	set(&v.Name, p.Name)
	set(&v.Surname, p.Surname)
	set(&v.Email, p.Email)
	set(&v.PhoneNumber, p.PhoneNumber)
}

func (in ClientInput) record() domain.Client {
	c := domain.Client{PersonID: in.PersonID}
	if in.RegistrationDate != nil {
		c.RegistrationDate = in.RegistrationDate.UTC()
	}
	return c
}

func (p ClientPatch) apply(v *domain.Client) {
	if p.RegistrationDate != nil {
		v.RegistrationDate = p.RegistrationDate.UTC()
	}
	set(&v.PersonID, p.PersonID)
}

func (in RestaurantEmployeeInput) validate() error {
	return checkEnum(domain.EntityRestaurantEmployee, "role", in.Role)
}

func (in RestaurantEmployeeInput) record() domain.RestaurantEmployee {
	return domain.RestaurantEmployee{EmployeeIdentificator: in.EmployeeIdentificator, Role: in.Role, PersonID: in.PersonID}
}

func (p RestaurantEmployeePatch) validate() error {
	return checkOptionalEnum(domain.EntityRestaurantEmployee, "role", p.Role)
}

func (p RestaurantEmployeePatch) apply(v *domain.RestaurantEmployee) {
	set(&v.EmployeeIdentificator, p.EmployeeIdentificator)
	set(&v.Role, p.Role)
	set(&v.PersonID, p.PersonID)
}

func (in DeliverInput) record() domain.Deliver {
	return domain.Deliver{CompanyName: in.CompanyName, PersonID: in.PersonID}
}

func (p DeliverPatch) apply(v *domain.Deliver) {
	set(&v.CompanyName, p.CompanyName)
	set(&v.PersonID, p.PersonID)
}

func (in DeliveryInput) validate() error {
	return firstError(
		checkEnum(domain.EntityDelivery, "delivery_status", in.Status),
		checkDate(domain.EntityDelivery, "delivery_date", in.Date),
	)
}

func (in DeliveryInput) record() domain.Delivery {
	return domain.Delivery{Status: in.Status, Date: in.Date, DeliverID: in.DeliverID, IngredientIDs: append([]int64{}, in.IngredientIDs...)}
}

func (p DeliveryPatch) validate() error {
	return checkOptionalEnum(domain.EntityDelivery, "delivery_status", p.Status)
}

func (p DeliveryPatch) apply(v *domain.Delivery) {
	set(&v.Status, p.Status)
	set(&v.Date, p.Date)
	set(&v.DeliverID, p.DeliverID)
	setIDs(&v.IngredientIDs, p.IngredientIDs)
}

func (in DishInput) validate() error {
	var discount float64
	if in.Discount != nil {
		discount = *in.Discount
	}
	return firstError(
		checkNonNegative(domain.EntityDish, "price", in.Price),
		checkNonNegative(domain.EntityDish, "discount", discount),
	)
}

func (in DishInput) record() domain.Dish {
	d := domain.Dish{Name: in.Name, Price: in.Price, IngredientIDs: append([]int64{}, in.IngredientIDs...)}
	setOptional(&d.Description, in.Description)
	setOptional(&d.Discount, in.Discount)
	return d
}

func (p DishPatch) validate() error {
	var price, discount float64
	if p.Price != nil {
		price = *p.Price
	}
	if p.Discount != nil {
		discount = *p.Discount
	}
	return firstError(
		checkNonNegative(domain.EntityDish, "price", price),
		checkNonNegative(domain.EntityDish, "discount", discount),
	)
}

func (p DishPatch) apply(v *domain.Dish) {
	set(&v.Name, p.Name)
	setOptional(&v.Description, p.Description)
	set(&v.Price, p.Price)
	setOptional(&v.Discount, p.Discount)
	setIDs(&v.IngredientIDs, p.IngredientIDs)
}

func (in IngredientInput) validate() error {
	return firstError(
		checkEnum(domain.EntityIngredient, "metric", in.Metric),
		checkNonNegative(domain.EntityIngredient, "amount", float64(in.Amount)),
	)
}

func (in IngredientInput) record() domain.Ingredient {
	return domain.Ingredient{Name: in.Name, Amount: in.Amount, Metric: in.Metric}
}

func (p IngredientPatch) validate() error {
	var amount int
	if p.Amount != nil {
		amount = *p.Amount
	}
	return firstError(
		checkOptionalEnum(domain.EntityIngredient, "metric", p.Metric),
		checkNonNegative(domain.EntityIngredient, "amount", float64(amount)),
	)
}

func (p IngredientPatch) apply(v *domain.Ingredient) {
	set(&v.Name, p.Name)
	set(&v.Amount, p.Amount)
	set(&v.Metric, p.Metric)
}

func (in OrderInput) validate() error {
	return firstError(
		checkEnum(domain.EntityOrder, "status", in.Status),
		checkEnum(domain.EntityOrder, "payment", in.Payment),
		checkEnum(domain.EntityOrder, "takeaway_or_onsite", in.TakeawayOrOnsite),
	)
}

func (in OrderInput) record() domain.Order {
	o := domain.Order{
		Status:           in.Status,
		Number:           in.Number,
		Payment:          in.Payment,
		TakeawayOrOnsite: in.TakeawayOrOnsite,
		Delay:            in.Delay,
		ClientID:         in.ClientID,
		AddressHistoryID: in.AddressHistoryID,
		DishIDs:          append([]int64{}, in.DishIDs...),
		EmployeeIDs:      append([]int64{}, in.EmployeeIDs...),
	}
	setOptional(&o.Hour, in.Hour)
	setOptional(&o.Note, in.Note)
	return o
}

func (p OrderPatch) validate() error {
	return firstError(
		checkOptionalEnum(domain.EntityOrder, "status", p.Status),
		checkOptionalEnum(domain.EntityOrder, "payment", p.Payment),
		checkOptionalEnum(domain.EntityOrder, "takeaway_or_onsite", p.TakeawayOrOnsite),
	)
}

func (p OrderPatch) apply(v *domain.Order) {
	set(&v.Status, p.Status)
	set(&v.Number, p.Number)
	setOptional(&v.Hour, p.Hour)
	set(&v.Payment, p.Payment)
	set(&v.TakeawayOrOnsite, p.TakeawayOrOnsite)
	setOptional(&v.Note, p.Note)
	set(&v.Delay, p.Delay)
	set(&v.ClientID, p.ClientID)
	set(&v.AddressHistoryID, p.AddressHistoryID)
	setIDs(&v.DishIDs, p.DishIDs)
	setIDs(&v.EmployeeIDs, p.EmployeeIDs)
}

func (in ReservationInput) validate() error {
	return firstError(
		checkEnum(domain.EntityReservation, "status", in.Status),
		checkDate(domain.EntityReservation, "reservation_date", in.Date),
		checkNonNegative(domain.EntityReservation, "number_of_people", float64(in.NumberOfPeople)),
	)
}

func (in ReservationInput) record() domain.Reservation {
	return domain.Reservation{
		Date:           in.Date,
		Hour:           in.Hour,
		NumberOfPeople: in.NumberOfPeople,
		Status:         in.Status,
		ClientID:       in.ClientID,
		TableIDs:       append([]int64{}, in.TableIDs...),
	}
}

func (p ReservationPatch) validate() error {
	return checkOptionalEnum(domain.EntityReservation, "status", p.Status)
}

func (p ReservationPatch) apply(v *domain.Reservation) {
	set(&v.Date, p.Date)
	set(&v.Hour, p.Hour)
	set(&v.NumberOfPeople, p.NumberOfPeople)
	set(&v.Status, p.Status)
	set(&v.ClientID, p.ClientID)
	setIDs(&v.TableIDs, p.TableIDs)
}

func (in TableInput) validate() error {
	return checkNonNegative(domain.EntityTable, "number_of_seats", float64(in.NumberOfSeats))
}

func (in TableInput) record() domain.Table {
	t := domain.Table{Number: in.Number, NumberOfSeats: in.NumberOfSeats}
	setOptional(&t.ReservationID, in.ReservationID)
	return t
}

func (p TablePatch) apply(v *domain.Table) {
	set(&v.Number, p.Number)
	set(&v.NumberOfSeats, p.NumberOfSeats)
	setOptional(&v.ReservationID, p.ReservationID)
}

func (in AddressHistoryInput) record() domain.AddressHistory {
	a := domain.AddressHistory{
		Street:         in.Street,
		City:           in.City,
		PostCode:       in.PostCode,
		BuildingNumber: in.BuildingNumber,
		ClientID:       in.ClientID,
	}
	setOptional(&a.Floor, in.Floor)
	setOptional(&a.Staircase, in.Staircase)
	setOptional(&a.OrderID, in.OrderID)
	return a
}

func (p AddressHistoryPatch) apply(v *domain.AddressHistory) {
	set(&v.Street, p.Street)
	set(&v.City, p.City)
	set(&v.PostCode, p.PostCode)
	set(&v.BuildingNumber, p.BuildingNumber)
	setOptional(&v.Floor, p.Floor)
	setOptional(&v.Staircase, p.Staircase)
	set(&v.ClientID, p.ClientID)
	setOptional(&v.OrderID, p.OrderID)
}

func (in EmploymentContractInput) validate() error {
	return firstError(
		checkEnum(domain.EntityEmploymentContract, "position", in.Position),
		checkNonNegative(domain.EntityEmploymentContract, "salary", in.Salary),
	)
}

func (in EmploymentContractInput) record() domain.EmploymentContract {
	c := domain.EmploymentContract{Salary: in.Salary, Position: in.Position, EmployeeID: in.EmployeeID}
	if in.StartDate != nil {
		c.StartDate = *in.StartDate
	}
	setOptional(&c.EndDate, in.EndDate)
	return c
}

func (p EmploymentContractPatch) validate() error {
	var salary float64
	if p.Salary != nil {
		salary = *p.Salary
	}
	return firstError(
		checkOptionalEnum(domain.EntityEmploymentContract, "position", p.Position),
		checkNonNegative(domain.EntityEmploymentContract, "salary", salary),
	)
}

func (p EmploymentContractPatch) apply(v *domain.EmploymentContract) {
	set(&v.StartDate, p.StartDate)
	setOptional(&v.EndDate, p.EndDate)
	set(&v.Salary, p.Salary)
	set(&v.Position, p.Position)
	set(&v.EmployeeID, p.EmployeeID)
}
