package core

import (
	"context"
	"fmt"
	"testing"
	"time"

	"restaurantcore/pkg/domain"
)

var fixedNow = time.Date(2024, 5, 17, 12, 30, 0, 0, time.UTC)

func newTestService(t *testing.T, opts ...Option) *Service {
	t.Helper()
	opts = append([]Option{WithClock(func() time.Time { return fixedNow })}, opts...)
	return NewInMemoryService(nil, opts...)
}

// must unwraps a fixture call, panicking on error.
func must[T any](v T, err error) T {
	if err != nil {
		panic(fmt.Sprintf("fixture setup: %v", err))
	}
	return v
}

func date(t *testing.T, raw string) domain.Date {
	t.Helper()
	d, err := domain.ParseDate(raw)
	if err != nil {
		t.Fatalf("parse date: %v", err)
	}
	return d
}

// restaurant holds the ids of a small, fully valid data set.
type restaurant struct {
	clientPerson, waiterPerson, cookPerson, courierPerson, sparePerson int64
	client                                                              int64
	waiter, cook                                                        int64
	deliver                                                             int64
	flour, water, salt                                                  int64
	bread                                                               int64
	delivery                                                            int64
	address                                                             int64
	order                                                               int64
	table, spareTable                                                   int64
	reservation                                                         int64
	contract                                                            int64
}

func seedRestaurant(t *testing.T, svc *Service) restaurant {
	t.Helper()
	ctx := context.Background()
	var r restaurant
	person := func(name, email string) int64 {
		return must(svc.CreatePerson(ctx, PersonInput{Name: name, Surname: "Test", Email: email, PhoneNumber: "555"})).ID
	}
	r.clientPerson = person("Ada", "ada@example.com")
	r.waiterPerson = person("Bob", "bob@example.com")
	r.cookPerson = person("Cy", "cy@example.com")
	r.courierPerson = person("Di", "di@example.com")
	r.sparePerson = person("Ed", "ed@example.com")

	r.client = must(svc.CreateClient(ctx, ClientInput{PersonID: r.clientPerson})).ID
	r.waiter = must(svc.CreateRestaurantEmployee(ctx, RestaurantEmployeeInput{EmployeeIdentificator: "W-1", Role: domain.RoleWaiter, PersonID: r.waiterPerson})).ID
	r.cook = must(svc.CreateRestaurantEmployee(ctx, RestaurantEmployeeInput{EmployeeIdentificator: "C-1", Role: domain.RoleCook, PersonID: r.cookPerson})).ID
	r.deliver = must(svc.CreateDeliver(ctx, DeliverInput{CompanyName: "FastFood Couriers", PersonID: r.courierPerson})).ID

	ingredient := func(name string) int64 {
		return must(svc.CreateIngredient(ctx, IngredientInput{Name: name, Amount: 100, Metric: domain.MetricGrams})).ID
	}
	r.flour = ingredient("flour")
	r.water = ingredient("water")
	r.salt = ingredient("salt")

	r.bread = must(svc.CreateDish(ctx, DishInput{Name: "Bread", Price: 4.5, IngredientIDs: []int64{r.flour, r.water}})).ID
	r.delivery = must(svc.CreateDelivery(ctx, DeliveryInput{
		Status:        domain.DeliveryPending,
		Date:          date(t, "2024-05-20"),
		DeliverID:     r.deliver,
		IngredientIDs: []int64{r.flour},
	})).ID
	r.address = must(svc.CreateAddressHistory(ctx, AddressHistoryInput{
		Street: "Main", City: "Krakow", PostCode: "30-001", BuildingNumber: "1", ClientID: r.client,
	})).ID
	r.order = must(svc.CreateOrder(ctx, OrderInput{
		Status:           domain.OrderPlaced,
		Number:           "ORD-1",
		Payment:          domain.PaymentCard,
		TakeawayOrOnsite: domain.OrderOnsite,
		ClientID:         r.client,
		AddressHistoryID: r.address,
		DishIDs:          []int64{r.bread},
		EmployeeIDs:      []int64{r.cook, r.waiter},
	})).ID
	r.table = must(svc.CreateTable(ctx, TableInput{Number: "T1", NumberOfSeats: 4})).ID
	r.spareTable = must(svc.CreateTable(ctx, TableInput{Number: "T2", NumberOfSeats: 2})).ID
	r.reservation = must(svc.CreateReservation(ctx, ReservationInput{
		Date:           date(t, "2024-06-01"),
		Hour:           "19:00",
		NumberOfPeople: 3,
		Status:         domain.ReservationPlaced,
		ClientID:       r.client,
		TableIDs:       []int64{r.table},
	})).ID
	r.contract = must(svc.CreateEmploymentContract(ctx, EmploymentContractInput{
		Salary: 4200, Position: domain.PositionWaiter, EmployeeID: r.waiter,
	})).ID
	return r
}
