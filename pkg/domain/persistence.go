package domain

import "context"

// TransactionView provides read-only access to snapshot data.
type TransactionView interface {
	RuleView
}

// Transaction exposes the domain operations that a persistence implementation
// must support within an atomic scope. Create and Update persist the relation
// id sets carried on the record (join records and owned foreign keys) together
// with its scalar fields; rules run once, at commit, against the final state.
type Transaction interface {
	TransactionView
	Snapshot() TransactionView
	// Changes returns the mutations recorded so far, cascades included.
	Changes() []Change

	CreatePerson(Person) (Person, error)
	UpdatePerson(id int64, mutator func(*Person) error) (Person, error)
	DeletePerson(id int64) error

	CreateClient(Client) (Client, error)
	UpdateClient(id int64, mutator func(*Client) error) (Client, error)
	DeleteClient(id int64) error

	CreateRestaurantEmployee(RestaurantEmployee) (RestaurantEmployee, error)
	UpdateRestaurantEmployee(id int64, mutator func(*RestaurantEmployee) error) (RestaurantEmployee, error)
	DeleteRestaurantEmployee(id int64) error

	CreateDeliver(Deliver) (Deliver, error)
	UpdateDeliver(id int64, mutator func(*Deliver) error) (Deliver, error)
	DeleteDeliver(id int64) error

	CreateDelivery(Delivery) (Delivery, error)
	UpdateDelivery(id int64, mutator func(*Delivery) error) (Delivery, error)
	DeleteDelivery(id int64) error

	CreateDish(Dish) (Dish, error)
	UpdateDish(id int64, mutator func(*Dish) error) (Dish, error)
	DeleteDish(id int64) error

	CreateIngredient(Ingredient) (Ingredient, error)
	UpdateIngredient(id int64, mutator func(*Ingredient) error) (Ingredient, error)
	DeleteIngredient(id int64) error

	CreateOrder(Order) (Order, error)
	UpdateOrder(id int64, mutator func(*Order) error) (Order, error)
	DeleteOrder(id int64) error

	CreateReservation(Reservation) (Reservation, error)
	UpdateReservation(id int64, mutator func(*Reservation) error) (Reservation, error)
	DeleteReservation(id int64) error

	CreateTable(Table) (Table, error)
	UpdateTable(id int64, mutator func(*Table) error) (Table, error)
	DeleteTable(id int64) error

	CreateAddressHistory(AddressHistory) (AddressHistory, error)
	UpdateAddressHistory(id int64, mutator func(*AddressHistory) error) (AddressHistory, error)
	DeleteAddressHistory(id int64) error

	CreateEmploymentContract(EmploymentContract) (EmploymentContract, error)
	UpdateEmploymentContract(id int64, mutator func(*EmploymentContract) error) (EmploymentContract, error)
	DeleteEmploymentContract(id int64) error

	// Link adds a join record; adding an existing pair is a no-op.
	Link(rel RelationName, parentID, childID int64) error
	// Unlink removes a join record; removing a missing pair is a no-op.
	Unlink(rel RelationName, parentID, childID int64) error
}

// PersistentStore is a minimal abstraction over durable backends.
type PersistentStore interface {
	RunInTransaction(ctx context.Context, fn func(Transaction) error) (Result, error)
	View(ctx context.Context, fn func(TransactionView) error) error
}
