package domain

import "context"

// RuleView provides read-only access to domain entities for rule evaluation.
// Relation id sets on returned records are decorated from join records and
// foreign keys and are sorted ascending.
type RuleView interface {
	FindPerson(id int64) (Person, bool)
	FindClient(id int64) (Client, bool)
	FindRestaurantEmployee(id int64) (RestaurantEmployee, bool)
	FindDeliver(id int64) (Deliver, bool)
	FindDelivery(id int64) (Delivery, bool)
	FindDish(id int64) (Dish, bool)
	FindIngredient(id int64) (Ingredient, bool)
	FindOrder(id int64) (Order, bool)
	FindReservation(id int64) (Reservation, bool)
	FindTable(id int64) (Table, bool)
	FindAddressHistory(id int64) (AddressHistory, bool)
	FindEmploymentContract(id int64) (EmploymentContract, bool)
	ListPersons() []Person
	ListClients() []Client
	ListRestaurantEmployees() []RestaurantEmployee
	ListDelivers() []Deliver
	ListDeliveries() []Delivery
	ListDishes() []Dish
	ListIngredients() []Ingredient
	ListOrders() []Order
	ListReservations() []Reservation
	ListTables() []Table
	ListAddressHistories() []AddressHistory
	ListEmploymentContracts() []EmploymentContract
	// Linked returns the ids on the opposite side of a many-to-many relation:
	// child ids when id is a parent id, parent ids when fromChild is true.
	Linked(rel RelationName, id int64, fromChild bool) []int64
}

// Rule defines an evaluation executed within a transaction boundary.
type Rule interface {
	Name() string
	Evaluate(ctx context.Context, view RuleView, changes []Change) (Result, error)
}

// RulesEngine orchestrates rule evaluation.
type RulesEngine struct {
	rules []Rule
}

// NewRulesEngine constructs an engine instance.
func NewRulesEngine() *RulesEngine {
	return &RulesEngine{}
}

// Register appends a rule to the engine.
func (e *RulesEngine) Register(rule Rule) {
	e.rules = append(e.rules, rule)
}

// Rules returns the registered rules in evaluation order.
func (e *RulesEngine) Rules() []Rule {
	return append([]Rule(nil), e.rules...)
}

// Evaluate executes all registered rules and aggregates their results.
func (e *RulesEngine) Evaluate(ctx context.Context, view RuleView, changes []Change) (Result, error) {
	var combined Result
	for _, rule := range e.rules {
		res, err := rule.Evaluate(ctx, view, changes)
		if err != nil {
			return Result{}, err
		}
		combined.Merge(res)
	}
	return combined, nil
}
