package memory

import (
	"slices"

	"restaurantcore/pkg/domain"
)

// transactionView exposes a read-only snapshot of the transactional state to rules.
type transactionView struct {
	state *memoryState
}

func newTransactionView(state *memoryState) domain.TransactionView {
	return transactionView{state: state}
}

func findIn[V any](m map[int64]V, id int64, decorate func(V) V) (V, bool) {
	v, ok := m[id]
	if !ok {
		var zero V
		return zero, false
	}
	return decorate(v), true
}

func listSorted[V any](m map[int64]V, decorate func(V) V) []V {
	ids := make([]int64, 0, len(m))
	for id := range m {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	out := make([]V, 0, len(ids))
	for _, id := range ids {
		out = append(out, decorate(m[id]))
	}
	return out
}

func (s *memoryState) decorateDelivery(d domain.Delivery) domain.Delivery {
	d = cloneDelivery(d)
	d.IngredientIDs = s.linked(domain.RelDeliveryIngredient, d.ID, false)
	return d
}

func (s *memoryState) decorateDish(d domain.Dish) domain.Dish {
	d = cloneDish(d)
	d.IngredientIDs = s.linked(domain.RelDishIngredient, d.ID, false)
	return d
}

func (s *memoryState) decorateOrder(o domain.Order) domain.Order {
	o = cloneOrder(o)
	o.DishIDs = s.linked(domain.RelOrderDish, o.ID, false)
	o.EmployeeIDs = s.linked(domain.RelOrderEmployee, o.ID, false)
	return o
}

func (s *memoryState) decorateReservation(r domain.Reservation) domain.Reservation {
	r = cloneReservation(r)
	rel, _ := domain.LookupRelation(domain.RelReservationTable)
	r.TableIDs = s.children(rel, r.ID)
	if r.TableIDs == nil {
		r.TableIDs = []int64{}
	}
	return r
}

// FindPerson returns the person with id.
func (v transactionView) FindPerson(id int64) (domain.Person, bool) {
	return findIn(v.state.persons, id, identity[domain.Person])
}

// FindClient returns the client with id.
func (v transactionView) FindClient(id int64) (domain.Client, bool) {
	return findIn(v.state.clients, id, identity[domain.Client])
}

// FindRestaurantEmployee returns the employee with id.
func (v transactionView) FindRestaurantEmployee(id int64) (domain.RestaurantEmployee, bool) {
	return findIn(v.state.employees, id, identity[domain.RestaurantEmployee])
}

// FindDeliver returns the courier with id.
func (v transactionView) FindDeliver(id int64) (domain.Deliver, bool) {
	return findIn(v.state.delivers, id, identity[domain.Deliver])
}

// FindDelivery returns the delivery with id and its ingredient ids.
func (v transactionView) FindDelivery(id int64) (domain.Delivery, bool) {
	return findIn(v.state.deliveries, id, v.state.decorateDelivery)
}

// FindDish returns the dish with id and its ingredient ids.
func (v transactionView) FindDish(id int64) (domain.Dish, bool) {
	return findIn(v.state.dishes, id, v.state.decorateDish)
}

// FindIngredient returns the ingredient with id.
func (v transactionView) FindIngredient(id int64) (domain.Ingredient, bool) {
	return findIn(v.state.ingredients, id, identity[domain.Ingredient])
}

// FindOrder returns the order with id and its dish and employee ids.
func (v transactionView) FindOrder(id int64) (domain.Order, bool) {
	return findIn(v.state.orders, id, v.state.decorateOrder)
}

// FindReservation returns the reservation with id and its table ids.
func (v transactionView) FindReservation(id int64) (domain.Reservation, bool) {
	return findIn(v.state.reservations, id, v.state.decorateReservation)
}

// FindTable returns the table with id.
func (v transactionView) FindTable(id int64) (domain.Table, bool) {
	return findIn(v.state.tables, id, cloneTable)
}

// FindAddressHistory returns the address with id.
func (v transactionView) FindAddressHistory(id int64) (domain.AddressHistory, bool) {
	return findIn(v.state.addresses, id, cloneAddressHistory)
}

// FindEmploymentContract returns the contract with id.
func (v transactionView) FindEmploymentContract(id int64) (domain.EmploymentContract, bool) {
	return findIn(v.state.contracts, id, cloneEmploymentContract)
}

// ListPersons returns all persons ordered by id.
func (v transactionView) ListPersons() []domain.Person {
	return listSorted(v.state.persons, identity[domain.Person])
}

// ListClients returns all clients ordered by id.
func (v transactionView) ListClients() []domain.Client {
	return listSorted(v.state.clients, identity[domain.Client])
}

// ListRestaurantEmployees returns all employees ordered by id.
func (v transactionView) ListRestaurantEmployees() []domain.RestaurantEmployee {
	return listSorted(v.state.employees, identity[domain.RestaurantEmployee])
}

// ListDelivers returns all couriers ordered by id.
func (v transactionView) ListDelivers() []domain.Deliver {
	return listSorted(v.state.delivers, identity[domain.Deliver])
}

// ListDeliveries returns all deliveries ordered by id.
func (v transactionView) ListDeliveries() []domain.Delivery {
	return listSorted(v.state.deliveries, v.state.decorateDelivery)
}

// ListDishes returns all dishes ordered by id.
func (v transactionView) ListDishes() []domain.Dish {
	return listSorted(v.state.dishes, v.state.decorateDish)
}

// ListIngredients returns all ingredients ordered by id.
func (v transactionView) ListIngredients() []domain.Ingredient {
	return listSorted(v.state.ingredients, identity[domain.Ingredient])
}

// ListOrders returns all orders ordered by id.
func (v transactionView) ListOrders() []domain.Order {
	return listSorted(v.state.orders, v.state.decorateOrder)
}

// ListReservations returns all reservations ordered by id.
func (v transactionView) ListReservations() []domain.Reservation {
	return listSorted(v.state.reservations, v.state.decorateReservation)
}

// ListTables returns all tables ordered by id.
func (v transactionView) ListTables() []domain.Table {
	return listSorted(v.state.tables, cloneTable)
}

// ListAddressHistories returns all addresses ordered by id.
func (v transactionView) ListAddressHistories() []domain.AddressHistory {
	return listSorted(v.state.addresses, cloneAddressHistory)
}

// ListEmploymentContracts returns all contracts ordered by id.
func (v transactionView) ListEmploymentContracts() []domain.EmploymentContract {
	return listSorted(v.state.contracts, cloneEmploymentContract)
}

// Linked returns the ids across a join relation.
func (v transactionView) Linked(rel domain.RelationName, id int64, fromChild bool) []int64 {
	return v.state.linked(rel, id, fromChild)
}

// find returns the decorated record for entity and id as an untyped value.
func (v transactionView) find(entity domain.EntityType, id int64) (any, bool) {
	switch entity {
	case domain.EntityPerson:
		return v.FindPerson(id)
	case domain.EntityClient:
		return v.FindClient(id)
	case domain.EntityRestaurantEmployee:
		return v.FindRestaurantEmployee(id)
	case domain.EntityDeliver:
		return v.FindDeliver(id)
	case domain.EntityDelivery:
		return v.FindDelivery(id)
	case domain.EntityDish:
		return v.FindDish(id)
	case domain.EntityIngredient:
		return v.FindIngredient(id)
	case domain.EntityOrder:
		return v.FindOrder(id)
	case domain.EntityReservation:
		return v.FindReservation(id)
	case domain.EntityTable:
		return v.FindTable(id)
	case domain.EntityAddressHistory:
		return v.FindAddressHistory(id)
	case domain.EntityEmploymentContract:
		return v.FindEmploymentContract(id)
	default:
		return nil, false
	}
}
