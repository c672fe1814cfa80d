package memory

import (
	"restaurantcore/pkg/domain"
)

func (tx *transaction) newBase(entity domain.EntityType) domain.Base {
	return domain.Base{ID: tx.nextID(entity), CreatedAt: tx.now, UpdatedAt: tx.now}
}

func (tx *transaction) updatedBase(prev domain.Base) domain.Base {
	return domain.Base{ID: prev.ID, CreatedAt: prev.CreatedAt, UpdatedAt: tx.now}
}

func (tx *transaction) recordCreate(entity domain.EntityType, id int64, after any) {
	tx.recordChange(domain.Change{Entity: entity, Action: domain.ActionCreate, ID: id, After: after})
}

func (tx *transaction) recordUpdate(entity domain.EntityType, id int64, before, after any) {
	tx.recordChange(domain.Change{Entity: entity, Action: domain.ActionUpdate, ID: id, Before: before, After: after})
}

// Person ---------------------------------------------------------------------

func (tx *transaction) checkPerson(self int64, p domain.Person) error {
	if taken(tx.state.persons, self, p.Email, func(v domain.Person) string { return v.Email }, sameEmail) {
		return domain.ConflictError{Entity: domain.EntityPerson, Field: "email", Value: p.Email}
	}
	return nil
}

// CreatePerson stores a new person.
func (tx *transaction) CreatePerson(p domain.Person) (domain.Person, error) {
	if err := tx.checkPerson(0, p); err != nil {
		return domain.Person{}, err
	}
	p.Base = tx.newBase(domain.EntityPerson)
	tx.state.persons[p.ID] = p
	tx.recordCreate(domain.EntityPerson, p.ID, p)
	return p, nil
}

// UpdatePerson mutates a person using the provided mutator function.
func (tx *transaction) UpdatePerson(id int64, mutator func(*domain.Person) error) (domain.Person, error) {
	current, ok := tx.FindPerson(id)
	if !ok {
		return domain.Person{}, domain.NotFoundError{Entity: domain.EntityPerson, ID: id}
	}
	before := current
	if err := mutator(&current); err != nil {
		return domain.Person{}, err
	}
	current.Base = tx.updatedBase(before.Base)
	if err := tx.checkPerson(id, current); err != nil {
		return domain.Person{}, err
	}
	tx.state.persons[id] = current
	tx.recordUpdate(domain.EntityPerson, id, before, current)
	return current, nil
}

// DeletePerson removes a person and cascades to its role records.
func (tx *transaction) DeletePerson(id int64) error {
	return tx.deleteEntity(domain.EntityPerson, id)
}

// Client ---------------------------------------------------------------------

// CreateClient stores a new client for an existing person.
func (tx *transaction) CreateClient(c domain.Client) (domain.Client, error) {
	if err := tx.requireRef(domain.EntityClient, "person_id", domain.EntityPerson, c.PersonID); err != nil {
		return domain.Client{}, err
	}
	c.Base = tx.newBase(domain.EntityClient)
	if c.RegistrationDate.IsZero() {
		c.RegistrationDate = tx.now
	}
	tx.state.clients[c.ID] = c
	tx.recordCreate(domain.EntityClient, c.ID, c)
	return c, nil
}

// UpdateClient mutates a client using the provided mutator function.
func (tx *transaction) UpdateClient(id int64, mutator func(*domain.Client) error) (domain.Client, error) {
	current, ok := tx.FindClient(id)
	if !ok {
		return domain.Client{}, domain.NotFoundError{Entity: domain.EntityClient, ID: id}
	}
	before := current
	if err := mutator(&current); err != nil {
		return domain.Client{}, err
	}
	current.Base = tx.updatedBase(before.Base)
	if err := tx.requireRef(domain.EntityClient, "person_id", domain.EntityPerson, current.PersonID); err != nil {
		return domain.Client{}, err
	}
	tx.state.clients[id] = current
	tx.recordUpdate(domain.EntityClient, id, before, current)
	return current, nil
}

// DeleteClient removes a client with its addresses, orders, and reservations.
func (tx *transaction) DeleteClient(id int64) error {
	return tx.deleteEntity(domain.EntityClient, id)
}

// RestaurantEmployee ---------------------------------------------------------

func (tx *transaction) checkRestaurantEmployee(self int64, e domain.RestaurantEmployee) error {
	if err := tx.requireRef(domain.EntityRestaurantEmployee, "person_id", domain.EntityPerson, e.PersonID); err != nil {
		return err
	}
	if taken(tx.state.employees, self, e.EmployeeIdentificator, func(v domain.RestaurantEmployee) string { return v.EmployeeIdentificator }, exact) {
		return domain.ConflictError{Entity: domain.EntityRestaurantEmployee, Field: "employee_identificator", Value: e.EmployeeIdentificator}
	}
	return nil
}

// CreateRestaurantEmployee stores a new employee for an existing person.
func (tx *transaction) CreateRestaurantEmployee(e domain.RestaurantEmployee) (domain.RestaurantEmployee, error) {
	if err := tx.checkRestaurantEmployee(0, e); err != nil {
		return domain.RestaurantEmployee{}, err
	}
	e.Base = tx.newBase(domain.EntityRestaurantEmployee)
	tx.state.employees[e.ID] = e
	tx.recordCreate(domain.EntityRestaurantEmployee, e.ID, e)
	return e, nil
}

// UpdateRestaurantEmployee mutates an employee using the provided mutator function.
func (tx *transaction) UpdateRestaurantEmployee(id int64, mutator func(*domain.RestaurantEmployee) error) (domain.RestaurantEmployee, error) {
	current, ok := tx.FindRestaurantEmployee(id)
	if !ok {
		return domain.RestaurantEmployee{}, domain.NotFoundError{Entity: domain.EntityRestaurantEmployee, ID: id}
	}
	before := current
	if err := mutator(&current); err != nil {
		return domain.RestaurantEmployee{}, err
	}
	current.Base = tx.updatedBase(before.Base)
	if err := tx.checkRestaurantEmployee(id, current); err != nil {
		return domain.RestaurantEmployee{}, err
	}
	tx.state.employees[id] = current
	tx.recordUpdate(domain.EntityRestaurantEmployee, id, before, current)
	return current, nil
}

// DeleteRestaurantEmployee removes an employee, its contracts, and its order assignments.
func (tx *transaction) DeleteRestaurantEmployee(id int64) error {
	return tx.deleteEntity(domain.EntityRestaurantEmployee, id)
}

// Deliver --------------------------------------------------------------------

func (tx *transaction) checkDeliver(self int64, d domain.Deliver) error {
	if err := tx.requireRef(domain.EntityDeliver, "person_id", domain.EntityPerson, d.PersonID); err != nil {
		return err
	}
	if taken(tx.state.delivers, self, d.CompanyName, func(v domain.Deliver) string { return v.CompanyName }, exact) {
		return domain.ConflictError{Entity: domain.EntityDeliver, Field: "company_name", Value: d.CompanyName}
	}
	return nil
}

// CreateDeliver stores a new courier for an existing person.
func (tx *transaction) CreateDeliver(d domain.Deliver) (domain.Deliver, error) {
	if err := tx.checkDeliver(0, d); err != nil {
		return domain.Deliver{}, err
	}
	d.Base = tx.newBase(domain.EntityDeliver)
	tx.state.delivers[d.ID] = d
	tx.recordCreate(domain.EntityDeliver, d.ID, d)
	return d, nil
}

// UpdateDeliver mutates a courier using the provided mutator function.
func (tx *transaction) UpdateDeliver(id int64, mutator func(*domain.Deliver) error) (domain.Deliver, error) {
	current, ok := tx.FindDeliver(id)
	if !ok {
		return domain.Deliver{}, domain.NotFoundError{Entity: domain.EntityDeliver, ID: id}
	}
	before := current
	if err := mutator(&current); err != nil {
		return domain.Deliver{}, err
	}
	current.Base = tx.updatedBase(before.Base)
	if err := tx.checkDeliver(id, current); err != nil {
		return domain.Deliver{}, err
	}
	tx.state.delivers[id] = current
	tx.recordUpdate(domain.EntityDeliver, id, before, current)
	return current, nil
}

// DeleteDeliver removes a courier and detaches its deliveries.
func (tx *transaction) DeleteDeliver(id int64) error {
	return tx.deleteEntity(domain.EntityDeliver, id)
}

// Delivery -------------------------------------------------------------------

func (tx *transaction) checkDelivery(d domain.Delivery) error {
	if err := tx.requireRef(domain.EntityDelivery, "deliver_id", domain.EntityDeliver, d.DeliverID); err != nil {
		return err
	}
	return tx.requireRefs(domain.EntityDelivery, "ingredient_ids", domain.EntityIngredient, d.IngredientIDs)
}

func (tx *transaction) storeDelivery(d domain.Delivery) domain.Delivery {
	tx.replaceLinks(domain.RelDeliveryIngredient, d.ID, d.IngredientIDs)
	stored := cloneDelivery(d)
	stored.IngredientIDs = nil
	tx.state.deliveries[d.ID] = stored
	return tx.state.decorateDelivery(stored)
}

// CreateDelivery stores a new delivery with its ingredient set.
func (tx *transaction) CreateDelivery(d domain.Delivery) (domain.Delivery, error) {
	d.IngredientIDs = normalizeIDs(d.IngredientIDs)
	if err := tx.checkDelivery(d); err != nil {
		return domain.Delivery{}, err
	}
	d.Base = tx.newBase(domain.EntityDelivery)
	created := tx.storeDelivery(d)
	tx.recordCreate(domain.EntityDelivery, created.ID, created)
	return created, nil
}

// UpdateDelivery mutates a delivery; the ingredient set on the mutated record replaces the stored one.
func (tx *transaction) UpdateDelivery(id int64, mutator func(*domain.Delivery) error) (domain.Delivery, error) {
	current, ok := tx.FindDelivery(id)
	if !ok {
		return domain.Delivery{}, domain.NotFoundError{Entity: domain.EntityDelivery, ID: id}
	}
	before := cloneDelivery(current)
	if err := mutator(&current); err != nil {
		return domain.Delivery{}, err
	}
	current.Base = tx.updatedBase(before.Base)
	current.IngredientIDs = normalizeIDs(current.IngredientIDs)
	if err := tx.checkDelivery(current); err != nil {
		return domain.Delivery{}, err
	}
	updated := tx.storeDelivery(current)
	tx.recordUpdate(domain.EntityDelivery, id, before, updated)
	return updated, nil
}

// DeleteDelivery removes a delivery and its ingredient join records.
func (tx *transaction) DeleteDelivery(id int64) error {
	return tx.deleteEntity(domain.EntityDelivery, id)
}

// Dish -----------------------------------------------------------------------

func (tx *transaction) storeDish(d domain.Dish) domain.Dish {
	tx.replaceLinks(domain.RelDishIngredient, d.ID, d.IngredientIDs)
	stored := cloneDish(d)
	stored.IngredientIDs = nil
	tx.state.dishes[d.ID] = stored
	return tx.state.decorateDish(stored)
}

// CreateDish stores a new dish with its ingredient set.
func (tx *transaction) CreateDish(d domain.Dish) (domain.Dish, error) {
	d.IngredientIDs = normalizeIDs(d.IngredientIDs)
	if err := tx.requireRefs(domain.EntityDish, "ingredient_ids", domain.EntityIngredient, d.IngredientIDs); err != nil {
		return domain.Dish{}, err
	}
	d.Base = tx.newBase(domain.EntityDish)
	created := tx.storeDish(d)
	tx.recordCreate(domain.EntityDish, created.ID, created)
	return created, nil
}

// UpdateDish mutates a dish; the ingredient set on the mutated record replaces the stored one.
func (tx *transaction) UpdateDish(id int64, mutator func(*domain.Dish) error) (domain.Dish, error) {
	current, ok := tx.FindDish(id)
	if !ok {
		return domain.Dish{}, domain.NotFoundError{Entity: domain.EntityDish, ID: id}
	}
	before := cloneDish(current)
	if err := mutator(&current); err != nil {
		return domain.Dish{}, err
	}
	current.Base = tx.updatedBase(before.Base)
	current.IngredientIDs = normalizeIDs(current.IngredientIDs)
	if err := tx.requireRefs(domain.EntityDish, "ingredient_ids", domain.EntityIngredient, current.IngredientIDs); err != nil {
		return domain.Dish{}, err
	}
	updated := tx.storeDish(current)
	tx.recordUpdate(domain.EntityDish, id, before, updated)
	return updated, nil
}

// DeleteDish removes a dish and its join records; ingredients are kept.
func (tx *transaction) DeleteDish(id int64) error {
	return tx.deleteEntity(domain.EntityDish, id)
}

// Ingredient -----------------------------------------------------------------

// CreateIngredient stores a new ingredient.
func (tx *transaction) CreateIngredient(i domain.Ingredient) (domain.Ingredient, error) {
	i.Base = tx.newBase(domain.EntityIngredient)
	tx.state.ingredients[i.ID] = i
	tx.recordCreate(domain.EntityIngredient, i.ID, i)
	return i, nil
}

// UpdateIngredient mutates an ingredient using the provided mutator function.
func (tx *transaction) UpdateIngredient(id int64, mutator func(*domain.Ingredient) error) (domain.Ingredient, error) {
	current, ok := tx.FindIngredient(id)
	if !ok {
		return domain.Ingredient{}, domain.NotFoundError{Entity: domain.EntityIngredient, ID: id}
	}
	before := current
	if err := mutator(&current); err != nil {
		return domain.Ingredient{}, err
	}
	current.Base = tx.updatedBase(before.Base)
	tx.state.ingredients[id] = current
	tx.recordUpdate(domain.EntityIngredient, id, before, current)
	return current, nil
}

// DeleteIngredient removes an ingredient and its dish and delivery join records.
func (tx *transaction) DeleteIngredient(id int64) error {
	return tx.deleteEntity(domain.EntityIngredient, id)
}

// Order ----------------------------------------------------------------------

func (tx *transaction) checkOrder(self int64, o domain.Order) error {
	if err := tx.requireRef(domain.EntityOrder, "client_id", domain.EntityClient, o.ClientID); err != nil {
		return err
	}
	if err := tx.requireRef(domain.EntityOrder, "address_history_id", domain.EntityAddressHistory, o.AddressHistoryID); err != nil {
		return err
	}
	if err := tx.requireRefs(domain.EntityOrder, "dish_ids", domain.EntityDish, o.DishIDs); err != nil {
		return err
	}
	if err := tx.requireRefs(domain.EntityOrder, "restaurant_employee_ids", domain.EntityRestaurantEmployee, o.EmployeeIDs); err != nil {
		return err
	}
	if taken(tx.state.orders, self, o.Number, func(v domain.Order) string { return v.Number }, exact) {
		return domain.ConflictError{Entity: domain.EntityOrder, Field: "number", Value: o.Number}
	}
	return nil
}

func (tx *transaction) storeOrder(o domain.Order) domain.Order {
	tx.replaceLinks(domain.RelOrderDish, o.ID, o.DishIDs)
	tx.replaceLinks(domain.RelOrderEmployee, o.ID, o.EmployeeIDs)
	stored := cloneOrder(o)
	stored.DishIDs, stored.EmployeeIDs = nil, nil
	tx.state.orders[o.ID] = stored
	return tx.state.decorateOrder(stored)
}

// CreateOrder stores a new order with its dish and employee sets.
func (tx *transaction) CreateOrder(o domain.Order) (domain.Order, error) {
	o.DishIDs = normalizeIDs(o.DishIDs)
	o.EmployeeIDs = normalizeIDs(o.EmployeeIDs)
	if err := tx.checkOrder(0, o); err != nil {
		return domain.Order{}, err
	}
	o.Base = tx.newBase(domain.EntityOrder)
	created := tx.storeOrder(o)
	tx.recordCreate(domain.EntityOrder, created.ID, created)
	return created, nil
}

// UpdateOrder mutates an order; the dish and employee sets on the mutated record replace the stored ones.
func (tx *transaction) UpdateOrder(id int64, mutator func(*domain.Order) error) (domain.Order, error) {
	current, ok := tx.FindOrder(id)
	if !ok {
		return domain.Order{}, domain.NotFoundError{Entity: domain.EntityOrder, ID: id}
	}
	before := cloneOrder(current)
	if err := mutator(&current); err != nil {
		return domain.Order{}, err
	}
	current.Base = tx.updatedBase(before.Base)
	current.DishIDs = normalizeIDs(current.DishIDs)
	current.EmployeeIDs = normalizeIDs(current.EmployeeIDs)
	if err := tx.checkOrder(id, current); err != nil {
		return domain.Order{}, err
	}
	updated := tx.storeOrder(current)
	tx.recordUpdate(domain.EntityOrder, id, before, updated)
	return updated, nil
}

// DeleteOrder removes an order, its join records, and detaches linked addresses.
func (tx *transaction) DeleteOrder(id int64) error {
	return tx.deleteEntity(domain.EntityOrder, id)
}

// Reservation ----------------------------------------------------------------

func (tx *transaction) checkReservation(r domain.Reservation) error {
	if err := tx.requireRef(domain.EntityReservation, "client_id", domain.EntityClient, r.ClientID); err != nil {
		return err
	}
	return tx.requireRefs(domain.EntityReservation, "table_ids", domain.EntityTable, r.TableIDs)
}

func (tx *transaction) storeReservation(r domain.Reservation) domain.Reservation {
	stored := cloneReservation(r)
	stored.TableIDs = nil
	tx.state.reservations[r.ID] = stored
	tx.attachTables(r.ID, r.TableIDs)
	return tx.state.decorateReservation(stored)
}

// CreateReservation stores a new reservation and attaches the listed tables to it.
func (tx *transaction) CreateReservation(r domain.Reservation) (domain.Reservation, error) {
	r.TableIDs = normalizeIDs(r.TableIDs)
	if err := tx.checkReservation(r); err != nil {
		return domain.Reservation{}, err
	}
	r.Base = tx.newBase(domain.EntityReservation)
	created := tx.storeReservation(r)
	tx.recordCreate(domain.EntityReservation, created.ID, created)
	return created, nil
}

// UpdateReservation mutates a reservation; the table set on the mutated record replaces the attached tables.
func (tx *transaction) UpdateReservation(id int64, mutator func(*domain.Reservation) error) (domain.Reservation, error) {
	current, ok := tx.FindReservation(id)
	if !ok {
		return domain.Reservation{}, domain.NotFoundError{Entity: domain.EntityReservation, ID: id}
	}
	before := cloneReservation(current)
	if err := mutator(&current); err != nil {
		return domain.Reservation{}, err
	}
	current.Base = tx.updatedBase(before.Base)
	current.TableIDs = normalizeIDs(current.TableIDs)
	if err := tx.checkReservation(current); err != nil {
		return domain.Reservation{}, err
	}
	updated := tx.storeReservation(current)
	tx.recordUpdate(domain.EntityReservation, id, before, updated)
	return updated, nil
}

// DeleteReservation removes a reservation and detaches its tables.
func (tx *transaction) DeleteReservation(id int64) error {
	return tx.deleteEntity(domain.EntityReservation, id)
}

// Table ----------------------------------------------------------------------

func (tx *transaction) checkTable(self int64, t domain.Table) error {
	if err := tx.requireRef(domain.EntityTable, "reservation_id", domain.EntityReservation, deref(t.ReservationID)); err != nil {
		return err
	}
	if taken(tx.state.tables, self, t.Number, func(v domain.Table) string { return v.Number }, exact) {
		return domain.ConflictError{Entity: domain.EntityTable, Field: "number", Value: t.Number}
	}
	return nil
}

// CreateTable stores a new table.
func (tx *transaction) CreateTable(t domain.Table) (domain.Table, error) {
	if err := tx.checkTable(0, t); err != nil {
		return domain.Table{}, err
	}
	t.Base = tx.newBase(domain.EntityTable)
	t = cloneTable(t)
	tx.state.tables[t.ID] = t
	tx.recordCreate(domain.EntityTable, t.ID, cloneTable(t))
	return cloneTable(t), nil
}

// UpdateTable mutates a table; moving it away from a reservation re-validates that reservation.
func (tx *transaction) UpdateTable(id int64, mutator func(*domain.Table) error) (domain.Table, error) {
	current, ok := tx.FindTable(id)
	if !ok {
		return domain.Table{}, domain.NotFoundError{Entity: domain.EntityTable, ID: id}
	}
	before := cloneTable(current)
	if err := mutator(&current); err != nil {
		return domain.Table{}, err
	}
	current.Base = tx.updatedBase(before.Base)
	if err := tx.checkTable(id, current); err != nil {
		return domain.Table{}, err
	}
	current = cloneTable(current)
	tx.state.tables[id] = current
	tx.recordUpdate(domain.EntityTable, id, before, cloneTable(current))
	if prev := deref(before.ReservationID); prev != 0 && prev != deref(current.ReservationID) {
		tx.touch(domain.EntityReservation, prev)
	}
	return cloneTable(current), nil
}

// DeleteTable removes a table; its reservation is re-validated.
func (tx *transaction) DeleteTable(id int64) error {
	table, ok := tx.state.tables[id]
	if err := tx.deleteEntity(domain.EntityTable, id); err != nil {
		return err
	}
	if ok && table.ReservationID != nil {
		tx.touch(domain.EntityReservation, *table.ReservationID)
	}
	return nil
}

// AddressHistory -------------------------------------------------------------

func (tx *transaction) checkAddressHistory(a domain.AddressHistory) error {
	if err := tx.requireRef(domain.EntityAddressHistory, "client_id", domain.EntityClient, a.ClientID); err != nil {
		return err
	}
	return tx.requireRef(domain.EntityAddressHistory, "order_id", domain.EntityOrder, deref(a.OrderID))
}

// CreateAddressHistory stores a new address for a client.
func (tx *transaction) CreateAddressHistory(a domain.AddressHistory) (domain.AddressHistory, error) {
	if err := tx.checkAddressHistory(a); err != nil {
		return domain.AddressHistory{}, err
	}
	a.Base = tx.newBase(domain.EntityAddressHistory)
	a = cloneAddressHistory(a)
	tx.state.addresses[a.ID] = a
	tx.recordCreate(domain.EntityAddressHistory, a.ID, cloneAddressHistory(a))
	return cloneAddressHistory(a), nil
}

// UpdateAddressHistory mutates an address using the provided mutator function.
func (tx *transaction) UpdateAddressHistory(id int64, mutator func(*domain.AddressHistory) error) (domain.AddressHistory, error) {
	current, ok := tx.FindAddressHistory(id)
	if !ok {
		return domain.AddressHistory{}, domain.NotFoundError{Entity: domain.EntityAddressHistory, ID: id}
	}
	before := cloneAddressHistory(current)
	if err := mutator(&current); err != nil {
		return domain.AddressHistory{}, err
	}
	current.Base = tx.updatedBase(before.Base)
	if err := tx.checkAddressHistory(current); err != nil {
		return domain.AddressHistory{}, err
	}
	current = cloneAddressHistory(current)
	tx.state.addresses[id] = current
	tx.recordUpdate(domain.EntityAddressHistory, id, before, cloneAddressHistory(current))
	return cloneAddressHistory(current), nil
}

// DeleteAddressHistory removes an address and clears order references to it.
func (tx *transaction) DeleteAddressHistory(id int64) error {
	return tx.deleteEntity(domain.EntityAddressHistory, id)
}

// EmploymentContract ---------------------------------------------------------

// CreateEmploymentContract stores a new contract for an employee.
func (tx *transaction) CreateEmploymentContract(c domain.EmploymentContract) (domain.EmploymentContract, error) {
	if err := tx.requireRef(domain.EntityEmploymentContract, "employee_id", domain.EntityRestaurantEmployee, c.EmployeeID); err != nil {
		return domain.EmploymentContract{}, err
	}
	c.Base = tx.newBase(domain.EntityEmploymentContract)
	if c.StartDate.IsZero() {
		c.StartDate = domain.NewDate(tx.now)
	}
	c = cloneEmploymentContract(c)
	tx.state.contracts[c.ID] = c
	tx.recordCreate(domain.EntityEmploymentContract, c.ID, cloneEmploymentContract(c))
	return cloneEmploymentContract(c), nil
}

// UpdateEmploymentContract mutates a contract using the provided mutator function.
func (tx *transaction) UpdateEmploymentContract(id int64, mutator func(*domain.EmploymentContract) error) (domain.EmploymentContract, error) {
	current, ok := tx.FindEmploymentContract(id)
	if !ok {
		return domain.EmploymentContract{}, domain.NotFoundError{Entity: domain.EntityEmploymentContract, ID: id}
	}
	before := cloneEmploymentContract(current)
	if err := mutator(&current); err != nil {
		return domain.EmploymentContract{}, err
	}
	current.Base = tx.updatedBase(before.Base)
	if err := tx.requireRef(domain.EntityEmploymentContract, "employee_id", domain.EntityRestaurantEmployee, current.EmployeeID); err != nil {
		return domain.EmploymentContract{}, err
	}
	current = cloneEmploymentContract(current)
	tx.state.contracts[id] = current
	tx.recordUpdate(domain.EntityEmploymentContract, id, before, cloneEmploymentContract(current))
	return cloneEmploymentContract(current), nil
}

// DeleteEmploymentContract removes a contract.
func (tx *transaction) DeleteEmploymentContract(id int64) error {
	return tx.deleteEntity(domain.EntityEmploymentContract, id)
}
