package memory

import (
	"slices"

	"restaurantcore/pkg/domain"
)

type linkSet map[domain.Link]struct{}

type memoryState struct {
	persons      map[int64]domain.Person
	clients      map[int64]domain.Client
	employees    map[int64]domain.RestaurantEmployee
	delivers     map[int64]domain.Deliver
	deliveries   map[int64]domain.Delivery
	dishes       map[int64]domain.Dish
	ingredients  map[int64]domain.Ingredient
	orders       map[int64]domain.Order
	reservations map[int64]domain.Reservation
	tables       map[int64]domain.Table
	addresses    map[int64]domain.AddressHistory
	contracts    map[int64]domain.EmploymentContract
	links        map[domain.RelationName]linkSet
	sequences    map[domain.EntityType]int64
}

// Snapshot captures a point-in-time clone of the store state. Relation id sets
// on records are not populated; join records live in Links and owned foreign
// keys on the child records.
type Snapshot struct {
	Persons             map[int64]domain.Person               `json:"persons"`
	Clients             map[int64]domain.Client               `json:"clients"`
	RestaurantEmployees map[int64]domain.RestaurantEmployee   `json:"restaurant_employees"`
	Delivers            map[int64]domain.Deliver              `json:"delivers"`
	Deliveries          map[int64]domain.Delivery             `json:"deliveries"`
	Dishes              map[int64]domain.Dish                 `json:"dishes"`
	Ingredients         map[int64]domain.Ingredient           `json:"ingredients"`
	Orders              map[int64]domain.Order                `json:"orders"`
	Reservations        map[int64]domain.Reservation          `json:"reservations"`
	Tables              map[int64]domain.Table                `json:"tables"`
	AddressHistories    map[int64]domain.AddressHistory       `json:"address_histories"`
	EmploymentContracts map[int64]domain.EmploymentContract   `json:"employment_contracts"`
	Links               map[domain.RelationName][]domain.Link `json:"links"`
	Sequences           map[domain.EntityType]int64           `json:"sequences"`
}

func newMemoryState() memoryState {
	state := memoryState{
		persons:      make(map[int64]domain.Person),
		clients:      make(map[int64]domain.Client),
		employees:    make(map[int64]domain.RestaurantEmployee),
		delivers:     make(map[int64]domain.Deliver),
		deliveries:   make(map[int64]domain.Delivery),
		dishes:       make(map[int64]domain.Dish),
		ingredients:  make(map[int64]domain.Ingredient),
		orders:       make(map[int64]domain.Order),
		reservations: make(map[int64]domain.Reservation),
		tables:       make(map[int64]domain.Table),
		addresses:    make(map[int64]domain.AddressHistory),
		contracts:    make(map[int64]domain.EmploymentContract),
		links:        make(map[domain.RelationName]linkSet),
		sequences:    make(map[domain.EntityType]int64),
	}
	for _, rel := range domain.JoinRelations() {
		state.links[rel.Name] = make(linkSet)
	}
	return state
}

func cloneMap[V any](src map[int64]V, clone func(V) V) map[int64]V {
	out := make(map[int64]V, len(src))
	for k, v := range src {
		out[k] = clone(v)
	}
	return out
}

func (s memoryState) clone() memoryState {
	cloned := memoryState{
		persons:      cloneMap(s.persons, identity[domain.Person]),
		clients:      cloneMap(s.clients, identity[domain.Client]),
		employees:    cloneMap(s.employees, identity[domain.RestaurantEmployee]),
		delivers:     cloneMap(s.delivers, identity[domain.Deliver]),
		deliveries:   cloneMap(s.deliveries, cloneDelivery),
		dishes:       cloneMap(s.dishes, cloneDish),
		ingredients:  cloneMap(s.ingredients, identity[domain.Ingredient]),
		orders:       cloneMap(s.orders, cloneOrder),
		reservations: cloneMap(s.reservations, cloneReservation),
		tables:       cloneMap(s.tables, cloneTable),
		addresses:    cloneMap(s.addresses, cloneAddressHistory),
		contracts:    cloneMap(s.contracts, cloneEmploymentContract),
		links:        make(map[domain.RelationName]linkSet, len(s.links)),
		sequences:    make(map[domain.EntityType]int64, len(s.sequences)),
	}
	for name, set := range s.links {
		copied := make(linkSet, len(set))
		for link := range set {
			copied[link] = struct{}{}
		}
		cloned.links[name] = copied
	}
	for entity, seq := range s.sequences {
		cloned.sequences[entity] = seq
	}
	return cloned
}

func snapshotFromMemoryState(state memoryState) Snapshot {
	s := Snapshot{
		Persons:             cloneMap(state.persons, identity[domain.Person]),
		Clients:             cloneMap(state.clients, identity[domain.Client]),
		RestaurantEmployees: cloneMap(state.employees, identity[domain.RestaurantEmployee]),
		Delivers:            cloneMap(state.delivers, identity[domain.Deliver]),
		Deliveries:          cloneMap(state.deliveries, cloneDelivery),
		Dishes:              cloneMap(state.dishes, cloneDish),
		Ingredients:         cloneMap(state.ingredients, identity[domain.Ingredient]),
		Orders:              cloneMap(state.orders, cloneOrder),
		Reservations:        cloneMap(state.reservations, cloneReservation),
		Tables:              cloneMap(state.tables, cloneTable),
		AddressHistories:    cloneMap(state.addresses, cloneAddressHistory),
		EmploymentContracts: cloneMap(state.contracts, cloneEmploymentContract),
		Links:               make(map[domain.RelationName][]domain.Link, len(state.links)),
		Sequences:           make(map[domain.EntityType]int64, len(state.sequences)),
	}
	for name, set := range state.links {
		links := make([]domain.Link, 0, len(set))
		for link := range set {
			links = append(links, link)
		}
		slices.SortFunc(links, compareLinks)
		s.Links[name] = links
	}
	for entity, seq := range state.sequences {
		s.Sequences[entity] = seq
	}
	return s
}

func memoryStateFromSnapshot(s Snapshot) memoryState {
	state := newMemoryState()
	state.persons = cloneMap(s.Persons, identity[domain.Person])
	state.clients = cloneMap(s.Clients, identity[domain.Client])
	state.employees = cloneMap(s.RestaurantEmployees, identity[domain.RestaurantEmployee])
	state.delivers = cloneMap(s.Delivers, identity[domain.Deliver])
	state.deliveries = cloneMap(s.Deliveries, cloneDelivery)
	state.dishes = cloneMap(s.Dishes, cloneDish)
	state.ingredients = cloneMap(s.Ingredients, identity[domain.Ingredient])
	state.orders = cloneMap(s.Orders, cloneOrder)
	state.reservations = cloneMap(s.Reservations, cloneReservation)
	state.tables = cloneMap(s.Tables, cloneTable)
	state.addresses = cloneMap(s.AddressHistories, cloneAddressHistory)
	state.contracts = cloneMap(s.EmploymentContracts, cloneEmploymentContract)
	for name, links := range s.Links {
		set, ok := state.links[name]
		if !ok {
			continue
		}
		for _, link := range links {
			set[link] = struct{}{}
		}
	}
	for entity, seq := range s.Sequences {
		state.sequences[entity] = seq
	}
	return state
}

// migrateSnapshot normalizes an imported snapshot: record ids follow their map
// keys, derived relation id sets are cleared, join records whose ends are
// missing are dropped, and sequences never fall behind the highest id in use.
func migrateSnapshot(snapshot Snapshot) Snapshot {
	state := memoryStateFromSnapshot(snapshot)

	rekey(state.persons, func(v *domain.Person) *domain.Base { return &v.Base })
	rekey(state.clients, func(v *domain.Client) *domain.Base { return &v.Base })
	rekey(state.employees, func(v *domain.RestaurantEmployee) *domain.Base { return &v.Base })
	rekey(state.delivers, func(v *domain.Deliver) *domain.Base { return &v.Base })
	rekey(state.ingredients, func(v *domain.Ingredient) *domain.Base { return &v.Base })
	rekey(state.contracts, func(v *domain.EmploymentContract) *domain.Base { return &v.Base })
	rekey(state.tables, func(v *domain.Table) *domain.Base { return &v.Base })
	rekey(state.addresses, func(v *domain.AddressHistory) *domain.Base { return &v.Base })
	rekey(state.deliveries, func(v *domain.Delivery) *domain.Base {
		v.IngredientIDs = nil
		return &v.Base
	})
	rekey(state.dishes, func(v *domain.Dish) *domain.Base {
		v.IngredientIDs = nil
		return &v.Base
	})
	rekey(state.orders, func(v *domain.Order) *domain.Base {
		v.DishIDs, v.EmployeeIDs = nil, nil
		return &v.Base
	})
	rekey(state.reservations, func(v *domain.Reservation) *domain.Base {
		v.TableIDs = nil
		return &v.Base
	})

	for _, rel := range domain.JoinRelations() {
		set := state.links[rel.Name]
		for link := range set {
			if !state.exists(rel.Parent, link.LeftID) || !state.exists(rel.Child, link.RightID) {
				delete(set, link)
			}
		}
	}

	for _, entity := range domain.EntityTypes() {
		if top := state.maxID(entity); top > state.sequences[entity] {
			state.sequences[entity] = top
		}
	}
	return snapshotFromMemoryState(state)
}

func rekey[V any](m map[int64]V, base func(*V) *domain.Base) {
	for id, v := range m {
		base(&v).ID = id
		m[id] = v
	}
}

func maxKey[V any](m map[int64]V) int64 {
	var top int64
	for id := range m {
		if id > top {
			top = id
		}
	}
	return top
}

func (s *memoryState) maxID(entity domain.EntityType) int64 {
	switch entity {
	case domain.EntityPerson:
		return maxKey(s.persons)
	case domain.EntityClient:
		return maxKey(s.clients)
	case domain.EntityRestaurantEmployee:
		return maxKey(s.employees)
	case domain.EntityDeliver:
		return maxKey(s.delivers)
	case domain.EntityDelivery:
		return maxKey(s.deliveries)
	case domain.EntityDish:
		return maxKey(s.dishes)
	case domain.EntityIngredient:
		return maxKey(s.ingredients)
	case domain.EntityOrder:
		return maxKey(s.orders)
	case domain.EntityReservation:
		return maxKey(s.reservations)
	case domain.EntityTable:
		return maxKey(s.tables)
	case domain.EntityAddressHistory:
		return maxKey(s.addresses)
	case domain.EntityEmploymentContract:
		return maxKey(s.contracts)
	default:
		return 0
	}
}

func (s *memoryState) exists(entity domain.EntityType, id int64) bool {
	var ok bool
	switch entity {
	case domain.EntityPerson:
		_, ok = s.persons[id]
	case domain.EntityClient:
		_, ok = s.clients[id]
	case domain.EntityRestaurantEmployee:
		_, ok = s.employees[id]
	case domain.EntityDeliver:
		_, ok = s.delivers[id]
	case domain.EntityDelivery:
		_, ok = s.deliveries[id]
	case domain.EntityDish:
		_, ok = s.dishes[id]
	case domain.EntityIngredient:
		_, ok = s.ingredients[id]
	case domain.EntityOrder:
		_, ok = s.orders[id]
	case domain.EntityReservation:
		_, ok = s.reservations[id]
	case domain.EntityTable:
		_, ok = s.tables[id]
	case domain.EntityAddressHistory:
		_, ok = s.addresses[id]
	case domain.EntityEmploymentContract:
		_, ok = s.contracts[id]
	}
	return ok
}

func (s *memoryState) remove(entity domain.EntityType, id int64) {
	switch entity {
	case domain.EntityPerson:
		delete(s.persons, id)
	case domain.EntityClient:
		delete(s.clients, id)
	case domain.EntityRestaurantEmployee:
		delete(s.employees, id)
	case domain.EntityDeliver:
		delete(s.delivers, id)
	case domain.EntityDelivery:
		delete(s.deliveries, id)
	case domain.EntityDish:
		delete(s.dishes, id)
	case domain.EntityIngredient:
		delete(s.ingredients, id)
	case domain.EntityOrder:
		delete(s.orders, id)
	case domain.EntityReservation:
		delete(s.reservations, id)
	case domain.EntityTable:
		delete(s.tables, id)
	case domain.EntityAddressHistory:
		delete(s.addresses, id)
	case domain.EntityEmploymentContract:
		delete(s.contracts, id)
	}
}

// linked returns the ids across a join relation, sorted ascending.
func (s *memoryState) linked(name domain.RelationName, id int64, fromChild bool) []int64 {
	ids := []int64{}
	for link := range s.links[name] {
		switch {
		case fromChild && link.RightID == id:
			ids = append(ids, link.LeftID)
		case !fromChild && link.LeftID == id:
			ids = append(ids, link.RightID)
		}
	}
	slices.Sort(ids)
	return ids
}

// children returns the ids of records whose foreign key for rel points at parentID.
func (s *memoryState) children(rel domain.Relation, parentID int64) []int64 {
	var ids []int64
	match := func(childID, fk int64) {
		if fk == parentID {
			ids = append(ids, childID)
		}
	}
	switch rel.Name {
	case domain.RelPersonClient:
		for id, v := range s.clients {
			match(id, v.PersonID)
		}
	case domain.RelPersonEmployee:
		for id, v := range s.employees {
			match(id, v.PersonID)
		}
	case domain.RelPersonDeliver:
		for id, v := range s.delivers {
			match(id, v.PersonID)
		}
	case domain.RelClientAddress:
		for id, v := range s.addresses {
			match(id, v.ClientID)
		}
	case domain.RelClientOrder:
		for id, v := range s.orders {
			match(id, v.ClientID)
		}
	case domain.RelClientReservation:
		for id, v := range s.reservations {
			match(id, v.ClientID)
		}
	case domain.RelEmployeeContract:
		for id, v := range s.contracts {
			match(id, v.EmployeeID)
		}
	case domain.RelDeliverDelivery:
		for id, v := range s.deliveries {
			match(id, v.DeliverID)
		}
	case domain.RelReservationTable:
		for id, v := range s.tables {
			match(id, deref(v.ReservationID))
		}
	case domain.RelOrderAddress:
		for id, v := range s.addresses {
			match(id, deref(v.OrderID))
		}
	case domain.RelAddressOrder:
		for id, v := range s.orders {
			match(id, v.AddressHistoryID)
		}
	}
	slices.Sort(ids)
	return ids
}

func compareLinks(a, b domain.Link) int {
	if a.LeftID != b.LeftID {
		if a.LeftID < b.LeftID {
			return -1
		}
		return 1
	}
	switch {
	case a.RightID < b.RightID:
		return -1
	case a.RightID > b.RightID:
		return 1
	default:
		return 0
	}
}

func deref(p *int64) int64 {
	if p == nil {
		return 0
	}
	return *p
}

func identity[V any](v V) V { return v }

func clonePtr[T any](p *T) *T {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}

func cloneIDs(ids []int64) []int64 {
	if ids == nil {
		return nil
	}
	return append([]int64(nil), ids...)
}

func cloneDelivery(d domain.Delivery) domain.Delivery {
	d.IngredientIDs = cloneIDs(d.IngredientIDs)
	return d
}

func cloneDish(d domain.Dish) domain.Dish {
	d.Description = clonePtr(d.Description)
	d.Discount = clonePtr(d.Discount)
	d.IngredientIDs = cloneIDs(d.IngredientIDs)
	return d
}

func cloneOrder(o domain.Order) domain.Order {
	o.Hour = clonePtr(o.Hour)
	o.Note = clonePtr(o.Note)
	o.DishIDs = cloneIDs(o.DishIDs)
	o.EmployeeIDs = cloneIDs(o.EmployeeIDs)
	return o
}

func cloneReservation(r domain.Reservation) domain.Reservation {
	r.TableIDs = cloneIDs(r.TableIDs)
	return r
}

func cloneTable(t domain.Table) domain.Table {
	t.ReservationID = clonePtr(t.ReservationID)
	return t
}

func cloneAddressHistory(a domain.AddressHistory) domain.AddressHistory {
	a.Floor = clonePtr(a.Floor)
	a.Staircase = clonePtr(a.Staircase)
	a.OrderID = clonePtr(a.OrderID)
	return a
}

func cloneEmploymentContract(c domain.EmploymentContract) domain.EmploymentContract {
	c.EndDate = clonePtr(c.EndDate)
	return c
}
