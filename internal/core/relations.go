package core

import (
	"context"

	"restaurantcore/pkg/domain"
)

// PersonWithRelations is a person with its role record, if any.
type PersonWithRelations struct {
	domain.Person
	Client             *domain.Client             `json:"client"`
	RestaurantEmployee *domain.RestaurantEmployee `json:"restaurant_employee"`
	Deliver            *domain.Deliver            `json:"deliver"`
}

// ClientWithRelations is a client with its person and owned records.
type ClientWithRelations struct {
	domain.Client
	Person         *domain.Person          `json:"person"`
	AddressHistory []domain.AddressHistory `json:"address_history"`
	Orders         []domain.Order          `json:"orders"`
	Reservations   []domain.Reservation    `json:"reservations"`
}

// RestaurantEmployeeWithRelations is an employee with its person, contracts
// and assigned orders.
type RestaurantEmployeeWithRelations struct {
	domain.RestaurantEmployee
	Person    *domain.Person              `json:"person"`
	Contracts []domain.EmploymentContract `json:"employment_contracts"`
	Orders    []domain.Order              `json:"orders"`
}

type DeliverWithRelations struct {
	domain.Deliver
	Person     *domain.Person    `json:"person"`
	Deliveries []domain.Delivery `json:"deliveries"`
}

type DeliveryWithRelations struct {
	domain.Delivery
	Deliver     *domain.Deliver     `json:"deliver"`
	Ingredients []domain.Ingredient `json:"ingredients"`
}

type DishWithRelations struct {
	domain.Dish
	Ingredients []domain.Ingredient `json:"ingredients"`
	Orders      []domain.Order      `json:"orders"`
}

type IngredientWithRelations struct {
	domain.Ingredient
	Dishes     []domain.Dish     `json:"dishes"`
	Deliveries []domain.Delivery `json:"deliveries"`
}

type OrderWithRelations struct {
	domain.Order
	Client              *domain.Client              `json:"client"`
	AddressHistory      *domain.AddressHistory      `json:"address_history"`
	RestaurantEmployees []domain.RestaurantEmployee `json:"restaurant_employee"`
	Dishes              []domain.Dish               `json:"dishes"`
}

type ReservationWithRelations struct {
	domain.Reservation
	Client *domain.Client `json:"client"`
	Tables []domain.Table `json:"tables"`
}

type TableWithRelations struct {
	domain.Table
	Reservation *domain.Reservation `json:"reservation"`
}

type AddressHistoryWithRelations struct {
	domain.AddressHistory
	Client *domain.Client `json:"client"`
	Order  *domain.Order  `json:"order"`
}

type EmploymentContractWithRelations struct {
	domain.EmploymentContract
	RestaurantEmployee *domain.RestaurantEmployee `json:"restaurant_employee"`
}

func ref[T any](find func(int64) (T, bool), id int64) *T {
	v, ok := find(id)
	if !ok {
		return nil
	}
	return &v
}

func lookup[T any](ids []int64, find func(int64) (T, bool)) []T {
	out := make([]T, 0, len(ids))
	for _, id := range ids {
		if v, ok := find(id); ok {
			out = append(out, v)
		}
	}
	return out
}

func filter[T any](all []T, keep func(T) bool) []T {
	out := make([]T, 0)
	for _, v := range all {
		if keep(v) {
			out = append(out, v)
		}
	}
	return out
}

func withRelations[T, R any](ctx context.Context, s *Service, op string, entity domain.EntityType, id int64, find func(domain.TransactionView, int64) (T, bool), expand func(domain.TransactionView, T) R) (R, error) {
	var out R
	err := s.view(ctx, op, func(v domain.TransactionView) error {
		record, ok := find(v, id)
		if !ok {
			return domain.NotFoundError{Entity: entity, ID: id}
		}
		out = expand(v, record)
		return nil
	})
	return out, err
}

// GetPersonWithRelations returns person id with its role record.
func (s *Service) GetPersonWithRelations(ctx context.Context, id int64) (PersonWithRelations, error) {
	return withRelations(ctx, s, "person.get_with_relations", domain.EntityPerson, id, domain.TransactionView.FindPerson,
		func(v domain.TransactionView, p domain.Person) PersonWithRelations {
			out := PersonWithRelations{Person: p}
			for _, c := range v.ListClients() {
				if c.PersonID == p.ID {
					client := c
					out.Client = &client
				}
			}
			for _, e := range v.ListRestaurantEmployees() {
				if e.PersonID == p.ID {
					employee := e
					out.RestaurantEmployee = &employee
				}
			}
			for _, d := range v.ListDelivers() {
				if d.PersonID == p.ID {
					deliver := d
					out.Deliver = &deliver
				}
			}
			return out
		})
}

// GetClientWithRelations returns client id with its person, addresses,
// orders and reservations.
func (s *Service) GetClientWithRelations(ctx context.Context, id int64) (ClientWithRelations, error) {
	return withRelations(ctx, s, "client.get_with_relations", domain.EntityClient, id, domain.TransactionView.FindClient,
		func(v domain.TransactionView, c domain.Client) ClientWithRelations {
			return ClientWithRelations{
				Client:         c,
				Person:         ref(v.FindPerson, c.PersonID),
				AddressHistory: filter(v.ListAddressHistories(), func(a domain.AddressHistory) bool { return a.ClientID == c.ID }),
				Orders:         filter(v.ListOrders(), func(o domain.Order) bool { return o.ClientID == c.ID }),
				Reservations:   filter(v.ListReservations(), func(r domain.Reservation) bool { return r.ClientID == c.ID }),
			}
		})
}

// GetRestaurantEmployeeWithRelations returns employee id with its person,
// contracts and assigned orders.
func (s *Service) GetRestaurantEmployeeWithRelations(ctx context.Context, id int64) (RestaurantEmployeeWithRelations, error) {
	return withRelations(ctx, s, "restaurant_employee.get_with_relations", domain.EntityRestaurantEmployee, id, domain.TransactionView.FindRestaurantEmployee,
		func(v domain.TransactionView, e domain.RestaurantEmployee) RestaurantEmployeeWithRelations {
			return RestaurantEmployeeWithRelations{
				RestaurantEmployee: e,
				Person:             ref(v.FindPerson, e.PersonID),
				Contracts:          filter(v.ListEmploymentContracts(), func(c domain.EmploymentContract) bool { return c.EmployeeID == e.ID }),
				Orders:             lookup(v.Linked(domain.RelOrderEmployee, e.ID, true), v.FindOrder),
			}
		})
}

func (s *Service) GetDeliverWithRelations(ctx context.Context, id int64) (DeliverWithRelations, error) {
	return withRelations(ctx, s, "deliver.get_with_relations", domain.EntityDeliver, id, domain.TransactionView.FindDeliver,
		func(v domain.TransactionView, d domain.Deliver) DeliverWithRelations {
			return DeliverWithRelations{
				Deliver:    d,
				Person:     ref(v.FindPerson, d.PersonID),
				Deliveries: filter(v.ListDeliveries(), func(x domain.Delivery) bool { return x.DeliverID == d.ID }),
			}
		})
}

func (s *Service) GetDeliveryWithRelations(ctx context.Context, id int64) (DeliveryWithRelations, error) {
	return withRelations(ctx, s, "delivery.get_with_relations", domain.EntityDelivery, id, domain.TransactionView.FindDelivery,
		func(v domain.TransactionView, d domain.Delivery) DeliveryWithRelations {
			return DeliveryWithRelations{
				Delivery:    d,
				Deliver:     ref(v.FindDeliver, d.DeliverID),
				Ingredients: lookup(d.IngredientIDs, v.FindIngredient),
			}
		})
}

func (s *Service) GetDishWithRelations(ctx context.Context, id int64) (DishWithRelations, error) {
	return withRelations(ctx, s, "dish.get_with_relations", domain.EntityDish, id, domain.TransactionView.FindDish,
		func(v domain.TransactionView, d domain.Dish) DishWithRelations {
			return DishWithRelations{
				Dish:        d,
				Ingredients: lookup(d.IngredientIDs, v.FindIngredient),
				Orders:      lookup(v.Linked(domain.RelOrderDish, d.ID, true), v.FindOrder),
			}
		})
}

func (s *Service) GetIngredientWithRelations(ctx context.Context, id int64) (IngredientWithRelations, error) {
	return withRelations(ctx, s, "ingredient.get_with_relations", domain.EntityIngredient, id, domain.TransactionView.FindIngredient,
		func(v domain.TransactionView, i domain.Ingredient) IngredientWithRelations {
			return IngredientWithRelations{
				Ingredient: i,
				Dishes:     lookup(v.Linked(domain.RelDishIngredient, i.ID, true), v.FindDish),
				Deliveries: lookup(v.Linked(domain.RelDeliveryIngredient, i.ID, true), v.FindDelivery),
			}
		})
}

func (s *Service) GetOrderWithRelations(ctx context.Context, id int64) (OrderWithRelations, error) {
	return withRelations(ctx, s, "order.get_with_relations", domain.EntityOrder, id, domain.TransactionView.FindOrder,
		func(v domain.TransactionView, o domain.Order) OrderWithRelations {
			return OrderWithRelations{
				Order:               o,
				Client:              ref(v.FindClient, o.ClientID),
				AddressHistory:      ref(v.FindAddressHistory, o.AddressHistoryID),
				RestaurantEmployees: lookup(o.EmployeeIDs, v.FindRestaurantEmployee),
				Dishes:              lookup(o.DishIDs, v.FindDish),
			}
		})
}

func (s *Service) GetReservationWithRelations(ctx context.Context, id int64) (ReservationWithRelations, error) {
	return withRelations(ctx, s, "reservation.get_with_relations", domain.EntityReservation, id, domain.TransactionView.FindReservation,
		func(v domain.TransactionView, r domain.Reservation) ReservationWithRelations {
			return ReservationWithRelations{
				Reservation: r,
				Client:      ref(v.FindClient, r.ClientID),
				Tables:      lookup(r.TableIDs, v.FindTable),
			}
		})
}

func (s *Service) GetTableWithRelations(ctx context.Context, id int64) (TableWithRelations, error) {
	return withRelations(ctx, s, "table.get_with_relations", domain.EntityTable, id, domain.TransactionView.FindTable,
		func(v domain.TransactionView, t domain.Table) TableWithRelations {
			out := TableWithRelations{Table: t}
			if t.ReservationID != nil {
				out.Reservation = ref(v.FindReservation, *t.ReservationID)
			}
			return out
		})
}

func (s *Service) GetAddressHistoryWithRelations(ctx context.Context, id int64) (AddressHistoryWithRelations, error) {
	return withRelations(ctx, s, "address_history.get_with_relations", domain.EntityAddressHistory, id, domain.TransactionView.FindAddressHistory,
		func(v domain.TransactionView, a domain.AddressHistory) AddressHistoryWithRelations {
			out := AddressHistoryWithRelations{AddressHistory: a, Client: ref(v.FindClient, a.ClientID)}
			if a.OrderID != nil {
				out.Order = ref(v.FindOrder, *a.OrderID)
			}
			return out
		})
}

func (s *Service) GetEmploymentContractWithRelations(ctx context.Context, id int64) (EmploymentContractWithRelations, error) {
	return withRelations(ctx, s, "employment_contract.get_with_relations", domain.EntityEmploymentContract, id, domain.TransactionView.FindEmploymentContract,
		func(v domain.TransactionView, c domain.EmploymentContract) EmploymentContractWithRelations {
			return EmploymentContractWithRelations{
				EmploymentContract: c,
				RestaurantEmployee: ref(v.FindRestaurantEmployee, c.EmployeeID),
			}
		})
}
