package postgres

import (
	"database/sql"
	"fmt"
	"slices"
	"strings"
	"time"

	"restaurantcore/internal/infra/persistence/memory"
	"restaurantcore/pkg/domain"
)

type rowScanner interface {
	Scan(dest ...any) error
}

// tableSpec maps one relational table onto a part of the memory snapshot.
type tableSpec struct {
	name    string
	columns []string
	rows    func(memory.Snapshot) [][]any
	scan    func(*memory.Snapshot, rowScanner) error
}

func (t tableSpec) insertSQL() string {
	placeholders := make([]string, len(t.columns))
	for i := range t.columns {
		placeholders[i] = fmt.Sprintf("$%d", i+1)
	}
	return fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s)", t.name, strings.Join(t.columns, ", "), strings.Join(placeholders, ", "))
}

func (t tableSpec) selectSQL() string {
	return fmt.Sprintf("SELECT %s FROM %s", strings.Join(t.columns, ", "), t.name)
}

var baseColumns = []string{"id", "created_at", "updated_at"}

func withBase(cols ...string) []string {
	return append(slices.Clone(baseColumns), cols...)
}

func baseValues(b domain.Base, values ...any) []any {
	return append([]any{b.ID, b.CreatedAt, b.UpdatedAt}, values...)
}

func sortedRows[V any](m map[int64]V, encode func(V) []any) [][]any {
	ids := make([]int64, 0, len(m))
	for id := range m {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	out := make([][]any, 0, len(ids))
	for _, id := range ids {
		out = append(out, encode(m[id]))
	}
	return out
}

func put[V any](m *map[int64]V, id int64, v V) {
	if *m == nil {
		*m = make(map[int64]V)
	}
	(*m)[id] = v
}

func nullable[T any](v *T) any {
	if v == nil {
		return nil
	}
	return *v
}

func nullableID(id int64) any {
	if id == 0 {
		return nil
	}
	return id
}

func nullableDate(d *domain.Date) any {
	if d == nil {
		return nil
	}
	return d.Time
}

func stringPtr(v sql.NullString) *string {
	if !v.Valid {
		return nil
	}
	s := v.String
	return &s
}

func int64Ptr(v sql.NullInt64) *int64 {
	if !v.Valid {
		return nil
	}
	n := v.Int64
	return &n
}

func intPtr(v sql.NullInt64) *int {
	if !v.Valid {
		return nil
	}
	n := int(v.Int64)
	return &n
}

func float64Ptr(v sql.NullFloat64) *float64 {
	if !v.Valid {
		return nil
	}
	f := v.Float64
	return &f
}

func datePtr(v sql.NullTime) *domain.Date {
	if !v.Valid {
		return nil
	}
	d := domain.NewDate(v.Time)
	return &d
}

var entityTables = []tableSpec{
	{
		name:    "person",
		columns: withBase("name", "surname", "email", "phone_number"),
		rows: func(s memory.Snapshot) [][]any {
			return sortedRows(s.Persons, func(v domain.Person) []any {
				return baseValues(v.Base, v.Name, v.Surname, v.Email, v.PhoneNumber)
			})
		},
		scan: func(s *memory.Snapshot, r rowScanner) error {
			var v domain.Person
			if err := r.Scan(&v.ID, &v.CreatedAt, &v.UpdatedAt, &v.Name, &v.Surname, &v.Email, &v.PhoneNumber); err != nil {
				return err
			}
			put(&s.Persons, v.ID, v)
			return nil
		},
	},
	{
		name:    "client",
		columns: withBase("registration_date", "person_id"),
		rows: func(s memory.Snapshot) [][]any {
			return sortedRows(s.Clients, func(v domain.Client) []any {
				return baseValues(v.Base, v.RegistrationDate, v.PersonID)
			})
		},
		scan: func(s *memory.Snapshot, r rowScanner) error {
			var v domain.Client
			if err := r.Scan(&v.ID, &v.CreatedAt, &v.UpdatedAt, &v.RegistrationDate, &v.PersonID); err != nil {
				return err
			}
			put(&s.Clients, v.ID, v)
			return nil
		},
	},
	{
		name:    "restaurant_employee",
		columns: withBase("employee_identificator", "role", "person_id"),
		rows: func(s memory.Snapshot) [][]any {
			return sortedRows(s.RestaurantEmployees, func(v domain.RestaurantEmployee) []any {
				return baseValues(v.Base, v.EmployeeIdentificator, string(v.Role), v.PersonID)
			})
		},
		scan: func(s *memory.Snapshot, r rowScanner) error {
			var v domain.RestaurantEmployee
			var role string
			if err := r.Scan(&v.ID, &v.CreatedAt, &v.UpdatedAt, &v.EmployeeIdentificator, &role, &v.PersonID); err != nil {
				return err
			}
			v.Role = domain.Role(role)
			put(&s.RestaurantEmployees, v.ID, v)
			return nil
		},
	},
	{
		name:    "deliver",
		columns: withBase("company_name", "person_id"),
		rows: func(s memory.Snapshot) [][]any {
			return sortedRows(s.Delivers, func(v domain.Deliver) []any {
				return baseValues(v.Base, v.CompanyName, v.PersonID)
			})
		},
		scan: func(s *memory.Snapshot, r rowScanner) error {
			var v domain.Deliver
			if err := r.Scan(&v.ID, &v.CreatedAt, &v.UpdatedAt, &v.CompanyName, &v.PersonID); err != nil {
				return err
			}
			put(&s.Delivers, v.ID, v)
			return nil
		},
	},
	{
		name:    "delivery",
		columns: withBase("delivery_status", "delivery_date", "deliver_id"),
		rows: func(s memory.Snapshot) [][]any {
			return sortedRows(s.Deliveries, func(v domain.Delivery) []any {
				return baseValues(v.Base, string(v.Status), v.Date.Time, nullableID(v.DeliverID))
			})
		},
		scan: func(s *memory.Snapshot, r rowScanner) error {
			var v domain.Delivery
			var status string
			var date time.Time
			var deliverID sql.NullInt64
			if err := r.Scan(&v.ID, &v.CreatedAt, &v.UpdatedAt, &status, &date, &deliverID); err != nil {
				return err
			}
			v.Status = domain.DeliveryStatus(status)
			v.Date = domain.NewDate(date)
			v.DeliverID = deliverID.Int64
			put(&s.Deliveries, v.ID, v)
			return nil
		},
	},
	{
		name:    "dish",
		columns: withBase("name", "description", "price", "discount"),
		rows: func(s memory.Snapshot) [][]any {
			return sortedRows(s.Dishes, func(v domain.Dish) []any {
				return baseValues(v.Base, v.Name, nullable(v.Description), v.Price, nullable(v.Discount))
			})
		},
		scan: func(s *memory.Snapshot, r rowScanner) error {
			var v domain.Dish
			var description sql.NullString
			var discount sql.NullFloat64
			if err := r.Scan(&v.ID, &v.CreatedAt, &v.UpdatedAt, &v.Name, &description, &v.Price, &discount); err != nil {
				return err
			}
			v.Description = stringPtr(description)
			v.Discount = float64Ptr(discount)
			put(&s.Dishes, v.ID, v)
			return nil
		},
	},
	{
		name:    "ingredient",
		columns: withBase("name", "amount", "metric"),
		rows: func(s memory.Snapshot) [][]any {
			return sortedRows(s.Ingredients, func(v domain.Ingredient) []any {
				return baseValues(v.Base, v.Name, int64(v.Amount), string(v.Metric))
			})
		},
		scan: func(s *memory.Snapshot, r rowScanner) error {
			var v domain.Ingredient
			var metric string
			if err := r.Scan(&v.ID, &v.CreatedAt, &v.UpdatedAt, &v.Name, &v.Amount, &metric); err != nil {
				return err
			}
			v.Metric = domain.Metric(metric)
			put(&s.Ingredients, v.ID, v)
			return nil
		},
	},
	{
		name:    "address_history",
		columns: withBase("street", "city", "post_code", "building_number", "floor", "staircase", "client_id", "order_id"),
		rows: func(s memory.Snapshot) [][]any {
			return sortedRows(s.AddressHistories, func(v domain.AddressHistory) []any {
				var floor any
				if v.Floor != nil {
					floor = int64(*v.Floor)
				}
				return baseValues(v.Base, v.Street, v.City, v.PostCode, v.BuildingNumber, floor, nullable(v.Staircase), v.ClientID, nullable(v.OrderID))
			})
		},
		scan: func(s *memory.Snapshot, r rowScanner) error {
			var v domain.AddressHistory
			var floor, orderID sql.NullInt64
			var staircase sql.NullString
			if err := r.Scan(&v.ID, &v.CreatedAt, &v.UpdatedAt, &v.Street, &v.City, &v.PostCode, &v.BuildingNumber, &floor, &staircase, &v.ClientID, &orderID); err != nil {
				return err
			}
			v.Floor = intPtr(floor)
			v.Staircase = stringPtr(staircase)
			v.OrderID = int64Ptr(orderID)
			put(&s.AddressHistories, v.ID, v)
			return nil
		},
	},
	{
		name:    `"order"`,
		columns: withBase("status", "number", "hour", "payment", "takeaway_or_onsite", "note", "delay", "client_id", "address_history_id"),
		rows: func(s memory.Snapshot) [][]any {
			return sortedRows(s.Orders, func(v domain.Order) []any {
				return baseValues(v.Base, string(v.Status), v.Number, nullable(v.Hour), string(v.Payment), string(v.TakeawayOrOnsite), nullable(v.Note), v.Delay, v.ClientID, nullableID(v.AddressHistoryID))
			})
		},
		scan: func(s *memory.Snapshot, r rowScanner) error {
			var v domain.Order
			var status, payment, kind string
			var hour, note sql.NullString
			var addressID sql.NullInt64
			if err := r.Scan(&v.ID, &v.CreatedAt, &v.UpdatedAt, &status, &v.Number, &hour, &payment, &kind, &note, &v.Delay, &v.ClientID, &addressID); err != nil {
				return err
			}
			v.Status = domain.OrderStatus(status)
			v.Payment = domain.PaymentType(payment)
			v.TakeawayOrOnsite = domain.OrderType(kind)
			v.Hour = stringPtr(hour)
			v.Note = stringPtr(note)
			v.AddressHistoryID = addressID.Int64
			put(&s.Orders, v.ID, v)
			return nil
		},
	},
	{
		name:    "reservation",
		columns: withBase("reservation_date", "reservation_hour", "number_of_people", "status", "client_id"),
		rows: func(s memory.Snapshot) [][]any {
			return sortedRows(s.Reservations, func(v domain.Reservation) []any {
				return baseValues(v.Base, v.Date.Time, v.Hour, int64(v.NumberOfPeople), string(v.Status), v.ClientID)
			})
		},
		scan: func(s *memory.Snapshot, r rowScanner) error {
			var v domain.Reservation
			var date time.Time
			var status string
			if err := r.Scan(&v.ID, &v.CreatedAt, &v.UpdatedAt, &date, &v.Hour, &v.NumberOfPeople, &status, &v.ClientID); err != nil {
				return err
			}
			v.Date = domain.NewDate(date)
			v.Status = domain.ReservationStatus(status)
			put(&s.Reservations, v.ID, v)
			return nil
		},
	},
	{
		name:    `"table"`,
		columns: withBase("number", "number_of_seats", "reservation_id"),
		rows: func(s memory.Snapshot) [][]any {
			return sortedRows(s.Tables, func(v domain.Table) []any {
				return baseValues(v.Base, v.Number, int64(v.NumberOfSeats), nullable(v.ReservationID))
			})
		},
		scan: func(s *memory.Snapshot, r rowScanner) error {
			var v domain.Table
			var reservationID sql.NullInt64
			if err := r.Scan(&v.ID, &v.CreatedAt, &v.UpdatedAt, &v.Number, &v.NumberOfSeats, &reservationID); err != nil {
				return err
			}
			v.ReservationID = int64Ptr(reservationID)
			put(&s.Tables, v.ID, v)
			return nil
		},
	},
	{
		name:    "employment_contract",
		columns: withBase("start_date", "end_date", "salary", "position", "employee_id"),
		rows: func(s memory.Snapshot) [][]any {
			return sortedRows(s.EmploymentContracts, func(v domain.EmploymentContract) []any {
				return baseValues(v.Base, v.StartDate.Time, nullableDate(v.EndDate), v.Salary, string(v.Position), v.EmployeeID)
			})
		},
		scan: func(s *memory.Snapshot, r rowScanner) error {
			var v domain.EmploymentContract
			var start time.Time
			var end sql.NullTime
			var position string
			if err := r.Scan(&v.ID, &v.CreatedAt, &v.UpdatedAt, &start, &end, &v.Salary, &position, &v.EmployeeID); err != nil {
				return err
			}
			v.StartDate = domain.NewDate(start)
			v.EndDate = datePtr(end)
			v.Position = domain.Position(position)
			put(&s.EmploymentContracts, v.ID, v)
			return nil
		},
	},
}

// joinTable binds a many-to-many relation to its join table. The first column
// holds the relation's parent id, the second the child id.
func joinTable(rel domain.RelationName, name, left, right string) tableSpec {
	return tableSpec{
		name:    name,
		columns: []string{left, right},
		rows: func(s memory.Snapshot) [][]any {
			links := s.Links[rel]
			out := make([][]any, 0, len(links))
			for _, link := range links {
				out = append(out, []any{link.LeftID, link.RightID})
			}
			return out
		},
		scan: func(s *memory.Snapshot, r rowScanner) error {
			var link domain.Link
			if err := r.Scan(&link.LeftID, &link.RightID); err != nil {
				return err
			}
			if s.Links == nil {
				s.Links = make(map[domain.RelationName][]domain.Link)
			}
			s.Links[rel] = append(s.Links[rel], link)
			return nil
		},
	}
}

var linkTables = []tableSpec{
	joinTable(domain.RelDishIngredient, "dish_ingredient", "dish_id", "ingredient_id"),
	joinTable(domain.RelDeliveryIngredient, "delivery_ingredient", "delivery_id", "ingredient_id"),
	joinTable(domain.RelOrderDish, "order_dish", "order_id", "dish_id"),
	joinTable(domain.RelOrderEmployee, "order_employee", "order_id", "employee_id"),
}

var sequenceTable = tableSpec{
	name:    "entity_sequence",
	columns: []string{"entity", "last_id"},
	rows: func(s memory.Snapshot) [][]any {
		out := make([][]any, 0, len(s.Sequences))
		for _, entity := range domain.EntityTypes() {
			if seq, ok := s.Sequences[entity]; ok {
				out = append(out, []any{string(entity), seq})
			}
		}
		return out
	},
	scan: func(s *memory.Snapshot, r rowScanner) error {
		var entity string
		var seq int64
		if err := r.Scan(&entity, &seq); err != nil {
			return err
		}
		if s.Sequences == nil {
			s.Sequences = make(map[domain.EntityType]int64)
		}
		s.Sequences[domain.EntityType(entity)] = seq
		return nil
	},
}

// normalizedTables lists every table in insert order: parents before children.
func normalizedTables() []tableSpec {
	out := slices.Clone(entityTables)
	out = append(out, linkTables...)
	return append(out, sequenceTable)
}
