package postgres

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"testing"
	"time"

	"restaurantcore/internal/entitymodel/sqlbundle"
	"restaurantcore/internal/infra/persistence/memory"
	"restaurantcore/internal/infra/persistence/postgres/testutil"
	"restaurantcore/pkg/domain"
)

type recordingExec struct {
	execs []string
	fail  bool
}

func (r *recordingExec) ExecContext(_ context.Context, query string, _ ...any) (sql.Result, error) {
	r.execs = append(r.execs, query)
	if r.fail {
		return nil, errors.New("exec fail")
	}
	return nil, nil
}

func ptr[T any](v T) *T { return &v }

// seedSnapshot builds a snapshot covering every table, nullable columns included.
func seedSnapshot(t *testing.T) memory.Snapshot {
	t.Helper()
	mem := memory.NewStore(nil)
	mem.SetNowFunc(func() time.Time { return time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC) })
	_, err := mem.RunInTransaction(context.Background(), func(tx domain.Transaction) error {
		clientPerson, err := tx.CreatePerson(domain.Person{Name: "Ada", Surname: "L", Email: "ada@example.com", PhoneNumber: "1"})
		if err != nil {
			return err
		}
		staffPerson, err := tx.CreatePerson(domain.Person{Name: "Bob", Surname: "K", Email: "bob@example.com", PhoneNumber: "2"})
		if err != nil {
			return err
		}
		courierPerson, err := tx.CreatePerson(domain.Person{Name: "Cy", Surname: "D", Email: "cy@example.com", PhoneNumber: "3"})
		if err != nil {
			return err
		}
		client, err := tx.CreateClient(domain.Client{PersonID: clientPerson.ID})
		if err != nil {
			return err
		}
		employee, err := tx.CreateRestaurantEmployee(domain.RestaurantEmployee{EmployeeIdentificator: "E-1", Role: domain.RoleWaiter, PersonID: staffPerson.ID})
		if err != nil {
			return err
		}
		deliver, err := tx.CreateDeliver(domain.Deliver{CompanyName: "FastCo", PersonID: courierPerson.ID})
		if err != nil {
			return err
		}
		flour, err := tx.CreateIngredient(domain.Ingredient{Name: "flour", Amount: 500, Metric: domain.MetricGrams})
		if err != nil {
			return err
		}
		dish, err := tx.CreateDish(domain.Dish{Name: "Bread", Description: ptr("sourdough"), Price: 4.5, IngredientIDs: []int64{flour.ID}})
		if err != nil {
			return err
		}
		if _, err := tx.CreateDelivery(domain.Delivery{Status: domain.DeliveryPending, Date: domain.NewDate(time.Date(2024, 5, 2, 0, 0, 0, 0, time.UTC)), DeliverID: deliver.ID, IngredientIDs: []int64{flour.ID}}); err != nil {
			return err
		}
		address, err := tx.CreateAddressHistory(domain.AddressHistory{Street: "Main", City: "Town", PostCode: "00-001", BuildingNumber: "1", Floor: ptr(2), ClientID: client.ID})
		if err != nil {
			return err
		}
		order, err := tx.CreateOrder(domain.Order{
			Status:           domain.OrderNew,
			Number:           "A-1",
			Payment:          domain.PaymentCard,
			TakeawayOrOnsite: domain.OrderTakeaway,
			ClientID:         client.ID,
			AddressHistoryID: address.ID,
			DishIDs:          []int64{dish.ID},
			EmployeeIDs:      []int64{employee.ID},
		})
		if err != nil {
			return err
		}
		if _, err := tx.UpdateAddressHistory(address.ID, func(a *domain.AddressHistory) error {
			a.OrderID = &order.ID
			return nil
		}); err != nil {
			return err
		}
		table, err := tx.CreateTable(domain.Table{Number: "T1", NumberOfSeats: 4})
		if err != nil {
			return err
		}
		if _, err := tx.CreateReservation(domain.Reservation{Date: domain.NewDate(time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)), Hour: "19:00", NumberOfPeople: 2, Status: domain.ReservationPlaced, ClientID: client.ID, TableIDs: []int64{table.ID}}); err != nil {
			return err
		}
		_, err = tx.CreateEmploymentContract(domain.EmploymentContract{StartDate: domain.NewDate(time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)), Salary: 3000, Position: domain.PositionWaiter, EmployeeID: employee.ID})
		return err
	})
	if err != nil {
		t.Fatalf("seed snapshot: %v", err)
	}
	return mem.ExportState()
}

func TestNewStoreAppliesDDLAndLoadsSnapshot(t *testing.T) {
	ctx := context.Background()
	db, conn := testutil.NewStubDB()
	if err := persistNormalized(ctx, db, seedSnapshot(t)); err != nil {
		t.Fatalf("seed fixture: %v", err)
	}

	restore := OverrideSQLOpen(func(_, _ string) (*sql.DB, error) { return db, nil })
	defer restore()

	store, err := NewStore("", domain.NewRulesEngine())
	if err != nil {
		t.Fatalf("NewStore: %v", err)
	}
	var sawDDL bool
	for _, stmt := range conn.Execs {
		if strings.Contains(strings.ToUpper(stmt), "CREATE TABLE") {
			sawDDL = true
			break
		}
	}
	if !sawDDL {
		t.Fatalf("expected schema DDL to be applied, got execs: %v", conn.Execs)
	}

	err = store.View(ctx, func(v domain.TransactionView) error {
		if got := len(v.ListPersons()); got != 3 {
			t.Fatalf("expected 3 persons, got %d", got)
		}
		orders := v.ListOrders()
		if len(orders) != 1 || len(orders[0].DishIDs) != 1 || len(orders[0].EmployeeIDs) != 1 {
			t.Fatalf("expected order with dish and employee links, got %+v", orders)
		}
		if orders[0].Hour != nil || orders[0].Note != nil {
			t.Fatalf("expected nullable order columns to stay nil, got %+v", orders[0])
		}
		dishes := v.ListDishes()
		if len(dishes) != 1 || dishes[0].Description == nil || *dishes[0].Description != "sourdough" || dishes[0].Discount != nil {
			t.Fatalf("unexpected dish %+v", dishes)
		}
		addresses := v.ListAddressHistories()
		if len(addresses) != 1 || addresses[0].Floor == nil || *addresses[0].Floor != 2 || addresses[0].OrderID == nil || addresses[0].Staircase != nil {
			t.Fatalf("unexpected address %+v", addresses)
		}
		reservations := v.ListReservations()
		if len(reservations) != 1 || len(reservations[0].TableIDs) != 1 {
			t.Fatalf("expected reservation with one table, got %+v", reservations)
		}
		if reservations[0].Date.String() != "2024-06-01" {
			t.Fatalf("unexpected reservation date %s", reservations[0].Date)
		}
		contracts := v.ListEmploymentContracts()
		if len(contracts) != 1 || contracts[0].EndDate != nil || contracts[0].Position != domain.PositionWaiter {
			t.Fatalf("unexpected contract %+v", contracts)
		}
		deliveries := v.ListDeliveries()
		if len(deliveries) != 1 || len(deliveries[0].IngredientIDs) != 1 || deliveries[0].DeliverID == 0 {
			t.Fatalf("unexpected delivery %+v", deliveries)
		}
		return nil
	})
	if err != nil {
		t.Fatalf("view: %v", err)
	}
}

func TestNewStoreContinuesSequences(t *testing.T) {
	db, _ := testutil.NewStubDB()
	if err := persistNormalized(context.Background(), db, seedSnapshot(t)); err != nil {
		t.Fatalf("seed fixture: %v", err)
	}
	restore := OverrideSQLOpen(func(_, _ string) (*sql.DB, error) { return db, nil })
	defer restore()

	store, err := NewStore("", nil)
	if err != nil {
		t.Fatalf("NewStore: %v", err)
	}
	var created domain.Person
	if _, err := store.RunInTransaction(context.Background(), func(tx domain.Transaction) error {
		var err error
		created, err = tx.CreatePerson(domain.Person{Name: "Dee", Email: "dee@example.com"})
		return err
	}); err != nil {
		t.Fatalf("create person: %v", err)
	}
	if created.ID != 4 {
		t.Fatalf("expected id 4 after reload, got %d", created.ID)
	}
}

func TestApplyDDLStatementsUsesPostgresBundle(t *testing.T) {
	ctx := context.Background()
	rec := &recordingExec{}

	ddl := sqlbundle.Postgres()
	if err := applyDDLStatements(ctx, rec, ddl); err != nil {
		t.Fatalf("applyDDLStatements: %v", err)
	}

	expected := sqlbundle.SplitStatements(ddl)
	if len(rec.execs) != len(expected) {
		t.Fatalf("expected %d DDL statements, got %d", len(expected), len(rec.execs))
	}
	for i, stmt := range expected {
		if strings.TrimSpace(rec.execs[i]) != strings.TrimSpace(stmt) {
			t.Fatalf("statement %d mismatch:\nwant: %s\ngot:  %s", i, strings.TrimSpace(stmt), strings.TrimSpace(rec.execs[i]))
		}
	}
}

func TestApplyDDLStatementsError(t *testing.T) {
	rec := &recordingExec{fail: true}
	if err := applyDDLStatements(context.Background(), rec, "CREATE TABLE x (id INT);"); err == nil {
		t.Fatal("expected ddl error")
	}
}

func TestNewStoreOpenError(t *testing.T) {
	restore := OverrideSQLOpen(func(_, _ string) (*sql.DB, error) { return nil, errors.New("dial fail") })
	defer restore()
	if _, err := NewStore("", nil); err == nil || !strings.Contains(err.Error(), "open postgres") {
		t.Fatalf("expected open error, got %v", err)
	}
}

func TestNewStorePingError(t *testing.T) {
	db, conn := testutil.NewStubDB()
	conn.FailExec = true
	restore := OverrideSQLOpen(func(_, _ string) (*sql.DB, error) { return db, nil })
	defer restore()
	if _, err := NewStore("", nil); err == nil || !strings.Contains(err.Error(), "ping postgres") {
		t.Fatalf("expected ping error, got %v", err)
	}
}

func TestNewStoreLoadError(t *testing.T) {
	db, conn := testutil.NewStubDB()
	conn.FailTables = map[string]bool{"dish": true}
	restore := OverrideSQLOpen(func(_, _ string) (*sql.DB, error) { return db, nil })
	defer restore()
	if _, err := NewStore("", nil); err == nil || !strings.Contains(err.Error(), "select dish") {
		t.Fatalf("expected load error, got %v", err)
	}
}

func TestLoadNormalizedSnapshotRowsError(t *testing.T) {
	db, conn := testutil.NewStubDB()
	conn.RowsErr = errors.New("rows fail")
	if _, err := loadNormalizedSnapshot(context.Background(), db); err == nil || !strings.Contains(err.Error(), "iterate person") {
		t.Fatalf("expected rows error, got %v", err)
	}
}

func TestLoadNormalizedSnapshotScanError(t *testing.T) {
	db, conn := testutil.NewStubDB()
	conn.Tables["person"] = []map[string]any{{"id": "not-a-number"}}
	if _, err := loadNormalizedSnapshot(context.Background(), db); err == nil || !strings.Contains(err.Error(), "scan person") {
		t.Fatalf("expected scan error, got %v", err)
	}
}

func TestRunInTransactionPersistsRows(t *testing.T) {
	db, conn := testutil.NewStubDB()
	restore := OverrideSQLOpen(func(_, _ string) (*sql.DB, error) { return db, nil })
	defer restore()

	store, err := NewStore("ignored", domain.NewRulesEngine())
	if err != nil {
		t.Fatalf("NewStore: %v", err)
	}
	_, err = store.RunInTransaction(context.Background(), func(tx domain.Transaction) error {
		p, err := tx.CreatePerson(domain.Person{Name: "Ada", Email: "ada@example.com"})
		if err != nil {
			return err
		}
		c, err := tx.CreateClient(domain.Client{PersonID: p.ID})
		if err != nil {
			return err
		}
		a, err := tx.CreateAddressHistory(domain.AddressHistory{Street: "Main", City: "Town", PostCode: "1", BuildingNumber: "1", ClientID: c.ID})
		if err != nil {
			return err
		}
		_, err = tx.CreateOrder(domain.Order{Status: domain.OrderPlaced, Number: "A-1", Payment: domain.PaymentCash, TakeawayOrOnsite: domain.OrderOnsite, ClientID: c.ID, AddressHistoryID: a.ID})
		return err
	})
	if err != nil {
		t.Fatalf("RunInTransaction: %v", err)
	}
	if got := len(conn.Tables["person"]); got != 1 {
		t.Fatalf("expected person row, got %d", got)
	}
	orders := conn.Tables["order"]
	if len(orders) != 1 {
		t.Fatalf("expected order row, got %v", conn.Tables)
	}
	if orders[0]["hour"] != nil || orders[0]["status"] != "placed" {
		t.Fatalf("unexpected order row %v", orders[0])
	}
	var sawSequence bool
	for _, row := range conn.Tables["entity_sequence"] {
		if row["entity"] == string(domain.EntityOrder) && row["last_id"] == int64(1) {
			sawSequence = true
		}
	}
	if !sawSequence {
		t.Fatalf("expected order sequence row, got %v", conn.Tables["entity_sequence"])
	}
	if store.DB() != db {
		t.Fatal("expected DB to expose the opened handle")
	}
}

func TestRunInTransactionReportsPersistError(t *testing.T) {
	db, conn := testutil.NewStubDB()
	restore := OverrideSQLOpen(func(_, _ string) (*sql.DB, error) { return db, nil })
	defer restore()

	store, err := NewStore("", nil)
	if err != nil {
		t.Fatalf("NewStore: %v", err)
	}
	conn.FailTables = map[string]bool{"ingredient": true}
	_, err = store.RunInTransaction(context.Background(), func(tx domain.Transaction) error {
		_, err := tx.CreateIngredient(domain.Ingredient{Name: "salt", Amount: 1, Metric: domain.MetricGrams})
		return err
	})
	if err == nil || !strings.Contains(err.Error(), "insert ingredient") {
		t.Fatalf("expected insert error, got %v", err)
	}
	if got := len(store.ExportState().Ingredients); got != 0 {
		t.Fatalf("failed write must not be visible, got %d ingredients", got)
	}
}

func TestRunInTransactionStopsOnUserError(t *testing.T) {
	db, conn := testutil.NewStubDB()
	restore := OverrideSQLOpen(func(_, _ string) (*sql.DB, error) { return db, nil })
	defer restore()

	store, err := NewStore("", nil)
	if err != nil {
		t.Fatalf("NewStore: %v", err)
	}
	before := len(conn.Execs)
	sentinel := errors.New("abort")
	if _, err := store.RunInTransaction(context.Background(), func(domain.Transaction) error { return sentinel }); !errors.Is(err, sentinel) {
		t.Fatalf("expected sentinel, got %v", err)
	}
	if len(conn.Execs) != before {
		t.Fatalf("expected no writes after user error, got %v", conn.Execs[before:])
	}
}

func TestPersistNormalizedBeginAndCommitErrors(t *testing.T) {
	db, conn := testutil.NewStubDB()
	conn.FailBegin = true
	if err := persistNormalized(context.Background(), db, memory.Snapshot{}); err == nil || !strings.Contains(err.Error(), "begin tx") {
		t.Fatalf("expected begin error, got %v", err)
	}
	conn.FailBegin = false
	conn.FailCommit = true
	if err := persistNormalized(context.Background(), db, memory.Snapshot{}); err == nil || !strings.Contains(err.Error(), "commit") {
		t.Fatalf("expected commit error, got %v", err)
	}
}

func TestRestoreRewritesTables(t *testing.T) {
	db, conn := testutil.NewStubDB()
	restore := OverrideSQLOpen(func(_, _ string) (*sql.DB, error) { return db, nil })
	defer restore()

	store, err := NewStore("", nil)
	if err != nil {
		t.Fatalf("NewStore: %v", err)
	}
	if err := store.Restore(context.Background(), seedSnapshot(t)); err != nil {
		t.Fatalf("Restore: %v", err)
	}
	if got := len(conn.Tables["dish_ingredient"]); got != 1 {
		t.Fatalf("expected one dish_ingredient row, got %d", got)
	}
	if got := len(conn.Tables["table"]); got != 1 {
		t.Fatalf("expected one table row, got %d", got)
	}
	if got := len(store.ExportState().Persons); got != 3 {
		t.Fatalf("expected restored persons in memory, got %d", got)
	}
}
