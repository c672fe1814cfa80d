package sqlite

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"restaurantcore/internal/infra/persistence/memory"
	"restaurantcore/pkg/domain"
)

func seedIngredients(t *testing.T, store *Store, names ...string) []int64 {
	t.Helper()
	var ids []int64
	_, err := store.RunInTransaction(context.Background(), func(tx domain.Transaction) error {
		for _, name := range names {
			ing, err := tx.CreateIngredient(domain.Ingredient{Name: name, Amount: 1, Metric: domain.MetricGrams})
			if err != nil {
				return err
			}
			ids = append(ids, ing.ID)
		}
		return nil
	})
	if err != nil {
		t.Fatalf("seed ingredients: %v", err)
	}
	return ids
}

func TestSQLiteStorePersistAndReload(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "state.db")
	store, err := NewStore(path, domain.NewRulesEngine())
	if err != nil {
		t.Skipf("sqlite unavailable: %v", err)
	}
	ids := seedIngredients(t, store, "flour", "water")
	if _, err := store.RunInTransaction(context.Background(), func(tx domain.Transaction) error {
		_, err := tx.CreateDish(domain.Dish{Name: "Bread", Price: 3, IngredientIDs: ids})
		return err
	}); err != nil {
		t.Fatalf("create dish: %v", err)
	}
	if err := store.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}

	reloaded, err := NewStore(path, domain.NewRulesEngine())
	if err != nil {
		t.Fatalf("reload: %v", err)
	}
	t.Cleanup(func() { _ = reloaded.Close() })
	if reloaded.Path() != path {
		t.Fatalf("unexpected path %s", reloaded.Path())
	}
	err = reloaded.View(context.Background(), func(v domain.TransactionView) error {
		dishes := v.ListDishes()
		if len(dishes) != 1 || len(dishes[0].IngredientIDs) != 2 {
			t.Fatalf("expected dish with two ingredients, got %+v", dishes)
		}
		return nil
	})
	if err != nil {
		t.Fatalf("view: %v", err)
	}
	more := seedIngredients(t, reloaded, "salt")
	if more[0] != 3 {
		t.Fatalf("expected sequence to continue after reload, got %d", more[0])
	}
}

func TestSQLiteStoreSkipsPersistOnFailure(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state.db")
	store, err := NewStore(path, domain.NewRulesEngine())
	if err != nil {
		t.Skipf("sqlite unavailable: %v", err)
	}
	t.Cleanup(func() { _ = store.Close() })
	sentinel := errors.New("abort")
	if _, err := store.RunInTransaction(context.Background(), func(tx domain.Transaction) error {
		if _, err := tx.CreateIngredient(domain.Ingredient{Name: "x", Metric: domain.MetricGrams}); err != nil {
			return err
		}
		return sentinel
	}); !errors.Is(err, sentinel) {
		t.Fatalf("expected sentinel, got %v", err)
	}
	var rows int
	if err := store.DB().QueryRow(`SELECT COUNT(*) FROM state`).Scan(&rows); err != nil {
		t.Fatalf("count: %v", err)
	}
	if rows != 0 {
		t.Fatalf("expected no persisted buckets, got %d", rows)
	}
}

func TestSQLiteStoreLoadInvalidJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "load.db")
	store, err := NewStore(path, domain.NewRulesEngine())
	if err != nil {
		t.Skipf("sqlite unavailable: %v", err)
	}
	seedIngredients(t, store, "flour")
	if _, err := store.DB().Exec(`UPDATE state SET payload = ? WHERE bucket = ?`, []byte("{"), string(domain.EntityIngredient)); err != nil {
		t.Fatalf("corrupt bucket: %v", err)
	}
	_ = store.Close()
	if _, err := NewStore(path, domain.NewRulesEngine()); err == nil {
		t.Fatalf("expected decode error on reload")
	}
}

func TestSQLiteStoreRestore(t *testing.T) {
	source := memory.NewStore(nil)
	if _, err := source.RunInTransaction(context.Background(), func(tx domain.Transaction) error {
		_, err := tx.CreatePerson(domain.Person{Name: "Ada", Email: "ada@example.com"})
		return err
	}); err != nil {
		t.Fatalf("seed source: %v", err)
	}

	path := filepath.Join(t.TempDir(), "restore.db")
	store, err := NewStore(path, nil)
	if err != nil {
		t.Skipf("sqlite unavailable: %v", err)
	}
	if err := store.Restore(context.Background(), source.ExportState()); err != nil {
		t.Fatalf("restore: %v", err)
	}
	_ = store.Close()

	reloaded, err := NewStore(path, nil)
	if err != nil {
		t.Fatalf("reload: %v", err)
	}
	t.Cleanup(func() { _ = reloaded.Close() })
	if got := len(reloaded.ExportState().Persons); got != 1 {
		t.Fatalf("expected restored person, got %d", got)
	}
}

func TestSQLiteStoreFailedPersistLeavesStateUnchanged(t *testing.T) {
	path := filepath.Join(t.TempDir(), "closed.db")
	store, err := NewStore(path, domain.NewRulesEngine())
	if err != nil {
		t.Skipf("sqlite unavailable: %v", err)
	}
	seedIngredients(t, store, "flour")
	if err := store.DB().Close(); err != nil {
		t.Fatalf("close db: %v", err)
	}

	_, err = store.RunInTransaction(context.Background(), func(tx domain.Transaction) error {
		_, err := tx.CreateIngredient(domain.Ingredient{Name: "water", Amount: 1, Metric: domain.MetricMilliliters})
		return err
	})
	if err == nil {
		t.Fatalf("expected persist error on closed database")
	}
	if got := len(store.ExportState().Ingredients); got != 1 {
		t.Fatalf("failed write must not be visible, got %d ingredients", got)
	}
	if err := store.Restore(context.Background(), memory.Snapshot{}); err == nil {
		t.Fatalf("expected restore to fail on closed database")
	}
	if got := len(store.ExportState().Ingredients); got != 1 {
		t.Fatalf("failed restore must not replace state, got %d ingredients", got)
	}
}
