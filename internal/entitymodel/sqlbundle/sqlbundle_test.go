package sqlbundle

import (
	"strings"
	"testing"
)

func TestSplitStatements(t *testing.T) {
	stmts := SplitStatements(Postgres())
	if len(stmts) == 0 {
		t.Fatal("expected postgres DDL to produce statements")
	}
	for _, stmt := range stmts {
		if strings.Contains(stmt, "--") {
			t.Fatalf("statement unexpectedly carries a comment: %q", stmt)
		}
		if !strings.HasSuffix(strings.TrimSpace(stmt), ";") {
			t.Fatalf("statement missing semicolon terminator: %q", stmt)
		}
	}
}

func TestSplitStatementsKeepsUnterminatedTail(t *testing.T) {
	stmts := SplitStatements("-- header\nCREATE TABLE a (id INT);\n\nSELECT 1")
	if len(stmts) != 2 {
		t.Fatalf("expected 2 statements, got %d: %q", len(stmts), stmts)
	}
	if stmts[1] != "SELECT 1" {
		t.Fatalf("unexpected tail %q", stmts[1])
	}
}

func TestPostgresBundleCoversSchema(t *testing.T) {
	ddl := Postgres()
	for _, table := range []string{
		"person", "client", "restaurant_employee", "deliver", "delivery", "dish",
		"ingredient", `"order"`, "reservation", `"table"`, "address_history",
		"employment_contract", "dish_ingredient", "delivery_ingredient",
		"order_dish", "order_employee", "entity_sequence",
	} {
		if !strings.Contains(ddl, "CREATE TABLE IF NOT EXISTS "+table+" (") {
			t.Fatalf("expected DDL for %s", table)
		}
	}
	if !strings.Contains(ddl, "ON DELETE SET NULL") || !strings.Contains(ddl, "ON DELETE CASCADE") {
		t.Fatal("expected delete policies in DDL")
	}
}
