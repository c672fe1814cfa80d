package testutil

import (
	"context"
	"database/sql/driver"
	"io"
	"testing"
)

func TestStubDBStoresAndQueriesRows(t *testing.T) {
	ctx := context.Background()
	_, conn := NewStubDB()

	if err := conn.Ping(ctx); err != nil {
		t.Fatalf("Ping: %v", err)
	}
	_, err := conn.ExecContext(ctx, `INSERT INTO "order" (id, number) VALUES ($1, $2)`, []driver.NamedValue{
		{Value: int64(1)},
		{Value: "A-1"},
	})
	if err != nil {
		t.Fatalf("ExecContext insert: %v", err)
	}
	if len(conn.Tables["order"]) != 1 {
		t.Fatalf("expected unquoted order table, got %v", conn.Tables)
	}

	rows, err := conn.QueryContext(ctx, `SELECT number, id FROM "order"`, nil)
	if err != nil {
		t.Fatalf("QueryContext: %v", err)
	}
	defer func() { _ = rows.Close() }()
	dest := make([]driver.Value, 2)
	if err := rows.Next(dest); err != nil {
		t.Fatalf("Next: %v", err)
	}
	if dest[0] != "A-1" || dest[1] != int64(1) {
		t.Fatalf("unexpected row values: %v", dest)
	}
	if err := rows.Next(dest); err != io.EOF {
		t.Fatalf("expected EOF, got %v", err)
	}
}

func TestStubDBTruncateClearsListedTables(t *testing.T) {
	ctx := context.Background()
	_, conn := NewStubDB()
	conn.Tables["person"] = []map[string]any{{"id": int64(1)}}
	conn.Tables["dish"] = []map[string]any{{"id": int64(2)}}

	if _, err := conn.ExecContext(ctx, `TRUNCATE TABLE person, "table"`, nil); err != nil {
		t.Fatalf("truncate: %v", err)
	}
	if _, ok := conn.Tables["person"]; ok {
		t.Fatal("expected person rows cleared")
	}
	if len(conn.Tables["dish"]) != 1 {
		t.Fatal("expected dish rows untouched")
	}
}

func TestStubDBFailureFlags(t *testing.T) {
	ctx := context.Background()
	_, conn := NewStubDB()

	conn.FailTables = map[string]bool{"dish": true}
	if _, err := conn.ExecContext(ctx, "INSERT INTO dish (id) VALUES ($1)", []driver.NamedValue{{Value: int64(1)}}); err == nil {
		t.Fatal("expected insert failure")
	}
	if _, err := conn.QueryContext(ctx, "SELECT id FROM dish", nil); err == nil {
		t.Fatal("expected query failure")
	}
	if _, err := conn.ExecContext(ctx, "INSERT INTO person (id, name) VALUES ($1)", []driver.NamedValue{{Value: int64(1)}}); err == nil {
		t.Fatal("expected column/arg mismatch")
	}

	conn.FailBegin = true
	if _, err := conn.Begin(); err == nil {
		t.Fatal("expected begin failure")
	}
	conn.FailBegin = false
	conn.FailCommit = true
	tx, err := conn.Begin()
	if err != nil {
		t.Fatalf("begin: %v", err)
	}
	if err := tx.Commit(); err == nil {
		t.Fatal("expected commit failure")
	}

	conn.FailExec = true
	if err := conn.Ping(ctx); err == nil {
		t.Fatal("expected ping failure")
	}
	if _, err := conn.ExecContext(ctx, "CREATE TABLE x (id INT)", nil); err == nil {
		t.Fatal("expected exec failure")
	}
}

func TestParseSelectRejectsMalformedQueries(t *testing.T) {
	for _, q := range []string{"UPDATE x SET a = 1", "SELECT id", "SELECT id FROM "} {
		if _, _, err := parseSelect(q); err == nil {
			t.Fatalf("expected parse error for %q", q)
		}
	}
}
