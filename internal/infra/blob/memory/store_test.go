package memory

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"

	"restaurantcore/internal/blob/core"
)

func TestStoreLifecycle(t *testing.T) {
	ctx := context.Background()
	s := New()
	if s.Driver() != core.DriverMemory {
		t.Fatalf("unexpected driver %s", s.Driver())
	}
	if _, err := s.Put(ctx, "snapshots/b.json", strings.NewReader("{}"), core.PutOptions{ContentType: "application/json"}); err != nil {
		t.Fatalf("put: %v", err)
	}
	if _, err := s.Put(ctx, "snapshots/a.json", strings.NewReader("[]"), core.PutOptions{}); err != nil {
		t.Fatalf("put: %v", err)
	}
	if _, err := s.Put(ctx, "snapshots/a.json", strings.NewReader("x"), core.PutOptions{}); !errors.Is(err, core.ErrExists) {
		t.Fatalf("expected ErrExists, got %v", err)
	}
	infos, err := s.List(ctx, "snapshots/")
	if err != nil || len(infos) != 2 || infos[0].Key != "snapshots/a.json" {
		t.Fatalf("unexpected list %+v err=%v", infos, err)
	}
	info, rc, err := s.Get(ctx, "snapshots/b.json")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	body, _ := io.ReadAll(rc)
	_ = rc.Close()
	if string(body) != "{}" || info.ContentType != "application/json" || info.Size != 2 {
		t.Fatalf("unexpected object %+v %q", info, body)
	}
	if ok, _ := s.Delete(ctx, "snapshots/b.json"); !ok {
		t.Fatalf("expected delete to report existing key")
	}
	if ok, _ := s.Delete(ctx, "snapshots/b.json"); ok {
		t.Fatalf("expected second delete to report missing key")
	}
	if _, err := s.Head(ctx, "snapshots/b.json"); !errors.Is(err, core.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}
