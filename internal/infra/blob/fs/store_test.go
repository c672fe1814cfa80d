package fs

import (
	"context"
	"errors"
	"io"
	"path/filepath"
	"strings"
	"testing"

	"restaurantcore/internal/blob/core"
)

func TestStorePutGetList(t *testing.T) {
	ctx := context.Background()
	s, err := New(filepath.Join(t.TempDir(), "blobs"))
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	opts := core.PutOptions{ContentType: "application/json", Metadata: map[string]string{"kind": "snapshot"}}
	if _, err := s.Put(ctx, "snapshots/2.json", strings.NewReader(`{"b":2}`), opts); err != nil {
		t.Fatalf("put: %v", err)
	}
	if _, err := s.Put(ctx, "snapshots/1.json", strings.NewReader(`{}`), core.PutOptions{}); err != nil {
		t.Fatalf("put: %v", err)
	}
	if _, err := s.Put(ctx, "other/x", strings.NewReader("x"), core.PutOptions{}); err != nil {
		t.Fatalf("put: %v", err)
	}
	infos, err := s.List(ctx, "snapshots/")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(infos) != 2 || infos[0].Key != "snapshots/1.json" || infos[1].Key != "snapshots/2.json" {
		t.Fatalf("unexpected list %+v", infos)
	}
	info, rc, err := s.Get(ctx, "snapshots/2.json")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	defer func() { _ = rc.Close() }()
	body, _ := io.ReadAll(rc)
	if string(body) != `{"b":2}` {
		t.Fatalf("unexpected body %q", body)
	}
	if info.ContentType != "application/json" || info.Metadata["kind"] != "snapshot" {
		t.Fatalf("metadata not restored: %+v", info)
	}
}

func TestStoreRejectsOverwriteAndEscapes(t *testing.T) {
	ctx := context.Background()
	s, err := New(t.TempDir())
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	if _, err := s.Put(ctx, "a", strings.NewReader("1"), core.PutOptions{}); err != nil {
		t.Fatalf("put: %v", err)
	}
	if _, err := s.Put(ctx, "a", strings.NewReader("2"), core.PutOptions{}); !errors.Is(err, core.ErrExists) {
		t.Fatalf("expected ErrExists, got %v", err)
	}
	for _, key := range []string{"", "../escape", "/abs", "a.meta"} {
		if _, err := s.Put(ctx, key, strings.NewReader("x"), core.PutOptions{}); err == nil {
			t.Fatalf("expected key %q to be rejected", key)
		}
	}
}

func TestStoreDeleteAndMissing(t *testing.T) {
	ctx := context.Background()
	s, err := New(t.TempDir())
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	if _, err := s.Head(ctx, "missing"); !errors.Is(err, core.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if _, _, err := s.Get(ctx, "missing"); !errors.Is(err, core.ErrNotFound) {
		t.Fatalf("expected ErrNotFound from get, got %v", err)
	}
	if _, err := s.Put(ctx, "k", strings.NewReader("v"), core.PutOptions{}); err != nil {
		t.Fatalf("put: %v", err)
	}
	if ok, err := s.Delete(ctx, "k"); err != nil || !ok {
		t.Fatalf("delete: ok=%v err=%v", ok, err)
	}
	if ok, err := s.Delete(ctx, "k"); err != nil || ok {
		t.Fatalf("second delete: ok=%v err=%v", ok, err)
	}
	infos, err := s.List(ctx, "")
	if err != nil || len(infos) != 0 {
		t.Fatalf("expected empty list, got %+v err=%v", infos, err)
	}
}
