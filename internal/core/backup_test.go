package core

import (
	"context"
	"errors"
	"strings"
	"testing"

	"restaurantcore/internal/blob"
	memoryblob "restaurantcore/internal/infra/blob/memory"
)

func TestBackupAndRestoreSnapshot(t *testing.T) {
	ctx := context.Background()
	source, err := OpenPersistentStore(StorageConfig{Driver: StorageMemory}, NewDefaultRulesEngine())
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	svc := NewService(source)
	r := seedRestaurant(t, svc)
	blobs := memoryblob.New()

	info, err := BackupSnapshot(ctx, source, blobs, fixedNow)
	if err != nil {
		t.Fatalf("backup: %v", err)
	}
	if !strings.HasPrefix(info.Key, "snapshots/20240517T123000Z-") || !strings.HasSuffix(info.Key, ".json") {
		t.Fatalf("unexpected key %s", info.Key)
	}
	if info.ContentType != "application/json" || info.Metadata["schema"] == "" {
		t.Fatalf("unexpected blob metadata %+v", info)
	}
	if _, err := blobs.Put(ctx, "snapshots/notes.txt", strings.NewReader("x"), blob.PutOptions{}); err != nil {
		t.Fatalf("put noise: %v", err)
	}
	listed, err := ListSnapshots(ctx, blobs)
	if err != nil || len(listed) != 1 || listed[0].Key != info.Key {
		t.Fatalf("unexpected snapshot list %+v err=%v", listed, err)
	}

	target, _ := OpenPersistentStore(StorageConfig{Driver: StorageMemory}, NewDefaultRulesEngine())
	if err := RestoreSnapshot(ctx, target, blobs, info.Key); err != nil {
		t.Fatalf("restore: %v", err)
	}
	restored := NewService(target)
	order := must(restored.GetOrder(ctx, r.order))
	if len(order.EmployeeIDs) != 2 || len(order.DishIDs) != 1 {
		t.Fatalf("relations not restored: %+v", order)
	}
	next := must(restored.CreateTable(ctx, TableInput{Number: "T9", NumberOfSeats: 2}))
	if next.ID != r.spareTable+1 {
		t.Fatalf("sequence must continue after restore, got %d", next.ID)
	}
}

func TestRestoreSnapshotErrors(t *testing.T) {
	ctx := context.Background()
	target, _ := OpenPersistentStore(StorageConfig{Driver: StorageMemory}, nil)
	blobs := memoryblob.New()
	if err := RestoreSnapshot(ctx, target, blobs, "snapshots/missing.json"); !errors.Is(err, blob.ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
	if _, err := blobs.Put(ctx, "snapshots/bad.json", strings.NewReader("{"), blob.PutOptions{}); err != nil {
		t.Fatalf("put: %v", err)
	}
	if err := RestoreSnapshot(ctx, target, blobs, "snapshots/bad.json"); err == nil || !strings.Contains(err.Error(), "decode snapshot") {
		t.Fatalf("expected decode error, got %v", err)
	}
}
