package core

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"restaurantcore/internal/blob"
	"restaurantcore/internal/entitymodel"
	"restaurantcore/internal/infra/persistence/memory"
)

// SnapshotPrefix is the key prefix under which backups are written.
const SnapshotPrefix = "snapshots/"

const snapshotTimeLayout = "20060102T150405Z"

// Exporter yields the full committed state of a store.
type Exporter interface {
	ExportState() memory.Snapshot
}

// Restorer replaces the full state of a store.
type Restorer interface {
	Restore(ctx context.Context, snapshot memory.Snapshot) error
}

// BackupSnapshot writes the committed state of store to a new
// snapshots/<utc timestamp>-<uuid>.json object and returns its metadata.
func BackupSnapshot(ctx context.Context, store Exporter, blobs blob.Store, now time.Time) (blob.Info, error) {
	payload, err := json.Marshal(store.ExportState())
	if err != nil {
		return blob.Info{}, fmt.Errorf("encode snapshot: %w", err)
	}
	key := fmt.Sprintf("%s%s-%s.json", SnapshotPrefix, now.UTC().Format(snapshotTimeLayout), uuid.NewString())
	info, err := blobs.Put(ctx, key, bytes.NewReader(payload), blob.PutOptions{
		ContentType: "application/json",
		Metadata:    map[string]string{"schema": entitymodel.Version()},
	})
	if err != nil {
		return blob.Info{}, fmt.Errorf("store snapshot: %w", err)
	}
	return info, nil
}

// RestoreSnapshot loads the object at key and replaces the state of store with it.
func RestoreSnapshot(ctx context.Context, store Restorer, blobs blob.Store, key string) error {
	_, body, err := blobs.Get(ctx, key)
	if err != nil {
		return fmt.Errorf("load snapshot: %w", err)
	}
	defer func() { _ = body.Close() }()
	var snapshot memory.Snapshot
	if err := json.NewDecoder(body).Decode(&snapshot); err != nil {
		return fmt.Errorf("decode snapshot %s: %w", key, err)
	}
	if err := store.Restore(ctx, snapshot); err != nil {
		return fmt.Errorf("restore snapshot %s: %w", key, err)
	}
	return nil
}

// ListSnapshots returns the stored backups, oldest first.
func ListSnapshots(ctx context.Context, blobs blob.Store) ([]blob.Info, error) {
	infos, err := blobs.List(ctx, SnapshotPrefix)
	if err != nil {
		return nil, fmt.Errorf("list snapshots: %w", err)
	}
	out := infos[:0]
	for _, info := range infos {
		if strings.HasSuffix(info.Key, ".json") {
			out = append(out, info)
		}
	}
	return out, nil
}
