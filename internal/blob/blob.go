// Package blob selects a blob storage driver for snapshot backups.
package blob

import (
	"context"
	"fmt"

	"restaurantcore/internal/blob/core"
	"restaurantcore/internal/infra/blob/fs"
	"restaurantcore/internal/infra/blob/memory"
	"restaurantcore/internal/infra/blob/s3"
)

type (
	Driver     = core.Driver
	PutOptions = core.PutOptions
	Info       = core.Info
	Store      = core.Store
	S3Config   = s3.Config
)

const (
	DriverFilesystem = core.DriverFilesystem
	DriverS3         = core.DriverS3
	DriverMemory     = core.DriverMemory
)

var (
	ErrNotFound = core.ErrNotFound
	ErrExists   = core.ErrExists
)

// Config selects and parameterises a driver.
type Config struct {
	Driver Driver
	FSRoot string
	S3     S3Config
}

// Open constructs the Store named by cfg.Driver. An empty driver selects the
// filesystem.
func Open(ctx context.Context, cfg Config) (Store, error) {
	switch cfg.Driver {
	case "", DriverFilesystem:
		return fs.New(cfg.FSRoot)
	case DriverS3:
		return s3.New(ctx, cfg.S3)
	case DriverMemory:
		return memory.New(), nil
	default:
		return nil, fmt.Errorf("unknown blob driver %s", cfg.Driver)
	}
}
