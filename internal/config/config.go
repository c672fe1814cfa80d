// Package config assembles the runtime configuration from the environment.
package config

import (
	"time"

	"github.com/joho/godotenv"

	"restaurantcore/internal/blob"
	"restaurantcore/internal/core"
	"restaurantcore/internal/env"
	"restaurantcore/internal/queue"
)

type Config struct {
	Addr            string
	Env             string
	ShutdownTimeout time.Duration
	MetricsEnabled  bool
	Storage         core.StorageConfig
	Blob            blob.Config
	// AMQP.URL empty disables change events.
	AMQP queue.Config
}

// Load reads the given dotenv files (".env" when none are named) into the
// process environment without overriding variables already set, then builds
// a Config. Missing dotenv files are ignored.
func Load(files ...string) Config {
	_ = godotenv.Load(files...)

	return Config{
		Addr:            env.GetString("RESTAURANT_ADDR", ":8080"),
		Env:             env.GetString("RESTAURANT_ENV", "development"),
		ShutdownTimeout: env.GetDuration("RESTAURANT_SHUTDOWN_TIMEOUT", 30*time.Second),
		MetricsEnabled:  env.GetBool("RESTAURANT_METRICS_ENABLED", true),
		Storage: core.StorageConfig{
			Driver:      core.StorageDriver(env.GetString("RESTAURANT_STORAGE_DRIVER", string(core.StorageSQLite))),
			SQLitePath:  env.GetString("RESTAURANT_SQLITE_PATH", "restaurant.db"),
			PostgresDSN: env.GetString("RESTAURANT_POSTGRES_DSN", ""),
		},
		Blob: blob.Config{
			Driver: blob.Driver(env.GetString("RESTAURANT_BLOB_DRIVER", string(blob.DriverFilesystem))),
			FSRoot: env.GetString("RESTAURANT_BLOB_FS_ROOT", "./blobdata"),
			S3: blob.S3Config{
				Bucket:          env.GetString("RESTAURANT_BLOB_S3_BUCKET", ""),
				Region:          env.GetString("RESTAURANT_BLOB_S3_REGION", "us-east-1"),
				Endpoint:        env.GetString("RESTAURANT_BLOB_S3_ENDPOINT", ""),
				PathStyle:       env.GetBool("RESTAURANT_BLOB_S3_PATH_STYLE", false),
				AccessKeyID:     env.GetString("RESTAURANT_BLOB_S3_ACCESS_KEY_ID", ""),
				SecretAccessKey: env.GetString("RESTAURANT_BLOB_S3_SECRET_ACCESS_KEY", ""),
				SessionToken:    env.GetString("RESTAURANT_BLOB_S3_SESSION_TOKEN", ""),
			},
		},
		AMQP: queue.Config{
			URL:           env.GetString("RESTAURANT_AMQP_URL", ""),
			MaxRetries:    env.GetInt("RESTAURANT_AMQP_MAX_RETRIES", 3),
			RetryDelay:    env.GetDuration("RESTAURANT_AMQP_RETRY_DELAY", 2*time.Second),
			PrefetchCount: env.GetInt("RESTAURANT_AMQP_PREFETCH_COUNT", 10),
		},
	}
}

// EventsEnabled reports whether a broker URL was configured.
func (c Config) EventsEnabled() bool { return c.AMQP.URL != "" }
