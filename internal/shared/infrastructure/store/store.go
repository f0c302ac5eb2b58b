// Package store provides the local key-value store the scheduler persists
// its snapshots to. Values are opaque JSON documents; the discipline is
// read full snapshot, compute new snapshot, overwrite.
package store

import (
	"context"
	"errors"
	"fmt"
)

// ErrUnknownDriver is returned by New for an unrecognized driver name.
var ErrUnknownDriver = errors.New("unknown store driver")

// Store is a synchronous key-value document store.
type Store interface {
	// Get returns the raw document for key. found is false when the key
	// has never been written.
	Get(ctx context.Context, key string) (value []byte, found bool, err error)

	// Set overwrites the document for key.
	Set(ctx context.Context, key string, value []byte) error

	// Delete removes key. Deleting an absent key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases any underlying connections.
	Close() error
}

// Config selects and parameterizes a store backend.
type Config struct {
	// Driver is one of "memory", "sqlite", "postgres", "redis".
	Driver string

	// SQLitePath is the database file for the sqlite driver.
	SQLitePath string

	// DatabaseURL is the DSN for the postgres driver.
	DatabaseURL string

	// RedisURL is the connection URL for the redis driver.
	RedisURL string
}

// New constructs the store backend named by cfg.Driver.
func New(ctx context.Context, cfg Config) (Store, error) {
	switch cfg.Driver {
	case "", "memory":
		return NewMemory(), nil
	case "sqlite":
		return NewSQLite(ctx, cfg.SQLitePath)
	case "postgres":
		return NewPostgres(ctx, cfg.DatabaseURL)
	case "redis":
		return NewRedis(ctx, cfg.RedisURL)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownDriver, cfg.Driver)
	}
}
