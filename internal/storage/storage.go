// Package storage provides the client-local key/value store that holds the
// cart snapshot and the session between runs.
package storage

import (
	"context"
	"errors"
	"fmt"

	"storefront/internal/config"

	"github.com/rs/zerolog"
)

// Well-known keys.
const (
	KeyCart  = "cart"
	KeyToken = "token"
	KeyUser  = "user"
)

// ErrNotFound is returned by Get when the key has no value.
var ErrNotFound = errors.New("storage: key not found")

// Store is a durable string key/value store.
type Store interface {
	// Get returns the value for key, or ErrNotFound.
	Get(ctx context.Context, key string) (string, error)

	// Set stores value under key, replacing any previous value.
	Set(ctx context.Context, key, value string) error

	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases resources held by the store.
	Close() error
}

// Open creates the store selected by the client configuration.
func Open(ctx context.Context, cfg *config.ClientConfig, logger zerolog.Logger) (Store, error) {
	switch cfg.StoreDriver {
	case config.StoreDriverFile:
		return NewFileStore(cfg.StorePath, logger)
	case config.StoreDriverSQLite:
		return NewSQLiteStore(ctx, cfg.StorePath, logger)
	case config.StoreDriverMemory:
		return NewMemoryStore(), nil
	default:
		return nil, fmt.Errorf("unknown store driver %q", cfg.StoreDriver)
	}
}
