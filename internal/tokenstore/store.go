// Package tokenstore persists the session token between runs.
//
// A Store is a small key/value port. The session package keeps a single slot
// in it (by default under the key "token"). Absent keys read as the empty string.
package tokenstore

import (
	"errors"
	"fmt"

	"github.com/rocketpop/rocketpop-sso/internal/config"
)

var (
	// ErrKeyEmpty is returned when a store is called with an empty key.
	ErrKeyEmpty = errors.New("token store key can not be empty")

	// ErrUnknownBackend is returned by Open for an unknown backend name.
	ErrUnknownBackend = errors.New("unknown token store backend")

	// ErrClosed is returned after Close was called.
	ErrClosed = errors.New("token store is closed")
)

// Store is the key/value port the session token is persisted in.
type Store interface {
	// Get returns the value stored under key or "" when there is none.
	Get(key string) (string, error)
	// Set stores value under key, replacing any previous value.
	Set(key, value string) error
	// Remove deletes key. Removing an absent key is no error.
	Remove(key string) error
	// Close releases the resources of the store.
	Close() error
}

// Open creates the store selected by cfg.Backend.
func Open(cfg config.TokenStore) (Store, error) {
	switch cfg.Backend {
	case config.StoreMemory:
		return NewMemory(), nil
	case config.StoreFile:
		return NewFile(cfg.Path)
	case config.StoreKeyring:
		return NewKeyring(cfg.Service), nil
	case config.StoreSQLite:
		return NewSQLite(cfg.Path)
	case config.StorePostgres:
		return NewPostgres(cfg.ConnectionURI, cfg.Table)
	case config.StoreMySQL:
		return NewMySQL(cfg.ConnectionURI, cfg.Table)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownBackend, cfg.Backend)
	}
}
