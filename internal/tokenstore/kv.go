package tokenstore

import (
	"fmt"
	"time"

	"github.com/gofiber/storage/mysql/v2"
	"github.com/gofiber/storage/postgres/v3"
)

// KV is the subset of a gofiber storage driver the KeyValue store needs.
type KV interface {
	Get(key string) ([]byte, error)
	Set(key string, val []byte, exp time.Duration) error
	Delete(key string) error
	Close() error
}

// KeyValue keeps values in a shared gofiber storage, e.g. a postgres or mysql table.
type KeyValue struct {
	kv KV
}

// NewKeyValue wraps kv.
func NewKeyValue(kv KV) *KeyValue {
	return &KeyValue{kv: kv}
}

// NewPostgres opens a postgres backed store. table defaults to the driver default when empty.
func NewPostgres(uri, table string) (store *KeyValue, err error) {
	// the driver panics when it can not reach the database
	defer func() {
		if r := recover(); r != nil {
			store, err = nil, fmt.Errorf("failed to open postgres token store: %v", r)
		}
	}()

	return NewKeyValue(postgres.New(postgres.Config{
		ConnectionURI: uri,
		Table:         table,
	})), nil
}

// NewMySQL opens a mysql backed store. table defaults to the driver default when empty.
func NewMySQL(uri, table string) (store *KeyValue, err error) {
	defer func() {
		if r := recover(); r != nil {
			store, err = nil, fmt.Errorf("failed to open mysql token store: %v", r)
		}
	}()

	return NewKeyValue(mysql.New(mysql.Config{
		ConnectionURI: uri,
		Table:         table,
	})), nil
}

// Get implements Store.
func (s *KeyValue) Get(key string) (string, error) {
	if key == "" {
		return "", ErrKeyEmpty
	}

	b, err := s.kv.Get(key)
	if err != nil {
		return "", fmt.Errorf("failed to read token slot: %w", err)
	}

	return string(b), nil
}

// Set implements Store. Values never expire, the backend decides about token lifetime.
func (s *KeyValue) Set(key, value string) error {
	if key == "" {
		return ErrKeyEmpty
	}

	if err := s.kv.Set(key, []byte(value), 0); err != nil {
		return fmt.Errorf("failed to write token slot: %w", err)
	}

	return nil
}

// Remove implements Store.
func (s *KeyValue) Remove(key string) error {
	if key == "" {
		return ErrKeyEmpty
	}

	if err := s.kv.Delete(key); err != nil {
		return fmt.Errorf("failed to delete token slot: %w", err)
	}

	return nil
}

// Close implements Store.
func (s *KeyValue) Close() error {
	if err := s.kv.Close(); err != nil {
		return fmt.Errorf("failed to close token store: %w", err)
	}

	return nil
}
