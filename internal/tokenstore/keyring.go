package tokenstore

import (
	"errors"
	"fmt"

	"github.com/zalando/go-keyring"
)

// Keyring keeps values in the credential manager of the operating system.
type Keyring struct {
	service string
}

// NewKeyring returns a store writing below the given keyring service name.
func NewKeyring(service string) *Keyring {
	return &Keyring{service: service}
}

// Get implements Store.
func (k *Keyring) Get(key string) (string, error) {
	if key == "" {
		return "", ErrKeyEmpty
	}

	value, err := keyring.Get(k.service, key)
	if err != nil {
		if errors.Is(err, keyring.ErrNotFound) {
			return "", nil
		}

		return "", fmt.Errorf("failed to load %s from keyring: %w", key, err)
	}

	return value, nil
}

// Set implements Store.
func (k *Keyring) Set(key, value string) error {
	if key == "" {
		return ErrKeyEmpty
	}

	if err := keyring.Set(k.service, key, value); err != nil {
		return fmt.Errorf("failed to save %s to keyring: %w", key, err)
	}

	return nil
}

// Remove implements Store.
func (k *Keyring) Remove(key string) error {
	if key == "" {
		return ErrKeyEmpty
	}

	if err := keyring.Delete(k.service, key); err != nil {
		if errors.Is(err, keyring.ErrNotFound) {
			return nil // already deleted
		}

		return fmt.Errorf("failed to delete %s from keyring: %w", key, err)
	}

	return nil
}

// Close implements Store.
func (k *Keyring) Close() error { return nil }
