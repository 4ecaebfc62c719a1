package tokenstore

import "sync"

// Memory keeps values for the lifetime of the process only.
type Memory struct {
	mu     sync.RWMutex
	values map[string]string
}

// NewMemory returns an empty in-memory store.
func NewMemory() *Memory {
	return &Memory{values: make(map[string]string)}
}

// Get implements Store.
func (m *Memory) Get(key string) (string, error) {
	if key == "" {
		return "", ErrKeyEmpty
	}

	m.mu.RLock()
	defer m.mu.RUnlock()

	return m.values[key], nil
}

// Set implements Store.
func (m *Memory) Set(key, value string) error {
	if key == "" {
		return ErrKeyEmpty
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	m.values[key] = value

	return nil
}

// Remove implements Store.
func (m *Memory) Remove(key string) error {
	if key == "" {
		return ErrKeyEmpty
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	delete(m.values, key)

	return nil
}

// Close implements Store.
func (m *Memory) Close() error { return nil }
