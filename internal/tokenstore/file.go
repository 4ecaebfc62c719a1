package tokenstore

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sync"

	"github.com/pkg/errors"
)

const (
	fileMode = 0o600
	dirMode  = 0o700
)

// File keeps all values in one JSON document readable by the owner only.
// Writes go to a temporary file that is renamed over the document.
type File struct {
	mu   sync.Mutex
	path string
}

// NewFile returns a store backed by the JSON document at path.
// The parent directory is created when missing.
func NewFile(path string) (*File, error) {
	if path == "" {
		return nil, errors.New("token store file path can not be empty")
	}

	if err := os.MkdirAll(filepath.Dir(path), dirMode); err != nil {
		return nil, errors.Wrap(err, "failed to create token store directory")
	}

	return &File{path: path}, nil
}

// Get implements Store.
func (f *File) Get(key string) (string, error) {
	if key == "" {
		return "", ErrKeyEmpty
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	values, err := f.load()
	if err != nil {
		return "", err
	}

	return values[key], nil
}

// Set implements Store.
func (f *File) Set(key, value string) error {
	if key == "" {
		return ErrKeyEmpty
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	values, err := f.load()
	if err != nil {
		return err
	}

	values[key] = value

	return f.save(values)
}

// Remove implements Store.
func (f *File) Remove(key string) error {
	if key == "" {
		return ErrKeyEmpty
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	values, err := f.load()
	if err != nil {
		return err
	}

	if _, ok := values[key]; !ok {
		return nil
	}

	delete(values, key)

	return f.save(values)
}

// Close implements Store.
func (f *File) Close() error { return nil }

func (f *File) load() (map[string]string, error) {
	values := make(map[string]string)

	b, err := os.ReadFile(f.path)
	if errors.Is(err, os.ErrNotExist) {
		return values, nil
	}

	if err != nil {
		return nil, errors.Wrap(err, "failed to read token store")
	}

	if len(b) == 0 {
		return values, nil
	}

	if err = json.Unmarshal(b, &values); err != nil {
		return nil, errors.Wrap(err, "failed to decode token store")
	}

	// a "null" document decodes to a nil map
	if values == nil {
		values = make(map[string]string)
	}

	return values, nil
}

func (f *File) save(values map[string]string) error {
	b, err := json.Marshal(values)
	if err != nil {
		return errors.Wrap(err, "failed to encode token store")
	}

	tmp, err := os.CreateTemp(filepath.Dir(f.path), ".tokenstore-*")
	if err != nil {
		return errors.Wrap(err, "failed to create temporary token store")
	}

	defer func() { _ = os.Remove(tmp.Name()) }()

	if err = tmp.Chmod(fileMode); err != nil {
		_ = tmp.Close()

		return errors.Wrap(err, "failed to protect token store")
	}

	if _, err = tmp.Write(b); err != nil {
		_ = tmp.Close()

		return errors.Wrap(err, "failed to write token store")
	}

	if err = tmp.Close(); err != nil {
		return errors.Wrap(err, "failed to write token store")
	}

	return errors.Wrap(os.Rename(tmp.Name(), f.path), "failed to replace token store")
}
