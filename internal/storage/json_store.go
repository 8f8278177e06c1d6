package storage

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/Veraticus/shopimpact/internal/model"
	"github.com/google/uuid"
)

// JSONStore keeps the state in a single JSON document on disk.
type JSONStore struct {
	path string
}

// NewJSONStore creates a JSON store at path, creating its directory.
func NewJSONStore(path string) (*JSONStore, error) {
	if err := validateString(path, "path"); err != nil {
		return nil, err
	}

	if err := os.MkdirAll(filepath.Dir(path), 0750); err != nil {
		return nil, fmt.Errorf("failed to create data directory: %w", err)
	}

	return &JSONStore{path: path}, nil
}

// Load reads and decodes the document.
func (s *JSONStore) Load(ctx context.Context) (*model.State, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}

	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, ErrNotInitialized
		}
		return nil, fmt.Errorf("%w: failed to read %s: %v", ErrCorrupt, s.path, err)
	}

	return Decode(data)
}

// Save writes the document to a uniquely named temp file in the same
// directory and renames it over the old one.
func (s *JSONStore) Save(ctx context.Context, state *model.State) error {
	if err := validateContext(ctx); err != nil {
		return err
	}

	data, err := Encode(state)
	if err != nil {
		return err
	}

	tmp := filepath.Join(filepath.Dir(s.path), fmt.Sprintf(".%s.%s.tmp", filepath.Base(s.path), uuid.New().String()))
	if err := os.WriteFile(tmp, data, 0600); err != nil {
		return fmt.Errorf("failed to write state: %w", err)
	}

	if err := os.Rename(tmp, s.path); err != nil {
		_ = os.Remove(tmp)
		return fmt.Errorf("failed to replace state file: %w", err)
	}

	return nil
}

// Location returns the document path.
func (s *JSONStore) Location() string {
	return s.path
}

// Close is a no-op; the file is not held open between calls.
func (s *JSONStore) Close() error {
	return nil
}
