package storage

import (
	"context"
	"errors"
	"fmt"

	"github.com/Veraticus/shopimpact/internal/model"
)

// Store errors.
var (
	ErrNotInitialized = errors.New("no saved state")
	ErrCorrupt        = errors.New("saved state is corrupt")
	ErrUnknownDriver  = errors.New("unknown storage driver")
)

// Supported drivers.
const (
	DriverJSON       = "json"
	DriverSQLite     = "sqlite"
	DriverSQLitePure = "sqlite-pure"
)

// IsSQLite reports whether driver keeps state in a SQLite database.
func IsSQLite(driver string) bool {
	return driver == DriverSQLite || driver == DriverSQLitePure
}

// Store persists the whole application state as one document. Every Save is a
// full-state write; there are no partial updates.
type Store interface {
	// Load returns the saved state, ErrNotInitialized when nothing has been
	// saved yet, or an error wrapping ErrCorrupt when the data cannot be read back.
	Load(ctx context.Context) (*model.State, error)
	// Save replaces the saved state.
	Save(ctx context.Context, state *model.State) error
	// Location describes where the state lives.
	Location() string
	Close() error
}

// Open creates a store for driver at path. SQLite stores are migrated before
// they are returned.
func Open(ctx context.Context, driver, path string) (Store, error) {
	switch driver {
	case DriverJSON, "":
		return NewJSONStore(path)
	case DriverSQLite, DriverSQLitePure:
		open := NewSQLiteStorage
		if driver == DriverSQLitePure {
			open = NewPureSQLiteStorage
		}
		store, err := open(path)
		if err != nil {
			return nil, err
		}
		if err := store.Migrate(ctx); err != nil {
			_ = store.Close()
			return nil, fmt.Errorf("failed to run migrations: %w", err)
		}
		return store, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownDriver, driver)
	}
}
