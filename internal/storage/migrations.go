package storage

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
)

// ExpectedSchemaVersion is the PRAGMA user_version a migrated database reports.
const ExpectedSchemaVersion = 2

// Migration is one schema step. Statements run in a single transaction
// together with the user_version bump.
type Migration struct {
	Description string
	Statements  []string
	Version     int
}

var migrations = []Migration{
	{
		Version:     1,
		Description: "Purchases, single-row profile and ordered badges",
		Statements: []string{
			`CREATE TABLE IF NOT EXISTS purchases (
				seq INTEGER PRIMARY KEY,
				date TEXT NOT NULL,
				type TEXT NOT NULL,
				brand TEXT NOT NULL DEFAULT '',
				price REAL NOT NULL CHECK (price >= 0),
				co2_impact REAL NOT NULL CHECK (co2_impact >= 0)
			)`,
			`CREATE TABLE IF NOT EXISTS profile (
				id INTEGER PRIMARY KEY CHECK (id = 1),
				name TEXT NOT NULL,
				monthly_budget REAL NOT NULL,
				co2_goal REAL NOT NULL,
				joined_date TEXT NOT NULL
			)`,
			`CREATE TABLE IF NOT EXISTS badges (
				position INTEGER PRIMARY KEY,
				badge_id TEXT NOT NULL UNIQUE
			)`,
		},
	},
	{
		Version:     2,
		Description: "Index purchases by date and type for summaries",
		Statements: []string{
			`CREATE INDEX IF NOT EXISTS idx_purchases_date ON purchases(date)`,
			`CREATE INDEX IF NOT EXISTS idx_purchases_type ON purchases(type)`,
		},
	},
}

// Migrate brings the schema up to ExpectedSchemaVersion. Already applied
// steps are skipped, so it is safe to call on every open.
func (s *SQLiteStorage) Migrate(ctx context.Context) error {
	if err := validateContext(ctx); err != nil {
		return err
	}

	current, err := schemaVersion(ctx, s.db)
	if err != nil {
		return err
	}
	if current > ExpectedSchemaVersion {
		return fmt.Errorf("database schema version %d is newer than supported version %d", current, ExpectedSchemaVersion)
	}

	for _, m := range migrations {
		if m.Version <= current {
			continue
		}
		if err := applyMigration(ctx, s.db, m); err != nil {
			return err
		}
		slog.Debug("Applied migration", "version", m.Version, "description", m.Description)
	}

	final, err := schemaVersion(ctx, s.db)
	if err != nil {
		return err
	}
	if final != ExpectedSchemaVersion {
		return fmt.Errorf("database schema version mismatch: expected %d, got %d", ExpectedSchemaVersion, final)
	}
	return nil
}

func schemaVersion(ctx context.Context, db *sql.DB) (int, error) {
	var version int
	if err := db.QueryRowContext(ctx, "PRAGMA user_version").Scan(&version); err != nil {
		return 0, fmt.Errorf("failed to read schema version: %w", err)
	}
	return version, nil
}

func applyMigration(ctx context.Context, db *sql.DB, m Migration) (err error) {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin migration %d: %w", m.Version, err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	for _, stmt := range m.Statements {
		if _, err = tx.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("migration %d failed: %w", m.Version, err)
		}
	}
	// PRAGMA does not accept bound parameters.
	if _, err = tx.ExecContext(ctx, fmt.Sprintf("PRAGMA user_version = %d", m.Version)); err != nil {
		return fmt.Errorf("failed to set schema version %d: %w", m.Version, err)
	}
	if err = tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit migration %d: %w", m.Version, err)
	}
	return nil
}
