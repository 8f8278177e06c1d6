package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/Veraticus/shopimpact/internal/model"

	_ "github.com/mattn/go-sqlite3" // cgo SQLite driver
	_ "modernc.org/sqlite"          // pure Go SQLite driver
)

// SQLiteStorage implements Store on top of SQLite. The document is spread over
// the purchases, profile and badges tables and rewritten in one transaction.
type SQLiteStorage struct {
	db     *sql.DB
	dbPath string
}

// NewSQLiteStorage creates a new SQLite storage instance backed by the cgo
// driver.
func NewSQLiteStorage(dbPath string) (*SQLiteStorage, error) {
	return openSQLite("sqlite3", dbPath, dbPath+"?_journal_mode=WAL&_busy_timeout=5000")
}

// NewPureSQLiteStorage is NewSQLiteStorage on the pure Go driver, for builds
// without cgo. Both drivers read the same database file.
func NewPureSQLiteStorage(dbPath string) (*SQLiteStorage, error) {
	dsn := "file:" + dbPath + "?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)"
	if dbPath == ":memory:" {
		dsn = ":memory:"
	}
	return openSQLite("sqlite", dbPath, dsn)
}

func openSQLite(driverName, dbPath, dsn string) (*SQLiteStorage, error) {
	if err := validateString(dbPath, "dbPath"); err != nil {
		return nil, err
	}

	if dbPath != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(dbPath), 0750); err != nil {
			return nil, fmt.Errorf("failed to create database directory: %w", err)
		}
	}

	db, err := sql.Open(driverName, dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// A single connection keeps :memory: databases alive across calls.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)

	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return &SQLiteStorage{
		db:     db,
		dbPath: dbPath,
	}, nil
}

// Close closes the database connection.
func (s *SQLiteStorage) Close() error {
	return s.db.Close()
}

// Location returns the database path.
func (s *SQLiteStorage) Location() string {
	return s.dbPath
}

// Load reads the full state.
func (s *SQLiteStorage) Load(ctx context.Context) (*model.State, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	var rec profileRecord
	err = tx.QueryRowContext(ctx, `
		SELECT name, monthly_budget, co2_goal, joined_date FROM profile WHERE id = 1
	`).Scan(&rec.Name, &rec.MonthlyBudget, &rec.CO2Goal, &rec.JoinedDate)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotInitialized
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read profile: %w", err)
	}

	rec.Badges, err = s.loadBadges(ctx, tx)
	if err != nil {
		return nil, err
	}

	profile, err := fromProfileRecord(rec)
	if err != nil {
		return nil, fmt.Errorf("%w: profile: %v", ErrCorrupt, err)
	}

	purchases, err := s.loadPurchases(ctx, tx)
	if err != nil {
		return nil, err
	}

	state := &model.State{Purchases: purchases, Profile: profile}
	if err := validateState(state); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCorrupt, err)
	}
	return state, nil
}

func (s *SQLiteStorage) loadBadges(ctx context.Context, tx *sql.Tx) ([]string, error) {
	rows, err := tx.QueryContext(ctx, `SELECT badge_id FROM badges ORDER BY position`)
	if err != nil {
		return nil, fmt.Errorf("failed to query badges: %w", err)
	}
	defer func() { _ = rows.Close() }()

	badges := []string{}
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("failed to scan badge: %w", err)
		}
		badges = append(badges, id)
	}
	return badges, rows.Err()
}

func (s *SQLiteStorage) loadPurchases(ctx context.Context, tx *sql.Tx) ([]model.Purchase, error) {
	rows, err := tx.QueryContext(ctx, `
		SELECT date, type, brand, price, co2_impact FROM purchases ORDER BY seq
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query purchases: %w", err)
	}
	defer func() { _ = rows.Close() }()

	purchases := []model.Purchase{}
	for rows.Next() {
		var rec purchaseRecord
		if err := rows.Scan(&rec.Date, &rec.Type, &rec.Brand, &rec.Price, &rec.CO2Impact); err != nil {
			return nil, fmt.Errorf("failed to scan purchase: %w", err)
		}
		p, err := fromPurchaseRecord(rec)
		if err != nil {
			return nil, fmt.Errorf("%w: purchase %d: %v", ErrCorrupt, len(purchases), err)
		}
		purchases = append(purchases, p)
	}
	return purchases, rows.Err()
}

// Save rewrites every table inside one transaction.
func (s *SQLiteStorage) Save(ctx context.Context, state *model.State) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateState(state); err != nil {
		return err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}

	if err := s.saveTx(ctx, tx, state); err != nil {
		_ = tx.Rollback()
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit state: %w", err)
	}
	return nil
}

func (s *SQLiteStorage) saveTx(ctx context.Context, tx *sql.Tx, state *model.State) error {
	for _, table := range []string{"purchases", "badges"} {
		if _, err := tx.ExecContext(ctx, "DELETE FROM "+table); err != nil {
			return fmt.Errorf("failed to clear %s: %w", table, err)
		}
	}

	rec := toProfileRecord(state.Profile)
	_, err := tx.ExecContext(ctx, `
		INSERT INTO profile (id, name, monthly_budget, co2_goal, joined_date)
		VALUES (1, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			name = excluded.name,
			monthly_budget = excluded.monthly_budget,
			co2_goal = excluded.co2_goal,
			joined_date = excluded.joined_date
	`, rec.Name, rec.MonthlyBudget, rec.CO2Goal, rec.JoinedDate)
	if err != nil {
		return fmt.Errorf("failed to save profile: %w", err)
	}

	badgeStmt, err := tx.PrepareContext(ctx, `INSERT INTO badges (position, badge_id) VALUES (?, ?)`)
	if err != nil {
		return fmt.Errorf("failed to prepare badge insert: %w", err)
	}
	defer func() { _ = badgeStmt.Close() }()

	for i, id := range rec.Badges {
		if _, err := badgeStmt.ExecContext(ctx, i, id); err != nil {
			return fmt.Errorf("failed to save badge %q: %w", id, err)
		}
	}

	purchaseStmt, err := tx.PrepareContext(ctx, `
		INSERT INTO purchases (seq, date, type, brand, price, co2_impact) VALUES (?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return fmt.Errorf("failed to prepare purchase insert: %w", err)
	}
	defer func() { _ = purchaseStmt.Close() }()

	for i, p := range state.Purchases {
		pr := toPurchaseRecord(p)
		if _, err := purchaseStmt.ExecContext(ctx, i, pr.Date, pr.Type, pr.Brand, pr.Price, pr.CO2Impact); err != nil {
			return fmt.Errorf("failed to save purchase %d: %w", i, err)
		}
	}

	return nil
}
