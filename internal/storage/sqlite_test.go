package storage

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/Veraticus/shopimpact/internal/model"
)

// Helper function to create test storage.
func createTestStorage(t *testing.T) (*SQLiteStorage, func()) {
	t.Helper()
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "test.db")

	store, err := NewSQLiteStorage(dbPath)
	if err != nil {
		t.Fatalf("Failed to create storage: %v", err)
	}

	ctx := context.Background()
	if err := store.Migrate(ctx); err != nil {
		_ = store.Close()
		t.Fatalf("Failed to migrate: %v", err)
	}

	return store, func() { _ = store.Close() }
}

// Helper function to create a test state with count purchases.
func createTestState(count int) *model.State {
	base := time.Date(2026, 10, 18, 9, 0, 0, 0, time.UTC)
	state := model.NewState(base.Add(-time.Hour))

	categories := []string{"Books (Used)", "Electronics", "Coffee", "Video Games"}
	for i := 0; i < count; i++ {
		cat := categories[i%len(categories)]
		price := float64(i+1) * 125.5
		state.Purchases = append(state.Purchases,
			model.NewPurchase(base.Add(time.Duration(i)*time.Minute), cat, "Brand", price, price/100))
	}
	if count > 0 {
		state.Profile.Badges = []string{"first_step", "low_carbon"}
	}
	return state
}

func TestSQLiteStorage_LoadEmpty(t *testing.T) {
	store, cleanup := createTestStorage(t)
	defer cleanup()

	_, err := store.Load(context.Background())
	if !errors.Is(err, ErrNotInitialized) {
		t.Errorf("Load() on empty database error = %v, want ErrNotInitialized", err)
	}
}

func TestSQLiteStorage_SaveLoad(t *testing.T) {
	tests := []struct {
		name  string
		count int
	}{
		{name: "no purchases", count: 0},
		{name: "one purchase", count: 1},
		{name: "many purchases", count: 25},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store, cleanup := createTestStorage(t)
			defer cleanup()
			ctx := context.Background()

			want := createTestState(tt.count)
			if err := store.Save(ctx, want); err != nil {
				t.Fatalf("Save() error = %v", err)
			}

			got, err := store.Load(ctx)
			if err != nil {
				t.Fatalf("Load() error = %v", err)
			}

			if len(got.Purchases) != tt.count {
				t.Fatalf("Load() returned %d purchases, want %d", len(got.Purchases), tt.count)
			}
			for i := range want.Purchases {
				if got.Purchases[i] != want.Purchases[i] {
					t.Errorf("purchase %d = %+v, want %+v", i, got.Purchases[i], want.Purchases[i])
				}
			}
			if got.Profile.Name != want.Profile.Name ||
				got.Profile.MonthlyBudget != want.Profile.MonthlyBudget ||
				got.Profile.CO2Goal != want.Profile.CO2Goal ||
				!got.Profile.JoinedDate.Equal(want.Profile.JoinedDate) {
				t.Errorf("profile = %+v, want %+v", got.Profile, want.Profile)
			}
			if len(got.Profile.Badges) != len(want.Profile.Badges) {
				t.Fatalf("badges = %v, want %v", got.Profile.Badges, want.Profile.Badges)
			}
			for i := range want.Profile.Badges {
				if got.Profile.Badges[i] != want.Profile.Badges[i] {
					t.Errorf("badge %d = %q, want %q", i, got.Profile.Badges[i], want.Profile.Badges[i])
				}
			}
		})
	}
}

func TestSQLiteStorage_SaveReplacesState(t *testing.T) {
	store, cleanup := createTestStorage(t)
	defer cleanup()
	ctx := context.Background()

	if err := store.Save(ctx, createTestState(10)); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	reset := model.NewState(time.Date(2026, 10, 19, 0, 0, 0, 0, time.UTC))
	if err := store.Save(ctx, reset); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	got, err := store.Load(ctx)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if len(got.Purchases) != 0 {
		t.Errorf("expected purchases to be cleared, got %d", len(got.Purchases))
	}
	if len(got.Profile.Badges) != 0 {
		t.Errorf("expected badges to be cleared, got %v", got.Profile.Badges)
	}
	if !got.Profile.JoinedDate.Equal(reset.Profile.JoinedDate) {
		t.Errorf("joined date = %v, want %v", got.Profile.JoinedDate, reset.Profile.JoinedDate)
	}
}

func TestSQLiteStorage_SaveInvalidStateLeavesOldState(t *testing.T) {
	store, cleanup := createTestStorage(t)
	defer cleanup()
	ctx := context.Background()

	if err := store.Save(ctx, createTestState(3)); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	bad := createTestState(3)
	bad.Profile.Badges = []string{"gamer", "gamer"}
	if err := store.Save(ctx, bad); !errors.Is(err, ErrInvalidProfile) {
		t.Fatalf("Save() error = %v, want ErrInvalidProfile", err)
	}

	got, err := store.Load(ctx)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if len(got.Profile.Badges) != 2 {
		t.Errorf("expected previous badges to survive, got %v", got.Profile.Badges)
	}
}

func TestSQLiteStorage_Validation(t *testing.T) {
	store, cleanup := createTestStorage(t)
	defer cleanup()

	//nolint:staticcheck // testing nil context handling
	if _, err := store.Load(nil); !errors.Is(err, ErrNilContext) {
		t.Errorf("Load(nil) error = %v, want ErrNilContext", err)
	}
	if err := store.Save(context.Background(), nil); !errors.Is(err, ErrNilParameter) {
		t.Errorf("Save(nil) error = %v, want ErrNilParameter", err)
	}
	if _, err := NewSQLiteStorage("  "); !errors.Is(err, ErrEmptyString) {
		t.Errorf("NewSQLiteStorage(blank) error = %v, want ErrEmptyString", err)
	}
}

func TestSQLiteStorage_InMemory(t *testing.T) {
	store, err := NewSQLiteStorage(":memory:")
	if err != nil {
		t.Fatalf("Failed to create storage: %v", err)
	}
	defer func() { _ = store.Close() }()
	ctx := context.Background()

	if err := store.Migrate(ctx); err != nil {
		t.Fatalf("Migrate() error = %v", err)
	}
	if err := store.Save(ctx, createTestState(2)); err != nil {
		t.Fatalf("Save() error = %v", err)
	}
	got, err := store.Load(ctx)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if len(got.Purchases) != 2 {
		t.Errorf("expected 2 purchases, got %d", len(got.Purchases))
	}
	if store.Location() != ":memory:" {
		t.Errorf("Location() = %q", store.Location())
	}
}

func TestSQLiteStorage_DriversShareFile(t *testing.T) {
	ctx := context.Background()
	dbPath := filepath.Join(t.TempDir(), "shared.db")

	cgoStore, err := Open(ctx, DriverSQLite, dbPath)
	if err != nil {
		t.Fatalf("Open(%s) error = %v", DriverSQLite, err)
	}
	if err := cgoStore.Save(ctx, createTestState(3)); err != nil {
		t.Fatalf("Save() error = %v", err)
	}
	if err := cgoStore.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}

	pureStore, err := Open(ctx, DriverSQLitePure, dbPath)
	if err != nil {
		t.Fatalf("Open(%s) error = %v", DriverSQLitePure, err)
	}
	defer func() { _ = pureStore.Close() }()

	got, err := pureStore.Load(ctx)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if len(got.Purchases) != 3 {
		t.Errorf("Load() purchases = %d, want 3", len(got.Purchases))
	}
}
