// Package testutil builds real trackers over throwaway stores for tests.
//
// Example:
//
//	tr := testutil.NewTracker(t, testutil.WithDriver(storage.DriverSQLite))
//	testutil.Seed(t, tr, testutil.EcoPurchases(5)...)
package testutil

import (
	"context"
	"fmt"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/Veraticus/shopimpact/internal/storage"
	"github.com/Veraticus/shopimpact/internal/tracker"
)

// Now is the instant test trackers stamp purchases with.
var Now = time.Date(2026, 10, 18, 9, 30, 0, 0, time.UTC)

// Clock returns Now.
func Clock() time.Time { return Now }

// Purchase is a purchase to seed.
type Purchase struct {
	Category string
	Brand    string
	Price    float64
}

type options struct {
	clock  func() time.Time
	driver string
}

// Option configures NewTracker.
type Option func(*options)

// WithDriver selects the storage backend. The default is JSON.
func WithDriver(driver string) Option {
	return func(o *options) { o.driver = driver }
}

// WithClock overrides the fixed clock.
func WithClock(clock func() time.Time) Option {
	return func(o *options) { o.clock = clock }
}

// NewTracker returns a loaded tracker over a fresh store in t.TempDir. The
// store is closed when the test ends.
func NewTracker(t *testing.T, opts ...Option) *tracker.Tracker {
	t.Helper()

	o := options{clock: Clock, driver: storage.DriverJSON}
	for _, opt := range opts {
		opt(&o)
	}

	path := filepath.Join(t.TempDir(), "shopimpact.json")
	if storage.IsSQLite(o.driver) {
		path = filepath.Join(t.TempDir(), "shopimpact.db")
	}

	ctx := context.Background()
	store, err := storage.Open(ctx, o.driver, path)
	require.NoError(t, err)
	t.Cleanup(func() {
		if closeErr := store.Close(); closeErr != nil {
			t.Logf("Failed to close store: %v", closeErr)
		}
	})

	tr := tracker.New(store, tracker.WithClock(o.clock))
	require.NoError(t, tr.Load(ctx))
	return tr
}

// Seed records purchases in order and fails the test on any error.
func Seed(t *testing.T, tr *tracker.Tracker, purchases ...Purchase) {
	t.Helper()
	for i, p := range purchases {
		_, err := tr.RecordPurchase(context.Background(), p.Category, p.Brand, p.Price)
		require.NoError(t, err, "seeding purchase %d (%s)", i, p.Category)
	}
}

// EcoPurchases returns n used-book purchases.
func EcoPurchases(n int) []Purchase {
	out := make([]Purchase, n)
	for i := range out {
		out[i] = Purchase{Category: "Books (Used)", Brand: fmt.Sprintf("Thrift %d", i+1), Price: 20}
	}
	return out
}

// RegularPurchases returns n electronics purchases.
func RegularPurchases(n int) []Purchase {
	out := make([]Purchase, n)
	for i := range out {
		out[i] = Purchase{Category: "Electronics", Brand: fmt.Sprintf("Shop %d", i+1), Price: 100}
	}
	return out
}
