// Package tracker owns the purchase history and profile for one session and
// applies every mutation to them: logging purchases, unlocking badges,
// editing the profile and resetting. Each mutation ends in exactly one
// full-state write to the configured store.
package tracker

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"strings"
	"sync"
	"time"

	"github.com/Veraticus/shopimpact/internal/badge"
	"github.com/Veraticus/shopimpact/internal/impact"
	"github.com/Veraticus/shopimpact/internal/model"
	"github.com/Veraticus/shopimpact/internal/storage"
)

// Tracker errors.
var (
	ErrInvalidProfile = errors.New("invalid profile")
	ErrPersist        = errors.New("failed to persist state")
)

// PersistError reports a failed write. The in-memory change it accompanies has
// already been applied and stays in effect.
type PersistError struct {
	Err      error
	Op       string
	Location string
}

func (e *PersistError) Error() string {
	return fmt.Sprintf("%s: %s (%s): %v", ErrPersist, e.Op, e.Location, e.Err)
}

// Unwrap exposes both ErrPersist and the underlying storage error.
func (e *PersistError) Unwrap() []error {
	return []error{ErrPersist, e.Err}
}

// Outcome is the result of a recorded purchase.
type Outcome struct {
	// Badge is set only when this purchase unlocked a badge.
	Badge      *model.Badge
	Suggestion string
	Purchase   model.Purchase
}

// Option configures a Tracker.
type Option func(*Tracker)

// WithClock overrides the time source used to stamp purchases and profiles.
func WithClock(clock func() time.Time) Option {
	return func(t *Tracker) {
		if clock != nil {
			t.clock = clock
		}
	}
}

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) Option {
	return func(t *Tracker) {
		if logger != nil {
			t.logger = logger
		}
	}
}

// Tracker serializes all mutations through a mutex so the CLI, dashboard and
// metrics server can share one instance.
type Tracker struct {
	store  storage.Store
	clock  func() time.Time
	logger *slog.Logger
	state  *model.State
	mu     sync.Mutex
}

// New creates a tracker over store holding a default state until Load is called.
func New(store storage.Store, opts ...Option) *Tracker {
	t := &Tracker{
		store:  store,
		clock:  time.Now,
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(t)
	}
	t.state = model.NewState(t.clock())
	return t
}

// Load replaces the in-memory state with the saved one. A missing, unreadable
// or corrupt document leaves the tracker on defaults; only a cancelled context
// is reported as an error.
func (t *Tracker) Load(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	state, err := t.store.Load(ctx)
	switch {
	case err == nil:
		t.state = state
		t.logger.Debug("Loaded saved state",
			"location", t.store.Location(),
			"purchases", len(state.Purchases),
			"badges", len(state.Profile.Badges))
	case errors.Is(err, storage.ErrNotInitialized):
		t.state = model.NewState(t.clock())
		t.logger.Debug("No saved state, starting fresh", "location", t.store.Location())
	default:
		t.state = model.NewState(t.clock())
		t.logger.Warn("Saved state could not be read, starting from defaults",
			"location", t.store.Location(),
			"error", err)
	}
	return nil
}

// RecordPurchase logs a purchase, runs one badge evaluation pass and saves.
// Invalid prices, including ones whose estimate overflows, are rejected before
// anything changes. A *PersistError is
// returned together with a valid Outcome when only the save failed.
func (t *Tracker) RecordPurchase(ctx context.Context, category, brand string, price float64) (*Outcome, error) {
	co2, err := impact.CheckedEstimate(category, price)
	if err != nil {
		return nil, err
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	purchase := model.NewPurchase(t.clock(), category, brand, price, co2)
	t.state.Purchases = append(t.state.Purchases, purchase)

	outcome := &Outcome{Purchase: purchase}
	outcome.Suggestion, _ = impact.Suggest(category)

	if id, ok := badge.Evaluate(t.state.Purchases, t.state.Profile.Badges); ok {
		if b, found := badge.Lookup(id); found && t.state.Profile.Unlock(id) {
			outcome.Badge = &b
			t.logger.Info("Badge unlocked", "badge", id, "purchases", len(t.state.Purchases))
		}
	}

	t.logger.Debug("Recorded purchase",
		"category", category,
		"price", price,
		"co2_impact", purchase.CO2Impact)

	if err := t.persist(ctx, "record purchase"); err != nil {
		return outcome, err
	}
	return outcome, nil
}

// UpdateProfile changes the display name and the advisory targets.
func (t *Tracker) UpdateProfile(ctx context.Context, name string, monthlyBudget, co2Goal float64) (model.Profile, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return model.Profile{}, fmt.Errorf("%w: name cannot be empty", ErrInvalidProfile)
	}
	if !nonNegative(monthlyBudget) {
		return model.Profile{}, fmt.Errorf("%w: monthly budget must be a non-negative number", ErrInvalidProfile)
	}
	if !nonNegative(co2Goal) {
		return model.Profile{}, fmt.Errorf("%w: CO2 goal must be a non-negative number", ErrInvalidProfile)
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	t.state.Profile.Name = name
	t.state.Profile.MonthlyBudget = monthlyBudget
	t.state.Profile.CO2Goal = co2Goal

	return t.state.Profile.Clone(), t.persist(ctx, "update profile")
}

// ResetAll clears history and badges together and restores the default
// profile with a fresh joined date.
func (t *Tracker) ResetAll(ctx context.Context) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.state = model.NewState(t.clock())
	t.logger.Info("Reset all data")

	return t.persist(ctx, "reset")
}

// History returns a copy of the purchase history, oldest first.
func (t *Tracker) History() []model.Purchase {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.state.Clone().Purchases
}

// Profile returns a copy of the profile.
func (t *Tracker) Profile() model.Profile {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.state.Profile.Clone()
}

// Snapshot returns a deep copy of the whole state.
func (t *Tracker) Snapshot() *model.State {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.state.Clone()
}

// Suggest returns advisory text for category, if any.
func (t *Tracker) Suggest(category string) (string, bool) {
	return impact.Suggest(category)
}

// Multiplier returns the carbon multiplier for category.
func (t *Tracker) Multiplier(category string) float64 {
	return impact.Multiplier(category)
}

// Location describes where the state is saved.
func (t *Tracker) Location() string {
	return t.store.Location()
}

// persist must be called with mu held.
func (t *Tracker) persist(ctx context.Context, op string) error {
	if err := t.store.Save(ctx, t.state); err != nil {
		t.logger.Warn("Failed to save state, keeping changes in memory",
			"op", op,
			"location", t.store.Location(),
			"error", err)
		return &PersistError{Op: op, Location: t.store.Location(), Err: err}
	}
	return nil
}

func nonNegative(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0) && f >= 0
}
