package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/Veraticus/shopimpact/internal/cli"
	"github.com/Veraticus/shopimpact/internal/common"
	"github.com/Veraticus/shopimpact/internal/config"
	"github.com/Veraticus/shopimpact/internal/storage"
	"github.com/Veraticus/shopimpact/internal/tracker"
)

// initTracker opens the configured store and loads the saved state. The
// returned cleanup closes the store.
func initTracker(ctx context.Context) (*tracker.Tracker, func(), error) {
	cfg, err := config.LoadStorage()
	if err != nil {
		return nil, nil, common.NewUserError("invalid storage configuration", err)
	}

	store, err := storage.Open(ctx, cfg.Driver, cfg.Path)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open %s storage at %s: %w", cfg.Driver, cfg.Path, err)
	}
	cleanup := func() {
		if closeErr := store.Close(); closeErr != nil {
			slog.Error("Failed to close storage", "error", closeErr)
		}
	}

	tr := tracker.New(store, tracker.WithLogger(slog.Default()))
	if err := tr.Load(ctx); err != nil {
		cleanup()
		return nil, nil, err
	}

	return tr, cleanup, nil
}

// printOutcome reports a logged purchase: its footprint, any tip and any badge.
func printOutcome(w io.Writer, outcome *tracker.Outcome) {
	p := outcome.Purchase
	label := p.Category
	if p.Brand != "" {
		label += " from " + p.Brand
	}
	fmt.Fprintln(w, cli.FormatSuccess(fmt.Sprintf("Logged %s for %s: %s",
		label, cli.FormatMoney(p.Price), cli.FormatCO2(p.CO2Impact))))

	if outcome.Suggestion != "" {
		fmt.Fprintln(w, cli.FormatInfo("Greener option: "+outcome.Suggestion))
	}
	if outcome.Badge != nil {
		fmt.Fprintln(w, cli.FormatUnlock(*outcome.Badge))
	}
}

// persistWarning prints a save failure that left the change in memory only.
// Other errors are returned unchanged.
func persistWarning(w io.Writer, err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, tracker.ErrPersist) {
		fmt.Fprintln(w, cli.FormatWarning("Your change could not be saved: "+err.Error()))
		return nil
	}
	return err
}
