// Package service defines the interfaces for all application services.
package service

import (
	"context"
	"time"

	"github.com/Veraticus/shopimpact/internal/model"
	"github.com/Veraticus/shopimpact/internal/tracker"
)

// Recorder logs purchases. Importers replay rows through it so every row gets
// the same validation, badge pass and persistence as an interactive entry.
type Recorder interface {
	RecordPurchase(ctx context.Context, category, brand string, price float64) (*tracker.Outcome, error)
}

// SummaryProvider exposes the current footprint digest.
type SummaryProvider interface {
	Summary(now time.Time) tracker.Summary
}

// ReportWriter exports a footprint report to an external destination.
type ReportWriter interface {
	Write(ctx context.Context, summary tracker.Summary, purchases []model.Purchase) error
}

// RetryOptions configures retry behavior for operations.
type RetryOptions struct {
	MaxAttempts  int
	InitialDelay time.Duration
	MaxDelay     time.Duration
	Multiplier   float64
}
