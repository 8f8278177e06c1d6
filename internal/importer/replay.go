package importer

import (
	"context"
	"errors"
	"log/slog"

	"github.com/Veraticus/shopimpact/internal/model"
	"github.com/Veraticus/shopimpact/internal/service"
	"github.com/Veraticus/shopimpact/internal/tracker"
)

// Report summarizes a replay.
type Report struct {
	// PersistErr is the last save failure. Rows are still recorded in memory
	// when saving fails.
	PersistErr error
	Rejected   []*RowError
	Unlocked   []model.Badge
	Recorded   int
}

// Replayer records rows one by one through a Recorder so imported purchases
// get the same validation, badge pass and save as interactive ones.
type Replayer struct {
	recorder service.Recorder
	logger   *slog.Logger
	onRow    func(Row, *tracker.Outcome, error)
}

// NewReplayer creates a replayer over recorder.
func NewReplayer(recorder service.Recorder, logger *slog.Logger) *Replayer {
	if logger == nil {
		logger = slog.Default()
	}
	return &Replayer{recorder: recorder, logger: logger}
}

// OnRow registers a callback invoked after every row, e.g. to advance a
// progress bar. outcome is nil when the row was rejected.
func (r *Replayer) OnRow(fn func(row Row, outcome *tracker.Outcome, err error)) {
	r.onRow = fn
}

// Replay records rows in order. It stops early only when ctx is cancelled,
// returning the partial report together with ctx.Err().
func (r *Replayer) Replay(ctx context.Context, rows []Row) (Report, error) {
	var report Report

	for _, row := range rows {
		if err := ctx.Err(); err != nil {
			return report, err
		}

		outcome, err := r.recorder.RecordPurchase(ctx, row.Category, row.Brand, row.Price)
		if r.onRow != nil {
			r.onRow(row, outcome, err)
		}

		if outcome == nil {
			r.logger.Debug("Rejected row", "line", row.Line, "source", row.Source, "error", err)
			report.Rejected = append(report.Rejected, &RowError{Line: row.Line, Err: err})
			continue
		}

		report.Recorded++
		if outcome.Badge != nil {
			report.Unlocked = append(report.Unlocked, *outcome.Badge)
		}
		if errors.Is(err, tracker.ErrPersist) {
			r.logger.Warn("Failed to save imported purchase", "line", row.Line, "error", err)
			report.PersistErr = err
		}
	}

	return report, nil
}
