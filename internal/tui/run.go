// Package tui implements the interactive dashboard: purchase history, badge
// grid, footprint gauges and a form for logging purchases.
package tui

import (
	"context"
	"errors"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
)

// Run starts the dashboard and blocks until the user quits or ctx is cancelled.
func Run(ctx context.Context, backend Backend, opts ...Option) error {
	if backend == nil {
		return fmt.Errorf("backend is required")
	}

	cfg := defaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}

	m := newModel(ctx, backend, cfg)
	if cfg.Record {
		rec, err := NewRecorder("")
		if err != nil {
			return err
		}
		m.recorder = rec
		defer func() {
			_ = rec.Close()
			fmt.Fprintf(os.Stderr, "Dashboard recording saved to %s\n", rec.Dir())
		}()
	}

	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(ctx))
	if _, err := p.Run(); err != nil {
		if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
			return nil
		}
		return fmt.Errorf("dashboard failed: %w", err)
	}
	return nil
}
