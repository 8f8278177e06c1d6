package tui

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"
)

// Recorder writes every dashboard update to a JSON event log and saves each
// rendered frame as a text file, for debugging layouts after the fact.
type Recorder struct {
	file   *os.File
	logger *slog.Logger
	dir    string
	frames int
}

// NewRecorder records into dir, or into a fresh temporary directory when dir
// is empty.
func NewRecorder(dir string) (*Recorder, error) {
	var err error
	if dir == "" {
		dir, err = os.MkdirTemp("", "shopimpact-tui-")
	} else {
		err = os.MkdirAll(dir, 0o750)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to create recording directory: %w", err)
	}

	file, err := os.Create(filepath.Join(dir, "events.jsonl"))
	if err != nil {
		return nil, fmt.Errorf("failed to create event log: %w", err)
	}

	r := &Recorder{
		file:   file,
		logger: slog.New(slog.NewJSONHandler(file, &slog.HandlerOptions{Level: slog.LevelDebug})),
		dir:    dir,
	}
	r.logger.Info("recording started", "dir", dir)
	return r, nil
}

// Dir returns the recording directory.
func (r *Recorder) Dir() string {
	return r.dir
}

// Frames returns the number of frames recorded so far.
func (r *Recorder) Frames() int {
	return r.frames
}

// RecordState logs msg and the model it produced, and saves the frame.
func (r *Recorder) RecordState(m Model, msg tea.Msg) {
	r.frames++
	view := m.View()

	attrs := []any{
		"frame", r.frames,
		"msg_type", fmt.Sprintf("%T", msg),
		"state", int(m.state),
		"view", int(m.view),
		"ready", m.ready,
		"purchases", m.history.Len(),
	}
	if m.banner != nil {
		attrs = append(attrs, "banner", m.banner.ID)
	}
	if m.lastError != nil {
		attrs = append(attrs, "error", m.lastError.Error())
	}
	r.logger.Debug("update", attrs...)

	name := filepath.Join(r.dir, fmt.Sprintf("frame-%04d.txt", r.frames))
	if err := os.WriteFile(name, []byte(view), 0o600); err != nil {
		r.logger.Warn("failed to save frame", "frame", r.frames, "error", err)
	}
}

// Close flushes and closes the event log.
func (r *Recorder) Close() error {
	r.logger.Info("recording complete", "frames", r.frames)
	return r.file.Close()
}
