package sheets

import (
	"context"
	"slices"
	"sync"

	"github.com/Veraticus/shopimpact/internal/model"
	"github.com/Veraticus/shopimpact/internal/service"
	"github.com/Veraticus/shopimpact/internal/tracker"
)

// WriteCall is one recorded export.
type WriteCall struct {
	Err       error
	Purchases []model.Purchase
	Summary   tracker.Summary
}

// MockWriter records exports instead of sending them.
type MockWriter struct {
	err   error
	calls []WriteCall
	mu    sync.Mutex
}

var _ service.ReportWriter = (*MockWriter)(nil)

// NewMockWriter returns a MockWriter that accepts every export.
func NewMockWriter() *MockWriter {
	return &MockWriter{}
}

// Write records the export and returns the configured error.
func (m *MockWriter) Write(_ context.Context, summary tracker.Summary, purchases []model.Purchase) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls = append(m.calls, WriteCall{Summary: summary, Purchases: purchases, Err: m.err})
	return m.err
}

// FailWith makes later writes return err; nil restores success.
func (m *MockWriter) FailWith(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.err = err
}

// Calls returns the recorded exports in order.
func (m *MockWriter) Calls() []WriteCall {
	m.mu.Lock()
	defer m.mu.Unlock()
	return slices.Clone(m.calls)
}
