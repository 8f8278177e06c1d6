package tui

import (
	"context"
	"errors"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Veraticus/shopimpact/internal/badge"
	"github.com/Veraticus/shopimpact/internal/model"
	"github.com/Veraticus/shopimpact/internal/testutil"
	"github.com/Veraticus/shopimpact/internal/tracker"
	"github.com/Veraticus/shopimpact/internal/tui/components"
	tuitesting "github.com/Veraticus/shopimpact/internal/tui/testing"
)

func newTestTracker(t *testing.T) *tracker.Tracker {
	t.Helper()
	return testutil.NewTracker(t)
}

// readyModel returns a loaded model sized for the wide layout.
func readyModel(t *testing.T, backend Backend) Model {
	t.Helper()
	cfg := defaultConfig()
	cfg.Clock = testutil.Clock
	cfg.BannerTimeout = time.Millisecond
	m := newModel(context.Background(), backend, cfg)

	next, _ := m.Update(tuitesting.WindowSize(120, 40))
	m = next.(Model)

	msg := m.Init()()
	next, _ = m.Update(msg)
	m = next.(Model)
	require.True(t, m.ready)
	return m
}

func apply(m Model, msgs ...tea.Msg) (Model, tea.Cmd) {
	next, cmd := tuitesting.Apply(m, msgs...)
	return next.(Model), cmd
}

func TestModelLoadingView(t *testing.T) {
	m := newModel(context.Background(), newTestTracker(t), defaultConfig())
	assert.Contains(t, m.View(), "Loading ShopImpact")
}

func TestModelEmptyDashboard(t *testing.T) {
	m := readyModel(t, newTestTracker(t))

	view := tuitesting.StripANSI(m.View())
	assert.Contains(t, view, "No purchases yet")
	assert.Contains(t, view, "Hello, Friend")
	assert.True(t, tuitesting.ContainsInOrder(view, "History", "Badges"))
}

func TestModelLogPurchaseThroughForm(t *testing.T) {
	tr := newTestTracker(t)
	m := readyModel(t, tr)

	m, _ = apply(m, tuitesting.KeyPress("a"))
	require.Equal(t, StateAddPurchase, m.state)

	msgs := tuitesting.Type("Books (Used)")
	msgs = append(msgs, tuitesting.Key(tea.KeyDown))
	msgs = append(msgs, tuitesting.Type("Goodwill")...)
	msgs = append(msgs, tuitesting.Key(tea.KeyDown))
	msgs = append(msgs, tuitesting.Type("100")...)
	m, _ = apply(m, msgs...)

	m, cmd := apply(m, tuitesting.Key(tea.KeyEnter))
	require.NotNil(t, cmd)
	submitted, ok := cmd().(components.PurchaseSubmittedMsg)
	require.True(t, ok)

	m, cmd = apply(m, submitted)
	assert.Equal(t, StateDashboard, m.state)
	require.NotNil(t, cmd)

	recorded, ok := cmd().(purchaseRecordedMsg)
	require.True(t, ok)
	require.NoError(t, recorded.err)

	m, _ = apply(m, recorded)
	require.NotNil(t, m.banner)
	assert.Equal(t, badge.LowCarbon, m.banner.ID)
	assert.Contains(t, m.status, "0.025 kg CO2")

	// Data reload is part of the batch; fetch it directly.
	m, _ = apply(m, m.loadData()())
	assert.Equal(t, 1, m.history.Len())

	view := tuitesting.StripANSI(m.View())
	assert.Contains(t, view, "Badge unlocked: Low Carbon")
	assert.Contains(t, view, "Goodwill")

	require.Len(t, tr.History(), 1)
	assert.Equal(t, []string{badge.LowCarbon}, tr.Profile().Badges)
}

func TestModelBannerIsOneShot(t *testing.T) {
	m := readyModel(t, newTestTracker(t))
	lowCarbon, ok := badge.Lookup(badge.LowCarbon)
	require.True(t, ok)

	outcome := &tracker.Outcome{
		Purchase: model.NewPurchase(testutil.Now, "Books (Used)", "", 100, 0.025),
		Badge:    &lowCarbon,
	}
	m, _ = apply(m, purchaseRecordedMsg{outcome: outcome})
	require.NotNil(t, m.banner)
	firstSeq := m.bannerSeq

	// A stale expiry from an earlier banner does nothing.
	m, _ = apply(m, bannerExpiredMsg{seq: firstSeq - 1})
	assert.NotNil(t, m.banner)

	m, _ = apply(m, bannerExpiredMsg{seq: firstSeq})
	assert.Nil(t, m.banner)

	// No badge on the next purchase means no banner.
	m, _ = apply(m, purchaseRecordedMsg{outcome: &tracker.Outcome{Purchase: outcome.Purchase}})
	assert.Nil(t, m.banner)
	assert.NotContains(t, tuitesting.StripANSI(m.View()), "Badge unlocked")
}

func TestModelBannerDismiss(t *testing.T) {
	m := readyModel(t, newTestTracker(t))
	gamer, _ := badge.Lookup(badge.Gamer)

	m, _ = apply(m, purchaseRecordedMsg{outcome: &tracker.Outcome{Badge: &gamer}})
	require.NotNil(t, m.banner)

	m, _ = apply(m, tuitesting.Key(tea.KeyEnter))
	assert.Nil(t, m.banner)
}

func TestModelRecordErrors(t *testing.T) {
	tests := []struct {
		name       string
		msg        purchaseRecordedMsg
		wantStatus string
		wantView   string
	}{
		{
			name:     "rejected price",
			msg:      purchaseRecordedMsg{err: errors.New("price must be greater than zero: got 0")},
			wantView: "✗ price must be greater than zero",
		},
		{
			name: "saved in memory only",
			msg: purchaseRecordedMsg{
				outcome: &tracker.Outcome{Purchase: model.NewPurchase(testutil.Now, "Coffee", "", 4, 0.044)},
				err:     &tracker.PersistError{Err: errors.New("disk full"), Op: "record purchase", Location: "/tmp/x"},
			},
			wantStatus: "Logged Coffee",
			wantView:   "not saved",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := readyModel(t, newTestTracker(t))
			m, _ = apply(m, tt.msg)
			assert.Contains(t, m.status, tt.wantStatus)
			assert.Contains(t, tuitesting.StripANSI(m.View()), tt.wantView)
		})
	}
}

func TestModelFormCancel(t *testing.T) {
	m := readyModel(t, newTestTracker(t))

	m, _ = apply(m, tuitesting.KeyPress("a"))
	m, _ = apply(m, tuitesting.Type("q")...)
	assert.Equal(t, StateAddPurchase, m.state, "q is typed into the form")

	_, cmd := apply(m, tuitesting.Key(tea.KeyEsc))
	require.NotNil(t, cmd)
	m, _ = apply(m, cmd())
	assert.Equal(t, StateDashboard, m.state)
}

func TestModelViewsAndHelp(t *testing.T) {
	m := readyModel(t, newTestTracker(t))

	m, _ = apply(m, tuitesting.Key(tea.KeyTab))
	assert.Equal(t, ViewBadges, m.view)
	assert.Contains(t, tuitesting.StripANSI(m.View()), "Badges 0/17")

	m, _ = apply(m, tuitesting.Key(tea.KeyTab))
	assert.Equal(t, ViewHistory, m.view)

	m, _ = apply(m, tuitesting.KeyPress("?"))
	assert.Equal(t, StateHelp, m.state)
	assert.Contains(t, tuitesting.StripANSI(m.View()), "log purchase")

	m, _ = apply(m, tuitesting.KeyPress("x"))
	assert.Equal(t, StateDashboard, m.state)
}

func TestModelQuit(t *testing.T) {
	m := readyModel(t, newTestTracker(t))

	m, cmd := apply(m, tuitesting.KeyPress("q"))
	require.NotNil(t, cmd)
	assert.Equal(t, tea.QuitMsg{}, cmd())
	assert.True(t, m.quitting)
	assert.Empty(t, m.View())
}

func TestModelNarrowLayout(t *testing.T) {
	m := readyModel(t, newTestTracker(t))
	wide := tuitesting.VisibleWidth(m.View())
	m, _ = apply(m, tuitesting.WindowSize(70, 30))

	_, side := m.columns()
	assert.Zero(t, side)
	assert.Contains(t, tuitesting.StripANSI(m.View()), "Purchases: 0")
	assert.Greater(t, wide, tuitesting.VisibleWidth(m.View()))
}

func TestRunRequiresBackend(t *testing.T) {
	assert.Error(t, Run(context.Background(), nil))
}
