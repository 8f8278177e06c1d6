package tui

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/Veraticus/shopimpact/internal/tui/components"
)

// recordTimeout bounds a single RecordPurchase including its persistence write.
const recordTimeout = 10 * time.Second

// loadData snapshots history, unlocked badges and the summary.
func (m Model) loadData() tea.Cmd {
	backend := m.backend
	now := m.config.Clock()
	return func() tea.Msg {
		return dataLoadedMsg{
			history:  backend.History(),
			unlocked: backend.Profile().Badges,
			summary:  backend.Summary(now),
		}
	}
}

// recordPurchase logs a submitted form entry.
func (m Model) recordPurchase(sub components.PurchaseSubmittedMsg) tea.Cmd {
	backend := m.backend
	parent := m.ctx
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(parent, recordTimeout)
		defer cancel()

		outcome, err := backend.RecordPurchase(ctx, sub.Category, sub.Brand, sub.Price)
		return purchaseRecordedMsg{outcome: outcome, err: err}
	}
}

// expireBanner hides banner seq after the configured timeout.
func (m Model) expireBanner(seq int) tea.Cmd {
	return tea.Tick(m.config.BannerTimeout, func(time.Time) tea.Msg {
		return bannerExpiredMsg{seq: seq}
	})
}
