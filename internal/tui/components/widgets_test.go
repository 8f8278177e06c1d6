package components

import (
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"

	"github.com/Veraticus/shopimpact/internal/badge"
	"github.com/Veraticus/shopimpact/internal/model"
	"github.com/Veraticus/shopimpact/internal/tracker"
	"github.com/Veraticus/shopimpact/internal/tui/themes"
)

func TestHistoryModel(t *testing.T) {
	m := NewHistoryModel(themes.Default)
	assert.Contains(t, m.View(), "No purchases yet")

	now := time.Date(2026, 10, 18, 9, 30, 0, 0, time.UTC)
	m.SetPurchases([]model.Purchase{
		model.NewPurchase(now, "Electronics", "Acme", 5000, 90),
		model.NewPurchase(now.Add(time.Minute), "Books (Used)", "Goodwill", 100, 0.025),
	})
	m.Resize(100, 10)

	assert.Equal(t, 2, m.Len())
	rows := m.table.Rows()
	assert.Len(t, rows, 2)
	assert.Contains(t, rows[0][1], "Books (Used)", "newest purchase first")
	assert.Equal(t, "0.025", rows[0][4])
	assert.Equal(t, "🌿", rows[0][5])
	assert.Equal(t, "", rows[1][5])
	assert.Equal(t, "5000.00", rows[1][3])
}

func TestBadgeGridModel(t *testing.T) {
	m := NewBadgeGridModel(themes.Default)
	m.Resize(badgeCellWidth * 4)
	m.SetUnlocked([]string{badge.LowCarbon})

	view := m.View()
	assert.Contains(t, view, "Badges 1/17")
	assert.Contains(t, view, "First Step")
	assert.Equal(t, badge.FirstStep, m.Selected().ID)

	moves := []struct {
		key  string
		want int
	}{
		{key: "l", want: 1},
		{key: "j", want: 5},
		{key: "h", want: 4},
		{key: "k", want: 0},
		{key: "k", want: 0},
	}
	for _, mv := range moves {
		m, _ = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(mv.key)})
		assert.Equal(t, mv.want, m.cursor, mv.key)
	}

	for range 40 {
		m, _ = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("l")})
	}
	assert.Equal(t, len(badge.All())-1, m.cursor)
}

func TestStatsPanelModel(t *testing.T) {
	m := NewStatsPanelModel(themes.Default)
	m.Resize(50)
	m.SetSummary(tracker.Summary{
		Name:          "Ada",
		Purchases:     2,
		EcoCount:      1,
		EcoShare:      0.5,
		TotalCO2:      90.025,
		MonthSpend:    5100,
		MonthCO2:      90.5,
		MonthlyBudget: 15000,
		CO2Goal:       50,
		BadgesTotal:   17,
		Categories: []tracker.CategoryTotal{
			{Category: "Electronics", Count: 1, Spend: 5000, CO2: 90},
		},
	})

	full := m.View()
	assert.Contains(t, full, "Hello, Ada")
	assert.Contains(t, full, "Monthly budget")
	assert.Contains(t, full, "90.50 / 50.00 kg this month")
	assert.Contains(t, full, "Electronics")

	m.SetCompact(true)
	assert.Contains(t, m.View(), "Purchases: 2")
}

func TestRatio(t *testing.T) {
	tests := []struct {
		name        string
		used, limit float64
		want        float64
	}{
		{name: "half", used: 25, limit: 50, want: 0.5},
		{name: "over", used: 80, limit: 50, want: 1},
		{name: "zero limit unused", used: 0, limit: 0, want: 0},
		{name: "zero limit used", used: 1, limit: 0, want: 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, Ratio(tt.used, tt.limit), 1e-9)
		})
	}
}
