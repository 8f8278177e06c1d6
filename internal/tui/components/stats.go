package components

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/lipgloss"

	"github.com/Veraticus/shopimpact/internal/tracker"
	"github.com/Veraticus/shopimpact/internal/tui/themes"
)

// maxCategoryRows caps the per-category breakdown in the full view.
const maxCategoryRows = 6

// StatsPanelModel displays the footprint summary with budget and CO2 goal gauges.
type StatsPanelModel struct {
	theme     themes.Theme
	summary   tracker.Summary
	budgetBar progress.Model
	co2Bar    progress.Model
	width     int
	compact   bool
}

// NewStatsPanelModel creates a new stats panel.
func NewStatsPanelModel(theme themes.Theme) StatsPanelModel {
	newBar := func() progress.Model {
		bar := progress.New(progress.WithGradient(theme.GradientStart, theme.GradientEnd))
		bar.ShowPercentage = false
		bar.Width = 30
		return bar
	}

	return StatsPanelModel{
		theme:     theme,
		budgetBar: newBar(),
		co2Bar:    newBar(),
		width:     40,
	}
}

// SetSummary replaces the digest shown by the panel.
func (m *StatsPanelModel) SetSummary(s tracker.Summary) {
	m.summary = s
}

// SetCompact switches between the one-line and the full view.
func (m *StatsPanelModel) SetCompact(compact bool) {
	m.compact = compact
}

// Resize sets the panel width.
func (m *StatsPanelModel) Resize(width int) {
	m.width = width
	barWidth := min(max(width-4, 10), 40)
	m.budgetBar.Width = barWidth
	m.co2Bar.Width = barWidth
}

// View renders the stats panel.
func (m StatsPanelModel) View() string {
	if m.compact {
		return m.renderCompact()
	}
	return m.renderFull()
}

func (m StatsPanelModel) renderCompact() string {
	s := m.summary
	stats := fmt.Sprintf(
		"Purchases: %d | CO2: %.2f kg | Month: %.2f/%.0f | Badges: %d/%d",
		s.Purchases,
		s.TotalCO2,
		s.MonthSpend,
		s.MonthlyBudget,
		len(s.Badges),
		s.BadgesTotal,
	)
	return m.theme.Box.Render(stats)
}

func (m StatsPanelModel) renderFull() string {
	sections := []string{
		m.renderTotals(),
		m.renderGauge("Monthly budget", m.budgetBar, m.summary.MonthSpend, m.summary.MonthlyBudget, ""),
		m.renderGauge("CO2 goal", m.co2Bar, m.summary.MonthCO2, m.summary.CO2Goal, " kg"),
	}
	if len(m.summary.Categories) > 0 {
		sections = append(sections, m.renderCategories())
	}
	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func (m StatsPanelModel) renderTotals() string {
	s := m.summary
	lines := []string{
		fmt.Sprintf("Purchases:  %d (%d eco, %.0f%%)", s.Purchases, s.EcoCount, s.EcoShare*100),
		fmt.Sprintf("Spent:      %.2f", s.TotalSpend),
		fmt.Sprintf("CO2:        %.3f kg", s.TotalCO2),
		fmt.Sprintf("Badges:     %d/%d", len(s.Badges), s.BadgesTotal),
	}
	return lipgloss.JoinVertical(
		lipgloss.Left,
		m.theme.Subtitle.Render(fmt.Sprintf("Hello, %s", s.Name)),
		m.theme.Normal.Render(strings.Join(lines, "\n")),
		"",
	)
}

// Ratio returns used/limit clamped to [0, 1]. A zero limit counts as full
// once anything is used.
func Ratio(used, limit float64) float64 {
	switch {
	case limit <= 0 && used > 0:
		return 1
	case limit <= 0:
		return 0
	}
	return min(max(used/limit, 0), 1)
}

func (m StatsPanelModel) renderGauge(title string, bar progress.Model, used, limit float64, unit string) string {
	status := m.theme.StatusSuccess
	if used > limit {
		status = m.theme.StatusError
	}
	return lipgloss.JoinVertical(
		lipgloss.Left,
		m.theme.Subtitle.Render(title),
		bar.ViewAs(Ratio(used, limit)),
		status.Render(fmt.Sprintf("%.2f / %.2f%s this month", used, limit, unit)),
		"",
	)
}

func (m StatsPanelModel) renderCategories() string {
	lines := []string{m.theme.Subtitle.Render("Top categories by CO2")}
	for i, c := range m.summary.Categories {
		if i == maxCategoryRows {
			lines = append(lines, m.theme.Muted.Render(fmt.Sprintf("… and %d more", len(m.summary.Categories)-i)))
			break
		}
		lines = append(lines, fmt.Sprintf("%s %-20s %8.3f kg",
			themes.GetCategoryIcon(c.Category),
			truncate(c.Category, 20),
			c.CO2,
		))
	}
	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}
