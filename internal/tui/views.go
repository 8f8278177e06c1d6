package tui

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
)

// View renders the UI.
func (m Model) View() string {
	if m.quitting {
		return ""
	}
	if !m.ready {
		return m.renderLoading()
	}

	var body string
	switch m.state {
	case StateAddPurchase:
		body = m.form.View()
	case StateHelp:
		body = m.renderHelp()
	default:
		body = m.renderDashboard()
	}

	sections := []string{m.renderHeader()}
	if m.banner != nil {
		sections = append(sections, m.renderBanner())
	}
	sections = append(sections, body, m.renderStatusBar())
	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func (m Model) renderLoading() string {
	return lipgloss.Place(
		m.width,
		m.height,
		lipgloss.Center,
		lipgloss.Center,
		m.theme.Title.Render("🌍 Loading ShopImpact..."),
	)
}

func (m Model) renderHeader() string {
	tabs := []string{"History", "Badges"}
	rendered := make([]string, len(tabs))
	for i, tab := range tabs {
		style := m.theme.Muted.Padding(0, 1)
		if View(i) == m.view {
			style = m.theme.Selected.Padding(0, 1)
		}
		rendered[i] = style.Render(tab)
	}
	title := m.theme.Title.MarginBottom(0).Render("🌍 ShopImpact")
	return lipgloss.JoinHorizontal(lipgloss.Center, append([]string{title, "  "}, rendered...)...)
}

// renderBanner shows the badge that was just unlocked. It stays until it
// expires or is dismissed and is never shown again for that badge.
func (m Model) renderBanner() string {
	b := m.banner
	text := fmt.Sprintf("%s Badge unlocked: %s (%s)", b.Icon, b.Name, b.Rarity)
	return m.theme.Banner.Render(text)
}

func (m Model) renderDashboard() string {
	var main string
	switch m.view {
	case ViewBadges:
		main = m.badges.View()
	default:
		main = m.history.View()
	}

	mainWidth, side := m.columns()
	if side == 0 {
		return lipgloss.JoinVertical(lipgloss.Left,
			lipgloss.NewStyle().Width(mainWidth).Render(main),
			m.stats.View(),
		)
	}

	return lipgloss.JoinHorizontal(
		lipgloss.Top,
		lipgloss.NewStyle().Width(mainWidth).Render(main),
		m.theme.Muted.Render(" │ "),
		m.stats.View(),
	)
}

func (m Model) renderHelp() string {
	h := m.help
	h.ShowAll = true
	return m.theme.RoundedBox.Render(lipgloss.JoinVertical(
		lipgloss.Left,
		m.theme.Title.Render("Keys"),
		h.View(m.keymap),
		"",
		m.theme.Muted.Render("Press any key to go back."),
	))
}

func (m Model) renderStatusBar() string {
	var lines []string
	switch {
	case m.lastError != nil && m.persistWarning():
		lines = append(lines, m.theme.StatusWarning.Render("⚠ "+m.status+" (not saved: "+m.lastError.Error()+")"))
	case m.lastError != nil:
		lines = append(lines, m.theme.StatusError.Render("✗ "+m.lastError.Error()))
	case m.status != "":
		lines = append(lines, m.theme.StatusSuccess.Render("✓ "+m.status))
	}
	if m.tip != "" {
		lines = append(lines, m.theme.StatusInfo.Render("💡 "+m.tip))
	}
	if m.config.ShowHelp && m.state == StateDashboard {
		lines = append(lines, m.help.View(m.keymap))
	}
	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}
