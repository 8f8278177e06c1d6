package components

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/Veraticus/shopimpact/internal/badge"
	"github.com/Veraticus/shopimpact/internal/model"
	"github.com/Veraticus/shopimpact/internal/tui/themes"
)

const badgeCellWidth = 18

// BadgeGridModel shows the whole catalog, unlocked badges in their rarity color.
type BadgeGridModel struct {
	theme    themes.Theme
	unlocked map[string]bool
	catalog  []model.Badge
	cursor   int
	width    int
}

// NewBadgeGridModel creates a grid over the badge catalog.
func NewBadgeGridModel(theme themes.Theme) BadgeGridModel {
	return BadgeGridModel{
		theme:    theme,
		catalog:  badge.All(),
		unlocked: make(map[string]bool),
		width:    80,
	}
}

// SetUnlocked records which badge IDs are unlocked.
func (m *BadgeGridModel) SetUnlocked(ids []string) {
	m.unlocked = make(map[string]bool, len(ids))
	for _, id := range ids {
		m.unlocked[id] = true
	}
}

// Resize sets the available width.
func (m *BadgeGridModel) Resize(width int) {
	m.width = width
}

// Selected returns the badge under the cursor.
func (m BadgeGridModel) Selected() model.Badge {
	return m.catalog[m.cursor]
}

func (m BadgeGridModel) columns() int {
	return max(m.width/badgeCellWidth, 1)
}

// Update moves the cursor.
func (m BadgeGridModel) Update(msg tea.Msg) (BadgeGridModel, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	cols := m.columns()
	last := len(m.catalog) - 1
	switch keyMsg.String() {
	case "l", "right":
		m.cursor = min(m.cursor+1, last)
	case "h", "left":
		m.cursor = max(m.cursor-1, 0)
	case "j", "down":
		m.cursor = min(m.cursor+cols, last)
	case "k", "up":
		m.cursor = max(m.cursor-cols, 0)
	}
	return m, nil
}

// View renders the grid followed by the selected badge's description.
func (m BadgeGridModel) View() string {
	cols := m.columns()

	var rows []string
	var cells []string
	for i, b := range m.catalog {
		cells = append(cells, m.renderCell(i, b))
		if len(cells) == cols {
			rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, cells...))
			cells = nil
		}
	}
	if len(cells) > 0 {
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, cells...))
	}

	header := m.theme.Subtitle.Render(fmt.Sprintf("Badges %d/%d", len(m.unlocked), len(m.catalog)))
	return lipgloss.JoinVertical(
		lipgloss.Left,
		header,
		strings.Join(rows, "\n"),
		"",
		m.renderDetail(m.Selected()),
	)
}

func (m BadgeGridModel) renderCell(i int, b model.Badge) string {
	label := "🔒 " + b.Name
	style := m.theme.Locked
	if m.unlocked[b.ID] {
		label = b.Icon + " " + b.Name
		style = m.theme.RarityStyle(b.Rarity)
	}
	if i == m.cursor {
		style = style.Reverse(true)
	}
	return style.Width(badgeCellWidth).MaxWidth(badgeCellWidth).Render(label)
}

func (m BadgeGridModel) renderDetail(b model.Badge) string {
	status := m.theme.Muted.Render("locked")
	if m.unlocked[b.ID] {
		status = m.theme.StatusSuccess.Render("unlocked")
	}
	return fmt.Sprintf("%s %s (%s, %s)\n%s",
		b.Icon,
		m.theme.Bold.Render(b.Name),
		m.theme.RarityStyle(b.Rarity).Render(string(b.Rarity)),
		status,
		m.theme.Muted.Render(b.Description),
	)
}
