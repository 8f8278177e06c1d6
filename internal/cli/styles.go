// Package cli provides styled terminal output using lipgloss, plus the small
// interactive helpers the commands share.
package cli

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"

	"github.com/Veraticus/shopimpact/internal/model"
)

// Palette.
var (
	leafGreen = lipgloss.Color("#2E8B57")
	teal      = lipgloss.Color("#4ECDC4")
	amber     = lipgloss.Color("#FFE66D")
	coral     = lipgloss.Color("#FF6B6B")
	mint      = lipgloss.Color("#95E1D3")
	gray      = lipgloss.Color("#666666")
	border    = lipgloss.Color("#333333")
)

var (
	titleStyle   = lipgloss.NewStyle().Bold(true).Foreground(leafGreen).MarginBottom(1)
	successStyle = lipgloss.NewStyle().Foreground(teal)
	warningStyle = lipgloss.NewStyle().Foreground(amber)
	errorStyle   = lipgloss.NewStyle().Foreground(coral)
	infoStyle    = lipgloss.NewStyle().Foreground(mint)
	boxStyle     = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(border).
			Padding(1, 2)

	// SubtleStyle dims secondary text such as badge descriptions.
	SubtleStyle = lipgloss.NewStyle().Foreground(gray)
	// TableCellStyle pads table cells.
	TableCellStyle = lipgloss.NewStyle().PaddingRight(2)
	// PromptStyle is used for yes/no questions.
	PromptStyle = lipgloss.NewStyle().Bold(true).Foreground(leafGreen)
)

// rarityColors tints badge names by rarity.
var rarityColors = map[model.Rarity]lipgloss.Color{
	model.RarityCommon:    lipgloss.Color("#AAAAAA"),
	model.RarityUncommon:  teal,
	model.RarityRare:      lipgloss.Color("#5DADE2"),
	model.RarityEpic:      lipgloss.Color("#AF7AC5"),
	model.RarityLegendary: lipgloss.Color("#F5B041"),
}

// Icons.
const (
	LeafIcon  = "🌱"
	ChartIcon = "📊"
	BadgeIcon = "🏅"
	LockIcon  = "🔒"
)

// FormatSuccess prefixes message with a check mark.
func FormatSuccess(message string) string {
	return successStyle.Render("✓ " + message)
}

// FormatError prefixes message with a cross.
func FormatError(message string) string {
	return errorStyle.Render("✗ " + message)
}

// FormatWarning prefixes message with a warning sign.
func FormatWarning(message string) string {
	return warningStyle.Render("⚠️ " + message)
}

// FormatInfo prefixes message with an info sign.
func FormatInfo(message string) string {
	return infoStyle.Render("ℹ️ " + message)
}

// FormatTitle formats a section title with the leaf icon.
func FormatTitle(title string) string {
	return titleStyle.Render(LeafIcon + " " + title)
}

// FormatCO2 renders a CO2 figure in kilograms.
func FormatCO2(kg float64) string {
	return fmt.Sprintf("%.2f kg CO2", kg)
}

// FormatMoney renders a price.
func FormatMoney(amount float64) string {
	return fmt.Sprintf("%.2f", amount)
}

// FormatBadge renders a badge as "icon Name (rarity)", colored by rarity.
func FormatBadge(b model.Badge) string {
	name := lipgloss.NewStyle().Bold(true)
	if c, ok := rarityColors[b.Rarity]; ok {
		name = name.Foreground(c)
	}
	return b.Icon + " " + name.Render(b.Name) + SubtleStyle.Render(" ("+string(b.Rarity)+")")
}

// FormatUnlock renders the one-time badge acquisition notice.
func FormatUnlock(b model.Badge) string {
	return RenderBox(BadgeIcon+" Badge unlocked!", FormatBadge(b)+"\n"+SubtleStyle.Render(b.Description))
}

// RenderBox draws content in a rounded box under title.
func RenderBox(title, content string) string {
	heading := titleStyle.UnsetMargins().Render(title)
	return boxStyle.Render(lipgloss.JoinVertical(lipgloss.Left, heading, content))
}
