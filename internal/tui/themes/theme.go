package themes

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/Veraticus/shopimpact/internal/model"
)

// Theme is the set of dashboard styles derived from one palette.
type Theme struct {
	Title         lipgloss.Style
	Subtitle      lipgloss.Style
	Normal        lipgloss.Style
	Bold          lipgloss.Style
	Muted         lipgloss.Style
	Locked        lipgloss.Style
	Selected      lipgloss.Style
	Banner        lipgloss.Style
	Box           lipgloss.Style
	RoundedBox    lipgloss.Style
	StatusInfo    lipgloss.Style
	StatusError   lipgloss.Style
	StatusWarning lipgloss.Style
	StatusSuccess lipgloss.Style
	Rarity        map[model.Rarity]lipgloss.Color
	Foreground    lipgloss.Color
	Border        lipgloss.Color
	GradientStart string
	GradientEnd   string
}

// palette holds the colors a Theme is built from. Rarity colors run common
// to legendary.
type palette struct {
	accent, info, success, warning, danger string
	text, dim, locked, border, ink, gold   string
	rarity                                 [5]string
}

func newTheme(p palette) Theme {
	c := func(hex string) lipgloss.Color { return lipgloss.Color(hex) }
	fg := func(hex string) lipgloss.Style { return lipgloss.NewStyle().Foreground(c(hex)) }

	return Theme{
		Title:         fg(p.accent).Bold(true).MarginBottom(1),
		Subtitle:      fg(p.info),
		Normal:        fg(p.text),
		Bold:          fg(p.text).Bold(true),
		Muted:         fg(p.dim),
		Locked:        fg(p.locked),
		Selected:      fg(p.ink).Background(c(p.accent)).Bold(true),
		Banner:        fg(p.ink).Background(c(p.gold)).Bold(true).Padding(0, 2),
		Box:           lipgloss.NewStyle().Padding(0, 1),
		RoundedBox:    lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(c(p.border)).Padding(0, 1),
		StatusInfo:    fg(p.info).Bold(true),
		StatusError:   fg(p.danger).Bold(true),
		StatusWarning: fg(p.warning).Bold(true),
		StatusSuccess: fg(p.success).Bold(true),
		Rarity: map[model.Rarity]lipgloss.Color{
			model.RarityCommon:    c(p.rarity[0]),
			model.RarityUncommon:  c(p.rarity[1]),
			model.RarityRare:      c(p.rarity[2]),
			model.RarityEpic:      c(p.rarity[3]),
			model.RarityLegendary: c(p.rarity[4]),
		},
		Foreground:    c(p.text),
		Border:        c(p.border),
		GradientStart: p.success,
		GradientEnd:   p.danger,
	}
}

// Forest is the default green theme.
var Forest = newTheme(palette{
	accent: "#2E8B57", info: "#95E1D3", success: "#4ECDC4", warning: "#FFE66D", danger: "#FF6B6B",
	text: "#F0F0F0", dim: "#6B7B73", locked: "#4A4A4A", border: "#3F5F4F", ink: "#1A1A1A", gold: "#FFD700",
	rarity: [5]string{"#B0B0B0", "#4ECDC4", "#5DA9E9", "#B084F5", "#FFD700"},
})

// CatppuccinMocha follows the Catppuccin Mocha palette.
var CatppuccinMocha = newTheme(palette{
	accent: "#a6e3a1", info: "#89dceb", success: "#a6e3a1", warning: "#f9e2af", danger: "#f38ba8",
	text: "#cdd6f4", dim: "#6c7086", locked: "#45475a", border: "#45475a", ink: "#1e1e2e", gold: "#f9e2af",
	rarity: [5]string{"#bac2de", "#94e2d5", "#89b4fa", "#cba6f7", "#f9e2af"},
})

// Default is the theme used when none is configured.
var Default = Forest

// GetTheme returns a theme by name, falling back to Default.
func GetTheme(name string) Theme {
	switch name {
	case "catppuccin-mocha", "mocha":
		return CatppuccinMocha
	default:
		return Default
	}
}

// RarityStyle returns a bold style colored for rarity.
func (t Theme) RarityStyle(rarity model.Rarity) lipgloss.Style {
	color, ok := t.Rarity[rarity]
	if !ok {
		color = t.Foreground
	}
	return lipgloss.NewStyle().Foreground(color).Bold(true)
}

// CategoryIcons maps categories to emoji icons.
var CategoryIcons = map[string]string{
	"Electronics":             "🔌",
	"Smartphones":             "📱",
	"Laptops":                 "💻",
	"Gaming Consoles":         "🎮",
	"Video Games":             "🕹️",
	"Home Appliances":         "🧺",
	"Furniture":               "🛋️",
	"Fast Fashion":            "👗",
	"Clothing":                "👕",
	"Shoes":                   "👟",
	"Leather Goods":           "👜",
	"Cosmetics":               "💄",
	"Beef":                    "🥩",
	"Meat":                    "🍗",
	"Dairy":                   "🧀",
	"Groceries":               "🛒",
	"Fast Food":               "🍔",
	"Restaurant":              "🍽️",
	"Coffee":                  "☕",
	"Desserts":                "🍰",
	"Fuel":                    "⛽",
	"Flights":                 "✈️",
	"Books (New)":             "📕",
	"Books (Used)":            "📚",
	"Digital Subscriptions":   "📺",
	"Second-Hand Clothing":    "🧥",
	"Refurbished Electronics": "🔧",
	"Local Produce":           "🥕",
	"Organic Groceries":       "🥬",
	"Bamboo Products":         "🎋",
	"Reusable Items":          "♻️",
	"Public Transport":        "🚌",
	"Bicycle":                 "🚲",
	"Solar Products":          "☀️",
	"Repair Services":         "🛠️",
	"Rental Services":         "🔑",
}

// GetCategoryIcon returns an icon for a category.
func GetCategoryIcon(category string) string {
	if icon, ok := CategoryIcons[category]; ok {
		return icon
	}
	return "📦"
}
