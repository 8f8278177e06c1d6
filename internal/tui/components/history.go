package components

import (
	"fmt"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/Veraticus/shopimpact/internal/impact"
	"github.com/Veraticus/shopimpact/internal/model"
	"github.com/Veraticus/shopimpact/internal/tui/themes"
)

const historyDateLayout = "2006-01-02 15:04"

// HistoryModel lists logged purchases, newest first.
type HistoryModel struct {
	theme     themes.Theme
	purchases []model.Purchase
	table     table.Model
	width     int
	height    int
}

// NewHistoryModel creates the purchase history table.
func NewHistoryModel(theme themes.Theme) HistoryModel {
	t := table.New(
		table.WithColumns(historyColumns(80)),
		table.WithFocused(true),
		table.WithHeight(10),
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(theme.Border).
		BorderBottom(true).
		Bold(false)
	s.Selected = theme.Selected
	t.SetStyles(s)

	return HistoryModel{
		theme:  theme,
		table:  t,
		width:  80,
		height: 12,
	}
}

func historyColumns(width int) []table.Column {
	// Fixed columns: date 16, price 10, co2 10, eco 3, plus cell padding.
	flexible := max(width-16-10-10-3-12, 20)
	category := flexible * 3 / 5
	return []table.Column{
		{Title: "Date", Width: 16},
		{Title: "Category", Width: category},
		{Title: "Brand", Width: flexible - category},
		{Title: "Price", Width: 10},
		{Title: "CO2 kg", Width: 10},
		{Title: "Eco", Width: 3},
	}
}

// SetPurchases replaces the rows. Purchases are given in logging order.
func (m *HistoryModel) SetPurchases(purchases []model.Purchase) {
	m.purchases = purchases
	rows := make([]table.Row, 0, len(purchases))
	for i := len(purchases) - 1; i >= 0; i-- {
		p := purchases[i]
		eco := ""
		if impact.IsEco(p.Category) {
			eco = "🌿"
		}
		rows = append(rows, table.Row{
			p.Timestamp.Local().Format(historyDateLayout),
			themes.GetCategoryIcon(p.Category) + " " + p.Category,
			p.Brand,
			fmt.Sprintf("%.2f", p.Price),
			fmt.Sprintf("%.3f", p.CO2Impact),
			eco,
		})
	}
	m.table.SetRows(rows)
}

// Len returns the number of purchases shown.
func (m HistoryModel) Len() int {
	return len(m.purchases)
}

// Resize adjusts the table to the given area.
func (m *HistoryModel) Resize(width, height int) {
	m.width = width
	m.height = height
	m.table.SetColumns(historyColumns(width))
	m.table.SetHeight(max(height-2, 3))
}

// Focus gives the table keyboard focus.
func (m *HistoryModel) Focus() { m.table.Focus() }

// Blur removes keyboard focus from the table.
func (m *HistoryModel) Blur() { m.table.Blur() }

// Update handles navigation keys.
func (m HistoryModel) Update(msg tea.Msg) (HistoryModel, tea.Cmd) {
	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

// View renders the table.
func (m HistoryModel) View() string {
	if len(m.purchases) == 0 {
		return m.theme.Muted.Render("No purchases yet. Press 'a' to log one.")
	}
	return m.table.View()
}
