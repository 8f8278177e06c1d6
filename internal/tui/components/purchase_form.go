package components

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/Veraticus/shopimpact/internal/impact"
	"github.com/Veraticus/shopimpact/internal/tui/themes"
)

// Form field indexes.
const (
	fieldCategory = iota
	fieldBrand
	fieldPrice
	fieldCount
)

var errEmptyCategory = errors.New("category is required")

// PurchaseFormModel collects category, brand and price for a new purchase.
// The preview shows the estimate and any suggestion while typing.
type PurchaseFormModel struct {
	theme  themes.Theme
	err    error
	inputs []textinput.Model
	focus  int
	width  int
}

// NewPurchaseFormModel creates an empty form focused on the category.
func NewPurchaseFormModel(theme themes.Theme) PurchaseFormModel {
	inputs := make([]textinput.Model, fieldCount)

	inputs[fieldCategory] = textinput.New()
	inputs[fieldCategory].Placeholder = "e.g. Books (Used)"
	inputs[fieldCategory].CharLimit = 60
	inputs[fieldCategory].ShowSuggestions = true
	inputs[fieldCategory].SetSuggestions(impact.Categories())

	inputs[fieldBrand] = textinput.New()
	inputs[fieldBrand].Placeholder = "optional"
	inputs[fieldBrand].CharLimit = 60

	inputs[fieldPrice] = textinput.New()
	inputs[fieldPrice].Placeholder = "0.00"
	inputs[fieldPrice].CharLimit = 15

	m := PurchaseFormModel{
		theme:  theme,
		inputs: inputs,
		width:  60,
	}
	m.inputs[fieldCategory].Focus()
	return m
}

// Init starts the cursor blink.
func (m PurchaseFormModel) Init() tea.Cmd {
	return textinput.Blink
}

// Resize sets the form width.
func (m *PurchaseFormModel) Resize(width int) {
	m.width = width
	for i := range m.inputs {
		m.inputs[i].Width = max(width-16, 10)
	}
}

// Err returns the last validation error, if any.
func (m PurchaseFormModel) Err() error {
	return m.err
}

// Update handles field navigation and submission.
func (m PurchaseFormModel) Update(msg tea.Msg) (PurchaseFormModel, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch keyMsg.String() {
		case "esc":
			return m, func() tea.Msg { return FormCancelledMsg{} }

		case "tab":
			if m.acceptSuggestion() {
				return m, nil
			}
			return m, m.setFocus((m.focus + 1) % fieldCount)

		case "down":
			return m, m.setFocus((m.focus + 1) % fieldCount)

		case "shift+tab", "up":
			return m, m.setFocus((m.focus + fieldCount - 1) % fieldCount)

		case "enter":
			if m.focus < fieldPrice {
				return m, m.setFocus(m.focus + 1)
			}
			submitted, err := m.submission()
			if err != nil {
				m.err = err
				return m, nil
			}
			m.err = nil
			return m, func() tea.Msg { return submitted }
		}
	}

	var cmd tea.Cmd
	m.inputs[m.focus], cmd = m.inputs[m.focus].Update(msg)
	return m, cmd
}

func (m *PurchaseFormModel) setFocus(i int) tea.Cmd {
	m.inputs[m.focus].Blur()
	m.focus = i
	return m.inputs[m.focus].Focus()
}

// acceptSuggestion completes a partially typed category. Tab only moves on
// once the value matches the suggestion.
func (m *PurchaseFormModel) acceptSuggestion() bool {
	if m.focus != fieldCategory {
		return false
	}
	input := &m.inputs[fieldCategory]
	suggestion := input.CurrentSuggestion()
	if input.Value() == "" || suggestion == "" || suggestion == input.Value() {
		return false
	}
	input.SetValue(suggestion)
	input.CursorEnd()
	return true
}

func (m PurchaseFormModel) submission()(PurchaseSubmittedMsg, error) {
	category := strings.TrimSpace(m.inputs[fieldCategory].Value())
	if category == "" {
		return PurchaseSubmittedMsg{}, errEmptyCategory
	}

	price, err := parsePrice(m.inputs[fieldPrice].Value())
	if err != nil {
		return PurchaseSubmittedMsg{}, err
	}

	return PurchaseSubmittedMsg{
		Category: category,
		Brand:    strings.TrimSpace(m.inputs[fieldBrand].Value()),
		Price:    price,
	}, nil
}

func parsePrice(raw string) (float64, error) {
	price, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %q is not a number", impact.ErrInvalidPrice, raw)
	}
	if err := impact.ValidatePrice(price); err != nil {
		return 0, err
	}
	return price, nil
}

// View renders the form.
func (m PurchaseFormModel) View() string {
	labels := [fieldCount]string{"Category", "Brand", "Price"}

	lines := []string{m.theme.Title.Render("Log a purchase")}
	for i, input := range m.inputs {
		label := m.theme.Muted.Width(10).Render(labels[i])
		if i == m.focus {
			label = m.theme.Bold.Width(10).Render(labels[i])
		}
		lines = append(lines, label+" "+input.View())
	}

	lines = append(lines, "", m.renderPreview())
	if m.err != nil {
		lines = append(lines, m.theme.StatusError.Render(m.err.Error()))
	}
	lines = append(lines, m.theme.Muted.Render("tab next • enter save • esc cancel"))

	return m.theme.RoundedBox.Width(m.width).Render(lipgloss.JoinVertical(lipgloss.Left, lines...))
}

func (m PurchaseFormModel) renderPreview() string {
	category := strings.TrimSpace(m.inputs[fieldCategory].Value())
	if category == "" {
		return m.theme.Muted.Render("Type a category to see its impact.")
	}

	preview := fmt.Sprintf("Multiplier %.2f", impact.Multiplier(category))
	if impact.IsEco(category) {
		preview += m.theme.StatusSuccess.Render("  🌿 eco")
	}
	if price, err := parsePrice(m.inputs[fieldPrice].Value()); err == nil {
		preview += fmt.Sprintf("  ≈ %.3f kg CO2", impact.Estimate(category, price))
	}
	if tip, ok := impact.Suggest(category); ok {
		preview += "\n" + m.theme.StatusInfo.Render("💡 "+tip)
	}
	return preview
}
