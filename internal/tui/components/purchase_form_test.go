package components

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Veraticus/shopimpact/internal/impact"
	"github.com/Veraticus/shopimpact/internal/tui/themes"
)

func typeText(m PurchaseFormModel, text string) PurchaseFormModel {
	for _, r := range text {
		m, _ = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	}
	return m
}

func press(m PurchaseFormModel, key tea.KeyType) (PurchaseFormModel, tea.Cmd) {
	return m.Update(tea.KeyMsg{Type: key})
}

func fillForm(t *testing.T, category, brand, price string) PurchaseFormModel {
	t.Helper()
	m := NewPurchaseFormModel(themes.Default)
	m = typeText(m, category)
	m, _ = press(m, tea.KeyDown)
	m = typeText(m, brand)
	m, _ = press(m, tea.KeyDown)
	m = typeText(m, price)
	require.Equal(t, fieldPrice, m.focus)
	return m
}

func TestPurchaseFormSubmit(t *testing.T) {
	m := fillForm(t, "Books (Used)", " Goodwill ", "100")

	m, cmd := press(m, tea.KeyEnter)
	require.NotNil(t, cmd)
	require.NoError(t, m.Err())

	msg, ok := cmd().(PurchaseSubmittedMsg)
	require.True(t, ok)
	assert.Equal(t, PurchaseSubmittedMsg{Category: "Books (Used)", Brand: "Goodwill", Price: 100}, msg)
}

func TestPurchaseFormValidation(t *testing.T) {
	tests := []struct {
		wantErr  error
		name     string
		category string
		price    string
	}{
		{name: "missing category", category: "", price: "10", wantErr: errEmptyCategory},
		{name: "zero price", category: "Coffee", price: "0", wantErr: impact.ErrInvalidPrice},
		{name: "negative price", category: "Coffee", price: "-5", wantErr: impact.ErrInvalidPrice},
		{name: "not a number", category: "Coffee", price: "abc", wantErr: impact.ErrInvalidPrice},
		{name: "infinite", category: "Coffee", price: "Inf", wantErr: impact.ErrInvalidPrice},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := fillForm(t, tt.category, "", tt.price)
			m, cmd := press(m, tea.KeyEnter)
			assert.Nil(t, cmd)
			assert.ErrorIs(t, m.Err(), tt.wantErr)
			assert.Contains(t, m.View(), m.Err().Error())
		})
	}
}

func TestPurchaseFormEnterAdvances(t *testing.T) {
	m := NewPurchaseFormModel(themes.Default)
	m = typeText(m, "Coffee")

	m, _ = press(m, tea.KeyEnter)
	assert.Equal(t, fieldBrand, m.focus)
	assert.NoError(t, m.Err())
}

func TestPurchaseFormNavigationWraps(t *testing.T) {
	m := NewPurchaseFormModel(themes.Default)

	m, _ = press(m, tea.KeyUp)
	assert.Equal(t, fieldPrice, m.focus)

	m, _ = press(m, tea.KeyDown)
	assert.Equal(t, fieldCategory, m.focus)
}

func TestPurchaseFormCancel(t *testing.T) {
	m := NewPurchaseFormModel(themes.Default)
	_, cmd := press(m, tea.KeyEsc)
	require.NotNil(t, cmd)
	assert.Equal(t, FormCancelledMsg{}, cmd())
}

func TestPurchaseFormPreview(t *testing.T) {
	m := NewPurchaseFormModel(themes.Default)
	assert.Contains(t, m.View(), "Type a category")

	m = fillForm(t, "Books (Used)", "", "100")
	view := m.View()
	assert.Contains(t, view, "Multiplier 0.05")
	assert.Contains(t, view, "eco")
	assert.Contains(t, view, "0.025 kg CO2")

	m = fillForm(t, "Fast Fashion", "", "10")
	assert.Contains(t, m.View(), "💡")
}
