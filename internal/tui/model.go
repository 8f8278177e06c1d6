package tui

import (
	"context"
	"errors"
	"fmt"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/Veraticus/shopimpact/internal/model"
	"github.com/Veraticus/shopimpact/internal/tracker"
	"github.com/Veraticus/shopimpact/internal/tui/components"
	"github.com/Veraticus/shopimpact/internal/tui/themes"
)

// State represents the current state of the TUI.
type State int

const (
	StateDashboard State = iota
	StateAddPurchase
	StateHelp
)

// View represents the panel shown on the dashboard.
type View int

const (
	ViewHistory View = iota
	ViewBadges
)

// Model holds the dashboard state.
type Model struct {
	ctx       context.Context
	backend   Backend
	theme     themes.Theme
	lastError error
	banner    *model.Badge
	recorder  *Recorder
	status    string
	tip       string
	config    Config
	keymap    KeyMap
	help      help.Model
	history   components.HistoryModel
	badges    components.BadgeGridModel
	stats     components.StatsPanelModel
	form      components.PurchaseFormModel
	bannerSeq int
	width     int
	height    int
	state     State
	view      View
	quitting  bool
	ready     bool
}

// newModel creates a new model with the given configuration.
func newModel(ctx context.Context, backend Backend, cfg Config) Model {
	m := Model{
		ctx:     ctx,
		backend: backend,
		config:  cfg,
		theme:   cfg.Theme,
		keymap:  DefaultKeyMap(),
		help:    help.New(),
		history: components.NewHistoryModel(cfg.Theme),
		badges:  components.NewBadgeGridModel(cfg.Theme),
		stats:   components.NewStatsPanelModel(cfg.Theme),
		form:    components.NewPurchaseFormModel(cfg.Theme),
		width:   cfg.Width,
		height:  cfg.Height,
		state:   StateDashboard,
		view:    ViewHistory,
	}
	m.handleResize()
	return m
}

// Init loads the initial data.
func (m Model) Init() tea.Cmd {
	return m.loadData()
}

// Update handles messages and updates the model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	next, cmd := m.update(msg)
	if m.recorder != nil {
		m.recorder.RecordState(next, msg)
	}
	return next, cmd
}

func (m Model) update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.handleResize()
		return m, nil

	case dataLoadedMsg:
		m.history.SetPurchases(msg.history)
		m.badges.SetUnlocked(msg.unlocked)
		m.stats.SetSummary(msg.summary)
		m.ready = true
		return m, nil

	case purchaseRecordedMsg:
		return m.handleRecorded(msg)

	case bannerExpiredMsg:
		if msg.seq == m.bannerSeq {
			m.banner = nil
		}
		return m, nil

	case components.PurchaseSubmittedMsg:
		m.state = StateDashboard
		m.history.Focus()
		return m, m.recordPurchase(msg)

	case components.FormCancelledMsg:
		m.state = StateDashboard
		m.history.Focus()
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	if m.state == StateAddPurchase {
		var cmd tea.Cmd
		m.form, cmd = m.form.Update(msg)
		return m, cmd
	}
	return m, nil
}

// handleKey routes key presses. The form owns every key but ctrl+c.
func (m Model) handleKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	if key.Matches(msg, m.keymap.ForceQuit) {
		m.quitting = true
		return m, tea.Quit
	}

	if m.state == StateAddPurchase {
		var cmd tea.Cmd
		m.form, cmd = m.form.Update(msg)
		return m, cmd
	}

	// Any key closes help.
	if m.state == StateHelp {
		m.state = StateDashboard
		return m, nil
	}

	if m.banner != nil && key.Matches(msg, m.keymap.Dismiss) {
		m.banner = nil
		return m, nil
	}

	switch {
	case key.Matches(msg, m.keymap.Quit):
		m.quitting = true
		return m, tea.Quit

	case key.Matches(msg, m.keymap.Help):
		m.state = StateHelp
		return m, nil

	case key.Matches(msg, m.keymap.Add):
		m.state = StateAddPurchase
		m.history.Blur()
		m.form = components.NewPurchaseFormModel(m.theme)
		m.form.Resize(m.formWidth())
		return m, m.form.Init()

	case key.Matches(msg, m.keymap.NextView):
		if m.view == ViewHistory {
			m.view = ViewBadges
			m.history.Blur()
		} else {
			m.view = ViewHistory
			m.history.Focus()
		}
		return m, nil

	case key.Matches(msg, m.keymap.Refresh):
		return m, m.loadData()
	}

	var cmd tea.Cmd
	switch m.view {
	case ViewHistory:
		m.history, cmd = m.history.Update(msg)
	case ViewBadges:
		m.badges, cmd = m.badges.Update(msg)
	}
	return m, cmd
}

// handleRecorded shows the result of a logged purchase. A persistence failure
// still carries a valid outcome, so the purchase is shown and the error kept.
func (m Model) handleRecorded(msg purchaseRecordedMsg) (Model, tea.Cmd) {
	m.lastError = msg.err
	if msg.outcome == nil {
		m.status = ""
		m.tip = ""
		return m, nil
	}

	p := msg.outcome.Purchase
	m.status = fmt.Sprintf("Logged %s for %.2f: %.3f kg CO2", p.Category, p.Price, p.CO2Impact)
	m.tip = msg.outcome.Suggestion

	cmds := []tea.Cmd{m.loadData()}
	if msg.outcome.Badge != nil {
		b := *msg.outcome.Badge
		m.banner = &b
		m.bannerSeq++
		cmds = append(cmds, m.expireBanner(m.bannerSeq))
	}
	return m, tea.Batch(cmds...)
}

// persistWarning reports whether lastError is a save failure rather than a
// rejected entry.
func (m Model) persistWarning() bool {
	return errors.Is(m.lastError, tracker.ErrPersist)
}

// handleResize adjusts component sizes when the terminal resizes.
func (m *Model) handleResize() {
	main, side := m.columns()
	bodyHeight := max(m.height-6, 5)

	m.history.Resize(main, bodyHeight)
	m.badges.Resize(main)
	m.stats.Resize(side)
	m.stats.SetCompact(side == 0)
	m.form.Resize(m.formWidth())
	m.help.Width = m.width
}

// columns splits the width between the main panel and the stats side panel.
// Narrow terminals get no side panel.
func (m Model) columns() (main, side int) {
	usable := max(m.width-2, 20)
	if m.width < 100 {
		return usable, 0
	}
	side = usable * 35 / 100
	return usable - side - 3, side
}

func (m Model) formWidth() int {
	return min(max(m.width-4, 30), 72)
}
