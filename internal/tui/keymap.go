package tui

import "github.com/charmbracelet/bubbles/key"

// KeyMap holds the dashboard shortcuts. Scrolling keys are handled by the
// history table; they are listed here for the help view.
type KeyMap struct {
	Up        key.Binding
	Down      key.Binding
	Add       key.Binding
	NextView  key.Binding
	Refresh   key.Binding
	Dismiss   key.Binding
	Help      key.Binding
	Quit      key.Binding
	ForceQuit key.Binding
}

func bind(help, desc string, keys ...string) key.Binding {
	return key.NewBinding(key.WithKeys(keys...), key.WithHelp(help, desc))
}

// DefaultKeyMap returns the dashboard bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Up:        bind("↑/k", "older", "up", "k"),
		Down:      bind("↓/j", "newer", "down", "j"),
		Add:       bind("a", "log purchase", "a", "n"),
		NextView:  bind("tab", "history/badges", "tab"),
		Refresh:   bind("r", "reload", "r", "ctrl+r"),
		Dismiss:   bind("enter", "dismiss badge", "enter", " "),
		Help:      bind("?", "help", "?"),
		Quit:      bind("q", "quit", "q", "esc"),
		ForceQuit: bind("ctrl+c", "force quit", "ctrl+c"),
	}
}

// ShortHelp implements help.KeyMap.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Add, k.NextView, k.Help, k.Quit}
}

// FullHelp implements help.KeyMap.
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.NextView},
		{k.Add, k.Refresh, k.Dismiss},
		{k.Help, k.Quit, k.ForceQuit},
	}
}
