// Package tui provides the terminal user interface for the date picker.
package tui

import (
	"github.com/charmbracelet/bubbles/key"
	"github.com/hy4ri/datepicker-tui/internal/tui/components"
)

// KeyMap contains all key bindings for the application.
type KeyMap struct {
	Grid components.GridKeyMap

	// Strip
	Prev     key.Binding
	Next     key.Binding
	FastPrev key.Binding
	FastNext key.Binding

	// Grid paging
	PrevPage key.Binding
	NextPage key.Binding

	// Actions
	Toggle key.Binding
	Tap    key.Binding
	Focus  key.Binding
	Today  key.Binding
	GoTo   key.Binding
	Copy   key.Binding
	Back   key.Binding
	Help   key.Binding
	Quit   key.Binding
}

// DefaultKeyMap returns the default bindings. With vim set, h/j/k/l move
// alongside the arrow keys.
func DefaultKeyMap(vim bool) KeyMap {
	keys := func(arrow, letter string) []string {
		if vim {
			return []string{arrow, letter}
		}
		return []string{arrow}
	}
	helpKey := func(arrow, letter string) string {
		if vim {
			return arrow + "/" + letter
		}
		return arrow
	}

	return KeyMap{
		Grid: components.GridKeyMap{
			Left:   key.NewBinding(key.WithKeys(keys("left", "h")...), key.WithHelp(helpKey("←", "h"), "prev day")),
			Right:  key.NewBinding(key.WithKeys(keys("right", "l")...), key.WithHelp(helpKey("→", "l"), "next day")),
			Up:     key.NewBinding(key.WithKeys(keys("up", "k")...), key.WithHelp(helpKey("↑", "k"), "prev week")),
			Down:   key.NewBinding(key.WithKeys(keys("down", "j")...), key.WithHelp(helpKey("↓", "j"), "next week")),
			Select: key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "select")),
		},

		Prev:     key.NewBinding(key.WithKeys(keys("left", "h")...), key.WithHelp(helpKey("←", "h"), "prev")),
		Next:     key.NewBinding(key.WithKeys(keys("right", "l")...), key.WithHelp(helpKey("→", "l"), "next")),
		FastPrev: key.NewBinding(key.WithKeys("shift+left", "H"), key.WithHelp("H", "fast back")),
		FastNext: key.NewBinding(key.WithKeys("shift+right", "L"), key.WithHelp("L", "fast forward")),

		PrevPage: key.NewBinding(key.WithKeys("["), key.WithHelp("[", "prev month")),
		NextPage: key.NewBinding(key.WithKeys("]"), key.WithHelp("]", "next month")),

		Toggle: key.NewBinding(key.WithKeys(" ", "v"), key.WithHelp("space/v", "expand/collapse")),
		Tap:    key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "tap")),
		Focus:  key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "switch pager")),
		Today:  key.NewBinding(key.WithKeys("t"), key.WithHelp("t", "today")),
		GoTo:   key.NewBinding(key.WithKeys("g"), key.WithHelp("g", "go to date")),
		Copy:   key.NewBinding(key.WithKeys("y"), key.WithHelp("y", "copy date")),
		Back:   key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "cancel")),
		Help:   key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
		Quit:   key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

// ShortHelp implements help.KeyMap.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Prev, k.Next, k.Toggle, k.Tap, k.Help, k.Quit}
}

// FullHelp implements help.KeyMap.
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Prev, k.Next, k.FastPrev, k.FastNext},
		{k.Grid.Up, k.Grid.Down, k.PrevPage, k.NextPage},
		{k.Toggle, k.Tap, k.Focus, k.Today},
		{k.GoTo, k.Copy, k.Help, k.Quit},
	}
}
