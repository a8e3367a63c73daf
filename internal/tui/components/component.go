// Package components provides the strip and grid sub-models of the picker.
package components

import tea "github.com/charmbracelet/bubbletea"

// Component is a sub-model that renders one pager.
// Each component keeps its own view state, handles the messages it cares
// about, and renders its own view.
type Component interface {
	Init() tea.Cmd
	Update(msg tea.Msg) (Component, tea.Cmd)
	View() string
	SetSize(width, height int)
}

// Focusable is an optional interface for components that can receive focus.
type Focusable interface {
	Component
	Focus()
	Blur()
	Focused() bool
}

// DataReceiver is an optional interface for components fed by the app model.
type DataReceiver[T any] interface {
	// SetData replaces the component's data source.
	SetData(data T)
}

var (
	_ Focusable               = (*StripModel)(nil)
	_ Focusable               = (*GridModel)(nil)
	_ DataReceiver[StripData] = (*StripModel)(nil)
	_ DataReceiver[GridData]  = (*GridModel)(nil)
)
