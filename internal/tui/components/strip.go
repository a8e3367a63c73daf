package components

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/hy4ri/datepicker-tui/internal/pager"
	"github.com/hy4ri/datepicker-tui/internal/tui/styles"
)

// StripData is the slice of the strip window the component draws.
type StripData struct {
	Current time.Time
	Prev    time.Time // Zero at the start of the window
	Next    time.Time // Zero at the end of the window
	Unit    pager.Unit
}

// StripModel renders the one-line date strip.
type StripModel struct {
	data          StripData
	width, height int
	focused       bool
}

// NewStrip creates a new StripModel.
func NewStrip() *StripModel {
	return &StripModel{}
}

// Init implements Component.
func (s *StripModel) Init() tea.Cmd {
	return nil
}

// Update implements Component. The strip is driven entirely by the app model.
func (s *StripModel) Update(tea.Msg) (Component, tea.Cmd) {
	return s, nil
}

// SetData implements DataReceiver.
func (s *StripModel) SetData(data StripData) {
	s.data = data
}

// Data returns the last data set.
func (s *StripModel) Data() StripData {
	return s.data
}

// SetSize implements Component.
func (s *StripModel) SetSize(width, height int) {
	s.width = width
	s.height = height
}

func (s *StripModel) Focus()        { s.focused = true }
func (s *StripModel) Blur()         { s.focused = false }
func (s *StripModel) Focused() bool { return s.focused }

// View implements Component.
func (s *StripModel) View() string {
	if s.data.Current.IsZero() {
		return ""
	}

	left, right := " ", " "
	if !s.data.Prev.IsZero() {
		left = "‹"
	}
	if !s.data.Next.IsZero() {
		right = "›"
	}

	// Frame border and padding take four cells, arrows and gaps four more.
	inner := s.width - 8
	if inner < 10 {
		inner = 10
	}
	label := center(truncate(Label(s.data.Current, s.data.Unit), inner), inner)

	line := lipgloss.JoinHorizontal(lipgloss.Top,
		styles.Arrow.Render(left),
		" ",
		styles.Title.Render(label),
		" ",
		styles.Arrow.Render(right),
	)

	if s.focused {
		return styles.Focused.Render(line)
	}
	return styles.Blurred.Render(line)
}
