package components

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/hy4ri/datepicker-tui/internal/calendar"
	"github.com/hy4ri/datepicker-tui/internal/tui/styles"
)

// GridKeyMap holds the bindings the grid handles itself.
type GridKeyMap struct {
	Left   key.Binding
	Right  key.Binding
	Up     key.Binding
	Down   key.Binding
	Select key.Binding
}

// GridData is the page the grid draws and the dates it highlights.
type GridData struct {
	Grid     calendar.Grid
	Bucket   int       // Index of Grid in the grid window
	Prev     time.Time // Anchor of the previous page, zero at the window edge
	Next     time.Time // Anchor of the next page, zero at the window edge
	Current  time.Time
	Today    time.Time
	Selected time.Time // Zero when nothing is selected
}

// GridModel renders one month page and moves a day cursor over it.
type GridModel struct {
	keys          GridKeyMap
	theme         styles.Theme
	data          GridData
	cursor        time.Time
	width, height int
	focused       bool
}

// NewGrid creates a new GridModel.
func NewGrid(keys GridKeyMap, theme styles.Theme) *GridModel {
	return &GridModel{keys: keys, theme: theme}
}

// Init implements Component.
func (g *GridModel) Init() tea.Cmd {
	return nil
}

// Update implements Component.
func (g *GridModel) Update(msg tea.Msg) (Component, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok || !g.focused || g.cursor.IsZero() {
		return g, nil
	}

	switch {
	case key.Matches(keyMsg, g.keys.Left):
		return g, g.move(-1)
	case key.Matches(keyMsg, g.keys.Right):
		return g, g.move(1)
	case key.Matches(keyMsg, g.keys.Up):
		return g, g.move(-calendar.DaysPerWeek)
	case key.Matches(keyMsg, g.keys.Down):
		return g, g.move(calendar.DaysPerWeek)
	case key.Matches(keyMsg, g.keys.Select):
		cell := g.data.Grid.IndexOf(g.cursor)
		if cell < 0 {
			return g, nil
		}
		bucket := g.data.Bucket
		return g, func() tea.Msg {
			return CellTappedMsg{Bucket: bucket, Cell: cell}
		}
	}
	return g, nil
}

// move steps the cursor by days. Leaving the month asks the app to page.
func (g *GridModel) move(days int) tea.Cmd {
	next, err := calendar.AddDays(g.cursor, days)
	if err != nil {
		return nil
	}
	g.cursor = next
	if calendar.SameMonth(next, g.data.Grid.Anchor) {
		return nil
	}
	diff := calendar.MonthsBetween(g.data.Grid.Anchor, next)
	return func() tea.Msg {
		return PageRequestMsg{Diff: diff}
	}
}

// SetData implements DataReceiver. A cursor outside the new page snaps to
// the current date, or to the first of the month.
func (g *GridModel) SetData(data GridData) {
	g.data = data
	anchor := data.Grid.Anchor
	if anchor.IsZero() || calendar.SameMonth(g.cursor, anchor) {
		return
	}
	if calendar.SameMonth(data.Current, anchor) {
		g.cursor = calendar.Midnight(data.Current)
	} else {
		g.cursor = anchor
	}
}

// Cursor returns the date under the cursor.
func (g *GridModel) Cursor() time.Time {
	return g.cursor
}

// SetCursor moves the cursor to date if it lies in the shown month.
func (g *GridModel) SetCursor(date time.Time) {
	if calendar.SameMonth(date, g.data.Grid.Anchor) {
		g.cursor = calendar.Midnight(date)
	}
}

// SetSize implements Component.
func (g *GridModel) SetSize(width, height int) {
	g.width = width
	g.height = height
}

func (g *GridModel) Focus()        { g.focused = true }
func (g *GridModel) Blur()         { g.focused = false }
func (g *GridModel) Focused() bool { return g.focused }

// View implements Component.
func (g *GridModel) View() string {
	grid := g.data.Grid
	if len(grid.Cells) == 0 {
		return ""
	}
	cw := g.theme.CellWidth

	var b strings.Builder
	left, right := "  ", "  "
	if !g.data.Prev.IsZero() {
		left = styles.Arrow.Render("‹ ")
	}
	if !g.data.Next.IsZero() {
		right = styles.Arrow.Render(" ›")
	}
	title := styles.Subtitle.Render(center(grid.Anchor.Format("January 2006"), cw*calendar.DaysPerWeek-4))
	b.WriteString(left + title + right)
	b.WriteString("\n")

	for _, h := range grid.Headers() {
		b.WriteString(g.theme.Weekday.Render(center(weekdayAbbrev(h.Label, 2), cw)))
	}

	for i, c := range grid.Dates() {
		if i%calendar.DaysPerWeek == 0 {
			b.WriteString("\n")
		}
		b.WriteString(g.renderCell(c))
	}

	if g.focused {
		return styles.Focused.Render(b.String())
	}
	return styles.Blurred.Render(b.String())
}

func (g *GridModel) renderCell(c calendar.Day) string {
	text := fmt.Sprintf(" %2d ", c.DayNumber())
	gray := !c.InMonth()

	switch {
	case gray && g.theme.Scheme == styles.GrayHidden:
		return strings.Repeat(" ", g.theme.CellWidth)
	case !g.data.Selected.IsZero() && calendar.SameDay(c.Date, g.data.Selected):
		return g.theme.Selected.Render(text)
	case g.focused && calendar.SameDay(c.Date, g.cursor):
		return g.theme.Cursor.Render(text)
	case calendar.SameDay(c.Date, g.data.Today):
		return g.theme.Today.Render(text)
	case gray && c.Gray.Edge:
		return g.theme.GrayEdge.Render(text)
	case gray:
		return g.theme.Gray.Render(text)
	}
	return g.theme.Day.Render(text)
}

// Plain renders a grid without styling, one week per line. Out-of-month
// days are bracketed.
func Plain(grid calendar.Grid) string {
	var b strings.Builder
	b.WriteString(center(grid.Anchor.Format("January 2006"), 4*calendar.DaysPerWeek))
	b.WriteString("\n")
	for _, h := range grid.Headers() {
		b.WriteString(center(weekdayAbbrev(h.Label, 2), 4))
	}
	for i, c := range grid.Dates() {
		if i%calendar.DaysPerWeek == 0 {
			b.WriteString("\n")
		}
		if c.InMonth() {
			fmt.Fprintf(&b, " %2d ", c.DayNumber())
		} else {
			fmt.Fprintf(&b, "(%2d)", c.DayNumber())
		}
	}
	b.WriteString("\n")
	return b.String()
}
