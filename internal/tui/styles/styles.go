// Package styles provides Lip Gloss styles for the date picker.
package styles

import "github.com/charmbracelet/lipgloss"

// Terminal-adaptive colors that work in both light and dark terminals.
var (
	// Subtle is a muted color for secondary text
	Subtle = lipgloss.AdaptiveColor{Light: "#666666", Dark: "#999999"}

	// Highlight is the accent color for the cursor and selection
	Highlight = lipgloss.AdaptiveColor{Light: "#874BFD", Dark: "#990000"}

	// Shade backs out-of-month cells
	Shade = lipgloss.AdaptiveColor{Light: "#E4E4E4", Dark: "#2A2A2A"}

	// EdgeShade backs the out-of-month cell that touches the month
	EdgeShade = lipgloss.AdaptiveColor{Light: "#D6D6D6", Dark: "#383838"}

	ErrorColor   = lipgloss.AdaptiveColor{Light: "#FF0000", Dark: "#FF6666"}
	SuccessColor = lipgloss.AdaptiveColor{Light: "#00AA00", Dark: "#66FF66"}
)

// Base styles
var (
	// App is the base style for the entire application
	App = lipgloss.NewStyle().
		Padding(1, 2)

	// Title is the style for the strip label
	Title = lipgloss.NewStyle().
		Bold(true).
		Foreground(Highlight)

	// Subtitle is for the grid month heading
	Subtitle = lipgloss.NewStyle().
			Bold(true).
			Foreground(Subtle)

	// Arrow is for the previous/next page indicators
	Arrow = lipgloss.NewStyle().
		Foreground(Subtle)

	// Focused frames the pager that has keyboard focus
	Focused = lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(Highlight).
		Padding(0, 1)

	// Blurred frames the pager without focus
	Blurred = lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(Subtle).
		Padding(0, 1)
)

// StatusBar styles
var (
	StatusBarText = lipgloss.NewStyle().
			Foreground(Subtle)

	StatusBarError = lipgloss.NewStyle().
			Foreground(ErrorColor).
			Bold(true)

	StatusBarSuccess = lipgloss.NewStyle().
				Foreground(SuccessColor)
)

// Calendar styles
var (
	// CalendarWeekday is for day-of-week headers
	CalendarWeekday = lipgloss.NewStyle().
			Foreground(Subtle)

	// CalendarDay is for in-month days
	CalendarDay = lipgloss.NewStyle()

	// CalendarDaySelected is for the chosen date
	CalendarDaySelected = lipgloss.NewStyle().
				Bold(true).
				Background(Highlight).
				Foreground(lipgloss.Color("#ffffff"))

	// CalendarDayCursor is for the keyboard cursor in the focused grid
	CalendarDayCursor = lipgloss.NewStyle().
				Bold(true).
				Underline(true).
				Foreground(Highlight)

	// CalendarDayToday is for today's date
	CalendarDayToday = lipgloss.NewStyle().
				Bold(true).
				Foreground(SuccessColor)

	// CalendarDayOtherMonth is for days from neighbouring months
	CalendarDayOtherMonth = lipgloss.NewStyle().
				Foreground(Subtle).
				Background(Shade)

	// CalendarDayOtherMonthEdge is for the gray cell adjacent to the month
	CalendarDayOtherMonthEdge = lipgloss.NewStyle().
					Foreground(Subtle).
					Background(EdgeShade)
)

// GrayScheme selects how out-of-month cells are drawn.
type GrayScheme string

const (
	GrayShade  GrayScheme = "shade"  // Shaded background, edge cell darker
	GrayDim    GrayScheme = "dim"    // Faint text, no background
	GrayHidden GrayScheme = "hidden" // Blank cells
)

// Valid reports whether s is a known scheme.
func (s GrayScheme) Valid() bool {
	switch s {
	case GrayShade, GrayDim, GrayHidden:
		return true
	}
	return false
}

// Theme is the resolved set of grid styles for one configuration.
type Theme struct {
	Scheme    GrayScheme
	Weekday   lipgloss.Style
	Day       lipgloss.Style
	Today     lipgloss.Style
	Selected  lipgloss.Style
	Cursor    lipgloss.Style
	Gray      lipgloss.Style
	GrayEdge  lipgloss.Style
	CellWidth int
}

// NewTheme builds a Theme. Unknown schemes fall back to GrayShade.
func NewTheme(scheme GrayScheme, boldHeaders bool) Theme {
	if !scheme.Valid() {
		scheme = GrayShade
	}
	t := Theme{
		Scheme:    scheme,
		Weekday:   CalendarWeekday.Bold(boldHeaders),
		Day:       CalendarDay,
		Today:     CalendarDayToday,
		Selected:  CalendarDaySelected,
		Cursor:    CalendarDayCursor,
		Gray:      CalendarDayOtherMonth,
		GrayEdge:  CalendarDayOtherMonthEdge,
		CellWidth: 4,
	}
	if scheme == GrayDim {
		t.Gray = lipgloss.NewStyle().Faint(true)
		t.GrayEdge = lipgloss.NewStyle().Faint(true).Italic(true)
	}
	return t
}
