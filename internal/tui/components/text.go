package components

import (
	"strings"
	"time"

	"github.com/hy4ri/datepicker-tui/internal/calendar"
	"github.com/hy4ri/datepicker-tui/internal/pager"
	"github.com/mattn/go-runewidth"
)

// Label returns the strip caption for a page: "Monday, Mar 4th, 2024" for
// day pages and "March 2024" for month pages.
func Label(date time.Time, unit pager.Unit) string {
	if unit == pager.Month {
		return date.Format("January 2006")
	}
	return date.Format("Monday, Jan ") + calendar.Ordinal(date.Day()) + date.Format(", 2006")
}

// truncate cuts s to width cells, appending "…" if truncated.
// It handles wide characters correctly using runewidth.
func truncate(s string, width int) string {
	if width <= 0 {
		return ""
	}
	if runewidth.StringWidth(s) <= width {
		return s
	}

	w := 0
	for i, r := range s {
		rw := runewidth.RuneWidth(r)
		if w+rw > width-1 {
			return s[:i] + "…"
		}
		w += rw
	}
	return s
}

// center pads s with spaces to sit in the middle of width cells.
func center(s string, width int) string {
	gap := width - runewidth.StringWidth(s)
	if gap <= 0 {
		return s
	}
	left := gap / 2
	return strings.Repeat(" ", left) + s + strings.Repeat(" ", gap-left)
}

// weekdayAbbrev shortens a weekday label to n display cells.
func weekdayAbbrev(label string, n int) string {
	return runewidth.Truncate(label, n, "")
}
