// Package calendar builds month grids for the date picker.
package calendar

import (
	"errors"
	"fmt"
	"time"
)

// Supported civil year range. Dates outside it cannot be paged to.
const (
	MinYear = 1
	MaxYear = 9999
)

// DateRangeError reports date arithmetic that left the supported year range.
type DateRangeError struct {
	Op   string
	Date time.Time
}

// Error implements the error interface.
func (e *DateRangeError) Error() string {
	return fmt.Sprintf("%s: date %s outside supported range (years %d-%d)",
		e.Op, e.Date.Format("2006-01-02"), MinYear, MaxYear)
}

// IsDateRangeError checks if an error is a DateRangeError and returns it.
func IsDateRangeError(err error) (*DateRangeError, bool) {
	var rangeErr *DateRangeError
	ok := errors.As(err, &rangeErr)
	return rangeErr, ok
}

var monthDays = [12]int{31, 28, 31, 30, 31, 30, 31, 31, 30, 31, 30, 31}

// IsLeapYear reports whether February of year has 29 days.
func IsLeapYear(year int) bool {
	return (year%4 == 0 && year%100 != 0) || year%400 == 0
}

// DaysIn returns the number of days in the given month.
func DaysIn(year int, month time.Month) int {
	if month == time.February && IsLeapYear(year) {
		return 29
	}
	return monthDays[month-1]
}

// Civil dates are the calendar day of a time in its own location, stored as
// UTC midnight so day stepping never meets a DST gap.

// Midnight returns t's calendar day as a civil date.
func Midnight(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// FirstOfMonth returns the civil date of the first day of t's month.
func FirstOfMonth(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, time.UTC)
}

// AddDays moves t by n civil days.
func AddDays(t time.Time, n int) (time.Time, error) {
	y, m, d := t.Date()
	out := time.Date(y, m, d+n, 0, 0, 0, 0, time.UTC)
	if err := checkRange("add days", out); err != nil {
		return t, err
	}
	return out, nil
}

// AddMonths moves t by n months, clamping the day to the target month's length.
func AddMonths(t time.Time, n int) (time.Time, error) {
	y, m, d := t.Date()
	total := int(m) - 1 + n
	year := y + floorDiv(total, 12)
	month := time.Month(floorMod(total, 12) + 1)
	if year < MinYear || year > MaxYear {
		return t, &DateRangeError{Op: "add months", Date: time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)}
	}
	if last := DaysIn(year, month); d > last {
		d = last
	}
	return time.Date(year, month, d, 0, 0, 0, 0, time.UTC), nil
}

// MonthsBetween returns the number of calendar months from a to b.
func MonthsBetween(a, b time.Time) int {
	return (b.Year()-a.Year())*12 + int(b.Month()) - int(a.Month())
}

// SameDay reports whether a and b fall on the same civil date.
func SameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}

// SameMonth reports whether a and b fall in the same calendar month.
func SameMonth(a, b time.Time) bool {
	return a.Year() == b.Year() && a.Month() == b.Month()
}

// Ordinal returns n with its English suffix ("1st", "2nd", "11th").
func Ordinal(n int) string {
	suffix := "th"
	switch {
	case n%10 == 1 && n%100 != 11:
		suffix = "st"
	case n%10 == 2 && n%100 != 12:
		suffix = "nd"
	case n%10 == 3 && n%100 != 13:
		suffix = "rd"
	}
	return fmt.Sprintf("%d%s", n, suffix)
}

func checkRange(op string, t time.Time) error {
	if y := t.Year(); y < MinYear || y > MaxYear {
		return &DateRangeError{Op: op, Date: t}
	}
	return nil
}

func floorDiv(a, b int) int {
	q := a / b
	if a%b != 0 && (a < 0) != (b < 0) {
		q--
	}
	return q
}

func floorMod(a, b int) int {
	return a - floorDiv(a, b)*b
}
