// Package pager keeps a fixed window of preloaded pages centred on the
// current date and slides it as the user pages past the centre.
package pager

import (
	"fmt"
	"time"

	"github.com/hy4ri/datepicker-tui/internal/calendar"
)

// DefaultPreload is the number of pages kept on each side of the centre.
const DefaultPreload = 50

// Unit is the time span of one page.
type Unit int

const (
	Day Unit = iota
	Month
)

// String returns the unit name.
func (u Unit) String() string {
	if u == Month {
		return "month"
	}
	return "day"
}

// Normalize maps t onto the unit's bucket key. Month buckets are keyed by the
// first of the month so repeated stepping never drifts on short months.
func (u Unit) Normalize(t time.Time) time.Time {
	if u == Month {
		return calendar.FirstOfMonth(t)
	}
	return calendar.Midnight(t)
}

// Add moves a normalised bucket date by n units.
func (u Unit) Add(t time.Time, n int) (time.Time, error) {
	if u == Month {
		return calendar.AddMonths(t, n)
	}
	return calendar.AddDays(t, n)
}

// Fill produces the bucket value for a page date.
type Fill[T any] func(date time.Time) (T, error)

// Dates is the Fill for plain date strips.
func Dates(date time.Time) (time.Time, error) { return date, nil }

// Window is a fixed-capacity run of contiguous pages. The centre index always
// holds the current page once an operation returns.
type Window[T any] struct {
	unit    Unit
	preload int
	fill    Fill[T]
	dates   []time.Time
	buckets []T
}

// New creates an empty Window. Call Initialize before use.
func New[T any](preload int, unit Unit, fill Fill[T]) *Window[T] {
	if preload < 0 {
		preload = 0
	}
	return &Window[T]{unit: unit, preload: preload, fill: fill}
}

// Capacity returns the number of buckets, 2*preload+1.
func (w *Window[T]) Capacity() int { return 2*w.preload + 1 }

// Center returns the index of the current bucket.
func (w *Window[T]) Center() int { return w.preload }

// Unit returns the page unit.
func (w *Window[T]) Unit() Unit { return w.unit }

// Ready reports whether the window has been initialized.
func (w *Window[T]) Ready() bool { return len(w.dates) == w.Capacity() }

// SetUnit changes the page unit. The buckets are stale until Initialize runs.
func (w *Window[T]) SetUnit(u Unit) { w.unit = u }

// Current returns the centre bucket's date.
func (w *Window[T]) Current() time.Time {
	if !w.Ready() {
		return time.Time{}
	}
	return w.dates[w.Center()]
}

// CurrentBucket returns the centre bucket's value.
func (w *Window[T]) CurrentBucket() T {
	var zero T
	if !w.Ready() {
		return zero
	}
	return w.buckets[w.Center()]
}

// Date returns the page date at index i.
func (w *Window[T]) Date(i int) (time.Time, bool) {
	if i < 0 || i >= len(w.dates) {
		return time.Time{}, false
	}
	return w.dates[i], true
}

// Bucket returns the value at index i.
func (w *Window[T]) Bucket(i int) (T, bool) {
	if i < 0 || i >= len(w.buckets) {
		var zero T
		return zero, false
	}
	return w.buckets[i], true
}

// Dates returns a copy of the page dates.
func (w *Window[T]) Dates() []time.Time {
	return append([]time.Time(nil), w.dates...)
}

// Buckets returns a copy of the bucket values.
func (w *Window[T]) Buckets() []T {
	return append([]T(nil), w.buckets...)
}

// Visible returns the buckets within radius pages of the centre.
func (w *Window[T]) Visible(radius int) []T {
	if !w.Ready() {
		return nil
	}
	lo, hi := w.Center()-radius, w.Center()+radius+1
	if lo < 0 {
		lo = 0
	}
	if hi > len(w.buckets) {
		hi = len(w.buckets)
	}
	return append([]T(nil), w.buckets[lo:hi]...)
}

// Clone returns an independent copy sharing only the immutable bucket values.
func (w *Window[T]) Clone() *Window[T] {
	return &Window[T]{
		unit:    w.unit,
		preload: w.preload,
		fill:    w.fill,
		dates:   w.Dates(),
		buckets: w.Buckets(),
	}
}

// Initialize fills the window around current.
func (w *Window[T]) Initialize(current time.Time) error {
	n := w.Capacity()
	center := w.unit.Normalize(current)

	dates := make([]time.Time, n)
	dates[w.Center()] = center
	for i := w.Center() - 1; i >= 0; i-- {
		d, err := w.unit.Add(dates[i+1], -1)
		if err != nil {
			return fmt.Errorf("initialize window: %w", err)
		}
		dates[i] = d
	}
	for i := w.Center() + 1; i < n; i++ {
		d, err := w.unit.Add(dates[i-1], 1)
		if err != nil {
			return fmt.Errorf("initialize window: %w", err)
		}
		dates[i] = d
	}

	buckets := make([]T, n)
	for i, d := range dates {
		b, err := w.fill(d)
		if err != nil {
			return fmt.Errorf("initialize window: %w", err)
		}
		buckets[i] = b
	}

	w.dates, w.buckets = dates, buckets
	return nil
}

// Shift slides the window by diff pages: positive moves forward in time.
// Pages still inside the window are reused; every new page is derived from
// its neighbour one unit at a time. On error the window is left unchanged.
func (w *Window[T]) Shift(diff int) error {
	if diff == 0 || !w.Ready() {
		return nil
	}
	n := len(w.dates)
	dates := make([]time.Time, n)
	buckets := make([]T, n)
	fresh := make([]bool, n)

	if diff > 0 {
		for i := 0; i+diff < n; i++ {
			dates[i], buckets[i] = w.dates[i+diff], w.buckets[i+diff]
		}
		// Walk forward from the last known page, placing pages once they land
		// inside the window.
		cur, pos := w.dates[n-1], n-1-diff
		for pos < n-1 {
			next, err := w.unit.Add(cur, 1)
			if err != nil {
				return fmt.Errorf("shift window by %d: %w", diff, err)
			}
			cur, pos = next, pos+1
			if pos >= 0 {
				dates[pos], fresh[pos] = cur, true
			}
		}
	} else {
		for i := n - 1; i+diff >= 0; i-- {
			dates[i], buckets[i] = w.dates[i+diff], w.buckets[i+diff]
		}
		cur, pos := w.dates[0], -diff
		for pos > 0 {
			prev, err := w.unit.Add(cur, -1)
			if err != nil {
				return fmt.Errorf("shift window by %d: %w", diff, err)
			}
			cur, pos = prev, pos-1
			if pos < n {
				dates[pos], fresh[pos] = cur, true
			}
		}
	}

	for i := range dates {
		if !fresh[i] {
			continue
		}
		b, err := w.fill(dates[i])
		if err != nil {
			return fmt.Errorf("shift window by %d: %w", diff, err)
		}
		buckets[i] = b
	}

	w.dates, w.buckets = dates, buckets
	return nil
}
