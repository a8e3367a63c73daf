// Package picker synchronises the date strip and the month grid of the
// dual-pager date picker.
package picker

import (
	"fmt"
	"time"

	"github.com/hy4ri/datepicker-tui/internal/pager"
)

// PagerID names one of the two pagers.
type PagerID int

const (
	Strip PagerID = iota // Compact date strip
	Grid                 // Expandable month grid
)

// String returns the pager name.
func (p PagerID) String() string {
	if p == Grid {
		return "grid"
	}
	return "strip"
}

// Other returns the opposite pager.
func (p PagerID) Other() PagerID {
	if p == Grid {
		return Strip
	}
	return Grid
}

// Phase is the expand/collapse state.
type Phase int

const (
	Collapsed Phase = iota
	Expanding
	Expanded
	Collapsing
)

// String returns the phase name.
func (p Phase) String() string {
	switch p {
	case Expanding:
		return "expanding"
	case Expanded:
		return "expanded"
	case Collapsing:
		return "collapsing"
	default:
		return "collapsed"
	}
}

// Animating reports whether a transition is in flight.
func (p Phase) Animating() bool {
	return p == Expanding || p == Collapsing
}

// Open reports whether the grid is visible or becoming visible.
func (p Phase) Open() bool {
	return p == Expanding || p == Expanded
}

// State is a snapshot of the picker.
type State struct {
	Current time.Time  // Day-precision reference date
	Unit    pager.Unit // Strip unit
	Phase   Phase
	// ChangeLog is the scroll delta, in months, not yet applied to the grid.
	ChangeLog    int
	Selected     time.Time
	HasSelection bool
}

// Config holds picker behaviour settings.
type Config struct {
	Preload          int
	WeekStart        time.Weekday
	SixWeeks         bool
	SettleDelay      time.Duration // Delay before DateSelected is delivered
	CollapseOnSelect bool
}

// DefaultConfig returns the picker defaults.
func DefaultConfig() Config {
	return Config{
		Preload:     pager.DefaultPreload,
		WeekStart:   time.Sunday,
		SettleDelay: 150 * time.Millisecond,
	}
}

// Listener receives picker notifications.
type Listener interface {
	// DateSelected is called after a grid cell is chosen.
	DateSelected(date time.Time)
	// CurrentChanged is called whenever the reference date or unit changes.
	CurrentChanged(date time.Time, unit pager.Unit)
	// ExpansionChanged is called when a toggle is accepted.
	ExpansionChanged(expanded bool)
}

// NopListener ignores every notification.
type NopListener struct{}

func (NopListener) DateSelected(time.Time)               {}
func (NopListener) CurrentChanged(time.Time, pager.Unit) {}
func (NopListener) ExpansionChanged(bool)                {}

// Scheduler runs fn after d. Implementations must call fn on the same
// goroutine that drives the Coordinator.
type Scheduler interface {
	After(d time.Duration, fn func())
}

// SchedulerFunc adapts a function to Scheduler.
type SchedulerFunc func(d time.Duration, fn func())

// After implements Scheduler.
func (f SchedulerFunc) After(d time.Duration, fn func()) { f(d, fn) }

// Immediate runs callbacks synchronously, ignoring the delay.
var Immediate Scheduler = SchedulerFunc(func(_ time.Duration, fn func()) { fn() })

// Mirror tells the host to move the passive pager to Offset.
type Mirror struct {
	Target PagerID
	Offset float64
}

// TapResult describes what a tap did.
type TapResult int

const (
	TapIgnored TapResult = iota
	TapSelected
	TapToggled
)

// String returns the result name.
func (r TapResult) String() string {
	switch r {
	case TapSelected:
		return "selected"
	case TapToggled:
		return "toggled"
	default:
		return "ignored"
	}
}

// InvalidTransitionError reports an event that the current phase cannot accept.
type InvalidTransitionError struct {
	From  Phase
	Event string
}

// Error implements the error interface.
func (e *InvalidTransitionError) Error() string {
	return fmt.Sprintf("cannot %s while %s", e.Event, e.From)
}
