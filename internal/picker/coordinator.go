package picker

import (
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/hy4ri/datepicker-tui/internal/calendar"
	"github.com/hy4ri/datepicker-tui/internal/pager"
)

// Coordinator owns the picker state and both pagers. It is not safe for
// concurrent use: every method must be called from the host's event loop.
type Coordinator struct {
	cfg     Config
	builder calendar.Builder
	strip   *pager.Window[time.Time]
	grid    *pager.Window[calendar.Grid]
	state   State
	driving bool
	driver  PagerID
	// settling is set once the driver ends a mirrored gesture; the passive
	// pager's own scroll end is still to come and must not shift again.
	settling  bool
	listener  Listener
	scheduler Scheduler
	log       *slog.Logger
}

// Option configures a Coordinator.
type Option func(*Coordinator)

// WithListener sets the notification receiver.
func WithListener(l Listener) Option {
	return func(c *Coordinator) { c.listener = l }
}

// WithScheduler sets how deferred notifications are delivered.
func WithScheduler(s Scheduler) Option {
	return func(c *Coordinator) { c.scheduler = s }
}

// WithLogger sets the debug logger.
func WithLogger(l *slog.Logger) Option {
	return func(c *Coordinator) { c.log = l }
}

// New creates a collapsed Coordinator showing now.
func New(cfg Config, now time.Time, opts ...Option) (*Coordinator, error) {
	if cfg.Preload < 0 {
		return nil, fmt.Errorf("preload must not be negative, got %d", cfg.Preload)
	}
	c := &Coordinator{
		cfg:       cfg,
		builder:   calendar.NewBuilder(calendar.Options{WeekStart: cfg.WeekStart, SixWeeks: cfg.SixWeeks}),
		listener:  NopListener{},
		scheduler: Immediate,
		log:       slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(c)
	}

	current := calendar.Midnight(now)
	c.strip = pager.New(cfg.Preload, pager.Day, pager.Dates)
	if err := c.strip.Initialize(current); err != nil {
		return nil, fmt.Errorf("failed to load date strip: %w", err)
	}
	c.grid = pager.New(cfg.Preload, pager.Month, c.builder.Build)
	if err := c.grid.Initialize(current); err != nil {
		return nil, fmt.Errorf("failed to load month grid: %w", err)
	}
	c.state = State{Current: current, Unit: pager.Day, Phase: Collapsed}

	return c, nil
}

// State returns a snapshot of the picker state.
func (c *Coordinator) State() State { return c.state }

// StripCenter returns the index of the strip's current page.
func (c *Coordinator) StripCenter() int { return c.strip.Center() }

// StripPage returns the strip page at index i.
func (c *Coordinator) StripPage(i int) (time.Time, bool) { return c.strip.Bucket(i) }

// StripPages returns the strip pages within radius of the centre.
func (c *Coordinator) StripPages(radius int) []time.Time { return c.strip.Visible(radius) }

// GridCenter returns the index of the grid's current page.
func (c *Coordinator) GridCenter() int { return c.grid.Center() }

// GridPage returns the grid page at index i.
func (c *Coordinator) GridPage(i int) (calendar.Grid, bool) { return c.grid.Bucket(i) }

// CurrentGrid returns the grid's current page.
func (c *Coordinator) CurrentGrid() calendar.Grid { return c.grid.CurrentBucket() }

// snapshot is a working copy that replaces the live state only on success.
type snapshot struct {
	strip *pager.Window[time.Time]
	grid  *pager.Window[calendar.Grid]
	state State
}

func (c *Coordinator) begin() *snapshot {
	return &snapshot{strip: c.strip.Clone(), grid: c.grid.Clone(), state: c.state}
}

func (c *Coordinator) commit(s *snapshot) {
	prev := c.state
	c.strip, c.grid, c.state = s.strip, s.grid, s.state
	if !prev.Current.Equal(c.state.Current) || prev.Unit != c.state.Unit {
		c.listener.CurrentChanged(c.state.Current, c.state.Unit)
	}
}

// DragBegan marks id as the pager the user is driving.
func (c *Coordinator) DragBegan(id PagerID) {
	c.driving, c.driver, c.settling = true, id, false
	c.log.Debug("drag began", "pager", id, "phase", c.state.Phase)
}

// ScrollProgressed reports a live scroll offset. When the grid is open and id
// is the driving pager it returns the offset the passive pager must mirror.
// Offsets reported by the passive pager are echoes and are ignored.
func (c *Coordinator) ScrollProgressed(id PagerID, offset float64) (Mirror, bool) {
	if !c.state.Phase.Open() || !c.driving || id != c.driver {
		return Mirror{}, false
	}
	return Mirror{Target: id.Other(), Offset: offset}, true
}

// ScrollEnded applies a finished paging gesture of diff pages from the centre.
// A DateRangeError leaves the picker unchanged.
func (c *Coordinator) ScrollEnded(id PagerID, diff int) error {
	if (c.driving || c.settling) && id != c.driver {
		c.log.Debug("ignoring scroll end from passive pager", "pager", id)
		return nil
	}
	if c.driving {
		c.settling = c.state.Phase.Open()
	}
	c.driving = false
	if diff == 0 {
		return nil
	}

	next := c.begin()
	var err error
	switch {
	case id == Strip && next.state.Phase.Open():
		err = next.stripScrolledOpen(diff)
	case id == Strip:
		err = next.stripScrolledClosed(diff)
	case id == Grid && next.state.Phase.Open():
		err = next.gridScrolled(diff)
	default:
		c.log.Debug("ignoring scroll end on hidden grid", "diff", diff)
		return nil
	}
	if err != nil {
		c.log.Debug("scroll rejected", "pager", id, "diff", diff, "err", err)
		return err
	}

	c.commit(next)
	c.log.Debug("scroll ended", "pager", id, "diff", diff,
		"current", c.state.Current.Format("2006-01-02"), "changeLog", c.state.ChangeLog)
	return nil
}

func (c *Coordinator) endGesture() {
	c.driving, c.settling = false, false
}

// Step pages the strip by delta, as the arrow buttons do.
func (c *Coordinator) Step(delta int) error {
	c.endGesture()
	return c.ScrollEnded(Strip, delta)
}

// stripScrolledClosed handles a strip scroll while the grid is hidden. The grid
// is left alone; its pending month offset accumulates in the change log.
func (s *snapshot) stripScrolledClosed(diff int) error {
	before := s.strip.Current()
	if err := s.strip.Shift(diff); err != nil {
		return err
	}
	after := s.strip.Current()
	s.state.ChangeLog += monthDelta(s.strip.Unit(), diff, before, after)
	s.state.Current = s.resolveCurrent(after)
	return nil
}

// stripScrolledOpen handles a strip scroll while the grid is visible: the grid
// follows by the normalized diff.
func (s *snapshot) stripScrolledOpen(diff int) error {
	before := s.strip.Current()
	if err := s.strip.Shift(diff); err != nil {
		return err
	}
	after := s.strip.Current()

	norm := monthDelta(s.strip.Unit(), diff, before, after)
	if norm != 0 {
		if err := s.grid.Shift(norm); err != nil {
			return err
		}
	}
	s.state.ChangeLog -= norm
	s.state.Current = s.resolveCurrent(after)
	return nil
}

// gridScrolled handles a grid page change; the strip follows month for month.
func (s *snapshot) gridScrolled(diff int) error {
	if err := s.grid.Shift(diff); err != nil {
		return err
	}
	current, err := calendar.AddMonths(s.state.Current, diff)
	if err != nil {
		return err
	}
	if err := s.alignStrip(current); err != nil {
		return err
	}
	s.state.ChangeLog -= diff
	s.state.Current = current
	return nil
}

// resolveCurrent maps a strip page date to a day-precision reference date.
// Month pages keep the previous day of month, clamped to the month length.
func (s *snapshot) resolveCurrent(page time.Time) time.Time {
	if s.strip.Unit() == pager.Day {
		return page
	}
	day := s.state.Current.Day()
	if last := calendar.DaysIn(page.Year(), page.Month()); day > last {
		day = last
	}
	return time.Date(page.Year(), page.Month(), day, 0, 0, 0, 0, time.UTC)
}

// alignStrip moves the strip so its centre page contains date.
func (s *snapshot) alignStrip(date time.Time) error {
	if s.strip.Unit() == pager.Month {
		return s.strip.Shift(calendar.MonthsBetween(s.strip.Current(), date))
	}
	if calendar.SameDay(s.strip.Current(), date) {
		return nil
	}
	return s.strip.Initialize(date)
}

// alignGrid moves the grid so its centre page is date's month.
func (s *snapshot) alignGrid(date time.Time) error {
	return s.grid.Shift(calendar.MonthsBetween(s.grid.Current(), date))
}

// monthDelta normalizes a strip diff to grid pages. Month strips map 1:1; day
// strips move the grid only when the scroll crossed into another month.
func monthDelta(unit pager.Unit, diff int, before, after time.Time) int {
	if unit == pager.Month {
		return diff
	}
	return calendar.MonthsBetween(before, after)
}

// Toggle requests expand or collapse. Requests made while a transition is in
// flight are ignored and reported as not accepted.
func (c *Coordinator) Toggle() (bool, error) {
	if c.state.Phase.Animating() {
		err := &InvalidTransitionError{From: c.state.Phase, Event: "toggle"}
		c.log.Debug("toggle ignored", "err", err)
		return false, nil
	}

	next := c.begin()
	var err error
	if next.state.Phase == Collapsed {
		err = next.expand()
	} else {
		err = next.collapse()
	}
	if err != nil {
		return false, err
	}

	c.endGesture()
	c.commit(next)
	c.listener.ExpansionChanged(c.state.Phase.Open())
	c.log.Debug("toggle accepted", "phase", c.state.Phase, "current", c.state.Current.Format("2006-01-02"))
	return true, nil
}

// expand switches the strip to months and replays the change log on the grid.
func (s *snapshot) expand() error {
	s.strip.SetUnit(pager.Month)
	if err := s.strip.Initialize(s.state.Current); err != nil {
		return err
	}
	if err := s.grid.Shift(s.state.ChangeLog); err != nil {
		return err
	}
	if !calendar.SameMonth(s.grid.Current(), s.state.Current) {
		if err := s.grid.Initialize(s.state.Current); err != nil {
			return err
		}
	}
	s.state.ChangeLog = 0
	s.state.Unit = pager.Month
	s.state.Phase = Expanding
	return nil
}

// collapse switches the strip back to days around the grid's reference date.
func (s *snapshot) collapse() error {
	s.strip.SetUnit(pager.Day)
	if err := s.strip.Initialize(s.state.Current); err != nil {
		return err
	}
	s.state.ChangeLog = 0
	s.state.Unit = pager.Day
	s.state.Phase = Collapsing
	return nil
}

// TransitionComplete finishes an in-flight expand or collapse.
func (c *Coordinator) TransitionComplete() {
	switch c.state.Phase {
	case Expanding:
		c.state.Phase = Expanded
	case Collapsing:
		c.state.Phase = Collapsed
	default:
		return
	}
	c.log.Debug("transition complete", "phase", c.state.Phase)
}

// TapCell handles a tap on a pager cell. Strip taps toggle expansion. Grid taps
// select in-month dates; headers, neighbouring-month days and out-of-range
// indexes are ignored.
func (c *Coordinator) TapCell(id PagerID, bucket, cell int) (TapResult, error) {
	if id == Strip {
		ok, err := c.Toggle()
		if err != nil || !ok {
			return TapIgnored, err
		}
		return TapToggled, nil
	}

	page, ok := c.grid.Bucket(bucket)
	if !ok {
		return TapIgnored, nil
	}
	day, ok := page.Cell(cell)
	if !ok || day.IsHeader() || !day.InMonth() {
		return TapIgnored, nil
	}

	next := c.begin()
	if err := next.selectDate(day.Date); err != nil {
		return TapIgnored, err
	}
	c.commit(next)

	date := day.Date
	c.scheduler.After(c.cfg.SettleDelay, func() { c.listener.DateSelected(date) })
	c.log.Debug("date selected", "date", date.Format("2006-01-02"))

	if c.cfg.CollapseOnSelect && c.state.Phase == Expanded {
		if _, err := c.Toggle(); err != nil {
			return TapSelected, err
		}
	}
	return TapSelected, nil
}

// Select marks date as selected if it is shown by the current grid page.
func (c *Coordinator) Select(date time.Time) (TapResult, error) {
	idx := c.CurrentGrid().IndexOf(date)
	if idx < 0 {
		return TapIgnored, nil
	}
	return c.TapCell(Grid, c.grid.Center(), idx)
}

func (s *snapshot) selectDate(date time.Time) error {
	if err := s.alignGrid(date); err != nil {
		return err
	}
	if err := s.alignStrip(date); err != nil {
		return err
	}
	s.state.Current = date
	s.state.Selected = date
	s.state.HasSelection = true
	if !s.state.Phase.Open() {
		s.state.ChangeLog = calendar.MonthsBetween(s.grid.Current(), s.strip.Current())
	}
	return nil
}

// JumpTo recentres both pagers on date, keeping the current unit and phase.
func (c *Coordinator) JumpTo(date time.Time) error {
	date = calendar.Midnight(date)
	next := c.begin()
	if err := next.strip.Initialize(date); err != nil {
		return err
	}
	if err := next.grid.Initialize(date); err != nil {
		return err
	}
	next.state.Current = date
	next.state.ChangeLog = 0
	c.endGesture()
	c.commit(next)
	return nil
}
