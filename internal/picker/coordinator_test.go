package picker

import (
	"testing"
	"time"

	"github.com/hy4ri/datepicker-tui/internal/calendar"
	"github.com/hy4ri/datepicker-tui/internal/pager"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// recorder implements Listener for testing.
type recorder struct {
	selected  []time.Time
	current   []time.Time
	expansion []bool
}

func (r *recorder) DateSelected(d time.Time)                 { r.selected = append(r.selected, d) }
func (r *recorder) CurrentChanged(d time.Time, _ pager.Unit) { r.current = append(r.current, d) }
func (r *recorder) ExpansionChanged(open bool)               { r.expansion = append(r.expansion, open) }

// deferred implements Scheduler by queueing callbacks until flushed.
type deferred struct {
	delays []time.Duration
	queue  []func()
}

func (d *deferred) After(delay time.Duration, fn func()) {
	d.delays = append(d.delays, delay)
	d.queue = append(d.queue, fn)
}

func (d *deferred) flush() {
	for _, fn := range d.queue {
		fn()
	}
	d.queue = nil
}

func newTestCoordinator(t *testing.T, now time.Time, opts ...Option) (*Coordinator, *recorder) {
	t.Helper()
	cfg := DefaultConfig()
	cfg.Preload = 5
	rec := &recorder{}
	c, err := New(cfg, now, append([]Option{WithListener(rec)}, opts...)...)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return c, rec
}

func expand(t *testing.T, c *Coordinator) {
	t.Helper()
	ok, err := c.Toggle()
	if err != nil || !ok {
		t.Fatalf("Toggle: accepted=%v err=%v", ok, err)
	}
	c.TransitionComplete()
}

func TestNew(t *testing.T) {
	c, _ := newTestCoordinator(t, time.Date(2024, time.March, 10, 15, 30, 0, 0, time.Local))
	s := c.State()

	if s.Phase != Collapsed || s.Unit != pager.Day || s.ChangeLog != 0 {
		t.Errorf("Unexpected initial state %+v", s)
	}
	if !s.Current.Equal(date(2024, time.March, 10)) {
		t.Errorf("Expected current to be truncated to the day, got %s", s.Current)
	}
	if g := c.CurrentGrid(); g.Anchor.Month() != time.March {
		t.Errorf("Expected March grid, got %s", g.Anchor.Month())
	}
	if len(c.StripPages(5)) != 11 {
		t.Errorf("Expected 11 strip pages, got %d", len(c.StripPages(5)))
	}
}

func TestCollapsedScroll_ChangeLog(t *testing.T) {
	tests := []struct {
		name      string
		diff      int
		changeLog int
		current   time.Time
	}{
		{"same month", 3, 0, date(2024, time.March, 13)},
		{"into next month", 25, 1, date(2024, time.April, 4)},
		{"into previous month", -10, -1, date(2024, time.February, 29)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, _ := newTestCoordinator(t, date(2024, time.March, 10))
			c.DragBegan(Strip)
			if err := c.ScrollEnded(Strip, tt.diff); err != nil {
				t.Fatal(err)
			}
			s := c.State()
			if s.ChangeLog != tt.changeLog {
				t.Errorf("Expected changeLog %d, got %d", tt.changeLog, s.ChangeLog)
			}
			if !s.Current.Equal(tt.current) {
				t.Errorf("Expected current %s, got %s", tt.current.Format("2006-01-02"), s.Current.Format("2006-01-02"))
			}
			if g := c.CurrentGrid(); g.Anchor.Month() != time.March {
				t.Errorf("Hidden grid should not move, got %s", g.Anchor.Month())
			}
		})
	}
}

func TestExpand_ReplaysChangeLog(t *testing.T) {
	c, rec := newTestCoordinator(t, date(2024, time.January, 15))

	for _, diff := range []int{5, 15, 30} { // Jan 20, Feb 4, Mar 5
		if err := c.Step(diff); err != nil {
			t.Fatal(err)
		}
	}
	if got := c.State().ChangeLog; got != 2 {
		t.Fatalf("Expected changeLog 2, got %d", got)
	}

	ok, err := c.Toggle()
	if err != nil || !ok {
		t.Fatalf("Toggle: %v %v", ok, err)
	}
	s := c.State()
	if s.Phase != Expanding || s.Unit != pager.Month || s.ChangeLog != 0 {
		t.Errorf("Unexpected state after toggle %+v", s)
	}
	if g := c.CurrentGrid(); g.Anchor != date(2024, time.March, 1) {
		t.Errorf("Expected grid shifted two months to March, got %s", g.Anchor.Format("2006-01"))
	}
	if p, _ := c.StripPage(c.StripCenter()); !p.Equal(date(2024, time.March, 1)) {
		t.Errorf("Expected month strip centred on March, got %s", p.Format("2006-01-02"))
	}
	if len(rec.expansion) != 1 || !rec.expansion[0] {
		t.Errorf("Expected one expansion notification, got %v", rec.expansion)
	}

	c.TransitionComplete()
	if c.State().Phase != Expanded {
		t.Errorf("Expected expanded, got %s", c.State().Phase)
	}
}

func TestToggleIgnoredWhileAnimating(t *testing.T) {
	c, rec := newTestCoordinator(t, date(2024, time.March, 10))
	if ok, _ := c.Toggle(); !ok {
		t.Fatal("First toggle should be accepted")
	}

	ok, err := c.Toggle()
	if ok || err != nil {
		t.Errorf("Expected toggle to be ignored, got accepted=%v err=%v", ok, err)
	}
	if c.State().Phase != Expanding {
		t.Errorf("Expected phase to stay expanding, got %s", c.State().Phase)
	}
	if len(rec.expansion) != 1 {
		t.Errorf("Expected a single expansion notification, got %d", len(rec.expansion))
	}
}

func TestExpandedScrolls(t *testing.T) {
	c, _ := newTestCoordinator(t, date(2024, time.January, 31))
	expand(t, c)

	c.DragBegan(Grid)
	if err := c.ScrollEnded(Grid, 1); err != nil {
		t.Fatal(err)
	}
	s := c.State()
	if !s.Current.Equal(date(2024, time.February, 29)) {
		t.Errorf("Expected clamped Feb 29, got %s", s.Current.Format("2006-01-02"))
	}
	if s.ChangeLog != -1 {
		t.Errorf("Expected changeLog -1, got %d", s.ChangeLog)
	}
	if p, _ := c.StripPage(c.StripCenter()); p.Month() != time.February {
		t.Errorf("Expected strip to follow to February, got %s", p.Month())
	}

	c.DragBegan(Strip)
	if err := c.ScrollEnded(Strip, -3); err != nil {
		t.Fatal(err)
	}
	s = c.State()
	if g := c.CurrentGrid(); g.Anchor != date(2023, time.November, 1) {
		t.Errorf("Expected grid on November 2023, got %s", g.Anchor.Format("2006-01"))
	}
	if s.ChangeLog != 2 {
		t.Errorf("Expected changeLog 2, got %d", s.ChangeLog)
	}
	if !s.Current.Equal(date(2023, time.November, 29)) {
		t.Errorf("Expected Nov 29, got %s", s.Current.Format("2006-01-02"))
	}
}

func TestMirroring(t *testing.T) {
	c, _ := newTestCoordinator(t, date(2024, time.March, 10))

	c.DragBegan(Strip)
	if _, ok := c.ScrollProgressed(Strip, 3.5); ok {
		t.Error("Collapsed picker should not mirror into the hidden grid")
	}
	_ = c.ScrollEnded(Strip, 0)

	expand(t, c)
	c.DragBegan(Grid)
	m, ok := c.ScrollProgressed(Grid, 5.25)
	if !ok || m.Target != Strip || m.Offset != 5.25 {
		t.Errorf("Expected mirror to strip at 5.25, got %+v %v", m, ok)
	}
	if _, ok := c.ScrollProgressed(Strip, 5.25); ok {
		t.Error("Passive pager echo should not mirror back")
	}

	// The passive pager's scroll end must not shift anything.
	before := c.State()
	if err := c.ScrollEnded(Strip, 1); err != nil {
		t.Fatal(err)
	}
	if c.State() != before {
		t.Errorf("Passive scroll end changed state: %+v", c.State())
	}
	if err := c.ScrollEnded(Grid, 1); err != nil {
		t.Fatal(err)
	}
	if got := c.State().Current.Month(); got != time.April {
		t.Errorf("Expected April after driving grid scroll, got %s", got)
	}
}

func TestPassiveEndAfterDriverEnd(t *testing.T) {
	c, _ := newTestCoordinator(t, date(2024, time.March, 10))
	expand(t, c)

	c.DragBegan(Grid)
	if _, ok := c.ScrollProgressed(Grid, 6); !ok {
		t.Fatal("Expected the strip to mirror the grid")
	}
	if err := c.ScrollEnded(Grid, 1); err != nil {
		t.Fatal(err)
	}
	// The mirrored strip settles after the grid and reports its own page.
	if err := c.ScrollEnded(Strip, 1); err != nil {
		t.Fatal(err)
	}
	if got := c.CurrentGrid().Anchor.Month(); got != time.April {
		t.Errorf("Expected one grid page to land on April, got %s", got)
	}
	if got := c.State().Current.Month(); got != time.April {
		t.Errorf("Expected current in April, got %s", got)
	}

	// A new gesture on the strip is honoured again.
	c.DragBegan(Strip)
	if err := c.ScrollEnded(Strip, 1); err != nil {
		t.Fatal(err)
	}
	if got := c.CurrentGrid().Anchor.Month(); got != time.May {
		t.Errorf("Expected strip drag to move the grid to May, got %s", got)
	}

	// Step is not a mirrored gesture and never waits for an echo.
	c.DragBegan(Grid)
	_ = c.ScrollEnded(Grid, 1)
	if err := c.Step(1); err != nil {
		t.Fatal(err)
	}
	if got := c.CurrentGrid().Anchor.Month(); got != time.July {
		t.Errorf("Expected Step after a grid drag to reach July, got %s", got)
	}
}

func TestCollapse(t *testing.T) {
	c, rec := newTestCoordinator(t, date(2024, time.March, 10))
	expand(t, c)
	if err := c.ScrollEnded(Grid, 2); err != nil {
		t.Fatal(err)
	}

	ok, err := c.Toggle()
	if err != nil || !ok {
		t.Fatalf("Toggle: %v %v", ok, err)
	}
	s := c.State()
	if s.Phase != Collapsing || s.Unit != pager.Day || s.ChangeLog != 0 {
		t.Errorf("Unexpected state %+v", s)
	}
	if p, _ := c.StripPage(c.StripCenter()); !p.Equal(date(2024, time.May, 10)) {
		t.Errorf("Expected day strip on May 10, got %s", p.Format("2006-01-02"))
	}
	c.TransitionComplete()
	if c.State().Phase != Collapsed {
		t.Errorf("Expected collapsed, got %s", c.State().Phase)
	}
	if len(rec.expansion) != 2 || rec.expansion[1] {
		t.Errorf("Expected expand then collapse notifications, got %v", rec.expansion)
	}
}

func TestTapCell(t *testing.T) {
	sched := &deferred{}
	c, rec := newTestCoordinator(t, date(2024, time.March, 10), WithScheduler(sched))
	expand(t, c)
	center := c.GridCenter()
	g := c.CurrentGrid()

	tests := []struct {
		name   string
		bucket int
		cell   int
	}{
		{"header", center, 0},
		{"leading gray", center, calendar.DaysPerWeek},
		{"trailing gray", center, len(g.Cells) - 1},
		{"cell out of range", center, len(g.Cells)},
		{"negative cell", center, -1},
		{"bucket out of range", 99, 10},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			before := c.State()
			res, err := c.TapCell(Grid, tt.bucket, tt.cell)
			if err != nil || res != TapIgnored {
				t.Errorf("Expected ignored tap, got %s %v", res, err)
			}
			if c.State() != before {
				t.Error("Ignored tap changed state")
			}
			sched.flush()
			if len(rec.selected) != 0 {
				t.Error("Ignored tap fired the selection callback")
			}
		})
	}

	idx := g.IndexOf(date(2024, time.March, 20))
	res, err := c.TapCell(Grid, center, idx)
	if err != nil || res != TapSelected {
		t.Fatalf("Expected selection, got %s %v", res, err)
	}
	s := c.State()
	if !s.HasSelection || !s.Selected.Equal(date(2024, time.March, 20)) || !s.Current.Equal(s.Selected) {
		t.Errorf("Unexpected state after tap %+v", s)
	}
	if len(rec.selected) != 0 {
		t.Error("Selection callback should wait for the settle delay")
	}
	if len(sched.delays) != 1 || sched.delays[0] != DefaultConfig().SettleDelay {
		t.Errorf("Expected one deferred callback with settle delay, got %v", sched.delays)
	}
	sched.flush()
	if len(rec.selected) != 1 || !rec.selected[0].Equal(date(2024, time.March, 20)) {
		t.Errorf("Expected selection callback for March 20, got %v", rec.selected)
	}

	// A second tap replaces the selection.
	if _, err := c.TapCell(Grid, center, g.IndexOf(date(2024, time.March, 5))); err != nil {
		t.Fatal(err)
	}
	if !c.State().Selected.Equal(date(2024, time.March, 5)) {
		t.Errorf("Expected selection to move to March 5, got %s", c.State().Selected)
	}
}

func TestTapStripToggles(t *testing.T) {
	c, _ := newTestCoordinator(t, date(2024, time.March, 10))
	res, err := c.TapCell(Strip, c.StripCenter(), 0)
	if err != nil || res != TapToggled {
		t.Fatalf("Expected toggle, got %s %v", res, err)
	}
	if c.State().Phase != Expanding {
		t.Errorf("Expected expanding, got %s", c.State().Phase)
	}
	if res, _ := c.TapCell(Strip, c.StripCenter(), 0); res != TapIgnored {
		t.Errorf("Expected tap during animation to be ignored, got %s", res)
	}
}

func TestCollapseOnSelect(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Preload = 3
	cfg.CollapseOnSelect = true
	c, err := New(cfg, date(2024, time.March, 10))
	if err != nil {
		t.Fatal(err)
	}
	expand(t, c)

	if res, err := c.Select(date(2024, time.March, 22)); err != nil || res != TapSelected {
		t.Fatalf("Expected selection, got %s %v", res, err)
	}
	if c.State().Phase != Collapsing {
		t.Errorf("Expected picker to collapse after selection, got %s", c.State().Phase)
	}
	if p, _ := c.StripPage(c.StripCenter()); !p.Equal(date(2024, time.March, 22)) {
		t.Errorf("Expected strip on March 22, got %s", p.Format("2006-01-02"))
	}
}

func TestScrollDateRangeIsNoop(t *testing.T) {
	// With five months preloaded the window already reaches December 9999.
	c, _ := newTestCoordinator(t, date(9999, time.July, 15))
	expand(t, c)
	before := c.State()

	err := c.ScrollEnded(Grid, 1)
	if _, ok := calendar.IsDateRangeError(err); !ok {
		t.Fatalf("Expected DateRangeError, got %v", err)
	}
	if c.State() != before {
		t.Errorf("Failed scroll changed state: %+v", c.State())
	}
	if c.CurrentGrid().Anchor.Month() != time.July {
		t.Errorf("Expected grid to stay on July, got %s", c.CurrentGrid().Anchor.Month())
	}
}

func TestNewOutOfRange(t *testing.T) {
	_, err := New(DefaultConfig(), date(9999, time.December, 1))
	if _, ok := calendar.IsDateRangeError(err); !ok {
		t.Errorf("Expected DateRangeError, got %v", err)
	}
}

func TestJumpTo(t *testing.T) {
	c, rec := newTestCoordinator(t, date(2024, time.March, 10))
	if err := c.Step(40); err != nil {
		t.Fatal(err)
	}
	if err := c.JumpTo(date(2023, time.July, 4)); err != nil {
		t.Fatal(err)
	}
	s := c.State()
	if !s.Current.Equal(date(2023, time.July, 4)) || s.ChangeLog != 0 {
		t.Errorf("Unexpected state %+v", s)
	}
	if c.CurrentGrid().Anchor.Month() != time.July {
		t.Errorf("Expected July grid, got %s", c.CurrentGrid().Anchor.Month())
	}
	if len(rec.current) != 2 {
		t.Errorf("Expected two current-date notifications, got %d", len(rec.current))
	}
}
