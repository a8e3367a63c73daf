package calendar

import "time"

// DaysPerWeek is the width of every grid row.
const DaysPerWeek = 7

// GrayKind tells whether a date cell belongs to a neighbouring month.
type GrayKind int

const (
	GrayNone     GrayKind = iota // Cell is in the grid's month
	GrayLeading                  // Cell belongs to the previous month
	GrayTrailing                 // Cell belongs to the next month
)

// String returns the kind name.
func (k GrayKind) String() string {
	switch k {
	case GrayLeading:
		return "leading"
	case GrayTrailing:
		return "trailing"
	default:
		return "none"
	}
}

// Gray describes how a cell from an adjacent month should be shaded.
type Gray struct {
	Kind GrayKind
	// Distance counts cells away from the in-month block, starting at 1.
	Distance int
	// Edge marks the gray cell touching the in-month block.
	Edge bool
}

// CellKind tells headers from date cells. The zero value is neither and only
// appears in a zero Day.
type CellKind int

const (
	HeaderCell CellKind = iota + 1
	DateCell
)

// Day is one grid cell: either a weekday header or a date.
type Day struct {
	Kind  CellKind
	Label string    // Weekday name, headers only
	Date  time.Time // Civil date (UTC midnight), date cells only
	Gray  Gray
}

// IsHeader reports whether the cell is a weekday label.
func (d Day) IsHeader() bool { return d.Kind == HeaderCell }

// IsDate reports whether the cell carries a date.
func (d Day) IsDate() bool { return d.Kind == DateCell }

// InMonth reports whether the cell is a date of the grid's own month.
func (d Day) InMonth() bool { return d.IsDate() && d.Gray.Kind == GrayNone }

// DayNumber returns the day of month, or 0 for headers.
func (d Day) DayNumber() int {
	if !d.IsDate() {
		return 0
	}
	return d.Date.Day()
}

// Month returns the cell's month, or 0 for headers.
func (d Day) Month() time.Month {
	if !d.IsDate() {
		return 0
	}
	return d.Date.Month()
}

// Weekday returns the column's weekday for headers and date cells alike.
func (d Day) Weekday() time.Weekday {
	if d.IsDate() {
		return d.Date.Weekday()
	}
	for wd := time.Sunday; wd <= time.Saturday; wd++ {
		if wd.String() == d.Label {
			return wd
		}
	}
	return time.Sunday
}

// Year returns the cell's year, or 0 for headers.
func (d Day) Year() int {
	if !d.IsDate() {
		return 0
	}
	return d.Date.Year()
}

// Grid is an immutable month layout: weekday headers followed by whole weeks.
type Grid struct {
	Anchor time.Time // First of the month
	Cells  []Day
}

// Headers returns the weekday label row.
func (g Grid) Headers() []Day {
	if len(g.Cells) < DaysPerWeek {
		return nil
	}
	return g.Cells[:DaysPerWeek]
}

// Dates returns every date cell in row-major order.
func (g Grid) Dates() []Day {
	if len(g.Cells) < DaysPerWeek {
		return nil
	}
	return g.Cells[DaysPerWeek:]
}

// Weeks returns the number of date rows.
func (g Grid) Weeks() int {
	return len(g.Dates()) / DaysPerWeek
}

// Cell returns the cell at index i, header row included.
func (g Grid) Cell(i int) (Day, bool) {
	if i < 0 || i >= len(g.Cells) {
		return Day{}, false
	}
	return g.Cells[i], true
}

// IndexOf returns the cell index holding t's date, or -1.
func (g Grid) IndexOf(t time.Time) int {
	for i, c := range g.Cells {
		if c.IsDate() && SameDay(c.Date, t) {
			return i
		}
	}
	return -1
}

// Columns returns the cells in column-major order, one weekday column after
// another, header first. Horizontal flow layouts fill columns, not rows.
func (g Grid) Columns() []Day {
	rows := len(g.Cells) / DaysPerWeek
	out := make([]Day, 0, len(g.Cells))
	for col := 0; col < DaysPerWeek; col++ {
		for row := 0; row < rows; row++ {
			out = append(out, g.Cells[row*DaysPerWeek+col])
		}
	}
	return out
}

// Options tune grid layout.
type Options struct {
	WeekStart time.Weekday
	SixWeeks  bool // Pad every grid to six date rows
}

// Builder produces month grids.
type Builder struct {
	opts Options
}

// NewBuilder creates a Builder.
func NewBuilder(opts Options) Builder {
	return Builder{opts: opts}
}

// Build returns the Sunday-first grid for ref's month.
func Build(ref time.Time) (Grid, error) {
	return NewBuilder(Options{WeekStart: time.Sunday}).Build(ref)
}

// Build returns the grid for ref's month. Only the month itself must lie in
// the supported range; gray cells of January 1 and December 9999 spill into
// years 0 and 10000.
func (b Builder) Build(ref time.Time) (Grid, error) {
	first := FirstOfMonth(ref)
	if err := checkRange("build grid", first); err != nil {
		return Grid{}, err
	}
	year, month, loc := first.Year(), first.Month(), time.UTC

	days := DaysIn(year, month)
	lead := (int(first.Weekday()) - int(b.opts.WeekStart) + DaysPerWeek) % DaysPerWeek
	trail := (DaysPerWeek - (lead+days)%DaysPerWeek) % DaysPerWeek

	minRows := 5
	if b.opts.SixWeeks {
		minRows = 6
	}
	if rows := (lead + days + trail) / DaysPerWeek; rows < minRows {
		trail += (minRows - rows) * DaysPerWeek
	}

	cells := make([]Day, 0, DaysPerWeek+lead+days+trail)
	for i := 0; i < DaysPerWeek; i++ {
		wd := time.Weekday((int(b.opts.WeekStart) + i) % DaysPerWeek)
		cells = append(cells, Day{Kind: HeaderCell, Label: wd.String()})
	}

	for i := 0; i < lead; i++ {
		distance := lead - i
		cells = append(cells, Day{
			Kind: DateCell,
			Date: time.Date(year, month, 1-distance, 0, 0, 0, 0, loc),
			Gray: Gray{Kind: GrayLeading, Distance: distance, Edge: distance == 1},
		})
	}

	for d := 1; d <= days; d++ {
		cells = append(cells, Day{Kind: DateCell, Date: time.Date(year, month, d, 0, 0, 0, 0, loc)})
	}

	for i := 1; i <= trail; i++ {
		cells = append(cells, Day{
			Kind: DateCell,
			Date: time.Date(year, month, days+i, 0, 0, 0, 0, loc),
			Gray: Gray{Kind: GrayTrailing, Distance: i, Edge: i == 1},
		})
	}

	return Grid{Anchor: first, Cells: cells}, nil
}
