package tui

import (
	"io"
	"log/slog"
	"time"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/gen2brain/beeep"
	"github.com/hy4ri/datepicker-tui/internal/calendar"
	"github.com/hy4ri/datepicker-tui/internal/config"
	"github.com/hy4ri/datepicker-tui/internal/pager"
	"github.com/hy4ri/datepicker-tui/internal/picker"
	"github.com/hy4ri/datepicker-tui/internal/tui/components"
	"github.com/hy4ri/datepicker-tui/internal/tui/styles"
)

// Pane represents which pager has keyboard focus.
type Pane int

const (
	PaneStrip Pane = iota
	PaneGrid
)

// App is the main application model.
type App struct {
	config *config.Config
	picker *picker.Coordinator
	keymap KeyMap
	log    *slog.Logger

	// UI components
	strip   *components.StripModel
	grid    *components.GridModel
	help    help.Model
	spinner spinner.Model
	goTo    textinput.Model
	body    viewport.Model // Strip, grid and prompt; scrolls on short terminals

	focusedPane  Pane
	enteringDate bool
	width        int
	height       int
	statusMsg    string
	err          error

	// Commands queued by coordinator callbacks during one Update
	pending []tea.Cmd

	now       func() time.Time
	notify    func(title, message string) error
	clipboard func(text string) error
}

// Option configures an App.
type Option func(*App)

// WithLogger sets the debug logger.
func WithLogger(l *slog.Logger) Option {
	return func(a *App) { a.log = l }
}

// WithClock replaces time.Now for "today" highlighting and the t key.
func WithClock(now func() time.Time) Option {
	return func(a *App) { a.now = now }
}

// WithNotifier replaces the desktop notifier.
func WithNotifier(fn func(title, message string) error) Option {
	return func(a *App) { a.notify = fn }
}

// WithClipboard replaces the system clipboard writer.
func WithClipboard(fn func(text string) error) Option {
	return func(a *App) { a.clipboard = fn }
}

// NewApp creates a new App opened on start.
func NewApp(cfg *config.Config, start time.Time, expanded bool, opts ...Option) (*App, error) {
	s := spinner.New()
	s.Spinner = spinner.MiniDot
	s.Style = styles.Arrow

	goTo := textinput.New()
	goTo.Placeholder = "YYYY-MM-DD"
	goTo.CharLimit = 10
	goTo.Width = 12
	goTo.Prompt = "Go to: "

	keymap := DefaultKeyMap(cfg.UI.VimMode)

	app := &App{
		config:  cfg,
		keymap:  keymap,
		log:     slog.New(slog.NewTextHandler(io.Discard, nil)),
		strip:   components.NewStrip(),
		grid:    components.NewGrid(keymap.Grid, cfg.Theme()),
		help:    help.New(),
		spinner: s,
		goTo:    goTo,
		body:    viewport.New(0, 0),
		now:     time.Now,
		notify: func(title, message string) error {
			return beeep.Notify(title, message, "")
		},
		clipboard: clipboard.WriteAll,
	}
	for _, opt := range opts {
		opt(app)
	}

	pcfg, err := cfg.PickerOptions()
	if err != nil {
		return nil, err
	}
	app.picker, err = picker.New(pcfg, start,
		picker.WithListener(listener{app}),
		picker.WithScheduler(picker.SchedulerFunc(app.after)),
		picker.WithLogger(app.log),
	)
	if err != nil {
		return nil, err
	}

	app.setFocus(PaneStrip)
	if expanded || cfg.Picker.StartExpanded {
		if _, err := app.picker.Toggle(); err != nil {
			return nil, err
		}
		app.picker.TransitionComplete()
		app.pending = nil
	}

	app.sync()
	return app, nil
}

// Init implements tea.Model.
func (a *App) Init() tea.Cmd {
	return a.flush()
}

// Picker returns the underlying coordinator.
func (a *App) Picker() *picker.Coordinator {
	return a.picker
}

// Selection returns the chosen date, if any.
func (a *App) Selection() (time.Time, bool) {
	st := a.picker.State()
	return st.Selected, st.HasSelection
}

// Expanded reports whether the grid is open.
func (a *App) Expanded() bool {
	return a.picker.State().Phase.Open()
}

// FocusedPane returns the pager with keyboard focus.
func (a *App) FocusedPane() Pane {
	return a.focusedPane
}

func (a *App) setFocus(p Pane) {
	a.focusedPane = p
	for pane, c := range []components.Focusable{PaneStrip: a.strip, PaneGrid: a.grid} {
		if Pane(pane) == p {
			c.Focus()
		} else {
			c.Blur()
		}
	}
}

// after implements picker.Scheduler on top of tea.Tick. Callbacks come back
// as messages and run inside Update.
func (a *App) after(d time.Duration, fn func()) {
	a.pending = append(a.pending, tea.Tick(d, func(time.Time) tea.Msg {
		return settledMsg{fn: fn}
	}))
}

// flush hands queued commands to the runtime.
func (a *App) flush(cmds ...tea.Cmd) tea.Cmd {
	cmds = append(a.pending, cmds...)
	a.pending = nil
	return tea.Batch(cmds...)
}

// sync copies coordinator state into the components.
func (a *App) sync() {
	st := a.picker.State()
	center := a.picker.StripCenter()
	cur, _ := a.picker.StripPage(center)
	prev, _ := a.picker.StripPage(center - 1)
	next, _ := a.picker.StripPage(center + 1)
	a.strip.SetData(components.StripData{Current: cur, Prev: prev, Next: next, Unit: st.Unit})

	var selected time.Time
	if st.HasSelection {
		selected = st.Selected
	}
	gc := a.picker.GridCenter()
	var prevMonth, nextMonth time.Time
	if g, ok := a.picker.GridPage(gc - 1); ok {
		prevMonth = g.Anchor
	}
	if g, ok := a.picker.GridPage(gc + 1); ok {
		nextMonth = g.Anchor
	}
	a.grid.SetData(components.GridData{
		Grid:     a.picker.CurrentGrid(),
		Bucket:   gc,
		Prev:     prevMonth,
		Next:     nextMonth,
		Current:  st.Current,
		Today:    calendar.Midnight(a.now()),
		Selected: selected,
	})
	a.layout()
}

// layout sizes the body viewport and keeps the grid cursor row on screen.
func (a *App) layout() {
	if a.width == 0 {
		return
	}
	height := a.height - styles.App.GetVerticalFrameSize() - lipgloss.Height(a.renderFooter())
	if height < 3 {
		height = 3
	}
	a.body.Width = a.width - styles.App.GetHorizontalFrameSize()
	a.body.Height = height
	a.body.SetContent(a.renderBody())

	line := a.cursorLine()
	switch {
	case line < a.body.YOffset:
		a.body.SetYOffset(line)
	case line >= a.body.YOffset+a.body.Height:
		a.body.SetYOffset(line - a.body.Height + 1)
	}
}

// cursorLine is the body line holding the focused row.
func (a *App) cursorLine() int {
	if a.focusedPane != PaneGrid || !a.picker.State().Phase.Open() {
		return 0
	}
	idx := a.picker.CurrentGrid().IndexOf(a.grid.Cursor())
	if idx < calendar.DaysPerWeek {
		return 0
	}
	// Grid border, month title and weekday header sit above the first week.
	return lipgloss.Height(a.strip.View()) + 3 + (idx-calendar.DaysPerWeek)/calendar.DaysPerWeek
}

// listener adapts App to picker.Listener.
type listener struct{ a *App }

func (l listener) DateSelected(date time.Time) {
	a := l.a
	label := components.Label(date, pager.Day)
	a.statusMsg = "Selected " + label
	a.err = nil
	a.log.Info("date selected", "date", date.Format("2006-01-02"))

	if !a.config.UI.NotifyOnSelect {
		return
	}
	notify := a.notify
	log := a.log
	a.pending = append(a.pending, func() tea.Msg {
		if err := notify("Date picker", label); err != nil {
			log.Debug("failed to send notification", "err", err)
		}
		return nil
	})
}

func (l listener) CurrentChanged(date time.Time, unit pager.Unit) {
	l.a.log.Debug("current changed", "date", date.Format("2006-01-02"), "unit", unit)
}

func (l listener) ExpansionChanged(expanded bool) {
	a := l.a
	if expanded {
		a.setFocus(PaneGrid)
	} else {
		a.setFocus(PaneStrip)
	}
	a.pending = append(a.pending,
		tea.Tick(a.config.Picker.Animation, func(time.Time) tea.Msg { return transitionDoneMsg{} }),
		a.spinner.Tick,
	)
}
