package tui

import (
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/hy4ri/datepicker-tui/internal/calendar"
	"github.com/hy4ri/datepicker-tui/internal/config"
	"github.com/hy4ri/datepicker-tui/internal/picker"
	"github.com/hy4ri/datepicker-tui/internal/tui/components"
	"github.com/hy4ri/datepicker-tui/internal/tui/styles"
)

// settledMsg carries a deferred coordinator callback.
type settledMsg struct{ fn func() }

// transitionDoneMsg marks the end of an expand or collapse animation.
type transitionDoneMsg struct{}

type statusMsg struct{ msg string }

type errMsg struct{ err error }

func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.strip.SetSize(msg.Width-styles.App.GetHorizontalFrameSize(), 3)
		a.grid.SetSize(msg.Width, msg.Height-6)
		a.help.Width = msg.Width

	case tea.KeyMsg:
		cmd = a.handleKeyMsg(msg)

	case tea.MouseMsg:
		a.handleMouseMsg(msg)

	case components.CellTappedMsg:
		a.tap(picker.Grid, msg.Bucket, msg.Cell)

	case components.PageRequestMsg:
		a.scroll(picker.Grid, msg.Diff)

	case settledMsg:
		msg.fn()

	case transitionDoneMsg:
		a.picker.TransitionComplete()

	case spinner.TickMsg:
		if a.picker.State().Phase.Animating() {
			a.spinner, cmd = a.spinner.Update(msg)
		}

	case statusMsg:
		a.statusMsg = msg.msg
		a.err = nil

	case errMsg:
		a.err = msg.err
	}

	a.sync()
	return a, a.flush(cmd)
}

func (a *App) handleKeyMsg(msg tea.KeyMsg) tea.Cmd {
	if a.enteringDate {
		return a.handleGoToKey(msg)
	}

	open := a.picker.State().Phase.Open()
	switch {
	case key.Matches(msg, a.keymap.Quit):
		return tea.Quit
	case key.Matches(msg, a.keymap.Help):
		a.help.ShowAll = !a.help.ShowAll
	case key.Matches(msg, a.keymap.Toggle):
		a.toggle()
	case key.Matches(msg, a.keymap.Focus):
		if open && a.focusedPane == PaneStrip {
			a.setFocus(PaneGrid)
		} else {
			a.setFocus(PaneStrip)
		}
	case key.Matches(msg, a.keymap.Today):
		a.jumpTo(a.now())
	case key.Matches(msg, a.keymap.GoTo):
		a.enteringDate = true
		a.goTo.SetValue("")
		return a.goTo.Focus()
	case key.Matches(msg, a.keymap.Copy):
		return a.copyCurrent()
	case key.Matches(msg, a.keymap.PrevPage):
		a.scroll(picker.Grid, -1)
	case key.Matches(msg, a.keymap.NextPage):
		a.scroll(picker.Grid, 1)
	case key.Matches(msg, a.keymap.FastPrev):
		a.scroll(picker.Strip, -a.fastStep())
	case key.Matches(msg, a.keymap.FastNext):
		a.scroll(picker.Strip, a.fastStep())
	case open && a.focusedPane == PaneGrid:
		_, cmd := a.grid.Update(msg)
		return cmd
	case key.Matches(msg, a.keymap.Prev):
		a.step(-1)
	case key.Matches(msg, a.keymap.Next):
		a.step(1)
	case key.Matches(msg, a.keymap.Tap):
		a.tap(picker.Strip, a.picker.StripCenter(), 0)
	}
	return nil
}

func (a *App) handleGoToKey(msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, a.keymap.Back):
		a.enteringDate = false
		a.goTo.Blur()
		return nil
	case msg.Type == tea.KeyEnter:
		a.enteringDate = false
		a.goTo.Blur()
		date, err := config.ParseDate(a.goTo.Value())
		if err != nil {
			a.err = err
			return nil
		}
		a.jumpTo(date)
		return nil
	}

	var cmd tea.Cmd
	a.goTo, cmd = a.goTo.Update(msg)
	return cmd
}

func (a *App) handleMouseMsg(msg tea.MouseMsg) {
	if msg.Action != tea.MouseActionPress {
		return
	}
	id := picker.Strip
	if a.focusedPane == PaneGrid && a.picker.State().Phase.Open() {
		id = picker.Grid
	}
	switch msg.Button {
	case tea.MouseButtonWheelUp:
		a.scroll(id, -1)
	case tea.MouseButtonWheelDown:
		a.scroll(id, 1)
	}
}

// fastStep is a week of day pages or a quarter of month pages.
func (a *App) fastStep() int {
	if a.picker.State().Phase.Open() {
		return 3
	}
	return calendar.DaysPerWeek
}

// scroll replays a drag on pager id: began, progressed to the target page,
// ended diff pages from the centre. Pages are discrete here, so the passive
// pager has no partial offset to show; sync redraws it after ScrollEnded.
func (a *App) scroll(id picker.PagerID, diff int) {
	a.picker.DragBegan(id)
	center := a.picker.StripCenter()
	if id == picker.Grid {
		center = a.picker.GridCenter()
	}
	if m, ok := a.picker.ScrollProgressed(id, float64(center+diff)); ok {
		a.log.Debug("mirroring scroll", "target", m.Target, "offset", m.Offset)
	}
	a.report(a.picker.ScrollEnded(id, diff))
}

func (a *App) step(delta int) {
	a.report(a.picker.Step(delta))
}

func (a *App) toggle() {
	ok, err := a.picker.Toggle()
	if err != nil {
		a.report(err)
		return
	}
	if !ok {
		a.log.Debug("toggle ignored", "phase", a.picker.State().Phase)
	}
}

func (a *App) tap(id picker.PagerID, bucket, cell int) {
	res, err := a.picker.TapCell(id, bucket, cell)
	a.log.Debug("tap", "pager", id, "bucket", bucket, "cell", cell, "result", res)
	a.report(err)
}

func (a *App) jumpTo(date time.Time) {
	if err := a.picker.JumpTo(date); err != nil {
		a.report(err)
		return
	}
	a.sync()
	a.grid.SetCursor(date)
}

func (a *App) copyCurrent() tea.Cmd {
	text := a.picker.State().Current.Format("2006-01-02")
	write := a.clipboard
	return func() tea.Msg {
		if err := write(text); err != nil {
			return errMsg{fmt.Errorf("failed to copy date: %w", err)}
		}
		return statusMsg{msg: "Copied " + text}
	}
}

// report surfaces an error in the status bar. Running off the supported
// calendar is a no-op scroll with a hint.
func (a *App) report(err error) {
	if err == nil {
		a.err = nil
		return
	}
	if rangeErr, ok := calendar.IsDateRangeError(err); ok {
		a.statusMsg = fmt.Sprintf("End of calendar (%d-%d)", calendar.MinYear, calendar.MaxYear)
		a.err = nil
		a.log.Debug("scroll past supported range", "err", rangeErr)
		return
	}
	a.err = err
}
