package tui

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/hy4ri/datepicker-tui/internal/tui/styles"
)

func (a *App) View() string {
	if a.width == 0 {
		return "Loading..."
	}
	return styles.App.Render(lipgloss.JoinVertical(lipgloss.Left, a.body.View(), a.renderFooter()))
}

// renderBody stacks the pagers and the go-to prompt.
// NOTE: No margins - they break the cursor line arithmetic in layout
func (a *App) renderBody() string {
	parts := []string{a.strip.View()}
	if a.picker.State().Phase.Open() {
		parts = append(parts, a.grid.View())
	}
	if a.enteringDate {
		parts = append(parts, a.goTo.View())
	}
	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

func (a *App) renderFooter() string {
	return lipgloss.JoinVertical(lipgloss.Left, a.renderStatusBar(), a.help.View(a.keymap))
}

func (a *App) renderStatusBar() string {
	phase := a.picker.State().Phase
	switch {
	case phase.Animating():
		return styles.StatusBarText.Render(a.spinner.View() + " " + phase.String())
	case a.err != nil:
		return styles.StatusBarError.Render("Error: " + a.err.Error())
	case a.statusMsg != "":
		return styles.StatusBarSuccess.Render(a.statusMsg)
	}
	return styles.StatusBarText.Render(a.picker.State().Current.Format("2006-01-02"))
}
