// Package main is the entry point for the datepicker-tui application.
package main

import (
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/google/uuid"
	"github.com/hy4ri/datepicker-tui/internal/calendar"
	"github.com/hy4ri/datepicker-tui/internal/config"
	"github.com/hy4ri/datepicker-tui/internal/tui"
	"github.com/hy4ri/datepicker-tui/internal/tui/components"
)

const version = "0.1.0"

const helpText = `datepicker-tui - Terminal date picker with a day strip and a month grid

USAGE:
    datepicker-tui [OPTIONS]

OPTIONS:
    -h, --help          Show this help message
    -v, --version       Show version information
    --init              Create a template config file
    --date YYYY-MM-DD   Open on this date (also: DATEPICKER_DATE)
    --expanded          Start with the month grid open
    --preload N         Pages kept on each side of the current page
    --print             Print the month grid for the date and exit

CONFIGURATION:
    Config file: ~/.config/datepicker-tui/config.yaml

KEYBINDINGS:
    ←/→ h/l     Previous/next day (month when expanded)
    H/L         Jump a week (a quarter when expanded)
    [ ]         Previous/next month in the grid
    Space/v     Expand/collapse the grid
    Enter       Select the date under the cursor
    Tab         Switch between strip and grid
    t           Today
    g           Go to a date
    y           Copy the current date
    ?           Show help
    q           Quit

The selected date is printed on exit.
`

const configTemplate = `# datepicker-tui configuration
# Location: ~/.config/datepicker-tui/config.yaml

picker:
  # Pages preloaded on each side of the current one
  preload_count: 50
  # First column of the grid: sunday, monday, ...
  week_start: sunday
  # Always draw six week rows
  six_weeks: false
  start_expanded: false
  # Close the grid after a date is chosen
  collapse_on_select: false
  settle_delay: 150ms
  animation: 200ms

ui:
  vim_mode: true
  bold_headers: true
  # Out-of-month days: shade, dim or hidden
  gray_scheme: shade
  notify_on_select: false

log:
  # Debug log file; empty disables logging
  file: ""
  level: info
`

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	var (
		showHelp    bool
		showVersion bool
		initConfig  bool
		expanded    bool
		printGrid   bool
		date        string
		preload     int
	)

	flag.BoolVar(&showHelp, "help", false, "Show help message")
	flag.BoolVar(&showHelp, "h", false, "Show help message (shorthand)")
	flag.BoolVar(&showVersion, "version", false, "Show version")
	flag.BoolVar(&showVersion, "v", false, "Show version (shorthand)")
	flag.BoolVar(&initConfig, "init", false, "Create template config file")
	flag.BoolVar(&expanded, "expanded", false, "Start with the grid open")
	flag.BoolVar(&printGrid, "print", false, "Print the month grid and exit")
	flag.StringVar(&date, "date", "", "Start date (YYYY-MM-DD)")
	flag.IntVar(&preload, "preload", 0, "Pages kept on each side of the current page")

	flag.Usage = func() {
		fmt.Print(helpText)
	}

	flag.Parse()

	if showHelp {
		fmt.Print(helpText)
		return nil
	}

	if showVersion {
		fmt.Printf("datepicker-tui version %s\n", version)
		return nil
	}

	if initConfig {
		return createConfigTemplate()
	}

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	if preload > 0 {
		cfg.Picker.PreloadCount = preload
	}

	start, err := config.StartDate(date, time.Now())
	if err != nil {
		return err
	}

	if printGrid {
		return printMonth(cfg, start)
	}

	return runApp(cfg, start, expanded)
}

// createConfigTemplate creates a template configuration file.
func createConfigTemplate() error {
	path, err := config.ConfigPath()
	if err != nil {
		return fmt.Errorf("failed to get config path: %w", err)
	}

	if _, err := os.Stat(path); err == nil {
		fmt.Printf("Config file already exists: %s\n", path)
		fmt.Print("Overwrite? [y/N]: ")

		var response string
		fmt.Scanln(&response)

		if response != "y" && response != "Y" {
			fmt.Println("Aborted.")
			return nil
		}
	}

	if err := os.WriteFile(path, []byte(configTemplate), 0600); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	fmt.Printf("Config file created: %s\n", path)
	return nil
}

// printMonth writes the month grid for start to stdout.
func printMonth(cfg *config.Config, start time.Time) error {
	opts, err := cfg.PickerOptions()
	if err != nil {
		return err
	}
	b := calendar.NewBuilder(calendar.Options{WeekStart: opts.WeekStart, SixWeeks: opts.SixWeeks})
	grid, err := b.Build(start)
	if err != nil {
		return err
	}
	fmt.Print(components.Plain(grid))
	return nil
}

// newLogger opens the debug log. The returned closer is never nil.
func newLogger(cfg config.LogConfig) (*slog.Logger, io.Closer, error) {
	if cfg.File == "" {
		return slog.New(slog.NewTextHandler(io.Discard, nil)), io.NopCloser(nil), nil
	}
	level, err := cfg.SlogLevel()
	if err != nil {
		return nil, nil, err
	}
	f, err := os.OpenFile(cfg.File, os.O_WRONLY|os.O_CREATE|os.O_APPEND, 0600)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open log file: %w", err)
	}
	return slog.New(slog.NewTextHandler(f, &slog.HandlerOptions{Level: level})), f, nil
}

// runApp starts the main TUI application.
func runApp(cfg *config.Config, start time.Time, expanded bool) error {
	logger, closer, err := newLogger(cfg.Log)
	if err != nil {
		return err
	}
	defer closer.Close()

	// Runs append to the same file; tag each one.
	logger = logger.With("session", uuid.NewString())

	app, err := tui.NewApp(cfg, start, expanded, tui.WithLogger(logger))
	if err != nil {
		return fmt.Errorf("failed to create picker: %w", err)
	}
	logger.Info("starting", "date", start.Format("2006-01-02"), "expanded", expanded)

	p := tea.NewProgram(app, tea.WithAltScreen(), tea.WithMouseCellMotion())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("failed to run TUI: %w", err)
	}

	selected, ok := app.Selection()
	if !ok {
		return nil
	}
	fmt.Println(selected.Format("2006-01-02"))
	return nil
}
