// Package config handles loading and saving application configuration.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/hy4ri/datepicker-tui/internal/pager"
	"github.com/hy4ri/datepicker-tui/internal/picker"
	"github.com/hy4ri/datepicker-tui/internal/tui/styles"
	"gopkg.in/yaml.v3"
)

const appName = "datepicker-tui"

// Config represents the application configuration.
type Config struct {
	Picker PickerConfig `yaml:"picker"`
	UI     UIConfig     `yaml:"ui"`
	Log    LogConfig    `yaml:"log"`
}

// PickerConfig holds the picker behaviour settings.
type PickerConfig struct {
	PreloadCount     int           `yaml:"preload_count"`
	WeekStart        string        `yaml:"week_start"`
	SixWeeks         bool          `yaml:"six_weeks"`
	StartExpanded    bool          `yaml:"start_expanded"`
	CollapseOnSelect bool          `yaml:"collapse_on_select"`
	SettleDelay      time.Duration `yaml:"settle_delay"`
	Animation        time.Duration `yaml:"animation"`
}

// UIConfig holds UI-related settings.
type UIConfig struct {
	VimMode        bool   `yaml:"vim_mode"`
	BoldHeaders    bool   `yaml:"bold_headers"`
	GrayScheme     string `yaml:"gray_scheme"` // "shade", "dim" or "hidden"
	NotifyOnSelect bool   `yaml:"notify_on_select"`
}

// LogConfig holds debug log settings.
type LogConfig struct {
	File  string `yaml:"file,omitempty"` // Empty disables logging
	Level string `yaml:"level"`
}

// FieldError reports an invalid configuration value.
type FieldError struct {
	Field  string
	Value  any
	Reason string
}

// Error implements the error interface.
func (e *FieldError) Error() string {
	return fmt.Sprintf("%s: invalid value %v: %s", e.Field, e.Value, e.Reason)
}

// IsFieldError checks if an error is a FieldError.
func IsFieldError(err error) (*FieldError, bool) {
	var fe *FieldError
	if errors.As(err, &fe) {
		return fe, true
	}
	return nil, false
}

// DefaultConfig returns a new Config with default values.
func DefaultConfig() *Config {
	return &Config{
		Picker: PickerConfig{
			PreloadCount: pager.DefaultPreload,
			WeekStart:    "sunday",
			SettleDelay:  150 * time.Millisecond,
			Animation:    200 * time.Millisecond,
		},
		UI: UIConfig{
			VimMode:     true,
			BoldHeaders: true,
			GrayScheme:  string(styles.GrayShade),
		},
		Log: LogConfig{
			Level: "info",
		},
	}
}

// ConfigDir returns the path to the configuration directory.
// Creates the directory if it doesn't exist.
func ConfigDir() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}

	configDir := filepath.Join(homeDir, ".config", appName)
	if err := os.MkdirAll(configDir, 0700); err != nil {
		return "", fmt.Errorf("failed to create config directory: %w", err)
	}

	return configDir, nil
}

// ConfigPath returns the full path to the configuration file.
func ConfigPath() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.yaml"), nil
}

// Load reads the configuration from the default config file.
func Load() (*Config, error) {
	path, err := ConfigPath()
	if err != nil {
		return nil, err
	}
	return LoadFrom(path)
}

// LoadFrom reads and validates the configuration at path.
// If the file doesn't exist, returns a default configuration.
func LoadFrom(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return DefaultConfig(), nil
		}
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config file %s: %w", path, err)
	}

	return cfg, nil
}

// Save writes the configuration to the default config file.
func Save(cfg *Config) error {
	path, err := ConfigPath()
	if err != nil {
		return err
	}
	return SaveTo(cfg, path)
}

// SaveTo writes the configuration to path.
func SaveTo(cfg *Config, path string) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to serialize config: %w", err)
	}

	if err := os.WriteFile(path, data, 0600); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// Validate checks every field and returns the first problem found.
func (c *Config) Validate() error {
	if c.Picker.PreloadCount < 1 {
		return &FieldError{Field: "picker.preload_count", Value: c.Picker.PreloadCount, Reason: "must be at least 1"}
	}
	if _, err := ParseWeekday(c.Picker.WeekStart); err != nil {
		return err
	}
	if c.Picker.SettleDelay < 0 {
		return &FieldError{Field: "picker.settle_delay", Value: c.Picker.SettleDelay, Reason: "must not be negative"}
	}
	if c.Picker.Animation < 0 {
		return &FieldError{Field: "picker.animation", Value: c.Picker.Animation, Reason: "must not be negative"}
	}
	if !styles.GrayScheme(c.UI.GrayScheme).Valid() {
		return &FieldError{Field: "ui.gray_scheme", Value: c.UI.GrayScheme, Reason: "want shade, dim or hidden"}
	}
	if _, err := c.Log.SlogLevel(); err != nil {
		return err
	}
	return nil
}

// PickerOptions converts the picker section into coordinator settings.
func (c *Config) PickerOptions() (picker.Config, error) {
	ws, err := ParseWeekday(c.Picker.WeekStart)
	if err != nil {
		return picker.Config{}, err
	}
	return picker.Config{
		Preload:          c.Picker.PreloadCount,
		WeekStart:        ws,
		SixWeeks:         c.Picker.SixWeeks,
		SettleDelay:      c.Picker.SettleDelay,
		CollapseOnSelect: c.Picker.CollapseOnSelect,
	}, nil
}

// Theme builds the grid styles from the UI section.
func (c *Config) Theme() styles.Theme {
	return styles.NewTheme(styles.GrayScheme(c.UI.GrayScheme), c.UI.BoldHeaders)
}

// SlogLevel parses the log level name.
func (l LogConfig) SlogLevel() (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(l.Level)); err != nil {
		return 0, &FieldError{Field: "log.level", Value: l.Level, Reason: "want debug, info, warn or error"}
	}
	return level, nil
}

// ParseWeekday accepts full or three-letter English weekday names.
func ParseWeekday(s string) (time.Weekday, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	for d := time.Sunday; d <= time.Saturday; d++ {
		full := strings.ToLower(d.String())
		if name == full || name == full[:3] {
			return d, nil
		}
	}
	return 0, &FieldError{Field: "picker.week_start", Value: s, Reason: "not a weekday name"}
}
