package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func writeFile(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(body), 0600); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadFrom_Missing(t *testing.T) {
	cfg, err := LoadFrom(filepath.Join(t.TempDir(), "nope.yaml"))
	if err != nil {
		t.Fatalf("Expected defaults for missing file, got %v", err)
	}
	if cfg.Picker.PreloadCount != 50 || cfg.Picker.WeekStart != "sunday" {
		t.Errorf("Unexpected defaults: %+v", cfg.Picker)
	}
	if cfg.Picker.SettleDelay != 150*time.Millisecond {
		t.Errorf("Expected 150ms settle delay, got %v", cfg.Picker.SettleDelay)
	}
}

func TestLoadFrom_Overrides(t *testing.T) {
	path := writeFile(t, `
picker:
  preload_count: 12
  week_start: Mon
  six_weeks: true
  settle_delay: 1s
ui:
  gray_scheme: dim
log:
  level: debug
`)
	cfg, err := LoadFrom(path)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Picker.PreloadCount != 12 || !cfg.Picker.SixWeeks {
		t.Errorf("Picker section not applied: %+v", cfg.Picker)
	}
	if cfg.Picker.SettleDelay != time.Second {
		t.Errorf("Expected 1s settle delay, got %v", cfg.Picker.SettleDelay)
	}
	// Unset keys keep their defaults.
	if cfg.Picker.Animation != 200*time.Millisecond || !cfg.UI.VimMode {
		t.Errorf("Defaults lost: animation=%v vim=%v", cfg.Picker.Animation, cfg.UI.VimMode)
	}

	opts, err := cfg.PickerOptions()
	if err != nil {
		t.Fatal(err)
	}
	if opts.WeekStart != time.Monday || opts.Preload != 12 {
		t.Errorf("Unexpected picker options %+v", opts)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name  string
		edit  func(*Config)
		field string
	}{
		{"preload", func(c *Config) { c.Picker.PreloadCount = 0 }, "picker.preload_count"},
		{"week start", func(c *Config) { c.Picker.WeekStart = "someday" }, "picker.week_start"},
		{"settle", func(c *Config) { c.Picker.SettleDelay = -time.Second }, "picker.settle_delay"},
		{"scheme", func(c *Config) { c.UI.GrayScheme = "plaid" }, "ui.gray_scheme"},
		{"level", func(c *Config) { c.Log.Level = "loud" }, "log.level"},
	}

	if err := DefaultConfig().Validate(); err != nil {
		t.Fatalf("Defaults should validate: %v", err)
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.edit(cfg)
			fe, ok := IsFieldError(cfg.Validate())
			if !ok {
				t.Fatal("Expected FieldError")
			}
			if fe.Field != tt.field {
				t.Errorf("Expected field %s, got %s", tt.field, fe.Field)
			}
		})
	}
}

func TestLoadFrom_Invalid(t *testing.T) {
	path := writeFile(t, "picker:\n  week_start: blursday\n")
	if _, err := LoadFrom(path); err == nil {
		t.Fatal("Expected validation error")
	} else if _, ok := IsFieldError(err); !ok {
		t.Errorf("Expected wrapped FieldError, got %v", err)
	}

	path = writeFile(t, "picker: [")
	if _, err := LoadFrom(path); err == nil {
		t.Fatal("Expected parse error")
	}
}

func TestSaveTo_RoundTrip(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Picker.WeekStart = "monday"
	cfg.Picker.SettleDelay = 300 * time.Millisecond
	path := filepath.Join(t.TempDir(), "config.yaml")

	if err := SaveTo(cfg, path); err != nil {
		t.Fatal(err)
	}
	got, err := LoadFrom(path)
	if err != nil {
		t.Fatal(err)
	}
	if got.Picker != cfg.Picker {
		t.Errorf("Expected %+v, got %+v", cfg.Picker, got.Picker)
	}
}

func TestParseWeekday(t *testing.T) {
	for in, want := range map[string]time.Weekday{
		"sunday": time.Sunday, "Mon": time.Monday, " SATURDAY ": time.Saturday, "wed": time.Wednesday,
	} {
		got, err := ParseWeekday(in)
		if err != nil || got != want {
			t.Errorf("ParseWeekday(%q) = %v, %v; want %v", in, got, err, want)
		}
	}
}

func TestStartDate(t *testing.T) {
	today := time.Date(2024, time.March, 4, 0, 0, 0, 0, time.UTC)

	t.Setenv(dateEnvVar, "")
	if got, _ := StartDate("", today); !got.Equal(today) {
		t.Errorf("Expected today, got %v", got)
	}

	t.Setenv(dateEnvVar, "2025-07-01")
	if got, _ := StartDate("", today); got.Year() != 2025 {
		t.Errorf("Expected env date, got %v", got)
	}

	if got, _ := StartDate("2000-02-29", today); got.Year() != 2000 {
		t.Errorf("Expected flag date, got %v", got)
	}

	if _, err := StartDate("2024-02-30", today); err == nil {
		t.Error("Expected error for invalid flag date")
	}

	t.Setenv(dateEnvVar, "tomorrow")
	if _, err := StartDate("", today); err == nil {
		t.Error("Expected error for invalid env date")
	}
}
