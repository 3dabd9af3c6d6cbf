// Package config provides configuration types and defaults for matchbook.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"matchbook/internal/log"
)

// Config holds all configuration options for matchbook.
type Config struct {
	DataFile   string        `mapstructure:"data_file"`
	AutoReload bool          `mapstructure:"auto_reload"`
	UI         UIConfig      `mapstructure:"ui"`
	Logging    LoggingConfig `mapstructure:"logging"`
	Tracing    TracingConfig `mapstructure:"tracing"`
}

// UIConfig holds user interface configuration options.
type UIConfig struct {
	ShowStatusBar bool   `mapstructure:"show_status_bar"`
	MarkdownStyle string `mapstructure:"markdown_style"` // "dark" (default) or "light"
	VimMode       bool   `mapstructure:"vim_mode"`       // Enable vim-style j/k/h/l pane navigation
}

// LoggingConfig controls the debug log.
type LoggingConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	File    string `mapstructure:"file"`
	Level   string `mapstructure:"level"` // "debug", "info", "warn", "error"
}

// TracingConfig holds command tracing configuration.
type TracingConfig struct {
	// Enabled controls whether command tracing is active.
	// Default: false
	Enabled bool `mapstructure:"enabled"`

	// Exporter selects the trace export backend.
	// Options: "none", "file", "stdout"
	// Default: "file"
	Exporter string `mapstructure:"exporter"`

	// FilePath is the output file for the "file" exporter.
	// Default: ~/.config/matchbook/traces/traces.jsonl
	FilePath string `mapstructure:"file_path"`

	// SampleRate controls trace sampling (0.0 to 1.0).
	// Default: 1.0
	SampleRate float64 `mapstructure:"sample_rate"`
}

// DefaultDataFile returns the default path for the record book.
// Returns ~/.matchbook/book.json or empty string if home dir unavailable.
func DefaultDataFile() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".matchbook", "book.json")
}

// DefaultTracesFilePath returns the default path for trace file export.
func DefaultTracesFilePath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", "matchbook", "traces", "traces.jsonl")
}

// DefaultLogFile returns the default debug log path.
func DefaultLogFile() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".matchbook", "matchbook.log")
}

// Defaults returns a Config with sensible default values.
func Defaults() Config {
	return Config{
		DataFile:   DefaultDataFile(),
		AutoReload: true,
		UI: UIConfig{
			ShowStatusBar: true,
			MarkdownStyle: "dark",
			VimMode:       true,
		},
		Logging: LoggingConfig{
			Enabled: false,
			File:    DefaultLogFile(),
			Level:   "info",
		},
		Tracing: TracingConfig{
			Enabled:    false,
			Exporter:   "file",
			FilePath:   "", // Derived from config dir at runtime
			SampleRate: 1.0,
		},
	}
}

// ValidateLogging checks logging configuration for errors.
// Returns nil if the configuration is valid (empty values use defaults).
func ValidateLogging(logging LoggingConfig) error {
	if logging.Level != "" {
		switch logging.Level {
		case "debug", "info", "warn", "error":
		default:
			return fmt.Errorf("logging.level must be \"debug\", \"info\", \"warn\", or \"error\", got %q", logging.Level)
		}
	}
	if logging.Enabled && logging.File == "" {
		return fmt.Errorf("logging.file is required when logging is enabled")
	}
	return nil
}

// ValidateTracing checks tracing configuration for errors.
// Returns nil if the configuration is valid (empty values use defaults).
func ValidateTracing(tracing TracingConfig) error {
	if tracing.SampleRate < 0.0 || tracing.SampleRate > 1.0 {
		return fmt.Errorf("tracing.sample_rate must be between 0.0 and 1.0, got %v", tracing.SampleRate)
	}

	if tracing.Exporter != "" {
		switch tracing.Exporter {
		case "none", "file", "stdout":
		default:
			return fmt.Errorf("tracing.exporter must be \"none\", \"file\", or \"stdout\", got %q", tracing.Exporter)
		}
	}

	if tracing.Enabled && tracing.Exporter == "file" && tracing.FilePath == "" {
		return fmt.Errorf("tracing.file_path is required when exporter is \"file\"")
	}

	return nil
}

// Validate checks the whole configuration for errors.
func Validate(cfg Config) error {
	if err := ValidateLogging(cfg.Logging); err != nil {
		return err
	}
	return ValidateTracing(cfg.Tracing)
}

// DefaultConfigTemplate returns the default config as a YAML string with comments.
func DefaultConfigTemplate() string {
	return `# Matchbook Configuration

# Path to the record book data file (default: ~/.matchbook/book.json)
# data_file: /path/to/book.json

# Reload the model when the data file changes on disk
auto_reload: true

# UI settings
ui:
  show_status_bar: true   # Show status/result bar at bottom
  # markdown_style: dark  # Help rendering style: "dark" (default) or "light"
  vim_mode: true          # Vim-style j/k/h/l pane navigation

# Debug logging
# logging:
#   enabled: true
#   file: ~/.matchbook/matchbook.log
#   level: debug          # debug, info, warn, error (default: info)

# Command tracing
# Records a span per executed command for debugging slow operations
# tracing:
#   enabled: false              # Enable/disable tracing (default: false)
#   exporter: file              # Export backend: none, file, stdout (default: file)
#   file_path: ~/.config/matchbook/traces/traces.jsonl
#   sample_rate: 1.0            # Trace sampling rate 0.0-1.0 (default: 1.0)
`
}

// WriteDefaultConfig creates a config file at the given path with default settings and comments.
// Creates the parent directory if it doesn't exist.
func WriteDefaultConfig(configPath string) error {
	log.Debug(log.CatConfig, "Writing default config", "path", configPath)

	dir := filepath.Dir(configPath)
	if err := os.MkdirAll(dir, 0o750); err != nil {
		log.ErrorErr(log.CatConfig, "Failed to create config directory", err, "dir", dir)
		return fmt.Errorf("creating config directory: %w", err)
	}

	if err := os.WriteFile(configPath, []byte(DefaultConfigTemplate()), 0o600); err != nil {
		log.ErrorErr(log.CatConfig, "Failed to write config file", err, "path", configPath)
		return fmt.Errorf("writing config file: %w", err)
	}

	log.Info(log.CatConfig, "Created default config", "path", configPath)
	return nil
}
