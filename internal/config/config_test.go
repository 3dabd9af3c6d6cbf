package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestDefaults(t *testing.T) {
	cfg := Defaults()

	require.True(t, cfg.AutoReload)
	require.True(t, cfg.UI.ShowStatusBar)
	require.Equal(t, "dark", cfg.UI.MarkdownStyle)
	require.False(t, cfg.Tracing.Enabled)
	require.Equal(t, "file", cfg.Tracing.Exporter)
	require.Equal(t, 1.0, cfg.Tracing.SampleRate)
	require.NoError(t, Validate(cfg))
}

func TestValidateLogging(t *testing.T) {
	require.NoError(t, ValidateLogging(LoggingConfig{}))
	require.NoError(t, ValidateLogging(LoggingConfig{Level: "debug"}))
	require.Error(t, ValidateLogging(LoggingConfig{Level: "verbose"}))
	require.Error(t, ValidateLogging(LoggingConfig{Enabled: true}))
	require.NoError(t, ValidateLogging(LoggingConfig{Enabled: true, File: "/tmp/x.log"}))
}

func TestValidateTracing(t *testing.T) {
	require.NoError(t, ValidateTracing(TracingConfig{SampleRate: 0.5}))
	require.Error(t, ValidateTracing(TracingConfig{SampleRate: 1.5}))
	require.Error(t, ValidateTracing(TracingConfig{Exporter: "otlp"}))
	require.Error(t, ValidateTracing(TracingConfig{Enabled: true, Exporter: "file"}))
	require.NoError(t, ValidateTracing(TracingConfig{Enabled: true, Exporter: "file", FilePath: "/tmp/t.jsonl"}))
	require.NoError(t, ValidateTracing(TracingConfig{Enabled: true, Exporter: "stdout"}))
}

func TestWriteDefaultConfig(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "nested", "config.yaml")

	require.NoError(t, WriteDefaultConfig(path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Contains(t, string(data), "auto_reload: true")

	// Template must parse as valid YAML.
	var doc map[string]any
	require.NoError(t, yaml.Unmarshal(data, &doc))
	require.Equal(t, true, doc["auto_reload"])
}

func TestSaveDataFilePreservesComments(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(
		"# my settings\nauto_reload: true\ndata_file: /old/book.json\n"), 0o600))

	require.NoError(t, SaveDataFile(path, "/new/book.json"))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	text := string(data)
	require.Contains(t, text, "# my settings")
	require.Contains(t, text, "data_file: /new/book.json")
	require.NotContains(t, text, "/old/book.json")
	require.Contains(t, text, "auto_reload: true")
}

func TestSaveDataFileAppendsMissingKey(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("auto_reload: false\n"), 0o600))

	require.NoError(t, SaveDataFile(path, "/new/book.json"))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Contains(t, string(data), "data_file: /new/book.json")
}

func TestSaveDataFileCreatesFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")

	require.NoError(t, SaveAutoReload(path, false))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	require.True(t, strings.Contains(string(data), "auto_reload: false"))
}
