package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	// Test logging defaults
	assert.Equal(t, "INFO", cfg.Logging.Level)
	assert.Equal(t, 1000, cfg.Logging.MaxEntries)
	assert.True(t, cfg.Logging.Persist)
	assert.Equal(t, 50, cfg.Logging.PageSize)
	assert.NotEmpty(t, cfg.Logging.File)

	// Test storage defaults
	assert.NotEmpty(t, cfg.Storage.DataDir)
	assert.Equal(t, "settings.toml", filepath.Base(cfg.Storage.SettingsFile))

	// Test UI defaults
	assert.Equal(t, 5, cfg.UI.MaxToasts)
	assert.Equal(t, 5, cfg.UI.ToastSeconds)
	assert.Equal(t, "top-right", cfg.UI.ToastPosition)
	assert.False(t, cfg.UI.FastStart)
	assert.True(t, cfg.UI.AltScreen)

	assert.Equal(t, 5*time.Second, cfg.ToastDuration())
}

func TestLoad_MissingFile(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.NoError(t, err)

	assert.Empty(t, cfg.Source)
	assert.Equal(t, DefaultConfig().UI, cfg.UI)
}

func TestLoad_File(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	content := `
logging:
  level: DEBUG
  persist: false
storage:
  data_dir: ""
ui:
  max_toasts: 3
  fast_start: true
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, path, cfg.Source)
	assert.Equal(t, "DEBUG", cfg.Logging.Level)
	assert.False(t, cfg.Logging.Persist)
	assert.Equal(t, 1000, cfg.Logging.MaxEntries, "unset keys fall back to defaults")
	assert.Empty(t, cfg.Storage.DataDir)
	assert.Empty(t, cfg.DatabasePath(), "empty data dir means memory-only")
	assert.Equal(t, 3, cfg.UI.MaxToasts)
	assert.True(t, cfg.UI.FastStart)
	assert.Equal(t, 5, cfg.UI.ToastSeconds)
}

func TestLoad_EnvOverride(t *testing.T) {
	t.Setenv("HEARTH_UI_MAX_TOASTS", "8")
	t.Setenv("HEARTH_LOGGING_LEVEL", "WARN")

	cfg, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.NoError(t, err)

	assert.Equal(t, 8, cfg.UI.MaxToasts)
	assert.Equal(t, "WARN", cfg.Logging.Level)
}

func TestLoad_InvalidYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("ui: [unclosed"), 0644))

	_, err := Load(path)
	assert.Error(t, err)
}

func TestSaveAndLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.yaml")

	cfg := DefaultConfig()
	cfg.UI.MaxToasts = 7
	cfg.UI.ToastPosition = "bottom-left"
	cfg.Logging.Level = "ERROR"

	require.NoError(t, Save(cfg, path))

	loaded, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 7, loaded.UI.MaxToasts)
	assert.Equal(t, "bottom-left", loaded.UI.ToastPosition)
	assert.Equal(t, "ERROR", loaded.Logging.Level)
}

func TestMergeWithDefaults(t *testing.T) {
	cfg := &Config{
		UI: UIConfig{MaxToasts: 2},
	}

	merged := MergeWithDefaults(cfg)
	defaults := DefaultConfig()

	assert.Equal(t, 2, merged.UI.MaxToasts, "explicit value kept")
	assert.Equal(t, defaults.UI.ToastSeconds, merged.UI.ToastSeconds)
	assert.Equal(t, defaults.UI.ToastPosition, merged.UI.ToastPosition)
	assert.Equal(t, defaults.Logging.Level, merged.Logging.Level)
	assert.Equal(t, defaults.Logging.MaxEntries, merged.Logging.MaxEntries)
	assert.Equal(t, defaults.Logging.PageSize, merged.Logging.PageSize)
	assert.Equal(t, defaults.Storage.SettingsFile, merged.Storage.SettingsFile)
}

func TestExpandPath(t *testing.T) {
	home, err := os.UserHomeDir()
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(home, "x", "y"), ExpandPath("~/x/y"))
	assert.Equal(t, "/abs/path", ExpandPath("/abs/path"))
	assert.Equal(t, "", ExpandPath(""))
}
