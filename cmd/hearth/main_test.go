package main

import (
	"bytes"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/riordanpawley/hearth/internal/logging"
	"github.com/riordanpawley/hearth/internal/store"
)

// writeConfig points storage at a temp directory and returns the config path
func writeConfig(t *testing.T) (cfgPath, dataDir string) {
	t.Helper()
	dir := t.TempDir()
	dataDir = filepath.Join(dir, "data")
	cfgPath = filepath.Join(dir, "config.yaml")
	yaml := fmt.Sprintf("storage:\n  data_dir: %s\n  settings_file: %s\nlogging:\n  file: \"\"\n",
		dataDir, filepath.Join(dir, "settings.toml"))
	require.NoError(t, os.WriteFile(cfgPath, []byte(yaml), 0o600))
	return cfgPath, dataDir
}

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := NewRootCommand()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestVersionCommand(t *testing.T) {
	out, err := run(t, "version")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "hearth dev (commit: none"), out)
}

func TestSettingsCommands(t *testing.T) {
	cfgPath, _ := writeConfig(t)
	settingsPath := filepath.Join(filepath.Dir(cfgPath), "settings.toml")

	out, err := run(t, "settings", "path", "--config", cfgPath)
	require.NoError(t, err)
	assert.Equal(t, settingsPath+"\n", out)

	out, err = run(t, "settings", "show", "--config", cfgPath)
	require.NoError(t, err)
	assert.Contains(t, out, `theme = "dark"`)
	assert.FileExists(t, settingsPath, "show creates the default file")
}

func TestLogsCommands(t *testing.T) {
	cfgPath, dataDir := writeConfig(t)

	st, err := store.Open(filepath.Join(dataDir, "hearth.db"), logging.NullLogger())
	require.NoError(t, err)
	require.NoError(t, st.SaveLogs(t.Context(), []logging.Entry{
		{Time: time.Date(2026, 3, 1, 9, 30, 0, 0, time.UTC), Level: slog.LevelWarn, Message: "backend slow"},
	}))
	require.NoError(t, st.Close())

	out, err := run(t, "logs", "export", "--config", cfgPath)
	require.NoError(t, err)
	assert.Contains(t, out, "# Hearth Application Logs")
	assert.Contains(t, out, "[2026-03-01 09:30:00 UTC] WARN  backend slow")

	file := filepath.Join(t.TempDir(), "out.txt")
	_, err = run(t, "logs", "export", "--config", cfgPath, "-o", file)
	require.NoError(t, err)
	data, err := os.ReadFile(file)
	require.NoError(t, err)
	assert.Contains(t, string(data), "backend slow")

	out, err = run(t, "logs", "clear", "--config", cfgPath)
	require.NoError(t, err)
	assert.Equal(t, "Cleared 1 entries\n", out)

	out, err = run(t, "logs", "export", "--config", cfgPath)
	require.NoError(t, err)
	assert.NotContains(t, out, "backend slow")
}

func TestRootRequiresTerminal(t *testing.T) {
	cfgPath, _ := writeConfig(t)
	_, err := run(t, "--config", cfgPath)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "interactive terminal")
}
