package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseVersionedSettings_Legacy(t *testing.T) {
	// Legacy settings without version field
	legacy := `
dark_mode = false
sidebar_collapsed = true

[chat_preferences]
auto_scroll = false
`

	s, err := ParseVersionedSettings([]byte(legacy))
	require.NoError(t, err)

	assert.Equal(t, ThemeLight, s.Theme)
	assert.True(t, s.UI.SidebarCollapsed)
	assert.False(t, s.Chat.AutoScroll)
	assert.True(t, s.UI.MessageTimestamps, "missing fields keep defaults")
	assert.NotNil(t, s.LocalBackend)
}

func TestParseVersionedSettings_Version1(t *testing.T) {
	v1 := `
version = 1
theme = "auto"
selected_backend = "home"

[[remote_backends]]
id = "home"
name = "Home Server"
url = "https://hearth.example.com"
`

	s, err := ParseVersionedSettings([]byte(v1))
	require.NoError(t, err)

	assert.Equal(t, 1, s.Version)
	assert.Equal(t, ThemeAuto, s.Theme)
	assert.Equal(t, "home", s.SelectedBackend)
	require.Len(t, s.RemoteBackends, 1)
	assert.Equal(t, "Home Server", s.RemoteBackends[0].Name)
}

func TestParseVersionedSettings_FutureVersion(t *testing.T) {
	_, err := ParseVersionedSettings([]byte("version = 999\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "newer than supported")
}

func TestParseVersionedSettings_Invalid(t *testing.T) {
	_, err := ParseVersionedSettings([]byte("this is = = not toml"))
	assert.Error(t, err)
}

func TestApplyMigrations_V0ToV1(t *testing.T) {
	data := map[string]any{
		"dark_mode": true,
	}

	migrated, err := ApplyMigrations(data, 0)
	require.NoError(t, err)

	assert.Equal(t, int64(1), migrated["version"])
	assert.Equal(t, "dark", migrated["theme"])
	assert.NotContains(t, migrated, "dark_mode")
}

func TestApplyMigrations_KeepsExplicitTheme(t *testing.T) {
	data := map[string]any{
		"dark_mode": true,
		"theme":     "light",
	}

	migrated, err := ApplyMigrations(data, 0)
	require.NoError(t, err)
	assert.Equal(t, "light", migrated["theme"])
}

func TestApplyMigrations_NoPath(t *testing.T) {
	_, err := ApplyMigrations(map[string]any{}, -1)
	assert.Error(t, err)
}

func TestSettingsRoundTrip(t *testing.T) {
	original := DefaultSettings()
	original.Theme = ThemeLight
	original.Chat.ShowWordCount = true
	require.NoError(t, original.AddRemoteBackend(RemoteBackendConfig{
		ID:  "lab",
		URL: "http://10.0.0.2:8080",
	}))

	data, err := EncodeSettings(original)
	require.NoError(t, err)

	parsed, err := ParseVersionedSettings(data)
	require.NoError(t, err)

	assert.Equal(t, original.Theme, parsed.Theme)
	assert.Equal(t, original.Chat, parsed.Chat)
	assert.Equal(t, original.UI, parsed.UI)
	assert.Equal(t, original.RemoteBackends, parsed.RemoteBackends)
	assert.Equal(t, original.LocalBackend, parsed.LocalBackend)
}

func TestCurrentSettingsVersion(t *testing.T) {
	assert.Equal(t, 1, CurrentSettingsVersion)
	assert.Equal(t, CurrentSettingsVersion, DefaultSettings().Version)
}
