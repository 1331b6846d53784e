package config

import (
	"bytes"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/riordanpawley/hearth/internal/domain"
)

// Theme is the user's colour scheme preference
type Theme string

const (
	ThemeLight Theme = "light"
	ThemeDark  Theme = "dark"
	ThemeAuto  Theme = "auto" // follow the terminal background
)

// Themes lists the selectable themes in display order
var Themes = []Theme{ThemeLight, ThemeDark, ThemeAuto}

// Label returns the display name
func (t Theme) Label() string {
	switch t {
	case ThemeLight:
		return "Light"
	case ThemeAuto:
		return "Auto"
	default:
		return "Dark"
	}
}

// Next cycles Light -> Dark -> Auto -> Light
func (t Theme) Next() Theme {
	for i, th := range Themes {
		if th == t {
			return Themes[(i+1)%len(Themes)]
		}
	}
	return ThemeDark
}

// LLMProviderType identifies the API family of a language model provider
type LLMProviderType string

const (
	ProviderOllama    LLMProviderType = "ollama"
	ProviderOpenAI    LLMProviderType = "openai"
	ProviderAnthropic LLMProviderType = "anthropic"
	ProviderCustom    LLMProviderType = "custom"
)

// LLMProviderSettings configures one provider connection
type LLMProviderSettings struct {
	BaseURL     string  `toml:"base_url,omitempty"`
	APIKey      string  `toml:"api_key,omitempty"`
	Model       string  `toml:"model"`
	MaxTokens   int     `toml:"max_tokens,omitempty"`
	Temperature float64 `toml:"temperature,omitempty"`
}

// LLMProviderConfig is a named provider the local backend can use
type LLMProviderConfig struct {
	ID     string              `toml:"id"`
	Name   string              `toml:"name"`
	Type   LLMProviderType     `toml:"provider_type"`
	Config LLMProviderSettings `toml:"config"`
}

// LocalBackendConfig configures the in-process backend
type LocalBackendConfig struct {
	DatabasePath     string              `toml:"database_path,omitempty"` // empty = default path
	LLMProviders     []LLMProviderConfig `toml:"llm_providers"`
	SelectedProvider string              `toml:"selected_llm_provider,omitempty"`
}

// RemoteBackendConfig describes a remote Hearth server
type RemoteBackendConfig struct {
	ID            string     `toml:"id"`
	Name          string     `toml:"name"`
	URL           string     `toml:"url"`
	AuthToken     string     `toml:"auth_token,omitempty"`
	LastConnected *time.Time `toml:"last_connected,omitempty"`
}

// UIPreferences holds display preferences
type UIPreferences struct {
	MessageTimestamps bool `toml:"message_timestamps"`
	TypingIndicators  bool `toml:"typing_indicators"`
	CompactMode       bool `toml:"compact_mode"`
	SidebarCollapsed  bool `toml:"sidebar_collapsed"`
}

// ChatPreferences holds conversation preferences
type ChatPreferences struct {
	AutoScroll         bool `toml:"auto_scroll"`
	SoundNotifications bool `toml:"sound_notifications"`
	MessageGrouping    bool `toml:"message_grouping"`
	ShowWordCount      bool `toml:"show_word_count"`
}

// AppSettings is the user's persisted settings file
type AppSettings struct {
	Version         int                   `toml:"version"`
	SelectedBackend string                `toml:"selected_backend,omitempty"` // empty = local mode
	LocalBackend    *LocalBackendConfig   `toml:"local_backend,omitempty"`
	RemoteBackends  []RemoteBackendConfig `toml:"remote_backends"`
	Theme           Theme                 `toml:"theme"`
	UI              UIPreferences         `toml:"ui_preferences"`
	Chat            ChatPreferences       `toml:"chat_preferences"`
}

// DefaultSettings returns settings for a fresh install
func DefaultSettings() AppSettings {
	return AppSettings{
		Version: CurrentSettingsVersion,
		LocalBackend: &LocalBackendConfig{
			LLMProviders: []LLMProviderConfig{
				{
					ID:   "ollama_default",
					Name: "Ollama (Local)",
					Type: ProviderOllama,
					Config: LLMProviderSettings{
						BaseURL:     "http://localhost:11434",
						Model:       "llama3.1:8b",
						MaxTokens:   2048,
						Temperature: 0.7,
					},
				},
			},
			SelectedProvider: "ollama_default",
		},
		RemoteBackends: []RemoteBackendConfig{},
		Theme:          ThemeDark,
		UI: UIPreferences{
			MessageTimestamps: true,
			TypingIndicators:  true,
		},
		Chat: ChatPreferences{
			AutoScroll:      true,
			MessageGrouping: true,
		},
	}
}

// Clone returns a deep copy
func (s AppSettings) Clone() AppSettings {
	out := s
	out.RemoteBackends = append([]RemoteBackendConfig(nil), s.RemoteBackends...)
	if s.LocalBackend != nil {
		local := *s.LocalBackend
		local.LLMProviders = append([]LLMProviderConfig(nil), s.LocalBackend.LLMProviders...)
		out.LocalBackend = &local
	}
	return out
}

// IsLocal reports whether the local backend is selected
func (s AppSettings) IsLocal() bool {
	return s.SelectedBackend == ""
}

// EncodeSettings renders settings as TOML
func EncodeSettings(s AppSettings) ([]byte, error) {
	var buf bytes.Buffer
	if err := toml.NewEncoder(&buf).Encode(s); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// SettingsManager owns the settings file and serializes access to it
type SettingsManager struct {
	mu       sync.RWMutex
	path     string
	settings AppSettings
	written  []byte // last content this manager wrote or read
	logger   *slog.Logger
}

// NewSettingsManager returns a manager holding defaults; call Load to read the file
func NewSettingsManager(path string, logger *slog.Logger) *SettingsManager {
	if logger == nil {
		logger = slog.Default()
	}
	return &SettingsManager{
		path:     ExpandPath(path),
		settings: DefaultSettings(),
		logger:   logger,
	}
}

// OpenSettings loads settings from path. A missing file is created with
// defaults. An unreadable file is moved aside to path+".bak" and replaced
// with defaults; the returned error describes what went wrong.
func OpenSettings(path string, logger *slog.Logger) (*SettingsManager, error) {
	m := NewSettingsManager(path, logger)

	err := m.Load()
	if err == nil {
		m.logger.Info("settings loaded", "path", m.path)
		return m, nil
	}

	if !errors.Is(err, os.ErrNotExist) {
		m.logger.Warn("failed to load settings, using defaults", "path", m.path, "error", err)
		if renameErr := os.Rename(m.path, m.path+".bak"); renameErr != nil {
			m.logger.Error("failed to back up settings", "error", renameErr)
		}
	}

	if saveErr := m.Save(); saveErr != nil {
		m.logger.Error("failed to save default settings", "error", saveErr)
		return m, saveErr
	}
	m.logger.Info("default settings saved", "path", m.path)

	if errors.Is(err, os.ErrNotExist) {
		return m, nil
	}
	return m, err
}

// Path returns the settings file location
func (m *SettingsManager) Path() string {
	return m.path
}

// Load replaces the in-memory settings with the file's content
func (m *SettingsManager) Load() error {
	_, err := m.reload()
	return err
}

// Reload re-reads the file and reports whether it differed from what this
// manager last read or wrote
func (m *SettingsManager) Reload() (bool, error) {
	return m.reload()
}

func (m *SettingsManager) reload() (bool, error) {
	data, err := os.ReadFile(m.path)
	if err != nil {
		return false, &domain.SettingsError{Op: "load", Path: m.path, Err: err}
	}

	m.mu.RLock()
	same := bytes.Equal(data, m.written)
	m.mu.RUnlock()
	if same {
		return false, nil
	}

	settings, err := ParseVersionedSettings(data)
	if err != nil {
		return false, &domain.SettingsError{Op: "load", Path: m.path, Err: err}
	}

	m.mu.Lock()
	m.settings = *settings
	m.written = data
	m.mu.Unlock()
	return true, nil
}

// Save writes the current settings to disk
func (m *SettingsManager) Save() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.saveLocked()
}

func (m *SettingsManager) saveLocked() error {
	m.settings.Version = CurrentSettingsVersion
	data, err := EncodeSettings(m.settings)
	if err != nil {
		return &domain.SettingsError{Op: "encode", Path: m.path, Err: err}
	}

	if err := os.MkdirAll(filepath.Dir(m.path), 0755); err != nil {
		return &domain.SettingsError{Op: "save", Path: m.path, Err: err}
	}

	// Write to a temp file and rename so watchers never see a partial file
	tmp := m.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0644); err != nil {
		return &domain.SettingsError{Op: "save", Path: m.path, Err: err}
	}
	if err := os.Rename(tmp, m.path); err != nil {
		return &domain.SettingsError{Op: "save", Path: m.path, Err: err}
	}

	m.written = data
	return nil
}

// Get returns a copy of the current settings
func (m *SettingsManager) Get() AppSettings {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.settings.Clone()
}

// Update replaces all settings and saves them
func (m *SettingsManager) Update(s AppSettings) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.logger.Debug("updating settings")
	m.settings = s.Clone()
	return m.saveLocked()
}

// mutate applies fn under the lock and saves the result
func (m *SettingsManager) mutate(fn func(*AppSettings) error) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if err := fn(&m.settings); err != nil {
		return err
	}
	return m.saveLocked()
}

// SelectedBackend returns the selected backend ID, empty for local mode
func (m *SettingsManager) SelectedBackend() string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.settings.SelectedBackend
}

// SetSelectedBackend selects a remote backend, or local mode when id is empty
func (m *SettingsManager) SetSelectedBackend(id string) error {
	return m.mutate(func(s *AppSettings) error {
		return s.SelectBackend(id)
	})
}

// RemoteBackend looks up a remote backend by ID
func (m *SettingsManager) RemoteBackend(id string) (RemoteBackendConfig, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	b, err := m.settings.RemoteBackend(id)
	if err != nil {
		return RemoteBackendConfig{}, false
	}
	return *b, true
}

// AddRemoteBackend stores b, replacing any backend with the same ID
func (m *SettingsManager) AddRemoteBackend(b RemoteBackendConfig) error {
	return m.mutate(func(s *AppSettings) error {
		return s.AddRemoteBackend(b)
	})
}

// RemoveRemoteBackend deletes a remote backend, falling back to local mode
// if it was selected
func (m *SettingsManager) RemoveRemoteBackend(id string) error {
	return m.mutate(func(s *AppSettings) error {
		return s.RemoveRemoteBackend(id)
	})
}

// SetTheme changes and saves the theme
func (m *SettingsManager) SetTheme(t Theme) error {
	return m.mutate(func(s *AppSettings) error {
		switch t {
		case ThemeLight, ThemeDark, ThemeAuto:
			s.Theme = t
			return nil
		default:
			return fmt.Errorf("unknown theme %q", t)
		}
	})
}

// SetUIPreferences changes and saves the UI preferences
func (m *SettingsManager) SetUIPreferences(p UIPreferences) error {
	return m.mutate(func(s *AppSettings) error {
		s.UI = p
		return nil
	})
}

// SetChatPreferences changes and saves the chat preferences
func (m *SettingsManager) SetChatPreferences(p ChatPreferences) error {
	return m.mutate(func(s *AppSettings) error {
		s.Chat = p
		return nil
	})
}
