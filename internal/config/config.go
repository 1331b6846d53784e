// Package config loads Hearth's runtime configuration (viper, YAML) and the
// user's application settings (TOML), and watches the settings file for
// outside edits.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/riordanpawley/hearth/internal/logging"
)

// EnvPrefix prefixes environment variable overrides, e.g. HEARTH_UI_MAX_TOASTS
const EnvPrefix = "HEARTH"

// Config holds all runtime configuration
type Config struct {
	Logging LoggingConfig `mapstructure:"logging"`
	Storage StorageConfig `mapstructure:"storage"`
	UI      UIConfig      `mapstructure:"ui"`

	// Source is the config file that was read, empty when only defaults apply
	Source string `mapstructure:"-"`
}

// LoggingConfig holds logging configuration
type LoggingConfig struct {
	File       string `mapstructure:"file"`        // empty disables the log file
	Level      string `mapstructure:"level"`       // DEBUG, INFO, WARN, ERROR
	MaxEntries int    `mapstructure:"max_entries"` // in-memory ring capacity
	Persist    bool   `mapstructure:"persist"`     // save the ring to storage on exit
	PageSize   int    `mapstructure:"page_size"`   // entries per log viewer page
}

// Options maps the logging section onto logging.Setup options
func (c LoggingConfig) Options() logging.Options {
	return logging.Options{
		File:       ExpandPath(c.File),
		Level:      c.Level,
		MaxEntries: c.MaxEntries,
		PageSize:   c.PageSize,
		Persist:    c.Persist,
	}
}

// StorageConfig holds persistence configuration
type StorageConfig struct {
	DataDir      string `mapstructure:"data_dir"` // empty keeps everything in memory
	SettingsFile string `mapstructure:"settings_file"`
}

// UIConfig holds terminal UI configuration
type UIConfig struct {
	MaxToasts     int    `mapstructure:"max_toasts"`
	ToastSeconds  int    `mapstructure:"toast_seconds"`
	ToastPosition string `mapstructure:"toast_position"`
	FastStart     bool   `mapstructure:"fast_start"` // skip per-stage minimum durations
	AltScreen     bool   `mapstructure:"alt_screen"`
	Mouse         bool   `mapstructure:"mouse"`
}

// DefaultConfig returns a Config with sensible defaults
func DefaultConfig() *Config {
	return &Config{
		Logging: LoggingConfig{
			File:       filepath.Join(defaultDataDir(), "hearth.log"),
			Level:      "INFO",
			MaxEntries: 1000,
			Persist:    true,
			PageSize:   50,
		},
		Storage: StorageConfig{
			DataDir:      defaultDataDir(),
			SettingsFile: filepath.Join(DefaultConfigDir(), "settings.toml"),
		},
		UI: UIConfig{
			MaxToasts:     5,
			ToastSeconds:  5,
			ToastPosition: "top-right",
			FastStart:     false,
			AltScreen:     true,
			Mouse:         false,
		},
	}
}

// DefaultConfigDir returns the directory holding config.yaml and settings.toml
func DefaultConfigDir() string {
	switch runtime.GOOS {
	case "windows":
		return filepath.Join(os.Getenv("APPDATA"), "hearth")
	default:
		home, _ := os.UserHomeDir()
		return filepath.Join(home, ".config", "hearth")
	}
}

// defaultDataDir returns the directory for the database and log file
func defaultDataDir() string {
	switch runtime.GOOS {
	case "windows":
		return filepath.Join(os.Getenv("LOCALAPPDATA"), "hearth")
	default:
		home, _ := os.UserHomeDir()
		return filepath.Join(home, ".local", "share", "hearth")
	}
}

// Load reads configuration from path, or from config.yaml in the default
// config directory and the working directory when path is empty.
// HEARTH_* environment variables override file values. A missing file is
// not an error.
func Load(path string) (*Config, error) {
	v := newViper(DefaultConfig())

	if path != "" {
		v.SetConfigFile(ExpandPath(path))
	} else {
		v.SetConfigName("config")
		v.AddConfigPath(DefaultConfigDir())
		v.AddConfigPath(".")
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
		// Config file not found is OK, use defaults
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error parsing config: %w", err)
	}
	cfg.Source = v.ConfigFileUsed()
	if _, err := os.Stat(cfg.Source); err != nil {
		cfg.Source = ""
	}

	return MergeWithDefaults(&cfg), nil
}

// newViper returns a viper instance seeded with defaults so that every key
// is known to AutomaticEnv
func newViper(defaults *Config) *viper.Viper {
	v := viper.New()
	v.SetConfigType("yaml")
	for key, value := range flatten(defaults) {
		v.SetDefault(key, value)
	}
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	return v
}

// flatten maps every config key to its value
func flatten(cfg *Config) map[string]any {
	return map[string]any{
		"logging.file":          cfg.Logging.File,
		"logging.level":         cfg.Logging.Level,
		"logging.max_entries":   cfg.Logging.MaxEntries,
		"logging.persist":       cfg.Logging.Persist,
		"logging.page_size":     cfg.Logging.PageSize,
		"storage.data_dir":      cfg.Storage.DataDir,
		"storage.settings_file": cfg.Storage.SettingsFile,
		"ui.max_toasts":         cfg.UI.MaxToasts,
		"ui.toast_seconds":      cfg.UI.ToastSeconds,
		"ui.toast_position":     cfg.UI.ToastPosition,
		"ui.fast_start":         cfg.UI.FastStart,
		"ui.alt_screen":         cfg.UI.AltScreen,
		"ui.mouse":              cfg.UI.Mouse,
	}
}

// Save writes cfg as YAML to path, creating the directory if needed
func Save(cfg *Config, path string) error {
	path = ExpandPath(path)
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	v := viper.New()
	v.SetConfigType("yaml")
	for key, value := range flatten(cfg) {
		v.Set(key, value)
	}

	if err := v.WriteConfigAs(path); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}

// MergeWithDefaults fills in missing values with defaults
func MergeWithDefaults(cfg *Config) *Config {
	defaults := DefaultConfig()

	// Merge Logging config
	if cfg.Logging.Level == "" {
		cfg.Logging.Level = defaults.Logging.Level
	}
	if cfg.Logging.MaxEntries <= 0 {
		cfg.Logging.MaxEntries = defaults.Logging.MaxEntries
	}
	if cfg.Logging.PageSize <= 0 {
		cfg.Logging.PageSize = defaults.Logging.PageSize
	}

	// Merge Storage config
	if cfg.Storage.SettingsFile == "" {
		cfg.Storage.SettingsFile = defaults.Storage.SettingsFile
	}

	// Merge UI config
	if cfg.UI.MaxToasts <= 0 {
		cfg.UI.MaxToasts = defaults.UI.MaxToasts
	}
	if cfg.UI.ToastSeconds <= 0 {
		cfg.UI.ToastSeconds = defaults.UI.ToastSeconds
	}
	if cfg.UI.ToastPosition == "" {
		cfg.UI.ToastPosition = defaults.UI.ToastPosition
	}

	cfg.Logging.File = ExpandPath(cfg.Logging.File)
	cfg.Storage.DataDir = ExpandPath(cfg.Storage.DataDir)
	cfg.Storage.SettingsFile = ExpandPath(cfg.Storage.SettingsFile)

	return cfg
}

// ToastDuration returns how long convenience toasts stay visible
func (c *Config) ToastDuration() time.Duration {
	return time.Duration(c.UI.ToastSeconds) * time.Second
}

// DatabasePath returns the bbolt file path, or "" for memory-only storage
func (c *Config) DatabasePath() string {
	if c.Storage.DataDir == "" {
		return ""
	}
	return filepath.Join(ExpandPath(c.Storage.DataDir), "hearth.db")
}

// ExpandPath expands a leading ~ to the user's home directory
func ExpandPath(path string) string {
	if !strings.HasPrefix(path, "~") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, path[1:])
}
