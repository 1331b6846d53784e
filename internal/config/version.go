package config

import (
	"bytes"
	"fmt"

	"github.com/BurntSushi/toml"
)

// CurrentSettingsVersion is the current settings schema version
const CurrentSettingsVersion = 1

// Migration represents a settings migration function
type Migration struct {
	FromVersion int
	ToVersion   int
	Migrate     func(data map[string]any) (map[string]any, error)
}

// migrations is the list of migrations in order
var migrations = []Migration{
	// Migration 0 -> 1: unversioned files kept a dark_mode flag and a
	// top-level sidebar_collapsed
	{
		FromVersion: 0,
		ToVersion:   1,
		Migrate: func(data map[string]any) (map[string]any, error) {
			if dark, ok := data["dark_mode"].(bool); ok {
				if _, hasTheme := data["theme"]; !hasTheme {
					if dark {
						data["theme"] = string(ThemeDark)
					} else {
						data["theme"] = string(ThemeLight)
					}
				}
				delete(data, "dark_mode")
			}
			if collapsed, ok := data["sidebar_collapsed"].(bool); ok {
				ui, _ := data["ui_preferences"].(map[string]any)
				if ui == nil {
					ui = make(map[string]any)
				}
				ui["sidebar_collapsed"] = collapsed
				data["ui_preferences"] = ui
				delete(data, "sidebar_collapsed")
			}
			data["version"] = int64(1)
			return data, nil
		},
	},
}

// ParseVersionedSettings parses settings TOML with version migration support.
// Fields missing from the file keep their default values.
func ParseVersionedSettings(data []byte) (*AppSettings, error) {
	// First, parse into a raw map to get the version
	var raw map[string]any
	if err := toml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("failed to parse settings TOML: %w", err)
	}

	// Detect version (0 if not present = legacy settings)
	version := 0
	if v, ok := raw["version"].(int64); ok {
		version = int(v)
	}

	if version > CurrentSettingsVersion {
		return nil, fmt.Errorf("settings version %d is newer than supported version %d", version, CurrentSettingsVersion)
	}

	if version < CurrentSettingsVersion {
		var err error
		raw, err = ApplyMigrations(raw, version)
		if err != nil {
			return nil, fmt.Errorf("failed to migrate settings: %w", err)
		}
		var buf bytes.Buffer
		if err := toml.NewEncoder(&buf).Encode(raw); err != nil {
			return nil, fmt.Errorf("failed to encode migrated settings: %w", err)
		}
		data = buf.Bytes()
	}

	settings := DefaultSettings()
	if _, err := toml.Decode(string(data), &settings); err != nil {
		return nil, fmt.Errorf("failed to decode settings: %w", err)
	}
	return &settings, nil
}

// ApplyMigrations applies all migrations from the given version to CurrentSettingsVersion
func ApplyMigrations(data map[string]any, fromVersion int) (map[string]any, error) {
	for _, migration := range migrations {
		if migration.FromVersion == fromVersion {
			var err error
			data, err = migration.Migrate(data)
			if err != nil {
				return nil, fmt.Errorf("migration %d -> %d failed: %w",
					migration.FromVersion, migration.ToVersion, err)
			}
			fromVersion = migration.ToVersion
		}
	}

	if fromVersion < CurrentSettingsVersion {
		return nil, fmt.Errorf("no migration path from version %d to %d", fromVersion, CurrentSettingsVersion)
	}

	return data, nil
}
