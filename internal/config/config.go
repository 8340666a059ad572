// ABOUTME: Configuration management for daybook with YAML config loading.
// ABOUTME: Handles journal data paths, log level, reminder preference location, and ~ expansion.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// EntriesFileName is the fixed name of the persisted entry collection.
const EntriesFileName = "entries.json"

// ReminderFileName is the default name of the reminder preference file.
const ReminderFileName = "reminder.yaml"

// Config stores daybook configuration loaded from ~/.config/daybook/config.yaml.
type Config struct {
	Journal  JournalConfig  `yaml:"journal"`
	Log      LogConfig      `yaml:"log"`
	Reminder ReminderConfig `yaml:"reminder"`
}

// JournalConfig holds optional path overrides for journal storage.
type JournalConfig struct {
	DataDir string `yaml:"data_dir"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level string `yaml:"level"`
}

// ReminderConfig holds optional overrides for reminder preferences.
type ReminderConfig struct {
	PreferencesPath string `yaml:"preferences_path"`
}

// GetDataDir returns the journal data directory, defaulting to $XDG_DATA_HOME/daybook.
func (c *Config) GetDataDir() (string, error) {
	if c.Journal.DataDir != "" {
		return ExpandPath(c.Journal.DataDir)
	}
	return DefaultDataDir()
}

// GetEntriesPath returns the path of the persisted entry collection.
func (c *Config) GetEntriesPath() (string, error) {
	dir, err := c.GetDataDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, EntriesFileName), nil
}

// GetReminderPath returns the reminder preference file, defaulting to the config directory.
func (c *Config) GetReminderPath() (string, error) {
	if c.Reminder.PreferencesPath != "" {
		return ExpandPath(c.Reminder.PreferencesPath)
	}
	configPath, err := GetConfigPath()
	if err != nil {
		return "", err
	}
	return filepath.Join(filepath.Dir(configPath), ReminderFileName), nil
}

// GetLogLevel returns the configured log level, defaulting to info.
func (c *Config) GetLogLevel() string {
	if c.Log.Level == "" {
		return "info"
	}
	return c.Log.Level
}

// DefaultDataDir returns the default journal data directory.
func DefaultDataDir() (string, error) {
	dataDir := os.Getenv("XDG_DATA_HOME")
	if dataDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("failed to get home directory: %w", err)
		}
		dataDir = filepath.Join(home, ".local", "share")
	}
	return filepath.Join(dataDir, "daybook"), nil
}

// GetConfigPath returns the config file path.
func GetConfigPath() (string, error) {
	configDir := os.Getenv("XDG_CONFIG_HOME")
	if configDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("failed to get home directory: %w", err)
		}
		configDir = filepath.Join(home, ".config")
	}
	return filepath.Join(configDir, "daybook", "config.yaml"), nil
}

// ExpandPath expands a leading ~ to the user's home directory.
func ExpandPath(path string) (string, error) {
	if path == "" {
		return "", nil
	}
	if path == "~" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("failed to get home directory: %w", err)
		}
		return home, nil
	}
	if strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("failed to get home directory: %w", err)
		}
		return filepath.Join(home, path[2:]), nil
	}
	return path, nil
}

// Load reads config from disk. Returns default config if file doesn't exist.
func Load() (*Config, error) {
	path, err := GetConfigPath()
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return &Config{}, nil
		}
		return nil, err
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
	}
	return &cfg, nil
}

// Save writes config to disk.
func (c *Config) Save() error {
	path, err := GetConfigPath()
	if err != nil {
		return err
	}
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0750); err != nil {
		return err
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0600)
}
