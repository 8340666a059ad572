// ABOUTME: Daily reminder preference types and their YAML persistence.
// ABOUTME: Stores the enabled flag and time of day as a small key-value file.
package reminder

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// DefaultTime is the reminder time used until the user picks one.
var DefaultTime = TimeOfDay{Hour: 20, Minute: 0}

// TimeOfDay is a wall-clock time without a date.
type TimeOfDay struct {
	Hour   int
	Minute int
}

// ParseTimeOfDay parses "HH:MM" in 24-hour form.
func ParseTimeOfDay(s string) (TimeOfDay, error) {
	h, m, ok := strings.Cut(strings.TrimSpace(s), ":")
	if !ok {
		return TimeOfDay{}, fmt.Errorf("invalid time %q: want HH:MM", s)
	}
	hour, err := strconv.Atoi(h)
	if err != nil {
		return TimeOfDay{}, fmt.Errorf("invalid hour in %q: %w", s, err)
	}
	minute, err := strconv.Atoi(m)
	if err != nil {
		return TimeOfDay{}, fmt.Errorf("invalid minute in %q: %w", s, err)
	}
	t := TimeOfDay{Hour: hour, Minute: minute}
	if !t.Valid() {
		return TimeOfDay{}, fmt.Errorf("time %q out of range", s)
	}
	return t, nil
}

// Valid reports whether the hour and minute are in range.
func (t TimeOfDay) Valid() bool {
	return t.Hour >= 0 && t.Hour < 24 && t.Minute >= 0 && t.Minute < 60
}

// String formats the time as HH:MM.
func (t TimeOfDay) String() string {
	return fmt.Sprintf("%02d:%02d", t.Hour, t.Minute)
}

// MarshalYAML writes the time as "HH:MM".
func (t TimeOfDay) MarshalYAML() (interface{}, error) {
	return t.String(), nil
}

// UnmarshalYAML reads a "HH:MM" scalar.
func (t *TimeOfDay) UnmarshalYAML(value *yaml.Node) error {
	parsed, err := ParseTimeOfDay(value.Value)
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}

// Preference is the user's daily reminder setting.
type Preference struct {
	Enabled bool      `yaml:"daily_reminder_enabled"`
	Time    TimeOfDay `yaml:"daily_reminder_time"`
}

// DefaultPreference returns reminders off at DefaultTime.
func DefaultPreference() Preference {
	return Preference{Enabled: false, Time: DefaultTime}
}

// PreferenceStore persists the reminder preference.
type PreferenceStore interface {
	// Load returns the saved preference, or the default when none is saved.
	Load() (Preference, error)

	// Save persists the preference.
	Save(p Preference) error
}

// FilePreferenceStore keeps the preference in a YAML file.
type FilePreferenceStore struct {
	path string
}

// NewFilePreferenceStore creates a preference store at path.
func NewFilePreferenceStore(path string) *FilePreferenceStore {
	return &FilePreferenceStore{path: path}
}

// Load reads the preference file. A missing file yields the default.
func (s *FilePreferenceStore) Load() (Preference, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return DefaultPreference(), nil
		}
		return DefaultPreference(), fmt.Errorf("failed to read reminder preferences: %w", err)
	}

	p := DefaultPreference()
	if err := yaml.Unmarshal(data, &p); err != nil {
		return DefaultPreference(), fmt.Errorf("failed to parse reminder preferences: %w", err)
	}
	return p, nil
}

// Save writes the preference file through a temp file and rename.
func (s *FilePreferenceStore) Save(p Preference) error {
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0750); err != nil {
		return fmt.Errorf("failed to create reminder preferences directory: %w", err)
	}
	data, err := yaml.Marshal(p)
	if err != nil {
		return fmt.Errorf("failed to encode reminder preferences: %w", err)
	}

	tmp, err := os.CreateTemp(dir, filepath.Base(s.path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("failed to create temp preferences file: %w", err)
	}
	tmpPath := tmp.Name()
	defer os.Remove(tmpPath) // no-op once renamed

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to write reminder preferences: %w", err)
	}
	if err := tmp.Chmod(0600); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to set reminder preferences mode: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to close temp preferences file: %w", err)
	}
	if err := os.Rename(tmpPath, s.path); err != nil {
		return fmt.Errorf("failed to replace reminder preferences: %w", err)
	}
	return nil
}
