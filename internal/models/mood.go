// ABOUTME: Ranked mood enumeration recorded on journal entries.
// ABOUTME: Serializes as a nullable integer rank; zero means not recorded.
package models

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// Mood is the author's recorded emotional state, ranked 1 (worst) to 5 (best).
type Mood int

const (
	MoodUnset    Mood = 0
	MoodTerrible Mood = 1
	MoodBad      Mood = 2
	MoodOkay     Mood = 3
	MoodGood     Mood = 4
	MoodGreat    Mood = 5
)

// AllMoods lists the valid moods in rank order.
var AllMoods = []Mood{MoodTerrible, MoodBad, MoodOkay, MoodGood, MoodGreat}

var moodNames = map[Mood]string{
	MoodTerrible: "terrible",
	MoodBad:      "bad",
	MoodOkay:     "okay",
	MoodGood:     "good",
	MoodGreat:    "great",
}

// Valid returns true for ranks 1 through 5.
func (m Mood) Valid() bool {
	return m >= MoodTerrible && m <= MoodGreat
}

// IsSet returns true if a mood was recorded.
func (m Mood) IsSet() bool {
	return m != MoodUnset
}

// String returns the lower-case mood name, or "" when unset.
func (m Mood) String() string {
	return moodNames[m]
}

// ParseMood accepts a rank ("4") or a name ("good"). An empty string or
// "none" yields MoodUnset.
func ParseMood(s string) (Mood, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" || s == "none" {
		return MoodUnset, nil
	}
	if n, err := strconv.Atoi(s); err == nil {
		m := Mood(n)
		if !m.Valid() {
			return MoodUnset, fmt.Errorf("mood rank %d out of range 1-5", n)
		}
		return m, nil
	}
	for m, name := range moodNames {
		if name == s {
			return m, nil
		}
	}
	return MoodUnset, fmt.Errorf("unknown mood %q", s)
}

// MarshalJSON writes null for an unset mood and the rank otherwise.
func (m Mood) MarshalJSON() ([]byte, error) {
	if !m.IsSet() {
		return []byte("null"), nil
	}
	return []byte(strconv.Itoa(int(m))), nil
}

// UnmarshalJSON reads null or a rank between 1 and 5.
func (m *Mood) UnmarshalJSON(data []byte) error {
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		*m = MoodUnset
		return nil
	}
	var n int
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("invalid mood: %w", err)
	}
	if !Mood(n).Valid() {
		return fmt.Errorf("mood rank %d out of range 1-5", n)
	}
	*m = Mood(n)
	return nil
}
