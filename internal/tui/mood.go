// ABOUTME: Display mapping from mood rank to glyph and label.
// ABOUTME: A static lookup table kept at the presentation boundary, outside the data model.
package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/2389-research/daybook/internal/models"
)

// moodDisplay pairs a mood's label with its glyph and colour.
type moodDisplay struct {
	Label string
	Glyph string
	Color lipgloss.Color
}

var moodTable = map[models.Mood]moodDisplay{
	models.MoodTerrible: {"Terrible", "😫", lipgloss.Color("196")},
	models.MoodBad:      {"Bad", "😔", lipgloss.Color("208")},
	models.MoodOkay:     {"Okay", "😐", lipgloss.Color("226")},
	models.MoodGood:     {"Good", "🙂", lipgloss.Color("118")},
	models.MoodGreat:    {"Great", "😁", lipgloss.Color("82")},
}

// MoodGlyph returns the emoji for m, or "" when no mood is recorded.
func MoodGlyph(m models.Mood) string {
	return moodTable[m].Glyph
}

// MoodLabel returns the capitalized name for m, or "None" when unset.
func MoodLabel(m models.Mood) string {
	if d, ok := moodTable[m]; ok {
		return d.Label
	}
	return "None"
}

// RenderMood returns "<glyph> <label>" styled with the mood's colour.
func RenderMood(m models.Mood) string {
	d, ok := moodTable[m]
	if !ok {
		return promptStyle.Render("None")
	}
	return lipgloss.NewStyle().Foreground(d.Color).Render(d.Glyph + " " + d.Label)
}

// MoodChoices lists "rank glyph label" lines for a picker prompt.
func MoodChoices() string {
	var parts []string
	for _, m := range models.AllMoods {
		parts = append(parts, strings.Join([]string{
			string(rune('0' + int(m))), MoodGlyph(m), MoodLabel(m),
		}, " "))
	}
	return strings.Join(parts, "  ")
}
