// ABOUTME: Tests for journal entry search and filtering.
// ABOUTME: Covers ordering, OR semantics across fields, idempotence, and narrowing options.
package search

import (
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/2389-research/daybook/internal/models"
)

var base = time.Date(2025, 4, 23, 12, 0, 0, 0, time.UTC)

func entry(title, content string, age time.Duration, tags ...string) *models.JournalEntry {
	if tags == nil {
		tags = []string{}
	}
	return &models.JournalEntry{
		ID:      uuid.New(),
		Title:   title,
		Content: content,
		Date:    base.Add(-age),
		Tags:    tags,
	}
}

func titles(entries []*models.JournalEntry) []string {
	out := make([]string, len(entries))
	for i, e := range entries {
		out[i] = e.Title
	}
	return out
}

func assertTitles(t *testing.T, got []*models.JournalEntry, want ...string) {
	t.Helper()
	g := titles(got)
	if len(g) != len(want) {
		t.Fatalf("got %v, want %v", g, want)
	}
	for i := range want {
		if g[i] != want[i] {
			t.Fatalf("got %v, want %v", g, want)
		}
	}
}

func TestFilterEmptyQueryOrdersNewestFirst(t *testing.T) {
	entries := []*models.JournalEntry{
		entry("old", "", 48*time.Hour),
		entry("new", "", 0),
		entry("mid", "", 24*time.Hour),
	}

	assertTitles(t, Filter(entries, ""), "new", "mid", "old")
}

func TestFilterMatchesWhitespaceLiterally(t *testing.T) {
	entries := []*models.JournalEntry{
		entry("Beach day", "", 0),
		entry("Daybreak", "", time.Hour),
		entry("Solo", "", 2*time.Hour),
	}

	assertTitles(t, Filter(entries, " day"), "Beach day")
	assertTitles(t, Filter(entries, " "), "Beach day")
	assertTitles(t, Filter(entries, "day"), "Beach day", "Daybreak")
}

func TestFilterORSemantics(t *testing.T) {
	entries := []*models.JournalEntry{
		entry("Beach day", "", 2*time.Hour, "fun"),
		entry("Work", "beach reading", time.Hour),
		entry("Groceries", "milk", 0),
	}

	assertTitles(t, Filter(entries, "beach"), "Work", "Beach day")
	assertTitles(t, Filter(entries, "BEACH"), "Work", "Beach day")
}

func TestFilterMatchesTags(t *testing.T) {
	entries := []*models.JournalEntry{
		entry("One", "", time.Hour, "Travel"),
		entry("Two", "", 0, "home"),
	}

	assertTitles(t, Filter(entries, "trav"), "One")
	assertTitles(t, Filter(entries, "nothing"))
}

func TestFilterIsIdempotentAndPure(t *testing.T) {
	entries := []*models.JournalEntry{
		entry("b", "", time.Hour),
		entry("a", "", 0),
		entry("c", "", 2*time.Hour),
	}
	original := titles(entries)

	first := titles(Filter(entries, ""))
	second := titles(Filter(entries, ""))
	for i := range first {
		if first[i] != second[i] {
			t.Fatalf("filter not idempotent: %v vs %v", first, second)
		}
	}

	after := titles(entries)
	for i := range original {
		if original[i] != after[i] {
			t.Fatalf("filter mutated input order: %v -> %v", original, after)
		}
	}
}

func TestFilterStableForEqualDates(t *testing.T) {
	a := entry("first", "", 0)
	b := entry("second", "", 0)
	assertTitles(t, Filter([]*models.JournalEntry{a, b}, ""), "first", "second")
}

func TestFilterSkipsNil(t *testing.T) {
	got := Filter([]*models.JournalEntry{nil, entry("x", "", 0)}, "")
	assertTitles(t, got, "x")
}

func TestApply(t *testing.T) {
	happy := entry("Happy", "great day", 0, "fun")
	happy.Mood = models.MoodGreat
	sad := entry("Sad", "rain", 24*time.Hour, "fun")
	sad.Mood = models.MoodBad
	old := entry("Ancient", "great memories", 30*24*time.Hour, "Fun")
	entries := []*models.JournalEntry{old, sad, happy}

	tests := []struct {
		name string
		q    Query
		want []string
	}{
		{"all", Query{}, []string{"Happy", "Sad", "Ancient"}},
		{"text", Query{Text: "great"}, []string{"Happy", "Ancient"}},
		{"exact tag", Query{Tag: "fun"}, []string{"Happy", "Sad"}},
		{"mood", Query{Mood: models.MoodBad}, []string{"Sad"}},
		{"since", Query{Since: base.Add(-48 * time.Hour)}, []string{"Happy", "Sad"}},
		{"limit", Query{Limit: 1}, []string{"Happy"}},
		{"combined", Query{Text: "great", Tag: "Fun"}, []string{"Ancient"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assertTitles(t, Apply(entries, tt.q), tt.want...)
		})
	}
}

func TestUniqueTags(t *testing.T) {
	entries := []*models.JournalEntry{
		entry("a", "", 0, "travel", "fun"),
		entry("b", "", 0, "fun", "Work"),
		nil,
	}
	got := UniqueTags(entries)
	want := []string{"Work", "fun", "travel"}
	if len(got) != len(want) {
		t.Fatalf("UniqueTags = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("UniqueTags = %v, want %v", got, want)
		}
	}
}
