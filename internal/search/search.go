// ABOUTME: Search and filter over journal entries.
// ABOUTME: Case-insensitive substring matching on title, content, or tags, ordered newest first.
package search

import (
	"sort"
	"strings"
	"time"

	"github.com/2389-research/daybook/internal/models"
)

// Filter returns the entries matching query, most recent first.
//
// An empty query matches everything. Otherwise an entry matches when its
// title, its content, or any of its tags contains query, ignoring case.
// Whitespace in query is matched literally.
// The input slice is never modified.
func Filter(entries []*models.JournalEntry, query string) []*models.JournalEntry {
	q := strings.ToLower(query)

	out := make([]*models.JournalEntry, 0, len(entries))
	for _, entry := range entries {
		if entry == nil {
			continue
		}
		if q == "" || Matches(entry, q) {
			out = append(out, entry)
		}
	}

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Date.After(out[j].Date)
	})
	return out
}

// Matches reports whether entry contains the lower-cased query in its
// title, content, or any tag.
func Matches(entry *models.JournalEntry, lowerQuery string) bool {
	if strings.Contains(strings.ToLower(entry.Title), lowerQuery) {
		return true
	}
	if strings.Contains(strings.ToLower(entry.Content), lowerQuery) {
		return true
	}
	for _, tag := range entry.Tags {
		if strings.Contains(strings.ToLower(tag), lowerQuery) {
			return true
		}
	}
	return false
}

// Query narrows a Filter result for list views.
type Query struct {
	Text  string      // substring query passed to Filter
	Tag   string      // exact tag, case-sensitive
	Mood  models.Mood // MoodUnset means any
	Since time.Time   // zero means no cutoff
	Limit int         // 0 means no limit
}

// Apply runs Filter with q.Text and then the remaining narrowing options.
func Apply(entries []*models.JournalEntry, q Query) []*models.JournalEntry {
	filtered := Filter(entries, q.Text)

	out := filtered[:0]
	for _, entry := range filtered {
		if q.Tag != "" && !entry.HasTag(q.Tag) {
			continue
		}
		if q.Mood.IsSet() && entry.Mood != q.Mood {
			continue
		}
		if !q.Since.IsZero() && entry.Date.Before(q.Since) {
			continue
		}
		out = append(out, entry)
	}

	if q.Limit > 0 && len(out) > q.Limit {
		out = out[:q.Limit]
	}
	return out
}

// UniqueTags returns every distinct tag across entries, sorted.
func UniqueTags(entries []*models.JournalEntry) []string {
	seen := make(map[string]struct{})
	for _, entry := range entries {
		if entry == nil {
			continue
		}
		for _, tag := range entry.Tags {
			seen[tag] = struct{}{}
		}
	}
	tags := make([]string, 0, len(seen))
	for tag := range seen {
		tags = append(tags, tag)
	}
	sort.Strings(tags)
	return tags
}
