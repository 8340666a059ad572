// ABOUTME: Core data model for journal entries and the mood enumeration.
// ABOUTME: Provides the entry constructor, tag helpers, and id-based equality.
package models

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

// ErrEmptyTitle is returned when an entry is created without a title.
var ErrEmptyTitle = errors.New("title is required")

// JournalEntry represents one dated diary entry.
type JournalEntry struct {
	ID        uuid.UUID `json:"id"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	Date      time.Time `json:"date"`
	Mood      Mood      `json:"mood"`
	Tags      []string  `json:"tags"`
	ImageData []byte    `json:"imageData"`
}

// NewJournalEntry creates a journal entry with generated UUID and timestamp.
// The title is trimmed. Tags are added through AddTag so duplicates are dropped.
func NewJournalEntry(title, content string, mood Mood, tags []string) (*JournalEntry, error) {
	if err := ValidateTitle(title); err != nil {
		return nil, err
	}
	entry := &JournalEntry{
		ID:      uuid.New(),
		Title:   strings.TrimSpace(title),
		Content: content,
		Date:    time.Now(),
		Mood:    mood,
		Tags:    []string{},
	}
	for _, tag := range tags {
		entry.AddTag(tag)
	}
	return entry, nil
}

// ValidateTitle rejects blank titles.
func ValidateTitle(title string) error {
	if strings.TrimSpace(title) == "" {
		return ErrEmptyTitle
	}
	return nil
}

// Equal reports whether two entries share an ID.
func (e *JournalEntry) Equal(other *JournalEntry) bool {
	if e == nil || other == nil {
		return e == other
	}
	return e.ID == other.ID
}

// HasImage returns true if a photo is attached.
func (e *JournalEntry) HasImage() bool {
	return len(e.ImageData) > 0
}

// HasTag returns true if tag is present, matched case-sensitively.
func (e *JournalEntry) HasTag(tag string) bool {
	for _, t := range e.Tags {
		if t == tag {
			return true
		}
	}
	return false
}

// AddTag appends a trimmed tag unless it is empty or already present.
// It returns true when the tag list changed.
func (e *JournalEntry) AddTag(tag string) bool {
	tag = strings.TrimSpace(tag)
	if tag == "" || e.HasTag(tag) {
		return false
	}
	e.Tags = append(e.Tags, tag)
	return true
}

// RemoveTag deletes tag from the list, keeping the order of the rest.
// It returns true when the tag list changed.
func (e *JournalEntry) RemoveTag(tag string) bool {
	for i, t := range e.Tags {
		if t == tag {
			e.Tags = append(e.Tags[:i], e.Tags[i+1:]...)
			return true
		}
	}
	return false
}

// DedupeTags drops repeated tags, keeping first occurrences in order.
func (e *JournalEntry) DedupeTags() {
	seen := make(map[string]struct{}, len(e.Tags))
	tags := e.Tags[:0]
	for _, t := range e.Tags {
		if _, ok := seen[t]; ok {
			continue
		}
		seen[t] = struct{}{}
		tags = append(tags, t)
	}
	e.Tags = tags
}

// Clone returns a deep copy of the entry.
func (e *JournalEntry) Clone() *JournalEntry {
	if e == nil {
		return nil
	}
	c := *e
	c.Tags = append([]string{}, e.Tags...)
	if e.ImageData != nil {
		c.ImageData = append([]byte(nil), e.ImageData...)
	}
	return &c
}

// SameContent compares every field. Dates are compared at microsecond
// precision, which is what survives a persistence round-trip everywhere.
func (e *JournalEntry) SameContent(other *JournalEntry) bool {
	if e == nil || other == nil {
		return e == other
	}
	if e.ID != other.ID || e.Title != other.Title || e.Content != other.Content || e.Mood != other.Mood {
		return false
	}
	if !e.Date.Truncate(time.Microsecond).Equal(other.Date.Truncate(time.Microsecond)) {
		return false
	}
	if len(e.Tags) != len(other.Tags) {
		return false
	}
	for i := range e.Tags {
		if e.Tags[i] != other.Tags[i] {
			return false
		}
	}
	return string(e.ImageData) == string(other.ImageData)
}
