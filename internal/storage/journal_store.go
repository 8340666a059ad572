// ABOUTME: Interface definition for journal entry storage.
// ABOUTME: Defines the contract for loading, mutating, and persisting the entry collection.
package storage

import (
	"errors"
	"image"

	"github.com/google/uuid"

	"github.com/2389-research/daybook/internal/models"
)

var (
	// ErrEntryNotFound is returned when an operation names an unknown entry ID.
	// The collection is left unchanged.
	ErrEntryNotFound = errors.New("entry not found")

	// ErrDuplicateEntry is returned when adding an entry whose ID is already stored.
	ErrDuplicateEntry = errors.New("entry already exists")

	// ErrInvalidImage is returned when image bytes do not decode.
	ErrInvalidImage = errors.New("image data is not decodable")
)

// JournalStore defines operations for journal entry persistence.
type JournalStore interface {
	// Load reads the persisted collection, replacing the in-memory one.
	// Any read or decode failure yields an empty collection.
	Load() []*models.JournalEntry

	// Save writes the full collection atomically.
	Save() error

	// Entries returns a snapshot of the collection in stored order.
	Entries() []*models.JournalEntry

	// Get returns a copy of the entry with the given ID.
	Get(id uuid.UUID) (*models.JournalEntry, error)

	// Add appends an entry and saves.
	Add(entry *models.JournalEntry) error

	// Update replaces the entry with a matching ID and saves.
	Update(entry *models.JournalEntry) error

	// Remove deletes the entry with the given ID and saves.
	Remove(id uuid.UUID) error

	// AddTag appends a tag to an entry unless already present, then saves.
	AddTag(id uuid.UUID, tag string) error

	// RemoveTag removes a tag from an entry, then saves.
	RemoveTag(id uuid.UUID, tag string) error

	// AttachImage encodes img and stores it on the entry, then saves.
	AttachImage(id uuid.UUID, img image.Image) error

	// DetachImage clears the entry's photo, then saves.
	DetachImage(id uuid.UUID) error

	// ResolveImage decodes the entry's photo, or returns nil.
	ResolveImage(entry *models.JournalEntry) image.Image

	// Subscribe registers fn to receive a snapshot after every change.
	Subscribe(fn func([]*models.JournalEntry)) (unsubscribe func())

	// Close releases any resources held by the store.
	Close() error
}
