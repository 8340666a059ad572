// ABOUTME: JSON file-backed journal store holding the entry collection in memory.
// ABOUTME: Serializes all access, flushes the whole collection after each mutation, and notifies subscribers.
package storage

import (
	"encoding/json"
	"errors"
	"fmt"
	"image"
	"os"
	"path/filepath"
	"sync"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/2389-research/daybook/internal/imagecodec"
	"github.com/2389-research/daybook/internal/models"
)

// FileStore keeps journal entries in memory and persists them to one JSON document.
type FileStore struct {
	mu          sync.Mutex
	path        string
	entries     []*models.JournalEntry
	logger      *zap.SugaredLogger
	subscribers map[int]func([]*models.JournalEntry)
	nextSubID   int
	hooks       *writeHooks
}

// FileStoreOption configures optional FileStore dependencies.
type FileStoreOption func(*FileStore)

// WithLogger sets the logger used to report load and save failures.
func WithLogger(logger *zap.SugaredLogger) FileStoreOption {
	return func(s *FileStore) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// NewFileStore opens the store at path and loads any persisted entries.
func NewFileStore(path string, opts ...FileStoreOption) (*FileStore, error) {
	if path == "" {
		return nil, fmt.Errorf("store path is required")
	}
	s := &FileStore{
		path:        path,
		logger:      zap.NewNop().Sugar(),
		subscribers: make(map[int]func([]*models.JournalEntry)),
	}
	for _, opt := range opts {
		opt(s)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return nil, fmt.Errorf("failed to create data directory: %w", err)
	}

	s.Load()
	return s, nil
}

// Path returns the location of the persisted collection.
func (s *FileStore) Path() string {
	return s.path
}

// Load reads the persisted collection. A missing, unreadable, or corrupt
// file is treated as an empty store; the reason is logged, not returned.
func (s *FileStore) Load() []*models.JournalEntry {
	s.mu.Lock()
	s.entries = s.readEntries()
	snapshot := s.snapshotLocked()
	subs := s.subscribersLocked()
	s.mu.Unlock()

	notify(subs, snapshot)
	return snapshot
}

func (s *FileStore) readEntries() []*models.JournalEntry {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			s.logger.Debugw("no saved entries, starting empty", "path", s.path)
		} else {
			s.logger.Warnw("failed to read saved entries, starting empty", "path", s.path, "error", err)
		}
		return []*models.JournalEntry{}
	}

	var decoded []*models.JournalEntry
	if err := json.Unmarshal(data, &decoded); err != nil {
		s.logger.Warnw("saved entries are corrupt, starting empty", "path", s.path, "error", err)
		return []*models.JournalEntry{}
	}

	return s.sanitize(decoded)
}

// sanitize restores collection invariants on freshly decoded entries.
func (s *FileStore) sanitize(decoded []*models.JournalEntry) []*models.JournalEntry {
	entries := make([]*models.JournalEntry, 0, len(decoded))
	seen := make(map[uuid.UUID]struct{}, len(decoded))
	for _, entry := range decoded {
		if entry == nil {
			continue
		}
		if _, dup := seen[entry.ID]; dup {
			s.logger.Warnw("dropping duplicate entry", "id", entry.ID)
			continue
		}
		seen[entry.ID] = struct{}{}

		if entry.Tags == nil {
			entry.Tags = []string{}
		}
		entry.DedupeTags()

		if len(entry.ImageData) == 0 {
			entry.ImageData = nil
		} else if !imagecodec.Valid(entry.ImageData) {
			s.logger.Warnw("clearing undecodable image", "id", entry.ID)
			entry.ImageData = nil
		}
		entries = append(entries, entry)
	}
	return entries
}

// Save writes the full collection atomically.
func (s *FileStore) Save() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.saveLocked()
}

func (s *FileStore) saveLocked() error {
	data, err := json.Marshal(s.entries)
	if err != nil {
		s.logger.Errorw("failed to encode entries", "error", err)
		return fmt.Errorf("failed to encode entries: %w", err)
	}
	if err := atomicWrite(s.path, data, 0o600, s.hooks); err != nil {
		s.logger.Errorw("failed to save entries", "path", s.path, "count", len(s.entries), "error", err)
		return fmt.Errorf("failed to save entries: %w", err)
	}
	s.logger.Debugw("saved entries", "path", s.path, "count", len(s.entries))
	return nil
}

// Entries returns a snapshot of the collection in stored order.
func (s *FileStore) Entries() []*models.JournalEntry {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshotLocked()
}

// Get returns a copy of the entry with the given ID.
func (s *FileStore) Get(id uuid.UUID) (*models.JournalEntry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := s.indexLocked(id)
	if i < 0 {
		return nil, ErrEntryNotFound
	}
	return s.entries[i].Clone(), nil
}

// Add appends an entry and saves.
func (s *FileStore) Add(entry *models.JournalEntry) error {
	if entry == nil {
		return fmt.Errorf("entry is required")
	}
	if entry.HasImage() && !imagecodec.Valid(entry.ImageData) {
		return ErrInvalidImage
	}
	return s.mutate(func() error {
		if s.indexLocked(entry.ID) >= 0 {
			return ErrDuplicateEntry
		}
		c := entry.Clone()
		if c.Tags == nil {
			c.Tags = []string{}
		}
		c.DedupeTags()
		s.entries = append(s.entries, c)
		return nil
	})
}

// Update replaces the entry with a matching ID and saves. The stored
// creation date is kept regardless of the date on entry.
func (s *FileStore) Update(entry *models.JournalEntry) error {
	if entry == nil {
		return fmt.Errorf("entry is required")
	}
	if entry.HasImage() && !imagecodec.Valid(entry.ImageData) {
		return ErrInvalidImage
	}
	return s.mutate(func() error {
		i := s.indexLocked(entry.ID)
		if i < 0 {
			return ErrEntryNotFound
		}
		c := entry.Clone()
		c.Date = s.entries[i].Date
		if c.Tags == nil {
			c.Tags = []string{}
		}
		c.DedupeTags()
		s.entries[i] = c
		return nil
	})
}

// Remove deletes the entry with the given ID and saves.
func (s *FileStore) Remove(id uuid.UUID) error {
	return s.mutate(func() error {
		i := s.indexLocked(id)
		if i < 0 {
			return ErrEntryNotFound
		}
		s.entries = append(s.entries[:i], s.entries[i+1:]...)
		return nil
	})
}

// AddTag appends a tag to an entry unless already present, then saves.
// An already-present tag leaves the entry unchanged and skips the save.
func (s *FileStore) AddTag(id uuid.UUID, tag string) error {
	return s.mutate(func() error {
		i := s.indexLocked(id)
		if i < 0 {
			return ErrEntryNotFound
		}
		if !s.entries[i].AddTag(tag) {
			return errUnchanged
		}
		return nil
	})
}

// RemoveTag removes a tag from an entry, then saves.
func (s *FileStore) RemoveTag(id uuid.UUID, tag string) error {
	return s.mutate(func() error {
		i := s.indexLocked(id)
		if i < 0 {
			return ErrEntryNotFound
		}
		if !s.entries[i].RemoveTag(tag) {
			return errUnchanged
		}
		return nil
	})
}

// AttachImage encodes img and stores it on the entry, then saves. An
// unknown ID is a no-op reported as ErrEntryNotFound.
func (s *FileStore) AttachImage(id uuid.UUID, img image.Image) error {
	return s.mutate(func() error {
		i := s.indexLocked(id)
		if i < 0 {
			return ErrEntryNotFound
		}
		data, err := imagecodec.Encode(img)
		if err != nil {
			return err
		}
		s.entries[i].ImageData = data
		return nil
	})
}

// DetachImage clears the entry's photo, then saves.
func (s *FileStore) DetachImage(id uuid.UUID) error {
	return s.mutate(func() error {
		i := s.indexLocked(id)
		if i < 0 {
			return ErrEntryNotFound
		}
		s.entries[i].ImageData = nil
		return nil
	})
}

// ResolveImage decodes the entry's photo. Absent or undecodable data yields nil.
func (s *FileStore) ResolveImage(entry *models.JournalEntry) image.Image {
	if entry == nil {
		return nil
	}
	return imagecodec.Decode(entry.ImageData)
}

// Subscribe registers fn to receive a snapshot after every change to the
// collection. The returned func removes the subscription.
func (s *FileStore) Subscribe(fn func([]*models.JournalEntry)) func() {
	s.mu.Lock()
	defer s.mu.Unlock()
	id := s.nextSubID
	s.nextSubID++
	s.subscribers[id] = fn
	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		delete(s.subscribers, id)
	}
}

// Close releases any resources held by the store.
func (s *FileStore) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.subscribers = make(map[int]func([]*models.JournalEntry))
	return nil
}

// errUnchanged marks a mutation that found nothing to change.
var errUnchanged = errors.New("unchanged")

// mutate runs change under the lock. When change succeeds the collection is
// flushed and subscribers are notified; a failed flush is returned but the
// in-memory change stands.
func (s *FileStore) mutate(change func() error) error {
	s.mu.Lock()
	if err := change(); err != nil {
		s.mu.Unlock()
		if errors.Is(err, errUnchanged) {
			return nil
		}
		return err
	}
	saveErr := s.saveLocked()
	snapshot := s.snapshotLocked()
	subs := s.subscribersLocked()
	s.mu.Unlock()

	notify(subs, snapshot)
	return saveErr
}

func (s *FileStore) indexLocked(id uuid.UUID) int {
	for i, e := range s.entries {
		if e.ID == id {
			return i
		}
	}
	return -1
}

func (s *FileStore) snapshotLocked() []*models.JournalEntry {
	out := make([]*models.JournalEntry, len(s.entries))
	for i, e := range s.entries {
		out[i] = e.Clone()
	}
	return out
}

func (s *FileStore) subscribersLocked() []func([]*models.JournalEntry) {
	subs := make([]func([]*models.JournalEntry), 0, len(s.subscribers))
	for id := 0; id < s.nextSubID; id++ {
		if fn, ok := s.subscribers[id]; ok {
			subs = append(subs, fn)
		}
	}
	return subs
}

func notify(subs []func([]*models.JournalEntry), snapshot []*models.JournalEntry) {
	for _, fn := range subs {
		fn(snapshot)
	}
}
