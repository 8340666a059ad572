// ABOUTME: Tests for the save function behind the compose command.
// ABOUTME: Covers first save, flush-only retries, and cancellation before anything is added.
package main

import (
	"context"
	"errors"
	"testing"

	"github.com/2389-research/daybook/internal/models"
	"github.com/2389-research/daybook/internal/tui"
)

func TestSaveDraftAddsOnce(t *testing.T) {
	store := newStoreWith(t)
	save := saveDraft(store)
	draft := tui.Draft{Title: "Trip", Content: "coast", Tags: []string{"fun"}, Mood: models.MoodGood}

	entry, err := save(context.Background(), draft, nil)
	if err != nil {
		t.Fatalf("save error: %v", err)
	}
	if entry == nil || entry.Title != "Trip" {
		t.Fatalf("unexpected entry: %+v", entry)
	}

	again, err := save(context.Background(), draft, entry)
	if err != nil {
		t.Fatalf("retry error: %v", err)
	}
	if again != entry {
		t.Error("expected retry to return the pending entry")
	}
	if n := len(store.Entries()); n != 1 {
		t.Errorf("expected 1 stored entry after retry, got %d", n)
	}
}

func TestSaveDraftCancelledBeforeAdd(t *testing.T) {
	store := newStoreWith(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	entry, err := saveDraft(store)(ctx, tui.Draft{Title: "Trip"}, nil)
	if !errors.Is(err, context.Canceled) {
		t.Errorf("expected context.Canceled, got %v", err)
	}
	if entry != nil {
		t.Errorf("expected no entry, got %+v", entry)
	}
	if n := len(store.Entries()); n != 0 {
		t.Errorf("expected empty store, got %d entries", n)
	}
}

func TestSaveDraftRejectsEmptyTitle(t *testing.T) {
	store := newStoreWith(t)
	if _, err := saveDraft(store)(context.Background(), tui.Draft{Title: " "}, nil); !errors.Is(err, models.ErrEmptyTitle) {
		t.Errorf("expected ErrEmptyTitle, got %v", err)
	}
}
