// ABOUTME: Cobra command for interactive entry composition.
// ABOUTME: Launches the bubbletea compose wizard and saves the result to the store.
package main

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/2389-research/daybook/internal/models"
	"github.com/2389-research/daybook/internal/storage"
	"github.com/2389-research/daybook/internal/tui"
)

var composeCmd = &cobra.Command{
	Use:   "compose",
	Short: "Write an entry interactively",
	Long:  "Step-by-step wizard for title, content, tags, and mood.",
	Args:  cobra.NoArgs,
	RunE:  runCompose,
}

func init() {
	rootCmd.AddCommand(composeCmd)
}

func runCompose(cmd *cobra.Command, args []string) error {
	p := tea.NewProgram(tui.NewComposeModel(saveDraft(globalStore)))
	result, err := p.Run()
	if err != nil {
		return fmt.Errorf("TUI error: %w", err)
	}

	final := result.(tui.ComposeModel)
	entry := final.Entry()
	if entry == nil {
		fmt.Println("Entry not saved.")
		return nil
	}
	if !final.Saved() {
		// The entry reached the store but its last flush failed.
		if err := globalStore.Save(); err != nil {
			return fmt.Errorf("failed to save entry %s: %w", entry.ID, err)
		}
	}

	fmt.Printf("Entry added: %s\n", entry.ID)
	return nil
}

// saveDraft adds the draft as a new entry. Given a pending entry from a
// failed attempt it only flushes the store, so a retry never adds twice.
func saveDraft(store storage.JournalStore) tui.SaveFn {
	return func(ctx context.Context, d tui.Draft, pending *models.JournalEntry) (*models.JournalEntry, error) {
		if err := ctx.Err(); err != nil {
			return pending, err
		}
		if pending != nil {
			return pending, store.Save()
		}
		entry, err := models.NewJournalEntry(d.Title, d.Content, d.Mood, d.Tags)
		if err != nil {
			return nil, err
		}
		addErr := store.Add(entry)
		if _, err := store.Get(entry.ID); err != nil {
			return nil, addErr
		}
		return entry, addErr
	}
}
