// ABOUTME: CLI commands for journal entry operations.
// ABOUTME: Provides add, edit, rm, list, search, and show commands over the entry store.
package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/2389-research/daybook/internal/imagecodec"
	"github.com/2389-research/daybook/internal/models"
	"github.com/2389-research/daybook/internal/search"
	"github.com/2389-research/daybook/internal/storage"
	"github.com/2389-research/daybook/internal/tui"
)

var addCmd = &cobra.Command{
	Use:   "add <title>",
	Short: "Add a journal entry",
	Long:  "Create a journal entry dated now. Content may be passed with --content or piped on stdin with --content -.",
	Args:  cobra.ExactArgs(1),
	RunE:  runAdd,
}

var editCmd = &cobra.Command{
	Use:   "edit <id>",
	Short: "Edit a journal entry",
	Long:  "Change the title, content, mood, or tags of an entry. The entry date never changes.",
	Args:  cobra.ExactArgs(1),
	RunE:  runEdit,
}

var rmCmd = &cobra.Command{
	Use:     "rm <id>",
	Aliases: []string{"delete"},
	Short:   "Delete a journal entry",
	Args:    cobra.ExactArgs(1),
	RunE:    runRemove,
}

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List journal entries",
	Long:  "List journal entries, newest first.",
	Args:  cobra.NoArgs,
	RunE:  runList,
}

var searchCmd = &cobra.Command{
	Use:   "search <query>",
	Short: "Search journal entries",
	Long:  "Case-insensitive substring search over titles, content, and tags.",
	Args:  cobra.ExactArgs(1),
	RunE:  runSearch,
}

var showCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Show a journal entry",
	Args:  cobra.ExactArgs(1),
	RunE:  runShow,
}

// Flags
var (
	entryContent string
	entryMood    string
	entryTags    []string
	entryImage   string
	editTitle    string
	listLimit    int
	listDays     int
	listTag      string
	listMood     string
)

func init() {
	rootCmd.AddCommand(addCmd)
	rootCmd.AddCommand(editCmd)
	rootCmd.AddCommand(rmCmd)
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(searchCmd)
	rootCmd.AddCommand(showCmd)

	addCmd.Flags().StringVarP(&entryContent, "content", "c", "", "Entry body text (- reads stdin)")
	addCmd.Flags().StringVarP(&entryMood, "mood", "m", "", "Mood: 1-5 or terrible, bad, okay, good, great")
	addCmd.Flags().StringSliceVarP(&entryTags, "tag", "t", nil, "Tag (repeatable or comma separated)")
	addCmd.Flags().StringVar(&entryImage, "image", "", "Path to a photo to attach")

	editCmd.Flags().StringVar(&editTitle, "title", "", "New title")
	editCmd.Flags().StringVarP(&entryContent, "content", "c", "", "New body text (- reads stdin)")
	editCmd.Flags().StringVarP(&entryMood, "mood", "m", "", "New mood, or none to clear")
	editCmd.Flags().StringSliceVarP(&entryTags, "tags", "t", nil, "Replacement tag list")

	for _, c := range []*cobra.Command{listCmd, searchCmd} {
		c.Flags().IntVar(&listLimit, "limit", 20, "Maximum number of entries to show (0 for all)")
		c.Flags().IntVar(&listDays, "days", 0, "Only entries from the last N days")
		c.Flags().StringVar(&listTag, "tag", "", "Only entries with this exact tag")
		c.Flags().StringVar(&listMood, "mood", "", "Only entries with this mood")
	}
}

func runAdd(cmd *cobra.Command, args []string) error {
	content, err := readContent(cmd.InOrStdin(), entryContent)
	if err != nil {
		return err
	}
	mood, err := models.ParseMood(entryMood)
	if err != nil {
		return err
	}

	entry, err := models.NewJournalEntry(args[0], content, mood, entryTags)
	if err != nil {
		return err
	}

	if entryImage != "" {
		data, err := readImageFile(entryImage)
		if err != nil {
			return err
		}
		entry.ImageData = data
	}

	if err := globalStore.Add(entry); err != nil {
		return fmt.Errorf("failed to add entry: %w", err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Entry added: %s\n", entry.ID)
	return nil
}

func runEdit(cmd *cobra.Command, args []string) error {
	entry, err := findEntry(globalStore, args[0])
	if err != nil {
		return err
	}

	flags := cmd.Flags()
	if flags.Changed("title") {
		if err := models.ValidateTitle(editTitle); err != nil {
			return err
		}
		entry.Title = strings.TrimSpace(editTitle)
	}
	if flags.Changed("content") {
		content, err := readContent(cmd.InOrStdin(), entryContent)
		if err != nil {
			return err
		}
		entry.Content = content
	}
	if flags.Changed("mood") {
		mood, err := models.ParseMood(entryMood)
		if err != nil {
			return err
		}
		entry.Mood = mood
	}
	if flags.Changed("tags") {
		entry.Tags = []string{}
		for _, tag := range entryTags {
			entry.AddTag(tag)
		}
	}

	if err := globalStore.Update(entry); err != nil {
		return fmt.Errorf("failed to update entry: %w", err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Entry updated: %s\n", entry.ID)
	return nil
}

func runRemove(cmd *cobra.Command, args []string) error {
	entry, err := findEntry(globalStore, args[0])
	if err != nil {
		return err
	}
	if err := globalStore.Remove(entry.ID); err != nil {
		return fmt.Errorf("failed to delete entry: %w", err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Entry deleted: %s (%s)\n", entry.ID, entry.Title)
	return nil
}

func runList(cmd *cobra.Command, args []string) error {
	return printMatches(cmd.OutOrStdout(), "")
}

func runSearch(cmd *cobra.Command, args []string) error {
	return printMatches(cmd.OutOrStdout(), args[0])
}

func printMatches(w io.Writer, text string) error {
	mood, err := models.ParseMood(listMood)
	if err != nil {
		return err
	}
	q := search.Query{
		Text:  text,
		Tag:   listTag,
		Mood:  mood,
		Limit: listLimit,
	}
	if listDays > 0 {
		q.Since = time.Now().AddDate(0, 0, -listDays)
	}

	entries := search.Apply(globalStore.Entries(), q)
	if len(entries) == 0 {
		fmt.Fprintln(w, "No entries found.")
		return nil
	}
	return writeEntryTable(w, entries)
}

func runShow(cmd *cobra.Command, args []string) error {
	entry, err := findEntry(globalStore, args[0])
	if err != nil {
		return err
	}

	w := cmd.OutOrStdout()
	fmt.Fprintf(w, "%s\n", entry.Title)
	fmt.Fprintf(w, "ID:   %s\n", entry.ID)
	fmt.Fprintf(w, "Date: %s\n", entry.Date.Local().Format("Monday, 2 January 2006 15:04"))
	fmt.Fprintf(w, "Mood: %s\n", tui.RenderMood(entry.Mood))
	if len(entry.Tags) > 0 {
		fmt.Fprintf(w, "Tags: %s\n", strings.Join(entry.Tags, ", "))
	}
	if img := globalStore.ResolveImage(entry); img != nil {
		b := img.Bounds()
		fmt.Fprintf(w, "Photo: %dx%d JPEG, %d bytes\n", b.Dx(), b.Dy(), len(entry.ImageData))
	}
	if entry.Content != "" {
		fmt.Fprintf(w, "\n%s\n", entry.Content)
	}
	return nil
}

// findEntry resolves a full ID or a unique ID prefix to a copy of the entry.
func findEntry(store storage.JournalStore, ref string) (*models.JournalEntry, error) {
	ref = strings.ToLower(strings.TrimSpace(ref))
	if id, err := uuid.Parse(ref); err == nil {
		entry, err := store.Get(id)
		if errors.Is(err, storage.ErrEntryNotFound) {
			return nil, fmt.Errorf("no entry with id %s", ref)
		}
		return entry, err
	}
	if ref == "" {
		return nil, fmt.Errorf("entry id is required")
	}

	var match *models.JournalEntry
	for _, entry := range store.Entries() {
		if !strings.HasPrefix(entry.ID.String(), ref) {
			continue
		}
		if match != nil {
			return nil, fmt.Errorf("id prefix %q matches more than one entry", ref)
		}
		match = entry
	}
	if match == nil {
		return nil, fmt.Errorf("no entry with id %s", ref)
	}
	return match, nil
}

// readContent returns flag as-is, or all of stdin when flag is "-".
func readContent(stdin io.Reader, flag string) (string, error) {
	if flag != "-" {
		return flag, nil
	}
	data, err := io.ReadAll(stdin)
	if err != nil {
		return "", fmt.Errorf("failed to read content from stdin: %w", err)
	}
	return strings.TrimRight(string(data), "\n"), nil
}

// readImageFile loads a photo from disk and re-encodes it as JPEG.
func readImageFile(path string) ([]byte, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read image: %w", err)
	}
	data, err := imagecodec.Reencode(raw)
	if err != nil {
		return nil, fmt.Errorf("failed to encode image %s: %w", path, err)
	}
	return data, nil
}
