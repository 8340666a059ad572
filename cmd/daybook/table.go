// ABOUTME: Table rendering for entry listings.
// ABOUTME: Lays out one row per entry with uitable, bold headers via fatih/color.
package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/gosuri/uitable"

	"github.com/2389-research/daybook/internal/models"
	"github.com/2389-research/daybook/internal/tui"
)

const maxTitleWidth = 48

var bold = color.New(color.Bold).SprintFunc()

// writeEntryTable prints entries as an aligned table.
func writeEntryTable(w io.Writer, entries []*models.JournalEntry) error {
	tbl := uitable.New()
	tbl.Separator = "  "
	tbl.MaxColWidth = maxTitleWidth
	tbl.AddRow(bold("ID"), bold("DATE"), bold("MOOD"), bold("TITLE"), bold("TAGS"))
	for _, entry := range entries {
		tbl.AddRow(entryRow(entry)...)
	}
	_, err := fmt.Fprintln(w, tbl)
	return err
}

// entryRow returns the table cells for one entry.
func entryRow(entry *models.JournalEntry) []interface{} {
	title := entry.Title
	if entry.HasImage() {
		title += " [photo]"
	}
	tags := ""
	if len(entry.Tags) > 0 {
		tags = "#" + strings.Join(entry.Tags, " #")
	}
	return []interface{}{
		entry.ID.String()[:8],
		entry.Date.Local().Format("2006-01-02 15:04"),
		tui.MoodGlyph(entry.Mood),
		title,
		tags,
	}
}
