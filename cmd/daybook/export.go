// ABOUTME: CLI commands exporting the journal as markdown files and importing them back.
// ABOUTME: Writes one frontmatter document per entry into date-named directories.
package main

import (
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/2389-research/daybook/internal/config"
	"github.com/2389-research/daybook/internal/search"
	"github.com/2389-research/daybook/internal/storage"
)

var exportCmd = &cobra.Command{
	Use:   "export <dir>",
	Short: "Export entries as markdown",
	Long: `Export entries as markdown files with YAML frontmatter.

Each entry becomes <dir>/<date>/<time>-<id>.md; photos are written
alongside as .jpg files. The export is a copy; entries.json stays the
source of truth.`,
	Args: cobra.ExactArgs(1),
	RunE: runExport,
}

var importCmd = &cobra.Command{
	Use:   "import <dir>",
	Short: "Import entries from a markdown export",
	Long:  "Read every .md file under dir written by 'daybook export'. Entries whose ID is already stored are skipped.",
	Args:  cobra.ExactArgs(1),
	RunE:  runImport,
}

var exportTag string

func init() {
	rootCmd.AddCommand(exportCmd)
	rootCmd.AddCommand(importCmd)
	exportCmd.Flags().StringVar(&exportTag, "tag", "", "Only export entries with this tag")
}

func runExport(cmd *cobra.Command, args []string) error {
	dir, err := config.ExpandPath(args[0])
	if err != nil {
		return err
	}

	entries := search.Apply(globalStore.Entries(), search.Query{Tag: exportTag})
	paths, err := storage.ExportMarkdown(entries, dir)
	if err != nil {
		return fmt.Errorf("export stopped after %d entries: %w", len(paths), err)
	}

	globalLogger.Infow("exported entries", "dir", dir, "count", len(paths))
	fmt.Fprintf(cmd.OutOrStdout(), "Exported %d entries to %s\n", len(paths), dir)
	return nil
}

func runImport(cmd *cobra.Command, args []string) error {
	dir, err := config.ExpandPath(args[0])
	if err != nil {
		return err
	}

	var added, skipped int
	err = filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || filepath.Ext(path) != ".md" {
			return nil
		}

		entry, err := storage.ParseMarkdownEntry(path)
		if err != nil {
			globalLogger.Warnw("skipping unreadable entry file", "path", path, "error", err)
			skipped++
			return nil
		}
		if err := globalStore.Add(entry); err != nil {
			if errors.Is(err, storage.ErrDuplicateEntry) || errors.Is(err, storage.ErrInvalidImage) {
				globalLogger.Debugw("skipping entry", "path", path, "reason", err)
				skipped++
				return nil
			}
			return fmt.Errorf("failed to import %s: %w", path, err)
		}
		added++
		return nil
	})
	if err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Imported %d entries (%d skipped)\n", added, skipped)
	return nil
}
