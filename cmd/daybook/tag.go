// ABOUTME: CLI commands for entry tags.
// ABOUTME: Adds and removes tags on an entry and lists every tag in use.
package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/2389-research/daybook/internal/search"
)

var tagCmd = &cobra.Command{
	Use:   "tag",
	Short: "Manage entry tags",
}

var tagAddCmd = &cobra.Command{
	Use:   "add <id> <tag>",
	Short: "Add a tag to an entry",
	Args:  cobra.ExactArgs(2),
	RunE:  runTagAdd,
}

var tagRmCmd = &cobra.Command{
	Use:   "rm <id> <tag>",
	Short: "Remove a tag from an entry",
	Args:  cobra.ExactArgs(2),
	RunE:  runTagRemove,
}

var tagListCmd = &cobra.Command{
	Use:   "list",
	Short: "List all tags in use",
	Args:  cobra.NoArgs,
	RunE:  runTagList,
}

func init() {
	rootCmd.AddCommand(tagCmd)
	tagCmd.AddCommand(tagAddCmd)
	tagCmd.AddCommand(tagRmCmd)
	tagCmd.AddCommand(tagListCmd)
}

func runTagAdd(cmd *cobra.Command, args []string) error {
	entry, err := findEntry(globalStore, args[0])
	if err != nil {
		return err
	}
	tag := strings.TrimSpace(args[1])
	if tag == "" {
		return fmt.Errorf("tag must not be empty")
	}
	if err := globalStore.AddTag(entry.ID, tag); err != nil {
		return fmt.Errorf("failed to add tag: %w", err)
	}
	return printTags(cmd, entry.ID.String())
}

func runTagRemove(cmd *cobra.Command, args []string) error {
	entry, err := findEntry(globalStore, args[0])
	if err != nil {
		return err
	}
	if err := globalStore.RemoveTag(entry.ID, args[1]); err != nil {
		return fmt.Errorf("failed to remove tag: %w", err)
	}
	return printTags(cmd, entry.ID.String())
}

func printTags(cmd *cobra.Command, id string) error {
	entry, err := findEntry(globalStore, id)
	if err != nil {
		return err
	}
	if len(entry.Tags) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "No tags.")
		return nil
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Tags: %s\n", strings.Join(entry.Tags, ", "))
	return nil
}

func runTagList(cmd *cobra.Command, args []string) error {
	tags := search.UniqueTags(globalStore.Entries())
	if len(tags) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "No tags yet.")
		return nil
	}
	for _, tag := range tags {
		fmt.Fprintln(cmd.OutOrStdout(), tag)
	}
	return nil
}
