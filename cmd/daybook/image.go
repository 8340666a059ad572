// ABOUTME: CLI commands for entry photos.
// ABOUTME: Attaches, detaches, and exports the single photo an entry may hold.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/2389-research/daybook/internal/imagecodec"
)

var imageCmd = &cobra.Command{
	Use:   "image",
	Short: "Manage entry photos",
}

var imageAttachCmd = &cobra.Command{
	Use:   "attach <id> <file>",
	Short: "Attach a photo to an entry",
	Long:  "Attach a JPEG, PNG, or GIF file to an entry, replacing any existing photo. Photos are stored as JPEG.",
	Args:  cobra.ExactArgs(2),
	RunE:  runImageAttach,
}

var imageDetachCmd = &cobra.Command{
	Use:   "detach <id>",
	Short: "Remove the photo from an entry",
	Args:  cobra.ExactArgs(1),
	RunE:  runImageDetach,
}

var imageExportCmd = &cobra.Command{
	Use:   "export <id> <file>",
	Short: "Write an entry's photo to a JPEG file",
	Args:  cobra.ExactArgs(2),
	RunE:  runImageExport,
}

func init() {
	rootCmd.AddCommand(imageCmd)
	imageCmd.AddCommand(imageAttachCmd)
	imageCmd.AddCommand(imageDetachCmd)
	imageCmd.AddCommand(imageExportCmd)
}

func runImageAttach(cmd *cobra.Command, args []string) error {
	entry, err := findEntry(globalStore, args[0])
	if err != nil {
		return err
	}

	raw, err := os.ReadFile(args[1])
	if err != nil {
		return fmt.Errorf("failed to read image: %w", err)
	}
	img := imagecodec.Decode(raw)
	if img == nil {
		return fmt.Errorf("%s is not a supported image", args[1])
	}

	if err := globalStore.AttachImage(entry.ID, img); err != nil {
		return fmt.Errorf("failed to attach image: %w", err)
	}
	b := img.Bounds()
	fmt.Fprintf(cmd.OutOrStdout(), "Photo attached to %s (%dx%d)\n", entry.ID, b.Dx(), b.Dy())
	return nil
}

func runImageDetach(cmd *cobra.Command, args []string) error {
	entry, err := findEntry(globalStore, args[0])
	if err != nil {
		return err
	}
	if !entry.HasImage() {
		fmt.Fprintln(cmd.OutOrStdout(), "Entry has no photo.")
		return nil
	}
	if err := globalStore.DetachImage(entry.ID); err != nil {
		return fmt.Errorf("failed to detach image: %w", err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Photo removed from %s\n", entry.ID)
	return nil
}

func runImageExport(cmd *cobra.Command, args []string) error {
	entry, err := findEntry(globalStore, args[0])
	if err != nil {
		return err
	}
	if globalStore.ResolveImage(entry) == nil {
		return fmt.Errorf("entry %s has no photo", entry.ID)
	}
	if err := os.WriteFile(args[1], entry.ImageData, 0o600); err != nil {
		return fmt.Errorf("failed to write image: %w", err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Photo written to %s\n", args[1])
	return nil
}
