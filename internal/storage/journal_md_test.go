// ABOUTME: Tests for markdown export of journal entries.
// ABOUTME: Covers export/parse roundtrip, date directories, photo sidecars, and frontmatter errors.
package storage

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/2389-research/daybook/internal/imagecodec"
	"github.com/2389-research/daybook/internal/models"
)

func TestExportParseRoundtrip(t *testing.T) {
	tmpDir := t.TempDir()

	entry := &models.JournalEntry{
		ID:      uuid.New(),
		Title:   "Beach day",
		Content: "Swam until sunset.\n\nThen ate fries.",
		Date:    time.Date(2025, 4, 23, 18, 30, 5, 123000, time.UTC),
		Mood:    models.MoodGreat,
		Tags:    []string{"fun", "summer"},
	}

	paths, err := ExportMarkdown([]*models.JournalEntry{entry}, tmpDir)
	if err != nil {
		t.Fatalf("ExportMarkdown error: %v", err)
	}
	if len(paths) != 1 {
		t.Fatalf("expected 1 path, got %d", len(paths))
	}

	if !strings.HasPrefix(paths[0], filepath.Join(tmpDir, "2025-04-23")) {
		t.Errorf("expected export under date directory, got %s", paths[0])
	}

	read, err := ParseMarkdownEntry(paths[0])
	if err != nil {
		t.Fatalf("ParseMarkdownEntry error: %v", err)
	}
	if !read.SameContent(entry) {
		t.Errorf("roundtrip mismatch:\n got %+v\nwant %+v", read, entry)
	}
}

func TestExportWritesPhotoSidecar(t *testing.T) {
	tmpDir := t.TempDir()

	data, err := imagecodec.Encode(solidImage(4, 4))
	if err != nil {
		t.Fatalf("Encode error: %v", err)
	}
	entry := &models.JournalEntry{
		ID:        uuid.New(),
		Title:     "Photo",
		Date:      time.Now(),
		Tags:      []string{},
		ImageData: data,
	}

	paths, err := ExportMarkdown([]*models.JournalEntry{entry}, tmpDir)
	if err != nil {
		t.Fatalf("ExportMarkdown error: %v", err)
	}

	sidecar := strings.TrimSuffix(paths[0], ".md") + ".jpg"
	if _, err := os.Stat(sidecar); err != nil {
		t.Fatalf("expected photo sidecar at %s: %v", sidecar, err)
	}

	read, err := ParseMarkdownEntry(paths[0])
	if err != nil {
		t.Fatalf("ParseMarkdownEntry error: %v", err)
	}
	if !imagecodec.Valid(read.ImageData) {
		t.Error("expected decodable image after parse")
	}
}

func TestExportEmpty(t *testing.T) {
	paths, err := ExportMarkdown(nil, t.TempDir())
	if err != nil {
		t.Fatalf("ExportMarkdown error: %v", err)
	}
	if len(paths) != 0 {
		t.Errorf("expected no paths, got %d", len(paths))
	}
}

func TestParseMarkdownEntryErrors(t *testing.T) {
	tmpDir := t.TempDir()

	tests := []struct {
		name    string
		content string
	}{
		{"no frontmatter", "# Title\n\nbody\n"},
		{"bad uuid", "---\nid: nope\ndate: 2025-04-23T10:00:00Z\n---\n# T\n"},
		{"bad date", "---\nid: " + uuid.New().String() + "\ndate: yesterday\n---\n# T\n"},
		{"bad mood", "---\nid: " + uuid.New().String() + "\ndate: 2025-04-23T10:00:00Z\nmood: 7\n---\n# T\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(tmpDir, strings.ReplaceAll(tt.name, " ", "-")+".md")
			if err := os.WriteFile(path, []byte(tt.content), 0o600); err != nil {
				t.Fatalf("WriteFile error: %v", err)
			}
			if _, err := ParseMarkdownEntry(path); err == nil {
				t.Errorf("expected error for %s", tt.name)
			}
		})
	}

	if _, err := ParseMarkdownEntry(filepath.Join(tmpDir, "missing.md")); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestParseBodyWithoutHeading(t *testing.T) {
	title, content := parseBody("\njust text\n")
	if title != "" || content != "just text" {
		t.Errorf("parseBody = (%q, %q)", title, content)
	}
}
