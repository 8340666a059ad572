// ABOUTME: Markdown export of journal entries with YAML frontmatter.
// ABOUTME: Writes one file per entry in date-based directories, with photos as sidecar JPEG files.
package storage

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"gopkg.in/yaml.v3"

	"github.com/2389-research/daybook/internal/models"
)

const frontmatterDelim = "---"

// journalFrontmatter is the YAML frontmatter for exported entry files.
type journalFrontmatter struct {
	ID    string   `yaml:"id"`
	Date  string   `yaml:"date"`
	Mood  int      `yaml:"mood,omitempty"`
	Tags  []string `yaml:"tags,omitempty"`
	Image string   `yaml:"image,omitempty"`
}

// ExportMarkdown writes each entry under dir as <date>/<time>-<shortid>.md
// and returns the written markdown paths. The export is read-only: the
// JSON store stays the source of truth.
func ExportMarkdown(entries []*models.JournalEntry, dir string) ([]string, error) {
	paths := make([]string, 0, len(entries))
	for _, entry := range entries {
		path, err := exportEntry(entry, dir)
		if err != nil {
			return paths, err
		}
		paths = append(paths, path)
	}
	return paths, nil
}

func exportEntry(entry *models.JournalEntry, root string) (string, error) {
	dateDir := entry.Date.Format("2006-01-02")
	timeStr := entry.Date.Format("15-04-05-000000")
	shortID := entry.ID.String()[:8]
	base := timeStr + "-" + shortID
	dir := filepath.Join(root, dateDir)
	path := filepath.Join(dir, base+".md")

	fm := journalFrontmatter{
		ID:   entry.ID.String(),
		Date: entry.Date.Format(time.RFC3339Nano),
		Mood: int(entry.Mood),
		Tags: entry.Tags,
	}

	if entry.HasImage() {
		fm.Image = base + ".jpg"
		if err := atomicWrite(filepath.Join(dir, fm.Image), entry.ImageData, 0o600, nil); err != nil {
			return "", fmt.Errorf("failed to write image for %s: %w", entry.ID, err)
		}
	}

	content, err := renderFrontmatter(fm, renderBody(entry))
	if err != nil {
		return "", fmt.Errorf("failed to render frontmatter: %w", err)
	}

	if err := atomicWrite(path, []byte(content), 0o600, nil); err != nil {
		return "", fmt.Errorf("failed to write entry: %w", err)
	}
	return path, nil
}

// ParseMarkdownEntry reads an exported markdown file back into an entry.
func ParseMarkdownEntry(path string) (*models.JournalEntry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read entry: %w", err)
	}

	yamlStr, body := parseFrontmatter(string(data))
	if yamlStr == "" {
		return nil, fmt.Errorf("no frontmatter found in %s", path)
	}

	var fm journalFrontmatter
	if err := yaml.Unmarshal([]byte(yamlStr), &fm); err != nil {
		return nil, fmt.Errorf("failed to parse frontmatter: %w", err)
	}

	id, err := uuid.Parse(fm.ID)
	if err != nil {
		return nil, fmt.Errorf("invalid UUID in frontmatter: %w", err)
	}

	date, err := time.Parse(time.RFC3339Nano, fm.Date)
	if err != nil {
		return nil, fmt.Errorf("invalid date in frontmatter: %w", err)
	}

	mood := models.Mood(fm.Mood)
	if mood.IsSet() && !mood.Valid() {
		return nil, fmt.Errorf("invalid mood %d in frontmatter", fm.Mood)
	}

	title, content := parseBody(body)
	entry := &models.JournalEntry{
		ID:      id,
		Title:   title,
		Content: content,
		Date:    date,
		Mood:    mood,
		Tags:    fm.Tags,
	}
	if entry.Tags == nil {
		entry.Tags = []string{}
	}

	if fm.Image != "" {
		img, err := os.ReadFile(filepath.Join(filepath.Dir(path), filepath.Base(fm.Image)))
		if err != nil {
			return nil, fmt.Errorf("failed to read image: %w", err)
		}
		entry.ImageData = img
	}
	return entry, nil
}

// renderBody converts an entry to markdown body text.
func renderBody(entry *models.JournalEntry) string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("\n# %s\n", entry.Title))
	if entry.Content != "" {
		sb.WriteString("\n")
		sb.WriteString(entry.Content)
		sb.WriteString("\n")
	}
	return sb.String()
}

// parseBody extracts the title heading and content from markdown body text.
func parseBody(body string) (title, content string) {
	body = strings.TrimLeft(body, "\n")
	line, rest, _ := strings.Cut(body, "\n")
	if !strings.HasPrefix(line, "# ") {
		return "", strings.TrimSpace(body)
	}
	return strings.TrimPrefix(line, "# "), strings.TrimSpace(rest)
}

// renderFrontmatter prefixes body with fm encoded as a YAML block.
func renderFrontmatter(fm interface{}, body string) (string, error) {
	out, err := yaml.Marshal(fm)
	if err != nil {
		return "", err
	}
	return frontmatterDelim + "\n" + string(out) + frontmatterDelim + "\n" + body, nil
}

// parseFrontmatter splits a document into its YAML block and body.
// Returns an empty YAML string when no frontmatter is present.
func parseFrontmatter(content string) (string, string) {
	if !strings.HasPrefix(content, frontmatterDelim+"\n") {
		return "", content
	}
	rest := content[len(frontmatterDelim)+1:]
	end := strings.Index(rest, "\n"+frontmatterDelim+"\n")
	if end < 0 {
		return "", content
	}
	return rest[:end], rest[end+len(frontmatterDelim)+2:]
}
