// ABOUTME: MCP tool implementations for journal entry operations.
// ABOUTME: Registers create/update/delete/read/search entry, tag, and image tools.
package mcp

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/google/uuid"
	gomcp "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/2389-research/daybook/internal/imagecodec"
	"github.com/2389-research/daybook/internal/models"
	"github.com/2389-research/daybook/internal/search"
	"github.com/2389-research/daybook/internal/storage"
)

func (s *Server) registerJournalTools() {
	s.mcp.AddTool(&gomcp.Tool{
		Name:        "create_entry",
		Description: "Create a new dated journal entry. Title is required; mood is a rank 1-5 or one of terrible, bad, okay, good, great.",
		InputSchema: json.RawMessage(`{
			"type": "object",
			"properties": {
				"title": {"type": "string", "description": "Entry title"},
				"content": {"type": "string", "description": "Entry body text"},
				"mood": {"type": "string", "description": "Mood rank (1-5) or name"},
				"tags": {"type": "array", "items": {"type": "string"}, "description": "Tags for the entry"}
			},
			"required": ["title"]
		}`),
	}, s.handleCreateEntry)

	s.mcp.AddTool(&gomcp.Tool{
		Name:        "update_entry",
		Description: "Edit an existing entry. Only the fields provided are changed; the entry date never changes.",
		InputSchema: json.RawMessage(`{
			"type": "object",
			"properties": {
				"id": {"type": "string", "description": "Entry ID"},
				"title": {"type": "string", "description": "New title"},
				"content": {"type": "string", "description": "New body text"},
				"mood": {"type": "string", "description": "Mood rank (1-5), name, or none to clear"},
				"tags": {"type": "array", "items": {"type": "string"}, "description": "Replacement tag list"}
			},
			"required": ["id"]
		}`),
	}, s.handleUpdateEntry)

	s.mcp.AddTool(&gomcp.Tool{
		Name:        "delete_entry",
		Description: "Delete a journal entry by ID.",
		InputSchema: idSchema,
	}, s.handleDeleteEntry)

	s.mcp.AddTool(&gomcp.Tool{
		Name:        "read_entry",
		Description: "Read the full content of a journal entry by ID.",
		InputSchema: idSchema,
	}, s.handleReadEntry)

	s.mcp.AddTool(&gomcp.Tool{
		Name:        "search_entries",
		Description: "Search entries by case-insensitive substring over title, content, and tags. Results are newest first.",
		InputSchema: json.RawMessage(`{
			"type": "object",
			"properties": {
				"query": {"type": "string", "description": "Search text; empty lists all entries"},
				"tag": {"type": "string", "description": "Only entries with this exact tag"},
				"mood": {"type": "string", "description": "Only entries with this mood"},
				"days": {"type": "number", "description": "Only entries from the last N days"},
				"limit": {"type": "number", "description": "Maximum number of results (default 10)"}
			}
		}`),
	}, s.handleSearchEntries)

	s.mcp.AddTool(&gomcp.Tool{
		Name:        "list_tags",
		Description: "List every tag used across journal entries.",
		InputSchema: json.RawMessage(`{"type": "object", "properties": {}}`),
	}, s.handleListTags)

	s.mcp.AddTool(&gomcp.Tool{
		Name:        "add_tag",
		Description: "Add a tag to an entry. Adding a tag that is already present changes nothing.",
		InputSchema: tagSchema,
	}, s.handleAddTag)

	s.mcp.AddTool(&gomcp.Tool{
		Name:        "remove_tag",
		Description: "Remove a tag from an entry.",
		InputSchema: tagSchema,
	}, s.handleRemoveTag)

	s.mcp.AddTool(&gomcp.Tool{
		Name:        "attach_image",
		Description: "Attach a photo to an entry, replacing any existing one. Provide either a local file path or base64 image data (JPEG, PNG, or GIF).",
		InputSchema: json.RawMessage(`{
			"type": "object",
			"properties": {
				"id": {"type": "string", "description": "Entry ID"},
				"path": {"type": "string", "description": "Path to an image file"},
				"data": {"type": "string", "description": "Base64-encoded image bytes"}
			},
			"required": ["id"]
		}`),
	}, s.handleAttachImage)

	s.mcp.AddTool(&gomcp.Tool{
		Name:        "detach_image",
		Description: "Remove the photo from an entry.",
		InputSchema: idSchema,
	}, s.handleDetachImage)
}

var idSchema = json.RawMessage(`{
	"type": "object",
	"properties": {
		"id": {"type": "string", "description": "Entry ID"}
	},
	"required": ["id"]
}`)

var tagSchema = json.RawMessage(`{
	"type": "object",
	"properties": {
		"id": {"type": "string", "description": "Entry ID"},
		"tag": {"type": "string", "description": "Tag value"}
	},
	"required": ["id", "tag"]
}`)

func (s *Server) handleCreateEntry(ctx context.Context, req *gomcp.CallToolRequest) (*gomcp.CallToolResult, error) {
	var args struct {
		Title   string   `json:"title"`
		Content string   `json:"content"`
		Mood    string   `json:"mood"`
		Tags    []string `json:"tags"`
	}
	if err := json.Unmarshal(req.Params.Arguments, &args); err != nil {
		return toolError("invalid arguments: %v", err), nil
	}

	mood, err := models.ParseMood(args.Mood)
	if err != nil {
		return toolError("%v", err), nil
	}

	entry, err := models.NewJournalEntry(args.Title, args.Content, mood, args.Tags)
	if err != nil {
		return toolError("%v", err), nil
	}
	if err := s.journal.Add(entry); err != nil {
		s.logger.Errorw("create_entry failed", "id", entry.ID, "error", err)
		return toolError("failed to save entry: %v", err), nil
	}

	return textResult(fmt.Sprintf("Entry created: %s\n\n%s", entry.ID, formatEntry(entry))), nil
}

func (s *Server) handleUpdateEntry(ctx context.Context, req *gomcp.CallToolRequest) (*gomcp.CallToolResult, error) {
	var args struct {
		ID      string    `json:"id"`
		Title   *string   `json:"title"`
		Content *string   `json:"content"`
		Mood    *string   `json:"mood"`
		Tags    *[]string `json:"tags"`
	}
	if err := json.Unmarshal(req.Params.Arguments, &args); err != nil {
		return toolError("invalid arguments: %v", err), nil
	}

	entry, result := s.lookup(args.ID)
	if result != nil {
		return result, nil
	}

	if args.Title != nil {
		if err := models.ValidateTitle(*args.Title); err != nil {
			return toolError("%v", err), nil
		}
		entry.Title = strings.TrimSpace(*args.Title)
	}
	if args.Content != nil {
		entry.Content = *args.Content
	}
	if args.Mood != nil {
		mood, err := models.ParseMood(*args.Mood)
		if err != nil {
			return toolError("%v", err), nil
		}
		entry.Mood = mood
	}
	if args.Tags != nil {
		entry.Tags = []string{}
		for _, tag := range *args.Tags {
			entry.AddTag(tag)
		}
	}

	if err := s.journal.Update(entry); err != nil {
		return storeError("update entry", entry.ID, err), nil
	}

	updated, err := s.journal.Get(entry.ID)
	if err != nil {
		return storeError("read entry", entry.ID, err), nil
	}
	return textResult(fmt.Sprintf("Entry updated:\n\n%s", formatEntry(updated))), nil
}

func (s *Server) handleDeleteEntry(ctx context.Context, req *gomcp.CallToolRequest) (*gomcp.CallToolResult, error) {
	id, result := parseIDArg(req)
	if result != nil {
		return result, nil
	}
	if err := s.journal.Remove(id); err != nil {
		return storeError("delete entry", id, err), nil
	}
	return textResult(fmt.Sprintf("Entry deleted: %s", id)), nil
}

func (s *Server) handleReadEntry(ctx context.Context, req *gomcp.CallToolRequest) (*gomcp.CallToolResult, error) {
	id, result := parseIDArg(req)
	if result != nil {
		return result, nil
	}
	entry, result := s.lookup(id.String())
	if result != nil {
		return result, nil
	}
	return textResult(formatEntry(entry)), nil
}

func (s *Server) handleSearchEntries(ctx context.Context, req *gomcp.CallToolRequest) (*gomcp.CallToolResult, error) {
	var args struct {
		Query string `json:"query"`
		Tag   string `json:"tag"`
		Mood  string `json:"mood"`
		Days  int    `json:"days"`
		Limit int    `json:"limit"`
	}
	if err := json.Unmarshal(req.Params.Arguments, &args); err != nil {
		return toolError("invalid arguments: %v", err), nil
	}

	mood, err := models.ParseMood(args.Mood)
	if err != nil {
		return toolError("%v", err), nil
	}
	if args.Limit <= 0 {
		args.Limit = 10
	}

	q := search.Query{
		Text:  args.Query,
		Tag:   args.Tag,
		Mood:  mood,
		Limit: args.Limit,
	}
	if args.Days > 0 {
		q.Since = time.Now().AddDate(0, 0, -args.Days)
	}

	results := search.Apply(s.journal.Entries(), q)
	if len(results) == 0 {
		return textResult("No matching entries found."), nil
	}

	var sb strings.Builder
	for i, entry := range results {
		if i > 0 {
			sb.WriteString("\n---\n")
		}
		sb.WriteString(formatEntry(entry))
	}
	return textResult(sb.String()), nil
}

func (s *Server) handleListTags(ctx context.Context, req *gomcp.CallToolRequest) (*gomcp.CallToolResult, error) {
	tags := search.UniqueTags(s.journal.Entries())
	if len(tags) == 0 {
		return textResult("No tags yet."), nil
	}
	return textResult(strings.Join(tags, "\n")), nil
}

func (s *Server) handleAddTag(ctx context.Context, req *gomcp.CallToolRequest) (*gomcp.CallToolResult, error) {
	return s.editTag(req, "add", s.journal.AddTag)
}

func (s *Server) handleRemoveTag(ctx context.Context, req *gomcp.CallToolRequest) (*gomcp.CallToolResult, error) {
	return s.editTag(req, "remove", s.journal.RemoveTag)
}

func (s *Server) editTag(req *gomcp.CallToolRequest, verb string, edit func(uuid.UUID, string) error) (*gomcp.CallToolResult, error) {
	var args struct {
		ID  string `json:"id"`
		Tag string `json:"tag"`
	}
	if err := json.Unmarshal(req.Params.Arguments, &args); err != nil {
		return toolError("invalid arguments: %v", err), nil
	}
	id, err := uuid.Parse(args.ID)
	if err != nil {
		return toolError("invalid entry id %q", args.ID), nil
	}
	tag := strings.TrimSpace(args.Tag)
	if tag == "" {
		return toolError("tag is required"), nil
	}

	if err := edit(id, tag); err != nil {
		return storeError(verb+" tag", id, err), nil
	}

	entry, err := s.journal.Get(id)
	if err != nil {
		return storeError("read entry", id, err), nil
	}
	return textResult(fmt.Sprintf("Tags: %s", strings.Join(entry.Tags, ", "))), nil
}

func (s *Server) handleAttachImage(ctx context.Context, req *gomcp.CallToolRequest) (*gomcp.CallToolResult, error) {
	var args struct {
		ID   string `json:"id"`
		Path string `json:"path"`
		Data string `json:"data"`
	}
	if err := json.Unmarshal(req.Params.Arguments, &args); err != nil {
		return toolError("invalid arguments: %v", err), nil
	}
	id, err := uuid.Parse(args.ID)
	if err != nil {
		return toolError("invalid entry id %q", args.ID), nil
	}

	var raw []byte
	switch {
	case args.Path != "" && args.Data != "":
		return toolError("provide either path or data, not both"), nil
	case args.Path != "":
		raw, err = os.ReadFile(args.Path)
		if err != nil {
			return toolError("failed to read image: %v", err), nil
		}
	case args.Data != "":
		raw, err = base64.StdEncoding.DecodeString(args.Data)
		if err != nil {
			return toolError("invalid base64 image data: %v", err), nil
		}
	default:
		return toolError("path or data is required"), nil
	}

	img := imagecodec.Decode(raw)
	if img == nil {
		return toolError("unsupported or corrupt image"), nil
	}
	if err := s.journal.AttachImage(id, img); err != nil {
		return storeError("attach image", id, err), nil
	}

	b := img.Bounds()
	return textResult(fmt.Sprintf("Image attached to %s (%dx%d)", id, b.Dx(), b.Dy())), nil
}

func (s *Server) handleDetachImage(ctx context.Context, req *gomcp.CallToolRequest) (*gomcp.CallToolResult, error) {
	id, result := parseIDArg(req)
	if result != nil {
		return result, nil
	}
	if err := s.journal.DetachImage(id); err != nil {
		return storeError("detach image", id, err), nil
	}
	return textResult(fmt.Sprintf("Image removed from %s", id)), nil
}

// lookup parses id and fetches a copy of the entry, or returns an error result.
func (s *Server) lookup(rawID string) (*models.JournalEntry, *gomcp.CallToolResult) {
	id, err := uuid.Parse(rawID)
	if err != nil {
		return nil, toolError("invalid entry id %q", rawID)
	}
	entry, err := s.journal.Get(id)
	if err != nil {
		return nil, storeError("read entry", id, err)
	}
	return entry, nil
}

func parseIDArg(req *gomcp.CallToolRequest) (uuid.UUID, *gomcp.CallToolResult) {
	var args struct {
		ID string `json:"id"`
	}
	if err := json.Unmarshal(req.Params.Arguments, &args); err != nil {
		return uuid.Nil, toolError("invalid arguments: %v", err)
	}
	id, err := uuid.Parse(args.ID)
	if err != nil {
		return uuid.Nil, toolError("invalid entry id %q", args.ID)
	}
	return id, nil
}

// formatEntry renders an entry as plain text for tool responses.
func formatEntry(entry *models.JournalEntry) string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("ID: %s\n", entry.ID))
	sb.WriteString(fmt.Sprintf("Date: %s\n", entry.Date.Format("2006-01-02 15:04:05")))
	sb.WriteString(fmt.Sprintf("Title: %s\n", entry.Title))
	if entry.Mood.IsSet() {
		sb.WriteString(fmt.Sprintf("Mood: %s (%d)\n", entry.Mood, int(entry.Mood)))
	}
	if len(entry.Tags) > 0 {
		sb.WriteString(fmt.Sprintf("Tags: %s\n", strings.Join(entry.Tags, ", ")))
	}
	if entry.HasImage() {
		sb.WriteString("Photo: attached\n")
	}
	if entry.Content != "" {
		sb.WriteString("\n")
		sb.WriteString(entry.Content)
		sb.WriteString("\n")
	}
	return sb.String()
}

func textResult(text string) *gomcp.CallToolResult {
	return &gomcp.CallToolResult{
		Content: []gomcp.Content{&gomcp.TextContent{Text: text}},
	}
}

// storeError maps store failures onto tool error results.
func storeError(action string, id uuid.UUID, err error) *gomcp.CallToolResult {
	if errors.Is(err, storage.ErrEntryNotFound) {
		return toolError("entry not found: %s", id)
	}
	return toolError("failed to %s: %v", action, err)
}

// toolError creates an error result for MCP tool responses.
func toolError(format string, args ...interface{}) *gomcp.CallToolResult {
	return &gomcp.CallToolResult{
		Content: []gomcp.Content{&gomcp.TextContent{Text: fmt.Sprintf(format, args...)}},
		IsError: true,
	}
}
