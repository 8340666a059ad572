// ABOUTME: Tests for MCP server creation and validation.
// ABOUTME: Verifies the server requires a journal store and applies options.
package mcp

import (
	"path/filepath"
	"testing"

	"go.uber.org/zap"

	"github.com/2389-research/daybook/internal/storage"
)

func TestNewServerRequiresJournalStore(t *testing.T) {
	_, err := NewServer(nil)
	if err == nil {
		t.Error("expected error when journal store is nil")
	}
}

func TestNewServerSuccess(t *testing.T) {
	journal, err := storage.NewFileStore(filepath.Join(t.TempDir(), "entries.json"))
	if err != nil {
		t.Fatalf("NewFileStore error: %v", err)
	}

	server, err := NewServer(journal)
	if err != nil {
		t.Fatalf("NewServer error: %v", err)
	}
	if server == nil {
		t.Fatal("expected non-nil server")
	}
	if server.version != "1.0.0" {
		t.Errorf("expected default version, got %q", server.version)
	}
}

func TestNewServerOptions(t *testing.T) {
	journal, err := storage.NewFileStore(filepath.Join(t.TempDir(), "entries.json"))
	if err != nil {
		t.Fatalf("NewFileStore error: %v", err)
	}
	logger := zap.NewExample().Sugar()

	server, err := NewServer(journal, WithLogger(logger), WithVersion("2.3.4"))
	if err != nil {
		t.Fatalf("NewServer error: %v", err)
	}
	if server.logger != logger {
		t.Error("expected logger to be set")
	}
	if server.version != "2.3.4" {
		t.Errorf("expected version 2.3.4, got %q", server.version)
	}
}
