// ABOUTME: MCP server initialization and configuration for daybook.
// ABOUTME: Exposes the journal entry store as tools for AI agent access over stdio.
package mcp

import (
	"context"
	"fmt"

	gomcp "github.com/modelcontextprotocol/go-sdk/mcp"
	"go.uber.org/zap"

	"github.com/2389-research/daybook/internal/logging"
	"github.com/2389-research/daybook/internal/models"
	"github.com/2389-research/daybook/internal/storage"
)

// Server wraps the MCP server with the journal store.
type Server struct {
	mcp     *gomcp.Server
	journal storage.JournalStore
	logger  *zap.SugaredLogger
	version string
}

// ServerOption configures optional Server dependencies.
type ServerOption func(*Server)

// WithLogger sets the logger used for tool call diagnostics.
func WithLogger(logger *zap.SugaredLogger) ServerOption {
	return func(s *Server) {
		s.logger = logging.OrNop(logger)
	}
}

// WithVersion sets the implementation version reported to clients.
func WithVersion(version string) ServerOption {
	return func(s *Server) {
		if version != "" {
			s.version = version
		}
	}
}

// NewServer creates an MCP server backed by the journal store.
func NewServer(journal storage.JournalStore, opts ...ServerOption) (*Server, error) {
	if journal == nil {
		return nil, fmt.Errorf("journal store is required")
	}

	s := &Server{
		journal: journal,
		logger:  logging.OrNop(nil),
		version: "1.0.0",
	}

	for _, opt := range opts {
		opt(s)
	}

	s.mcp = gomcp.NewServer(
		&gomcp.Implementation{
			Name:    "daybook",
			Version: s.version,
		},
		nil,
	)

	s.registerJournalTools()

	return s, nil
}

// Serve starts the MCP server in stdio mode.
func (s *Server) Serve(ctx context.Context) error {
	unsubscribe := s.journal.Subscribe(func(entries []*models.JournalEntry) {
		s.logger.Debugw("journal changed", "entries", len(entries))
	})
	defer unsubscribe()

	s.logger.Infow("serving MCP over stdio", "version", s.version)
	return s.mcp.Run(ctx, &gomcp.StdioTransport{})
}
