package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/custodia-labs/linkcard/internal/core/domain"
)

const (
	// uriScheme is the custom URI scheme for linkcard resources.
	uriScheme = "linkcard://"
)

// registerResources registers all resource handlers with the MCP server.
func (s *Server) registerResources() {
	if s.ports.History != nil {
		s.server.AddResource(&mcp.Resource{
			URI:         uriScheme + "history",
			Name:        "history",
			Description: "Recently accepted link previews",
			MIMEType:    "application/json",
		}, s.handleHistoryResource)

		s.server.AddResourceTemplate(&mcp.ResourceTemplate{
			URITemplate: uriScheme + "history/{entryId}",
			Name:        "history-entry",
			Description: "A single accepted link preview",
			MIMEType:    "application/json",
		}, s.handleHistoryEntryResource)
	}

	if s.ports.Settings != nil {
		s.server.AddResource(&mcp.Resource{
			URI:         uriScheme + "settings",
			Name:        "settings",
			Description: "Current preview settings",
			MIMEType:    "application/json",
		}, s.handleSettingsResource)
	}
}

// handleHistoryResource returns the default-sized history listing.
func (s *Server) handleHistoryResource(
	ctx context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	entries, err := s.ports.History.List(ctx, 0)
	if err != nil {
		return nil, fmt.Errorf("listing history: %w", err)
	}
	if entries == nil {
		entries = []domain.HistoryEntry{}
	}
	return jsonResult(req.Params.URI, entries)
}

// handleHistoryEntryResource returns one history entry.
func (s *Server) handleHistoryEntryResource(
	ctx context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	// Extract entryId from URI: linkcard://history/{entryId}
	id := extractEntryID(req.Params.URI)
	if id == "" {
		return nil, mcp.ResourceNotFoundError(req.Params.URI)
	}

	entry, err := s.ports.History.Get(ctx, id)
	if errors.Is(err, domain.ErrNotFound) {
		return nil, mcp.ResourceNotFoundError(req.Params.URI)
	}
	if err != nil {
		return nil, fmt.Errorf("getting history entry: %w", err)
	}
	return jsonResult(req.Params.URI, entry)
}

// handleSettingsResource returns the current settings.
func (s *Server) handleSettingsResource(
	_ context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	settings, err := s.ports.Settings.Get()
	if err != nil {
		return nil, fmt.Errorf("getting settings: %w", err)
	}

	info := struct {
		Policy           string `json:"policy"`
		RequestTimeoutMS int64  `json:"request_timeout_ms"`
		EnableAnimation  bool   `json:"enable_animation"`
		HistoryEnabled   bool   `json:"history_enabled"`
		HistoryLimit     int    `json:"history_limit"`
	}{
		Policy:           settings.Preview.Policy.String(),
		RequestTimeoutMS: settings.Preview.RequestTimeout.Milliseconds(),
		EnableAnimation:  settings.Preview.EnableAnimation,
		HistoryEnabled:   settings.History.Enabled,
		HistoryLimit:     settings.History.Limit,
	}
	return jsonResult(req.Params.URI, info)
}

func jsonResult(uri string, v any) (*mcp.ReadResourceResult, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshalling resource: %w", err)
	}

	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{{
			URI:      uri,
			MIMEType: "application/json",
			Text:     string(data),
		}},
	}, nil
}

// extractEntryID extracts the entry ID from a URI like linkcard://history/{entryId}.
func extractEntryID(uri string) string {
	const prefix = uriScheme + "history/"

	if !strings.HasPrefix(uri, prefix) {
		return ""
	}

	id := strings.TrimPrefix(uri, prefix)
	if strings.Contains(id, "/") {
		return ""
	}
	return id
}
