// Package mcp provides an MCP (Model Context Protocol) server adapter for linkcard.
// It lets AI assistants resolve link previews and browse preview history.
package mcp

import "errors"

// ErrMissingPreviewService is returned when the preview service is not provided.
var ErrMissingPreviewService = errors.New("mcp: preview service is required")
