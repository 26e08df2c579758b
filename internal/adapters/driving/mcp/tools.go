package mcp

import (
	"context"
	"fmt"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/custodia-labs/linkcard/internal/core/domain"
	"github.com/custodia-labs/linkcard/internal/core/render"
)

// defaultHistoryLimit caps list_history when no limit is given and no
// history settings are available.
const defaultHistoryLimit = 20

// PreviewInput is the input schema for the preview_link tool.
type PreviewInput struct {
	Text      string `json:"text" jsonschema:"free-form text containing the URL to preview"`
	TimeoutMS int    `json:"timeout_ms,omitempty" jsonschema:"fetch timeout in milliseconds (default from settings)"`
	Policy    string `json:"policy,omitempty" jsonschema:"render policy: strict or loose (default from settings)"`
}

// PreviewOutput is the output schema for the preview_link tool.
type PreviewOutput struct {
	Visible     bool                 `json:"visible"`
	Policy      string               `json:"policy"`
	CardTitle   string               `json:"card_title,omitempty"`
	CardText    string               `json:"card_description,omitempty"`
	Link        string               `json:"link,omitempty"`
	Title       string               `json:"title,omitempty"`
	Description string               `json:"description,omitempty"`
	Domain      string               `json:"domain,omitempty"`
	Image       *domain.PreviewImage `json:"image,omitempty"`
}

// HistoryInput is the input schema for the list_history tool.
type HistoryInput struct {
	Limit int `json:"limit,omitempty" jsonschema:"maximum number of entries to return"`
}

// HistoryOutput is the output schema for the list_history tool.
type HistoryOutput struct {
	Entries []HistoryEntryOutput `json:"entries"`
	Count   int                  `json:"count"`
}

// HistoryEntryOutput represents a single history entry.
type HistoryEntryOutput struct {
	ID        string    `json:"id"`
	Text      string    `json:"text"`
	Link      string    `json:"link,omitempty"`
	Title     string    `json:"title,omitempty"`
	Domain    string    `json:"domain,omitempty"`
	FetchedAt time.Time `json:"fetched_at"`
}

// registerTools registers all tool handlers with the MCP server.
func (s *Server) registerTools() {
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "preview_link",
		Description: "Fetch link preview metadata (title, description, image) for the first URL in a text",
	}, s.handlePreview)

	if s.ports.History != nil {
		mcp.AddTool(s.server, &mcp.Tool{
			Name:        "list_history",
			Description: "List recently accepted link previews, newest first",
		}, s.handleListHistory)
	}
}

// handlePreview handles the preview_link tool invocation.
func (s *Server) handlePreview(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input PreviewInput,
) (*mcp.CallToolResult, PreviewOutput, error) {
	policy := s.ports.Preview.Policy()
	if input.Policy != "" {
		policy = domain.RenderPolicy(input.Policy)
		if !policy.IsValid() {
			return nil, PreviewOutput{}, fmt.Errorf("invalid policy %q: %w", input.Policy, domain.ErrInvalidInput)
		}
	}

	req := domain.PreviewRequest{
		Text:           input.Text,
		RequestTimeout: time.Duration(input.TimeoutMS) * time.Millisecond,
	}

	data, err := s.ports.Preview.Resolve(ctx, req)
	if err != nil {
		return nil, PreviewOutput{}, err
	}

	output := PreviewOutput{
		Visible:     render.Visible(data, policy),
		Policy:      policy.String(),
		Link:        data.Link,
		Title:       data.Title,
		Description: data.Description,
		Domain:      data.Domain,
		Image:       data.Image,
	}
	if output.Visible {
		output.CardTitle = render.TitleText(data, policy)
		output.CardText = render.DescriptionText(data, policy)
	}

	return nil, output, nil
}

// handleListHistory handles the list_history tool invocation.
func (s *Server) handleListHistory(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input HistoryInput,
) (*mcp.CallToolResult, HistoryOutput, error) {
	limit := input.Limit
	if limit <= 0 && s.ports.Settings == nil {
		limit = defaultHistoryLimit
	}

	entries, err := s.ports.History.List(ctx, limit)
	if err != nil {
		return nil, HistoryOutput{}, err
	}

	output := HistoryOutput{
		Entries: make([]HistoryEntryOutput, len(entries)),
		Count:   len(entries),
	}
	for i := range entries {
		output.Entries[i] = HistoryEntryOutput{
			ID:        entries[i].ID,
			Text:      entries[i].Text,
			Link:      entries[i].Data.Link,
			Title:     entries[i].Data.Title,
			Domain:    entries[i].Data.Domain,
			FetchedAt: entries[i].FetchedAt,
		}
	}

	return nil, output, nil
}
