package memtools

import (
	"context"
	"fmt"

	"github.com/JC67999/best-practice/internal/memory"
	"github.com/mark3labs/mcp-go/mcp"
)

// SearchTool handles the mem_search MCP tool.
type SearchTool struct {
	store *memory.Store
}

// NewSearchTool creates a SearchTool with the given store.
func NewSearchTool(store *memory.Store) *SearchTool {
	return &SearchTool{store: store}
}

// Definition returns the MCP tool definition for registration.
func (t *SearchTool) Definition() mcp.Tool {
	return mcp.NewTool("mem_search",
		mcp.WithDescription(
			"Search session summaries, decisions, and objectives across every "+
				"tracked project. Results are grouped by project, at most 5 "+
				"matches per project and 10 projects total.",
		),
		mcp.WithString("query",
			mcp.Required(),
			mcp.Description("Free-text search query."),
		),
	)
}

// Handle processes the mem_search tool call.
func (t *SearchTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	query := req.GetString("query", "")
	if query == "" {
		return mcp.NewToolResultError("query is required"), nil
	}

	result, err := t.store.Search(query)
	if err != nil {
		return nil, fmt.Errorf("searching memory: %w", err)
	}

	return jsonResult(result)
}
