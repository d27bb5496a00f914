package memtools

import (
	"context"
	"fmt"

	"github.com/JC67999/best-practice/internal/memory"
	"github.com/mark3labs/mcp-go/mcp"
)

// ListProjectsTool handles the mem_list_projects MCP tool.
type ListProjectsTool struct {
	store *memory.Store
}

// NewListProjectsTool creates a ListProjectsTool with the given store.
func NewListProjectsTool(store *memory.Store) *ListProjectsTool {
	return &ListProjectsTool{store: store}
}

// Definition returns the MCP tool definition for registration.
func (t *ListProjectsTool) Definition() mcp.Tool {
	return mcp.NewTool("mem_list_projects",
		mcp.WithDescription(
			"List every project the memory tracks, most recently active "+
				"first, with session counts and whether an objective is defined.",
		),
	)
}

// Handle processes the mem_list_projects tool call.
func (t *ListProjectsTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	projects, err := t.store.ListProjects()
	if err != nil {
		return nil, fmt.Errorf("listing projects: %w", err)
	}
	if projects == nil {
		projects = []memory.ProjectInfo{}
	}

	return jsonResult(map[string]any{
		"total_projects": len(projects),
		"projects":       projects,
	})
}
