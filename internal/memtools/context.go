package memtools

import (
	"context"
	"fmt"

	"github.com/JC67999/best-practice/internal/memory"
	"github.com/mark3labs/mcp-go/mcp"
)

// LoadContextTool handles the mem_load_context MCP tool.
type LoadContextTool struct {
	store *memory.Store
}

// NewLoadContextTool creates a LoadContextTool with the given store.
func NewLoadContextTool(store *memory.Store) *LoadContextTool {
	return &LoadContextTool{store: store}
}

// Definition returns the MCP tool definition for registration.
func (t *LoadContextTool) Definition() mcp.Tool {
	return mcp.NewTool("mem_load_context",
		mcp.WithDescription(
			"Load everything the memory holds about a project: its objective, "+
				"the last 3 session summaries, and every recorded decision. "+
				"Call this at the start of a session.",
		),
		mcp.WithString("project_path",
			mcp.Required(),
			mcp.Description("Absolute path to the project."),
		),
	)
}

// Handle processes the mem_load_context tool call.
func (t *LoadContextTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	projectPath := req.GetString("project_path", "")
	if projectPath == "" {
		return mcp.NewToolResultError("project_path is required"), nil
	}

	pctx, err := t.store.ProjectContext(projectPath)
	if err != nil {
		return nil, fmt.Errorf("loading project context: %w", err)
	}

	return jsonResult(pctx)
}
