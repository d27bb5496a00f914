package memtools

import (
	"context"
	"fmt"

	"github.com/JC67999/best-practice/internal/memory"
	"github.com/mark3labs/mcp-go/mcp"
)

// SaveDecisionTool handles the mem_save_decision MCP tool.
type SaveDecisionTool struct {
	store *memory.Store
}

// NewSaveDecisionTool creates a SaveDecisionTool with the given store.
func NewSaveDecisionTool(store *memory.Store) *SaveDecisionTool {
	return &SaveDecisionTool{store: store}
}

// Definition returns the MCP tool definition for registration.
func (t *SaveDecisionTool) Definition() mcp.Tool {
	return mcp.NewTool("mem_save_decision",
		mcp.WithDescription(
			"Record an architectural or technical decision with its rationale. "+
				"Decisions are kept forever and always included in the project "+
				"context.",
		),
		mcp.WithString("project_path",
			mcp.Required(),
			mcp.Description("Absolute path to the project."),
		),
		mcp.WithString("decision",
			mcp.Required(),
			mcp.Description("The decision made."),
		),
		mcp.WithString("rationale",
			mcp.Required(),
			mcp.Description("Why this decision was made."),
		),
	)
}

// Handle processes the mem_save_decision tool call.
func (t *SaveDecisionTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	projectPath := req.GetString("project_path", "")
	decision := req.GetString("decision", "")
	rationale := req.GetString("rationale", "")
	if projectPath == "" {
		return mcp.NewToolResultError("project_path is required"), nil
	}
	if decision == "" {
		return mcp.NewToolResultError("decision is required"), nil
	}
	if rationale == "" {
		return mcp.NewToolResultError("rationale is required"), nil
	}

	count, err := t.store.SaveDecision(projectPath, decision, rationale)
	if err != nil {
		return nil, fmt.Errorf("saving decision: %w", err)
	}

	return jsonResult(map[string]any{
		"success":        true,
		"message":        "Decision saved",
		"decision_count": count,
	})
}
