package memtools

import (
	"context"
	"fmt"

	"github.com/JC67999/best-practice/internal/memory"
	"github.com/mark3labs/mcp-go/mcp"
)

// SaveSessionSummaryTool handles the mem_save_session_summary MCP tool.
type SaveSessionSummaryTool struct {
	store *memory.Store
}

// NewSaveSessionSummaryTool creates a SaveSessionSummaryTool with the given store.
func NewSaveSessionSummaryTool(store *memory.Store) *SaveSessionSummaryTool {
	return &SaveSessionSummaryTool{store: store}
}

// Definition returns the MCP tool definition for registration.
func (t *SaveSessionSummaryTool) Definition() mcp.Tool {
	return mcp.NewTool("mem_save_session_summary",
		mcp.WithDescription(
			"Save a working-session summary for a project so the next session "+
				"can pick up where this one left off. Only the last 10 sessions "+
				"per project are kept.",
		),
		mcp.WithString("project_path",
			mcp.Required(),
			mcp.Description("Absolute path to the project."),
		),
		mcp.WithString("summary",
			mcp.Required(),
			mcp.Description("Brief summary of what happened this session."),
		),
		mcp.WithArray("decisions",
			mcp.Description("Key decisions made this session."),
			mcp.Items(map[string]any{"type": "string"}),
		),
		mcp.WithArray("next_steps",
			mcp.Description("Next steps to take."),
			mcp.Items(map[string]any{"type": "string"}),
		),
		mcp.WithArray("blockers",
			mcp.Description("Current blockers."),
			mcp.Items(map[string]any{"type": "string"}),
		),
	)
}

// Handle processes the mem_save_session_summary tool call.
func (t *SaveSessionSummaryTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	projectPath := req.GetString("project_path", "")
	summary := req.GetString("summary", "")
	if projectPath == "" {
		return mcp.NewToolResultError("project_path is required"), nil
	}
	if summary == "" {
		return mcp.NewToolResultError("summary is required"), nil
	}

	projectID, err := t.store.SaveSessionSummary(projectPath, summary,
		stringList(req, "decisions"),
		stringList(req, "next_steps"),
		stringList(req, "blockers"),
	)
	if err != nil {
		return nil, fmt.Errorf("saving session summary: %w", err)
	}

	return jsonResult(map[string]any{
		"success":    true,
		"message":    "Session summary saved",
		"project_id": projectID,
	})
}
