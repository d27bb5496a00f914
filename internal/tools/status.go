package tools

import (
	"context"
	"fmt"

	"github.com/JC67999/best-practice/internal/project"
	"github.com/mark3labs/mcp-go/mcp"
)

// GetStatusTool handles the get_current_status MCP tool.
type GetStatusTool struct {
	store project.Store
}

// NewGetStatusTool creates a GetStatusTool with its dependencies.
func NewGetStatusTool(store project.Store) *GetStatusTool {
	return &GetStatusTool{store: store}
}

// Definition returns the MCP tool definition for registration.
func (t *GetStatusTool) Definition() mcp.Tool {
	return mcp.NewTool("get_current_status",
		mcp.WithDescription(
			"Report project status at a glance: whether an objective is "+
				"defined, task counts, progress percentage, and the task "+
				"currently in flight.",
		),
		mcp.WithString("project_path",
			mcp.Description("Absolute path to the project. Defaults to the current project."),
		),
	)
}

// Handle processes the get_current_status tool call.
func (t *GetStatusTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	projectRoot, err := resolveProjectRoot(req)
	if err != nil {
		return nil, fmt.Errorf("finding project root: %w", err)
	}

	data, err := t.store.Load(projectRoot)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	completed, total, percent := data.Progress()

	clarityScore := 0
	problem := "Not defined"
	solution := "Not defined"
	if data.Objective != nil {
		clarityScore = data.Objective.ClarityScore
		problem = truncate(data.Objective.Problem, 100)
		solution = truncate(data.Objective.Solution, 100)
	}

	var currentDescription any
	if cur := data.CurrentTask(); cur != nil {
		currentDescription = cur.Description
	}

	return jsonResult(map[string]any{
		"has_objective":           data.Objective != nil,
		"objective_clarity_score": clarityScore,
		"total_tasks":             total,
		"completed_tasks":         completed,
		"pending_tasks":           len(data.PendingTasks()),
		"progress_percent":        percent,
		"current_task":            currentDescription,
		"objective_summary": map[string]string{
			"problem":  problem,
			"solution": solution,
		},
	})
}

// truncate clips text to max characters, marking the cut with an ellipsis.
func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max] + "..."
}
