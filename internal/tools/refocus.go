package tools

import (
	"context"
	"fmt"

	"github.com/JC67999/best-practice/internal/project"
	"github.com/JC67999/best-practice/internal/tasks"
	"github.com/mark3labs/mcp-go/mcp"
)

// RefocusTool handles the refocus_on_objective MCP tool.
type RefocusTool struct {
	store project.Store
}

// NewRefocusTool creates a RefocusTool with its dependencies.
func NewRefocusTool(store project.Store) *RefocusTool {
	return &RefocusTool{store: store}
}

// Definition returns the MCP tool definition for registration.
func (t *RefocusTool) Definition() mcp.Tool {
	return mcp.NewTool("refocus_on_objective",
		mcp.WithDescription(
			"Reorder the entire task queue by objective alignment, highest "+
				"impact first, and record the reordering in the audit trail.",
		),
		mcp.WithString("project_path",
			mcp.Description("Absolute path to the project. Defaults to the current project."),
		),
	)
}

// Handle processes the refocus_on_objective tool call.
func (t *RefocusTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	projectRoot, err := resolveProjectRoot(req)
	if err != nil {
		return nil, fmt.Errorf("finding project root: %w", err)
	}

	data, err := t.store.Load(projectRoot)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	if data.Objective == nil {
		return mcp.NewToolResultError("no objective defined"), nil
	}

	scored := tasks.RankByAlignment(data.Tasks, data.Objective.Problem, data.Objective.Solution)

	reordered := make([]tasks.Task, 0, len(scored))
	for _, st := range scored {
		reordered = append(reordered, st.Task)
	}
	data.Tasks = reordered

	highest, lowest := 0, 0
	var highestDescription any
	if len(scored) > 0 {
		highest = scored[0].Score
		lowest = scored[len(scored)-1].Score
		highestDescription = scored[0].Task.Description
	}
	data.RecordAudit("refocus_on_objective", len(scored), highest, lowest)

	if err := t.store.Save(projectRoot, data); err != nil {
		return nil, fmt.Errorf("saving project data: %w", err)
	}

	return jsonResult(map[string]any{
		"success":          true,
		"message":          "Tasks reordered by objective alignment",
		"tasks_reordered":  len(scored),
		"highest_priority": highestDescription,
		"audit_logged":     true,
	})
}
