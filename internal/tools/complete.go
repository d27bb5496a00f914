package tools

import (
	"context"
	"fmt"

	"github.com/JC67999/best-practice/internal/project"
	"github.com/JC67999/best-practice/internal/templates"
	"github.com/mark3labs/mcp-go/mcp"
)

// MarkTaskCompleteTool handles the mark_task_complete MCP tool.
type MarkTaskCompleteTool struct {
	store    project.Store
	renderer templates.Renderer
}

// NewMarkTaskCompleteTool creates a MarkTaskCompleteTool with its dependencies.
func NewMarkTaskCompleteTool(store project.Store, renderer templates.Renderer) *MarkTaskCompleteTool {
	return &MarkTaskCompleteTool{store: store, renderer: renderer}
}

// Definition returns the MCP tool definition for registration.
func (t *MarkTaskCompleteTool) Definition() mcp.Tool {
	return mcp.NewTool("mark_task_complete",
		mcp.WithDescription(
			"Mark a task complete. Refuses unless the quality gate passed. "+
				"Moves the task to the completed list, refreshes "+
				"PROJECT_PLAN.md, and appends to the completion log.",
		),
		mcp.WithString("project_path",
			mcp.Description("Absolute path to the project. Defaults to the current project."),
		),
		mcp.WithString("task_id",
			mcp.Required(),
			mcp.Description("ID of the task to complete."),
		),
		mcp.WithBoolean("quality_gate_passed",
			mcp.Required(),
			mcp.Description("Whether the quality gate (tests, lint, review) passed."),
		),
	)
}

// Handle processes the mark_task_complete tool call.
func (t *MarkTaskCompleteTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	taskID := req.GetString("task_id", "")
	if taskID == "" {
		return mcp.NewToolResultError("task_id is required"), nil
	}

	if !req.GetBool("quality_gate_passed", false) {
		return jsonResult(map[string]any{
			"success": false,
			"blocked": true,
			"error":   "Quality gate must pass before marking task complete",
			"action":  "Fix issues and re-run quality gate",
		})
	}

	projectRoot, err := resolveProjectRoot(req)
	if err != nil {
		return nil, fmt.Errorf("finding project root: %w", err)
	}

	data, err := t.store.Load(projectRoot)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	done, ok := data.CompleteTask(taskID)
	if !ok {
		return mcp.NewToolResultError(fmt.Sprintf("task %q not found", taskID)), nil
	}

	if err := refreshPlan(t.renderer, projectRoot, data); err != nil {
		return nil, fmt.Errorf("updating project plan: %w", err)
	}
	if err := project.AppendCompletionLog(projectRoot, done); err != nil {
		return nil, fmt.Errorf("logging completion: %w", err)
	}
	if err := t.store.Save(projectRoot, data); err != nil {
		return nil, fmt.Errorf("saving project data: %w", err)
	}

	return jsonResult(map[string]any{
		"success":      true,
		"message":      "Task marked complete",
		"task_id":      taskID,
		"plan_updated": true,
	})
}
