package tools

import (
	"context"
	"fmt"

	"github.com/JC67999/best-practice/internal/project"
	"github.com/JC67999/best-practice/internal/tasks"
	"github.com/mark3labs/mcp-go/mcp"
)

// IdentifyScopeCreepTool handles the identify_scope_creep MCP tool.
type IdentifyScopeCreepTool struct {
	store project.Store
}

// NewIdentifyScopeCreepTool creates an IdentifyScopeCreepTool with its dependencies.
func NewIdentifyScopeCreepTool(store project.Store) *IdentifyScopeCreepTool {
	return &IdentifyScopeCreepTool{store: store}
}

// Definition returns the MCP tool definition for registration.
func (t *IdentifyScopeCreepTool) Definition() mcp.Tool {
	return mcp.NewTool("identify_scope_creep",
		mcp.WithDescription(
			"Scan the task queue for tasks that don't serve the objective. "+
				"Each misaligned task gets a cut or defer recommendation based "+
				"on its alignment score.",
		),
		mcp.WithString("project_path",
			mcp.Description("Absolute path to the project. Defaults to the current project."),
		),
	)
}

// Handle processes the identify_scope_creep tool call.
func (t *IdentifyScopeCreepTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
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

	misaligned := tasks.FindMisaligned(data.Tasks, data.Objective.Problem, data.Objective.Solution)

	message := "No scope creep detected"
	if len(misaligned) > 0 {
		message = "Review and cut/defer these tasks to maintain focus"
	}
	if misaligned == nil {
		misaligned = []tasks.MisalignedTask{}
	}

	return jsonResult(map[string]any{
		"scope_creep_detected":   len(misaligned) > 0,
		"total_misaligned_tasks": len(misaligned),
		"misaligned_tasks":       misaligned,
		"message":                message,
	})
}
