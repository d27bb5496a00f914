package tools

import (
	"context"
	"fmt"

	"github.com/JC67999/best-practice/internal/project"
	"github.com/JC67999/best-practice/internal/tasks"
	"github.com/mark3labs/mcp-go/mcp"
)

// ValidateAlignmentTool handles the validate_task_alignment MCP tool.
type ValidateAlignmentTool struct {
	store project.Store
}

// NewValidateAlignmentTool creates a ValidateAlignmentTool with its dependencies.
func NewValidateAlignmentTool(store project.Store) *ValidateAlignmentTool {
	return &ValidateAlignmentTool{store: store}
}

// Definition returns the MCP tool definition for registration.
func (t *ValidateAlignmentTool) Definition() mcp.Tool {
	return mcp.NewTool("validate_task_alignment",
		mcp.WithDescription(
			"Check whether a proposed task serves the defined objective. "+
				"Scores keyword overlap with the objective's problem and solution "+
				"statements; below 70 the task is flagged as blocked.",
		),
		mcp.WithString("project_path",
			mcp.Description("Absolute path to the project. Defaults to the current project."),
		),
		mcp.WithString("task_description",
			mcp.Required(),
			mcp.Description("The proposed task, described in one sentence."),
		),
	)
}

// Handle processes the validate_task_alignment tool call.
func (t *ValidateAlignmentTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	description := req.GetString("task_description", "")
	if description == "" {
		return mcp.NewToolResultError("task_description is required"), nil
	}

	projectRoot, err := resolveProjectRoot(req)
	if err != nil {
		return nil, fmt.Errorf("finding project root: %w", err)
	}

	data, err := t.store.Load(projectRoot)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	if data.Objective == nil {
		return mcp.NewToolResultError("no objective defined — run objective clarification first"), nil
	}

	score := scoreTask(description, data)

	if score < tasks.AlignmentThreshold {
		return jsonResult(map[string]any{
			"aligned":        false,
			"score":          score,
			"message":        "Task does not strongly serve objective",
			"recommendation": "Defer or cut this task. Focus on objective-critical work.",
			"blocked":        true,
		})
	}

	return jsonResult(map[string]any{
		"aligned": true,
		"score":   score,
		"message": "Task serves objective",
		"proceed": true,
	})
}
