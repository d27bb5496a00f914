package tools

import (
	"context"

	"github.com/JC67999/best-practice/internal/tasks"
	"github.com/mark3labs/mcp-go/mcp"
)

// ValidateSizeTool handles the validate_task_size MCP tool. Pure check, no
// project state involved.
type ValidateSizeTool struct{}

// NewValidateSizeTool creates a ValidateSizeTool.
func NewValidateSizeTool() *ValidateSizeTool {
	return &ValidateSizeTool{}
}

// Definition returns the MCP tool definition for registration.
func (t *ValidateSizeTool) Definition() mcp.Tool {
	return mcp.NewTool("validate_task_size",
		mcp.WithDescription(
			"Check that a task is small enough to execute as a single unit. "+
				"Flags long descriptions, compound tasks (3+ connecting words), "+
				"and tasks touching multiple files.",
		),
		mcp.WithString("task_description",
			mcp.Required(),
			mcp.Description("The task description to validate."),
		),
	)
}

// Handle processes the validate_task_size tool call.
func (t *ValidateSizeTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	description := req.GetString("task_description", "")
	if description == "" {
		return mcp.NewToolResultError("task_description is required"), nil
	}

	report := tasks.ValidateSize(description)
	if report.OK {
		return jsonResult(map[string]any{
			"ok":      true,
			"size":    report.Size,
			"message": "Task size is good",
		})
	}
	return jsonResult(report)
}
