package tools

import (
	"context"
	"fmt"

	"github.com/JC67999/best-practice/internal/objective"
	"github.com/JC67999/best-practice/internal/project"
	"github.com/mark3labs/mcp-go/mcp"
)

// ClarifyObjectiveTool handles the clarify_project_objective MCP tool.
// This is the CORE of the toolkit: the clarification gate that forces a
// specific, measurable objective before any task work starts.
type ClarifyObjectiveTool struct {
	store project.Store
}

// NewClarifyObjectiveTool creates a ClarifyObjectiveTool with its dependencies.
func NewClarifyObjectiveTool(store project.Store) *ClarifyObjectiveTool {
	return &ClarifyObjectiveTool{store: store}
}

// Definition returns the MCP tool definition for registration.
func (t *ClarifyObjectiveTool) Definition() mcp.Tool {
	return mcp.NewTool("clarify_project_objective",
		mcp.WithDescription(
			"Start objective clarification through structured questions. "+
				"Walks through five categories (problem, target user, solution, "+
				"success metrics, constraints) one question at a time. Vague answers "+
				"get a follow-up question; the session only completes once the "+
				"clarity score reaches the threshold. Starting again replaces any "+
				"previous session.",
		),
		mcp.WithString("project_path",
			mcp.Description("Absolute path to the project. Defaults to the current project."),
		),
		mcp.WithString("initial_description",
			mcp.Required(),
			mcp.Description("Rough initial description of what you want to build."),
		),
	)
}

// Handle processes the clarify_project_objective tool call.
func (t *ClarifyObjectiveTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	description := req.GetString("initial_description", "")
	if description == "" {
		return mcp.NewToolResultError("initial_description is required"), nil
	}

	projectRoot, err := resolveProjectRoot(req)
	if err != nil {
		return nil, fmt.Errorf("finding project root: %w", err)
	}

	data, err := t.store.Load(projectRoot)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	// A restart always begins a fresh session; prior answers are discarded.
	session := objective.NewSession(description)
	data.Clarification = session

	if err := t.store.Save(projectRoot, data); err != nil {
		return nil, fmt.Errorf("saving project data: %w", err)
	}

	first := session.Questions[0]
	return jsonResult(map[string]any{
		"status":  "started",
		"message": "Objective clarification started",
		"next_question": map[string]string{
			"id":       first.ID,
			"question": first.Text,
		},
		"instructions": "Answer this question as specifically as possible. Avoid vague terms like 'people', 'users', 'better'.",
	})
}
