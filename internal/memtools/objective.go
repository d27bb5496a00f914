package memtools

import (
	"context"
	"fmt"

	"github.com/JC67999/best-practice/internal/memory"
	"github.com/mark3labs/mcp-go/mcp"
)

// SaveObjectiveTool handles the mem_save_objective MCP tool.
type SaveObjectiveTool struct {
	store *memory.Store
}

// NewSaveObjectiveTool creates a SaveObjectiveTool with the given store.
func NewSaveObjectiveTool(store *memory.Store) *SaveObjectiveTool {
	return &SaveObjectiveTool{store: store}
}

// Definition returns the MCP tool definition for registration.
func (t *SaveObjectiveTool) Definition() mcp.Tool {
	return mcp.NewTool("mem_save_objective",
		mcp.WithDescription(
			"Store the project's defined objective in cross-project memory. "+
				"A project holds at most one objective; saving again replaces it.",
		),
		mcp.WithString("project_path",
			mcp.Required(),
			mcp.Description("Absolute path to the project."),
		),
		mcp.WithString("problem",
			mcp.Required(),
			mcp.Description("The problem being solved."),
		),
		mcp.WithString("target_user",
			mcp.Description("Who the project serves."),
		),
		mcp.WithString("solution",
			mcp.Description("What is being built."),
		),
		mcp.WithString("success_metrics",
			mcp.Description("How success is measured."),
		),
		mcp.WithString("constraints",
			mcp.Description("Timeline, technology, and resource constraints."),
		),
		mcp.WithNumber("clarity_score",
			mcp.Description("Clarity score the objective was defined with (0-100)."),
		),
	)
}

// Handle processes the mem_save_objective tool call.
func (t *SaveObjectiveTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	projectPath := req.GetString("project_path", "")
	problem := req.GetString("problem", "")
	if projectPath == "" {
		return mcp.NewToolResultError("project_path is required"), nil
	}
	if problem == "" {
		return mcp.NewToolResultError("problem is required"), nil
	}

	obj := memory.Objective{
		Problem:        problem,
		TargetUser:     req.GetString("target_user", ""),
		Solution:       req.GetString("solution", ""),
		SuccessMetrics: req.GetString("success_metrics", ""),
		Constraints:    req.GetString("constraints", ""),
		ClarityScore:   req.GetInt("clarity_score", 0),
		DefinedAt:      timeNow().UTC().Format("2006-01-02T15:04:05Z07:00"),
	}
	if err := t.store.SaveObjective(projectPath, obj); err != nil {
		return nil, fmt.Errorf("saving objective: %w", err)
	}

	return jsonResult(map[string]any{
		"success":       true,
		"message":       "Project objective saved",
		"clarity_score": obj.ClarityScore,
	})
}

// LoadObjectiveTool handles the mem_load_objective MCP tool.
type LoadObjectiveTool struct {
	store *memory.Store
}

// NewLoadObjectiveTool creates a LoadObjectiveTool with the given store.
func NewLoadObjectiveTool(store *memory.Store) *LoadObjectiveTool {
	return &LoadObjectiveTool{store: store}
}

// Definition returns the MCP tool definition for registration.
func (t *LoadObjectiveTool) Definition() mcp.Tool {
	return mcp.NewTool("mem_load_objective",
		mcp.WithDescription(
			"Load the project's stored objective from cross-project memory.",
		),
		mcp.WithString("project_path",
			mcp.Required(),
			mcp.Description("Absolute path to the project."),
		),
	)
}

// Handle processes the mem_load_objective tool call.
func (t *LoadObjectiveTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	projectPath := req.GetString("project_path", "")
	if projectPath == "" {
		return mcp.NewToolResultError("project_path is required"), nil
	}

	obj, err := t.store.LoadObjective(projectPath)
	if err != nil {
		return nil, fmt.Errorf("loading objective: %w", err)
	}
	if obj == nil {
		return jsonResult(map[string]any{
			"found":   false,
			"message": "No objective found for project",
		})
	}

	return jsonResult(map[string]any{
		"found":     true,
		"objective": obj,
	})
}
