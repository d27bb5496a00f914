package tools

import (
	"context"
	"errors"
	"fmt"

	"github.com/JC67999/best-practice/internal/objective"
	"github.com/JC67999/best-practice/internal/project"
	"github.com/JC67999/best-practice/internal/templates"
	"github.com/mark3labs/mcp-go/mcp"
)

// DefineObjectiveTool handles the define_project_objective MCP tool.
type DefineObjectiveTool struct {
	store    project.Store
	renderer templates.Renderer
}

// NewDefineObjectiveTool creates a DefineObjectiveTool with its dependencies.
func NewDefineObjectiveTool(store project.Store, renderer templates.Renderer) *DefineObjectiveTool {
	return &DefineObjectiveTool{store: store, renderer: renderer}
}

// Definition returns the MCP tool definition for registration.
func (t *DefineObjectiveTool) Definition() mcp.Tool {
	return mcp.NewTool("define_project_objective",
		mcp.WithDescription(
			"Finalize the project objective from a completed clarification "+
				"session. Re-verifies the clarity score at this moment; a score "+
				"below 80 is rejected. On success the objective is stored and "+
				"docs/notes/PROJECT_PLAN.md is generated.",
		),
		mcp.WithString("project_path",
			mcp.Description("Absolute path to the project. Defaults to the current project."),
		),
	)
}

// Handle processes the define_project_objective tool call.
func (t *DefineObjectiveTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	projectRoot, err := resolveProjectRoot(req)
	if err != nil {
		return nil, fmt.Errorf("finding project root: %w", err)
	}

	data, err := t.store.Load(projectRoot)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	if data.Clarification == nil {
		return mcp.NewToolResultError("no clarification session — run clarify_project_objective first"), nil
	}

	summary, score, err := data.Clarification.Finalize()
	if err != nil {
		var notClear *objective.NotClearEnoughError
		if errors.As(err, &notClear) {
			return jsonResult(map[string]any{
				"success": false,
				"error": fmt.Sprintf("Objective not clear enough (score: %d/100). Need >=%d.",
					notClear.Score, objective.ClarityThreshold),
				"action": "Run clarify_project_objective to improve",
			})
		}
		return nil, err
	}

	obj := data.DefineObjective(summary, score)

	plan, err := t.renderer.Render(templates.PlanInitial, templates.PlanInitialData{
		LastUpdated:    timeNow().UTC().Format("2006-01-02 15:04"),
		ClarityScore:   obj.ClarityScore,
		Problem:        obj.Problem,
		TargetUser:     obj.TargetUser,
		Solution:       obj.Solution,
		SuccessMetrics: obj.SuccessMetrics,
		Constraints:    obj.Constraints,
		AuditDate:      timeNow().UTC().Format("2006-01-02"),
	})
	if err != nil {
		return nil, fmt.Errorf("rendering project plan: %w", err)
	}
	if err := writePlanFile(projectRoot, plan); err != nil {
		return nil, fmt.Errorf("writing project plan: %w", err)
	}

	if err := t.store.Save(projectRoot, data); err != nil {
		return nil, fmt.Errorf("saving project data: %w", err)
	}

	return jsonResult(map[string]any{
		"success":              true,
		"message":              "Project objective defined and stored",
		"objective":            obj,
		"project_plan_created": true,
	})
}
