package tools

import (
	"context"
	"fmt"

	"github.com/JC67999/best-practice/internal/objective"
	"github.com/JC67999/best-practice/internal/project"
	"github.com/mark3labs/mcp-go/mcp"
)

// ScoreClarityTool handles the score_objective_clarity MCP tool.
type ScoreClarityTool struct {
	store project.Store
}

// NewScoreClarityTool creates a ScoreClarityTool with its dependencies.
func NewScoreClarityTool(store project.Store) *ScoreClarityTool {
	return &ScoreClarityTool{store: store}
}

// Definition returns the MCP tool definition for registration.
func (t *ScoreClarityTool) Definition() mcp.Tool {
	return mcp.NewTool("score_objective_clarity",
		mcp.WithDescription(
			"Score the current clarification session against the five-category "+
				"rubric (0-100) without changing any state. Reports PASS at 80 or "+
				"above, FAIL below, plus the weak areas holding the score down.",
		),
		mcp.WithString("project_path",
			mcp.Description("Absolute path to the project. Defaults to the current project."),
		),
	)
}

// Handle processes the score_objective_clarity tool call.
func (t *ScoreClarityTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	projectRoot, err := resolveProjectRoot(req)
	if err != nil {
		return nil, fmt.Errorf("finding project root: %w", err)
	}

	data, err := t.store.Load(projectRoot)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	session := data.Clarification
	if session == nil || session.Status == objective.StatusNotStarted {
		return jsonResult(map[string]any{
			"score":   0,
			"message": "Objective clarification not started",
		})
	}

	score := objective.ClarityScore(session.Answers)
	weak := objective.WeakAreas(session.Answers)

	status := "FAIL"
	message := "Score >=80 required to proceed"
	if score >= objective.ClarityThreshold {
		status = "PASS"
		message = "Clarity sufficient"
	}

	return jsonResult(map[string]any{
		"score":      score,
		"status":     status,
		"weak_areas": weak,
		"message":    message,
	})
}
