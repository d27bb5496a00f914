package tools

import (
	"context"
	"errors"
	"fmt"

	"github.com/JC67999/best-practice/internal/objective"
	"github.com/JC67999/best-practice/internal/project"
	"github.com/mark3labs/mcp-go/mcp"
)

// AnswerQuestionTool handles the answer_objective_question MCP tool.
type AnswerQuestionTool struct {
	store project.Store
}

// NewAnswerQuestionTool creates an AnswerQuestionTool with its dependencies.
func NewAnswerQuestionTool(store project.Store) *AnswerQuestionTool {
	return &AnswerQuestionTool{store: store}
}

// Definition returns the MCP tool definition for registration.
func (t *AnswerQuestionTool) Definition() mcp.Tool {
	return mcp.NewTool("answer_objective_question",
		mcp.WithDescription(
			"Submit an answer to the current clarification question. "+
				"Vague answers trigger one follow-up question; accepted answers "+
				"advance to the next category. When every category is answered "+
				"the session is scored: 80 or above completes it, below 80 "+
				"reports the weak areas to improve.",
		),
		mcp.WithString("project_path",
			mcp.Description("Absolute path to the project. Defaults to the current project."),
		),
		mcp.WithString("question_id",
			mcp.Required(),
			mcp.Description("ID of the question being answered, e.g. problem_definition_1."),
		),
		mcp.WithString("answer",
			mcp.Required(),
			mcp.Description("The answer text. Be specific: numbers, names, examples."),
		),
	)
}

// Handle processes the answer_objective_question tool call.
func (t *AnswerQuestionTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	questionID := req.GetString("question_id", "")
	answer := req.GetString("answer", "")
	if questionID == "" {
		return mcp.NewToolResultError("question_id is required"), nil
	}

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

	outcome, err := data.Clarification.Submit(questionID, answer)
	if err != nil {
		var unknown *objective.UnknownQuestionError
		if errors.As(err, &unknown) {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return nil, err
	}

	if err := t.store.Save(projectRoot, data); err != nil {
		return nil, fmt.Errorf("saving project data: %w", err)
	}

	switch outcome.Status {
	case objective.OutcomeNeedsClarification:
		return jsonResult(map[string]any{
			"status":  string(outcome.Status),
			"message": "Answer is too vague. Please be more specific.",
			"next_question": map[string]string{
				"id":       outcome.NextQuestion.ID,
				"question": outcome.NextQuestion.Text,
			},
		})

	case objective.OutcomeContinue:
		return jsonResult(map[string]any{
			"status":  string(outcome.Status),
			"message": "Good answer! Next question:",
			"next_question": map[string]string{
				"id":       outcome.NextQuestion.ID,
				"question": outcome.NextQuestion.Text,
			},
		})

	case objective.OutcomeCompleted:
		return jsonResult(map[string]any{
			"status":        string(outcome.Status),
			"message":       "Objective clarification complete!",
			"clarity_score": outcome.ClarityScore,
			"summary":       outcome.Summary,
		})

	case objective.OutcomeNeedsImprovement:
		return jsonResult(map[string]any{
			"status":        string(outcome.Status),
			"clarity_score": outcome.ClarityScore,
			"message": fmt.Sprintf("Clarity score is %d/100. Need >=%d. Let's clarify further.",
				outcome.ClarityScore, objective.ClarityThreshold),
			"weak_areas": outcome.WeakAreas,
		})
	}

	return nil, fmt.Errorf("unhandled outcome status %q", outcome.Status)
}
