package tools

import (
	"context"
	"fmt"

	"github.com/JC67999/best-practice/internal/project"
	"github.com/JC67999/best-practice/internal/tasks"
	"github.com/mark3labs/mcp-go/mcp"
)

// ChallengePriorityTool handles the challenge_task_priority MCP tool.
type ChallengePriorityTool struct {
	store project.Store
}

// NewChallengePriorityTool creates a ChallengePriorityTool with its dependencies.
func NewChallengePriorityTool(store project.Store) *ChallengePriorityTool {
	return &ChallengePriorityTool{store: store}
}

// Definition returns the MCP tool definition for registration.
func (t *ChallengePriorityTool) Definition() mcp.Tool {
	return mcp.NewTool("challenge_task_priority",
		mcp.WithDescription(
			"Challenge whether a task is really the highest priority right "+
				"now. Compares its alignment score against every other pending "+
				"task and lists up to three higher-impact alternatives.",
		),
		mcp.WithString("project_path",
			mcp.Description("Absolute path to the project. Defaults to the current project."),
		),
		mcp.WithString("task_id",
			mcp.Required(),
			mcp.Description("ID of the task about to be worked on."),
		),
	)
}

// Handle processes the challenge_task_priority tool call.
func (t *ChallengePriorityTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	taskID := req.GetString("task_id", "")
	if taskID == "" {
		return mcp.NewToolResultError("task_id is required"), nil
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
		return mcp.NewToolResultError("no objective defined"), nil
	}

	thisTask := data.FindTask(taskID)
	if thisTask == nil {
		return mcp.NewToolResultError(fmt.Sprintf("task %q not found", taskID)), nil
	}

	// Every OTHER pending task is a competitor.
	var competitors []tasks.Task
	for _, task := range data.PendingTasks() {
		if task.ID != taskID {
			competitors = append(competitors, task)
		}
	}
	if len(competitors) == 0 {
		return jsonResult(map[string]any{
			"challenge": false,
			"message":   "No other pending tasks to compare",
		})
	}

	thisScore := scoreTask(thisTask.Description, data)
	scored := tasks.RankByAlignment(competitors, data.Objective.Problem, data.Objective.Solution)

	var higher []map[string]any
	for _, st := range scored {
		if st.Score > thisScore {
			higher = append(higher, map[string]any{
				"id":              st.Task.ID,
				"description":     st.Task.Description,
				"alignment_score": st.Score,
			})
		}
		if len(higher) == 3 {
			break
		}
	}

	if len(higher) > 0 {
		return jsonResult(map[string]any{
			"challenge":             true,
			"message":               "Higher priority tasks exist",
			"this_task_score":       thisScore,
			"higher_priority_tasks": higher,
			"recommendation":        "Consider working on higher-impact tasks first",
		})
	}

	return jsonResult(map[string]any{
		"challenge":       false,
		"message":         "This is the highest priority task",
		"this_task_score": thisScore,
		"proceed":         true,
	})
}
