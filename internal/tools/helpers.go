// Package tools implements the MCP tool handlers for project planning:
// objective clarification, task alignment, and progress tracking.
//
// Each tool is a struct that receives dependencies via its constructor (DIP)
// and exposes a Definition for registration plus a Handle compatible with
// mcp-go's CallToolRequest signature.
//
// Design principles:
// - SRP: each file = one tool
// - DIP: tools depend on interfaces (project.Store, templates.Renderer), not concretions
// - OCP: new tools are added without modifying existing ones
package tools

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/JC67999/best-practice/internal/project"
	"github.com/JC67999/best-practice/internal/tasks"
	"github.com/JC67999/best-practice/internal/templates"
	"github.com/mark3labs/mcp-go/mcp"
)

// findProjectRoot walks up from the current working directory looking for an
// existing .project_manager/ directory. If none is found, returns cwd.
// This allows tools to work from any subdirectory of the project.
func findProjectRoot() (string, error) {
	dir, err := os.Getwd()
	if err != nil {
		return "", fmt.Errorf("getting working directory: %w", err)
	}

	current := dir
	for {
		candidate := filepath.Join(current, project.ManagerDir, project.DataFile)
		if _, err := os.Stat(candidate); err == nil {
			return current, nil
		}

		parent := filepath.Dir(current)
		if parent == current {
			// Reached filesystem root, no managed project found.
			// Return original cwd — the caller decides what to do.
			return dir, nil
		}
		current = parent
	}
}

// resolveProjectRoot prefers an explicit project_path argument and falls
// back to the working-directory walk.
func resolveProjectRoot(req mcp.CallToolRequest) (string, error) {
	if p := req.GetString("project_path", ""); p != "" {
		return p, nil
	}
	return findProjectRoot()
}

// jsonResult marshals a tool response as indented JSON text.
func jsonResult(v any) (*mcp.CallToolResult, error) {
	raw, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encoding result: %w", err)
	}
	return mcp.NewToolResultText(string(raw)), nil
}

// planPath returns where the generated project plan lives.
func planPath(projectRoot string) string {
	return filepath.Join(projectRoot, "docs", "notes", "PROJECT_PLAN.md")
}

// writePlanFile writes the rendered plan, creating docs/notes/ as needed.
func writePlanFile(projectRoot, content string) error {
	path := planPath(projectRoot)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating plan directory: %w", err)
	}
	return os.WriteFile(path, []byte(content), 0o644)
}

// refreshPlan regenerates PROJECT_PLAN.md from current task state. A missing
// plan file means the objective was never defined; nothing to refresh.
func refreshPlan(renderer templates.Renderer, projectRoot string, data *project.Data) error {
	if _, err := os.Stat(planPath(projectRoot)); os.IsNotExist(err) {
		return nil
	}

	completed, total, percent := data.Progress()

	var obj project.Objective
	if data.Objective != nil {
		obj = *data.Objective
	}

	var current *templates.PlanTask
	if t := data.CurrentTask(); t != nil {
		current = &templates.PlanTask{Description: t.Description, StartedAt: t.StartedAt}
	}

	var pending []templates.PlanTask
	for _, t := range data.PendingTasks() {
		pending = append(pending, templates.PlanTask{Description: t.Description})
		if len(pending) == 5 {
			break
		}
	}

	// Last 10 completed tasks.
	done := data.CompletedTasks
	if len(done) > 10 {
		done = done[len(done)-10:]
	}
	var completedTasks []templates.PlanTask
	for _, t := range done {
		completedTasks = append(completedTasks, templates.PlanTask{
			Description: t.Description,
			CompletedAt: t.CompletedAt,
		})
	}

	content, err := renderer.Render(templates.PlanProgress, templates.PlanProgressData{
		LastUpdated:     timeNow().UTC().Format("2006-01-02 15:04"),
		ClarityScore:    obj.ClarityScore,
		Problem:         obj.Problem,
		TargetUser:      obj.TargetUser,
		Solution:        obj.Solution,
		SuccessMetrics:  obj.SuccessMetrics,
		Constraints:     obj.Constraints,
		CompletedCount:  completed,
		TotalCount:      total,
		ProgressPercent: fmt.Sprintf("%.1f", percent),
		CurrentTask:     current,
		PendingTasks:    pending,
		CompletedTasks:  completedTasks,
	})
	if err != nil {
		return err
	}
	return writePlanFile(projectRoot, content)
}

// scoreTask rates a description against the stored objective's problem and
// solution text.
func scoreTask(description string, data *project.Data) int {
	var problem, solution string
	if data.Objective != nil {
		problem = data.Objective.Problem
		solution = data.Objective.Solution
	}
	return tasks.AlignmentScore(description, problem, solution)
}
