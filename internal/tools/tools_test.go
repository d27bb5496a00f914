package tools

import (
	"context"
	"encoding/json"
	"os"
	"strings"
	"testing"

	"github.com/JC67999/best-practice/internal/objective"
	"github.com/JC67999/best-practice/internal/project"
	"github.com/JC67999/best-practice/internal/tasks"
	"github.com/JC67999/best-practice/internal/templates"
	"github.com/mark3labs/mcp-go/mcp"
)

// --- Test helpers ---

func newRequest(args map[string]interface{}) mcp.CallToolRequest {
	req := mcp.CallToolRequest{}
	req.Params.Arguments = args
	return req
}

// isErrorResult checks if the result is a tool error.
func isErrorResult(result *mcp.CallToolResult) bool {
	return result != nil && result.IsError
}

// getResultText extracts the text content from a CallToolResult.
func getResultText(result *mcp.CallToolResult) string {
	if result == nil || len(result.Content) == 0 {
		return ""
	}
	for _, c := range result.Content {
		if tc, ok := c.(mcp.TextContent); ok {
			return tc.Text
		}
	}
	return ""
}

// decodeResult unmarshals a JSON tool result into a generic map.
func decodeResult(t *testing.T, result *mcp.CallToolResult) map[string]any {
	t.Helper()
	var out map[string]any
	if err := json.Unmarshal([]byte(getResultText(result)), &out); err != nil {
		t.Fatalf("decoding result %q: %v", getResultText(result), err)
	}
	return out
}

func testRenderer(t *testing.T) templates.Renderer {
	t.Helper()
	r, err := templates.NewRenderer()
	if err != nil {
		t.Fatalf("NewRenderer: %v", err)
	}
	return r
}

// saveObjective seeds a project with a defined objective.
func saveObjective(t *testing.T, root string) {
	t.Helper()
	store := project.NewFileStore()
	data, err := store.Load(root)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	data.Objective = &project.Objective{
		Problem:      "invoice processing is slow and error prone",
		TargetUser:   "back-office clerks",
		Solution:     "automated invoice pipeline with validation",
		ClarityScore: 85,
		DefinedAt:    "2025-06-01T12:00:00Z",
	}
	if err := store.Save(root, data); err != nil {
		t.Fatalf("save: %v", err)
	}
}

// --- ClarifyObjectiveTool ---

func TestClarifyObjectiveTool_StartsSession(t *testing.T) {
	root := t.TempDir()
	tool := NewClarifyObjectiveTool(project.NewFileStore())

	result, err := tool.Handle(context.Background(), newRequest(map[string]interface{}{
		"project_path":        root,
		"initial_description": "a tool for invoices",
	}))
	if err != nil {
		t.Fatalf("Handle: %v", err)
	}
	if isErrorResult(result) {
		t.Fatalf("unexpected error: %s", getResultText(result))
	}

	out := decodeResult(t, result)
	if out["status"] != "started" {
		t.Errorf("status = %v", out["status"])
	}
	next := out["next_question"].(map[string]any)
	if next["id"] != "problem_definition_1" {
		t.Errorf("first question id = %v", next["id"])
	}

	data, err := project.NewFileStore().Load(root)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if data.Clarification == nil || data.Clarification.Status != objective.StatusInProgress {
		t.Errorf("session not persisted: %+v", data.Clarification)
	}
}

func TestClarifyObjectiveTool_RestartReplacesSession(t *testing.T) {
	root := t.TempDir()
	tool := NewClarifyObjectiveTool(project.NewFileStore())

	start := func(desc string) {
		t.Helper()
		result, err := tool.Handle(context.Background(), newRequest(map[string]interface{}{
			"project_path":        root,
			"initial_description": desc,
		}))
		if err != nil || isErrorResult(result) {
			t.Fatalf("Handle: %v / %s", err, getResultText(result))
		}
	}

	start("first attempt")
	answerTool := NewAnswerQuestionTool(project.NewFileStore())
	if _, err := answerTool.Handle(context.Background(), newRequest(map[string]interface{}{
		"project_path": root,
		"question_id":  "problem_definition_1",
		"answer":       "Clinics double-book rooms because the shared calendar lags behind edits",
	})); err != nil {
		t.Fatalf("answer: %v", err)
	}

	start("second attempt")

	data, err := project.NewFileStore().Load(root)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if data.Clarification.InitialDescription != "second attempt" {
		t.Errorf("InitialDescription = %q", data.Clarification.InitialDescription)
	}
	if len(data.Clarification.Answers) != 0 {
		t.Errorf("restart must discard previous answers, got %v", data.Clarification.Answers)
	}
}

func TestClarifyObjectiveTool_MissingDescription(t *testing.T) {
	tool := NewClarifyObjectiveTool(project.NewFileStore())

	result, err := tool.Handle(context.Background(), newRequest(map[string]interface{}{
		"project_path": t.TempDir(),
	}))
	if err != nil {
		t.Fatalf("Handle: %v", err)
	}
	if !isErrorResult(result) {
		t.Error("expected error for missing initial_description")
	}
}

// --- AnswerQuestionTool ---

func TestAnswerQuestionTool_NoSession(t *testing.T) {
	tool := NewAnswerQuestionTool(project.NewFileStore())

	result, err := tool.Handle(context.Background(), newRequest(map[string]interface{}{
		"project_path": t.TempDir(),
		"question_id":  "problem_definition_1",
		"answer":       "anything",
	}))
	if err != nil {
		t.Fatalf("Handle: %v", err)
	}
	if !isErrorResult(result) {
		t.Error("expected error without a clarification session")
	}
}

func TestAnswerQuestionTool_UnknownQuestionID(t *testing.T) {
	root := t.TempDir()
	clarify := NewClarifyObjectiveTool(project.NewFileStore())
	if _, err := clarify.Handle(context.Background(), newRequest(map[string]interface{}{
		"project_path":        root,
		"initial_description": "x",
	})); err != nil {
		t.Fatal(err)
	}

	tool := NewAnswerQuestionTool(project.NewFileStore())
	result, err := tool.Handle(context.Background(), newRequest(map[string]interface{}{
		"project_path": root,
		"question_id":  "solution_99",
		"answer":       "anything",
	}))
	if err != nil {
		t.Fatalf("Handle: %v", err)
	}
	if !isErrorResult(result) {
		t.Error("expected error for unknown question id")
	}
	if !strings.Contains(getResultText(result), "solution_99") {
		t.Errorf("error should name the id: %s", getResultText(result))
	}
}

func TestAnswerQuestionTool_VagueAnswerFollowUp(t *testing.T) {
	root := t.TempDir()
	clarify := NewClarifyObjectiveTool(project.NewFileStore())
	if _, err := clarify.Handle(context.Background(), newRequest(map[string]interface{}{
		"project_path":        root,
		"initial_description": "x",
	})); err != nil {
		t.Fatal(err)
	}

	tool := NewAnswerQuestionTool(project.NewFileStore())
	result, err := tool.Handle(context.Background(), newRequest(map[string]interface{}{
		"project_path": root,
		"question_id":  "problem_definition_1",
		"answer":       "help people",
	}))
	if err != nil {
		t.Fatalf("Handle: %v", err)
	}

	out := decodeResult(t, result)
	if out["status"] != "needs_clarification" {
		t.Fatalf("status = %v", out["status"])
	}
	next := out["next_question"].(map[string]any)
	if next["id"] != "problem_definition_1_followup" {
		t.Errorf("follow-up id = %v", next["id"])
	}
}

func TestAnswerQuestionTool_AcceptedAnswerContinues(t *testing.T) {
	root := t.TempDir()
	clarify := NewClarifyObjectiveTool(project.NewFileStore())
	if _, err := clarify.Handle(context.Background(), newRequest(map[string]interface{}{
		"project_path":        root,
		"initial_description": "x",
	})); err != nil {
		t.Fatal(err)
	}

	tool := NewAnswerQuestionTool(project.NewFileStore())
	result, err := tool.Handle(context.Background(), newRequest(map[string]interface{}{
		"project_path": root,
		"question_id":  "problem_definition_1",
		"answer":       "Clinics double-book rooms because the shared calendar lags behind edits",
	}))
	if err != nil {
		t.Fatalf("Handle: %v", err)
	}

	out := decodeResult(t, result)
	if out["status"] != "continue" {
		t.Fatalf("status = %v: %s", out["status"], getResultText(result))
	}
	next := out["next_question"].(map[string]any)
	if next["id"] != "target_user_1" {
		t.Errorf("next id = %v", next["id"])
	}
}

// completeClarification walks a session to completion via the tools.
func completeClarification(t *testing.T, root string) {
	t.Helper()
	clarify := NewClarifyObjectiveTool(project.NewFileStore())
	if _, err := clarify.Handle(context.Background(), newRequest(map[string]interface{}{
		"project_path":        root,
		"initial_description": "clinic scheduling",
	})); err != nil {
		t.Fatal(err)
	}

	answers := []struct{ id, text string }{
		{"problem_definition_1", "Clinics double-book rooms because the shared calendar lags behind edits"},
		{"target_user_1", "For example front-desk staff at 3 dental clinics in Austin"},
		{"solution_1", "A booking screen with live room availability and conflict checks"},
		{"success_metrics_1", "Zero double-bookings per month, measured from 120 per month today"},
		{"constraints_1", "Must ship in 3 months on the existing Postgres setup"},
	}

	tool := NewAnswerQuestionTool(project.NewFileStore())
	for _, a := range answers {
		result, err := tool.Handle(context.Background(), newRequest(map[string]interface{}{
			"project_path": root,
			"question_id":  a.id,
			"answer":       a.text,
		}))
		if err != nil {
			t.Fatalf("answer %s: %v", a.id, err)
		}
		if isErrorResult(result) {
			t.Fatalf("answer %s: %s", a.id, getResultText(result))
		}
	}
}

func TestAnswerQuestionTool_FullSessionCompletes(t *testing.T) {
	root := t.TempDir()
	completeClarification(t, root)

	data, err := project.NewFileStore().Load(root)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if data.Clarification.Status != objective.StatusCompleted {
		t.Errorf("session status = %s", data.Clarification.Status)
	}
}

// --- ScoreClarityTool ---

func TestScoreClarityTool_NotStarted(t *testing.T) {
	tool := NewScoreClarityTool(project.NewFileStore())

	result, err := tool.Handle(context.Background(), newRequest(map[string]interface{}{
		"project_path": t.TempDir(),
	}))
	if err != nil {
		t.Fatalf("Handle: %v", err)
	}

	out := decodeResult(t, result)
	if out["score"].(float64) != 0 {
		t.Errorf("score = %v", out["score"])
	}
	if !strings.Contains(out["message"].(string), "not started") {
		t.Errorf("message = %v", out["message"])
	}
}

func TestScoreClarityTool_PassAfterFullSession(t *testing.T) {
	root := t.TempDir()
	completeClarification(t, root)

	tool := NewScoreClarityTool(project.NewFileStore())
	result, err := tool.Handle(context.Background(), newRequest(map[string]interface{}{
		"project_path": root,
	}))
	if err != nil {
		t.Fatalf("Handle: %v", err)
	}

	out := decodeResult(t, result)
	if out["status"] != "PASS" {
		t.Errorf("status = %v (score %v)", out["status"], out["score"])
	}
}

// --- DefineObjectiveTool ---

func TestDefineObjectiveTool_NoSession(t *testing.T) {
	tool := NewDefineObjectiveTool(project.NewFileStore(), testRenderer(t))

	result, err := tool.Handle(context.Background(), newRequest(map[string]interface{}{
		"project_path": t.TempDir(),
	}))
	if err != nil {
		t.Fatalf("Handle: %v", err)
	}
	if !isErrorResult(result) {
		t.Error("expected error without a clarification session")
	}
}

func TestDefineObjectiveTool_RejectsLowScore(t *testing.T) {
	root := t.TempDir()
	clarify := NewClarifyObjectiveTool(project.NewFileStore())
	if _, err := clarify.Handle(context.Background(), newRequest(map[string]interface{}{
		"project_path":        root,
		"initial_description": "x",
	})); err != nil {
		t.Fatal(err)
	}

	tool := NewDefineObjectiveTool(project.NewFileStore(), testRenderer(t))
	result, err := tool.Handle(context.Background(), newRequest(map[string]interface{}{
		"project_path": root,
	}))
	if err != nil {
		t.Fatalf("Handle: %v", err)
	}

	out := decodeResult(t, result)
	if out["success"].(bool) {
		t.Fatal("expected rejection for unclear objective")
	}
	if !strings.Contains(out["error"].(string), "not clear enough") {
		t.Errorf("error = %v", out["error"])
	}
}

func TestDefineObjectiveTool_WritesPlanAndObjective(t *testing.T) {
	root := t.TempDir()
	completeClarification(t, root)

	tool := NewDefineObjectiveTool(project.NewFileStore(), testRenderer(t))
	result, err := tool.Handle(context.Background(), newRequest(map[string]interface{}{
		"project_path": root,
	}))
	if err != nil {
		t.Fatalf("Handle: %v", err)
	}

	out := decodeResult(t, result)
	if out["success"] != true {
		t.Fatalf("result: %s", getResultText(result))
	}

	data, err := project.NewFileStore().Load(root)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if data.Objective == nil || data.Objective.ClarityScore < objective.ClarityThreshold {
		t.Errorf("objective = %+v", data.Objective)
	}

	raw, err := os.ReadFile(planPath(root))
	if err != nil {
		t.Fatalf("reading plan: %v", err)
	}
	if !strings.Contains(string(raw), "# Project Plan") {
		t.Error("plan file missing header")
	}
	if !strings.Contains(string(raw), "double-book") {
		t.Error("plan file missing objective content")
	}
}

// --- CreateTaskBreakdownTool ---

func TestCreateTaskBreakdownTool_RequiresObjective(t *testing.T) {
	tool := NewCreateTaskBreakdownTool(project.NewFileStore(), testRenderer(t))

	result, err := tool.Handle(context.Background(), newRequest(map[string]interface{}{
		"project_path": t.TempDir(),
	}))
	if err != nil {
		t.Fatalf("Handle: %v", err)
	}
	if !isErrorResult(result) {
		t.Error("expected error without an objective")
	}
}

func TestCreateTaskBreakdownTool_SeedsQueue(t *testing.T) {
	root := t.TempDir()
	saveObjective(t, root)

	tool := NewCreateTaskBreakdownTool(project.NewFileStore(), testRenderer(t))
	result, err := tool.Handle(context.Background(), newRequest(map[string]interface{}{
		"project_path": root,
	}))
	if err != nil {
		t.Fatalf("Handle: %v", err)
	}

	out := decodeResult(t, result)
	if out["total_tasks"].(float64) != 3 {
		t.Errorf("total_tasks = %v", out["total_tasks"])
	}

	data, _ := project.NewFileStore().Load(root)
	if len(data.Tasks) != 3 || data.Tasks[0].ID != "task_1" {
		t.Errorf("tasks = %+v", data.Tasks)
	}
	for _, task := range data.Tasks {
		if task.Status != tasks.StatusPending {
			t.Errorf("task %s status = %s", task.ID, task.Status)
		}
	}
}

// --- ValidateAlignmentTool ---

func TestValidateAlignmentTool(t *testing.T) {
	root := t.TempDir()
	saveObjective(t, root)
	tool := NewValidateAlignmentTool(project.NewFileStore())

	aligned, err := tool.Handle(context.Background(), newRequest(map[string]interface{}{
		"project_path":     root,
		"task_description": "speed up invoice processing validation",
	}))
	if err != nil {
		t.Fatalf("Handle: %v", err)
	}
	out := decodeResult(t, aligned)
	if out["aligned"] != true {
		t.Errorf("expected aligned: %s", getResultText(aligned))
	}

	blocked, err := tool.Handle(context.Background(), newRequest(map[string]interface{}{
		"project_path":     root,
		"task_description": "redesign the office seating chart",
	}))
	if err != nil {
		t.Fatalf("Handle: %v", err)
	}
	out = decodeResult(t, blocked)
	if out["aligned"] != false || out["blocked"] != true {
		t.Errorf("expected blocked: %s", getResultText(blocked))
	}
}

// --- ValidateSizeTool ---

func TestValidateSizeTool(t *testing.T) {
	tool := NewValidateSizeTool()

	ok, err := tool.Handle(context.Background(), newRequest(map[string]interface{}{
		"task_description": "Add retry to the upload client",
	}))
	if err != nil {
		t.Fatalf("Handle: %v", err)
	}
	out := decodeResult(t, ok)
	if out["ok"] != true {
		t.Errorf("result: %s", getResultText(ok))
	}

	big, err := tool.Handle(context.Background(), newRequest(map[string]interface{}{
		"task_description": "Parse the file and store it, then reindex, also notify the team",
	}))
	if err != nil {
		t.Fatalf("Handle: %v", err)
	}
	out = decodeResult(t, big)
	if out["ok"] != false || out["size"] != "too_large" {
		t.Errorf("result: %s", getResultText(big))
	}
}

// --- ChallengePriorityTool ---

func TestChallengePriorityTool(t *testing.T) {
	root := t.TempDir()
	store := project.NewFileStore()
	saveObjective(t, root)

	data, _ := store.Load(root)
	data.Tasks = []tasks.Task{
		{ID: "task_1", Description: "write release notes", Status: tasks.StatusPending},
		{ID: "task_2", Description: "fix invoice processing validation", Status: tasks.StatusPending},
	}
	if err := store.Save(root, data); err != nil {
		t.Fatal(err)
	}

	tool := NewChallengePriorityTool(store)

	// task_1 is low-alignment: the challenge should fire.
	result, err := tool.Handle(context.Background(), newRequest(map[string]interface{}{
		"project_path": root,
		"task_id":      "task_1",
	}))
	if err != nil {
		t.Fatalf("Handle: %v", err)
	}
	out := decodeResult(t, result)
	if out["challenge"] != true {
		t.Fatalf("expected challenge: %s", getResultText(result))
	}

	// task_2 is the best available: proceed.
	result, err = tool.Handle(context.Background(), newRequest(map[string]interface{}{
		"project_path": root,
		"task_id":      "task_2",
	}))
	if err != nil {
		t.Fatalf("Handle: %v", err)
	}
	out = decodeResult(t, result)
	if out["challenge"] != false || out["proceed"] != true {
		t.Errorf("result: %s", getResultText(result))
	}
}

func TestChallengePriorityTool_NoOtherPending(t *testing.T) {
	root := t.TempDir()
	store := project.NewFileStore()
	saveObjective(t, root)

	data, _ := store.Load(root)
	data.Tasks = []tasks.Task{{ID: "task_1", Description: "only task", Status: tasks.StatusPending}}
	if err := store.Save(root, data); err != nil {
		t.Fatal(err)
	}

	result, err := NewChallengePriorityTool(store).Handle(context.Background(), newRequest(map[string]interface{}{
		"project_path": root,
		"task_id":      "task_1",
	}))
	if err != nil {
		t.Fatalf("Handle: %v", err)
	}
	out := decodeResult(t, result)
	if out["challenge"] != false {
		t.Errorf("result: %s", getResultText(result))
	}
}

// --- MarkTaskCompleteTool ---

func TestMarkTaskCompleteTool_QualityGateBlocks(t *testing.T) {
	tool := NewMarkTaskCompleteTool(project.NewFileStore(), testRenderer(t))

	result, err := tool.Handle(context.Background(), newRequest(map[string]interface{}{
		"project_path":        t.TempDir(),
		"task_id":             "task_1",
		"quality_gate_passed": false,
	}))
	if err != nil {
		t.Fatalf("Handle: %v", err)
	}

	out := decodeResult(t, result)
	if out["blocked"] != true || out["success"] != false {
		t.Errorf("result: %s", getResultText(result))
	}
}

func TestMarkTaskCompleteTool_CompletesAndLogs(t *testing.T) {
	root := t.TempDir()
	store := project.NewFileStore()
	saveObjective(t, root)

	data, _ := store.Load(root)
	data.Tasks = []tasks.Task{{ID: "task_1", Description: "wire the parser", Status: tasks.StatusPending}}
	if err := store.Save(root, data); err != nil {
		t.Fatal(err)
	}

	tool := NewMarkTaskCompleteTool(store, testRenderer(t))
	result, err := tool.Handle(context.Background(), newRequest(map[string]interface{}{
		"project_path":        root,
		"task_id":             "task_1",
		"quality_gate_passed": true,
	}))
	if err != nil {
		t.Fatalf("Handle: %v", err)
	}

	out := decodeResult(t, result)
	if out["success"] != true {
		t.Fatalf("result: %s", getResultText(result))
	}

	data, _ = store.Load(root)
	if len(data.Tasks) != 0 || len(data.CompletedTasks) != 1 {
		t.Errorf("tasks = %+v, completed = %+v", data.Tasks, data.CompletedTasks)
	}

	raw, err := os.ReadFile(project.CompletionLogPath(root))
	if err != nil {
		t.Fatalf("reading completion log: %v", err)
	}
	if !strings.Contains(string(raw), "TASK COMPLETED: wire the parser") {
		t.Errorf("log = %q", string(raw))
	}
}

func TestMarkTaskCompleteTool_UnknownTask(t *testing.T) {
	root := t.TempDir()
	tool := NewMarkTaskCompleteTool(project.NewFileStore(), testRenderer(t))

	result, err := tool.Handle(context.Background(), newRequest(map[string]interface{}{
		"project_path":        root,
		"task_id":             "task_404",
		"quality_gate_passed": true,
	}))
	if err != nil {
		t.Fatalf("Handle: %v", err)
	}
	if !isErrorResult(result) {
		t.Error("expected error for unknown task")
	}
}

// --- GetStatusTool ---

func TestGetStatusTool_EmptyProject(t *testing.T) {
	tool := NewGetStatusTool(project.NewFileStore())

	result, err := tool.Handle(context.Background(), newRequest(map[string]interface{}{
		"project_path": t.TempDir(),
	}))
	if err != nil {
		t.Fatalf("Handle: %v", err)
	}

	out := decodeResult(t, result)
	if out["has_objective"] != false {
		t.Errorf("has_objective = %v", out["has_objective"])
	}
	if out["total_tasks"].(float64) != 0 {
		t.Errorf("total_tasks = %v", out["total_tasks"])
	}
}

func TestGetStatusTool_WithProgress(t *testing.T) {
	root := t.TempDir()
	store := project.NewFileStore()
	saveObjective(t, root)

	data, _ := store.Load(root)
	data.Tasks = []tasks.Task{
		{ID: "task_1", Description: "current work", Status: tasks.StatusInProgress},
		{ID: "task_2", Description: "next up", Status: tasks.StatusPending},
	}
	data.CompletedTasks = []tasks.Task{{ID: "task_0", Description: "done", Status: tasks.StatusCompleted}}
	if err := store.Save(root, data); err != nil {
		t.Fatal(err)
	}

	result, err := NewGetStatusTool(store).Handle(context.Background(), newRequest(map[string]interface{}{
		"project_path": root,
	}))
	if err != nil {
		t.Fatalf("Handle: %v", err)
	}

	out := decodeResult(t, result)
	if out["has_objective"] != true {
		t.Error("has_objective should be true")
	}
	if out["total_tasks"].(float64) != 3 || out["completed_tasks"].(float64) != 1 || out["pending_tasks"].(float64) != 1 {
		t.Errorf("counts: %s", getResultText(result))
	}
	if out["current_task"] != "current work" {
		t.Errorf("current_task = %v", out["current_task"])
	}
}

// --- IdentifyScopeCreepTool ---

func TestIdentifyScopeCreepTool(t *testing.T) {
	root := t.TempDir()
	store := project.NewFileStore()
	saveObjective(t, root)

	data, _ := store.Load(root)
	data.Tasks = []tasks.Task{
		{ID: "task_1", Description: "improve invoice processing validation", Status: tasks.StatusPending},
		{ID: "task_2", Description: "redesign the office seating chart", Status: tasks.StatusPending},
	}
	if err := store.Save(root, data); err != nil {
		t.Fatal(err)
	}

	result, err := NewIdentifyScopeCreepTool(store).Handle(context.Background(), newRequest(map[string]interface{}{
		"project_path": root,
	}))
	if err != nil {
		t.Fatalf("Handle: %v", err)
	}

	out := decodeResult(t, result)
	if out["scope_creep_detected"] != true {
		t.Fatalf("result: %s", getResultText(result))
	}
	if out["total_misaligned_tasks"].(float64) != 1 {
		t.Errorf("total_misaligned_tasks = %v", out["total_misaligned_tasks"])
	}
}

// --- RefocusTool ---

func TestRefocusTool_ReordersAndAudits(t *testing.T) {
	root := t.TempDir()
	store := project.NewFileStore()
	saveObjective(t, root)

	data, _ := store.Load(root)
	data.Tasks = []tasks.Task{
		{ID: "task_1", Description: "write release notes", Status: tasks.StatusPending},
		{ID: "task_2", Description: "fix invoice processing validation", Status: tasks.StatusPending},
	}
	if err := store.Save(root, data); err != nil {
		t.Fatal(err)
	}

	result, err := NewRefocusTool(store).Handle(context.Background(), newRequest(map[string]interface{}{
		"project_path": root,
	}))
	if err != nil {
		t.Fatalf("Handle: %v", err)
	}

	out := decodeResult(t, result)
	if out["success"] != true || out["tasks_reordered"].(float64) != 2 {
		t.Fatalf("result: %s", getResultText(result))
	}

	data, _ = store.Load(root)
	if data.Tasks[0].ID != "task_2" {
		t.Errorf("highest-alignment task should come first, got %s", data.Tasks[0].ID)
	}
	if len(data.Audits) != 1 || data.Audits[0].Action != "refocus_on_objective" {
		t.Errorf("audits = %+v", data.Audits)
	}
}
