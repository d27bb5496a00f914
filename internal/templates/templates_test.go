package templates

import (
	"strings"
	"testing"
)

// --- NewRenderer ---

func TestNewRenderer_Succeeds(t *testing.T) {
	r, err := NewRenderer()
	if err != nil {
		t.Fatalf("NewRenderer() failed: %v", err)
	}
	if r == nil {
		t.Fatal("NewRenderer() returned nil")
	}
}

// --- Render: initial plan ---

func TestRender_PlanInitial(t *testing.T) {
	r, err := NewRenderer()
	if err != nil {
		t.Fatalf("NewRenderer: %v", err)
	}

	data := PlanInitialData{
		LastUpdated:    "2025-06-01 12:00",
		ClarityScore:   85,
		Problem:        "Manual invoice entry wastes hours",
		TargetUser:     "Back-office clerks at regional banks",
		Solution:       "A web form with validation",
		SuccessMetrics: "70% less entry time",
		Constraints:    "3 month timeline",
		AuditDate:      "2025-06-01",
	}

	result, err := r.Render(PlanInitial, data)
	if err != nil {
		t.Fatalf("Render(PlanInitial) failed: %v", err)
	}

	// Verify key sections are present.
	checks := []string{
		"# Project Plan",
		"Last Updated: 2025-06-01 12:00",
		"Clarity Score: 85/100",
		"**Problem**: Manual invoice entry wastes hours",
		"**Target User**: Back-office clerks at regional banks",
		"**Solution**: A web form with validation",
		"**Success Metrics**: 70% less entry time",
		"**Constraints**: 3 month timeline",
		"**Progress**: 0% complete",
		"Task Queue",
		"Last Audit: 2025-06-01",
		"Best Practice Toolkit", // Attribution line.
	}

	for _, check := range checks {
		if !strings.Contains(result, check) {
			t.Errorf("PlanInitial output missing: %q", check)
		}
	}
}

func TestRender_PlanInitial_EmptyFieldsFallBack(t *testing.T) {
	r, err := NewRenderer()
	if err != nil {
		t.Fatalf("NewRenderer: %v", err)
	}

	result, err := r.Render(PlanInitial, PlanInitialData{})
	if err != nil {
		t.Fatalf("Render(PlanInitial, empty) failed: %v", err)
	}

	if !strings.Contains(result, "**Problem**: Not defined") {
		t.Error("empty objective fields should render as Not defined")
	}
	if !strings.Contains(result, "Clarity Score: 0/100") {
		t.Error("zero score should still render")
	}
}

// --- Render: progress plan ---

func TestRender_PlanProgress_WithCurrentTask(t *testing.T) {
	r, err := NewRenderer()
	if err != nil {
		t.Fatalf("NewRenderer: %v", err)
	}

	data := PlanProgressData{
		LastUpdated:     "2025-06-02 09:30",
		ClarityScore:    85,
		Problem:         "Manual invoice entry wastes hours",
		CompletedCount:  2,
		TotalCount:      5,
		ProgressPercent: "40.0",
		CurrentTask:     &PlanTask{Description: "Wire the parser", StartedAt: "2025-06-02T09:00:00Z"},
		PendingTasks: []PlanTask{
			{Description: "Add tests"},
			{Description: "Document the API"},
		},
		CompletedTasks: []PlanTask{
			{Description: "Scaffold the repo", CompletedAt: "2025-06-01T15:00:00Z"},
			{Description: "Set up CI", CompletedAt: "2025-06-01T17:00:00Z"},
		},
	}

	result, err := r.Render(PlanProgress, data)
	if err != nil {
		t.Fatalf("Render(PlanProgress) failed: %v", err)
	}

	checks := []string{
		"**Progress**: 2/5 tasks complete (40.0%)",
		"**Task**: Wire the parser",
		"**Started**: 2025-06-02T09:00:00Z",
		"- Add tests",
		"- Document the API",
		"Scaffold the repo (2025-06-01T15:00:00Z)",
		"Set up CI (2025-06-01T17:00:00Z)",
	}

	for _, check := range checks {
		if !strings.Contains(result, check) {
			t.Errorf("PlanProgress output missing: %q", check)
		}
	}
}

func TestRender_PlanProgress_WithoutCurrentTask(t *testing.T) {
	r, err := NewRenderer()
	if err != nil {
		t.Fatalf("NewRenderer: %v", err)
	}

	data := PlanProgressData{
		LastUpdated:     "2025-06-02 09:30",
		ProgressPercent: "0.0",
	}

	result, err := r.Render(PlanProgress, data)
	if err != nil {
		t.Fatalf("Render(PlanProgress) failed: %v", err)
	}

	if !strings.Contains(result, "No task currently in progress.") {
		t.Error("missing no-current-task fallback")
	}
	if strings.Contains(result, "**Status**: In Progress") {
		t.Error("current-task block should NOT render when CurrentTask is nil")
	}
}

func TestRender_PlanProgress_MissingCompletionDate(t *testing.T) {
	r, err := NewRenderer()
	if err != nil {
		t.Fatalf("NewRenderer: %v", err)
	}

	data := PlanProgressData{
		ProgressPercent: "100.0",
		CompletedTasks:  []PlanTask{{Description: "Untimed task"}},
	}

	result, err := r.Render(PlanProgress, data)
	if err != nil {
		t.Fatalf("Render(PlanProgress) failed: %v", err)
	}

	if !strings.Contains(result, "Untimed task (Unknown)") {
		t.Error("missing Unknown fallback for completion date")
	}
}

// --- Render: unknown template ---

func TestRender_UnknownTemplate(t *testing.T) {
	r, err := NewRenderer()
	if err != nil {
		t.Fatalf("NewRenderer: %v", err)
	}

	_, err = r.Render("nonexistent.md.tmpl", nil)
	if err == nil {
		t.Fatal("Render(nonexistent) should fail")
	}
}

// --- Renderer interface compliance ---

func TestEmbedRenderer_ImplementsRenderer(t *testing.T) {
	r, err := NewRenderer()
	if err != nil {
		t.Fatalf("NewRenderer: %v", err)
	}

	// Compile-time interface check.
	var _ Renderer = r
}
