package tasks

import (
	"strings"
	"testing"
)

// --- AlignmentScore ---

func TestAlignmentScore_BaseWithNoOverlap(t *testing.T) {
	got := AlignmentScore("paint the bikeshed", "slow invoice processing", "automated invoice pipeline")
	if got != 50 {
		t.Errorf("score = %d, want base 50", got)
	}
}

func TestAlignmentScore_ProblemKeywords(t *testing.T) {
	tests := []struct {
		name string
		task string
		want int
	}{
		{"one match", "speed up invoice parsing", 60},
		{"two matches", "speed up invoice processing", 70},
		{"caps at 30", "invoice processing export validation review queue", 80},
	}

	problem := "invoice processing export validation review queue overload"

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := AlignmentScore(tt.task, problem, ""); got != tt.want {
				t.Errorf("score = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestAlignmentScore_ShortWordsIgnored(t *testing.T) {
	// Words of 4 characters or fewer never count as keywords.
	got := AlignmentScore("fix the slow form now", "the slow form is bad", "")
	if got != 50 {
		t.Errorf("score = %d, want 50 (no keyword longer than 4 chars)", got)
	}
}

func TestAlignmentScore_SolutionCreditCapped(t *testing.T) {
	solution := "dashboard metrics charting alerts export"
	task := "build dashboard metrics charting alerts export"

	// 5 solution matches would be 50 credit, capped at 20.
	if got := AlignmentScore(task, "", solution); got != 70 {
		t.Errorf("score = %d, want 70", got)
	}
}

func TestAlignmentScore_CappedAt100(t *testing.T) {
	text := "invoice processing export validation dashboard"
	if got := AlignmentScore(text, text, text); got != 100 {
		t.Errorf("score = %d, want 100", got)
	}
}

func TestAlignmentScore_CaseInsensitive(t *testing.T) {
	got := AlignmentScore("Refactor INVOICE Parsing", "invoice parsing is slow", "")
	if got != 70 {
		t.Errorf("score = %d, want 70", got)
	}
}

// --- ValidateSize ---

func TestValidateSize_Appropriate(t *testing.T) {
	report := ValidateSize("Add retry to the upload client")
	if !report.OK {
		t.Fatalf("report = %+v, want OK", report)
	}
	if report.Size != "appropriate" {
		t.Errorf("Size = %q", report.Size)
	}
	if len(report.Issues) != 0 {
		t.Errorf("Issues = %v, want none", report.Issues)
	}
}

func TestValidateSize_TooLong(t *testing.T) {
	report := ValidateSize(strings.Repeat("refactor the parser ", 11))
	if report.OK {
		t.Fatal("expected too_large")
	}
	if report.Size != "too_large" {
		t.Errorf("Size = %q", report.Size)
	}
	if report.Recommendation == "" {
		t.Error("expected a recommendation")
	}
}

func TestValidateSize_ConnectorWords(t *testing.T) {
	// "and", "then", "also" — three distinct connector words.
	report := ValidateSize("Parse the file and store it, then reindex, also notify")
	if report.OK {
		t.Fatalf("report = %+v, want too_large", report)
	}

	found := false
	for _, issue := range report.Issues {
		if strings.Contains(issue, "connecting words") {
			found = true
		}
	}
	if !found {
		t.Errorf("Issues = %v, want a connecting-words issue", report.Issues)
	}
}

func TestValidateSize_TwoConnectorsAllowed(t *testing.T) {
	report := ValidateSize("Parse the file and then store it")
	if !report.OK {
		t.Errorf("two connector words should pass, got %+v", report)
	}
}

func TestValidateSize_ManyFileMentions(t *testing.T) {
	report := ValidateSize("Update internal/a/x.go internal/b/y.go internal/c/z.go")
	if report.OK {
		t.Fatal("expected too_large for multiple file mentions")
	}

	found := false
	for _, issue := range report.Issues {
		if strings.Contains(issue, "multiple files") {
			found = true
		}
	}
	if !found {
		t.Errorf("Issues = %v, want a multiple-files issue", report.Issues)
	}
}

// --- RankByAlignment ---

func TestRankByAlignment_SortsHighestFirst(t *testing.T) {
	list := []Task{
		{ID: "task_1", Description: "write release notes"},
		{ID: "task_2", Description: "fix invoice processing timeout"},
		{ID: "task_3", Description: "tune invoice parsing"},
	}

	scored := RankByAlignment(list, "invoice processing times out under load", "")
	if len(scored) != 3 {
		t.Fatalf("got %d scored tasks", len(scored))
	}
	if scored[0].Task.ID != "task_2" {
		t.Errorf("top task = %s, want task_2", scored[0].Task.ID)
	}
	if scored[len(scored)-1].Task.ID != "task_1" {
		t.Errorf("bottom task = %s, want task_1", scored[len(scored)-1].Task.ID)
	}
	for i := 1; i < len(scored); i++ {
		if scored[i].Score > scored[i-1].Score {
			t.Errorf("scores not descending: %d before %d", scored[i-1].Score, scored[i].Score)
		}
	}
}

func TestRankByAlignment_StableForTies(t *testing.T) {
	list := []Task{
		{ID: "task_1", Description: "unrelated chore one"},
		{ID: "task_2", Description: "unrelated chore two"},
	}

	scored := RankByAlignment(list, "invoice processing", "")
	if scored[0].Task.ID != "task_1" || scored[1].Task.ID != "task_2" {
		t.Errorf("tie order changed: %s, %s", scored[0].Task.ID, scored[1].Task.ID)
	}
}

// --- FindMisaligned ---

func TestFindMisaligned(t *testing.T) {
	list := []Task{
		{ID: "task_1", Description: "improve invoice processing pipeline"},
		{ID: "task_2", Description: "redesign the office seating chart"},
	}

	misaligned := FindMisaligned(list, "invoice processing is slow", "faster invoice pipeline")
	if len(misaligned) != 1 {
		t.Fatalf("got %d misaligned tasks: %+v", len(misaligned), misaligned)
	}
	if misaligned[0].TaskID != "task_2" {
		t.Errorf("TaskID = %s, want task_2", misaligned[0].TaskID)
	}
	if misaligned[0].Recommendation != "defer" {
		t.Errorf("Recommendation = %q, want defer (base score is never below the cut threshold)", misaligned[0].Recommendation)
	}
}

func TestFindMisaligned_NoneWhenAllAligned(t *testing.T) {
	list := []Task{
		{ID: "task_1", Description: "improve invoice processing pipeline"},
	}

	if got := FindMisaligned(list, "invoice processing is slow", "faster invoice pipeline"); len(got) != 0 {
		t.Errorf("got %+v, want none", got)
	}
}
