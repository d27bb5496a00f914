package objective

import (
	"fmt"
	"testing"
)

func answer(text string) Answer {
	return Answer{Text: text, Timestamp: "2025-01-01T00:00:00Z"}
}

// --- ClarityScore ---

func TestClarityScore_Empty(t *testing.T) {
	if got := ClarityScore(map[string]Answer{}); got != 0 {
		t.Errorf("score = %d, want 0", got)
	}
}

func TestClarityScore_ProblemLength(t *testing.T) {
	tests := []struct {
		name string
		text string
		want int
	}{
		{"over 50 chars", "Users waste time on manual data entry across 50 branch offices", 20},
		{"over 20 chars", "manual entry is too slow", 10},
		{"short", "slow", 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			answers := map[string]Answer{"problem_definition_1": answer(tt.text)}
			if got := ClarityScore(answers); got != tt.want {
				t.Errorf("score = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestClarityScore_TargetUser(t *testing.T) {
	tests := []struct {
		name string
		text string
		want int
	}{
		{"contains digit", "3 dental clinics in Austin", 20},
		{"contains example", "For example accountants at small firms", 20},
		{"long but no examples", "accountants working at small regional firms", 10},
		{"short and generic", "accountants", 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			answers := map[string]Answer{"target_user_1": answer(tt.text)}
			if got := ClarityScore(answers); got != tt.want {
				t.Errorf("score = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestClarityScore_SolutionCount(t *testing.T) {
	tests := []struct {
		count int
		want  int
	}{
		{0, 0}, {1, 10}, {2, 15}, {3, 20}, {4, 20},
	}

	for _, tt := range tests {
		t.Run(fmt.Sprintf("%d answers", tt.count), func(t *testing.T) {
			answers := map[string]Answer{}
			for i := 1; i <= tt.count; i++ {
				answers[fmt.Sprintf("solution_%d", i)] = answer("a thing")
			}
			if got := ClarityScore(answers); got != tt.want {
				t.Errorf("score = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestClarityScore_SolutionMonotonicity(t *testing.T) {
	// Adding a second answer to a one-answer category never decreases the
	// sub-score.
	for _, prefix := range []string{"solution_", "constraints_"} {
		one := map[string]Answer{prefix + "1": answer("first")}
		two := map[string]Answer{prefix + "1": answer("first"), prefix + "2": answer("second")}

		if ClarityScore(two) < ClarityScore(one) {
			t.Errorf("%s sub-score decreased when adding a second answer", prefix)
		}
	}
}

func TestClarityScore_MetricsDigits(t *testing.T) {
	withDigits := map[string]Answer{"success_metrics_1": answer("50% fewer errors")}
	if got := ClarityScore(withDigits); got != 20 {
		t.Errorf("metrics with digits = %d, want 20", got)
	}

	longNoDigits := map[string]Answer{"success_metrics_1": answer("fewer support tickets than before launch")}
	if got := ClarityScore(longNoDigits); got != 10 {
		t.Errorf("long metrics without digits = %d, want 10", got)
	}
}

func TestClarityScore_PerfectSession(t *testing.T) {
	// One top-tier answer set across all five categories totals 100.
	answers := map[string]Answer{
		"problem_definition_1": answer("Users waste time on manual data entry across 50 branch offices"),
		"target_user_1":        answer("For example back-office clerks at 3 regional banks"),
		"solution_1":           answer("a web form"),
		"solution_2":           answer("an import pipeline"),
		"solution_3":           answer("a review queue"),
		"success_metrics_1":    answer("cut entry time by 70%"),
		"constraints_1":        answer("3 month timeline"),
		"constraints_2":        answer("must run on-prem"),
		"constraints_3":        answer("two engineers"),
	}

	if got := ClarityScore(answers); got != 100 {
		t.Errorf("score = %d, want 100", got)
	}
}

func TestClarityScore_FollowUpCountsTowardParentCategory(t *testing.T) {
	// Follow-up ids keep the parent prefix, so they raise the count-based
	// sub-scores.
	answers := map[string]Answer{
		"solution_1":          answer("a web form"),
		"solution_1_followup": answer("specifically a two-step wizard"),
	}

	if got := ClarityScore(answers); got != 15 {
		t.Errorf("score = %d, want 15 (two solution answers)", got)
	}
}

// --- WeakAreas ---

func TestWeakAreas_AllMissing(t *testing.T) {
	weak := WeakAreas(map[string]Answer{})

	want := []string{
		"Missing: problem_definition",
		"Missing: target_user",
		"Missing: solution",
		"Missing: success_metrics",
		"Missing: constraints",
	}
	if len(weak) != len(want) {
		t.Fatalf("got %d weak areas, want %d: %v", len(weak), len(want), weak)
	}
	for i := range want {
		if weak[i] != want[i] {
			t.Errorf("weak[%d] = %q, want %q", i, weak[i], want[i])
		}
	}
}

func TestWeakAreas_SingleAnswerNeedsDetail(t *testing.T) {
	answers := map[string]Answer{"problem_definition_1": answer("x")}
	weak := WeakAreas(answers)

	if len(weak) != 5 {
		t.Fatalf("got %d weak areas: %v", len(weak), weak)
	}
	if weak[0] != "Needs more detail: problem_definition" {
		t.Errorf("weak[0] = %q", weak[0])
	}
}

func TestWeakAreas_TwoShortAnswersNotListed(t *testing.T) {
	// Characteristic rubric quirk: two answers silence the weakness report
	// even when the numeric sub-score is still below the category cap.
	answers := map[string]Answer{
		"problem_definition_1": answer("a 25-character answer xx"),
		"problem_definition_2": answer("another terse answer"),
	}

	for _, w := range WeakAreas(answers) {
		if w == "Missing: problem_definition" || w == "Needs more detail: problem_definition" {
			t.Errorf("problem_definition listed as weak despite two answers: %q", w)
		}
	}
}

// --- BuildSummary ---

func TestBuildSummary_ConcatenatesPerCategory(t *testing.T) {
	answers := map[string]Answer{
		"problem_definition_1": answer("manual entry"),
		"problem_definition_2": answer("error prone"),
		"target_user_1":        answer("bank clerks"),
		"solution_1":           answer("web form"),
		"success_metrics_1":    answer("70% faster"),
		"constraints_1":        answer("3 months"),
	}

	s := BuildSummary(answers)

	if s.Problem != "manual entry error prone" {
		t.Errorf("Problem = %q", s.Problem)
	}
	if s.TargetUser != "bank clerks" {
		t.Errorf("TargetUser = %q", s.TargetUser)
	}
	if s.Solution != "web form" {
		t.Errorf("Solution = %q", s.Solution)
	}
	if s.SuccessMetrics != "70% faster" {
		t.Errorf("SuccessMetrics = %q", s.SuccessMetrics)
	}
	if s.Constraints != "3 months" {
		t.Errorf("Constraints = %q", s.Constraints)
	}
}

func TestBuildSummary_SkipsFollowUps(t *testing.T) {
	answers := map[string]Answer{
		"solution_1":          answer("web form"),
		"solution_1_followup": answer("clarifying detail"),
	}

	s := BuildSummary(answers)
	if s.Solution != "web form" {
		t.Errorf("Solution = %q, follow-up answers must not appear in the summary", s.Solution)
	}
}
