// Package tasks holds the task model and the objective-alignment heuristics:
// keyword-overlap scoring against the defined objective, size validation for
// keeping tasks small, and priority ranking.
//
// Scoring is deliberately mechanical. The tools that use it surface the
// numbers and recommendations; judgment stays with the caller.
package tasks

import (
	"fmt"
	"sort"
	"strings"
)

// --- Task status enum ---

// Status tracks a task's lifecycle.
type Status string

const (
	StatusPending    Status = "pending"
	StatusInProgress Status = "in_progress"
	StatusCompleted  Status = "completed"
)

// Task is a single unit of work tracked against the project objective.
type Task struct {
	ID          string `json:"id"`
	Description string `json:"description"`
	Status      Status `json:"status"`
	CreatedAt   string `json:"created_at"`
	StartedAt   string `json:"started_at,omitempty"`
	CompletedAt string `json:"completed_at,omitempty"`
}

// --- Alignment scoring ---

const (
	// AlignmentThreshold is the minimum score for a task to count as
	// serving the objective.
	AlignmentThreshold = 70
	// CutThreshold marks tasks so misaligned they should be cut rather
	// than deferred.
	CutThreshold = 50

	baseScore        = 50
	problemMatchCap  = 30
	solutionMatchCap = 20
	perMatch         = 10
	minKeywordLen    = 4 // keywords must be longer than this
)

// AlignmentScore rates how well a task description serves the objective,
// 0-100. Starts from a base of 50 and adds credit for keyword overlap with
// the objective's problem statement (up to 30) and solution statement
// (up to 20). Keywords shorter than 5 characters are ignored as noise.
func AlignmentScore(taskDescription, problem, solution string) int {
	score := baseScore
	taskLower := strings.ToLower(taskDescription)

	score += keywordCredit(taskLower, problem, problemMatchCap)
	score += keywordCredit(taskLower, solution, solutionMatchCap)

	if score > 100 {
		score = 100
	}
	return score
}

// keywordCredit counts objective keywords appearing in the task text and
// converts matches into capped score credit.
func keywordCredit(taskLower, objectiveText string, limit int) int {
	matches := 0
	for _, word := range strings.Fields(strings.ToLower(objectiveText)) {
		if len(word) > minKeywordLen && strings.Contains(taskLower, word) {
			matches++
		}
	}
	credit := matches * perMatch
	if credit > limit {
		credit = limit
	}
	return credit
}

// --- Size validation ---

const (
	maxDescriptionLen = 200
	maxConnectorWords = 2 // three or more flags a compound task
	maxFileMentions   = 2
)

// connectorWords signal a task bundling multiple actions.
var connectorWords = []string{"and", "then", "after", "also", "plus"}

// SizeReport is the result of validating a task's size.
type SizeReport struct {
	OK             bool     `json:"ok"`
	Size           string   `json:"size"` // appropriate | too_large
	Issues         []string `json:"issues,omitempty"`
	Recommendation string   `json:"recommendation,omitempty"`
}

// ValidateSize checks whether a task description is small enough to execute
// as a single unit. Three independent checks: raw length, connector-word
// count, and file or path mentions.
func ValidateSize(description string) SizeReport {
	var issues []string

	if len(description) > maxDescriptionLen {
		issues = append(issues, "Task description is very long (>200 chars). Consider breaking down.")
	}

	lower := strings.ToLower(description)
	count := 0
	for _, word := range connectorWords {
		if strings.Contains(lower, word) {
			count++
		}
	}
	if count > maxConnectorWords {
		issues = append(issues, fmt.Sprintf("Task contains %d connecting words (and, then, etc). Break into separate tasks.", count))
	}

	if strings.Count(description, "/") > maxFileMentions || strings.Count(description, ".go") > maxFileMentions {
		issues = append(issues, "Task mentions multiple files. Consider separate tasks per file.")
	}

	if len(issues) > 0 {
		return SizeReport{
			OK:             false,
			Size:           "too_large",
			Issues:         issues,
			Recommendation: "Break down into smaller, focused tasks",
		}
	}
	return SizeReport{OK: true, Size: "appropriate"}
}

// --- Priority ranking ---

// ScoredTask pairs a task with its alignment score.
type ScoredTask struct {
	Task  Task `json:"task"`
	Score int  `json:"alignment_score"`
}

// RankByAlignment scores every task against the objective and returns them
// highest-score first. The sort is stable so equally scored tasks keep
// their original order.
func RankByAlignment(list []Task, problem, solution string) []ScoredTask {
	scored := make([]ScoredTask, 0, len(list))
	for _, t := range list {
		scored = append(scored, ScoredTask{
			Task:  t,
			Score: AlignmentScore(t.Description, problem, solution),
		})
	}
	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].Score > scored[j].Score
	})
	return scored
}

// MisalignedTask tags a task scoring below the alignment threshold with a
// cut-or-defer recommendation.
type MisalignedTask struct {
	TaskID         string `json:"task_id"`
	Description    string `json:"description"`
	AlignmentScore int    `json:"alignment_score"`
	Recommendation string `json:"recommendation"` // cut | defer
}

// FindMisaligned scans tasks for ones that do not serve the objective.
// Scores below the cut threshold recommend cutting; below the alignment
// threshold, deferring.
func FindMisaligned(list []Task, problem, solution string) []MisalignedTask {
	var out []MisalignedTask
	for _, t := range list {
		score := AlignmentScore(t.Description, problem, solution)
		if score >= AlignmentThreshold {
			continue
		}
		rec := "defer"
		if score < CutThreshold {
			rec = "cut"
		}
		out = append(out, MisalignedTask{
			TaskID:         t.ID,
			Description:    t.Description,
			AlignmentScore: score,
			Recommendation: rec,
		})
	}
	return out
}
