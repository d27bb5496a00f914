// Package objective implements the objective clarification engine.
//
// A clarification session is a scripted interrogation that walks a project
// owner through five fixed question categories, challenges vague answers
// with follow-up questions, and scores the collected answers for clarity.
// A project objective can only be finalized once the clarity score reaches
// the threshold.
//
// The package follows the same design principles as the task pipeline:
// - SRP: questions, vagueness detection, scoring, and session state in separate files
// - Pure functions over session state; persistence belongs to the caller
package objective

import "fmt"

// --- Category enum ---

// Category is one of the five fixed question topics, plus the follow_up
// pseudo-category used for clarifying questions.
type Category string

const (
	CategoryProblem     Category = "problem_definition"
	CategoryTargetUser  Category = "target_user"
	CategorySolution    Category = "solution"
	CategoryMetrics     Category = "success_metrics"
	CategoryConstraints Category = "constraints"
	CategoryFollowUp    Category = "follow_up"
)

// CategoryOrder is the required traversal order for the sequencer.
// Follow-up is not a real category and never appears here.
var CategoryOrder = []Category{
	CategoryProblem,
	CategoryTargetUser,
	CategorySolution,
	CategoryMetrics,
	CategoryConstraints,
}

// --- Session status enum ---

// Status tracks the lifecycle of a clarification session.
type Status string

const (
	StatusNotStarted       Status = "not_started"
	StatusInProgress       Status = "in_progress"
	StatusNeedsImprovement Status = "needs_improvement"
	StatusCompleted        Status = "completed"
)

// --- Core data structures ---

// Question is a single question posed during clarification.
// Immutable once created, except for the Answered flag.
type Question struct {
	ID       string   `json:"id"`
	Category Category `json:"category"`
	Text     string   `json:"question_text"`
	Answered bool     `json:"answered"`
	Parent   string   `json:"parent_question,omitempty"` // set only on follow-ups
}

// Answer records a free-text answer to one question.
type Answer struct {
	Text      string `json:"answer_text"`
	Timestamp string `json:"timestamp"` // RFC3339
}

// Session is one clarification dialogue for a project.
// Persisted inside the project data file; mutated on every answer submission.
type Session struct {
	Status             Status            `json:"status"`
	InitialDescription string            `json:"initial_description"`
	StartedAt          string            `json:"started_at,omitempty"`
	CompletedAt        string            `json:"completed_at,omitempty"`
	Questions          []Question        `json:"questions"`
	Answers            map[string]Answer `json:"answers"`
	CurrentQuestionID  string            `json:"current_question_id,omitempty"`
}

// Summary is the finalized objective derived from a session's answers:
// all non-follow-up answers concatenated per category.
type Summary struct {
	Problem        string `json:"problem"`
	TargetUser     string `json:"target_user"`
	Solution       string `json:"solution"`
	SuccessMetrics string `json:"success_metrics"`
	Constraints    string `json:"constraints"`
}

// --- Errors ---

// UnknownQuestionError reports an answer submitted for a question id that
// is not part of the session. Silently accepting it would corrupt the
// answer mapping's category-prefix invariant, so it must surface.
type UnknownQuestionError struct {
	ID string
}

func (e *UnknownQuestionError) Error() string {
	return fmt.Sprintf("question %q not found in clarification session", e.ID)
}

// NotClearEnoughError reports a finalize attempt below the clarity threshold.
// Recoverable: the caller re-enters the clarification loop.
type NotClearEnoughError struct {
	Score int
}

func (e *NotClearEnoughError) Error() string {
	return fmt.Sprintf("objective not clear enough (score: %d/100, need >=%d)", e.Score, ClarityThreshold)
}
