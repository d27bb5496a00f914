package objective

// --- Session state machine ---
//
// not_started -> in_progress on the first clarification call, then a loop of
// answer submissions. When the sequencer runs dry the scorer decides between
// completed (score >= threshold) and needs_improvement. Both states keep
// accepting answers; terminal completion happens through Finalize, which
// re-verifies the score at that moment.

// NewSession starts a fresh clarification session with the fixed first
// question already posed.
func NewSession(initialDescription string) *Session {
	first := FirstQuestion()
	return &Session{
		Status:             StatusInProgress,
		InitialDescription: initialDescription,
		StartedAt:          timeNow().UTC().Format("2006-01-02T15:04:05Z07:00"),
		Questions:          []Question{first},
		Answers:            make(map[string]Answer),
		CurrentQuestionID:  first.ID,
	}
}

// OutcomeStatus tags the result of an answer submission. A closed set —
// callers dispatch exhaustively on it.
type OutcomeStatus string

const (
	OutcomeNeedsClarification OutcomeStatus = "needs_clarification"
	OutcomeContinue           OutcomeStatus = "continue"
	OutcomeCompleted          OutcomeStatus = "completed"
	OutcomeNeedsImprovement   OutcomeStatus = "needs_improvement"
)

// Outcome is the result of one answer submission.
type Outcome struct {
	Status       OutcomeStatus
	NextQuestion *Question // follow-up or next sequenced question; nil otherwise
	ClarityScore int       // set for completed and needs_improvement
	WeakAreas    []string  // set for needs_improvement
	Summary      *Summary  // set for completed
}

// Submit records an answer and runs the clarification control flow:
// vagueness detection first, then the sequencer, then scoring once the
// sequencer is exhausted. Re-submitting a question id overwrites the
// previous answer. An id not present in the session is an error.
func (s *Session) Submit(questionID, answerText string) (*Outcome, error) {
	q := s.findQuestion(questionID)
	if q == nil {
		return nil, &UnknownQuestionError{ID: questionID}
	}

	now := timeNow().UTC().Format("2006-01-02T15:04:05Z07:00")
	s.Answers[questionID] = Answer{Text: answerText, Timestamp: now}
	q.Answered = true

	if vague, followUp := DetectVague(answerText, questionID); vague {
		fq := Question{
			ID:       FollowUpID(questionID),
			Category: CategoryFollowUp,
			Text:     followUp,
			Parent:   questionID,
		}
		s.Questions = append(s.Questions, fq)
		s.CurrentQuestionID = fq.ID
		return &Outcome{Status: OutcomeNeedsClarification, NextQuestion: &fq}, nil
	}

	if next := NextQuestion(s); next != nil {
		s.Questions = append(s.Questions, *next)
		s.CurrentQuestionID = next.ID
		return &Outcome{Status: OutcomeContinue, NextQuestion: next}, nil
	}

	// All categories covered — score the session.
	score := ClarityScore(s.Answers)
	if score >= ClarityThreshold {
		s.Status = StatusCompleted
		s.CompletedAt = now
		summary := BuildSummary(s.Answers)
		return &Outcome{Status: OutcomeCompleted, ClarityScore: score, Summary: &summary}, nil
	}

	s.Status = StatusNeedsImprovement
	return &Outcome{
		Status:       OutcomeNeedsImprovement,
		ClarityScore: score,
		WeakAreas:    WeakAreas(s.Answers),
	}, nil
}

// Finalize re-verifies the clarity score and, when it passes, produces the
// objective summary. The score is recomputed from the answers — never
// cached — so edits between the last submission and finalization are
// re-validated.
func (s *Session) Finalize() (*Summary, int, error) {
	score := ClarityScore(s.Answers)
	if score < ClarityThreshold {
		return nil, score, &NotClearEnoughError{Score: score}
	}
	summary := BuildSummary(s.Answers)
	return &summary, score, nil
}

// findQuestion returns a pointer to the session's question with the given
// id, or nil.
func (s *Session) findQuestion(id string) *Question {
	for i := range s.Questions {
		if s.Questions[i].ID == id {
			return &s.Questions[i]
		}
	}
	return nil
}
