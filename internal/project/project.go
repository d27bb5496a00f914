// Package project persists the per-project planning record: the defined
// objective, the clarification session that produced it, the task queue,
// and the audit trail. Everything lives in a single JSON file under the
// project's .project_manager directory.
package project

import (
	"github.com/JC67999/best-practice/internal/objective"
	"github.com/JC67999/best-practice/internal/tasks"
)

// Objective is the finalized project objective: the clarification summary
// plus the score it passed with.
type Objective struct {
	Problem        string `json:"problem"`
	TargetUser     string `json:"target_user"`
	Solution       string `json:"solution"`
	SuccessMetrics string `json:"success_metrics"`
	Constraints    string `json:"constraints"`
	ClarityScore   int    `json:"clarity_score"`
	DefinedAt      string `json:"defined_at"`
}

// Decision is a recorded project decision.
type Decision struct {
	Decision  string `json:"decision"`
	Reasoning string `json:"reasoning"`
	Timestamp string `json:"timestamp"`
}

// Audit records a bulk action taken over the task queue.
type Audit struct {
	Timestamp      string `json:"timestamp"`
	Action         string `json:"action"`
	TasksReordered int    `json:"tasks_reordered"`
	HighestScore   int    `json:"highest_score"`
	LowestScore    int    `json:"lowest_score"`
}

// Data is the root record persisted as project_data.json.
type Data struct {
	Objective      *Objective         `json:"objective"`
	Clarification  *objective.Session `json:"objective_clarification"`
	Tasks          []tasks.Task       `json:"tasks"`
	CompletedTasks []tasks.Task       `json:"completed_tasks"`
	Decisions      []Decision         `json:"decisions"`
	Audits         []Audit            `json:"audits"`
}

// NewData returns the zero project record used when no data file exists.
func NewData() *Data {
	return &Data{
		Tasks:          []tasks.Task{},
		CompletedTasks: []tasks.Task{},
		Decisions:      []Decision{},
		Audits:         []Audit{},
	}
}

// DefineObjective promotes a completed clarification summary into the
// project's objective.
func (d *Data) DefineObjective(summary *objective.Summary, score int) *Objective {
	obj := &Objective{
		Problem:        summary.Problem,
		TargetUser:     summary.TargetUser,
		Solution:       summary.Solution,
		SuccessMetrics: summary.SuccessMetrics,
		Constraints:    summary.Constraints,
		ClarityScore:   score,
		DefinedAt:      timeNow().UTC().Format("2006-01-02T15:04:05Z07:00"),
	}
	d.Objective = obj
	return obj
}

// FindTask returns the pending-queue task with the given id, or nil.
func (d *Data) FindTask(id string) *tasks.Task {
	for i := range d.Tasks {
		if d.Tasks[i].ID == id {
			return &d.Tasks[i]
		}
	}
	return nil
}

// CompleteTask marks the task completed and moves it from the queue to the
// completed list. Returns false when the id is not in the queue.
func (d *Data) CompleteTask(id string) (tasks.Task, bool) {
	for i := range d.Tasks {
		if d.Tasks[i].ID != id {
			continue
		}
		t := d.Tasks[i]
		t.Status = tasks.StatusCompleted
		t.CompletedAt = timeNow().UTC().Format("2006-01-02T15:04:05Z07:00")
		d.Tasks = append(d.Tasks[:i], d.Tasks[i+1:]...)
		d.CompletedTasks = append(d.CompletedTasks, t)
		return t, true
	}
	return tasks.Task{}, false
}

// CurrentTask returns the in-progress task, or nil when none is active.
func (d *Data) CurrentTask() *tasks.Task {
	for i := range d.Tasks {
		if d.Tasks[i].Status == tasks.StatusInProgress {
			return &d.Tasks[i]
		}
	}
	return nil
}

// PendingTasks returns the tasks still waiting to start.
func (d *Data) PendingTasks() []tasks.Task {
	var out []tasks.Task
	for _, t := range d.Tasks {
		if t.Status == tasks.StatusPending {
			out = append(out, t)
		}
	}
	return out
}

// Progress reports completed count, total count, and percentage complete.
func (d *Data) Progress() (completed, total int, percent float64) {
	completed = len(d.CompletedTasks)
	total = len(d.Tasks) + completed
	if total > 0 {
		percent = float64(completed) / float64(total) * 100
	}
	return completed, total, percent
}

// RecordAudit appends an audit entry for a bulk task-queue action.
func (d *Data) RecordAudit(action string, reordered, highest, lowest int) {
	d.Audits = append(d.Audits, Audit{
		Timestamp:      timeNow().UTC().Format("2006-01-02T15:04:05Z07:00"),
		Action:         action,
		TasksReordered: reordered,
		HighestScore:   highest,
		LowestScore:    lowest,
	})
}
