// Package templates renders the markdown documents the toolkit writes into
// a project, from templates embedded in the binary. PROJECT_PLAN.md has two
// shapes: the initial plan written when the objective is defined, and the
// progress plan rewritten as tasks move through the queue.
package templates

import (
	"embed"
	"fmt"
	"strings"
	"text/template"
)

//go:embed *.md.tmpl
var templateFS embed.FS

// TemplateName identifies an embedded template.
type TemplateName string

const (
	// PlanInitial is the PROJECT_PLAN.md written at objective definition.
	PlanInitial TemplateName = "plan_initial.md.tmpl"
	// PlanProgress is the PROJECT_PLAN.md rewritten on task changes.
	PlanProgress TemplateName = "plan_progress.md.tmpl"
)

// PlanInitialData fills the initial project plan.
type PlanInitialData struct {
	LastUpdated    string
	ClarityScore   int
	Problem        string
	TargetUser     string
	Solution       string
	SuccessMetrics string
	Constraints    string
	AuditDate      string
}

// PlanTask is a task line in the progress plan.
type PlanTask struct {
	Description string
	StartedAt   string
	CompletedAt string
}

// PlanProgressData fills the regenerated project plan.
type PlanProgressData struct {
	LastUpdated     string
	ClarityScore    int
	Problem         string
	TargetUser      string
	Solution        string
	SuccessMetrics  string
	Constraints     string
	CompletedCount  int
	TotalCount      int
	ProgressPercent string // preformatted, one decimal
	CurrentTask     *PlanTask
	PendingTasks    []PlanTask
	CompletedTasks  []PlanTask
}

// Renderer renders embedded templates to markdown.
type Renderer interface {
	Render(name TemplateName, data any) (string, error)
}

// EmbedRenderer implements Renderer over the embedded template set.
type EmbedRenderer struct {
	tmpl *template.Template
}

// NewRenderer parses the embedded templates. Fails only if a template is
// malformed, which is a build defect rather than a runtime condition.
func NewRenderer() (Renderer, error) {
	tmpl, err := template.New("plans").ParseFS(templateFS, "*.md.tmpl")
	if err != nil {
		return nil, fmt.Errorf("parsing embedded templates: %w", err)
	}
	return &EmbedRenderer{tmpl: tmpl}, nil
}

// Render executes the named template with the given data.
func (r *EmbedRenderer) Render(name TemplateName, data any) (string, error) {
	var b strings.Builder
	if err := r.tmpl.ExecuteTemplate(&b, string(name), data); err != nil {
		return "", fmt.Errorf("rendering %s: %w", name, err)
	}
	return b.String(), nil
}
