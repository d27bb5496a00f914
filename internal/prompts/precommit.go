package prompts

import (
	"context"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
)

// PreCommitPrompt handles the pre-commit-check MCP prompt.
type PreCommitPrompt struct{}

// NewPreCommitPrompt creates a PreCommitPrompt.
func NewPreCommitPrompt() *PreCommitPrompt {
	return &PreCommitPrompt{}
}

// Definition returns the MCP prompt definition for registration.
func (p *PreCommitPrompt) Definition() mcp.Prompt {
	return mcp.NewPrompt("pre-commit-check",
		mcp.WithPromptDescription(
			"Run all pre-commit quality checks before committing.",
		),
		mcp.WithArgument("project_path",
			mcp.RequiredArgument(),
			mcp.ArgumentDescription("Absolute path to the project directory"),
		),
		mcp.WithArgument("changed_files",
			mcp.ArgumentDescription("Comma-separated list of changed files"),
		),
	)
}

// Handle processes the pre-commit-check prompt request.
func (p *PreCommitPrompt) Handle(ctx context.Context, req mcp.GetPromptRequest) (*mcp.GetPromptResult, error) {
	projectPath := argument(req, "project_path")
	if projectPath == "" {
		return nil, fmt.Errorf("project_path is required")
	}
	changed := splitFileList(argument(req, "changed_files"))

	var fileList strings.Builder
	for _, f := range changed {
		fmt.Fprintf(&fileList, "- %s\n", f)
	}

	text := fmt.Sprintf(`You are running pre-commit quality checks before committing code.

**Project**: %s
**Changed Files** (%d):
%s
## Pre-Commit Quality Gate

### Step 1: Build and Test
Run the project's build and test suite. If anything fails, STOP and fix
it before proceeding.

### Step 2: Manual Validation
- Changelog has an entry describing WHAT changed and WHY
- New functions have doc comments; complex logic is explained
- New features have tests; bug fixes have regression tests
- No API keys, passwords, or credentials in the diff
- No debugging code left in

### Step 3: Record Completion
When the checks pass and the work maps to a tracked task, call
mark_task_complete with quality_gate_passed=true. Never set it to true
when any check failed.

### Output Format
One line per check with a pass/fail mark, then a verdict:
**APPROVED** (ready to commit) or **BLOCKED** (fix issues first).

**Run the pre-commit checks now.**`, projectPath, len(changed), fileList.String())

	return &mcp.GetPromptResult{
		Description: "Pre-commit quality checks",
		Messages: []mcp.PromptMessage{
			{
				Role:    mcp.RoleUser,
				Content: mcp.NewTextContent(text),
			},
		},
	}, nil
}
