// Package prompts implements MCP prompt handlers for quality workflows.
//
// MCP prompts are user-triggered workflows (like slash commands) that
// instruct the AI to execute a specific sequence. Unlike tools (which
// the AI calls), prompts are initiated by the user.
package prompts

import (
	"context"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
)

// CodeReviewPrompt handles the code-review MCP prompt.
// It walks the AI through a systematic review of the given files.
type CodeReviewPrompt struct{}

// NewCodeReviewPrompt creates a CodeReviewPrompt.
func NewCodeReviewPrompt() *CodeReviewPrompt {
	return &CodeReviewPrompt{}
}

// Definition returns the MCP prompt definition for registration.
func (p *CodeReviewPrompt) Definition() mcp.Prompt {
	return mcp.NewPrompt("code-review",
		mcp.WithPromptDescription(
			"Systematic code review for quality, security, and best practices.",
		),
		mcp.WithArgument("file_paths",
			mcp.RequiredArgument(),
			mcp.ArgumentDescription("Comma-separated list of files to review"),
		),
		mcp.WithArgument("project_path",
			mcp.ArgumentDescription("Absolute path to the project directory"),
		),
	)
}

// Handle processes the code-review prompt request.
func (p *CodeReviewPrompt) Handle(ctx context.Context, req mcp.GetPromptRequest) (*mcp.GetPromptResult, error) {
	files := splitFileList(argument(req, "file_paths"))
	if len(files) == 0 {
		return nil, fmt.Errorf("file_paths is required")
	}

	var fileList strings.Builder
	for _, f := range files {
		fmt.Fprintf(&fileList, "- %s\n", f)
	}

	text := fmt.Sprintf(`You are conducting a systematic code review for files:
%s
## Code Review Framework

### 1. Structure & Organization
- Clear package/type/function organization
- Appropriate file size; logical grouping of related code
- No duplicate code

### 2. Naming & Readability
- Descriptive names, consistent conventions
- No magic numbers or strings
- Clear intent without needing comments

### 3. Documentation
- Exported identifiers have doc comments
- Complex logic has explanatory comments

### 4. Error Handling
- Every error return is checked
- Errors are wrapped with context, not swallowed
- User-facing messages are actionable

### 5. Security
- No injection vulnerabilities (SQL, command, path)
- Proper input validation
- No hardcoded secrets

### 6. Testing
- Unit tests exist for new behavior
- Edge cases and error paths are tested

### Output Format

For each file: assessment per section, then a numbered list of issues
tagged [CRITICAL/WARNING/INFO] with line references and a recommended fix.
Finish with an overall verdict: APPROVED, NEEDS WORK, or BLOCKED.

**Now begin the code review.**`, fileList.String())

	return &mcp.GetPromptResult{
		Description: fmt.Sprintf("Code review for: %s", strings.Join(files, ", ")),
		Messages: []mcp.PromptMessage{
			{
				Role:    mcp.RoleUser,
				Content: mcp.NewTextContent(text),
			},
		},
	}, nil
}

// argument extracts a prompt argument, empty when absent.
func argument(req mcp.GetPromptRequest, name string) string {
	if req.Params.Arguments == nil {
		return ""
	}
	return req.Params.Arguments[name]
}

// splitFileList parses a comma-separated file list, dropping blanks.
func splitFileList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
