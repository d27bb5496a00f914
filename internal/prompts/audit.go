package prompts

import (
	"context"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
)

// SecurityAuditPrompt handles the security-audit MCP prompt.
type SecurityAuditPrompt struct{}

// NewSecurityAuditPrompt creates a SecurityAuditPrompt.
func NewSecurityAuditPrompt() *SecurityAuditPrompt {
	return &SecurityAuditPrompt{}
}

// Definition returns the MCP prompt definition for registration.
func (p *SecurityAuditPrompt) Definition() mcp.Prompt {
	return mcp.NewPrompt("security-audit",
		mcp.WithPromptDescription(
			"Security-focused code audit for vulnerabilities.",
		),
		mcp.WithArgument("project_path",
			mcp.RequiredArgument(),
			mcp.ArgumentDescription("Absolute path to the project directory"),
		),
	)
}

// Handle processes the security-audit prompt request.
func (p *SecurityAuditPrompt) Handle(ctx context.Context, req mcp.GetPromptRequest) (*mcp.GetPromptResult, error) {
	projectPath := argument(req, "project_path")
	if projectPath == "" {
		return nil, fmt.Errorf("project_path is required")
	}

	text := fmt.Sprintf(`You are conducting a security audit for the project at: %s

## Security Audit Framework

### 1. Injection
- SQL built by string concatenation instead of placeholders
- Shell commands assembled from user input
- Path traversal through unvalidated file paths

### 2. Secrets
- Hardcoded API keys, passwords, or tokens
- Credentials in config files committed to the repository
- Secrets written to logs

### 3. Input Validation
- External input parsed without size or format limits
- Deserialization of untrusted data
- Missing bounds checks on indices and slices

### 4. Authentication & Authorization
- Endpoints or operations missing permission checks
- Tokens or sessions that never expire
- Sensitive operations without audit logging

### 5. Data Protection
- Sensitive data stored or transmitted unencrypted
- World-readable file permissions on private data
- Temporary files with sensitive content left behind

### Output Format
For each finding: severity [CRITICAL/HIGH/MEDIUM/LOW], file and line,
description, and a concrete remediation. Finish with a prioritized
remediation list.

**Begin the security audit now.**`, projectPath)

	return &mcp.GetPromptResult{
		Description: fmt.Sprintf("Security audit for: %s", projectPath),
		Messages: []mcp.PromptMessage{
			{
				Role:    mcp.RoleUser,
				Content: mcp.NewTextContent(text),
			},
		},
	}, nil
}
