// Package server wires all MCP components and creates the server instance.
//
// This is the composition root (DIP): it creates concrete implementations
// and injects them into the tools/prompts/resources that depend on
// abstractions. No business logic lives here — only wiring.
package server

import (
	"fmt"
	"log"

	"github.com/JC67999/best-practice/internal/memory"
	"github.com/JC67999/best-practice/internal/memtools"
	"github.com/JC67999/best-practice/internal/project"
	"github.com/JC67999/best-practice/internal/prompts"
	"github.com/JC67999/best-practice/internal/resources"
	"github.com/JC67999/best-practice/internal/templates"
	"github.com/JC67999/best-practice/internal/tools"
	"github.com/mark3labs/mcp-go/server"
)

// Version is set at build time via ldflags.
var Version = "dev"

// New creates and configures the MCP server with all tools, prompts,
// and resources registered. This is the single place where all
// dependencies are resolved.
//
// The returned cleanup function closes the memory store's database
// connection and must be called on shutdown (typically via defer).
// It is always non-nil and safe to call even if memory init failed.
func New() (*server.MCPServer, func(), error) {
	// --- Create shared dependencies ---

	store := project.NewFileStore()

	renderer, err := templates.NewRenderer()
	if err != nil {
		return nil, noop, fmt.Errorf("creating template renderer: %w", err)
	}

	// --- Create the MCP server ---

	s := server.NewMCPServer(
		"best-practice",
		Version,
		server.WithToolCapabilities(true),
		server.WithResourceCapabilities(false, true),
		server.WithPromptCapabilities(true),
		server.WithRecovery(),
		server.WithInstructions(serverInstructions()),
	)

	// --- Register objective clarification tools ---

	clarifyTool := tools.NewClarifyObjectiveTool(store)
	s.AddTool(clarifyTool.Definition(), clarifyTool.Handle)

	answerTool := tools.NewAnswerQuestionTool(store)
	s.AddTool(answerTool.Definition(), answerTool.Handle)

	scoreTool := tools.NewScoreClarityTool(store)
	s.AddTool(scoreTool.Definition(), scoreTool.Handle)

	defineTool := tools.NewDefineObjectiveTool(store, renderer)
	s.AddTool(defineTool.Definition(), defineTool.Handle)

	// --- Register task discipline tools ---

	breakdownTool := tools.NewCreateTaskBreakdownTool(store, renderer)
	s.AddTool(breakdownTool.Definition(), breakdownTool.Handle)

	alignTool := tools.NewValidateAlignmentTool(store)
	s.AddTool(alignTool.Definition(), alignTool.Handle)

	priorityTool := tools.NewChallengePriorityTool(store)
	s.AddTool(priorityTool.Definition(), priorityTool.Handle)

	sizeTool := tools.NewValidateSizeTool()
	s.AddTool(sizeTool.Definition(), sizeTool.Handle)

	completeTool := tools.NewMarkTaskCompleteTool(store, renderer)
	s.AddTool(completeTool.Definition(), completeTool.Handle)

	statusTool := tools.NewGetStatusTool(store)
	s.AddTool(statusTool.Definition(), statusTool.Handle)

	scopeCreepTool := tools.NewIdentifyScopeCreepTool(store)
	s.AddTool(scopeCreepTool.Definition(), scopeCreepTool.Handle)

	refocusTool := tools.NewRefocusTool(store)
	s.AddTool(refocusTool.Definition(), refocusTool.Handle)

	// --- Register memory tools ---
	//
	// Memory is an independent subsystem: if it fails to initialize,
	// the project tools continue working. We log a warning and skip
	// memory tool registration — the server is still fully functional
	// for objective clarification and task discipline.

	cleanup := noop
	memStore, memErr := memory.New(memory.DefaultConfig())
	if memErr != nil {
		log.Printf("WARNING: memory subsystem disabled: %v", memErr)
	} else {
		cleanup = func() {
			if err := memStore.Close(); err != nil {
				log.Printf("WARNING: memory store close: %v", err)
			}
		}
		registerMemoryTools(s, memStore)
	}

	// --- Register prompts ---

	reviewPrompt := prompts.NewCodeReviewPrompt()
	s.AddPrompt(reviewPrompt.Definition(), reviewPrompt.Handle)

	preCommitPrompt := prompts.NewPreCommitPrompt()
	s.AddPrompt(preCommitPrompt.Definition(), preCommitPrompt.Handle)

	auditPrompt := prompts.NewSecurityAuditPrompt()
	s.AddPrompt(auditPrompt.Definition(), auditPrompt.Handle)

	// --- Register resources ---

	resourceHandler := resources.NewHandler(store)
	s.AddResource(resourceHandler.StatusResource(), resourceHandler.HandleStatus)

	return s, cleanup, nil
}

// noop is a no-op cleanup function used as the default when memory
// is disabled or hasn't been initialized.
func noop() {}

// registerMemoryTools registers the 7 cross-project memory MCP tools.
func registerMemoryTools(s *server.MCPServer, ms *memory.Store) {
	sessionTool := memtools.NewSaveSessionSummaryTool(ms)
	s.AddTool(sessionTool.Definition(), sessionTool.Handle)

	decisionTool := memtools.NewSaveDecisionTool(ms)
	s.AddTool(decisionTool.Definition(), decisionTool.Handle)

	contextTool := memtools.NewLoadContextTool(ms)
	s.AddTool(contextTool.Definition(), contextTool.Handle)

	searchTool := memtools.NewSearchTool(ms)
	s.AddTool(searchTool.Definition(), searchTool.Handle)

	listTool := memtools.NewListProjectsTool(ms)
	s.AddTool(listTool.Definition(), listTool.Handle)

	saveObjTool := memtools.NewSaveObjectiveTool(ms)
	s.AddTool(saveObjTool.Definition(), saveObjTool.Handle)

	loadObjTool := memtools.NewLoadObjectiveTool(ms)
	s.AddTool(loadObjTool.Definition(), loadObjTool.Handle)
}

// serverInstructions returns the system instructions that tell the AI
// how to use the toolkit effectively.
func serverInstructions() string {
	return `You have access to Best Practice, an MCP server that enforces
objective-first development discipline.

## WHEN TO ACTIVATE

You MUST proactively suggest the objective clarification gate when the user:
- Asks to build a new project, app, or system
- Describes a vague idea and wants to start coding
- Says things like "I want to build...", "let's create...", "help me make..."

When you detect any of these, say something like:
"Before we write any code, let's define a clear objective. Vague goals are
the #1 cause of wasted work. Should I start the clarification questions?"

You do NOT need the gate for bug fixes, small patches, questions, or
documentation.

## The Objective Clarification Gate

The gate walks the user through five question categories, one question at
a time: problem definition, target user, solution, success metrics, and
constraints. Vague answers ("people", "users", "better") get exactly one
follow-up question. When every category is answered, the session is scored
0-100; a score of 80 or higher is required to define the objective.

Workflow:
1. clarify_project_objective with the user's rough description
2. answer_objective_question for each question — relay the user's words,
   do not invent specifics for them
3. score_objective_clarity any time to see where the session stands
4. define_project_objective once the score passes — this stores the
   objective and generates docs/notes/PROJECT_PLAN.md

## Task Discipline

After the objective is defined:
- create_task_breakdown seeds the task queue
- validate_task_alignment BEFORE starting any task — below 70 it is blocked
- challenge_task_priority before picking a task — work highest impact first
- validate_task_size — break up compound tasks (3+ connecting words)
- mark_task_complete ONLY with quality_gate_passed=true after tests pass
- identify_scope_creep and refocus_on_objective when the queue drifts

## Persistent Memory

Cross-project memory survives between conversations:
- mem_load_context at the start of a session to recover where you were
- mem_save_session_summary at the end of a session (summary, decisions,
  next steps, blockers)
- mem_save_decision whenever an architectural decision is made
- mem_search when encountering familiar problems — prior projects may
  have answered them
- mem_save_objective / mem_load_objective mirror the project objective
  into memory so other projects can find it

## Important Rules
- NEVER skip the clarification gate for new projects
- NEVER mark a task complete when the quality gate failed
- Be specific — "users" is not a valid target audience
- One task at a time; finish or consciously defer before starting another`
}
