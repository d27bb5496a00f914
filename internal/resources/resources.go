// Package resources implements MCP resource handlers for project state.
//
// Resources provide read-only data that the host can consume for context.
// They use URI-based addressing (bpt://...) following MCP conventions.
package resources

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/JC67999/best-practice/internal/project"
	"github.com/mark3labs/mcp-go/mcp"
)

// Handler manages project resource endpoints.
type Handler struct {
	store project.Store
}

// NewHandler creates a resource Handler with its dependencies.
func NewHandler(store project.Store) *Handler {
	return &Handler{store: store}
}

// StatusResource returns the MCP resource definition for project status.
func (h *Handler) StatusResource() mcp.Resource {
	return mcp.NewResource(
		"bpt://project/status",
		"Project Status",
		mcp.WithResourceDescription("Current objective, clarification session, task queue, and audit trail"),
		mcp.WithMIMEType("application/json"),
	)
}

// HandleStatus returns the current project data as JSON.
func (h *Handler) HandleStatus(ctx context.Context, req mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	projectRoot, err := findResourceRoot()
	if err != nil {
		return nil, fmt.Errorf("finding project root: %w", err)
	}

	data, err := h.store.Load(projectRoot)
	if err != nil {
		return errorResource(req.Params.URI, err.Error()), nil
	}

	raw, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshaling status: %w", err)
	}

	return []mcp.ResourceContents{
		mcp.TextResourceContents{
			URI:      req.Params.URI,
			MIMEType: "application/json",
			Text:     string(raw),
		},
	}, nil
}

// errorResource returns a resource with an error message.
func errorResource(uri, message string) []mcp.ResourceContents {
	return []mcp.ResourceContents{
		mcp.TextResourceContents{
			URI:      uri,
			MIMEType: "text/plain",
			Text:     fmt.Sprintf("Error: %s", message),
		},
	}
}
