// Package memtools implements the MCP tool handlers for the cross-project
// memory: session summaries, decisions, objectives, and search.
//
// Every tool takes the project path as its key; the memory store derives a
// stable project id from it. Tools degrade gracefully — the server runs
// without them when the memory store cannot be opened.
package memtools

import (
	"encoding/json"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
)

// jsonResult marshals a tool response as indented JSON text.
func jsonResult(v any) (*mcp.CallToolResult, error) {
	raw, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encoding result: %w", err)
	}
	return mcp.NewToolResultText(string(raw)), nil
}

// stringList extracts an array-of-strings argument. Missing or malformed
// values yield an empty list; lists are optional on every tool that takes one.
func stringList(req mcp.CallToolRequest, key string) []string {
	raw, ok := req.GetArguments()[key]
	if !ok {
		return nil
	}
	items, ok := raw.([]any)
	if !ok {
		return nil
	}
	out := make([]string, 0, len(items))
	for _, item := range items {
		if s, ok := item.(string); ok {
			out = append(out, s)
		}
	}
	return out
}
