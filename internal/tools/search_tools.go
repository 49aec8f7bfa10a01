package tools

import (
	"context"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
)

// SearchToolsTool handles the search_tools MCP tool: a local keyword
// search over the registry, so the assistant can discover operations
// without scanning the full listing.
type SearchToolsTool struct {
	registry *Registry
}

// NewSearchToolsTool creates a SearchToolsTool over the given registry.
func NewSearchToolsTool(registry *Registry) *SearchToolsTool {
	return &SearchToolsTool{registry: registry}
}

// Definition returns the MCP tool definition for registration.
func (t *SearchToolsTool) Definition() mcp.Tool {
	return mcp.NewTool("search_tools",
		mcp.WithDescription(
			"Search the available Vitally tools by keyword. Matches the keyword "+
				"against tool names and descriptions, case-insensitively.",
		),
		mcp.WithString("keyword",
			mcp.Required(),
			mcp.Description("Keyword to search for, e.g. 'account', 'note', 'health'"),
		),
	)
}

// Handle processes the search_tools call.
func (t *SearchToolsTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	keyword := strings.TrimSpace(req.GetString("keyword", ""))
	if keyword == "" {
		return mcp.NewToolResultError("'keyword' is required — provide a non-empty search term"), nil
	}

	matches := t.registry.Search(keyword)
	if len(matches) == 0 {
		return mcp.NewToolResultText(fmt.Sprintf(
			"No tools matched %q. Try a broader keyword like 'account' or 'note'.", keyword,
		)), nil
	}

	return jsonResult(struct {
		Tools []ToolDescriptor `json:"tools"`
		Count int              `json:"count"`
	}{Tools: matches, Count: len(matches)})
}
