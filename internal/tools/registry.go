// Package tools implements the MCP tool handlers for the Vitally API.
//
// Each tool follows the same pattern:
// - A struct holding its dependencies (vitally.Transport, *cache.AccountCache)
//   injected via constructor
// - Definition() returns the mcp.Tool schema
// - Handle() validates arguments, performs exactly one data access
//   (cache read, API call, or local filter), reshapes the result into a
//   bounded projection, and returns it as indented JSON text
//
// Validation failures name the missing field and never reach the
// transport. Tools depend on the Transport interface only — they cannot
// tell the live client from the demo responder.
package tools

import (
	"context"
	"strings"

	"github.com/cs-tools/vitally-mcp/internal/cache"
	"github.com/cs-tools/vitally-mcp/internal/vitally"
	"github.com/mark3labs/mcp-go/mcp"
)

// Tool is one callable operation: its MCP schema plus its handler.
type Tool interface {
	Definition() mcp.Tool
	Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error)
}

// ToolDescriptor is the searchable view of a registered tool.
type ToolDescriptor struct {
	Name               string   `json:"name"`
	Description        string   `json:"description"`
	RequiredParameters []string `json:"requiredParameters,omitempty"`
}

// Registry is the static catalog of every tool this server exposes.
// Server registration and search_tools both consume the same registry,
// so the protocol listing and the keyword search can never diverge.
type Registry struct {
	tools       []Tool
	descriptors []ToolDescriptor
}

// NewRegistry builds the full catalog. Declaration order here is the
// order search results are returned in.
func NewRegistry(api vitally.Transport, accounts *cache.AccountCache) *Registry {
	r := &Registry{}
	r.tools = []Tool{
		NewSearchToolsTool(r),
		NewSearchUsersTool(api),
		NewSearchAccountsTool(api, accounts),
		NewFindAccountByNameTool(api, accounts),
		NewRefreshAccountsTool(api, accounts),
		NewAccountDetailsTool(api),
		NewAccountHealthTool(api),
		NewAccountConversationsTool(api),
		NewAccountTasksTool(api),
		NewAccountNotesTool(api),
		NewAccountNPSTool(api),
		NewAccountProjectsTool(api),
		NewNoteByIDTool(api),
		NewCreateAccountNoteTool(api),
		NewListCustomTraitsTool(api),
		NewUpdateAccountTraitsTool(api),
	}

	r.descriptors = make([]ToolDescriptor, 0, len(r.tools))
	for _, t := range r.tools {
		def := t.Definition()
		r.descriptors = append(r.descriptors, ToolDescriptor{
			Name:               def.Name,
			Description:        def.Description,
			RequiredParameters: def.InputSchema.Required,
		})
	}
	return r
}

// All returns the tools in declaration order for server registration.
func (r *Registry) All() []Tool {
	return r.tools
}

// Search returns descriptors whose name or description contains the
// keyword, case-insensitively, in declaration order.
func (r *Registry) Search(keyword string) []ToolDescriptor {
	needle := strings.ToLower(keyword)
	var out []ToolDescriptor
	for _, d := range r.descriptors {
		if strings.Contains(strings.ToLower(d.Name), needle) ||
			strings.Contains(strings.ToLower(d.Description), needle) {
			out = append(out, d)
		}
	}
	return out
}
