package tools

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/cs-tools/vitally-mcp/internal/vitally"
	"github.com/mark3labs/mcp-go/mcp"
)

// ListCustomTraitsTool handles the list_custom_traits tool: the
// custom-field definitions declared for one object kind.
type ListCustomTraitsTool struct {
	api vitally.Transport
}

// NewListCustomTraitsTool creates a ListCustomTraitsTool.
func NewListCustomTraitsTool(api vitally.Transport) *ListCustomTraitsTool {
	return &ListCustomTraitsTool{api: api}
}

// Definition returns the MCP tool definition for registration.
func (t *ListCustomTraitsTool) Definition() mcp.Tool {
	return mcp.NewTool("list_custom_traits",
		mcp.WithDescription(
			"List the custom trait definitions (label, type, key) declared in "+
				"Vitally for one object kind.",
		),
		mcp.WithString("model",
			mcp.Required(),
			mcp.Enum(vitally.ObjectKinds()...),
			mcp.Description("Object kind: account, user, note, task, project, or organization"),
		),
	)
}

// Handle processes the list_custom_traits call.
func (t *ListCustomTraitsTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	model := req.GetString("model", "")
	if model == "" {
		return mcp.NewToolResultError("'model' is required"), nil
	}
	if !vitally.ValidObjectKind(model) {
		return mcp.NewToolResultError(fmt.Sprintf(
			"invalid 'model' %q: must be one of %s", model, strings.Join(vitally.ObjectKinds(), ", "),
		)), nil
	}

	var page vitally.Page[vitally.CustomFieldDefinition]
	endpoint := "customFields?objectType=" + url.QueryEscape(model)
	if err := callAndDecode(ctx, t.api, endpoint, vitally.MethodGet, nil, &page); err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("listing custom traits for %s: %v", model, err)), nil
	}

	return jsonResult(struct {
		Model  string                          `json:"model"`
		Count  int                             `json:"count"`
		Fields []vitally.CustomFieldDefinition `json:"fields"`
	}{Model: model, Count: len(page.Results), Fields: page.Results})
}

// UpdateAccountTraitsTool handles the update_account_traits tool. The
// upstream merges the given traits into the account; the local cache is
// deliberately left stale until the next refresh.
type UpdateAccountTraitsTool struct {
	api vitally.Transport
}

// NewUpdateAccountTraitsTool creates an UpdateAccountTraitsTool.
func NewUpdateAccountTraitsTool(api vitally.Transport) *UpdateAccountTraitsTool {
	return &UpdateAccountTraitsTool{api: api}
}

// Definition returns the MCP tool definition for registration.
func (t *UpdateAccountTraitsTool) Definition() mcp.Tool {
	return mcp.NewTool("update_account_traits",
		mcp.WithDescription(
			"Set custom trait values on a Vitally account. Traits are merged "+
				"with the account's existing traits upstream, not overwritten.",
		),
		mcp.WithString("account_id",
			mcp.Required(),
			mcp.Description("Vitally account identifier"),
		),
		mcp.WithObject("traits",
			mcp.Required(),
			mcp.Description("Map of namespaced trait keys to values, e.g. {\"vitally.custom.plan\": \"enterprise\"}"),
		),
	)
}

type traitUpdateRequest struct {
	Traits vitally.TraitMap `json:"traits"`
}

// Handle processes the update_account_traits call.
func (t *UpdateAccountTraitsTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	accountID := req.GetString("account_id", "")
	if accountID == "" {
		return mcp.NewToolResultError("'account_id' is required"), nil
	}

	traits, ok := req.GetArguments()["traits"].(map[string]any)
	if !ok || len(traits) == 0 {
		return mcp.NewToolResultError("'traits' is required — provide an object of trait keys to values"), nil
	}

	var updated vitally.Account
	endpoint := "accounts/" + url.PathEscape(accountID)
	if err := callAndDecode(ctx, t.api, endpoint, vitally.MethodPut, traitUpdateRequest{Traits: traits}, &updated); err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("updating traits for account %s: %v", accountID, err)), nil
	}

	return jsonResult(struct {
		ID     string           `json:"id"`
		Name   string           `json:"name"`
		Traits vitally.TraitMap `json:"traits"`
	}{ID: updated.ID, Name: updated.Name, Traits: updated.Traits})
}
