package tools

import (
	"context"
	"fmt"
	"net/url"

	"github.com/cs-tools/vitally-mcp/internal/vitally"
	"github.com/mark3labs/mcp-go/mcp"
)

// AccountDetailsTool handles the get_account_details MCP tool. This is
// the one operation that intentionally skips projection: it returns the
// full upstream record, since its purpose is completeness.
type AccountDetailsTool struct {
	api vitally.Transport
}

// NewAccountDetailsTool creates an AccountDetailsTool.
func NewAccountDetailsTool(api vitally.Transport) *AccountDetailsTool {
	return &AccountDetailsTool{api: api}
}

// Definition returns the MCP tool definition for registration.
func (t *AccountDetailsTool) Definition() mcp.Tool {
	return mcp.NewTool("get_account_details",
		mcp.WithDescription(
			"Fetch the complete, unfiltered Vitally record for one account, "+
				"including every trait and timestamp.",
		),
		mcp.WithString("account_id",
			mcp.Required(),
			mcp.Description("Vitally account identifier"),
		),
	)
}

// Handle processes the get_account_details call.
func (t *AccountDetailsTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	accountID := req.GetString("account_id", "")
	if accountID == "" {
		return mcp.NewToolResultError("'account_id' is required"), nil
	}

	detail, err := callRaw(ctx, t.api, "accounts/"+url.PathEscape(accountID))
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("fetching account %s: %v", accountID, err)), nil
	}
	return jsonResult(detail)
}

// AccountHealthTool handles the get_account_health MCP tool. The health
// structure (overall score plus named component scores) is returned
// exactly as the upstream reports it.
type AccountHealthTool struct {
	api vitally.Transport
}

// NewAccountHealthTool creates an AccountHealthTool.
func NewAccountHealthTool(api vitally.Transport) *AccountHealthTool {
	return &AccountHealthTool{api: api}
}

// Definition returns the MCP tool definition for registration.
func (t *AccountHealthTool) Definition() mcp.Tool {
	return mcp.NewTool("get_account_health",
		mcp.WithDescription(
			"Fetch an account's health scores: the overall score and its named "+
				"component scores, as computed by Vitally.",
		),
		mcp.WithString("account_id",
			mcp.Required(),
			mcp.Description("Vitally account identifier"),
		),
	)
}

// Handle processes the get_account_health call.
func (t *AccountHealthTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	accountID := req.GetString("account_id", "")
	if accountID == "" {
		return mcp.NewToolResultError("'account_id' is required"), nil
	}

	health, err := callRaw(ctx, t.api, "accounts/"+url.PathEscape(accountID)+"/healthScores")
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("fetching health for account %s: %v", accountID, err)), nil
	}
	return jsonResult(health)
}
