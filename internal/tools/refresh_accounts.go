package tools

import (
	"context"
	"fmt"
	"net/url"

	"github.com/cs-tools/vitally-mcp/internal/cache"
	"github.com/cs-tools/vitally-mcp/internal/vitally"
	"github.com/mark3labs/mcp-go/mcp"
)

// Account statuses the listing endpoint accepts.
var validAccountStatuses = map[string]bool{
	"active":          true,
	"churned":         true,
	"activeOrChurned": true,
}

// RefreshAccountsTool handles the refresh_accounts MCP tool: one
// explicit listing call that unconditionally replaces the cache.
type RefreshAccountsTool struct {
	api      vitally.Transport
	accounts *cache.AccountCache
}

// NewRefreshAccountsTool creates a RefreshAccountsTool.
func NewRefreshAccountsTool(api vitally.Transport, accounts *cache.AccountCache) *RefreshAccountsTool {
	return &RefreshAccountsTool{api: api, accounts: accounts}
}

// Definition returns the MCP tool definition for registration.
func (t *RefreshAccountsTool) Definition() mcp.Tool {
	return mcp.NewTool("refresh_accounts",
		mcp.WithDescription(
			"Reload the account cache from Vitally and return a success-tracking "+
				"summary of every account fetched. Replaces the cache unconditionally.",
		),
		mcp.WithNumber("limit",
			mcp.DefaultNumber(100),
			mcp.Description("Maximum accounts to fetch (default 100)"),
		),
		mcp.WithString("status",
			mcp.DefaultString("active"),
			mcp.Enum("active", "churned", "activeOrChurned"),
			mcp.Description("Which accounts to fetch: active (default), churned, or activeOrChurned"),
		),
	)
}

// Handle processes the refresh_accounts call.
func (t *RefreshAccountsTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	limit := intArg(req, "limit", 100)
	if limit <= 0 {
		limit = 100
	}
	status := req.GetString("status", "active")
	if !validAccountStatuses[status] {
		return mcp.NewToolResultError(fmt.Sprintf(
			"invalid 'status' %q: must be one of active, churned, activeOrChurned", status,
		)), nil
	}

	q := url.Values{}
	q.Set("limit", fmt.Sprint(limit))
	q.Set("status", status)

	var page vitally.Page[vitally.Account]
	if err := callAndDecode(ctx, t.api, "accounts?"+q.Encode(), vitally.MethodGet, nil, &page); err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("refreshing accounts: %v", err)), nil
	}

	t.accounts.Replace(page.Results)

	overviews := make([]accountOverview, 0, len(page.Results))
	for _, a := range page.Results {
		overviews = append(overviews, overview(a))
	}

	return jsonResult(struct {
		RefreshedCount int               `json:"refreshedCount"`
		Status         string            `json:"status"`
		Accounts       []accountOverview `json:"accounts"`
	}{RefreshedCount: len(overviews), Status: status, Accounts: overviews})
}
