package tools

import (
	"context"
	"fmt"
	"strings"

	"github.com/cs-tools/vitally-mcp/internal/cache"
	"github.com/cs-tools/vitally-mcp/internal/vitally"
	"github.com/mark3labs/mcp-go/mcp"
)

// SearchAccountsTool handles the search_accounts MCP tool: a local
// filter over the cached account list, populating the cache first if it
// has never been loaded.
type SearchAccountsTool struct {
	api      vitally.Transport
	accounts *cache.AccountCache
}

// NewSearchAccountsTool creates a SearchAccountsTool.
func NewSearchAccountsTool(api vitally.Transport, accounts *cache.AccountCache) *SearchAccountsTool {
	return &SearchAccountsTool{api: api, accounts: accounts}
}

// Definition returns the MCP tool definition for registration.
func (t *SearchAccountsTool) Definition() mcp.Tool {
	return mcp.NewTool("search_accounts",
		mcp.WithDescription(
			"Search cached Vitally accounts by name (case-insensitive substring) "+
				"and/or external ID (exact match). At least one filter is required. "+
				"Results are truncated to 'limit'; the total match count is reported.",
		),
		mcp.WithString("name",
			mcp.Description("Substring to match against account names"),
		),
		mcp.WithString("external_id",
			mcp.Description("Exact external identifier to match"),
		),
		mcp.WithNumber("limit",
			mcp.DefaultNumber(10),
			mcp.Description("Maximum accounts to return (default 10)"),
		),
	)
}

// Handle processes the search_accounts call.
func (t *SearchAccountsTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	name := req.GetString("name", "")
	externalID := req.GetString("external_id", "")
	if name == "" && externalID == "" {
		return mcp.NewToolResultError("at least one of 'name' or 'external_id' is required"), nil
	}

	limit := intArg(req, "limit", 10)
	if limit <= 0 {
		limit = 10
	}

	all, err := ensureAccounts(ctx, t.api, t.accounts)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	matches := filterAccounts(all, name, externalID)
	total := len(matches)
	if total == 0 {
		return mcp.NewToolResultText(
			"No accounts matched the given filters. The cache may be stale — try refresh_accounts.",
		), nil
	}
	if total > limit {
		matches = matches[:limit]
	}

	return jsonResult(struct {
		Accounts      []accountSummary `json:"accounts"`
		ReturnedCount int              `json:"returnedCount"`
		TotalMatches  int              `json:"totalMatches"`
	}{Accounts: summarizeAll(matches), ReturnedCount: len(matches), TotalMatches: total})
}

// filterAccounts applies the name substring filter and the externalId
// exact filter, AND-ed when both are given.
func filterAccounts(accounts []vitally.Account, name, externalID string) []vitally.Account {
	needle := strings.ToLower(name)
	var out []vitally.Account
	for _, a := range accounts {
		if name != "" && !strings.Contains(strings.ToLower(a.Name), needle) {
			continue
		}
		if externalID != "" && a.ExternalID != externalID {
			continue
		}
		out = append(out, a)
	}
	return out
}

// FindAccountByNameTool handles the find_account_by_name MCP tool: the
// same cached name filter as search_accounts, with no truncation.
type FindAccountByNameTool struct {
	api      vitally.Transport
	accounts *cache.AccountCache
}

// NewFindAccountByNameTool creates a FindAccountByNameTool.
func NewFindAccountByNameTool(api vitally.Transport, accounts *cache.AccountCache) *FindAccountByNameTool {
	return &FindAccountByNameTool{api: api, accounts: accounts}
}

// Definition returns the MCP tool definition for registration.
func (t *FindAccountByNameTool) Definition() mcp.Tool {
	return mcp.NewTool("find_account_by_name",
		mcp.WithDescription(
			"Find cached Vitally accounts whose name contains the given text, "+
				"case-insensitively. Returns every match.",
		),
		mcp.WithString("name",
			mcp.Required(),
			mcp.Description("Substring to match against account names"),
		),
	)
}

// Handle processes the find_account_by_name call.
func (t *FindAccountByNameTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	name := req.GetString("name", "")
	if name == "" {
		return mcp.NewToolResultError("'name' is required — provide text to match against account names"), nil
	}

	all, err := ensureAccounts(ctx, t.api, t.accounts)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	matches := filterAccounts(all, name, "")
	if len(matches) == 0 {
		return mcp.NewToolResultText(fmt.Sprintf(
			"No accounts found with a name containing %q. The cache may be stale — try refresh_accounts.", name,
		)), nil
	}

	return jsonResult(struct {
		Accounts []accountSummary `json:"accounts"`
		Count    int              `json:"count"`
	}{Accounts: summarizeAll(matches), Count: len(matches)})
}
