package tools

import (
	"context"
	"fmt"
	"net/url"

	"github.com/cs-tools/vitally-mcp/internal/vitally"
	"github.com/mark3labs/mcp-go/mcp"
)

// SearchUsersTool handles the search_users MCP tool. Whichever filters
// were given are passed straight through as query parameters to the
// upstream user-search endpoint.
type SearchUsersTool struct {
	api vitally.Transport
}

// NewSearchUsersTool creates a SearchUsersTool.
func NewSearchUsersTool(api vitally.Transport) *SearchUsersTool {
	return &SearchUsersTool{api: api}
}

// Definition returns the MCP tool definition for registration.
func (t *SearchUsersTool) Definition() mcp.Tool {
	return mcp.NewTool("search_users",
		mcp.WithDescription(
			"Search Vitally users by email, external ID, or email subdomain. "+
				"At least one filter is required.",
		),
		mcp.WithString("email",
			mcp.Description("Exact email address to search for"),
		),
		mcp.WithString("external_id",
			mcp.Description("External identifier assigned by your own systems"),
		),
		mcp.WithString("email_subdomain",
			mcp.Description("Email domain to search for, e.g. 'acme.com'"),
		),
	)
}

type userSummary struct {
	ID         string              `json:"id"`
	Name       string              `json:"name,omitempty"`
	Email      string              `json:"email,omitempty"`
	ExternalID string              `json:"externalId,omitempty"`
	Account    *vitally.AccountRef `json:"account,omitempty"`
}

// Handle processes the search_users call.
func (t *SearchUsersTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	email := req.GetString("email", "")
	externalID := req.GetString("external_id", "")
	subdomain := req.GetString("email_subdomain", "")

	if email == "" && externalID == "" && subdomain == "" {
		return mcp.NewToolResultError(
			"at least one of 'email', 'external_id', or 'email_subdomain' is required",
		), nil
	}

	q := url.Values{}
	if email != "" {
		q.Set("email", email)
	}
	if externalID != "" {
		q.Set("externalId", externalID)
	}
	if subdomain != "" {
		q.Set("emailSubdomain", subdomain)
	}

	var page vitally.Page[vitally.User]
	if err := callAndDecode(ctx, t.api, "users/search?"+q.Encode(), vitally.MethodGet, nil, &page); err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("searching users: %v", err)), nil
	}

	if len(page.Results) == 0 {
		return mcp.NewToolResultText("No users matched the given filters."), nil
	}

	users := make([]userSummary, 0, len(page.Results))
	for _, u := range page.Results {
		users = append(users, userSummary{
			ID:         u.ID,
			Name:       u.Name,
			Email:      u.Email,
			ExternalID: u.ExternalID,
			Account:    u.Account,
		})
	}

	return jsonResult(struct {
		Users []userSummary `json:"users"`
		Count int           `json:"count"`
	}{Users: users, Count: len(users)})
}
