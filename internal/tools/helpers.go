package tools

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"

	"github.com/cs-tools/vitally-mcp/internal/cache"
	"github.com/cs-tools/vitally-mcp/internal/vitally"
	"github.com/mark3labs/mcp-go/mcp"
)

// intArg extracts an integer argument from a tool request, returning
// defaultVal if the key is missing or not a number (JSON numbers are
// float64).
func intArg(req mcp.CallToolRequest, key string, defaultVal int) int {
	v, ok := req.GetArguments()[key].(float64)
	if !ok {
		return defaultVal
	}
	return int(v)
}

// jsonResult serializes a projection as two-space-indented JSON and
// wraps it in a single text content block.
func jsonResult(v any) (*mcp.CallToolResult, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encoding result: %w", err)
	}
	return mcp.NewToolResultText(string(data)), nil
}

// callAndDecode performs one API call and decodes the response into out.
func callAndDecode(ctx context.Context, api vitally.Transport, endpoint string, method vitally.Method, body, out any) error {
	raw, err := api.Call(ctx, endpoint, method, body)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("decoding response from %s: %w", endpoint, err)
	}
	return nil
}

// callRaw performs one API call and re-decodes the response into a
// generic value, for the operations that return the upstream record
// unmodified.
func callRaw(ctx context.Context, api vitally.Transport, endpoint string) (any, error) {
	raw, err := api.Call(ctx, endpoint, vitally.MethodGet, nil)
	if err != nil {
		return nil, err
	}
	var v any
	if err := json.Unmarshal(raw, &v); err != nil {
		return nil, fmt.Errorf("decoding response from %s: %w", endpoint, err)
	}
	return v, nil
}

// ensureAccounts returns the cached account list, fetching the
// unfiltered listing first if the cache has never been populated.
// A populated cache is never implicitly refreshed.
func ensureAccounts(ctx context.Context, api vitally.Transport, accounts *cache.AccountCache) ([]vitally.Account, error) {
	if !accounts.IsEmpty() {
		return accounts.All(), nil
	}
	var page vitally.Page[vitally.Account]
	if err := callAndDecode(ctx, api, "accounts", vitally.MethodGet, nil, &page); err != nil {
		return nil, fmt.Errorf("loading accounts: %w", err)
	}
	accounts.Replace(page.Results)
	return accounts.All(), nil
}

// subresourceEndpoint builds an account sub-resource path with its query
// parameters.
func subresourceEndpoint(accountID, kind string, limit int, extra url.Values) string {
	q := url.Values{}
	q.Set("limit", fmt.Sprint(limit))
	for k, vs := range extra {
		for _, v := range vs {
			q.Add(k, v)
		}
	}
	return fmt.Sprintf("accounts/%s/%s?%s", url.PathEscape(accountID), kind, q.Encode())
}
