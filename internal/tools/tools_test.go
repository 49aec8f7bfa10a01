package tools

import (
	"context"
	"encoding/json"
	"strings"
	"testing"

	"github.com/cs-tools/vitally-mcp/internal/cache"
	"github.com/cs-tools/vitally-mcp/internal/vitally"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// --- Test helpers ---

// recordingTransport wraps another transport and records every call, so
// tests can assert how many upstream requests an operation made (or
// that validation failed before any).
type recordingTransport struct {
	inner vitally.Transport
	calls []string
}

func newRecordingMock() *recordingTransport {
	return &recordingTransport{inner: vitally.NewMock()}
}

func (r *recordingTransport) Call(ctx context.Context, endpoint string, method vitally.Method, body any) (json.RawMessage, error) {
	r.calls = append(r.calls, string(method)+" "+endpoint)
	return r.inner.Call(ctx, endpoint, method, body)
}

func newRequest(args map[string]any) mcp.CallToolRequest {
	req := mcp.CallToolRequest{}
	req.Params.Arguments = args
	return req
}

// getResultText extracts the text content from a CallToolResult.
func getResultText(t *testing.T, result *mcp.CallToolResult) string {
	t.Helper()
	require.NotNil(t, result)
	require.NotEmpty(t, result.Content)
	for _, c := range result.Content {
		if tc, ok := c.(mcp.TextContent); ok {
			return tc.Text
		}
	}
	t.Fatal("result has no text content")
	return ""
}

// decodeResult unmarshals a tool's JSON text payload into out.
func decodeResult(t *testing.T, result *mcp.CallToolResult, out any) {
	t.Helper()
	require.False(t, result.IsError, "unexpected tool error: %s", getResultText(t, result))
	require.NoError(t, json.Unmarshal([]byte(getResultText(t, result)), out))
}

// --- Registry & search_tools ---

func newTestRegistry() (*Registry, *recordingTransport, *cache.AccountCache) {
	api := newRecordingMock()
	accounts := cache.New()
	return NewRegistry(api, accounts), api, accounts
}

func TestRegistryCatalogIsComplete(t *testing.T) {
	registry, _, _ := newTestRegistry()

	want := []string{
		"search_tools", "search_users", "search_accounts", "find_account_by_name",
		"refresh_accounts", "get_account_details", "get_account_health",
		"get_account_conversations", "get_account_tasks", "get_account_notes",
		"get_account_nps", "get_account_projects", "get_note_by_id",
		"create_account_note", "list_custom_traits", "update_account_traits",
	}

	var got []string
	for _, tool := range registry.All() {
		got = append(got, tool.Definition().Name)
	}
	assert.Equal(t, want, got)
}

func TestRegistrySearchMatchesNameAndDescription(t *testing.T) {
	registry, _, _ := newTestRegistry()

	for _, keyword := range []string{"note", "NOTE", "health", "keyword"} {
		matches := registry.Search(keyword)
		require.NotEmpty(t, matches, "keyword %q", keyword)
		needle := strings.ToLower(keyword)
		for _, d := range matches {
			haystack := strings.ToLower(d.Name + " " + d.Description)
			assert.Contains(t, haystack, needle)
		}
	}
}

func TestRegistrySearchPreservesDeclarationOrder(t *testing.T) {
	registry, _, _ := newTestRegistry()

	matches := registry.Search("account")
	require.Greater(t, len(matches), 2)

	all := registry.Search("")
	var wantOrder []string
	for _, d := range all {
		if strings.Contains(strings.ToLower(d.Name+" "+d.Description), "account") {
			wantOrder = append(wantOrder, d.Name)
		}
	}
	var gotOrder []string
	for _, d := range matches {
		gotOrder = append(gotOrder, d.Name)
	}
	assert.Equal(t, wantOrder, gotOrder)
}

func TestSearchToolsRejectsEmptyKeyword(t *testing.T) {
	registry, api, _ := newTestRegistry()
	tool := NewSearchToolsTool(registry)

	for _, keyword := range []string{"", "   "} {
		result, err := tool.Handle(context.Background(), newRequest(map[string]any{"keyword": keyword}))
		require.NoError(t, err)
		assert.True(t, result.IsError)
		assert.Contains(t, getResultText(t, result), "keyword")
	}
	assert.Empty(t, api.calls)
}

func TestSearchToolsNoMatchIsMessageNotError(t *testing.T) {
	registry, _, _ := newTestRegistry()
	tool := NewSearchToolsTool(registry)

	result, err := tool.Handle(context.Background(), newRequest(map[string]any{"keyword": "zzzzzz"}))
	require.NoError(t, err)
	assert.False(t, result.IsError)
	assert.Contains(t, getResultText(t, result), "No tools matched")
}

func TestSearchToolsReturnsDescriptors(t *testing.T) {
	registry, _, _ := newTestRegistry()
	tool := NewSearchToolsTool(registry)

	result, err := tool.Handle(context.Background(), newRequest(map[string]any{"keyword": "trait"}))
	require.NoError(t, err)

	var payload struct {
		Tools []ToolDescriptor `json:"tools"`
		Count int              `json:"count"`
	}
	decodeResult(t, result, &payload)

	require.Equal(t, payload.Count, len(payload.Tools))
	names := make([]string, 0, len(payload.Tools))
	for _, d := range payload.Tools {
		names = append(names, d.Name)
	}
	assert.Contains(t, names, "list_custom_traits")
	assert.Contains(t, names, "update_account_traits")
}

// --- Validation: missing required arguments never reach the transport ---

func TestMissingRequiredArgumentsFailBeforeAnyCall(t *testing.T) {
	tests := []struct {
		name      string
		build     func(api vitally.Transport, accounts *cache.AccountCache) Tool
		args      map[string]any
		wantField string
	}{
		{
			name: "search_users without filters",
			build: func(api vitally.Transport, _ *cache.AccountCache) Tool {
				return NewSearchUsersTool(api)
			},
			args:      map[string]any{},
			wantField: "email",
		},
		{
			name: "search_accounts without filters",
			build: func(api vitally.Transport, c *cache.AccountCache) Tool {
				return NewSearchAccountsTool(api, c)
			},
			args:      map[string]any{"limit": float64(5)},
			wantField: "name",
		},
		{
			name: "find_account_by_name without name",
			build: func(api vitally.Transport, c *cache.AccountCache) Tool {
				return NewFindAccountByNameTool(api, c)
			},
			args:      map[string]any{},
			wantField: "name",
		},
		{
			name: "get_account_details without account_id",
			build: func(api vitally.Transport, _ *cache.AccountCache) Tool {
				return NewAccountDetailsTool(api)
			},
			args:      map[string]any{},
			wantField: "account_id",
		},
		{
			name: "get_account_health without account_id",
			build: func(api vitally.Transport, _ *cache.AccountCache) Tool {
				return NewAccountHealthTool(api)
			},
			args:      map[string]any{},
			wantField: "account_id",
		},
		{
			name: "get_account_conversations without account_id",
			build: func(api vitally.Transport, _ *cache.AccountCache) Tool {
				return NewAccountConversationsTool(api)
			},
			args:      map[string]any{},
			wantField: "account_id",
		},
		{
			name: "get_account_tasks without account_id",
			build: func(api vitally.Transport, _ *cache.AccountCache) Tool {
				return NewAccountTasksTool(api)
			},
			args:      map[string]any{"status": "open"},
			wantField: "account_id",
		},
		{
			name: "get_account_notes without account_id",
			build: func(api vitally.Transport, _ *cache.AccountCache) Tool {
				return NewAccountNotesTool(api)
			},
			args:      map[string]any{},
			wantField: "account_id",
		},
		{
			name: "get_account_nps without account_id",
			build: func(api vitally.Transport, _ *cache.AccountCache) Tool {
				return NewAccountNPSTool(api)
			},
			args:      map[string]any{},
			wantField: "account_id",
		},
		{
			name: "get_account_projects without account_id",
			build: func(api vitally.Transport, _ *cache.AccountCache) Tool {
				return NewAccountProjectsTool(api)
			},
			args:      map[string]any{},
			wantField: "account_id",
		},
		{
			name: "get_note_by_id without note_id",
			build: func(api vitally.Transport, _ *cache.AccountCache) Tool {
				return NewNoteByIDTool(api)
			},
			args:      map[string]any{},
			wantField: "note_id",
		},
		{
			name: "create_account_note without content",
			build: func(api vitally.Transport, _ *cache.AccountCache) Tool {
				return NewCreateAccountNoteTool(api)
			},
			args:      map[string]any{"account_id": "1"},
			wantField: "content",
		},
		{
			name: "refresh_accounts with invalid status",
			build: func(api vitally.Transport, c *cache.AccountCache) Tool {
				return NewRefreshAccountsTool(api, c)
			},
			args:      map[string]any{"status": "paused"},
			wantField: "status",
		},
		{
			name: "list_custom_traits without model",
			build: func(api vitally.Transport, _ *cache.AccountCache) Tool {
				return NewListCustomTraitsTool(api)
			},
			args:      map[string]any{},
			wantField: "model",
		},
		{
			name: "list_custom_traits with unknown model",
			build: func(api vitally.Transport, _ *cache.AccountCache) Tool {
				return NewListCustomTraitsTool(api)
			},
			args:      map[string]any{"model": "invoice"},
			wantField: "model",
		},
		{
			name: "update_account_traits without traits",
			build: func(api vitally.Transport, _ *cache.AccountCache) Tool {
				return NewUpdateAccountTraitsTool(api)
			},
			args:      map[string]any{"account_id": "1"},
			wantField: "traits",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			api := newRecordingMock()
			tool := tt.build(api, cache.New())

			result, err := tool.Handle(context.Background(), newRequest(tt.args))
			require.NoError(t, err)
			require.True(t, result.IsError)
			assert.Contains(t, getResultText(t, result), tt.wantField)
			assert.Empty(t, api.calls, "validation failures must not reach the transport")
		})
	}
}
