package resources

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/cs-tools/vitally-mcp/internal/vitally"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestPublisher() *Publisher {
	srv := server.NewMCPServer("test", "0.0.0",
		server.WithResourceCapabilities(false, true),
	)
	return NewPublisher(srv, vitally.NewMock(), zerolog.Nop())
}

func TestAccountURI(t *testing.T) {
	assert.Equal(t, "vitally://account/1", AccountURI("1"))
}

func TestSyncTracksCachedAccounts(t *testing.T) {
	p := newTestPublisher()

	p.Sync([]vitally.Account{
		{ID: "1", Name: "Acme Corporation"},
		{ID: "2", Name: "Globex Industries"},
	})
	assert.Len(t, p.published, 2)
	assert.Contains(t, p.published, "vitally://account/1")

	// A refresh that drops an account drops its resource too.
	p.Sync([]vitally.Account{{ID: "1", Name: "Acme Corporation"}})
	assert.Len(t, p.published, 1)
	assert.NotContains(t, p.published, "vitally://account/2")
}

func TestHandleAccountFetchesLiveDetail(t *testing.T) {
	p := newTestPublisher()

	req := mcp.ReadResourceRequest{}
	req.Params.URI = AccountURI("1")

	contents, err := p.HandleAccount(context.Background(), req)
	require.NoError(t, err)
	require.Len(t, contents, 1)

	text, ok := contents[0].(mcp.TextResourceContents)
	require.True(t, ok)
	assert.Equal(t, "application/json", text.MIMEType)
	assert.Equal(t, AccountURI("1"), text.URI)

	var account map[string]any
	require.NoError(t, json.Unmarshal([]byte(text.Text), &account))
	assert.Equal(t, "Acme Corporation", account["name"])
}

func TestHandleAccountRejectsUnknownURI(t *testing.T) {
	p := newTestPublisher()

	for _, uri := range []string{"vitally://segment/1", "vitally://account/", "file:///etc/hosts"} {
		req := mcp.ReadResourceRequest{}
		req.Params.URI = uri

		_, err := p.HandleAccount(context.Background(), req)
		require.Error(t, err, "uri %q", uri)
		assert.Contains(t, err.Error(), "unknown resource URI")
	}
}
