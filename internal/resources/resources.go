// Package resources publishes cached Vitally accounts as MCP resources.
//
// Every account in the cache is addressable as vitally://account/<id>.
// The published list mirrors the cache: it is resynced after each cache
// replacement. Reading a resource always performs a live detail fetch —
// the cache is a listing aid, not a source of record.
package resources

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"sync"

	"github.com/cs-tools/vitally-mcp/internal/vitally"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"github.com/rs/zerolog"
)

const accountScheme = "vitally://account/"

// AccountURI returns the resource address for an account identifier.
func AccountURI(id string) string {
	return accountScheme + id
}

// Publisher keeps the MCP server's resource list in sync with the
// account cache and serves resource reads.
type Publisher struct {
	srv *server.MCPServer
	api vitally.Transport
	log zerolog.Logger

	mu        sync.Mutex
	published map[string]struct{}
}

// NewPublisher creates a Publisher bound to the given server.
func NewPublisher(srv *server.MCPServer, api vitally.Transport, logger zerolog.Logger) *Publisher {
	return &Publisher{
		srv:       srv,
		api:       api,
		log:       logger,
		published: make(map[string]struct{}),
	}
}

// Sync replaces the published resource set with one resource per cached
// account. Intended to be installed as the cache's OnReplace hook.
func (p *Publisher) Sync(accounts []vitally.Account) {
	p.mu.Lock()
	defer p.mu.Unlock()

	next := make(map[string]struct{}, len(accounts))
	for _, a := range accounts {
		next[AccountURI(a.ID)] = struct{}{}
	}

	var stale []string
	for uri := range p.published {
		if _, ok := next[uri]; !ok {
			stale = append(stale, uri)
		}
	}
	if len(stale) > 0 {
		p.srv.DeleteResources(stale...)
	}

	for _, a := range accounts {
		res := mcp.NewResource(
			AccountURI(a.ID),
			a.Name,
			mcp.WithResourceDescription(fmt.Sprintf("Vitally account %q", a.Name)),
			mcp.WithMIMEType("application/json"),
		)
		p.srv.AddResource(res, p.HandleAccount)
	}

	p.published = next
	p.log.Debug().Int("accounts", len(accounts)).Msg("resynced account resources")
}

// HandleAccount resolves a vitally://account/<id> address back to a live
// account-detail fetch and returns it as indented JSON.
func (p *Publisher) HandleAccount(ctx context.Context, req mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	id, ok := strings.CutPrefix(req.Params.URI, accountScheme)
	if !ok || id == "" {
		return nil, fmt.Errorf("unknown resource URI %q: expected %s<id>", req.Params.URI, accountScheme)
	}

	raw, err := p.api.Call(ctx, "accounts/"+id, vitally.MethodGet, nil)
	if err != nil {
		return nil, fmt.Errorf("fetching account %s: %w", id, err)
	}

	var detail any
	if err := json.Unmarshal(raw, &detail); err != nil {
		return nil, fmt.Errorf("decoding account %s: %w", id, err)
	}
	pretty, err := json.MarshalIndent(detail, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encoding account %s: %w", id, err)
	}

	return []mcp.ResourceContents{
		mcp.TextResourceContents{
			URI:      req.Params.URI,
			MIMEType: "application/json",
			Text:     string(pretty),
		},
	}, nil
}
