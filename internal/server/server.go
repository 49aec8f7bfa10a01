// Package server wires all MCP components and creates the server instance.
//
// This is the composition root: it selects the transport (live client or
// demo responder), creates the cache, and registers every tool and
// resource handler. No business logic lives here — only wiring.
package server

import (
	"github.com/cs-tools/vitally-mcp/internal/cache"
	"github.com/cs-tools/vitally-mcp/internal/config"
	"github.com/cs-tools/vitally-mcp/internal/prompts"
	"github.com/cs-tools/vitally-mcp/internal/resources"
	"github.com/cs-tools/vitally-mcp/internal/tools"
	"github.com/cs-tools/vitally-mcp/internal/vitally"
	"github.com/mark3labs/mcp-go/server"
	"github.com/rs/zerolog"
)

// Version is set at build time via ldflags.
var Version = "dev"

// New creates and configures the MCP server with all tools and resource
// handlers registered. This is the single place where all dependencies
// are resolved.
func New(cfg config.Config, logger zerolog.Logger) *server.MCPServer {
	api := transportFor(cfg, logger)
	accounts := cache.New()

	s := server.NewMCPServer(
		"vitally-mcp",
		Version,
		server.WithToolCapabilities(true),
		server.WithResourceCapabilities(false, true),
		server.WithPromptCapabilities(true),
		server.WithRecovery(),
		server.WithInstructions(serverInstructions()),
	)

	// The registry is the single catalog: server registration here and
	// the search_tools keyword search read the same list, so the
	// protocol listing cannot drift from the searchable one.
	registry := tools.NewRegistry(api, accounts)
	for _, t := range registry.All() {
		s.AddTool(t.Definition(), t.Handle)
	}

	// Account resources track the cache: every cache replacement
	// republishes one resource per account.
	publisher := resources.NewPublisher(s, api, logger)
	accounts.SetOnReplace(publisher.Sync)

	reviewPrompt := prompts.NewAccountReviewPrompt()
	s.AddPrompt(reviewPrompt.Definition(), reviewPrompt.Handle)

	return s
}

// transportFor selects the live client or the demo responder, once, at
// process start. Everything downstream sees only the Transport interface.
func transportFor(cfg config.Config, logger zerolog.Logger) vitally.Transport {
	if cfg.DemoMode() {
		logger.Warn().Msg("no Vitally API key configured — serving demo data instead of the live API")
		return vitally.NewMock()
	}
	logger.Info().Str("baseURL", cfg.BaseURL()).Msg("using live Vitally API")
	return vitally.NewClient(cfg.BaseURL(), cfg.APIKey, logger)
}

// serverInstructions returns the system instructions that tell the AI
// how to use this server effectively.
func serverInstructions() string {
	return `You have access to vitally-mcp, a server exposing the Vitally
customer-success platform as tools and resources.

## Accounts

Account tools work against a process-lifetime cache:
- search_accounts / find_account_by_name filter the cached list locally.
  The cache is loaded automatically on first use and is NOT refreshed
  implicitly after that.
- refresh_accounts reloads the cache explicitly and returns a
  success-tracking summary of every account. Call it when results look
  stale (for example after update_account_traits, which does not update
  the cache).
- get_account_details fetches the complete live record for one account;
  use it when the bounded search projections are not enough.
- Each cached account is also browsable as a vitally://account/<id>
  resource; reading one always fetches live data.

## Account activity

get_account_health, get_account_conversations, get_account_tasks,
get_account_notes, get_account_nps, and get_account_projects each make
one live API call scoped to the account. Tasks accept an optional
status filter. All listings take a limit (default 10).

## Notes and traits

- create_account_note records a note; get_note_by_id reads one in full.
- list_custom_traits shows which custom trait keys exist for an object
  kind before you read or write them.
- update_account_traits merges the given traits into the account
  upstream. Remember the local cache stays stale until refresh_accounts.

## Users and discovery

- search_users finds people by email, external ID, or email subdomain
  (at least one filter required).
- search_tools finds tools by keyword when you are unsure which
  operation to use.

## Demo mode

When no API key is configured the server answers every call from
deterministic demo data. Behavior and shapes match the live API, so all
tools remain usable for exploration.`
}
