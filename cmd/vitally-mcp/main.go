// vitally-mcp: a Vitally MCP server.
//
// Exposes the Vitally customer-success platform's REST API as MCP tools
// and resources for AI assistants. Runs over stdio. Without a configured
// API key it serves deterministic demo data instead.
//
// Usage:
//
//	vitally-mcp serve    # Start MCP server (stdio transport)
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/cs-tools/vitally-mcp/internal/config"
	vitallyserver "github.com/cs-tools/vitally-mcp/internal/server"
	"github.com/mark3labs/mcp-go/server"
	"github.com/rs/zerolog"
)

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	switch os.Args[1] {
	case "serve":
		if err := run(); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	case "--help", "-h", "help":
		printUsage()
		os.Exit(0)
	case "--version", "-v", "version":
		fmt.Printf("vitally-mcp v%s\n", vitallyserver.Version)
		os.Exit(0)
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n\n", os.Args[1])
		printUsage()
		os.Exit(1)
	}
}

func run() error {
	// All logging goes to stderr — stdout carries the MCP stdio
	// transport and must stay clean.
	logger := zerolog.New(os.Stderr).With().Timestamp().Logger()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading configuration: %w", err)
	}

	s := vitallyserver.New(cfg, logger)

	// Graceful shutdown on interrupt.
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)

	go func() {
		<-sigCh
		cancel()
	}()

	_ = ctx // stdio server manages its own lifecycle

	return server.ServeStdio(s)
}

func printUsage() {
	fmt.Fprintf(os.Stderr, `vitally-mcp v%s — Vitally MCP Server

Usage:
  vitally-mcp serve    Start the MCP server (stdio transport)

Configuration (environment or .env file):
  VITALLY_API_KEY       Secret API token. Leave unset or set to the
                        placeholder "your-api-key-here" to serve demo data.
  VITALLY_SUBDOMAIN     Workspace subdomain (US data center only).
  VITALLY_DATA_CENTER   US (default) or EU.

Add to your AI tool's MCP config:

  {
    "mcpServers": {
      "vitally": {
        "command": "vitally-mcp",
        "args": ["serve"]
      }
    }
  }
`, vitallyserver.Version)
}
