// Package prompts implements MCP prompt handlers.
//
// Prompts are canned instruction templates the host can offer its user;
// they tell the assistant which tools to call and how to present the
// results.
package prompts

import (
	"context"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
)

// AccountReviewPrompt handles the account-review MCP prompt. It walks
// the assistant through a full health review of one account using the
// read tools.
type AccountReviewPrompt struct{}

// NewAccountReviewPrompt creates an AccountReviewPrompt.
func NewAccountReviewPrompt() *AccountReviewPrompt {
	return &AccountReviewPrompt{}
}

// Definition returns the MCP prompt definition for registration.
func (p *AccountReviewPrompt) Definition() mcp.Prompt {
	return mcp.NewPrompt("account-review",
		mcp.WithPromptDescription(
			"Run a customer-success review of one Vitally account: health, "+
				"recent activity, open tasks, and NPS sentiment.",
		),
		mcp.WithArgument("account",
			mcp.RequiredArgument(),
			mcp.ArgumentDescription("Account name (or part of it) to review"),
		),
	)
}

// Handle processes the account-review prompt request.
func (p *AccountReviewPrompt) Handle(ctx context.Context, req mcp.GetPromptRequest) (*mcp.GetPromptResult, error) {
	account := req.Params.Arguments["account"]
	if account == "" {
		return nil, fmt.Errorf("'account' argument is required")
	}

	return &mcp.GetPromptResult{
		Description: "Vitally Account Review",
		Messages: []mcp.PromptMessage{
			{
				Role: mcp.RoleUser,
				Content: mcp.NewTextContent(fmt.Sprintf(
					"Please review the Vitally account matching %q.\n\n"+
						"1. Use find_account_by_name to locate the account\n"+
						"2. Use get_account_health for its current health scores\n"+
						"3. Use get_account_tasks (status=open) and get_account_notes for open work and context\n"+
						"4. Use get_account_nps for recent sentiment\n"+
						"5. Summarize: overall state, risks, and 2-3 recommended next actions",
					account,
				)),
			},
		},
	}, nil
}
