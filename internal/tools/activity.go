package tools

import (
	"context"
	"fmt"
	"net/url"
	"time"

	"github.com/cs-tools/vitally-mcp/internal/vitally"
	"github.com/mark3labs/mcp-go/mcp"
)

// The four account activity feeds (conversations, tasks, NPS responses,
// projects) share the same shape: one paginated sub-resource call per
// invocation, projected into a bounded per-kind field list.

// AccountConversationsTool handles the get_account_conversations tool.
type AccountConversationsTool struct {
	api vitally.Transport
}

// NewAccountConversationsTool creates an AccountConversationsTool.
func NewAccountConversationsTool(api vitally.Transport) *AccountConversationsTool {
	return &AccountConversationsTool{api: api}
}

// Definition returns the MCP tool definition for registration.
func (t *AccountConversationsTool) Definition() mcp.Tool {
	return mcp.NewTool("get_account_conversations",
		mcp.WithDescription("Fetch recent conversations for a Vitally account."),
		mcp.WithString("account_id",
			mcp.Required(),
			mcp.Description("Vitally account identifier"),
		),
		mcp.WithNumber("limit",
			mcp.DefaultNumber(10),
			mcp.Description("Maximum conversations to return (default 10)"),
		),
	)
}

type conversationSummary struct {
	ID        string     `json:"id"`
	Subject   string     `json:"subject,omitempty"`
	Snippet   string     `json:"snippet,omitempty"`
	Source    string     `json:"source,omitempty"`
	CreatedAt *time.Time `json:"createdAt,omitempty"`
}

// Handle processes the get_account_conversations call.
func (t *AccountConversationsTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	accountID := req.GetString("account_id", "")
	if accountID == "" {
		return mcp.NewToolResultError("'account_id' is required"), nil
	}
	limit := intArg(req, "limit", 10)

	var page vitally.Page[vitally.Conversation]
	endpoint := subresourceEndpoint(accountID, "conversations", limit, nil)
	if err := callAndDecode(ctx, t.api, endpoint, vitally.MethodGet, nil, &page); err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("fetching conversations for account %s: %v", accountID, err)), nil
	}

	conversations := make([]conversationSummary, 0, len(page.Results))
	for _, c := range page.Results {
		conversations = append(conversations, conversationSummary{
			ID:        c.ID,
			Subject:   c.Subject,
			Snippet:   c.Snippet,
			Source:    c.Source,
			CreatedAt: c.CreatedAt,
		})
	}

	return jsonResult(struct {
		AccountID     string                `json:"accountId"`
		Count         int                   `json:"count"`
		Conversations []conversationSummary `json:"conversations"`
	}{AccountID: accountID, Count: len(conversations), Conversations: conversations})
}

// AccountTasksTool handles the get_account_tasks tool. The optional
// status filter is passed through as a query parameter, not applied
// locally.
type AccountTasksTool struct {
	api vitally.Transport
}

// NewAccountTasksTool creates an AccountTasksTool.
func NewAccountTasksTool(api vitally.Transport) *AccountTasksTool {
	return &AccountTasksTool{api: api}
}

// Definition returns the MCP tool definition for registration.
func (t *AccountTasksTool) Definition() mcp.Tool {
	return mcp.NewTool("get_account_tasks",
		mcp.WithDescription("Fetch tasks for a Vitally account, optionally filtered by status."),
		mcp.WithString("account_id",
			mcp.Required(),
			mcp.Description("Vitally account identifier"),
		),
		mcp.WithNumber("limit",
			mcp.DefaultNumber(10),
			mcp.Description("Maximum tasks to return (default 10)"),
		),
		mcp.WithString("status",
			mcp.Description("Optional status filter, e.g. 'open' or 'completed'"),
		),
	)
}

type taskSummary struct {
	ID          string     `json:"id"`
	Name        string     `json:"name"`
	Status      string     `json:"status,omitempty"`
	AssignedTo  string     `json:"assignedTo,omitempty"`
	DueDate     *time.Time `json:"dueDate,omitempty"`
	CompletedAt *time.Time `json:"completedAt,omitempty"`
}

// Handle processes the get_account_tasks call.
func (t *AccountTasksTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	accountID := req.GetString("account_id", "")
	if accountID == "" {
		return mcp.NewToolResultError("'account_id' is required"), nil
	}
	limit := intArg(req, "limit", 10)

	extra := url.Values{}
	if status := req.GetString("status", ""); status != "" {
		extra.Set("status", status)
	}

	var page vitally.Page[vitally.Task]
	endpoint := subresourceEndpoint(accountID, "tasks", limit, extra)
	if err := callAndDecode(ctx, t.api, endpoint, vitally.MethodGet, nil, &page); err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("fetching tasks for account %s: %v", accountID, err)), nil
	}

	tasks := make([]taskSummary, 0, len(page.Results))
	for _, task := range page.Results {
		tasks = append(tasks, taskSummary{
			ID:          task.ID,
			Name:        task.Name,
			Status:      task.Status,
			AssignedTo:  task.AssignedTo,
			DueDate:     task.DueDate,
			CompletedAt: task.CompletedAt,
		})
	}

	return jsonResult(struct {
		AccountID string        `json:"accountId"`
		Count     int           `json:"count"`
		Tasks     []taskSummary `json:"tasks"`
	}{AccountID: accountID, Count: len(tasks), Tasks: tasks})
}

// AccountNPSTool handles the get_account_nps tool.
type AccountNPSTool struct {
	api vitally.Transport
}

// NewAccountNPSTool creates an AccountNPSTool.
func NewAccountNPSTool(api vitally.Transport) *AccountNPSTool {
	return &AccountNPSTool{api: api}
}

// Definition returns the MCP tool definition for registration.
func (t *AccountNPSTool) Definition() mcp.Tool {
	return mcp.NewTool("get_account_nps",
		mcp.WithDescription("Fetch NPS survey responses for a Vitally account."),
		mcp.WithString("account_id",
			mcp.Required(),
			mcp.Description("Vitally account identifier"),
		),
		mcp.WithNumber("limit",
			mcp.DefaultNumber(10),
			mcp.Description("Maximum responses to return (default 10)"),
		),
	)
}

type npsSummary struct {
	ID          string     `json:"id"`
	Score       int        `json:"score"`
	Feedback    string     `json:"feedback,omitempty"`
	UserName    string     `json:"userName,omitempty"`
	RespondedAt *time.Time `json:"respondedAt,omitempty"`
}

// Handle processes the get_account_nps call.
func (t *AccountNPSTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	accountID := req.GetString("account_id", "")
	if accountID == "" {
		return mcp.NewToolResultError("'account_id' is required"), nil
	}
	limit := intArg(req, "limit", 10)

	var page vitally.Page[vitally.NPSResponse]
	endpoint := subresourceEndpoint(accountID, "npsResponses", limit, nil)
	if err := callAndDecode(ctx, t.api, endpoint, vitally.MethodGet, nil, &page); err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("fetching NPS responses for account %s: %v", accountID, err)), nil
	}

	responses := make([]npsSummary, 0, len(page.Results))
	for _, r := range page.Results {
		responses = append(responses, npsSummary{
			ID:          r.ID,
			Score:       r.Score,
			Feedback:    r.Feedback,
			UserName:    r.UserName,
			RespondedAt: r.RespondedAt,
		})
	}

	return jsonResult(struct {
		AccountID string       `json:"accountId"`
		Count     int          `json:"count"`
		Responses []npsSummary `json:"responses"`
	}{AccountID: accountID, Count: len(responses), Responses: responses})
}

// AccountProjectsTool handles the get_account_projects tool.
type AccountProjectsTool struct {
	api vitally.Transport
}

// NewAccountProjectsTool creates an AccountProjectsTool.
func NewAccountProjectsTool(api vitally.Transport) *AccountProjectsTool {
	return &AccountProjectsTool{api: api}
}

// Definition returns the MCP tool definition for registration.
func (t *AccountProjectsTool) Definition() mcp.Tool {
	return mcp.NewTool("get_account_projects",
		mcp.WithDescription("Fetch projects (e.g. onboarding engagements) for a Vitally account."),
		mcp.WithString("account_id",
			mcp.Required(),
			mcp.Description("Vitally account identifier"),
		),
		mcp.WithNumber("limit",
			mcp.DefaultNumber(10),
			mcp.Description("Maximum projects to return (default 10)"),
		),
	)
}

type projectSummary struct {
	ID          string     `json:"id"`
	Name        string     `json:"name"`
	Status      string     `json:"status,omitempty"`
	TargetDate  *time.Time `json:"targetDate,omitempty"`
	CompletedAt *time.Time `json:"completedAt,omitempty"`
}

// Handle processes the get_account_projects call.
func (t *AccountProjectsTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	accountID := req.GetString("account_id", "")
	if accountID == "" {
		return mcp.NewToolResultError("'account_id' is required"), nil
	}
	limit := intArg(req, "limit", 10)

	var page vitally.Page[vitally.Project]
	endpoint := subresourceEndpoint(accountID, "projects", limit, nil)
	if err := callAndDecode(ctx, t.api, endpoint, vitally.MethodGet, nil, &page); err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("fetching projects for account %s: %v", accountID, err)), nil
	}

	projects := make([]projectSummary, 0, len(page.Results))
	for _, p := range page.Results {
		projects = append(projects, projectSummary{
			ID:          p.ID,
			Name:        p.Name,
			Status:      p.Status,
			TargetDate:  p.TargetDate,
			CompletedAt: p.CompletedAt,
		})
	}

	return jsonResult(struct {
		AccountID string           `json:"accountId"`
		Count     int              `json:"count"`
		Projects  []projectSummary `json:"projects"`
	}{AccountID: accountID, Count: len(projects), Projects: projects})
}
