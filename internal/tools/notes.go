package tools

import (
	"context"
	"fmt"
	"net/url"
	"time"

	"github.com/cs-tools/vitally-mcp/internal/vitally"
	"github.com/mark3labs/mcp-go/mcp"
)

// AccountNotesTool handles the get_account_notes tool.
type AccountNotesTool struct {
	api vitally.Transport
}

// NewAccountNotesTool creates an AccountNotesTool.
func NewAccountNotesTool(api vitally.Transport) *AccountNotesTool {
	return &AccountNotesTool{api: api}
}

// Definition returns the MCP tool definition for registration.
func (t *AccountNotesTool) Definition() mcp.Tool {
	return mcp.NewTool("get_account_notes",
		mcp.WithDescription("Fetch notes recorded against a Vitally account."),
		mcp.WithString("account_id",
			mcp.Required(),
			mcp.Description("Vitally account identifier"),
		),
		mcp.WithNumber("limit",
			mcp.DefaultNumber(10),
			mcp.Description("Maximum notes to return (default 10)"),
		),
	)
}

type noteSummary struct {
	ID        string     `json:"id"`
	Content   string     `json:"content"`
	AuthorID  string     `json:"authorId,omitempty"`
	CreatedAt *time.Time `json:"createdAt,omitempty"`
}

// Handle processes the get_account_notes call.
func (t *AccountNotesTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	accountID := req.GetString("account_id", "")
	if accountID == "" {
		return mcp.NewToolResultError("'account_id' is required"), nil
	}
	limit := intArg(req, "limit", 10)

	var page vitally.Page[vitally.Note]
	endpoint := subresourceEndpoint(accountID, "notes", limit, nil)
	if err := callAndDecode(ctx, t.api, endpoint, vitally.MethodGet, nil, &page); err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("fetching notes for account %s: %v", accountID, err)), nil
	}

	notes := make([]noteSummary, 0, len(page.Results))
	for _, n := range page.Results {
		notes = append(notes, noteSummary{
			ID:        n.ID,
			Content:   n.Content,
			AuthorID:  n.AuthorID,
			CreatedAt: n.CreatedAt,
		})
	}

	return jsonResult(struct {
		AccountID string        `json:"accountId"`
		Count     int           `json:"count"`
		Notes     []noteSummary `json:"notes"`
	}{AccountID: accountID, Count: len(notes), Notes: notes})
}

// NoteByIDTool handles the get_note_by_id tool, returning the full note.
type NoteByIDTool struct {
	api vitally.Transport
}

// NewNoteByIDTool creates a NoteByIDTool.
func NewNoteByIDTool(api vitally.Transport) *NoteByIDTool {
	return &NoteByIDTool{api: api}
}

// Definition returns the MCP tool definition for registration.
func (t *NoteByIDTool) Definition() mcp.Tool {
	return mcp.NewTool("get_note_by_id",
		mcp.WithDescription("Fetch a single Vitally note in full by its identifier."),
		mcp.WithString("note_id",
			mcp.Required(),
			mcp.Description("Vitally note identifier"),
		),
	)
}

// Handle processes the get_note_by_id call.
func (t *NoteByIDTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	noteID := req.GetString("note_id", "")
	if noteID == "" {
		return mcp.NewToolResultError("'note_id' is required"), nil
	}

	note, err := callRaw(ctx, t.api, "notes/"+url.PathEscape(noteID))
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("fetching note %s: %v", noteID, err)), nil
	}
	return jsonResult(note)
}

// CreateAccountNoteTool handles the create_account_note tool.
type CreateAccountNoteTool struct {
	api vitally.Transport
}

// NewCreateAccountNoteTool creates a CreateAccountNoteTool.
func NewCreateAccountNoteTool(api vitally.Transport) *CreateAccountNoteTool {
	return &CreateAccountNoteTool{api: api}
}

// Definition returns the MCP tool definition for registration.
func (t *CreateAccountNoteTool) Definition() mcp.Tool {
	return mcp.NewTool("create_account_note",
		mcp.WithDescription("Create a note against a Vitally account."),
		mcp.WithString("account_id",
			mcp.Required(),
			mcp.Description("Vitally account identifier"),
		),
		mcp.WithString("content",
			mcp.Required(),
			mcp.Description("The note body"),
		),
	)
}

type noteCreateRequest struct {
	AccountID string `json:"accountId"`
	Note      string `json:"note"`
}

// Handle processes the create_account_note call. Only the created
// note's identifier, content, and creation time are returned.
func (t *CreateAccountNoteTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	accountID := req.GetString("account_id", "")
	if accountID == "" {
		return mcp.NewToolResultError("'account_id' is required"), nil
	}
	content := req.GetString("content", "")
	if content == "" {
		return mcp.NewToolResultError("'content' is required — provide the note body"), nil
	}

	var created vitally.Note
	body := noteCreateRequest{AccountID: accountID, Note: content}
	if err := callAndDecode(ctx, t.api, "notes", vitally.MethodPost, body, &created); err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("creating note for account %s: %v", accountID, err)), nil
	}

	return jsonResult(struct {
		ID        string     `json:"id"`
		Content   string     `json:"content"`
		CreatedAt *time.Time `json:"createdAt,omitempty"`
	}{ID: created.ID, Content: created.Content, CreatedAt: created.CreatedAt})
}
