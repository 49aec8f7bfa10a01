package vitally

import (
	"context"
	"encoding/json"
	"net/url"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Mock is the demo-mode Transport. It pattern-matches the endpoint
// string against the same routes the live API serves and answers with
// canned data, so every tool can be exercised without a credential or
// network access.
//
// It never fails: unmatched endpoints return an empty object. Output is
// structurally stable for a fixed input; creation timestamps (and the
// identifiers minted for created notes) are the only call-time values.
// Mutations update the in-memory seed, so a created note shows up in the
// next listing and a trait update is visible in the next detail read.
type Mock struct {
	mu       sync.Mutex
	accounts []Account
	notes    []Note
}

// NewMock creates a mock transport with the demo seed loaded.
func NewMock() *Mock {
	return &Mock{
		accounts: seedAccounts(),
		notes:    seedNotes(),
	}
}

// Call answers one API call from the seed. The error is always nil; it
// exists only to satisfy the Transport contract.
func (m *Mock) Call(_ context.Context, endpoint string, method Method, body any) (json.RawMessage, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	path, rawQuery, _ := strings.Cut(endpoint, "?")
	path = strings.Trim(path, "/")
	query, _ := url.ParseQuery(rawQuery)

	switch method {
	case MethodPost:
		return m.create(path, body)
	case MethodPut:
		return m.replace(path, body)
	default:
		return m.read(path, query)
	}
}

func (m *Mock) read(path string, query url.Values) (json.RawMessage, error) {
	switch {
	case path == "accounts":
		return marshal(Page[Account]{Results: m.listAccounts(query)})

	case path == "users/search":
		return marshal(Page[User]{Results: m.searchUsers(query)})

	case path == "customFields":
		return marshal(Page[CustomFieldDefinition]{Results: fieldsFor(query.Get("objectType"))})

	case strings.HasPrefix(path, "notes/"):
		id := strings.TrimPrefix(path, "notes/")
		if note := m.noteByID(id); note != nil {
			return marshal(note)
		}

	case strings.HasPrefix(path, "accounts/"):
		id, sub, _ := strings.Cut(strings.TrimPrefix(path, "accounts/"), "/")
		switch sub {
		case "":
			if acct := m.accountByID(id); acct != nil {
				return marshal(acct)
			}
		case "healthScores":
			return marshal(m.healthFor(id))
		case "notes":
			return marshal(Page[Note]{Results: m.notesFor(id, limitFrom(query))})
		case "tasks":
			return marshal(Page[Task]{Results: tasksFor(id, query.Get("status"), limitFrom(query))})
		case "conversations":
			return marshal(Page[Conversation]{Results: conversationsFor(id, limitFrom(query))})
		case "npsResponses":
			return marshal(Page[NPSResponse]{Results: npsFor(id, limitFrom(query))})
		case "projects":
			return marshal(Page[Project]{Results: projectsFor(id, limitFrom(query))})
		}
	}

	return json.RawMessage(`{}`), nil
}

// create handles POST notes. The new note is appended to the seed so the
// account's note listing reflects it immediately.
func (m *Mock) create(path string, body any) (json.RawMessage, error) {
	if path != "notes" {
		return json.RawMessage(`{}`), nil
	}

	fields, err := bodyFields(body)
	if err != nil {
		return nil, err
	}
	accountID, _ := fields["accountId"].(string)
	content, _ := fields["note"].(string)

	now := time.Now().UTC()
	note := Note{
		ID:        uuid.NewString(),
		Content:   content,
		AuthorID:  "demo-user",
		CreatedAt: &now,
		Account:   m.refFor(accountID),
	}
	m.notes = append(m.notes, note)
	return marshal(note)
}

// replace handles PUT accounts/{id}. Traits are shallow-merged into the
// account's existing trait map, mirroring the upstream merge semantics.
func (m *Mock) replace(path string, body any) (json.RawMessage, error) {
	id, ok := strings.CutPrefix(path, "accounts/")
	if !ok || strings.Contains(id, "/") {
		return json.RawMessage(`{}`), nil
	}

	fields, err := bodyFields(body)
	if err != nil {
		return nil, err
	}
	traits, _ := fields["traits"].(map[string]any)

	for i := range m.accounts {
		if m.accounts[i].ID != id {
			continue
		}
		if m.accounts[i].Traits == nil {
			m.accounts[i].Traits = TraitMap{}
		}
		for k, v := range traits {
			m.accounts[i].Traits[k] = v
		}
		return marshal(m.accounts[i])
	}
	return json.RawMessage(`{}`), nil
}

func (m *Mock) listAccounts(query url.Values) []Account {
	status := query.Get("status")
	limit := limitFrom(query)

	var out []Account
	for _, a := range m.accounts {
		switch status {
		case "churned":
			if a.ChurnedAt == nil {
				continue
			}
		case "", "active":
			if a.ChurnedAt != nil {
				continue
			}
		case "activeOrChurned":
			// keep everything
		}
		out = append(out, a)
		if limit > 0 && len(out) == limit {
			break
		}
	}
	return out
}

func (m *Mock) accountByID(id string) *Account {
	for i := range m.accounts {
		if m.accounts[i].ID == id {
			return &m.accounts[i]
		}
	}
	return nil
}

func (m *Mock) refFor(accountID string) *AccountRef {
	if acct := m.accountByID(accountID); acct != nil {
		return &AccountRef{ID: acct.ID, Name: acct.Name}
	}
	if accountID == "" {
		return nil
	}
	return &AccountRef{ID: accountID}
}

// searchUsers templates the canned users from the query so the output
// reflects whichever filter the caller passed.
func (m *Mock) searchUsers(query url.Values) []User {
	email := query.Get("email")
	externalID := query.Get("externalId")
	subdomain := query.Get("emailSubdomain")

	if email == "" {
		domain := "acme.example"
		if subdomain != "" {
			domain = subdomain
		}
		email = "jane.doe@" + domain
	}
	if externalID == "" {
		externalID = "user-ext-1"
	}

	return []User{
		{
			ID:         "demo-user-1",
			Name:       "Jane Doe",
			Email:      email,
			ExternalID: externalID,
			Account:    &AccountRef{ID: "1", Name: "Acme Corporation"},
		},
	}
}

// healthFor reports the account's seeded score decomposed into three
// component scores. Unknown accounts get the default shape.
func (m *Mock) healthFor(id string) map[string]any {
	overall := 85.0
	if acct := m.accountByID(id); acct != nil && acct.HealthScore != nil {
		overall = *acct.HealthScore
	}
	return map[string]any{
		"overallHealth": overall,
		"components": map[string]any{
			"productUsage":   clampScore(overall + 5),
			"supportTickets": clampScore(overall - 7),
			"engagement":     clampScore(overall + 2),
		},
	}
}

func (m *Mock) notesFor(accountID string, limit int) []Note {
	var out []Note
	for _, n := range m.notes {
		if n.Account == nil || n.Account.ID != accountID {
			continue
		}
		out = append(out, n)
		if limit > 0 && len(out) == limit {
			break
		}
	}
	return out
}

func (m *Mock) noteByID(id string) *Note {
	for i := range m.notes {
		if m.notes[i].ID == id {
			return &m.notes[i]
		}
	}
	return nil
}

func tasksFor(accountID, status string, limit int) []Task {
	ref := &AccountRef{ID: accountID}
	all := []Task{
		{ID: "task-" + accountID + "-1", Name: "Schedule QBR", Status: "open", AssignedTo: "csm-1", DueDate: ts("2026-09-15T00:00:00Z"), Account: ref},
		{ID: "task-" + accountID + "-2", Name: "Review onboarding checklist", Status: "open", AssignedTo: "csm-1", DueDate: ts("2026-09-01T00:00:00Z"), Account: ref},
		{ID: "task-" + accountID + "-3", Name: "Send renewal reminder", Status: "completed", AssignedTo: "csm-2", CompletedAt: ts("2026-08-10T16:00:00Z"), Account: ref},
	}
	var out []Task
	for _, t := range all {
		if status != "" && t.Status != status {
			continue
		}
		out = append(out, t)
		if limit > 0 && len(out) == limit {
			break
		}
	}
	return out
}

func conversationsFor(accountID string, limit int) []Conversation {
	ref := &AccountRef{ID: accountID}
	all := []Conversation{
		{ID: "conv-" + accountID + "-1", Subject: "Onboarding kickoff", Snippet: "Thanks for the walkthrough — the team is excited to get started.", Source: "email", CreatedAt: ts("2026-07-02T09:30:00Z"), Account: ref},
		{ID: "conv-" + accountID + "-2", Subject: "API rate limit question", Snippet: "We're seeing 429s on the exports endpoint during nightly syncs.", Source: "intercom", CreatedAt: ts("2026-08-14T15:05:00Z"), Account: ref},
	}
	if limit > 0 && limit < len(all) {
		all = all[:limit]
	}
	return all
}

func npsFor(accountID string, limit int) []NPSResponse {
	ref := &AccountRef{ID: accountID}
	all := []NPSResponse{
		{ID: "nps-" + accountID + "-1", Score: 9, Feedback: "Support has been fantastic.", UserID: "demo-user-1", UserName: "Jane Doe", RespondedAt: ts("2026-08-01T12:00:00Z"), Account: ref},
		{ID: "nps-" + accountID + "-2", Score: 6, Feedback: "Dashboards are slow to load.", UserID: "demo-user-2", UserName: "Sam Park", RespondedAt: ts("2026-08-20T08:45:00Z"), Account: ref},
	}
	if limit > 0 && limit < len(all) {
		all = all[:limit]
	}
	return all
}

func projectsFor(accountID string, limit int) []Project {
	ref := &AccountRef{ID: accountID}
	all := []Project{
		{ID: "proj-" + accountID + "-1", Name: "Onboarding", Status: "inProgress", TargetDate: ts("2026-10-01T00:00:00Z"), Account: ref},
	}
	if limit > 0 && limit < len(all) {
		all = all[:limit]
	}
	return all
}

func fieldsFor(objectType string) []CustomFieldDefinition {
	byKind := map[string][]CustomFieldDefinition{
		KindAccount: {
			{Label: "Plan", Type: "string", Key: "vitally.custom.plan", CreatedAt: ts("2025-11-03T10:00:00Z")},
			{Label: "Tier", Type: "string", Key: "vitally.custom.tier", CreatedAt: ts("2025-11-03T10:01:00Z")},
			{Label: "Seats Purchased", Type: "number", Key: "vitally.custom.seatsPurchased", CreatedAt: ts("2026-01-12T09:00:00Z")},
		},
		KindUser: {
			{Label: "Role", Type: "string", Key: "vitally.custom.role", CreatedAt: ts("2025-12-01T10:00:00Z")},
		},
		KindProject: {
			{Label: "Executive Sponsor", Type: "string", Key: "vitally.custom.execSponsor", CreatedAt: ts("2026-02-20T14:00:00Z")},
		},
	}
	return byKind[objectType]
}

func seedAccounts() []Account {
	return []Account{
		{
			ID:            "1",
			Name:          "Acme Corporation",
			ExternalID:    "acme",
			HealthScore:   fptr(85),
			MRR:           120000,
			NPSScore:      fptr(62),
			UserCount:     48,
			FirstSeenAt:   ts("2024-03-11T00:00:00Z"),
			LastSeenAt:    ts("2026-08-28T19:22:00Z"),
			NextRenewalAt: ts("2027-03-11T00:00:00Z"),
			CSMID:         "csm-1",
			Segments:      []string{"Enterprise"},
			Traits:        TraitMap{"vitally.custom.tier": "gold"},
		},
		{
			ID:          "2",
			Name:        "Globex Industries",
			ExternalID:  "globex",
			HealthScore: fptr(72),
			MRR:         54000,
			NPSScore:    fptr(41),
			UserCount:   17,
			FirstSeenAt: ts("2025-01-20T00:00:00Z"),
			LastSeenAt:  ts("2026-08-25T11:04:00Z"),
			TrialEndsAt: ts("2026-09-30T00:00:00Z"),
			CSMID:       "csm-2",
			Segments:    []string{"Mid-Market", "Trial"},
		},
		{
			ID:          "3",
			Name:        "Initech",
			ExternalID:  "initech",
			HealthScore: fptr(31),
			MRR:         9000,
			UserCount:   4,
			FirstSeenAt: ts("2023-06-02T00:00:00Z"),
			LastSeenAt:  ts("2026-02-14T10:00:00Z"),
			ChurnedAt:   ts("2026-03-01T00:00:00Z"),
			CSMID:       "csm-1",
			Segments:    []string{"SMB"},
		},
	}
}

func seedNotes() []Note {
	acme := &AccountRef{ID: "1", Name: "Acme Corporation"}
	return []Note{
		{ID: "note-1", Content: "QBR went well; expansion interest in the analytics add-on.", AuthorID: "csm-1", CreatedAt: ts("2026-07-15T17:30:00Z"), Account: acme},
		{ID: "note-2", Content: "Flagged slow dashboard loads; engineering ticket ENG-4112 opened.", AuthorID: "csm-1", CreatedAt: ts("2026-08-21T09:10:00Z"), Account: acme},
	}
}

func marshal(v any) (json.RawMessage, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	return json.RawMessage(data), nil
}

// bodyFields normalizes a request body (struct or map) into a generic
// map by round-tripping through JSON, matching what the wire would carry.
func bodyFields(body any) (map[string]any, error) {
	if body == nil {
		return nil, nil
	}
	data, err := json.Marshal(body)
	if err != nil {
		return nil, err
	}
	var fields map[string]any
	if err := json.Unmarshal(data, &fields); err != nil {
		return nil, err
	}
	return fields, nil
}

func limitFrom(query url.Values) int {
	n, err := strconv.Atoi(query.Get("limit"))
	if err != nil || n < 0 {
		return 0
	}
	return n
}

func clampScore(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return v
}

func fptr(v float64) *float64 { return &v }

func ts(value string) *time.Time {
	t, err := time.Parse(time.RFC3339, value)
	if err != nil {
		panic("mock seed timestamp: " + err.Error())
	}
	return &t
}
