// Package vitally defines the domain types and transport layer for the
// Vitally customer-success REST API.
//
// Two transports implement the same contract: the live HTTP client and
// the demo-mode mock responder. Everything above this package is written
// against the Transport interface and never learns which one is serving.
package vitally

import "time"

// TraitMap holds an account's custom traits. Keys are namespaced strings
// defined in Vitally (e.g. "vitally.custom.plan") and are opaque here;
// values are whatever JSON scalar the platform stored (string, number,
// boolean, or null). Trait keys are never strongly typed locally — they
// are discovered at runtime via the customFields listing.
type TraitMap map[string]any

// Account is a customer record as returned by the Vitally REST API.
// The ID is immutable once created upstream.
type Account struct {
	ID            string     `json:"id"`
	Name          string     `json:"name"`
	ExternalID    string     `json:"externalId,omitempty"`
	HealthScore   *float64   `json:"healthScore,omitempty"`
	MRR           float64    `json:"mrr,omitempty"`
	NPSScore      *float64   `json:"npsScore,omitempty"`
	UserCount     int        `json:"userCount,omitempty"`
	FirstSeenAt   *time.Time `json:"firstSeenTimestamp,omitempty"`
	LastSeenAt    *time.Time `json:"lastSeenTimestamp,omitempty"`
	ChurnedAt     *time.Time `json:"churnedAt,omitempty"`
	NextRenewalAt *time.Time `json:"nextRenewalDate,omitempty"`
	TrialEndsAt   *time.Time `json:"trialEndDate,omitempty"`
	CSMID         string     `json:"csmId,omitempty"`
	Segments      []string   `json:"segments,omitempty"`
	Traits        TraitMap   `json:"traits,omitempty"`
}

// AccountRef is the denormalized account hint carried by objects that
// belong to an account. It is a display aid (identifier + name), not an
// ownership edge to a live Account.
type AccountRef struct {
	ID   string `json:"id"`
	Name string `json:"name,omitempty"`
}

// User is a person tracked inside one or more accounts.
type User struct {
	ID         string      `json:"id"`
	Name       string      `json:"name,omitempty"`
	Email      string      `json:"email,omitempty"`
	ExternalID string      `json:"externalId,omitempty"`
	Account    *AccountRef `json:"account,omitempty"`
}

// Note is a free-form note attached to an account. The Vitally API names
// the body field "note".
type Note struct {
	ID        string      `json:"id"`
	Content   string      `json:"note"`
	AuthorID  string      `json:"authorId,omitempty"`
	CreatedAt *time.Time  `json:"createdAt,omitempty"`
	Account   *AccountRef `json:"account,omitempty"`
}

// Task is a to-do item scoped to an account.
type Task struct {
	ID          string      `json:"id"`
	Name        string      `json:"name"`
	Description string      `json:"description,omitempty"`
	Status      string      `json:"status,omitempty"`
	AssignedTo  string      `json:"assignedTo,omitempty"`
	DueDate     *time.Time  `json:"dueDate,omitempty"`
	CompletedAt *time.Time  `json:"completedAt,omitempty"`
	Account     *AccountRef `json:"account,omitempty"`
}

// Conversation is a support or success conversation tied to an account.
type Conversation struct {
	ID        string      `json:"id"`
	Subject   string      `json:"subject,omitempty"`
	Snippet   string      `json:"snippet,omitempty"`
	Source    string      `json:"source,omitempty"`
	CreatedAt *time.Time  `json:"createdAt,omitempty"`
	Account   *AccountRef `json:"account,omitempty"`
}

// NPSResponse is a single Net Promoter Score survey answer.
type NPSResponse struct {
	ID          string      `json:"id"`
	Score       int         `json:"score"`
	Feedback    string      `json:"feedback,omitempty"`
	UserID      string      `json:"userId,omitempty"`
	UserName    string      `json:"userName,omitempty"`
	RespondedAt *time.Time  `json:"respondedAt,omitempty"`
	Account     *AccountRef `json:"account,omitempty"`
}

// Project is a tracked engagement (e.g. onboarding) against an account.
type Project struct {
	ID          string      `json:"id"`
	Name        string      `json:"name"`
	Status      string      `json:"status,omitempty"`
	TargetDate  *time.Time  `json:"targetDate,omitempty"`
	CompletedAt *time.Time  `json:"completedAt,omitempty"`
	Account     *AccountRef `json:"account,omitempty"`
}

// CustomFieldDefinition describes one custom trait key declared in
// Vitally. Read-only from this server's perspective.
type CustomFieldDefinition struct {
	Label     string     `json:"label"`
	Type      string     `json:"type"`
	Key       string     `json:"key"`
	CreatedAt *time.Time `json:"createdAt,omitempty"`
}

// Object kinds a custom field definition can be scoped to.
const (
	KindAccount      = "account"
	KindUser         = "user"
	KindNote         = "note"
	KindTask         = "task"
	KindProject      = "project"
	KindOrganization = "organization"
)

// ObjectKinds returns the fixed enumeration of custom-field scopes in
// declaration order.
func ObjectKinds() []string {
	return []string{KindAccount, KindUser, KindNote, KindTask, KindProject, KindOrganization}
}

// ValidObjectKind reports whether kind is one of the six custom-field
// scopes.
func ValidObjectKind(kind string) bool {
	switch kind {
	case KindAccount, KindUser, KindNote, KindTask, KindProject, KindOrganization:
		return true
	}
	return false
}

// Page is the Vitally pagination envelope. Every listing endpoint wraps
// its records in {results, next}. This server is single-page only: the
// next cursor is decoded but never followed.
type Page[T any] struct {
	Results []T     `json:"results"`
	Next    *string `json:"next,omitempty"`
}
