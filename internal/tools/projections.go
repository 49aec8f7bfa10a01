package tools

import (
	"time"

	"github.com/cs-tools/vitally-mcp/internal/resources"
	"github.com/cs-tools/vitally-mcp/internal/vitally"
)

// accountSummary is the compact account projection used by the search
// and find operations.
type accountSummary struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	ExternalID  string   `json:"externalId,omitempty"`
	HealthScore *float64 `json:"healthScore,omitempty"`
	MRR         float64  `json:"mrr,omitempty"`
	CSMID       string   `json:"csmId,omitempty"`
	URI         string   `json:"uri"`
}

// accountOverview is the wider projection returned by refresh_accounts:
// every field relevant to success tracking.
type accountOverview struct {
	ID            string     `json:"id"`
	Name          string     `json:"name"`
	ExternalID    string     `json:"externalId,omitempty"`
	HealthScore   *float64   `json:"healthScore,omitempty"`
	MRR           float64    `json:"mrr,omitempty"`
	NPSScore      *float64   `json:"npsScore,omitempty"`
	UserCount     int        `json:"userCount,omitempty"`
	LastSeenAt    *time.Time `json:"lastSeenAt,omitempty"`
	ChurnedAt     *time.Time `json:"churnedAt,omitempty"`
	NextRenewalAt *time.Time `json:"nextRenewalAt,omitempty"`
	TrialEndsAt   *time.Time `json:"trialEndsAt,omitempty"`
	CSMID         string     `json:"csmId,omitempty"`
	Segments      []string   `json:"segments,omitempty"`
	URI           string     `json:"uri"`
}

func summarize(a vitally.Account) accountSummary {
	return accountSummary{
		ID:          a.ID,
		Name:        a.Name,
		ExternalID:  a.ExternalID,
		HealthScore: a.HealthScore,
		MRR:         a.MRR,
		CSMID:       a.CSMID,
		URI:         resources.AccountURI(a.ID),
	}
}

func summarizeAll(accounts []vitally.Account) []accountSummary {
	out := make([]accountSummary, 0, len(accounts))
	for _, a := range accounts {
		out = append(out, summarize(a))
	}
	return out
}

func overview(a vitally.Account) accountOverview {
	return accountOverview{
		ID:            a.ID,
		Name:          a.Name,
		ExternalID:    a.ExternalID,
		HealthScore:   a.HealthScore,
		MRR:           a.MRR,
		NPSScore:      a.NPSScore,
		UserCount:     a.UserCount,
		LastSeenAt:    a.LastSeenAt,
		ChurnedAt:     a.ChurnedAt,
		NextRenewalAt: a.NextRenewalAt,
		TrialEndsAt:   a.TrialEndsAt,
		CSMID:         a.CSMID,
		Segments:      a.Segments,
		URI:           resources.AccountURI(a.ID),
	}
}
