package entity

import (
	"context"
	"time"
)

type Temperature string

const (
	TemperatureCold Temperature = "cold"
	TemperatureWarm Temperature = "warm"
	TemperatureHot  Temperature = "hot"
)

// Workflow states of a lead row. This service only ever writes StatusPending;
// the others are set by the people working the sheet.
const (
	StatusPending   = "Pending"
	StatusContacted = "Contacted"
	StatusQualified = "Qualified"
	StatusClosed    = "Closed"
)

const DefaultSource = "api"

// Lead is a single form submission, keyed by Email in every store.
type Lead struct {
	Email       string      `json:"email"`
	Name        string      `json:"name,omitempty"`
	Company     string      `json:"company,omitempty"`
	Message     string      `json:"message,omitempty"`
	Source      string      `json:"source,omitempty"`
	QuizResult  string      `json:"result,omitempty"`
	PainPoint   string      `json:"painPoint,omitempty"`
	Score       int         `json:"score"`
	Temperature Temperature `json:"temperature"`
	Status      string      `json:"status"`
	CreatedAt   time.Time   `json:"createdAt"`
	UpdatedAt   time.Time   `json:"updatedAt"`
}

// NewLead fills the defaults a first submission gets.
func NewLead(email string) *Lead {
	return &Lead{
		Email:  email,
		Source: DefaultSource,
		Status: StatusPending,
	}
}

type ReconcileAction string

const (
	ActionUpdated  ReconcileAction = "updated"
	ActionAppended ReconcileAction = "appended"
)

// ReconcileResult is what the row store did with a lead.
type ReconcileResult struct {
	Action ReconcileAction `json:"action"`
	// Position is the 1-based sheet row. Zero when an append did not report it.
	Position  int       `json:"position,omitempty"`
	CreatedAt time.Time `json:"-"`
}

// RowStore is the system of record: one row per email, reconciled by
// read-modify-write. Two concurrent first submissions for the same email can
// both append; the store offers no way to prevent it.
type RowStore interface {
	Upsert(ctx context.Context, lead *Lead, now time.Time) (ReconcileResult, error)
}

// DocumentStore is the secondary, schema-less store. Set replaces the whole
// document at key atomically; Add creates a document with a store-chosen ID.
type DocumentStore interface {
	Set(ctx context.Context, collection, key string, fields map[string]any) error
	Add(ctx context.Context, collection string, fields map[string]any) (string, error)
}

const (
	CollectionLeads     = "leads"
	CollectionFollowups = "followups"
	CollectionWaitlist  = "waitlist"
)
