package domain

import "time"

// AuditFields holds standard audit information for domain entities.
type AuditFields struct {
	CreatedAt     time.Time `json:"createdAt"`
	CreatedBy     string    `json:"createdBy"` // UserID reference
	LastUpdatedAt time.Time `json:"lastUpdatedAt"`
	LastUpdatedBy string    `json:"lastUpdatedBy"` // UserID reference
}

// AuditAction identifies what a ledger audit record describes.
type AuditAction string

const (
	AuditActionPosted   AuditAction = "POSTED"
	AuditActionVoided   AuditAction = "VOIDED"
	AuditActionReversed AuditAction = "REVERSED"
)

// AuditRecord captures who did what to a journal entry and why. Records are
// written inside the same transaction as the state change they describe.
type AuditRecord struct {
	AuditID        string      `json:"auditID"`
	OrganizationID string      `json:"organizationID"`
	EntryID        string      `json:"entryID"`
	Action         AuditAction `json:"action"`
	Reason         string      `json:"reason"`
	ActorID        string      `json:"actorID"`
	OccurredAt     time.Time   `json:"occurredAt"`
}
