package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// JournalEntry represents an entry header row.
type JournalEntry struct {
	EntryID            string     `db:"entry_id"`
	OrganizationID     string     `db:"organization_id"`
	JournalID          string     `db:"journal_id"`
	EntryNumber        string     `db:"entry_number"`
	EntryDate          time.Time  `db:"entry_date"`
	Description        string     `db:"description"`
	Reference          string     `db:"reference"`
	Status             string     `db:"status"`
	PostedAt           *time.Time `db:"posted_at"`            // Nullable
	ReversedByEntryID  *string    `db:"reversed_by_entry_id"` // Nullable
	ReversalOfEntryID  *string    `db:"reversal_of_entry_id"` // Nullable
	ExternalPaymentRef *string    `db:"external_payment_ref"` // Nullable, unique per organization
	AuditFields
}

// JournalLine represents one posting row within an entry.
type JournalLine struct {
	LineID       string           `db:"line_id"`
	EntryID      string           `db:"entry_id"`
	LineNumber   int              `db:"line_number"`
	AccountID    string           `db:"account_id"`
	Description  string           `db:"description"`
	Debit        decimal.Decimal  `db:"debit"`
	Credit       decimal.Decimal  `db:"credit"`
	CustomerID   *string          `db:"customer_id"`   // Nullable
	VendorID     *string          `db:"vendor_id"`     // Nullable
	ProjectID    *string          `db:"project_id"`    // Nullable
	DepartmentID *string          `db:"department_id"` // Nullable
	TokenAmount  *decimal.Decimal `db:"token_amount"`  // Nullable
	Reconciled   bool             `db:"reconciled"`
	AuditFields
}

// AuditRecord represents a posting-engine audit trail row.
type AuditRecord struct {
	AuditID        string    `db:"audit_id"`
	OrganizationID string    `db:"organization_id"`
	EntryID        string    `db:"entry_id"`
	Action         string    `db:"action"`
	Reason         string    `db:"reason"`
	ActorID        string    `db:"actor_id"`
	OccurredAt     time.Time `db:"occurred_at"`
}
