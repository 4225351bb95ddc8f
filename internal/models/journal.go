package models

// Journal represents a transaction log partition row.
type Journal struct {
	JournalID      string `db:"journal_id"`
	OrganizationID string `db:"organization_id"`
	Name           string `db:"name"`
	JournalType    string `db:"journal_type"`
	AuditFields
}
