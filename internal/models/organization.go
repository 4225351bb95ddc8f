package models

// Organization represents a tenant row.
type Organization struct {
	OrganizationID string `db:"organization_id"`
	Name           string `db:"name"`
	BaseCurrency   string `db:"base_currency"`
	IsActive       bool   `db:"is_active"`
	AuditFields
}

// OrganizationMember represents one user's membership row.
type OrganizationMember struct {
	OrganizationID string `db:"organization_id"`
	UserID         string `db:"user_id"`
	Role           string `db:"role"`
	AuditFields
}
