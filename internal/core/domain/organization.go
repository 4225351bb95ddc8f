package domain

// OrganizationRole defines a user's role within an organization.
type OrganizationRole string

const (
	RoleAdmin    OrganizationRole = "ADMIN"
	RoleMember   OrganizationRole = "MEMBER"
	RoleReadOnly OrganizationRole = "READONLY"
)

// roleRank orders roles by privilege for authorization checks.
var roleRank = map[OrganizationRole]int{
	RoleReadOnly: 1,
	RoleMember:   2,
	RoleAdmin:    3,
}

// Satisfies reports whether a role meets or exceeds the required role.
func (r OrganizationRole) Satisfies(required OrganizationRole) bool {
	return roleRank[r] >= roleRank[required]
}

// Organization is the tenant boundary. Every account, journal, and entry
// belongs to exactly one organization and is never visible across it.
type Organization struct {
	OrganizationID string `json:"organizationID"`
	Name           string `json:"name"`
	BaseCurrency   string `json:"baseCurrency"` // ISO 4217 code
	IsActive       bool   `json:"isActive"`
	AuditFields
}

// OrganizationMember links a user to an organization with a role.
type OrganizationMember struct {
	OrganizationID string           `json:"organizationID"`
	UserID         string           `json:"userID"`
	Role           OrganizationRole `json:"role"`
	AuditFields
}
