package mapping

import (
	"github.com/stabulum/stabulum/internal/core/domain"
	"github.com/stabulum/stabulum/internal/models"
)

// ToModelOrganization converts a domain Organization to a model Organization
func ToModelOrganization(d domain.Organization) models.Organization {
	return models.Organization{
		OrganizationID: d.OrganizationID,
		Name:           d.Name,
		BaseCurrency:   d.BaseCurrency,
		IsActive:       d.IsActive,
		AuditFields:    ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainOrganization converts a model Organization to a domain Organization
func ToDomainOrganization(m models.Organization) domain.Organization {
	return domain.Organization{
		OrganizationID: m.OrganizationID,
		Name:           m.Name,
		BaseCurrency:   m.BaseCurrency,
		IsActive:       m.IsActive,
		AuditFields:    ToDomainAuditFields(m.AuditFields),
	}
}

// ToModelOrganizationMember converts a domain OrganizationMember to its model
func ToModelOrganizationMember(d domain.OrganizationMember) models.OrganizationMember {
	return models.OrganizationMember{
		OrganizationID: d.OrganizationID,
		UserID:         d.UserID,
		Role:           string(d.Role),
		AuditFields:    ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainOrganizationMember converts a model OrganizationMember to its domain
func ToDomainOrganizationMember(m models.OrganizationMember) domain.OrganizationMember {
	return domain.OrganizationMember{
		OrganizationID: m.OrganizationID,
		UserID:         m.UserID,
		Role:           domain.OrganizationRole(m.Role),
		AuditFields:    ToDomainAuditFields(m.AuditFields),
	}
}
