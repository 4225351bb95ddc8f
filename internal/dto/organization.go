package dto

import (
	"github.com/stabulum/stabulum/internal/core/domain"
)

// CreateOrganizationRequest defines the payload for creating an organization.
type CreateOrganizationRequest struct {
	Name         string `json:"name" binding:"required"`
	BaseCurrency string `json:"baseCurrency" binding:"required,len=3"`
}

// AddMemberRequest defines the payload for adding a member to an organization.
type AddMemberRequest struct {
	UserID string `json:"userID" binding:"required"`
	Role   string `json:"role" binding:"required,oneof=ADMIN MEMBER READONLY"`
}

// OrganizationResponse defines the data returned for an organization.
type OrganizationResponse struct {
	OrganizationID string `json:"organizationID"`
	Name           string `json:"name"`
	BaseCurrency   string `json:"baseCurrency"`
	IsActive       bool   `json:"isActive"`
}

// ToOrganizationResponse converts a domain Organization to its response DTO.
func ToOrganizationResponse(org *domain.Organization) OrganizationResponse {
	return OrganizationResponse{
		OrganizationID: org.OrganizationID,
		Name:           org.Name,
		BaseCurrency:   org.BaseCurrency,
		IsActive:       org.IsActive,
	}
}

// ToOrganizationResponses converts a slice of organizations.
func ToOrganizationResponses(orgs []domain.Organization) []OrganizationResponse {
	responses := make([]OrganizationResponse, len(orgs))
	for i := range orgs {
		responses[i] = ToOrganizationResponse(&orgs[i])
	}
	return responses
}
