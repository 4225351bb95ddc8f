package repositories

import (
	"context"

	"github.com/stabulum/stabulum/internal/core/domain"
)

// OrganizationRepository persists organizations and their memberships.
type OrganizationRepository interface {
	SaveOrganization(ctx context.Context, org domain.Organization) error
	FindOrganizationByID(ctx context.Context, organizationID string) (*domain.Organization, error)
	ListOrganizationsByUser(ctx context.Context, userID string) ([]domain.Organization, error)
	SaveMember(ctx context.Context, member domain.OrganizationMember) error
	// FindMember returns apperrors.ErrNotFound when the user is not a member.
	FindMember(ctx context.Context, organizationID string, userID string) (*domain.OrganizationMember, error)
}
