package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/stabulum/stabulum/internal/apperrors"
	"github.com/stabulum/stabulum/internal/core/domain"
	portsrepo "github.com/stabulum/stabulum/internal/core/ports/repositories"
	portssvc "github.com/stabulum/stabulum/internal/core/ports/services"
	"github.com/stabulum/stabulum/internal/dto"
)

// organizationService manages tenants, memberships, and authorization.
type organizationService struct {
	BaseService
	orgRepo     portsrepo.OrganizationRepository
	journalRepo portsrepo.JournalRepository
}

// NewOrganizationService creates a new organization service. The journal
// repository is used to seed the default journal set for new organizations.
func NewOrganizationService(orgRepo portsrepo.OrganizationRepository, journalRepo portsrepo.JournalRepository) portssvc.OrganizationSvcFacade {
	return &organizationService{
		orgRepo:     orgRepo,
		journalRepo: journalRepo,
	}
}

var _ portssvc.OrganizationSvcFacade = (*organizationService)(nil)

// AuthorizeUserAction checks membership and role. Non-members get
// ErrNotFound so the organization's existence is not leaked.
func (s *organizationService) AuthorizeUserAction(ctx context.Context, userID string, organizationID string, required domain.OrganizationRole) error {
	member, err := s.orgRepo.FindMember(ctx, organizationID, userID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return apperrors.ErrNotFound
		}
		return fmt.Errorf("failed to check membership: %w", err)
	}
	if !member.Role.Satisfies(required) {
		return fmt.Errorf("%w: role %s required", apperrors.ErrForbidden, required)
	}
	return nil
}

// CreateOrganization creates an organization, makes the creator an admin, and
// seeds the default journal partitions.
func (s *organizationService) CreateOrganization(ctx context.Context, req dto.CreateOrganizationRequest, creatorUserID string) (*domain.Organization, error) {
	now := time.Now().UTC()
	audit := domain.AuditFields{
		CreatedAt:     now,
		CreatedBy:     creatorUserID,
		LastUpdatedAt: now,
		LastUpdatedBy: creatorUserID,
	}

	org := domain.Organization{
		OrganizationID: uuid.NewString(),
		Name:           req.Name,
		BaseCurrency:   req.BaseCurrency,
		IsActive:       true,
		AuditFields:    audit,
	}

	if err := s.orgRepo.SaveOrganization(ctx, org); err != nil {
		s.LogError(ctx, err, "Failed to save organization", slog.String("name", req.Name))
		return nil, fmt.Errorf("failed to save organization: %w", err)
	}

	member := domain.OrganizationMember{
		OrganizationID: org.OrganizationID,
		UserID:         creatorUserID,
		Role:           domain.RoleAdmin,
		AuditFields:    audit,
	}
	if err := s.orgRepo.SaveMember(ctx, member); err != nil {
		s.LogError(ctx, err, "Failed to save creator membership", slog.String("organization_id", org.OrganizationID))
		return nil, fmt.Errorf("failed to save membership: %w", err)
	}

	for _, j := range domain.DefaultJournals() {
		journal := domain.Journal{
			JournalID:      uuid.NewString(),
			OrganizationID: org.OrganizationID,
			Name:           j.Name,
			JournalType:    j.Type,
			AuditFields:    audit,
		}
		if err := s.journalRepo.SaveJournal(ctx, journal); err != nil {
			s.LogError(ctx, err, "Failed to seed default journal",
				slog.String("organization_id", org.OrganizationID),
				slog.String("journal_type", string(j.Type)))
			return nil, fmt.Errorf("failed to seed default journals: %w", err)
		}
	}

	s.LogInfo(ctx, "Organization created successfully", slog.String("organization_id", org.OrganizationID))
	return &org, nil
}

// GetOrganizationByID retrieves an organization the user is a member of.
func (s *organizationService) GetOrganizationByID(ctx context.Context, organizationID string, userID string) (*domain.Organization, error) {
	if err := s.AuthorizeUserAction(ctx, userID, organizationID, domain.RoleReadOnly); err != nil {
		return nil, err
	}

	org, err := s.orgRepo.FindOrganizationByID(ctx, organizationID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to find organization", slog.String("organization_id", organizationID))
		}
		return nil, err
	}
	return org, nil
}

// ListOrganizationsForUser lists all organizations the user belongs to.
func (s *organizationService) ListOrganizationsForUser(ctx context.Context, userID string) ([]domain.Organization, error) {
	orgs, err := s.orgRepo.ListOrganizationsByUser(ctx, userID)
	if err != nil {
		s.LogError(ctx, err, "Failed to list organizations", slog.String("user_id", userID))
		return nil, fmt.Errorf("failed to list organizations: %w", err)
	}
	if orgs == nil {
		orgs = []domain.Organization{}
	}
	return orgs, nil
}

// AddMember adds a user to an organization. Requires admin role.
func (s *organizationService) AddMember(ctx context.Context, organizationID string, req dto.AddMemberRequest, actorUserID string) error {
	if err := s.AuthorizeUserAction(ctx, actorUserID, organizationID, domain.RoleAdmin); err != nil {
		return err
	}

	if _, err := s.orgRepo.FindMember(ctx, organizationID, req.UserID); err == nil {
		return fmt.Errorf("%w: user %s is already a member", apperrors.ErrDuplicate, req.UserID)
	} else if !errors.Is(err, apperrors.ErrNotFound) {
		return fmt.Errorf("failed to check existing membership: %w", err)
	}

	now := time.Now().UTC()
	member := domain.OrganizationMember{
		OrganizationID: organizationID,
		UserID:         req.UserID,
		Role:           domain.OrganizationRole(req.Role),
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     actorUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: actorUserID,
		},
	}
	if err := s.orgRepo.SaveMember(ctx, member); err != nil {
		s.LogError(ctx, err, "Failed to save member",
			slog.String("organization_id", organizationID), slog.String("user_id", req.UserID))
		return fmt.Errorf("failed to save member: %w", err)
	}

	s.LogInfo(ctx, "Member added to organization",
		slog.String("organization_id", organizationID), slog.String("user_id", req.UserID))
	return nil
}
