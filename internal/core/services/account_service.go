package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/stabulum/stabulum/internal/apperrors"
	"github.com/stabulum/stabulum/internal/core/domain"
	portsrepo "github.com/stabulum/stabulum/internal/core/ports/repositories"
	portssvc "github.com/stabulum/stabulum/internal/core/ports/services"
	"github.com/stabulum/stabulum/internal/dto"
)

// accountService implements the account registry.
type accountService struct {
	BaseService
	accountRepo portsrepo.AccountRepositoryFacade
}

// AccountServiceOption is a functional option for configuring the account service.
type AccountServiceOption func(*accountService)

// WithAccountAuthorizer sets the organization authorizer.
func WithAccountAuthorizer(authorizer portssvc.OrganizationAuthorizerSvc) AccountServiceOption {
	return func(s *accountService) {
		s.Authorizer = authorizer
	}
}

// NewAccountService creates a new account registry service.
func NewAccountService(repo portsrepo.AccountRepositoryFacade, options ...AccountServiceOption) portssvc.AccountSvcFacade {
	svc := &accountService{accountRepo: repo}
	for _, option := range options {
		option(svc)
	}
	return svc
}

var _ portssvc.AccountSvcFacade = (*accountService)(nil)

// CreateAccount creates an account, auto-numbering it within its type band
// when no number is given.
func (s *accountService) CreateAccount(ctx context.Context, organizationID string, req dto.CreateAccountRequest, userID string) (*domain.Account, error) {
	if err := s.AuthorizeUser(ctx, userID, organizationID, domain.RoleMember); err != nil {
		return nil, err
	}

	accountType := domain.AccountType(req.AccountType)
	if !domain.ValidAccountType(accountType) {
		return nil, fmt.Errorf("%w: unknown account type %q", apperrors.ErrValidation, req.AccountType)
	}

	number := req.AccountNumber
	if number == "" {
		generated, err := s.generateAccountNumber(ctx, organizationID, accountType)
		if err != nil {
			return nil, err
		}
		number = generated
	} else {
		existing, err := s.accountRepo.FindAccountByNumber(ctx, organizationID, number)
		if err != nil && !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to check account number uniqueness", slog.String("account_number", number))
			return nil, fmt.Errorf("failed to check account number: %w", err)
		}
		if existing != nil {
			return nil, fmt.Errorf("%w: account number %s already in use", apperrors.ErrDuplicate, number)
		}
	}

	parentID := ""
	if req.ParentAccountID != nil && *req.ParentAccountID != "" {
		parentID = *req.ParentAccountID
		if err := s.validateParent(ctx, organizationID, "", parentID, accountType); err != nil {
			return nil, err
		}
	}

	now := time.Now().UTC()
	account := domain.Account{
		AccountID:       uuid.NewString(),
		OrganizationID:  organizationID,
		AccountNumber:   number,
		Name:            req.Name,
		AccountType:     accountType,
		SubType:         req.SubType,
		ParentAccountID: parentID,
		Description:     req.Description,
		CurrencyCode:    req.CurrencyCode,
		IsActive:        true,
		Balance:         decimal.Zero,
		BalanceAsOf:     now,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     userID,
			LastUpdatedAt: now,
			LastUpdatedBy: userID,
		},
	}

	if err := s.accountRepo.SaveAccount(ctx, account); err != nil {
		s.LogError(ctx, err, "Failed to save account",
			slog.String("account_id", account.AccountID),
			slog.String("organization_id", organizationID))
		return nil, err
	}

	s.LogInfo(ctx, "Account created successfully",
		slog.String("account_id", account.AccountID),
		slog.String("account_number", account.AccountNumber),
		slog.String("organization_id", organizationID))
	return &account, nil
}

// generateAccountNumber picks the next unused number in the type's band by
// incrementing the highest existing one. The first account of a type gets
// <prefix>000, e.g. 1000 for assets.
func (s *accountService) generateAccountNumber(ctx context.Context, organizationID string, accountType domain.AccountType) (string, error) {
	prefix := accountType.NumberPrefix()
	maxInBand, err := s.accountRepo.MaxAccountNumberInBand(ctx, organizationID, prefix)
	if err != nil {
		s.LogError(ctx, err, "Failed to determine max account number",
			slog.String("organization_id", organizationID), slog.Int("prefix", prefix))
		return "", fmt.Errorf("failed to generate account number: %w", err)
	}

	next := prefix * 1000
	if maxInBand >= next {
		next = maxInBand + 1
	}
	if next > prefix*1000+999 {
		return "", fmt.Errorf("%w: account number band %dxxx exhausted", apperrors.ErrConflict, prefix)
	}
	return strconv.Itoa(next), nil
}

// NextAccountNumber exposes number generation without creating an account.
func (s *accountService) NextAccountNumber(ctx context.Context, organizationID string, accountType domain.AccountType, userID string) (string, error) {
	if err := s.AuthorizeUser(ctx, userID, organizationID, domain.RoleReadOnly); err != nil {
		return "", err
	}
	if !domain.ValidAccountType(accountType) {
		return "", fmt.Errorf("%w: unknown account type %q", apperrors.ErrValidation, accountType)
	}
	return s.generateAccountNumber(ctx, organizationID, accountType)
}

// validateParent checks that a prospective parent exists in the same
// organization, shares the child's type, and does not close a cycle.
// accountID is empty on create (a new account cannot be its own ancestor).
func (s *accountService) validateParent(ctx context.Context, organizationID, accountID, parentID string, accountType domain.AccountType) error {
	if parentID == accountID && accountID != "" {
		return fmt.Errorf("%w: account cannot be its own parent", apperrors.ErrValidation)
	}

	parent, err := s.accountRepo.FindAccountByID(ctx, parentID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return fmt.Errorf("%w: parent account %s", apperrors.ErrNotFound, parentID)
		}
		return fmt.Errorf("failed to find parent account: %w", err)
	}
	if parent.OrganizationID != organizationID {
		return apperrors.ErrNotFound
	}
	if parent.AccountType != accountType {
		return fmt.Errorf("%w: parent account type %s does not match %s",
			apperrors.ErrValidation, parent.AccountType, accountType)
	}

	// Walk up the ancestor chain; hitting accountID means the re-parent
	// would create a cycle.
	seen := map[string]bool{parentID: true}
	current := parent
	for current.ParentAccountID != "" {
		if accountID != "" && current.ParentAccountID == accountID {
			return fmt.Errorf("%w: parent chain forms a cycle", apperrors.ErrValidation)
		}
		if seen[current.ParentAccountID] {
			return fmt.Errorf("%w: parent chain forms a cycle", apperrors.ErrValidation)
		}
		seen[current.ParentAccountID] = true
		next, err := s.accountRepo.FindAccountByID(ctx, current.ParentAccountID)
		if err != nil {
			return fmt.Errorf("failed to walk parent chain: %w", err)
		}
		current = next
	}
	return nil
}

// GetAccountByID retrieves an account, masking cross-organization hits as
// not found.
func (s *accountService) GetAccountByID(ctx context.Context, organizationID string, accountID string, userID string) (*domain.Account, error) {
	if err := s.AuthorizeUser(ctx, userID, organizationID, domain.RoleReadOnly); err != nil {
		return nil, err
	}

	account, err := s.accountRepo.FindAccountByID(ctx, accountID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to find account by ID", slog.String("account_id", accountID))
		}
		return nil, err
	}

	if account.OrganizationID != organizationID {
		s.LogDebug(ctx, "Account found but belongs to different organization",
			slog.String("account_id", accountID),
			slog.String("requested_organization", organizationID))
		return nil, apperrors.ErrNotFound
	}
	return account, nil
}

// GetAccountsByIDs retrieves a batch of accounts, requiring all of them to
// belong to the organization.
func (s *accountService) GetAccountsByIDs(ctx context.Context, organizationID string, accountIDs []string, userID string) (map[string]domain.Account, error) {
	if err := s.AuthorizeUser(ctx, userID, organizationID, domain.RoleReadOnly); err != nil {
		return nil, err
	}

	accounts, err := s.accountRepo.FindAccountsByIDs(ctx, accountIDs)
	if err != nil {
		s.LogError(ctx, err, "Failed to find accounts by IDs")
		return nil, err
	}
	for _, account := range accounts {
		if account.OrganizationID != organizationID {
			s.LogDebug(ctx, "Account belongs to different organization",
				slog.String("account_id", account.AccountID))
			return nil, apperrors.ErrNotFound
		}
	}
	return accounts, nil
}

// ListAccounts lists the organization's chart of accounts.
func (s *accountService) ListAccounts(ctx context.Context, organizationID string, includeArchived bool, userID string) ([]domain.Account, error) {
	if err := s.AuthorizeUser(ctx, userID, organizationID, domain.RoleReadOnly); err != nil {
		return nil, err
	}

	accounts, err := s.accountRepo.ListAccounts(ctx, organizationID, includeArchived)
	if err != nil {
		s.LogError(ctx, err, "Failed to list accounts", slog.String("organization_id", organizationID))
		return nil, fmt.Errorf("failed to list accounts for organization %s: %w", organizationID, err)
	}
	if accounts == nil {
		return []domain.Account{}, nil
	}
	return accounts, nil
}

// UpdateAccount applies partial edits. Re-parenting revalidates type match
// and cycle freedom.
func (s *accountService) UpdateAccount(ctx context.Context, organizationID string, accountID string, req dto.UpdateAccountRequest, userID string) (*domain.Account, error) {
	if err := s.AuthorizeUser(ctx, userID, organizationID, domain.RoleMember); err != nil {
		return nil, err
	}

	account, err := s.GetAccountByID(ctx, organizationID, accountID, userID)
	if err != nil {
		return nil, err
	}

	updated := false
	if req.Name != nil {
		account.Name = *req.Name
		updated = true
	}
	if req.SubType != nil {
		account.SubType = *req.SubType
		updated = true
	}
	if req.Description != nil {
		account.Description = *req.Description
		updated = true
	}
	if req.IsActive != nil {
		account.IsActive = *req.IsActive
		updated = true
	}
	if req.ParentAccountID != nil {
		newParent := *req.ParentAccountID
		if newParent != "" {
			if err := s.validateParent(ctx, organizationID, accountID, newParent, account.AccountType); err != nil {
				return nil, err
			}
		}
		account.ParentAccountID = newParent
		updated = true
	}
	if !updated {
		s.LogDebug(ctx, "No fields provided for account update", slog.String("account_id", accountID))
		return account, nil
	}

	now := time.Now().UTC()
	account.LastUpdatedAt = now
	account.LastUpdatedBy = userID

	if err := s.accountRepo.UpdateAccount(ctx, *account); err != nil {
		s.LogError(ctx, err, "Failed to update account", slog.String("account_id", accountID))
		return nil, err
	}

	s.LogInfo(ctx, "Account updated successfully", slog.String("account_id", accountID))
	return account, nil
}

// ArchiveAccount soft-deletes an account that has no journal lines yet.
// Accounts with history are retired through DeleteAccount, which archives
// them instead of removing rows.
func (s *accountService) ArchiveAccount(ctx context.Context, organizationID string, accountID string, userID string) error {
	if err := s.AuthorizeUser(ctx, userID, organizationID, domain.RoleMember); err != nil {
		return err
	}

	if _, err := s.GetAccountByID(ctx, organizationID, accountID, userID); err != nil {
		return err
	}

	hasLines, err := s.accountRepo.HasJournalLines(ctx, accountID)
	if err != nil {
		s.LogError(ctx, err, "Failed to check journal lines", slog.String("account_id", accountID))
		return fmt.Errorf("failed to check journal lines: %w", err)
	}
	if hasLines {
		return fmt.Errorf("%w: account %s has journal lines", apperrors.ErrConflict, accountID)
	}

	now := time.Now().UTC()
	if err := s.accountRepo.ArchiveAccount(ctx, accountID, userID, now); err != nil {
		s.LogError(ctx, err, "Failed to archive account", slog.String("account_id", accountID))
		return err
	}

	s.LogInfo(ctx, "Account archived successfully", slog.String("account_id", accountID))
	return nil
}

// DeleteAccount hard-deletes an untouched account. Once the account has
// journal lines it is archived instead; accounts with children are never
// removed.
func (s *accountService) DeleteAccount(ctx context.Context, organizationID string, accountID string, userID string) error {
	if err := s.AuthorizeUser(ctx, userID, organizationID, domain.RoleMember); err != nil {
		return err
	}

	if _, err := s.GetAccountByID(ctx, organizationID, accountID, userID); err != nil {
		return err
	}

	hasChildren, err := s.accountRepo.HasChildren(ctx, accountID)
	if err != nil {
		s.LogError(ctx, err, "Failed to check child accounts", slog.String("account_id", accountID))
		return fmt.Errorf("failed to check child accounts: %w", err)
	}
	if hasChildren {
		return fmt.Errorf("%w: account %s has child accounts", apperrors.ErrConflict, accountID)
	}

	hasLines, err := s.accountRepo.HasJournalLines(ctx, accountID)
	if err != nil {
		s.LogError(ctx, err, "Failed to check journal lines", slog.String("account_id", accountID))
		return fmt.Errorf("failed to check journal lines: %w", err)
	}
	if hasLines {
		now := time.Now().UTC()
		if err := s.accountRepo.ArchiveAccount(ctx, accountID, userID, now); err != nil {
			s.LogError(ctx, err, "Failed to archive account on delete", slog.String("account_id", accountID))
			return err
		}
		s.LogInfo(ctx, "Account has history; archived instead of deleted", slog.String("account_id", accountID))
		return nil
	}

	if err := s.accountRepo.DeleteAccount(ctx, accountID); err != nil {
		s.LogError(ctx, err, "Failed to delete account", slog.String("account_id", accountID))
		return err
	}

	s.LogInfo(ctx, "Account deleted successfully", slog.String("account_id", accountID))
	return nil
}
