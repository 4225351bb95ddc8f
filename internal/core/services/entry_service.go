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

const (
	defaultEntryPageLimit = 50
	maxEntryPageLimit     = 200
)

// entryService implements the journal entry store.
type entryService struct {
	BaseService
	entryRepo   portsrepo.EntryRepository
	journalRepo portsrepo.JournalRepository
	accountRepo portsrepo.AccountRepository
}

// EntryServiceOption is a functional option for configuring the entry service.
type EntryServiceOption func(*entryService)

// WithEntryAuthorizer sets the organization authorizer.
func WithEntryAuthorizer(authorizer portssvc.OrganizationAuthorizerSvc) EntryServiceOption {
	return func(s *entryService) {
		s.Authorizer = authorizer
	}
}

// NewEntryService creates a new journal entry store service.
func NewEntryService(
	entryRepo portsrepo.EntryRepository,
	journalRepo portsrepo.JournalRepository,
	accountRepo portsrepo.AccountRepository,
	options ...EntryServiceOption,
) portssvc.EntrySvcFacade {
	svc := &entryService{
		entryRepo:   entryRepo,
		journalRepo: journalRepo,
		accountRepo: accountRepo,
	}
	for _, option := range options {
		option(svc)
	}
	return svc
}

var _ portssvc.EntrySvcFacade = (*entryService)(nil)

// CreateJournal creates an additional journal partition.
func (s *entryService) CreateJournal(ctx context.Context, organizationID string, req dto.CreateJournalRequest, userID string) (*domain.Journal, error) {
	if err := s.AuthorizeUser(ctx, userID, organizationID, domain.RoleAdmin); err != nil {
		return nil, err
	}

	journalType := domain.JournalType(req.JournalType)
	if !domain.ValidJournalType(journalType) {
		return nil, fmt.Errorf("%w: unknown journal type %q", apperrors.ErrValidation, req.JournalType)
	}

	now := time.Now().UTC()
	journal := domain.Journal{
		JournalID:      uuid.NewString(),
		OrganizationID: organizationID,
		Name:           req.Name,
		JournalType:    journalType,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     userID,
			LastUpdatedAt: now,
			LastUpdatedBy: userID,
		},
	}

	if err := s.journalRepo.SaveJournal(ctx, journal); err != nil {
		s.LogError(ctx, err, "Failed to save journal",
			slog.String("organization_id", organizationID), slog.String("journal_type", req.JournalType))
		return nil, err
	}

	s.LogInfo(ctx, "Journal created successfully",
		slog.String("journal_id", journal.JournalID), slog.String("organization_id", organizationID))
	return &journal, nil
}

// ListJournals lists the organization's journal partitions.
func (s *entryService) ListJournals(ctx context.Context, organizationID string, userID string) ([]domain.Journal, error) {
	if err := s.AuthorizeUser(ctx, userID, organizationID, domain.RoleReadOnly); err != nil {
		return nil, err
	}

	journals, err := s.journalRepo.ListJournals(ctx, organizationID)
	if err != nil {
		s.LogError(ctx, err, "Failed to list journals", slog.String("organization_id", organizationID))
		return nil, fmt.Errorf("failed to list journals for organization %s: %w", organizationID, err)
	}
	if journals == nil {
		return []domain.Journal{}, nil
	}
	return journals, nil
}

// findJournalInOrg loads a journal and masks cross-organization hits as not
// found.
func (s *entryService) findJournalInOrg(ctx context.Context, organizationID, journalID string) (*domain.Journal, error) {
	journal, err := s.journalRepo.FindJournalByID(ctx, journalID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("%w: journal %s", apperrors.ErrNotFound, journalID)
		}
		return nil, fmt.Errorf("failed to find journal: %w", err)
	}
	if journal.OrganizationID != organizationID {
		s.LogDebug(ctx, "Journal found but belongs to different organization",
			slog.String("journal_id", journalID))
		return nil, apperrors.ErrNotFound
	}
	return journal, nil
}

// buildLines validates line requests against the line invariant and the
// account registry, producing domain lines in request order.
func (s *entryService) buildLines(ctx context.Context, organizationID, entryID string, reqs []dto.EntryLineRequest, userID string, now time.Time) ([]domain.JournalLine, error) {
	if len(reqs) == 0 {
		return nil, fmt.Errorf("%w: entry requires at least one line", apperrors.ErrValidation)
	}

	accountIDs := make([]string, 0, len(reqs))
	seen := make(map[string]bool, len(reqs))
	for _, r := range reqs {
		if !seen[r.AccountID] {
			seen[r.AccountID] = true
			accountIDs = append(accountIDs, r.AccountID)
		}
	}

	accounts, err := s.accountRepo.FindAccountsByIDs(ctx, accountIDs)
	if err != nil {
		s.LogError(ctx, err, "Failed to load accounts for entry lines")
		return nil, fmt.Errorf("failed to load accounts: %w", err)
	}

	lines := make([]domain.JournalLine, 0, len(reqs))
	for i, r := range reqs {
		line := domain.JournalLine{
			LineID:       uuid.NewString(),
			EntryID:      entryID,
			LineNumber:   i + 1,
			AccountID:    r.AccountID,
			Description:  r.Description,
			Debit:        r.Debit,
			Credit:       r.Credit,
			CustomerID:   r.CustomerID,
			VendorID:     r.VendorID,
			ProjectID:    r.ProjectID,
			DepartmentID: r.DepartmentID,
			TokenAmount:  r.TokenAmount,
			AuditFields: domain.AuditFields{
				CreatedAt:     now,
				CreatedBy:     userID,
				LastUpdatedAt: now,
				LastUpdatedBy: userID,
			},
		}
		if err := line.Validate(); err != nil {
			return nil, err
		}

		account, ok := accounts[r.AccountID]
		if !ok || account.OrganizationID != organizationID {
			return nil, fmt.Errorf("%w: account %s", apperrors.ErrNotFound, r.AccountID)
		}
		if !account.IsActive || account.IsArchived {
			return nil, fmt.Errorf("%w: account %s (%s) is not active", apperrors.ErrValidation, account.AccountNumber, account.Name)
		}
		lines = append(lines, line)
	}
	return lines, nil
}

// nextEntryNumber generates <prefix>-<YYMM>-<seq>, where the prefix comes
// from the journal type, YYMM from the entry date, and the sequence continues
// across months within the journal.
func (s *entryService) nextEntryNumber(ctx context.Context, journal *domain.Journal, entryDate time.Time) (string, error) {
	maxSeq, err := s.entryRepo.MaxEntrySequence(ctx, journal.JournalID)
	if err != nil {
		return "", fmt.Errorf("failed to determine entry sequence: %w", err)
	}
	return fmt.Sprintf("%s-%02d%02d-%05d",
		journal.JournalType.NumberPrefix(),
		entryDate.Year()%100, int(entryDate.Month()),
		maxSeq+1), nil
}

// CreateDraftEntry creates a draft journal entry. Drafts may be unbalanced;
// balance is enforced at post time.
func (s *entryService) CreateDraftEntry(ctx context.Context, organizationID string, req dto.CreateEntryRequest, userID string) (*domain.JournalEntry, error) {
	if err := s.AuthorizeUser(ctx, userID, organizationID, domain.RoleMember); err != nil {
		return nil, err
	}

	journal, err := s.findJournalInOrg(ctx, organizationID, req.JournalID)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	entryID := uuid.NewString()

	lines, err := s.buildLines(ctx, organizationID, entryID, req.Lines, userID, now)
	if err != nil {
		return nil, err
	}

	if req.ExternalPaymentRef != nil && *req.ExternalPaymentRef != "" {
		existing, err := s.entryRepo.FindEntryByExternalRef(ctx, organizationID, *req.ExternalPaymentRef)
		if err != nil && !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to check external payment ref")
			return nil, fmt.Errorf("failed to check external payment ref: %w", err)
		}
		if existing != nil {
			return nil, fmt.Errorf("%w: external payment ref %s already recorded", apperrors.ErrDuplicate, *req.ExternalPaymentRef)
		}
	}

	entryNumber, err := s.nextEntryNumber(ctx, journal, req.Date)
	if err != nil {
		s.LogError(ctx, err, "Failed to generate entry number", slog.String("journal_id", journal.JournalID))
		return nil, err
	}

	entry := domain.JournalEntry{
		EntryID:            entryID,
		OrganizationID:     organizationID,
		JournalID:          journal.JournalID,
		EntryNumber:        entryNumber,
		EntryDate:          req.Date,
		Description:        req.Description,
		Reference:          req.Reference,
		Status:             domain.EntryDraft,
		ExternalPaymentRef: req.ExternalPaymentRef,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     userID,
			LastUpdatedAt: now,
			LastUpdatedBy: userID,
		},
	}

	if err := s.entryRepo.SaveEntry(ctx, entry, lines); err != nil {
		s.LogError(ctx, err, "Failed to save entry",
			slog.String("entry_id", entryID), slog.String("organization_id", organizationID))
		return nil, err
	}

	entry.Lines = lines
	s.LogInfo(ctx, "Draft entry created successfully",
		slog.String("entry_id", entryID),
		slog.String("entry_number", entryNumber),
		slog.Int("line_count", len(lines)))
	return &entry, nil
}

// GetEntryByID retrieves an entry with its lines, masking cross-organization
// hits as not found.
func (s *entryService) GetEntryByID(ctx context.Context, organizationID string, entryID string, userID string) (*domain.JournalEntry, error) {
	if err := s.AuthorizeUser(ctx, userID, organizationID, domain.RoleReadOnly); err != nil {
		return nil, err
	}
	return s.findEntryInOrg(ctx, organizationID, entryID, true)
}

// GetEntryAudit returns the post/void/reversal trail for an entry, oldest
// record first.
func (s *entryService) GetEntryAudit(ctx context.Context, organizationID string, entryID string, userID string) ([]domain.AuditRecord, error) {
	if err := s.AuthorizeUser(ctx, userID, organizationID, domain.RoleReadOnly); err != nil {
		return nil, err
	}
	if _, err := s.findEntryInOrg(ctx, organizationID, entryID, false); err != nil {
		return nil, err
	}

	records, err := s.entryRepo.FindAuditByEntryID(ctx, entryID)
	if err != nil {
		s.LogError(ctx, err, "Failed to load audit records", slog.String("entry_id", entryID))
		return nil, fmt.Errorf("failed to load audit records for entry %s: %w", entryID, err)
	}
	return records, nil
}

// findEntryInOrg loads an entry (optionally with lines) and masks
// cross-organization hits as not found.
func (s *entryService) findEntryInOrg(ctx context.Context, organizationID, entryID string, withLines bool) (*domain.JournalEntry, error) {
	entry, err := s.entryRepo.FindEntryByID(ctx, entryID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to find entry by ID", slog.String("entry_id", entryID))
		}
		return nil, err
	}
	if entry.OrganizationID != organizationID {
		s.LogDebug(ctx, "Entry found but belongs to different organization",
			slog.String("entry_id", entryID))
		return nil, apperrors.ErrNotFound
	}

	if withLines && entry.Lines == nil {
		lines, err := s.entryRepo.FindLinesByEntryID(ctx, entryID)
		if err != nil {
			s.LogError(ctx, err, "Failed to load entry lines", slog.String("entry_id", entryID))
			return nil, fmt.Errorf("failed to load lines for entry %s: %w", entryID, err)
		}
		entry.Lines = lines
	}
	return entry, nil
}

// ListEntries returns a page of entries ordered by entry date descending,
// with an opaque continuation token.
func (s *entryService) ListEntries(ctx context.Context, organizationID string, params dto.ListEntriesParams, userID string) (*dto.ListEntriesResponse, error) {
	if err := s.AuthorizeUser(ctx, userID, organizationID, domain.RoleReadOnly); err != nil {
		return nil, err
	}

	limit := params.Limit
	if limit <= 0 {
		limit = defaultEntryPageLimit
	}
	if limit > maxEntryPageLimit {
		limit = maxEntryPageLimit
	}

	if params.JournalID != nil && *params.JournalID != "" {
		if _, err := s.findJournalInOrg(ctx, organizationID, *params.JournalID); err != nil {
			return nil, err
		}
	}

	entries, nextToken, err := s.entryRepo.ListEntries(ctx, organizationID, params.JournalID, limit, params.NextToken)
	if err != nil {
		s.LogError(ctx, err, "Failed to list entries", slog.String("organization_id", organizationID))
		return nil, fmt.Errorf("failed to list entries: %w", err)
	}

	resp := &dto.ListEntriesResponse{
		Entries:   make([]dto.EntryResponse, 0, len(entries)),
		NextToken: nextToken,
	}
	for i := range entries {
		if params.IncludeLines && entries[i].Lines == nil {
			lines, err := s.entryRepo.FindLinesByEntryID(ctx, entries[i].EntryID)
			if err != nil {
				s.LogError(ctx, err, "Failed to load entry lines",
					slog.String("entry_id", entries[i].EntryID))
				return nil, fmt.Errorf("failed to load lines for entry %s: %w", entries[i].EntryID, err)
			}
			entries[i].Lines = lines
		}
		resp.Entries = append(resp.Entries, dto.ToEntryResponse(&entries[i]))
	}
	return resp, nil
}

// UpdateDraftEntry edits a draft entry. A non-nil Lines slice replaces all
// existing lines. Entries past draft are immutable here.
func (s *entryService) UpdateDraftEntry(ctx context.Context, organizationID string, entryID string, req dto.UpdateEntryRequest, userID string) (*domain.JournalEntry, error) {
	if err := s.AuthorizeUser(ctx, userID, organizationID, domain.RoleMember); err != nil {
		return nil, err
	}

	entry, err := s.findEntryInOrg(ctx, organizationID, entryID, true)
	if err != nil {
		return nil, err
	}
	if entry.Status != domain.EntryDraft {
		return nil, fmt.Errorf("%w: entry %s is %s", apperrors.ErrEntryNotDraft, entry.EntryNumber, entry.Status)
	}

	now := time.Now().UTC()
	if req.Date != nil {
		entry.EntryDate = *req.Date
	}
	if req.Description != nil {
		entry.Description = *req.Description
	}
	if req.Reference != nil {
		entry.Reference = *req.Reference
	}

	lines := entry.Lines
	if req.Lines != nil {
		lines, err = s.buildLines(ctx, organizationID, entryID, req.Lines, userID, now)
		if err != nil {
			return nil, err
		}
	}

	entry.LastUpdatedAt = now
	entry.LastUpdatedBy = userID

	if err := s.entryRepo.UpdateDraftEntry(ctx, *entry, lines); err != nil {
		s.LogError(ctx, err, "Failed to update draft entry", slog.String("entry_id", entryID))
		return nil, err
	}

	entry.Lines = lines
	s.LogInfo(ctx, "Draft entry updated successfully", slog.String("entry_id", entryID))
	return entry, nil
}

// DeleteDraftEntry removes a draft entry and its lines. Entries past draft
// cannot be deleted; they are voided or reversed through the posting engine.
func (s *entryService) DeleteDraftEntry(ctx context.Context, organizationID string, entryID string, userID string) error {
	if err := s.AuthorizeUser(ctx, userID, organizationID, domain.RoleMember); err != nil {
		return err
	}

	entry, err := s.findEntryInOrg(ctx, organizationID, entryID, false)
	if err != nil {
		return err
	}
	if entry.Status != domain.EntryDraft {
		return fmt.Errorf("%w: entry %s is %s", apperrors.ErrEntryNotDraft, entry.EntryNumber, entry.Status)
	}

	if err := s.entryRepo.DeleteDraftEntry(ctx, entryID); err != nil {
		s.LogError(ctx, err, "Failed to delete draft entry", slog.String("entry_id", entryID))
		return err
	}

	s.LogInfo(ctx, "Draft entry deleted successfully", slog.String("entry_id", entryID))
	return nil
}
