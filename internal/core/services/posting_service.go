package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/stabulum/stabulum/internal/apperrors"
	"github.com/stabulum/stabulum/internal/core/domain"
	portsrepo "github.com/stabulum/stabulum/internal/core/ports/repositories"
	portssvc "github.com/stabulum/stabulum/internal/core/ports/services"
	"github.com/stabulum/stabulum/internal/utils/accounting"
)

// postingService implements the posting engine. It is the only component
// that moves entries past draft and the only writer of account balances.
type postingService struct {
	BaseService
	entryRepo   portsrepo.EntryRepository
	journalRepo portsrepo.JournalRepository
	accountRepo portsrepo.AccountRepository
}

// PostingServiceOption is a functional option for configuring the posting
// service.
type PostingServiceOption func(*postingService)

// WithPostingAuthorizer sets the organization authorizer.
func WithPostingAuthorizer(authorizer portssvc.OrganizationAuthorizerSvc) PostingServiceOption {
	return func(s *postingService) {
		s.Authorizer = authorizer
	}
}

// NewPostingService creates a new posting engine service.
func NewPostingService(
	entryRepo portsrepo.EntryRepository,
	journalRepo portsrepo.JournalRepository,
	accountRepo portsrepo.AccountRepository,
	options ...PostingServiceOption,
) portssvc.PostingSvcFacade {
	svc := &postingService{
		entryRepo:   entryRepo,
		journalRepo: journalRepo,
		accountRepo: accountRepo,
	}
	for _, option := range options {
		option(svc)
	}
	return svc
}

var _ portssvc.PostingSvcFacade = (*postingService)(nil)

// loadEntryWithLines fetches an entry and its lines, masking
// cross-organization hits as not found.
func (s *postingService) loadEntryWithLines(ctx context.Context, organizationID, entryID string) (*domain.JournalEntry, error) {
	entry, err := s.entryRepo.FindEntryByID(ctx, entryID)
	if err != nil {
		return nil, err
	}
	if entry.OrganizationID != organizationID {
		s.LogDebug(ctx, "Entry found but belongs to different organization",
			slog.String("entry_id", entryID))
		return nil, apperrors.ErrNotFound
	}
	if entry.Lines == nil {
		lines, err := s.entryRepo.FindLinesByEntryID(ctx, entryID)
		if err != nil {
			return nil, fmt.Errorf("failed to load lines for entry %s: %w", entryID, err)
		}
		entry.Lines = lines
	}
	return entry, nil
}

// accountTypesForLines resolves the account type of every line's account,
// rejecting inactive and foreign accounts.
func (s *postingService) accountTypesForLines(ctx context.Context, organizationID string, lines []domain.JournalLine) (map[string]domain.AccountType, error) {
	ids := make([]string, 0, len(lines))
	seen := make(map[string]bool, len(lines))
	for _, l := range lines {
		if !seen[l.AccountID] {
			seen[l.AccountID] = true
			ids = append(ids, l.AccountID)
		}
	}

	accounts, err := s.accountRepo.FindAccountsByIDs(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("failed to load accounts: %w", err)
	}

	types := make(map[string]domain.AccountType, len(accounts))
	for _, id := range ids {
		account, ok := accounts[id]
		if !ok || account.OrganizationID != organizationID {
			return nil, fmt.Errorf("%w: account %s", apperrors.ErrNotFound, id)
		}
		if !account.IsActive || account.IsArchived {
			return nil, fmt.Errorf("%w: account %s (%s) is not active", apperrors.ErrValidation, account.AccountNumber, account.Name)
		}
		types[id] = account.AccountType
	}
	return types, nil
}

// PostEntry transitions a draft entry to posted. The entry must have at
// least one line, every line must satisfy the debit-xor-credit invariant,
// and total debits must equal total credits within the posting tolerance.
// Balance application and the audit record share one transaction with the
// status change.
func (s *postingService) PostEntry(ctx context.Context, organizationID string, entryID string, userID string) (*domain.JournalEntry, error) {
	if err := s.AuthorizeUser(ctx, userID, organizationID, domain.RoleMember); err != nil {
		return nil, err
	}

	entry, err := s.loadEntryWithLines(ctx, organizationID, entryID)
	if err != nil {
		return nil, err
	}
	if entry.Status != domain.EntryDraft {
		return nil, fmt.Errorf("%w: entry %s is %s", apperrors.ErrEntryNotDraft, entry.EntryNumber, entry.Status)
	}
	if len(entry.Lines) == 0 {
		return nil, fmt.Errorf("%w: entry %s has no lines", apperrors.ErrValidation, entry.EntryNumber)
	}
	for i := range entry.Lines {
		if err := entry.Lines[i].Validate(); err != nil {
			return nil, err
		}
	}

	totalDebit, totalCredit := domain.EntryTotals(entry.Lines)
	if totalDebit.Sub(totalCredit).Abs().GreaterThan(domain.PostingTolerance) {
		return nil, &apperrors.UnbalancedEntryError{TotalDebit: totalDebit, TotalCredit: totalCredit}
	}

	accountTypes, err := s.accountTypesForLines(ctx, organizationID, entry.Lines)
	if err != nil {
		return nil, err
	}
	balanceChanges, err := accounting.BalanceChanges(entry.Lines, accountTypes)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	audit := domain.AuditRecord{
		AuditID:        uuid.NewString(),
		OrganizationID: organizationID,
		EntryID:        entryID,
		Action:         domain.AuditActionPosted,
		ActorID:        userID,
		OccurredAt:     now,
	}

	// The repo guard pins the row to the draft state these deltas were
	// computed from; a concurrent edit or post makes it fail with a
	// conflict instead of applying stale deltas.
	if err := s.entryRepo.PostEntry(ctx, entryID, now, entry.LastUpdatedAt, balanceChanges, audit); err != nil {
		s.LogError(ctx, err, "Failed to post entry",
			slog.String("entry_id", entryID), slog.String("entry_number", entry.EntryNumber))
		return nil, err
	}

	entry.Status = domain.EntryPosted
	entry.PostedAt = &now
	entry.LastUpdatedAt = now
	entry.LastUpdatedBy = userID

	s.LogInfo(ctx, "Entry posted successfully",
		slog.String("entry_id", entryID),
		slog.String("entry_number", entry.EntryNumber),
		slog.String("total_debit", totalDebit.String()),
		slog.String("total_credit", totalCredit.String()))
	return entry, nil
}

// VoidEntry cancels an entry in place. Voiding a posted entry applies the
// exact inverse of its balance deltas; voiding a draft just marks it. A
// reason is mandatory. Reconciled entries cannot be voided.
func (s *postingService) VoidEntry(ctx context.Context, organizationID string, entryID string, reason string, userID string) (*domain.JournalEntry, error) {
	if err := s.AuthorizeUser(ctx, userID, organizationID, domain.RoleMember); err != nil {
		return nil, err
	}
	if reason == "" {
		return nil, fmt.Errorf("%w: void reason is required", apperrors.ErrValidation)
	}

	entry, err := s.loadEntryWithLines(ctx, organizationID, entryID)
	if err != nil {
		return nil, err
	}

	switch entry.Status {
	case domain.EntryDraft, domain.EntryPosted:
	case domain.EntryVoided:
		return nil, fmt.Errorf("%w: entry %s", apperrors.ErrAlreadyVoid, entry.EntryNumber)
	case domain.EntryReversed:
		return nil, fmt.Errorf("%w: entry %s", apperrors.ErrAlreadyReversed, entry.EntryNumber)
	case domain.EntryReconciled:
		return nil, fmt.Errorf("%w: entry %s", apperrors.ErrEntryReconciled, entry.EntryNumber)
	default:
		return nil, fmt.Errorf("%w: entry %s is %s", apperrors.ErrConflict, entry.EntryNumber, entry.Status)
	}

	now := time.Now().UTC()
	audit := domain.AuditRecord{
		AuditID:        uuid.NewString(),
		OrganizationID: organizationID,
		EntryID:        entryID,
		Action:         domain.AuditActionVoided,
		Reason:         reason,
		ActorID:        userID,
		OccurredAt:     now,
	}

	// A draft never touched balances, so voiding it applies no deltas.
	var voidChanges map[string]decimal.Decimal
	if entry.Status == domain.EntryPosted {
		accountTypes, err := s.accountTypesForLines(ctx, organizationID, entry.Lines)
		if err != nil {
			return nil, err
		}
		applied, err := accounting.BalanceChanges(entry.Lines, accountTypes)
		if err != nil {
			return nil, err
		}
		voidChanges = accounting.Invert(applied)
	}

	// The repo guard requires the row to still be in the observed state. A
	// draft void racing a concurrent post fails here rather than voiding
	// the entry with its posted deltas left applied.
	if err := s.entryRepo.VoidEntry(ctx, entryID, entry.Status, entry.LastUpdatedAt, voidChanges, audit); err != nil {
		s.LogError(ctx, err, "Failed to void entry",
			slog.String("entry_id", entryID), slog.String("entry_number", entry.EntryNumber))
		return nil, err
	}

	entry.Status = domain.EntryVoided
	entry.LastUpdatedAt = now
	entry.LastUpdatedBy = userID

	s.LogInfo(ctx, "Entry voided successfully",
		slog.String("entry_id", entryID),
		slog.String("entry_number", entry.EntryNumber),
		slog.String("reason", reason))
	return entry, nil
}

// CreateReversalEntry generates a draft entry that mirrors a posted entry
// with debits and credits swapped, and links the two. Balances change only
// when the reversal itself is posted.
func (s *postingService) CreateReversalEntry(ctx context.Context, organizationID string, entryID string, date time.Time, reason string, userID string) (*domain.JournalEntry, error) {
	if err := s.AuthorizeUser(ctx, userID, organizationID, domain.RoleMember); err != nil {
		return nil, err
	}
	if reason == "" {
		return nil, fmt.Errorf("%w: reversal reason is required", apperrors.ErrValidation)
	}

	original, err := s.loadEntryWithLines(ctx, organizationID, entryID)
	if err != nil {
		return nil, err
	}

	switch original.Status {
	case domain.EntryPosted, domain.EntryReconciled:
	case domain.EntryDraft:
		return nil, fmt.Errorf("%w: entry %s", apperrors.ErrEntryNotPosted, original.EntryNumber)
	case domain.EntryVoided:
		return nil, fmt.Errorf("%w: entry %s", apperrors.ErrAlreadyVoid, original.EntryNumber)
	case domain.EntryReversed:
		return nil, fmt.Errorf("%w: entry %s", apperrors.ErrAlreadyReversed, original.EntryNumber)
	default:
		return nil, fmt.Errorf("%w: entry %s is %s", apperrors.ErrConflict, original.EntryNumber, original.Status)
	}
	if original.ReversedByEntryID != nil {
		return nil, fmt.Errorf("%w: entry %s", apperrors.ErrAlreadyReversed, original.EntryNumber)
	}

	journal, err := s.journalRepo.FindJournalByID(ctx, original.JournalID)
	if err != nil {
		return nil, fmt.Errorf("failed to find journal: %w", err)
	}

	maxSeq, err := s.entryRepo.MaxEntrySequence(ctx, journal.JournalID)
	if err != nil {
		return nil, fmt.Errorf("failed to determine entry sequence: %w", err)
	}
	entryNumber := fmt.Sprintf("%s-%02d%02d-%05d",
		journal.JournalType.NumberPrefix(), date.Year()%100, int(date.Month()), maxSeq+1)

	now := time.Now().UTC()
	reversalID := uuid.NewString()
	lines := make([]domain.JournalLine, len(original.Lines))
	for i, l := range original.Lines {
		lines[i] = domain.JournalLine{
			LineID:       uuid.NewString(),
			EntryID:      reversalID,
			LineNumber:   l.LineNumber,
			AccountID:    l.AccountID,
			Description:  l.Description,
			Debit:        l.Credit,
			Credit:       l.Debit,
			CustomerID:   l.CustomerID,
			VendorID:     l.VendorID,
			ProjectID:    l.ProjectID,
			DepartmentID: l.DepartmentID,
			TokenAmount:  l.TokenAmount,
			AuditFields: domain.AuditFields{
				CreatedAt:     now,
				CreatedBy:     userID,
				LastUpdatedAt: now,
				LastUpdatedBy: userID,
			},
		}
	}

	originalID := original.EntryID
	reversal := domain.JournalEntry{
		EntryID:           reversalID,
		OrganizationID:    organizationID,
		JournalID:         original.JournalID,
		EntryNumber:       entryNumber,
		EntryDate:         date,
		Description:       fmt.Sprintf("Reversal of %s: %s", original.EntryNumber, reason),
		Reference:         original.Reference,
		Status:            domain.EntryDraft,
		ReversalOfEntryID: &originalID,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     userID,
			LastUpdatedAt: now,
			LastUpdatedBy: userID,
		},
	}

	audit := domain.AuditRecord{
		AuditID:        uuid.NewString(),
		OrganizationID: organizationID,
		EntryID:        originalID,
		Action:         domain.AuditActionReversed,
		Reason:         reason,
		ActorID:        userID,
		OccurredAt:     now,
	}

	if err := s.entryRepo.SaveReversal(ctx, reversal, lines, originalID, audit); err != nil {
		s.LogError(ctx, err, "Failed to save reversal entry",
			slog.String("original_entry_id", originalID), slog.String("reversal_entry_id", reversalID))
		return nil, err
	}

	reversal.Lines = lines
	s.LogInfo(ctx, "Reversal entry created successfully",
		slog.String("original_entry_id", originalID),
		slog.String("reversal_entry_id", reversalID),
		slog.String("reversal_entry_number", entryNumber))
	return &reversal, nil
}
