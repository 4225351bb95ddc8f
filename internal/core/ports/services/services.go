package services

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/stabulum/stabulum/internal/core/domain"
	"github.com/stabulum/stabulum/internal/dto"
)

// OrganizationAuthorizerSvc checks whether a user may act within an
// organization. Every service depends on it.
type OrganizationAuthorizerSvc interface {
	// AuthorizeUserAction returns apperrors.ErrNotFound when the user is not
	// a member (existence is obscured) and apperrors.ErrForbidden when the
	// member's role is insufficient.
	AuthorizeUserAction(ctx context.Context, userID string, organizationID string, required domain.OrganizationRole) error
}

// OrganizationSvcFacade manages organizations and their memberships.
type OrganizationSvcFacade interface {
	OrganizationAuthorizerSvc
	CreateOrganization(ctx context.Context, req dto.CreateOrganizationRequest, creatorUserID string) (*domain.Organization, error)
	GetOrganizationByID(ctx context.Context, organizationID string, userID string) (*domain.Organization, error)
	ListOrganizationsForUser(ctx context.Context, userID string) ([]domain.Organization, error)
	AddMember(ctx context.Context, organizationID string, req dto.AddMemberRequest, actorUserID string) error
}

// AccountSvcFacade is the account registry: the typed, hierarchical chart of
// accounts with number generation and archival rules.
type AccountSvcFacade interface {
	CreateAccount(ctx context.Context, organizationID string, req dto.CreateAccountRequest, userID string) (*domain.Account, error)
	GetAccountByID(ctx context.Context, organizationID string, accountID string, userID string) (*domain.Account, error)
	GetAccountsByIDs(ctx context.Context, organizationID string, accountIDs []string, userID string) (map[string]domain.Account, error)
	ListAccounts(ctx context.Context, organizationID string, includeArchived bool, userID string) ([]domain.Account, error)
	UpdateAccount(ctx context.Context, organizationID string, accountID string, req dto.UpdateAccountRequest, userID string) (*domain.Account, error)
	ArchiveAccount(ctx context.Context, organizationID string, accountID string, userID string) error
	DeleteAccount(ctx context.Context, organizationID string, accountID string, userID string) error
	NextAccountNumber(ctx context.Context, organizationID string, accountType domain.AccountType, userID string) (string, error)
}

// EntrySvcFacade is the journal entry store: journal partitions, draft entry
// CRUD, and entry-number generation. Drafts are freely editable; everything
// past draft belongs to the posting engine.
type EntrySvcFacade interface {
	CreateJournal(ctx context.Context, organizationID string, req dto.CreateJournalRequest, userID string) (*domain.Journal, error)
	ListJournals(ctx context.Context, organizationID string, userID string) ([]domain.Journal, error)
	CreateDraftEntry(ctx context.Context, organizationID string, req dto.CreateEntryRequest, userID string) (*domain.JournalEntry, error)
	GetEntryByID(ctx context.Context, organizationID string, entryID string, userID string) (*domain.JournalEntry, error)
	GetEntryAudit(ctx context.Context, organizationID string, entryID string, userID string) ([]domain.AuditRecord, error)
	ListEntries(ctx context.Context, organizationID string, params dto.ListEntriesParams, userID string) (*dto.ListEntriesResponse, error)
	UpdateDraftEntry(ctx context.Context, organizationID string, entryID string, req dto.UpdateEntryRequest, userID string) (*domain.JournalEntry, error)
	DeleteDraftEntry(ctx context.Context, organizationID string, entryID string, userID string) error
}

// PostingSvcFacade is the posting engine: the balancing state machine that is
// the single mutation point for account balances.
type PostingSvcFacade interface {
	PostEntry(ctx context.Context, organizationID string, entryID string, userID string) (*domain.JournalEntry, error)
	VoidEntry(ctx context.Context, organizationID string, entryID string, reason string, userID string) (*domain.JournalEntry, error)
	CreateReversalEntry(ctx context.Context, organizationID string, entryID string, date time.Time, reason string, userID string) (*domain.JournalEntry, error)
}

// ReportingSvcFacade recomputes aggregate views from journal-line history.
// All methods are pure reads.
type ReportingSvcFacade interface {
	AccountBalanceAsOf(ctx context.Context, organizationID string, accountID string, asOf time.Time, userID string) (decimal.Decimal, error)
	IncomeStatement(ctx context.Context, organizationID string, from, to time.Time, opts dto.IncomeStatementOptions, userID string) (*domain.IncomeStatement, error)
	BalanceSheet(ctx context.Context, organizationID string, asOf time.Time, opts dto.BalanceSheetOptions, userID string) (*domain.BalanceSheet, error)
	CashFlowStatement(ctx context.Context, organizationID string, from, to time.Time, opts dto.CashFlowOptions, userID string) (*domain.CashFlowStatement, error)
	TrialBalance(ctx context.Context, organizationID string, asOf time.Time, opts dto.TrialBalanceOptions, userID string) (*domain.TrialBalance, error)
	GeneralLedger(ctx context.Context, organizationID string, from, to time.Time, accountIDs []string, userID string) (*domain.GeneralLedger, error)
}

// PaymentSvcFacade records confirmed stablecoin transfers as balanced journal
// entries. It performs no chain I/O.
type PaymentSvcFacade interface {
	RecordTokenTransfer(ctx context.Context, organizationID string, req dto.RecordTokenTransferRequest, userID string) (*domain.JournalEntry, error)
}
