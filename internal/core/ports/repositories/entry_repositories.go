package repositories

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/stabulum/stabulum/internal/core/domain"
)

// JournalRepository persists the fixed set of journal partitions.
type JournalRepository interface {
	SaveJournal(ctx context.Context, journal domain.Journal) error
	FindJournalByID(ctx context.Context, journalID string) (*domain.Journal, error)
	ListJournals(ctx context.Context, organizationID string) ([]domain.Journal, error)
}

// EntryRepository persists journal entries and their lines. The Post, Void,
// and SaveReversal methods each execute as a single database transaction:
// entry mutation, per-account balance mutation, and the audit record either
// all commit or all roll back.
type EntryRepository interface {
	SaveEntry(ctx context.Context, entry domain.JournalEntry, lines []domain.JournalLine) error
	UpdateDraftEntry(ctx context.Context, entry domain.JournalEntry, lines []domain.JournalLine) error
	DeleteDraftEntry(ctx context.Context, entryID string) error
	FindEntryByID(ctx context.Context, entryID string) (*domain.JournalEntry, error)
	// FindEntryByExternalRef looks an entry up by its external payment
	// correlation token within an organization.
	FindEntryByExternalRef(ctx context.Context, organizationID string, externalRef string) (*domain.JournalEntry, error)
	FindLinesByEntryID(ctx context.Context, entryID string) ([]domain.JournalLine, error)
	// MaxEntrySequence returns the highest entry-number sequence used in the
	// journal, or 0 when the journal has no entries.
	MaxEntrySequence(ctx context.Context, journalID string) (int, error)
	ListEntries(ctx context.Context, organizationID string, journalID *string, limit int, nextToken *string) ([]domain.JournalEntry, *string, error)

	// PostEntry marks the entry posted, applies the balance deltas to the
	// affected accounts under row locks, and writes the audit record.
	// expectedUpdatedAt is the last-updated timestamp the caller observed;
	// the status flip only commits while the row is still a draft with that
	// timestamp, so deltas computed from stale lines never apply.
	PostEntry(ctx context.Context, entryID string, postedAt time.Time, expectedUpdatedAt time.Time, balanceChanges map[string]decimal.Decimal, audit domain.AuditRecord) error
	// VoidEntry marks the entry voided, applies the (already inverted)
	// balance deltas, and writes the audit record. The status flip only
	// commits while the row still carries expectedStatus and
	// expectedUpdatedAt, so a draft void cannot land on a concurrently
	// posted entry.
	VoidEntry(ctx context.Context, entryID string, expectedStatus domain.EntryStatus, expectedUpdatedAt time.Time, balanceChanges map[string]decimal.Decimal, audit domain.AuditRecord) error
	// SaveReversal inserts the reversal entry as a draft, marks the original
	// reversed with mutual links, and writes the audit record. Balances are
	// untouched until the reversal itself is posted.
	SaveReversal(ctx context.Context, reversal domain.JournalEntry, lines []domain.JournalLine, originalEntryID string, audit domain.AuditRecord) error

	FindAuditByEntryID(ctx context.Context, entryID string) ([]domain.AuditRecord, error)
}
