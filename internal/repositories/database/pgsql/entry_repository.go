package pgsql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/stabulum/stabulum/internal/apperrors"
	"github.com/stabulum/stabulum/internal/core/domain"
	portsrepo "github.com/stabulum/stabulum/internal/core/ports/repositories"
	"github.com/stabulum/stabulum/internal/models"
	"github.com/stabulum/stabulum/internal/utils/mapping"
	"github.com/stabulum/stabulum/internal/utils/pagination"
)

const entryColumns = `entry_id, organization_id, journal_id, entry_number, entry_date, description, reference, status, posted_at, reversed_by_entry_id, reversal_of_entry_id, external_payment_ref, created_at, created_by, last_updated_at, last_updated_by`

const lineColumns = `line_id, entry_id, line_number, account_id, description, debit, credit, customer_id, vendor_id, project_id, department_id, token_amount, reconciled, created_at, created_by, last_updated_at, last_updated_by`

type PgxEntryRepository struct {
	BaseRepository
	accountRepo portsrepo.AccountRepositoryFacade
}

// newPgxEntryRepository creates a new repository for journal entries. The
// account repository dependency supplies row locking and balance writes
// inside posting transactions.
func newPgxEntryRepository(pool *pgxpool.Pool, accountRepo portsrepo.AccountRepositoryFacade) portsrepo.EntryRepository {
	return &PgxEntryRepository{
		BaseRepository: BaseRepository{Pool: pool},
		accountRepo:    accountRepo,
	}
}

var _ portsrepo.EntryRepository = (*PgxEntryRepository)(nil)

func scanEntry(row pgx.Row) (models.JournalEntry, error) {
	var m models.JournalEntry
	err := row.Scan(
		&m.EntryID,
		&m.OrganizationID,
		&m.JournalID,
		&m.EntryNumber,
		&m.EntryDate,
		&m.Description,
		&m.Reference,
		&m.Status,
		&m.PostedAt,
		&m.ReversedByEntryID,
		&m.ReversalOfEntryID,
		&m.ExternalPaymentRef,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	return m, err
}

func scanLine(row pgx.Row) (models.JournalLine, error) {
	var m models.JournalLine
	err := row.Scan(
		&m.LineID,
		&m.EntryID,
		&m.LineNumber,
		&m.AccountID,
		&m.Description,
		&m.Debit,
		&m.Credit,
		&m.CustomerID,
		&m.VendorID,
		&m.ProjectID,
		&m.DepartmentID,
		&m.TokenAmount,
		&m.Reconciled,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	return m, err
}

func queueLineInsert(batch *pgx.Batch, line domain.JournalLine) {
	m := mapping.ToModelJournalLine(line)
	query := `
		INSERT INTO journal_lines (` + lineColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17);
	`
	batch.Queue(query,
		m.LineID, m.EntryID, m.LineNumber, m.AccountID, m.Description,
		m.Debit, m.Credit, m.CustomerID, m.VendorID, m.ProjectID,
		m.DepartmentID, m.TokenAmount, m.Reconciled,
		m.CreatedAt, m.CreatedBy, m.LastUpdatedAt, m.LastUpdatedBy,
	)
}

func insertEntryTx(ctx context.Context, tx pgx.Tx, entry domain.JournalEntry) error {
	m := mapping.ToModelJournalEntry(entry)
	query := `
		INSERT INTO journal_entries (` + entryColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16);
	`
	_, err := tx.Exec(ctx, query,
		m.EntryID, m.OrganizationID, m.JournalID, m.EntryNumber, m.EntryDate,
		m.Description, m.Reference, m.Status, m.PostedAt,
		m.ReversedByEntryID, m.ReversalOfEntryID, m.ExternalPaymentRef,
		m.CreatedAt, m.CreatedBy, m.LastUpdatedAt, m.LastUpdatedBy,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return fmt.Errorf("%w: entry %s conflicts with an existing entry", apperrors.ErrDuplicate, m.EntryNumber)
		}
		return fmt.Errorf("failed to insert entry %s: %w", m.EntryID, err)
	}
	return nil
}

func insertAuditTx(ctx context.Context, tx pgx.Tx, audit domain.AuditRecord) error {
	m := mapping.ToModelAuditRecord(audit)
	query := `
		INSERT INTO audit_records (audit_id, organization_id, entry_id, action, reason, actor_id, occurred_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7);
	`
	if _, err := tx.Exec(ctx, query,
		m.AuditID, m.OrganizationID, m.EntryID, m.Action, m.Reason, m.ActorID, m.OccurredAt,
	); err != nil {
		return fmt.Errorf("failed to insert audit record for entry %s: %w", m.EntryID, err)
	}
	return nil
}

func insertLinesTx(ctx context.Context, tx pgx.Tx, lines []domain.JournalLine) error {
	if len(lines) == 0 {
		return nil
	}
	batch := &pgx.Batch{}
	for _, line := range lines {
		queueLineInsert(batch, line)
	}
	results := tx.SendBatch(ctx, batch)
	defer results.Close()
	for range lines {
		if _, err := results.Exec(); err != nil {
			return fmt.Errorf("failed to insert journal line: %w", err)
		}
	}
	return nil
}

// SaveEntry inserts an entry header and its lines in one transaction.
func (r *PgxEntryRepository) SaveEntry(ctx context.Context, entry domain.JournalEntry, lines []domain.JournalLine) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	if err := insertEntryTx(ctx, tx, entry); err != nil {
		return err
	}
	if err := insertLinesTx(ctx, tx, lines); err != nil {
		return err
	}
	return r.Commit(ctx, tx)
}

// UpdateDraftEntry rewrites a draft entry's header and replaces its lines.
// The status guard in the WHERE clause protects against a concurrent post.
func (r *PgxEntryRepository) UpdateDraftEntry(ctx context.Context, entry domain.JournalEntry, lines []domain.JournalLine) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	m := mapping.ToModelJournalEntry(entry)
	query := `
		UPDATE journal_entries
		SET entry_date = $2, description = $3, reference = $4, last_updated_at = $5, last_updated_by = $6
		WHERE entry_id = $1 AND status = 'DRAFT';
	`
	tag, err := tx.Exec(ctx, query,
		m.EntryID, m.EntryDate, m.Description, m.Reference, m.LastUpdatedAt, m.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to update entry %s: %w", m.EntryID, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: entry %s", apperrors.ErrEntryNotDraft, m.EntryID)
	}

	if _, err := tx.Exec(ctx, `DELETE FROM journal_lines WHERE entry_id = $1;`, m.EntryID); err != nil {
		return fmt.Errorf("failed to delete lines for entry %s: %w", m.EntryID, err)
	}
	if err := insertLinesTx(ctx, tx, lines); err != nil {
		return err
	}
	return r.Commit(ctx, tx)
}

// DeleteDraftEntry removes a draft entry and its lines.
func (r *PgxEntryRepository) DeleteDraftEntry(ctx context.Context, entryID string) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	if _, err := tx.Exec(ctx, `DELETE FROM journal_lines WHERE entry_id = $1;`, entryID); err != nil {
		return fmt.Errorf("failed to delete lines for entry %s: %w", entryID, err)
	}
	tag, err := tx.Exec(ctx, `DELETE FROM journal_entries WHERE entry_id = $1 AND status = 'DRAFT';`, entryID)
	if err != nil {
		return fmt.Errorf("failed to delete entry %s: %w", entryID, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: entry %s", apperrors.ErrEntryNotDraft, entryID)
	}
	return r.Commit(ctx, tx)
}

// FindEntryByID retrieves an entry header by its ID.
func (r *PgxEntryRepository) FindEntryByID(ctx context.Context, entryID string) (*domain.JournalEntry, error) {
	query := `SELECT ` + entryColumns + ` FROM journal_entries WHERE entry_id = $1;`
	m, err := scanEntry(r.Pool.QueryRow(ctx, query, entryID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find entry by ID %s: %w", entryID, err)
	}
	entry := mapping.ToDomainJournalEntry(m)
	return &entry, nil
}

// FindEntryByExternalRef retrieves an entry by its external payment
// correlation token within an organization.
func (r *PgxEntryRepository) FindEntryByExternalRef(ctx context.Context, organizationID string, externalRef string) (*domain.JournalEntry, error) {
	query := `SELECT ` + entryColumns + ` FROM journal_entries WHERE organization_id = $1 AND external_payment_ref = $2;`
	m, err := scanEntry(r.Pool.QueryRow(ctx, query, organizationID, externalRef))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find entry by external ref %s: %w", externalRef, err)
	}
	entry := mapping.ToDomainJournalEntry(m)
	return &entry, nil
}

// FindLinesByEntryID retrieves an entry's lines ordered by line number.
func (r *PgxEntryRepository) FindLinesByEntryID(ctx context.Context, entryID string) ([]domain.JournalLine, error) {
	query := `SELECT ` + lineColumns + ` FROM journal_lines WHERE entry_id = $1 ORDER BY line_number;`
	rows, err := r.Pool.Query(ctx, query, entryID)
	if err != nil {
		return nil, fmt.Errorf("failed to query lines for entry %s: %w", entryID, err)
	}
	defer rows.Close()

	lines := []domain.JournalLine{}
	for rows.Next() {
		m, err := scanLine(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan line row: %w", err)
		}
		lines = append(lines, mapping.ToDomainJournalLine(m))
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating line rows: %w", err)
	}
	return lines, nil
}

// MaxEntrySequence returns the highest numbering sequence used in the
// journal. Entry numbers carry the sequence as their third dash-separated
// segment.
func (r *PgxEntryRepository) MaxEntrySequence(ctx context.Context, journalID string) (int, error) {
	query := `
		SELECT COALESCE(MAX(split_part(entry_number, '-', 3)::int), 0)
		FROM journal_entries
		WHERE journal_id = $1;
	`
	var maxSeq int
	if err := r.Pool.QueryRow(ctx, query, journalID).Scan(&maxSeq); err != nil {
		return 0, fmt.Errorf("failed to query max entry sequence for journal %s: %w", journalID, err)
	}
	return maxSeq, nil
}

// ListEntries returns a page of entry headers ordered by entry date
// descending with keyset pagination on (entry_date, created_at).
func (r *PgxEntryRepository) ListEntries(ctx context.Context, organizationID string, journalID *string, limit int, nextToken *string) ([]domain.JournalEntry, *string, error) {
	query := `SELECT ` + entryColumns + ` FROM journal_entries WHERE organization_id = $1`
	args := []any{organizationID}

	if journalID != nil && *journalID != "" {
		args = append(args, *journalID)
		query += fmt.Sprintf(` AND journal_id = $%d`, len(args))
	}
	if nextToken != nil && *nextToken != "" {
		entryDate, createdAt, err := pagination.DecodeToken(*nextToken)
		if err != nil {
			return nil, nil, fmt.Errorf("%w: %s", apperrors.ErrValidation, err.Error())
		}
		args = append(args, entryDate, createdAt)
		query += fmt.Sprintf(` AND (entry_date, created_at) < ($%d, $%d)`, len(args)-1, len(args))
	}
	args = append(args, limit+1)
	query += fmt.Sprintf(` ORDER BY entry_date DESC, created_at DESC LIMIT $%d;`, len(args))

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to query entries for organization %s: %w", organizationID, err)
	}
	defer rows.Close()

	entries := []domain.JournalEntry{}
	for rows.Next() {
		m, err := scanEntry(rows)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to scan entry row: %w", err)
		}
		entries = append(entries, mapping.ToDomainJournalEntry(m))
	}
	if err := rows.Err(); err != nil {
		return nil, nil, fmt.Errorf("error iterating entry rows: %w", err)
	}

	var token *string
	if len(entries) > limit {
		entries = entries[:limit]
		last := entries[len(entries)-1]
		t := pagination.EncodeToken(last.EntryDate, last.CreatedAt)
		token = &t
	}
	return entries, token, nil
}

// PostEntry marks the entry posted, applies balance deltas under row locks,
// and writes the audit record, all in one transaction. The guard requires
// the row to still be the draft the caller computed the deltas from: a
// concurrent post, void, or line replacement changes status or
// last_updated_at and makes the UPDATE match zero rows.
func (r *PgxEntryRepository) PostEntry(ctx context.Context, entryID string, postedAt time.Time, expectedUpdatedAt time.Time, balanceChanges map[string]decimal.Decimal, audit domain.AuditRecord) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	query := `
		UPDATE journal_entries
		SET status = 'POSTED', posted_at = $2, last_updated_at = $2, last_updated_by = $3
		WHERE entry_id = $1 AND status = 'DRAFT' AND last_updated_at = $4;
	`
	tag, err := tx.Exec(ctx, query, entryID, postedAt, audit.ActorID, expectedUpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to mark entry %s posted: %w", entryID, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: entry %s is no longer the draft it was loaded as", apperrors.ErrConflict, entryID)
	}

	if err := r.applyBalanceChanges(ctx, tx, balanceChanges, audit.ActorID, postedAt); err != nil {
		return err
	}
	if err := insertAuditTx(ctx, tx, audit); err != nil {
		return err
	}
	return r.Commit(ctx, tx)
}

// VoidEntry marks the entry voided, applies the inverted balance deltas, and
// writes the audit record, all in one transaction. balanceChanges is empty
// for drafts. The guard pins the row to the exact state the caller observed:
// a draft void whose entry was posted in the meantime matches zero rows
// instead of silently leaving the posted deltas behind.
func (r *PgxEntryRepository) VoidEntry(ctx context.Context, entryID string, expectedStatus domain.EntryStatus, expectedUpdatedAt time.Time, balanceChanges map[string]decimal.Decimal, audit domain.AuditRecord) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	query := `
		UPDATE journal_entries
		SET status = 'VOIDED', last_updated_at = $2, last_updated_by = $3
		WHERE entry_id = $1 AND status = $4 AND last_updated_at = $5;
	`
	tag, err := tx.Exec(ctx, query, entryID, audit.OccurredAt, audit.ActorID, string(expectedStatus), expectedUpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to mark entry %s voided: %w", entryID, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: entry %s changed state since it was loaded", apperrors.ErrConflict, entryID)
	}

	if err := r.applyBalanceChanges(ctx, tx, balanceChanges, audit.ActorID, audit.OccurredAt); err != nil {
		return err
	}
	if err := insertAuditTx(ctx, tx, audit); err != nil {
		return err
	}
	return r.Commit(ctx, tx)
}

// SaveReversal inserts the reversal draft, marks the original reversed with
// mutual links, and writes the audit record, all in one transaction.
func (r *PgxEntryRepository) SaveReversal(ctx context.Context, reversal domain.JournalEntry, lines []domain.JournalLine, originalEntryID string, audit domain.AuditRecord) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	query := `
		UPDATE journal_entries
		SET status = 'REVERSED', reversed_by_entry_id = $2, last_updated_at = $3, last_updated_by = $4
		WHERE entry_id = $1 AND status IN ('POSTED', 'RECONCILED') AND reversed_by_entry_id IS NULL;
	`
	tag, err := tx.Exec(ctx, query, originalEntryID, reversal.EntryID, audit.OccurredAt, audit.ActorID)
	if err != nil {
		return fmt.Errorf("failed to mark entry %s reversed: %w", originalEntryID, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: entry %s", apperrors.ErrAlreadyReversed, originalEntryID)
	}

	if err := insertEntryTx(ctx, tx, reversal); err != nil {
		return err
	}
	if err := insertLinesTx(ctx, tx, lines); err != nil {
		return err
	}
	if err := insertAuditTx(ctx, tx, audit); err != nil {
		return err
	}
	return r.Commit(ctx, tx)
}

// applyBalanceChanges locks the affected accounts and writes the deltas.
func (r *PgxEntryRepository) applyBalanceChanges(ctx context.Context, tx pgx.Tx, balanceChanges map[string]decimal.Decimal, userID string, now time.Time) error {
	if len(balanceChanges) == 0 {
		return nil
	}
	accountIDs := make([]string, 0, len(balanceChanges))
	for accountID := range balanceChanges {
		accountIDs = append(accountIDs, accountID)
	}
	if _, err := r.accountRepo.FindAccountsByIDsForUpdate(ctx, tx, accountIDs); err != nil {
		return fmt.Errorf("failed to lock accounts for balance update: %w", err)
	}
	if err := r.accountRepo.UpdateAccountBalancesInTx(ctx, tx, balanceChanges, userID, now); err != nil {
		return fmt.Errorf("failed to update account balances: %w", err)
	}
	return nil
}

// FindAuditByEntryID retrieves an entry's audit trail, oldest first.
func (r *PgxEntryRepository) FindAuditByEntryID(ctx context.Context, entryID string) ([]domain.AuditRecord, error) {
	query := `
		SELECT audit_id, organization_id, entry_id, action, reason, actor_id, occurred_at
		FROM audit_records
		WHERE entry_id = $1
		ORDER BY occurred_at;
	`
	rows, err := r.Pool.Query(ctx, query, entryID)
	if err != nil {
		return nil, fmt.Errorf("failed to query audit records for entry %s: %w", entryID, err)
	}
	defer rows.Close()

	records := []domain.AuditRecord{}
	for rows.Next() {
		var m models.AuditRecord
		if err := rows.Scan(
			&m.AuditID, &m.OrganizationID, &m.EntryID, &m.Action, &m.Reason, &m.ActorID, &m.OccurredAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan audit row: %w", err)
		}
		records = append(records, mapping.ToDomainAuditRecord(m))
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating audit rows: %w", err)
	}
	return records, nil
}
