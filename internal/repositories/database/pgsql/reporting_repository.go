package pgsql

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/stabulum/stabulum/internal/core/domain"
	portsrepo "github.com/stabulum/stabulum/internal/core/ports/repositories"
)

type PgxReportingRepository struct {
	pool *pgxpool.Pool
}

// newPgxReportingRepository creates a new repository for report source data.
func newPgxReportingRepository(pool *pgxpool.Pool) portsrepo.ReportingRepository {
	return &PgxReportingRepository{pool: pool}
}

var _ portsrepo.ReportingRepository = (*PgxReportingRepository)(nil)

// FindPostedLines returns journal lines on posted entries for the
// organization, filtered by accounts and inclusive entry date bounds, ordered
// by entry date, entry number, line number. Voided entries are excluded to
// mirror the balance cache, which un-applies their deltas on void. Reversed
// originals remain: their effect is cancelled by the posted reversal's
// inverse lines, not erased.
func (r *PgxReportingRepository) FindPostedLines(ctx context.Context, organizationID string, accountIDs []string, from *time.Time, to *time.Time) ([]domain.PostedLine, error) {
	query := `
		SELECT e.entry_id, e.entry_number, e.entry_date, e.description,
		       l.line_id, l.line_number, l.account_id, l.debit, l.credit
		FROM journal_lines l
		JOIN journal_entries e ON e.entry_id = l.entry_id
		WHERE e.organization_id = $1
		  AND e.posted_at IS NOT NULL
		  AND e.status <> 'VOIDED'`
	args := []any{organizationID}

	if len(accountIDs) > 0 {
		args = append(args, accountIDs)
		query += fmt.Sprintf(` AND l.account_id = ANY($%d)`, len(args))
	}
	if from != nil {
		args = append(args, *from)
		query += fmt.Sprintf(` AND e.entry_date >= $%d`, len(args))
	}
	if to != nil {
		args = append(args, *to)
		query += fmt.Sprintf(` AND e.entry_date <= $%d`, len(args))
	}
	query += ` ORDER BY e.entry_date, e.entry_number, l.line_number;`

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query posted lines for organization %s: %w", organizationID, err)
	}
	defer rows.Close()

	lines := []domain.PostedLine{}
	for rows.Next() {
		var line domain.PostedLine
		if err := rows.Scan(
			&line.EntryID,
			&line.EntryNumber,
			&line.EntryDate,
			&line.EntryDescription,
			&line.LineID,
			&line.LineNumber,
			&line.AccountID,
			&line.Debit,
			&line.Credit,
		); err != nil {
			return nil, fmt.Errorf("failed to scan posted line row: %w", err)
		}
		lines = append(lines, line)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating posted line rows: %w", err)
	}
	return lines, nil
}
