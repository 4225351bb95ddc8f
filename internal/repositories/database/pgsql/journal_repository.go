package pgsql

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/stabulum/stabulum/internal/apperrors"
	"github.com/stabulum/stabulum/internal/core/domain"
	portsrepo "github.com/stabulum/stabulum/internal/core/ports/repositories"
	"github.com/stabulum/stabulum/internal/models"
	"github.com/stabulum/stabulum/internal/utils/mapping"
)

type PgxJournalRepository struct {
	pool *pgxpool.Pool
}

// newPgxJournalRepository creates a new repository for journal partitions.
func newPgxJournalRepository(pool *pgxpool.Pool) portsrepo.JournalRepository {
	return &PgxJournalRepository{pool: pool}
}

var _ portsrepo.JournalRepository = (*PgxJournalRepository)(nil)

// SaveJournal inserts a journal partition.
func (r *PgxJournalRepository) SaveJournal(ctx context.Context, journal domain.Journal) error {
	m := mapping.ToModelJournal(journal)
	query := `
		INSERT INTO journals (journal_id, organization_id, name, journal_type, created_at, created_by, last_updated_at, last_updated_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8);
	`
	_, err := r.pool.Exec(ctx, query,
		m.JournalID, m.OrganizationID, m.Name, m.JournalType,
		m.CreatedAt, m.CreatedBy, m.LastUpdatedAt, m.LastUpdatedBy,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return fmt.Errorf("%w: journal %s already exists", apperrors.ErrDuplicate, m.JournalID)
		}
		return fmt.Errorf("failed to save journal %s: %w", m.JournalID, err)
	}
	return nil
}

// FindJournalByID retrieves a journal partition by its ID.
func (r *PgxJournalRepository) FindJournalByID(ctx context.Context, journalID string) (*domain.Journal, error) {
	query := `
		SELECT journal_id, organization_id, name, journal_type, created_at, created_by, last_updated_at, last_updated_by
		FROM journals
		WHERE journal_id = $1;
	`
	var m models.Journal
	err := r.pool.QueryRow(ctx, query, journalID).Scan(
		&m.JournalID, &m.OrganizationID, &m.Name, &m.JournalType,
		&m.CreatedAt, &m.CreatedBy, &m.LastUpdatedAt, &m.LastUpdatedBy,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find journal by ID %s: %w", journalID, err)
	}
	journal := mapping.ToDomainJournal(m)
	return &journal, nil
}

// ListJournals lists the organization's journal partitions.
func (r *PgxJournalRepository) ListJournals(ctx context.Context, organizationID string) ([]domain.Journal, error) {
	query := `
		SELECT journal_id, organization_id, name, journal_type, created_at, created_by, last_updated_at, last_updated_by
		FROM journals
		WHERE organization_id = $1
		ORDER BY name;
	`
	rows, err := r.pool.Query(ctx, query, organizationID)
	if err != nil {
		return nil, fmt.Errorf("failed to query journals for organization %s: %w", organizationID, err)
	}
	defer rows.Close()

	journals := []domain.Journal{}
	for rows.Next() {
		var m models.Journal
		if err := rows.Scan(
			&m.JournalID, &m.OrganizationID, &m.Name, &m.JournalType,
			&m.CreatedAt, &m.CreatedBy, &m.LastUpdatedAt, &m.LastUpdatedBy,
		); err != nil {
			return nil, fmt.Errorf("failed to scan journal row: %w", err)
		}
		journals = append(journals, mapping.ToDomainJournal(m))
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating journal rows: %w", err)
	}
	return journals, nil
}
