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

type PgxOrganizationRepository struct {
	pool *pgxpool.Pool
}

// newPgxOrganizationRepository creates a new repository for organization data.
func newPgxOrganizationRepository(pool *pgxpool.Pool) portsrepo.OrganizationRepository {
	return &PgxOrganizationRepository{pool: pool}
}

var _ portsrepo.OrganizationRepository = (*PgxOrganizationRepository)(nil)

// SaveOrganization inserts a new organization.
func (r *PgxOrganizationRepository) SaveOrganization(ctx context.Context, org domain.Organization) error {
	m := mapping.ToModelOrganization(org)
	query := `
		INSERT INTO organizations (organization_id, name, base_currency, is_active, created_at, created_by, last_updated_at, last_updated_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8);
	`
	_, err := r.pool.Exec(ctx, query,
		m.OrganizationID, m.Name, m.BaseCurrency, m.IsActive,
		m.CreatedAt, m.CreatedBy, m.LastUpdatedAt, m.LastUpdatedBy,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return fmt.Errorf("%w: organization %s already exists", apperrors.ErrDuplicate, m.OrganizationID)
		}
		return fmt.Errorf("failed to save organization %s: %w", m.OrganizationID, err)
	}
	return nil
}

// FindOrganizationByID retrieves an organization by its ID.
func (r *PgxOrganizationRepository) FindOrganizationByID(ctx context.Context, organizationID string) (*domain.Organization, error) {
	query := `
		SELECT organization_id, name, base_currency, is_active, created_at, created_by, last_updated_at, last_updated_by
		FROM organizations
		WHERE organization_id = $1;
	`
	var m models.Organization
	err := r.pool.QueryRow(ctx, query, organizationID).Scan(
		&m.OrganizationID, &m.Name, &m.BaseCurrency, &m.IsActive,
		&m.CreatedAt, &m.CreatedBy, &m.LastUpdatedAt, &m.LastUpdatedBy,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find organization by ID %s: %w", organizationID, err)
	}
	org := mapping.ToDomainOrganization(m)
	return &org, nil
}

// ListOrganizationsByUser lists organizations the user is a member of.
func (r *PgxOrganizationRepository) ListOrganizationsByUser(ctx context.Context, userID string) ([]domain.Organization, error) {
	query := `
		SELECT o.organization_id, o.name, o.base_currency, o.is_active, o.created_at, o.created_by, o.last_updated_at, o.last_updated_by
		FROM organizations o
		JOIN organization_members om ON om.organization_id = o.organization_id
		WHERE om.user_id = $1
		ORDER BY o.name;
	`
	rows, err := r.pool.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to query organizations for user %s: %w", userID, err)
	}
	defer rows.Close()

	orgs := []domain.Organization{}
	for rows.Next() {
		var m models.Organization
		if err := rows.Scan(
			&m.OrganizationID, &m.Name, &m.BaseCurrency, &m.IsActive,
			&m.CreatedAt, &m.CreatedBy, &m.LastUpdatedAt, &m.LastUpdatedBy,
		); err != nil {
			return nil, fmt.Errorf("failed to scan organization row: %w", err)
		}
		orgs = append(orgs, mapping.ToDomainOrganization(m))
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating organization rows: %w", err)
	}
	return orgs, nil
}

// SaveMember inserts a membership row.
func (r *PgxOrganizationRepository) SaveMember(ctx context.Context, member domain.OrganizationMember) error {
	m := mapping.ToModelOrganizationMember(member)
	query := `
		INSERT INTO organization_members (organization_id, user_id, role, created_at, created_by, last_updated_at, last_updated_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7);
	`
	_, err := r.pool.Exec(ctx, query,
		m.OrganizationID, m.UserID, m.Role,
		m.CreatedAt, m.CreatedBy, m.LastUpdatedAt, m.LastUpdatedBy,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return fmt.Errorf("%w: user %s is already a member", apperrors.ErrDuplicate, m.UserID)
		}
		return fmt.Errorf("failed to save member %s: %w", m.UserID, err)
	}
	return nil
}

// FindMember retrieves one membership row, or ErrNotFound.
func (r *PgxOrganizationRepository) FindMember(ctx context.Context, organizationID string, userID string) (*domain.OrganizationMember, error) {
	query := `
		SELECT organization_id, user_id, role, created_at, created_by, last_updated_at, last_updated_by
		FROM organization_members
		WHERE organization_id = $1 AND user_id = $2;
	`
	var m models.OrganizationMember
	err := r.pool.QueryRow(ctx, query, organizationID, userID).Scan(
		&m.OrganizationID, &m.UserID, &m.Role,
		&m.CreatedAt, &m.CreatedBy, &m.LastUpdatedAt, &m.LastUpdatedBy,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find member %s in organization %s: %w", userID, organizationID, err)
	}
	member := mapping.ToDomainOrganizationMember(m)
	return &member, nil
}
