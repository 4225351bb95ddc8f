package pgsql

import (
	"github.com/jackc/pgx/v5/pgxpool"

	portsrepo "github.com/stabulum/stabulum/internal/core/ports/repositories"
)

// NewRepositoryProvider wires every repository against one connection pool.
func NewRepositoryProvider(dbPool *pgxpool.Pool) portsrepo.RepositoryProvider {
	accountRepo := newPgxAccountRepository(dbPool)
	organizationRepo := newPgxOrganizationRepository(dbPool)
	journalRepo := newPgxJournalRepository(dbPool)
	entryRepo := newPgxEntryRepository(dbPool, accountRepo)
	reportingRepo := newPgxReportingRepository(dbPool)

	return portsrepo.RepositoryProvider{
		OrganizationRepo: organizationRepo,
		AccountRepo:      accountRepo,
		JournalRepo:      journalRepo,
		EntryRepo:        entryRepo,
		ReportingRepo:    reportingRepo,
	}
}
