package repositories

// RepositoryProvider holds all repository interfaces needed by services.
// This makes passing dependencies to the service container constructor
// cleaner.
type RepositoryProvider struct {
	OrganizationRepo OrganizationRepository
	AccountRepo      AccountRepositoryFacade
	JournalRepo      JournalRepository
	EntryRepo        EntryRepository
	ReportingRepo    ReportingRepository
}
