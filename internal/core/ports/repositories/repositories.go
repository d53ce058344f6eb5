package repositories

// RepositoryProvider holds all repository interfaces needed by services.
// This makes passing dependencies to the service constructors cleaner.
type RepositoryProvider struct {
	AccountRepo     AccountRepositoryFacade
	LedgerRepo      LedgerRepositoryFacade
	IdempotencyRepo IdempotencyRepositoryFacade
	ReportingRepo   ReportingRepositoryFacade
}
