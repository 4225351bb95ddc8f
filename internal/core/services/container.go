package services

import (
	portsrepo "github.com/stabulum/stabulum/internal/core/ports/repositories"
	portssvc "github.com/stabulum/stabulum/internal/core/ports/services"
)

// Container holds all the services and manages their dependencies.
type Container struct {
	Organization portssvc.OrganizationSvcFacade
	Account      portssvc.AccountSvcFacade
	Entry        portssvc.EntrySvcFacade
	Posting      portssvc.PostingSvcFacade
	Reporting    portssvc.ReportingSvcFacade
	Payment      portssvc.PaymentSvcFacade
}

// NewContainer creates a new service container with properly initialized
// dependencies.
func NewContainer(repos *portsrepo.RepositoryProvider) *Container {
	container := &Container{}

	// The organization service comes first; every other service authorizes
	// through it.
	container.Organization = NewOrganizationService(repos.OrganizationRepo, repos.JournalRepo)
	authorizer := portssvc.OrganizationAuthorizerSvc(container.Organization)

	container.Account = NewAccountService(
		repos.AccountRepo,
		WithAccountAuthorizer(authorizer),
	)
	container.Entry = NewEntryService(
		repos.EntryRepo,
		repos.JournalRepo,
		repos.AccountRepo,
		WithEntryAuthorizer(authorizer),
	)
	container.Posting = NewPostingService(
		repos.EntryRepo,
		repos.JournalRepo,
		repos.AccountRepo,
		WithPostingAuthorizer(authorizer),
	)
	container.Reporting = NewReportingService(
		repos.ReportingRepo,
		repos.AccountRepo,
		WithReportingAuthorizer(authorizer),
	)
	container.Payment = NewPaymentService(
		container.Entry,
		container.Posting,
		container.Account,
		WithPaymentAuthorizer(authorizer),
	)

	return container
}
