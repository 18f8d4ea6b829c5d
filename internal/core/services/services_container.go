package services

import (
	"github.com/SscSPs/bookkeeping_app/internal/core/domain"
	portsrepo "github.com/SscSPs/bookkeeping_app/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/bookkeeping_app/internal/core/ports/services"
	"github.com/SscSPs/bookkeeping_app/internal/platform/config"
	"github.com/SscSPs/bookkeeping_app/internal/platform/metrics"
)

// NewServiceContainer creates a new service container with properly initialized dependencies
func NewServiceContainer(cfg *config.Config, repos portsrepo.RepositoryProvider, m *metrics.Metrics) *portssvc.ServiceContainer {
	// One immutable classification table shared by every service.
	classifier := domain.NewClassifier()

	container := &portssvc.ServiceContainer{}

	container.Ledger = NewLedgerService(
		repos.AccountRepo,
		WithLedgerClassifier(classifier),
		WithLedgerMetrics(m),
	)
	container.Items = NewItemService(repos.ItemRepo, m)
	container.Posting = NewPostingService(
		repos.VoucherRepo,
		repos.AccountRepo,
		container.Ledger,
		container.Items,
		WithPostingMetrics(m),
	)
	container.Company = NewCompanyService(repos.CompanyRepo, container.Ledger)
	container.Reporting = NewReportingService(
		repos.ReportingRepo,
		WithReportingClassifier(classifier),
		WithReportingMetrics(m),
		WithReportTimeout(cfg.ReportTxTimeout),
	)

	return container
}

// Helper to check interface implementations at compile time
var (
	_ portssvc.LedgerSvcFacade  = (*ledgerService)(nil)
	_ portssvc.PostingSvcFacade = (*postingService)(nil)
	_ portssvc.ItemSvcFacade    = (*itemService)(nil)
)
