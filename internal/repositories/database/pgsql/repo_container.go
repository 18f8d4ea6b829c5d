package pgsql

import (
	portsrepo "github.com/SscSPs/bookkeeping_app/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5/pgxpool"
)

func NewRepositoryProvider(dbPool *pgxpool.Pool) portsrepo.RepositoryProvider {
	return portsrepo.RepositoryProvider{
		AccountRepo:   newPgxAccountRepository(dbPool),
		VoucherRepo:   newPgxVoucherRepository(dbPool),
		ItemRepo:      newPgxItemRepository(dbPool),
		CompanyRepo:   newPgxCompanyRepository(dbPool),
		ReportingRepo: newReportingRepository(dbPool),
	}
}
