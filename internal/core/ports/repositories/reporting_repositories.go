package repositories

import (
	"context"
	"time"

	"github.com/SscSPs/bookkeeping_app/internal/core/domain"
	"github.com/jackc/pgx/v5"
)

// ActivityFilter scopes the journal lines a report aggregates.
// Lines dated before From count as prior movement; lines in [From, To] as period movement.
// A nil From means there is no period start and everything up to To is period movement.
type ActivityFilter struct {
	From      *time.Time
	To        time.Time
	Natures   []domain.AccountNature
	AccountID string
}

// ReportingRepository defines operations for retrieving financial report data.
// Every read takes the snapshot transaction returned by BeginSnapshot so one
// report sees one consistent view of the journal.
type ReportingRepository interface {
	// BeginSnapshot starts a REPEATABLE READ, read-only transaction.
	BeginSnapshot(ctx context.Context) (pgx.Tx, error)

	// Rollback ends a snapshot transaction.
	Rollback(ctx context.Context, tx pgx.Tx) error

	// AccountActivityInTx aggregates non-reversed journal lines per active account.
	AccountActivityInTx(ctx context.Context, tx pgx.Tx, companyID string, filter ActivityFilter) ([]domain.AccountActivity, error)

	// StatementEntriesInTx returns the account's non-reversed lines in [from, to], oldest first.
	StatementEntriesInTx(ctx context.Context, tx pgx.Tx, companyID, accountID string, from, to *time.Time) ([]domain.StatementEntry, error)
}
