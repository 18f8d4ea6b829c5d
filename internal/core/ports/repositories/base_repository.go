package repositories

import (
	"context"

	"github.com/jackc/pgx/v5"
)

// TransactionManager lets a service span several repository calls with one pgx
// transaction. Every ...InTx method takes the tx returned by Begin.
type TransactionManager interface {
	Begin(ctx context.Context) (pgx.Tx, error)
	Commit(ctx context.Context, tx pgx.Tx) error
	// Rollback is safe to defer after Commit.
	Rollback(ctx context.Context, tx pgx.Tx) error
}
