package repo

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
)

// beginner is satisfied by *pgxpool.Pool, *pgx.Conn and pgx.Tx. On a pgx.Tx,
// Begin opens a savepoint, so a TxStore built on a test transaction still
// rolls back with it.
type beginner interface {
	Begin(ctx context.Context) (pgx.Tx, error)
}

// TxStore runs a group of trip and entry writes atomically.
type TxStore struct {
	db beginner
}

// NewTxStore constructs a TxStore on the given pool or transaction.
func NewTxStore(db beginner) *TxStore {
	return &TxStore{db: db}
}

// WithinTx calls fn with repos bound to a single transaction. The transaction
// commits when fn returns nil and rolls back otherwise.
func (s *TxStore) WithinTx(ctx context.Context, fn func(trips TripRepo, entries EntryRepo) error) error {
	err := pgx.BeginFunc(ctx, s.db, func(tx pgx.Tx) error {
		return fn(NewTripRepo(tx), NewEntryRepo(tx))
	})
	if err != nil {
		return fmt.Errorf("repo.TxStore.WithinTx: %w", err)
	}
	return nil
}
