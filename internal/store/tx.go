package store

import (
	"context"
	"database/sql"

	"tripbook/internal/domain"
)

// Tx is the scoped handle a unit-of-work closure receives. Mutations on
// it do not persist individually; the whole batch is exported once after
// commit.
type Tx struct {
	tx *sql.Tx
}

func (t *Tx) Query(ctx context.Context, query string, args ...any) (*sql.Rows, error) {
	return t.tx.QueryContext(ctx, query, args...)
}

func (t *Tx) Exec(ctx context.Context, query string, args ...any) (Result, error) {
	res, err := t.tx.ExecContext(ctx, query, args...)
	if err != nil {
		return Result{}, classify(query, err)
	}
	return resultOf(res), nil
}

type txMarker struct{}

// WithTx frames fn between begin and commit/rollback. A closure error
// rolls the whole batch back and is re-raised unchanged; on success the
// batch is committed and persisted as one image export.
//
// Concurrent callers serialize: a second WithTx waits for the running one
// instead of failing. Only a closure that calls WithTx again on the same
// store gets TxOpenError; the context passed to the closure carries the
// marker that detects this.
func (s *Store) WithTx(ctx context.Context, fn func(ctx context.Context, tx *Tx) error) error {
	if ctx.Value(txMarker{}) != nil {
		return domain.TxOpenError{}
	}

	s.txMu.Lock()
	defer s.txMu.Unlock()

	sqlTx, err := s.begin(ctx)
	if err != nil {
		return err
	}

	if err := fn(context.WithValue(ctx, txMarker{}, true), &Tx{tx: sqlTx}); err != nil {
		_ = sqlTx.Rollback()
		s.endTx()
		return err
	}

	if err := sqlTx.Commit(); err != nil {
		_ = sqlTx.Rollback()
		s.endTx()
		return classify("commit", err)
	}
	s.endTx()

	s.MarkDirty()
	return s.PersistIfDirty(ctx)
}

func (s *Store) begin(ctx context.Context) (*sql.Tx, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.db == nil {
		return nil, domain.NotInitializedError{Op: "begin"}
	}
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	s.inTx = true
	return tx, nil
}

func (s *Store) endTx() {
	s.mu.Lock()
	s.inTx = false
	s.mu.Unlock()
}
