// Package store owns the embedded relational engine and its durability.
// The whole database lives in a single-connection SQLite image on a
// private scratch file; durability comes from exporting the full image
// to a backing store after every committed mutation.
package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"tripbook/internal/domain"
	"tripbook/internal/store/backing"

	sqlite "modernc.org/sqlite"
)

// DefaultSnapshotKey is the single backing-store key holding the image.
const DefaultSnapshotKey = "tripbook.image.v1"

// Result reports the effect of a single mutating statement.
type Result struct {
	RowsAffected int64
	LastInsertID int64
}

// Runner is satisfied by both *Store and *Tx so repositories work the
// same inside and outside a transaction.
type Runner interface {
	Query(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	Exec(ctx context.Context, query string, args ...any) (Result, error)
}

// Options configures a Store.
type Options struct {
	// Dir holds the scratch image file and export temp files.
	Dir string
	// Backing receives the exported image under Key.
	Backing backing.Store
	// Key defaults to DefaultSnapshotKey.
	Key string
}

// Store is the process-wide engine handle. It is created once at startup
// and passed by reference to every component that needs it.
type Store struct {
	mu    sync.Mutex
	db    *sql.DB
	dir   string
	path  string
	key   string
	back  backing.Store
	dirty bool
	gen   uint64
	inTx  bool

	// txMu serializes units of work across callers; persistMu serializes
	// image exports so an older export can never land after a newer one.
	txMu      sync.Mutex
	persistMu sync.Mutex
}

// Open loads the last persisted image from the backing store, or builds
// the seed image and persists it immediately when the store is empty.
func Open(ctx context.Context, opts Options) (*Store, error) {
	if opts.Backing == nil {
		return nil, fmt.Errorf("store: backing store is required")
	}
	key := opts.Key
	if key == "" {
		key = DefaultSnapshotKey
	}
	if err := os.MkdirAll(opts.Dir, 0o755); err != nil {
		return nil, fmt.Errorf("store: create data dir: %w", err)
	}

	s := &Store{
		dir:  opts.Dir,
		path: filepath.Join(opts.Dir, "live.db"),
		key:  key,
		back: opts.Backing,
	}

	data, found, err := s.back.Get(ctx, s.key)
	if err != nil {
		return nil, domain.BackingStoreError{Op: "get", Err: err}
	}

	if found {
		if err := writeImageFile(s.path, data); err != nil {
			return nil, err
		}
		db, err := openEngine(ctx, s.path)
		if err != nil {
			return nil, err
		}
		s.db = db
		return s, nil
	}

	// First run: build the seed image and make it durable right away.
	if err := os.Remove(s.path); err != nil && !os.IsNotExist(err) {
		return nil, err
	}
	db, err := openEngine(ctx, s.path)
	if err != nil {
		return nil, err
	}
	if _, err := db.ExecContext(ctx, seedSQL); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("store: apply seed image: %w", err)
	}
	s.db = db
	s.dirty = true
	if err := s.PersistIfDirty(ctx); err != nil {
		_ = db.Close()
		s.db = nil
		return nil, err
	}
	return s, nil
}

// Close tears the engine down. Calls after Close fail fast.
func (s *Store) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.db == nil {
		return nil
	}
	err := s.db.Close()
	s.db = nil
	return err
}

// Query runs a read-only statement against the live image.
func (s *Store) Query(ctx context.Context, query string, args ...any) (*sql.Rows, error) {
	db, err := s.handle("query")
	if err != nil {
		return nil, err
	}
	return db.QueryContext(ctx, query, args...)
}

// Exec applies one mutating statement and makes it durable before
// returning. A BackingStoreError means the mutation stands in memory
// but the export must be retried.
func (s *Store) Exec(ctx context.Context, query string, args ...any) (Result, error) {
	db, err := s.handle("exec")
	if err != nil {
		return Result{}, err
	}
	res, err := db.ExecContext(ctx, query, args...)
	if err != nil {
		return Result{}, classify(query, err)
	}
	out := resultOf(res)
	s.MarkDirty()
	if err := s.PersistIfDirty(ctx); err != nil {
		return out, err
	}
	return out, nil
}

func (s *Store) handle(op string) (*sql.DB, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.db == nil {
		return nil, domain.NotInitializedError{Op: op}
	}
	return s.db, nil
}

func resultOf(res sql.Result) Result {
	ra, _ := res.RowsAffected()
	id, _ := res.LastInsertId()
	return Result{RowsAffected: ra, LastInsertID: id}
}

// openEngine opens the scratch image with a single connection and
// re-enables foreign-key enforcement, as required on every fresh load.
func openEngine(ctx context.Context, path string) (*sql.DB, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("store: open engine: %w", err)
	}
	db.SetMaxOpenConns(1)
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("store: ping engine: %w", err)
	}
	if _, err := db.ExecContext(ctx, "PRAGMA foreign_keys = ON"); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("store: enable foreign keys: %w", err)
	}
	return db, nil
}

func writeImageFile(path string, data []byte) error {
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return err
	}
	return os.Rename(tmp, path)
}

// classify maps engine integrity violations onto the domain taxonomy so
// callers never have to inspect driver error codes.
func classify(stmt string, err error) error {
	var se *sqlite.Error
	if errors.As(err, &se) && se.Code()&0xff == 19 { // SQLITE_CONSTRAINT
		return domain.ConstraintError{Stmt: stmt, Err: err}
	}
	return err
}
