package store

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"tripbook/internal/domain"
)

// MarkDirty records that the in-memory image has diverged from the
// persisted one. The generation counter lets a persist in flight detect
// mutations that landed after its export was taken.
func (s *Store) MarkDirty() {
	s.mu.Lock()
	s.dirty = true
	s.gen++
	s.mu.Unlock()
}

// PersistIfDirty exports the entire current image to the backing store
// and clears the dirty flag. Redundant calls coalesce to a no-op. The
// image on the backing store is only ever a fully consistent post-commit
// snapshot; there is no incremental log.
//
// Persists are serialized: exports reach the backing store in the order
// they were taken, and the dirty flag is cleared only when no mutation
// was marked after this export. A mutation marked mid-export stays dirty
// and is carried by the next persist.
func (s *Store) PersistIfDirty(ctx context.Context) error {
	s.persistMu.Lock()
	defer s.persistMu.Unlock()

	s.mu.Lock()
	if s.db == nil {
		s.mu.Unlock()
		return domain.NotInitializedError{Op: "persist"}
	}
	if !s.dirty {
		s.mu.Unlock()
		return nil
	}
	db := s.db
	gen := s.gen
	s.mu.Unlock()

	data, err := exportImage(ctx, db, s.dir)
	if err != nil {
		return domain.BackingStoreError{Op: "export", Err: err}
	}
	if err := s.back.Put(ctx, s.key, data); err != nil {
		return domain.BackingStoreError{Op: "put", Err: err}
	}

	s.mu.Lock()
	if s.gen == gen {
		s.dirty = false
	}
	s.mu.Unlock()
	return nil
}

// exportImage produces a consistent full copy of the live image via
// VACUUM INTO a temp file, independent of journal mode.
func exportImage(ctx context.Context, db *sql.DB, dir string) ([]byte, error) {
	tmp := filepath.Join(dir, fmt.Sprintf("export-%d.db", time.Now().UnixNano()))
	if _, err := db.ExecContext(ctx, "VACUUM INTO ?", tmp); err != nil {
		return nil, err
	}
	defer os.Remove(tmp)
	return os.ReadFile(tmp)
}
