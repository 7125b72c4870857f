package store

import (
	"context"

	"tripbook/internal/domain"
)

// ExportSnapshot serializes the full current image for manual backup,
// bypassing the backing store.
func (s *Store) ExportSnapshot(ctx context.Context) ([]byte, error) {
	db, err := s.handle("export snapshot")
	if err != nil {
		return nil, err
	}
	return exportImage(ctx, db, s.dir)
}

// ImportSnapshot discards the current image, loads the given bytes as
// the new image, re-enables foreign-key enforcement and persists the new
// image immediately. This is a destructive full replace with no merge.
func (s *Store) ImportSnapshot(ctx context.Context, data []byte) error {
	s.mu.Lock()
	if s.db == nil {
		s.mu.Unlock()
		return domain.NotInitializedError{Op: "import snapshot"}
	}
	if s.inTx {
		s.mu.Unlock()
		return domain.TxOpenError{}
	}
	old := s.db
	s.db = nil
	s.mu.Unlock()

	if err := old.Close(); err != nil {
		return err
	}
	if err := writeImageFile(s.path, data); err != nil {
		return err
	}
	db, err := openEngine(ctx, s.path)
	if err != nil {
		return err
	}

	s.mu.Lock()
	s.db = db
	s.dirty = true
	s.mu.Unlock()

	return s.PersistIfDirty(ctx)
}
