package backing

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
)

// FS stores blobs as files under a base directory. Writes go through a
// temp file plus rename so the stored image is never observed half-written.
type FS struct {
	Dir string
}

func NewFS(dir string) (*FS, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create backing dir: %w", err)
	}
	return &FS{Dir: dir}, nil
}

func (f *FS) Get(ctx context.Context, key string) ([]byte, bool, error) {
	if err := ctx.Err(); err != nil {
		return nil, false, err
	}
	data, err := os.ReadFile(f.path(key))
	if os.IsNotExist(err) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return data, true, nil
}

func (f *FS) Put(ctx context.Context, key string, data []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	dst := f.path(key)
	tmp := dst + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return err
	}
	return os.Rename(tmp, dst)
}

func (f *FS) path(key string) string {
	return filepath.Join(f.Dir, filepath.Base(key))
}
