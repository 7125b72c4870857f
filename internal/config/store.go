package config

import (
	"context"
	"fmt"
	"log"
	"path/filepath"

	"tripbook/internal/store"
	"tripbook/internal/store/backing"
)

// OpenStore builds the backing store named by the environment and loads
// the engine image from it. The returned store is the single owned
// engine handle for the whole process.
func OpenStore(ctx context.Context, env Env) (*store.Store, error) {
	var back backing.Store
	switch env.BackingStore {
	case "", "fs":
		fs, err := backing.NewFS(filepath.Join(env.DataDir, "backing"))
		if err != nil {
			return nil, err
		}
		back = fs
	case "redis":
		opts := backing.DefaultRedisOptions()
		if env.RedisAddr != "" {
			opts.Address = env.RedisAddr
		}
		opts.Password = env.RedisPassword
		back = backing.NewRedis(opts)
	default:
		return nil, fmt.Errorf("unknown backing store %q", env.BackingStore)
	}

	st, err := store.Open(ctx, store.Options{
		Dir:     env.DataDir,
		Backing: back,
		Key:     env.SnapshotKey,
	})
	if err != nil {
		return nil, err
	}

	log.Printf("Store ready (backing=%s dir=%s)", env.BackingStore, env.DataDir)
	return st, nil
}
