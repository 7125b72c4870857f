package backing

import (
	"context"
	"errors"

	"github.com/redis/go-redis/v9"
)

// RedisOptions are the configurable Redis connection options.
type RedisOptions struct {
	// Redis server address.
	Address string
	// Password required when connecting to the Redis server.
	Password string
	// DB to connect to.
	DB int
}

// DefaultRedisOptions connects to a local unauthenticated Redis.
func DefaultRedisOptions() RedisOptions {
	return RedisOptions{Address: "localhost:6379"}
}

// Redis stores the image blob under a Redis string key.
type Redis struct {
	client *redis.Client
}

func NewRedis(options RedisOptions) *Redis {
	client := redis.NewClient(&redis.Options{
		Addr:     options.Address,
		Password: options.Password,
		DB:       options.DB,
	})
	return &Redis{client: client}
}

func (r *Redis) Get(ctx context.Context, key string) ([]byte, bool, error) {
	data, err := r.client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return data, true, nil
}

func (r *Redis) Put(ctx context.Context, key string, data []byte) error {
	return r.client.Set(ctx, key, data, 0).Err()
}

// Close releases the underlying Redis connection.
func (r *Redis) Close() error {
	return r.client.Close()
}
