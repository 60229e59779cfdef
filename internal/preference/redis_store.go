package preference

import (
	"context"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"
)

var _ Store = (*RedisStore)(nil)

// RedisStore keeps preferences in a redis hash per profile.
type RedisStore struct {
	client redis.Cmdable
	key    string
}

// NewRedisStore builds a store writing to the hash "preferences:<profile>".
func NewRedisStore(client redis.Cmdable, profile string) *RedisStore {
	return &RedisStore{client: client, key: fmt.Sprintf("preferences:%s", profile)}
}

func (s *RedisStore) Get(ctx context.Context, key string) (string, error) {
	v, err := s.client.HGet(ctx, s.key, key).Result()
	if errors.Is(err, redis.Nil) {
		return "", ErrNotFound
	}
	return v, err
}

func (s *RedisStore) Set(ctx context.Context, key, value string) error {
	return s.client.HSet(ctx, s.key, key, value).Err()
}
