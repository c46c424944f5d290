package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisStore backs Store with Redis so progress survives restarts and is
// shared across portal instances. Keys are namespaced under "portal:".
type RedisStore struct {
	rdb *redis.Client
}

func NewRedisStore(redisURL string) (*RedisStore, error) {
	opt, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("parse redis url: %w", err)
	}

	rdb := redis.NewClient(opt)

	ctx := context.Background()
	if err := rdb.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("connect to redis: %w", err)
	}

	return &RedisStore{rdb: rdb}, nil
}

func (s *RedisStore) Get(key string) ([]byte, bool) {
	ctx := context.Background()
	val, err := s.rdb.Get(ctx, "portal:"+key).Bytes()
	if err != nil {
		return nil, false
	}
	return val, true
}

func (s *RedisStore) Set(key string, value []byte, ttl time.Duration) {
	ctx := context.Background()
	s.rdb.Set(ctx, "portal:"+key, value, ttl)
}

func (s *RedisStore) Delete(key string) {
	ctx := context.Background()
	s.rdb.Del(ctx, "portal:"+key)
}

func (s *RedisStore) Close() error {
	return s.rdb.Close()
}
