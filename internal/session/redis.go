package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// Token -> session JSON: session:{token}
const keySession = "session:%s"

// RedisStore keeps sessions in Redis so they survive restarts of the
// storefront process.
type RedisStore struct {
	client *redis.Client
}

func NewRedisStore(addr string) (*RedisStore, error) {
	client := redis.NewClient(&redis.Options{Addr: addr})

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("connect to redis: %w", err)
	}

	return &RedisStore{client: client}, nil
}

func (r *RedisStore) Save(ctx context.Context, s Session, ttl time.Duration) error {
	data, err := json.Marshal(s)
	if err != nil {
		return fmt.Errorf("marshal session: %w", err)
	}
	return r.client.Set(ctx, fmt.Sprintf(keySession, s.Token), data, ttl).Err()
}

func (r *RedisStore) Find(ctx context.Context, token string) (Session, bool, error) {
	val, err := r.client.Get(ctx, fmt.Sprintf(keySession, token)).Result()
	if errors.Is(err, redis.Nil) {
		return Session{}, false, nil
	}
	if err != nil {
		return Session{}, false, err
	}

	var s Session
	if err := json.Unmarshal([]byte(val), &s); err != nil {
		return Session{}, false, fmt.Errorf("unmarshal session: %w", err)
	}
	s.Token = token
	return s, true, nil
}

func (r *RedisStore) Delete(ctx context.Context, token string) error {
	return r.client.Del(ctx, fmt.Sprintf(keySession, token)).Err()
}

func (r *RedisStore) Close() error { return r.client.Close() }
