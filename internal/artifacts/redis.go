package artifacts

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/goccy/go-json"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/wolfman30/physio-clinic/internal/calendar"
)

// RedisRegistry keeps artifacts in Redis with an expiry so that any API
// replica can serve the download.
type RedisRegistry struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisRegistry creates a Redis-backed registry.
func NewRedisRegistry(client *redis.Client, ttl time.Duration) *RedisRegistry {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &RedisRegistry{client: client, ttl: ttl}
}

func (r *RedisRegistry) key(token string) string {
	return fmt.Sprintf("physio:artifact:%s", token)
}

// Put stores the artifact under a fresh token.
func (r *RedisRegistry) Put(ctx context.Context, artifact calendar.Artifact) (string, error) {
	data, err := json.Marshal(artifact)
	if err != nil {
		return "", fmt.Errorf("artifacts: marshal: %w", err)
	}
	token := uuid.NewString()
	if err := r.client.Set(ctx, r.key(token), data, r.ttl).Err(); err != nil {
		return "", fmt.Errorf("artifacts: set: %w", err)
	}
	return token, nil
}

// Take fetches and deletes the artifact atomically.
func (r *RedisRegistry) Take(ctx context.Context, token string) (calendar.Artifact, error) {
	data, err := r.client.GetDel(ctx, r.key(token)).Bytes()
	if errors.Is(err, redis.Nil) {
		return calendar.Artifact{}, ErrNotFound
	}
	if err != nil {
		return calendar.Artifact{}, fmt.Errorf("artifacts: getdel: %w", err)
	}
	var artifact calendar.Artifact
	if err := json.Unmarshal(data, &artifact); err != nil {
		return calendar.Artifact{}, fmt.Errorf("artifacts: unmarshal: %w", err)
	}
	return artifact, nil
}
