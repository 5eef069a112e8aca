package artifacts

import (
	"context"
	"errors"
	"testing"
	"time"

	miniredis "github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wolfman30/physio-clinic/internal/calendar"
)

func sampleArtifact() calendar.Artifact {
	return calendar.Artifact{
		UID:         "abc@karpagam.physio",
		Filename:    "Physio-123.ics",
		ContentType: calendar.ContentType,
		Body:        []byte("BEGIN:VCALENDAR\r\nEND:VCALENDAR"),
	}
}

func TestMemoryRegistryTakeOnce(t *testing.T) {
	reg := NewMemoryRegistry(time.Minute)
	ctx := context.Background()

	token, err := reg.Put(ctx, sampleArtifact())
	require.NoError(t, err)
	require.NotEmpty(t, token)

	got, err := reg.Take(ctx, token)
	require.NoError(t, err)
	assert.Equal(t, sampleArtifact(), got)

	_, err = reg.Take(ctx, token)
	assert.True(t, errors.Is(err, ErrNotFound), "second take must fail")
	assert.Equal(t, 0, reg.Len())
}

func TestMemoryRegistryExpiry(t *testing.T) {
	reg := NewMemoryRegistry(time.Minute)
	now := time.Date(2025, 8, 23, 9, 0, 0, 0, time.UTC)
	reg.now = func() time.Time { return now }

	token, err := reg.Put(context.Background(), sampleArtifact())
	require.NoError(t, err)

	now = now.Add(2 * time.Minute)
	_, err = reg.Take(context.Background(), token)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestMemoryRegistryPurgesExpiredOnPut(t *testing.T) {
	reg := NewMemoryRegistry(time.Minute)
	now := time.Date(2025, 8, 23, 9, 0, 0, 0, time.UTC)
	reg.now = func() time.Time { return now }

	_, _ = reg.Put(context.Background(), sampleArtifact())
	now = now.Add(time.Hour)
	_, _ = reg.Put(context.Background(), sampleArtifact())

	assert.Equal(t, 1, reg.Len())
}

func TestMemoryRegistryUnknownToken(t *testing.T) {
	_, err := NewMemoryRegistry(0).Take(context.Background(), "nope")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestRedisRegistry(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	reg := NewRedisRegistry(client, 10*time.Minute)
	ctx := context.Background()

	token, err := reg.Put(ctx, sampleArtifact())
	require.NoError(t, err)
	assert.Equal(t, 10*time.Minute, mr.TTL("physio:artifact:"+token))

	got, err := reg.Take(ctx, token)
	require.NoError(t, err)
	assert.Equal(t, sampleArtifact(), got)

	_, err = reg.Take(ctx, token)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestRedisRegistryExpiry(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	reg := NewRedisRegistry(client, time.Minute)
	token, err := reg.Put(context.Background(), sampleArtifact())
	require.NoError(t, err)

	mr.FastForward(2 * time.Minute)
	_, err = reg.Take(context.Background(), token)
	assert.ErrorIs(t, err, ErrNotFound)
}
