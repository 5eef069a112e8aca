package state

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wolfman30/physio-clinic/internal/observability/metrics"
	"github.com/wolfman30/physio-clinic/internal/storage"
	"github.com/wolfman30/physio-clinic/pkg/logging"
)

type record struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// flakyStore fails reads and/or writes on demand.
type flakyStore struct {
	mu        sync.Mutex
	inner     *storage.MemoryStore
	failRead  bool
	failWrite bool
}

func (f *flakyStore) Read(ctx context.Context, key string) ([]byte, error) {
	f.mu.Lock()
	fail := f.failRead
	f.mu.Unlock()
	if fail {
		return nil, errors.New("disk unavailable")
	}
	return f.inner.Read(ctx, key)
}

func (f *flakyStore) Write(ctx context.Context, key string, value []byte) error {
	f.mu.Lock()
	fail := f.failWrite
	f.mu.Unlock()
	if fail {
		return errors.New("quota exceeded")
	}
	return f.inner.Write(ctx, key, value)
}

func newTestService(store storage.Store) *Service {
	return NewService(store, logging.New("error"), metrics.NewBookingMetrics(prometheus.NewRegistry()))
}

func TestLoadDefaultsWhenMissing(t *testing.T) {
	svc := newTestService(storage.NewMemoryStore())
	ctx := context.Background()

	got := Load(ctx, svc, BookingsKey, "v1", []record{})
	assert.Empty(t, got)
	assert.NotNil(t, got)
	assert.False(t, svc.Consent(ctx, "v1"))
}

func TestSaveLoadRoundTrip(t *testing.T) {
	store := storage.NewMemoryStore()
	svc := newTestService(store)
	ctx := context.Background()

	want := []record{{ID: "b", Name: "Saanvi"}, {ID: "a", Name: "Rohit"}}
	require.NoError(t, Save(ctx, svc, BookingsKey, "v1", want))

	// a fresh service over the same store simulates a reload
	reloaded := newTestService(store)
	assert.Equal(t, want, Load(ctx, reloaded, BookingsKey, "v1", []record{}))

	raw, err := store.Read(ctx, "physio_bookings_v1:v1")
	require.NoError(t, err)
	assert.JSONEq(t, `[{"id":"b","name":"Saanvi"},{"id":"a","name":"Rohit"}]`, string(raw))
}

func TestVisitorsAreIsolated(t *testing.T) {
	svc := newTestService(storage.NewMemoryStore())
	ctx := context.Background()

	require.NoError(t, svc.SetConsent(ctx, "alice", true))
	assert.True(t, svc.Consent(ctx, "alice"))
	assert.False(t, svc.Consent(ctx, "bob"))
}

func TestLoadMalformedFallsBackToDefault(t *testing.T) {
	store := storage.NewMemoryStore()
	require.NoError(t, store.Write(context.Background(), "cookie_ok_v1:v1", []byte("{not json")))
	svc := newTestService(store)

	assert.False(t, svc.Consent(context.Background(), "v1"))
}

func TestReadFailureFallsBackToDefault(t *testing.T) {
	store := &flakyStore{inner: storage.NewMemoryStore(), failRead: true}
	svc := newTestService(store)

	got := Load(context.Background(), svc, BookingsKey, "v1", []record{})
	assert.Empty(t, got)
}

func TestWriteFailureKeepsValueInOverlay(t *testing.T) {
	store := &flakyStore{inner: storage.NewMemoryStore(), failWrite: true}
	svc := newTestService(store)
	ctx := context.Background()

	require.NoError(t, svc.SetConsent(ctx, "v1", true))
	assert.True(t, svc.Consent(ctx, "v1"), "session keeps the value despite the failed write")
	assert.Equal(t, 1, svc.Pending())

	_, err := store.inner.Read(ctx, "cookie_ok_v1:v1")
	assert.ErrorIs(t, err, storage.ErrNotFound)

	store.mu.Lock()
	store.failWrite = false
	store.mu.Unlock()
	require.NoError(t, svc.SetConsent(ctx, "v1", true))
	assert.Equal(t, 0, svc.Pending())
	raw, err := store.inner.Read(ctx, "cookie_ok_v1:v1")
	require.NoError(t, err)
	assert.Equal(t, "true", string(raw))
}

func TestKey(t *testing.T) {
	assert.Equal(t, "physio_bookings_v1:abc", Key(BookingsKey, "abc"))
}
