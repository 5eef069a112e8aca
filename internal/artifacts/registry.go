// Package artifacts hands out one-shot download tokens for generated
// calendar files.
package artifacts

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/wolfman30/physio-clinic/internal/calendar"
)

// DefaultTTL bounds how long an unclaimed artifact is kept.
const DefaultTTL = 30 * time.Minute

// ErrNotFound is returned for unknown, expired, or already claimed tokens.
var ErrNotFound = errors.New("artifacts: token not found")

// Registry stores artifacts until they are taken once or expire.
type Registry interface {
	Put(ctx context.Context, artifact calendar.Artifact) (string, error)
	Take(ctx context.Context, token string) (calendar.Artifact, error)
}

type memoryEntry struct {
	artifact  calendar.Artifact
	expiresAt time.Time
}

// MemoryRegistry keeps artifacts in process.
type MemoryRegistry struct {
	mu      sync.Mutex
	ttl     time.Duration
	now     func() time.Time
	entries map[string]memoryEntry
}

// NewMemoryRegistry creates a registry; a non-positive ttl uses DefaultTTL.
func NewMemoryRegistry(ttl time.Duration) *MemoryRegistry {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &MemoryRegistry{
		ttl:     ttl,
		now:     time.Now,
		entries: make(map[string]memoryEntry),
	}
}

// Put registers the artifact and returns its download token.
func (r *MemoryRegistry) Put(_ context.Context, artifact calendar.Artifact) (string, error) {
	token := uuid.NewString()
	now := r.now()

	r.mu.Lock()
	defer r.mu.Unlock()
	for k, e := range r.entries {
		if !now.Before(e.expiresAt) {
			delete(r.entries, k)
		}
	}
	r.entries[token] = memoryEntry{artifact: artifact, expiresAt: now.Add(r.ttl)}
	return token, nil
}

// Take returns the artifact and releases it.
func (r *MemoryRegistry) Take(_ context.Context, token string) (calendar.Artifact, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	e, ok := r.entries[token]
	if !ok {
		return calendar.Artifact{}, ErrNotFound
	}
	delete(r.entries, token)
	if !r.now().Before(e.expiresAt) {
		return calendar.Artifact{}, ErrNotFound
	}
	return e.artifact, nil
}

// Len reports how many artifacts are currently held.
func (r *MemoryRegistry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.entries)
}
