// Package state keeps each visitor's booking list and consent flag in the
// configured key-value store.
package state

import (
	"context"
	"errors"
	"sync"

	"github.com/goccy/go-json"

	"github.com/wolfman30/physio-clinic/internal/observability/metrics"
	"github.com/wolfman30/physio-clinic/internal/storage"
	"github.com/wolfman30/physio-clinic/pkg/logging"
)

const (
	// BookingsKey holds the visitor's ordered booking collection.
	BookingsKey = "physio_bookings_v1"
	// ConsentKey holds the visitor's cookie-banner consent flag.
	ConsentKey = "cookie_ok_v1"
)

// Service reads and writes JSON values per visitor. Storage failures never
// surface to callers: reads fall back to the default and failed writes are
// kept in an in-process overlay so the session carries on.
type Service struct {
	store   storage.Store
	logger  *logging.Logger
	metrics *metrics.BookingMetrics

	mu      sync.RWMutex
	overlay map[string][]byte
}

// NewService constructs a state service over store.
func NewService(store storage.Store, logger *logging.Logger, m *metrics.BookingMetrics) *Service {
	if store == nil {
		panic("state: store required")
	}
	if logger == nil {
		logger = logging.Default()
	}
	return &Service{
		store:   store,
		logger:  logger,
		metrics: m,
		overlay: make(map[string][]byte),
	}
}

// Key qualifies a storage key with the visitor namespace.
func Key(key, visitorID string) string {
	return key + ":" + visitorID
}

// Load decodes the value stored under key for visitorID into a T, returning
// def when the value is missing, unreadable, or malformed.
func Load[T any](ctx context.Context, s *Service, key, visitorID string, def T) T {
	data, ok := s.read(ctx, key, visitorID)
	if !ok {
		return def
	}
	var out T
	if err := json.Unmarshal(data, &out); err != nil {
		s.logger.Warn("state: stored value malformed, using default",
			"key", key, "visitor_id", visitorID, "error", err)
		s.metrics.ObserveStorageFallback("decode", key)
		return def
	}
	return out
}

// Save encodes v and writes it under key for visitorID. Only an encoding
// failure is returned; storage failures are absorbed by the overlay.
func Save[T any](ctx context.Context, s *Service, key, visitorID string, v T) error {
	data, err := json.Marshal(v)
	if err != nil {
		return err
	}
	s.write(ctx, key, visitorID, data)
	return nil
}

// Consent reports whether the visitor accepted the cookie banner.
func (s *Service) Consent(ctx context.Context, visitorID string) bool {
	return Load(ctx, s, ConsentKey, visitorID, false)
}

// SetConsent records the visitor's cookie-banner choice.
func (s *Service) SetConsent(ctx context.Context, visitorID string, ok bool) error {
	return Save(ctx, s, ConsentKey, visitorID, ok)
}

func (s *Service) read(ctx context.Context, key, visitorID string) ([]byte, bool) {
	full := Key(key, visitorID)

	s.mu.RLock()
	pending, ok := s.overlay[full]
	s.mu.RUnlock()
	if ok {
		return pending, true
	}

	data, err := s.store.Read(ctx, full)
	if errors.Is(err, storage.ErrNotFound) {
		return nil, false
	}
	if err != nil {
		s.logger.Warn("state: read failed, using default",
			"key", key, "visitor_id", visitorID, "error", err)
		s.metrics.ObserveStorageFallback("read", key)
		return nil, false
	}
	return data, true
}

func (s *Service) write(ctx context.Context, key, visitorID string, data []byte) {
	full := Key(key, visitorID)
	if err := s.store.Write(ctx, full, data); err != nil {
		s.logger.Warn("state: write failed, keeping value in memory",
			"key", key, "visitor_id", visitorID, "error", err)
		s.metrics.ObserveStorageFallback("write", key)
		s.mu.Lock()
		s.overlay[full] = data
		s.mu.Unlock()
		return
	}
	s.mu.Lock()
	delete(s.overlay, full)
	s.mu.Unlock()
}

// Pending reports how many values are held only in memory.
func (s *Service) Pending() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.overlay)
}
