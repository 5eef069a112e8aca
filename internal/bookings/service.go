package bookings

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	"github.com/wolfman30/physio-clinic/internal/artifacts"
	"github.com/wolfman30/physio-clinic/internal/calendar"
	"github.com/wolfman30/physio-clinic/internal/observability/metrics"
	"github.com/wolfman30/physio-clinic/internal/schedule"
	"github.com/wolfman30/physio-clinic/internal/state"
	"github.com/wolfman30/physio-clinic/pkg/logging"
)

var bookingsTracer = otel.Tracer("physio.internal.bookings")

// maxIDAttempts bounds retries when the generator repeats an id.
const maxIDAttempts = 5

// Notifier is told about every committed booking.
type Notifier interface {
	BookingConfirmed(ctx context.Context, b Booking) error
}

// Confirmation is the result of a successful submission.
type Confirmation struct {
	Booking       Booking           `json:"booking"`
	Artifact      calendar.Artifact `json:"-"`
	DownloadToken string            `json:"download_token,omitempty"`
}

// Service validates submissions and maintains each visitor's collection.
type Service struct {
	state    *state.Service
	registry artifacts.Registry
	encoder  *calendar.Encoder
	notifier Notifier
	metrics  *metrics.BookingMetrics
	logger   *logging.Logger
	now      func() time.Time
	newID    func() string
	loc      *time.Location
	location string
	window   int
	enforce  bool

	// mu serialises read-modify-write of visitor collections.
	mu sync.Mutex
}

type Option func(*Service)

// WithClock overrides the wall clock.
func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		if now != nil {
			s.now = now
		}
	}
}

// WithIDGenerator overrides the booking id generator.
func WithIDGenerator(gen func() string) Option {
	return func(s *Service) {
		if gen != nil {
			s.newID = gen
		}
	}
}

// WithLocation sets the clinic time zone used to interpret date and time.
func WithLocation(loc *time.Location) Option {
	return func(s *Service) {
		if loc != nil {
			s.loc = loc
		}
	}
}

// WithEventLocation sets the LOCATION line of calendar files.
func WithEventLocation(location string) Option {
	return func(s *Service) {
		s.location = location
	}
}

// WithEncoder overrides the calendar encoder.
func WithEncoder(enc *calendar.Encoder) Option {
	return func(s *Service) {
		if enc != nil {
			s.encoder = enc
		}
	}
}

// WithNotifier configures confirmation notifications.
func WithNotifier(n Notifier) Option {
	return func(s *Service) {
		s.notifier = n
	}
}

// WithMetrics configures Prometheus observers.
func WithMetrics(m *metrics.BookingMetrics) Option {
	return func(s *Service) {
		s.metrics = m
	}
}

// WithWindowDays sets how many days ahead can be booked.
func WithWindowDays(days int) Option {
	return func(s *Service) {
		s.window = days
	}
}

// WithSlotEnforcement rejects times outside the day's available slots.
func WithSlotEnforcement(enabled bool) Option {
	return func(s *Service) {
		s.enforce = enabled
	}
}

// NewService constructs a bookings service.
func NewService(st *state.Service, registry artifacts.Registry, logger *logging.Logger, opts ...Option) *Service {
	if st == nil {
		panic("bookings: state service required")
	}
	if registry == nil {
		registry = artifacts.NewMemoryRegistry(artifacts.DefaultTTL)
	}
	if logger == nil {
		logger = logging.Default()
	}
	s := &Service{
		state:    st,
		registry: registry,
		encoder:  calendar.NewEncoder(),
		logger:   logger,
		now:      time.Now,
		newID:    uuid.NewString,
		loc:      time.UTC,
		window:   schedule.DefaultWindowDays,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Location is the clinic time zone.
func (s *Service) Location() *time.Location {
	return s.loc
}

// OpenDays lists the bookable days starting today in the clinic time zone.
func (s *Service) OpenDays() []schedule.Day {
	return schedule.OpenDays(s.now().In(s.loc), s.window)
}

// Slots lists the bookable times for date.
func (s *Service) Slots(date string) []string {
	return schedule.AvailableSlots(date)
}

// Submit validates form and, on success, appends a new booking to the
// visitor's collection and prepares its calendar file.
func (s *Service) Submit(ctx context.Context, visitorID string, form Form) (*Confirmation, error) {
	ctx, span := bookingsTracer.Start(ctx, "bookings.submit")
	defer span.End()

	form = form.Normalize()
	b, err := s.prepare(form)
	if err != nil {
		s.observeRejection(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}

	s.mu.Lock()
	list := s.load(ctx, visitorID)
	b.ID, err = s.uniqueID(list)
	if err != nil {
		s.mu.Unlock()
		span.RecordError(err)
		return nil, err
	}
	list = append(list, b)
	err = state.Save(ctx, s.state, state.BookingsKey, visitorID, list)
	s.mu.Unlock()
	if err != nil {
		span.RecordError(err)
		return nil, fmt.Errorf("bookings: save: %w", err)
	}

	span.SetAttributes(
		attribute.String("physio.booking_id", b.ID),
		attribute.String("physio.service", b.Service),
		attribute.String("physio.mode", string(b.Mode)),
	)

	artifact := s.encoder.Encode(b.Event(s.location), b.Filename())
	token, err := s.registry.Put(ctx, artifact)
	if err != nil {
		s.logger.Warn("calendar artifact not registered", "booking_id", b.ID, "error", err)
		token = ""
	}

	if s.notifier != nil {
		if err := s.notifier.BookingConfirmed(ctx, b); err != nil {
			s.logger.Warn("booking confirmation not sent", "booking_id", b.ID, "error", err)
			s.metrics.ObserveEmail("failed")
		} else {
			s.metrics.ObserveEmail("sent")
		}
	}

	s.metrics.ObserveSubmission("accepted")
	s.logger.Info("booking created", "booking_id", b.ID, "visitor_id", visitorID,
		"service", b.Service, "mode", b.Mode, "start", b.Start)
	return &Confirmation{Booking: b, Artifact: artifact, DownloadToken: token}, nil
}

func (s *Service) prepare(form Form) (Booking, error) {
	if err := form.Validate(); err != nil {
		return Booking{}, err
	}
	start, err := schedule.Combine(form.Date, form.Time, s.loc)
	if err != nil {
		return Booking{}, reject(ReasonInvalidDateTime, "date", "time")
	}
	if s.enforce && !schedule.IsAvailable(form.Date, form.Time) {
		return Booking{}, reject(ReasonSlotUnavailable, "time")
	}
	return Booking{
		Name:      form.Name,
		Email:     form.Email,
		Phone:     form.Phone,
		Service:   form.Service,
		Therapist: form.Therapist,
		Mode:      form.Mode,
		Date:      form.Date,
		Time:      form.Time,
		Start:     start.UTC(),
		End:       start.Add(SessionLength).UTC(),
	}, nil
}

func (s *Service) uniqueID(list []Booking) (string, error) {
	taken := make(map[string]struct{}, len(list))
	for _, b := range list {
		taken[b.ID] = struct{}{}
	}
	for i := 0; i < maxIDAttempts; i++ {
		id := s.newID()
		if id == "" {
			continue
		}
		if _, dup := taken[id]; !dup {
			return id, nil
		}
		s.logger.Warn("booking id collision, regenerating", "id", id)
	}
	return "", errors.New("bookings: could not allocate a unique id")
}

func (s *Service) observeRejection(err error) {
	var rej *RejectionError
	if errors.As(err, &rej) {
		s.metrics.ObserveSubmission(string(rej.Reason))
		s.logger.Info("booking rejected", "reason", rej.Reason, "fields", rej.Fields)
		return
	}
	s.metrics.ObserveSubmission("error")
}

// Cancel removes the booking with id. Unknown ids are a no-op.
func (s *Service) Cancel(ctx context.Context, visitorID, id string) (bool, error) {
	ctx, span := bookingsTracer.Start(ctx, "bookings.cancel")
	defer span.End()
	span.SetAttributes(attribute.String("physio.booking_id", id))

	s.mu.Lock()
	defer s.mu.Unlock()

	list := s.load(ctx, visitorID)
	kept := make([]Booking, 0, len(list))
	for _, b := range list {
		if b.ID != id {
			kept = append(kept, b)
		}
	}
	removed := len(kept) != len(list)
	s.metrics.ObserveCancellation(removed)
	if !removed {
		return false, nil
	}
	if err := state.Save(ctx, s.state, state.BookingsKey, visitorID, kept); err != nil {
		span.RecordError(err)
		return false, fmt.Errorf("bookings: save: %w", err)
	}
	s.logger.Info("booking cancelled", "booking_id", id, "visitor_id", visitorID)
	return true, nil
}

// List returns the visitor's bookings in the order they were made.
func (s *Service) List(ctx context.Context, visitorID string) []Booking {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.load(ctx, visitorID)
}

// Calendar renders a fresh calendar file for an existing booking.
func (s *Service) Calendar(ctx context.Context, visitorID, id string) (calendar.Artifact, error) {
	for _, b := range s.List(ctx, visitorID) {
		if b.ID == id {
			return s.encoder.Encode(b.Event(s.location), b.Filename()), nil
		}
	}
	return calendar.Artifact{}, ErrBookingNotFound
}

// Download claims a confirmation artifact by its one-shot token.
func (s *Service) Download(ctx context.Context, token string) (calendar.Artifact, error) {
	artifact, err := s.registry.Take(ctx, token)
	if err != nil {
		if errors.Is(err, artifacts.ErrNotFound) {
			s.metrics.ObserveArtifactDownload("missing")
		} else {
			s.metrics.ObserveArtifactDownload("error")
		}
		return calendar.Artifact{}, err
	}
	s.metrics.ObserveArtifactDownload("served")
	return artifact, nil
}

func (s *Service) load(ctx context.Context, visitorID string) []Booking {
	list := state.Load(ctx, s.state, state.BookingsKey, visitorID, []Booking{})
	if list == nil {
		list = []Booking{}
	}
	return list
}
