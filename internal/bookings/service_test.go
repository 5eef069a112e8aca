package bookings

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wolfman30/physio-clinic/internal/artifacts"
	"github.com/wolfman30/physio-clinic/internal/calendar"
	"github.com/wolfman30/physio-clinic/internal/state"
	"github.com/wolfman30/physio-clinic/internal/storage"
	"github.com/wolfman30/physio-clinic/pkg/logging"
)

var ist = time.FixedZone("IST", 5*3600+1800)

func sequenceIDs(ids ...string) func() string {
	var mu sync.Mutex
	i := 0
	return func() string {
		mu.Lock()
		defer mu.Unlock()
		id := ids[i%len(ids)]
		i++
		return id
	}
}

func newTestService(t *testing.T, store storage.Store, opts ...Option) *Service {
	t.Helper()
	logger := logging.New("error")
	st := state.NewService(store, logger, nil)
	enc := &calendar.Encoder{
		NewID: func() string { return "uid-1" },
		Now:   func() time.Time { return time.Date(2025, 8, 20, 6, 0, 0, 0, time.UTC) },
	}
	base := []Option{
		WithLocation(ist),
		WithEncoder(enc),
		WithEventLocation("Karpagam Physiotherapy, 221B Wellness Ave, Bengaluru"),
		WithClock(func() time.Time { return time.Date(2025, 8, 23, 8, 0, 0, 0, ist) }),
	}
	return NewService(st, artifacts.NewMemoryRegistry(time.Minute), logger, append(base, opts...)...)
}

func validForm() Form {
	return Form{
		Name:  "Saanvi R.",
		Email: "saanvi@example.com",
		Phone: "+91 90000 00000",
		Date:  "2025-08-23",
		Time:  "09:30",
	}
}

func TestSubmitComputesFortyFiveMinuteSession(t *testing.T) {
	svc := newTestService(t, storage.NewMemoryStore(), WithIDGenerator(sequenceIDs("b-1")))

	conf, err := svc.Submit(context.Background(), "v1", validForm())
	require.NoError(t, err)

	b := conf.Booking
	assert.Equal(t, "b-1", b.ID)
	assert.Equal(t, time.Date(2025, 8, 23, 4, 0, 0, 0, time.UTC), b.Start)
	assert.Equal(t, SessionLength, b.End.Sub(b.Start))
	assert.Equal(t, 45*time.Minute, b.End.Sub(b.Start))
}

func TestSubmitAppliesFormDefaults(t *testing.T) {
	svc := newTestService(t, storage.NewMemoryStore())

	form := validForm()
	form.Name = "  Rohit K.  "
	conf, err := svc.Submit(context.Background(), "v1", form)
	require.NoError(t, err)

	assert.Equal(t, "Rohit K.", conf.Booking.Name)
	assert.Equal(t, DefaultService, conf.Booking.Service)
	assert.Equal(t, TherapistFirstAvailable, conf.Booking.Therapist)
	assert.Equal(t, ModeInClinic, conf.Booking.Mode)
}

func TestSubmitRejectsIncompleteWithoutMutatingStorage(t *testing.T) {
	cases := map[string]func(*Form){
		"name":  func(f *Form) { f.Name = "" },
		"email": func(f *Form) { f.Email = "   " },
		"phone": func(f *Form) { f.Phone = "" },
		"date":  func(f *Form) { f.Date = "" },
		"time":  func(f *Form) { f.Time = "\t" },
	}
	for field, mutate := range cases {
		t.Run(field, func(t *testing.T) {
			store := storage.NewMemoryStore()
			svc := newTestService(t, store)

			form := validForm()
			mutate(&form)
			conf, err := svc.Submit(context.Background(), "v1", form)

			require.Error(t, err)
			assert.Nil(t, conf)
			assert.True(t, errors.Is(err, ErrIncompleteSubmission))
			var rej *RejectionError
			require.True(t, errors.As(err, &rej))
			assert.Equal(t, ReasonIncomplete, rej.Reason)
			assert.Equal(t, []string{field}, rej.Fields)

			_, readErr := store.Read(context.Background(), state.Key(state.BookingsKey, "v1"))
			assert.ErrorIs(t, readErr, storage.ErrNotFound, "rejected submission must not write")
		})
	}
}

func TestSubmitRejectsAllMissingFields(t *testing.T) {
	svc := newTestService(t, storage.NewMemoryStore())
	_, err := svc.Submit(context.Background(), "v1", Form{})

	var rej *RejectionError
	require.True(t, errors.As(err, &rej))
	assert.ElementsMatch(t, []string{"name", "email", "phone", "date", "time"}, rej.Fields)
	assert.Contains(t, rej.Message(), "name")
}

func TestSubmitAcceptsFreeTextContact(t *testing.T) {
	svc := newTestService(t, storage.NewMemoryStore())
	form := validForm()
	form.Email = "not an email"
	form.Phone = "call my office"

	_, err := svc.Submit(context.Background(), "v1", form)
	assert.NoError(t, err)
}

func TestSubmitRejectsInvalidDateTime(t *testing.T) {
	store := storage.NewMemoryStore()
	svc := newTestService(t, store)

	form := validForm()
	form.Date = "2025-02-30"
	_, err := svc.Submit(context.Background(), "v1", form)
	assert.ErrorIs(t, err, ErrInvalidDateTime)

	form = validForm()
	form.Time = "25:99"
	_, err = svc.Submit(context.Background(), "v1", form)
	assert.ErrorIs(t, err, ErrInvalidDateTime)

	assert.Empty(t, svc.List(context.Background(), "v1"))
}

func TestSubmitRejectsUnknownMode(t *testing.T) {
	svc := newTestService(t, storage.NewMemoryStore())
	form := validForm()
	form.Mode = "Carrier Pigeon"

	_, err := svc.Submit(context.Background(), "v1", form)
	assert.ErrorIs(t, err, ErrInvalidMode)
}

func TestSubmitSlotEnforcement(t *testing.T) {
	form := validForm()
	form.Time = "17:00" // blocked on 2025-08-23

	lenient := newTestService(t, storage.NewMemoryStore())
	_, err := lenient.Submit(context.Background(), "v1", form)
	assert.NoError(t, err, "the placeholder filter is advisory by default")

	strict := newTestService(t, storage.NewMemoryStore(), WithSlotEnforcement(true))
	_, err = strict.Submit(context.Background(), "v1", form)
	assert.ErrorIs(t, err, ErrSlotUnavailable)

	form.Time = "16:00"
	_, err = strict.Submit(context.Background(), "v1", form)
	assert.NoError(t, err)
}

func TestSubmitAppendsInOrderAndSurvivesReload(t *testing.T) {
	store := storage.NewMemoryStore()
	svc := newTestService(t, store, WithIDGenerator(sequenceIDs("b-1", "b-2", "b-3")))
	ctx := context.Background()

	for _, slot := range []string{"16:00", "08:30", "11:30"} {
		form := validForm()
		form.Time = slot
		_, err := svc.Submit(ctx, "v1", form)
		require.NoError(t, err)
	}

	list := svc.List(ctx, "v1")
	require.Len(t, list, 3)
	assert.Equal(t, []string{"b-1", "b-2", "b-3"}, []string{list[0].ID, list[1].ID, list[2].ID})

	reloaded := newTestService(t, store)
	assert.Equal(t, list, reloaded.List(ctx, "v1"))
}

func TestSubmitRetriesCollidingIDs(t *testing.T) {
	svc := newTestService(t, storage.NewMemoryStore(), WithIDGenerator(sequenceIDs("dup", "dup", "dup", "fresh")))
	ctx := context.Background()

	first, err := svc.Submit(ctx, "v1", validForm())
	require.NoError(t, err)
	second, err := svc.Submit(ctx, "v1", validForm())
	require.NoError(t, err)

	assert.Equal(t, "dup", first.Booking.ID)
	assert.Equal(t, "fresh", second.Booking.ID)
}

func TestSubmitFailsWhenIDsKeepColliding(t *testing.T) {
	svc := newTestService(t, storage.NewMemoryStore(), WithIDGenerator(func() string { return "same" }))
	ctx := context.Background()

	_, err := svc.Submit(ctx, "v1", validForm())
	require.NoError(t, err)
	_, err = svc.Submit(ctx, "v1", validForm())
	require.Error(t, err)
	assert.Len(t, svc.List(ctx, "v1"), 1)
}

func TestSubmitRendersArtifact(t *testing.T) {
	svc := newTestService(t, storage.NewMemoryStore(), WithIDGenerator(sequenceIDs("b-9")))
	form := validForm()
	form.Therapist = "Meera Iyer, BPT"
	form.Mode = ModeTelehealth

	conf, err := svc.Submit(context.Background(), "v1", form)
	require.NoError(t, err)

	body := string(conf.Artifact.Body)
	assert.Equal(t, "Physio-b-9.ics", conf.Artifact.Filename)
	assert.Contains(t, body, "SUMMARY:Physiotherapy: Pain Management\r\n")
	assert.Contains(t, body, `DESCRIPTION:Therapist: Meera Iyer, BPT\nMode: Telehealth\nBooked for Saanvi R. (+91 90000 00000)\nPlease arrive 10 minutes early.\nIf unwell, reschedule via email or phone.`+"\r\n")
	assert.Contains(t, body, "LOCATION:Karpagam Physiotherapy, 221B Wellness Ave, Bengaluru\r\n")
	assert.Contains(t, body, "DTSTART:20250823T040000Z\r\n")
	assert.Contains(t, body, "DTEND:20250823T044500Z\r\n")
	assert.NotEmpty(t, conf.DownloadToken)
}

func TestDownloadIsOneShot(t *testing.T) {
	svc := newTestService(t, storage.NewMemoryStore())
	ctx := context.Background()

	conf, err := svc.Submit(ctx, "v1", validForm())
	require.NoError(t, err)

	artifact, err := svc.Download(ctx, conf.DownloadToken)
	require.NoError(t, err)
	assert.Equal(t, conf.Artifact, artifact)

	_, err = svc.Download(ctx, conf.DownloadToken)
	assert.ErrorIs(t, err, artifacts.ErrNotFound)
}

func TestCancelUnknownIDIsNoop(t *testing.T) {
	store := storage.NewMemoryStore()
	svc := newTestService(t, store)
	ctx := context.Background()

	_, err := svc.Submit(ctx, "v1", validForm())
	require.NoError(t, err)
	before, err := store.Read(ctx, state.Key(state.BookingsKey, "v1"))
	require.NoError(t, err)

	removed, err := svc.Cancel(ctx, "v1", "does-not-exist")
	require.NoError(t, err)
	assert.False(t, removed)

	after, err := store.Read(ctx, state.Key(state.BookingsKey, "v1"))
	require.NoError(t, err)
	assert.Equal(t, before, after)
}

func TestCancelRemovesMatchingBooking(t *testing.T) {
	svc := newTestService(t, storage.NewMemoryStore(), WithIDGenerator(sequenceIDs("a", "b", "c")))
	ctx := context.Background()
	for i := 0; i < 3; i++ {
		_, err := svc.Submit(ctx, "v1", validForm())
		require.NoError(t, err)
	}

	removed, err := svc.Cancel(ctx, "v1", "b")
	require.NoError(t, err)
	assert.True(t, removed)

	list := svc.List(ctx, "v1")
	require.Len(t, list, 2)
	assert.Equal(t, "a", list[0].ID)
	assert.Equal(t, "c", list[1].ID)
}

func TestCalendarForExistingBooking(t *testing.T) {
	svc := newTestService(t, storage.NewMemoryStore(), WithIDGenerator(sequenceIDs("b-1")))
	ctx := context.Background()
	_, err := svc.Submit(ctx, "v1", validForm())
	require.NoError(t, err)

	artifact, err := svc.Calendar(ctx, "v1", "b-1")
	require.NoError(t, err)
	assert.Equal(t, "Physio-b-1.ics", artifact.Filename)

	_, err = svc.Calendar(ctx, "v1", "missing")
	assert.ErrorIs(t, err, ErrBookingNotFound)
	_, err = svc.Calendar(ctx, "other-visitor", "b-1")
	assert.ErrorIs(t, err, ErrBookingNotFound)
}

type recordingNotifier struct {
	mu     sync.Mutex
	booked []Booking
	err    error
}

func (n *recordingNotifier) BookingConfirmed(_ context.Context, b Booking) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.booked = append(n.booked, b)
	return n.err
}

func TestNotifierFailureDoesNotFailBooking(t *testing.T) {
	notifier := &recordingNotifier{err: errors.New("smtp down")}
	svc := newTestService(t, storage.NewMemoryStore(), WithNotifier(notifier))

	conf, err := svc.Submit(context.Background(), "v1", validForm())
	require.NoError(t, err)
	require.Len(t, notifier.booked, 1)
	assert.Equal(t, conf.Booking.ID, notifier.booked[0].ID)
	assert.Len(t, svc.List(context.Background(), "v1"), 1)
}

func TestConcurrentSubmitsKeepEveryBooking(t *testing.T) {
	svc := newTestService(t, storage.NewMemoryStore(), WithIDGenerator(nil))
	ctx := context.Background()

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			form := validForm()
			form.Name = fmt.Sprintf("visitor %d", i)
			_, _ = svc.Submit(ctx, "v1", form)
		}(i)
	}
	wg.Wait()

	list := svc.List(ctx, "v1")
	require.Len(t, list, 20)
	seen := map[string]bool{}
	for _, b := range list {
		assert.False(t, seen[b.ID], "duplicate id %s", b.ID)
		seen[b.ID] = true
		assert.True(t, strings.HasPrefix(b.Name, "visitor "))
	}
}

func TestOpenDaysUsesClinicClock(t *testing.T) {
	svc := newTestService(t, storage.NewMemoryStore())
	days := svc.OpenDays()

	require.NotEmpty(t, days)
	assert.Equal(t, "2025-08-23", days[0].Date)
	for _, d := range days {
		assert.NotEqual(t, time.Sunday, d.Weekday)
	}
	assert.NotContains(t, svc.Slots("2025-08-23"), "17:00")
}
