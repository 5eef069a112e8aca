package bookings

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wolfman30/physio-clinic/internal/calendar"
	"github.com/wolfman30/physio-clinic/internal/session"
	"github.com/wolfman30/physio-clinic/internal/storage"
)

func newTestRouter(t *testing.T, opts ...Option) (http.Handler, *Service) {
	t.Helper()
	svc := newTestService(t, storage.NewMemoryStore(), opts...)
	h := NewHandler(svc, nil)

	r := chi.NewRouter()
	r.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if v := r.Header.Get("X-Test-Visitor"); v != "" {
				r = r.WithContext(session.WithVisitorID(r.Context(), v))
			}
			next.ServeHTTP(w, r)
		})
	})
	r.Get("/api/days", h.ListDays)
	r.Get("/api/slots", h.ListSlots)
	r.Get("/api/bookings", h.ListBookings)
	r.Post("/api/bookings", h.CreateBooking)
	r.Delete("/api/bookings/{id}", h.CancelBooking)
	r.Get("/api/bookings/{id}/calendar", h.BookingCalendar)
	r.Get("/api/calendar/{token}", h.DownloadArtifact)
	return r, svc
}

func doRequest(h http.Handler, method, path, visitor string, body []byte) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, bytes.NewReader(body))
	if visitor != "" {
		req.Header.Set("X-Test-Visitor", visitor)
	}
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestCreateBookingReturnsDownloadURL(t *testing.T) {
	router, _ := newTestRouter(t, WithIDGenerator(sequenceIDs("b-1")))
	body, _ := json.Marshal(validForm())

	rec := doRequest(router, http.MethodPost, "/api/bookings", "v1", body)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var resp SubmitResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "b-1", resp.Booking.ID)
	require.True(t, strings.HasPrefix(resp.DownloadURL, "/api/calendar/"))

	dl := doRequest(router, http.MethodGet, resp.DownloadURL, "", nil)
	require.Equal(t, http.StatusOK, dl.Code)
	assert.Equal(t, calendar.ContentType, dl.Header().Get("Content-Type"))
	assert.Equal(t, `attachment; filename="Physio-b-1.ics"`, dl.Header().Get("Content-Disposition"))
	assert.True(t, strings.HasPrefix(dl.Body.String(), "BEGIN:VCALENDAR\r\n"))

	again := doRequest(router, http.MethodGet, resp.DownloadURL, "", nil)
	assert.Equal(t, http.StatusNotFound, again.Code)
}

func TestCreateBookingRejection(t *testing.T) {
	router, svc := newTestRouter(t)
	form := validForm()
	form.Phone = ""
	body, _ := json.Marshal(form)

	rec := doRequest(router, http.MethodPost, "/api/bookings", "v1", body)
	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)

	var resp RejectionResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, ReasonIncomplete, resp.Reason)
	assert.Equal(t, []string{"phone"}, resp.Fields)
	assert.Empty(t, svc.List(context.Background(), "v1"))
}

func TestCreateBookingBadJSON(t *testing.T) {
	router, _ := newTestRouter(t)
	rec := doRequest(router, http.MethodPost, "/api/bookings", "v1", []byte("{"))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestBookingRoutesRequireVisitor(t *testing.T) {
	router, _ := newTestRouter(t)
	rec := doRequest(router, http.MethodGet, "/api/bookings", "", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestListAndCancelBookings(t *testing.T) {
	router, _ := newTestRouter(t, WithIDGenerator(sequenceIDs("a", "b")))
	body, _ := json.Marshal(validForm())
	require.Equal(t, http.StatusCreated, doRequest(router, http.MethodPost, "/api/bookings", "v1", body).Code)
	require.Equal(t, http.StatusCreated, doRequest(router, http.MethodPost, "/api/bookings", "v1", body).Code)

	rec := doRequest(router, http.MethodDelete, "/api/bookings/a", "v1", nil)
	assert.Equal(t, http.StatusNoContent, rec.Code)
	rec = doRequest(router, http.MethodDelete, "/api/bookings/unknown", "v1", nil)
	assert.Equal(t, http.StatusNoContent, rec.Code)

	rec = doRequest(router, http.MethodGet, "/api/bookings", "v1", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var list []Booking
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &list))
	require.Len(t, list, 1)
	assert.Equal(t, "b", list[0].ID)

	rec = doRequest(router, http.MethodGet, "/api/bookings", "v2", nil)
	assert.JSONEq(t, "[]", rec.Body.String())
}

func TestBookingCalendarEndpoint(t *testing.T) {
	router, _ := newTestRouter(t, WithIDGenerator(sequenceIDs("b-1")))
	body, _ := json.Marshal(validForm())
	require.Equal(t, http.StatusCreated, doRequest(router, http.MethodPost, "/api/bookings", "v1", body).Code)

	rec := doRequest(router, http.MethodGet, "/api/bookings/b-1/calendar", "v1", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "DTSTART:20250823T040000Z")

	rec = doRequest(router, http.MethodGet, "/api/bookings/nope/calendar", "v1", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestDaysAndSlotsEndpoints(t *testing.T) {
	router, _ := newTestRouter(t)

	rec := doRequest(router, http.MethodGet, "/api/slots?date=2025-08-23", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var slots []string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &slots))
	assert.Len(t, slots, 7)
	assert.NotContains(t, slots, "17:00")

	rec = doRequest(router, http.MethodGet, "/api/slots", "", nil)
	assert.JSONEq(t, "[]", rec.Body.String())

	rec = doRequest(router, http.MethodGet, "/api/days", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var days []map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &days))
	assert.LessOrEqual(t, len(days), 14)
	assert.Equal(t, "2025-08-23", days[0]["date"])
}

func TestCreateBookingAbsoluteDownloadURL(t *testing.T) {
	svc := newTestService(t, storage.NewMemoryStore(), WithIDGenerator(sequenceIDs("b-1")))
	h := NewHandler(svc, nil).WithBaseURL("https://karpagam.physio/")

	body, _ := json.Marshal(validForm())
	req := httptest.NewRequest(http.MethodPost, "/api/bookings", bytes.NewReader(body))
	req = req.WithContext(session.WithVisitorID(req.Context(), "v1"))
	rec := httptest.NewRecorder()
	h.CreateBooking(rec, req)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var resp SubmitResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.True(t, strings.HasPrefix(resp.DownloadURL, "https://karpagam.physio/api/calendar/"), resp.DownloadURL)
}
