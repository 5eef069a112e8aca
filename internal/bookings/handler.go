package bookings

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/goccy/go-json"

	"github.com/wolfman30/physio-clinic/internal/artifacts"
	"github.com/wolfman30/physio-clinic/internal/calendar"
	"github.com/wolfman30/physio-clinic/internal/session"
	"github.com/wolfman30/physio-clinic/pkg/logging"
)

const maxBodyBytes = 64 << 10

// Handler exposes the booking JSON API.
type Handler struct {
	service *Service
	logger  *logging.Logger
	baseURL string
}

// NewHandler creates a bookings HTTP handler.
func NewHandler(service *Service, logger *logging.Logger) *Handler {
	if logger == nil {
		logger = logging.Default()
	}
	return &Handler{service: service, logger: logger}
}

// WithBaseURL makes returned download URLs absolute under base.
func (h *Handler) WithBaseURL(base string) *Handler {
	h.baseURL = strings.TrimRight(base, "/")
	return h
}

// SubmitResponse is returned when a booking is created.
type SubmitResponse struct {
	Booking     Booking `json:"booking"`
	DownloadURL string  `json:"download_url,omitempty"`
}

// RejectionResponse is returned when a submission is refused.
type RejectionResponse struct {
	Error  string   `json:"error"`
	Reason Reason   `json:"reason"`
	Fields []string `json:"fields,omitempty"`
}

// DownloadPath is the one-shot download URL path for a confirmation token.
func DownloadPath(token string) string {
	if token == "" {
		return ""
	}
	return "/api/calendar/" + token
}

// ListDays returns the open days.
// GET /api/days
func (h *Handler) ListDays(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, http.StatusOK, h.service.OpenDays())
}

// ListSlots returns the available times for ?date=.
// GET /api/slots?date=2025-08-23
func (h *Handler) ListSlots(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, http.StatusOK, h.service.Slots(r.URL.Query().Get("date")))
}

// ListBookings returns the visitor's bookings.
// GET /api/bookings
func (h *Handler) ListBookings(w http.ResponseWriter, r *http.Request) {
	visitorID, ok := h.visitor(w, r)
	if !ok {
		return
	}
	h.writeJSON(w, http.StatusOK, h.service.List(r.Context(), visitorID))
}

// CreateBooking submits a booking form.
// POST /api/bookings
func (h *Handler) CreateBooking(w http.ResponseWriter, r *http.Request) {
	visitorID, ok := h.visitor(w, r)
	if !ok {
		return
	}

	var form Form
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes)).Decode(&form); err != nil {
		h.writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	conf, err := h.service.Submit(r.Context(), visitorID, form)
	var rej *RejectionError
	switch {
	case errors.As(err, &rej):
		h.writeJSON(w, http.StatusUnprocessableEntity, RejectionResponse{
			Error:  rej.Message(),
			Reason: rej.Reason,
			Fields: rej.Fields,
		})
		return
	case err != nil:
		h.logger.Error("failed to submit booking", "visitor_id", visitorID, "error", err)
		h.writeError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	h.writeJSON(w, http.StatusCreated, SubmitResponse{
		Booking:     conf.Booking,
		DownloadURL: h.downloadURL(conf.DownloadToken),
	})
}

func (h *Handler) downloadURL(token string) string {
	path := DownloadPath(token)
	if path == "" {
		return ""
	}
	return h.baseURL + path
}

// CancelBooking removes a booking; unknown ids still return 204.
// DELETE /api/bookings/{id}
func (h *Handler) CancelBooking(w http.ResponseWriter, r *http.Request) {
	visitorID, ok := h.visitor(w, r)
	if !ok {
		return
	}
	if _, err := h.service.Cancel(r.Context(), visitorID, chi.URLParam(r, "id")); err != nil {
		h.logger.Error("failed to cancel booking", "visitor_id", visitorID, "error", err)
		h.writeError(w, http.StatusInternalServerError, "internal server error")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// BookingCalendar renders a fresh .ics for an existing booking.
// GET /api/bookings/{id}/calendar
func (h *Handler) BookingCalendar(w http.ResponseWriter, r *http.Request) {
	visitorID, ok := h.visitor(w, r)
	if !ok {
		return
	}
	artifact, err := h.service.Calendar(r.Context(), visitorID, chi.URLParam(r, "id"))
	if errors.Is(err, ErrBookingNotFound) {
		h.writeError(w, http.StatusNotFound, "booking not found")
		return
	}
	if err != nil {
		h.logger.Error("failed to render calendar", "visitor_id", visitorID, "error", err)
		h.writeError(w, http.StatusInternalServerError, "internal server error")
		return
	}
	WriteArtifact(w, artifact)
}

// DownloadArtifact serves a confirmation artifact once.
// GET /api/calendar/{token}
func (h *Handler) DownloadArtifact(w http.ResponseWriter, r *http.Request) {
	artifact, err := h.service.Download(r.Context(), chi.URLParam(r, "token"))
	if errors.Is(err, artifacts.ErrNotFound) {
		h.writeError(w, http.StatusNotFound, "calendar file expired or already downloaded")
		return
	}
	if err != nil {
		h.logger.Error("failed to load calendar artifact", "error", err)
		h.writeError(w, http.StatusInternalServerError, "internal server error")
		return
	}
	WriteArtifact(w, artifact)
}

// WriteArtifact sends a calendar file as an attachment.
func WriteArtifact(w http.ResponseWriter, artifact calendar.Artifact) {
	contentType := artifact.ContentType
	if contentType == "" {
		contentType = calendar.ContentType
	}
	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", artifact.Filename))
	w.Header().Set("Cache-Control", "no-store")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(artifact.Body)
}

func (h *Handler) visitor(w http.ResponseWriter, r *http.Request) (string, bool) {
	visitorID, ok := session.VisitorIDFromContext(r.Context())
	if !ok {
		h.writeError(w, http.StatusBadRequest, "missing visitor session")
	}
	return visitorID, ok
}

func (h *Handler) writeError(w http.ResponseWriter, status int, msg string) {
	h.writeJSON(w, status, map[string]string{"error": msg})
}

func (h *Handler) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		h.logger.Error("failed to encode response", "error", err)
	}
}
