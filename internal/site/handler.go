// Package site renders the clinic's single public page and handles its
// plain HTML form posts.
package site

import (
	"bytes"
	"errors"
	"html/template"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/wolfman30/physio-clinic/internal/bookings"
	"github.com/wolfman30/physio-clinic/internal/clinic"
	"github.com/wolfman30/physio-clinic/internal/session"
	"github.com/wolfman30/physio-clinic/internal/state"
	"github.com/wolfman30/physio-clinic/pkg/logging"
)

var pageTemplate = template.Must(template.New("page").Parse(pageHTML))

// Handler serves the page and its form endpoints.
type Handler struct {
	bookings *bookings.Service
	state    *state.Service
	profile  *clinic.Profile
	logger   *logging.Logger
	now      func() time.Time
}

// NewHandler creates the site handler.
func NewHandler(svc *bookings.Service, st *state.Service, profile *clinic.Profile, logger *logging.Logger) *Handler {
	if profile == nil {
		profile = clinic.DefaultProfile()
	}
	if logger == nil {
		logger = logging.Default()
	}
	return &Handler{bookings: svc, state: st, profile: profile, logger: logger, now: time.Now}
}

// Routes returns a chi router with the page routes.
func (h *Handler) Routes() chi.Router {
	r := chi.NewRouter()
	r.Get("/", h.Index)
	r.Post("/book", h.Book)
	r.Post("/bookings/{id}/cancel", h.Cancel)
	r.Post("/consent", h.Consent)
	r.Post("/preferences", h.Preferences)
	return r
}

// Index renders the page. ?date= selects the booking date.
// GET /
func (h *Handler) Index(w http.ResponseWriter, r *http.Request) {
	visitorID, _ := session.VisitorIDFromContext(r.Context())
	data := h.pageData(r, visitorID)
	data.Form.Date = r.URL.Query().Get("date")
	data.Slots = h.bookings.Slots(data.Form.Date)
	h.render(w, http.StatusOK, data)
}

// Book handles the quick-book form.
// POST /book
func (h *Handler) Book(w http.ResponseWriter, r *http.Request) {
	visitorID, ok := session.VisitorIDFromContext(r.Context())
	if !ok {
		http.Error(w, "missing visitor session", http.StatusBadRequest)
		return
	}
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form", http.StatusBadRequest)
		return
	}
	form := bookings.Form{
		Name:      r.PostForm.Get("name"),
		Email:     r.PostForm.Get("email"),
		Phone:     r.PostForm.Get("phone"),
		Service:   r.PostForm.Get("service"),
		Therapist: r.PostForm.Get("therapist"),
		Mode:      bookings.Mode(r.PostForm.Get("mode")),
		Date:      r.PostForm.Get("date"),
		Time:      r.PostForm.Get("time"),
	}

	conf, err := h.bookings.Submit(r.Context(), visitorID, form)
	status := http.StatusOK
	var rej *bookings.RejectionError
	switch {
	case errors.As(err, &rej):
		status = http.StatusUnprocessableEntity
	case err != nil:
		h.logger.Error("failed to submit booking", "visitor_id", visitorID, "error", err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	// Bookings list is read after the submit so the new one shows.
	data := h.pageData(r, visitorID)
	data.Form = form.Normalize()
	data.Rejection = rej
	if conf != nil {
		data.Form.Time = ""
		data.Confirmation = &ConfirmationView{
			StartLabel:  startLabel(conf.Booking.Start, h.bookings.Location()),
			DownloadURL: bookings.DownloadPath(conf.DownloadToken),
			Filename:    conf.Artifact.Filename,
			EmailURL:    clinic.ConfirmationMailto(conf.Booking.Email),
		}
	}
	data.Slots = h.bookings.Slots(data.Form.Date)
	h.render(w, status, data)
}

// Cancel removes a booking and returns to the list.
// POST /bookings/{id}/cancel
func (h *Handler) Cancel(w http.ResponseWriter, r *http.Request) {
	visitorID, ok := session.VisitorIDFromContext(r.Context())
	if !ok {
		http.Error(w, "missing visitor session", http.StatusBadRequest)
		return
	}
	if _, err := h.bookings.Cancel(r.Context(), visitorID, chi.URLParam(r, "id")); err != nil {
		h.logger.Error("failed to cancel booking", "visitor_id", visitorID, "error", err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}
	http.Redirect(w, r, "/#booking", http.StatusSeeOther)
}

// Consent hides the cookie banner for this visitor.
// POST /consent
func (h *Handler) Consent(w http.ResponseWriter, r *http.Request) {
	visitorID, ok := session.VisitorIDFromContext(r.Context())
	if !ok {
		http.Error(w, "missing visitor session", http.StatusBadRequest)
		return
	}
	if err := h.state.SetConsent(r.Context(), visitorID, true); err != nil {
		h.logger.Error("failed to save consent", "visitor_id", visitorID, "error", err)
	}
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// Preferences applies one accessibility toolbar action and returns to the page.
// POST /preferences
func (h *Handler) Preferences(w http.ResponseWriter, r *http.Request) {
	visitorID, ok := session.VisitorIDFromContext(r.Context())
	if !ok {
		http.Error(w, "missing visitor session", http.StatusBadRequest)
		return
	}
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form", http.StatusBadRequest)
		return
	}
	prefs, ok := h.state.Preferences(r.Context(), visitorID).Apply(r.PostForm.Get("action"))
	if !ok {
		http.Error(w, "unknown preference action", http.StatusBadRequest)
		return
	}
	if err := h.state.SetPreferences(r.Context(), visitorID, prefs); err != nil {
		h.logger.Error("failed to save preferences", "visitor_id", visitorID, "error", err)
	}
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (h *Handler) pageData(r *http.Request, visitorID string) *PageData {
	data := newPageData(h.profile, h.now())
	data.Days = h.bookings.OpenDays()
	if visitorID == "" {
		data.ShowCookieBanner = true
		return data
	}
	data.ShowCookieBanner = !h.state.Consent(r.Context(), visitorID)
	data.Prefs = h.state.Preferences(r.Context(), visitorID)

	loc := h.bookings.Location()
	for _, b := range h.bookings.List(r.Context(), visitorID) {
		data.Bookings = append(data.Bookings, BookingView{
			Booking:       b,
			StartLabel:    startLabel(b.Start, loc),
			CalendarURL:   "/api/bookings/" + b.ID + "/calendar",
			RescheduleURL: clinic.RescheduleMailto(h.profile.Email),
		})
	}
	return data
}

func (h *Handler) render(w http.ResponseWriter, status int, data *PageData) {
	var buf bytes.Buffer
	if err := pageTemplate.Execute(&buf, data); err != nil {
		h.logger.Error("failed to render page", "error", err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("Cache-Control", "no-store")
	w.WriteHeader(status)
	_, _ = buf.WriteTo(w)
}
