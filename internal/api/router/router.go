package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/goccy/go-json"

	"github.com/wolfman30/physio-clinic/internal/bookings"
	"github.com/wolfman30/physio-clinic/internal/clinic"
	httpmiddleware "github.com/wolfman30/physio-clinic/internal/http/middleware"
	"github.com/wolfman30/physio-clinic/internal/observability/metrics"
	"github.com/wolfman30/physio-clinic/internal/site"
	"github.com/wolfman30/physio-clinic/internal/state"
	"github.com/wolfman30/physio-clinic/pkg/logging"
)

// Config holds router configuration
type Config struct {
	Logger          *logging.Logger
	Metrics         *metrics.BookingMetrics
	BookingsHandler *bookings.Handler
	SiteHandler     *site.Handler
	ConsentHandler  *state.ConsentHandler
	ClinicHandler   *clinic.Handler
	MetricsHandler  http.Handler

	CORSAllowedOrigins  []string
	RateLimitPerMinute  int
	SessionCookieSecure bool
}

// New creates a new Chi router with all routes configured
func New(cfg *Config) http.Handler {
	r := chi.NewRouter()

	// Middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Compress(5))
	if len(cfg.CORSAllowedOrigins) > 0 {
		r.Use(httpmiddleware.CORS(cfg.CORSAllowedOrigins))
	}
	if cfg.Logger != nil {
		r.Use(httpmiddleware.RequestLogger(cfg.Logger, cfg.Metrics))
	}

	// Public endpoints (health checks, metrics)
	r.Group(func(public chi.Router) {
		public.Get("/health", HealthCheck)
		if cfg.MetricsHandler != nil {
			public.Handle("/metrics", cfg.MetricsHandler)
		}
	})

	// Everything below is scoped to the visitor cookie.
	r.Group(func(visitor chi.Router) {
		visitor.Use(httpmiddleware.Session(cfg.SessionCookieSecure))
		limit := httpmiddleware.BookingRateLimit(cfg.RateLimitPerMinute)

		visitor.Route("/api", func(api chi.Router) {
			if h := cfg.BookingsHandler; h != nil {
				api.Get("/days", h.ListDays)
				api.Get("/slots", h.ListSlots)
				api.Get("/bookings", h.ListBookings)
				api.With(limit).Post("/bookings", h.CreateBooking)
				api.Delete("/bookings/{id}", h.CancelBooking)
				api.Get("/bookings/{id}/calendar", h.BookingCalendar)
				api.Get("/calendar/{token}", h.DownloadArtifact)
			}
			if cfg.ConsentHandler != nil {
				api.Get("/consent", cfg.ConsentHandler.GetConsent)
				api.Put("/consent", cfg.ConsentHandler.PutConsent)
			}
			if cfg.ClinicHandler != nil {
				api.Get("/clinic", cfg.ClinicHandler.GetProfile)
			}
		})

		if h := cfg.SiteHandler; h != nil {
			visitor.Get("/", h.Index)
			visitor.With(limit).Post("/book", h.Book)
			visitor.Post("/bookings/{id}/cancel", h.Cancel)
			visitor.Post("/consent", h.Consent)
			visitor.Post("/preferences", h.Preferences)
		}
	})

	return r
}

// HealthCheck returns a simple health check response.
func HealthCheck(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_ = json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
}
