package middleware

import (
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/wolfman30/physio-clinic/internal/session"
)

const (
	// SessionCookieName identifies the visitor whose bookings and consent
	// are kept server-side.
	SessionCookieName = "physio_sid"
	sessionMaxAge     = 365 * 24 * time.Hour
)

// Session resolves the visitor id from the session cookie, minting a new
// one (and setting the cookie) when it is missing or malformed.
func Session(secure bool) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			visitorID := ""
			if c, err := r.Cookie(SessionCookieName); err == nil {
				if id, err := uuid.Parse(c.Value); err == nil {
					visitorID = id.String()
				}
			}
			if visitorID == "" {
				visitorID = uuid.NewString()
				http.SetCookie(w, &http.Cookie{
					Name:     SessionCookieName,
					Value:    visitorID,
					Path:     "/",
					MaxAge:   int(sessionMaxAge.Seconds()),
					HttpOnly: true,
					Secure:   secure,
					SameSite: http.SameSiteLaxMode,
				})
			}
			ctx := session.WithVisitorID(r.Context(), visitorID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
