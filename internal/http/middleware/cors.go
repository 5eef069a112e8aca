package middleware

import (
	"net/http"
	"strings"

	"github.com/go-chi/cors"
)

// CORS allows cross-origin calls to the booking API from the listed origins.
// "*" echoes any Origin back; credentials stay enabled either way so the
// visitor cookie travels with embedded widgets.
func CORS(allowedOrigins []string) func(http.Handler) http.Handler {
	opts := cors.Options{
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type", "X-Request-ID"},
		ExposedHeaders:   []string{"Content-Disposition", "X-Request-ID"},
		AllowCredentials: true,
		MaxAge:           300,
	}

	var origins []string
	for _, origin := range allowedOrigins {
		origin = strings.TrimSpace(origin)
		if origin == "" {
			continue
		}
		if origin == "*" {
			opts.AllowOriginFunc = func(*http.Request, string) bool { return true }
			origins = nil
			break
		}
		origins = append(origins, origin)
	}
	if opts.AllowOriginFunc == nil {
		opts.AllowedOrigins = origins
	}
	return cors.Handler(opts)
}
