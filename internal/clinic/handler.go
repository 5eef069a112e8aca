package clinic

import (
	"net/http"

	"github.com/goccy/go-json"

	"github.com/wolfman30/physio-clinic/pkg/logging"
)

// Handler serves the public clinic profile.
type Handler struct {
	profile *Profile
	logger  *logging.Logger
}

// NewHandler creates a new clinic profile HTTP handler.
func NewHandler(profile *Profile, logger *logging.Logger) *Handler {
	if profile == nil {
		profile = DefaultProfile()
	}
	if logger == nil {
		logger = logging.Default()
	}
	return &Handler{profile: profile, logger: logger}
}

// GetProfile returns the clinic profile.
// GET /api/clinic
func (h *Handler) GetProfile(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(h.profile); err != nil {
		h.logger.Error("failed to encode clinic profile", "error", err)
	}
}
