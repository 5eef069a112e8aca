package state

import (
	"net/http"

	"github.com/goccy/go-json"

	"github.com/wolfman30/physio-clinic/internal/session"
	"github.com/wolfman30/physio-clinic/pkg/logging"
)

// ConsentPayload is the body of the consent endpoints.
type ConsentPayload struct {
	Accepted bool `json:"accepted"`
}

// ConsentHandler exposes the visitor's cookie-banner consent flag.
type ConsentHandler struct {
	state  *Service
	logger *logging.Logger
}

// NewConsentHandler creates the consent HTTP handler.
func NewConsentHandler(state *Service, logger *logging.Logger) *ConsentHandler {
	if logger == nil {
		logger = logging.Default()
	}
	return &ConsentHandler{state: state, logger: logger}
}

// GetConsent returns the consent flag.
// GET /api/consent
func (h *ConsentHandler) GetConsent(w http.ResponseWriter, r *http.Request) {
	visitorID, ok := session.VisitorIDFromContext(r.Context())
	if !ok {
		http.Error(w, `{"error": "missing visitor session"}`, http.StatusBadRequest)
		return
	}
	h.write(w, ConsentPayload{Accepted: h.state.Consent(r.Context(), visitorID)})
}

// PutConsent records the consent flag.
// PUT /api/consent
func (h *ConsentHandler) PutConsent(w http.ResponseWriter, r *http.Request) {
	visitorID, ok := session.VisitorIDFromContext(r.Context())
	if !ok {
		http.Error(w, `{"error": "missing visitor session"}`, http.StatusBadRequest)
		return
	}
	var req ConsentPayload
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, 1<<10)).Decode(&req); err != nil {
		http.Error(w, `{"error": "invalid JSON body"}`, http.StatusBadRequest)
		return
	}
	if err := h.state.SetConsent(r.Context(), visitorID, req.Accepted); err != nil {
		h.logger.Error("failed to save consent", "visitor_id", visitorID, "error", err)
		http.Error(w, `{"error": "internal server error"}`, http.StatusInternalServerError)
		return
	}
	h.write(w, req)
}

func (h *ConsentHandler) write(w http.ResponseWriter, v ConsentPayload) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		h.logger.Error("failed to encode consent", "error", err)
	}
}
