package handlers

import (
	"io"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/hongminglow/hospcare-be/internal/http/respond"
)

// WelcomeText is the plain-text body served at the root path.
const WelcomeText = "Welcome to the HospCare API!"

// HealthHandler returns uptime and basic status.
type HealthHandler struct {
	startedAt time.Time
}

// NewHealthHandler creates a health endpoint handler.
func NewHealthHandler(startedAt time.Time) *HealthHandler {
	return &HealthHandler{startedAt: startedAt}
}

// MountRoutes wires the welcome and health endpoints.
func (h *HealthHandler) MountRoutes(r chi.Router) {
	r.Get("/", h.handleWelcome)
	r.Get("/health", h.handleHealth)
}

func (h *HealthHandler) handleWelcome(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = io.WriteString(w, WelcomeText)
}

func (h *HealthHandler) handleHealth(w http.ResponseWriter, _ *http.Request) {
	respond.JSON(w, http.StatusOK, map[string]string{
		"status": "ok",
		"uptime": time.Since(h.startedAt).Truncate(time.Second).String(),
	})
}
