package handlers

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/hongminglow/hospcare-be/internal/http/respond"
	"github.com/hongminglow/hospcare-be/internal/service"
)

// DoctorsHandler serves the public doctor directory.
type DoctorsHandler struct {
	directory *service.Directory
	logger    *slog.Logger
}

func NewDoctorsHandler(directory *service.Directory, logger *slog.Logger) *DoctorsHandler {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &DoctorsHandler{directory: directory, logger: logger}
}

// MountRoutes attaches GET /doctors; the caller mounts it under /api.
func (h *DoctorsHandler) MountRoutes(r chi.Router) {
	r.Get("/doctors", h.handleList)
}

func (h *DoctorsHandler) handleList(w http.ResponseWriter, r *http.Request) {
	doctors, err := h.directory.Doctors(r.Context())
	if err != nil {
		writeServiceError(w, r, h.logger, err, service.MsgServerError)
		return
	}
	respond.JSON(w, http.StatusOK, doctors)
}
