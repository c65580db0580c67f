package list_sites

import (
	"net/http"

	"github.com/m04kA/heritage-booking/internal/api/handlers"
)

type Handler struct {
	service SiteService
	logger  Logger
}

func NewHandler(service SiteService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/sites
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	sites, err := h.service.List(r.Context())
	if err != nil {
		h.logger.Error("GET /sites - Failed to list sites: %v", err)
		handlers.RespondInternalError(w)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, sites)
}
