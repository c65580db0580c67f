package get_site

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/m04kA/heritage-booking/internal/api/handlers"
	"github.com/m04kA/heritage-booking/internal/service/sites"
)

const msgSiteNotFound = "площадка не найдена"

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

// Handle GET /api/sites/{siteId}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	siteID := mux.Vars(r)["siteId"]

	site, err := h.service.GetByID(r.Context(), siteID)
	if err != nil {
		if errors.Is(err, sites.ErrSiteNotFound) {
			h.logger.Warn("GET /sites/{id} - Site not found: site_id=%s", siteID)
			handlers.RespondNotFound(w, msgSiteNotFound)
			return
		}
		h.logger.Error("GET /sites/{id} - Failed to get site: site_id=%s, error=%v", siteID, err)
		handlers.RespondInternalError(w)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, site)
}
