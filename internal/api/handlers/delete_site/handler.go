package delete_site

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

// Handle DELETE /api/sites/{siteId}
// Бронирования площадки удаляются вместе с ней
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	siteID := mux.Vars(r)["siteId"]

	if err := h.service.Delete(r.Context(), siteID); err != nil {
		if errors.Is(err, sites.ErrSiteNotFound) {
			h.logger.Warn("DELETE /sites/{id} - Site not found: site_id=%s", siteID)
			handlers.RespondNotFound(w, msgSiteNotFound)
			return
		}
		h.logger.Error("DELETE /sites/{id} - Failed to delete site: site_id=%s, error=%v", siteID, err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("DELETE /sites/{id} - Site deleted successfully: site_id=%s", siteID)
	handlers.RespondNoContent(w)
}
