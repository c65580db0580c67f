package update_site

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/m04kA/heritage-booking/internal/api/handlers"
	"github.com/m04kA/heritage-booking/internal/service/sites"
	"github.com/m04kA/heritage-booking/internal/service/sites/models"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidInput       = "некорректные данные площадки"
	msgDuplicateTimeSlot  = "время слотов не должно повторяться"
	msgSiteNameTaken      = "площадка с таким названием уже существует"
	msgSiteNotFound       = "площадка не найдена"
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

// Handle PUT /api/sites/{siteId}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	siteID := mux.Vars(r)["siteId"]

	var req models.SiteRequest
	if err := handlers.DecodeJSONLenient(r, &req); err != nil {
		h.logger.Warn("PUT /sites/{id} - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	site, err := h.service.Update(r.Context(), siteID, &req)
	if err != nil {
		switch {
		case errors.Is(err, sites.ErrSiteNotFound):
			h.logger.Warn("PUT /sites/{id} - Site not found: site_id=%s", siteID)
			handlers.RespondNotFound(w, msgSiteNotFound)

		case errors.Is(err, sites.ErrInvalidInput):
			h.logger.Warn("PUT /sites/{id} - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		case errors.Is(err, sites.ErrDuplicateTimeSlot):
			h.logger.Warn("PUT /sites/{id} - Duplicate time slot: %v", err)
			handlers.RespondBadRequest(w, msgDuplicateTimeSlot)

		case errors.Is(err, sites.ErrSiteNameTaken):
			h.logger.Warn("PUT /sites/{id} - Site name taken: name=%q", req.Name)
			handlers.RespondConflict(w, msgSiteNameTaken)

		default:
			h.logger.Error("PUT /sites/{id} - Failed to update site: site_id=%s, error=%v", siteID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PUT /sites/{id} - Site updated successfully: site_id=%s", siteID)
	handlers.RespondJSON(w, http.StatusOK, site)
}
