package create_site

import (
	"errors"
	"net/http"

	"github.com/m04kA/heritage-booking/internal/api/handlers"
	"github.com/m04kA/heritage-booking/internal/service/sites"
	"github.com/m04kA/heritage-booking/internal/service/sites/models"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidInput       = "некорректные данные площадки"
	msgDuplicateTimeSlot  = "время слотов не должно повторяться"
	msgSiteNameTaken      = "площадка с таким названием уже существует"
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

// Handle POST /api/sites
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req models.SiteRequest
	if err := handlers.DecodeJSONLenient(r, &req); err != nil {
		h.logger.Warn("POST /sites - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	site, err := h.service.Create(r.Context(), &req)
	if err != nil {
		switch {
		case errors.Is(err, sites.ErrInvalidInput):
			h.logger.Warn("POST /sites - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		case errors.Is(err, sites.ErrDuplicateTimeSlot):
			h.logger.Warn("POST /sites - Duplicate time slot: %v", err)
			handlers.RespondBadRequest(w, msgDuplicateTimeSlot)

		case errors.Is(err, sites.ErrSiteNameTaken):
			h.logger.Warn("POST /sites - Site name taken: name=%q", req.Name)
			handlers.RespondConflict(w, msgSiteNameTaken)

		default:
			h.logger.Error("POST /sites - Failed to create site: %v", err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /sites - Site created successfully: site_id=%s", site.ID)
	handlers.RespondJSON(w, http.StatusCreated, site)
}
