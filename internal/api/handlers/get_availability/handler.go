package get_availability

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/m04kA/heritage-booking/internal/api/handlers"
	"github.com/m04kA/heritage-booking/internal/availability"
	getAvailability "github.com/m04kA/heritage-booking/internal/usecase/get_availability"
)

const (
	msgMissingSiteID = "ID площадки обязателен"
	msgInvalidMonth  = "некорректный месяц, ожидается YYYY-MM"
	msgSiteNotFound  = "площадка не найдена"
	msgTimeout       = "сервис не успел обработать запрос, попробуйте позже"
)

type Handler struct {
	useCase GetAvailabilityUseCase
	logger  Logger
}

func NewHandler(useCase GetAvailabilityUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/sites/{siteId}/availability/{month}
// month: "2024-06" или "2024-6"
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	siteID := vars["siteId"]
	if siteID == "" {
		h.logger.Warn("GET /sites/{id}/availability/{month} - Missing site ID")
		handlers.RespondBadRequest(w, msgMissingSiteID)
		return
	}

	year, month, err := availability.ParseMonth(vars["month"])
	if err != nil {
		h.logger.Warn("GET /sites/{id}/availability/{month} - Invalid month %q: %v", vars["month"], err)
		handlers.RespondBadRequest(w, msgInvalidMonth)
		return
	}

	result, err := h.useCase.Execute(r.Context(), &getAvailability.Request{
		SiteID: siteID,
		Year:   year,
		Month:  month,
	})
	if err != nil {
		switch {
		case errors.Is(err, getAvailability.ErrSiteNotFound):
			h.logger.Warn("GET /sites/{id}/availability/{month} - Site not found: site_id=%s", siteID)
			handlers.RespondNotFound(w, msgSiteNotFound)

		case errors.Is(err, getAvailability.ErrInvalidInput):
			h.logger.Warn("GET /sites/{id}/availability/{month} - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidMonth)

		case errors.Is(err, getAvailability.ErrTimeout):
			h.logger.Error("GET /sites/{id}/availability/{month} - Timed out: site_id=%s", siteID)
			handlers.RespondError(w, http.StatusGatewayTimeout, msgTimeout)

		default:
			h.logger.Error("GET /sites/{id}/availability/{month} - Failed to compute availability: site_id=%s, error=%v",
				siteID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /sites/{id}/availability/{month} - Availability computed: site_id=%s, month=%04d-%02d, days=%d",
		siteID, year, month, len(result.Days))
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
