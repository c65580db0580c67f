package create_booking

import (
	"errors"
	"net/http"

	"github.com/m04kA/heritage-booking/internal/api/handlers"
	createBooking "github.com/m04kA/heritage-booking/internal/usecase/create_booking"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidInput       = "некорректные данные бронирования"
	msgSiteNotFound       = "площадка не найдена"
	msgInvalidTimeSlot    = "у площадки нет такого временного слота"
	msgCapacityExceeded   = "в выбранном слоте не осталось мест"
	msgPastDate           = "нельзя забронировать прошедшую дату"
	msgTimeout            = "сервис не успел обработать запрос, попробуйте позже"
)

type Handler struct {
	useCase CreateBookingUseCase
	logger  Logger
}

func NewHandler(useCase CreateBookingUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/bookings
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req CreateBookingRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /bookings - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.useCase.Execute(r.Context(), req.ToUseCaseRequest())
	if err != nil {
		switch {
		case errors.Is(err, createBooking.ErrInvalidInput):
			h.logger.Warn("POST /bookings - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		case errors.Is(err, createBooking.ErrSiteNotFound):
			h.logger.Warn("POST /bookings - Site not found: site_id=%q, site_name=%q", req.SiteID, req.SiteName)
			handlers.RespondNotFound(w, msgSiteNotFound)

		case errors.Is(err, createBooking.ErrInvalidTimeSlot):
			h.logger.Warn("POST /bookings - Invalid time slot: site_id=%q, site_name=%q, time=%s", req.SiteID, req.SiteName, req.Time)
			handlers.RespondBadRequest(w, msgInvalidTimeSlot)

		case errors.Is(err, createBooking.ErrPastDateNotBookable):
			h.logger.Warn("POST /bookings - Past date: date=%s", req.Date)
			handlers.RespondBadRequest(w, msgPastDate)

		case errors.Is(err, createBooking.ErrCapacityExceeded):
			h.logger.Warn("POST /bookings - Capacity exceeded: site_id=%q, site_name=%q, date=%s, time=%s",
				req.SiteID, req.SiteName, req.Date, req.Time)
			handlers.RespondConflict(w, msgCapacityExceeded)

		case errors.Is(err, createBooking.ErrTimeout):
			h.logger.Error("POST /bookings - Timed out: date=%s, time=%s", req.Date, req.Time)
			handlers.RespondError(w, http.StatusGatewayTimeout, msgTimeout)

		default:
			h.logger.Error("POST /bookings - Failed to create booking: site_id=%q, site_name=%q, error=%v",
				req.SiteID, req.SiteName, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /bookings - Booking created successfully: booking_id=%s, site_id=%s, date=%s, time=%s",
		result.ID, result.SiteID, result.Date, result.Time)
	handlers.RespondJSON(w, http.StatusCreated, FromUseCaseResponse(result))
}
