package list_public_bookings

import (
	"context"

	"github.com/m04kA/heritage-booking/internal/service/bookings/models"
)

type BookingService interface {
	ListPublic(ctx context.Context, f models.PublicFilter) ([]*models.PublicBookingResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
